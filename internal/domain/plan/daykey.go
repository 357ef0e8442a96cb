package plan

import "time"

// DayKeyLayout is the calendar-date key format used throughout the plan
// store and the generation API.
const DayKeyLayout = "2006-01-02"

// FormatDayKey renders a time as a day key in its own location
func FormatDayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// ParseDayKey parses a day key back into a UTC date
func ParseDayKey(key string) (time.Time, error) {
	t, err := time.Parse(DayKeyLayout, key)
	if err != nil {
		return time.Time{}, ErrInvalidDayKey
	}
	return t, nil
}

// RollingWindow returns n consecutive day keys starting at start
func RollingWindow(start time.Time, n int) []string {
	if n <= 0 {
		return nil
	}
	keys := make([]string, 0, n)
	day := start
	for i := 0; i < n; i++ {
		keys = append(keys, FormatDayKey(day))
		day = day.AddDate(0, 0, 1)
	}
	return keys
}

// LookbackWindow returns the day keys for the `days` calendar days
// strictly before start, oldest first. Used to seed dedup history.
func LookbackWindow(start time.Time, days int) []string {
	if days <= 0 {
		return nil
	}
	keys := make([]string, 0, days)
	for i := days; i >= 1; i-- {
		keys = append(keys, FormatDayKey(start.AddDate(0, 0, -i)))
	}
	return keys
}
