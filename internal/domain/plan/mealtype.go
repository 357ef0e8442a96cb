// Package plan contains the core domain logic for meal-plan days,
// slots, day keys and generation jobs.
// This follows Domain-Driven Design principles with rich domain models.
package plan

import "strings"

// MealType identifies one of the four daily meal slots
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealSnack     MealType = "snack"
	MealDinner    MealType = "dinner"
)

// MealTypes lists every slot in canonical day order.
// The assignment loop and progress accounting both rely on this order.
func MealTypes() []MealType {
	return []MealType{MealBreakfast, MealLunch, MealSnack, MealDinner}
}

// SlotsPerDay is the number of meal slots on one calendar day
const SlotsPerDay = 4

// ParseMealType maps a free-text value to a MealType
func ParseMealType(s string) (MealType, bool) {
	switch MealType(strings.ToLower(strings.TrimSpace(s))) {
	case MealBreakfast:
		return MealBreakfast, true
	case MealLunch:
		return MealLunch, true
	case MealSnack:
		return MealSnack, true
	case MealDinner:
		return MealDinner, true
	}
	return "", false
}

// IsValid reports whether the meal type is one of the four known slots
func (m MealType) IsValid() bool {
	_, ok := ParseMealType(string(m))
	return ok
}
