package member

// Age thresholds in months
const (
	// InfantAgeMonths bounds the infant bracket (strictly under)
	InfantAgeMonths = 12
	// ToddlerAgeMonths bounds the toddler bracket (inclusive)
	ToddlerAgeMonths = 60
	// AdultAgeMonths is 18 years; at or above it no age filter applies
	AdultAgeMonths = 216
)

// AgeCategory buckets an age in months
type AgeCategory string

const (
	CategoryInfant  AgeCategory = "infant"
	CategoryToddler AgeCategory = "toddler"
	CategorySchool  AgeCategory = "school"
	CategoryAdult   AgeCategory = "adult"
)

// CategoryForAge returns the age category for an age in months
func CategoryForAge(ageMonths int) AgeCategory {
	switch {
	case ageMonths <= InfantAgeMonths:
		return CategoryInfant
	case ageMonths <= ToddlerAgeMonths:
		return CategoryToddler
	case ageMonths <= AdultAgeMonths:
		return CategorySchool
	default:
		return CategoryAdult
	}
}

// AgeContext says whether age-based recipe filtering applies to a
// target and, when it does, at which age.
type AgeContext struct {
	AgeMonths   *int
	ApplyFilter bool
}

// ResolveAgeContext classifies a constraint set for age filtering.
// Adults, family targets, unknown ages and ages at or past eighteen
// years get no age filter.
func ResolveAgeContext(c Constraints) AgeContext {
	if c.Type == TypeAdult || c.Type == TypeFamily {
		return AgeContext{}
	}
	if c.AgeMonths == nil {
		return AgeContext{}
	}
	age := *c.AgeMonths
	if age < 0 {
		age = 0
	}
	if age >= AdultAgeMonths {
		return AgeContext{}
	}
	return AgeContext{AgeMonths: &age, ApplyFilter: true}
}

// IsAdultContext reports whether the target is treated as an adult.
// Distinct from ResolveAgeContext: an adult target must never be
// offered infant-only recipes even though no age filter applies to it.
func IsAdultContext(c Constraints) bool {
	if c.Type == TypeAdult || c.Type == TypeFamily {
		return true
	}
	return c.AgeMonths != nil && *c.AgeMonths >= AdultAgeMonths
}
