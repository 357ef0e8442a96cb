// Package recipe contains the candidate recipe model and the pure text
// classification used by the plan filtering pipeline: title
// normalization, meal-type resolution, age and texture safety keyword
// checks, the family-dinner rule and breakfast-base detection.
package recipe

import (
	"strings"
	"time"
	"unicode"

	"github.com/mealsmith/v2/internal/domain/plan"
	"github.com/google/uuid"
)

// Admissible pool sources. Recipes from other sources never enter the
// candidate pool.
const (
	SourceSeed   = "seed"
	SourceManual = "manual"
	SourceWeekAI = "week_ai"
)

// PoolSources lists the admissible sources in one place
func PoolSources() []string {
	return []string{SourceSeed, SourceManual, SourceWeekAI}
}

// Ingredient is one ingredient line of a candidate recipe
type Ingredient struct {
	Name        string
	DisplayText string
}

// Candidate is a recipe as seen by the plan engine: immutable, fetched
// in bulk in recency order, never written back.
type Candidate struct {
	ID           uuid.UUID
	Title        string
	Description  string
	Tags         []string
	Ingredients  []Ingredient
	MealType     *plan.MealType
	MinAgeMonths *int
	MaxAgeMonths *int
	Source       string
	CreatedAt    time.Time
}

// SearchText returns the lowercase concatenation of title, description,
// tags and ingredient text. All token containment checks run over it.
func (c *Candidate) SearchText() string {
	parts := make([]string, 0, 3+len(c.Ingredients))
	parts = append(parts, c.Title, c.Description, strings.Join(c.Tags, " "))
	for _, ing := range c.Ingredients {
		parts = append(parts, ing.Name+" "+ing.DisplayText)
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// FitsAge reports whether the candidate's declared age range contains
// the given age. An unset bound does not constrain.
func (c *Candidate) FitsAge(ageMonths int) bool {
	if c.MinAgeMonths != nil && ageMonths < *c.MinAgeMonths {
		return false
	}
	if c.MaxAgeMonths != nil && ageMonths > *c.MaxAgeMonths {
		return false
	}
	return true
}

// IsInfantOnly reports whether the candidate is declared for infants
// only (maximum age at or under twelve months). Such recipes are never
// offered to an adult-context target.
func (c *Candidate) IsInfantOnly() bool {
	return c.MaxAgeMonths != nil && *c.MaxAgeMonths <= 12
}

// NormalizeTitleKey builds the comparison key used for title dedup:
// lowercase, punctuation stripped, whitespace collapsed.
func NormalizeTitleKey(title string) string {
	lower := strings.ToLower(strings.TrimSpace(title))
	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
