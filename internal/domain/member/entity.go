// Package member contains household member records, age-context
// resolution, and the family-mode constraint aggregation.
package member

import (
	"time"

	"github.com/google/uuid"
)

// Type tags a member record
type Type string

const (
	TypeChild  Type = "child"
	TypeAdult  Type = "adult"
	TypeFamily Type = "family"
)

// Member is a household member. Read-only input to the plan engine.
type Member struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	AgeMonths   *int
	Type        Type
	Allergies   []string
	Dislikes    []string
	Preferences []string
	Likes       []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Constraints is the slice of a member record the plan engine filters on.
// It is also the shape callers may supply directly instead of having the
// engine resolve the member from storage.
type Constraints struct {
	AgeMonths   *int
	Type        Type
	Allergies   []string
	Dislikes    []string
	Preferences []string
	Likes       []string
}

// ToConstraints projects a member record onto its filtering constraints
func (m *Member) ToConstraints() Constraints {
	return Constraints{
		AgeMonths:   m.AgeMonths,
		Type:        m.Type,
		Allergies:   m.Allergies,
		Dislikes:    m.Dislikes,
		Preferences: m.Preferences,
		Likes:       m.Likes,
	}
}

// IsInfant reports whether the member is strictly under twelve months
func (m *Member) IsInfant() bool {
	return m.AgeMonths != nil && *m.AgeMonths < InfantAgeMonths
}
