package plan

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PlanSource records where a slot's recipe came from
type PlanSource string

const (
	// SourcePool marks a slot filled from the candidate recipe pool
	SourcePool PlanSource = "pool"
	// SourceAI marks a slot filled by the external generation path
	SourceAI PlanSource = "ai"
)

// InfantMode selects how a family slot is served to an infant member
type InfantMode string

const (
	// InfantAdapt serves the family dish with an adaptation note
	InfantAdapt InfantMode = "adapt"
	// InfantAlt serves a separate infant-compatible alternative recipe
	InfantAlt InfantMode = "alt"
)

// InfantAdaptation is the optional sub-record attached to a family slot
// when the household includes a member under twelve months.
type InfantAdaptation struct {
	MemberID    uuid.UUID  `json:"member_id"`
	Mode        InfantMode `json:"mode"`
	Adaptation  string     `json:"adaptation,omitempty"`
	AltRecipeID *uuid.UUID `json:"alt_recipe_id,omitempty"`
}

// IngredientOverride is a caller-defined per-slot ingredient adjustment.
// The engine never interprets it; it only has to survive merge writes.
type IngredientOverride struct {
	Name   string `json:"name"`
	Amount string `json:"amount,omitempty"`
	Action string `json:"action,omitempty"`
}

// SlotValue is the content of one meal slot on one day.
// Optional fields are caller-owned and must be preserved when an
// unrelated slot of the same day is rewritten.
type SlotValue struct {
	RecipeID            uuid.UUID            `json:"recipe_id"`
	Title               string               `json:"title"`
	PlanSource          PlanSource           `json:"plan_source"`
	Servings            *int                 `json:"servings,omitempty"`
	IngredientOverrides []IngredientOverride `json:"ingredient_overrides,omitempty"`
	Infant              *InfantAdaptation    `json:"infant,omitempty"`
}

// IsEmpty reports whether the slot holds no recipe
func (s SlotValue) IsEmpty() bool {
	return s.RecipeID == uuid.Nil
}

// Normalize validates a slot value before it may be persisted.
// A slot is either empty or references exactly one recipe; a write
// with a nil recipe id is rejected rather than stored.
func (s SlotValue) Normalize() (SlotValue, error) {
	if s.RecipeID == uuid.Nil {
		return SlotValue{}, ErrEmptySlotWrite
	}
	s.Title = strings.TrimSpace(s.Title)
	if s.Title == "" {
		return SlotValue{}, ErrSlotTitleMissing
	}
	if s.PlanSource == "" {
		s.PlanSource = SourcePool
	}
	if s.Servings != nil && *s.Servings <= 0 {
		s.Servings = nil
	}
	return s, nil
}

// Day is the per-(owner, member-or-family, date) plan document
type Day struct {
	UserID    uuid.UUID
	MemberID  *uuid.UUID // nil means family target
	DayKey    string
	Meals     map[MealType]SlotValue
	UpdatedAt time.Time
}

// Slot returns the slot value for a meal type, if present
func (d *Day) Slot(mt MealType) (SlotValue, bool) {
	if d == nil || d.Meals == nil {
		return SlotValue{}, false
	}
	v, ok := d.Meals[mt]
	return v, ok
}

// FilledCount returns the number of non-empty slots on the day
func (d *Day) FilledCount() int {
	if d == nil {
		return 0
	}
	n := 0
	for _, v := range d.Meals {
		if !v.IsEmpty() {
			n++
		}
	}
	return n
}

// MergeSlot merges one incoming slot into an existing meals map without
// clobbering unrelated slots. Pure: the inputs are not mutated. The
// touched slot is replaced wholesale except for caller-owned optional
// fields, which are carried over from the existing value when the
// incoming one leaves them unset.
func MergeSlot(existing map[MealType]SlotValue, mt MealType, incoming SlotValue) map[MealType]SlotValue {
	merged := make(map[MealType]SlotValue, len(existing)+1)
	for k, v := range existing {
		merged[k] = v
	}

	if prev, ok := existing[mt]; ok {
		if incoming.Servings == nil {
			incoming.Servings = prev.Servings
		}
		if incoming.IngredientOverrides == nil {
			incoming.IngredientOverrides = prev.IngredientOverrides
		}
		if incoming.Infant == nil {
			incoming.Infant = prev.Infant
		}
	}

	merged[mt] = incoming
	return merged
}
