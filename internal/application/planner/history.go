package planner

import (
	"github.com/google/uuid"

	"github.com/mealsmith/v2/internal/domain/plan"
	"github.com/mealsmith/v2/internal/domain/recipe"
)

// History tracks what has already been used — by recipe id, by
// normalized title globally, and by normalized title per meal type —
// plus the breakfast bases and berry pacing counters. It is seeded
// from a lookback window of stored days and updated incrementally as
// picks are made, so later slots in the same run never repeat a dish.
type History struct {
	ids          map[uuid.UUID]struct{}
	titles       map[string]struct{}
	titlesByMeal map[plan.MealType]map[string]struct{}

	lastBreakfastBase recipe.BreakfastBase
	berryCount        int
	pickCount         int
}

// NewHistory returns an empty history
func NewHistory() *History {
	return &History{
		ids:          make(map[uuid.UUID]struct{}),
		titles:       make(map[string]struct{}),
		titlesByMeal: make(map[plan.MealType]map[string]struct{}),
	}
}

// UsedID reports whether the recipe id is already taken
func (h *History) UsedID(id uuid.UUID) bool {
	_, ok := h.ids[id]
	return ok
}

// UsedTitle reports whether the normalized title is taken globally
func (h *History) UsedTitle(key string) bool {
	if key == "" {
		return false
	}
	_, ok := h.titles[key]
	return ok
}

// UsedTitleForMeal reports whether the normalized title is taken for
// the given meal type. Per-meal sets let breakfast history exclude
// "oatmeal" without over-constraining other slots.
func (h *History) UsedTitleForMeal(mt plan.MealType, key string) bool {
	if key == "" {
		return false
	}
	_, ok := h.titlesByMeal[mt][key]
	return ok
}

// LastBreakfastBase is the base of the most recent breakfast pick
func (h *History) LastBreakfastBase() recipe.BreakfastBase {
	return h.lastBreakfastBase
}

// BerryCount returns how many berry recipes were picked so far
func (h *History) BerryCount() int {
	return h.berryCount
}

// PickCount returns how many slots were filled so far in this run
func (h *History) PickCount() int {
	return h.pickCount
}

// AddID marks a recipe id as used without counting it as a pick
func (h *History) AddID(id uuid.UUID) {
	if id != uuid.Nil {
		h.ids[id] = struct{}{}
	}
}

// AddTitleKey marks a normalized title as used globally
func (h *History) AddTitleKey(key string) {
	if key != "" {
		h.titles[key] = struct{}{}
	}
}

// observeSlot folds one slot value into the sets without touching the
// pacing counters. Used for seeding from stored days.
func (h *History) observeSlot(mt plan.MealType, id uuid.UUID, title string) {
	h.AddID(id)
	key := recipe.NormalizeTitleKey(title)
	h.AddTitleKey(key)
	if key != "" {
		if h.titlesByMeal[mt] == nil {
			h.titlesByMeal[mt] = make(map[string]struct{})
		}
		h.titlesByMeal[mt][key] = struct{}{}
	}
	if mt == plan.MealBreakfast {
		h.lastBreakfastBase = recipe.ClassifyBreakfastBase(title)
	}
}

// SeedFromDays folds every filled slot of the given stored days into
// the history sets. Call once per run before the day loop.
func (h *History) SeedFromDays(days []*plan.Day) {
	for _, d := range days {
		if d == nil {
			continue
		}
		for mt, slot := range d.Meals {
			if slot.IsEmpty() {
				continue
			}
			h.observeSlot(mt, slot.RecipeID, slot.Title)
		}
	}
}

// ObservePick folds a fresh pick into the sets and pacing counters.
// Must run before the next slot is filtered.
func (h *History) ObservePick(mt plan.MealType, c *recipe.Candidate) {
	h.observeSlot(mt, c.ID, c.Title)
	h.pickCount++
	if recipe.IsBerryRecipe(c) {
		h.berryCount++
	}
}
