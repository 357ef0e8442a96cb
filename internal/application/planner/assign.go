package planner

import (
	"strings"

	"github.com/google/uuid"

	"github.com/mealsmith/v2/internal/domain/member"
	"github.com/mealsmith/v2/internal/domain/plan"
	"github.com/mealsmith/v2/internal/domain/recipe"
)

// berriesLiked detects the soft berry preference from likes, falling
// back to preferences when likes are empty.
func berriesLiked(c member.Constraints) bool {
	source := c.Likes
	if len(source) == 0 {
		source = c.Preferences
	}
	joined := strings.ToLower(strings.Join(source, " "))
	return strings.Contains(joined, "berr")
}

// shouldFavorBerries paces berry picks toward the target ratio: with
// four slots and ratio 0.25 it aims at one berry slot, with eight at
// two.
func shouldFavorBerries(slotIndex, alreadyBerry int, targetRatio float64) bool {
	if targetRatio <= 0 {
		return false
	}
	desiredByNow := int(float64(slotIndex+1) * targetRatio)
	return alreadyBerry < desiredByNow
}

// preferStable partitions candidates so those matching pred come
// first, preserving relative order within both halves.
func preferStable(in []*recipe.Candidate, pred func(*recipe.Candidate) bool) []*recipe.Candidate {
	if len(in) < 2 {
		return in
	}
	preferred := make([]*recipe.Candidate, 0, len(in))
	var rest []*recipe.Candidate
	for _, c := range in {
		if pred(c) {
			preferred = append(preferred, c)
		} else {
			rest = append(rest, c)
		}
	}
	if len(preferred) == 0 {
		return in
	}
	return append(preferred, rest...)
}

// pickCandidate deterministically picks the first survivor after the
// soft preferences reorder it: breakfast-base variety first, then
// berry pacing. Soft means reorder only — a base repeat or non-berry
// pick still happens when it is the only survivor.
func pickCandidate(survivors []*recipe.Candidate, slot plan.MealType, hist *History, favorBerries bool) *recipe.Candidate {
	if len(survivors) == 0 {
		return nil
	}
	ordered := survivors
	if favorBerries {
		ordered = preferStable(ordered, recipe.IsBerryRecipe)
	}
	if slot == plan.MealBreakfast {
		if last := hist.LastBreakfastBase(); last != "" && last != recipe.BaseOther {
			ordered = preferStable(ordered, func(c *recipe.Candidate) bool {
				return recipe.ClassifyBreakfastBase(c.Title) != last
			})
		}
	}
	return ordered[0]
}

// pickInfantAlt finds an infant-compatible alternative recipe for a
// family slot: same meal type, fits the infant age range, adaptable
// text, and not the dish being served to the table.
func pickInfantAlt(pool []*recipe.Candidate, slot plan.MealType, infantAgeMonths int, exclude uuid.UUID) *recipe.Candidate {
	for _, c := range pool {
		if c.ID == exclude {
			continue
		}
		if !recipe.MatchesMealType(c, slot) {
			continue
		}
		if !c.FitsAge(infantAgeMonths) {
			continue
		}
		if !recipe.InfantAdaptable(c) {
			continue
		}
		return c
	}
	return nil
}

// infantSlot builds the infant sub-record for a family slot pick
func infantSlot(pick *recipe.Candidate, slot plan.MealType, infant *member.Member, pool []*recipe.Candidate) *plan.InfantAdaptation {
	if infant == nil || infant.AgeMonths == nil {
		return nil
	}
	mode := recipe.DecideInfantMode(pick)
	if mode == plan.InfantAlt {
		if alt := pickInfantAlt(pool, slot, *infant.AgeMonths, pick.ID); alt != nil {
			altID := alt.ID
			return &plan.InfantAdaptation{MemberID: infant.ID, Mode: plan.InfantAlt, AltRecipeID: &altID}
		}
		// no separate dish available; fall back to adapting the shared one
	}
	return &plan.InfantAdaptation{MemberID: infant.ID, Mode: plan.InfantAdapt, Adaptation: recipe.InfantAdaptationText}
}
