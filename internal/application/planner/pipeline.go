package planner

import (
	"github.com/mealsmith/v2/internal/domain/allergen"
	"github.com/mealsmith/v2/internal/domain/member"
	"github.com/mealsmith/v2/internal/domain/plan"
	"github.com/mealsmith/v2/internal/domain/recipe"
)

// Pipeline is the ordered constraint filter applied to the candidate
// pool for one target. Construction resolves the target's age context
// and expands the allergy/dislike labels into blocked tokens once; the
// same pipeline then filters every slot of the run.
type Pipeline struct {
	ageCtx        member.AgeContext
	adultCtx      bool
	allergyTokens []string
	dislikeTokens []string
	familyMode    bool
}

// NewPipeline builds a filter pipeline for one constraint set
func NewPipeline(c member.Constraints, familyMode bool) *Pipeline {
	return &Pipeline{
		ageCtx:        member.ResolveAgeContext(c),
		adultCtx:      member.IsAdultContext(c),
		allergyTokens: allergen.BlockedTokens(c.Allergies),
		dislikeTokens: dislikeTokens(c.Dislikes),
		familyMode:    familyMode,
	}
}

// dislikeTokens tokenizes dislike labels plainly: unlike allergies,
// dislikes carry no alias dictionary.
func dislikeTokens(dislikes []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, d := range dislikes {
		for _, t := range allergen.Tokenize(d) {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

// Filter narrows the pool for one slot, cheapest predicates first.
// The surviving slice preserves pool order except in family-dinner
// mode, where the preference score reorders it. The pool itself is
// never mutated.
func (p *Pipeline) Filter(pool []*recipe.Candidate, slot plan.MealType, hist *History) []*recipe.Candidate {
	if hist == nil {
		hist = NewHistory()
	}
	var out []*recipe.Candidate
	for _, c := range pool {
		if hist.UsedID(c.ID) {
			continue
		}
		key := recipe.NormalizeTitleKey(c.Title)
		if hist.UsedTitle(key) || hist.UsedTitleForMeal(slot, key) {
			continue
		}
		if p.ageCtx.ApplyFilter {
			age := *p.ageCtx.AgeMonths
			if !c.FitsAge(age) || !recipe.AgeSafe(c, age) {
				continue
			}
		}
		if p.adultCtx && c.IsInfantOnly() {
			continue
		}
		if !recipe.MatchesMealType(c, slot) {
			continue
		}
		text := c.SearchText()
		if allergen.ContainsAny(text, p.allergyTokens) {
			continue
		}
		if allergen.ContainsAny(text, p.dislikeTokens) {
			continue
		}
		if !recipe.PassesSanity(c, slot) {
			continue
		}
		if p.familyMode && slot == plan.MealDinner && !recipe.FamilyDinnerCandidate(c) {
			continue
		}
		out = append(out, c)
	}
	if p.familyMode && slot == plan.MealDinner {
		out = recipe.OrderForFamilyDinner(out)
	}
	return out
}

// CountsWithoutHistory computes the survivor count per meal type
// against an empty exclusion set. The pre-check uses it to fast-fail a
// run before any recency lookups when every slot is already hopeless.
func (p *Pipeline) CountsWithoutHistory(pool []*recipe.Candidate) map[plan.MealType]int {
	empty := NewHistory()
	counts := make(map[plan.MealType]int, plan.SlotsPerDay)
	for _, mt := range plan.MealTypes() {
		counts[mt] = len(p.Filter(pool, mt, empty))
	}
	return counts
}

// AllEmpty reports whether every meal type has a zero survivor count
func AllEmpty(counts map[plan.MealType]int) bool {
	for _, mt := range plan.MealTypes() {
		if counts[mt] > 0 {
			return false
		}
	}
	return true
}
