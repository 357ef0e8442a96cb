package recipe

import (
	"strings"

	"github.com/mealsmith/v2/internal/domain/plan"
)

// Keyword tables for meal-type inference over title/description/
// ingredient text. Matching is substring containment on SearchText.

var soupKeywords = []string{
	"soup", "broth", "bouillon", "borscht", "chowder", "bisque", "minestrone", "gazpacho",
}

var breakfastMarkers = []string{
	"porridge", "oatmeal", "omelet", "omelette", "scrambled", "pancake", "crepe",
	"granola", "muesli", "toast", "cereal", "breakfast",
}

var snackMarkers = []string{
	"snack", "smoothie", "yogurt", "cookie", "fruit", "puree", "berr",
}

// sanityDenylist is the last defensive filter: text that must never be
// offered for a slot even when meal-type resolution mis-tagged it.
var sanityDenylist = map[plan.MealType][]string{
	plan.MealBreakfast: {"dessert", "cake", "ice cream", "candy", "meringue"},
	plan.MealSnack:     soupKeywords,
}

// ResolveMealType resolves a candidate's effective meal type with a
// single fallback order: declared field, then tag markers, then the
// keyword heuristic. Candidates with no resolvable type report ok
// false and are discarded by the pipeline.
func ResolveMealType(c *Candidate) (plan.MealType, bool) {
	if c.MealType != nil && c.MealType.IsValid() {
		return *c.MealType, true
	}
	if mt, ok := mealTypeFromTags(c.Tags); ok {
		return mt, true
	}
	return inferMealType(c.SearchText())
}

// MatchesMealType reports whether the candidate's resolved type equals
// the requested slot type.
func MatchesMealType(c *Candidate, slot plan.MealType) bool {
	mt, ok := ResolveMealType(c)
	return ok && mt == slot
}

// PassesSanity applies the per-slot denylist, e.g. a dessert is never
// breakfast and a soup is never a snack.
func PassesSanity(c *Candidate, slot plan.MealType) bool {
	return !containsAny(c.SearchText(), sanityDenylist[slot])
}

// mealTypeFromTags recognizes both the chat-prefixed and the bare
// meal-type tag forms.
func mealTypeFromTags(tags []string) (plan.MealType, bool) {
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		t = strings.TrimPrefix(t, "chat_")
		if mt, ok := plan.ParseMealType(t); ok {
			return mt, true
		}
	}
	return "", false
}

// inferMealType classifies by content only. Soups are lunch; breakfast
// and snack markers take their slots; any remaining savory text is
// dinner. Empty text has no resolvable type.
func inferMealType(searchText string) (plan.MealType, bool) {
	if strings.TrimSpace(searchText) == "" {
		return "", false
	}
	switch {
	case containsAny(searchText, soupKeywords):
		return plan.MealLunch, true
	case containsAny(searchText, breakfastMarkers):
		return plan.MealBreakfast, true
	case containsAny(searchText, snackMarkers):
		return plan.MealSnack, true
	default:
		return plan.MealDinner, true
	}
}

func containsAny(text string, tokens []string) bool {
	for _, t := range tokens {
		if t != "" && strings.Contains(text, t) {
			return true
		}
	}
	return false
}
