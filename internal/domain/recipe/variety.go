package recipe

import "strings"

// BreakfastBase buckets breakfast dishes by their base so consecutive
// mornings vary: two different oatmeal titles still share the same base.
type BreakfastBase string

const (
	BaseOatmeal  BreakfastBase = "oatmeal"
	BaseEggs     BreakfastBase = "eggs"
	BaseCottage  BreakfastBase = "cottage"
	BaseYogurt   BreakfastBase = "yogurt"
	BaseSandwich BreakfastBase = "sandwich"
	BaseGrain    BreakfastBase = "grain"
	BasePancakes BreakfastBase = "pancakes"
	BaseOther    BreakfastBase = "other"
)

// breakfast base markers, checked in order of specificity
var breakfastBaseMarkers = []struct {
	base   BreakfastBase
	tokens []string
}{
	{BaseOatmeal, []string{"oat", "porridge"}},
	{BaseEggs, []string{"egg", "omelet", "omelette", "scrambled", "frittata"}},
	{BaseCottage, []string{"cottage", "curd", "cheesecake"}},
	{BaseYogurt, []string{"yogurt", "yoghurt", "granola"}},
	{BaseSandwich, []string{"sandwich", "toast", "wrap", "bagel"}},
	{BaseGrain, []string{"buckwheat", "rice", "millet", "semolina", "quinoa"}},
	{BasePancakes, []string{"pancake", "crepe", "fritter", "waffle"}},
}

// ClassifyBreakfastBase infers the breakfast base from a title
func ClassifyBreakfastBase(title string) BreakfastBase {
	t := strings.ToLower(title)
	for _, m := range breakfastBaseMarkers {
		if containsAny(t, m.tokens) {
			return m.base
		}
	}
	return BaseOther
}

// berryTokens identify berry dishes for the soft likes preference
var berryTokens = []string{
	"berry", "berries", "blueberr", "raspberr", "strawberr", "blackberr",
	"currant", "cranberr", "lingonberr",
}

// IsBerryRecipe reports whether the recipe text mentions berries
func IsBerryRecipe(c *Candidate) bool {
	return containsAny(c.SearchText(), berryTokens)
}
