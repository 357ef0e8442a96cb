package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFamilyDinnerCandidate(t *testing.T) {
	assert.False(t, FamilyDinnerCandidate(candidate("Pan-seared rare steak")))
	assert.False(t, FamilyDinnerCandidate(candidate("Lamb kebab skewers")))
	assert.True(t, FamilyDinnerCandidate(candidate("Beef and vegetable stew")))
	assert.True(t, FamilyDinnerCandidate(candidate("Baked fish casserole")))
}

func TestFamilyDinnerScore(t *testing.T) {
	assert.Equal(t, -1, FamilyDinnerScore(candidate("Rare steak")))
	assert.Equal(t, 0, FamilyDinnerScore(candidate("Baked chicken")))
	assert.Equal(t, 1, FamilyDinnerScore(candidate("Beef stew")))
	assert.Equal(t, 3, FamilyDinnerScore(candidate("Braised meatball stew")), "brais + meatball + stew count as distinct markers")
}

func TestOrderForFamilyDinner(t *testing.T) {
	baked := candidate("Baked chicken")
	stew := candidate("Beef stew")
	casserole := candidate("Potato casserole")
	pool := []*Candidate{baked, stew, casserole}

	ordered := OrderForFamilyDinner(pool)

	require.Len(t, ordered, 3)
	// scored candidates first; equal scores keep pool order
	assert.Equal(t, stew.ID, ordered[0].ID)
	assert.Equal(t, casserole.ID, ordered[1].ID)
	assert.Equal(t, baked.ID, ordered[2].ID)

	// input untouched
	assert.Equal(t, baked.ID, pool[0].ID)
}

func TestAgeSafe(t *testing.T) {
	assert.False(t, AgeSafe(candidate("Spicy chicken wings"), 30), "under 36 months: no spicy")
	assert.True(t, AgeSafe(candidate("Spicy chicken wings"), 48))

	assert.False(t, AgeSafe(candidate("Trail mix with popcorn"), 20), "under 24 months: no choking hazards")
	assert.True(t, AgeSafe(candidate("Trail mix with popcorn"), 30))

	assert.False(t, AgeSafe(candidate("Honey glazed carrots"), 10), "first year: no honey")
	assert.True(t, AgeSafe(candidate("Honey glazed carrots"), 24))

	assert.True(t, AgeSafe(candidate("Vegetable puree with olive oil"), 8))
}

func TestInfantMode(t *testing.T) {
	assert.True(t, InfantAdaptable(candidate("Beef and vegetable stew")))
	assert.False(t, InfantAdaptable(candidate("Fried mushroom rice")))

	assert.Equal(t, "adapt", string(DecideInfantMode(candidate("Vegetable stew"))))
	assert.Equal(t, "alt", string(DecideInfantMode(candidate("Smoked salmon pasta"))))
}

func TestClassifyBreakfastBase(t *testing.T) {
	assert.Equal(t, BaseOatmeal, ClassifyBreakfastBase("Oatmeal with banana"))
	assert.Equal(t, BaseOatmeal, ClassifyBreakfastBase("Millet porridge"), "porridge buckets as oatmeal base")
	assert.Equal(t, BaseEggs, ClassifyBreakfastBase("Scrambled eggs on toast"), "egg marker wins before sandwich")
	assert.Equal(t, BaseCottage, ClassifyBreakfastBase("Cottage cheese bake"))
	assert.Equal(t, BaseYogurt, ClassifyBreakfastBase("Greek yogurt with granola"))
	assert.Equal(t, BasePancakes, ClassifyBreakfastBase("Banana pancakes"))
	assert.Equal(t, BaseOther, ClassifyBreakfastBase("Fruit salad"))
}

func TestIsBerryRecipe(t *testing.T) {
	assert.True(t, IsBerryRecipe(candidate("Blueberry smoothie")))
	assert.True(t, IsBerryRecipe(candidate("Porridge", func(c *Candidate) {
		c.Ingredients = []Ingredient{{Name: "raspberries", DisplayText: "a handful"}}
	})))
	assert.False(t, IsBerryRecipe(candidate("Chicken soup")))
}
