package planner

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/mealsmith/v2/internal/domain/plan"
	"github.com/mealsmith/v2/internal/domain/recipe"
)

type HistoryTestSuite struct {
	suite.Suite
}

func (suite *HistoryTestSuite) TestSeedFromDays() {
	suite.Run("FilledSlots_ShouldBlockIDAndTitle", func() {
		// Arrange
		id := uuid.New()
		day := &plan.Day{
			UserID: uuid.New(),
			DayKey: "2026-08-24",
			Meals: map[plan.MealType]plan.SlotValue{
				plan.MealLunch: {RecipeID: id, Title: "Lentil Soup"},
			},
			UpdatedAt: time.Now(),
		}
		hist := NewHistory()

		// Act
		hist.SeedFromDays([]*plan.Day{day, nil})

		// Assert
		assert.True(suite.T(), hist.UsedID(id))
		assert.True(suite.T(), hist.UsedTitle("lentil soup"))
		assert.True(suite.T(), hist.UsedTitleForMeal(plan.MealLunch, "lentil soup"))
		assert.False(suite.T(), hist.UsedTitleForMeal(plan.MealDinner, "lentil soup"))
		assert.Zero(suite.T(), hist.PickCount(), "seeding is not picking")
	})

	suite.Run("EmptySlots_ShouldBeIgnored", func() {
		day := &plan.Day{
			DayKey: "2026-08-24",
			Meals: map[plan.MealType]plan.SlotValue{
				plan.MealBreakfast: {},
			},
		}
		hist := NewHistory()

		hist.SeedFromDays([]*plan.Day{day})

		assert.Equal(suite.T(), recipe.BreakfastBase(""), hist.LastBreakfastBase())
	})
}

func (suite *HistoryTestSuite) TestObservePick() {
	suite.Run("ShouldAdvancePacingCounters", func() {
		hist := NewHistory()
		berry := &recipe.Candidate{ID: uuid.New(), Title: "Berry yogurt bowl"}
		plain := &recipe.Candidate{ID: uuid.New(), Title: "Chicken soup"}

		hist.ObservePick(plan.MealBreakfast, berry)
		hist.ObservePick(plan.MealLunch, plain)

		assert.Equal(suite.T(), 2, hist.PickCount())
		assert.Equal(suite.T(), 1, hist.BerryCount())
		assert.True(suite.T(), hist.UsedID(berry.ID))
		assert.True(suite.T(), hist.UsedID(plain.ID))
	})

	suite.Run("BreakfastPick_ShouldUpdateLastBase", func() {
		hist := NewHistory()

		hist.ObservePick(plan.MealBreakfast, &recipe.Candidate{ID: uuid.New(), Title: "Oatmeal with pear"})
		assert.Equal(suite.T(), recipe.BaseOatmeal, hist.LastBreakfastBase())

		hist.ObservePick(plan.MealLunch, &recipe.Candidate{ID: uuid.New(), Title: "Omelette sandwich"})
		assert.Equal(suite.T(), recipe.BaseOatmeal, hist.LastBreakfastBase(), "non-breakfast picks leave the base alone")
	})
}

func (suite *HistoryTestSuite) TestManualExclusions() {
	hist := NewHistory()
	id := uuid.New()

	hist.AddID(id)
	hist.AddID(uuid.Nil)
	hist.AddTitleKey("beef stew")
	hist.AddTitleKey("")

	assert.True(suite.T(), hist.UsedID(id))
	assert.False(suite.T(), hist.UsedID(uuid.Nil))
	assert.True(suite.T(), hist.UsedTitle("beef stew"))
	assert.False(suite.T(), hist.UsedTitle(""))
	assert.Zero(suite.T(), hist.PickCount(), "manual exclusions do not count as picks")
}

func TestHistoryTestSuite(t *testing.T) {
	suite.Run(t, new(HistoryTestSuite))
}
