package plan

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// SlotTestSuite provides a test suite for slot merge-write semantics
type SlotTestSuite struct {
	suite.Suite
}

func (suite *SlotTestSuite) TestMergeSlot() {
	suite.Run("UnrelatedSlots_ShouldSurviveUntouched", func() {
		// Arrange
		breakfast := SlotValue{RecipeID: uuid.New(), Title: "Oatmeal with banana", PlanSource: SourcePool}
		lunch := SlotValue{RecipeID: uuid.New(), Title: "Vegetable soup", PlanSource: SourcePool}
		existing := map[MealType]SlotValue{
			MealBreakfast: breakfast,
			MealLunch:     lunch,
		}
		incoming := SlotValue{RecipeID: uuid.New(), Title: "Beef stew", PlanSource: SourcePool}

		// Act
		merged := MergeSlot(existing, MealDinner, incoming)

		// Assert
		assert.Equal(suite.T(), breakfast, merged[MealBreakfast])
		assert.Equal(suite.T(), lunch, merged[MealLunch])
		assert.Equal(suite.T(), incoming, merged[MealDinner])
	})

	suite.Run("TouchedSlot_ShouldBeReplacedNotAppended", func() {
		// Arrange
		oldID := uuid.New()
		newID := uuid.New()
		existing := map[MealType]SlotValue{
			MealLunch: {RecipeID: oldID, Title: "Vegetable soup", PlanSource: SourcePool},
		}
		incoming := SlotValue{RecipeID: newID, Title: "Chicken soup", PlanSource: SourcePool}

		// Act
		merged := MergeSlot(existing, MealLunch, incoming)

		// Assert
		require.Len(suite.T(), merged, 1)
		assert.Equal(suite.T(), newID, merged[MealLunch].RecipeID)
		assert.Equal(suite.T(), "Chicken soup", merged[MealLunch].Title)
	})

	suite.Run("OptionalFields_ShouldCarryOverWhenIncomingLeavesThemUnset", func() {
		// Arrange
		servings := 3
		infant := &InfantAdaptation{MemberID: uuid.New(), Mode: InfantAdapt, Adaptation: "blend smooth"}
		overrides := []IngredientOverride{{Name: "salt", Action: "omit"}}
		existing := map[MealType]SlotValue{
			MealDinner: {
				RecipeID:            uuid.New(),
				Title:               "Beef stew",
				PlanSource:          SourcePool,
				Servings:            &servings,
				IngredientOverrides: overrides,
				Infant:              infant,
			},
		}
		incoming := SlotValue{RecipeID: uuid.New(), Title: "Fish casserole", PlanSource: SourcePool}

		// Act
		merged := MergeSlot(existing, MealDinner, incoming)

		// Assert
		got := merged[MealDinner]
		require.NotNil(suite.T(), got.Servings)
		assert.Equal(suite.T(), 3, *got.Servings)
		assert.Equal(suite.T(), overrides, got.IngredientOverrides)
		assert.Equal(suite.T(), infant, got.Infant)
	})

	suite.Run("OptionalFields_ShouldBeReplacedWhenIncomingSetsThem", func() {
		// Arrange
		oldServings, newServings := 3, 5
		existing := map[MealType]SlotValue{
			MealDinner: {RecipeID: uuid.New(), Title: "Beef stew", Servings: &oldServings},
		}
		incoming := SlotValue{RecipeID: uuid.New(), Title: "Fish casserole", Servings: &newServings}

		// Act
		merged := MergeSlot(existing, MealDinner, incoming)

		// Assert
		require.NotNil(suite.T(), merged[MealDinner].Servings)
		assert.Equal(suite.T(), 5, *merged[MealDinner].Servings)
	})

	suite.Run("Inputs_ShouldNotBeMutated", func() {
		// Arrange
		existing := map[MealType]SlotValue{
			MealSnack: {RecipeID: uuid.New(), Title: "Apple slices"},
		}
		before := existing[MealSnack]

		// Act
		_ = MergeSlot(existing, MealSnack, SlotValue{RecipeID: uuid.New(), Title: "Berry yogurt"})

		// Assert
		assert.Equal(suite.T(), before, existing[MealSnack])
		assert.Len(suite.T(), existing, 1)
	})
}

func (suite *SlotTestSuite) TestNormalize() {
	suite.Run("NilRecipeID_ShouldBeRejected", func() {
		_, err := SlotValue{Title: "Phantom dish"}.Normalize()
		assert.ErrorIs(suite.T(), err, ErrEmptySlotWrite)
	})

	suite.Run("BlankTitle_ShouldBeRejected", func() {
		_, err := SlotValue{RecipeID: uuid.New(), Title: "   "}.Normalize()
		assert.ErrorIs(suite.T(), err, ErrSlotTitleMissing)
	})

	suite.Run("Defaults_ShouldBeApplied", func() {
		// Arrange
		zero := 0
		raw := SlotValue{RecipeID: uuid.New(), Title: "  Beef stew  ", Servings: &zero}

		// Act
		got, err := raw.Normalize()

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Beef stew", got.Title)
		assert.Equal(suite.T(), SourcePool, got.PlanSource)
		assert.Nil(suite.T(), got.Servings)
	})
}

func TestSlotTestSuite(t *testing.T) {
	suite.Run(t, new(SlotTestSuite))
}
