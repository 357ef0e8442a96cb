// Package sqlite provides SQLite database setup and configuration
package sqlite

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	gormModels "github.com/mealsmith/v2/internal/infrastructure/persistence/gorm"
)

// SetupDatabase creates and configures the SQLite database
func SetupDatabase(dbPath string, logLevel logger.LogLevel) (*gorm.DB, error) {
	// Use in-memory database if no path provided
	if dbPath == "" {
		dbPath = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Run auto-migration
	err = db.AutoMigrate(
		&gormModels.RecipeModel{},
		&gormModels.PlanDayModel{},
		&gormModels.JobModel{},
		&gormModels.MemberModel{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// SeedDatabase populates the database with a demo household and a
// small family-level recipe pool
func SeedDatabase(db *gorm.DB) error {
	// Check if data already exists
	var memberCount int64
	db.Model(&gormModels.MemberModel{}).Count(&memberCount)
	if memberCount > 0 {
		return nil // Already seeded
	}

	demoUser := uuid.MustParse("0b34a8f2-3f4f-4f43-a6c1-6a19f5a0d101")
	infantAge := 9
	childAge := 48

	demoMembers := []gormModels.MemberModel{
		{
			UserID: demoUser,
			Name:   "Alex",
			Type:   "adult",
			Likes:  []string{"berries", "fish"},
		},
		{
			UserID:    demoUser,
			Name:      "Sam",
			AgeMonths: &childAge,
			Type:      "child",
			Dislikes:  []string{"broccoli"},
		},
		{
			UserID:    demoUser,
			Name:      "Noa",
			AgeMonths: &infantAge,
			Type:      "child",
			Allergies: []string{"cow milk protein"},
		},
	}
	for i := range demoMembers {
		if err := db.Create(&demoMembers[i]).Error; err != nil {
			return fmt.Errorf("failed to create demo member: %w", err)
		}
	}

	breakfast := "breakfast"
	lunch := "lunch"
	snack := "snack"
	dinner := "dinner"

	demoRecipes := []gormModels.RecipeModel{
		{
			UserID:      demoUser,
			Title:       "Oatmeal with banana",
			Description: "Slow-cooked oats with mashed banana",
			MealType:    &breakfast,
			Source:      "seed",
			Ingredients: gormModels.IngredientList{
				{Name: "oats", DisplayText: "1 cup rolled oats"},
				{Name: "banana", DisplayText: "1 ripe banana"},
			},
		},
		{
			UserID:      demoUser,
			Title:       "Scrambled eggs on toast",
			Description: "Soft scrambled eggs with buttered toast",
			MealType:    &breakfast,
			Source:      "seed",
			Ingredients: gormModels.IngredientList{
				{Name: "eggs", DisplayText: "3 eggs"},
				{Name: "bread", DisplayText: "2 slices"},
			},
		},
		{
			UserID:      demoUser,
			Title:       "Chicken noodle soup",
			Description: "Light broth with chicken and egg noodles",
			MealType:    &lunch,
			Source:      "seed",
			Ingredients: gormModels.IngredientList{
				{Name: "chicken", DisplayText: "300 g chicken"},
				{Name: "noodles", DisplayText: "100 g egg noodles"},
			},
		},
		{
			UserID:      demoUser,
			Title:       "Vegetable minestrone",
			Description: "Tomato-based vegetable soup with beans",
			MealType:    &lunch,
			Source:      "seed",
			Ingredients: gormModels.IngredientList{
				{Name: "beans", DisplayText: "1 can white beans"},
				{Name: "tomato", DisplayText: "2 tomatoes"},
			},
		},
		{
			UserID:   demoUser,
			Title:    "Apple slices with sunflower butter",
			MealType: &snack,
			Source:   "seed",
			Ingredients: gormModels.IngredientList{
				{Name: "apple", DisplayText: "1 apple"},
			},
		},
		{
			UserID:   demoUser,
			Title:    "Berry yogurt cup",
			MealType: &snack,
			Source:   "seed",
			Ingredients: gormModels.IngredientList{
				{Name: "yogurt", DisplayText: "150 g yogurt"},
				{Name: "blueberries", DisplayText: "a handful"},
			},
		},
		{
			UserID:      demoUser,
			Title:       "Beef and vegetable stew",
			Description: "Slow braised beef with root vegetables",
			MealType:    &dinner,
			Source:      "seed",
			Ingredients: gormModels.IngredientList{
				{Name: "beef", DisplayText: "500 g stewing beef"},
				{Name: "carrot", DisplayText: "3 carrots"},
			},
		},
		{
			UserID:      demoUser,
			Title:       "Baked salmon with rice",
			Description: "Oven-baked salmon fillet over steamed rice",
			MealType:    &dinner,
			Source:      "seed",
			Ingredients: gormModels.IngredientList{
				{Name: "salmon", DisplayText: "2 fillets"},
				{Name: "rice", DisplayText: "1 cup rice"},
			},
		},
	}
	for i := range demoRecipes {
		if err := db.Create(&demoRecipes[i]).Error; err != nil {
			return fmt.Errorf("failed to create demo recipe: %w", err)
		}
	}

	return nil
}
