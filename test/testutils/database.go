// Package testutils provides common testing utilities and infrastructure setup
package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	gormlib "gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	persistence "github.com/mealsmith/v2/internal/infrastructure/persistence/gorm"
)

// SetupTestDatabase opens an in-memory SQLite database with the full
// schema migrated. The handle is closed when the test finishes.
func SetupTestDatabase(t *testing.T) *gormlib.DB {
	t.Helper()

	db, err := gormlib.Open(sqlite.Open(":memory:"), &gormlib.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&persistence.RecipeModel{},
		&persistence.PlanDayModel{},
		&persistence.JobModel{},
		&persistence.MemberModel{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}
