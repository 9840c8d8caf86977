package repository

import (
	"testing"

	"doodleboard/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
// Each test gets its own database, so tests can run in parallel.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Doodle{},
		&models.Comment{},
		&models.Like{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Password: "hashed"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestDoodle(t *testing.T, db *gorm.DB, userID uint, prompt string) *models.Doodle {
	t.Helper()
	doodle := &models.Doodle{
		UserID:    userID,
		Prompt:    prompt,
		DoodleURL: "uploads/doodle-1700000000000.png",
	}
	require.NoError(t, db.Create(doodle).Error)
	return doodle
}
