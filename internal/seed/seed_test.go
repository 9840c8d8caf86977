package seed

import (
	"testing"

	"doodleboard/internal/models"
	"doodleboard/internal/prompts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedDB(t *testing.T) *gorm.DB {
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

func newTestSeeder(t *testing.T, opts Options) (*Seeder, *gorm.DB) {
	t.Helper()
	db := setupSeedDB(t)
	rotator, err := prompts.Load("")
	require.NoError(t, err)
	return NewSeeder(db, rotator, opts), db
}

func TestSeeder_SeedUsers(t *testing.T) {
	s, db := newTestSeeder(t, Options{})

	users, err := s.SeedUsers(5)
	require.NoError(t, err)
	require.Len(t, users, 5)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(5), count)

	// Every demo user can log in with the shared password.
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(users[0].Password), []byte(DemoPassword)))
}

func TestSeeder_SeedGallery(t *testing.T) {
	dir := t.TempDir()
	s, db := newTestSeeder(t, Options{UploadDir: dir, SkipBcrypt: true})

	users, err := s.SeedUsers(4)
	require.NoError(t, err)

	doodles, err := s.SeedGallery(users, 10)
	require.NoError(t, err)
	require.Len(t, doodles, 10)

	var doodleCount int64
	require.NoError(t, db.Model(&models.Doodle{}).Count(&doodleCount).Error)
	assert.Equal(t, int64(10), doodleCount)

	for _, d := range doodles {
		assert.NotZero(t, d.UserID)
		assert.NotEmpty(t, d.Prompt)
		assert.Regexp(t, `^uploads/doodle-\d+\.png$`, d.DoodleURL)
	}

	// No duplicate likes even though the sprinkle loop may revisit pairs.
	var dup int64
	require.NoError(t, db.Raw(
		`SELECT COUNT(*) FROM (
			SELECT user_id, doodle_id, COUNT(*) AS n FROM likes
			GROUP BY user_id, doodle_id HAVING n > 1
		)`).Scan(&dup).Error)
	assert.Zero(t, dup)
}

func TestSeeder_ClearAll(t *testing.T) {
	s, db := newTestSeeder(t, Options{SkipBcrypt: true})

	users, err := s.SeedUsers(2)
	require.NoError(t, err)
	_, err = s.SeedGallery(users, 3)
	require.NoError(t, err)

	require.NoError(t, s.ClearAll())

	for _, model := range []any{&models.User{}, &models.Doodle{}, &models.Comment{}, &models.Like{}} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}
}
