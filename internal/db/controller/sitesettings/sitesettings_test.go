package sitesettings

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/memoriam-dev/memoriam/internal/db/models"
)

var testDefaults = models.SiteSettings{
	HeroTitle:    "In Loving Memory",
	HeroText:     "Honoring those who remain in our hearts.",
	HeroImageURL: "https://example.com/hero.jpg",
}

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.SiteSettings{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestGet(t *testing.T) {
	t.Run("nil database", func(t *testing.T) {
		s, err := Get(nil)
		require.ErrorIs(t, err, ErrDBNil)
		assert.Nil(t, s)
	})

	t.Run("missing row", func(t *testing.T) {
		db := setupTestDB(t)

		s, err := Get(db)
		require.ErrorIs(t, err, ErrSettingsNotFound)
		assert.Nil(t, s)
	})

	t.Run("returns the seeded row", func(t *testing.T) {
		db := setupTestDB(t)
		require.NoError(t, Seed(db, testDefaults))

		s, err := Get(db)
		require.NoError(t, err)
		assert.Equal(t, uint64(SettingsRowID), s.ID)
		assert.Equal(t, testDefaults.HeroTitle, s.HeroTitle)
		assert.Equal(t, testDefaults.HeroText, s.HeroText)
		assert.Equal(t, testDefaults.HeroImageURL, s.HeroImageURL)
	})
}

func TestSeed(t *testing.T) {
	t.Run("nil database", func(t *testing.T) {
		require.ErrorIs(t, Seed(nil, testDefaults), ErrDBNil)
	})

	t.Run("idempotent", func(t *testing.T) {
		db := setupTestDB(t)

		require.NoError(t, Seed(db, testDefaults))
		require.NoError(t, Update(db, "Changed", "Changed text", ""))

		// a second seed must not reset the row or add another one
		require.NoError(t, Seed(db, testDefaults))

		var count int64
		require.NoError(t, db.Model(&models.SiteSettings{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)

		s, err := Get(db)
		require.NoError(t, err)
		assert.Equal(t, "Changed", s.HeroTitle)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("nil database", func(t *testing.T) {
		require.ErrorIs(t, Update(nil, "a", "b", "c"), ErrDBNil)
	})

	t.Run("missing row", func(t *testing.T) {
		db := setupTestDB(t)

		require.ErrorIs(t, Update(db, "a", "b", "c"), ErrSettingsNotFound)
	})

	t.Run("writes all three fields", func(t *testing.T) {
		db := setupTestDB(t)
		require.NoError(t, Seed(db, testDefaults))

		require.NoError(t, Update(db, "New Title", "New text", "/uploads/new.jpg"))

		s, err := Get(db)
		require.NoError(t, err)
		assert.Equal(t, "New Title", s.HeroTitle)
		assert.Equal(t, "New text", s.HeroText)
		assert.Equal(t, "/uploads/new.jpg", s.HeroImageURL)
	})

	t.Run("empty image URL preserves the stored one", func(t *testing.T) {
		db := setupTestDB(t)
		require.NoError(t, Seed(db, testDefaults))

		require.NoError(t, Update(db, "New Title", "New text", ""))

		s, err := Get(db)
		require.NoError(t, err)
		assert.Equal(t, "New Title", s.HeroTitle)
		assert.Equal(t, testDefaults.HeroImageURL, s.HeroImageURL)
	})
}
