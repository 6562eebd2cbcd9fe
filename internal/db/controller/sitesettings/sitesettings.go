// Package sitesettings provides access to the single-row hero banner record.
package sitesettings

import (
	"errors"

	"gorm.io/gorm"

	"github.com/memoriam-dev/memoriam/internal/db/models"
)

// SettingsRowID is the ID of the single logical settings row.
const SettingsRowID = 1

var (
	// ErrSettingsNotFound is returned when the settings row is missing.
	ErrSettingsNotFound = errors.New("site settings not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves the settings row.
func Get(db *gorm.DB) (*models.SiteSettings, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var s models.SiteSettings
	result := db.First(&s, SettingsRowID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingsNotFound
		}
		return nil, result.Error
	}

	return &s, nil
}

// Seed inserts the settings row with the given defaults if the table is
// empty. The check-then-insert is idempotent across restarts; it never
// creates a second row.
func Seed(db *gorm.DB, defaults models.SiteSettings) error {
	if db == nil {
		return ErrDBNil
	}

	var count int64
	if err := db.Model(&models.SiteSettings{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	defaults.ID = SettingsRowID

	return db.Create(&defaults).Error
}

// Update writes hero title, text and image URL to the settings row. When
// imageURL is empty the stored image URL is preserved; the read and the
// write run inside one transaction so a concurrent update cannot slip
// between them.
func Update(db *gorm.DB, heroTitle, heroText, imageURL string) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var current models.SiteSettings
		if err := tx.First(&current, SettingsRowID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSettingsNotFound
			}
			return err
		}

		if imageURL == "" {
			imageURL = current.HeroImageURL
		}

		return tx.Model(&models.SiteSettings{}).
			Where("id = ?", SettingsRowID).
			Updates(map[string]interface{}{
				"hero_title":     heroTitle,
				"hero_text":      heroText,
				"hero_image_url": imageURL,
			}).Error
	})
}
