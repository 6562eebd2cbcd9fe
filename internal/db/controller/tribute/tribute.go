// Package tribute provides CRUD operations for memorial tribute pages.
package tribute

import (
	"errors"

	"gorm.io/gorm"

	"github.com/memoriam-dev/memoriam/internal/db/models"
)

var (
	// ErrTributeNotFound is returned when a tribute is not found.
	ErrTributeNotFound = errors.New("tribute not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Create inserts a new tribute.
func Create(db *gorm.DB, t *models.Tribute) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Create(t).Error
}

// GetByID retrieves a tribute by its ID.
func GetByID(db *gorm.DB, id uint64) (*models.Tribute, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var t models.Tribute
	result := db.First(&t, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTributeNotFound
		}
		return nil, result.Error
	}

	return &t, nil
}

// GetAll retrieves all tributes ordered by descending ID, newest first.
func GetAll(db *gorm.DB) ([]models.Tribute, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var tributes []models.Tribute
	result := db.Order("id DESC").Find(&tributes)
	if result.Error != nil {
		return nil, result.Error
	}

	return tributes, nil
}

// Search retrieves tributes whose first or last name contains the given
// term, case-insensitively. SQLite LIKE is case-insensitive for ASCII by
// default; LOWER covers mixed-case stored names on other dialects too.
func Search(db *gorm.DB, name string) ([]models.Tribute, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if name == "" {
		return GetAll(db)
	}

	pattern := "%" + name + "%"

	var tributes []models.Tribute
	result := db.
		Where("LOWER(first_name) LIKE LOWER(?) OR LOWER(last_name) LIKE LOWER(?)", pattern, pattern).
		Order("id DESC").
		Find(&tributes)
	if result.Error != nil {
		return nil, result.Error
	}

	return tributes, nil
}

// Delete removes a tribute and all messages attached to it in a single
// transaction, so a failure between the two deletes cannot leave orphaned
// messages behind. Deleting a tribute that does not exist is not an error.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Tribute{}, id).Error; err != nil {
			return err
		}

		return tx.Where("tribute_id = ?", id).Delete(&models.Message{}).Error
	})
}
