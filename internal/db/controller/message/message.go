// Package message provides CRUD operations for condolence messages.
package message

import (
	"errors"

	"gorm.io/gorm"

	"github.com/memoriam-dev/memoriam/internal/db/models"
)

const tributeQueryPattern = "tribute_id = ?"

var (
	// ErrMessageNotFound is returned when a message is not found.
	ErrMessageNotFound = errors.New("message not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Create inserts a new message for a tribute. The like counter starts at zero.
func Create(db *gorm.DB, tributeID uint64, author, content string) (*models.Message, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	msg := &models.Message{
		TributeID: tributeID,
		Author:    author,
		Content:   content,
	}

	result := db.Create(msg)
	if result.Error != nil {
		return nil, result.Error
	}

	return msg, nil
}

// GetByID retrieves a message by its ID.
func GetByID(db *gorm.DB, id uint64) (*models.Message, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var msg models.Message
	result := db.First(&msg, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, result.Error
	}

	return &msg, nil
}

// GetByTribute retrieves all messages attached to a tribute, oldest first.
func GetByTribute(db *gorm.DB, tributeID uint64) ([]models.Message, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var messages []models.Message
	result := db.Where(tributeQueryPattern, tributeID).Order("id ASC").Find(&messages)
	if result.Error != nil {
		return nil, result.Error
	}

	return messages, nil
}

// Like increments the like counter of a message by exactly one and returns
// the parent tribute ID for the redirect back to the detail page. The
// increment is a relative update expression executed by the database, so
// concurrent likes can never read a stale counter.
func Like(db *gorm.DB, id uint64) (tributeID uint64, err error) {
	if db == nil {
		return 0, ErrDBNil
	}

	msg, err := GetByID(db, id)
	if err != nil {
		return 0, err
	}

	result := db.Model(&models.Message{}).
		Where("id = ?", id).
		Update("likes", gorm.Expr("likes + ?", 1))
	if result.Error != nil {
		return 0, result.Error
	}

	return msg.TributeID, nil
}
