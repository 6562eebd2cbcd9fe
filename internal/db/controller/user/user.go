// Package user provides CRUD operations for visitor accounts.
package user

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/memoriam-dev/memoriam/internal/db/models"
)

const usernameQueryPattern = "username = ?"

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameEmpty is returned when attempting to create a user with an empty username.
	ErrUsernameEmpty = errors.New("username cannot be empty")
	// ErrUsernameTaken is returned when the username already exists.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetByUsername retrieves a user by username.
func GetByUsername(db *gorm.DB, username string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if username == "" {
		return nil, ErrUsernameEmpty
	}

	var user models.User
	result := db.Where(usernameQueryPattern, username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}

	return &user, nil
}

// GetByID retrieves a user by ID.
func GetByID(db *gorm.DB, id uint64) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var user models.User
	result := db.First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, result.Error
	}

	return &user, nil
}

// Create creates a new user with a hashed password. The admin flag is
// whatever the caller passes; the registration handler always passes false.
func Create(db *gorm.DB, username, password string, isAdmin bool) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if username == "" {
		return nil, ErrUsernameEmpty
	}

	user := &models.User{
		Username: username,
		Password: models.HashPassword(password),
		IsAdmin:  isAdmin,
	}

	result := db.Create(user)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return nil, ErrUsernameTaken
		}
		return nil, result.Error
	}

	return user, nil
}

// Count returns the number of users.
func Count(db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var count int64
	result := db.Model(&models.User{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// isUniqueViolation reports whether err is a unique constraint violation.
// gorm exposes ErrDuplicatedKey only for dialects with a translator, the
// sqlite driver surfaces the raw constraint message instead.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	return strings.Contains(strings.ToLower(err.Error()), "unique")
}
