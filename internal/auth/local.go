// Package auth provides local credential verification and the admin gate
// middleware for the web application.
package auth

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/memoriam-dev/memoriam/internal/db/controller/user"
	"github.com/memoriam-dev/memoriam/internal/db/models"
)

// LocalProvider handles local database authentication.
type LocalProvider struct {
	db *gorm.DB
}

// NewLocalProvider creates a new local authentication provider.
func NewLocalProvider(db *gorm.DB) *LocalProvider {
	return &LocalProvider{
		db: db,
	}
}

// Authenticate authenticates a user against the local database.
func (p *LocalProvider) Authenticate(username, password string) (*models.User, error) {
	dbUser, err := user.GetByUsername(p.db, username)
	if errors.Is(err, user.ErrUserNotFound) || errors.Is(err, user.ErrUsernameEmpty) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	// Verify password
	if !dbUser.VerifyPassword(password) {
		return nil, ErrInvalidPassword
	}

	return dbUser, nil
}

// CreateUser creates a new non-admin local user. The password is hashed
// before it touches the database.
func (p *LocalProvider) CreateUser(username, password string) (*models.User, error) {
	newUser, err := user.Create(p.db, username, password, false)
	if errors.Is(err, user.ErrUsernameTaken) {
		return nil, ErrUsernameTaken
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return newUser, nil
}
