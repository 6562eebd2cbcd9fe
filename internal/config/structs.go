package config

import (
	"time"

	"github.com/memoriam-dev/memoriam/internal/logger"
)

// Session settings.
type Session struct {
	ExpiryTime time.Duration
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Admin     Admin
	Site      Site
	Webserver Webserver
}

// DB holds the database configuration settings.
type DB struct {
	// Path is the SQLite database file path.
	Path string

	// SessionTable is the table used by the session storage backend.
	SessionTable string
}

// Admin holds the seed credentials for the administrator account.
// The account is created on first start when no users exist; registration
// through the web form always creates non-admin users.
type Admin struct {
	Username string
	Password string
}

// Site holds content defaults for the public pages.
type Site struct {
	// PlaceholderPhotoURL is used for tributes created without a photo.
	PlaceholderPhotoURL string
}

// Webserver implement webserver settings.
type Webserver struct {
	BrowseStatic bool    // enable static file browsing (for development purposes only)
	Domain       string  // domain name for the webserver
	Port         int     // listening port for the webserver
	ShutDownTime int     // wait time for shutdown
	URL          string  // base url for the webserver
	PublicDir    string  // filesystem directory holding uploaded files
	Session      Session // session settings
}
