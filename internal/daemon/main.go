// Package daemon wires configuration, database, sessions and the web
// service together and owns the startup sequencing: open the store, run
// migrations, seed, and only then begin accepting connections.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	sqlitestorage "github.com/gofiber/storage/sqlite3/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/memoriam-dev/memoriam/internal/config"
	"github.com/memoriam-dev/memoriam/internal/db/models"
	"github.com/memoriam-dev/memoriam/internal/logger"
	"github.com/memoriam-dev/memoriam/internal/web"
	"github.com/memoriam-dev/memoriam/internal/web/session"
)

// Daemon represents the main application daemon.
type Daemon struct {
	webService *web.Service
	cfg        *config.Config
}

// Start starts the Daemon's web service and blocks until it stops. The
// signal handler drains and shuts the listener down on SIGINT/SIGTERM.
func (d *Daemon) Start() error {
	go d.webService.WaitShutdown()

	return d.webService.Start(fmt.Sprintf(":%d", d.cfg.Webserver.Port))
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	if err := logger.Init(cfg.Log); err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(cfg.DB.Path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err = db.AutoMigrate(
		&models.User{},
		&models.Tribute{},
		&models.Message{},
		&models.SiteSettings{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err = seed(cfg, db); err != nil {
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	// uploads land under the public dir, make sure it exists before the
	// first multipart request arrives
	uploadDir := filepath.Join(cfg.Webserver.PublicDir, "uploads")
	if err = os.MkdirAll(uploadDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	// Initialize fiber session store backed by the same sqlite file family.
	sessionStorage := sqlitestorage.New(sqlitestorage.Config{
		Database: cfg.DB.Path,
		Table:    cfg.DB.SessionTable,
	})

	session.Init(sessionStorage)

	log.Info().
		Str("db", cfg.DB.Path).
		Str("public_dir", cfg.Webserver.PublicDir).
		Msg("daemon initialized")

	return &Daemon{
		webService: web.New(cfg, db),
		cfg:        cfg,
	}, nil
}
