// Package dashboard provides the admin dashboard handler.
package dashboard

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/memoriam-dev/memoriam/internal/auth"
	"github.com/memoriam-dev/memoriam/internal/config"
	"github.com/memoriam-dev/memoriam/internal/db/controller/sitesettings"
	"github.com/memoriam-dev/memoriam/internal/db/controller/tribute"
	"github.com/memoriam-dev/memoriam/internal/db/models"
	"github.com/memoriam-dev/memoriam/internal/web/handler"
	"github.com/memoriam-dev/memoriam/internal/web/navigation"
)

const (
	// Path is the path to the admin dashboard.
	Path = "/admin"

	// TemplateName is the name of the dashboard template.
	TemplateName = "admin"
)

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init initializes the dashboard handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg

	app.Get(Path, auth.RequireAdmin(), s.Get)
}

// Get handles the dashboard page rendering: every tribute unfiltered, plus
// the hero settings for the edit form.
func (s *Service) Get(c *fiber.Ctx) error {
	tributes, err := tribute.GetAll(s.db)
	if err != nil {
		log.Error().Err(err).Msg("failed to list tributes")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load tributes")
	}

	settings, err := sitesettings.Get(s.db)
	if err != nil {
		if !errors.Is(err, sitesettings.ErrSettingsNotFound) {
			log.Error().Err(err).Msg("failed to load site settings")
		}

		settings = &models.SiteSettings{}
	}

	nav := navigation.NewContext("Admin", "admin").
		WithUser(true, true).
		AddBreadcrumb("Home", "/", false).
		AddBreadcrumb("Admin", Path, true)

	return c.Render(TemplateName, fiber.Map{
		"Navigation": nav,
		"Settings":   settings,
		"Tributes":   tributes,
	}, handler.BaseLayout)
}
