// Package home provides the handler for the public landing page with the
// hero banner and the tribute list/search.
package home

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/memoriam-dev/memoriam/internal/config"
	"github.com/memoriam-dev/memoriam/internal/db/controller/sitesettings"
	"github.com/memoriam-dev/memoriam/internal/db/controller/tribute"
	"github.com/memoriam-dev/memoriam/internal/db/models"
	"github.com/memoriam-dev/memoriam/internal/web/handler"
	"github.com/memoriam-dev/memoriam/internal/web/navigation"
	"github.com/memoriam-dev/memoriam/internal/web/session"
)

const (
	// Path is the path to the home page.
	Path = handler.RootPath

	// TemplateName is the name of the home template.
	TemplateName = "home"
)

// Service is the home handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the home handler.
var Handler = Service{}

// Init initializes the home handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg

	app.Get(Path, s.Get)
}

// Get handles the home page: all tributes newest first, or a
// case-insensitive substring search on first or last name when the `name`
// query parameter is present.
func (s *Service) Get(c *fiber.Ctx) error {
	searchQuery := c.Query("name", "")

	var (
		tributes []models.Tribute
		err      error
	)

	if searchQuery == "" {
		tributes, err = tribute.GetAll(s.db)
	} else {
		tributes, err = tribute.Search(s.db, searchQuery)
	}

	if err != nil {
		log.Error().Err(err).Str("search", searchQuery).Msg("failed to list tributes")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load tributes")
	}

	// A missing settings row renders with zero values rather than failing
	// the whole page.
	settings, err := sitesettings.Get(s.db)
	if err != nil {
		if !errors.Is(err, sitesettings.ErrSettingsNotFound) {
			log.Error().Err(err).Msg("failed to load site settings")
		}

		settings = &models.SiteSettings{}
	}

	user, loggedIn := session.CurrentUser(c)

	nav := navigation.NewContext(s.cfg.Title, "home").
		WithUser(loggedIn, user.IsAdmin)

	return c.Render(TemplateName, fiber.Map{
		"Navigation":  nav,
		"Settings":    settings,
		"Tributes":    tributes,
		"SearchQuery": searchQuery,
	}, handler.BaseLayout)
}
