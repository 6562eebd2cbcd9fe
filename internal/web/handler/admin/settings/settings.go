// Package settings provides the admin handler updating the hero banner.
package settings

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/memoriam-dev/memoriam/internal/auth"
	"github.com/memoriam-dev/memoriam/internal/config"
	"github.com/memoriam-dev/memoriam/internal/db/controller/sitesettings"
	"github.com/memoriam-dev/memoriam/internal/web/handler"
	"github.com/memoriam-dev/memoriam/internal/web/upload"
)

const (
	// Path is the path to the hero settings update endpoint.
	Path = "/admin/settings"

	// HeroImageField is the multipart field holding the optional hero image.
	HeroImageField = "heroImage"
)

// Form represents the hero settings form data.
type Form struct {
	HeroTitle string `form:"heroTitle" validate:"required,max=255"`
	HeroText  string `form:"heroText"`
}

// Service is the settings handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the settings handler.
var Handler = Service{}

// Init initializes the settings handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.validator = validator.New()

	app.Post(Path, auth.RequireAdmin(), s.Post)
}

// Post updates the hero banner. An uploaded image supersedes the stored
// image URL; without one the previous URL is preserved by the settings
// controller inside its transaction. All three fields are written.
func (s *Service) Post(c *fiber.Ctx) error {
	form := &Form{}
	if err := c.BodyParser(form); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid form data")
	}

	if err := s.validator.Struct(form); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Hero title is required")
	}

	imageURL, ok, err := upload.Save(c, HeroImageField, s.cfg.Webserver.PublicDir)
	if err != nil {
		log.Error().Err(err).Msg("failed to store hero image")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to store the uploaded image")
	}

	if !ok {
		imageURL = ""
	}

	if err := sitesettings.Update(s.db, form.HeroTitle, form.HeroText, imageURL); err != nil {
		log.Error().Err(err).Msg("failed to update site settings")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to update settings")
	}

	return c.Redirect("/admin")
}
