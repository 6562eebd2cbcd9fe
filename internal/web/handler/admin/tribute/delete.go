// Package tribute provides the admin-only tribute deletion handler.
package tribute

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/memoriam-dev/memoriam/internal/auth"
	"github.com/memoriam-dev/memoriam/internal/config"
	"github.com/memoriam-dev/memoriam/internal/db/controller/tribute"
	"github.com/memoriam-dev/memoriam/internal/web/handler"
)

// DeletePath is the path to the tribute deletion endpoint.
const DeletePath = "/tribute/:id/delete"

// Service is the admin tribute handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the admin tribute handler.
var Handler = Service{}

// Init initializes the admin tribute handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg

	app.Post(DeletePath, auth.RequireAdmin(), s.PostDelete)
}

// PostDelete removes a tribute and its messages in one transaction and
// redirects to the dashboard whether or not the tribute existed.
func (s *Service) PostDelete(c *fiber.Ctx) error {
	id, err := handler.ParseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid tribute id")
	}

	if err := tribute.Delete(s.db, id); err != nil {
		log.Error().Err(err).Uint64("tribute_id", id).Msg("failed to delete tribute")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to delete tribute")
	}

	return c.Redirect("/admin")
}
