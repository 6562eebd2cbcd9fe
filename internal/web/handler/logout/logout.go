// Package logout provides the session teardown handler.
package logout

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/memoriam-dev/memoriam/internal/config"
	"github.com/memoriam-dev/memoriam/internal/web/handler"
	"github.com/memoriam-dev/memoriam/internal/web/session"
)

// Path is the path to the logout endpoint.
const Path = "/logout"

// Service is the logout handler service.
type Service struct {
	handler.Service
	cfg *config.Config
}

// Handler is the logout handler.
var Handler = Service{}

// Init initializes the logout handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config) {
	if app == nil || cfg == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg

	app.Get(Path, s.Logout)
	app.Post(Path, s.Logout)
}

// Logout destroys the current session unconditionally and redirects to the
// home page. Calling it with no active session still redirects.
func (s *Service) Logout(c *fiber.Ctx) error {
	if err := session.Destroy(c); err != nil {
		log.Error().Err(err).Msg("failed to delete session")
	}

	// Clear the session cookie
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    "",
		MaxAge:   -1,
		Secure:   !s.cfg.DevMode,
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.Redirect("/")
}
