package login

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/memoriam-dev/memoriam/internal/auth"
	"github.com/memoriam-dev/memoriam/internal/config"
	"github.com/memoriam-dev/memoriam/internal/web/handler"
	"github.com/memoriam-dev/memoriam/internal/web/navigation"
	"github.com/memoriam-dev/memoriam/internal/web/session"
)

const (
	// Path is the path to the login page.
	Path = "/login"

	// TemplateName is the name of the login template.
	TemplateName = "login"
)

// Form represents the login form data.
type Form struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	provider *auth.LocalProvider
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.provider = auth.NewLocalProvider(db)

	// register routes
	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
	})

	return nil
}

// Get handles the login page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, "")
}

// Post handles the login form submission. A failed login renders the page
// inline with an error, status 200; a successful one establishes the
// session and redirects admins to the dashboard, everyone else home.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(Form)

	if err := c.BodyParser(form); err != nil {
		return s.render(c, ErrInvalidFormData.Error())
	}

	dbUser, err := s.provider.Authenticate(form.Username, form.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrUserNotFound) && !errors.Is(err, auth.ErrInvalidPassword) {
			log.Error().Err(err).Str("username", form.Username).Msg("login failed")

			return s.render(c, ErrInternalServerError.Error())
		}

		return s.render(c, ErrInvalidCredentials.Error())
	}

	sessionID := session.GenerateSessionID()

	userSession := &session.Data{
		User: *dbUser,
	}

	if err = userSession.Write(sessionID, s.cfg.Webserver.Session.ExpiryTime); err != nil {
		log.Error().Err(err).Msg("failed to write session")

		return s.render(c, ErrInternalServerError.Error())
	}

	// set login cookie
	cookieSettings := &fiber.Cookie{
		Name:     session.CookieName,
		Value:    sessionID,
		MaxAge:   int(s.cfg.Webserver.Session.ExpiryTime.Seconds()),
		Secure:   true,
		HTTPOnly: true,
		SameSite: "Lax",
	}

	if s.cfg.DevMode {
		cookieSettings.Secure = false
	}

	c.Cookie(cookieSettings)

	if dbUser.IsAdmin {
		return c.Redirect("/admin")
	}

	return c.Redirect("/")
}

func (s *Service) render(c *fiber.Ctx, errMsg string) error {
	nav := navigation.NewContext("Login", "login")

	return c.Render(TemplateName, fiber.Map{
		"Navigation": nav,
		"error":      errMsg,
	}, handler.BaseLayout)
}
