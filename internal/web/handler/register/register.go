// Package register provides the visitor registration handlers.
package register

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/memoriam-dev/memoriam/internal/auth"
	"github.com/memoriam-dev/memoriam/internal/config"
	"github.com/memoriam-dev/memoriam/internal/web/handler"
	"github.com/memoriam-dev/memoriam/internal/web/navigation"
)

const (
	// Path is the path to the registration page.
	Path = "/register"

	// TemplateName is the name of the registration template.
	TemplateName = "register"
)

// Form represents the registration form data.
type Form struct {
	Username        string `form:"username"         validate:"required,max=100"`
	Password        string `form:"password"         validate:"required"`
	ConfirmPassword string `form:"confirm_password" validate:"required"`
}

// Service is the registration handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	provider  *auth.LocalProvider
	validator *validator.Validate
}

// Handler is the registration handler.
var Handler = Service{}

// Init initializes the registration handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New(handler.ErrNilACDFatalLogMsg)
	}

	s.cfg = cfg
	s.provider = auth.NewLocalProvider(db)
	s.validator = validator.New()

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RouterRootPath, s.Get)
		router.Post(handler.RouterRootPath, s.Post)
	})

	return nil
}

// Get handles the registration page rendering.
func (s *Service) Get(c *fiber.Ctx) error {
	return s.render(c, &Form{}, "")
}

// Post handles the registration form submission. Validation failures and
// uniqueness violations render the form inline with the error and a retry
// link, status 200; success redirects to the login page.
func (s *Service) Post(c *fiber.Ctx) error {
	form := &Form{}
	if err := c.BodyParser(form); err != nil {
		log.Error().Err(err).Msg("failed to parse registration form")

		return s.render(c, form, "Invalid form data")
	}

	if err := s.validator.Struct(form); err != nil {
		return s.render(c, form, "Username and password are required")
	}

	// Confirmation is a case-sensitive exact match.
	if form.Password != form.ConfirmPassword {
		return s.render(c, form, "Passwords do not match")
	}

	if _, err := s.provider.CreateUser(form.Username, form.Password); err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			return s.render(c, form, "Username already taken")
		}

		log.Error().Err(err).Str("username", form.Username).Msg("failed to create user")

		return s.render(c, form, "Registration failed, please try again")
	}

	return c.Redirect("/login")
}

func (s *Service) render(c *fiber.Ctx, form *Form, errMsg string) error {
	nav := navigation.NewContext("Register", "register")

	return c.Render(TemplateName, fiber.Map{
		"Navigation": nav,
		"Form":       form,
		"error":      errMsg,
	}, handler.BaseLayout)
}
