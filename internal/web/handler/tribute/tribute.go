// Package tribute provides the public tribute handlers: the creation form
// and the detail page with its condolence messages.
package tribute

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/memoriam-dev/memoriam/internal/config"
	"github.com/memoriam-dev/memoriam/internal/db/controller/message"
	"github.com/memoriam-dev/memoriam/internal/db/controller/tribute"
	"github.com/memoriam-dev/memoriam/internal/db/models"
	"github.com/memoriam-dev/memoriam/internal/web/handler"
	"github.com/memoriam-dev/memoriam/internal/web/navigation"
	"github.com/memoriam-dev/memoriam/internal/web/session"
	"github.com/memoriam-dev/memoriam/internal/web/upload"
)

const (
	// CreatePath is the path to the tribute creation form.
	CreatePath = "/create"

	// DetailPath is the path to a tribute detail page.
	DetailPath = "/tribute/:id"

	// CreateTemplateName is the name of the creation form template.
	CreateTemplateName = "create"

	// DetailTemplateName is the name of the detail page template.
	DetailTemplateName = "tribute"

	// PhotoField is the multipart field holding the optional tribute photo.
	PhotoField = "photo"
)

// Form represents the tribute creation form data.
type Form struct {
	FirstName   string `form:"firstName"   validate:"required,max=100"`
	LastName    string `form:"lastName"    validate:"required,max=100"`
	Bio         string `form:"bio"`
	FuneralHome string `form:"funeralHome" validate:"max=255"`
}

// Service is the tribute handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the tribute handler.
var Handler = Service{}

// Init initializes the tribute handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.validator = validator.New()

	// Tribute creation requires no authentication, any visitor may create one.
	app.Get(CreatePath, s.GetCreate)
	app.Post(CreatePath, s.PostCreate)
	app.Get(DetailPath, s.GetDetail)
}

// GetCreate handles the creation form rendering.
func (s *Service) GetCreate(c *fiber.Ctx) error {
	return s.renderCreate(c, &Form{}, "")
}

// PostCreate handles the tribute creation form submission, including the
// optional photo upload. Without a photo the configured placeholder URL is
// recorded.
func (s *Service) PostCreate(c *fiber.Ctx) error {
	form := &Form{}
	if err := c.BodyParser(form); err != nil {
		log.Error().Err(err).Msg("failed to parse tribute form")

		return s.renderCreate(c, form, "Invalid form data")
	}

	if err := s.validator.Struct(form); err != nil {
		return s.renderCreate(c, form, "First and last name are required")
	}

	photo, ok, err := upload.Save(c, PhotoField, s.cfg.Webserver.PublicDir)
	if err != nil {
		log.Error().Err(err).Msg("failed to store tribute photo")

		return s.renderCreate(c, form, "Failed to store the uploaded photo")
	}

	if !ok {
		photo = s.cfg.Site.PlaceholderPhotoURL
	}

	t := &models.Tribute{
		FirstName:   form.FirstName,
		LastName:    form.LastName,
		Bio:         form.Bio,
		Photo:       photo,
		FuneralHome: form.FuneralHome,
	}

	if err := tribute.Create(s.db, t); err != nil {
		log.Error().Err(err).Msg("failed to create tribute")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to create tribute")
	}

	return c.Redirect("/")
}

// GetDetail handles the tribute detail page with its messages. A malformed
// id is rejected with 400 before any store query; an unknown one yields an
// explicit 404 rather than an undefined template value.
func (s *Service) GetDetail(c *fiber.Ctx) error {
	id, err := handler.ParseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid tribute id")
	}

	t, err := tribute.GetByID(s.db, id)
	if err != nil {
		if errors.Is(err, tribute.ErrTributeNotFound) {
			return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{
				"Navigation": navigation.NewContext("Not Found", ""),
				"What":       "tribute",
			}, handler.BaseLayout)
		}

		log.Error().Err(err).Uint64("tribute_id", id).Msg("failed to load tribute")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load tribute")
	}

	messages, err := message.GetByTribute(s.db, id)
	if err != nil {
		log.Error().Err(err).Uint64("tribute_id", id).Msg("failed to load messages")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to load messages")
	}

	user, loggedIn := session.CurrentUser(c)

	nav := navigation.NewContext(t.FirstName+" "+t.LastName, "tribute").
		WithUser(loggedIn, user.IsAdmin).
		AddBreadcrumb("Home", "/", false).
		AddBreadcrumb(t.FirstName+" "+t.LastName, c.Path(), true)

	return c.Render(DetailTemplateName, fiber.Map{
		"Navigation": nav,
		"Tribute":    t,
		"Messages":   messages,
	}, handler.BaseLayout)
}

func (s *Service) renderCreate(c *fiber.Ctx, form *Form, errMsg string) error {
	user, loggedIn := session.CurrentUser(c)

	nav := navigation.NewContext("Create Tribute", "create").
		WithUser(loggedIn, user.IsAdmin)

	return c.Render(CreateTemplateName, fiber.Map{
		"Navigation": nav,
		"Form":       form,
		"error":      errMsg,
	}, handler.BaseLayout)
}
