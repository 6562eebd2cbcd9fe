// Package message provides the condolence message handlers: leaving a
// message on a tribute and liking an existing message.
package message

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/memoriam-dev/memoriam/internal/config"
	"github.com/memoriam-dev/memoriam/internal/db/controller/message"
	"github.com/memoriam-dev/memoriam/internal/web/handler"
)

const (
	// CreatePath is the path for adding a message to a tribute.
	CreatePath = "/tribute/:id/message"

	// LikePath is the path for liking a message.
	LikePath = "/message/:id/like"
)

// Form represents the message creation form data.
type Form struct {
	Author  string `form:"author"  validate:"required,max=100"`
	Content string `form:"content" validate:"required"`
}

// Service is the message handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Handler is the message handler.
var Handler = Service{}

// Init initializes the message handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.db = db
	s.cfg = cfg
	s.validator = validator.New()

	// No authentication required for either operation.
	app.Post(CreatePath, s.PostCreate)
	app.Post(LikePath, s.PostLike)
}

// PostCreate inserts a new message with a zero like counter and redirects
// back to the tribute detail page.
func (s *Service) PostCreate(c *fiber.Ctx) error {
	tributeID, err := handler.ParseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid tribute id")
	}

	form := &Form{}
	if err := c.BodyParser(form); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid form data")
	}

	if err := s.validator.Struct(form); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Author and message are required")
	}

	if _, err := message.Create(s.db, tributeID, form.Author, form.Content); err != nil {
		log.Error().Err(err).Uint64("tribute_id", tributeID).Msg("failed to create message")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to save message")
	}

	return c.Redirect(fmt.Sprintf("/tribute/%d", tributeID))
}

// PostLike increments the like counter of a message by exactly one and
// redirects to the parent tribute's detail page. Liking an unknown message
// id yields an explicit 404 instead of an undefined redirect target.
func (s *Service) PostLike(c *fiber.Ctx) error {
	id, err := handler.ParseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Invalid message id")
	}

	tributeID, err := message.Like(s.db, id)
	if err != nil {
		if errors.Is(err, message.ErrMessageNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("Message not found")
		}

		log.Error().Err(err).Uint64("message_id", id).Msg("failed to like message")

		return c.Status(fiber.StatusInternalServerError).SendString("Failed to like message")
	}

	return c.Redirect(fmt.Sprintf("/tribute/%d", tributeID))
}
