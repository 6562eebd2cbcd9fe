// Package session manages the server-side session state keyed by the
// opaque cookie-backed session identifier.
package session

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/storage"

	"github.com/memoriam-dev/memoriam/internal/db/models"
	"github.com/memoriam-dev/memoriam/internal/uniuri"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

// sessionIDLen is the length of a generated session identifier,
// 48 chars over 62 symbols is well past 256 bits of entropy.
const sessionIDLen = 48

// Store is the global session store instance.
var Store *session.Store

// Data represents the session data structure. It holds a transient copy of
// the authenticated user row; it is not invalidated when the row changes.
type Data struct {
	User models.User
}

// Write writes the session data for the given session ID with an expiration duration.
func (s *Data) Write(sessionID string, exp time.Duration) error {
	out, err := json.Marshal(s)
	if err != nil {
		return err
	}

	return Store.Storage.Set(sessionID, out, exp)
}

// Read reads the session data for the given session ID.
func (s *Data) Read(sessionID string) error {
	byteData, err := Store.Storage.Get(sessionID)
	if err != nil {
		return err
	}

	return json.Unmarshal(byteData, s)
}

// Init initializes the session store with the provided storage backend.
func Init(storage storage.Storage) {
	if storage == nil {
		panic("storage is nil")
	}

	Store = session.New(session.Config{
		Storage: storage,
	})
}

// GenerateSessionID generates a new secure random session ID.
func GenerateSessionID() string {
	return uniuri.NewLen(sessionIDLen)
}

// CurrentUser returns the user bound to the request's session cookie, if
// any. The second return value is false for unauthenticated requests.
func CurrentUser(c *fiber.Ctx) (models.User, bool) {
	sessionID := c.Cookies(CookieName)
	if sessionID == "" {
		return models.User{}, false
	}

	data := new(Data)
	if err := data.Read(sessionID); err != nil {
		return models.User{}, false
	}

	if data.User.ID == 0 {
		return models.User{}, false
	}

	return data.User, true
}

// Destroy removes the session bound to the request, if any. It is
// idempotent: destroying an absent session is not an error.
func Destroy(c *fiber.Ctx) error {
	sessionID := c.Cookies(CookieName)
	if sessionID == "" {
		return nil
	}

	return Store.Storage.Delete(sessionID)
}
