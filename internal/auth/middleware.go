package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/memoriam-dev/memoriam/internal/web/session"
)

// loginPath is the redirect target for requests failing the admin gate.
// Kept as a literal here so the middleware does not depend on the login
// handler package.
const loginPath = "/login"

// RequireAdmin creates Fiber middleware that admits the request only when
// the session holds a user with the admin flag set. Everyone else is
// silently redirected to the login page, there is no error body. The check
// consults only the session store and is stateless per request.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := session.CurrentUser(c)
		if !ok || !user.IsAdmin {
			return c.Redirect(loginPath)
		}

		return c.Next()
	}
}
