package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"linkmono/internal/auth"
)

const (
	// SessionCookie carries the session token for browser requests.
	SessionCookie = "session_token"
	// ViewerLocalKey stores the signed-in viewer's login name.
	ViewerLocalKey = "viewer"
)

// Session resolves the viewer from a bearer token, falling back to the session
// cookie when the header is absent or does not verify. Requests without a valid
// token continue anonymously.
func Session(v *auth.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !v.Enabled() {
			return c.Next()
		}
		var candidates []string
		if h := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
			candidates = append(candidates, strings.TrimPrefix(h, "Bearer "))
		}
		candidates = append(candidates, c.Cookies(SessionCookie))

		for _, token := range candidates {
			if name, err := v.Username(token); err == nil {
				c.Locals(ViewerLocalKey, name)
				break
			}
		}
		return c.Next()
	}
}

// Viewer returns the signed-in viewer's login name, or "" for anonymous requests.
func Viewer(c *fiber.Ctx) string {
	name, _ := c.Locals(ViewerLocalKey).(string)
	return name
}
