package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	sessionCookie  = "msid"
	sessionIDLocal = "session_id"
)

// Session assigns every browser a stable session identifier via cookie. The
// identifier scopes the credential store, toast queue and activity feed; it
// carries no trust by itself.
func Session() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies(sessionCookie)
		if sid == "" {
			sid = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     sessionCookie,
				Value:    sid,
				Path:     "/",
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		c.Locals(sessionIDLocal, sid)
		return c.Next()
	}
}

// SessionID returns the request's session identifier, or "" when the session
// middleware did not run.
func SessionID(c *fiber.Ctx) string {
	sid, _ := c.Locals(sessionIDLocal).(string)
	return sid
}
