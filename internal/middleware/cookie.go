package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "sessionToken"

// SessionTransport describes how the session token travels between the
// client and the API.
type SessionTransport struct {
	// CrossSite sets SameSite=None; Secure. Otherwise SameSite=Lax without Secure.
	CrossSite bool
	// Bearer accepts "Authorization: Bearer <token>" when no cookie is sent.
	Bearer bool
}

func (t SessionTransport) cookie(value string, expires time.Time) *fiber.Cookie {
	cookie := &fiber.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   false,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if t.CrossSite {
		cookie.Secure = true
		cookie.SameSite = fiber.CookieSameSiteNoneMode
	}
	return cookie
}

// SetSessionCookie hands token to the client until expires.
func (t SessionTransport) SetSessionCookie(c *fiber.Ctx, token string, expires time.Time) {
	c.Cookie(t.cookie(token, expires))
}

// ClearSessionCookie overwrites the cookie with an already expired one
// carrying the same attributes.
func (t SessionTransport) ClearSessionCookie(c *fiber.Ctx) {
	c.Cookie(t.cookie("", time.Unix(0, 0)))
}

// Token extracts the session token from the cookie, falling back to the
// bearer header when enabled.
func (t SessionTransport) Token(c *fiber.Ctx) string {
	if token := c.Cookies(SessionCookieName); token != "" {
		return token
	}
	if !t.Bearer {
		return ""
	}
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
