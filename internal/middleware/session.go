package middleware

import (
	"errors"

	"benta/internal/models"
	"benta/internal/services"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

const (
	localsUser    = "user"
	localsSession = "session"
)

// SessionRequired is a Fiber middleware that only lets requests with a
// live session through. Any failure, including storage errors, is a 401.
func SessionRequired(authService *services.AuthService, transport SessionTransport) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := transport.Token(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Não autorizado",
			})
		}

		session, user, err := authService.ValidateSessionToken(token)
		if err != nil {
			if !errors.Is(err, services.ErrNoSession) {
				log.WithError(err).Error("Session validation failed")
			}
			transport.ClearSessionCookie(c)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Não autorizado",
			})
		}

		// Store the session owner in Fiber context for subsequent handlers
		c.Locals(localsUser, user)
		c.Locals(localsSession, session)

		return c.Next()
	}
}

// CurrentUser returns the user stored by SessionRequired, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(localsUser).(*models.User)
	return user
}

// CurrentSession returns the session stored by SessionRequired, or nil.
func CurrentSession(c *fiber.Ctx) *models.Session {
	session, _ := c.Locals(localsSession).(*models.Session)
	return session
}
