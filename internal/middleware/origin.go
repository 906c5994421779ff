package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// OriginRequired rejects state-changing requests whose Origin header is
// not one of allowed. Safe methods pass through.
func OriginRequired(allowed []string) fiber.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[strings.TrimRight(o, "/")] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}

		origin := c.Get(fiber.HeaderOrigin)
		if _, ok := set[origin]; origin == "" || !ok {
			log.WithFields(log.Fields{
				"origin": origin,
				"method": c.Method(),
				"path":   c.Path(),
			}).Warn("Rejected request from unknown origin")
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Origem desconhecida",
			})
		}
		return c.Next()
	}
}
