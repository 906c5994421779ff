package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HandlePing answers the keep-alive ping.
func HandlePing(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}
