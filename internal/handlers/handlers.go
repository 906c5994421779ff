// Package handlers exposes the services over HTTP with Fiber.
package handlers

import (
	"errors"
	"fmt"

	"benta/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// Guard is the middleware chain protecting state-changing routes.
type Guard []fiber.Handler

// Then returns the guard chain followed by h.
func (g Guard) Then(h fiber.Handler) []fiber.Handler {
	chain := make([]fiber.Handler, 0, len(g)+1)
	chain = append(chain, g...)
	return append(chain, h)
}

func invalidBody(c *fiber.Ctx, err error) error {
	log.Printf("Error parsing request body: %v", err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Corpo da requisição inválido",
		"error":   err.Error(),
	})
}

func validationFailed(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validação falhou",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validação falhou",
		"errors":  errorMessages,
	})
}

// parseBody decodes and validates the JSON body into dst, writing the 400
// response itself when it fails.
func parseBody(c *fiber.Ctx, v *validator.Validate, dst interface{}) (bool, error) {
	if err := c.BodyParser(dst); err != nil {
		return false, invalidBody(c, err)
	}
	if err := v.Struct(dst); err != nil {
		return false, validationFailed(c, err)
	}
	return true, nil
}

func paramID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("ID inválido: %q", c.Params("id")),
		})
	}
	return uint(id), nil
}

// storeFailed maps a service/repository error: not found is 404, anything
// else is 400 with the error in the message.
func storeFailed(c *fiber.Ctx, action, notFoundMessage string, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": notFoundMessage,
		})
	}
	log.Printf("Erro ao %s: %v", action, err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": fmt.Sprintf("Erro ao %s: %v", action, err),
	})
}
