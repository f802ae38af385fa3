package middleware

import (
	"errors"

	"procedures-search-backend/search/models"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler renders framework errors (404, 405, body limit, recovered
// panics) in the same {"detail": ...} shape as handler errors.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(models.ErrorResponse{Detail: err.Error()})
}
