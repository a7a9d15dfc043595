package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// statusOf returns the status the client will see. The global error handler runs
// after middleware unwinds, so a returned error decides the code.
func statusOf(c *fiber.Ctx, err error) int {
	if err == nil {
		return c.Response().StatusCode()
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}
