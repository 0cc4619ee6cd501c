// Package response provides HTTP response helpers for the fiber handlers.
package response

import (
	"github.com/gofiber/fiber/v2"

	domain "payloow/internal/errors"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

func Unauthorized(c *fiber.Ctx) error {
	return Error(c, fiber.StatusUnauthorized, "Unauthorized")
}

// Accepted acknowledges a request whose outcome is not yet known. The
// body carries no error key: the request was not rejected, it is
// awaiting settlement.
func Accepted(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": message,
		"status":  "pending",
	})
}

// Domain maps a domain error to its HTTP status. Errors outside the
// domain taxonomy become a 500 without leaking internals.
func Domain(c *fiber.Ctx, err error) error {
	if de, ok := domain.AsDomain(err); ok {
		return Error(c, de.Status, de.Message)
	}
	return ServerError(c, "Internal server error")
}
