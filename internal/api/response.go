package api

import (
	"github.com/gofiber/fiber/v3"
)

// jsonSuccess returns a 200 response with data wrapped in the standard envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}

// jsonInsufficientData returns a 200 response signalling that no collected
// data exists yet. Clients treat this as "come back later", not a failure.
func jsonInsufficientData(c fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{
		"status":  "insufficient_data",
		"message": message,
	})
}
