package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/learnroute-api/internal/utils"
)

// ErrorHandler is the application wide fallback for errors that escape a handler.
// It keeps the response envelope and never leaks internal messages on 5xx.
func ErrorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	base := logger.With().Str("component", "error_handler").Logger()
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "Internal server error"

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			status = fiberErr.Code
			if status < fiber.StatusInternalServerError {
				message = fiberErr.Message
			}
		}
		if status == fiber.StatusNotFound {
			message = "Route not found"
		}

		if status >= fiber.StatusInternalServerError {
			requestLogger(base, c).Error().Err(err).Msg("unhandled request error")
		}
		return utils.SendError(c, status, message)
	}
}
