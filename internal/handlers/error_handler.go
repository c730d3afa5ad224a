package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	"dietbro/internal/apperrors"
)

// NewErrorHandler builds the single Fiber error handler that classifies
// every error escaping a route handler and shapes the
// {success:false, message, stack?} envelope. The stack detail is only
// included outside production.
func NewErrorHandler(isProduction bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "Server Error"

		var appErr *apperrors.Error
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &appErr):
			switch appErr.Kind {
			case apperrors.KindValidation, apperrors.KindDuplicate:
				status = fiber.StatusBadRequest
			case apperrors.KindNotFound:
				status = fiber.StatusNotFound
			}
			message = appErr.Message
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
			message = fiberErr.Message
		}

		if status >= fiber.StatusInternalServerError {
			log.Printf("Error: %v", err)
		}

		body := fiber.Map{
			"success": false,
			"message": message,
		}
		if !isProduction {
			body["stack"] = fmt.Sprintf("%+v", err)
		}
		return c.Status(status).JSON(body)
	}
}

// NotFoundHandler answers any route no handler matched.
func NotFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"message": fmt.Sprintf("Route %s not found", c.OriginalURL()),
	})
}
