package handlers

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"dietbro/internal/apperrors"
)

// formatValidationError flattens validator failures into one human-readable
// message, one clause per offending field, joined with commas.
func formatValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Validationf("Invalid request body")
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, fieldMessage(e))
	}
	return apperrors.Validationf("%s", strings.Join(messages, ", "))
}

func fieldMessage(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return "Please enter a valid email"
	case "len", "numeric":
		if field == "Phone" {
			return "Please enter a valid 10-digit phone number"
		}
		return fmt.Sprintf("%s has an invalid value", field)
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", field, e.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", field, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	}
	return fmt.Sprintf("%s failed on the '%s' rule", field, e.Tag())
}

// parsePagination reads page/limit query parameters with the standard
// defaults. The limit is capped so a single request cannot pull the whole
// collection.
func parsePagination(c *fiber.Ctx) (page, limit int64) {
	page = int64(c.QueryInt("page", 1))
	if page < 1 {
		page = 1
	}
	limit = int64(c.QueryInt("limit", 10))
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}
