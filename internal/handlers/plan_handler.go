package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"dietbro/internal/apperrors"
	"dietbro/internal/models"
	"dietbro/internal/pricing"
)

// PlanHandler exposes the plan catalog and the price calculator over HTTP.
// The calculator itself is a pure function in internal/pricing; this is a
// thin edge for clients that do not embed it.
type PlanHandler struct {
	validate *validator.Validate
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler() *PlanHandler {
	return &PlanHandler{
		validate: validator.New(),
	}
}

// RegisterRoutes registers the plan routes with the Fiber app.
func (h *PlanHandler) RegisterRoutes(router fiber.Router) {
	planRoutes := router.Group("/plans")
	planRoutes.Get("/", h.HandleCatalog)
	planRoutes.Post("/quote", h.HandleQuote)
}

// HandleCatalog returns the marketing plan cards and the sellable day counts.
func (h *PlanHandler) HandleCatalog(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"plans": pricing.Catalog(),
			"days":  pricing.ValidDays(),
		},
	})
}

// QuoteRequest selects a plan to be priced.
type QuoteRequest struct {
	DietType       string `json:"dietType" validate:"required,oneof=Balanced HighProtein"`
	Days           int    `json:"days" validate:"required,oneof=3 7 14 28"`
	MealPlan       string `json:"mealPlan" validate:"required,oneof=lunch dinner both"`
	FoodPreference string `json:"foodPreference" validate:"required,oneof=Veg Non-Veg"`
}

// HandleQuote computes the price of a plan selection.
func (h *PlanHandler) HandleQuote(c *fiber.Ctx) error {
	var req QuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validationf("Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	mealsPerDay := pricing.MealsPerDay(req.MealPlan)
	nonVeg := req.FoodPreference == models.FoodPreferenceNonVeg

	quote, err := pricing.Calculate(pricing.DietType(req.DietType), req.Days, mealsPerDay, nonVeg)
	if err != nil {
		// The DTO whitelist should make this unreachable; an unset table
		// cell is still a hard error, never a zero price.
		return apperrors.Validationf("%s", err.Error())
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    quote,
	})
}
