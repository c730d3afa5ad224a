package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"dietbro/internal/apperrors"
	"dietbro/internal/models"
	"dietbro/internal/services"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app. The stats
// route must come before the id route so "stats" is not read as an id.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/register", h.HandleRegister)
	userRoutes.Get("/stats", h.HandleStats)
	userRoutes.Get("/", h.HandleList)
	userRoutes.Get("/:id", h.HandleGetByID)
	userRoutes.Put("/:id", h.HandleUpdate)
	userRoutes.Delete("/:id", h.HandleDelete)
}

// RegisterUserRequest is the payload for user registration.
type RegisterUserRequest struct {
	Name              string   `json:"name" validate:"required,max=100"`
	Phone             string   `json:"phone" validate:"required,len=10,numeric"`
	Email             string   `json:"email" validate:"required,email"`
	Address           string   `json:"address" validate:"required,max=500"`
	MealPlan          string   `json:"mealPlan" validate:"required,oneof=lunch dinner both"`
	PreferredDays     []string `json:"preferredDays" validate:"omitempty,dive,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	FoodPreference    string   `json:"foodPreference" validate:"required,oneof=Veg Non-Veg"`
	DietaryPreference []string `json:"dietaryPreference" validate:"omitempty,dive,oneof='Standard Meal' 'High Protein' 'Low Carb' 'Custom Meal'"`
	Allergies         string   `json:"allergies" validate:"omitempty,max=1000"`
	Password          string   `json:"password" validate:"required,min=6"`
}

// HandleRegister handles new user registration.
func (h *UserHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validationf("Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	user := &models.User{
		Name:              req.Name,
		Phone:             req.Phone,
		Email:             req.Email,
		Address:           req.Address,
		MealPlan:          req.MealPlan,
		PreferredDays:     req.PreferredDays,
		FoodPreference:    req.FoodPreference,
		DietaryPreference: req.DietaryPreference,
		Allergies:         req.Allergies,
	}

	created, err := h.service.Register(c.Context(), user, req.Password)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully!",
		"data":    created.PublicProjection(),
	})
}

// HandleList returns a paginated, filtered list of users. Password hashes
// are excluded by the model's JSON tags.
func (h *UserHandler) HandleList(c *fiber.Ctx) error {
	page, limit := parsePagination(c)
	filter := models.UserFilter{
		MealPlan:           c.Query("mealPlan"),
		FoodPreference:     c.Query("foodPreference"),
		SubscriptionStatus: c.Query("subscriptionStatus"),
	}

	users, pagination, err := h.service.ListUsers(c.Context(), filter, page, limit)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       users,
		"pagination": pagination,
	})
}

// HandleStats returns the user dashboard statistics.
func (h *UserHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.service.UserStats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}

// HandleGetByID returns a single user.
func (h *UserHandler) HandleGetByID(c *fiber.Ctx) error {
	user, err := h.service.GetUserByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    user,
	})
}

// UpdateUserRequest is the payload for partial user updates. Absent fields
// are left unchanged; password changes are not supported here.
type UpdateUserRequest struct {
	Name               *string   `json:"name" validate:"omitempty,max=100"`
	Phone              *string   `json:"phone" validate:"omitempty,len=10,numeric"`
	Email              *string   `json:"email" validate:"omitempty,email"`
	Address            *string   `json:"address" validate:"omitempty,max=500"`
	MealPlan           *string   `json:"mealPlan" validate:"omitempty,oneof=lunch dinner both"`
	PreferredDays      *[]string `json:"preferredDays" validate:"omitempty,dive,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	FoodPreference     *string   `json:"foodPreference" validate:"omitempty,oneof=Veg Non-Veg"`
	DietaryPreference  *[]string `json:"dietaryPreference" validate:"omitempty,dive,oneof='Standard Meal' 'High Protein' 'Low Carb' 'Custom Meal'"`
	Allergies          *string   `json:"allergies" validate:"omitempty,max=1000"`
	SubscriptionStatus *string   `json:"subscriptionStatus" validate:"omitempty,oneof=pending active paused cancelled"`
}

// HandleUpdate applies a partial update to a user.
func (h *UserHandler) HandleUpdate(c *fiber.Ctx) error {
	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validationf("Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	update := models.UserUpdate{
		Name:               req.Name,
		Phone:              req.Phone,
		Email:              req.Email,
		Address:            req.Address,
		MealPlan:           req.MealPlan,
		PreferredDays:      req.PreferredDays,
		FoodPreference:     req.FoodPreference,
		DietaryPreference:  req.DietaryPreference,
		Allergies:          req.Allergies,
		SubscriptionStatus: req.SubscriptionStatus,
	}

	user, err := h.service.UpdateUser(c.Context(), c.Params("id"), update)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "User updated successfully",
		"data":    user,
	})
}

// HandleDelete removes a user permanently.
func (h *UserHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.DeleteUser(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "User deleted successfully",
	})
}
