package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"dietbro/internal/apperrors"
	"dietbro/internal/models"
	"dietbro/internal/services"
)

// BlogHandler handles HTTP requests for blog posts.
type BlogHandler struct {
	service  *services.BlogService
	validate *validator.Validate
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(service *services.BlogService) *BlogHandler {
	return &BlogHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the blog routes with the Fiber app.
func (h *BlogHandler) RegisterRoutes(router fiber.Router) {
	blogRoutes := router.Group("/blogs")
	blogRoutes.Post("/", h.HandleCreate)
	blogRoutes.Get("/stats", h.HandleStats)
	blogRoutes.Get("/", h.HandleList)
	blogRoutes.Get("/:id", h.HandleGetByID)
	blogRoutes.Put("/:id/like", h.HandleLike)
}

// CreateBlogRequest is the payload for the public blog submission endpoint.
type CreateBlogRequest struct {
	Title   string   `json:"title" validate:"required,max=200"`
	Content string   `json:"content" validate:"required,min=50"`
	Author  string   `json:"author" validate:"required,max=100"`
	Tags    []string `json:"tags" validate:"omitempty,dive,max=50"`
}

// HandleCreate creates a new blog post.
func (h *BlogHandler) HandleCreate(c *fiber.Ctx) error {
	var req CreateBlogRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validationf("Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	blog := &models.Blog{
		Title:   req.Title,
		Content: req.Content,
		Author:  req.Author,
		Tags:    req.Tags,
	}

	created, err := h.service.CreateBlog(c.Context(), blog)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Blog post created successfully!",
		"data":    created,
	})
}

// HandleList returns a paginated, filtered list of blog posts.
func (h *BlogHandler) HandleList(c *fiber.Ctx) error {
	page, limit := parsePagination(c)
	filter := models.BlogFilter{
		Author: c.Query("author"),
		Tag:    c.Query("tag"),
	}

	blogs, pagination, err := h.service.ListBlogs(c.Context(), filter, page, limit)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       blogs,
		"pagination": pagination,
	})
}

// HandleStats returns the blog dashboard statistics.
func (h *BlogHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.service.BlogStats(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}

// HandleGetByID returns a single blog post. Each call counts one view.
func (h *BlogHandler) HandleGetByID(c *fiber.Ctx) error {
	blog, err := h.service.GetBlogByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    blog,
	})
}

// HandleLike increments a post's like counter by one.
func (h *BlogHandler) HandleLike(c *fiber.Ctx) error {
	likes, err := h.service.LikeBlog(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Blog liked successfully!",
		"data":    fiber.Map{"likes": likes},
	})
}
