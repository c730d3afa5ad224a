package repositories

import (
	"context"

	"dietbro/internal/models"
)

// BlogRepository defines the interface for blog data access.
type BlogRepository interface {
	// Create persists a new blog post, assigning its ID and timestamps.
	Create(ctx context.Context, blog *models.Blog) error
	// List returns a page of blogs (newest published first) plus the total
	// count matching the filter.
	List(ctx context.Context, filter models.BlogFilter, skip, limit int64) ([]models.Blog, int64, error)
	// GetAndIncrementViews returns the blog with its view counter already
	// bumped by one. Each call counts as one view.
	GetAndIncrementViews(ctx context.Context, id string) (*models.Blog, error)
	// IncrementLikes bumps the like counter by one and returns the new count.
	IncrementLikes(ctx context.Context, id string) (int64, error)
	// Stats recomputes the dashboard counters over the whole collection.
	Stats(ctx context.Context) (*models.BlogStats, error)
}
