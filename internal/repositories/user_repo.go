package repositories

import (
	"context"

	"dietbro/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	// Create persists a new user, assigning its ID and timestamps.
	Create(ctx context.Context, user *models.User) error
	// FindByEmailOrPhone returns a user matching either value, or nil when
	// no such user exists.
	FindByEmailOrPhone(ctx context.Context, email, phone string) (*models.User, error)
	// List returns a page of users (newest first) plus the total count
	// matching the filter.
	List(ctx context.Context, filter models.UserFilter, skip, limit int64) ([]models.User, int64, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// Update applies the non-nil fields and returns the updated document.
	Update(ctx context.Context, id string, update models.UserUpdate) (*models.User, error)
	Delete(ctx context.Context, id string) error
	// Stats recomputes the dashboard counters over the whole collection.
	Stats(ctx context.Context) (*models.UserStats, error)
}
