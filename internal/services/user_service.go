package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"dietbro/internal/apperrors"
	"dietbro/internal/models"
	"dietbro/internal/repositories"
)

// EventPublisher publishes domain events to a message broker. A nil
// publisher disables events.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
	Close() error
}

// eventsExchange matches pkg/rabbitmq.EventsExchange without importing it,
// so services stay broker-agnostic behind the interface.
const eventsExchange = "dietbro.events"

// UserService handles business logic for registration and user management.
type UserService struct {
	userRepo repositories.UserRepository
	events   EventPublisher
}

// NewUserService creates a new UserService. events may be nil.
func NewUserService(userRepo repositories.UserRepository, events EventPublisher) *UserService {
	return &UserService{
		userRepo: userRepo,
		events:   events,
	}
}

// Register validates uniqueness, hashes the password and persists the new
// user. The plaintext password is never stored. Validation of field shape
// happens at the handler boundary before this is called.
func (s *UserService) Register(ctx context.Context, user *models.User, password string) (*models.User, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.SubscriptionStatus = models.SubscriptionPending

	// Check-then-insert is not atomic; the store's unique indexes catch the
	// race and the repository translates that into the same duplicate error.
	existing, err := s.userRepo.FindByEmailOrPhone(ctx, user.Email, user.Phone)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		// Email takes priority when both collide.
		field := "phone"
		if existing.Email == user.Email {
			field = "email"
		}
		return nil, apperrors.Duplicatef(field, "User with this %s already exists.", field)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.PasswordHash = string(hashed)

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publishEvent("user.registered", map[string]interface{}{
		"userID":             user.ID.Hex(),
		"email":              user.Email,
		"mealPlan":           user.MealPlan,
		"subscriptionStatus": user.SubscriptionStatus,
	})

	return user, nil
}

// ListUsers returns a page of users plus the pagination envelope.
func (s *UserService) ListUsers(ctx context.Context, filter models.UserFilter, page, limit int64) ([]models.User, models.Pagination, error) {
	skip := (page - 1) * limit
	users, total, err := s.userRepo.List(ctx, filter, skip, limit)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return users, models.NewPagination(page, limit, total), nil
}

// GetUserByID retrieves a single user.
func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateUser applies a partial update and returns the updated user.
func (s *UserService) UpdateUser(ctx context.Context, id string, update models.UserUpdate) (*models.User, error) {
	if update.Email != nil {
		lowered := strings.ToLower(strings.TrimSpace(*update.Email))
		update.Email = &lowered
	}
	return s.userRepo.Update(ctx, id, update)
}

// DeleteUser removes a user permanently.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	return s.userRepo.Delete(ctx, id)
}

// UserStats recomputes the dashboard counters from scratch. Low-traffic
// admin surface, so a full-collection aggregation per call is fine.
func (s *UserService) UserStats(ctx context.Context) (*models.UserStats, error) {
	return s.userRepo.Stats(ctx)
}

// publishEvent fires a best-effort domain event. Publish failures are
// logged, never surfaced to the caller.
func (s *UserService) publishEvent(routingKey string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.events.Publish(eventsExchange, routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
