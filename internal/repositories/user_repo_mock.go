package repositories

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"dietbro/internal/apperrors"
	"dietbro/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository.
// It mirrors the store's behavior closely enough for handler and service
// tests: unique email/phone, newest-first listing, malformed ids reported
// as not-found.
type MockUserRepository struct {
	users []models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create adds a new user, enforcing email/phone uniqueness the way the
// store's unique indexes would.
func (r *MockUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].Email == user.Email {
			return apperrors.Duplicatef("email", "User with this email already exists.")
		}
		if r.users[i].Phone == user.Phone {
			return apperrors.Duplicatef("phone", "User with this phone already exists.")
		}
	}

	now := time.Now().UTC()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users = append(r.users, *user)
	return nil
}

// FindByEmailOrPhone returns a user matching either value, or nil.
func (r *MockUserRepository) FindByEmailOrPhone(_ context.Context, email, phone string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if r.users[i].Email == email || r.users[i].Phone == phone {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (r *MockUserRepository) matches(u *models.User, filter models.UserFilter) bool {
	if filter.MealPlan != "" && u.MealPlan != filter.MealPlan {
		return false
	}
	if filter.FoodPreference != "" && u.FoodPreference != filter.FoodPreference {
		return false
	}
	if filter.SubscriptionStatus != "" && u.SubscriptionStatus != filter.SubscriptionStatus {
		return false
	}
	return true
}

// List returns a page of users newest-first (insertion order reversed).
func (r *MockUserRepository) List(_ context.Context, filter models.UserFilter, skip, limit int64) ([]models.User, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.User, 0, len(r.users))
	for i := len(r.users) - 1; i >= 0; i-- {
		if r.matches(&r.users[i], filter) {
			matched = append(matched, r.users[i])
		}
	}

	total := int64(len(matched))
	if skip >= total {
		return []models.User{}, total, nil
	}
	end := skip + limit
	if end > total {
		end = total
	}
	return matched[skip:end], total, nil
}

// GetByID returns a user by its hex ObjectID.
func (r *MockUserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	if _, err := parseObjectID(id); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.users {
		if r.users[i].ID.Hex() == id {
			u := r.users[i]
			return &u, nil
		}
	}
	return nil, apperrors.NotFoundf("User not found")
}

// Update applies the non-nil fields of the update.
func (r *MockUserRepository) Update(_ context.Context, id string, update models.UserUpdate) (*models.User, error) {
	if _, err := parseObjectID(id); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID.Hex() != id {
			continue
		}
		u := &r.users[i]
		if update.Name != nil {
			u.Name = *update.Name
		}
		if update.Phone != nil {
			u.Phone = *update.Phone
		}
		if update.Email != nil {
			u.Email = *update.Email
		}
		if update.Address != nil {
			u.Address = *update.Address
		}
		if update.MealPlan != nil {
			u.MealPlan = *update.MealPlan
		}
		if update.PreferredDays != nil {
			u.PreferredDays = *update.PreferredDays
		}
		if update.FoodPreference != nil {
			u.FoodPreference = *update.FoodPreference
		}
		if update.DietaryPreference != nil {
			u.DietaryPreference = *update.DietaryPreference
		}
		if update.Allergies != nil {
			u.Allergies = *update.Allergies
		}
		if update.SubscriptionStatus != nil {
			u.SubscriptionStatus = *update.SubscriptionStatus
		}
		u.UpdatedAt = time.Now().UTC()
		copied := *u
		return &copied, nil
	}
	return nil, apperrors.NotFoundf("User not found")
}

// Delete removes a user permanently.
func (r *MockUserRepository) Delete(_ context.Context, id string) error {
	if _, err := parseObjectID(id); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.users {
		if r.users[i].ID.Hex() == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFoundf("User not found")
}

// Stats recomputes the dashboard counters in memory.
func (r *MockUserRepository) Stats(_ context.Context) (*models.UserStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &models.UserStats{}
	for i := range r.users {
		u := &r.users[i]
		stats.TotalUsers++
		switch u.FoodPreference {
		case models.FoodPreferenceVeg:
			stats.VegUsers++
		case models.FoodPreferenceNonVeg:
			stats.NonVegUsers++
		}
		switch u.MealPlan {
		case models.MealPlanLunch:
			stats.LunchUsers++
		case models.MealPlanDinner:
			stats.DinnerUsers++
		case models.MealPlanBoth:
			stats.BothMealsUsers++
		}
		switch u.SubscriptionStatus {
		case models.SubscriptionActive:
			stats.ActiveSubscriptions++
		case models.SubscriptionPending:
			stats.PendingSubscriptions++
		}
	}
	return stats, nil
}
