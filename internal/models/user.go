package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Meal plan values a user can subscribe to.
const (
	MealPlanLunch  = "lunch"
	MealPlanDinner = "dinner"
	MealPlanBoth   = "both"
)

// Food preference values.
const (
	FoodPreferenceVeg    = "Veg"
	FoodPreferenceNonVeg = "Non-Veg"
)

// Subscription lifecycle states.
const (
	SubscriptionPending   = "pending"
	SubscriptionActive    = "active"
	SubscriptionPaused    = "paused"
	SubscriptionCancelled = "cancelled"
)

// User represents a meal-subscription customer.
// The password hash is stored under the "password" field but is never
// serialized to JSON.
type User struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name               string             `bson:"name" json:"name"`
	Phone              string             `bson:"phone" json:"phone"`
	Email              string             `bson:"email" json:"email"`
	Address            string             `bson:"address" json:"address"`
	MealPlan           string             `bson:"mealPlan" json:"mealPlan"`
	PreferredDays      []string           `bson:"preferredDays,omitempty" json:"preferredDays,omitempty"`
	FoodPreference     string             `bson:"foodPreference" json:"foodPreference"`
	DietaryPreference  []string           `bson:"dietaryPreference,omitempty" json:"dietaryPreference,omitempty"`
	Allergies          string             `bson:"allergies,omitempty" json:"allergies,omitempty"`
	SubscriptionStatus string             `bson:"subscriptionStatus" json:"subscriptionStatus"`
	PasswordHash       string             `bson:"password" json:"-"`
	CreatedAt          time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RegisteredUser is the public projection returned after registration.
type RegisteredUser struct {
	ID                 primitive.ObjectID `json:"id"`
	Name               string             `json:"name"`
	Email              string             `json:"email"`
	Phone              string             `json:"phone"`
	MealPlan           string             `json:"mealPlan"`
	FoodPreference     string             `json:"foodPreference"`
	SubscriptionStatus string             `json:"subscriptionStatus"`
}

// PublicProjection strips everything the registration response is not
// supposed to reveal.
func (u *User) PublicProjection() RegisteredUser {
	return RegisteredUser{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Phone:              u.Phone,
		MealPlan:           u.MealPlan,
		FoodPreference:     u.FoodPreference,
		SubscriptionStatus: u.SubscriptionStatus,
	}
}

// UserFilter holds the whitelisted equality filters for user listings.
// Empty fields are ignored.
type UserFilter struct {
	MealPlan           string
	FoodPreference     string
	SubscriptionStatus string
}

// UserUpdate carries the updatable fields of a user document. Nil pointers
// mean "leave unchanged". Password changes are intentionally not supported
// through this path.
type UserUpdate struct {
	Name               *string
	Phone              *string
	Email              *string
	Address            *string
	MealPlan           *string
	PreferredDays      *[]string
	FoodPreference     *string
	DietaryPreference  *[]string
	Allergies          *string
	SubscriptionStatus *string
}

// UserStats aggregates dashboard counters over the whole user collection.
type UserStats struct {
	TotalUsers           int64 `bson:"totalUsers" json:"totalUsers"`
	VegUsers             int64 `bson:"vegUsers" json:"vegUsers"`
	NonVegUsers          int64 `bson:"nonVegUsers" json:"nonVegUsers"`
	LunchUsers           int64 `bson:"lunchUsers" json:"lunchUsers"`
	DinnerUsers          int64 `bson:"dinnerUsers" json:"dinnerUsers"`
	BothMealsUsers       int64 `bson:"bothMealsUsers" json:"bothMealsUsers"`
	ActiveSubscriptions  int64 `bson:"activeSubscriptions" json:"activeSubscriptions"`
	PendingSubscriptions int64 `bson:"pendingSubscriptions" json:"pendingSubscriptions"`
}
