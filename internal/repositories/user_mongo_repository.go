package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"dietbro/internal/apperrors"
	"dietbro/internal/models"
)

// MongoUserRepository is a MongoDB implementation of UserRepository.
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new instance of MongoUserRepository.
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{
		collection: db.Collection("users"),
	}
}

// EnsureIndexes creates the unique indexes on email/phone and the
// createdAt sort index. The unique indexes are the final arbiter when two
// registrations race past the service-level uniqueness check.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "phone", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}

// Create inserts a new user document.
func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			field := duplicateKeyField(err)
			return apperrors.Duplicatef(field, "User with this %s already exists.", field)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindByEmailOrPhone returns the first user matching either value, or nil
// when none exists.
func (r *MongoUserRepository) FindByEmailOrPhone(ctx context.Context, email, phone string) (*models.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"phone": phone},
	}}

	var user models.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up user by email/phone: %w", err)
	}
	return &user, nil
}

// List returns a page of users newest-first plus the total matching count.
func (r *MongoUserRepository) List(ctx context.Context, filter models.UserFilter, skip, limit int64) ([]models.User, int64, error) {
	query := bson.M{}
	if filter.MealPlan != "" {
		query["mealPlan"] = filter.MealPlan
	}
	if filter.FoodPreference != "" {
		query["foodPreference"] = filter.FoodPreference
	}
	if filter.SubscriptionStatus != "" {
		query["subscriptionStatus"] = filter.SubscriptionStatus
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer cursor.Close(ctx)

	users := make([]models.User, 0, limit)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, 0, fmt.Errorf("failed to decode users: %w", err)
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}
	return users, total, nil
}

// GetByID retrieves a user by its hex ObjectID.
func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFoundf("User not found")
		}
		return nil, fmt.Errorf("failed to get user %s: %w", id, err)
	}
	return &user, nil
}

// Update applies the non-nil fields of the update and returns the updated
// document.
func (r *MongoUserRepository) Update(ctx context.Context, id string, update models.UserUpdate) (*models.User, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Phone != nil {
		set["phone"] = *update.Phone
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Address != nil {
		set["address"] = *update.Address
	}
	if update.MealPlan != nil {
		set["mealPlan"] = *update.MealPlan
	}
	if update.PreferredDays != nil {
		set["preferredDays"] = *update.PreferredDays
	}
	if update.FoodPreference != nil {
		set["foodPreference"] = *update.FoodPreference
	}
	if update.DietaryPreference != nil {
		set["dietaryPreference"] = *update.DietaryPreference
	}
	if update.Allergies != nil {
		set["allergies"] = *update.Allergies
	}
	if update.SubscriptionStatus != nil {
		set["subscriptionStatus"] = *update.SubscriptionStatus
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFoundf("User not found")
		}
		if mongo.IsDuplicateKeyError(err) {
			field := duplicateKeyField(err)
			return nil, apperrors.Duplicatef(field, "User with this %s already exists.", field)
		}
		return nil, fmt.Errorf("failed to update user %s: %w", id, err)
	}
	return &user, nil
}

// Delete removes a user permanently.
func (r *MongoUserRepository) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return apperrors.NotFoundf("User not found")
	}
	return nil
}

// Stats runs the dashboard aggregation over the whole collection. An empty
// collection yields all-zero counters.
func (r *MongoUserRepository) Stats(ctx context.Context) (*models.UserStats, error) {
	countWhere := func(field, value string) bson.M {
		return bson.M{"$sum": bson.M{"$cond": bson.A{
			bson.M{"$eq": bson.A{"$" + field, value}}, 1, 0,
		}}}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":                  nil,
			"totalUsers":           bson.M{"$sum": 1},
			"vegUsers":             countWhere("foodPreference", models.FoodPreferenceVeg),
			"nonVegUsers":          countWhere("foodPreference", models.FoodPreferenceNonVeg),
			"lunchUsers":           countWhere("mealPlan", models.MealPlanLunch),
			"dinnerUsers":          countWhere("mealPlan", models.MealPlanDinner),
			"bothMealsUsers":       countWhere("mealPlan", models.MealPlanBoth),
			"activeSubscriptions":  countWhere("subscriptionStatus", models.SubscriptionActive),
			"pendingSubscriptions": countWhere("subscriptionStatus", models.SubscriptionPending),
		}}},
		{{Key: "$project", Value: bson.M{"_id": 0}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate user stats: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.UserStats
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode user stats: %w", err)
	}
	if len(results) == 0 {
		return &models.UserStats{}, nil
	}
	return &results[0], nil
}
