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

// MongoBlogRepository is a MongoDB implementation of BlogRepository.
type MongoBlogRepository struct {
	collection *mongo.Collection
}

// NewMongoBlogRepository creates a new instance of MongoBlogRepository.
func NewMongoBlogRepository(db *mongo.Database) *MongoBlogRepository {
	return &MongoBlogRepository{
		collection: db.Collection("blogs"),
	}
}

// EnsureIndexes creates the secondary indexes used by blog filters and
// sorting.
func (r *MongoBlogRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: 1}}},
		{Keys: bson.D{{Key: "author", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
		{Keys: bson.D{{Key: "publishedAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create blog indexes: %w", err)
	}
	return nil
}

// Create inserts a new blog document with zeroed counters.
func (r *MongoBlogRepository) Create(ctx context.Context, blog *models.Blog) error {
	now := time.Now().UTC()
	blog.ID = primitive.NewObjectID()
	blog.Likes = 0
	blog.Views = 0
	if blog.PublishedAt.IsZero() {
		blog.PublishedAt = now
	}
	blog.CreatedAt = now
	blog.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, blog); err != nil {
		return fmt.Errorf("failed to create blog: %w", err)
	}
	return nil
}

// List returns a page of blogs newest-published-first plus the total
// matching count.
func (r *MongoBlogRepository) List(ctx context.Context, filter models.BlogFilter, skip, limit int64) ([]models.Blog, int64, error) {
	query := bson.M{}
	if filter.Author != "" {
		query["author"] = filter.Author
	}
	if filter.Tag != "" {
		// tags is an array field; equality matches any element
		query["tags"] = filter.Tag
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "publishedAt", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list blogs: %w", err)
	}
	defer cursor.Close(ctx)

	blogs := make([]models.Blog, 0, limit)
	if err := cursor.All(ctx, &blogs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode blogs: %w", err)
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count blogs: %w", err)
	}
	return blogs, total, nil
}

// GetAndIncrementViews atomically bumps the view counter and returns the
// post as it looks after this read was counted.
func (r *MongoBlogRepository) GetAndIncrementViews(ctx context.Context, id string) (*models.Blog, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	update := bson.M{
		"$inc": bson.M{"views": 1},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var blog models.Blog
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&blog)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFoundf("Blog post not found")
		}
		return nil, fmt.Errorf("failed to get blog %s: %w", id, err)
	}
	return &blog, nil
}

// IncrementLikes atomically bumps the like counter and returns the new
// count. There is deliberately no dedup per caller.
func (r *MongoBlogRepository) IncrementLikes(ctx context.Context, id string) (int64, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return 0, err
	}

	update := bson.M{
		"$inc": bson.M{"likes": 1},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var blog models.Blog
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&blog)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, apperrors.NotFoundf("Blog post not found")
		}
		return 0, fmt.Errorf("failed to like blog %s: %w", id, err)
	}
	return blog.Likes, nil
}

// Stats runs the dashboard aggregation over the whole collection. Averages
// are rounded to two decimals in the pipeline; an empty collection yields
// all zeros.
func (r *MongoBlogRepository) Stats(ctx context.Context) (*models.BlogStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":             nil,
			"totalBlogs":      bson.M{"$sum": 1},
			"totalLikes":      bson.M{"$sum": "$likes"},
			"totalViews":      bson.M{"$sum": "$views"},
			"avgLikesPerBlog": bson.M{"$avg": "$likes"},
			"avgViewsPerBlog": bson.M{"$avg": "$views"},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":             0,
			"totalBlogs":      1,
			"totalLikes":      1,
			"totalViews":      1,
			"avgLikesPerBlog": bson.M{"$round": bson.A{"$avgLikesPerBlog", 2}},
			"avgViewsPerBlog": bson.M{"$round": bson.A{"$avgViewsPerBlog", 2}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate blog stats: %w", err)
	}
	defer cursor.Close(ctx)

	var results []models.BlogStats
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode blog stats: %w", err)
	}
	if len(results) == 0 {
		return &models.BlogStats{}, nil
	}
	return &results[0], nil
}
