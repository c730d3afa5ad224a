package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog represents a published blog post. The author is a free-text name,
// not a reference into the users collection.
type Blog struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Content     string             `bson:"content" json:"content"`
	Author      string             `bson:"author" json:"author"`
	Tags        []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Likes       int64              `bson:"likes" json:"likes"`
	Views       int64              `bson:"views" json:"views"`
	PublishedAt time.Time          `bson:"publishedAt" json:"publishedAt"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// BlogFilter holds the whitelisted equality filters for blog listings.
type BlogFilter struct {
	Author string
	Tag    string
}

// BlogStats aggregates like/view counters over the whole blog collection.
// Averages are rounded to two decimal places.
type BlogStats struct {
	TotalBlogs      int64   `bson:"totalBlogs" json:"totalBlogs"`
	TotalLikes      int64   `bson:"totalLikes" json:"totalLikes"`
	TotalViews      int64   `bson:"totalViews" json:"totalViews"`
	AvgLikesPerBlog float64 `bson:"avgLikesPerBlog" json:"avgLikesPerBlog"`
	AvgViewsPerBlog float64 `bson:"avgViewsPerBlog" json:"avgViewsPerBlog"`
}
