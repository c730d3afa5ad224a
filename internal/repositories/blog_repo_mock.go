package repositories

import (
	"context"
	"math"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"dietbro/internal/apperrors"
	"dietbro/internal/models"
)

// MockBlogRepository is an in-memory implementation of BlogRepository.
type MockBlogRepository struct {
	blogs []models.Blog
	mu    sync.RWMutex
}

// NewMockBlogRepository creates a new instance of MockBlogRepository.
func NewMockBlogRepository() *MockBlogRepository {
	return &MockBlogRepository{}
}

// Create adds a new blog post with zeroed counters.
func (r *MockBlogRepository) Create(_ context.Context, blog *models.Blog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	blog.ID = primitive.NewObjectID()
	blog.Likes = 0
	blog.Views = 0
	if blog.PublishedAt.IsZero() {
		blog.PublishedAt = now
	}
	blog.CreatedAt = now
	blog.UpdatedAt = now
	r.blogs = append(r.blogs, *blog)
	return nil
}

func (r *MockBlogRepository) matches(b *models.Blog, filter models.BlogFilter) bool {
	if filter.Author != "" && b.Author != filter.Author {
		return false
	}
	if filter.Tag != "" {
		found := false
		for _, tag := range b.Tags {
			if tag == filter.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// List returns a page of blogs newest-published-first.
func (r *MockBlogRepository) List(_ context.Context, filter models.BlogFilter, skip, limit int64) ([]models.Blog, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.Blog, 0, len(r.blogs))
	for i := len(r.blogs) - 1; i >= 0; i-- {
		if r.matches(&r.blogs[i], filter) {
			matched = append(matched, r.blogs[i])
		}
	}

	total := int64(len(matched))
	if skip >= total {
		return []models.Blog{}, total, nil
	}
	end := skip + limit
	if end > total {
		end = total
	}
	return matched[skip:end], total, nil
}

// GetAndIncrementViews bumps the view counter and returns the updated post.
func (r *MockBlogRepository) GetAndIncrementViews(_ context.Context, id string) (*models.Blog, error) {
	if _, err := parseObjectID(id); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.blogs {
		if r.blogs[i].ID.Hex() == id {
			r.blogs[i].Views++
			r.blogs[i].UpdatedAt = time.Now().UTC()
			b := r.blogs[i]
			return &b, nil
		}
	}
	return nil, apperrors.NotFoundf("Blog post not found")
}

// IncrementLikes bumps the like counter and returns the new count.
func (r *MockBlogRepository) IncrementLikes(_ context.Context, id string) (int64, error) {
	if _, err := parseObjectID(id); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.blogs {
		if r.blogs[i].ID.Hex() == id {
			r.blogs[i].Likes++
			r.blogs[i].UpdatedAt = time.Now().UTC()
			return r.blogs[i].Likes, nil
		}
	}
	return 0, apperrors.NotFoundf("Blog post not found")
}

// Stats recomputes the dashboard counters in memory, rounding averages to
// two decimals the way the store pipeline does.
func (r *MockBlogRepository) Stats(_ context.Context) (*models.BlogStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &models.BlogStats{}
	for i := range r.blogs {
		stats.TotalBlogs++
		stats.TotalLikes += r.blogs[i].Likes
		stats.TotalViews += r.blogs[i].Views
	}
	if stats.TotalBlogs > 0 {
		round2 := func(x float64) float64 { return math.Round(x*100) / 100 }
		stats.AvgLikesPerBlog = round2(float64(stats.TotalLikes) / float64(stats.TotalBlogs))
		stats.AvgViewsPerBlog = round2(float64(stats.TotalViews) / float64(stats.TotalBlogs))
	}
	return stats, nil
}
