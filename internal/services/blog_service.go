package services

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"dietbro/internal/models"
	"dietbro/internal/repositories"
)

// BlogService handles business logic for blog posts.
type BlogService struct {
	blogRepo repositories.BlogRepository
	events   EventPublisher
}

// NewBlogService creates a new BlogService. events may be nil.
func NewBlogService(blogRepo repositories.BlogRepository, events EventPublisher) *BlogService {
	return &BlogService{
		blogRepo: blogRepo,
		events:   events,
	}
}

// CreateBlog persists a new post. Tags are normalized to lowercase the way
// the store schema did.
func (s *BlogService) CreateBlog(ctx context.Context, blog *models.Blog) (*models.Blog, error) {
	for i, tag := range blog.Tags {
		blog.Tags[i] = strings.ToLower(strings.TrimSpace(tag))
	}
	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// ListBlogs returns a page of posts plus the pagination envelope.
func (s *BlogService) ListBlogs(ctx context.Context, filter models.BlogFilter, page, limit int64) ([]models.Blog, models.Pagination, error) {
	skip := (page - 1) * limit
	blogs, total, err := s.blogRepo.List(ctx, filter, skip, limit)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return blogs, models.NewPagination(page, limit, total), nil
}

// GetBlogByID returns a post with its view counter already incremented.
// Reads are intentionally counted on every call.
func (s *BlogService) GetBlogByID(ctx context.Context, id string) (*models.Blog, error) {
	return s.blogRepo.GetAndIncrementViews(ctx, id)
}

// LikeBlog increments the like counter by one and returns the new count.
// There is no per-caller dedup; repeated calls each count.
func (s *BlogService) LikeBlog(ctx context.Context, id string) (int64, error) {
	likes, err := s.blogRepo.IncrementLikes(ctx, id)
	if err != nil {
		return 0, err
	}

	if s.events != nil {
		body, merr := json.Marshal(map[string]interface{}{
			"blogID": id,
			"likes":  likes,
		})
		if merr != nil {
			log.Printf("Failed to marshal blog.liked event: %v", merr)
		} else if perr := s.events.Publish(eventsExchange, "blog.liked", body); perr != nil {
			log.Printf("Warning: failed to publish blog.liked event: %v", perr)
		}
	}

	return likes, nil
}

// BlogStats recomputes the dashboard counters from scratch.
func (s *BlogService) BlogStats(ctx context.Context) (*models.BlogStats, error) {
	return s.blogRepo.Stats(ctx)
}
