package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dietbro/internal/apperrors"
	"dietbro/internal/models"
	"dietbro/internal/services"
)

// MockBlogRepository is a mock implementation of repositories.BlogRepository.
type MockBlogRepository struct {
	mock.Mock
}

func (m *MockBlogRepository) Create(ctx context.Context, blog *models.Blog) error {
	args := m.Called(ctx, blog)
	return args.Error(0)
}

func (m *MockBlogRepository) List(ctx context.Context, filter models.BlogFilter, skip, limit int64) ([]models.Blog, int64, error) {
	args := m.Called(ctx, filter, skip, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Blog), args.Get(1).(int64), args.Error(2)
}

func (m *MockBlogRepository) GetAndIncrementViews(ctx context.Context, id string) (*models.Blog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Blog), args.Error(1)
}

func (m *MockBlogRepository) IncrementLikes(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBlogRepository) Stats(ctx context.Context) (*models.BlogStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlogStats), args.Error(1)
}

func TestBlogService_CreateBlog_NormalizesTags(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockBlogRepository)
	blogService := services.NewBlogService(mockRepo, nil)

	blog := &models.Blog{
		Title:   "Eating well on a budget",
		Content: "A long enough piece of content about meal planning and groceries.",
		Author:  "Asha Rao",
		Tags:    []string{" Nutrition", "MEAL-PREP "},
	}

	mockRepo.On("Create", ctx, blog).Return(nil).Once()

	created, err := blogService.CreateBlog(ctx, blog)
	require.NoError(t, err)
	assert.Equal(t, []string{"nutrition", "meal-prep"}, created.Tags)
	mockRepo.AssertExpectations(t)
}

func TestBlogService_LikeBlog(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockBlogRepository)
	blogService := services.NewBlogService(mockRepo, nil)

	mockRepo.On("IncrementLikes", ctx, "abc123").Return(int64(4), nil).Once()

	likes, err := blogService.LikeBlog(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, int64(4), likes)
	mockRepo.AssertExpectations(t)
}

func TestBlogService_LikeBlog_NotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockBlogRepository)
	blogService := services.NewBlogService(mockRepo, nil)

	mockRepo.On("IncrementLikes", ctx, "missing").Return(int64(0), apperrors.NotFoundf("Blog post not found")).Once()

	_, err := blogService.LikeBlog(ctx, "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestBlogService_LikeBlog_PublishesEvent(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockBlogRepository)
	mockEvents := new(MockEventPublisher)
	blogService := services.NewBlogService(mockRepo, mockEvents)

	mockRepo.On("IncrementLikes", ctx, "abc123").Return(int64(1), nil).Once()
	mockEvents.On("Publish", "dietbro.events", "blog.liked", mock.AnythingOfType("[]uint8")).Return(nil).Once()

	_, err := blogService.LikeBlog(ctx, "abc123")
	require.NoError(t, err)
	mockEvents.AssertExpectations(t)
}

func TestBlogService_BlogStats_Empty(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockBlogRepository)
	blogService := services.NewBlogService(mockRepo, nil)

	mockRepo.On("Stats", ctx).Return(&models.BlogStats{}, nil).Once()

	stats, err := blogService.BlogStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalBlogs)
	assert.Equal(t, 0.0, stats.AvgLikesPerBlog)
	assert.Equal(t, 0.0, stats.AvgViewsPerBlog)
}
