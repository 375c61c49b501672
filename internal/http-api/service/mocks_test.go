package service

import (
	"context"

	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"github.com/stretchr/testify/mock"
)

// --- HELPER FUNCTIONS FOR POINTERS ---

func stringPtr(s string) *string  { return &s }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

// --- MOCK REPOSITORIES ---

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewRepository) Save(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockReviewRepository) DeleteCascade(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReviewRepository) List(ctx context.Context, filter repository.ReviewFilter, skip, limit int, orderBy string) ([]models.Review, int64, error) {
	args := m.Called(ctx, filter, skip, limit, orderBy)
	return args.Get(0).([]models.Review), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) AddImages(ctx context.Context, images []models.ReviewImage) error {
	args := m.Called(ctx, images)
	return args.Error(0)
}

func (m *MockReviewRepository) RemoveImage(ctx context.Context, reviewID, url string) error {
	args := m.Called(ctx, reviewID, url)
	return args.Error(0)
}

func (m *MockReviewRepository) HighestRated(ctx context.Context, limit int) ([]models.Review, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) MostVoted(ctx context.Context, limit int) ([]models.Review, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) Related(ctx context.Context, categoryID, excludeID string, limit int) ([]models.Review, error) {
	args := m.Called(ctx, categoryID, excludeID, limit)
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *MockReviewRepository) CountPremium(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockVoteRepository struct {
	mock.Mock
}

func (m *MockVoteRepository) Create(ctx context.Context, vote *models.Vote) error {
	args := m.Called(ctx, vote)
	return args.Error(0)
}

func (m *MockVoteRepository) UpdateType(ctx context.Context, voteID, voteType string) error {
	args := m.Called(ctx, voteID, voteType)
	return args.Error(0)
}

func (m *MockVoteRepository) Delete(ctx context.Context, voteID string) error {
	args := m.Called(ctx, voteID)
	return args.Error(0)
}

func (m *MockVoteRepository) GetByReviewAndUser(ctx context.Context, reviewID, userID string) (*models.Vote, error) {
	args := m.Called(ctx, reviewID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vote), args.Error(1)
}

func (m *MockVoteRepository) CountByType(ctx context.Context, reviewID string) (int64, int64, error) {
	args := m.Called(ctx, reviewID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockVoteRepository) CountUpvotesByReviewIDs(ctx context.Context, reviewIDs []string) (map[string]int64, error) {
	args := m.Called(ctx, reviewIDs)
	return args.Get(0).(map[string]int64), args.Error(1)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) UpdateContent(ctx context.Context, commentID, content string) error {
	args := m.Called(ctx, commentID, content)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, commentID string) error {
	args := m.Called(ctx, commentID)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, commentID string) (*models.Comment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetTopLevelByReview(ctx context.Context, reviewID string, skip, limit int) ([]models.Comment, int64, error) {
	args := m.Called(ctx, reviewID, skip, limit)
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) GetReplies(ctx context.Context, parentID string, skip, limit int) ([]models.Comment, int64, error) {
	args := m.Called(ctx, parentID, skip, limit)
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) CountReplies(ctx context.Context, parentID string) (int64, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCommentRepository) CountByReviewIDs(ctx context.Context, reviewIDs []string) (map[string]int64, error) {
	args := m.Called(ctx, reviewIDs)
	return args.Get(0).(map[string]int64), args.Error(1)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Category), args.Error(1)
}
