package service

import (
	"context"
	"log/slog"
	"testing"

	"reviewhub/internal/apperrors"
	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAdminReviewServiceForTest(reviewRepo *MockReviewRepository, voteRepo *MockVoteRepository, commentRepo *MockCommentRepository) AdminReviewService {
	return NewAdminReviewService(reviewRepo, voteRepo, commentRepo, slog.Default())
}

func TestAdminReviewService_PublishReview(t *testing.T) {
	ctx := context.Background()

	t.Run("SetsStatusAndOverwritesNote", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		svc := newAdminReviewServiceForTest(reviewRepo, new(MockVoteRepository), new(MockCommentRepository))

		stored := &models.Review{ID: "review-1", Status: models.StatusDraft}
		reviewRepo.On("GetByID", mock.Anything, "review-1").Return(stored, nil).Once()
		reviewRepo.On("UpdateFields", mock.Anything, "review-1", mock.MatchedBy(func(fields map[string]interface{}) bool {
			note, hasNote := fields["moderation_note"]
			return fields["status"] == models.StatusPublished && hasNote && *(note.(*string)) == "looks good"
		})).Return(nil).Once()
		reviewRepo.On("GetByID", mock.Anything, "review-1").Return(&models.Review{
			ID:             "review-1",
			Status:         models.StatusPublished,
			ModerationNote: stringPtr("looks good"),
		}, nil).Once()

		resp, err := svc.PublishReview(ctx, "review-1", dto.PublishReviewDTO{ModerationNote: stringPtr("looks good")})

		assert.NoError(t, err)
		assert.Equal(t, models.StatusPublished, resp.Status)
		assert.Equal(t, "looks good", *resp.ModerationNote)
	})

	t.Run("OmittedNoteClearsPreviousOne", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		svc := newAdminReviewServiceForTest(reviewRepo, new(MockVoteRepository), new(MockCommentRepository))

		stored := &models.Review{ID: "review-1", Status: models.StatusUnpublished, ModerationNote: stringPtr("old note")}
		reviewRepo.On("GetByID", mock.Anything, "review-1").Return(stored, nil).Once()
		reviewRepo.On("UpdateFields", mock.Anything, "review-1", mock.MatchedBy(func(fields map[string]interface{}) bool {
			note, hasNote := fields["moderation_note"]
			return hasNote && note.(*string) == nil
		})).Return(nil).Once()
		reviewRepo.On("GetByID", mock.Anything, "review-1").Return(&models.Review{
			ID:     "review-1",
			Status: models.StatusPublished,
		}, nil).Once()

		resp, err := svc.PublishReview(ctx, "review-1", dto.PublishReviewDTO{})

		assert.NoError(t, err)
		assert.Nil(t, resp.ModerationNote)
	})

	t.Run("PremiumWithoutPriceFails", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		svc := newAdminReviewServiceForTest(reviewRepo, new(MockVoteRepository), new(MockCommentRepository))

		stored := &models.Review{ID: "review-1", Status: models.StatusDraft}
		reviewRepo.On("GetByID", mock.Anything, "review-1").Return(stored, nil).Once()

		_, err := svc.PublishReview(ctx, "review-1", dto.PublishReviewDTO{IsPremium: boolPtr(true)})

		assert.Equal(t, apperrors.KindBadRequest, apperrors.KindOf(err))
		reviewRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("DisablingPremiumClearsPrice", func(t *testing.T) {
		reviewRepo := new(MockReviewRepository)
		svc := newAdminReviewServiceForTest(reviewRepo, new(MockVoteRepository), new(MockCommentRepository))

		stored := &models.Review{ID: "review-1", Status: models.StatusDraft, IsPremium: true, PremiumPrice: floatPtr(5)}
		reviewRepo.On("GetByID", mock.Anything, "review-1").Return(stored, nil).Once()
		reviewRepo.On("UpdateFields", mock.Anything, "review-1", mock.MatchedBy(func(fields map[string]interface{}) bool {
			return fields["is_premium"] == false && fields["premium_price"].(*float64) == nil
		})).Return(nil).Once()
		reviewRepo.On("GetByID", mock.Anything, "review-1").Return(&models.Review{
			ID:     "review-1",
			Status: models.StatusPublished,
		}, nil).Once()

		_, err := svc.PublishReview(ctx, "review-1", dto.PublishReviewDTO{IsPremium: boolPtr(false)})

		assert.NoError(t, err)
		reviewRepo.AssertExpectations(t)
	})
}

func TestAdminReviewService_UnpublishReview(t *testing.T) {
	ctx := context.Background()
	reviewRepo := new(MockReviewRepository)
	svc := newAdminReviewServiceForTest(reviewRepo, new(MockVoteRepository), new(MockCommentRepository))

	stored := &models.Review{ID: "review-1", Status: models.StatusPublished}
	reviewRepo.On("GetByID", mock.Anything, "review-1").Return(stored, nil).Once()
	reviewRepo.On("UpdateFields", mock.Anything, "review-1", mock.MatchedBy(func(fields map[string]interface{}) bool {
		return fields["status"] == models.StatusUnpublished
	})).Return(nil).Once()
	reviewRepo.On("GetByID", mock.Anything, "review-1").Return(&models.Review{
		ID:             "review-1",
		Status:         models.StatusUnpublished,
		ModerationNote: stringPtr("policy violation"),
	}, nil).Once()

	resp, err := svc.UnpublishReview(ctx, "review-1", dto.UnpublishReviewDTO{ModerationNote: stringPtr("policy violation")})

	assert.NoError(t, err)
	assert.Equal(t, models.StatusUnpublished, resp.Status)
}

func TestAdminReviewService_ListReviews_StatusAll(t *testing.T) {
	ctx := context.Background()
	reviewRepo := new(MockReviewRepository)
	voteRepo := new(MockVoteRepository)
	commentRepo := new(MockCommentRepository)
	svc := newAdminReviewServiceForTest(reviewRepo, voteRepo, commentRepo)

	reviewRepo.On("List", mock.Anything, mock.MatchedBy(func(f repository.ReviewFilter) bool {
		// ALL means no status predicate at all
		return f.Status == nil
	}), 0, 10, mock.Anything).Return([]models.Review{}, int64(0), nil).Once()
	voteRepo.On("CountUpvotesByReviewIDs", mock.Anything, []string{}).Return(map[string]int64{}, nil).Once()
	commentRepo.On("CountByReviewIDs", mock.Anything, []string{}).Return(map[string]int64{}, nil).Once()

	_, err := svc.ListReviews(ctx, dto.AdminReviewListQuery{Status: stringPtr("ALL")})

	assert.NoError(t, err)
	reviewRepo.AssertExpectations(t)
}

func TestAdminReviewService_GetReviewStats(t *testing.T) {
	ctx := context.Background()
	reviewRepo := new(MockReviewRepository)
	svc := newAdminReviewServiceForTest(reviewRepo, new(MockVoteRepository), new(MockCommentRepository))

	reviewRepo.On("CountByStatus", mock.Anything).Return(map[string]int64{
		models.StatusPublished:   10,
		models.StatusDraft:       4,
		models.StatusUnpublished: 1,
	}, nil).Once()
	reviewRepo.On("CountPremium", mock.Anything).Return(int64(3), nil).Once()

	stats, err := svc.GetReviewStats(ctx)

	assert.NoError(t, err)
	assert.Equal(t, int64(15), stats.Total)
	assert.Equal(t, int64(10), stats.Published)
	assert.Equal(t, int64(4), stats.Draft)
	assert.Equal(t, int64(1), stats.Unpublished)
	assert.Equal(t, int64(3), stats.Premium)
}
