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
	"gorm.io/gorm"
)

func newVoteServiceForTest(voteRepo *MockVoteRepository, reviewRepo *MockReviewRepository) VoteService {
	// nil cache behaves as an always-miss cache
	return NewVoteService(voteRepo, reviewRepo, nil, slog.Default())
}

func publishedReview(id string) *models.Review {
	return &models.Review{ID: id, Status: models.StatusPublished}
}

func TestVoteService_CastVote_ToggleCycle(t *testing.T) {
	ctx := context.Background()
	reviewID := "review-1"
	voterID := "voter-1"

	t.Run("FirstCastCreates", func(t *testing.T) {
		voteRepo := new(MockVoteRepository)
		reviewRepo := new(MockReviewRepository)
		svc := newVoteServiceForTest(voteRepo, reviewRepo)

		reviewRepo.On("GetByID", mock.Anything, reviewID).Return(publishedReview(reviewID), nil).Once()
		voteRepo.On("GetByReviewAndUser", mock.Anything, reviewID, voterID).Return(nil, gorm.ErrRecordNotFound).Once()
		voteRepo.On("Create", mock.Anything, mock.MatchedBy(func(v *models.Vote) bool {
			return v.ReviewID == reviewID && v.UserID == voterID && v.Type == models.VoteUp
		})).Return(nil).Once()

		result, err := svc.CastVote(ctx, reviewID, voterID, models.VoteUp)

		assert.NoError(t, err)
		assert.Equal(t, dto.VoteActionCreated, result.Action)
		assert.Equal(t, models.VoteUp, result.VoteType)
		voteRepo.AssertExpectations(t)
	})

	t.Run("SameTypeRemoves", func(t *testing.T) {
		voteRepo := new(MockVoteRepository)
		reviewRepo := new(MockReviewRepository)
		svc := newVoteServiceForTest(voteRepo, reviewRepo)

		existing := &models.Vote{ID: "vote-1", ReviewID: reviewID, UserID: voterID, Type: models.VoteUp}
		reviewRepo.On("GetByID", mock.Anything, reviewID).Return(publishedReview(reviewID), nil).Once()
		voteRepo.On("GetByReviewAndUser", mock.Anything, reviewID, voterID).Return(existing, nil).Once()
		voteRepo.On("Delete", mock.Anything, "vote-1").Return(nil).Once()

		result, err := svc.CastVote(ctx, reviewID, voterID, models.VoteUp)

		assert.NoError(t, err)
		assert.Equal(t, dto.VoteActionRemoved, result.Action)
		voteRepo.AssertExpectations(t)
		voteRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("DifferentTypeUpdates", func(t *testing.T) {
		voteRepo := new(MockVoteRepository)
		reviewRepo := new(MockReviewRepository)
		svc := newVoteServiceForTest(voteRepo, reviewRepo)

		existing := &models.Vote{ID: "vote-1", ReviewID: reviewID, UserID: voterID, Type: models.VoteUp}
		reviewRepo.On("GetByID", mock.Anything, reviewID).Return(publishedReview(reviewID), nil).Once()
		voteRepo.On("GetByReviewAndUser", mock.Anything, reviewID, voterID).Return(existing, nil).Once()
		voteRepo.On("UpdateType", mock.Anything, "vote-1", models.VoteDown).Return(nil).Once()

		result, err := svc.CastVote(ctx, reviewID, voterID, models.VoteDown)

		assert.NoError(t, err)
		assert.Equal(t, dto.VoteActionUpdated, result.Action)
		assert.Equal(t, models.VoteDown, result.VoteType)
		voteRepo.AssertExpectations(t)
		voteRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestVoteService_CastVote_RejectsNonPublished(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingReview", func(t *testing.T) {
		voteRepo := new(MockVoteRepository)
		reviewRepo := new(MockReviewRepository)
		svc := newVoteServiceForTest(voteRepo, reviewRepo)

		reviewRepo.On("GetByID", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound).Once()

		_, err := svc.CastVote(ctx, "missing", "voter-1", models.VoteUp)

		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
		voteRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("DraftReview", func(t *testing.T) {
		voteRepo := new(MockVoteRepository)
		reviewRepo := new(MockReviewRepository)
		svc := newVoteServiceForTest(voteRepo, reviewRepo)

		reviewRepo.On("GetByID", mock.Anything, "review-1").
			Return(&models.Review{ID: "review-1", Status: models.StatusDraft}, nil).Once()

		_, err := svc.CastVote(ctx, "review-1", "voter-1", models.VoteUp)

		assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
		voteRepo.AssertNotCalled(t, "GetByReviewAndUser", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestVoteService_CastVote_DuplicateRaceIsConflict(t *testing.T) {
	ctx := context.Background()
	voteRepo := new(MockVoteRepository)
	reviewRepo := new(MockReviewRepository)
	svc := newVoteServiceForTest(voteRepo, reviewRepo)

	reviewRepo.On("GetByID", mock.Anything, "review-1").Return(publishedReview("review-1"), nil).Once()
	voteRepo.On("GetByReviewAndUser", mock.Anything, "review-1", "voter-1").Return(nil, gorm.ErrRecordNotFound).Once()
	voteRepo.On("Create", mock.Anything, mock.Anything).Return(repository.ErrDuplicateVote).Once()

	_, err := svc.CastVote(ctx, "review-1", "voter-1", models.VoteUp)

	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	voteRepo.AssertExpectations(t)
}

func TestVoteService_GetVoteCounts(t *testing.T) {
	ctx := context.Background()
	voteRepo := new(MockVoteRepository)
	reviewRepo := new(MockReviewRepository)
	svc := newVoteServiceForTest(voteRepo, reviewRepo)

	reviewRepo.On("GetByID", mock.Anything, "review-1").Return(publishedReview("review-1"), nil).Once()
	voteRepo.On("CountByType", mock.Anything, "review-1").Return(int64(7), int64(2), nil).Once()

	counts, err := svc.GetVoteCounts(ctx, "review-1")

	assert.NoError(t, err)
	assert.Equal(t, int64(7), counts.Upvotes)
	assert.Equal(t, int64(2), counts.Downvotes)
	assert.Equal(t, int64(9), counts.Total)
	assert.Equal(t, int64(5), counts.Score)
}

func TestVoteService_GetVoterChoice(t *testing.T) {
	ctx := context.Background()

	t.Run("HasVoted", func(t *testing.T) {
		voteRepo := new(MockVoteRepository)
		reviewRepo := new(MockReviewRepository)
		svc := newVoteServiceForTest(voteRepo, reviewRepo)

		reviewRepo.On("GetByID", mock.Anything, "review-1").Return(publishedReview("review-1"), nil).Once()
		voteRepo.On("GetByReviewAndUser", mock.Anything, "review-1", "voter-1").
			Return(&models.Vote{ID: "vote-1", Type: models.VoteDown}, nil).Once()

		choice, err := svc.GetVoterChoice(ctx, "review-1", "voter-1")

		assert.NoError(t, err)
		assert.True(t, choice.HasVoted)
		assert.Equal(t, models.VoteDown, *choice.VoteType)
	})

	t.Run("NoVote", func(t *testing.T) {
		voteRepo := new(MockVoteRepository)
		reviewRepo := new(MockReviewRepository)
		svc := newVoteServiceForTest(voteRepo, reviewRepo)

		reviewRepo.On("GetByID", mock.Anything, "review-1").Return(publishedReview("review-1"), nil).Once()
		voteRepo.On("GetByReviewAndUser", mock.Anything, "review-1", "voter-1").
			Return(nil, gorm.ErrRecordNotFound).Once()

		choice, err := svc.GetVoterChoice(ctx, "review-1", "voter-1")

		assert.NoError(t, err)
		assert.False(t, choice.HasVoted)
		assert.Nil(t, choice.VoteType)
	})
}
