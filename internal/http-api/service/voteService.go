package service

import (
	"context"
	"errors"
	"log/slog"

	"reviewhub/internal/apperrors"
	"reviewhub/internal/http-api/cache"
	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"gorm.io/gorm"
)

type VoteService interface {
	CastVote(ctx context.Context, reviewID, voterID, voteType string) (*dto.VoteResultResponse, error)
	GetVoteCounts(ctx context.Context, reviewID string) (*dto.VoteCountsResponse, error)
	GetVoterChoice(ctx context.Context, reviewID, voterID string) (*dto.VoterChoiceResponse, error)
}

type voteService struct {
	voteRepo   repository.VoteRepository
	reviewRepo repository.ReviewRepository
	counts     *cache.VoteCountCache
	logger     *slog.Logger
}

func NewVoteService(voteRepo repository.VoteRepository, reviewRepo repository.ReviewRepository, counts *cache.VoteCountCache, logger *slog.Logger) VoteService {
	return &voteService{
		voteRepo:   voteRepo,
		reviewRepo: reviewRepo,
		counts:     counts,
		logger:     logger,
	}
}

// CastVote runs the three-way toggle: no existing vote creates one, the same
// type retracts it, a different type switches it in place. Every branch
// leaves at most one vote for the (review, voter) pair.
func (s *voteService) CastVote(ctx context.Context, reviewID, voterID, voteType string) (*dto.VoteResultResponse, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("review not found or not published")
		}
		return nil, apperrors.Internal("failed to load review", err)
	}
	if review.Status != models.StatusPublished {
		return nil, apperrors.NotFound("review not found or not published")
	}

	existing, err := s.voteRepo.GetByReviewAndUser(ctx, reviewID, voterID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("failed to look up vote", err)
	}

	var action string
	switch {
	case existing == nil:
		vote := &models.Vote{
			ReviewID: reviewID,
			UserID:   voterID,
			Type:     voteType,
		}
		if err := s.voteRepo.Create(ctx, vote); err != nil {
			if errors.Is(err, repository.ErrDuplicateVote) {
				// Lost the create race; the unique index holds the invariant.
				// The client retries and lands in the update/remove branch.
				return nil, apperrors.Conflict("vote already recorded, retry to toggle")
			}
			return nil, apperrors.Internal("failed to create vote", err)
		}
		action = dto.VoteActionCreated

	case existing.Type == voteType:
		if err := s.voteRepo.Delete(ctx, existing.ID); err != nil {
			return nil, apperrors.Internal("failed to remove vote", err)
		}
		action = dto.VoteActionRemoved

	default:
		if err := s.voteRepo.UpdateType(ctx, existing.ID, voteType); err != nil {
			return nil, apperrors.Internal("failed to update vote", err)
		}
		action = dto.VoteActionUpdated
	}

	if err := s.counts.Invalidate(ctx, reviewID); err != nil {
		// Stale tally expires with the TTL; the ledger itself is correct.
		s.logger.Warn("failed to invalidate vote count cache", "review_id", reviewID, "error", err)
	}

	return &dto.VoteResultResponse{
		ReviewID: reviewID,
		Action:   action,
		VoteType: voteType,
	}, nil
}

// GetVoteCounts tallies a review's votes, read-through cached.
func (s *voteService) GetVoteCounts(ctx context.Context, reviewID string) (*dto.VoteCountsResponse, error) {
	if _, err := s.reviewRepo.GetByID(ctx, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("review not found")
		}
		return nil, apperrors.Internal("failed to load review", err)
	}

	if cached, err := s.counts.Get(ctx, reviewID); err != nil {
		s.logger.Warn("vote count cache read failed", "review_id", reviewID, "error", err)
	} else if cached != nil {
		return voteCountsResponse(reviewID, cached.Upvotes, cached.Downvotes), nil
	}

	upvotes, downvotes, err := s.voteRepo.CountByType(ctx, reviewID)
	if err != nil {
		return nil, apperrors.Internal("failed to count votes", err)
	}

	if err := s.counts.Set(ctx, reviewID, cache.VoteCounts{Upvotes: upvotes, Downvotes: downvotes}); err != nil {
		s.logger.Warn("vote count cache write failed", "review_id", reviewID, "error", err)
	}

	return voteCountsResponse(reviewID, upvotes, downvotes), nil
}

func voteCountsResponse(reviewID string, upvotes, downvotes int64) *dto.VoteCountsResponse {
	return &dto.VoteCountsResponse{
		ReviewID:  reviewID,
		Upvotes:   upvotes,
		Downvotes: downvotes,
		Total:     upvotes + downvotes,
		Score:     upvotes - downvotes,
	}
}

// GetVoterChoice reports whether the voter has a vote on the review and its
// type. Read-only.
func (s *voteService) GetVoterChoice(ctx context.Context, reviewID, voterID string) (*dto.VoterChoiceResponse, error) {
	if _, err := s.reviewRepo.GetByID(ctx, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("review not found")
		}
		return nil, apperrors.Internal("failed to load review", err)
	}

	vote, err := s.voteRepo.GetByReviewAndUser(ctx, reviewID, voterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.VoterChoiceResponse{ReviewID: reviewID, HasVoted: false}, nil
		}
		return nil, apperrors.Internal("failed to look up vote", err)
	}

	return &dto.VoterChoiceResponse{
		ReviewID: reviewID,
		HasVoted: true,
		VoteType: &vote.Type,
	}, nil
}
