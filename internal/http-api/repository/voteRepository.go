package repository

import (
	"context"
	"errors"
	"fmt"

	"reviewhub/internal/http-api/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicateVote surfaces the (review_id, user_id) unique-index violation.
// Two concurrent first-time casts race in the toggle's create branch; the
// index decides the winner and the loser sees this error.
var ErrDuplicateVote = errors.New("vote already exists for this review and user")

// Postgres unique_violation
const pgUniqueViolation = "23505"

type VoteRepository interface {
	Create(ctx context.Context, vote *models.Vote) error
	UpdateType(ctx context.Context, voteID, voteType string) error
	Delete(ctx context.Context, voteID string) error
	GetByReviewAndUser(ctx context.Context, reviewID, userID string) (*models.Vote, error)
	CountByType(ctx context.Context, reviewID string) (upvotes, downvotes int64, err error)
	CountUpvotesByReviewIDs(ctx context.Context, reviewIDs []string) (map[string]int64, error)
}

type voteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) Create(ctx context.Context, vote *models.Vote) error {
	if err := r.db.WithContext(ctx).Create(vote).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateVote
		}
		return fmt.Errorf("create vote: %w", err)
	}
	return nil
}

func (r *voteRepository) UpdateType(ctx context.Context, voteID, voteType string) error {
	if err := r.db.WithContext(ctx).Model(&models.Vote{}).Where("id = ?", voteID).Update("type", voteType).Error; err != nil {
		return fmt.Errorf("update vote type: %w", err)
	}
	return nil
}

func (r *voteRepository) Delete(ctx context.Context, voteID string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Vote{}, "id = ?", voteID).Error; err != nil {
		return fmt.Errorf("delete vote: %w", err)
	}
	return nil
}

// GetByReviewAndUser retrieves the voter's current choice, if any.
func (r *voteRepository) GetByReviewAndUser(ctx context.Context, reviewID, userID string) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).
		Where("review_id = ? AND user_id = ?", reviewID, userID).
		First(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// CountByType counts upvote and downvote rows for a review in one grouped
// query.
func (r *voteRepository) CountByType(ctx context.Context, reviewID string) (int64, int64, error) {
	var rows []struct {
		Type  string
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&models.Vote{}).
		Select("type, COUNT(id) as count").
		Where("review_id = ?", reviewID).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return 0, 0, fmt.Errorf("count votes: %w", err)
	}

	var upvotes, downvotes int64
	for _, row := range rows {
		switch row.Type {
		case models.VoteUp:
			upvotes = row.Count
		case models.VoteDown:
			downvotes = row.Count
		}
	}
	return upvotes, downvotes, nil
}

// CountUpvotesByReviewIDs returns per-review upvote counts for one page of
// reviews, keyed by review id. Reviews with zero upvotes are absent.
func (r *voteRepository) CountUpvotesByReviewIDs(ctx context.Context, reviewIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(reviewIDs))
	if len(reviewIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ReviewID string
		Count    int64
	}
	err := r.db.WithContext(ctx).Model(&models.Vote{}).
		Select("review_id, COUNT(id) as count").
		Where("review_id IN ? AND type = ?", reviewIDs, models.VoteUp).
		Group("review_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count upvotes by review: %w", err)
	}

	for _, row := range rows {
		counts[row.ReviewID] = row.Count
	}
	return counts, nil
}
