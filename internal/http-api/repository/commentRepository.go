package repository

import (
	"context"
	"fmt"

	"reviewhub/internal/http-api/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	UpdateContent(ctx context.Context, commentID, content string) error
	Delete(ctx context.Context, commentID string) error
	GetByID(ctx context.Context, commentID string) (*models.Comment, error)
	GetTopLevelByReview(ctx context.Context, reviewID string, skip, limit int) ([]models.Comment, int64, error)
	GetReplies(ctx context.Context, parentID string, skip, limit int) ([]models.Comment, int64, error)
	CountReplies(ctx context.Context, parentID string) (int64, error)
	CountByReviewIDs(ctx context.Context, reviewIDs []string) (map[string]int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, commentID, content string) error {
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ?", commentID).
		Update("content", content).Error; err != nil {
		return fmt.Errorf("update comment content: %w", err)
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, commentID string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Comment{}, "id = ?", commentID).Error; err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// GetByID retrieves a comment with its author.
func (r *commentRepository) GetByID(ctx context.Context, commentID string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&comment, "id = ?", commentID).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetTopLevelByReview returns one page of top-level comments, newest first,
// each with its full reply list eagerly attached oldest first.
func (r *commentRepository) GetTopLevelByReview(ctx context.Context, reviewID string, skip, limit int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("review_id = ? AND parent_id IS NULL", reviewID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	err := r.db.WithContext(ctx).
		Where("review_id = ? AND parent_id IS NULL", reviewID).
		Preload("User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Replies.User").
		Order("created_at DESC").
		Limit(limit).
		Offset(skip).
		Find(&comments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}

	return comments, total, nil
}

// GetReplies returns one page of direct replies, oldest first.
func (r *commentRepository) GetReplies(ctx context.Context, parentID string, skip, limit int) ([]models.Comment, int64, error) {
	var replies []models.Comment
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("parent_id = ?", parentID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count replies: %w", err)
	}

	err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Preload("User").
		Order("created_at ASC").
		Limit(limit).
		Offset(skip).
		Find(&replies).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list replies: %w", err)
	}

	return replies, total, nil
}

func (r *commentRepository) CountReplies(ctx context.Context, parentID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("parent_id = ?", parentID).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count replies: %w", err)
	}
	return count, nil
}

// CountByReviewIDs returns per-review comment counts for one page of
// reviews, keyed by review id.
func (r *commentRepository) CountByReviewIDs(ctx context.Context, reviewIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(reviewIDs))
	if len(reviewIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ReviewID string
		Count    int64
	}
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Select("review_id, COUNT(id) as count").
		Where("review_id IN ?", reviewIDs).
		Group("review_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count comments by review: %w", err)
	}

	for _, row := range rows {
		counts[row.ReviewID] = row.Count
	}
	return counts, nil
}
