package service

import (
	"context"
	"errors"

	"reviewhub/internal/apperrors"
	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"
	"reviewhub/internal/shared"

	"gorm.io/gorm"
)

type CommentService interface {
	AddComment(ctx context.Context, reviewID, authorID, content string, parentID *string) (*dto.CommentResponse, error)
	UpdateComment(ctx context.Context, commentID, requesterID, content string) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, commentID string, requester shared.Principal) (*dto.DeleteCommentResponse, error)
	GetReviewComments(ctx context.Context, reviewID string, p dto.Pagination) (*dto.Paginated[dto.ThreadedCommentResponse], error)
	GetCommentReplies(ctx context.Context, commentID string, p dto.Pagination) (*dto.Paginated[dto.CommentResponse], error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		reviewRepo:  reviewRepo,
	}
}

// AddComment creates a comment, or a reply when parentID is given. The
// parent must belong to the same review and must itself be top-level, so the
// thread never nests deeper than one reply level.
func (s *commentService) AddComment(ctx context.Context, reviewID, authorID, content string, parentID *string) (*dto.CommentResponse, error) {
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

	if parentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *parentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("parent comment not found")
			}
			return nil, apperrors.Internal("failed to load parent comment", err)
		}
		if parent.ReviewID != reviewID {
			return nil, apperrors.NotFound("parent comment not found")
		}
		if parent.IsReply() {
			return nil, apperrors.BadRequest("cannot reply to a reply")
		}
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		UserID:   authorID,
		Content:  content,
		ParentID: parentID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, apperrors.Internal("failed to create comment", err)
	}

	// Reload with author data for the denormalized name
	comment, err = s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, apperrors.Internal("failed to reload comment", err)
	}

	return dto.FromModelToCommentResponse(comment), nil
}

// UpdateComment replaces a comment's content. Author-only; admins are not
// exempt from the ownership check here.
func (s *commentService) UpdateComment(ctx context.Context, commentID, requesterID, content string) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("comment not found")
		}
		return nil, apperrors.Internal("failed to load comment", err)
	}

	if comment.UserID != requesterID {
		return nil, apperrors.Forbidden("you are not authorized to update this comment")
	}

	if err := s.commentRepo.UpdateContent(ctx, commentID, content); err != nil {
		return nil, apperrors.Internal("failed to update comment", err)
	}

	comment, err = s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, apperrors.Internal("failed to reload comment", err)
	}

	return dto.FromModelToCommentResponse(comment), nil
}

// DeleteComment removes a comment. A top-level comment that still has
// replies is tombstoned instead of deleted so the replies keep a valid
// parent; the tombstone text names the acting side. Replies and childless
// top-level comments are hard-deleted.
func (s *commentService) DeleteComment(ctx context.Context, commentID string, requester shared.Principal) (*dto.DeleteCommentResponse, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("comment not found")
		}
		return nil, apperrors.Internal("failed to load comment", err)
	}

	if comment.UserID != requester.UserID && !requester.IsAdmin() {
		return nil, apperrors.Forbidden("you are not authorized to delete this comment")
	}

	if !comment.IsReply() {
		replyCount, err := s.commentRepo.CountReplies(ctx, commentID)
		if err != nil {
			return nil, apperrors.Internal("failed to count replies", err)
		}
		if replyCount > 0 {
			tombstone := models.TombstoneUser
			if requester.IsAdmin() {
				tombstone = models.TombstoneAdmin
			}
			if err := s.commentRepo.UpdateContent(ctx, commentID, tombstone); err != nil {
				return nil, apperrors.Internal("failed to tombstone comment", err)
			}
			return &dto.DeleteCommentResponse{
				ID:              commentID,
				Message:         "Comment content removed but kept for reply context",
				RetainedReplies: &replyCount,
			}, nil
		}
	}

	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return nil, apperrors.Internal("failed to delete comment", err)
	}

	return &dto.DeleteCommentResponse{
		ID:      commentID,
		Message: "Comment deleted successfully",
	}, nil
}

// GetReviewComments returns one page of top-level comments, newest first,
// each carrying its full reply list.
func (s *commentService) GetReviewComments(ctx context.Context, reviewID string, p dto.Pagination) (*dto.Paginated[dto.ThreadedCommentResponse], error) {
	if _, err := s.reviewRepo.GetByID(ctx, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("review not found")
		}
		return nil, apperrors.Internal("failed to load review", err)
	}

	comments, total, err := s.commentRepo.GetTopLevelByReview(ctx, reviewID, p.Skip, p.Limit)
	if err != nil {
		return nil, apperrors.Internal("failed to list comments", err)
	}

	threaded := make([]dto.ThreadedCommentResponse, 0, len(comments))
	for i := range comments {
		threaded = append(threaded, *dto.FromModelToThreadedCommentResponse(&comments[i]))
	}

	return dto.NewPaginated(threaded, total, p), nil
}

// GetCommentReplies returns one page of a comment's direct replies, oldest
// first.
func (s *commentService) GetCommentReplies(ctx context.Context, commentID string, p dto.Pagination) (*dto.Paginated[dto.CommentResponse], error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("comment not found")
		}
		return nil, apperrors.Internal("failed to load comment", err)
	}

	replies, total, err := s.commentRepo.GetReplies(ctx, commentID, p.Skip, p.Limit)
	if err != nil {
		return nil, apperrors.Internal("failed to list replies", err)
	}

	responses := make([]dto.CommentResponse, 0, len(replies))
	for i := range replies {
		responses = append(responses, *dto.FromModelToCommentResponse(&replies[i]))
	}

	return dto.NewPaginated(responses, total, p), nil
}
