package dto

import (
	"time"

	"reviewhub/internal/http-api/models"
)

// CreateCommentDTO for adding a comment or a reply to a review
type CreateCommentDTO struct {
	Content  string  `json:"content" binding:"required,min=1,max=5000"`
	ParentID *string `json:"parent_id,omitempty" binding:"omitempty,uuid"`
}

// UpdateCommentDTO for editing a comment's content
type UpdateCommentDTO struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// CommentResponse for returning a single comment with its denormalized
// author name
type CommentResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	ReviewID  string    `json:"review_id"`
	ParentID  *string   `json:"parent_id,omitempty"`
	Author    string    `json:"author"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromModelToCommentResponse converts a Comment model to CommentResponse DTO
func FromModelToCommentResponse(comment *models.Comment) *CommentResponse {
	return &CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		ReviewID:  comment.ReviewID,
		ParentID:  comment.ParentID,
		Author:    comment.User.Name,
		AuthorID:  comment.UserID,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

// ThreadedCommentResponse is a top-level comment with its direct replies
// eagerly attached.
type ThreadedCommentResponse struct {
	CommentResponse
	ReplyCount int               `json:"reply_count"`
	Replies    []CommentResponse `json:"replies"`
}

// FromModelToThreadedCommentResponse converts a top-level comment and its
// preloaded replies.
func FromModelToThreadedCommentResponse(comment *models.Comment) *ThreadedCommentResponse {
	replies := make([]CommentResponse, 0, len(comment.Replies))
	for i := range comment.Replies {
		replies = append(replies, *FromModelToCommentResponse(&comment.Replies[i]))
	}
	return &ThreadedCommentResponse{
		CommentResponse: *FromModelToCommentResponse(comment),
		ReplyCount:      len(comment.Replies),
		Replies:         replies,
	}
}

// DeleteCommentResponse reports the delete outcome. RetainedReplies is set
// only on the tombstone path.
type DeleteCommentResponse struct {
	ID              string `json:"id"`
	Message         string `json:"message"`
	RetainedReplies *int64 `json:"retained_replies,omitempty"`
}
