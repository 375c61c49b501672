package dto

import (
	"time"

	"reviewhub/internal/http-api/models"
)

// PublishReviewDTO carries optional premium settings and a moderation note
// applied while publishing.
type PublishReviewDTO struct {
	IsPremium      *bool    `json:"is_premium,omitempty"`
	PremiumPrice   *float64 `json:"premium_price,omitempty"`
	ModerationNote *string  `json:"moderation_note,omitempty"`
}

// UnpublishReviewDTO carries the optional moderation note attached while
// unpublishing.
type UnpublishReviewDTO struct {
	ModerationNote *string `json:"moderation_note,omitempty"`
}

// AdminReviewListQuery is the moderation listing filter. Status "ALL" (or
// absent) means no status filter.
type AdminReviewListQuery struct {
	PaginationQuery
	Status     *string `form:"status" binding:"omitempty,oneof=ALL DRAFT PUBLISHED UNPUBLISHED"`
	CategoryID *string `form:"category_id" binding:"omitempty,uuid"`
	UserID     *string `form:"user_id" binding:"omitempty,uuid"`
	IsPremium  *bool   `form:"is_premium"`
	SearchTerm *string `form:"search_term"`
}

// AdminReviewItem is one moderation-queue row, including author contact and
// the moderation note.
type AdminReviewItem struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Rating         int       `json:"rating"`
	PurchaseSource *string   `json:"purchase_source,omitempty"`
	Images         []string  `json:"images"`
	IsPremium      bool      `json:"is_premium"`
	PremiumPrice   *float64  `json:"premium_price,omitempty"`
	Status         string    `json:"status"`
	ModerationNote *string   `json:"moderation_note,omitempty"`
	CategoryID     string    `json:"category_id"`
	CategoryName   string    `json:"category_name"`
	UserID         string    `json:"user_id"`
	UserName       string    `json:"user_name"`
	UserEmail      string    `json:"user_email"`
	UserRole       string    `json:"user_role"`
	Upvotes        int64     `json:"upvotes"`
	Comments       int64     `json:"comments"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func FromModelToAdminReviewItem(review *models.Review, upvotes, comments int64) *AdminReviewItem {
	return &AdminReviewItem{
		ID:             review.ID,
		Title:          review.Title,
		Description:    review.Description,
		Rating:         review.Rating,
		PurchaseSource: review.PurchaseSource,
		Images:         review.ImageURLs(),
		IsPremium:      review.IsPremium,
		PremiumPrice:   review.PremiumPrice,
		Status:         review.Status,
		ModerationNote: review.ModerationNote,
		CategoryID:     review.CategoryID,
		CategoryName:   review.Category.Name,
		UserID:         review.UserID,
		UserName:       review.User.Name,
		UserEmail:      review.User.Email,
		UserRole:       review.User.Role,
		Upvotes:        upvotes,
		Comments:       comments,
		CreatedAt:      review.CreatedAt,
		UpdatedAt:      review.UpdatedAt,
	}
}

// ModeratedReviewResponse is the summary returned after a status change.
type ModeratedReviewResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Status         string    `json:"status"`
	IsPremium      bool      `json:"is_premium"`
	PremiumPrice   *float64  `json:"premium_price,omitempty"`
	ModerationNote *string   `json:"moderation_note,omitempty"`
	CategoryName   string    `json:"category_name"`
	UserName       string    `json:"user_name"`
	UserEmail      string    `json:"user_email"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func FromModelToModeratedReviewResponse(review *models.Review) *ModeratedReviewResponse {
	return &ModeratedReviewResponse{
		ID:             review.ID,
		Title:          review.Title,
		Status:         review.Status,
		IsPremium:      review.IsPremium,
		PremiumPrice:   review.PremiumPrice,
		ModerationNote: review.ModerationNote,
		CategoryName:   review.Category.Name,
		UserName:       review.User.Name,
		UserEmail:      review.User.Email,
		UpdatedAt:      review.UpdatedAt,
	}
}

// ReviewStatsResponse is the by-status breakdown for the moderation
// dashboard.
type ReviewStatsResponse struct {
	Total       int64 `json:"total"`
	Published   int64 `json:"published"`
	Draft       int64 `json:"draft"`
	Unpublished int64 `json:"unpublished"`
	Premium     int64 `json:"premium"`
}
