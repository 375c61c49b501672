package dto

import (
	"time"

	"reviewhub/internal/http-api/models"
)

// premiumPreviewLen is how many runes of a premium review's description list
// views expose. Paywall enforcement itself lives outside this service.
const premiumPreviewLen = 100

// CreateReviewDTO for submitting a review. Images arrive as already-uploaded
// URLs from the file-storage collaborator.
type CreateReviewDTO struct {
	Title          string   `json:"title" binding:"required,min=1,max=200"`
	Description    string   `json:"description" binding:"required,min=1"`
	Rating         int      `json:"rating" binding:"required,min=1,max=5"`
	CategoryID     string   `json:"category_id" binding:"required,uuid"`
	PurchaseSource *string  `json:"purchase_source,omitempty"`
	IsPremium      bool     `json:"is_premium"`
	PremiumPrice   *float64 `json:"premium_price,omitempty"`
	Images         []string `json:"images,omitempty" binding:"omitempty,dive,url"`
}

// UpdateReviewDTO is a partial patch; nil fields are left untouched.
// NewImages are appended to the existing list, never replace it.
type UpdateReviewDTO struct {
	Title          *string  `json:"title,omitempty" binding:"omitempty,min=1,max=200"`
	Description    *string  `json:"description,omitempty" binding:"omitempty,min=1"`
	Rating         *int     `json:"rating,omitempty" binding:"omitempty,min=1,max=5"`
	CategoryID     *string  `json:"category_id,omitempty" binding:"omitempty,uuid"`
	PurchaseSource *string  `json:"purchase_source,omitempty"`
	IsPremium      *bool    `json:"is_premium,omitempty"`
	PremiumPrice   *float64 `json:"premium_price,omitempty"`
	NewImages      []string `json:"new_images,omitempty" binding:"omitempty,dive,url"`
}

// RemoveImageDTO names the image URL to detach.
type RemoveImageDTO struct {
	ImageURL string `json:"image_url" binding:"required,url"`
}

// ReviewListQuery is the closed filter surface for public review listings.
type ReviewListQuery struct {
	PaginationQuery
	Status     *string `form:"status" binding:"omitempty,oneof=DRAFT PUBLISHED UNPUBLISHED"`
	CategoryID *string `form:"category_id" binding:"omitempty,uuid"`
	IsPremium  *bool   `form:"is_premium"`
	Rating     *int    `form:"rating" binding:"omitempty,min=1,max=5"`
	Title      *string `form:"title"`
}

// ReviewVotesBlock is the vote summary embedded in the detail view.
type ReviewVotesBlock struct {
	Upvotes   int64   `json:"upvotes"`
	Downvotes int64   `json:"downvotes"`
	UserVote  *string `json:"user_vote"`
}

// ReviewDetailResponse is the full single-review view with votes and the
// comment thread attached.
type ReviewDetailResponse struct {
	ID             string                    `json:"id"`
	Title          string                    `json:"title"`
	Description    string                    `json:"description"`
	Rating         int                       `json:"rating"`
	PurchaseSource *string                   `json:"purchase_source,omitempty"`
	Images         []string                  `json:"images"`
	IsPremium      bool                      `json:"is_premium"`
	PremiumPrice   *float64                  `json:"premium_price,omitempty"`
	Status         string                    `json:"status"`
	Category       string                    `json:"category"`
	CategoryID     string                    `json:"category_id"`
	Author         string                    `json:"author"`
	AuthorID       string                    `json:"author_id"`
	AuthorRole     string                    `json:"author_role"`
	AuthorImage    *string                   `json:"author_image,omitempty"`
	CreatedAt      time.Time                 `json:"created_at"`
	UpdatedAt      time.Time                 `json:"updated_at"`
	Votes          ReviewVotesBlock          `json:"votes"`
	Comments       []ThreadedCommentResponse `json:"comments"`
}

// ReviewListItem is one row of a public listing. Premium descriptions are
// cut to a fixed preview prefix.
type ReviewListItem struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	IsPremium      bool      `json:"is_premium"`
	PremiumPrice   *float64  `json:"premium_price,omitempty"`
	Rating         int       `json:"rating"`
	PurchaseSource *string   `json:"purchase_source,omitempty"`
	Images         []string  `json:"images"`
	Status         string    `json:"status"`
	Category       string    `json:"category"`
	Author         string    `json:"author"`
	AuthorID       string    `json:"author_id"`
	AuthorRole     string    `json:"author_role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Upvotes        int64     `json:"upvotes"`
	Comments       int64     `json:"comments"`
}

// FromModelToReviewListItem formats one listing row; counts come from the
// batched per-page aggregate queries.
func FromModelToReviewListItem(review *models.Review, upvotes, comments int64) *ReviewListItem {
	return &ReviewListItem{
		ID:             review.ID,
		Title:          review.Title,
		Description:    PreviewDescription(review),
		IsPremium:      review.IsPremium,
		PremiumPrice:   review.PremiumPrice,
		Rating:         review.Rating,
		PurchaseSource: review.PurchaseSource,
		Images:         review.ImageURLs(),
		Status:         review.Status,
		Category:       review.Category.Name,
		Author:         review.User.Name,
		AuthorID:       review.UserID,
		AuthorRole:     review.User.Role,
		CreatedAt:      review.CreatedAt,
		UpdatedAt:      review.UpdatedAt,
		Upvotes:        upvotes,
		Comments:       comments,
	}
}

// PreviewDescription truncates premium descriptions to the fixed preview
// prefix; free reviews pass through untouched.
func PreviewDescription(review *models.Review) string {
	if !review.IsPremium {
		return review.Description
	}
	runes := []rune(review.Description)
	if len(runes) <= premiumPreviewLen {
		return review.Description
	}
	return string(runes[:premiumPreviewLen]) + "..."
}

// ReviewSummary is the compact card used by featured and related listings.
type ReviewSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Rating    int       `json:"rating"`
	IsPremium bool      `json:"is_premium"`
	Category  string    `json:"category"`
	Author    string    `json:"author"`
	Upvotes   int64     `json:"upvotes"`
	Image     *string   `json:"image"`
	CreatedAt time.Time `json:"created_at"`
}

func FromModelToReviewSummary(review *models.Review, upvotes int64) *ReviewSummary {
	var image *string
	if urls := review.ImageURLs(); len(urls) > 0 {
		image = &urls[0]
	}
	return &ReviewSummary{
		ID:        review.ID,
		Title:     review.Title,
		Rating:    review.Rating,
		IsPremium: review.IsPremium,
		Category:  review.Category.Name,
		Author:    review.User.Name,
		Upvotes:   upvotes,
		Image:     image,
		CreatedAt: review.CreatedAt,
	}
}

// FeaturedReviewsResponse for the homepage rails
type FeaturedReviewsResponse struct {
	HighestRated []ReviewSummary `json:"highest_rated"`
	MostVoted    []ReviewSummary `json:"most_voted"`
}

// UserReviewItem is one row of an author's own listing; it includes status
// and the moderation note so authors can see moderation outcomes.
type UserReviewItem struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Rating         int       `json:"rating"`
	Status         string    `json:"status"`
	IsPremium      bool      `json:"is_premium"`
	ModerationNote *string   `json:"moderation_note,omitempty"`
	Category       string    `json:"category"`
	Upvotes        int64     `json:"upvotes"`
	Comments       int64     `json:"comments"`
	Image          *string   `json:"image"`
	CreatedAt      time.Time `json:"created_at"`
}

func FromModelToUserReviewItem(review *models.Review, upvotes, comments int64) *UserReviewItem {
	var image *string
	if urls := review.ImageURLs(); len(urls) > 0 {
		image = &urls[0]
	}
	return &UserReviewItem{
		ID:             review.ID,
		Title:          review.Title,
		Description:    review.Description,
		Rating:         review.Rating,
		Status:         review.Status,
		IsPremium:      review.IsPremium,
		ModerationNote: review.ModerationNote,
		Category:       review.Category.Name,
		Upvotes:        upvotes,
		Comments:       comments,
		Image:          image,
		CreatedAt:      review.CreatedAt,
	}
}
