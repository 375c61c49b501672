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

// featuredLimit is the default number of cards on the homepage rails,
// split between highest-rated and most-voted.
const featuredLimit = 6

// relatedLimit is the default number of same-category suggestions.
const relatedLimit = 4

type ReviewService interface {
	CreateReview(ctx context.Context, author shared.Principal, req dto.CreateReviewDTO) (*dto.ReviewDetailResponse, error)
	UpdateReview(ctx context.Context, reviewID string, requester shared.Principal, req dto.UpdateReviewDTO) (*dto.ReviewDetailResponse, error)
	DeleteReview(ctx context.Context, reviewID string, requester shared.Principal) error
	RemoveImage(ctx context.Context, reviewID string, requester shared.Principal, imageURL string) (*dto.ReviewDetailResponse, error)
	GetAllReviews(ctx context.Context, query dto.ReviewListQuery) (*dto.Paginated[dto.ReviewListItem], error)
	GetReviewByID(ctx context.Context, reviewID string, requester *shared.Principal) (*dto.ReviewDetailResponse, error)
	GetFeaturedReviews(ctx context.Context) (*dto.FeaturedReviewsResponse, error)
	GetRelatedReviews(ctx context.Context, reviewID string) ([]dto.ReviewSummary, error)
	GetUserReviews(ctx context.Context, userID string, p dto.Pagination) (*dto.Paginated[dto.UserReviewItem], error)
}

type reviewService struct {
	reviewRepo   repository.ReviewRepository
	voteRepo     repository.VoteRepository
	commentRepo  repository.CommentRepository
	categoryRepo repository.CategoryRepository
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	voteRepo repository.VoteRepository,
	commentRepo repository.CommentRepository,
	categoryRepo repository.CategoryRepository,
) ReviewService {
	return &reviewService{
		reviewRepo:   reviewRepo,
		voteRepo:     voteRepo,
		commentRepo:  commentRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateReview submits a review. Admin-created reviews publish immediately;
// everyone else starts in DRAFT pending moderation. isPremium=true requires
// a positive price, and a price without the flag is dropped.
func (s *reviewService) CreateReview(ctx context.Context, author shared.Principal, req dto.CreateReviewDTO) (*dto.ReviewDetailResponse, error) {
	if req.IsPremium && (req.PremiumPrice == nil || *req.PremiumPrice <= 0) {
		return nil, apperrors.BadRequest("premium price is required for premium reviews")
	}

	if _, err := s.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("category not found")
		}
		return nil, apperrors.Internal("failed to load category", err)
	}

	status := models.StatusDraft
	if author.IsAdmin() {
		status = models.StatusPublished
	}

	var premiumPrice *float64
	if req.IsPremium {
		premiumPrice = req.PremiumPrice
	}

	review := &models.Review{
		Title:          req.Title,
		Description:    req.Description,
		Rating:         req.Rating,
		PurchaseSource: req.PurchaseSource,
		IsPremium:      req.IsPremium,
		PremiumPrice:   premiumPrice,
		Status:         status,
		CategoryID:     req.CategoryID,
		UserID:         author.UserID,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, apperrors.Internal("failed to create review", err)
	}

	if err := s.reviewRepo.AddImages(ctx, imageRows(review.ID, req.Images, 0)); err != nil {
		return nil, apperrors.Internal("failed to attach images", err)
	}

	return s.loadDetail(ctx, review.ID, &author)
}

// UpdateReview merges a partial patch. Owner or admin only; a non-admin's
// changes to the premium fields are silently ignored, and a non-admin edit
// of a PUBLISHED review sends it back to DRAFT for re-moderation.
func (s *reviewService) UpdateReview(ctx context.Context, reviewID string, requester shared.Principal, req dto.UpdateReviewDTO) (*dto.ReviewDetailResponse, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("review not found")
		}
		return nil, apperrors.Internal("failed to load review", err)
	}

	if review.UserID != requester.UserID && !requester.IsAdmin() {
		return nil, apperrors.Forbidden("you are not authorized to update this review")
	}

	if req.Title != nil {
		review.Title = *req.Title
	}
	if req.Description != nil {
		review.Description = *req.Description
	}
	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.PurchaseSource != nil {
		review.PurchaseSource = req.PurchaseSource
	}
	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, *req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.NotFound("category not found")
			}
			return nil, apperrors.Internal("failed to load category", err)
		}
		review.CategoryID = *req.CategoryID
	}

	// Premium fields are admin-only; anyone else's patch to them is dropped.
	if requester.IsAdmin() {
		if req.IsPremium != nil {
			review.IsPremium = *req.IsPremium
		}
		if req.PremiumPrice != nil {
			review.PremiumPrice = req.PremiumPrice
		}
		if review.IsPremium && (review.PremiumPrice == nil || *review.PremiumPrice <= 0) {
			return nil, apperrors.BadRequest("premium price is required for premium reviews")
		}
		if !review.IsPremium {
			review.PremiumPrice = nil
		}
	}

	// Any non-admin edit of a live review forces re-moderation.
	if !requester.IsAdmin() && review.Status == models.StatusPublished {
		review.Status = models.StatusDraft
	}

	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, apperrors.Internal("failed to update review", err)
	}

	if len(req.NewImages) > 0 {
		if err := s.reviewRepo.AddImages(ctx, imageRows(review.ID, req.NewImages, len(review.Images))); err != nil {
			return nil, apperrors.Internal("failed to attach images", err)
		}
	}

	return s.loadDetail(ctx, reviewID, &requester)
}

// DeleteReview removes the review and all of its votes and comments as one
// atomic unit. Owner or admin only.
func (s *reviewService) DeleteReview(ctx context.Context, reviewID string, requester shared.Principal) error {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("review not found")
		}
		return apperrors.Internal("failed to load review", err)
	}

	if review.UserID != requester.UserID && !requester.IsAdmin() {
		return apperrors.Forbidden("you are not authorized to delete this review")
	}

	if err := s.reviewRepo.DeleteCascade(ctx, reviewID); err != nil {
		return apperrors.Internal("failed to delete review", err)
	}
	return nil
}

// RemoveImage detaches one image URL. A URL not on the review is a no-op.
func (s *reviewService) RemoveImage(ctx context.Context, reviewID string, requester shared.Principal, imageURL string) (*dto.ReviewDetailResponse, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("review not found")
		}
		return nil, apperrors.Internal("failed to load review", err)
	}

	if review.UserID != requester.UserID && !requester.IsAdmin() {
		return nil, apperrors.Forbidden("you are not authorized to update this review")
	}

	if err := s.reviewRepo.RemoveImage(ctx, reviewID, imageURL); err != nil {
		return nil, apperrors.Internal("failed to remove image", err)
	}

	return s.loadDetail(ctx, reviewID, &requester)
}

// GetAllReviews lists reviews through the closed filter surface. Premium
// descriptions are truncated to the preview prefix.
func (s *reviewService) GetAllReviews(ctx context.Context, query dto.ReviewListQuery) (*dto.Paginated[dto.ReviewListItem], error) {
	p := query.PaginationQuery.Normalize()
	filter := repository.ReviewFilter{
		Status:     query.Status,
		CategoryID: query.CategoryID,
		IsPremium:  query.IsPremium,
		Rating:     query.Rating,
		Title:      query.Title,
	}

	reviews, total, err := s.reviewRepo.List(ctx, filter, p.Skip, p.Limit, repository.SortColumn(p.SortBy)+" "+p.SortOrder)
	if err != nil {
		return nil, apperrors.Internal("failed to list reviews", err)
	}

	upvotes, comments, err := s.countsForPage(ctx, reviews)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ReviewListItem, 0, len(reviews))
	for i := range reviews {
		review := &reviews[i]
		items = append(items, *dto.FromModelToReviewListItem(review, upvotes[review.ID], comments[review.ID]))
	}

	return dto.NewPaginated(items, total, p), nil
}

// GetReviewByID returns the full detail view with vote tallies, the
// requester's own vote and the comment thread. Non-PUBLISHED reviews are
// visible only to their owner or an admin; everyone else gets NotFound.
func (s *reviewService) GetReviewByID(ctx context.Context, reviewID string, requester *shared.Principal) (*dto.ReviewDetailResponse, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("review not found")
		}
		return nil, apperrors.Internal("failed to load review", err)
	}

	if review.Status != models.StatusPublished {
		if requester == nil || (review.UserID != requester.UserID && !requester.IsAdmin()) {
			return nil, apperrors.NotFound("review not found")
		}
	}

	return s.detailFromModel(ctx, review, requester)
}

// GetFeaturedReviews builds the homepage rails: one half highest-rated, one
// half most-voted, published reviews only.
func (s *reviewService) GetFeaturedReviews(ctx context.Context) (*dto.FeaturedReviewsResponse, error) {
	highest, err := s.reviewRepo.HighestRated(ctx, featuredLimit/2)
	if err != nil {
		return nil, apperrors.Internal("failed to load highest rated reviews", err)
	}
	voted, err := s.reviewRepo.MostVoted(ctx, featuredLimit/2)
	if err != nil {
		return nil, apperrors.Internal("failed to load most voted reviews", err)
	}

	highestCards, err := s.summariesForPage(ctx, highest)
	if err != nil {
		return nil, err
	}
	votedCards, err := s.summariesForPage(ctx, voted)
	if err != nil {
		return nil, err
	}

	return &dto.FeaturedReviewsResponse{
		HighestRated: highestCards,
		MostVoted:    votedCards,
	}, nil
}

// GetRelatedReviews suggests published reviews from the same category.
func (s *reviewService) GetRelatedReviews(ctx context.Context, reviewID string) ([]dto.ReviewSummary, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("review not found")
		}
		return nil, apperrors.Internal("failed to load review", err)
	}

	related, err := s.reviewRepo.Related(ctx, review.CategoryID, reviewID, relatedLimit)
	if err != nil {
		return nil, apperrors.Internal("failed to load related reviews", err)
	}

	return s.summariesForPage(ctx, related)
}

// GetUserReviews lists an author's own reviews across all statuses,
// including moderation notes.
func (s *reviewService) GetUserReviews(ctx context.Context, userID string, p dto.Pagination) (*dto.Paginated[dto.UserReviewItem], error) {
	filter := repository.ReviewFilter{UserID: &userID}
	reviews, total, err := s.reviewRepo.List(ctx, filter, p.Skip, p.Limit, "created_at desc")
	if err != nil {
		return nil, apperrors.Internal("failed to list user reviews", err)
	}

	upvotes, comments, err := s.countsForPage(ctx, reviews)
	if err != nil {
		return nil, err
	}

	items := make([]dto.UserReviewItem, 0, len(reviews))
	for i := range reviews {
		review := &reviews[i]
		items = append(items, *dto.FromModelToUserReviewItem(review, upvotes[review.ID], comments[review.ID]))
	}

	return dto.NewPaginated(items, total, p), nil
}

// countsForPage batches the per-review upvote and comment counts for one
// page of reviews.
func (s *reviewService) countsForPage(ctx context.Context, reviews []models.Review) (map[string]int64, map[string]int64, error) {
	ids := make([]string, 0, len(reviews))
	for i := range reviews {
		ids = append(ids, reviews[i].ID)
	}

	upvotes, err := s.voteRepo.CountUpvotesByReviewIDs(ctx, ids)
	if err != nil {
		return nil, nil, apperrors.Internal("failed to count upvotes", err)
	}
	comments, err := s.commentRepo.CountByReviewIDs(ctx, ids)
	if err != nil {
		return nil, nil, apperrors.Internal("failed to count comments", err)
	}
	return upvotes, comments, nil
}

func (s *reviewService) summariesForPage(ctx context.Context, reviews []models.Review) ([]dto.ReviewSummary, error) {
	ids := make([]string, 0, len(reviews))
	for i := range reviews {
		ids = append(ids, reviews[i].ID)
	}
	upvotes, err := s.voteRepo.CountUpvotesByReviewIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.Internal("failed to count upvotes", err)
	}

	cards := make([]dto.ReviewSummary, 0, len(reviews))
	for i := range reviews {
		review := &reviews[i]
		cards = append(cards, *dto.FromModelToReviewSummary(review, upvotes[review.ID]))
	}
	return cards, nil
}

func (s *reviewService) loadDetail(ctx context.Context, reviewID string, requester *shared.Principal) (*dto.ReviewDetailResponse, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, apperrors.Internal("failed to reload review", err)
	}
	return s.detailFromModel(ctx, review, requester)
}

func (s *reviewService) detailFromModel(ctx context.Context, review *models.Review, requester *shared.Principal) (*dto.ReviewDetailResponse, error) {
	upvotes, downvotes, err := s.voteRepo.CountByType(ctx, review.ID)
	if err != nil {
		return nil, apperrors.Internal("failed to count votes", err)
	}

	var userVote *string
	if requester != nil {
		vote, err := s.voteRepo.GetByReviewAndUser(ctx, review.ID, requester.UserID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Internal("failed to look up vote", err)
		}
		if vote != nil {
			userVote = &vote.Type
		}
	}

	comments, _, err := s.commentRepo.GetTopLevelByReview(ctx, review.ID, 0, dto.MaxLimit)
	if err != nil {
		return nil, apperrors.Internal("failed to list comments", err)
	}
	threaded := make([]dto.ThreadedCommentResponse, 0, len(comments))
	for i := range comments {
		threaded = append(threaded, *dto.FromModelToThreadedCommentResponse(&comments[i]))
	}

	return &dto.ReviewDetailResponse{
		ID:             review.ID,
		Title:          review.Title,
		Description:    review.Description,
		Rating:         review.Rating,
		PurchaseSource: review.PurchaseSource,
		Images:         review.ImageURLs(),
		IsPremium:      review.IsPremium,
		PremiumPrice:   review.PremiumPrice,
		Status:         review.Status,
		Category:       review.Category.Name,
		CategoryID:     review.CategoryID,
		Author:         review.User.Name,
		AuthorID:       review.UserID,
		AuthorRole:     review.User.Role,
		AuthorImage:    review.User.ProfilePhoto,
		CreatedAt:      review.CreatedAt,
		UpdatedAt:      review.UpdatedAt,
		Votes: dto.ReviewVotesBlock{
			Upvotes:   upvotes,
			Downvotes: downvotes,
			UserVote:  userVote,
		},
		Comments: threaded,
	}, nil
}

func imageRows(reviewID string, urls []string, basePosition int) []models.ReviewImage {
	images := make([]models.ReviewImage, 0, len(urls))
	for i, url := range urls {
		images = append(images, models.ReviewImage{
			ReviewID: reviewID,
			URL:      url,
			Position: basePosition + i,
		})
	}
	return images
}
