package service

import (
	"context"
	"errors"
	"log/slog"

	"reviewhub/internal/apperrors"
	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"gorm.io/gorm"
)

// AdminReviewService is the moderation surface. Callers reach it only
// through the admin-gated routes, so it performs no ownership checks of its
// own.
type AdminReviewService interface {
	PublishReview(ctx context.Context, reviewID string, req dto.PublishReviewDTO) (*dto.ModeratedReviewResponse, error)
	UnpublishReview(ctx context.Context, reviewID string, req dto.UnpublishReviewDTO) (*dto.ModeratedReviewResponse, error)
	ListReviews(ctx context.Context, query dto.AdminReviewListQuery) (*dto.Paginated[dto.AdminReviewItem], error)
	GetReviewStats(ctx context.Context) (*dto.ReviewStatsResponse, error)
}

type adminReviewService struct {
	reviewRepo  repository.ReviewRepository
	voteRepo    repository.VoteRepository
	commentRepo repository.CommentRepository
	logger      *slog.Logger
}

func NewAdminReviewService(
	reviewRepo repository.ReviewRepository,
	voteRepo repository.VoteRepository,
	commentRepo repository.CommentRepository,
	logger *slog.Logger,
) AdminReviewService {
	return &adminReviewService{
		reviewRepo:  reviewRepo,
		voteRepo:    voteRepo,
		commentRepo: commentRepo,
		logger:      logger,
	}
}

// PublishReview sets the review live, optionally adjusting its premium
// settings in the same moderation action. The moderation note is always
// overwritten: an omitted note clears any previous one.
func (s *adminReviewService) PublishReview(ctx context.Context, reviewID string, req dto.PublishReviewDTO) (*dto.ModeratedReviewResponse, error) {
	review, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("review not found")
		}
		return nil, apperrors.Internal("failed to load review", err)
	}

	isPremium := review.IsPremium
	if req.IsPremium != nil {
		isPremium = *req.IsPremium
	}
	premiumPrice := review.PremiumPrice
	if req.PremiumPrice != nil {
		premiumPrice = req.PremiumPrice
	}
	if isPremium && (premiumPrice == nil || *premiumPrice <= 0) {
		return nil, apperrors.BadRequest("premium price is required for premium reviews")
	}
	if !isPremium {
		premiumPrice = nil
	}

	fields := map[string]interface{}{
		"status":          models.StatusPublished,
		"is_premium":      isPremium,
		"premium_price":   premiumPrice,
		"moderation_note": req.ModerationNote,
	}
	if err := s.reviewRepo.UpdateFields(ctx, reviewID, fields); err != nil {
		return nil, apperrors.Internal("failed to publish review", err)
	}

	s.logger.Info("review published",
		slog.String("review_id", reviewID),
		slog.Bool("is_premium", isPremium))

	updated, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, apperrors.Internal("failed to reload review", err)
	}
	return dto.FromModelToModeratedReviewResponse(updated), nil
}

// UnpublishReview takes the review down. The moderation note follows the
// same overwrite-or-clear rule as publishing.
func (s *adminReviewService) UnpublishReview(ctx context.Context, reviewID string, req dto.UnpublishReviewDTO) (*dto.ModeratedReviewResponse, error) {
	if _, err := s.reviewRepo.GetByID(ctx, reviewID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("review not found")
		}
		return nil, apperrors.Internal("failed to load review", err)
	}

	fields := map[string]interface{}{
		"status":          models.StatusUnpublished,
		"moderation_note": req.ModerationNote,
	}
	if err := s.reviewRepo.UpdateFields(ctx, reviewID, fields); err != nil {
		return nil, apperrors.Internal("failed to unpublish review", err)
	}

	s.logger.Info("review unpublished", slog.String("review_id", reviewID))

	updated, err := s.reviewRepo.GetByID(ctx, reviewID)
	if err != nil {
		return nil, apperrors.Internal("failed to reload review", err)
	}
	return dto.FromModelToModeratedReviewResponse(updated), nil
}

// ListReviews is the moderation queue: all statuses unless filtered, with
// free-text search over title and description.
func (s *adminReviewService) ListReviews(ctx context.Context, query dto.AdminReviewListQuery) (*dto.Paginated[dto.AdminReviewItem], error) {
	p := query.PaginationQuery.Normalize()

	filter := repository.ReviewFilter{
		CategoryID: query.CategoryID,
		UserID:     query.UserID,
		IsPremium:  query.IsPremium,
		SearchTerm: query.SearchTerm,
	}
	if query.Status != nil && *query.Status != "ALL" {
		filter.Status = query.Status
	}

	reviews, total, err := s.reviewRepo.List(ctx, filter, p.Skip, p.Limit, repository.SortColumn(p.SortBy)+" "+p.SortOrder)
	if err != nil {
		return nil, apperrors.Internal("failed to list reviews", err)
	}

	ids := make([]string, 0, len(reviews))
	for i := range reviews {
		ids = append(ids, reviews[i].ID)
	}
	upvotes, err := s.voteRepo.CountUpvotesByReviewIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.Internal("failed to count upvotes", err)
	}
	comments, err := s.commentRepo.CountByReviewIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.Internal("failed to count comments", err)
	}

	items := make([]dto.AdminReviewItem, 0, len(reviews))
	for i := range reviews {
		review := &reviews[i]
		items = append(items, *dto.FromModelToAdminReviewItem(review, upvotes[review.ID], comments[review.ID]))
	}
	return dto.NewPaginated(items, total, p), nil
}

// GetReviewStats aggregates the by-status and premium counts for the
// moderation dashboard.
func (s *adminReviewService) GetReviewStats(ctx context.Context) (*dto.ReviewStatsResponse, error) {
	byStatus, err := s.reviewRepo.CountByStatus(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to count reviews by status", err)
	}
	premium, err := s.reviewRepo.CountPremium(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to count premium reviews", err)
	}

	stats := &dto.ReviewStatsResponse{
		Published:   byStatus[models.StatusPublished],
		Draft:       byStatus[models.StatusDraft],
		Unpublished: byStatus[models.StatusUnpublished],
		Premium:     premium,
	}
	stats.Total = stats.Published + stats.Draft + stats.Unpublished
	return stats, nil
}
