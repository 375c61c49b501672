package repository

import (
	"context"
	"fmt"

	"reviewhub/internal/http-api/models"

	"gorm.io/gorm"
)

// ReviewFilter enumerates the supported review filters, one named optional
// field per predicate. Nil means "not filtered". Keeping this closed (no
// key/value pass-through) keeps the query surface type-checked.
type ReviewFilter struct {
	Status     *string
	CategoryID *string
	IsPremium  *bool
	Rating     *int
	Title      *string // case-insensitive contains on title
	SearchTerm *string // case-insensitive contains on title or description
	UserID     *string
}

// sortColumns whitelists client-facing sort keys to their columns.
var sortColumns = map[string]string{
	"createdAt":  "created_at",
	"created_at": "created_at",
	"updatedAt":  "updated_at",
	"updated_at": "updated_at",
	"rating":     "rating",
	"title":      "title",
}

// SortColumn resolves a requested sort key, falling back to created_at for
// anything outside the whitelist.
func SortColumn(key string) string {
	if col, ok := sortColumns[key]; ok {
		return col
	}
	return "created_at"
}

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id string) (*models.Review, error)
	Save(ctx context.Context, review *models.Review) error
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	DeleteCascade(ctx context.Context, id string) error
	List(ctx context.Context, filter ReviewFilter, skip, limit int, orderBy string) ([]models.Review, int64, error)
	AddImages(ctx context.Context, images []models.ReviewImage) error
	RemoveImage(ctx context.Context, reviewID, url string) error
	HighestRated(ctx context.Context, limit int) ([]models.Review, error)
	MostVoted(ctx context.Context, limit int) ([]models.Review, error)
	Related(ctx context.Context, categoryID, excludeID string, limit int) ([]models.Review, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountPremium(ctx context.Context) (int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

// GetByID retrieves a review with its category, author and images.
func (r *reviewRepository) GetByID(ctx context.Context, id string) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("User").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&review, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Save(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Omit("Category", "User", "Images").Save(review).Error; err != nil {
		return fmt.Errorf("save review: %w", err)
	}
	return nil
}

// UpdateFields applies a partial update. Nil values in the map clear the
// column, which Save cannot express for pointer fields already nil in the
// struct (moderation note clearing relies on this).
func (r *reviewRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	if err := r.db.WithContext(ctx).Model(&models.Review{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return fmt.Errorf("update review fields: %w", err)
	}
	return nil
}

// DeleteCascade removes the review together with its votes, comments and
// image rows in one transaction, all-or-nothing.
func (r *reviewRepository) DeleteCascade(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", id).Delete(&models.Vote{}).Error; err != nil {
			return fmt.Errorf("delete review votes: %w", err)
		}
		if err := tx.Where("review_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("delete review comments: %w", err)
		}
		if err := tx.Where("review_id = ?", id).Delete(&models.ReviewImage{}).Error; err != nil {
			return fmt.Errorf("delete review images: %w", err)
		}
		if err := tx.Delete(&models.Review{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("delete review: %w", err)
		}
		return nil
	})
}

func (r *reviewRepository) applyFilter(db *gorm.DB, filter ReviewFilter) *gorm.DB {
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}
	if filter.CategoryID != nil {
		db = db.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.IsPremium != nil {
		db = db.Where("is_premium = ?", *filter.IsPremium)
	}
	if filter.Rating != nil {
		db = db.Where("rating = ?", *filter.Rating)
	}
	if filter.Title != nil {
		db = db.Where("title ILIKE ?", "%"+*filter.Title+"%")
	}
	if filter.SearchTerm != nil {
		p := "%" + *filter.SearchTerm + "%"
		db = db.Where("title ILIKE ? OR description ILIKE ?", p, p)
	}
	if filter.UserID != nil {
		db = db.Where("user_id = ?", *filter.UserID)
	}
	return db
}

// List returns one page plus the total count over the same predicate. The
// two reads are independent queries, not snapshot-consistent with each other.
func (r *reviewRepository) List(ctx context.Context, filter ReviewFilter, skip, limit int, orderBy string) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.Review{}), filter).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count reviews: %w", err)
	}

	err := r.applyFilter(r.db.WithContext(ctx), filter).
		Preload("Category").
		Preload("User").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order(orderBy).
		Limit(limit).
		Offset(skip).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews: %w", err)
	}

	return reviews, total, nil
}

func (r *reviewRepository) AddImages(ctx context.Context, images []models.ReviewImage) error {
	if len(images) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&images).Error; err != nil {
		return fmt.Errorf("add review images: %w", err)
	}
	return nil
}

// RemoveImage deletes the image row matching the URL. A URL that is not
// attached is a no-op, not an error.
func (r *reviewRepository) RemoveImage(ctx context.Context, reviewID, url string) error {
	if err := r.db.WithContext(ctx).
		Where("review_id = ? AND url = ?", reviewID, url).
		Delete(&models.ReviewImage{}).Error; err != nil {
		return fmt.Errorf("remove review image: %w", err)
	}
	return nil
}

func (r *reviewRepository) HighestRated(ctx context.Context, limit int) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("status = ?", models.StatusPublished).
		Preload("Category").
		Preload("User").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("rating DESC").
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("highest rated reviews: %w", err)
	}
	return reviews, nil
}

func (r *reviewRepository) MostVoted(ctx context.Context, limit int) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("status = ?", models.StatusPublished).
		Preload("Category").
		Preload("User").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("(SELECT COUNT(*) FROM votes WHERE votes.review_id = reviews.id) DESC").
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("most voted reviews: %w", err)
	}
	return reviews, nil
}

func (r *reviewRepository) Related(ctx context.Context, categoryID, excludeID string, limit int) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("category_id = ? AND id <> ? AND status = ?", categoryID, excludeID, models.StatusPublished).
		Preload("Category").
		Preload("User").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Limit(limit).
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("related reviews: %w", err)
	}
	return reviews, nil
}

// CountByStatus returns review counts grouped by status.
func (r *reviewRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Select("status, COUNT(id) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count reviews by status: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *reviewRepository) CountPremium(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).Where("is_premium = ?", true).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count premium reviews: %w", err)
	}
	return count, nil
}
