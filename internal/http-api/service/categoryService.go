package service

import (
	"context"
	"errors"

	"reviewhub/internal/apperrors"
	"reviewhub/internal/http-api/dto"
	"reviewhub/internal/http-api/models"
	"reviewhub/internal/http-api/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryDTO) (*dto.CategoryResponse, error)
	GetCategory(ctx context.Context, id string) (*dto.CategoryResponse, error)
	ListCategories(ctx context.Context) ([]dto.CategoryResponse, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryDTO) (*dto.CategoryResponse, error) {
	category := &models.Category{Name: req.Name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperrors.Conflict("category name already exists")
		}
		return nil, apperrors.Internal("failed to create category", err)
	}
	return dto.FromModelToCategoryResponse(category), nil
}

func (s *categoryService) GetCategory(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("category not found")
		}
		return nil, apperrors.Internal("failed to load category", err)
	}
	return dto.FromModelToCategoryResponse(category), nil
}

func (s *categoryService) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list categories", err)
	}

	items := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, *dto.FromModelToCategoryResponse(&categories[i]))
	}
	return items, nil
}
