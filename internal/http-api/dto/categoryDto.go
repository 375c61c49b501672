package dto

import (
	"time"

	"reviewhub/internal/http-api/models"
)

// CreateCategoryDTO for creating a category (admin only)
type CreateCategoryDTO struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func FromModelToCategoryResponse(category *models.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		CreatedAt: category.CreatedAt,
	}
}
