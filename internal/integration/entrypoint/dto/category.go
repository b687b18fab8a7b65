// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/financeflow/backend/internal/application/usecase/category"
	"github.com/financeflow/backend/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color,omitempty"`
	Icon  string `json:"icon,omitempty"`
	Type  string `json:"type" binding:"required"`
}

// UpdateCategoryRequest represents the request body for category update.
type UpdateCategoryRequest struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
	Icon  *string `json:"icon,omitempty"`
	Type  *string `json:"type,omitempty"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Color            string    `json:"color"`
	Icon             string    `json:"icon"`
	Type             string    `json:"type"`
	TransactionCount int       `json:"transaction_count"`
	PeriodTotal      string    `json:"period_total"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a domain Category entity to a CategoryResponse DTO.
func ToCategoryResponse(cat *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          cat.ID.String(),
		Name:        cat.Name,
		Color:       cat.Color,
		Icon:        cat.Icon,
		Type:        string(cat.Type),
		PeriodTotal: "0.00",
		CreatedAt:   cat.CreatedAt,
		UpdatedAt:   cat.UpdatedAt,
	}
}

// ToCategoryListResponse converts a list of CategoryOutput to CategoryListResponse.
func ToCategoryListResponse(outputs []*category.CategoryOutput) CategoryListResponse {
	categories := make([]CategoryResponse, len(outputs))
	for i, output := range outputs {
		categories[i] = CategoryResponse{
			ID:               output.ID.String(),
			Name:             output.Name,
			Color:            output.Color,
			Icon:             output.Icon,
			Type:             string(output.Type),
			TransactionCount: output.TransactionCount,
			PeriodTotal:      output.PeriodTotal.StringFixed(2),
			CreatedAt:        output.CreatedAt,
			UpdatedAt:        output.UpdatedAt,
		}
	}
	return CategoryListResponse{
		Categories: categories,
	}
}
