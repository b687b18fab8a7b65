// Package category contains category-related use cases.
package category

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/backend/internal/application/adapter"
	"github.com/financeflow/backend/internal/domain/entity"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	UserID       uuid.UUID
	CategoryType *entity.CategoryType // Optional filter by category type
	StartDate    *time.Time           // Optional start date for statistics
	EndDate      *time.Time           // Optional end date for statistics
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []*CategoryOutput
}

// CategoryOutput represents a single category in the output.
type CategoryOutput struct {
	ID               uuid.UUID
	Name             string
	Color            string
	Icon             string
	Type             entity.CategoryType
	TransactionCount int
	PeriodTotal      decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ListCategoriesUseCase handles listing categories logic.
type ListCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(categoryRepo adapter.CategoryRepository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category listing.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	categories, err := uc.categoryRepo.FindByUser(ctx, input.UserID, input.CategoryType)
	if err != nil {
		return nil, err
	}

	var stats map[uuid.UUID]*adapter.CategoryStats
	if input.StartDate != nil && input.EndDate != nil && len(categories) > 0 {
		categoryIDs := make([]uuid.UUID, len(categories))
		for i, cat := range categories {
			categoryIDs[i] = cat.ID
		}
		stats, err = uc.categoryRepo.GetTransactionStats(ctx, categoryIDs, *input.StartDate, *input.EndDate)
		if err != nil {
			slog.WarnContext(ctx, "failed to load category stats", "userID", input.UserID, "error", err)
			stats = nil
		}
	}

	output := &ListCategoriesOutput{
		Categories: make([]*CategoryOutput, len(categories)),
	}

	for i, cat := range categories {
		categoryOutput := &CategoryOutput{
			ID:          cat.ID,
			Name:        cat.Name,
			Color:       cat.Color,
			Icon:        cat.Icon,
			Type:        cat.Type,
			PeriodTotal: decimal.Zero,
			CreatedAt:   cat.CreatedAt,
			UpdatedAt:   cat.UpdatedAt,
		}

		if catStats, ok := stats[cat.ID]; ok {
			categoryOutput.TransactionCount = catStats.TransactionCount
			categoryOutput.PeriodTotal = catStats.PeriodTotal
		}

		output.Categories[i] = categoryOutput
	}

	return output, nil
}
