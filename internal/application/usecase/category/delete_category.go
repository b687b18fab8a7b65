// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/financeflow/backend/internal/application/adapter"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	CategoryID uuid.UUID
	UserID     uuid.UUID
}

// DeleteCategoryOutput represents the output of category deletion.
type DeleteCategoryOutput struct {
	Success bool
}

// DeleteCategoryUseCase handles category deletion logic.
type DeleteCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
	cache        adapter.AnalyticsCache
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(categoryRepo adapter.CategoryRepository, cache adapter.AnalyticsCache) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

// Execute deletes the category. Transactions, budgets and goals that
// referenced it become uncategorized.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) (*DeleteCategoryOutput, error) {
	if _, err := findOwnedCategory(ctx, uc.categoryRepo, input.CategoryID, input.UserID); err != nil {
		return nil, err
	}

	if err := uc.categoryRepo.Delete(ctx, input.CategoryID); err != nil {
		return nil, fmt.Errorf("failed to delete category: %w", err)
	}
	invalidateCache(ctx, uc.cache, input.UserID)

	return &DeleteCategoryOutput{
		Success: true,
	}, nil
}

func invalidateCache(ctx context.Context, cache adapter.AnalyticsCache, userID uuid.UUID) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, userID); err != nil {
		slog.WarnContext(ctx, "failed to invalidate analytics cache", "userID", userID, "error", err)
	}
}
