// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/backend/internal/domain/entity"
)

// CategoryRepository defines the interface for category persistence operations.
type CategoryRepository interface {
	// Create creates a new category in the database.
	Create(ctx context.Context, category *entity.Category) error

	// FindByID retrieves a category by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindByUser retrieves all categories for a user ordered by name.
	// A non-nil categoryType restricts the result to that type.
	FindByUser(ctx context.Context, userID uuid.UUID, categoryType *entity.CategoryType) ([]*entity.Category, error)

	// FindByIDs retrieves the user's categories with the given IDs.
	FindByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) ([]*entity.Category, error)

	// ExistsByNameAndUser checks if a category with the given name exists for the user.
	ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID) (bool, error)

	// Update updates an existing category in the database.
	Update(ctx context.Context, category *entity.Category) error

	// Delete soft-deletes a category and clears category_id on the
	// transactions, budgets and goals that reference it, in one transaction.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetTransactionStats retrieves transaction statistics for categories within a date range.
	GetTransactionStats(ctx context.Context, categoryIDs []uuid.UUID, startDate, endDate time.Time) (map[uuid.UUID]*CategoryStats, error)
}

// CategoryStats represents transaction statistics for a category.
type CategoryStats struct {
	TransactionCount int
	PeriodTotal      decimal.Decimal
}
