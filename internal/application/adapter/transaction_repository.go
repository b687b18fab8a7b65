// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/backend/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
type TransactionFilter struct {
	UserID      uuid.UUID
	StartDate   *time.Time
	EndDate     *time.Time
	CategoryIDs []uuid.UUID
	Type        *entity.TransactionType
	Search      string // Case-insensitive title/description match
}

// TransactionPagination defines pagination options.
type TransactionPagination struct {
	Page  int
	Limit int
}

// TransactionListResult represents the result of listing transactions.
type TransactionListResult struct {
	Transactions []*entity.TransactionWithCategory
	Total        int64
	Page         int
	Limit        int
	TotalPages   int
}

// TransactionTotals represents aggregated totals for transactions.
type TransactionTotals struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal // IncomeTotal - ExpenseTotal
}

// TransactionDataRange is the span of a user's transaction history.
type TransactionDataRange struct {
	OldestDate      *time.Time
	NewestDate      *time.Time
	TotalCount      int64
	HasTransactions bool
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByIDWithCategory retrieves a transaction with its category by ID.
	FindByIDWithCategory(ctx context.Context, id uuid.UUID) (*entity.TransactionWithCategory, error)

	// FindByFilter retrieves transactions based on filter criteria with pagination.
	// Results are ordered by date desc, then created_at desc.
	FindByFilter(ctx context.Context, filter TransactionFilter, pagination TransactionPagination) (*TransactionListResult, error)

	// FindAllByFilter retrieves every transaction matching the filter with its category.
	FindAllByFilter(ctx context.Context, filter TransactionFilter) ([]*entity.TransactionWithCategory, error)

	// FindRecent retrieves the user's latest transactions.
	FindRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.TransactionWithCategory, error)

	// GetTotals calculates totals for transactions based on filter criteria.
	GetTotals(ctx context.Context, filter TransactionFilter) (*TransactionTotals, error)

	// GetDataRange returns the oldest and newest transaction dates for a user.
	GetDataRange(ctx context.Context, userID uuid.UUID) (*TransactionDataRange, error)

	// Update updates an existing transaction in the database.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete soft-deletes a transaction from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// BulkDelete soft-deletes multiple transactions by their IDs.
	// Returns the count of deleted transactions.
	BulkDelete(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) (int64, error)

	// ExistsAllByIDsAndUser checks if all transactions exist for the given IDs and user.
	ExistsAllByIDsAndUser(ctx context.Context, ids []uuid.UUID, userID uuid.UUID) (bool, error)

	// SumExpenses sums the user's expenses in [startDate, endDate].
	// A non-nil categoryID restricts the sum to that category.
	SumExpenses(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID, startDate, endDate time.Time) (decimal.Decimal, error)
}
