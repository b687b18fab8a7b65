package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/backend/internal/application/adapter"
	"github.com/financeflow/backend/internal/domain/analytics"
	"github.com/financeflow/backend/internal/domain/entity"
)

const (
	// DefaultRecentLimit is the number of recent transactions returned by default.
	DefaultRecentLimit = 10
	// MaxRecentLimit caps the recent transactions list.
	MaxRecentLimit = 50
)

// GetRecentTransactionsInput represents the input for the recent transactions list.
type GetRecentTransactionsInput struct {
	UserID uuid.UUID
	Limit  int
}

// RecentTransaction is one row of the recent transactions list.
type RecentTransaction struct {
	ID            uuid.UUID              `json:"id"`
	Title         string                 `json:"title"`
	Amount        decimal.Decimal        `json:"amount"`
	Type          entity.TransactionType `json:"type"`
	Date          time.Time              `json:"date"`
	CategoryID    *uuid.UUID             `json:"category_id"`
	CategoryName  string                 `json:"category_name"`
	CategoryColor string                 `json:"category_color"`
}

// GetRecentTransactionsOutput represents the output of the recent transactions list.
type GetRecentTransactionsOutput struct {
	Transactions []RecentTransaction `json:"transactions"`
}

// GetRecentTransactionsUseCase handles the latest transactions widget.
type GetRecentTransactionsUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetRecentTransactionsUseCase creates a new GetRecentTransactionsUseCase instance.
func NewGetRecentTransactionsUseCase(transactionRepo adapter.TransactionRepository) *GetRecentTransactionsUseCase {
	return &GetRecentTransactionsUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute returns the latest transactions, newest first.
func (uc *GetRecentTransactionsUseCase) Execute(
	ctx context.Context,
	input GetRecentTransactionsInput,
) (*GetRecentTransactionsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}

	txns, err := uc.transactionRepo.FindRecent(ctx, input.UserID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent transactions: %w", err)
	}

	out := make([]RecentTransaction, 0, len(txns))
	for _, t := range txns {
		if t == nil || t.Transaction == nil {
			continue
		}
		item := RecentTransaction{
			ID:            t.Transaction.ID,
			Title:         t.Transaction.Title,
			Amount:        t.Transaction.Amount,
			Type:          t.Transaction.Type,
			Date:          t.Transaction.Date,
			CategoryID:    t.Transaction.CategoryID,
			CategoryName:  analytics.UncategorizedLabel,
			CategoryColor: analytics.UncategorizedColor,
		}
		if t.Category != nil {
			item.CategoryName = t.Category.Name
			item.CategoryColor = t.Category.Color
		}
		out = append(out, item)
	}

	return &GetRecentTransactionsOutput{Transactions: out}, nil
}
