package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/financeflow/backend/internal/application/adapter"
)

// GetDataRangeInput represents the input for getting data range.
type GetDataRangeInput struct {
	UserID uuid.UUID
}

// GetDataRangeOutput represents the output of getting data range.
type GetDataRangeOutput struct {
	OldestDate        *time.Time `json:"oldest_date"`
	NewestDate        *time.Time `json:"newest_date"`
	TotalTransactions int64      `json:"total_transactions"`
	HasData           bool       `json:"has_data"`
}

// GetDataRangeUseCase handles getting the date range of user's transactions.
type GetDataRangeUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetDataRangeUseCase creates a new GetDataRangeUseCase instance.
func NewGetDataRangeUseCase(transactionRepo adapter.TransactionRepository) *GetDataRangeUseCase {
	return &GetDataRangeUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute retrieves the date range of user's transactions.
func (uc *GetDataRangeUseCase) Execute(
	ctx context.Context,
	input GetDataRangeInput,
) (*GetDataRangeOutput, error) {
	dataRange, err := uc.transactionRepo.GetDataRange(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get date range: %w", err)
	}

	return &GetDataRangeOutput{
		OldestDate:        dataRange.OldestDate,
		NewestDate:        dataRange.NewestDate,
		TotalTransactions: dataRange.TotalCount,
		HasData:           dataRange.HasTransactions,
	}, nil
}
