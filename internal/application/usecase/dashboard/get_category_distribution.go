package dashboard

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/backend/internal/application/adapter"
	"github.com/financeflow/backend/internal/domain/analytics"
	"github.com/financeflow/backend/internal/domain/entity"
	domainerror "github.com/financeflow/backend/internal/domain/error"
)

// GetCategoryDistributionInput represents the input for the category distribution.
type GetCategoryDistributionInput struct {
	UserID uuid.UUID
	Period PeriodInput
	Type   entity.TransactionType // Defaults to expense
}

// GetCategoryDistributionOutput lists category totals sorted by amount descending.
type GetCategoryDistributionOutput struct {
	Period     PeriodOutput           `json:"period"`
	Type       entity.TransactionType `json:"type"`
	Total      decimal.Decimal        `json:"total"`
	Categories []CategoryTotalOutput  `json:"categories"`
}

// GetCategoryDistributionUseCase handles the spending or earning split by category.
type GetCategoryDistributionUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewGetCategoryDistributionUseCase creates a new GetCategoryDistributionUseCase instance.
func NewGetCategoryDistributionUseCase(
	transactionRepo adapter.TransactionRepository,
	clock adapter.Clock,
) *GetCategoryDistributionUseCase {
	return &GetCategoryDistributionUseCase{
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute groups the window's transactions of the requested type by category.
func (uc *GetCategoryDistributionUseCase) Execute(
	ctx context.Context,
	input GetCategoryDistributionInput,
) (*GetCategoryDistributionOutput, error) {
	txnType := input.Type
	if txnType == "" {
		txnType = entity.TransactionTypeExpense
	}
	if !txnType.IsValid() {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionType,
			"type must be 'expense' or 'income'",
			domainerror.ErrInvalidTransactionType,
		)
	}

	period, err := resolvePeriod(input.Period, analytics.PeriodCurrentMonth, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	records, err := fetchRecords(ctx, uc.transactionRepo, input.UserID, period)
	if err != nil {
		return nil, err
	}

	summary := analytics.Aggregate(records, analytics.AggregateOptions{CategoryType: txnType})

	total := summary.TotalExpenses
	if txnType == entity.TransactionTypeIncome {
		total = summary.TotalIncome
	}

	sorted := analytics.SortCategoryTotals(summary.CategoryTotals)
	categories := make([]CategoryTotalOutput, 0, len(sorted))
	for _, ct := range sorted {
		categories = append(categories, toCategoryTotalOutput(ct))
	}

	return &GetCategoryDistributionOutput{
		Period:     periodOutput(input.Period, period),
		Type:       txnType,
		Total:      total,
		Categories: categories,
	}, nil
}
