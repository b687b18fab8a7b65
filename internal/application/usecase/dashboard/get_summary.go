package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/financeflow/backend/internal/application/adapter"
	"github.com/financeflow/backend/internal/domain/analytics"
)

// GetSummaryInput represents the input for the financial summary.
type GetSummaryInput struct {
	UserID uuid.UUID
}

// GetSummaryOutput holds all-time and current-month totals.
type GetSummaryOutput struct {
	TotalIncome     decimal.Decimal `json:"total_income"`
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	Balance         decimal.Decimal `json:"balance"`
	MonthlyIncome   decimal.Decimal `json:"monthly_income"`
	MonthlyExpenses decimal.Decimal `json:"monthly_expenses"`
	MonthlyBalance  decimal.Decimal `json:"monthly_balance"`
}

// GetSummaryUseCase handles the financial summary.
type GetSummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(transactionRepo adapter.TransactionRepository, clock adapter.Clock) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute fetches the all-time and current-month totals in parallel.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	month, err := analytics.ResolvePeriod(analytics.PeriodCurrentMonth, uc.clock.Now())
	if err != nil {
		return nil, err
	}
	// End of the month, so future-dated entries of the month still count.
	monthEnd := month.Start.AddDate(0, 1, -1)

	var allTime, monthly *adapter.TransactionTotals

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		totals, err := uc.transactionRepo.GetTotals(gctx, adapter.TransactionFilter{UserID: input.UserID})
		if err != nil {
			return fmt.Errorf("failed to get all-time totals: %w", err)
		}
		allTime = totals
		return nil
	})
	g.Go(func() error {
		totals, err := uc.transactionRepo.GetTotals(gctx, adapter.TransactionFilter{
			UserID:    input.UserID,
			StartDate: &month.Start,
			EndDate:   &monthEnd,
		})
		if err != nil {
			return fmt.Errorf("failed to get monthly totals: %w", err)
		}
		monthly = totals
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &GetSummaryOutput{
		TotalIncome:     allTime.IncomeTotal,
		TotalExpenses:   allTime.ExpenseTotal,
		Balance:         allTime.IncomeTotal.Sub(allTime.ExpenseTotal),
		MonthlyIncome:   monthly.IncomeTotal,
		MonthlyExpenses: monthly.ExpenseTotal,
		MonthlyBalance:  monthly.IncomeTotal.Sub(monthly.ExpenseTotal),
	}, nil
}
