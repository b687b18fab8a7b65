package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/backend/internal/application/adapter"
	"github.com/financeflow/backend/internal/domain/analytics"
	domainerror "github.com/financeflow/backend/internal/domain/error"
)

const (
	// DefaultComparisonMonths is the window used when months is not given.
	DefaultComparisonMonths = 6
	// MaxComparisonMonths caps the monthly comparison window.
	MaxComparisonMonths = 24
)

// GetMonthlyComparisonInput represents the input for the monthly comparison.
type GetMonthlyComparisonInput struct {
	UserID uuid.UUID
	Months int // 0 means DefaultComparisonMonths
}

// MonthComparison is one calendar month of the comparison.
type MonthComparison struct {
	Month    string          `json:"month"` // YYYY-MM
	Label    string          `json:"label"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// GetMonthlyComparisonOutput lists the months oldest first.
type GetMonthlyComparisonOutput struct {
	Months []MonthComparison `json:"months"`
}

// GetMonthlyComparisonUseCase handles the month by month comparison.
type GetMonthlyComparisonUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewGetMonthlyComparisonUseCase creates a new GetMonthlyComparisonUseCase instance.
func NewGetMonthlyComparisonUseCase(
	transactionRepo adapter.TransactionRepository,
	clock adapter.Clock,
) *GetMonthlyComparisonUseCase {
	return &GetMonthlyComparisonUseCase{
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute returns one gap-filled bucket per month, the current month included.
func (uc *GetMonthlyComparisonUseCase) Execute(
	ctx context.Context,
	input GetMonthlyComparisonInput,
) (*GetMonthlyComparisonOutput, error) {
	months := input.Months
	if months == 0 {
		months = DefaultComparisonMonths
	}
	if months < 1 || months > MaxComparisonMonths {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidMonthCount,
			fmt.Sprintf("months must be between 1 and %d", MaxComparisonMonths),
			domainerror.ErrInvalidMonthCount,
		)
	}

	period, err := analytics.MonthWindow(months, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	records, err := fetchRecords(ctx, uc.transactionRepo, input.UserID, period)
	if err != nil {
		return nil, err
	}

	series, err := analytics.BuildSeries(records, period, analytics.GranularityMonth)
	if err != nil {
		return nil, domainerror.AsAnalyticsError(err)
	}

	out := make([]MonthComparison, 0, len(series))
	for _, point := range series {
		out = append(out, MonthComparison{
			Month:    point.Key,
			Label:    point.Label,
			Income:   point.Income,
			Expenses: point.Expenses,
			Net:      point.Net,
		})
	}

	return &GetMonthlyComparisonOutput{Months: out}, nil
}
