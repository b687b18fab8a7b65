package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/backend/internal/application/adapter"
	"github.com/financeflow/backend/internal/domain/analytics"
	domainerror "github.com/financeflow/backend/internal/domain/error"
)

// DefaultTrendsPeriod is the window used when the request names none.
const DefaultTrendsPeriod = analytics.PeriodLast6Months

// GetTrendsInput represents the input for the trend series.
type GetTrendsInput struct {
	UserID      uuid.UUID
	Period      PeriodInput
	Granularity analytics.Granularity // Defaults to month
}

// TrendPoint represents a single bucket in the trend series.
type TrendPoint struct {
	Key                string          `json:"key"`
	Label              string          `json:"label"`
	StartDate          time.Time       `json:"start_date"`
	EndDate            time.Time       `json:"end_date"`
	Income             decimal.Decimal `json:"income"`
	Expenses           decimal.Decimal `json:"expenses"`
	Net                decimal.Decimal `json:"net"`
	CumulativeIncome   decimal.Decimal `json:"cumulative_income"`
	CumulativeExpenses decimal.Decimal `json:"cumulative_expenses"`
	Balance            decimal.Decimal `json:"balance"`
}

// GetTrendsOutput represents the output of the trend series.
type GetTrendsOutput struct {
	Period      PeriodOutput          `json:"period"`
	Granularity analytics.Granularity `json:"granularity"`
	Points      []TrendPoint          `json:"points"`
}

// GetTrendsUseCase handles the gap-filled income and expense series.
type GetTrendsUseCase struct {
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewGetTrendsUseCase creates a new GetTrendsUseCase instance.
func NewGetTrendsUseCase(transactionRepo adapter.TransactionRepository, clock adapter.Clock) *GetTrendsUseCase {
	return &GetTrendsUseCase{
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute builds the series for the window at the requested granularity.
func (uc *GetTrendsUseCase) Execute(ctx context.Context, input GetTrendsInput) (*GetTrendsOutput, error) {
	granularity := input.Granularity
	if granularity == "" {
		granularity = analytics.GranularityMonth
	}
	if !granularity.IsValid() {
		return nil, domainerror.NewDashboardError(
			domainerror.ErrCodeInvalidGranularity,
			"granularity must be: day, week, month or quarter",
			domainerror.ErrInvalidGranularity,
		)
	}

	period, err := resolvePeriod(input.Period, DefaultTrendsPeriod, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	records, err := fetchRecords(ctx, uc.transactionRepo, input.UserID, period)
	if err != nil {
		return nil, err
	}

	series, err := analytics.BuildSeries(records, period, granularity)
	if err != nil {
		return nil, domainerror.AsAnalyticsError(err)
	}

	points := make([]TrendPoint, 0, len(series))
	for _, p := range series {
		points = append(points, TrendPoint{
			Key:                p.Key,
			Label:              p.Label,
			StartDate:          p.Start,
			EndDate:            p.End,
			Income:             p.Income,
			Expenses:           p.Expenses,
			Net:                p.Net,
			CumulativeIncome:   p.CumulativeIncome,
			CumulativeExpenses: p.CumulativeExpenses,
			Balance:            p.Balance,
		})
	}

	return &GetTrendsOutput{
		Period:      periodOutput(input.Period, period),
		Granularity: granularity,
		Points:      points,
	}, nil
}
