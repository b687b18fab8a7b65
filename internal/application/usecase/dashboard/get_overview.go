package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/financeflow/backend/internal/application/adapter"
	"github.com/financeflow/backend/internal/domain/analytics"
	"github.com/financeflow/backend/internal/domain/entity"
)

// DefaultOverviewPeriod is the window used when the request names none.
const DefaultOverviewPeriod = analytics.PeriodLast3Months

// GetOverviewInput represents the input for the analytics overview.
type GetOverviewInput struct {
	UserID uuid.UUID
	Period PeriodInput
}

// GetOverviewOutput is the analytics overview of one window.
type GetOverviewOutput struct {
	Period             PeriodOutput         `json:"period"`
	TotalIncome        decimal.Decimal      `json:"total_income"`
	TotalExpenses      decimal.Decimal      `json:"total_expenses"`
	NetIncome          decimal.Decimal      `json:"net_income"`
	SavingsRate        float64              `json:"savings_rate"`
	AvgMonthlyIncome   decimal.Decimal      `json:"avg_monthly_income"`
	AvgMonthlyExpenses decimal.Decimal      `json:"avg_monthly_expenses"`
	TopCategory        *CategoryTotalOutput `json:"top_category"`
	TransactionCount   int                  `json:"transaction_count"`
	HasData            bool                 `json:"has_data"`
}

// GetOverviewUseCase handles the analytics overview.
type GetOverviewUseCase struct {
	transactionRepo adapter.TransactionRepository
	cache           adapter.AnalyticsCache
	clock           adapter.Clock
	cacheTTL        time.Duration
}

// NewGetOverviewUseCase creates a new GetOverviewUseCase instance.
func NewGetOverviewUseCase(
	transactionRepo adapter.TransactionRepository,
	cache adapter.AnalyticsCache,
	clock adapter.Clock,
	cacheTTL time.Duration,
) *GetOverviewUseCase {
	return &GetOverviewUseCase{
		transactionRepo: transactionRepo,
		cache:           cache,
		clock:           clock,
		cacheTTL:        cacheTTL,
	}
}

// Execute aggregates the window, serving repeated requests from the cache.
func (uc *GetOverviewUseCase) Execute(ctx context.Context, input GetOverviewInput) (*GetOverviewOutput, error) {
	if input.Period.Key == "" && input.Period.StartDate == nil && input.Period.EndDate == nil {
		input.Period.Key = DefaultOverviewPeriod
	}
	period, err := resolvePeriod(input.Period, DefaultOverviewPeriod, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	periodOut := periodOutput(input.Period, period)
	monthCount := overviewMonths(input.Period, period)

	// the key and the divisor change the output for the same window
	cacheKey := fmt.Sprintf("overview:%s:%s:%s:m%d",
		periodOut.Key, period.Start.Format(analytics.DateLayout), period.End.Format(analytics.DateLayout), monthCount)

	if uc.cache != nil {
		var cached GetOverviewOutput
		hit, err := uc.cache.Get(ctx, input.UserID, cacheKey, &cached)
		if err != nil {
			slog.WarnContext(ctx, "failed to read overview cache", "userID", input.UserID, "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	var (
		records   []analytics.TransactionRecord
		dataRange *adapter.TransactionDataRange
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = fetchRecords(gctx, uc.transactionRepo, input.UserID, period)
		return err
	})
	g.Go(func() error {
		var err error
		dataRange, err = uc.transactionRepo.GetDataRange(gctx, input.UserID)
		if err != nil {
			return fmt.Errorf("failed to get data range: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := analytics.Aggregate(records, analytics.AggregateOptions{
		CategoryType:                entity.TransactionTypeExpense,
		ExcludeUncategorizedFromTop: true,
	})

	months := decimal.NewFromInt(int64(monthCount))

	output := &GetOverviewOutput{
		Period:             periodOut,
		TotalIncome:        summary.TotalIncome,
		TotalExpenses:      summary.TotalExpenses,
		NetIncome:          summary.NetIncome,
		SavingsRate:        summary.SavingsRate,
		AvgMonthlyIncome:   summary.TotalIncome.Div(months).Round(2),
		AvgMonthlyExpenses: summary.TotalExpenses.Div(months).Round(2),
		TransactionCount:   summary.TransactionCount,
		HasData:            dataRange.HasTransactions,
	}
	if summary.TopCategory != nil {
		top := toCategoryTotalOutput(*summary.TopCategory)
		output.TopCategory = &top
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, input.UserID, cacheKey, output, uc.cacheTTL); err != nil {
			slog.WarnContext(ctx, "failed to write overview cache", "userID", input.UserID, "error", err)
		}
	}

	return output, nil
}

// nominalMonths is the divisor for averages of the relative period keys.
var nominalMonths = map[string]int{
	analytics.PeriodCurrentMonth: 1,
	analytics.PeriodLastMonth:    1,
	analytics.PeriodLast3Months:  3,
	analytics.PeriodLast6Months:  6,
	analytics.PeriodLastYear:     12,
}

// overviewMonths returns how many months the averages are spread over.
// Explicit dates and day counts use the calendar months the period touches.
func overviewMonths(input PeriodInput, period analytics.Period) int {
	if input.StartDate == nil {
		if n, ok := nominalMonths[strings.ToLower(strings.TrimSpace(input.Key))]; ok {
			return n
		}
	}
	if n := period.Months(); n > 0 {
		return n
	}
	return 1
}
