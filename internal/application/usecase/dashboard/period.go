// Package dashboard contains dashboard-related use cases.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/backend/internal/application/adapter"
	"github.com/financeflow/backend/internal/domain/analytics"
	domainerror "github.com/financeflow/backend/internal/domain/error"
)

// PeriodInput selects a dashboard window either by key or by explicit dates.
// Explicit dates win over the key when both are present.
type PeriodInput struct {
	Key       string
	StartDate *time.Time
	EndDate   *time.Time
}

// PeriodOutput describes the resolved window.
type PeriodOutput struct {
	Key       string    `json:"key,omitempty"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// resolvePeriod turns the input into a concrete period. defaultKey applies
// when neither a key nor dates are given.
func resolvePeriod(input PeriodInput, defaultKey string, now time.Time) (analytics.Period, error) {
	switch {
	case input.StartDate != nil && input.EndDate != nil:
		period, err := analytics.NewPeriod(*input.StartDate, *input.EndDate)
		if err != nil {
			return analytics.Period{}, domainerror.NewDashboardError(
				domainerror.ErrCodeInvalidDateRange,
				"end_date must not be before start_date",
				domainerror.ErrInvalidDateRange,
			)
		}
		return period, nil
	case input.StartDate != nil:
		return analytics.Period{}, domainerror.NewDashboardError(
			domainerror.ErrCodeMissingEndDate,
			"end_date is required",
			domainerror.ErrMissingEndDate,
		)
	case input.EndDate != nil:
		return analytics.Period{}, domainerror.NewDashboardError(
			domainerror.ErrCodeMissingStartDate,
			"start_date is required",
			domainerror.ErrMissingStartDate,
		)
	}

	key := input.Key
	if key == "" {
		key = defaultKey
	}
	period, err := analytics.ResolvePeriod(key, now)
	if err != nil {
		if errors.Is(err, domainerror.ErrInvalidPeriod) {
			return analytics.Period{}, domainerror.NewDashboardError(
				domainerror.ErrCodeInvalidPeriodKey,
				fmt.Sprintf("unknown period %q", key),
				err,
			)
		}
		return analytics.Period{}, err
	}
	return period, nil
}

func periodOutput(input PeriodInput, period analytics.Period) PeriodOutput {
	out := PeriodOutput{StartDate: period.Start, EndDate: period.End}
	if input.StartDate == nil {
		out.Key = input.Key
	}
	return out
}

// fetchRecords loads the user's transactions inside the period as aggregation records.
func fetchRecords(
	ctx context.Context,
	transactionRepo adapter.TransactionRepository,
	userID uuid.UUID,
	period analytics.Period,
) ([]analytics.TransactionRecord, error) {
	start, end := period.Start, period.End
	txns, err := transactionRepo.FindAllByFilter(ctx, adapter.TransactionFilter{
		UserID:    userID,
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	return analytics.RecordsFromTransactions(txns), nil
}

// CategoryTotalOutput is one category sum inside a dashboard response.
type CategoryTotalOutput struct {
	CategoryID       *uuid.UUID      `json:"category_id"`
	Name             string          `json:"name"`
	Color            string          `json:"color"`
	Amount           decimal.Decimal `json:"amount"`
	Percentage       float64         `json:"percentage"`
	TransactionCount int             `json:"transaction_count"`
}

func toCategoryTotalOutput(ct analytics.CategoryTotal) CategoryTotalOutput {
	return CategoryTotalOutput{
		CategoryID:       ct.CategoryID,
		Name:             ct.Name,
		Color:            ct.Color,
		Amount:           ct.Amount,
		Percentage:       ct.Percentage,
		TransactionCount: ct.Count,
	}
}
