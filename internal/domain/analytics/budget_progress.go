package analytics

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/backend/internal/domain/entity"
	domainerror "github.com/financeflow/backend/internal/domain/error"
)

// BudgetStatus classifies a budget's consumption.
type BudgetStatus string

const (
	BudgetStatusOnTrack  BudgetStatus = "on_track"
	BudgetStatusWarning  BudgetStatus = "warning"
	BudgetStatusExceeded BudgetStatus = "exceeded"
	BudgetStatusExpired  BudgetStatus = "expired"
)

// WarningThreshold is the consumption percentage at which a budget turns to warning.
const WarningThreshold = 80

var warningThreshold = decimal.NewFromInt(WarningThreshold)

// BudgetInput is the part of a budget the calculator needs.
type BudgetInput struct {
	Amount     decimal.Decimal
	CategoryID *uuid.UUID // nil means all categories
	StartDate  time.Time
	EndDate    time.Time
}

// BudgetInputFromEntity extracts the calculator input from a budget.
func BudgetInputFromEntity(b *entity.Budget) BudgetInput {
	return BudgetInput{
		Amount:     b.Amount,
		CategoryID: b.CategoryID,
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
	}
}

// BudgetProgress is the consumption state of a budget.
type BudgetProgress struct {
	Spent      decimal.Decimal
	Percentage float64         // Capped at 100
	Remaining  decimal.Decimal // Negative on overspend
	Status     BudgetStatus
}

// CalculateBudgetProgress sums the expenses that match the budget's category
// filter and date range and classifies the result against today.
func CalculateBudgetProgress(b BudgetInput, txns []TransactionRecord, today time.Time) (BudgetProgress, error) {
	if err := validateBudget(b); err != nil {
		return neutralBudgetProgress(), err
	}

	start, end := TruncateDay(b.StartDate), TruncateDay(b.EndDate)
	spent := decimal.Zero
	for _, t := range txns {
		if t.Type != entity.TransactionTypeExpense {
			continue
		}
		if b.CategoryID != nil && (t.CategoryID == nil || *t.CategoryID != *b.CategoryID) {
			continue
		}
		day := TruncateDay(t.Date)
		if day.Before(start) || day.After(end) {
			continue
		}
		spent = spent.Add(t.Amount)
	}

	return BudgetProgressFromSpent(b, spent, today)
}

// BudgetProgressFromSpent classifies an already summed spent amount.
func BudgetProgressFromSpent(b BudgetInput, spent decimal.Decimal, today time.Time) (BudgetProgress, error) {
	if err := validateBudget(b); err != nil {
		return neutralBudgetProgress(), err
	}

	ratio := spent.Div(b.Amount).Mul(hundred)
	capped := ratio
	if capped.GreaterThan(hundred) {
		capped = hundred
	}
	percentage, _ := capped.Round(2).Float64()

	return BudgetProgress{
		Spent:      spent,
		Percentage: percentage,
		Remaining:  b.Amount.Sub(spent),
		Status:     classifyBudget(b, spent, ratio, today),
	}, nil
}

// classifyBudget applies the precedence expired, exceeded, warning, on_track.
func classifyBudget(b BudgetInput, spent, ratio decimal.Decimal, today time.Time) BudgetStatus {
	switch {
	case TruncateDay(b.EndDate).Before(TruncateDay(today)):
		return BudgetStatusExpired
	case spent.GreaterThanOrEqual(b.Amount):
		return BudgetStatusExceeded
	case ratio.GreaterThanOrEqual(warningThreshold):
		return BudgetStatusWarning
	default:
		return BudgetStatusOnTrack
	}
}

func validateBudget(b BudgetInput) error {
	if !TruncateDay(b.StartDate).Before(TruncateDay(b.EndDate)) {
		return fmt.Errorf("%w: start %s, end %s", domainerror.ErrInvalidBudgetRange,
			b.StartDate.Format(DateLayout), b.EndDate.Format(DateLayout))
	}
	if !b.Amount.IsPositive() {
		return fmt.Errorf("%w: got %s", domainerror.ErrInvalidBudgetAmount, b.Amount.String())
	}
	return nil
}

func neutralBudgetProgress() BudgetProgress {
	return BudgetProgress{
		Spent:      decimal.Zero,
		Percentage: 0,
		Remaining:  decimal.Zero,
		Status:     BudgetStatusOnTrack,
	}
}
