package analytics

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/financeflow/backend/internal/domain/error"
)

func januaryBudget(amount int64, categoryID *uuid.UUID) BudgetInput {
	return BudgetInput{
		Amount:     decimal.NewFromInt(amount),
		CategoryID: categoryID,
		StartDate:  date(2024, 1, 1),
		EndDate:    date(2024, 1, 31),
	}
}

func TestCalculateBudgetProgress_FoodScenario(t *testing.T) {
	progress, err := CalculateBudgetProgress(januaryBudget(500, &foodID), scenarioTransactions(), date(2024, 1, 25))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !progress.Spent.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected spent 500, got %s", progress.Spent)
	}
	if progress.Percentage != 100 {
		t.Errorf("expected percentage 100, got %v", progress.Percentage)
	}
	if !progress.Remaining.IsZero() {
		t.Errorf("expected remaining 0, got %s", progress.Remaining)
	}
	if progress.Status != BudgetStatusExceeded {
		t.Errorf("expected status exceeded, got %s", progress.Status)
	}
}

func TestCalculateBudgetProgress_Filtering(t *testing.T) {
	otherID := uuid.New()
	txns := []TransactionRecord{
		expense(100, 5, &foodID, "Food"),
		expense(40, 6, &otherID, "Transporte"),
		expense(25, 7, nil, ""),
		income(900, 8),
		{Amount: decimal.NewFromInt(70), Type: "expense", Date: date(2024, 2, 1), CategoryID: &foodID},
		{Amount: decimal.NewFromInt(80), Type: "expense", Date: date(2023, 12, 31), CategoryID: &foodID},
		{Amount: decimal.NewFromInt(10), Type: "expense", Date: time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC), CategoryID: &foodID},
	}

	tests := []struct {
		name          string
		categoryID    *uuid.UUID
		expectedSpent int64
	}{
		{"category scoped", &foodID, 110},
		{"all categories", nil, 175},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress, err := CalculateBudgetProgress(januaryBudget(1000, tt.categoryID), txns, date(2024, 1, 15))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !progress.Spent.Equal(decimal.NewFromInt(tt.expectedSpent)) {
				t.Errorf("expected spent %d, got %s", tt.expectedSpent, progress.Spent)
			}
		})
	}
}

func TestBudgetProgressFromSpent_Status(t *testing.T) {
	tests := []struct {
		name               string
		spent              int64
		today              time.Time
		expectedStatus     BudgetStatus
		expectedPercentage float64
		expectedRemaining  int64
	}{
		{"nothing spent", 0, date(2024, 1, 10), BudgetStatusOnTrack, 0, 500},
		{"below warning", 350, date(2024, 1, 10), BudgetStatusOnTrack, 70, 150},
		{"at warning threshold", 400, date(2024, 1, 10), BudgetStatusWarning, 80, 100},
		{"at amount", 500, date(2024, 1, 10), BudgetStatusExceeded, 100, 0},
		{"overspent keeps negative remaining", 650, date(2024, 1, 10), BudgetStatusExceeded, 100, -150},
		{"last day is still active", 100, date(2024, 1, 31), BudgetStatusOnTrack, 20, 400},
		{"expired wins over exceeded", 650, date(2024, 2, 1), BudgetStatusExpired, 100, -150},
		{"expired wins over warning", 450, date(2024, 3, 1), BudgetStatusExpired, 90, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress, err := BudgetProgressFromSpent(januaryBudget(500, nil), decimal.NewFromInt(tt.spent), tt.today)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if progress.Status != tt.expectedStatus {
				t.Errorf("expected status %s, got %s", tt.expectedStatus, progress.Status)
			}
			if progress.Percentage != tt.expectedPercentage {
				t.Errorf("expected percentage %v, got %v", tt.expectedPercentage, progress.Percentage)
			}
			if !progress.Remaining.Equal(decimal.NewFromInt(tt.expectedRemaining)) {
				t.Errorf("expected remaining %d, got %s", tt.expectedRemaining, progress.Remaining)
			}
		})
	}
}

func TestCalculateBudgetProgress_SpentIsMonotonic(t *testing.T) {
	budget := januaryBudget(500, &foodID)
	today := date(2024, 1, 15)
	txns := []TransactionRecord{expense(100, 3, &foodID, "Food")}

	previous, _ := CalculateBudgetProgress(budget, txns, today)
	for i := 0; i < 5; i++ {
		txns = append(txns, expense(60, 4+i, &foodID, "Food"))
		current, err := CalculateBudgetProgress(budget, txns, today)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if current.Spent.LessThan(previous.Spent) || current.Percentage < previous.Percentage {
			t.Fatalf("progress decreased after adding an expense: %+v -> %+v", previous, current)
		}
		previous = current
	}
}

func TestCalculateBudgetProgress_InvalidInput(t *testing.T) {
	tests := []struct {
		name        string
		budget      BudgetInput
		expectedErr error
	}{
		{
			name:        "start after end",
			budget:      BudgetInput{Amount: decimal.NewFromInt(500), StartDate: date(2024, 2, 1), EndDate: date(2024, 1, 1)},
			expectedErr: domainerror.ErrInvalidBudgetRange,
		},
		{
			name:        "start equals end",
			budget:      BudgetInput{Amount: decimal.NewFromInt(500), StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 1)},
			expectedErr: domainerror.ErrInvalidBudgetRange,
		},
		{
			name:        "zero amount",
			budget:      januaryBudget(0, nil),
			expectedErr: domainerror.ErrInvalidBudgetAmount,
		},
		{
			name:        "negative amount",
			budget:      januaryBudget(-10, nil),
			expectedErr: domainerror.ErrInvalidBudgetAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress, err := CalculateBudgetProgress(tt.budget, scenarioTransactions(), date(2024, 1, 15))
			if !errors.Is(err, tt.expectedErr) {
				t.Fatalf("expected %v, got %v", tt.expectedErr, err)
			}
			if !progress.Spent.IsZero() || progress.Percentage != 0 || !progress.Remaining.IsZero() {
				t.Errorf("expected neutral progress, got %+v", progress)
			}
			if progress.Status != BudgetStatusOnTrack {
				t.Errorf("expected neutral status on_track, got %s", progress.Status)
			}
		})
	}
}
