package alert

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/backend/internal/application/adapter/adaptertest"
	"github.com/financeflow/backend/internal/domain/analytics"
	"github.com/financeflow/backend/internal/domain/entity"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestCheckBudgetAlertsUseCase(t *testing.T) {
	userID := uuid.New()
	foodID := uuid.New()

	tests := []struct {
		name           string
		existing       int64
		amount         int64
		categoryID     *uuid.UUID
		enabled        bool
		expectedAlerts int
		expectedStatus analytics.BudgetStatus
	}{
		{"stays on track", 100, 100, &foodID, true, 0, ""},
		{"crosses into warning", 300, 150, &foodID, true, 1, analytics.BudgetStatusWarning},
		{"crosses into exceeded", 300, 250, &foodID, true, 1, analytics.BudgetStatusExceeded},
		{"warning to exceeded", 420, 100, &foodID, true, 1, analytics.BudgetStatusExceeded},
		{"already exceeded", 500, 50, &foodID, true, 0, ""},
		{"other category is not covered", 300, 250, nil, true, 0, ""},
		{"disabled", 300, 250, &foodID, false, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := adaptertest.NewStore()
			budget := entity.NewBudget(userID, "Food", decimal.NewFromInt(500), entity.BudgetPeriodMonthly, &foodID, day(1), day(31))
			_ = store.Budgets().Create(ctx, budget)

			if tt.existing > 0 {
				_ = store.Transactions().Create(ctx, entity.NewTransaction(userID, "antes", "", decimal.NewFromInt(tt.existing), entity.TransactionTypeExpense, day(3), &foodID))
			}
			newTxn := entity.NewTransaction(userID, "nova", "", decimal.NewFromInt(tt.amount), entity.TransactionTypeExpense, day(10), tt.categoryID)
			_ = store.Transactions().Create(ctx, newTxn)

			emails := &adaptertest.EmailService{}
			uc := NewCheckBudgetAlertsUseCase(store.Budgets(), store.Transactions(), emails, adaptertest.Clock{Time: day(15)}, tt.enabled)

			output, err := uc.Execute(ctx, CheckBudgetAlertsInput{
				UserID:     userID,
				UserEmail:  "ana@example.com",
				CategoryID: tt.categoryID,
				Date:       newTxn.Date,
				Amount:     newTxn.Amount,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(output.Alerts) != tt.expectedAlerts || len(emails.Alerts) != tt.expectedAlerts {
				t.Fatalf("expected %d alerts, got %d (%d emails)", tt.expectedAlerts, len(output.Alerts), len(emails.Alerts))
			}
			if tt.expectedAlerts == 1 {
				if output.Alerts[0].Current != tt.expectedStatus || !output.Alerts[0].Queued {
					t.Errorf("expected queued %s alert, got %+v", tt.expectedStatus, output.Alerts[0])
				}
				if emails.Alerts[0].UserEmail != "ana@example.com" || emails.Alerts[0].BudgetID != budget.ID {
					t.Errorf("unexpected email input %+v", emails.Alerts[0])
				}
			}
		})
	}
}

func TestCheckBudgetAlertsUseCase_ExpiredBudgetIsQuiet(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	store := adaptertest.NewStore()
	_ = store.Budgets().Create(ctx, entity.NewBudget(userID, "Geral", decimal.NewFromInt(100), entity.BudgetPeriodMonthly, nil, day(1), day(31)))
	txn := entity.NewTransaction(userID, "atrasada", "", decimal.NewFromInt(150), entity.TransactionTypeExpense, day(20), nil)
	_ = store.Transactions().Create(ctx, txn)

	emails := &adaptertest.EmailService{}
	clock := adaptertest.Clock{Time: time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)}
	uc := NewCheckBudgetAlertsUseCase(store.Budgets(), store.Transactions(), emails, clock, true)

	output, err := uc.Execute(ctx, CheckBudgetAlertsInput{UserID: userID, Date: txn.Date, Amount: txn.Amount})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Alerts) != 0 {
		t.Errorf("expected no alerts for an expired budget, got %d", len(output.Alerts))
	}
}

func TestCheckBudgetAlertsUseCase_QueueFailureIsReported(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	store := adaptertest.NewStore()
	_ = store.Budgets().Create(ctx, entity.NewBudget(userID, "Geral", decimal.NewFromInt(100), entity.BudgetPeriodMonthly, nil, day(1), day(31)))
	txn := entity.NewTransaction(userID, "grande", "", decimal.NewFromInt(150), entity.TransactionTypeExpense, day(20), nil)
	_ = store.Transactions().Create(ctx, txn)

	emails := &adaptertest.EmailService{Err: errors.New("invalid recipient")}
	uc := NewCheckBudgetAlertsUseCase(store.Budgets(), store.Transactions(), emails, adaptertest.Clock{Time: day(21)}, true)

	output, err := uc.Execute(ctx, CheckBudgetAlertsInput{UserID: userID, UserEmail: "not-an-email", Date: txn.Date, Amount: txn.Amount})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Alerts) != 1 || output.Alerts[0].Queued {
		t.Errorf("expected one unqueued alert, got %+v", output.Alerts)
	}
}
