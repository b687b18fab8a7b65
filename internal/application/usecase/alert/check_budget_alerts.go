// Package alert contains the budget alert use case.
package alert

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/backend/internal/application/adapter"
	"github.com/financeflow/backend/internal/domain/analytics"
)

// CheckBudgetAlertsInput describes a newly created expense.
type CheckBudgetAlertsInput struct {
	UserID     uuid.UUID
	UserEmail  string
	CategoryID *uuid.UUID
	Date       time.Time
	Amount     decimal.Decimal
}

// BudgetAlert is a budget whose status changed because of the expense.
type BudgetAlert struct {
	BudgetID   uuid.UUID
	BudgetName string
	Previous   analytics.BudgetStatus
	Current    analytics.BudgetStatus
	Progress   analytics.BudgetProgress
	Queued     bool
}

// CheckBudgetAlertsOutput lists the alerts raised for the expense.
type CheckBudgetAlertsOutput struct {
	Alerts []BudgetAlert
}

// CheckBudgetAlertsUseCase re-evaluates the budgets covering an expense and
// queues an email when one of them crosses into warning or exceeded.
type CheckBudgetAlertsUseCase struct {
	budgetRepo      adapter.BudgetRepository
	transactionRepo adapter.TransactionRepository
	emailService    adapter.EmailService
	clock           adapter.Clock
	enabled         bool
}

// NewCheckBudgetAlertsUseCase creates a new CheckBudgetAlertsUseCase instance.
func NewCheckBudgetAlertsUseCase(
	budgetRepo adapter.BudgetRepository,
	transactionRepo adapter.TransactionRepository,
	emailService adapter.EmailService,
	clock adapter.Clock,
	enabled bool,
) *CheckBudgetAlertsUseCase {
	return &CheckBudgetAlertsUseCase{
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
		emailService:    emailService,
		clock:           clock,
		enabled:         enabled,
	}
}

// Execute must run after the expense is persisted.
func (uc *CheckBudgetAlertsUseCase) Execute(ctx context.Context, input CheckBudgetAlertsInput) (*CheckBudgetAlertsOutput, error) {
	output := &CheckBudgetAlertsOutput{Alerts: []BudgetAlert{}}
	if !uc.enabled {
		return output, nil
	}

	budgets, err := uc.budgetRepo.FindCovering(ctx, input.UserID, input.CategoryID, input.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to find covering budgets: %w", err)
	}

	today := uc.clock.Now()
	for _, budget := range budgets {
		spent, err := uc.transactionRepo.SumExpenses(ctx, input.UserID, budget.CategoryID, budget.StartDate, budget.EndDate)
		if err != nil {
			return nil, fmt.Errorf("failed to sum budget expenses: %w", err)
		}

		budgetInput := analytics.BudgetInputFromEntity(budget)
		before, err := analytics.BudgetProgressFromSpent(budgetInput, spent.Sub(input.Amount), today)
		if err != nil {
			slog.WarnContext(ctx, "skipping invalid budget", "budgetID", budget.ID, "error", err)
			continue
		}
		after, _ := analytics.BudgetProgressFromSpent(budgetInput, spent, today)

		if before.Status == after.Status || !isAlertStatus(after.Status) {
			continue
		}

		alert := BudgetAlert{
			BudgetID:   budget.ID,
			BudgetName: budget.Name,
			Previous:   before.Status,
			Current:    after.Status,
			Progress:   after,
		}

		err = uc.emailService.QueueBudgetAlertEmail(ctx, adapter.QueueBudgetAlertInput{
			UserID:     input.UserID,
			UserEmail:  input.UserEmail,
			BudgetID:   budget.ID,
			BudgetName: budget.Name,
			Status:     string(after.Status),
			Amount:     budget.Amount,
			Spent:      after.Spent,
			Percentage: after.Percentage,
		})
		if err != nil {
			slog.WarnContext(ctx, "failed to queue budget alert email",
				"userID", input.UserID,
				"budgetID", budget.ID,
				"error", err,
			)
		} else {
			alert.Queued = true
			slog.InfoContext(ctx, "budget alert queued",
				"userID", input.UserID,
				"budgetID", budget.ID,
				"status", after.Status,
			)
		}

		output.Alerts = append(output.Alerts, alert)
	}

	return output, nil
}

func isAlertStatus(status analytics.BudgetStatus) bool {
	return status == analytics.BudgetStatusWarning || status == analytics.BudgetStatusExceeded
}
