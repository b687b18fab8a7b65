// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/backend/internal/application/adapter"
	"github.com/financeflow/backend/internal/domain/analytics"
	"github.com/financeflow/backend/internal/domain/entity"
	domainerror "github.com/financeflow/backend/internal/domain/error"
)

// BudgetOutput represents a budget together with its progress.
type BudgetOutput struct {
	ID         uuid.UUID
	Name       string
	Amount     decimal.Decimal
	Period     entity.BudgetPeriod
	CategoryID *uuid.UUID
	Category   *entity.Category
	StartDate  time.Time
	EndDate    time.Time
	Progress   analytics.BudgetProgress
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// progressFor sums the budget's matching expenses and classifies them.
// An invalid stored budget yields the neutral progress.
func progressFor(
	ctx context.Context,
	transactionRepo adapter.TransactionRepository,
	budget *entity.Budget,
	today time.Time,
) (analytics.BudgetProgress, error) {
	spent, err := transactionRepo.SumExpenses(ctx, budget.UserID, budget.CategoryID, budget.StartDate, budget.EndDate)
	if err != nil {
		return analytics.BudgetProgress{}, fmt.Errorf("failed to sum budget expenses: %w", err)
	}

	progress, err := analytics.BudgetProgressFromSpent(analytics.BudgetInputFromEntity(budget), spent, today)
	if err != nil {
		slog.WarnContext(ctx, "budget has invalid range or amount", "budgetID", budget.ID, "error", err)
	}
	return progress, nil
}

func toBudgetOutput(budget *entity.Budget, category *entity.Category, progress analytics.BudgetProgress) *BudgetOutput {
	return &BudgetOutput{
		ID:         budget.ID,
		Name:       budget.Name,
		Amount:     budget.Amount,
		Period:     budget.Period,
		CategoryID: budget.CategoryID,
		Category:   category,
		StartDate:  budget.StartDate,
		EndDate:    budget.EndDate,
		Progress:   progress,
		CreatedAt:  budget.CreatedAt,
		UpdatedAt:  budget.UpdatedAt,
	}
}

// findOwnedBudget loads a budget and checks that it belongs to userID.
func findOwnedBudget(ctx context.Context, repo adapter.BudgetRepository, id, userID uuid.UUID) (*entity.Budget, error) {
	budget, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeBudgetNotFound,
				"budget not found",
				domainerror.ErrBudgetNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}

	if budget.UserID != userID {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeUnauthorizedBudgetAccess,
			"not authorized to access this budget",
			domainerror.ErrUnauthorizedBudgetAccess,
		)
	}
	return budget, nil
}

// resolveCategory validates an optional category reference.
func resolveCategory(ctx context.Context, repo adapter.CategoryRepository, categoryID *uuid.UUID, userID uuid.UUID) (*entity.Category, error) {
	if categoryID == nil {
		return nil, nil
	}
	category, err := repo.FindByID(ctx, *categoryID)
	if err != nil || !category.IsOwnedBy(userID) {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetCategoryNotFound,
			"category not found",
			domainerror.ErrBudgetCategoryNotFound,
		)
	}
	return category, nil
}

// validateBudgetFields checks the fields shared by create and update.
func validateBudgetFields(name string, amount decimal.Decimal, period entity.BudgetPeriod, start, end time.Time) error {
	if strings.TrimSpace(name) == "" {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetNameRequired,
			"budget name is required",
			domainerror.ErrBudgetNameRequired,
		)
	}
	if !amount.IsPositive() {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetAmount,
			"budget amount must be greater than zero",
			domainerror.ErrInvalidBudgetAmount,
		)
	}
	if !period.IsValid() {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetPeriod,
			"period must be 'monthly' or 'yearly'",
			domainerror.ErrInvalidBudgetPeriod,
		)
	}
	if !start.Before(end) {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeBudgetInvalidRange,
			"start_date must be before end_date",
			domainerror.ErrInvalidBudgetRange,
		)
	}
	return nil
}
