// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/backend/internal/application/adapter"
	"github.com/financeflow/backend/internal/domain/entity"
)

// CreateBudgetInput represents the input for budget creation.
type CreateBudgetInput struct {
	UserID     uuid.UUID
	Name       string
	Amount     decimal.Decimal
	Period     entity.BudgetPeriod
	CategoryID *uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
}

// CreateBudgetOutput represents the output of budget creation.
type CreateBudgetOutput struct {
	Budget *BudgetOutput
}

// CreateBudgetUseCase handles budget creation logic.
type CreateBudgetUseCase struct {
	budgetRepo      adapter.BudgetRepository
	categoryRepo    adapter.CategoryRepository
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewCreateBudgetUseCase creates a new CreateBudgetUseCase instance.
func NewCreateBudgetUseCase(
	budgetRepo adapter.BudgetRepository,
	categoryRepo adapter.CategoryRepository,
	transactionRepo adapter.TransactionRepository,
	clock adapter.Clock,
) *CreateBudgetUseCase {
	return &CreateBudgetUseCase{
		budgetRepo:      budgetRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute performs the budget creation.
func (uc *CreateBudgetUseCase) Execute(ctx context.Context, input CreateBudgetInput) (*CreateBudgetOutput, error) {
	if err := validateBudgetFields(input.Name, input.Amount, input.Period, input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	category, err := resolveCategory(ctx, uc.categoryRepo, input.CategoryID, input.UserID)
	if err != nil {
		return nil, err
	}

	budget := entity.NewBudget(
		input.UserID,
		strings.TrimSpace(input.Name),
		input.Amount,
		input.Period,
		input.CategoryID,
		input.StartDate,
		input.EndDate,
	)

	if err := uc.budgetRepo.Create(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	progress, err := progressFor(ctx, uc.transactionRepo, budget, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	return &CreateBudgetOutput{
		Budget: toBudgetOutput(budget, category, progress),
	}, nil
}
