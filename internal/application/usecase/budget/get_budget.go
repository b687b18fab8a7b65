// Package budget contains budget-related use cases.
package budget

import (
	"context"

	"github.com/google/uuid"

	"github.com/financeflow/backend/internal/application/adapter"
	"github.com/financeflow/backend/internal/domain/entity"
)

// GetBudgetInput represents the input for fetching one budget.
type GetBudgetInput struct {
	BudgetID uuid.UUID
	UserID   uuid.UUID
}

// GetBudgetOutput represents the output of fetching one budget.
type GetBudgetOutput struct {
	Budget *BudgetOutput
}

// GetBudgetUseCase returns a single budget with its progress.
type GetBudgetUseCase struct {
	budgetRepo      adapter.BudgetRepository
	categoryRepo    adapter.CategoryRepository
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewGetBudgetUseCase creates a new GetBudgetUseCase instance.
func NewGetBudgetUseCase(
	budgetRepo adapter.BudgetRepository,
	categoryRepo adapter.CategoryRepository,
	transactionRepo adapter.TransactionRepository,
	clock adapter.Clock,
) *GetBudgetUseCase {
	return &GetBudgetUseCase{
		budgetRepo:      budgetRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute fetches the budget.
func (uc *GetBudgetUseCase) Execute(ctx context.Context, input GetBudgetInput) (*GetBudgetOutput, error) {
	budget, err := findOwnedBudget(ctx, uc.budgetRepo, input.BudgetID, input.UserID)
	if err != nil {
		return nil, err
	}

	var category *entity.Category
	if budget.CategoryID != nil {
		category, _ = uc.categoryRepo.FindByID(ctx, *budget.CategoryID)
	}

	progress, err := progressFor(ctx, uc.transactionRepo, budget, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	return &GetBudgetOutput{
		Budget: toBudgetOutput(budget, category, progress),
	}, nil
}
