// Package budget contains budget-related use cases.
package budget

import (
	"context"

	"github.com/google/uuid"

	"github.com/financeflow/backend/internal/application/adapter"
)

// ListBudgetsInput represents the input for listing budgets.
type ListBudgetsInput struct {
	UserID uuid.UUID
}

// ListBudgetsOutput represents the output of listing budgets.
type ListBudgetsOutput struct {
	Budgets []*BudgetOutput
}

// ListBudgetsUseCase lists budgets with their progress.
type ListBudgetsUseCase struct {
	budgetRepo      adapter.BudgetRepository
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewListBudgetsUseCase creates a new ListBudgetsUseCase instance.
func NewListBudgetsUseCase(
	budgetRepo adapter.BudgetRepository,
	transactionRepo adapter.TransactionRepository,
	clock adapter.Clock,
) *ListBudgetsUseCase {
	return &ListBudgetsUseCase{
		budgetRepo:      budgetRepo,
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute performs the budget listing.
func (uc *ListBudgetsUseCase) Execute(ctx context.Context, input ListBudgetsInput) (*ListBudgetsOutput, error) {
	budgets, err := uc.budgetRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	today := uc.clock.Now()
	output := &ListBudgetsOutput{
		Budgets: make([]*BudgetOutput, 0, len(budgets)),
	}
	for _, b := range budgets {
		progress, err := progressFor(ctx, uc.transactionRepo, b.Budget, today)
		if err != nil {
			return nil, err
		}
		output.Budgets = append(output.Budgets, toBudgetOutput(b.Budget, b.Category, progress))
	}

	return output, nil
}
