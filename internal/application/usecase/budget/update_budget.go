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

// UpdateBudgetInput represents the input for budget update. Nil fields are kept.
type UpdateBudgetInput struct {
	BudgetID      uuid.UUID
	UserID        uuid.UUID
	Name          *string
	Amount        *decimal.Decimal
	Period        *entity.BudgetPeriod
	CategoryID    *uuid.UUID
	ClearCategory bool
	StartDate     *time.Time
	EndDate       *time.Time
}

// UpdateBudgetOutput represents the output of budget update.
type UpdateBudgetOutput struct {
	Budget *BudgetOutput
}

// UpdateBudgetUseCase handles budget update logic.
type UpdateBudgetUseCase struct {
	budgetRepo      adapter.BudgetRepository
	categoryRepo    adapter.CategoryRepository
	transactionRepo adapter.TransactionRepository
	clock           adapter.Clock
}

// NewUpdateBudgetUseCase creates a new UpdateBudgetUseCase instance.
func NewUpdateBudgetUseCase(
	budgetRepo adapter.BudgetRepository,
	categoryRepo adapter.CategoryRepository,
	transactionRepo adapter.TransactionRepository,
	clock adapter.Clock,
) *UpdateBudgetUseCase {
	return &UpdateBudgetUseCase{
		budgetRepo:      budgetRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Execute performs the budget update.
func (uc *UpdateBudgetUseCase) Execute(ctx context.Context, input UpdateBudgetInput) (*UpdateBudgetOutput, error) {
	budget, err := findOwnedBudget(ctx, uc.budgetRepo, input.BudgetID, input.UserID)
	if err != nil {
		return nil, err
	}

	updated := *budget
	if input.Name != nil {
		updated.Name = strings.TrimSpace(*input.Name)
	}
	if input.Amount != nil {
		updated.Amount = *input.Amount
	}
	if input.Period != nil {
		updated.Period = *input.Period
	}
	if input.StartDate != nil {
		updated.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		updated.EndDate = *input.EndDate
	}

	if err := validateBudgetFields(updated.Name, updated.Amount, updated.Period, updated.StartDate, updated.EndDate); err != nil {
		return nil, err
	}

	switch {
	case input.ClearCategory:
		updated.CategoryID = nil
	case input.CategoryID != nil:
		updated.CategoryID = input.CategoryID
	}
	category, err := resolveCategory(ctx, uc.categoryRepo, updated.CategoryID, input.UserID)
	if err != nil {
		return nil, err
	}

	updated.UpdatedAt = time.Now().UTC()
	if err := uc.budgetRepo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	progress, err := progressFor(ctx, uc.transactionRepo, &updated, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	return &UpdateBudgetOutput{
		Budget: toBudgetOutput(&updated, category, progress),
	}, nil
}
