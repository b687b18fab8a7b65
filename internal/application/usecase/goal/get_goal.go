// Package goal contains goal-related use cases.
package goal

import (
	"context"

	"github.com/google/uuid"

	"github.com/financeflow/backend/internal/application/adapter"
	"github.com/financeflow/backend/internal/domain/entity"
)

// GetGoalInput represents the input for getting a goal.
type GetGoalInput struct {
	GoalID uuid.UUID
	UserID uuid.UUID
}

// GetGoalOutput represents the output of getting a goal.
type GetGoalOutput struct {
	Goal *GoalOutput
}

// GetGoalUseCase handles getting a single goal.
type GetGoalUseCase struct {
	goalRepo     adapter.GoalRepository
	categoryRepo adapter.CategoryRepository
	clock        adapter.Clock
}

// NewGetGoalUseCase creates a new GetGoalUseCase instance.
func NewGetGoalUseCase(goalRepo adapter.GoalRepository, categoryRepo adapter.CategoryRepository, clock adapter.Clock) *GetGoalUseCase {
	return &GetGoalUseCase{
		goalRepo:     goalRepo,
		categoryRepo: categoryRepo,
		clock:        clock,
	}
}

// Execute retrieves a goal by ID.
func (uc *GetGoalUseCase) Execute(ctx context.Context, input GetGoalInput) (*GetGoalOutput, error) {
	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	var category *entity.Category
	if goal.CategoryID != nil {
		category, _ = uc.categoryRepo.FindByID(ctx, *goal.CategoryID)
	}

	return &GetGoalOutput{
		Goal: toGoalOutput(ctx, goal, category, uc.clock.Now()),
	}, nil
}
