// Package goal contains goal-related use cases.
package goal

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

// UpdateGoalInput represents the input for goal update. Nil fields are kept.
type UpdateGoalInput struct {
	GoalID        uuid.UUID
	UserID        uuid.UUID
	Title         *string
	Target        *decimal.Decimal
	Current       *decimal.Decimal
	Deadline      *time.Time
	Type          *entity.GoalType
	CategoryID    *uuid.UUID
	ClearCategory bool
}

// UpdateGoalOutput represents the output of goal update.
type UpdateGoalOutput struct {
	Goal *GoalOutput
}

// UpdateGoalUseCase handles goal update logic.
type UpdateGoalUseCase struct {
	goalRepo     adapter.GoalRepository
	categoryRepo adapter.CategoryRepository
	clock        adapter.Clock
}

// NewUpdateGoalUseCase creates a new UpdateGoalUseCase instance.
func NewUpdateGoalUseCase(goalRepo adapter.GoalRepository, categoryRepo adapter.CategoryRepository, clock adapter.Clock) *UpdateGoalUseCase {
	return &UpdateGoalUseCase{
		goalRepo:     goalRepo,
		categoryRepo: categoryRepo,
		clock:        clock,
	}
}

// Execute performs the goal update.
func (uc *UpdateGoalUseCase) Execute(ctx context.Context, input UpdateGoalInput) (*UpdateGoalOutput, error) {
	goal, err := findOwnedGoal(ctx, uc.goalRepo, input.GoalID, input.UserID)
	if err != nil {
		return nil, err
	}

	updated := *goal
	if input.Title != nil {
		updated.Title = strings.TrimSpace(*input.Title)
	}
	if input.Target != nil {
		updated.Target = *input.Target
	}
	if input.Current != nil {
		updated.Current = *input.Current
	}
	if input.Deadline != nil {
		updated.Deadline = *input.Deadline
	}
	if input.Type != nil {
		updated.Type = *input.Type
	}

	if err := validateGoalFields(updated.Title, updated.Target, updated.Current, updated.Type, updated.Deadline); err != nil {
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
	if err := uc.goalRepo.Update(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	return &UpdateGoalOutput{
		Goal: toGoalOutput(ctx, &updated, category, uc.clock.Now()),
	}, nil
}
