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

// CreateGoalInput represents the input for goal creation.
type CreateGoalInput struct {
	UserID     uuid.UUID
	Title      string
	Target     decimal.Decimal
	Current    decimal.Decimal
	Deadline   time.Time
	Type       entity.GoalType // Optional, defaults to savings
	CategoryID *uuid.UUID
}

// CreateGoalOutput represents the output of goal creation.
type CreateGoalOutput struct {
	Goal *GoalOutput
}

// CreateGoalUseCase handles goal creation logic.
type CreateGoalUseCase struct {
	goalRepo     adapter.GoalRepository
	categoryRepo adapter.CategoryRepository
	clock        adapter.Clock
}

// NewCreateGoalUseCase creates a new CreateGoalUseCase instance.
func NewCreateGoalUseCase(goalRepo adapter.GoalRepository, categoryRepo adapter.CategoryRepository, clock adapter.Clock) *CreateGoalUseCase {
	return &CreateGoalUseCase{
		goalRepo:     goalRepo,
		categoryRepo: categoryRepo,
		clock:        clock,
	}
}

// Execute performs the goal creation.
func (uc *CreateGoalUseCase) Execute(ctx context.Context, input CreateGoalInput) (*CreateGoalOutput, error) {
	goalType := input.Type
	if goalType == "" {
		goalType = entity.GoalTypeSavings
	}

	if err := validateGoalFields(input.Title, input.Target, input.Current, goalType, input.Deadline); err != nil {
		return nil, err
	}

	category, err := resolveCategory(ctx, uc.categoryRepo, input.CategoryID, input.UserID)
	if err != nil {
		return nil, err
	}

	goal := entity.NewGoal(
		input.UserID,
		strings.TrimSpace(input.Title),
		input.Target,
		input.Current,
		input.Deadline,
		goalType,
		input.CategoryID,
	)

	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return &CreateGoalOutput{
		Goal: toGoalOutput(ctx, goal, category, uc.clock.Now()),
	}, nil
}
