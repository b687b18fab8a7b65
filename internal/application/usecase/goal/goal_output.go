// Package goal contains goal-related use cases.
package goal

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

// GoalOutput represents a goal together with its progress.
type GoalOutput struct {
	ID         uuid.UUID
	Title      string
	Target     decimal.Decimal
	Current    decimal.Decimal
	Deadline   time.Time
	Type       entity.GoalType
	CategoryID *uuid.UUID
	Category   *entity.Category
	Progress   analytics.GoalProgress
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func toGoalOutput(ctx context.Context, goal *entity.Goal, category *entity.Category, now time.Time) *GoalOutput {
	progress, err := analytics.CalculateGoalProgress(analytics.GoalInputFromEntity(goal), now)
	if err != nil {
		slog.WarnContext(ctx, "goal has invalid target", "goalID", goal.ID, "error", err)
	}

	return &GoalOutput{
		ID:         goal.ID,
		Title:      goal.Title,
		Target:     goal.Target,
		Current:    goal.Current,
		Deadline:   goal.Deadline,
		Type:       goal.Type,
		CategoryID: goal.CategoryID,
		Category:   category,
		Progress:   progress,
		CreatedAt:  goal.CreatedAt,
		UpdatedAt:  goal.UpdatedAt,
	}
}

// findOwnedGoal loads a goal and checks that it belongs to userID.
func findOwnedGoal(ctx context.Context, repo adapter.GoalRepository, id, userID uuid.UUID) (*entity.Goal, error) {
	goal, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrGoalNotFound) {
			return nil, domainerror.NewGoalError(
				domainerror.ErrCodeGoalNotFound,
				"goal not found",
				domainerror.ErrGoalNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}

	if goal.UserID != userID {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeUnauthorizedGoalAccess,
			"not authorized to access this goal",
			domainerror.ErrUnauthorizedGoalAccess,
		)
	}
	return goal, nil
}

func resolveCategory(ctx context.Context, repo adapter.CategoryRepository, categoryID *uuid.UUID, userID uuid.UUID) (*entity.Category, error) {
	if categoryID == nil {
		return nil, nil
	}
	category, err := repo.FindByID(ctx, *categoryID)
	if err != nil || !category.IsOwnedBy(userID) {
		return nil, domainerror.NewGoalError(
			domainerror.ErrCodeGoalCategoryNotFound,
			"category not found",
			domainerror.ErrGoalCategoryNotFound,
		)
	}
	return category, nil
}

func validateGoalFields(title string, target, current decimal.Decimal, goalType entity.GoalType, deadline time.Time) error {
	if strings.TrimSpace(title) == "" {
		return domainerror.NewGoalError(
			domainerror.ErrCodeGoalTitleRequired,
			"goal title is required",
			domainerror.ErrGoalTitleRequired,
		)
	}
	if !target.IsPositive() {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalTarget,
			"target must be greater than zero",
			domainerror.ErrInvalidGoalTarget,
		)
	}
	if current.IsNegative() {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalCurrent,
			"current amount must not be negative",
			domainerror.ErrInvalidGoalCurrent,
		)
	}
	if !goalType.IsValid() {
		return domainerror.NewGoalError(
			domainerror.ErrCodeInvalidGoalType,
			"type must be 'savings' or 'expense'",
			domainerror.ErrInvalidGoalType,
		)
	}
	if deadline.IsZero() {
		return domainerror.NewGoalError(
			domainerror.ErrCodeMissingGoalFields,
			"deadline is required",
			domainerror.ErrGoalDeadlineRequired,
		)
	}
	return nil
}
