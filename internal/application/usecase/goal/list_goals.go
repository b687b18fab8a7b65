// Package goal contains goal-related use cases.
package goal

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/backend/internal/application/adapter"
	"github.com/financeflow/backend/internal/domain/analytics"
	"github.com/financeflow/backend/internal/domain/entity"
)

// ListGoalsInput represents the input for listing goals.
type ListGoalsInput struct {
	UserID uuid.UUID
}

// ListGoalsOutput represents the output of listing goals.
type ListGoalsOutput struct {
	Goals   []*GoalOutput
	Summary GoalsSummary
}

// GoalsSummary feeds the overview cards above the goal list.
type GoalsSummary struct {
	Total     int
	Completed int
	// TotalSaved sums the current amount of savings goals.
	TotalSaved decimal.Decimal
	// NextDeadline is the unfinished goal due soonest that is not overdue.
	NextDeadline *GoalOutput
}

// ListGoalsUseCase handles listing goals logic.
type ListGoalsUseCase struct {
	goalRepo adapter.GoalRepository
	clock    adapter.Clock
}

// NewListGoalsUseCase creates a new ListGoalsUseCase instance.
func NewListGoalsUseCase(goalRepo adapter.GoalRepository, clock adapter.Clock) *ListGoalsUseCase {
	return &ListGoalsUseCase{
		goalRepo: goalRepo,
		clock:    clock,
	}
}

// Execute performs the goal listing.
func (uc *ListGoalsUseCase) Execute(ctx context.Context, input ListGoalsInput) (*ListGoalsOutput, error) {
	goals, err := uc.goalRepo.FindByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	output := &ListGoalsOutput{
		Goals: make([]*GoalOutput, 0, len(goals)),
	}
	for _, g := range goals {
		output.Goals = append(output.Goals, toGoalOutput(ctx, g.Goal, g.Category, now))
	}
	output.Summary = summarizeGoals(output.Goals)

	return output, nil
}

func summarizeGoals(goals []*GoalOutput) GoalsSummary {
	summary := GoalsSummary{Total: len(goals), TotalSaved: decimal.Zero}
	for _, g := range goals {
		if g.Type == entity.GoalTypeSavings {
			summary.TotalSaved = summary.TotalSaved.Add(g.Current)
		}
		if g.Progress.Status == analytics.GoalStatusCompleted {
			summary.Completed++
			continue
		}
		if g.Progress.Overdue {
			continue
		}
		// ties keep the first listed goal
		if summary.NextDeadline == nil || g.Deadline.Before(summary.NextDeadline.Deadline) {
			summary.NextDeadline = g
		}
	}
	return summary
}
