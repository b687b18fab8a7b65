package goal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/backend/internal/application/adapter/adaptertest"
	"github.com/financeflow/backend/internal/domain/analytics"
	"github.com/financeflow/backend/internal/domain/entity"
	domainerror "github.com/financeflow/backend/internal/domain/error"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func goalErrorCode(t *testing.T, err error) domainerror.GoalErrorCode {
	t.Helper()
	var goalErr *domainerror.GoalError
	if !errors.As(err, &goalErr) {
		t.Fatalf("expected GoalError, got %v", err)
	}
	return goalErr.Code
}

func TestCreateGoalUseCase(t *testing.T) {
	userID := uuid.New()
	store := adaptertest.NewStore()
	uc := NewCreateGoalUseCase(store.Goals(), store.Categories(), adaptertest.Clock{Time: now})
	deadline := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	t.Run("savings goal defaults and progress", func(t *testing.T) {
		output, err := uc.Execute(context.Background(), CreateGoalInput{
			UserID:   userID,
			Title:    "Reserva",
			Target:   decimal.NewFromInt(10000),
			Current:  decimal.NewFromInt(7500),
			Deadline: deadline,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Goal.Type != entity.GoalTypeSavings {
			t.Errorf("expected default savings type, got %s", output.Goal.Type)
		}
		if output.Goal.Progress.Progress != 75 || output.Goal.Progress.Status != analytics.GoalStatusOnTrack {
			t.Errorf("expected 75%% on_track, got %+v", output.Goal.Progress)
		}
		if output.Goal.Progress.DaysRemaining != 213 {
			t.Errorf("expected 213 days remaining, got %d", output.Goal.Progress.DaysRemaining)
		}
	})

	tests := []struct {
		name         string
		input        CreateGoalInput
		expectedCode domainerror.GoalErrorCode
		expectedErr  error
	}{
		{
			name:         "zero target",
			input:        CreateGoalInput{Title: "x", Target: decimal.Zero, Deadline: deadline},
			expectedCode: domainerror.ErrCodeInvalidGoalTarget,
			expectedErr:  domainerror.ErrInvalidGoalTarget,
		},
		{
			name:         "negative current",
			input:        CreateGoalInput{Title: "x", Target: decimal.NewFromInt(10), Current: decimal.NewFromInt(-1), Deadline: deadline},
			expectedCode: domainerror.ErrCodeInvalidGoalCurrent,
			expectedErr:  domainerror.ErrInvalidGoalCurrent,
		},
		{
			name:         "unknown type",
			input:        CreateGoalInput{Title: "x", Target: decimal.NewFromInt(10), Type: "vacation", Deadline: deadline},
			expectedCode: domainerror.ErrCodeInvalidGoalType,
			expectedErr:  domainerror.ErrInvalidGoalType,
		},
		{
			name:         "blank title",
			input:        CreateGoalInput{Title: " ", Target: decimal.NewFromInt(10), Deadline: deadline},
			expectedCode: domainerror.ErrCodeGoalTitleRequired,
			expectedErr:  domainerror.ErrGoalTitleRequired,
		},
		{
			name:         "missing deadline",
			input:        CreateGoalInput{Title: "x", Target: decimal.NewFromInt(10)},
			expectedCode: domainerror.ErrCodeMissingGoalFields,
			expectedErr:  domainerror.ErrGoalDeadlineRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.UserID = userID
			_, err := uc.Execute(context.Background(), tt.input)
			if code := goalErrorCode(t, err); code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, code)
			}
			if !errors.Is(err, tt.expectedErr) {
				t.Errorf("expected error to wrap %v", tt.expectedErr)
			}
		})
	}
}

func TestUpdateGoalUseCase_ExpenseGoal(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	store := adaptertest.NewStore()
	goal := entity.NewGoal(userID, "Delivery", decimal.NewFromInt(400), decimal.Zero, now.AddDate(0, 1, 0), entity.GoalTypeExpense, nil)
	_ = store.Goals().Create(ctx, goal)
	uc := NewUpdateGoalUseCase(store.Goals(), store.Categories(), adaptertest.Clock{Time: now})

	tests := []struct {
		current          int64
		expectedProgress float64
		expectedStatus   analytics.GoalStatus
	}{
		{0, 100, analytics.GoalStatusCompleted},
		{100, 75, analytics.GoalStatusOnTrack},
		{400, 0, analytics.GoalStatusBehind},
		{600, 0, analytics.GoalStatusBehind},
	}

	for _, tt := range tests {
		current := decimal.NewFromInt(tt.current)
		output, err := uc.Execute(ctx, UpdateGoalInput{GoalID: goal.ID, UserID: userID, Current: &current})
		if err != nil {
			t.Fatalf("current %d: unexpected error: %v", tt.current, err)
		}
		if output.Goal.Progress.Progress != tt.expectedProgress || output.Goal.Progress.Status != tt.expectedStatus {
			t.Errorf("current %d: expected %v/%s, got %+v", tt.current, tt.expectedProgress, tt.expectedStatus, output.Goal.Progress)
		}
	}
}

func TestListGetDeleteGoals(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	store := adaptertest.NewStore()
	clock := adaptertest.Clock{Time: now}

	overdue := entity.NewGoal(userID, "Atrasada", decimal.NewFromInt(100), decimal.NewFromInt(10), now.AddDate(0, 0, -10), entity.GoalTypeSavings, nil)
	later := entity.NewGoal(userID, "Depois", decimal.NewFromInt(100), decimal.NewFromInt(100), now.AddDate(1, 0, 0), entity.GoalTypeSavings, nil)
	_ = store.Goals().Create(ctx, later)
	_ = store.Goals().Create(ctx, overdue)
	_ = store.Goals().Create(ctx, entity.NewGoal(uuid.New(), "Alheia", decimal.NewFromInt(1), decimal.Zero, now, entity.GoalTypeSavings, nil))

	output, err := NewListGoalsUseCase(store.Goals(), clock).Execute(ctx, ListGoalsInput{UserID: userID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Goals) != 2 || output.Goals[0].Title != "Atrasada" {
		t.Fatalf("expected 2 goals ordered by deadline, got %d", len(output.Goals))
	}
	if !output.Goals[0].Progress.Overdue || output.Goals[1].Progress.Status != analytics.GoalStatusCompleted {
		t.Errorf("unexpected progress %+v / %+v", output.Goals[0].Progress, output.Goals[1].Progress)
	}

	_, err = NewGetGoalUseCase(store.Goals(), store.Categories(), clock).Execute(ctx, GetGoalInput{GoalID: overdue.ID, UserID: uuid.New()})
	if code := goalErrorCode(t, err); code != domainerror.ErrCodeUnauthorizedGoalAccess {
		t.Errorf("expected %s, got %s", domainerror.ErrCodeUnauthorizedGoalAccess, code)
	}

	if err := NewDeleteGoalUseCase(store.Goals()).Execute(ctx, DeleteGoalInput{GoalID: overdue.ID, UserID: userID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = NewGetGoalUseCase(store.Goals(), store.Categories(), clock).Execute(ctx, GetGoalInput{GoalID: overdue.ID, UserID: userID})
	if code := goalErrorCode(t, err); code != domainerror.ErrCodeGoalNotFound {
		t.Errorf("expected %s, got %s", domainerror.ErrCodeGoalNotFound, code)
	}
}

func TestListGoalsUseCase_Summary(t *testing.T) {
	type goalSeed struct {
		title    string
		target   int64
		current  int64
		deadline time.Time
		goalType entity.GoalType
	}

	tests := []struct {
		name          string
		goals         []goalSeed
		wantTotal     int
		wantCompleted int
		wantSaved     string
		wantNext      string
	}{
		{
			name:      "no goals",
			wantSaved: "0",
		},
		{
			name: "mixed goals",
			goals: []goalSeed{
				{"Reserva", 10000, 6500, now.AddDate(0, 6, 0), entity.GoalTypeSavings},
				{"Viagem", 3000, 3000, now.AddDate(0, 1, 0), entity.GoalTypeSavings},
				{"Alimentação", 800, 950, now.AddDate(0, 2, 0), entity.GoalTypeExpense},
				{"Atrasada", 100, 10, now.AddDate(0, 0, -3), entity.GoalTypeSavings},
			},
			wantTotal:     4,
			wantCompleted: 1,
			wantSaved:     "9510",
			wantNext:      "Alimentação",
		},
		{
			name: "everything finished",
			goals: []goalSeed{
				{"Carro", 500, 500, now.AddDate(0, 1, 0), entity.GoalTypeSavings},
			},
			wantTotal:     1,
			wantCompleted: 1,
			wantSaved:     "500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			userID := uuid.New()
			store := adaptertest.NewStore()
			for _, g := range tt.goals {
				_ = store.Goals().Create(ctx, entity.NewGoal(userID, g.title, decimal.NewFromInt(g.target), decimal.NewFromInt(g.current), g.deadline, g.goalType, nil))
			}

			output, err := NewListGoalsUseCase(store.Goals(), adaptertest.Clock{Time: now}).Execute(ctx, ListGoalsInput{UserID: userID})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			summary := output.Summary
			if summary.Total != tt.wantTotal || summary.Completed != tt.wantCompleted {
				t.Errorf("expected %d/%d completed, got %d/%d", tt.wantCompleted, tt.wantTotal, summary.Completed, summary.Total)
			}
			if !summary.TotalSaved.Equal(decimal.RequireFromString(tt.wantSaved)) {
				t.Errorf("expected total saved %s, got %s", tt.wantSaved, summary.TotalSaved)
			}
			switch {
			case tt.wantNext == "" && summary.NextDeadline != nil:
				t.Errorf("expected no next deadline, got %s", summary.NextDeadline.Title)
			case tt.wantNext != "" && (summary.NextDeadline == nil || summary.NextDeadline.Title != tt.wantNext):
				t.Errorf("expected next deadline %s, got %+v", tt.wantNext, summary.NextDeadline)
			}
		})
	}
}
