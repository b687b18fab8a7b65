package analytics

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/financeflow/backend/internal/domain/entity"
	domainerror "github.com/financeflow/backend/internal/domain/error"
)

// GoalStatus is the qualitative bucket of a goal's progress.
type GoalStatus string

const (
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusOnTrack   GoalStatus = "on_track"
	GoalStatusWarning   GoalStatus = "warning"
	GoalStatusBehind    GoalStatus = "behind"
)

// GoalInput is the part of a goal the calculator needs.
type GoalInput struct {
	Target   decimal.Decimal
	Current  decimal.Decimal
	Type     entity.GoalType
	Deadline time.Time
}

// GoalInputFromEntity extracts the calculator input from a goal.
func GoalInputFromEntity(g *entity.Goal) GoalInput {
	return GoalInput{
		Target:   g.Target,
		Current:  g.Current,
		Type:     g.Type,
		Deadline: g.Deadline,
	}
}

// GoalProgress is the normalized progress of a goal.
type GoalProgress struct {
	Progress      float64 // 0-100
	Status        GoalStatus
	DaysRemaining int // Negative when overdue
	Overdue       bool
}

// CalculateGoalProgress normalizes a goal to 0-100. Savings goals rise toward
// the target; expense goals start at 100 and fall as current approaches and
// passes the target.
func CalculateGoalProgress(g GoalInput, now time.Time) (GoalProgress, error) {
	days := daysUntil(g.Deadline, now)
	result := GoalProgress{
		DaysRemaining: days,
		Overdue:       days < 0,
	}

	if !g.Target.IsPositive() {
		result.Status = GoalStatusBehind
		return result, fmt.Errorf("%w: got %s", domainerror.ErrInvalidGoalTarget, g.Target.String())
	}

	ratio := g.Current.Div(g.Target).Mul(hundred)
	var progress decimal.Decimal
	if g.Type == entity.GoalTypeExpense {
		progress = decimal.Max(hundred.Sub(ratio), decimal.Zero)
	} else {
		progress = decimal.Min(ratio, hundred)
	}
	if progress.IsNegative() {
		progress = decimal.Zero
	}

	result.Status = classifyGoal(progress)

	display := progress.Round(2)
	if result.Status != GoalStatusCompleted && display.GreaterThanOrEqual(hundred) {
		// an unfinished goal never shows 100
		display = progress.Truncate(2)
	}
	result.Progress, _ = display.Float64()
	return result, nil
}

var (
	goalOnTrackThreshold = decimal.NewFromInt(75)
	goalWarningThreshold = decimal.NewFromInt(50)
)

// classifyGoal buckets the unrounded progress.
func classifyGoal(progress decimal.Decimal) GoalStatus {
	switch {
	case progress.GreaterThanOrEqual(hundred):
		return GoalStatusCompleted
	case progress.GreaterThanOrEqual(goalOnTrackThreshold):
		return GoalStatusOnTrack
	case progress.GreaterThanOrEqual(goalWarningThreshold):
		return GoalStatusWarning
	default:
		return GoalStatusBehind
	}
}

// daysUntil returns ceil((deadline - now) / 24h).
func daysUntil(deadline, now time.Time) int {
	return int(math.Ceil(deadline.Sub(now).Hours() / 24))
}
