// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/financeflow/backend/internal/application/usecase/goal"
)

// CreateGoalRequest represents the request body for goal creation.
type CreateGoalRequest struct {
	Title      string          `json:"title" binding:"required"`
	Target     decimal.Decimal `json:"target"`
	Current    decimal.Decimal `json:"current"`
	Deadline   string          `json:"deadline" binding:"required"`
	Type       string          `json:"type,omitempty"`
	CategoryID *string         `json:"category_id,omitempty"`
}

// UpdateGoalRequest represents the request body for goal update.
type UpdateGoalRequest struct {
	Title         *string          `json:"title,omitempty"`
	Target        *decimal.Decimal `json:"target,omitempty"`
	Current       *decimal.Decimal `json:"current,omitempty"`
	Deadline      *string          `json:"deadline,omitempty"`
	Type          *string          `json:"type,omitempty"`
	CategoryID    *string          `json:"category_id,omitempty"`
	ClearCategory bool             `json:"clear_category,omitempty"`
}

// GoalProgressResponse is the computed progress of a goal.
type GoalProgressResponse struct {
	Progress      float64 `json:"progress"`
	Status        string  `json:"status"`
	DaysRemaining int     `json:"days_remaining"`
	Overdue       bool    `json:"overdue"`
}

// GoalResponse represents a single goal in API responses.
type GoalResponse struct {
	ID         string                       `json:"id"`
	Title      string                       `json:"title"`
	Target     string                       `json:"target"`
	Current    string                       `json:"current"`
	Deadline   string                       `json:"deadline"`
	Type       string                       `json:"type"`
	CategoryID *string                      `json:"category_id"`
	Category   *TransactionCategoryResponse `json:"category,omitempty"`
	Progress   GoalProgressResponse         `json:"progress"`
	CreatedAt  time.Time                    `json:"created_at"`
	UpdatedAt  time.Time                    `json:"updated_at"`
}

// GoalListResponse represents the response for listing goals.
type GoalListResponse struct {
	Goals   []GoalResponse      `json:"goals"`
	Summary GoalSummaryResponse `json:"summary"`
}

// GoalSummaryResponse carries the goal overview counters.
type GoalSummaryResponse struct {
	Total        int                   `json:"total"`
	Completed    int                   `json:"completed"`
	TotalSaved   string                `json:"total_saved"`
	NextDeadline *GoalDeadlineResponse `json:"next_deadline,omitempty"`
}

// GoalDeadlineResponse identifies the goal due soonest.
type GoalDeadlineResponse struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Deadline string `json:"deadline"`
}

// ToGoalResponse converts a GoalOutput to a GoalResponse DTO.
func ToGoalResponse(output *goal.GoalOutput) GoalResponse {
	response := GoalResponse{
		ID:       output.ID.String(),
		Title:    output.Title,
		Target:   output.Target.StringFixed(2),
		Current:  output.Current.StringFixed(2),
		Deadline: output.Deadline.Format(DateLayout),
		Type:     string(output.Type),
		Progress: GoalProgressResponse{
			Progress:      output.Progress.Progress,
			Status:        string(output.Progress.Status),
			DaysRemaining: output.Progress.DaysRemaining,
			Overdue:       output.Progress.Overdue,
		},
		CreatedAt: output.CreatedAt,
		UpdatedAt: output.UpdatedAt,
	}

	if output.CategoryID != nil {
		id := output.CategoryID.String()
		response.CategoryID = &id
	}
	if output.Category != nil {
		response.Category = &TransactionCategoryResponse{
			ID:    output.Category.ID.String(),
			Name:  output.Category.Name,
			Color: output.Category.Color,
			Icon:  output.Category.Icon,
			Type:  string(output.Category.Type),
		}
	}

	return response
}

// ToGoalListResponse converts the list output to a GoalListResponse DTO.
func ToGoalListResponse(output *goal.ListGoalsOutput) GoalListResponse {
	goals := make([]GoalResponse, len(output.Goals))
	for i, g := range output.Goals {
		goals[i] = ToGoalResponse(g)
	}

	summary := GoalSummaryResponse{
		Total:      output.Summary.Total,
		Completed:  output.Summary.Completed,
		TotalSaved: output.Summary.TotalSaved.StringFixed(2),
	}
	if next := output.Summary.NextDeadline; next != nil {
		summary.NextDeadline = &GoalDeadlineResponse{
			ID:       next.ID.String(),
			Title:    next.Title,
			Deadline: next.Deadline.Format(DateLayout),
		}
	}

	return GoalListResponse{Goals: goals, Summary: summary}
}
