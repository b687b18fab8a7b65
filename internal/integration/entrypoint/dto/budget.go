// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/financeflow/backend/internal/application/usecase/budget"
)

// CreateBudgetRequest represents the request body for budget creation.
type CreateBudgetRequest struct {
	Name       string          `json:"name" binding:"required"`
	Amount     decimal.Decimal `json:"amount"`
	Period     string          `json:"period" binding:"required"`
	CategoryID *string         `json:"category_id,omitempty"`
	StartDate  string          `json:"start_date" binding:"required"`
	EndDate    string          `json:"end_date" binding:"required"`
}

// UpdateBudgetRequest represents the request body for budget update.
type UpdateBudgetRequest struct {
	Name          *string          `json:"name,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Period        *string          `json:"period,omitempty"`
	CategoryID    *string          `json:"category_id,omitempty"`
	ClearCategory bool             `json:"clear_category,omitempty"`
	StartDate     *string          `json:"start_date,omitempty"`
	EndDate       *string          `json:"end_date,omitempty"`
}

// BudgetProgressResponse is the computed spending progress of a budget.
type BudgetProgressResponse struct {
	Spent      string  `json:"spent"`
	Percentage float64 `json:"percentage"`
	Remaining  string  `json:"remaining"`
	Status     string  `json:"status"`
}

// BudgetResponse represents a single budget in API responses.
type BudgetResponse struct {
	ID         string                       `json:"id"`
	Name       string                       `json:"name"`
	Amount     string                       `json:"amount"`
	Period     string                       `json:"period"`
	CategoryID *string                      `json:"category_id"`
	Category   *TransactionCategoryResponse `json:"category,omitempty"`
	StartDate  string                       `json:"start_date"`
	EndDate    string                       `json:"end_date"`
	Progress   BudgetProgressResponse       `json:"progress"`
	CreatedAt  time.Time                    `json:"created_at"`
	UpdatedAt  time.Time                    `json:"updated_at"`
}

// BudgetListResponse represents the response for listing budgets.
type BudgetListResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// ToBudgetResponse converts a BudgetOutput to a BudgetResponse DTO.
func ToBudgetResponse(output *budget.BudgetOutput) BudgetResponse {
	response := BudgetResponse{
		ID:        output.ID.String(),
		Name:      output.Name,
		Amount:    output.Amount.StringFixed(2),
		Period:    string(output.Period),
		StartDate: output.StartDate.Format(DateLayout),
		EndDate:   output.EndDate.Format(DateLayout),
		Progress: BudgetProgressResponse{
			Spent:      output.Progress.Spent.StringFixed(2),
			Percentage: output.Progress.Percentage,
			Remaining:  output.Progress.Remaining.StringFixed(2),
			Status:     string(output.Progress.Status),
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

// ToBudgetListResponse converts budget outputs to a BudgetListResponse DTO.
func ToBudgetListResponse(outputs []*budget.BudgetOutput) BudgetListResponse {
	budgets := make([]BudgetResponse, len(outputs))
	for i, output := range outputs {
		budgets[i] = ToBudgetResponse(output)
	}
	return BudgetListResponse{Budgets: budgets}
}
