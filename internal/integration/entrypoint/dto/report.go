// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/financeflow/backend/internal/application/usecase/report"
)

// GenerateReportRequest represents the request body for report generation.
type GenerateReportRequest struct {
	ReportType string  `json:"report_type" binding:"required"`
	StartDate  *string `json:"start_date,omitempty"`
	EndDate    *string `json:"end_date,omitempty"`
	CategoryID *string `json:"category_id,omitempty"`
}

// ReportSummaryResponse holds the report totals.
type ReportSummaryResponse struct {
	TotalIncome      string `json:"total_income"`
	TotalExpenses    string `json:"total_expenses"`
	Balance          string `json:"balance"`
	TransactionCount int    `json:"transaction_count"`
}

// ReportCategoryResponse is one row of the expense breakdown.
type ReportCategoryResponse struct {
	CategoryID *string `json:"category_id"`
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Amount     string  `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// ReportTransactionResponse is one transaction of the report.
type ReportTransactionResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Amount       string  `json:"amount"`
	Type         string  `json:"type"`
	Date         string  `json:"date"`
	CategoryID   *string `json:"category_id"`
	CategoryName string  `json:"category_name"`
}

// ReportResponse represents a generated report.
type ReportResponse struct {
	ReportType        string                      `json:"report_type"`
	StartDate         string                      `json:"start_date"`
	EndDate           string                      `json:"end_date"`
	Category          *CategoryResponse           `json:"category,omitempty"`
	Summary           ReportSummaryResponse       `json:"summary"`
	CategoryBreakdown []ReportCategoryResponse    `json:"category_breakdown"`
	Transactions      []ReportTransactionResponse `json:"transactions"`
	GeneratedAt       time.Time                   `json:"generated_at"`
}

// ToReportResponse converts a GenerateReportOutput to a ReportResponse DTO.
func ToReportResponse(output *report.GenerateReportOutput) ReportResponse {
	response := ReportResponse{
		ReportType: string(output.ReportType),
		StartDate:  output.StartDate.Format(DateLayout),
		EndDate:    output.EndDate.Format(DateLayout),
		Summary: ReportSummaryResponse{
			TotalIncome:      output.Summary.TotalIncome.StringFixed(2),
			TotalExpenses:    output.Summary.TotalExpenses.StringFixed(2),
			Balance:          output.Summary.Balance.StringFixed(2),
			TransactionCount: output.Summary.TransactionCount,
		},
		CategoryBreakdown: make([]ReportCategoryResponse, len(output.CategoryBreakdown)),
		Transactions:      make([]ReportTransactionResponse, len(output.Transactions)),
		GeneratedAt:       output.GeneratedAt,
	}

	if output.Category != nil {
		category := ToCategoryResponse(output.Category)
		response.Category = &category
	}

	for i, c := range output.CategoryBreakdown {
		response.CategoryBreakdown[i] = ReportCategoryResponse{
			CategoryID: uuidString(c.CategoryID),
			Name:       c.Name,
			Color:      c.Color,
			Amount:     c.Amount.StringFixed(2),
			Percentage: c.Percentage,
		}
	}

	for i, t := range output.Transactions {
		response.Transactions[i] = ReportTransactionResponse{
			ID:           t.ID.String(),
			Title:        t.Title,
			Description:  t.Description,
			Amount:       t.Amount.StringFixed(2),
			Type:         string(t.Type),
			Date:         t.Date.Format(DateLayout),
			CategoryID:   uuidString(t.CategoryID),
			CategoryName: t.CategoryName,
		}
	}

	return response
}
