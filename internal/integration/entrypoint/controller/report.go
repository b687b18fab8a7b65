// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/financeflow/backend/internal/application/usecase/report"
	domainerror "github.com/financeflow/backend/internal/domain/error"
	"github.com/financeflow/backend/internal/integration/entrypoint/dto"
)

// ReportController handles report endpoints.
type ReportController struct {
	generateUseCase *report.GenerateReportUseCase
}

// NewReportController creates a new report controller instance.
func NewReportController(generateUseCase *report.GenerateReportUseCase) *ReportController {
	return &ReportController{
		generateUseCase: generateUseCase,
	}
}

// Generate handles POST /reports requests.
func (c *ReportController) Generate(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	var req dto.GenerateReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingReportFields),
			Details: err.Error(),
		})
		return
	}

	input := report.GenerateReportInput{
		UserID:     userID,
		ReportType: report.ReportType(req.ReportType),
	}

	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			c.respondInvalidDate(ctx)
			return
		}
		input.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDate(*req.EndDate)
		if err != nil {
			c.respondInvalidDate(ctx)
			return
		}
		input.EndDate = endDate
	}

	categoryID, err := parseOptionalUUID(req.CategoryID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
		})
		return
	}
	input.CategoryID = categoryID

	output, err := c.generateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReportResponse(output))
}

func (c *ReportController) respondInvalidDate(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: "Dates must use the YYYY-MM-DD format",
		Code:  string(domainerror.ErrCodeInvalidReportRange),
	})
}

// handleReportError handles report errors and returns appropriate HTTP responses.
func (c *ReportController) handleReportError(ctx *gin.Context, err error) {
	var reportErr *domainerror.ReportError
	if errors.As(err, &reportErr) {
		ctx.JSON(c.getStatusCodeForReportError(reportErr.Code), dto.ErrorResponse{
			Error: reportErr.Message,
			Code:  string(reportErr.Code),
		})
		return
	}

	respondInternalError(ctx, err)
}

// getStatusCodeForReportError maps report error codes to HTTP status codes.
func (c *ReportController) getStatusCodeForReportError(code domainerror.ReportErrorCode) int {
	switch code {
	case domainerror.ErrCodeReportCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeReportRateLimited:
		return http.StatusTooManyRequests
	case domainerror.ErrCodeInvalidReportType,
		domainerror.ErrCodeCustomDatesRequired,
		domainerror.ErrCodeInvalidReportRange,
		domainerror.ErrCodeMissingReportFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
