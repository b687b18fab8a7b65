// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/financeflow/backend/internal/application/usecase/dashboard"
	"github.com/financeflow/backend/internal/domain/analytics"
	"github.com/financeflow/backend/internal/domain/entity"
	domainerror "github.com/financeflow/backend/internal/domain/error"
	"github.com/financeflow/backend/internal/integration/entrypoint/dto"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	getSummaryUseCase              *dashboard.GetSummaryUseCase
	getOverviewUseCase             *dashboard.GetOverviewUseCase
	getCategoryDistributionUseCase *dashboard.GetCategoryDistributionUseCase
	getMonthlyComparisonUseCase    *dashboard.GetMonthlyComparisonUseCase
	getTrendsUseCase               *dashboard.GetTrendsUseCase
	getRecentTransactionsUseCase   *dashboard.GetRecentTransactionsUseCase
	getDataRangeUseCase            *dashboard.GetDataRangeUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	getSummaryUseCase *dashboard.GetSummaryUseCase,
	getOverviewUseCase *dashboard.GetOverviewUseCase,
	getCategoryDistributionUseCase *dashboard.GetCategoryDistributionUseCase,
	getMonthlyComparisonUseCase *dashboard.GetMonthlyComparisonUseCase,
	getTrendsUseCase *dashboard.GetTrendsUseCase,
	getRecentTransactionsUseCase *dashboard.GetRecentTransactionsUseCase,
	getDataRangeUseCase *dashboard.GetDataRangeUseCase,
) *DashboardController {
	return &DashboardController{
		getSummaryUseCase:              getSummaryUseCase,
		getOverviewUseCase:             getOverviewUseCase,
		getCategoryDistributionUseCase: getCategoryDistributionUseCase,
		getMonthlyComparisonUseCase:    getMonthlyComparisonUseCase,
		getTrendsUseCase:               getTrendsUseCase,
		getRecentTransactionsUseCase:   getRecentTransactionsUseCase,
		getDataRangeUseCase:            getDataRangeUseCase,
	}
}

// GetSummary handles GET /dashboard/summary requests.
func (c *DashboardController) GetSummary(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	output, err := c.getSummaryUseCase.Execute(ctx.Request.Context(), dashboard.GetSummaryInput{UserID: userID})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DataResponse[*dashboard.GetSummaryOutput]{Data: output})
}

// GetOverview handles GET /dashboard/overview requests.
func (c *DashboardController) GetOverview(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	var query dto.DashboardPeriodQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		c.respondInvalidQuery(ctx, err)
		return
	}
	period, ok := c.periodInput(ctx, query)
	if !ok {
		return
	}

	output, err := c.getOverviewUseCase.Execute(ctx.Request.Context(), dashboard.GetOverviewInput{
		UserID: userID,
		Period: period,
	})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DataResponse[*dashboard.GetOverviewOutput]{Data: output})
}

// GetCategoryDistribution handles GET /dashboard/category-distribution requests.
func (c *DashboardController) GetCategoryDistribution(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	var query dto.CategoryDistributionQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		c.respondInvalidQuery(ctx, err)
		return
	}
	period, ok := c.periodInput(ctx, query.DashboardPeriodQuery)
	if !ok {
		return
	}

	output, err := c.getCategoryDistributionUseCase.Execute(ctx.Request.Context(), dashboard.GetCategoryDistributionInput{
		UserID: userID,
		Period: period,
		Type:   entity.TransactionType(query.Type),
	})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DataResponse[*dashboard.GetCategoryDistributionOutput]{Data: output})
}

// GetMonthlyComparison handles GET /dashboard/monthly-comparison requests.
func (c *DashboardController) GetMonthlyComparison(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	var query dto.MonthlyComparisonQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "months must be an integer",
			Code:  string(domainerror.ErrCodeInvalidMonthCount),
		})
		return
	}

	output, err := c.getMonthlyComparisonUseCase.Execute(ctx.Request.Context(), dashboard.GetMonthlyComparisonInput{
		UserID: userID,
		Months: query.Months,
	})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DataResponse[*dashboard.GetMonthlyComparisonOutput]{Data: output})
}

// GetTrends handles GET /dashboard/trends requests.
func (c *DashboardController) GetTrends(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	var query dto.TrendsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		c.respondInvalidQuery(ctx, err)
		return
	}
	period, ok := c.periodInput(ctx, query.DashboardPeriodQuery)
	if !ok {
		return
	}

	output, err := c.getTrendsUseCase.Execute(ctx.Request.Context(), dashboard.GetTrendsInput{
		UserID:      userID,
		Period:      period,
		Granularity: analytics.Granularity(query.Granularity),
	})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DataResponse[*dashboard.GetTrendsOutput]{Data: output})
}

// GetRecentTransactions handles GET /dashboard/recent-transactions requests.
func (c *DashboardController) GetRecentTransactions(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	// A malformed limit falls back to the default
	var query dto.RecentTransactionsQuery
	_ = ctx.ShouldBindQuery(&query)

	output, err := c.getRecentTransactionsUseCase.Execute(ctx.Request.Context(), dashboard.GetRecentTransactionsInput{
		UserID: userID,
		Limit:  query.Limit,
	})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DataResponse[*dashboard.GetRecentTransactionsOutput]{Data: output})
}

// GetDataRange handles GET /dashboard/data-range requests.
func (c *DashboardController) GetDataRange(ctx *gin.Context) {
	userID, ok := authenticatedUser(ctx)
	if !ok {
		return
	}

	output, err := c.getDataRangeUseCase.Execute(ctx.Request.Context(), dashboard.GetDataRangeInput{UserID: userID})
	if err != nil {
		c.handleDashboardError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.DataResponse[*dashboard.GetDataRangeOutput]{Data: output})
}

// periodInput parses the optional explicit dates of a dashboard query.
// Pairing and ordering of the dates is validated by the use cases.
func (c *DashboardController) periodInput(ctx *gin.Context, query dto.DashboardPeriodQuery) (dashboard.PeriodInput, bool) {
	startDate, err := parseDate(query.StartDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid start_date format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidDateFormat),
		})
		return dashboard.PeriodInput{}, false
	}

	endDate, err := parseDate(query.EndDate)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid end_date format, expected YYYY-MM-DD",
			Code:  string(domainerror.ErrCodeInvalidDateFormat),
		})
		return dashboard.PeriodInput{}, false
	}

	return dashboard.PeriodInput{
		Key:       query.Period,
		StartDate: startDate,
		EndDate:   endDate,
	}, true
}

func (c *DashboardController) respondInvalidQuery(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid query parameters",
		Details: err.Error(),
	})
}

// handleDashboardError handles dashboard errors and returns appropriate HTTP responses.
func (c *DashboardController) handleDashboardError(ctx *gin.Context, err error) {
	var dashErr *domainerror.DashboardError
	if errors.As(err, &dashErr) {
		ctx.JSON(c.getStatusCodeForDashboardError(dashErr.Code), dto.ErrorResponse{
			Error: dashErr.Message,
			Code:  string(dashErr.Code),
		})
		return
	}

	var analyticsErr *domainerror.AnalyticsError
	if errors.As(err, &analyticsErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: analyticsErr.Message,
			Code:  string(analyticsErr.Code),
		})
		return
	}

	respondInternalError(ctx, err)
}

// getStatusCodeForDashboardError maps dashboard error codes to HTTP status codes.
func (c *DashboardController) getStatusCodeForDashboardError(code domainerror.DashboardErrorCode) int {
	switch code {
	case domainerror.ErrCodeMissingStartDate,
		domainerror.ErrCodeMissingEndDate,
		domainerror.ErrCodeInvalidDateRange,
		domainerror.ErrCodeInvalidGranularity,
		domainerror.ErrCodeInvalidPeriodKey,
		domainerror.ErrCodeInvalidDateFormat,
		domainerror.ErrCodeInvalidMonthCount:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
