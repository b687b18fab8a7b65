// Package dto defines data transfer objects for API requests and responses.
package dto

// DashboardPeriodQuery holds the window selection shared by dashboard endpoints.
// Explicit dates take precedence over the period key.
type DashboardPeriodQuery struct {
	Period    string `form:"period"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// CategoryDistributionQuery holds the query of the category distribution endpoint.
type CategoryDistributionQuery struct {
	DashboardPeriodQuery
	Type string `form:"type"`
}

// TrendsQuery holds the query of the trends endpoint.
type TrendsQuery struct {
	DashboardPeriodQuery
	Granularity string `form:"granularity"`
}

// MonthlyComparisonQuery holds the query of the monthly comparison endpoint.
type MonthlyComparisonQuery struct {
	Months int `form:"months"`
}

// RecentTransactionsQuery holds the query of the recent transactions endpoint.
type RecentTransactionsQuery struct {
	Limit int `form:"limit"`
}
