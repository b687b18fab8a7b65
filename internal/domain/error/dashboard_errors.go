// Package error defines domain-specific errors for the FinanceFlow application.
package error

import "errors"

// Dashboard domain errors.
var (
	// ErrMissingStartDate is returned when end_date is given without start_date.
	ErrMissingStartDate = errors.New("start_date is required")

	// ErrMissingEndDate is returned when start_date is given without end_date.
	ErrMissingEndDate = errors.New("end_date is required")

	// ErrInvalidDateRange is returned when end_date is before start_date.
	ErrInvalidDateRange = errors.New("end_date must not be before start_date")

	// ErrInvalidDateFormat is returned when date format is invalid.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidMonthCount is returned when the monthly comparison window is out of range.
	ErrInvalidMonthCount = errors.New("months must be between 1 and 24")
)

// DashboardErrorCode defines error codes for dashboard errors.
// Format: DSH-XXYYYY where XX is category and YYYY is specific error.
type DashboardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingStartDate   DashboardErrorCode = "DSH-010001"
	ErrCodeMissingEndDate     DashboardErrorCode = "DSH-010002"
	ErrCodeInvalidDateRange   DashboardErrorCode = "DSH-010003"
	ErrCodeInvalidGranularity DashboardErrorCode = "DSH-010004"
	ErrCodeInvalidPeriodKey   DashboardErrorCode = "DSH-010005"
	ErrCodeInvalidDateFormat  DashboardErrorCode = "DSH-010006"
	ErrCodeInvalidMonthCount  DashboardErrorCode = "DSH-010007"

	// Internal errors (99XXXX)
	ErrCodeDashboardInternalError DashboardErrorCode = "DSH-990001"
)

// DashboardError represents a dashboard error with code and message.
type DashboardError struct {
	Code    DashboardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *DashboardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *DashboardError) Unwrap() error {
	return e.Err
}

// NewDashboardError creates a new DashboardError with the given code and message.
func NewDashboardError(code DashboardErrorCode, message string, err error) *DashboardError {
	return &DashboardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
