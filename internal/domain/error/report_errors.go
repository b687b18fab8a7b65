// Package error defines domain-specific errors for the FinanceFlow application.
package error

import "errors"

// Report domain errors.
var (
	// ErrInvalidReportType is returned when the report type is not monthly, yearly or custom.
	ErrInvalidReportType = errors.New("invalid report type")

	// ErrCustomReportDatesRequired is returned when a custom report lacks start or end date.
	ErrCustomReportDatesRequired = errors.New("custom reports require start_date and end_date")
)

// ReportErrorCode defines error codes for report errors.
// Format: RPT-XXYYYY where XX is category and YYYY is specific error.
type ReportErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidReportType      ReportErrorCode = "RPT-010001"
	ErrCodeCustomDatesRequired    ReportErrorCode = "RPT-010002"
	ErrCodeInvalidReportRange     ReportErrorCode = "RPT-010003"
	ErrCodeReportCategoryNotFound ReportErrorCode = "RPT-010004"
	ErrCodeMissingReportFields    ReportErrorCode = "RPT-010005"

	// Rate limit errors (02XXXX)
	ErrCodeReportRateLimited ReportErrorCode = "RPT-020001"
)

// ReportError represents a report error with code and message.
type ReportError struct {
	Code    ReportErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReportError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReportError) Unwrap() error {
	return e.Err
}

// NewReportError creates a new ReportError with the given code and message.
func NewReportError(code ReportErrorCode, message string, err error) *ReportError {
	return &ReportError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
