// Package error defines domain-specific errors for the FinanceFlow application.
package error

import "errors"

// Aggregation errors. Calculators return them together with a neutral result,
// so callers can render an empty state instead of failing the request.
var (
	// ErrInvalidPeriod is returned for an unknown period key or an inverted range.
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrInvalidGoalTarget is returned when a goal target is zero or negative.
	ErrInvalidGoalTarget = errors.New("goal target must be greater than zero")

	// ErrInvalidBudgetRange is returned when a budget start date is not before its end date.
	ErrInvalidBudgetRange = errors.New("budget start date must be before end date")

	// ErrInvalidBudgetAmount is returned when a budget limit is zero or negative.
	ErrInvalidBudgetAmount = errors.New("budget amount must be greater than zero")

	// ErrInvalidGranularity is returned when a series granularity is not supported.
	ErrInvalidGranularity = errors.New("granularity must be: day, week, month or quarter")
)

// AnalyticsErrorCode defines error codes for aggregation errors.
// Format: ANL-XXYYYY where XX is category and YYYY is specific error.
type AnalyticsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeAnalyticsInvalidPeriod       AnalyticsErrorCode = "ANL-010001"
	ErrCodeAnalyticsInvalidGoalTarget   AnalyticsErrorCode = "ANL-010002"
	ErrCodeAnalyticsInvalidBudgetRange  AnalyticsErrorCode = "ANL-010003"
	ErrCodeAnalyticsInvalidBudgetAmount AnalyticsErrorCode = "ANL-010004"
	ErrCodeAnalyticsInvalidGranularity  AnalyticsErrorCode = "ANL-010005"
)

// AnalyticsError represents an aggregation error with code and message.
type AnalyticsError struct {
	Code    AnalyticsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AnalyticsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AnalyticsError) Unwrap() error {
	return e.Err
}

// NewAnalyticsError creates a new AnalyticsError with the given code and message.
func NewAnalyticsError(code AnalyticsErrorCode, message string, err error) *AnalyticsError {
	return &AnalyticsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// AsAnalyticsError maps a calculator sentinel to its coded error.
// It returns nil when err is nil and err itself when it is not an aggregation error.
func AsAnalyticsError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInvalidPeriod):
		return NewAnalyticsError(ErrCodeAnalyticsInvalidPeriod, "invalid period", err)
	case errors.Is(err, ErrInvalidGoalTarget):
		return NewAnalyticsError(ErrCodeAnalyticsInvalidGoalTarget, "invalid goal target", err)
	case errors.Is(err, ErrInvalidBudgetRange):
		return NewAnalyticsError(ErrCodeAnalyticsInvalidBudgetRange, "invalid budget range", err)
	case errors.Is(err, ErrInvalidBudgetAmount):
		return NewAnalyticsError(ErrCodeAnalyticsInvalidBudgetAmount, "invalid budget amount", err)
	case errors.Is(err, ErrInvalidGranularity):
		return NewAnalyticsError(ErrCodeAnalyticsInvalidGranularity, "invalid granularity", err)
	default:
		return err
	}
}
