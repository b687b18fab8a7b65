// Package error defines domain-specific errors for the FinanceFlow application.
package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget is not found in the system.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrBudgetNameRequired is returned when the budget name is blank.
	ErrBudgetNameRequired = errors.New("budget name is required")

	// ErrInvalidBudgetPeriod is returned when the budget period is not monthly or yearly.
	ErrInvalidBudgetPeriod = errors.New("invalid budget period")

	// ErrBudgetCategoryNotFound is returned when the category for a budget is not found.
	ErrBudgetCategoryNotFound = errors.New("category not found")

	// ErrUnauthorizedBudgetAccess is returned when user is not authorized to access a budget.
	ErrUnauthorizedBudgetAccess = errors.New("unauthorized access to budget")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BUD-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeBudgetNotFound           BudgetErrorCode = "BUD-010001"
	ErrCodeBudgetNameRequired       BudgetErrorCode = "BUD-010002"
	ErrCodeInvalidBudgetAmount      BudgetErrorCode = "BUD-010003"
	ErrCodeBudgetInvalidRange       BudgetErrorCode = "BUD-010004"
	ErrCodeInvalidBudgetPeriod      BudgetErrorCode = "BUD-010005"
	ErrCodeBudgetCategoryNotFound   BudgetErrorCode = "BUD-010006"
	ErrCodeUnauthorizedBudgetAccess BudgetErrorCode = "BUD-010007"
	ErrCodeMissingBudgetFields      BudgetErrorCode = "BUD-010008"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
