// Package error defines domain-specific errors for the FinanceFlow application.
package error

import "errors"

// Goal domain errors.
var (
	// ErrGoalNotFound is returned when a goal is not found in the system.
	ErrGoalNotFound = errors.New("goal not found")

	// ErrGoalTitleRequired is returned when the goal title is blank.
	ErrGoalTitleRequired = errors.New("goal title is required")

	// ErrGoalDeadlineRequired is returned when the goal has no deadline.
	ErrGoalDeadlineRequired = errors.New("goal deadline is required")

	// ErrInvalidGoalCurrent is returned when the current amount is negative.
	ErrInvalidGoalCurrent = errors.New("current amount must not be negative")

	// ErrInvalidGoalType is returned when the goal type is not savings or expense.
	ErrInvalidGoalType = errors.New("invalid goal type")

	// ErrGoalCategoryNotFound is returned when the category for a goal is not found.
	ErrGoalCategoryNotFound = errors.New("category not found")

	// ErrUnauthorizedGoalAccess is returned when user is not authorized to access a goal.
	ErrUnauthorizedGoalAccess = errors.New("unauthorized access to goal")
)

// GoalErrorCode defines error codes for goal errors.
// Format: GOL-XXYYYY where XX is category and YYYY is specific error.
type GoalErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeGoalNotFound           GoalErrorCode = "GOL-010001"
	ErrCodeInvalidGoalTarget      GoalErrorCode = "GOL-010002"
	ErrCodeInvalidGoalCurrent     GoalErrorCode = "GOL-010003"
	ErrCodeGoalCategoryNotFound   GoalErrorCode = "GOL-010004"
	ErrCodeInvalidGoalType        GoalErrorCode = "GOL-010005"
	ErrCodeUnauthorizedGoalAccess GoalErrorCode = "GOL-010006"
	ErrCodeGoalTitleRequired      GoalErrorCode = "GOL-010007"
	ErrCodeMissingGoalFields      GoalErrorCode = "GOL-010008"
)

// GoalError represents a goal error with code and message.
type GoalError struct {
	Code    GoalErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *GoalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *GoalError) Unwrap() error {
	return e.Err
}

// NewGoalError creates a new GoalError with the given code and message.
func NewGoalError(code GoalErrorCode, message string, err error) *GoalError {
	return &GoalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
