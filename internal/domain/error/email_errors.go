// Package error defines domain-specific errors for the FinanceFlow application.
package error

import "errors"

// Budget alert email errors.
var (
	// ErrAlertNotQueued is returned when a budget alert could not be stored for delivery.
	ErrAlertNotQueued = errors.New("budget alert not queued")

	// ErrInvalidRecipient is returned when the user's address is not a valid email.
	ErrInvalidRecipient = errors.New("invalid recipient email")

	// ErrDeliveryRejected is returned when the provider refuses the message for good.
	ErrDeliveryRejected = errors.New("email provider rejected the message")

	// ErrDeliveryDeferred is returned when the provider failed in a way worth retrying.
	ErrDeliveryDeferred = errors.New("email provider deferred the message")

	// ErrUnknownTemplate is returned for a queued job whose template is not rendered by this service.
	ErrUnknownTemplate = errors.New("unknown email template")
)

// EmailErrorCode defines error codes for budget alert emails.
// Format: EMAIL-XXYYYY where XX is category and YYYY is specific error.
type EmailErrorCode string

const (
	// Queueing errors (01XXXX)
	ErrCodeAlertNotQueued   EmailErrorCode = "EMAIL-010001"
	ErrCodeInvalidRecipient EmailErrorCode = "EMAIL-010002"

	// Delivery errors (02XXXX)
	ErrCodeDeliveryRejected EmailErrorCode = "EMAIL-020001"
	ErrCodeDeliveryDeferred EmailErrorCode = "EMAIL-020002"
	ErrCodeUnknownTemplate  EmailErrorCode = "EMAIL-020003"
)

// EmailError represents an alert email error with code and message.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *EmailError) Unwrap() error {
	return e.Err
}

// Permanent reports whether sending the same job again cannot succeed.
func (e *EmailError) Permanent() bool {
	return e.Code == ErrCodeDeliveryRejected || e.Code == ErrCodeUnknownTemplate
}

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsPermanentEmailFailure reports whether err carries an EmailError that should not be retried.
func IsPermanentEmailFailure(err error) bool {
	var emailErr *EmailError
	return errors.As(err, &emailErr) && emailErr.Permanent()
}
