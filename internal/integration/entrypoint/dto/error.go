// Package dto defines data transfer objects for API requests and responses.
package dto

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// DataResponse wraps a payload under "data".
type DataResponse[T any] struct {
	Data T `json:"data"`
}

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"
