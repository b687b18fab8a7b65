// Package dto defines data transfer objects for API requests and responses.
package dto

import "github.com/google/uuid"

// DeleteAccountRequest represents the request body for account deletion.
type DeleteAccountRequest struct {
	Confirmation string `json:"confirmation" binding:"required"`
}

// MeResponse describes the authenticated user as seen by this service.
type MeResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
