// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// UserDataRepository defines persistence operations spanning all of a user's data.
type UserDataRepository interface {
	// DeleteAllByUser permanently removes the user's transactions, budgets,
	// goals, categories and email jobs in one transaction.
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) error
}
