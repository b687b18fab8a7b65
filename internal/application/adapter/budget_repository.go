// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/financeflow/backend/internal/domain/entity"
)

// BudgetRepository defines the interface for budget persistence operations.
type BudgetRepository interface {
	// Create creates a new budget in the database.
	Create(ctx context.Context, budget *entity.Budget) error

	// FindByID retrieves a budget by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error)

	// FindByUserID retrieves all budgets for a user with their categories,
	// newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.BudgetWithCategory, error)

	// FindCovering retrieves the user's budgets whose range includes date and
	// that are unscoped or scoped to categoryID.
	FindCovering(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID, date time.Time) ([]*entity.Budget, error)

	// Update updates an existing budget in the database.
	Update(ctx context.Context, budget *entity.Budget) error

	// Delete removes a budget from the database (soft delete).
	Delete(ctx context.Context, id uuid.UUID) error
}
