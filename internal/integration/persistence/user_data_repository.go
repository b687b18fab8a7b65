// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/financeflow/backend/internal/application/adapter"
	"github.com/financeflow/backend/internal/integration/persistence/model"
)

// userDataRepository implements the adapter.UserDataRepository interface.
type userDataRepository struct {
	db *gorm.DB
}

// NewUserDataRepository creates a new user data repository instance.
func NewUserDataRepository(db *gorm.DB) adapter.UserDataRepository {
	return &userDataRepository{
		db: db,
	}
}

// DeleteAllByUser permanently removes every row owned by the user, soft-deleted rows included.
// Rows referencing categories go first. Queued alert emails carry the user's
// address, so they are dropped in the same transaction.
func (r *userDataRepository) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tables := []struct {
			name  string
			model any
		}{
			{"transactions", &model.TransactionModel{}},
			{"budgets", &model.BudgetModel{}},
			{"goals", &model.GoalModel{}},
			{"categories", &model.CategoryModel{}},
		}
		for _, t := range tables {
			if err := tx.Unscoped().Where("user_id = ?", userID).Delete(t.model).Error; err != nil {
				return fmt.Errorf("failed to delete %s: %w", t.name, err)
			}
		}

		dropped, err := NewEmailQueueRepository(tx).DeleteByUser(ctx, userID)
		if err != nil {
			return err
		}
		if dropped > 0 {
			slog.InfoContext(ctx, "dropped queued alert emails", "userID", userID, "count", dropped)
		}
		return nil
	})
}
