// Package auth contains account use cases for users authenticated by the identity platform.
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/financeflow/backend/internal/application/adapter"
	domainerror "github.com/financeflow/backend/internal/domain/error"
)

// DeleteConfirmation is the exact text the user must send to delete their data.
const DeleteConfirmation = "DELETE"

// DeleteAccountInput represents the input for account deletion.
type DeleteAccountInput struct {
	UserID       uuid.UUID
	Confirmation string
}

// DeleteAccountUseCase handles account deletion logic.
type DeleteAccountUseCase struct {
	userDataRepo adapter.UserDataRepository
	cache        adapter.AnalyticsCache
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(userDataRepo adapter.UserDataRepository, cache adapter.AnalyticsCache) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{
		userDataRepo: userDataRepo,
		cache:        cache,
	}
}

// Execute permanently removes every row owned by the user.
// The identity record itself is kept by the platform.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) error {
	if input.Confirmation != DeleteConfirmation {
		return domainerror.NewAuthError(
			domainerror.ErrCodeInvalidConfirmation,
			"confirmation must be exactly 'DELETE'",
			domainerror.ErrInvalidConfirmation,
		)
	}

	if err := uc.userDataRepo.DeleteAllByUser(ctx, input.UserID); err != nil {
		return fmt.Errorf("failed to delete user data: %w", err)
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, input.UserID); err != nil {
			slog.WarnContext(ctx, "failed to invalidate analytics cache", "userID", input.UserID, "error", err)
		}
	}

	slog.InfoContext(ctx, "user data deleted", "userID", input.UserID)
	return nil
}
