// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/financeflow/backend/internal/domain/entity"
)

// EmailQueueRepository stores budget alert emails until the worker delivers them.
type EmailQueueRepository interface {
	// Enqueue stores a new pending job.
	Enqueue(ctx context.Context, job *entity.EmailJob) error

	// ClaimDue marks up to limit pending jobs scheduled at or before now as
	// processing and returns them, oldest schedule first. A job is handed to
	// one caller only.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error)

	// Save persists the outcome of a delivery attempt.
	Save(ctx context.Context, job *entity.EmailJob) error

	// DeleteByUser removes every job addressed to the user, delivered or not.
	DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// PurgeSent removes sent jobs processed before the cutoff.
	PurgeSent(ctx context.Context, before time.Time) (int64, error)
}
