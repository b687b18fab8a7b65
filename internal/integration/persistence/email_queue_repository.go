// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/financeflow/backend/internal/application/adapter"
	"github.com/financeflow/backend/internal/domain/entity"
	"github.com/financeflow/backend/internal/integration/persistence/model"
)

// emailQueueRepository implements the adapter.EmailQueueRepository interface.
type emailQueueRepository struct {
	db *gorm.DB
}

// NewEmailQueueRepository creates a new email queue repository instance.
// Passing a transaction scopes every call to it.
func NewEmailQueueRepository(db *gorm.DB) adapter.EmailQueueRepository {
	return &emailQueueRepository{
		db: db,
	}
}

func (r *emailQueueRepository) Enqueue(ctx context.Context, job *entity.EmailJob) error {
	if err := r.db.WithContext(ctx).Create(model.EmailQueueModelFromEntity(job)).Error; err != nil {
		return fmt.Errorf("failed to enqueue email job: %w", err)
	}
	return nil
}

// ClaimDue locks the due rows where the dialect supports it (SKIP LOCKED on
// PostgreSQL), so concurrent workers never share a job.
func (r *emailQueueRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*entity.EmailJob, error) {
	var models []model.EmailQueueModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("status = ?", entity.EmailStatusPending).
			Where("scheduled_at <= ?", now).
			Order("scheduled_at ASC").
			Limit(limit).
			Find(&models).Error
		if err != nil || len(models) == 0 {
			return err
		}

		ids := make([]uuid.UUID, len(models))
		for i := range models {
			ids[i] = models[i].ID
		}
		return tx.Model(&model.EmailQueueModel{}).
			Where("id IN ?", ids).
			Update("status", entity.EmailStatusProcessing).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to claim email jobs: %w", err)
	}

	jobs := make([]*entity.EmailJob, len(models))
	for i := range models {
		jobs[i] = models[i].ToEntity()
		jobs[i].MarkProcessing()
	}
	return jobs, nil
}

func (r *emailQueueRepository) Save(ctx context.Context, job *entity.EmailJob) error {
	if err := r.db.WithContext(ctx).Save(model.EmailQueueModelFromEntity(job)).Error; err != nil {
		return fmt.Errorf("failed to save email job %s: %w", job.ID, err)
	}
	return nil
}

func (r *emailQueueRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.EmailQueueModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete email jobs: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *emailQueueRepository) PurgeSent(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("status = ?", entity.EmailStatusSent).
		Where("processed_at < ?", before).
		Delete(&model.EmailQueueModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to purge sent email jobs: %w", result.Error)
	}
	return result.RowsAffected, nil
}
