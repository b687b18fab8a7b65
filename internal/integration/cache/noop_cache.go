package cache

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/financeflow/backend/internal/application/adapter"
)

type noopCache struct{}

// NewNoopCache returns a cache that never stores anything. Used when redis is disabled.
func NewNoopCache() adapter.AnalyticsCache {
	return noopCache{}
}

func (noopCache) Get(context.Context, uuid.UUID, string, any) (bool, error) {
	return false, nil
}

func (noopCache) Set(context.Context, uuid.UUID, string, any, time.Duration) error {
	return nil
}

func (noopCache) Invalidate(context.Context, uuid.UUID) error {
	return nil
}
