// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AnalyticsCache caches serialized analytics responses per user.
type AnalyticsCache interface {
	// Get loads the cached value for name into dest. It reports false on a miss.
	Get(ctx context.Context, userID uuid.UUID, name string, dest any) (bool, error)

	// Set stores value under name for ttl.
	Set(ctx context.Context, userID uuid.UUID, name string, value any, ttl time.Duration) error

	// Invalidate drops every cached entry of the user.
	Invalidate(ctx context.Context, userID uuid.UUID) error
}
