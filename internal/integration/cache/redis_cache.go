// Package cache implements the analytics response cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/financeflow/backend/internal/application/adapter"
)

const keyPrefix = "analytics"

// redisCache implements adapter.AnalyticsCache on redis.
// Entries are namespaced by a per-user version; Invalidate bumps the version
// so stale entries are never read again and expire on their own TTL.
type redisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new redis backed analytics cache.
func NewRedisCache(client *redis.Client) adapter.AnalyticsCache {
	return &redisCache{client: client}
}

func versionKey(userID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:version", keyPrefix, userID)
}

func entryKey(userID uuid.UUID, version int64, name string) string {
	return fmt.Sprintf("%s:%s:v%d:%s", keyPrefix, userID, version, name)
}

func (c *redisCache) version(ctx context.Context, userID uuid.UUID) (int64, error) {
	v, err := c.client.Get(ctx, versionKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read cache version: %w", err)
	}
	return v, nil
}

// Get loads the cached value for name into dest.
func (c *redisCache) Get(ctx context.Context, userID uuid.UUID, name string, dest any) (bool, error) {
	v, err := c.version(ctx, userID)
	if err != nil {
		return false, err
	}

	data, err := c.client.Get(ctx, entryKey(userID, v, name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read cache entry: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	return true, nil
}

// Set stores value under name for ttl.
func (c *redisCache) Set(ctx context.Context, userID uuid.UUID, name string, value any, ttl time.Duration) error {
	v, err := c.version(ctx, userID)
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	if err := c.client.Set(ctx, entryKey(userID, v, name), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Invalidate drops every cached entry of the user.
func (c *redisCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Incr(ctx, versionKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to bump cache version: %w", err)
	}
	return nil
}
