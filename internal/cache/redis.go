package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/carelinkhq/carebundle/internal/config"
	"github.com/carelinkhq/carebundle/internal/domain/profile"
)

// RedisCache stores profiles as JSON in redis, shared across instances.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(cfg config.CacheConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// NewRedisCache wraps an existing client. A zero ttl stores entries without
// expiry, matching the explicit-invalidation lifecycle.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*profile.NeedsProfile, bool, error) {
	raw, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	var p profile.NeedsProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		// A corrupt entry is treated as a miss; the builder will overwrite it.
		return nil, false, nil
	}
	return &p, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, p *profile.NeedsProfile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling profile: %w", err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Invalidate walks the patient's keys with SCAN rather than KEYS so a large
// keyspace never blocks the server.
func (c *RedisCache) Invalidate(ctx context.Context, patientID uuid.UUID) error {
	var keys []string
	iter := c.client.Scan(ctx, 0, patientKeyPattern(patientID), 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
