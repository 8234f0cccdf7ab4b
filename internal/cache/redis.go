package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/albapepper/courtside/internal/metrics"
)

const keyPrefix = "courtside:"

// RedisCache stores entries in Redis so replicas share provider responses.
// Each key holds a hash with the payload and its ETag.
type RedisCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedis connects to the Redis instance at redisURL and verifies it.
func NewRedis(ctx context.Context, redisURL string, logger *slog.Logger) (*RedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisCache{client: client, logger: logger}, nil
}

// Get retrieves a cached value. Redis errors are logged and reported as misses.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, string, bool) {
	vals, err := c.client.HMGet(ctx, keyPrefix+key, "data", "etag").Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("redis get failed", "key", key, "error", err)
		}
		metrics.ObserveCache(false)
		return nil, "", false
	}
	data, ok1 := vals[0].(string)
	etag, ok2 := vals[1].(string)
	if !ok1 || !ok2 {
		metrics.ObserveCache(false)
		return nil, "", false
	}
	metrics.ObserveCache(true)
	return []byte(data), etag, true
}

// Set stores a value with a TTL and returns its ETag.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) string {
	etag := ComputeETag(data)
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, keyPrefix+key, "data", data, "etag", etag)
	pipe.Expire(ctx, keyPrefix+key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("redis set failed", "key", key, "error", err)
	}
	return etag
}

// Delete drops a key.
func (c *RedisCache) Delete(ctx context.Context, key string) {
	if err := c.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		c.logger.Warn("redis delete failed", "key", key, "error", err)
	}
}

// Stats returns connection-pool statistics from the Redis client. The
// pool_ prefix keeps them apart from cache lookup hits and misses.
func (c *RedisCache) Stats() map[string]interface{} {
	ps := c.client.PoolStats()
	return map[string]interface{}{
		"backend":       "redis",
		"enabled":       true,
		"pool_hits":     ps.Hits,
		"pool_misses":   ps.Misses,
		"pool_timeouts": ps.Timeouts,
		"total_conns":   ps.TotalConns,
		"idle_conns":    ps.IdleConns,
	}
}

// Ping verifies Redis connectivity.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close releases the Redis connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
