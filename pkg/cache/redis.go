package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"github.com/husonlab/dendroscope3-sub003/pkg/observability"
)

// redisNamespace is prepended to every key written to Redis.
const redisNamespace = "netembed:"

// RedisCache stores entries in a Redis server. Backend failures are
// retried with RetryWithBackoff before they are returned.
type RedisCache struct {
	client *redis.Client
	logger *log.Logger
}

// NewRedisCache connects to the server at url ("redis://host:port/db")
// and pings it. A nil logger means log.Default().
func NewRedisCache(ctx context.Context, url string, logger *log.Logger) (*RedisCache, error) {
	if logger == nil {
		logger = log.Default()
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.DialTimeout = 2 * time.Second

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: connect to %s: %v", ErrBackend, opts.Addr, err)
	}
	logger.Debug("redis cache connected", "addr", opts.Addr, "db", opts.DB)
	return &RedisCache{client: client, logger: logger}, nil
}

// backend marks a Redis failure as retryable.
func backend(op string, err error) error {
	return Retryable(fmt.Errorf("%w: %s: %v", ErrBackend, op, err))
}

// Get retrieves a value.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var data []byte
	hit := false
	err := RetryWithBackoff(ctx, func() error {
		b, err := c.client.Get(ctx, redisNamespace+key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			return nil
		case err != nil:
			c.logger.Debug("redis get failed", "key", key, "error", err)
			return backend("get", err)
		}
		data, hit = b, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	observeGet(ctx, key, hit)
	return data, hit, nil
}

// Set stores a value. A ttl of zero keeps the entry until it is deleted.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := RetryWithBackoff(ctx, func() error {
		if err := c.client.Set(ctx, redisNamespace+key, data, ttl).Err(); err != nil {
			return backend("set", err)
		}
		return nil
	})
	if err == nil {
		observability.Cache().OnCacheSet(ctx, key, len(data))
	}
	return err
}

// Delete removes a value.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return RetryWithBackoff(ctx, func() error {
		if err := c.client.Del(ctx, redisNamespace+key).Err(); err != nil {
			return backend("del", err)
		}
		return nil
	})
}

// Close releases the connection pool.
func (c *RedisCache) Close() error { return c.client.Close() }

var _ Cache = (*RedisCache)(nil)
