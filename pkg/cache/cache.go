// Package cache stores computed embeddings and tanglegram results between
// command-line runs.
//
// Three backends implement [Cache]: [FileCache] keeps one JSON envelope per
// key under a directory, [RedisCache] talks to a Redis server and
// [NullCache] stores nothing. [Scoped] prefixes every key so that results
// from different builds never mix.
//
// Keys are built with [Key], which hashes an arbitrary set of inputs:
//
//	key := cache.Key("tanglegram", cache.Hash(left), cache.Hash(right), opts)
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    ...
//	}
package cache

import (
	"context"
	"time"

	"github.com/husonlab/dendroscope3-sub003/pkg/observability"
)

// Cache is a byte-oriented key/value store with optional expiry.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A ttl of zero means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// observeGet reports the outcome of a lookup to the cache hooks.
func observeGet(ctx context.Context, key string, hit bool) {
	if hit {
		observability.Cache().OnCacheHit(ctx, key)
	} else {
		observability.Cache().OnCacheMiss(ctx, key)
	}
}
