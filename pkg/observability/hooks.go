// Package observability provides hooks for metrics, tracing, and logging.
//
// Instrumentation stays optional: libraries emit events through hook
// interfaces with no-op defaults, and the application registers real
// implementations at startup.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, never by libraries, so the embedding
// packages do not depend on any metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetEmbedHooks(&myEmbedHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Embed().OnEmbedStart(ctx, strategy, nodeCount)
//	// ... order the guide tree ...
//	observability.Embed().OnEmbedComplete(ctx, strategy, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Embed Hooks
// =============================================================================

// EmbedHooks receives events from embedding strategies.
type EmbedHooks interface {
	OnEmbedStart(ctx context.Context, strategy string, nodeCount int)
	OnEmbedComplete(ctx context.Context, strategy string, duration time.Duration, err error)
}

// =============================================================================
// Search Hooks
// =============================================================================

// SearchHooks receives events from bounded searches.
type SearchHooks interface {
	// OnBudgetExceeded records that a branch-and-bound search at one node
	// ran past its soft call budget; hardStop reports whether it hit the
	// hard limit and returned its best solution early.
	OnBudgetExceeded(ctx context.Context, children, calls int, hardStop bool)
}

// =============================================================================
// Tanglegram Hooks
// =============================================================================

// TanglegramHooks receives events from the pairwise refiner.
type TanglegramHooks interface {
	// OnRound records the crossing score after one refinement round.
	OnRound(ctx context.Context, round, score int)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopEmbedHooks is a no-op implementation of EmbedHooks.
type NoopEmbedHooks struct{}

func (NoopEmbedHooks) OnEmbedStart(context.Context, string, int)                    {}
func (NoopEmbedHooks) OnEmbedComplete(context.Context, string, time.Duration, error) {}

// NoopSearchHooks is a no-op implementation of SearchHooks.
type NoopSearchHooks struct{}

func (NoopSearchHooks) OnBudgetExceeded(context.Context, int, int, bool) {}

// NoopTanglegramHooks is a no-op implementation of TanglegramHooks.
type NoopTanglegramHooks struct{}

func (NoopTanglegramHooks) OnRound(context.Context, int, int) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	embedHooks      EmbedHooks      = NoopEmbedHooks{}
	searchHooks     SearchHooks     = NoopSearchHooks{}
	tanglegramHooks TanglegramHooks = NoopTanglegramHooks{}
	cacheHooks      CacheHooks      = NoopCacheHooks{}
	hooksMu         sync.RWMutex
)

// SetEmbedHooks registers custom embed hooks.
// This should be called once at application startup.
func SetEmbedHooks(h EmbedHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		embedHooks = h
	}
}

// SetSearchHooks registers custom search hooks.
// This should be called once at application startup.
func SetSearchHooks(h SearchHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		searchHooks = h
	}
}

// SetTanglegramHooks registers custom tanglegram hooks.
// This should be called once at application startup.
func SetTanglegramHooks(h TanglegramHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		tanglegramHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Embed returns the registered embed hooks.
func Embed() EmbedHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return embedHooks
}

// Search returns the registered search hooks.
func Search() SearchHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return searchHooks
}

// Tanglegram returns the registered tanglegram hooks.
func Tanglegram() TanglegramHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return tanglegramHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	embedHooks = NoopEmbedHooks{}
	searchHooks = NoopSearchHooks{}
	tanglegramHooks = NoopTanglegramHooks{}
	cacheHooks = NoopCacheHooks{}
}
