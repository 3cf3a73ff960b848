package cli

import (
	"context"
	"time"

	"github.com/husonlab/dendroscope3-sub003/pkg/observability"
)

// logHooks reports library events at debug level on the logger carried by
// the event context.
type logHooks struct{}

// RegisterHooks installs debug-logging observability hooks. Call it once
// from main before executing the root command.
func RegisterHooks() {
	h := logHooks{}
	observability.SetEmbedHooks(h)
	observability.SetSearchHooks(h)
	observability.SetTanglegramHooks(h)
	observability.SetCacheHooks(h)
}

func (logHooks) OnEmbedStart(ctx context.Context, strategy string, nodeCount int) {
	loggerFromContext(ctx).Debug("embed start", "strategy", strategy, "nodes", nodeCount)
}

func (logHooks) OnEmbedComplete(ctx context.Context, strategy string, d time.Duration, err error) {
	l := loggerFromContext(ctx)
	if err != nil {
		l.Debug("embed failed", "strategy", strategy, "elapsed", d, "error", err)
		return
	}
	l.Debug("embed done", "strategy", strategy, "elapsed", d)
}

func (logHooks) OnBudgetExceeded(ctx context.Context, children, calls int, hardStop bool) {
	loggerFromContext(ctx).Debug("search budget exceeded", "children", children, "calls", calls, "hard_stop", hardStop)
}

func (logHooks) OnRound(ctx context.Context, round, score int) {
	loggerFromContext(ctx).Debug("tanglegram round", "round", round, "crossings", score)
}

func (logHooks) OnCacheHit(ctx context.Context, keyType string) {
	loggerFromContext(ctx).Debug("cache hit", "type", keyType)
}

func (logHooks) OnCacheMiss(ctx context.Context, keyType string) {
	loggerFromContext(ctx).Debug("cache miss", "type", keyType)
}

func (logHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	loggerFromContext(ctx).Debug("cache set", "type", keyType, "bytes", size)
}
