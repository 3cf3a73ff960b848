// Package cli implements the netembed command-line interface.
//
// The commands read phylogenetic networks from extended Newick or JSON
// files, order their guide trees with one of the embedding strategies, and
// write the result as a network file, DOT source or SVG drawing. The
// tanglegram command orders two networks jointly and caches the result.
//
// # Commands
//
// The main commands are:
//   - embed: Order the guide tree of one network
//   - tanglegram: Order two networks so that connectors cross rarely
//   - strategies: List the embedding strategies
//   - cache: Manage the result cache
//
// # Configuration
//
// Defaults come from netembed.toml in the working directory or the file
// named by --config. Flags override file values.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context and tagged with a run id.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// runLogger returns a child of l tagged with a fresh run id, so that lines
// of concurrent invocations sharing a log file can be told apart.
func runLogger(l *log.Logger) (*log.Logger, string) {
	id := uuid.NewString()
	return l.With("run", id[:8]), id
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Embedded primates.nwk (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
