package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/husonlab/dendroscope3-sub003/pkg/buildinfo"
	"github.com/husonlab/dendroscope3-sub003/pkg/cache"
)

// appName is the application name used for display.
const appName = "netembed"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded before any subcommand runs.
	Config Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "netembed draws rooted phylogenetic networks with few crossings",
		Long: `netembed orders the children of every node of a rooted phylogenetic network
so that a drawing of it has few crossing edges. Two networks can be ordered
jointly as a tanglegram.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./"+defaultConfigFile+")")

	root.AddCommand(c.embedCommand())
	root.AddCommand(c.tanglegramCommand())
	root.AddCommand(c.strategiesCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and attaches a run-scoped logger to the
// command context.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	path, explicit := c.configPath, c.configPath != ""
	if !explicit {
		path = defaultConfigFile
	}
	cfg, err := loadConfig(path, explicit)
	if err != nil {
		return err
	}
	c.Config = cfg

	logger, id := runLogger(c.Logger)
	logger.Debug("starting", "command", cmd.Name(), "run_id", id, "version", buildinfo.Version)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, logger))
	return nil
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache opens the configured backend. Results are scoped by build
// version so that a new release never reads orders computed by an older
// one. An unreachable Redis server degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	logger := loggerFromContext(ctx)
	if noCache {
		return cache.NewNullCache()
	}

	var inner cache.Cache
	switch c.Config.Cache.Backend {
	case backendNone:
		return cache.NewNullCache()
	case backendRedis:
		rc, err := cache.NewRedisCache(ctx, c.Config.Cache.RedisURL, logger)
		if err != nil {
			printWarning("Redis cache unavailable, continuing without cache")
			logger.Debug("redis cache", "error", err)
			return cache.NewNullCache()
		}
		inner = rc
	default:
		dir, err := cache.DefaultDir()
		if err != nil {
			return cache.NewNullCache()
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			logger.Debug("file cache", "dir", dir, "error", err)
			return cache.NewNullCache()
		}
		inner = fc
	}
	return cache.NewScoped(inner, buildinfo.CacheScope())
}
