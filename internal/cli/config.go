package cli

import (
	"os"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/husonlab/dendroscope3-sub003/pkg/embed"
	"github.com/husonlab/dendroscope3-sub003/pkg/errors"
)

// defaultConfigFile is read from the working directory when --config is
// not given.
const defaultConfigFile = "netembed.toml"

// Cache backends.
const (
	backendFile  = "file"
	backendRedis = "redis"
	backendNone  = "none"
)

// Config holds the defaults of all commands.
type Config struct {
	Embed      EmbedConfig      `toml:"embed"`
	Tanglegram TanglegramConfig `toml:"tanglegram"`
	Cache      CacheConfig      `toml:"cache"`
}

// EmbedConfig configures the embed command.
type EmbedConfig struct {
	Strategy         string `toml:"strategy"`
	BranchBoundCalls int    `toml:"branch_bound_calls"`
	LSAPasses        int    `toml:"lsa_passes"`
}

// TanglegramConfig configures the tanglegram command.
type TanglegramConfig struct {
	ShortestPath bool `toml:"shortest_path"`
	Fast         bool `toml:"fast"`
	MaxRounds    int  `toml:"max_rounds"`
}

// CacheConfig selects the result cache.
type CacheConfig struct {
	Backend  string        `toml:"backend"`
	RedisURL string        `toml:"redis_url"`
	TTL      time.Duration `toml:"ttl"`
}

// defaultConfig returns the built-in defaults.
func defaultConfig() Config {
	return Config{
		Embed: EmbedConfig{
			Strategy:         embed.Algorithm2009,
			BranchBoundCalls: embed.DefaultMaxCalls,
			LSAPasses:        embed.DefaultLSAPasses,
		},
		Tanglegram: TanglegramConfig{
			MaxRounds: embed.DefaultMaxRounds,
		},
		Cache: CacheConfig{
			Backend:  backendFile,
			RedisURL: "redis://localhost:6379/0",
			TTL:      24 * time.Hour,
		},
	}
}

// loadConfig reads path over the defaults. A missing file is an error
// only when explicit is set.
func loadConfig(path string, explicit bool) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) && !explicit {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidInput, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if !slices.Contains(embed.Names(), c.Embed.Strategy) {
		return errors.New(errors.ErrCodeInvalidStrategy, "unknown strategy %q (available: %s)",
			c.Embed.Strategy, strings.Join(embed.Names(), ", "))
	}
	switch c.Cache.Backend {
	case backendFile, backendRedis, backendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (available: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache ttl must not be negative")
	}
	return nil
}
