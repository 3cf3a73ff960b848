package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/husonlab/dendroscope3-sub003/pkg/cache"
	"github.com/husonlab/dendroscope3-sub003/pkg/embed"
	"github.com/husonlab/dendroscope3-sub003/pkg/errors"
	nio "github.com/husonlab/dendroscope3-sub003/pkg/io"
	"github.com/husonlab/dendroscope3-sub003/pkg/network"
	"github.com/husonlab/dendroscope3-sub003/pkg/render/dot"
)

// tanglegramOptions holds the effective settings of one tanglegram run.
type tanglegramOptions struct {
	ShortestPath bool
	Fast         bool
	MaxRounds    int
	NoCache      bool
	Output       string
	Outputs      [2]string

	// Correspondence is the path of a taxon map from the first network to
	// the second. Empty means taxa correspond by equal labels.
	Correspondence string
}

// keyParts lists the settings that change the result.
func (o tanglegramOptions) keyParts() map[string]any {
	return map[string]any{
		"shortest_path": o.ShortestPath,
		"fast":          o.Fast,
		"max_rounds":    o.MaxRounds,
	}
}

// tanglegramOutput is the cached and exported form of a result.
type tanglegramOutput struct {
	Crossings int         `json:"crossings"`
	Orders    [2][]string `json:"orders"`
}

// tanglegramCommand creates the tanglegram command.
func (c *CLI) tanglegramCommand() *cobra.Command {
	var opts tanglegramOptions

	cmd := &cobra.Command{
		Use:   "tanglegram <file1> <file2>",
		Short: "Order two networks so that connectors between equal taxa cross rarely",
		Long: `Order two networks jointly. Both get a common circular taxon order first,
then the leaf orders are refined against each other for a few rounds.
Results are cached by input content and settings.`,
		Example: `  netembed tanglegram hosts.nwk parasites.nwk
  netembed tanglegram --fast --out1 a.svg --out2 b.svg a.nwk b.nwk
  netembed tanglegram --correspondence links.toml hosts.nwk parasites.nwk`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("shortest-path") {
				opts.ShortestPath = c.Config.Tanglegram.ShortestPath
			}
			if !flags.Changed("fast") {
				opts.Fast = c.Config.Tanglegram.Fast
			}
			if !flags.Changed("rounds") {
				opts.MaxRounds = c.Config.Tanglegram.MaxRounds
			}
			store := c.newCache(cmd.Context(), opts.NoCache)
			defer store.Close()
			return c.runTanglegram(cmd.Context(), store, [2]string{args[0], args[1]}, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.ShortestPath, "shortest-path", false, "use shortest-path distances instead of hardwired clusters")
	cmd.Flags().BoolVar(&opts.Fast, "fast", false, "skip the refinement rounds")
	cmd.Flags().IntVar(&opts.MaxRounds, "rounds", embed.DefaultMaxRounds, "maximum refinement rounds")
	cmd.Flags().BoolVar(&opts.NoCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the result as JSON")
	cmd.Flags().StringVar(&opts.Outputs[0], "out1", "", "write the first ordered network (.json, .nwk, .dot, .svg)")
	cmd.Flags().StringVar(&opts.Outputs[1], "out2", "", "write the second ordered network (.json, .nwk, .dot, .svg)")
	cmd.Flags().StringVar(&opts.Correspondence, "correspondence", "", "taxon map from the first network to the second (.toml or .json)")

	return cmd
}

func (c *CLI) runTanglegram(ctx context.Context, store cache.Cache, paths [2]string, opts tanglegramOptions) error {
	logger := loggerFromContext(ctx)

	var (
		nets   [2]*network.Network
		hashes [2]string
	)
	for i, path := range paths {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "network file %s not found", path)
		}
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
		}
		hashes[i] = cache.Hash(data)
		if nets[i], err = nio.Import(path); err != nil {
			return err
		}
	}

	var (
		corr     map[string][]string
		corrHash string
	)
	if opts.Correspondence != "" {
		var err error
		if corr, corrHash, err = loadCorrespondence(opts.Correspondence); err != nil {
			return err
		}
		logger.Debug("correspondence loaded", "path", opts.Correspondence, "taxa", len(corr))
	}

	key := cache.Key("tanglegram", hashes[0], strings.ToLower(filepath.Ext(paths[0])),
		hashes[1], strings.ToLower(filepath.Ext(paths[1])), corrHash, opts.keyParts())

	out, cached := lookupTanglegram(ctx, store, key, logger)
	if cached {
		for side, n := range nets {
			if err := embed.RotateByTaxaBelow(n, out.Orders[side]); err != nil {
				return err
			}
		}
	} else {
		prog := newProgress(logger)
		var spin *spinner
		if logger.GetLevel() > log.DebugLevel {
			spin = newSpinner(ctx, os.Stderr, "Ordering tanglegram...")
			spin.start()
		}
		t := embed.NewTanglegram(&embed.TanglegramOptions{
			ShortestPath:   opts.ShortestPath,
			Fast:           opts.Fast,
			MaxRounds:      opts.MaxRounds,
			Correspondence: corr,
			Logger:         logger,
		})
		res, err := t.Apply(ctx, nets[:])
		if spin != nil {
			spin.stop()
		}
		if err != nil {
			return err
		}
		prog.done(fmt.Sprintf("Ordered %s and %s", filepath.Base(paths[0]), filepath.Base(paths[1])))

		out = tanglegramOutput{Crossings: res.Score, Orders: res.Orders}
		if data, err := json.Marshal(out); err == nil {
			if err := store.Set(ctx, key, data, c.Config.Cache.TTL); err != nil {
				logger.Warn("cache write failed", "error", err)
			}
		}
	}

	printSuccess("Tanglegram of %s and %s", filepath.Base(paths[0]), filepath.Base(paths[1]))
	printStats(len(out.Orders[0]), len(nets[0].Reticulations())+len(nets[1].Reticulations()), cached)
	printKeyValue("crossings", StyleNumber.Render(fmt.Sprint(out.Crossings)))
	printOrder("left", out.Orders[0])
	printOrder("right", out.Orders[1])

	if opts.Output != "" {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode result")
		}
		if err := writeFile(opts.Output, append(data, '\n')); err != nil {
			return err
		}
		printFile(opts.Output)
	}
	for side, path := range opts.Outputs {
		if path == "" {
			continue
		}
		if err := writeNetwork(nets[side], path, dot.Options{Title: filepath.Base(paths[side])}); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

// lookupTanglegram returns a cached result. Backend failures and
// undecodable entries count as misses.
func lookupTanglegram(ctx context.Context, store cache.Cache, key string, logger *log.Logger) (tanglegramOutput, bool) {
	var out tanglegramOutput
	data, ok, err := store.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", "error", err)
		return out, false
	}
	if !ok {
		return out, false
	}
	if err := json.Unmarshal(data, &out); err != nil {
		logger.Debug("discarding cache entry", "key", key, "error", err)
		return out, false
	}
	return out, true
}
