package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/husonlab/dendroscope3-sub003/pkg/embed"
	"github.com/husonlab/dendroscope3-sub003/pkg/errors"
	nio "github.com/husonlab/dendroscope3-sub003/pkg/io"
	"github.com/husonlab/dendroscope3-sub003/pkg/network"
	"github.com/husonlab/dendroscope3-sub003/pkg/render/dot"
)

// Output formats for networks written to stdout.
const (
	formatJSON   = "json"
	formatNewick = "newick"
)

// embedOptions holds the effective settings of one embed run.
type embedOptions struct {
	Strategy  string
	MaxCalls  int
	LSAPasses int
	Format    string
	Output    string
	ShowIDs   bool
}

// embedCommand creates the embed command.
func (c *CLI) embedCommand() *cobra.Command {
	var opts embedOptions

	cmd := &cobra.Command{
		Use:   "embed <file>",
		Short: "Order the guide tree of a phylogenetic network",
		Long: `Order the children of every node of a network so that a drawing has few
crossing edges. The input is extended Newick, or JSON when the file ends
in .json. The output format follows the extension of --output:
.json, .nwk/.newick/.tre, .dot or .svg.`,
		Example: `  netembed embed primates.nwk
  netembed embed --strategy AlgorithmLSA -o primates.svg primates.nwk`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("strategy") {
				opts.Strategy = c.Config.Embed.Strategy
			}
			if !flags.Changed("max-calls") {
				opts.MaxCalls = c.Config.Embed.BranchBoundCalls
			}
			if !flags.Changed("lsa-passes") {
				opts.LSAPasses = c.Config.Embed.LSAPasses
			}
			return runEmbed(cmd.Context(), args[0], opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.Strategy, "strategy", "s", embed.Algorithm2009, "embedding strategy (see 'netembed strategies')")
	cmd.Flags().IntVar(&opts.MaxCalls, "max-calls", embed.DefaultMaxCalls, "branch-and-bound budget per node")
	cmd.Flags().IntVar(&opts.LSAPasses, "lsa-passes", embed.DefaultLSAPasses, "barycentric passes of AlgorithmLSA")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", formatNewick, "stdout format: json or newick")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.ShowIDs, "ids", false, "show node ids in DOT and SVG output")

	_ = cmd.RegisterFlagCompletionFunc("strategy", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return embed.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// runEmbed imports path, applies the strategy and writes the result to
// opts.Output or w.
func runEmbed(ctx context.Context, path string, opts embedOptions, w io.Writer) error {
	logger := loggerFromContext(ctx)

	if !slices.Contains(embed.Names(), opts.Strategy) {
		return errors.New(errors.ErrCodeInvalidStrategy, "unknown strategy %q (available: %s)",
			opts.Strategy, strings.Join(embed.Names(), ", "))
	}
	if opts.Output == "" && opts.Format != formatJSON && opts.Format != formatNewick {
		return errors.New(errors.ErrCodeUnsupported, "unknown format %q (available: json, newick)", opts.Format)
	}

	n, err := nio.Import(path)
	if err != nil {
		return err
	}
	logger.Debug("imported network", "file", path, "nodes", n.NodeCount(), "edges", n.EdgeCount())

	prog := newProgress(logger)
	e := embed.Lookup(opts.Strategy, &embed.Options{
		Logger:    logger,
		MaxCalls:  opts.MaxCalls,
		LSAPasses: opts.LSAPasses,
	})
	if err := e.Apply(ctx, n); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Embedded %s with %s", filepath.Base(path), e.Name()))

	if opts.Output == "" {
		if opts.Format == formatJSON {
			return nio.WriteJSON(n, w)
		}
		return nio.WriteNewick(n, w)
	}

	if err := writeNetwork(n, opts.Output, dot.Options{ShowIDs: opts.ShowIDs, Title: filepath.Base(path)}); err != nil {
		return err
	}
	printSuccess("Embedded %s", filepath.Base(path))
	printStats(len(n.Taxa()), len(n.Reticulations()), false)
	printFile(opts.Output)
	return nil
}

// writeNetwork writes n to path in the format implied by its extension.
func writeNetwork(n *network.Network, path string, opts dot.Options) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return nio.ExportJSON(n, path)
	case ".nwk", ".newick", ".tre":
		return nio.ExportNewick(n, path)
	case ".dot", ".gv":
		return writeFile(path, []byte(dot.ToDOT(n, opts)))
	case ".svg":
		svg, err := dot.RenderSVG(dot.ToDOT(n, opts))
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "render %s", path)
		}
		return writeFile(path, svg)
	default:
		return errors.New(errors.ErrCodeUnsupported, "unknown output extension %q (available: .json, .nwk, .dot, .svg)", filepath.Ext(path))
	}
}

func writeFile(path string, data []byte) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
