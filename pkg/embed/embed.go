package embed

import (
	"context"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/husonlab/dendroscope3-sub003/pkg/network"
	"github.com/husonlab/dendroscope3-sub003/pkg/observability"
)

// Strategy names accepted by Lookup.
const (
	Unoptimized       = "Unoptimized"
	Algorithm2008     = "Algorithm2008"
	Algorithm2009     = "Algorithm2009"
	Algorithm2010     = "Algorithm2010"
	Algorithm2010Dist = "Algorithm2010Dist"
	AlgorithmLSA      = "AlgorithmLSA"
)

const (
	// DefaultMaxCalls is the per-node soft budget of the branch-and-bound
	// search.
	DefaultMaxCalls = 100000

	// DefaultLSAPasses is the number of barycentric passes of AlgorithmLSA.
	DefaultLSAPasses = 2
)

// Embedder orders the guide tree of a network in place.
//
// Apply only reorders guide children (and, for the taxa-below strategies,
// actual out-edges). Networks without reticulations end with an empty guide
// map. When Apply returns an error the guide map is undefined; callers
// rebuild it with network.BuildGuideTree before retrying.
type Embedder interface {
	Name() string
	Apply(ctx context.Context, n *network.Network) error
}

// Options tunes the strategies. The zero value selects the defaults.
type Options struct {
	// Logger receives debug output. Nil means log.Default().
	Logger *log.Logger

	// MaxCalls is the branch-and-bound soft budget per guide node.
	MaxCalls int

	// LSAPasses is the number of barycentric passes of AlgorithmLSA.
	LSAPasses int
}

func (o *Options) withDefaults() Options {
	var out Options
	if o != nil {
		out = *o
	}
	if out.Logger == nil {
		out.Logger = log.Default()
	}
	if out.MaxCalls <= 0 {
		out.MaxCalls = DefaultMaxCalls
	}
	if out.LSAPasses <= 0 {
		out.LSAPasses = DefaultLSAPasses
	}
	return out
}

var registry = map[string]func(Options) Embedder{
	Unoptimized:       func(o Options) Embedder { return unoptimized{} },
	Algorithm2008:     func(o Options) Embedder { return &dependencyGreedy{logger: o.Logger} },
	Algorithm2009:     func(o Options) Embedder { return &branchAndBound{logger: o.Logger, maxCalls: o.MaxCalls} },
	Algorithm2010:     func(o Options) Embedder { return newTaxaBelow(Algorithm2010, false, o.Logger) },
	Algorithm2010Dist: func(o Options) Embedder { return newTaxaBelow(Algorithm2010Dist, true, o.Logger) },
	AlgorithmLSA:      func(o Options) Embedder { return &lsaHeuristic{logger: o.Logger, passes: o.LSAPasses} },
}

// Lookup returns the strategy registered under name. Unknown names fall
// back to Unoptimized.
func Lookup(name string, opts *Options) Embedder {
	o := opts.withDefaults()
	if f, ok := registry[name]; ok {
		return f(o)
	}
	o.Logger.Debug("unknown embedding strategy, using fallback", "name", name, "fallback", Unoptimized)
	return registry[Unoptimized](o)
}

// Names returns the registered strategy names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// observe brackets fn with the embed hooks.
func observe(ctx context.Context, name string, n *network.Network, fn func() error) error {
	hooks := observability.Embed()
	hooks.OnEmbedStart(ctx, name, n.NodeCount())
	start := time.Now()
	err := fn()
	hooks.OnEmbedComplete(ctx, name, time.Since(start), err)
	return err
}

// prepare builds the LSA guide tree and reports whether there is anything
// left to order. Rootless networks and trees end with an empty guide map.
func prepare(n *network.Network) (*network.LSA, bool, error) {
	if n.Root() == network.NoNode || !n.HasReticulations() {
		n.ClearGuide()
		return nil, false, nil
	}
	lsa, err := network.ComputeLSA(n)
	if err != nil {
		return nil, false, err
	}
	lsa.Apply(n)
	return lsa, true, nil
}

type unoptimized struct{}

func (unoptimized) Name() string { return Unoptimized }

// Apply builds the LSA guide tree in actual out-edge order.
func (u unoptimized) Apply(ctx context.Context, n *network.Network) error {
	return observe(ctx, Unoptimized, n, func() error {
		_, _, err := prepare(n)
		return err
	})
}
