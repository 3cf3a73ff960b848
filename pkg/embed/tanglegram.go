package embed

import (
	"context"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/husonlab/dendroscope3-sub003/pkg/distance"
	"github.com/husonlab/dendroscope3-sub003/pkg/errors"
	"github.com/husonlab/dendroscope3-sub003/pkg/network"
	"github.com/husonlab/dendroscope3-sub003/pkg/observability"
	"github.com/husonlab/dendroscope3-sub003/pkg/taxa"
)

// DefaultMaxRounds bounds the alternating refinement rounds.
const DefaultMaxRounds = 5

// TanglegramOptions configures the pairwise refiner.
type TanglegramOptions struct {
	// ShortestPath builds the joint order from shortest-path distances
	// instead of hardwired clusters.
	ShortestPath bool

	// Fast skips the refinement and keeps the joint circular order.
	Fast bool

	// MaxRounds bounds the refinement rounds. Zero means DefaultMaxRounds.
	MaxRounds int

	// Correspondence links taxa of the first network to taxa of the second
	// when they are different entities, such as hosts and parasites.
	// Nil means taxa correspond by label.
	Correspondence map[string][]string

	// Logger receives debug output. Nil means log.Default().
	Logger *log.Logger
}

// TanglegramResult is the outcome of a pairwise run.
type TanglegramResult struct {
	// Score is the number of crossing connectors between the two final
	// leaf orders, or -1 when no joint score was computed.
	Score int

	// Orders holds the final leaf order of each network.
	Orders [2][]string
}

// Tanglegram orders two networks jointly so that lines connecting equal
// taxa cross as little as possible.
type Tanglegram struct {
	opts    TanglegramOptions
	inverse map[string][]string
}

// NewTanglegram creates a refiner. A nil opts selects the defaults.
func NewTanglegram(opts *TanglegramOptions) *Tanglegram {
	t := &Tanglegram{}
	if opts != nil {
		t.opts = *opts
	}
	if t.opts.MaxRounds <= 0 {
		t.opts.MaxRounds = DefaultMaxRounds
	}
	if t.opts.Logger == nil {
		t.opts.Logger = log.Default()
	}
	if t.opts.Correspondence != nil {
		t.inverse = make(map[string][]string)
		for x, ys := range t.opts.Correspondence {
			for _, y := range ys {
				t.inverse[y] = append(t.inverse[y], x)
			}
		}
	}
	return t
}

func (t *Tanglegram) mode() distance.Mode {
	if t.opts.ShortestPath {
		return distance.ModeShortestPath
	}
	return distance.ModeHardwired
}

// crossings scores order a of network side against order b of the other.
func (t *Tanglegram) crossings(side int, a, b []string) int {
	switch {
	case t.opts.Correspondence == nil:
		return taxa.CrossingCount(a, b)
	case side == 0:
		return taxa.ManyToManyCrossingCount(a, b, t.opts.Correspondence)
	default:
		return taxa.ManyToManyCrossingCount(a, b, t.inverse)
	}
}

// scorer returns a function scoring candidate orders of network side
// against other. The one-to-one case reuses a single reference so that the
// refiner does not rebuild position tables per candidate.
func (t *Tanglegram) scorer(side int, other []string) func([]string) int {
	if t.opts.Correspondence == nil {
		return taxa.NewReference(other).Crossings
	}
	return func(a []string) int { return t.crossings(side, a, other) }
}

// Apply orders the guide trees (and actual out-edges) of both networks. For
// any other number of networks each one is ordered on its own with the
// taxa-below strategy and the score is -1.
func (t *Tanglegram) Apply(ctx context.Context, nets []*network.Network) (TanglegramResult, error) {
	logger := t.opts.Logger
	if len(nets) != 2 {
		name := Algorithm2010
		if t.opts.ShortestPath {
			name = Algorithm2010Dist
		}
		e := newTaxaBelow(name, t.opts.ShortestPath, logger)
		for _, n := range nets {
			if err := e.Apply(ctx, n); err != nil {
				return TanglegramResult{Score: -1}, err
			}
		}
		return TanglegramResult{Score: -1}, nil
	}

	var orders [2][]string
	if nets[0].Root() == network.NoNode || nets[1].Root() == network.NoNode {
		orders = [2][]string{nets[0].LeafOrder(), nets[1].LeafOrder()}
		return TanglegramResult{Score: t.crossings(0, orders[0], orders[1]), Orders: orders}, nil
	}

	cycle, _, err := jointCycle(ctx, t.mode(), logger, nets...)
	if err != nil {
		return TanglegramResult{Score: -1}, err
	}
	for side, n := range nets {
		if err := RotateByTaxaBelow(n, cycle[1:]); err != nil {
			return TanglegramResult{Score: -1}, err
		}
		orders[side] = n.LeafOrder()
	}
	score := t.crossings(0, orders[0], orders[1])
	observability.Tanglegram().OnRound(ctx, 0, score)
	logger.Debug("tanglegram joint order", "crossings", score, "fast", t.opts.Fast)
	if t.opts.Fast || score == 0 {
		return TanglegramResult{Score: score, Orders: orders}, nil
	}

	best, bestOrders := score, orders
	for round := 1; round <= t.opts.MaxRounds; round++ {
		if err := ctx.Err(); err != nil {
			return TanglegramResult{Score: -1}, errors.Cancelled(err, "tanglegram cancelled in round %d", round)
		}
		for side, n := range nets {
			refined, err := t.refine(n, side, orders[1-side])
			if err != nil {
				return TanglegramResult{Score: -1}, err
			}
			if err := RotateByTaxaBelow(n, refined); err != nil {
				return TanglegramResult{Score: -1}, err
			}
			orders[side] = n.LeafOrder()
		}
		s := t.crossings(0, orders[0], orders[1])
		observability.Tanglegram().OnRound(ctx, round, s)
		logger.Debug("tanglegram round", "round", round, "crossings", s, "best", best)
		if s >= best {
			break
		}
		best, bestOrders = s, orders
	}

	if !slices.Equal(orders[0], bestOrders[0]) || !slices.Equal(orders[1], bestOrders[1]) {
		for side, n := range nets {
			if err := RotateByTaxaBelow(n, bestOrders[side]); err != nil {
				return TanglegramResult{Score: -1}, err
			}
			orders[side] = n.LeafOrder()
		}
	}
	return TanglegramResult{Score: t.crossings(0, orders[0], orders[1]), Orders: orders}, nil
}

// refine rebuilds the leaf order of network side piece by piece. The root
// piece is kept as drawn; the leaves of every further piece are inserted one
// at a time at the position with the fewest crossings against other, among
// the positions where the piece still agrees with every piece placed before.
func (t *Tanglegram) refine(n *network.Network, side int, other []string) ([]string, error) {
	pieces := decompose(n)
	order := []string{taxa.OutgroupLabel}
	present := make(map[string]bool)
	var placed []map[string]bool
	score := t.scorer(side, other)

	for pi, p := range pieces {
		mine := make(map[string]bool)
		for _, x := range p.leaves {
			if present[x] {
				continue
			}
			if pi == 0 {
				order = append(order, x)
			} else {
				next, ok := t.insert(order, x, mine, placed, score)
				if !ok {
					return nil, errors.New(errors.ErrCodeInfeasible,
						"no position for taxon %q of the piece below node %d agrees with the placed pieces", x, p.top)
				}
				order = next
			}
			mine[x] = true
			present[x] = true
		}
		if len(mine) > 0 {
			placed = append(placed, mine)
		}
	}
	return order[1:], nil
}

// insert returns order with x inserted after the sentinel at the feasible
// position with the fewest crossings, first found on ties.
func (t *Tanglegram) insert(order []string, x string, mine map[string]bool, placed []map[string]bool, score func([]string) int) ([]string, bool) {
	group := make(map[string]bool, len(mine)+1)
	for y := range mine {
		group[y] = true
	}
	group[x] = true

	var best []string
	bestScore := 0
	for pos := 1; pos <= len(order); pos++ {
		cand := slices.Insert(slices.Clone(order), pos, x)
		feasible := true
		for _, q := range placed {
			if !agree(cand, group, q) {
				feasible = false
				break
			}
		}
		if !feasible {
			continue
		}
		if s := score(cand[1:]); best == nil || s < bestScore {
			best, bestScore = cand, s
		}
	}
	return best, best != nil
}

// agree reports whether two disjoint taxon groups are compatible in order:
// restricted to their union, at least one of them occupies a contiguous run.
func agree(order []string, a, b map[string]bool) bool {
	var inA []bool
	for _, x := range order {
		switch {
		case a[x]:
			inA = append(inA, true)
		case b[x]:
			inA = append(inA, false)
		}
	}
	return contiguousRun(inA, true) || contiguousRun(inA, false)
}

func contiguousRun(seq []bool, want bool) bool {
	runs := 0
	for i, v := range seq {
		if v == want && (i == 0 || seq[i-1] != want) {
			runs++
		}
	}
	return runs <= 1
}
