package embed

import (
	"context"
	"slices"

	"github.com/bits-and-blooms/bitset"
	"github.com/charmbracelet/log"

	"github.com/husonlab/dendroscope3-sub003/pkg/distance"
	"github.com/husonlab/dendroscope3-sub003/pkg/network"
)

// TaxaBelow returns, for every node, the set of ranks in order of the
// labeled leaves reachable from it. Leaves whose label is not in order
// contribute nothing.
func TaxaBelow(n *network.Network, order []string) []*bitset.BitSet {
	rank := make(map[string]uint, len(order))
	for i, label := range order {
		rank[label] = uint(i)
	}
	below := make([]*bitset.BitSet, n.NodeCount())
	for v := range below {
		below[v] = bitset.New(uint(len(order)))
	}
	for _, v := range n.Postorder() {
		if r, ok := rank[n.Label(v)]; ok && n.IsLeaf(v) {
			below[v].Set(r)
		}
		for _, c := range n.Children(v) {
			below[v].InPlaceUnion(below[c])
		}
	}
	return below
}

// compareBits orders two taxa-below sets by their set bits in ascending
// order, position by position; a set that runs out of bits first sorts
// first. Equal sets compare 0.
func compareBits(a, b *bitset.BitSet) int {
	i, okA := a.NextSet(0)
	j, okB := b.NextSet(0)
	for {
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return -1
		case !okB:
			return 1
		case i < j:
			return -1
		case i > j:
			return 1
		}
		i, okA = a.NextSet(i + 1)
		j, okB = b.NextSet(j + 1)
	}
}

// RotateByTaxaBelow reorders the out-edges of every node so that subtrees
// holding taxa earlier in order come first, falling back to edge IDs. For
// reticulate networks the LSA guide tree is then rebuilt and its children
// sorted the same way, using the taxa below each guide subtree; trees end
// with an empty guide map.
func RotateByTaxaBelow(n *network.Network, order []string) error {
	below := TaxaBelow(n, order)
	for v := 0; v < n.NodeCount(); v++ {
		id := network.NodeID(v)
		if n.OutDegree(id) < 2 {
			continue
		}
		edges := slices.Clone(n.OutEdges(id))
		slices.SortStableFunc(edges, func(a, b int) int {
			if c := compareBits(below[n.Edge(a).To], below[n.Edge(b).To]); c != 0 {
				return c
			}
			return a - b
		})
		if err := n.SetOutEdgeOrder(id, edges); err != nil {
			panic(err)
		}
	}

	if err := network.BuildGuideTree(n); err != nil || !n.HasGuide() {
		return err
	}

	guideBelow := make([]*bitset.BitSet, n.NodeCount())
	rank := make(map[string]uint, len(order))
	for i, label := range order {
		rank[label] = uint(i)
	}
	for _, v := range n.GuidePostorder(n.Root()) {
		b := bitset.New(uint(len(order)))
		if r, ok := rank[n.Label(v)]; ok && n.IsLeaf(v) {
			b.Set(r)
		}
		for _, c := range n.GuideChildren(v) {
			b.InPlaceUnion(guideBelow[c])
		}
		guideBelow[v] = b
	}
	for v := 0; v < n.NodeCount(); v++ {
		id := network.NodeID(v)
		children := slices.Clone(n.GuideChildren(id))
		if len(children) < 2 {
			continue
		}
		slices.SortStableFunc(children, func(a, b network.NodeID) int {
			if c := compareBits(guideBelow[a], guideBelow[b]); c != 0 {
				return c
			}
			return int(a - b)
		})
		if err := n.SetGuideChildren(id, children); err != nil {
			panic(err)
		}
	}
	return nil
}

// taxaBelow implements Algorithm2010 and Algorithm2010Dist: a global taxon
// order from the circular heuristic, then rotation by taxa below.
type taxaBelow struct {
	name   string
	mode   distance.Mode
	logger *log.Logger
}

func newTaxaBelow(name string, shortestPath bool, logger *log.Logger) *taxaBelow {
	mode := distance.ModeHardwired
	if shortestPath {
		mode = distance.ModeShortestPath
	}
	return &taxaBelow{name: name, mode: mode, logger: logger}
}

func (t *taxaBelow) Name() string { return t.name }

func (t *taxaBelow) Apply(ctx context.Context, n *network.Network) error {
	return observe(ctx, t.name, n, func() error {
		if n.Root() == network.NoNode {
			n.ClearGuide()
			return nil
		}
		order, err := GlobalOrder(ctx, t.mode, t.logger, n)
		if err != nil {
			return err
		}
		t.logger.Debug("rotating by taxa below", "strategy", t.name, "taxa", len(order))
		return RotateByTaxaBelow(n, order)
	})
}
