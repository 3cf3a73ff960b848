package embed

import (
	"context"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/husonlab/dendroscope3-sub003/pkg/errors"
	"github.com/husonlab/dendroscope3-sub003/pkg/network"
)

// lsaHeuristic implements AlgorithmLSA: barycentric passes over the guide
// tree. Each guide child is keyed by the mean drawing position of the
// outside endpoints of reticulate edges leaving its subtree, or by its own
// mean leaf position when it has none.
type lsaHeuristic struct {
	logger *log.Logger
	passes int
}

func (h *lsaHeuristic) Name() string { return AlgorithmLSA }

func (h *lsaHeuristic) Apply(ctx context.Context, n *network.Network) error {
	return observe(ctx, AlgorithmLSA, n, func() error {
		_, ok, err := prepare(n)
		if err != nil || !ok {
			return err
		}
		edges := reticulateEdges(n, newLayout(n))
		for pass := 0; pass < h.passes; pass++ {
			if err := ctx.Err(); err != nil {
				return errors.Cancelled(err, "%s cancelled in pass %d", AlgorithmLSA, pass+1)
			}
			moved := h.pass(n, edges)
			h.logger.Debug("barycentric pass", "pass", pass+1, "reordered", moved)
			if moved == 0 {
				break
			}
		}
		return nil
	})
}

// pass reorders every guide node once, top-down, and returns how many nodes
// changed.
func (h *lsaHeuristic) pass(n *network.Network, edges []network.Edge) int {
	l := newLayout(n)
	moved := 0
	for _, v := range slices.Clone(l.order) {
		children := n.GuideChildren(v)
		if len(children) < 2 {
			continue
		}
		keys := make(map[network.NodeID]float64, len(children))
		for _, c := range children {
			keys[c] = barycenter(l, c, edges)
		}
		sorted := slices.Clone(children)
		slices.SortStableFunc(sorted, func(a, b network.NodeID) int {
			switch ka, kb := keys[a], keys[b]; {
			case ka < kb:
				return -1
			case ka > kb:
				return 1
			}
			return 0
		})
		if slices.Equal(sorted, children) {
			continue
		}
		if err := n.SetGuideChildren(v, sorted); err != nil {
			panic(err)
		}
		l.refresh(n)
		moved++
	}
	return moved
}

func barycenter(l *layout, c network.NodeID, edges []network.Edge) float64 {
	sum, count := 0, 0
	for _, e := range edges {
		inFrom, inTo := l.inSubtree(c, e.From), l.inSubtree(c, e.To)
		switch {
		case inFrom && !inTo:
			sum += l.pre[e.To]
			count++
		case inTo && !inFrom:
			sum += l.pre[e.From]
			count++
		}
	}
	if count > 0 {
		return float64(sum) / float64(count)
	}
	for i := l.pre[c]; i <= l.end[c]; i++ {
		if l.leaves[l.order[i]] == 1 && l.end[l.order[i]] == i {
			sum += i
			count++
		}
	}
	if count == 0 {
		return float64(l.pre[c])
	}
	return float64(sum) / float64(count)
}
