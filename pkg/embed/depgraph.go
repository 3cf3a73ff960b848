package embed

import (
	"context"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/husonlab/dendroscope3-sub003/pkg/errors"
	"github.com/husonlab/dendroscope3-sub003/pkg/network"
)

// reticulationData is the per-reticulation working record of Algorithm2008.
type reticulationData struct {
	node    network.NodeID
	parents []int // first two in-edges
	lsa     network.NodeID
	// paths[i] runs from the source of parents[i] up to lsa, inclusive.
	paths [][]network.NodeID
	// plain holds the tree nodes below node up to the next reticulations.
	plain []network.NodeID
	// depends holds the reticulations reached from node through tree nodes,
	// after back and forward edges were pruned.
	depends []network.NodeID
}

// dependencies holds the working tables of one Algorithm2008 run, indexed by
// node.
type dependencies struct {
	data  []*reticulationData
	order []network.NodeID
}

func buildDependencies(n *network.Network, lsa *network.LSA, l *layout) *dependencies {
	deps := &dependencies{data: make([]*reticulationData, n.NodeCount())}
	var rets []network.NodeID
	for _, v := range n.Preorder() {
		if !n.IsReticulation(v) {
			continue
		}
		rets = append(rets, v)
		rd := &reticulationData{node: v, parents: slices.Clone(n.InEdges(v)[:2]), lsa: lsa.Of(v)}
		rd.plain, rd.depends = walkForward(n, v)
		deps.data[v] = rd
	}

	deps.order = deps.topoSort(rets)

	auxEdges := make(map[[2]network.NodeID]bool)
	root := n.Root()
	for _, r := range deps.order {
		rd := deps.data[r]
		for _, e := range rd.parents {
			rd.paths = append(rd.paths, auxiliaryPath(n, l, n.Edge(e).From, rd.lsa, root, auxEdges))
		}
	}
	return deps
}

// walkForward collects the tree nodes below r and the reticulations that
// bound them.
func walkForward(n *network.Network, r network.NodeID) (plain, rets []network.NodeID) {
	stack := slices.Clone(n.Children(r))
	slices.Reverse(stack)
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.IsReticulation(c) {
			if !slices.Contains(rets, c) {
				rets = append(rets, c)
			}
			continue
		}
		plain = append(plain, c)
		kids := n.Children(c)
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
	return plain, rets
}

// topoSort orders the reticulations so that each precedes the ones depending
// on it. Edges into a node still on the DFS stack close a cycle and are
// dropped; edges into an already finished node are redundant and removed.
func (d *dependencies) topoSort(rets []network.NodeID) []network.NodeID {
	const (
		white = iota
		gray
		black
	)
	type frame struct {
		node network.NodeID
		next int
		kept []network.NodeID
	}

	color := make(map[network.NodeID]int, len(rets))
	var post []network.NodeID
	for _, start := range rets {
		if color[start] != white {
			continue
		}
		color[start] = gray
		stack := []frame{{node: start}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			rd := d.data[top.node]
			if top.next == len(rd.depends) {
				rd.depends = top.kept
				color[top.node] = black
				post = append(post, top.node)
				stack = stack[:len(stack)-1]
				continue
			}
			c := rd.depends[top.next]
			top.next++
			if color[c] != white {
				continue
			}
			top.kept = append(top.kept, c)
			color[c] = gray
			stack = append(stack, frame{node: c})
		}
	}
	slices.Reverse(post)
	return post
}

// auxiliaryPath walks up from s to target. At each step it prefers an edge
// already used by an earlier path, then the guide parent, then the first
// parent. The walk ends at the root if target is never met.
func auxiliaryPath(n *network.Network, l *layout, s, target, root network.NodeID, used map[[2]network.NodeID]bool) []network.NodeID {
	path := []network.NodeID{s}
	for u := s; u != target && u != root && len(path) <= n.NodeCount(); {
		parents := n.Parents(u)
		next := network.NoNode
		for _, p := range parents {
			if used[[2]network.NodeID{u, p}] {
				next = p
				break
			}
		}
		if next == network.NoNode {
			next = l.parent[u]
		}
		if next == network.NoNode && len(parents) > 0 {
			next = parents[0]
		}
		if next == network.NoNode {
			break
		}
		used[[2]network.NodeID{u, next}] = true
		path = append(path, next)
		u = next
	}
	return path
}

// dependencyGreedy implements Algorithm2008.
type dependencyGreedy struct {
	logger *log.Logger
}

func (g *dependencyGreedy) Name() string { return Algorithm2008 }

func (g *dependencyGreedy) Apply(ctx context.Context, n *network.Network) error {
	return observe(ctx, Algorithm2008, n, func() error {
		lsa, ok, err := prepare(n)
		if err != nil || !ok {
			return err
		}
		l := newLayout(n)
		deps := buildDependencies(n, lsa, l)
		g.logger.Debug("dependency graph", "reticulations", len(deps.order))

		for _, v := range slices.Clone(l.order) {
			if err := ctx.Err(); err != nil {
				return errors.Cancelled(err, "%s cancelled", Algorithm2008)
			}
			children := n.GuideChildren(v)
			if len(children) < 2 {
				continue
			}
			ordered := g.orderNode(l, v, children, deps)
			if slices.Equal(ordered, children) {
				continue
			}
			if err := n.SetGuideChildren(v, ordered); err != nil {
				panic(err)
			}
			l.refresh(n)
		}
		return nil
	})
}

// link is a weighted connection between two elements of a local order.
type link struct{ a, b, w int }

// orderNode greedily rebuilds the child order of guide node v.
func (g *dependencyGreedy) orderNode(l *layout, v network.NodeID, children []network.NodeID, deps *dependencies) []network.NodeID {
	k := len(children)
	m := newAttraction(k)
	index := make(map[network.NodeID]int, k)
	for i, c := range children {
		index[c] = i + 1
	}
	element := func(x network.NodeID) int {
		if !l.inSubtree(v, x) {
			if l.before(v, x) {
				return before
			}
			return m.after()
		}
		if c := l.childContaining(children, x); c != network.NoNode {
			return index[c]
		}
		return -1
	}

	type step struct {
		endpoints []int
		target    int
	}
	var steps []step
	for _, r := range deps.order {
		rd := deps.data[r]
		target := element(r)
		var endpoints []int
		for _, path := range rd.paths {
			j := slices.Index(path, v)
			if j <= 0 {
				continue
			}
			e := element(path[j-1])
			if e <= before || e == m.after() || e == target || target < 0 {
				continue
			}
			m.add(e, target)
			if !slices.Contains(endpoints, e) {
				endpoints = append(endpoints, e)
			}
		}
		if len(endpoints) > 0 {
			steps = append(steps, step{endpoints: endpoints, target: target})
		}
	}

	var links []link
	for i := 0; i < k+2; i++ {
		for j := i + 1; j < k+2; j++ {
			if w := m.at(i, j); w > 0 {
				links = append(links, link{i, j, w})
			}
		}
	}

	list := []int{before, m.after()}
	for _, s := range steps {
		for _, e := range s.endpoints {
			list = insertBest(list, e, 1, len(list)-1, links)
		}
		if s.target <= before || s.target == m.after() || slices.Contains(list, s.target) {
			continue
		}
		lo, hi := 1, len(list)-1
		if len(s.endpoints) >= 2 {
			a, b := slices.Index(list, s.endpoints[0]), slices.Index(list, s.endpoints[1])
			lo, hi = min(a, b)+1, max(a, b)
		}
		list = insertBest(list, s.target, lo, hi, links)
	}
	for i := 1; i <= k; i++ {
		list = insertBest(list, i, 1, len(list)-1, links)
	}

	ordered := make([]network.NodeID, 0, k)
	for _, e := range list[1 : len(list)-1] {
		ordered = append(ordered, children[e-1])
	}
	return ordered
}

// insertBest inserts x into list at the position in [lo, hi] with the
// lowest (crossings, span) score; ties keep the first position. Elements
// already in list are left alone.
func insertBest(list []int, x, lo, hi int, links []link) []int {
	if slices.Contains(list, x) {
		return list
	}
	if lo > hi {
		lo, hi = 1, len(list)-1
	}
	var best []int
	bestCross, bestSpan := 0, 0
	for pos := lo; pos <= hi; pos++ {
		cand := slices.Insert(slices.Clone(list), pos, x)
		cross, span := linkScore(cand, links)
		if best == nil || cross < bestCross || (cross == bestCross && span < bestSpan) {
			best, bestCross, bestSpan = cand, cross, span
		}
	}
	return best
}

// linkScore counts weighted pairs of interleaving links and the total
// weighted link span among the elements present in order.
func linkScore(order []int, links []link) (cross, span int) {
	pos := make(map[int]int, len(order))
	for i, e := range order {
		pos[e] = i
	}
	type placed struct{ lo, hi, w int }
	var ps []placed
	for _, l := range links {
		pa, okA := pos[l.a]
		pb, okB := pos[l.b]
		if !okA || !okB {
			continue
		}
		ps = append(ps, placed{min(pa, pb), max(pa, pb), l.w})
		span += l.w * (max(pa, pb) - min(pa, pb))
	}
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			p, q := ps[i], ps[j]
			if (p.lo < q.lo && q.lo < p.hi && p.hi < q.hi) || (q.lo < p.lo && p.lo < q.hi && q.hi < p.hi) {
				cross += p.w * q.w
			}
		}
	}
	return cross, span
}
