package embed

import "github.com/husonlab/dendroscope3-sub003/pkg/network"

// layout is a snapshot of the guide tree: preorder intervals, guide parents
// and leaf counts. It goes stale as soon as guide children are reordered.
type layout struct {
	order  []network.NodeID
	pre    []int // node -> guide preorder index, -1 if unreachable
	end    []int // node -> last preorder index inside its guide subtree
	parent []network.NodeID
	leaves []int
}

func newLayout(n *network.Network) *layout {
	size := n.NodeCount()
	l := &layout{
		pre:    make([]int, size),
		end:    make([]int, size),
		parent: make([]network.NodeID, size),
		leaves: make([]int, size),
	}
	for v := range l.pre {
		l.pre[v] = -1
		l.parent[v] = network.NoNode
	}
	root := n.Root()
	if root == network.NoNode {
		return l
	}
	l.order = n.GuidePreorder(root)
	for i, v := range l.order {
		l.pre[v] = i
		for _, c := range n.OrderedChildren(v) {
			l.parent[c] = v
		}
	}
	for i := len(l.order) - 1; i >= 0; i-- {
		v := l.order[i]
		l.end[v] = i
		if n.IsLeaf(v) {
			l.leaves[v] = 1
		}
		for _, c := range n.OrderedChildren(v) {
			if l.pre[c] > l.pre[v] {
				l.end[v] = max(l.end[v], l.end[c])
				l.leaves[v] += l.leaves[c]
			}
		}
	}
	return l
}

// refresh recomputes the snapshot after guide children were reordered.
func (l *layout) refresh(n *network.Network) { *l = *newLayout(n) }

// inSubtree reports whether x lies in the guide subtree of v.
func (l *layout) inSubtree(v, x network.NodeID) bool {
	return l.pre[x] >= 0 && l.pre[v] <= l.pre[x] && l.pre[x] <= l.end[v]
}

// childContaining returns the guide child of v whose subtree holds x, or
// NoNode when x is v itself or outside v's subtree.
func (l *layout) childContaining(children []network.NodeID, x network.NodeID) network.NodeID {
	for _, c := range children {
		if l.inSubtree(c, x) {
			return c
		}
	}
	return network.NoNode
}

// before reports whether x is drawn before the guide subtree of v rather
// than after it. x must lie outside that subtree.
func (l *layout) before(v, x network.NodeID) bool { return l.pre[x] < l.pre[v] }

// reticulateEdges returns the actual edges that are not guide edges: for
// each node every in-edge except the first one coming from its guide parent.
func reticulateEdges(n *network.Network, l *layout) []network.Edge {
	var out []network.Edge
	for v := 0; v < n.NodeCount(); v++ {
		guideSeen := false
		for _, id := range n.InEdges(network.NodeID(v)) {
			e := n.Edge(id)
			if !guideSeen && e.From == l.parent[v] {
				guideSeen = true
				continue
			}
			out = append(out, e)
		}
	}
	return out
}
