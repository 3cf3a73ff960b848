package network

// LSA holds the guide parent of every node of a network. For tree nodes the
// guide parent is the only actual parent; for a reticulation it is the lowest
// stable ancestor, the lowest node through which every path from the root
// passes. Reticulations entered by a horizontal-transfer edge instead hang
// below the source of their first non-transfer in-edge, the acceptor lineage.
type LSA struct {
	parent []NodeID
	idom   []NodeID
}

// ComputeLSA builds the guide-parent table of n. It returns ErrNoRoot if the
// network has no root. Nodes unreachable from the root have no guide parent.
func ComputeLSA(n *Network) (*LSA, error) {
	root := n.Root()
	if root == NoNode {
		return nil, ErrNoRoot
	}
	idom := dominators(n, root)
	parent := make([]NodeID, n.NodeCount())
	for v := range parent {
		parent[v] = NoNode
	}
	for v := range parent {
		id := NodeID(v)
		if id == root || idom[v] == NoNode {
			continue
		}
		switch in := n.in[v]; {
		case len(in) == 1:
			parent[v] = n.edges[in[0]].From
		case hasTransferIn(n, id):
			parent[v] = idom[v]
			for _, e := range in {
				if !n.edges[e].IsTransfer() {
					parent[v] = n.edges[e].From
					break
				}
			}
		default:
			parent[v] = idom[v]
		}
	}
	return &LSA{parent: parent, idom: idom}, nil
}

func hasTransferIn(n *Network, v NodeID) bool {
	for _, e := range n.in[v] {
		if n.edges[e].IsTransfer() {
			return true
		}
	}
	return false
}

// Parent returns the guide parent of v, or NoNode for the root.
func (l *LSA) Parent(v NodeID) NodeID { return l.parent[v] }

// Of returns the lowest stable ancestor of v: the immediate dominator in the
// rooted network, NoNode for the root.
func (l *LSA) Of(v NodeID) NodeID { return l.idom[v] }

// Apply writes the guide-children map of n from the table. Each node gets
// the children it is guide parent of: actual children first, in actual
// out-edge order, followed by reticulations injected from further below, in
// network preorder.
func (l *LSA) Apply(n *Network) {
	guide := make(map[NodeID][]NodeID)
	for v := range n.nodes {
		u := NodeID(v)
		for _, c := range n.Children(u) {
			if l.parent[c] == u && !contains(guide[u], c) {
				guide[u] = append(guide[u], c)
			}
		}
	}
	for _, v := range n.Preorder() {
		p := l.parent[v]
		if p == NoNode || contains(guide[p], v) {
			continue
		}
		guide[p] = append(guide[p], v)
	}
	n.guide = guide
}

// BuildGuideTree resets the guide map of n to the LSA guide tree in actual
// out-edge order. Networks without reticulations get an empty map.
func BuildGuideTree(n *Network) error {
	if !n.HasReticulations() {
		n.ClearGuide()
		return nil
	}
	lsa, err := ComputeLSA(n)
	if err != nil {
		return err
	}
	lsa.Apply(n)
	return nil
}

// dominators computes immediate dominators with the Cooper-Harvey-Kennedy
// iteration over a reverse postorder of the nodes reachable from root.
func dominators(n *Network, root NodeID) []NodeID {
	post := n.postorder(root)
	index := make([]int, n.NodeCount())
	for i := range index {
		index[i] = -1
	}
	for i, v := range post {
		index[v] = i
	}

	idom := make([]NodeID, n.NodeCount())
	for i := range idom {
		idom[i] = NoNode
	}
	idom[root] = root

	intersect := func(a, b NodeID) NodeID {
		for a != b {
			for index[a] < index[b] {
				a = idom[a]
			}
			for index[b] < index[a] {
				b = idom[b]
			}
		}
		return a
	}

	for changed := true; changed; {
		changed = false
		for i := len(post) - 1; i >= 0; i-- {
			v := post[i]
			if v == root {
				continue
			}
			next := NoNode
			for _, p := range n.Parents(v) {
				if idom[p] == NoNode {
					continue
				}
				if next == NoNode {
					next = p
				} else {
					next = intersect(p, next)
				}
			}
			if next != idom[v] {
				idom[v] = next
				changed = true
			}
		}
	}
	idom[root] = NoNode
	return idom
}

func contains(list []NodeID, v NodeID) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
