package network

// Preorder returns the nodes reachable from the root in depth-first preorder
// over the actual out-edges. Reticulations are listed at their first visit.
func (n *Network) Preorder() []NodeID {
	root := n.Root()
	if root == NoNode {
		return nil
	}
	return n.walk(root, n.Children, false)
}

// Postorder returns the nodes reachable from the root in depth-first
// postorder over the actual out-edges, so every node follows all of its
// descendants.
func (n *Network) Postorder() []NodeID {
	root := n.Root()
	if root == NoNode {
		return nil
	}
	return n.postorder(root)
}

func (n *Network) postorder(from NodeID) []NodeID {
	return n.walk(from, n.Children, true)
}

// GuidePreorder returns the nodes below from (inclusive) in preorder over
// OrderedChildren.
func (n *Network) GuidePreorder(from NodeID) []NodeID {
	return n.walk(from, n.OrderedChildren, false)
}

// GuidePostorder returns the nodes below from (inclusive) in postorder over
// OrderedChildren.
func (n *Network) GuidePostorder(from NodeID) []NodeID {
	return n.walk(from, n.OrderedChildren, true)
}

// OrderedLeaves returns the leaves below from in guide preorder.
func (n *Network) OrderedLeaves(from NodeID) []NodeID {
	var leaves []NodeID
	for _, v := range n.GuidePreorder(from) {
		if len(n.out[v]) == 0 {
			leaves = append(leaves, v)
		}
	}
	return leaves
}

// LeafOrder returns the labels of the labeled leaves in the order a renderer
// would draw them: guide preorder, or actual preorder when no guide map
// exists. Each label is reported once.
func (n *Network) LeafOrder() []string {
	root := n.Root()
	if root == NoNode {
		return nil
	}
	seen := make(map[string]bool)
	var order []string
	for _, v := range n.OrderedLeaves(root) {
		label := n.nodes[v].Label
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		order = append(order, label)
	}
	return order
}

// walk is an explicit-stack depth-first traversal visiting every node once.
func (n *Network) walk(from NodeID, children func(NodeID) []NodeID, post bool) []NodeID {
	if !n.valid(from) {
		return nil
	}
	type frame struct {
		node NodeID
		kids []NodeID
		next int
	}

	visited := make([]bool, len(n.nodes))
	visited[from] = true
	order := make([]NodeID, 0, len(n.nodes))
	if !post {
		order = append(order, from)
	}
	stack := []frame{{node: from, kids: children(from)}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.kids) {
			if post {
				order = append(order, top.node)
			}
			stack = stack[:len(stack)-1]
			continue
		}
		c := top.kids[top.next]
		top.next++
		if visited[c] {
			continue
		}
		visited[c] = true
		if !post {
			order = append(order, c)
		}
		stack = append(stack, frame{node: c, kids: children(c)})
	}
	return order
}
