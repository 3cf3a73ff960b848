package network

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrUnknownSourceNode is returned by [Network.AddEdge] when the source
	// node does not exist.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Network.AddEdge] when the target
	// node does not exist.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrSelfLoop is returned by [Network.AddEdge] when source and target
	// are the same node.
	ErrSelfLoop = errors.New("self loop")

	// ErrUnknownNode is returned when a node ID is out of range.
	ErrUnknownNode = errors.New("unknown node")

	// ErrNoRoot is returned by [Network.Validate] when no node has in-degree 0
	// or when the designated root has incoming edges.
	ErrNoRoot = errors.New("network has no root")

	// ErrMultipleRoots is returned by [Network.Validate] when more than one
	// node has in-degree 0.
	ErrMultipleRoots = errors.New("network has more than one root")

	// ErrCycle is returned by [Network.Validate] when the edges form a
	// directed cycle. Reticulations never justify a topological cycle.
	ErrCycle = errors.New("network contains a cycle")

	// ErrUnreachable is returned by [Network.Validate] when a node cannot be
	// reached from the root.
	ErrUnreachable = errors.New("node not reachable from root")

	// ErrNotPermutation is returned by [Network.SetOutEdgeOrder] and
	// [Network.SetGuideChildren] when the new order is not a reordering of
	// the current one.
	ErrNotPermutation = errors.New("order is not a permutation of the current children")
)

// NodeID indexes a node in its network. IDs are dense, starting at 0, in
// the order nodes were added.
type NodeID int

// NoNode is the sentinel for "no such node" (e.g. the guide parent of the root).
const NoNode NodeID = -1

// Node is a vertex of a phylogenetic network. Leaves carry taxon labels;
// internal labels are optional and ignored by the ordering algorithms.
type Node struct {
	ID    NodeID
	Label string
}

// Edge is a directed edge. Special edges are reticulate edges; a special
// edge with a positive weight is a horizontal-transfer edge rather than a
// hybridization edge.
type Edge struct {
	ID      int
	From    NodeID
	To      NodeID
	Special bool
	Weight  float64
}

// IsTransfer reports whether the edge is a horizontal-transfer edge.
func (e Edge) IsTransfer() bool { return e.Special && e.Weight > 0 }

// Network is a rooted directed acyclic graph with ordered adjacency and a
// mutable guide-tree map used to drive rendering order.
//
// The zero value is not usable - use New to create a valid Network instance.
// Network is not safe for concurrent use without external synchronization.
type Network struct {
	nodes []Node
	edges []Edge
	out   [][]int // node -> outgoing edge IDs, in drawing order
	in    [][]int // node -> incoming edge IDs
	root  NodeID
	guide map[NodeID][]NodeID
}

// New creates an empty network without a designated root.
func New() *Network {
	return &Network{root: NoNode}
}

// AddNode adds a node with the given label and returns its ID.
// Pass an empty label for unlabeled internal nodes.
func (n *Network) AddNode(label string) NodeID {
	id := NodeID(len(n.nodes))
	n.nodes = append(n.nodes, Node{ID: id, Label: label})
	n.out = append(n.out, nil)
	n.in = append(n.in, nil)
	return id
}

// AddEdge adds a plain tree edge from→to and returns its ID.
// Returns ErrUnknownSourceNode or ErrUnknownTargetNode if an endpoint does
// not exist, or ErrSelfLoop if from == to. Acyclicity is checked by Validate.
func (n *Network) AddEdge(from, to NodeID) (int, error) {
	return n.addEdge(Edge{From: from, To: to})
}

// AddSpecialEdge adds a reticulate edge. A positive weight marks the edge as
// a horizontal-transfer edge; zero marks a hybridization edge.
func (n *Network) AddSpecialEdge(from, to NodeID, weight float64) (int, error) {
	return n.addEdge(Edge{From: from, To: to, Special: true, Weight: weight})
}

func (n *Network) addEdge(e Edge) (int, error) {
	if !n.valid(e.From) {
		return -1, ErrUnknownSourceNode
	}
	if !n.valid(e.To) {
		return -1, ErrUnknownTargetNode
	}
	if e.From == e.To {
		return -1, ErrSelfLoop
	}
	e.ID = len(n.edges)
	n.edges = append(n.edges, e)
	n.out[e.From] = append(n.out[e.From], e.ID)
	n.in[e.To] = append(n.in[e.To], e.ID)
	return e.ID, nil
}

func (n *Network) valid(v NodeID) bool { return v >= 0 && int(v) < len(n.nodes) }

// SetRoot designates the root node. Validate checks that it has in-degree 0.
func (n *Network) SetRoot(v NodeID) error {
	if !n.valid(v) {
		return ErrUnknownNode
	}
	n.root = v
	return nil
}

// Root returns the designated root, or the unique node with in-degree 0
// when none was designated. Returns NoNode if neither exists.
func (n *Network) Root() NodeID {
	if n.root != NoNode {
		return n.root
	}
	found := NoNode
	for v := range n.nodes {
		if len(n.in[v]) == 0 {
			if found != NoNode {
				return NoNode
			}
			found = NodeID(v)
		}
	}
	return found
}

// NodeCount returns the number of nodes.
func (n *Network) NodeCount() int { return len(n.nodes) }

// EdgeCount returns the number of edges.
func (n *Network) EdgeCount() int { return len(n.edges) }

// Node returns the node with the given ID and true, or the zero Node and
// false if the ID is out of range.
func (n *Network) Node(v NodeID) (Node, bool) {
	if !n.valid(v) {
		return Node{}, false
	}
	return n.nodes[v], true
}

// Label returns the node's label, or "" for unknown or unlabeled nodes.
func (n *Network) Label(v NodeID) string {
	if !n.valid(v) {
		return ""
	}
	return n.nodes[v].Label
}

// SetLabel changes a node's label.
func (n *Network) SetLabel(v NodeID, label string) error {
	if !n.valid(v) {
		return ErrUnknownNode
	}
	n.nodes[v].Label = label
	return nil
}

// Edge returns the edge with the given ID. It panics on an invalid ID.
func (n *Network) Edge(id int) Edge { return n.edges[id] }

// Edges returns a copy of all edges in insertion order.
func (n *Network) Edges() []Edge { return slices.Clone(n.edges) }

// OutEdges returns the IDs of the node's outgoing edges in drawing order.
// The returned slice should not be modified - use SetOutEdgeOrder.
func (n *Network) OutEdges(v NodeID) []int { return n.out[v] }

// InEdges returns the IDs of the node's incoming edges.
// The returned slice should not be modified.
func (n *Network) InEdges(v NodeID) []int { return n.in[v] }

// Children returns the targets of the node's outgoing edges in drawing order.
func (n *Network) Children(v NodeID) []NodeID {
	children := make([]NodeID, len(n.out[v]))
	for i, e := range n.out[v] {
		children[i] = n.edges[e].To
	}
	return children
}

// Parents returns the sources of the node's incoming edges.
func (n *Network) Parents(v NodeID) []NodeID {
	parents := make([]NodeID, len(n.in[v]))
	for i, e := range n.in[v] {
		parents[i] = n.edges[e].From
	}
	return parents
}

// OutDegree returns the number of outgoing edges of the node.
func (n *Network) OutDegree(v NodeID) int { return len(n.out[v]) }

// InDegree returns the number of incoming edges of the node.
func (n *Network) InDegree(v NodeID) int { return len(n.in[v]) }

// IsLeaf reports whether the node has no outgoing edges.
func (n *Network) IsLeaf(v NodeID) bool { return len(n.out[v]) == 0 }

// IsReticulation reports whether the node has two or more parents.
func (n *Network) IsReticulation(v NodeID) bool { return len(n.in[v]) >= 2 }

// Leaves returns all nodes without outgoing edges, in ID order.
func (n *Network) Leaves() []NodeID {
	var leaves []NodeID
	for v := range n.nodes {
		if len(n.out[v]) == 0 {
			leaves = append(leaves, NodeID(v))
		}
	}
	return leaves
}

// Reticulations returns all reticulation nodes, in ID order.
func (n *Network) Reticulations() []NodeID {
	var ret []NodeID
	for v := range n.nodes {
		if len(n.in[v]) >= 2 {
			ret = append(ret, NodeID(v))
		}
	}
	return ret
}

// HasReticulations reports whether any node has two or more parents.
func (n *Network) HasReticulations() bool {
	for v := range n.nodes {
		if len(n.in[v]) >= 2 {
			return true
		}
	}
	return false
}

// Taxa returns the distinct labels of labeled leaves, in node order.
func (n *Network) Taxa() []string {
	seen := make(map[string]bool)
	var taxa []string
	for _, v := range n.Leaves() {
		label := n.nodes[v].Label
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		taxa = append(taxa, label)
	}
	return taxa
}

// SetOutEdgeOrder replaces the drawing order of the node's outgoing edges.
// The new order must contain exactly the current edge IDs; otherwise
// ErrNotPermutation is returned and nothing changes.
func (n *Network) SetOutEdgeOrder(v NodeID, order []int) error {
	if !n.valid(v) {
		return ErrUnknownNode
	}
	if !samePermutation(n.out[v], order) {
		return ErrNotPermutation
	}
	n.out[v] = slices.Clone(order)
	return nil
}

// GuideChildren returns the node's ordered guide children, or nil when the
// guide map is empty or has no entry for the node. The returned slice
// should not be modified - use SetGuideChildren.
func (n *Network) GuideChildren(v NodeID) []NodeID { return n.guide[v] }

// SetGuideChildren replaces the node's guide children with a reordering of
// the current list. The first assignment for a node (no previous entry)
// is accepted as is; later ones must be permutations of the previous list.
func (n *Network) SetGuideChildren(v NodeID, children []NodeID) error {
	if !n.valid(v) {
		return ErrUnknownNode
	}
	if n.guide == nil {
		n.guide = make(map[NodeID][]NodeID)
	}
	if prev, ok := n.guide[v]; ok && !samePermutation(prev, children) {
		return ErrNotPermutation
	}
	if len(children) == 0 {
		delete(n.guide, v)
		return nil
	}
	n.guide[v] = slices.Clone(children)
	return nil
}

// ClearGuide removes the guide map entirely. Renderers interpret an empty
// map as "draw the actual topology".
func (n *Network) ClearGuide() { n.guide = nil }

// HasGuide reports whether a guide map is present.
func (n *Network) HasGuide() bool { return n.guide != nil }

// Guide returns a deep copy of the guide map, or nil when there is none.
func (n *Network) Guide() map[NodeID][]NodeID {
	if n.guide == nil {
		return nil
	}
	out := make(map[NodeID][]NodeID, len(n.guide))
	for _, v := range slices.Sorted(maps.Keys(n.guide)) {
		out[v] = slices.Clone(n.guide[v])
	}
	return out
}

// OrderedChildren returns the guide children when a guide map is present
// and the actual children otherwise. This is the child order a renderer uses.
func (n *Network) OrderedChildren(v NodeID) []NodeID {
	if n.guide != nil {
		return n.guide[v]
	}
	return n.Children(v)
}

// Clone returns a deep copy of the network, including its guide map.
func (n *Network) Clone() *Network {
	c := &Network{
		nodes: slices.Clone(n.nodes),
		edges: slices.Clone(n.edges),
		out:   make([][]int, len(n.out)),
		in:    make([][]int, len(n.in)),
		root:  n.root,
		guide: n.Guide(),
	}
	for i := range n.out {
		c.out[i] = slices.Clone(n.out[i])
		c.in[i] = slices.Clone(n.in[i])
	}
	return c
}

// Validate checks network integrity and returns nil if valid.
// It verifies that:
//
//  1. Exactly one node has in-degree 0 and it is the designated root (if any)
//  2. The graph is acyclic
//  3. Every node is reachable from the root
//
// Cycle detection runs in O(N+E) using an explicit-stack depth-first search.
func (n *Network) Validate() error {
	root := NoNode
	for v := range n.nodes {
		if len(n.in[v]) == 0 {
			if root != NoNode {
				return ErrMultipleRoots
			}
			root = NodeID(v)
		}
	}
	if root == NoNode || (n.root != NoNode && n.root != root) {
		return ErrNoRoot
	}
	if err := n.detectCycles(); err != nil {
		return err
	}
	if len(n.Preorder()) != len(n.nodes) {
		return ErrUnreachable
	}
	return nil
}

func (n *Network) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	type frame struct {
		node NodeID
		next int
	}

	color := make([]int, len(n.nodes))
	for start := range n.nodes {
		if color[start] != white {
			continue
		}
		stack := []frame{{node: NodeID(start)}}
		color[start] = gray
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next == len(n.out[top.node]) {
				color[top.node] = black
				stack = stack[:len(stack)-1]
				continue
			}
			child := n.edges[n.out[top.node][top.next]].To
			top.next++
			switch color[child] {
			case white:
				color[child] = gray
				stack = append(stack, frame{node: child})
			case gray:
				return ErrCycle
			}
		}
	}
	return nil
}

func samePermutation[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	count := make(map[T]int, len(a))
	for _, x := range a {
		count[x]++
	}
	for _, x := range b {
		count[x]--
		if count[x] < 0 {
			return false
		}
	}
	return true
}
