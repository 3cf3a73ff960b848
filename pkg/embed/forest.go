package embed

import (
	"slices"

	"github.com/husonlab/dendroscope3-sub003/pkg/network"
)

// piece is one tree-like part of a network: the nodes below the root or a
// reticulation, down to (not including) the next reticulations.
type piece struct {
	top      network.NodeID
	leaves   []string
	children []int // indices of the pieces directly below
}

// decompose splits n into pieces, the root piece first and then one per
// reticulation in guide preorder. Leaves are listed in the network's
// current drawing order. A piece without labeled leaves of its own takes the
// union of the pieces below it, in the same drawing order.
func decompose(n *network.Network) []piece {
	root := n.Root()
	if root == network.NoNode {
		return nil
	}
	drawn := make(map[string]int)
	for i, label := range n.LeafOrder() {
		drawn[label] = i
	}
	byDrawOrder := func(a, b string) int { return drawn[a] - drawn[b] }

	var tops []network.NodeID
	for _, v := range n.GuidePreorder(root) {
		if v == root || n.IsReticulation(v) {
			tops = append(tops, v)
		}
	}
	index := make(map[network.NodeID]int, len(tops))
	for i, v := range tops {
		index[v] = i
	}

	pieces := make([]piece, len(tops))
	for i, top := range tops {
		p := piece{top: top}
		stack := []network.NodeID{top}
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if v != top && n.IsReticulation(v) {
				if c := index[v]; !slices.Contains(p.children, c) {
					p.children = append(p.children, c)
				}
				continue
			}
			if label := n.Label(v); n.IsLeaf(v) && label != "" && !slices.Contains(p.leaves, label) {
				p.leaves = append(p.leaves, label)
			}
			kids := n.Children(v)
			for j := len(kids) - 1; j >= 0; j-- {
				stack = append(stack, kids[j])
			}
		}
		slices.SortStableFunc(p.leaves, byDrawOrder)
		pieces[i] = p
	}

	for i := range pieces {
		if len(pieces[i].leaves) > 0 {
			continue
		}
		var union []string
		seen := map[int]bool{i: true}
		stack := slices.Clone(pieces[i].children)
		for len(stack) > 0 {
			c := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if seen[c] {
				continue
			}
			seen[c] = true
			union = append(union, pieces[c].leaves...)
			stack = append(stack, pieces[c].children...)
		}
		slices.SortStableFunc(union, byDrawOrder)
		pieces[i].leaves = slices.Compact(union)
	}
	return pieces
}
