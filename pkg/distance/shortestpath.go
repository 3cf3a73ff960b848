package distance

import (
	"gonum.org/v1/gonum/mat"

	"github.com/husonlab/dendroscope3-sub003/pkg/network"
	"github.com/husonlab/dendroscope3-sub003/pkg/taxa"
)

// ShortestPath builds the path-length matrix: the entry for two taxa is the
// number of nodes on the shortest undirected path between their leaves,
// averaged over the networks. The sentinel taxon, if indexed, behaves as a
// leaf hanging off each root. Pairs not both present in a network add
// nothing for that network.
func ShortestPath(idx *taxa.Index, nets ...*network.Network) (*Matrix, error) {
	if realTaxa(idx) <= 2 {
		return nil, ErrTooFewTaxa
	}
	size := idx.Len()
	d := mat.NewSymDense(size+1, nil)
	if len(nets) == 0 {
		return &Matrix{D: d}, nil
	}
	scale := 1 / float64(len(nets))

	for _, n := range nets {
		leaf := leafNodes(n, idx)
		for i := 1; i <= size; i++ {
			src, ok := leaf[i]
			if !ok {
				continue
			}
			dist := bfs(n, src)
			for j := i + 1; j <= size; j++ {
				dst, ok := leaf[j]
				if !ok || dist[dst] < 0 {
					continue
				}
				d.SetSym(i, j, d.At(i, j)+scale*float64(dist[dst]+1))
			}
		}
	}
	return &Matrix{D: d}, nil
}

// leafNodes maps taxon ordinals to the first leaf carrying the label. The
// sentinel maps to a virtual node one past the last real node.
func leafNodes(n *network.Network, idx *taxa.Index) map[int]network.NodeID {
	leaf := make(map[int]network.NodeID)
	for _, v := range n.Leaves() {
		if i, ok := idx.Ordinal(n.Label(v)); ok {
			if _, dup := leaf[i]; !dup {
				leaf[i] = v
			}
		}
	}
	if out := idx.Outgroup(); out != 0 && n.Root() != network.NoNode {
		leaf[out] = network.NodeID(n.NodeCount())
	}
	return leaf
}

// bfs returns edge counts from src over the undirected graph of n plus the
// virtual sentinel leaf attached to the root. Unreached nodes get -1.
func bfs(n *network.Network, src network.NodeID) []int {
	virtual := network.NodeID(n.NodeCount())
	root := n.Root()
	neighbors := func(v network.NodeID) []network.NodeID {
		if v == virtual {
			return []network.NodeID{root}
		}
		adj := append(n.Children(v), n.Parents(v)...)
		if v == root {
			adj = append(adj, virtual)
		}
		return adj
	}

	dist := make([]int, n.NodeCount()+1)
	for i := range dist {
		dist[i] = -1
	}
	dist[src] = 0
	queue := []network.NodeID{src}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, w := range neighbors(v) {
			if dist[w] < 0 {
				dist[w] = dist[v] + 1
				queue = append(queue, w)
			}
		}
	}
	return dist
}
