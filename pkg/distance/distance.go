// Package distance derives taxon dissimilarity matrices from one or more
// networks, as input to the circular ordering heuristic.
//
// Two modes exist. [ModeHardwired] counts, for every taxon pair, the
// hardwired clusters that separate them. [ModeShortestPath] uses the number
// of nodes on the shortest undirected path between two leaves, averaged over
// the input networks.
//
// Matrices are (N+1)x(N+1) with row and column 0 unused, so taxon ordinals
// from a [taxa.Index] address them directly.
package distance

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"gonum.org/v1/gonum/mat"

	"github.com/husonlab/dendroscope3-sub003/pkg/network"
	"github.com/husonlab/dendroscope3-sub003/pkg/taxa"
)

// ErrTooFewTaxa is returned when fewer than three real taxa are indexed.
// Callers take the trivial ordering instead of building a matrix.
var ErrTooFewTaxa = errors.New("fewer than three taxa")

// Mode selects how distances are derived.
type Mode int

const (
	ModeHardwired Mode = iota
	ModeShortestPath
)

func (m Mode) String() string {
	switch m {
	case ModeHardwired:
		return "hardwired"
	case ModeShortestPath:
		return "shortest-path"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Matrix is a symmetric taxon distance matrix.
type Matrix struct {
	// D holds the distances, indexed by taxon ordinal.
	D *mat.SymDense
	// Excluded lists ordinals of taxa not shared by every network. They
	// take part in the matrix but callers drop them from the final order.
	Excluded []int
}

// Size returns the number of taxa N.
func (m *Matrix) Size() int { return m.D.SymmetricDim() - 1 }

// At returns the distance between taxa i and j.
func (m *Matrix) At(i, j int) float64 { return m.D.At(i, j) }

// Build dispatches on mode.
func Build(mode Mode, idx *taxa.Index, nets ...*network.Network) (*Matrix, error) {
	switch mode {
	case ModeShortestPath:
		return ShortestPath(idx, nets...)
	default:
		return Hardwired(idx, nets...)
	}
}

func realTaxa(idx *taxa.Index) int {
	n := idx.Len()
	if idx.Outgroup() != 0 {
		n--
	}
	return n
}

// Hardwired builds the split matrix. Every node's set of descendant leaf
// labels is one cluster; distinct clusters of each network contribute +1 to
// every pair of taxa they separate. When the networks disagree on their taxa
// and at least three are shared, clusters are restricted to the shared taxa
// and the rest are reported in Matrix.Excluded. The sentinel taxon, if
// indexed, lies outside every cluster.
func Hardwired(idx *taxa.Index, nets ...*network.Network) (*Matrix, error) {
	if realTaxa(idx) <= 2 {
		return nil, ErrTooFewTaxa
	}
	size := idx.Len()
	allowed, excluded := sharedTaxa(idx, nets)
	d := mat.NewSymDense(size+1, nil)

	for _, n := range nets {
		seen := make(map[string]bool)
		for _, cluster := range clusters(n, idx, allowed) {
			key := cluster.String()
			if cluster.None() || seen[key] {
				continue
			}
			seen[key] = true
			for i, ok := cluster.NextSet(1); ok; i, ok = cluster.NextSet(i + 1) {
				for j := 1; j <= size; j++ {
					if !cluster.Test(uint(j)) {
						a, b := int(i), j
						d.SetSym(a, b, d.At(a, b)+1)
					}
				}
			}
		}
	}
	return &Matrix{D: d, Excluded: excluded}, nil
}

// sharedTaxa returns the ordinals usable for clusters and those excluded.
// Restriction only applies when at least three taxa are shared.
func sharedTaxa(idx *taxa.Index, nets []*network.Network) (*bitset.BitSet, []int) {
	all := bitset.New(uint(idx.Len() + 1))
	shared := bitset.New(uint(idx.Len() + 1))
	for i := 1; i <= idx.Len(); i++ {
		if i != idx.Outgroup() {
			all.Set(uint(i))
			shared.Set(uint(i))
		}
	}
	for _, n := range nets {
		present := bitset.New(uint(idx.Len() + 1))
		for _, label := range n.Taxa() {
			if i, ok := idx.Ordinal(label); ok {
				present.Set(uint(i))
			}
		}
		shared.InPlaceIntersection(present)
	}
	if shared.Count() < 3 || shared.Equal(all) {
		return all, nil
	}
	var excluded []int
	for i, ok := all.NextSet(0); ok; i, ok = all.NextSet(i + 1) {
		if !shared.Test(i) {
			excluded = append(excluded, int(i))
		}
	}
	return shared, excluded
}

// clusters returns the hardwired cluster of every reachable node of n,
// restricted to allowed, indexed by node.
func clusters(n *network.Network, idx *taxa.Index, allowed *bitset.BitSet) []*bitset.BitSet {
	below := make([]*bitset.BitSet, n.NodeCount())
	var out []*bitset.BitSet
	for _, v := range n.Postorder() {
		b := bitset.New(uint(idx.Len() + 1))
		if n.IsLeaf(v) {
			if i, ok := idx.Ordinal(n.Label(v)); ok && allowed.Test(uint(i)) {
				b.Set(uint(i))
			}
		}
		for _, c := range n.Children(v) {
			b.InPlaceUnion(below[c])
		}
		below[v] = b
		out = append(out, b)
	}
	return out
}
