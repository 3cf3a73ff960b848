// Package taxa maps taxon labels to dense ordinals and scores taxon orders
// against each other by counting crossing connector lines.
package taxa

import "github.com/husonlab/dendroscope3-sub003/pkg/network"

// OutgroupLabel is the synthetic sentinel taxon injected to cut a circular
// ordering into a linear one. It never appears in a returned order.
const OutgroupLabel = "\x00outgroup"

// Index is a bijection between taxon labels and ordinals 1..N.
// Ordinal 0 is unused so ordinals can index (N+1)-sized matrices directly.
type Index struct {
	labels   []string
	ordinals map[string]int
	outgroup int
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{labels: []string{""}, ordinals: make(map[string]int)}
}

// FromNetworks indexes the labeled leaves of the given networks, in network
// order and then node order.
func FromNetworks(nets ...*network.Network) *Index {
	idx := NewIndex()
	for _, n := range nets {
		for _, label := range n.Taxa() {
			idx.Add(label)
		}
	}
	return idx
}

// Add returns the ordinal of label, assigning the next free one if the label
// is new.
func (x *Index) Add(label string) int {
	if i, ok := x.ordinals[label]; ok {
		return i
	}
	x.labels = append(x.labels, label)
	i := len(x.labels) - 1
	x.ordinals[label] = i
	return i
}

// AddOutgroup adds the sentinel taxon and returns its ordinal.
func (x *Index) AddOutgroup() int {
	x.outgroup = x.Add(OutgroupLabel)
	return x.outgroup
}

// Outgroup returns the ordinal of the sentinel taxon, or 0 if none was added.
func (x *Index) Outgroup() int { return x.outgroup }

// Ordinal returns the ordinal of label and whether it is indexed.
func (x *Index) Ordinal(label string) (int, bool) {
	i, ok := x.ordinals[label]
	return i, ok
}

// Label returns the label with ordinal i, or "" if i is out of range.
func (x *Index) Label(i int) string {
	if i <= 0 || i >= len(x.labels) {
		return ""
	}
	return x.labels[i]
}

// Len returns the number of indexed taxa, including the sentinel.
func (x *Index) Len() int { return len(x.labels) - 1 }

// Labels maps ordinals to labels, skipping the sentinel and unknown ordinals.
func (x *Index) Labels(ordinals []int) []string {
	out := make([]string, 0, len(ordinals))
	for _, i := range ordinals {
		if i == x.outgroup && i != 0 {
			continue
		}
		if label := x.Label(i); label != "" {
			out = append(out, label)
		}
	}
	return out
}
