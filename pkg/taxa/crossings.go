package taxa

import "slices"

// Reference holds a reference taxon order and reusable buffers for scoring
// many candidate orders against it. This matters for the pairwise refiner,
// which scores one candidate per insertion position.
//
// A Reference is not safe for concurrent use.
type Reference struct {
	pos map[string]int
	ft  []int
	seq []int
}

// NewReference prepares order for repeated crossing counts. Duplicate labels
// keep their first position.
func NewReference(order []string) *Reference {
	pos := make(map[string]int, len(order))
	for i, label := range order {
		if _, ok := pos[label]; !ok {
			pos[label] = i
		}
	}
	return &Reference{pos: pos, ft: make([]int, len(order)+1)}
}

// Crossings counts the pairs of taxa that occur in both seq and the
// reference but in opposite relative order. Taxa missing from either side
// are ignored; equal positions never count.
//
// Two connectors (i1,j1) and (i2,j2) cross if and only if
//
//	i1 < i2 AND j1 > j2
//
// so this is an inversion count, done with a Fenwick tree in O(n log n).
func (r *Reference) Crossings(seq []string) int {
	r.seq = r.seq[:0]
	for _, label := range seq {
		if p, ok := r.pos[label]; ok {
			r.seq = append(r.seq, p)
		}
	}
	if len(r.seq) < 2 {
		return 0
	}
	clear(r.ft)
	crossings := 0
	for seen, p := range r.seq {
		lessOrEqual := 0
		for q := p + 1; q > 0; q -= q & (-q) {
			lessOrEqual += r.ft[q]
		}
		crossings += seen - lessOrEqual
		for q := p + 1; q < len(r.ft); q += q & (-q) {
			r.ft[q]++
		}
	}
	return crossings
}

// CrossingCount returns the number of taxon pairs ordered differently in a
// and b, considering only taxa present in both.
//
// CrossingCount(s, s) is 0 and CrossingCount(s, reverse(s)) is n(n-1)/2 for
// a sequence of n distinct taxa.
func CrossingCount(a, b []string) int {
	return NewReference(b).Crossings(a)
}

// ManyToManyCrossingCount generalizes [CrossingCount] to a correspondence
// that links each taxon of a to a set of taxa of b, as for host and parasite
// trees. Every pair (x, y) with y in corr[x] present in b is a connector;
// the result is the number of crossing connector pairs. Connectors sharing
// an endpoint do not cross. A nil correspondence links each taxon to itself.
func ManyToManyCrossingCount(a, b []string, corr map[string][]string) int {
	posB := make(map[string]int, len(b))
	for j, label := range b {
		if _, ok := posB[label]; !ok {
			posB[label] = j
		}
	}

	type line struct{ i, j int }
	var lines []line
	for i, x := range a {
		targets := corr[x]
		if corr == nil {
			targets = []string{x}
		}
		for _, y := range targets {
			if j, ok := posB[y]; ok {
				lines = append(lines, line{i, j})
			}
		}
	}
	if len(lines) < 2 {
		return 0
	}
	slices.SortFunc(lines, func(p, q line) int {
		if p.i != q.i {
			return p.i - q.i
		}
		return p.j - q.j
	})

	fenwick := make([]int, len(b)+1)
	crossings, total := 0, 0
	for start := 0; start < len(lines); {
		end := start
		for end < len(lines) && lines[end].i == lines[start].i {
			end++
		}
		// Query the whole group before updating so lines from the same
		// source never count against each other.
		for _, l := range lines[start:end] {
			lessOrEqual := 0
			for q := l.j + 1; q > 0; q -= q & (-q) {
				lessOrEqual += fenwick[q]
			}
			crossings += total - lessOrEqual
		}
		for _, l := range lines[start:end] {
			total++
			for q := l.j + 1; q < len(fenwick); q += q & (-q) {
				fenwick[q]++
			}
		}
		start = end
	}
	return crossings
}
