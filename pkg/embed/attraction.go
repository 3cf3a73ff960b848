package embed

import "github.com/husonlab/dendroscope3-sub003/pkg/network"

// Element indices of an attraction matrix for k children: before is 0,
// children are 1..k, after is k+1.
const before = 0

// attraction is a symmetric count matrix over the children of one guide
// node plus the before and after sentinels. Entry (i, j) counts reticulate
// edges with one endpoint below element i and the other below element j.
type attraction struct {
	k     int
	count [][]int
}

func newAttraction(k int) *attraction {
	a := &attraction{k: k, count: make([][]int, k+2)}
	for i := range a.count {
		a.count[i] = make([]int, k+2)
	}
	return a
}

func (a *attraction) after() int { return a.k + 1 }

func (a *attraction) add(i, j int) {
	if i == j {
		return
	}
	a.count[i][j]++
	a.count[j][i]++
}

func (a *attraction) at(i, j int) int { return a.count[i][j] }

// total returns the summed attraction of element i.
func (a *attraction) total(i int) int {
	sum := 0
	for _, c := range a.count[i] {
		sum += c
	}
	return sum
}

// buildAttraction counts the reticulate edges touching the guide subtree of
// v. Endpoints outside the subtree go to the before or after sentinel
// according to the current drawing order of v's ancestors.
func buildAttraction(l *layout, v network.NodeID, children []network.NodeID, edges []network.Edge) *attraction {
	a := newAttraction(len(children))
	index := make(map[network.NodeID]int, len(children))
	for i, c := range children {
		index[c] = i + 1
	}
	element := func(x network.NodeID) (int, bool) {
		if !l.inSubtree(v, x) {
			if l.before(v, x) {
				return before, false
			}
			return a.after(), false
		}
		c := l.childContaining(children, x)
		if c == network.NoNode {
			return -1, true
		}
		return index[c], true
	}
	for _, e := range edges {
		i, inI := element(e.From)
		j, inJ := element(e.To)
		if i < 0 || j < 0 || (!inI && !inJ) {
			continue
		}
		a.add(i, j)
	}
	return a
}
