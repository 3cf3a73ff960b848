// Package circular computes circular taxon orderings from a distance matrix
// and cuts them into linear orders.
//
// [NeighborNet] implements the agglomerative cycle construction of the
// NeighborNet method: clusters of at most two nodes are selected with a
// Q criterion, the closest nodes of the chosen clusters are joined, and
// whenever three nodes form a chain they are reduced to two new nodes. The
// reductions are then expanded in reverse to yield a cycle in which taxa
// that are close in the matrix tend to be adjacent.
package circular

import (
	"context"
	"math"

	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/mat"

	"github.com/husonlab/dendroscope3-sub003/pkg/errors"
)

// Options configures NeighborNet. The zero value is usable.
type Options struct {
	// Progress, if set, is called before every agglomeration step and once
	// at the end with the number of 3->2 reductions done and the total
	// number needed, N-3.
	Progress func(step, total int)

	// Logger receives debug output. Nil means log.Default().
	Logger *log.Logger
}

// reduction records one 3->2 step: chain x-y-z replaced by u-v.
type reduction struct {
	x, y, z, u, v int
}

type agglomerator struct {
	d      *mat.SymDense
	nbr    []int // partner in a two-node cluster, or -1
	active []int
	next   int
	stack  []reduction
}

// NeighborNet returns a circular ordering of the taxa 1..N of d, which must
// be an (N+1)x(N+1) symmetric matrix with row and column 0 unused. The
// result is a permutation of 1..N.
//
// The context is polled once per step. A cancelled context aborts with an
// error coded [errors.ErrCodeCancelled] wrapping ctx.Err().
func NeighborNet(ctx context.Context, d mat.Symmetric, opts *Options) ([]int, error) {
	if opts == nil {
		opts = &Options{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	n := d.SymmetricDim() - 1
	if n <= 3 {
		cycle := make([]int, max(n, 0))
		for i := range cycle {
			cycle[i] = i + 1
		}
		return cycle, nil
	}

	a := newAgglomerator(d, n)
	total := n - 3
	for len(a.active) > 3 {
		if err := ctx.Err(); err != nil {
			return nil, errors.Cancelled(err, "circular ordering cancelled after %d of %d reductions", len(a.stack), total)
		}
		if opts.Progress != nil {
			opts.Progress(len(a.stack), total)
		}
		if a.finalPairs() {
			break
		}
		a.join()
	}
	if opts.Progress != nil {
		opts.Progress(total, total)
	}
	logger.Debug("neighbor-net agglomeration done", "taxa", n, "reductions", len(a.stack))
	return a.expand(), nil
}

func newAgglomerator(d mat.Symmetric, n int) *agglomerator {
	size := 3*n + 1
	a := &agglomerator{
		d:      mat.NewSymDense(size, nil),
		nbr:    make([]int, size),
		active: make([]int, 0, n),
		next:   n + 1,
	}
	for i := 1; i <= n; i++ {
		for j := i; j <= n; j++ {
			a.d.SetSym(i, j, d.At(i, j))
		}
		a.active = append(a.active, i)
	}
	for i := range a.nbr {
		a.nbr[i] = -1
	}
	return a
}

// clusters returns one representative per cluster, in active-list order.
func (a *agglomerator) clusters() []int {
	var reps []int
	for _, p := range a.active {
		if a.nbr[p] < 0 || a.nbr[p] > p {
			reps = append(reps, p)
		}
	}
	return reps
}

func (a *agglomerator) members(p int) []int {
	if a.nbr[p] < 0 {
		return []int{p}
	}
	return []int{p, a.nbr[p]}
}

// clusterDist is the mean distance between the members of two clusters.
func (a *agglomerator) clusterDist(p, q int) float64 {
	mp, mq := a.members(p), a.members(q)
	sum := 0.0
	for _, x := range mp {
		for _, y := range mq {
			sum += a.d.At(x, y)
		}
	}
	return sum / float64(len(mp)*len(mq))
}

// finalPairs handles four active nodes forming two pairs: the pairs are
// chained in the orientation with the smaller adjacent distances.
func (a *agglomerator) finalPairs() bool {
	reps := a.clusters()
	if len(a.active) != 4 || len(reps) != 2 {
		return false
	}
	p, q := reps[0], reps[1]
	pn, qn := a.nbr[p], a.nbr[q]
	if a.d.At(p, q)+a.d.At(pn, qn) < a.d.At(p, qn)+a.d.At(pn, q) {
		a.reduce(p, q, qn)
	} else {
		a.reduce(p, qn, q)
	}
	return true
}

// join performs one selection and agglomeration step.
func (a *agglomerator) join() {
	reps := a.clusters()
	m := len(reps)

	dist := make([][]float64, m)
	sums := make([]float64, m)
	for i := range reps {
		dist[i] = make([]float64, m)
	}
	for i := range reps {
		for j := i + 1; j < m; j++ {
			dij := a.clusterDist(reps[i], reps[j])
			dist[i][j], dist[j][i] = dij, dij
			sums[i] += dij
			sums[j] += dij
		}
	}

	bi, bj, best := -1, -1, math.Inf(1)
	for i := range reps {
		for j := i + 1; j < m; j++ {
			q := float64(m-2)*dist[i][j] - sums[i] - sums[j]
			if q < best {
				bi, bj, best = i, j, q
			}
		}
	}
	cx, cy := reps[bi], reps[bj]

	x, y := a.selectNodes(cx, cy, m)
	switch xn, yn := a.nbr[x], a.nbr[y]; {
	case xn < 0 && yn < 0:
		a.nbr[x], a.nbr[y] = y, x
	case xn < 0:
		a.reduce(x, y, yn)
	case yn < 0:
		a.reduce(y, x, xn)
	default:
		u, v := a.reduce(xn, x, y)
		a.reduce(u, v, yn)
	}
}

// selectNodes picks one node of each chosen cluster using the node-level
// criterion, in which the members of the two chosen clusters count
// individually and every other cluster counts as its mean.
func (a *agglomerator) selectNodes(cx, cy, clusters int) (int, int) {
	inChosen := func(p int) bool {
		return p == cx || p == cy || p == a.nbr[cx] || p == a.nbr[cy]
	}
	rx := func(z int) float64 {
		sum := 0.0
		for _, p := range a.active {
			if inChosen(p) || a.nbr[p] < 0 {
				sum += a.d.At(z, p)
			} else {
				sum += a.d.At(z, p) / 2
			}
		}
		return sum
	}

	mx, my := a.members(cx), a.members(cy)
	mhat := float64(clusters + len(mx) + len(my) - 2)
	bx, by, best := -1, -1, math.Inf(1)
	for _, p := range mx {
		rp := rx(p)
		for _, q := range my {
			qpq := (mhat-2)*a.d.At(p, q) - rp - rx(q)
			if qpq < best {
				bx, by, best = p, q, qpq
			}
		}
	}
	return bx, by
}

// reduce replaces the chain x-y-z by two new nodes u-v and returns them.
func (a *agglomerator) reduce(x, y, z int) (int, int) {
	u, v := a.next, a.next+1
	a.next += 2

	for _, k := range a.active {
		if k == x || k == y || k == z {
			continue
		}
		a.d.SetSym(u, k, 2.0/3*a.d.At(x, k)+1.0/3*a.d.At(y, k))
		a.d.SetSym(v, k, 1.0/3*a.d.At(y, k)+2.0/3*a.d.At(z, k))
	}
	a.d.SetSym(u, v, (a.d.At(x, y)+a.d.At(x, z)+a.d.At(y, z))/3)

	kept := a.active[:0]
	for _, k := range a.active {
		if k != x && k != y && k != z {
			kept = append(kept, k)
		}
	}
	a.active = append(kept, u, v)
	a.nbr[x], a.nbr[y], a.nbr[z] = -1, -1, -1
	a.nbr[u], a.nbr[v] = v, u
	a.stack = append(a.stack, reduction{x: x, y: y, z: z, u: u, v: v})
	return u, v
}

// expand undoes the reductions in reverse order, starting from the cycle of
// the remaining active nodes.
func (a *agglomerator) expand() []int {
	cycle := append([]int(nil), a.active...)
	for i := len(a.stack) - 1; i >= 0; i-- {
		r := a.stack[i]
		cycle = RotateToFront(cycle, r.u)
		switch {
		case len(cycle) > 1 && cycle[1] == r.v:
			cycle = append([]int{r.x, r.y, r.z}, cycle[2:]...)
		case cycle[len(cycle)-1] == r.v:
			mid := cycle[1 : len(cycle)-1]
			next := make([]int, 0, len(cycle)+1)
			next = append(next, r.x)
			next = append(next, mid...)
			cycle = append(next, r.z, r.y)
		default:
			panic("circular: reduced nodes not adjacent in cycle")
		}
	}
	return cycle
}
