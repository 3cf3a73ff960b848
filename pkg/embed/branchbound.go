package embed

import (
	"context"
	"math"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/husonlab/dendroscope3-sub003/pkg/errors"
	"github.com/husonlab/dendroscope3-sub003/pkg/network"
	"github.com/husonlab/dendroscope3-sub003/pkg/observability"
)

// splitBonus scales the reward for an element whose attraction reaches
// both sides of it.
const splitBonus = 10

// branchAndBound implements Algorithm2009. Guide nodes are visited top-down
// and the children of each are ordered by a branch-and-bound search over
// the attraction matrix.
type branchAndBound struct {
	logger   *log.Logger
	maxCalls int
}

func (b *branchAndBound) Name() string { return Algorithm2009 }

func (b *branchAndBound) Apply(ctx context.Context, n *network.Network) error {
	return observe(ctx, Algorithm2009, n, func() error {
		_, ok, err := prepare(n)
		if err != nil || !ok {
			return err
		}
		l := newLayout(n)
		edges := reticulateEdges(n, l)
		stack := []network.NodeID{n.Root()}
		for len(stack) > 0 {
			if err := ctx.Err(); err != nil {
				return errors.Cancelled(err, "%s cancelled", Algorithm2009)
			}
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			children := n.GuideChildren(v)
			if len(children) > 1 {
				a := buildAttraction(l, v, children, edges)
				leaves := make([]int, len(children)+2)
				for i, c := range children {
					leaves[i+1] = l.leaves[c]
				}
				s := &search{attr: a, leaves: leaves, maxCalls: b.maxCalls}
				p := s.run()
				if s.calls > b.maxCalls {
					observability.Search().OnBudgetExceeded(ctx, len(children), s.calls, s.stopped)
					b.logger.Debug("branch-and-bound budget exceeded", "node", v, "children", len(children), "calls", s.calls, "hardStop", s.stopped)
				}
				if !slices.Equal(p, identity(len(children))) {
					reordered := make([]network.NodeID, len(children))
					for i, e := range p {
						reordered[i] = children[e-1]
					}
					if err := n.SetGuideChildren(v, reordered); err != nil {
						panic(err)
					}
					l.refresh(n)
				}
				children = n.GuideChildren(v)
			}
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, children[i])
			}
		}
		return nil
	})
}

func identity(k int) []int {
	p := make([]int, k)
	for i := range p {
		p[i] = i + 1
	}
	return p
}

// search is the per-node branch-and-bound state.
type search struct {
	attr     *attraction
	leaves   []int // leaf count per element, 0 for the sentinels
	maxCalls int

	calls   int
	stopped bool
}

// place returns the cost of appending element p after the placed prefix:
// every attraction to a placed element is charged by the squared number of
// leaves strictly between them, and a child whose attraction reaches both
// sides earns a bonus of splitBonus times its total attraction.
func (s *search) place(placed []int, p int) int {
	cost, between, left := 0, 0, 0
	for i := len(placed) - 1; i >= 0; i-- {
		e := placed[i]
		w := s.attr.at(e, p)
		cost += between * between * w
		left += w
		between += s.leaves[e]
	}
	if p != before && p != s.attr.after() {
		if total := s.attr.total(p); left > 0 && left < total {
			cost -= splitBonus * total
		}
	}
	return cost
}

// run returns the best permutation of the children 1..k. The identity is
// the first complete candidate and is only replaced by strictly cheaper
// ones.
func (s *search) run() []int {
	k := s.attr.k
	best := math.MaxInt
	var bestPerm []int

	used := make([]bool, k+1)
	placed := make([]int, 1, k+2)
	placed[0] = before
	cost := make([]int, k+1)
	next := make([]int, k+1)
	next[0] = 1

	// remaining bounds the bonus the unplaced children can still earn.
	remaining := 0
	for c := 1; c <= k; c++ {
		remaining += splitBonus * s.attr.total(c)
	}

	d := 0
	for {
		if d == k {
			if total := cost[k] + s.place(placed, s.attr.after()); total < best {
				best = total
				bestPerm = slices.Clone(placed[1:])
			}
			if d == 0 {
				break
			}
			d = s.pop(&placed, used, &remaining, d)
			continue
		}

		c := next[d]
		for c <= k && used[c] {
			c++
		}
		if c > k {
			if d == 0 {
				break
			}
			d = s.pop(&placed, used, &remaining, d)
			continue
		}
		next[d] = c + 1

		s.calls++
		if s.calls > 4*s.maxCalls {
			s.stopped = true
			break
		}
		nc := cost[d] + s.place(placed, c)
		bound := nc - (remaining - splitBonus*s.attr.total(c))
		if bound >= best || (s.calls > s.maxCalls && nc >= best) {
			continue
		}
		used[c] = true
		remaining -= splitBonus * s.attr.total(c)
		placed = append(placed, c)
		cost[d+1] = nc
		next[d+1] = 1
		d++
	}
	if bestPerm == nil {
		return identity(k)
	}
	return bestPerm
}

// pop removes the last placed child and returns the new depth.
func (s *search) pop(placed *[]int, used []bool, remaining *int, d int) int {
	last := (*placed)[len(*placed)-1]
	*placed = (*placed)[:len(*placed)-1]
	used[last] = false
	*remaining += splitBonus * s.attr.total(last)
	return d - 1
}

// cost evaluates a complete permutation of the children, for tests and
// diagnostics.
func (s *search) cost(perm []int) int {
	placed := []int{before}
	total := 0
	for _, p := range append(slices.Clone(perm), s.attr.after()) {
		total += s.place(placed, p)
		placed = append(placed, p)
	}
	return total
}
