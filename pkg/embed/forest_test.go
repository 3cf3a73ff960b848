package embed

import (
	"slices"
	"testing"

	"github.com/husonlab/dendroscope3-sub003/pkg/network"
)

func TestDecompose(t *testing.T) {
	n, ids := twoReticulations(t)
	if err := network.BuildGuideTree(n); err != nil {
		t.Fatal(err)
	}
	pieces := decompose(n)
	if len(pieces) != 3 {
		t.Fatalf("decompose() returned %d pieces, want 3", len(pieces))
	}
	want := []struct {
		top      string
		leaves   []string
		children []int
	}{
		{"r", []string{"P", "Q", "S"}, []int{1, 2}},
		{"h1", []string{"H1"}, nil},
		{"h2", []string{"H2"}, nil},
	}
	for i, w := range want {
		p := pieces[i]
		if p.top != ids[w.top] {
			t.Errorf("piece %d top = %d, want %s", i, p.top, w.top)
		}
		if !slices.Equal(p.leaves, w.leaves) {
			t.Errorf("piece %d leaves = %v, want %v", i, p.leaves, w.leaves)
		}
		if !slices.Equal(p.children, w.children) {
			t.Errorf("piece %d children = %v, want %v", i, p.children, w.children)
		}
	}
}

func TestDecomposeEmptyPiece(t *testing.T) {
	n, ids := build(t,
		"r>a", "r>b", "a>A", "b>B",
		"a~h1", "b~h1", "h1~h2", "b~h2", "h2>X",
	)
	if err := network.BuildGuideTree(n); err != nil {
		t.Fatal(err)
	}
	pieces := decompose(n)
	var h1 *piece
	for i := range pieces {
		if pieces[i].top == ids["h1"] {
			h1 = &pieces[i]
		}
	}
	if h1 == nil {
		t.Fatalf("no piece for h1 in %v", pieces)
	}
	if !slices.Equal(h1.leaves, []string{"X"}) {
		t.Errorf("h1 leaves = %v, want the leaves of h2", h1.leaves)
	}
}

func TestDecomposeRootless(t *testing.T) {
	n := network.New()
	a, b := n.AddNode("A"), n.AddNode("B")
	_, _ = n.AddEdge(a, b)
	_, _ = n.AddEdge(b, a)
	if got := decompose(n); got != nil {
		t.Errorf("decompose() = %v, want nil", got)
	}
}
