package distance

import (
	"errors"
	"reflect"
	"testing"

	"github.com/husonlab/dendroscope3-sub003/pkg/network"
	"github.com/husonlab/dendroscope3-sub003/pkg/taxa"
)

// quartet builds ((A,B),(C,D)).
func quartet(labels ...string) *network.Network {
	n := network.New()
	r := n.AddNode("")
	for i := 0; i+1 < len(labels); i += 2 {
		c := n.AddNode("")
		_, _ = n.AddEdge(r, c)
		_, _ = n.AddEdge(c, n.AddNode(labels[i]))
		_, _ = n.AddEdge(c, n.AddNode(labels[i+1]))
	}
	return n
}

func ordinal(t *testing.T, idx *taxa.Index, label string) int {
	t.Helper()
	i, ok := idx.Ordinal(label)
	if !ok {
		t.Fatalf("taxon %q not indexed", label)
	}
	return i
}

func TestHardwiredSeparatesSisters(t *testing.T) {
	n := quartet("A", "B", "C", "D")
	idx := taxa.FromNetworks(n)
	idx.AddOutgroup()
	m, err := Hardwired(idx, n)
	if err != nil {
		t.Fatal(err)
	}
	if m.Size() != 5 {
		t.Fatalf("Size() = %d, want 5", m.Size())
	}
	a, b, c := ordinal(t, idx, "A"), ordinal(t, idx, "B"), ordinal(t, idx, "C")
	// Sisters are split only by their two singleton clusters; A and C
	// additionally by both cherries.
	if got := m.At(a, b); got != 2 {
		t.Errorf("d(A,B) = %v, want 2", got)
	}
	if got := m.At(a, c); got != 4 {
		t.Errorf("d(A,C) = %v, want 4", got)
	}
	if m.At(a, b) != m.At(b, a) {
		t.Error("matrix not symmetric")
	}
	if len(m.Excluded) != 0 {
		t.Errorf("Excluded = %v, want none", m.Excluded)
	}
}

func TestHardwiredRestrictsToSharedTaxa(t *testing.T) {
	n1 := quartet("A", "B", "C", "D")
	n2 := quartet("A", "B", "C", "E")
	idx := taxa.FromNetworks(n1, n2)
	m, err := Hardwired(idx, n1, n2)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{ordinal(t, idx, "D"), ordinal(t, idx, "E")}
	if !reflect.DeepEqual(m.Excluded, want) {
		t.Errorf("Excluded = %v, want %v", m.Excluded, want)
	}
}

func TestTooFewTaxa(t *testing.T) {
	n := quartet("A", "B")
	idx := taxa.FromNetworks(n)
	idx.AddOutgroup()
	for _, mode := range []Mode{ModeHardwired, ModeShortestPath} {
		if _, err := Build(mode, idx, n); !errors.Is(err, ErrTooFewTaxa) {
			t.Errorf("Build(%v) error = %v, want %v", mode, err, ErrTooFewTaxa)
		}
	}
}

func TestShortestPath(t *testing.T) {
	n := quartet("A", "B", "C", "D")
	idx := taxa.FromNetworks(n)
	out := idx.AddOutgroup()
	m, err := ShortestPath(idx, n)
	if err != nil {
		t.Fatal(err)
	}
	a, b, c := ordinal(t, idx, "A"), ordinal(t, idx, "B"), ordinal(t, idx, "C")
	tests := []struct {
		name string
		i, j int
		want float64
	}{
		{"cherry", a, b, 3},
		{"across root", a, c, 5},
		{"to outgroup", a, out, 4},
	}
	for _, tt := range tests {
		if got := m.At(tt.i, tt.j); got != tt.want {
			t.Errorf("%s: d = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestShortestPathAverages(t *testing.T) {
	n1 := quartet("A", "B", "C", "D")
	n2 := quartet("A", "C", "B", "D")
	idx := taxa.FromNetworks(n1, n2)
	m, err := ShortestPath(idx, n1, n2)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.At(ordinal(t, idx, "A"), ordinal(t, idx, "B")); got != 4 {
		t.Errorf("d(A,B) = %v, want (3+5)/2 = 4", got)
	}
}
