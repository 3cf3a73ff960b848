package embed

import (
	"context"
	"slices"
	"testing"

	"github.com/husonlab/dendroscope3-sub003/internal/perm"
	"github.com/husonlab/dendroscope3-sub003/pkg/errors"
	"github.com/husonlab/dendroscope3-sub003/pkg/network"
)

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		if got := Lookup(name, nil).Name(); got != name {
			t.Errorf("Lookup(%q).Name() = %q", name, got)
		}
	}
	if got := Lookup("NoSuchStrategy", nil).Name(); got != Unoptimized {
		t.Errorf("unknown name fell back to %q, want %q", got, Unoptimized)
	}
}

func TestNames(t *testing.T) {
	want := []string{Algorithm2008, Algorithm2009, Algorithm2010, Algorithm2010Dist, AlgorithmLSA, Unoptimized}
	if got := Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestOptionsDefaults(t *testing.T) {
	var nilOpts *Options
	o := nilOpts.withDefaults()
	if o.Logger == nil || o.MaxCalls != DefaultMaxCalls || o.LSAPasses != DefaultLSAPasses {
		t.Errorf("withDefaults() = %+v", o)
	}
	o = (&Options{MaxCalls: 7, LSAPasses: 1}).withDefaults()
	if o.MaxCalls != 7 || o.LSAPasses != 1 {
		t.Errorf("explicit values overridden: %+v", o)
	}
}

func TestStrategiesClearTrees(t *testing.T) {
	ctx := context.Background()
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			e := Lookup(name, nil)
			for _, p := range perm.Generate(4, 0) {
				n, ids := build(t, "r>A", "r>B", "r>C", "r>D")
				if err := n.SetOutEdgeOrder(ids["r"], perm.Apply(n.OutEdges(ids["r"]), p)); err != nil {
					t.Fatal(err)
				}
				if err := n.SetGuideChildren(ids["r"], []network.NodeID{ids["A"]}); err != nil {
					t.Fatal(err)
				}
				if err := e.Apply(ctx, n); err != nil {
					t.Fatalf("Apply() = %v", err)
				}
				if n.HasGuide() {
					t.Fatalf("permutation %v: guide map not cleared: %v", p, n.Guide())
				}
			}
		})
	}
}

func TestStrategiesKeepGuideChildSets(t *testing.T) {
	ctx := context.Background()
	networks := map[string]func(t *testing.T) (*network.Network, map[string]network.NodeID){
		"two reticulations": twoReticulations,
		"transfer": func(t *testing.T) (*network.Network, map[string]network.NodeID) {
			return build(t, "r>a", "r>b", "r>c", "a>A", "a=h", "c~h", "b>B", "c>C", "h>H")
		},
		"nested": func(t *testing.T) (*network.Network, map[string]network.NodeID) {
			return build(t,
				"r>x", "r>y", "x>a", "x>b", "a>A", "b>B", "a~h", "b~h", "h>H",
				"y~g", "x~g", "y>Y", "g>G",
			)
		},
	}
	for netName, mk := range networks {
		for _, name := range Names() {
			t.Run(netName+"/"+name, func(t *testing.T) {
				n, _ := mk(t)
				baseline := n.Clone()
				if err := network.BuildGuideTree(baseline); err != nil {
					t.Fatal(err)
				}
				labels := slices.Sorted(slices.Values(n.Taxa()))

				if err := Lookup(name, nil).Apply(ctx, n); err != nil {
					t.Fatalf("Apply() = %v", err)
				}
				got, want := guideSets(n), guideSets(baseline)
				if len(got) != len(want) {
					t.Fatalf("guide has %d entries, want %d", len(got), len(want))
				}
				for v, children := range want {
					if !slices.Equal(got[v], children) {
						t.Errorf("guide children of %d = %v, want %v", v, got[v], children)
					}
				}
				if leaves := slices.Sorted(slices.Values(n.LeafOrder())); !slices.Equal(leaves, labels) {
					t.Errorf("LeafOrder() = %v, want a permutation of %v", n.LeafOrder(), labels)
				}
			})
		}
	}
}

func TestStrategiesDeterministic(t *testing.T) {
	ctx := context.Background()
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			n, _ := twoReticulations(t)
			a, b := n.Clone(), n.Clone()
			for _, c := range []*network.Network{a, b} {
				if err := Lookup(name, nil).Apply(ctx, c); err != nil {
					t.Fatalf("Apply() = %v", err)
				}
			}
			if !slices.Equal(a.LeafOrder(), b.LeafOrder()) {
				t.Errorf("leaf orders differ: %v vs %v", a.LeafOrder(), b.LeafOrder())
			}
			ga, gb := a.Guide(), b.Guide()
			for v, children := range ga {
				if !slices.Equal(children, gb[v]) {
					t.Errorf("guide children of %d differ: %v vs %v", v, children, gb[v])
				}
			}

			// Reapplying after a guide rebuild must not depend on the
			// out-edge order left behind by the first run.
			if err := network.BuildGuideTree(a); err != nil {
				t.Fatal(err)
			}
			if err := Lookup(name, nil).Apply(ctx, a); err != nil {
				t.Fatalf("second Apply() = %v", err)
			}
			if !slices.Equal(a.LeafOrder(), b.LeafOrder()) {
				t.Errorf("leaf order after reapply = %v, want %v", a.LeafOrder(), b.LeafOrder())
			}
			ga = a.Guide()
			for v, children := range gb {
				if !slices.Equal(ga[v], children) {
					t.Errorf("guide children of %d after reapply = %v, want %v", v, ga[v], children)
				}
			}
		})
	}
}

func TestStrategiesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, name := range []string{Algorithm2008, Algorithm2009, Algorithm2010, Algorithm2010Dist, AlgorithmLSA} {
		t.Run(name, func(t *testing.T) {
			n, _ := twoReticulations(t)
			err := Lookup(name, nil).Apply(ctx, n)
			if !errors.IsCancelled(err) {
				t.Errorf("Apply() = %v, want cancelled", err)
			}
		})
	}
	t.Run("tanglegram", func(t *testing.T) {
		a := caterpillar(t, "A", "B", "C", "D")
		b := caterpillar(t, "D", "C", "B", "A")
		res, err := NewTanglegram(nil).Apply(ctx, []*network.Network{a, b})
		if !errors.IsCancelled(err) {
			t.Errorf("Apply() = %v, want cancelled", err)
		}
		if res.Score != -1 {
			t.Errorf("Score = %d, want -1", res.Score)
		}
	})
}

func TestUnoptimizedReticulate(t *testing.T) {
	n, ids := twoReticulations(t)
	if err := Lookup(Unoptimized, nil).Apply(context.Background(), n); err != nil {
		t.Fatal(err)
	}
	got := names(ids, n.GuideChildren(ids["r"]))
	want := []string{"p", "Q", "s", "h1", "h2"}
	if !slices.Equal(got, want) {
		t.Errorf("guide children of root = %v, want %v", got, want)
	}
}
