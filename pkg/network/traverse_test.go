package network

import (
	"reflect"
	"testing"
)

func TestPreorder(t *testing.T) {
	n, ids := hybrid(t, false)
	want := []NodeID{ids["r"], ids["a"], ids["A"], ids["h"], ids["C"], ids["b"], ids["B"]}
	if got := n.Preorder(); !reflect.DeepEqual(got, want) {
		t.Errorf("Preorder() = %v, want %v", got, want)
	}
}

func TestLeafOrderWithoutGuide(t *testing.T) {
	n, _ := hybrid(t, false)
	if got := n.LeafOrder(); !reflect.DeepEqual(got, []string{"A", "C", "B"}) {
		t.Errorf("LeafOrder() = %v, want [A C B]", got)
	}
}

func TestGuidePostorder(t *testing.T) {
	n, ids := hybrid(t, false)
	if err := BuildGuideTree(n); err != nil {
		t.Fatal(err)
	}
	want := []NodeID{ids["A"], ids["a"], ids["B"], ids["b"], ids["C"], ids["h"], ids["r"]}
	if got := n.GuidePostorder(ids["r"]); !reflect.DeepEqual(got, want) {
		t.Errorf("GuidePostorder() = %v, want %v", got, want)
	}
}

func TestDeepChainNoRecursion(t *testing.T) {
	n := New()
	prev := n.AddNode("")
	for i := 0; i < 200000; i++ {
		next := n.AddNode("")
		_, _ = n.AddEdge(prev, next)
		prev = next
	}
	_ = n.SetLabel(prev, "tip")
	if err := n.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if got := n.LeafOrder(); !reflect.DeepEqual(got, []string{"tip"}) {
		t.Errorf("LeafOrder() = %v, want [tip]", got)
	}
}
