package network_test

import (
	"fmt"

	"github.com/husonlab/dendroscope3-sub003/pkg/network"
)

func ExampleBuildGuideTree() {
	// ((A,#H1),(#H1,B)) with H1 above leaf C
	n := network.New()
	r := n.AddNode("")
	a := n.AddNode("")
	b := n.AddNode("")
	h := n.AddNode("")
	_, _ = n.AddEdge(r, a)
	_, _ = n.AddEdge(r, b)
	_, _ = n.AddEdge(a, n.AddNode("A"))
	_, _ = n.AddSpecialEdge(a, h, 0)
	_, _ = n.AddSpecialEdge(b, h, 0)
	_, _ = n.AddEdge(b, n.AddNode("B"))
	_, _ = n.AddEdge(h, n.AddNode("C"))

	fmt.Println("Before:", n.LeafOrder())
	_ = network.BuildGuideTree(n)
	fmt.Println("Guide children of root:", len(n.GuideChildren(r)))
	fmt.Println("After:", n.LeafOrder())
	// Output:
	// Before: [A C B]
	// Guide children of root: 3
	// After: [A B C]
}

func ExampleNetwork_Validate() {
	n := network.New()
	x := n.AddNode("")
	y := n.AddNode("")
	_, _ = n.AddEdge(x, y)
	_, _ = n.AddEdge(y, x)
	fmt.Println(n.Validate())
	// Output:
	// network has no root
}
