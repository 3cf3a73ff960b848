package perm_test

import (
	"fmt"

	"github.com/husonlab/dendroscope3-sub003/internal/perm"
)

func ExampleGenerate() {
	// All orders of three sibling subtrees
	for _, p := range perm.Generate(3, -1) {
		fmt.Println(p)
	}
	// Output:
	// [0 1 2]
	// [1 0 2]
	// [2 0 1]
	// [0 2 1]
	// [1 2 0]
	// [2 1 0]
}

func ExampleGenerate_limited() {
	perms := perm.Generate(10, 5)
	fmt.Println("Count:", len(perms))
	// Output:
	// Count: 5
}

func ExampleApply() {
	children := []string{"A", "B", "C"}
	fmt.Println(perm.Apply(children, []int{2, 0, 1}))
	// Output:
	// [C A B]
}

func ExampleFactorial() {
	fmt.Println("4! =", perm.Factorial(4))
	// Output:
	// 4! = 24
}
