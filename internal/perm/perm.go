// Package perm provides small permutation helpers used when enumerating or
// inverting orders of taxa and sibling subtrees.
package perm

import "slices"

// Seq returns the identity permutation [0, 1, ..., n-1].
// For n <= 0, Seq returns an empty slice.
func Seq(n int) []int {
	result := make([]int, max(n, 0))
	for i := range result {
		result[i] = i
	}
	return result
}

// Factorial returns n!. For n <= 1, Factorial returns 1.
// 13! already overflows 32-bit integers.
func Factorial(n int) int {
	result := 1
	for i := 2; i <= n; i++ {
		result *= i
	}
	return result
}

// Generate returns permutations of [0, 1, ..., n-1] using Heap's algorithm,
// starting with the identity.
//
// If limit > 0, Generate returns at most limit permutations; otherwise all
// n! of them. Each returned slice is a separate allocation.
//
// For n >= 13 the permutation count is in the billions, so always pass a
// limit for large n.
func Generate(n, limit int) [][]int {
	var result [][]int
	Each(n, func(p []int) bool {
		result = append(result, slices.Clone(p))
		return limit <= 0 || len(result) < limit
	})
	return result
}

// Each calls fn with every permutation of [0, 1, ..., n-1] in Heap order,
// identity first, until fn returns false. The slice passed to fn is reused
// between calls and must not be retained.
func Each(n int, fn func([]int) bool) {
	p := Seq(n)
	if !fn(p) || n < 2 {
		return
	}
	state := make([]int, n)
	for i := 0; i < n; {
		if state[i] < i {
			if i&1 == 0 {
				p[0], p[i] = p[i], p[0]
			} else {
				p[state[i]], p[i] = p[i], p[state[i]]
			}
			if !fn(p) {
				return
			}
			state[i]++
			i = 0
		} else {
			state[i] = 0
			i++
		}
	}
}

// Apply returns items reordered by p: result[i] = items[p[i]].
// It panics if p is shorter than items or indexes out of range.
func Apply[T any](items []T, p []int) []T {
	out := make([]T, len(items))
	for i := range items {
		out[i] = items[p[i]]
	}
	return out
}

// Positions returns a map from item to its index in order. Duplicates keep
// their first index.
func Positions[T comparable](order []T) map[T]int {
	pos := make(map[T]int, len(order))
	for i, x := range order {
		if _, ok := pos[x]; !ok {
			pos[x] = i
		}
	}
	return pos
}
