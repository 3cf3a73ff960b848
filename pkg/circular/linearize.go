package circular

// RotateToFront returns a copy of cycle rotated so that x comes first.
// If x is absent the copy is unrotated.
func RotateToFront(cycle []int, x int) []int {
	out := make([]int, 0, len(cycle))
	for i, v := range cycle {
		if v == x {
			out = append(out, cycle[i:]...)
			return append(out, cycle[:i]...)
		}
	}
	return append(out, cycle...)
}

// Linearize cuts cycle at sentinel: the result starts with the element
// following the sentinel and omits the sentinel itself. Without the
// sentinel the cycle is returned unchanged as a copy.
func Linearize(cycle []int, sentinel int) []int {
	rotated := RotateToFront(cycle, sentinel)
	if len(rotated) > 0 && rotated[0] == sentinel {
		return rotated[1:]
	}
	return rotated
}
