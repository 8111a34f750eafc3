package ecs

// End is the SwapErase result when no element was relocated.
const End = -1

// SwapErase removes s[i] in O(1) by moving the last element into slot i and
// shrinking s by one. Order is not preserved.
//
// It returns the shrunk slice and the position now holding the relocated
// element. That position is always i when an element moved, and End when s[i]
// was already the last element. The vacated tail slot is zeroed so the
// backing array does not keep the removed value reachable.
//
// i must be in [0, len(s)).
func SwapErase[E any](s []E, i int) ([]E, int) {
	var zero E
	last := len(s) - 1
	if i == last {
		s[last] = zero
		return s[:last], End
	}
	s[i] = s[last]
	s[last] = zero
	return s[:last], i
}
