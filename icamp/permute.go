package icamp

import (
	"cmp"
	"iter"
	"slices"

	"golang.org/x/exp/constraints"
)

// Permutations yields every ordering of start, start+1, ..., start+n-1 in
// lexicographic order, beginning with the ascending one.
// Each yielded slice is freshly allocated.
func Permutations[T constraints.Integer](start T, n int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		if n < 0 {
			return
		}
		p := make([]T, n)
		for i := range p {
			p[i] = start + T(i)
		}
		for {
			if !yield(slices.Clone(p)) {
				return
			}
			if !nextPermutation(p) {
				return
			}
		}
	}
}

// nextPermutation rearranges p into the next permutation in lexicographic order.
// It returns false, leaving p unchanged, if p is the last permutation.
func nextPermutation[T cmp.Ordered](p []T) bool {
	i := len(p) - 2
	for i >= 0 && p[i] >= p[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(p) - 1
	for p[j] <= p[i] {
		j--
	}
	p[i], p[j] = p[j], p[i]
	slices.Reverse(p[i+1:])
	return true
}

// Factorial returns n!
func Factorial(n int) int {
	ret := 1
	for i := 2; i <= n; i++ {
		ret *= i
	}
	return ret
}
