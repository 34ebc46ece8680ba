package icamp

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPermutations(t *testing.T) {
	t.Parallel()
	perms := slices.Collect(Permutations(0, 3))
	require.Equal(t, [][]int{
		{0, 1, 2},
		{0, 2, 1},
		{1, 0, 2},
		{1, 2, 0},
		{2, 0, 1},
		{2, 1, 0},
	}, perms)
}

func TestPermutationsCount(t *testing.T) {
	t.Parallel()
	for n := 0; n <= 6; n++ {
		seen := map[[6]int64]bool{}
		var prev []int64
		for p := range Permutations(int64(5), n) {
			require.Len(t, p, n)
			var k [6]int64
			copy(k[:], p)
			require.False(t, seen[k], "duplicate %v", p)
			seen[k] = true
			if prev != nil {
				require.Equal(t, -1, slices.Compare(prev, p), "%v should sort before %v", prev, p)
			}
			prev = p
		}
		require.Len(t, seen, Factorial(n))
	}
}

func TestPermutationsStop(t *testing.T) {
	t.Parallel()
	var count int
	for range Permutations(0, 5) {
		count++
		if count == 3 {
			break
		}
	}
	require.Equal(t, 3, count)
}
