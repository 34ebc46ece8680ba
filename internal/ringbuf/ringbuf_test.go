package ringbuf

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFIFO(t *testing.T) {
	var rb RingBuf[int]
	_, ok := rb.PopFront()
	require.False(t, ok)

	for i := 0; i < 100; i++ {
		rb.PushBack(i)
	}
	require.Equal(t, 100, rb.Len())
	for i := 0; i < 100; i++ {
		require.Equal(t, i, rb.At(0))
		x, ok := rb.PopFront()
		require.True(t, ok)
		require.Equal(t, i, x)
	}
	require.Equal(t, 0, rb.Len())
}

func TestInterleaved(t *testing.T) {
	rb := New[int](2)
	var next, want int
	for round := 0; round < 50; round++ {
		for i := 0; i < round%5+1; i++ {
			rb.PushBack(next)
			next++
		}
		for i := 0; i < round%3+1 && rb.Len() > 0; i++ {
			x, ok := rb.PopFront()
			require.True(t, ok)
			require.Equal(t, want, x)
			want++
		}
	}
	for rb.Len() > 0 {
		x, _ := rb.PopFront()
		require.Equal(t, want, x)
		want++
	}
	require.Equal(t, next, want)
}

func TestClear(t *testing.T) {
	rb := New[string](1)
	rb.PushBack("a")
	rb.PushBack("b")
	rb.Clear()
	require.Equal(t, 0, rb.Len())
	rb.PushBack("c")
	x, ok := rb.PopFront()
	require.True(t, ok)
	require.Equal(t, "c", x)
}

func TestGrow(t *testing.T) {
	var zero RingBuf[int]
	require.Equal(t, 0, zero.Cap())
	zero.PushBack(1)
	require.Equal(t, 4, zero.Cap())

	rb := New[int](2)
	rb.PushBack(1)
	rb.PushBack(2)
	require.Equal(t, 2, rb.Cap())
	rb.PushBack(3)
	require.Equal(t, 4, rb.Cap())
	require.Equal(t, 3, rb.Len())
	for i := 1; i <= 3; i++ {
		require.Equal(t, i, rb.At(i-1))
	}
	// popping does not shrink the buffer
	rb.PopFront()
	require.Equal(t, 4, rb.Cap())
}
