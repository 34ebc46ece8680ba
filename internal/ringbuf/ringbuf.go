// package ringbuf provides a FIFO queue backed by a ring buffer.
package ringbuf

// RingBuf is a FIFO queue.
// The zero value is an empty queue, ready to use.
// PushBack grows the backing buffer when it is full.
type RingBuf[T any] struct {
	buf        []T
	head, tail int
}

func New[T any](n int) RingBuf[T] {
	return RingBuf[T]{buf: make([]T, n)}
}

// Cap is the size of the backing buffer.
func (rb *RingBuf[T]) Cap() int {
	return len(rb.buf)
}

func (rb *RingBuf[T]) PushBack(val T) {
	if rb.Len() == len(rb.buf) {
		rb.grow()
	}
	rb.buf[rb.tail%len(rb.buf)] = val
	rb.tail++
}

// PopFront removes and returns the oldest element.
// ok is false if the queue is empty.
func (rb *RingBuf[T]) PopFront() (val T, ok bool) {
	if rb.Len() == 0 {
		return val, false
	}
	i := rb.head % len(rb.buf)
	val = rb.buf[i]
	var zero T
	rb.buf[i] = zero
	rb.head++
	if rb.head == rb.tail {
		rb.head, rb.tail = 0, 0
	}
	return val, true
}

func (rb *RingBuf[T]) At(i int) T {
	if i < 0 || i >= rb.Len() {
		panic(i)
	}
	return rb.buf[(rb.head+i)%len(rb.buf)]
}

func (rb *RingBuf[T]) Len() int {
	return rb.tail - rb.head
}

// Clear removes all the elements, keeping the backing buffer.
func (rb *RingBuf[T]) Clear() {
	clear(rb.buf)
	rb.head, rb.tail = 0, 0
}

func (rb *RingBuf[T]) grow() {
	n := len(rb.buf) * 2
	if n == 0 {
		n = 4
	}
	buf := make([]T, n)
	l := rb.Len()
	for i := 0; i < l; i++ {
		buf[i] = rb.At(i)
	}
	rb.buf = buf
	rb.head, rb.tail = 0, l
}
