// Package queue provides the growable FIFO ring the pool coordinator
// uses for its pending-task and free-slot queues. It is not safe for
// concurrent use; the coordinator is its only caller.
package queue

// Ring is a FIFO queue over a power-of-two ring buffer that doubles in
// place when full.
type Ring[T any] struct {
	buf  []T
	head int
	size int
}

// New returns a Ring with room for at least capacity elements before the
// first grow.
func New[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{
		buf: make([]T, nextPowerOfTwo(capacity)),
	}
}

// Len returns the number of queued elements.
func (r *Ring[T]) Len() int {
	return r.size
}

// Push appends v at the tail.
func (r *Ring[T]) Push(v T) {
	if r.size == len(r.buf) {
		r.grow()
	}
	r.buf[(r.head+r.size)&(len(r.buf)-1)] = v
	r.size++
}

// Pop removes and returns the oldest element. The second return is
// false when the queue is empty.
func (r *Ring[T]) Pop() (T, bool) {
	var zero T
	if r.size == 0 {
		return zero, false
	}
	v := r.buf[r.head]
	r.buf[r.head] = zero // release the reference
	r.head = (r.head + 1) & (len(r.buf) - 1)
	r.size--
	return v, true
}

func (r *Ring[T]) grow() {
	next := make([]T, len(r.buf)*2)
	n := copy(next, r.buf[r.head:])
	copy(next[n:], r.buf[:r.head])
	r.buf = next
	r.head = 0
}

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	n++
	return n
}
