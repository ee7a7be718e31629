package buffer

import (
	"errors"
	"fmt"
)

// ErrInsufficientData is the panic value (wrapped) when more elements are
// peeked or dropped than are buffered.
var ErrInsufficientData = errors.New("buffer: insufficient data")

// Ring is an unbounded FIFO backed by a circular slice that grows on demand.
//
// Ring is not safe for concurrent use.
type Ring[T any] struct {
	data []T
	head int
	n    int
}

// NewRing returns an empty ring with room for capacity elements before the
// first reallocation.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Ring[T]{data: make([]T, capacity)}
}

// Len returns the number of buffered elements.
func (r *Ring[T]) Len() int {
	return r.n
}

// Cap returns the current capacity of the backing storage.
func (r *Ring[T]) Cap() int {
	return len(r.data)
}

// PushBack appends samples to the back, growing storage when needed.
func (r *Ring[T]) PushBack(samples []T) {
	if len(samples) == 0 {
		return
	}

	r.reserve(r.n + len(samples))

	tail := (r.head + r.n) % len(r.data)
	n := copy(r.data[tail:], samples)
	copy(r.data, samples[n:])
	r.n += len(samples)
}

// PeekFront copies the first len(dst) elements into dst without consuming
// them. It panics if fewer than len(dst) elements are buffered.
func (r *Ring[T]) PeekFront(dst []T) {
	if len(dst) > r.n {
		panic(fmt.Errorf("%w: peek %d, have %d", ErrInsufficientData, len(dst), r.n))
	}
	if len(dst) == 0 {
		return
	}

	n := copy(dst, r.data[r.head:])
	copy(dst[n:], r.data)
}

// DropFront discards the first k elements. It panics if k is negative or
// exceeds Len.
func (r *Ring[T]) DropFront(k int) {
	if k < 0 {
		panic(fmt.Errorf("buffer: negative drop count %d", k))
	}
	if k > r.n {
		panic(fmt.Errorf("%w: drop %d, have %d", ErrInsufficientData, k, r.n))
	}

	r.n -= k
	if r.n == 0 {
		r.head = 0
		return
	}
	r.head = (r.head + k) % len(r.data)
}

// Reset discards all buffered elements and keeps the storage.
func (r *Ring[T]) Reset() {
	r.head = 0
	r.n = 0
}

// reserve grows storage to hold at least n elements, unwrapping the
// contents to start at index 0.
func (r *Ring[T]) reserve(n int) {
	if n <= len(r.data) {
		return
	}

	size := max(2*len(r.data), n)
	grown := make([]T, size)
	if r.n > 0 {
		m := copy(grown, r.data[r.head:min(r.head+r.n, len(r.data))])
		copy(grown[m:r.n], r.data)
	}

	r.data = grown
	r.head = 0
}
