// Package ringbuffer provides a fixed capacity FIFO buffer used by the feed
// pipeline for its ingest queue, seen ids and visible window.
package ringbuffer

import "iter"

// RingBuffer keeps items in insertion order. The head is the oldest item and the
// tail is the newest one.
type RingBuffer[T any] struct {
	buf  []T
	head int
	tail int
	size int
}

// New creates a RingBuffer with the given capacity.
// A default capacity of 1 is used if the given value is zero.
func New[T any](capacity uint) *RingBuffer[T] {
	return &RingBuffer[T]{
		buf: make([]T, max(1, capacity)),
	}
}

// Size returns the number of items currently in the buffer.
func (r *RingBuffer[T]) Size() int {
	return r.size
}

// IsFull returns true if no more items can be pushed without evicting.
func (r *RingBuffer[T]) IsFull() bool {
	return r.size == len(r.buf)
}

// Push appends item to the tail. It returns false if the buffer is full.
func (r *RingBuffer[T]) Push(item T) bool {
	if r.IsFull() {
		return false
	}

	r.buf[r.tail] = item
	r.tail = (r.tail + 1) % len(r.buf)
	r.size++
	return true
}

// PushEvict appends item to the tail, dropping the oldest item first when the
// buffer is full. The dropped item is returned with true.
func (r *RingBuffer[T]) PushEvict(item T) (T, bool) {
	var evicted T
	var ok bool
	if r.IsFull() {
		evicted, ok = r.Pop()
	}
	r.Push(item)
	return evicted, ok
}

// Pop removes and returns the oldest item. If empty, it returns (zero[T], false).
func (r *RingBuffer[T]) Pop() (T, bool) {
	var zero T
	if r.size == 0 {
		return zero, false
	}

	item := r.buf[r.head]
	r.buf[r.head] = zero
	r.head = (r.head + 1) % len(r.buf)
	r.size--
	return item, true
}

// All yields the items from the oldest to the newest.
func (r *RingBuffer[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < r.size; i++ {
			if !yield(r.buf[r.index(i)]) {
				return
			}
		}
	}
}

// Backward yields the items from the newest to the oldest.
func (r *RingBuffer[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := r.size - 1; i >= 0; i-- {
			if !yield(r.buf[r.index(i)]) {
				return
			}
		}
	}
}

// index maps a position relative to the head onto the backing slice.
func (r *RingBuffer[T]) index(offset int) int {
	return (r.head + offset) % len(r.buf)
}
