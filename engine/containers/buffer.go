package containers

import (
	"fmt"

	"github.com/spaghettifunk/drawbug/engine/core"
)

// Buffer is a growable array of fixed-size elements. Capacity only changes
// when a submit does not fit, and Clear keeps the allocation so the same
// storage is reused frame after frame.
//
// A Buffer is not safe for concurrent use. Whoever currently owns it (the
// recorder while encoding, the expansion worker while decoding) is the only
// one allowed to grow it.
type Buffer[T any] struct {
	data     []T
	length   int
	disposed bool
}

// NewBuffer allocates a buffer able to hold capacity elements without growing.
func NewBuffer[T any](capacity int) (*Buffer[T], error) {
	if capacity < 0 {
		return nil, fmt.Errorf("new buffer with capacity %d: %w", capacity, core.ErrInvalidCapacity)
	}
	return &Buffer[T]{
		data: make([]T, capacity),
	}, nil
}

func (b *Buffer[T]) mustBeAlive() {
	if b == nil || b.disposed {
		panic(core.ErrDisposed)
	}
}

// Len returns the number of submitted elements.
func (b *Buffer[T]) Len() int {
	b.mustBeAlive()
	return b.length
}

// Cap returns the number of elements the buffer holds before it must grow.
func (b *Buffer[T]) Cap() int {
	b.mustBeAlive()
	return len(b.data)
}

// IsCreated reports whether the buffer is allocated and not yet disposed.
func (b *Buffer[T]) IsCreated() bool {
	return b != nil && !b.disposed
}

// Reserve makes room for additional more elements.
// The new capacity is max(2*capacity, length+additional).
func (b *Buffer[T]) Reserve(additional int) {
	b.mustBeAlive()
	required := b.length + additional
	if required <= len(b.data) {
		return
	}
	grown := make([]T, max(len(b.data)*2, required))
	copy(grown, b.data[:b.length])
	b.data = grown
}

// Submit appends one element.
func (b *Buffer[T]) Submit(value T) {
	b.Reserve(1)
	b.data[b.length] = value
	b.length++
}

// SubmitSlice appends every element of values.
func (b *Buffer[T]) SubmitSlice(values []T) {
	if len(values) == 0 {
		b.mustBeAlive()
		return
	}
	b.Reserve(len(values))
	copy(b.data[b.length:], values)
	b.length += len(values)
}

// Extend grows the length by n and returns the new tail for in-place writes.
// The returned slice is only valid until the next call that may grow the buffer.
func (b *Buffer[T]) Extend(n int) []T {
	b.Reserve(n)
	start := b.length
	b.length += n
	return b.data[start:b.length]
}

// Truncate drops every element past n.
func (b *Buffer[T]) Truncate(n int) {
	b.mustBeAlive()
	if n < 0 || n > b.length {
		panic(fmt.Sprintf("containers: truncate to %d outside [0, %d]", n, b.length))
	}
	b.length = n
}

// At returns the element at index i.
func (b *Buffer[T]) At(i int) T {
	b.mustBeAlive()
	if i < 0 || i >= b.length {
		panic(fmt.Sprintf("containers: index %d out of range [0, %d)", i, b.length))
	}
	return b.data[i]
}

// Data returns a view of the submitted elements. The view aliases the
// buffer's storage and is invalidated by the next growth or Clear.
func (b *Buffer[T]) Data() []T {
	b.mustBeAlive()
	return b.data[:b.length:b.length]
}

// Clear resets the length to zero and keeps the capacity.
func (b *Buffer[T]) Clear() {
	b.mustBeAlive()
	b.length = 0
}

// Dispose releases the storage. Any later use of the buffer panics with
// core.ErrDisposed.
func (b *Buffer[T]) Dispose() {
	b.mustBeAlive()
	b.data = nil
	b.length = 0
	b.disposed = true
}
