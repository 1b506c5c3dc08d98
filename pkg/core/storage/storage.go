// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package storage holds the linear buffers that back strided views.
//
// The caller decides, once and explicitly, how a buffer is held:
//
//   - Own: the buffer is copied into storage exclusively held by the wrapper. Use it for
//     temporaries (values the caller won't touch again), so their lifetime follows the wrapper's.
//   - Borrow: the caller's slice is aliased. Writes through the wrapper are visible on the
//     caller's variable and vice versa.
//   - BorrowReadOnly: like Borrow, but writes through the wrapper panic.
//
// The ownership never changes after construction.
package storage

import (
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// Ownership of a Buffer's data.
type Ownership int

const (
	// Borrow aliases the caller's data.
	Borrow Ownership = iota

	// BorrowReadOnly aliases the caller's data, but disallows writes.
	BorrowReadOnly

	// Own holds a private copy of the data.
	Own
)

// String implements fmt.Stringer.
func (o Ownership) String() string {
	switch o {
	case Borrow:
		return "Borrow"
	case BorrowReadOnly:
		return "BorrowReadOnly"
	case Own:
		return "Own"
	default:
		return "Ownership(invalid)"
	}
}

// ErrReadOnly is the error (wrapped) in the panic of a write into a BorrowReadOnly buffer.
var ErrReadOnly = errors.New("write into read-only buffer")

// Buffer is a fixed-size linear container of elements, either owned or borrowed.
// It never grows.
type Buffer[T any] struct {
	data      []T
	ownership Ownership
}

// New creates a Buffer holding data with the given ownership.
// For Own the data is copied, for the borrowing variants it is aliased.
func New[T any](data []T, ownership Ownership) *Buffer[T] {
	switch ownership {
	case Own:
		owned := make([]T, len(data))
		copy(owned, data)
		data = owned
	case Borrow, BorrowReadOnly:
	default:
		exceptions.Panicf("storage.New: invalid ownership %s", ownership)
	}
	return &Buffer[T]{data: data, ownership: ownership}
}

// Owned returns a Buffer with a private copy of data.
func Owned[T any](data []T) *Buffer[T] { return New(data, Own) }

// Borrowed returns a Buffer aliasing data.
func Borrowed[T any](data []T) *Buffer[T] { return New(data, Borrow) }

// ReadOnly returns a Buffer aliasing data that panics on writes.
func ReadOnly[T any](data []T) *Buffer[T] { return New(data, BorrowReadOnly) }

// Make returns an owned Buffer of the given size, filled with T's zero value.
func Make[T any](size int) *Buffer[T] {
	if size < 0 {
		exceptions.Panicf("storage.Make: negative size %d", size)
	}
	return &Buffer[T]{data: make([]T, size), ownership: Own}
}

// Ownership of the buffer, as chosen at construction.
func (b *Buffer[T]) Ownership() Ownership { return b.ownership }

// IsReadOnly returns whether writes are disallowed.
func (b *Buffer[T]) IsReadOnly() bool { return b.ownership == BorrowReadOnly }

// Len returns the number of elements in the buffer.
func (b *Buffer[T]) Len() int { return len(b.data) }

// At returns the element at offset.
func (b *Buffer[T]) At(offset int) T { return b.data[offset] }

// Set the element at offset. It panics for read-only buffers.
func (b *Buffer[T]) Set(offset int, value T) {
	b.assertWritable("Set")
	b.data[offset] = value
}

// Ptr returns a mutable reference to the element at offset. It panics for read-only buffers.
func (b *Buffer[T]) Ptr(offset int) *T {
	b.assertWritable("Ptr")
	return &b.data[offset]
}

// ConstData calls accessFn with the underlying data, which must not be changed.
// The slice is only valid during the call.
func (b *Buffer[T]) ConstData(accessFn func(data []T)) {
	accessFn(b.data)
}

// MutableData calls accessFn with the underlying data. It panics for read-only buffers.
func (b *Buffer[T]) MutableData(accessFn func(data []T)) {
	b.assertWritable("MutableData")
	accessFn(b.data)
}

// Clone returns a new owned copy of the buffer.
func (b *Buffer[T]) Clone() *Buffer[T] {
	return Owned(b.data)
}

func (b *Buffer[T]) assertWritable(method string) {
	if b.ownership == BorrowReadOnly {
		panic(errors.Wrapf(ErrReadOnly, "Buffer.%s", method))
	}
}
