// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package views implements View, an n-dimensional strided view over a linear buffer.
//
// The rank of a View is fixed at construction, and its strides are computed once, in
// row-major order, with stride 0 on every axis of dimension 1 (see shapes.Shape.Strides).
//
// Indexing takes the *rightmost* rank indices given, discarding extra leading ones. This allows
// one list of indices, over a broadcast shape, to be used to index every view of a lazy expression,
// regardless of their ranks. Together with the stride 0 on axes of dimension 1, that is all
// that is needed for broadcasting.
//
// Example:
//
//	v := views.MustFromSlice([]int{1, 2, 3, 4, 5, 6, 7, 8, 9}, 3, 3)
//	fmt.Println(v.At(2, 1))        // 8
//	fmt.Println(v.At(5, 10, 2, 1)) // 8: leading 5 and 10 are discarded.
package views

import (
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/lazyview/pkg/core/shapes"
	"github.com/gomlx/lazyview/pkg/core/storage"
	"github.com/gomlx/lazyview/pkg/core/traverse"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
)

// View is a strided view over a storage.Buffer.
//
// A View borrowing external memory must not outlive it: that is the caller's responsibility.
type View[T any] struct {
	shape   shapes.Shape
	strides []int
	buffer  *storage.Buffer[T]
}

// New creates a View of the given dimensions over buffer.
//
// It returns an error if any dimension is negative, or if buffer has fewer elements than the
// shape requires.
func New[T any](buffer *storage.Buffer[T], dimensions ...int) (*View[T], error) {
	if buffer == nil {
		return nil, errors.New("views.New: nil buffer")
	}
	shape, err := shapes.New(dimensions...)
	if err != nil {
		return nil, errors.WithMessage(err, "views.New")
	}
	strides, size := shape.Strides()
	if size > buffer.Len() {
		return nil, errors.Errorf("views.New: shape %s requires %d elements, but buffer only has %d",
			shape, size, buffer.Len())
	}
	return &View[T]{shape: shape, strides: strides, buffer: buffer}, nil
}

// MustNew is like New, but panics on error.
func MustNew[T any](buffer *storage.Buffer[T], dimensions ...int) *View[T] {
	return must.M1(New(buffer, dimensions...))
}

// FromSlice creates a View borrowing data: changes to data are visible through the view and vice versa.
func FromSlice[T any](data []T, dimensions ...int) (*View[T], error) {
	return New(storage.Borrowed(data), dimensions...)
}

// MustFromSlice is like FromSlice, but panics on error.
func MustFromSlice[T any](data []T, dimensions ...int) *View[T] {
	return must.M1(FromSlice(data, dimensions...))
}

// Zeros returns a View over a newly allocated owned buffer, filled with T's zero value.
func Zeros[T any](dimensions ...int) (*View[T], error) {
	shape, err := shapes.New(dimensions...)
	if err != nil {
		return nil, errors.WithMessage(err, "views.Zeros")
	}
	return New(storage.Make[T](shape.Size()), dimensions...)
}

// Shape returns the shape of the view. It implements shapes.HasShape.
func (v *View[T]) Shape() shapes.Shape { return v.shape }

// Rank returns the number of axes of the view.
func (v *View[T]) Rank() int { return v.shape.Rank() }

// Strides returns a copy of the strides of the view, one per axis.
func (v *View[T]) Strides() []int { return slices.Clone(v.strides) }

// Buffer returns the underlying buffer.
func (v *View[T]) Buffer() *storage.Buffer[T] { return v.buffer }

// Offset returns the position in the buffer of the element at the given coordinates.
//
// Only the rightmost Rank() indices are used, extra leading ones are discarded.
// It panics if fewer than Rank() indices are given. No other bounds checking is done:
// the caller must keep each index within the dimension of its axis.
func (v *View[T]) Offset(indices ...int) int {
	rank := len(v.strides)
	if len(indices) < rank {
		exceptions.Panicf("View.Offset: %d indices given to a view of rank %d (shape %s)", len(indices), rank, v.shape)
	}
	indices = indices[len(indices)-rank:]
	offset := 0
	for axis, stride := range v.strides {
		offset += stride * indices[axis]
	}
	return offset
}

// At returns the element at the given coordinates. See Offset for how indices are interpreted.
func (v *View[T]) At(indices ...int) T {
	return v.buffer.At(v.Offset(indices...))
}

// Set the element at the given coordinates. See Offset for how indices are interpreted.
//
// The write is visible through every alias of the buffer. It panics if the buffer is read-only.
func (v *View[T]) Set(value T, indices ...int) {
	v.buffer.Set(v.Offset(indices...), value)
}

// Ptr returns a mutable reference to the element at the given coordinates.
// It panics if the buffer is read-only.
func (v *View[T]) Ptr(indices ...int) *T {
	return v.buffer.Ptr(v.Offset(indices...))
}

// Clone returns a View with the same shape over an owned copy of the buffer.
func (v *View[T]) Clone() *View[T] {
	return &View[T]{shape: v.shape.Clone(), strides: slices.Clone(v.strides), buffer: v.buffer.Clone()}
}

// Values returns the elements of the view, in row-major order, in a new slice.
func (v *View[T]) Values() []T {
	values := make([]T, 0, v.shape.Size())
	for _, indices := range v.shape.Iter() {
		values = append(values, v.At(indices...))
	}
	return values
}

// Assign sets every element of the view to the value of src at the same coordinates.
// src (a view or a lazy expression) must broadcast to the view's shape.
func (v *View[T]) Assign(src traverse.Readable[T]) error {
	return traverse.Assign[T](v, src)
}

// Fill sets every element of the view to value.
func (v *View[T]) Fill(value T) {
	traverse.Walk(v.shape, traverse.Visitor{
		Leaf: func(indices []int) { v.Set(value, indices...) },
	})
}

// String implements fmt.Stringer, printing the values one row per line.
func (v *View[T]) String() string {
	return traverse.Sprint[T](v)
}
