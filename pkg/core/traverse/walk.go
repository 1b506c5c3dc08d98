// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package traverse walks over every coordinate of a shape, in row-major order, and builds
// printing and assignment of views and lazy expressions on top of it.
package traverse

import (
	"github.com/gomlx/lazyview/pkg/core/shapes"
)

// Readable is anything with a shape that can be read at a coordinate: views and lazy expressions.
type Readable[T any] interface {
	shapes.HasShape

	// At returns the element at the given coordinates.
	At(indices ...int) T
}

// Writable is a Readable that can also be written to, like a view.
type Writable[T any] interface {
	Readable[T]

	// Set the element at the given coordinates.
	Set(value T, indices ...int)

	// Strides of the underlying layout, one per axis.
	Strides() []int
}

// Visitor holds the callbacks of a Walk.
type Visitor struct {
	// Leaf, if set, is called at every coordinate of the shape, with the full list of indices.
	// The indices slice is owned by Walk: don't change or keep it.
	Leaf func(indices []int)

	// RowEnd, if set, is called every time the walk over one coordinate of a non-last
	// axis is completed. E.g.: for a rank-2 shape it is called after every row, with axis=0.
	// indices[:axis+1] hold the coordinate just completed.
	RowEnd func(axis int, indices []int)
}

// Walk visits every coordinate of shape, outer-to-inner, the last axis changing fastest.
//
// A scalar shape has exactly one (empty) coordinate, and a shape with a zero-sized axis has none.
func Walk(shape shapes.Shape, visitor Visitor) {
	if shape.IsZeroSize() {
		return
	}
	if visitor.Leaf == nil {
		visitor.Leaf = func([]int) {}
	}
	indices := make([]int, shape.Rank())
	walkAxis(shape, 0, indices, visitor)
}

// walkAxis walks axes axis..rank-1, leaving indices[:axis] as given.
func walkAxis(shape shapes.Shape, axis int, indices []int, visitor Visitor) {
	rank := shape.Rank()
	if axis >= rank {
		visitor.Leaf(indices)
		return
	}
	dim := shape.Dimensions[axis]
	if axis == rank-1 {
		for i := range dim {
			indices[axis] = i
			visitor.Leaf(indices)
		}
		return
	}
	for i := range dim {
		indices[axis] = i
		walkAxis(shape, axis+1, indices, visitor)
		if visitor.RowEnd != nil {
			visitor.RowEnd(axis, indices)
		}
	}
}
