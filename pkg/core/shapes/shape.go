// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package shapes defines Shape, the dimensions of a strided view or of a lazy expression,
// and the tools built around it: row-major strides, broadcasting and iteration.
//
// ## Glossary
//
//   - Rank: number of axes (dimensions) of a Shape. It is fixed once the Shape is created.
//   - Axis: the index of a dimension. Here "axis" refers to the position, and its size
//     is called its "dimension" or "extent".
//   - Stride: number of positions to advance in the linear buffer per unit increase of
//     the coordinate on one axis.
//   - Broadcasting: treating size-1 axes (and missing leading axes) as if they were
//     repeated to match a larger extent.
//
// Example: a view over the buffer `[]int{1, 2, 3, 4, 5, 6}` with shape `[2 3]` has rank 2,
// axis 0 has dimension 2 and axis 1 has dimension 3. It can be created with `shapes.Make(2, 3)`.
package shapes

import (
	"fmt"
	"math"
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// Shape is the ordered list of extents, one per axis, of a view or expression.
//
// Use Make or New to create a new shape.
type Shape struct {
	Dimensions []int
}

// New returns a Shape with the given dimensions, or an error if any dimension is negative.
//
// Zero-sized axes are allowed: the shape then has no elements.
func New(dimensions ...int) (Shape, error) {
	for axis, dim := range dimensions {
		if dim < 0 {
			return Shape{}, errors.Errorf("shapes.New(%v): axis %d has negative dimension %d", dimensions, axis, dim)
		}
	}
	if _, ok := checkedSize(dimensions); !ok {
		return Shape{}, errors.Errorf("shapes.New(%v): number of elements overflows int", dimensions)
	}
	return Shape{Dimensions: slices.Clone(dimensions)}, nil
}

// Make returns a Shape with the given dimensions. It panics if any dimension is negative.
func Make(dimensions ...int) Shape {
	s, err := New(dimensions...)
	if err != nil {
		exceptions.Panicf("%+v", err)
	}
	return s
}

// Scalar returns the shape of a rank-0 value.
func Scalar() Shape {
	return Shape{}
}

// Rank of the shape, that is, the number of dimensions.
func (s Shape) Rank() int { return len(s.Dimensions) }

// IsScalar returns whether the shape has no axes.
func (s Shape) IsScalar() bool { return s.Rank() == 0 }

// Dim returns the dimension of the given axis. axis can take negative numbers, in which
// case it counts as starting from the end -- so axis=-1 refers to the last axis.
// Like with a slice indexing, it panics for an out-of-bound axis.
func (s Shape) Dim(axis int) int {
	adjustedAxis := axis
	if adjustedAxis < 0 {
		adjustedAxis += s.Rank()
	}
	if adjustedAxis < 0 || adjustedAxis >= s.Rank() {
		exceptions.Panicf("Shape.Dim(%d) out-of-bounds for rank %d (shape=%s)", axis, s.Rank(), s)
	}
	return s.Dimensions[adjustedAxis]
}

// Shape returns a shallow copy of itself. It implements the HasShape interface.
func (s Shape) Shape() Shape { return s }

// String implements fmt.Stringer.
func (s Shape) String() string {
	if s.Rank() == 0 {
		return "[]"
	}
	return fmt.Sprintf("%v", s.Dimensions)
}

// Size returns the number of elements of the shape: the product of all dimensions.
// A scalar has size 1.
//
// It panics if the number of elements overflows int, which shapes created with New or Make never do.
func (s Shape) Size() int {
	size, ok := checkedSize(s.Dimensions)
	if !ok {
		exceptions.Panicf("shape %s: number of elements overflows int", s)
	}
	if s.IsZeroSize() {
		return 0
	}
	return size
}

// checkedSize returns the product of the non-zero dimensions, and false if it overflows int.
// Every partial product (e.g. the strides) is bounded by it.
func checkedSize(dimensions []int) (size int, ok bool) {
	size = 1
	for _, dim := range dimensions {
		if dim == 0 {
			continue
		}
		if size > math.MaxInt/dim {
			return 0, false
		}
		size *= dim
	}
	return size, true
}

// IsZeroSize returns whether any of the axes has dimension 0.
func (s Shape) IsZeroSize() bool {
	return slices.Contains(s.Dimensions, 0)
}

// Equal compares the dimensions of two shapes.
func (s Shape) Equal(s2 Shape) bool {
	return slices.Equal(s.Dimensions, s2.Dimensions)
}

// Clone returns a new deep copy of the shape.
func (s Shape) Clone() Shape {
	return Shape{Dimensions: slices.Clone(s.Dimensions)}
}
