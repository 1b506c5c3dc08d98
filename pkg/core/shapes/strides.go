// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import "github.com/gomlx/exceptions"

// Strides returns the strides for each axis of the shape, assuming a "row-major" layout
// in memory (last axis changes fastest), and the total number of elements.
//
// Axes of dimension 1 get stride 0: any coordinate on such an axis resolves to the
// same element, which is what makes broadcasting free.
//
// Notice the strides are **not in bytes**, but in indices.
//
// It panics if the number of elements overflows int, which shapes created with New or Make never do.
func (s Shape) Strides() (strides []int, size int) {
	if _, ok := checkedSize(s.Dimensions); !ok {
		exceptions.Panicf("Shape.Strides(%s): number of elements overflows int", s)
	}
	rank := s.Rank()
	strides = make([]int, rank)
	size = 1
	for axis := rank - 1; axis >= 0; axis-- {
		dim := s.Dimensions[axis]
		if dim == 1 {
			continue
		}
		strides[axis] = size
		size *= dim
	}
	return
}
