// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import (
	"fmt"

	"github.com/pkg/errors"
)

// BroadcastError is returned when two shapes disagree on a non-1 extent of an aligned axis.
type BroadcastError struct {
	// Operand is the position of the offending shape in the list given to Broadcast.
	Operand int

	// Axis in the broadcast (result) shape where the conflict happened.
	Axis int

	// Want is the extent already committed for Axis, Got the conflicting one.
	Want, Got int
}

// Error implements the error interface.
func (e *BroadcastError) Error() string {
	return fmt.Sprintf("incompatible shapes for broadcasting: operand #%d has dimension %d on axis %d, but broadcast shape has %d",
		e.Operand, e.Got, e.Axis, e.Want)
}

// Broadcast returns the shape resulting from broadcasting all the given shapes together.
//
// Shapes are right-aligned (shorter shapes get implicit leading axes of dimension 1).
// The first shape to introduce a non-1 dimension on an axis commits that dimension,
// later shapes must match it or have dimension 1 there.
//
// Examples:
//
//	[3 4]   + [3 3 1] -> [3 3 4]
//	[3]     + [3 3]   -> [3 3]
//	[3 4]   + [2 4]   -> error (3 vs 2)
//
// On a dimension mismatch the returned error wraps a *BroadcastError. It also fails if the
// number of elements of the broadcast shape overflows int.
func Broadcast(shapes ...Shape) (Shape, error) {
	rank := 0
	for _, s := range shapes {
		rank = max(rank, s.Rank())
	}
	result := Shape{Dimensions: make([]int, rank)}
	for axis := range result.Dimensions {
		result.Dimensions[axis] = 1
	}
	for operandIdx, s := range shapes {
		offset := rank - s.Rank()
		for operandAxis, dim := range s.Dimensions {
			axis := offset + operandAxis
			current := result.Dimensions[axis]
			switch {
			case current == 1:
				result.Dimensions[axis] = dim
			case dim != 1 && dim != current:
				return Shape{}, errors.WithStack(&BroadcastError{
					Operand: operandIdx,
					Axis:    axis,
					Want:    current,
					Got:     dim,
				})
			}
		}
	}
	if _, ok := checkedSize(result.Dimensions); !ok {
		return Shape{}, errors.Errorf("broadcast shape %s of %v: number of elements overflows int", result, shapes)
	}
	return result, nil
}

// BroadcastsTo returns whether s can be broadcast to target, without target changing.
// That is, s has rank <= target's rank and each of its (right-aligned) dimensions is
// either 1 or equal to target's.
func (s Shape) BroadcastsTo(target Shape) bool {
	if s.Rank() > target.Rank() {
		return false
	}
	offset := target.Rank() - s.Rank()
	for axis, dim := range s.Dimensions {
		if dim != 1 && dim != target.Dimensions[offset+axis] {
			return false
		}
	}
	return true
}
