// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package traverse

import (
	"github.com/gomlx/lazyview/pkg/support/workerspool"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// checkAssignable returns an error if src can't be read at every coordinate of dst.
func checkAssignable[T any](dst Writable[T], src Readable[T]) error {
	dstShape, srcShape := dst.Shape(), src.Shape()
	if !srcShape.BroadcastsTo(dstShape) {
		return errors.Errorf("cannot assign values of shape %s to destination of shape %s: shape doesn't broadcast to the destination",
			srcShape, dstShape)
	}
	return nil
}

// Assign sets dst(indices) = src(indices) for every coordinate of dst's shape, in row-major order.
//
// src must broadcast to dst's shape (see shapes.Shape.BroadcastsTo), otherwise an error is returned
// and dst is left untouched. If src is a lazy expression, it is evaluated exactly once per
// coordinate of dst.
func Assign[T any](dst Writable[T], src Readable[T]) error {
	if err := checkAssignable(dst, src); err != nil {
		return err
	}
	Walk(dst.Shape(), Visitor{
		Leaf: func(indices []int) {
			dst.Set(src.At(indices...), indices...)
		},
	})
	klog.V(2).Infof("traverse.Assign: assigned %d values of shape %s", dst.Shape().Size(), dst.Shape())
	return nil
}

// AssignParallel is like Assign, but splits the work over the coordinates of the first axis of dst,
// using the given pool of workers.
//
// It falls back to the sequential Assign if pool is nil or disabled, if dst has rank 0 or if the
// first axis of dst has stride 0: in that case every coordinate of the axis aliases the same cells,
// and the slices wouldn't be disjoint.
//
// src must be safe to read concurrently: views and lazy expressions over pure functions are.
func AssignParallel[T any](pool *workerspool.Pool, dst Writable[T], src Readable[T]) error {
	shape := dst.Shape()
	if pool == nil || !pool.IsEnabled() || shape.Rank() == 0 || shape.Dimensions[0] <= 1 || dst.Strides()[0] == 0 {
		return Assign(dst, src)
	}
	if err := checkAssignable(dst, src); err != nil {
		return err
	}
	rank := shape.Rank()
	pool.ForEach(shape.Dimensions[0], func(i int) {
		indices := make([]int, rank)
		indices[0] = i
		walkAxis(shape, 1, indices, Visitor{
			Leaf: func(indices []int) {
				dst.Set(src.At(indices...), indices...)
			},
		})
	})
	klog.V(2).Infof("traverse.AssignParallel: assigned %d values of shape %s in %d slices", shape.Size(), shape, shape.Dimensions[0])
	return nil
}
