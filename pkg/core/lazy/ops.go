// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package lazy

import (
	"github.com/gomlx/lazyview/pkg/core/dtypes"
	"github.com/gomlx/lazyview/pkg/core/shapes"
	"github.com/gomlx/lazyview/pkg/core/traverse"
	"github.com/gomlx/lazyview/pkg/core/views"
	"github.com/gomlx/lazyview/pkg/support/workerspool"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
)

// Constant is a rank-0 operand: it broadcasts to any shape and ignores the indices it's read with.
type Constant[T any] struct {
	Value T
}

// Const returns a scalar operand with the given value.
func Const[T any](value T) *Constant[T] {
	return &Constant[T]{Value: value}
}

// Shape returns the scalar shape. It implements shapes.HasShape.
func (c *Constant[T]) Shape() shapes.Shape { return shapes.Scalar() }

// At returns the constant value, for any indices.
func (c *Constant[T]) At(_ ...int) T { return c.Value }

// Add returns the lazy expression lhs + rhs.
func Add[T dtypes.Number](lhs, rhs Operand[T]) (*Expr[T], error) {
	return mapBinary("Add", func(a, b T) T { return a + b }, lhs, rhs)
}

// Sub returns the lazy expression lhs - rhs.
func Sub[T dtypes.Number](lhs, rhs Operand[T]) (*Expr[T], error) {
	return mapBinary("Sub", func(a, b T) T { return a - b }, lhs, rhs)
}

// Mul returns the lazy expression lhs * rhs.
func Mul[T dtypes.Number](lhs, rhs Operand[T]) (*Expr[T], error) {
	return mapBinary("Mul", func(a, b T) T { return a * b }, lhs, rhs)
}

// Div returns the lazy expression lhs / rhs.
//
// For integer types, a zero in rhs panics when the corresponding element is read.
func Div[T dtypes.Number](lhs, rhs Operand[T]) (*Expr[T], error) {
	return mapBinary("Div", func(a, b T) T { return a / b }, lhs, rhs)
}

// Max returns the lazy elementwise maximum of lhs and rhs.
func Max[T dtypes.NumberNotComplex](lhs, rhs Operand[T]) (*Expr[T], error) {
	return mapBinary("Max", func(a, b T) T { return max(a, b) }, lhs, rhs)
}

// Min returns the lazy elementwise minimum of lhs and rhs.
func Min[T dtypes.NumberNotComplex](lhs, rhs Operand[T]) (*Expr[T], error) {
	return mapBinary("Min", func(a, b T) T { return min(a, b) }, lhs, rhs)
}

// Neg returns the lazy expression -x.
func Neg[T dtypes.Number](x Operand[T]) (*Expr[T], error) {
	return newExpr("Neg", func(indices []int) T { return -x.At(indices...) }, x)
}

// MustAdd is like Add, but panics on error.
func MustAdd[T dtypes.Number](lhs, rhs Operand[T]) *Expr[T] { return must.M1(Add(lhs, rhs)) }

// MustSub is like Sub, but panics on error.
func MustSub[T dtypes.Number](lhs, rhs Operand[T]) *Expr[T] { return must.M1(Sub(lhs, rhs)) }

// MustMul is like Mul, but panics on error.
func MustMul[T dtypes.Number](lhs, rhs Operand[T]) *Expr[T] { return must.M1(Mul(lhs, rhs)) }

// MustDiv is like Div, but panics on error.
func MustDiv[T dtypes.Number](lhs, rhs Operand[T]) *Expr[T] { return must.M1(Div(lhs, rhs)) }

// MustMap is like Map, but panics on error.
func MustMap[T any](fn func(values ...T) T, operands ...Operand[T]) *Expr[T] {
	return must.M1(Map(fn, operands...))
}

// Materialize evaluates src at every coordinate of its shape into a newly allocated owned view.
func Materialize[T any](src Operand[T]) (*views.View[T], error) {
	dst, err := zerosLike[T](src)
	if err != nil {
		return nil, err
	}
	if err = traverse.Assign[T](dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}

// MaterializeParallel is like Materialize, but splits the work over the first axis using pool.
// See traverse.AssignParallel.
func MaterializeParallel[T any](pool *workerspool.Pool, src Operand[T]) (*views.View[T], error) {
	dst, err := zerosLike[T](src)
	if err != nil {
		return nil, err
	}
	if err = traverse.AssignParallel[T](pool, dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}

func zerosLike[T any](src Operand[T]) (*views.View[T], error) {
	if isNil(src) {
		return nil, errors.New("lazy.Materialize: nil operand")
	}
	dst, err := views.Zeros[T](src.Shape().Dimensions...)
	if err != nil {
		return nil, errors.WithMessagef(err, "lazy.Materialize(shape=%s)", src.Shape())
	}
	return dst, nil
}
