// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package lazy implements elementwise expressions over views (and other expressions), with
// implicit NumPy-style broadcasting, evaluated only when an element is read or assigned.
//
// Composing expressions never allocates intermediate buffers: `Add(Add(a, b), c)` is one
// expression whose value at a coordinate is computed directly as `(a(idx) + b(idx)) + c(idx)`.
//
// The broadcast shape of an expression is computed once, when it is created, and shape
// mismatches are reported then. Reading an element forwards the full list of indices, unmodified,
// to every operand: each view discards the leading indices it doesn't need, and its stride 0 on
// axes of dimension 1 takes care of the broadcasting.
//
// Example:
//
//	a := views.MustFromSlice([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
//	row := views.MustFromSlice([]float64{10, 20, 30}, 3)
//	sum := lazy.MustAdd[float64](a, row) // Nothing computed yet.
//	fmt.Println(sum.At(1, 2))            // 36
//	res := must.M1(lazy.Materialize[float64](sum))
package lazy

import (
	"reflect"
	"slices"

	"github.com/gomlx/lazyview/pkg/core/shapes"
	"github.com/gomlx/lazyview/pkg/core/traverse"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Operand of an expression: a view, another expression or a constant.
// It has the same methods as traverse.Readable.
type Operand[T any] interface {
	shapes.HasShape

	// At returns the element at the given coordinates.
	At(indices ...int) T
}

// Expr is a lazy elementwise expression.
//
// It holds only its function and its operands: views are referenced, so writes to an operand
// view after the expression is created are visible on subsequent reads of the expression.
// Use views.View.Clone to snapshot an operand instead.
type Expr[T any] struct {
	name     string
	operands []Operand[T]
	shape    shapes.Shape
	eval     func(indices []int) T
}

// AssertValid panics if the expression is nil or wasn't created by one of the package's functions.
func (e *Expr[T]) AssertValid() {
	if e == nil || e.eval == nil {
		panic(errors.New("lazy.Expr is nil or not initialized, use lazy.Map or one of the arithmetic functions to create one"))
	}
}

// isNil reports whether operand is nil, including a typed nil pointer (e.g. a nil *views.View).
func isNil[T any](operand Operand[T]) bool {
	if operand == nil {
		return true
	}
	value := reflect.ValueOf(operand)
	switch value.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return value.IsNil()
	default:
		return false
	}
}

// newExpr computes the broadcast shape of the operands and builds the expression.
// operands must not be changed by the caller afterwards: the exported functions pass a copy.
func newExpr[T any](name string, eval func(indices []int) T, operands ...Operand[T]) (*Expr[T], error) {
	operandShapes := make([]shapes.Shape, len(operands))
	for ii, operand := range operands {
		if isNil(operand) {
			return nil, errors.Errorf("lazy.%s: operand #%d is nil", name, ii)
		}
		operandShapes[ii] = operand.Shape()
	}
	shape, err := shapes.Broadcast(operandShapes...)
	if err != nil {
		return nil, errors.WithMessagef(err, "lazy.%s(shapes=%v)", name, operandShapes)
	}
	klog.V(1).Infof("lazy.%s: %d operands %v broadcast to %s", name, len(operands), operandShapes, shape)
	return &Expr[T]{name: name, operands: operands, shape: shape, eval: eval}, nil
}

// Map returns the lazy expression fn(operands(indices)...).
//
// fn receives one value per operand, in order. The slice is only valid during the call.
// fn must be pure (no side effects), since it is called again every time an element is read.
// The operands slice is copied: changing its elements afterwards doesn't affect the expression.
//
// It returns an error if the shapes of the operands can't be broadcast together.
func Map[T any](fn func(values ...T) T, operands ...Operand[T]) (*Expr[T], error) {
	if fn == nil {
		return nil, errors.New("lazy.Map: nil function")
	}
	operands = slices.Clone(operands)
	numOperands := len(operands)
	eval := func(indices []int) T {
		values := make([]T, numOperands)
		for ii, operand := range operands {
			values[ii] = operand.At(indices...)
		}
		return fn(values...)
	}
	return newExpr("Map", eval, operands...)
}

// MapUnary returns the lazy expression fn(x(indices)).
func MapUnary[T any](fn func(x T) T, x Operand[T]) (*Expr[T], error) {
	if fn == nil {
		return nil, errors.New("lazy.MapUnary: nil function")
	}
	return newExpr("MapUnary", func(indices []int) T { return fn(x.At(indices...)) }, x)
}

// MapBinary returns the lazy expression fn(lhs(indices), rhs(indices)).
func MapBinary[T any](fn func(lhs, rhs T) T, lhs, rhs Operand[T]) (*Expr[T], error) {
	if fn == nil {
		return nil, errors.New("lazy.MapBinary: nil function")
	}
	return mapBinary("MapBinary", fn, lhs, rhs)
}

func mapBinary[T any](name string, fn func(lhs, rhs T) T, lhs, rhs Operand[T]) (*Expr[T], error) {
	eval := func(indices []int) T {
		return fn(lhs.At(indices...), rhs.At(indices...))
	}
	return newExpr(name, eval, lhs, rhs)
}

// Shape returns the broadcast shape of the expression. It implements shapes.HasShape.
func (e *Expr[T]) Shape() shapes.Shape {
	e.AssertValid()
	return e.shape
}

// Rank of the broadcast shape.
func (e *Expr[T]) Rank() int { return e.Shape().Rank() }

// Operands returns the operands of the expression, in order.
func (e *Expr[T]) Operands() []Operand[T] {
	e.AssertValid()
	return e.operands
}

// At evaluates the expression at the given coordinates.
//
// The indices are forwarded unmodified to every operand, and nothing is cached: reading the
// same coordinate twice computes the value twice.
func (e *Expr[T]) At(indices ...int) T {
	e.AssertValid()
	return e.eval(indices)
}

// String implements fmt.Stringer, printing the values of the expression one row per line.
func (e *Expr[T]) String() string {
	return traverse.Sprint[T](e)
}
