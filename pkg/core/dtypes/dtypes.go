// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package dtypes includes the constraint interfaces used with generics for the element
// types of views and lazy expressions.
//
// Views and expressions accept any element type, but the arithmetic combinators
// (Add, Sub, Mul, Div, Neg) require one of the native number types below.
// Half-precision github.com/x448/float16 values can be stored and printed, and combined
// with lazy.Map and an explicit function, since they are not native number types.
package dtypes

import (
	"golang.org/x/exp/constraints"
)

// Number represents the Go numeric types supported by the arithmetic combinators.
//
// It includes complex numbers.
type Number interface {
	constraints.Integer | constraints.Float | constraints.Complex
}

// NumberNotComplex represents the Go numeric types that are ordered.
//
// See also Number.
type NumberNotComplex interface {
	constraints.Integer | constraints.Float
}
