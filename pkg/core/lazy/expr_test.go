// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package lazy

import (
	"testing"

	"github.com/gomlx/lazyview/pkg/core/shapes"
	"github.com/gomlx/lazyview/pkg/core/views"
	"github.com/gomlx/lazyview/pkg/support/workerspool"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func sequence(n int) []int {
	values := make([]int, n)
	for i := range values {
		values[i] = i + 1
	}
	return values
}

func TestBroadcastShape(t *testing.T) {
	a := must.M1(views.Zeros[float32](3, 4))
	b := must.M1(views.Zeros[float32](3, 3, 1))
	e, err := Add[float32](a, b)
	require.NoError(t, err)
	require.Equal(t, []int{3, 3, 4}, e.Shape().Dimensions)
	require.Equal(t, 3, e.Rank())
	require.Len(t, e.Operands(), 2)

	c := must.M1(views.Zeros[float32](2, 4))
	_, err = Add[float32](a, c)
	require.Error(t, err)
	var bErr *shapes.BroadcastError
	require.True(t, errors.As(err, &bErr))
	assert.Equal(t, 3, bErr.Want)
	assert.Equal(t, 2, bErr.Got)

	// Nested expressions propagate their broadcast shape.
	_, err = Mul[float32](e, c)
	require.Error(t, err)
	require.Panics(t, func() { _ = MustAdd[float32](a, c) })
}

func TestLazyEvaluation(t *testing.T) {
	lhsData := []int{1, 2, 3, 4}
	lhs := views.MustFromSlice(lhsData, 2, 2)
	rhs := views.MustFromSlice([]int{10, 20}, 2)

	var numCalls int
	e, err := Map[int](func(values ...int) int {
		numCalls++
		return values[0] * values[1]
	}, lhs, rhs)
	require.NoError(t, err)
	require.Equal(t, 0, numCalls, "nothing should be computed at construction")

	require.Equal(t, 3*10, e.At(1, 0))
	require.Equal(t, 1, numCalls)
	require.Equal(t, 3*10, e.At(1, 0))
	require.Equal(t, 2, numCalls, "values should not be cached")

	// Changes to the operands after construction are visible.
	lhsData[2] = 5
	require.Equal(t, 5*10, e.At(1, 0))
	rhs.Set(7, 0)
	require.Equal(t, 5*7, e.At(1, 0))

	// A cloned operand is a snapshot.
	snapshot := MustMap[int](func(values ...int) int { return values[0] }, lhs.Clone())
	lhsData[0] = -1
	require.Equal(t, 1, snapshot.At(0, 0))
}

func TestFusedComposition(t *testing.T) {
	a := views.MustFromSlice(sequence(6), 2, 3)
	b := views.MustFromSlice([]int{10, 20, 30}, 3)
	c := views.MustFromSlice([]int{100, 200}, 2, 1)

	sum := MustAdd[int](MustAdd[int](a, b), c)
	require.Equal(t, []int{2, 3}, sum.Shape().Dimensions)
	for i := range 2 {
		for j := range 3 {
			assert.Equal(t, a.At(i, j)+b.At(j)+c.At(i, 0), sum.At(i, j), "at (%d, %d)", i, j)
		}
	}
	require.Equal(t, "111 122 133\n214 225 236\n", sum.String())
}

func TestExtraIndicesForwarded(t *testing.T) {
	v := views.MustFromSlice(sequence(9), 3, 3)
	e := MustAdd[int](v, Const(1))
	require.Equal(t, 9, e.At(2, 1))
	require.Equal(t, e.At(2, 1), e.At(5, 10, 2, 1))
}

func TestBroadcastAssignment(t *testing.T) {
	row := views.MustFromSlice([]int{-1000, 1, -1000}, 3)
	zeros := must.M1(views.Zeros[int](3, 3))
	qf := MustAdd[int](zeros, row)
	require.Equal(t, []int{3, 3}, qf.Shape().Dimensions)

	res := must.M1(views.Zeros[int](3, 3))
	require.NoError(t, res.Assign(qf))
	for i := range 3 {
		for j := range 3 {
			require.Equal(t, qf.At(i, j), res.At(i, j))
		}
	}
	require.Equal(t, []int{-1000, 1, -1000, -1000, 1, -1000, -1000, 1, -1000}, res.Values())
	require.Equal(t, "-1000 1 -1000\n-1000 1 -1000\n-1000 1 -1000\n", res.String())

	// Destination too small for the expression's shape.
	small := must.M1(views.Zeros[int](2, 3))
	require.Error(t, small.Assign(qf))
}

func TestArithmetic(t *testing.T) {
	x := views.MustFromSlice([]float64{1, -2, 3, -4}, 2, 2)
	y := views.MustFromSlice([]float64{2, 4}, 1, 2)

	require.Equal(t, []float64{-1, -6, 1, -8}, must.M1(Materialize[float64](must.M1(Sub[float64](x, y)))).Values())
	require.Equal(t, []float64{2, -8, 6, -16}, must.M1(Materialize[float64](MustMul[float64](x, y))).Values())
	require.Equal(t, []float64{0.5, -0.5, 1.5, -1}, must.M1(Materialize[float64](MustDiv[float64](x, y))).Values())
	require.Equal(t, []float64{2, 4, 3, 4}, must.M1(Materialize[float64](must.M1(Max[float64](x, y)))).Values())
	require.Equal(t, []float64{1, -2, 2, -4}, must.M1(Materialize[float64](must.M1(Min[float64](x, y)))).Values())
	require.Equal(t, []float64{-1, 2, -3, 4}, must.M1(Materialize[float64](must.M1(Neg[float64](x)))).Values())
	require.Equal(t, []float64{3, 0, 5, -2}, must.M1(Materialize[float64](MustAdd[float64](x, Const(2.0)))).Values())

	// Unary and binary maps.
	sq := must.M1(MapUnary[float64](func(v float64) float64 { return v * v }, x))
	require.Equal(t, 16.0, sq.At(1, 1))
	diff := must.M1(MapBinary[float64](func(a, b float64) float64 { return a - 2*b }, x, y))
	require.Equal(t, -12.0, diff.At(1, 1))

	_, err := Map[float64](nil, x)
	require.Error(t, err)
	_, err = MapBinary[float64](nil, x, y)
	require.Error(t, err)
	_, err = Add[float64](x, nil)
	require.Error(t, err)
}

func TestConstant(t *testing.T) {
	c := Const(5)
	require.True(t, c.Shape().IsScalar())
	require.Equal(t, 5, c.At())
	require.Equal(t, 5, c.At(1, 2, 3))

	v := must.M1(Materialize[int](c))
	require.Equal(t, 0, v.Rank())
	require.Equal(t, 5, v.At())
}

func TestMaterializeParallel(t *testing.T) {
	a := views.MustFromSlice(sequence(4*5*6), 4, 5, 6)
	b := views.MustFromSlice(sequence(6), 6)
	e := MustMul[int](a, b)
	want := must.M1(Materialize[int](e))

	for _, parallelism := range []int{0, 2, -1} {
		pool := workerspool.NewWithParallelism(parallelism)
		got, err := MaterializeParallel[int](pool, e)
		require.NoError(t, err)
		require.Equal(t, want.Values(), got.Values(), "parallelism=%d", parallelism)
	}
}

func TestFloat16(t *testing.T) {
	x := views.MustFromSlice([]float16.Float16{
		float16.Fromfloat32(1), float16.Fromfloat32(2.5),
		float16.Fromfloat32(-3), float16.Fromfloat32(0.25),
	}, 2, 2)
	half := MustMap[float16.Float16](func(values ...float16.Float16) float16.Float16 {
		return float16.Fromfloat32(values[0].Float32() / 2)
	}, x)
	require.Equal(t, float32(1.25), half.At(0, 1).Float32())
	require.Equal(t, "0.5 1.25\n-1.5 0.125\n", half.String())
}

func TestAssertValid(t *testing.T) {
	var e *Expr[int]
	require.Panics(t, func() { e.AssertValid() })
	require.Panics(t, func() { _ = (&Expr[int]{}).At(0) })
}

func TestMapCopiesOperands(t *testing.T) {
	a := views.MustFromSlice(sequence(4), 2, 2)
	operands := []Operand[int]{a, a}
	e, err := Map[int](func(values ...int) int { return values[0] + values[1] }, operands...)
	require.NoError(t, err)

	// Replacing an element of the caller's slice must not swap the operand of the expression.
	operands[1] = views.MustFromSlice(sequence(9), 3, 3)
	require.Equal(t, []int{2, 2}, e.Shape().Dimensions)
	require.Equal(t, []int{2, 2}, e.Operands()[1].Shape().Dimensions)
	require.Equal(t, 8, e.At(1, 1))
}

func TestNilOperands(t *testing.T) {
	a := views.MustFromSlice(sequence(4), 2, 2)
	var nilView *views.View[int]
	var nilExpr *Expr[int]

	_, err := Add[int](a, nilView)
	require.Error(t, err)
	require.Contains(t, err.Error(), "operand #1 is nil")
	_, err = Neg[int](nilExpr)
	require.Error(t, err)
	_, err = Map[int](func(values ...int) int { return values[0] }, nil)
	require.Error(t, err)
	_, err = Materialize[int](nilView)
	require.Error(t, err)

	// Constants are values, not nil pointers.
	_, err = Add[int](a, Const(3))
	require.NoError(t, err)
}
