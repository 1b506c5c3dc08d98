// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package storage

import (
	"testing"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwned(t *testing.T) {
	data := []int{1, 2, 3}
	b := Owned(data)
	require.Equal(t, Own, b.Ownership())
	require.Equal(t, 3, b.Len())

	// Changes on either side are not visible on the other.
	data[0] = 100
	require.Equal(t, 1, b.At(0))
	b.Set(1, 200)
	require.Equal(t, 2, data[1])
	*b.Ptr(2) = 300
	require.Equal(t, 300, b.At(2))
}

func TestBorrowed(t *testing.T) {
	data := []float32{1, 2, 3}
	b := Borrowed(data)
	require.Equal(t, Borrow, b.Ownership())
	require.False(t, b.IsReadOnly())

	data[0] = 100
	require.Equal(t, float32(100), b.At(0))
	b.Set(1, 200)
	require.Equal(t, float32(200), data[1])
	b.MutableData(func(d []float32) { d[2] = 300 })
	require.Equal(t, float32(300), data[2])
}

func TestReadOnly(t *testing.T) {
	data := []int{1, 2, 3}
	b := ReadOnly(data)
	require.True(t, b.IsReadOnly())

	data[0] = 7
	require.Equal(t, 7, b.At(0))
	b.ConstData(func(d []int) {
		require.Equal(t, []int{7, 2, 3}, d)
	})

	for name, fn := range map[string]func(){
		"Set":         func() { b.Set(0, 1) },
		"Ptr":         func() { _ = b.Ptr(0) },
		"MutableData": func() { b.MutableData(func([]int) {}) },
	} {
		exception := exceptions.Try(fn)
		require.NotNil(t, exception, "%s should have panicked", name)
		err, ok := exception.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, ErrReadOnly), "%s: unexpected error %v", name, err)
	}

	// A clone is owned and writable.
	c := b.Clone()
	require.Equal(t, Own, c.Ownership())
	c.Set(0, 11)
	require.Equal(t, 7, data[0])
}

func TestMake(t *testing.T) {
	b := Make[float64](4)
	require.Equal(t, 4, b.Len())
	require.Equal(t, Own, b.Ownership())
	require.Equal(t, 0.0, b.At(3))
	require.Panics(t, func() { _ = Make[int](-1) })
	require.Panics(t, func() { _ = New([]int{1}, Ownership(17)) })
	require.Equal(t, "BorrowReadOnly", BorrowReadOnly.String())
}
