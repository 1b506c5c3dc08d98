// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package traverse

import (
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// PrintOptions configures Fprint.
type PrintOptions struct {
	// Precision used for floating point values. -1 uses the smallest number of digits
	// necessary to represent the value exactly.
	Precision int

	// Separator written between elements of the same row.
	Separator string
}

// DefaultPrintOptions used by Sprint and by the String methods of views and expressions.
var DefaultPrintOptions = PrintOptions{Precision: -1, Separator: " "}

// WithPrecision returns a copy of the options with the given precision.
func (o PrintOptions) WithPrecision(precision int) PrintOptions {
	o.Precision = precision
	return o
}

// WithSeparator returns a copy of the options with the given separator.
func (o PrintOptions) WithSeparator(separator string) PrintOptions {
	o.Separator = separator
	return o
}

// Fprint writes all the values of x to w, one row (last axis) per line.
// For rank > 2, consecutive blocks of rows are separated by an empty line.
//
// Each element is read exactly once, so printing a lazy expression evaluates it at every coordinate.
func Fprint[T any](w io.Writer, x Readable[T], opts PrintOptions) (err error) {
	shape := x.Shape()
	rank := shape.Rank()
	write := func(s string) {
		if err != nil {
			return
		}
		_, err = io.WriteString(w, s)
		if err != nil {
			err = errors.Wrapf(err, "failed to print values of shape %s", shape)
		}
	}
	if shape.IsZeroSize() {
		write(shape.String() + "\n")
		return
	}
	Walk(shape, Visitor{
		Leaf: func(indices []int) {
			if rank > 0 && indices[rank-1] > 0 {
				write(opts.Separator)
			}
			write(FormatValue(x.At(indices...), opts.Precision))
		},
		RowEnd: func(axis int, indices []int) {
			if axis == rank-2 {
				write("\n")
				return
			}
			if indices[axis] < shape.Dimensions[axis]-1 {
				// Empty line between blocks, but not after the last one.
				write("\n")
			}
		},
	})
	if rank < 2 {
		write("\n")
	}
	return
}

// Sprint returns the values of x formatted with DefaultPrintOptions. See Fprint.
func Sprint[T any](x Readable[T]) string {
	return SprintWith(x, DefaultPrintOptions)
}

// SprintWith returns the values of x formatted with the given options. See Fprint.
func SprintWith[T any](x Readable[T], opts PrintOptions) string {
	var sb strings.Builder
	_ = Fprint(&sb, x, opts) // strings.Builder never fails.
	return sb.String()
}

// FormatValue formats one element. Floating point values (including float16.Float16) use the
// given precision, see PrintOptions.Precision.
func FormatValue(value any, precision int) string {
	switch v := value.(type) {
	case float16.Float16:
		return strconv.FormatFloat(float64(v.Float32()), 'g', precision, 32)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', precision, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', precision, 64)
	case complex64:
		return strconv.FormatComplex(complex128(v), 'g', precision, 64)
	case complex128:
		return strconv.FormatComplex(v, 'g', precision, 128)
	case fmt.Stringer:
		return v.String()
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'g', precision, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', precision, 64)
	default:
		return fmt.Sprint(value)
	}
}
