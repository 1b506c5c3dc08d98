// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// lazyview runs a few scenarios of strided views and lazy broadcasting expressions, and prints
// the results.
//
// Usage:
//
//	lazyview [-scenarios=grid,broadcast,shapes] [-precision=-1] [-parallelism=N] [-plain]
package main

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/lazyview/pkg/core/lazy"
	"github.com/gomlx/lazyview/pkg/core/shapes"
	"github.com/gomlx/lazyview/pkg/core/traverse"
	"github.com/gomlx/lazyview/pkg/core/views"
	"github.com/gomlx/lazyview/pkg/support/workerspool"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
)

var allScenarios = []string{"grid", "broadcast", "shapes"}

var (
	flagScenarios = flag.String("scenarios", strings.Join(allScenarios, ","),
		"Comma-separated list of scenarios to run. Valid values: "+strings.Join(allScenarios, ", "))
	flagPrecision   = flag.Int("precision", -1, "Precision used to print floating point values, -1 prints the shortest exact representation.")
	flagParallelism = flag.Int("parallelism", -1, "Maximum number of goroutines used on assignments. 0 disables parallelism, -1 uses the number of CPUs.")
	flagPlain       = flag.Bool("plain", false, "Print values as plain text, even if the terminal supports colors.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	scenarios := strings.Split(*flagScenarios, ",")
	for _, name := range scenarios {
		if !slices.Contains(allScenarios, name) {
			klog.Errorf("Unknown scenario %q, see 'lazyview -help'.", name)
			os.Exit(1)
		}
	}

	pool := workerspool.New()
	if *flagParallelism >= 0 {
		pool.SetMaxParallelism(*flagParallelism)
	}
	r := newRenderer(*flagPlain, traverse.DefaultPrintOptions.WithPrecision(*flagPrecision))

	for _, name := range allScenarios {
		if !slices.Contains(scenarios, name) {
			continue
		}
		switch name {
		case "grid":
			gridScenario(r)
		case "broadcast":
			broadcastScenario(r, pool)
		case "shapes":
			shapesScenario(r)
		}
	}
}

// gridScenario shows indexing of a rank-2 view, including extra leading indices.
func gridScenario(r *renderer) {
	data := make([]float64, 9)
	for i := range data {
		data[i] = float64(i + 1)
	}
	grid := views.MustFromSlice(data, 3, 3)
	r.title("Grid")
	renderValues[float64](r, grid)
	r.summary(
		[2]string{"shape", grid.Shape().String()},
		[2]string{"strides", fmt.Sprint(grid.Strides())},
		[2]string{"elements", humanize.Comma(int64(grid.Shape().Size()))},
		[2]string{"buffer", humanize.Bytes(uint64(8 * grid.Buffer().Len()))},
		[2]string{"v(2, 1)", traverse.FormatValue(grid.At(2, 1), r.opts.Precision)},
		[2]string{"v(5, 10, 2, 1)", traverse.FormatValue(grid.At(5, 10, 2, 1), r.opts.Precision)},
	)
}

// broadcastScenario adds a row to every row of a matrix of zeros, and assigns the lazy result.
func broadcastScenario(r *renderer, pool *workerspool.Pool) {
	row := views.MustFromSlice([]float64{-1000, 1, -1000}, 3)
	zeros := must.M1(views.Zeros[float64](3, 3))
	qf := lazy.MustAdd[float64](zeros, row)
	res := must.M1(views.Zeros[float64](3, 3))
	must.M(traverse.AssignParallel[float64](pool, res, qf))

	r.title("Broadcast: zeros[3 3] + row[3]")
	renderValues[float64](r, res)
	r.summary(
		[2]string{"expression shape", qf.Shape().String()},
		[2]string{"row strides", fmt.Sprint(row.Strides())},
		[2]string{"parallelism", fmt.Sprint(pool.MaxParallelism())},
	)
}

// shapesScenario shows broadcast shape inference, including a mismatch.
func shapesScenario(r *renderer) {
	r.title("Broadcast shapes")
	var rows [][2]string
	for _, pair := range [][2]shapes.Shape{
		{shapes.Make(3, 4), shapes.Make(3, 3, 1)},
		{shapes.Make(3), shapes.Make(3, 3)},
		{shapes.Make(3, 4), shapes.Make(2, 4)},
	} {
		label := fmt.Sprintf("%s + %s", pair[0], pair[1])
		result, err := shapes.Broadcast(pair[0], pair[1])
		if err != nil {
			rows = append(rows, [2]string{label, err.Error()})
			continue
		}
		rows = append(rows, [2]string{label, result.String()})
	}
	r.summary(rows...)
}
