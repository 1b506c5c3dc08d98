// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/gomlx/lazyview/pkg/core/traverse"
	"github.com/muesli/termenv"
	"k8s.io/klog/v2"
)

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)

	oddRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFF")).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#999")).
			PaddingLeft(1).PaddingRight(1)

	titleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 4, 1, 4)
)

// renderer prints values either as styled tables or as plain text, if the terminal
// doesn't support colors or if plain output was requested.
type renderer struct {
	w      io.Writer
	styled bool
	opts   traverse.PrintOptions
}

func newRenderer(plain bool, opts traverse.PrintOptions) *renderer {
	profile := termenv.EnvColorProfile()
	styled := !plain && profile != termenv.Ascii
	klog.V(1).Infof("lazyview: color profile %d, styled output %v", profile, styled)
	return &renderer{w: os.Stdout, styled: styled, opts: opts}
}

func newPlainTable(withHeader bool) *lgtable.Table {
	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			if withHeader && row == lgtable.HeaderRow {
				s = headerRowStyle
				return
			}
			if row%2 == 0 {
				s = evenRowStyle
			} else {
				s = oddRowStyle
			}
			if col == 0 {
				s = s.Align(lipgloss.Right)
			} else {
				s = s.Align(lipgloss.Left)
			}
			return
		})
}

func (r *renderer) title(title string) {
	if r.styled {
		_, _ = fmt.Fprintln(r.w, titleStyle.Render(title))
		return
	}
	_, _ = fmt.Fprintf(r.w, "\n== %s\n", title)
}

// summary prints key/value rows.
func (r *renderer) summary(rows ...[2]string) {
	if !r.styled {
		for _, row := range rows {
			_, _ = fmt.Fprintf(r.w, "%s: %s\n", row[0], row[1])
		}
		return
	}
	table := newPlainTable(false)
	for _, row := range rows {
		table.Row(row[0], row[1])
	}
	_, _ = fmt.Fprintln(r.w, table.Render())
}

// renderValues prints a view or expression. Rank-2 values are rendered as a table with
// one column per coordinate of the last axis when styled.
func renderValues[T any](r *renderer, x traverse.Readable[T]) {
	shape := x.Shape()
	if !r.styled || shape.Rank() != 2 {
		if err := traverse.Fprint(r.w, x, r.opts); err != nil {
			klog.Errorf("Failed to print values: %+v", err)
		}
		return
	}
	table := newPlainTable(true)
	header := make([]string, 0, shape.Dimensions[1]+1)
	header = append(header, "")
	for col := range shape.Dimensions[1] {
		header = append(header, fmt.Sprint(col))
	}
	table.Headers(header...)
	for row := range shape.Dimensions[0] {
		cells := make([]string, 0, len(header))
		cells = append(cells, fmt.Sprint(row))
		for col := range shape.Dimensions[1] {
			cells = append(cells, traverse.FormatValue(x.At(row, col), r.opts.Precision))
		}
		table.Row(cells...)
	}
	_, _ = fmt.Fprintln(r.w, table.Render())
}
