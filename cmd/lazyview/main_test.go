// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"testing"

	"github.com/gomlx/lazyview/pkg/core/traverse"
	"github.com/gomlx/lazyview/pkg/support/workerspool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainRenderer() (*renderer, *bytes.Buffer) {
	var buf bytes.Buffer
	return &renderer{w: &buf, opts: traverse.DefaultPrintOptions}, &buf
}

func TestGridScenario(t *testing.T) {
	r, buf := plainRenderer()
	gridScenario(r)
	out := buf.String()
	assert.Contains(t, out, "1 2 3\n4 5 6\n7 8 9\n")
	assert.Contains(t, out, "v(2, 1): 8\n")
	assert.Contains(t, out, "v(5, 10, 2, 1): 8\n")
	assert.Contains(t, out, "strides: [3 1]\n")
}

func TestBroadcastScenario(t *testing.T) {
	r, buf := plainRenderer()
	broadcastScenario(r, workerspool.NewWithParallelism(2))
	require.Contains(t, buf.String(), "-1000 1 -1000\n-1000 1 -1000\n-1000 1 -1000\n")
	require.Contains(t, buf.String(), "row strides: [1]\n")
}

func TestShapesScenario(t *testing.T) {
	r, buf := plainRenderer()
	shapesScenario(r)
	out := buf.String()
	assert.Contains(t, out, "[3 4] + [3 3 1]: [3 3 4]\n")
	assert.Contains(t, out, "[3] + [3 3]: [3 3]\n")
	assert.Contains(t, out, "[3 4] + [2 4]: incompatible shapes")
}
