// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package chunked diffs large inputs in bounded memory by splitting them
// into aligned windows and diffing each pair of windows, in parallel,
// with its own edit graph. The resulting script always transforms the
// original into the target but is only minimal within each window.
package chunked

import (
	"bytes"
	"context"
	"fmt"
	"runtime"

	"cloudeng.io/badiff/editgraph"
	"cloudeng.io/badiff/script"
	"cloudeng.io/logging/ctxlog"
	"cloudeng.io/sync/errgroup"
)

// DefaultChunkSize is the window size used when none is specified.
const DefaultChunkSize = 1024

// GraphFactory returns a graph that can hold at least maxCells cells.
type GraphFactory func(maxCells int) editgraph.Builder

// EditGraph is a GraphFactory for editgraph.Graph, which yields the
// shortest script for each window.
func EditGraph(maxCells int) editgraph.Builder {
	return editgraph.New(editgraph.WithMaxCells(maxCells))
}

// InertialGraph is a GraphFactory for editgraph.Inertial, which yields
// the script for each window with the fewest, longest, runs.
func InertialGraph(maxCells int) editgraph.Builder {
	return editgraph.NewInertial(editgraph.WithMaxCells(maxCells))
}

type options struct {
	chunkSize   int
	concurrency int
	newGraph    GraphFactory
}

// Option represents an option to Diff.
type Option func(*options)

// WithChunkSize sets the size of the windows that the inputs are split into.
func WithChunkSize(n int) Option {
	return func(o *options) {
		o.chunkSize = n
	}
}

// WithConcurrency sets the number of windows that may be diffed at the
// same time. Values of zero or less use runtime.GOMAXPROCS(0).
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithGraph sets the factory used to create the graph for each worker.
// The default is EditGraph.
func WithGraph(fn GraphFactory) Option {
	return func(o *options) {
		o.newGraph = fn
	}
}

func window(b []byte, i, size int) []byte {
	start := i * size
	if start >= len(b) {
		return nil
	}
	return b[start:min(start+size, len(b))]
}

func numChunks(n, size int) int {
	return (n + size - 1) / size
}

func diffChunk(g editgraph.Builder, x, y []byte) (script.Script, error) {
	switch {
	case len(x) == 0:
		return script.Script{}.Append(script.Run{Op: editgraph.Insert, Len: len(y), Data: bytes.Clone(y)}), nil
	case len(y) == 0:
		return script.Script{}.Append(script.Run{Op: editgraph.Delete, Len: len(x), Data: bytes.Clone(x)}), nil
	}
	return script.Diff(g, x, y)
}

// Diff returns a script that transforms x into y.
func Diff(ctx context.Context, x, y []byte, opts ...Option) (script.Script, error) {
	o := options{chunkSize: DefaultChunkSize, newGraph: EditGraph}
	for _, fn := range opts {
		fn(&o)
	}
	if o.chunkSize <= 0 {
		return nil, fmt.Errorf("invalid chunk size: %v", o.chunkSize)
	}
	if o.concurrency <= 0 {
		o.concurrency = runtime.GOMAXPROCS(0)
	}
	if o.newGraph == nil {
		o.newGraph = EditGraph
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	chunks := max(numChunks(len(x), o.chunkSize), numChunks(len(y), o.chunkSize))
	results := make([]script.Script, chunks)

	graphs := make(chan editgraph.Builder, o.concurrency)
	maxCells := (o.chunkSize + 1) * (o.chunkSize + 1)
	for i := 0; i < o.concurrency; i++ {
		graphs <- o.newGraph(maxCells)
	}

	logger := ctxlog.Logger(ctx)
	logger.Debug("diffing", "original", len(x), "target", len(y), "chunks", chunks, "chunk_size", o.chunkSize, "concurrency", o.concurrency)

	g, gctx := errgroup.WithContext(ctx)
schedule:
	for i := 0; i < chunks; i++ {
		var gr editgraph.Builder
		select {
		case <-gctx.Done():
			break schedule
		case gr = <-graphs:
		}
		g.Go(func() error {
			defer func() { graphs <- gr }()
			xw, yw := window(x, i, o.chunkSize), window(y, i, o.chunkSize)
			s, err := diffChunk(gr, xw, yw)
			if err != nil {
				return fmt.Errorf("chunk %v: %w", i, err)
			}
			results[i] = s
			logger.Debug("chunk diffed", "chunk", i, "original", len(xw), "target", len(yw), "steps", s.Steps())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var runs []script.Run
	for _, s := range results {
		runs = append(runs, s...)
	}
	var out script.Script
	return out.Append(runs...), nil
}
