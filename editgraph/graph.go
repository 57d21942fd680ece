// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package editgraph

import (
	"fmt"
	"math"
)

// MaxRunLength is the largest path length that can be recorded for a cell.
// Since every operation consumes at least one byte, the path to (n, m) is
// at most n+m long.
const MaxRunLength = math.MaxUint32 - 1

type options struct {
	maxCells     int
	maxRunLength uint32
	costs        *TransitionCosts
}

// Option represents an option to New.
type Option func(*options)

// WithMaxCells bounds the size of the table, in cells, that may be
// allocated by Build. A value of zero or less removes the bound.
func WithMaxCells(n int) Option {
	return func(o *options) {
		o.maxCells = n
	}
}

// WithMaxRunLength lowers the longest path that Build will accept. Values
// of zero or greater than MaxRunLength are treated as MaxRunLength.
func WithMaxRunLength(n uint32) Option {
	return func(o *options) {
		o.maxRunLength = n
	}
}

// Graph represents the edit graph for a pair of byte sequences, X and Y.
type Graph struct {
	opts options
	// x and y have a leading 'blank' slot so that they are indexed
	// from 1 in the same way as the table.
	x, y       []byte
	tbl        table
	built      bool
	generation uint64
}

// New returns a new, unbuilt, Graph.
func New(opts ...Option) *Graph {
	g := &Graph{}
	for _, fn := range opts {
		fn(&g.opts)
	}
	if g.opts.maxRunLength == 0 || g.opts.maxRunLength > MaxRunLength {
		g.opts.maxRunLength = MaxRunLength
	}
	return g
}

func (g *Graph) checkCapacity(n, m int) (int, error) {
	cells, ok := cellsFor(n, m)
	if !ok {
		return 0, fmt.Errorf("%w: a %v x %v table cannot be represented", ErrCapacityExceeded, n, m)
	}
	if g.opts.maxCells > 0 && cells > g.opts.maxCells {
		return 0, fmt.Errorf("%w: %v cells are required, at most %v are allowed", ErrCapacityExceeded, cells, g.opts.maxCells)
	}
	if uint64(n)+uint64(m) > uint64(g.opts.maxRunLength) {
		return 0, fmt.Errorf("%w: a path of up to %v operations exceeds the limit of %v", ErrCapacityExceeded, uint64(n)+uint64(m), g.opts.maxRunLength)
	}
	return cells, nil
}

// Build computes the edit graph for x and y, replacing any previously
// computed graph. The contents of x and y are copied. If the graph would
// exceed the configured capacity ErrCapacityExceeded is returned and
// the graph is left unbuilt. Build invalidates all existing Walkers.
func (g *Graph) Build(x, y []byte) error {
	g.generation++
	cells, err := g.checkCapacity(len(x), len(y))
	if err != nil {
		g.built = false
		return err
	}
	g.x = withBlank(g.x, x)
	g.y = withBlank(g.y, y)
	g.tbl.reset(len(x), len(y), cells)
	g.fill()
	g.built = true
	return nil
}

func withBlank(buf, src []byte) []byte {
	if cap(buf) < len(src)+1 {
		buf = make([]byte, len(src)+1)
	}
	buf = buf[:len(src)+1]
	buf[0] = 0
	copy(buf[1:], src)
	return buf
}

func (g *Graph) fill() {
	w := g.tbl.width
	ops, lengths := g.tbl.ops, g.tbl.lengths
	for y := 0; y < g.tbl.height; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			pos := row + x
			switch {
			case x == 0 && y == 0:
				ops[pos], lengths[pos] = Stop, 0
			case x > 0 && y > 0 && g.x[x] == g.y[y]:
				ops[pos], lengths[pos] = Match, lengths[pos-w-1]+1
			case y == 0:
				// No insert predecessor.
				ops[pos], lengths[pos] = Delete, lengths[pos-1]+1
			case x == 0:
				// No delete predecessor.
				ops[pos], lengths[pos] = Insert, lengths[pos-w]+1
			default:
				dlen, ilen := lengths[pos-1]+1, lengths[pos-w]+1
				if dlen <= ilen {
					ops[pos], lengths[pos] = Delete, dlen
				} else {
					ops[pos], lengths[pos] = Insert, ilen
				}
			}
		}
	}
}

// Built returns true if the graph has been successfully built and not
// since released.
func (g *Graph) Built() bool {
	return g.built
}

// Dims returns the lengths of X and Y.
func (g *Graph) Dims() (n, m int) {
	if !g.built {
		return 0, 0
	}
	return g.tbl.width - 1, g.tbl.height - 1
}

// Cell returns the operation and run length recorded for (x, y).
func (g *Graph) Cell(x, y int) (Op, uint32, error) {
	if !g.built {
		return Stop, 0, fmt.Errorf("%w: graph has not been built", ErrInvalidState)
	}
	if !g.tbl.contains(x, y) {
		return Stop, 0, fmt.Errorf("%w: cell (%v, %v) is outside of the %v x %v graph", ErrInvalidState, x, y, g.tbl.width-1, g.tbl.height-1)
	}
	pos := g.tbl.offset(x, y)
	return g.tbl.ops[pos], g.tbl.lengths[pos], nil
}

// Distance returns the run length of the final cell, (n, m), that is, the
// number of operations in the shortest edit script from X to Y.
func (g *Graph) Distance() (uint32, error) {
	n, m := g.Dims()
	_, l, err := g.Cell(n, m)
	return l, err
}

// Walk returns a new Walker positioned at (n, m).
func (g *Graph) Walk() (*Walker, error) {
	if !g.built {
		return nil, fmt.Errorf("%w: graph has not been built", ErrInvalidState)
	}
	return &Walker{
		g:          g,
		generation: g.generation,
		x:          g.tbl.width - 1,
		y:          g.tbl.height - 1,
	}, nil
}

// Release frees the storage used by the graph and invalidates all existing
// Walkers. The graph may be built again.
func (g *Graph) Release() {
	g.generation++
	g.built = false
	g.x, g.y = nil, nil
	g.tbl.release()
}
