// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package editgraph

import (
	"fmt"
	"math"
)

// Builder is implemented by Graph and Inertial: both compute an edit path
// for a pair of byte sequences and replay it, in reverse, via a Walker.
type Builder interface {
	Build(x, y []byte) error
	Walk() (*Walker, error)
	Dims() (n, m int)
	Distance() (uint32, error)
	Release()
}

// TransitionCosts is the cost of following an operation, the first index,
// with another, the second index. Costs into Stop are never incurred
// other than to end a path, and costs out of Stop are incurred by the
// first operation of a path.
type TransitionCosts [4][4]uint32

// DefaultTransitionCosts approximate the size of a serialized script:
// starting a run costs two bytes more than extending one, inserted bytes
// cost one byte each and deleted and matched bytes are free to extend.
var DefaultTransitionCosts = TransitionCosts{
	//       stop delete insert match
	Stop:   {0, 2, 3, 2},
	Delete: {0, 0, 3, 2},
	Insert: {0, 2, 1, 2},
	Match:  {0, 2, 3, 0},
}

func (tc *TransitionCosts) max() uint64 {
	var m uint32
	for _, row := range tc {
		for _, c := range row {
			m = max(m, c)
		}
	}
	return uint64(m)
}

// WithTransitionCosts sets the costs used by an Inertial graph. It has no
// effect on a Graph.
func WithTransitionCosts(tc TransitionCosts) Option {
	return func(o *options) {
		o.costs = &tc
	}
}

const unreachable = math.MaxUint32

func addCost(a, b uint32) uint32 {
	if a == unreachable || b == unreachable {
		return unreachable
	}
	return a + b
}

// Inertial is an edit graph that minimizes the total transition cost of
// its path rather than the number of operations, so that it prefers
// fewer, longer runs of the same operation. For example, with the
// default costs "Hello world!" -> "Hellish cruel world!" yields
// =4, -1 "o", +9 "ish cruel", =7 rather than interleaving single byte
// matches with the inserted bytes.
//
// The path is computed by Build and replayed by the same Walker as is
// used for a Graph. Distance returns the number of steps in that path,
// which may be more than for a Graph; Cost returns its total cost.
type Inertial struct {
	path  Graph
	costs TransitionCosts
	// leave[op][pos] is the least cost of any path to pos that is followed
	// by op, including the transition into op.
	leave [3][]uint32
	trail []int
	cost  uint32
}

// leave indices.
const (
	leaveDelete = iota
	leaveInsert
	leaveMatch
)

// NewInertial returns a new, unbuilt, Inertial graph. It accepts the same
// options as New as well as WithTransitionCosts.
func NewInertial(opts ...Option) *Inertial {
	ig := &Inertial{path: *New(opts...), costs: DefaultTransitionCosts}
	if ig.path.opts.costs != nil {
		ig.costs = *ig.path.opts.costs
	}
	return ig
}

// Build computes the least cost path from X to Y, replacing any previously
// computed path. It fails with ErrCapacityExceeded in the same cases as
// Graph.Build and also if the cost of a path could overflow.
func (ig *Inertial) Build(x, y []byte) error {
	g := &ig.path
	g.generation++
	cells, err := g.checkCapacity(len(x), len(y))
	if err == nil {
		if steps := uint64(len(x)) + uint64(len(y)) + 1; ig.costs.max() > (unreachable-1)/steps {
			err = fmt.Errorf("%w: a path of %v operations may cost more than %v", ErrCapacityExceeded, steps, uint32(unreachable-1))
		}
	}
	if err != nil {
		g.built = false
		return err
	}
	g.x = withBlank(g.x, x)
	g.y = withBlank(g.y, y)
	g.tbl.reset(len(x), len(y), cells)
	for i := range ig.leave {
		if cap(ig.leave[i]) < cells {
			ig.leave[i] = make([]uint32, cells)
		}
		ig.leave[i] = ig.leave[i][:cells]
	}
	ig.fill()
	ig.trace()
	g.built = true
	return nil
}

// entry returns the least cost of reaching pos via each operation.
func (ig *Inertial) entry(x, y, pos int) (del, ins, match uint32) {
	w := ig.path.tbl.width
	del, ins, match = unreachable, unreachable, unreachable
	if x > 0 {
		del = ig.leave[leaveDelete][pos-1]
	}
	if y > 0 {
		ins = ig.leave[leaveInsert][pos-w]
	}
	if x > 0 && y > 0 && ig.path.x[x] == ig.path.y[y] {
		match = ig.leave[leaveMatch][pos-w-1]
	}
	return
}

func (ig *Inertial) fill() {
	tc := &ig.costs
	w := ig.path.tbl.width
	ld, li, lm := ig.leave[leaveDelete], ig.leave[leaveInsert], ig.leave[leaveMatch]
	for y := 0; y < ig.path.tbl.height; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			pos := row + x
			if pos == 0 {
				ld[0], li[0], lm[0] = tc[Stop][Delete], tc[Stop][Insert], tc[Stop][Match]
				continue
			}
			d, i, m := ig.entry(x, y, pos)
			ld[pos] = min(addCost(d, tc[Delete][Delete]), addCost(i, tc[Insert][Delete]), addCost(m, tc[Match][Delete]))
			li[pos] = min(addCost(i, tc[Insert][Insert]), addCost(d, tc[Delete][Insert]), addCost(m, tc[Match][Insert]))
			lm[pos] = min(addCost(m, tc[Match][Match]), addCost(d, tc[Delete][Match]), addCost(i, tc[Insert][Match]))
		}
	}
}

// trace follows the least cost path back from (n, m) and records it in
// the table so that it can be replayed by a Walker. Ties prefer Match,
// then Insert, then Delete. Cells that are not on the path are Stop.
func (ig *Inertial) trace() {
	tbl := &ig.path.tbl
	clear(tbl.ops)
	clear(tbl.lengths)
	ig.trail = ig.trail[:0]
	x, y := tbl.width-1, tbl.height-1
	prev := Stop
	ig.cost = 0
	for pos := tbl.offset(x, y); pos != 0; pos = tbl.offset(x, y) {
		d, i, m := ig.entry(x, y, pos)
		op, cost := Match, addCost(m, ig.costs[Match][prev])
		if c := addCost(i, ig.costs[Insert][prev]); c < cost {
			op, cost = Insert, c
		}
		if c := addCost(d, ig.costs[Delete][prev]); c < cost {
			op, cost = Delete, c
		}
		if prev == Stop {
			ig.cost = cost
		}
		tbl.ops[pos] = op
		ig.trail = append(ig.trail, pos)
		switch op {
		case Delete:
			x--
		case Insert:
			y--
		case Match:
			x--
			y--
		}
		prev = op
	}
	for i, pos := range ig.trail {
		tbl.lengths[pos] = uint32(len(ig.trail) - i)
	}
}

// Built returns true if the graph has been successfully built and not
// since released.
func (ig *Inertial) Built() bool {
	return ig.path.Built()
}

// Dims returns the lengths of X and Y.
func (ig *Inertial) Dims() (n, m int) {
	return ig.path.Dims()
}

// Distance returns the number of operations in the least cost path.
func (ig *Inertial) Distance() (uint32, error) {
	return ig.path.Distance()
}

// Cost returns the total transition cost of the least cost path.
func (ig *Inertial) Cost() (uint32, error) {
	if !ig.path.built {
		return 0, fmt.Errorf("%w: graph has not been built", ErrInvalidState)
	}
	return ig.cost, nil
}

// Walk returns a new Walker positioned at (n, m) that replays the least
// cost path.
func (ig *Inertial) Walk() (*Walker, error) {
	return ig.path.Walk()
}

// Release frees the storage used by the graph and invalidates all existing
// Walkers.
func (ig *Inertial) Release() {
	ig.path.Release()
	ig.leave = [3][]uint32{}
	ig.trail = nil
}
