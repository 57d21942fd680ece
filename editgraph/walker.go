// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package editgraph

import "fmt"

// Walker is a cursor over a built Graph, or Inertial graph, that replays
// its edit script in reverse order. A Walker must not be shared between
// goroutines but any number of Walkers may be created for the same Graph.
type Walker struct {
	g          *Graph
	generation uint64
	x, y       int
}

func (w *Walker) valid() error {
	if w.g == nil || !w.g.built || w.g.generation != w.generation {
		return fmt.Errorf("%w: walker refers to a graph that has since been rebuilt or released", ErrInvalidState)
	}
	return nil
}

func (w *Walker) op() Op {
	return w.g.tbl.ops[w.g.tbl.offset(w.x, w.y)]
}

func (w *Walker) value(op Op) (byte, error) {
	switch op {
	case Delete:
		return w.g.x[w.x], nil
	case Insert, Match:
		return w.g.y[w.y], nil
	}
	return 0, ErrValueOnStop
}

func (w *Walker) advance(op Op) {
	switch op {
	case Delete:
		w.x--
	case Insert:
		w.y--
	case Match:
		w.x--
		w.y--
	}
}

// Op returns the operation at the current position. It is always Stop
// at the origin.
func (w *Walker) Op() (Op, error) {
	if err := w.valid(); err != nil {
		return Stop, err
	}
	return w.op(), nil
}

// Value returns the byte associated with the current operation: the byte
// being deleted from X for Delete, and the byte being inserted or retained
// from Y for Insert and Match. ErrValueOnStop is returned at the origin.
func (w *Walker) Value() (byte, error) {
	if err := w.valid(); err != nil {
		return 0, err
	}
	return w.value(w.op())
}

// Advance moves the cursor to the predecessor chosen by the current
// operation. It is a no-op at the origin.
func (w *Walker) Advance() error {
	if err := w.valid(); err != nil {
		return err
	}
	w.advance(w.op())
	return nil
}

// Next returns the current operation and its value and then advances.
// At the origin it returns Stop, 0 and a nil error.
func (w *Walker) Next() (Op, byte, error) {
	if err := w.valid(); err != nil {
		return Stop, 0, err
	}
	op := w.op()
	if op == Stop {
		return Stop, 0, nil
	}
	val, _ := w.value(op)
	w.advance(op)
	return op, val, nil
}

// Position returns the current cursor position.
func (w *Walker) Position() (x, y int) {
	return w.x, w.y
}
