// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package editgraph

import (
	"fmt"

	"cloudeng.io/errors"
)

// Op represents the operation recorded for a single cell of the graph.
type Op uint8

// Values for Op.
const (
	// Stop is recorded only for the origin, (0, 0).
	Stop Op = iota
	// Delete consumes one byte from X.
	Delete
	// Insert consumes one byte from Y.
	Insert
	// Match consumes one identical byte from both X and Y.
	Match
)

var opNames = map[Op]string{
	Stop:   "stop",
	Delete: "delete",
	Insert: "insert",
	Match:  "match",
}

// String implements fmt.Stringer.
func (o Op) String() string {
	if n, ok := opNames[o]; ok {
		return n
	}
	return fmt.Sprintf("Op(%d)", uint8(o))
}

var (
	// ErrCapacityExceeded is returned when the graph required for a pair
	// of sequences is larger than is allowed or can be represented.
	ErrCapacityExceeded = errors.New("edit graph capacity exceeded")

	// ErrInvalidState is returned when a graph is used before it has been
	// built or when a Walker is used after its graph was rebuilt or
	// released.
	ErrInvalidState = errors.New("edit graph is not in a valid state")

	// ErrValueOnStop is returned when the value at the origin is requested.
	ErrValueOnStop = errors.New("no value is associated with the stop operation")
)
