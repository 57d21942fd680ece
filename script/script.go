// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package script converts the step by step output of an editgraph.Walker
// into edit scripts made up of runs of identical operations.
package script

import (
	"bytes"
	"fmt"
	"strings"

	"cloudeng.io/badiff/editgraph"
	"cloudeng.io/errors"
)

// ErrMismatch is returned by Apply when a script does not describe the
// input it is applied to.
var ErrMismatch = errors.New("edit script does not match its input")

// Run represents Len consecutive operations of the same type. Data holds
// the inserted or deleted bytes, in forward order, and is nil for Match.
type Run struct {
	Op   editgraph.Op
	Len  int
	Data []byte
}

// Script represents an edit script, in forward order, that transforms
// one byte sequence into another.
type Script []Run

func reversed(buf []byte) []byte {
	out := make([]byte, len(buf))
	for i, b := range buf {
		out[len(buf)-1-i] = b
	}
	return out
}

// EachReverse drives the supplied walker to the origin, calling fn for
// each run of identical operations in the order that they are encountered,
// that is, starting with the last run of the script. It allows for a
// script to be consumed without being materialized.
func EachReverse(w *editgraph.Walker, fn func(Run) error) error {
	var cur Run
	var buf []byte
	flush := func() error {
		if cur.Len == 0 {
			return nil
		}
		if cur.Op != editgraph.Match {
			cur.Data = reversed(buf)
		}
		err := fn(cur)
		cur, buf = Run{}, buf[:0]
		return err
	}
	for {
		op, val, err := w.Next()
		if err != nil {
			return err
		}
		if op == editgraph.Stop {
			return flush()
		}
		if cur.Len > 0 && cur.Op != op {
			if err := flush(); err != nil {
				return err
			}
		}
		cur.Op = op
		cur.Len++
		if op != editgraph.Match {
			buf = append(buf, val)
		}
	}
}

// FromWalker returns the forward script replayed by w.
func FromWalker(w *editgraph.Walker) (Script, error) {
	var runs Script
	if err := EachReverse(w, func(r Run) error {
		runs = append(runs, r)
		return nil
	}); err != nil {
		return nil, err
	}
	for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
		runs[i], runs[j] = runs[j], runs[i]
	}
	return runs, nil
}

// Diff builds g, an editgraph.Graph or editgraph.Inertial, for x and y
// and returns the resulting script.
func Diff(g editgraph.Builder, x, y []byte) (Script, error) {
	if err := g.Build(x, y); err != nil {
		return nil, err
	}
	w, err := g.Walk()
	if err != nil {
		return nil, err
	}
	return FromWalker(w)
}

// Append returns the script with the supplied runs appended, merging runs
// of the same operation. Empty runs are dropped. Neither the Data of the
// supplied runs nor the backing array of s is modified, so that a script
// may be extended more than once.
func (s Script) Append(runs ...Run) Script {
	shared := len(s)
	s = s[:shared:shared]
	for _, r := range runs {
		if r.Len == 0 {
			continue
		}
		if n := len(s); n > 0 && s[n-1].Op == r.Op {
			if n <= shared {
				// The last run still belongs to the caller.
				s = append(s[:n-1:n-1], s[n-1])
				shared = 0
			}
			last := &s[n-1]
			last.Len += r.Len
			if r.Op != editgraph.Match {
				last.Data = append(last.Data[:len(last.Data):len(last.Data)], r.Data...)
			}
			continue
		}
		s = append(s, r)
		shared = 0
	}
	return s
}

// Apply applies the script to x and returns the result.
func (s Script) Apply(x []byte) ([]byte, error) {
	out := make([]byte, 0, len(x))
	pos := 0
	for i, r := range s {
		if r.Op != editgraph.Match && len(r.Data) != r.Len {
			return nil, fmt.Errorf("%w: run %v: %v has %v bytes of data for a length of %v", ErrMismatch, i, r.Op, len(r.Data), r.Len)
		}
		switch r.Op {
		case editgraph.Match:
			if pos+r.Len > len(x) {
				return nil, fmt.Errorf("%w: run %v: match of %v bytes at offset %v overruns the input", ErrMismatch, i, r.Len, pos)
			}
			out = append(out, x[pos:pos+r.Len]...)
			pos += r.Len
		case editgraph.Delete:
			if pos+r.Len > len(x) || !bytes.Equal(x[pos:pos+r.Len], r.Data) {
				return nil, fmt.Errorf("%w: run %v: deleted bytes differ from the input at offset %v", ErrMismatch, i, pos)
			}
			pos += r.Len
		case editgraph.Insert:
			out = append(out, r.Data...)
		default:
			return nil, fmt.Errorf("%w: run %v: unexpected operation %v", ErrMismatch, i, r.Op)
		}
	}
	if pos != len(x) {
		return nil, fmt.Errorf("%w: %v trailing bytes were not consumed", ErrMismatch, len(x)-pos)
	}
	return out, nil
}

// Reverse returns the script that undoes s, that is, if s transforms
// X to Y then the returned script transforms Y to X.
func (s Script) Reverse() Script {
	rev := make(Script, len(s))
	for i, r := range s {
		switch r.Op {
		case editgraph.Delete:
			r.Op = editgraph.Insert
		case editgraph.Insert:
			r.Op = editgraph.Delete
		}
		rev[i] = r
	}
	return rev
}

// Steps returns the total number of operations in the script.
func (s Script) Steps() int {
	n := 0
	for _, r := range s {
		n += r.Len
	}
	return n
}

// Distance returns the number of bytes inserted or deleted by the script.
func (s Script) Distance() int {
	n := 0
	for _, r := range s {
		if r.Op != editgraph.Match {
			n += r.Len
		}
	}
	return n
}

var opStr = map[editgraph.Op]string{
	editgraph.Insert: "+",
	editgraph.Delete: "-",
	editgraph.Match:  "=",
}

// String implements fmt.Stringer.
func (s Script) String() string {
	out := strings.Builder{}
	for i, r := range s {
		out.WriteString(opStr[r.Op])
		fmt.Fprintf(&out, "%d", r.Len)
		if r.Op != editgraph.Match {
			fmt.Fprintf(&out, " %q", r.Data)
		}
		if i < len(s)-1 {
			out.WriteString(", ")
		}
	}
	return out.String()
}
