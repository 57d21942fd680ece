// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package script

import (
	"fmt"
	"io"

	"cloudeng.io/badiff/editgraph"
)

// fits reports whether s can be rendered against x, that is, whether every
// run is within the bounds of x and carries the data its length requires.
func (s Script) fits(x []byte) error {
	pos := 0
	for i, r := range s {
		if r.Op != editgraph.Match && len(r.Data) != r.Len {
			return fmt.Errorf("%w: run %v: %v has %v bytes of data for a length of %v", ErrMismatch, i, r.Op, len(r.Data), r.Len)
		}
		if r.Op == editgraph.Insert {
			continue
		}
		if pos+r.Len > len(x) {
			return fmt.Errorf("%w: run %v: %v of %v bytes at offset %v overruns the input", ErrMismatch, i, r.Op, r.Len, pos)
		}
		pos += r.Len
	}
	return nil
}

// FormatVertical prints a representation of the script with one byte
// per line, eg. for ABC -> ABD:
//
//	  A
//	  B
//	+ D
//	- C
//
// ErrMismatch is returned, and nothing is printed, if s reads
// beyond the end of x.
func (s Script) FormatVertical(out io.Writer, x []byte) error {
	if err := s.fits(x); err != nil {
		return err
	}
	pos := 0
	for _, r := range s {
		for i := 0; i < r.Len; i++ {
			switch r.Op {
			case editgraph.Match:
				fmt.Fprintf(out, "  %c\n", editgraph.Printable(x[pos+i]))
			case editgraph.Delete:
				fmt.Fprintf(out, "- %c\n", editgraph.Printable(r.Data[i]))
			case editgraph.Insert:
				fmt.Fprintf(out, "+ %c\n", editgraph.Printable(r.Data[i]))
			}
		}
		if r.Op != editgraph.Insert {
			pos += r.Len
		}
	}
	return nil
}

// FormatHorizontal prints a representation of the script across three
// lines, with the top line showing the result of applying the script,
// the middle line the operations applied and the bottom line any bytes
// deleted, eg. for ABC -> ABD:
//
//	ABD
//	||+-
//	   C
//
// As for FormatVertical, ErrMismatch is returned if s does not fit x.
func (s Script) FormatHorizontal(out io.Writer, x []byte) error {
	if err := s.fits(x); err != nil {
		return err
	}
	var top, middle, bottom []rune
	pos := 0
	for _, r := range s {
		for i := 0; i < r.Len; i++ {
			switch r.Op {
			case editgraph.Match:
				top = append(top, editgraph.Printable(x[pos+i]))
				middle = append(middle, '|')
				bottom = append(bottom, ' ')
			case editgraph.Delete:
				top = append(top, ' ')
				middle = append(middle, '-')
				bottom = append(bottom, editgraph.Printable(r.Data[i]))
			case editgraph.Insert:
				top = append(top, editgraph.Printable(r.Data[i]))
				middle = append(middle, '+')
				bottom = append(bottom, ' ')
			}
		}
		if r.Op != editgraph.Insert {
			pos += r.Len
		}
	}
	_, err := fmt.Fprintf(out, "%s\n%s\n%s\n", string(top), string(middle), string(bottom))
	return err
}
