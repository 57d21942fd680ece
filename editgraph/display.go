// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package editgraph

import (
	"fmt"
	"io"
	"strings"
)

const (
	upArrow       rune = 0x2191 // utf8 up arrow
	leftArrow     rune = 0x2190 // utf8 left arrow
	diagonalArrow rune = 0x2196 // utf8 diagonal arrow
	space         rune = 0x20   // utf8 space
)

func arrow(op Op) rune {
	switch op {
	case Delete:
		return leftArrow
	case Insert:
		return upArrow
	case Match:
		return diagonalArrow
	}
	return space
}

// Printable returns b as a rune if it is printable ASCII and '.' otherwise.
func Printable(b byte) rune {
	if b >= 0x20 && b < 0x7f {
		return rune(b)
	}
	return '.'
}

// Format prints the graph with X along the top and Y down the side. Each
// cell shows its run length followed by an arrow pointing to the
// predecessor chosen for it, eg. for X=AB, Y=A:
//
//	             A    B
//	       0    1←   2←
//	  A    1↑   1↖   2←
func (g *Graph) Format(out io.Writer) error {
	if !g.built {
		return fmt.Errorf("%w: graph has not been built", ErrInvalidState)
	}
	row := &strings.Builder{}
	row.WriteString("         ")
	for _, c := range g.x[1:] {
		fmt.Fprintf(row, "%5c", Printable(c))
	}
	row.WriteString("\n")
	if _, err := io.WriteString(out, row.String()); err != nil {
		return err
	}
	for y := 0; y < g.tbl.height; y++ {
		row.Reset()
		label := space
		if y > 0 {
			label = Printable(g.y[y])
		}
		fmt.Fprintf(row, "%3c ", label)
		for x := 0; x < g.tbl.width; x++ {
			pos := g.tbl.offset(x, y)
			fmt.Fprintf(row, "%4d%c", g.tbl.lengths[pos], arrow(g.tbl.ops[pos]))
		}
		row.WriteString("\n")
		if _, err := io.WriteString(out, row.String()); err != nil {
			return err
		}
	}
	return nil
}
