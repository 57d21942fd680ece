// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package editgraph

import "math"

// table holds the operation and run length for each cell of an
// (n+1) x (m+1) grid stored in row major order by y. The backing
// storage is a high water mark that is reused across resets.
type table struct {
	width, height int
	ops           []Op
	lengths       []uint32
}

// cellsFor returns the number of cells needed for sequences of length n
// and m, or false if that number cannot be represented.
func cellsFor(n, m int) (int, bool) {
	if n < 0 || m < 0 || n == math.MaxInt || m == math.MaxInt {
		return 0, false
	}
	w, h := n+1, m+1
	if h > math.MaxInt/w {
		return 0, false
	}
	return w * h, true
}

func (t *table) reset(n, m, cells int) {
	t.width, t.height = n+1, m+1
	if cap(t.ops) < cells {
		t.ops = make([]Op, cells)
		t.lengths = make([]uint32, cells)
	}
	t.ops = t.ops[:cells]
	t.lengths = t.lengths[:cells]
}

func (t *table) offset(x, y int) int {
	return y*t.width + x
}

func (t *table) contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < t.width && y < t.height
}

func (t *table) release() {
	*t = table{}
}
