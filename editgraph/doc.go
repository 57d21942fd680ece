// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package editgraph computes the shortest edit script between two byte
// sequences using a dynamic programming edit graph and provides a cursor,
// Walker, that replays that script in reverse one operation at a time.
//
// Each cell (x, y) of the graph records the operation used to reach it
// from the cell (0, 0) and the number of operations on that path. A Match
// is taken whenever the x'th byte of X equals the y'th byte of Y, otherwise
// the cheaper of a Delete (from (x-1, y)) or an Insert (from (x, y-1)) is
// used, with ties going to Delete.
//
//	g := editgraph.New()
//	if err := g.Build(x, y); err != nil {
//	  ...
//	}
//	w, _ := g.Walk()
//	for {
//	  op, val, err := w.Next()
//	  if err != nil || op == editgraph.Stop {
//	    break
//	  }
//	  ...
//	}
//
// Operations are returned in reverse order, from (len(x), len(y)) back to
// the origin. A Graph may be rebuilt any number of times; doing so
// invalidates all of the Walkers previously obtained from it. Multiple
// Walkers may read the same Graph concurrently provided that no call to
// Build or Release runs at the same time.
package editgraph
