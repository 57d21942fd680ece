// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package chunked_test

import (
	"bytes"
	"context"
	"log/slog"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"cloudeng.io/badiff/chunked"
	"cloudeng.io/badiff/editgraph"
	"cloudeng.io/badiff/script"
	"cloudeng.io/errors"
	"cloudeng.io/logging/ctxlog"
	"cloudeng.io/sync/synctestutil"
)

func randomBytes(rnd *rand.Rand, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte('a' + rnd.Intn(4))
	}
	return b
}

func TestRoundTrip(t *testing.T) {
	defer synctestutil.AssertNoGoroutines(t)()
	ctx := context.Background()
	rnd := rand.New(rand.NewSource(42))
	for i, tc := range []struct {
		nx, ny      int
		chunkSize   int
		concurrency int
	}{
		{0, 0, 8, 1},
		{0, 100, 8, 2},
		{100, 0, 8, 2},
		{100, 100, 8, 4},
		{100, 37, 16, 3},
		{37, 100, 16, 3},
		{1000, 999, 64, 0},
		{5, 7, 1, 1},
	} {
		x, y := randomBytes(rnd, tc.nx), randomBytes(rnd, tc.ny)
		s, err := chunked.Diff(ctx, x, y,
			chunked.WithChunkSize(tc.chunkSize),
			chunked.WithConcurrency(tc.concurrency))
		if err != nil {
			t.Fatalf("%v: %v", i, err)
		}
		out, err := s.Apply(x)
		if err != nil {
			t.Fatalf("%v: %v", i, err)
		}
		if !bytes.Equal(out, y) {
			t.Errorf("%v: got %q, want %q", i, out, y)
		}
		for j := 1; j < len(s); j++ {
			if s[j].Op == s[j-1].Op {
				t.Errorf("%v: runs %v and %v were not merged", i, j-1, j)
			}
		}
	}
}

func TestSingleChunk(t *testing.T) {
	ctx := context.Background()
	x, y := []byte("the quick brown fox"), []byte("jumped over the lazy dog")
	got, err := chunked.Diff(ctx, x, y)
	if err != nil {
		t.Fatal(err)
	}
	want, err := script.Diff(editgraph.New(), x, y)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestWithGraph(t *testing.T) {
	defer synctestutil.AssertNoGoroutines(t)()
	ctx := context.Background()
	x, y := []byte("Hello world!"), []byte("Hellish cruel world!")
	got, err := chunked.Diff(ctx, x, y, chunked.WithGraph(chunked.InertialGraph))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := got.String(), `=4, -1 "o", +9 "ish cruel", =7`; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	want, err := script.Diff(editgraph.NewInertial(), x, y)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	rnd := rand.New(rand.NewSource(7))
	x, y = randomBytes(rnd, 300), randomBytes(rnd, 250)
	s, err := chunked.Diff(ctx, x, y,
		chunked.WithGraph(chunked.InertialGraph),
		chunked.WithChunkSize(32),
		chunked.WithConcurrency(3))
	if err != nil {
		t.Fatal(err)
	}
	out, err := s.Apply(x)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, y) {
		t.Errorf("got %q, want %q", out, y)
	}
}

func TestNoAliasing(t *testing.T) {
	ctx := context.Background()
	for i, tc := range []struct {
		x, y string
		want string
	}{
		{"", "abc", `+3 "abc"`},
		{"abc", "", `-3 "abc"`},
		{"abc", "abcdef", `=3, +3 "def"`},
		{"abcdef", "abc", `=3, -3 "def"`},
	} {
		x, y := []byte(tc.x), []byte(tc.y)
		s, err := chunked.Diff(ctx, x, y, chunked.WithChunkSize(3))
		if err != nil {
			t.Fatalf("%v: %v", i, err)
		}
		for _, b := range [][]byte{x, y} {
			for j := range b {
				b[j] = 'z'
			}
		}
		if got, want := s.String(), tc.want; got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
	}
}

func TestErrors(t *testing.T) {
	ctx := context.Background()
	if _, err := chunked.Diff(ctx, nil, nil, chunked.WithChunkSize(0)); err == nil {
		t.Errorf("expected an error")
	}
	ctx, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := chunked.Diff(ctx, []byte("abc"), []byte("abd")); !errors.Is(err, context.Canceled) {
		t.Errorf("unexpected or missing error: %v", err)
	}

	// Graphs too small for a window are reported for that chunk.
	small := func(int) editgraph.Builder { return editgraph.New(editgraph.WithMaxCells(4)) }
	_, err := chunked.Diff(context.Background(), []byte("abc"), []byte("abd"), chunked.WithGraph(small))
	if !errors.Is(err, editgraph.ErrCapacityExceeded) {
		t.Errorf("unexpected or missing error: %v", err)
	}
}

func TestLogging(t *testing.T) {
	out := &strings.Builder{}
	ctx := ctxlog.NewJSONLogger(context.Background(), out, &slog.HandlerOptions{Level: slog.LevelDebug})
	if _, err := chunked.Diff(ctx, []byte("abcdef"), []byte("abcxyz"), chunked.WithChunkSize(3), chunked.WithConcurrency(1)); err != nil {
		t.Fatal(err)
	}
	if got, want := strings.Count(out.String(), `"msg":"chunk diffed"`), 2; got != want {
		t.Errorf("got %v, want %v: %s", got, want, out.String())
	}
}
