// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cloudeng.io/badiff/editgraph"
	"cloudeng.io/errors"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(contents), 0o600); err != nil {
		t.Fatalf("%v: %v", errors.FileLocation(2, 1), err)
	}
	return p
}

func run(t *testing.T, args ...string) string {
	out := &strings.Builder{}
	if err := cli(out).DispatchWithArgs(context.Background(), "badiff", args...); err != nil {
		t.Fatalf("%v: %v: %v", errors.FileLocation(2, 1), args, err)
	}
	return out.String()
}

func runErr(args ...string) error {
	return cli(&strings.Builder{}).DispatchWithArgs(context.Background(), "badiff", args...)
}

func TestCommands(t *testing.T) {
	dir := t.TempDir()
	orig := writeFile(t, dir, "orig", "ABC")
	target := writeFile(t, dir, "target", "ABD")
	hello := writeFile(t, dir, "hello", "Hello world!")
	hellish := writeFile(t, dir, "hellish", "Hellish cruel world!")

	for i, tc := range []struct {
		args []string
		want string
	}{
		{[]string{"diff", orig, target}, "= 2\n+ 1 \"D\"\n- 1 \"C\"\n"},
		{[]string{"diff", "--format=horizontal", orig, target}, "ABD \n||+-\n   C\n"},
		{[]string{"diff", "--format=vertical", "--chunk-size=2", orig, target}, "  A\n  B\n+ D\n- C\n"},
		{[]string{"distance", orig, target}, "steps: 4\ndistance: 2\n"},
		{[]string{"diff", "--describe-config", "--chunk-size=16", orig, target}, "chunk_size: 16\nconcurrency: 0\nmax_cells: 0\nformat: runs\ngraph: edit\ncolor: false\n"},
		{[]string{"diff", "--graph=inertial", hello, hellish}, "= 4\n- 1 \"o\"\n+ 9 \"ish cruel\"\n= 7\n"},
		{[]string{"diff", "--graph=inertial", "--chunk-size=64", hello, hellish}, "= 4\n- 1 \"o\"\n+ 9 \"ish cruel\"\n= 7\n"},
		{[]string{"distance", "--graph=inertial", hello, hellish}, "steps: 21\ndistance: 10\n"},
		{[]string{"graph", "--max-cells=16", orig, target}, run(t, "graph", orig, target)},
	} {
		if got, want := run(t, tc.args...), tc.want; got != want {
			t.Errorf("%v: %v: got %q, want %q", i, tc.args, got, want)
		}
	}

	out := run(t, "graph", orig, target)
	if got, want := strings.Count(out, "\n"), 5; got != want {
		t.Errorf("got %v, want %v: %v", got, want, out)
	}
	if got, want := out, "   4←\n"; !strings.HasSuffix(got, want) {
		t.Errorf("got %q does not end with %q", got, want)
	}

	for i, args := range [][]string{
		{"graph", "--max-cells=4", orig, target},
		{"distance", "--max-cells=4", orig, target},
		{"diff", "--max-cells=4", orig, target},
	} {
		if err := runErr(args...); !errors.Is(err, editgraph.ErrCapacityExceeded) {
			t.Errorf("%v: %v: unexpected or missing error: %v", i, args, err)
		}
	}
	for i, args := range [][]string{
		{"graph", "--max-cells=-1", orig, target},
		{"diff", "--graph=fast", orig, target},
		{"diff", "--color=maybe", orig, target},
	} {
		if err := runErr(args...); err == nil {
			t.Errorf("%v: %v: expected an error", i, args)
		}
	}
}

func TestColor(t *testing.T) {
	dir := t.TempDir()
	orig := writeFile(t, dir, "orig", "ABC")
	target := writeFile(t, dir, "target", "ABD")
	cfgFile := writeFile(t, dir, "color.yaml", "color: true\n")
	plain := "= 2\n+ 1 \"D\"\n- 1 \"C\"\n"

	if got := run(t, "diff", "--config="+cfgFile, orig, target); got == plain || !strings.Contains(got, "\x1b[") {
		t.Errorf("expected colored output: %q", got)
	}
	if got, want := run(t, "diff", "--config="+cfgFile, "--color=false", orig, target), plain; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got := run(t, "diff", "--color=true", orig, target); !strings.Contains(got, "\x1b[") {
		t.Errorf("expected colored output: %q", got)
	}
}

func TestConfig(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cfgFile := writeFile(t, dir, "config.yaml", `chunk_size: 32
concurrency: 2
format: vertical
`)
	cfg, err := loadConfig(ctx, cfgFile)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := cfg, (Config{ChunkSize: 32, Concurrency: 2, Format: "vertical", Graph: "edit"}); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	df := &diffFlags{Format: "runs", Concurrency: 4, Graph: "inertial"}
	merged, err := df.merge(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := merged, (Config{ChunkSize: 32, Concurrency: 4, Format: "runs", Graph: "inertial"}); got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	// Color can be turned off as well as on.
	for i, tc := range []struct {
		cfg  bool
		flag string
		want bool
	}{
		{false, "", false},
		{true, "", true},
		{false, "true", true},
		{true, "false", false},
		{true, "0", false},
	} {
		merged, err := (&diffFlags{Color: tc.flag}).merge(Config{Color: tc.cfg})
		if err != nil {
			t.Fatalf("%v: %v", i, err)
		}
		if got, want := merged.Color, tc.want; got != want {
			t.Errorf("%v: got %v, want %v", i, got, want)
		}
	}
	if _, err := (&diffFlags{Color: "maybe"}).merge(cfg); err == nil {
		t.Errorf("expected an error")
	}

	if cfg, err := loadConfig(ctx, ""); err != nil || cfg != defaultConfig() {
		t.Errorf("got %+v, %v", cfg, err)
	}

	badFile := writeFile(t, dir, "bad.yaml", "unknown_field: 1\n")
	if _, err := loadConfig(ctx, badFile); err == nil {
		t.Errorf("expected an error")
	}

	err = Config{ChunkSize: -1, Concurrency: -1, MaxCells: 10, Format: "json", Graph: "fast"}.Validate()
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, want := range []string{"chunk_size", "concurrency", "format", "graph"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("%v does not mention %v", err, want)
		}
	}
	if err := (Config{ChunkSize: 10, MaxCells: 100, Format: "runs", Graph: "edit"}).Validate(); err == nil {
		t.Errorf("expected an error")
	}
	if err := defaultConfig().Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
