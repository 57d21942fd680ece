// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"

	"cloudeng.io/badiff/chunked"
	"cloudeng.io/badiff/editgraph"
	"cloudeng.io/badiff/script"
	"cloudeng.io/cmdutil"
	"cloudeng.io/errors"
	"cloudeng.io/file"
	"cloudeng.io/logging/ctxlog"
	"github.com/fatih/color"
)

// CommonFlags are accepted by all commands.
type CommonFlags struct {
	cmdutil.LoggingFlags
	ConfigFile string `subcmd:"config,,'YAML configuration file'"`
}

type diffFlags struct {
	CommonFlags
	Describe    bool   `subcmd:"describe-config,false,'print the effective configuration and exit'"`
	ChunkSize   int    `subcmd:"chunk-size,0,'if non-zero, diff the inputs in windows of this many bytes'"`
	Concurrency int    `subcmd:"concurrency,0,'number of windows to diff in parallel, 0 for one per cpu'"`
	MaxCells    int    `subcmd:"max-cells,0,'maximum number of cells in any edit graph, 0 for no limit'"`
	Format      string `subcmd:"format,,'output format: runs, horizontal or vertical'"`
	Graph       string `subcmd:"graph,,'graph used to compute the script: edit for the shortest script or inertial for the fewest runs'"`
	Color       string `subcmd:"color,,'colorize the output, true or false, overriding the config file when set'"`
}

type graphFlags struct {
	CommonFlags
	MaxCells int `subcmd:"max-cells,0,'maximum number of cells in the edit graph, 0 for no limit'"`
}

type distanceFlags struct {
	CommonFlags
	MaxCells int    `subcmd:"max-cells,0,'maximum number of cells in the edit graph, 0 for no limit'"`
	Graph    string `subcmd:"graph,,'graph used to compute the script: edit or inertial'"`
}

// merge overrides the configuration with any flags that were set.
func (df *diffFlags) merge(cfg Config) (Config, error) {
	if df.ChunkSize != 0 {
		cfg.ChunkSize = df.ChunkSize
	}
	if df.Concurrency != 0 {
		cfg.Concurrency = df.Concurrency
	}
	if df.MaxCells != 0 {
		cfg.MaxCells = df.MaxCells
	}
	if len(df.Format) > 0 {
		cfg.Format = df.Format
	}
	if len(df.Graph) > 0 {
		cfg.Graph = df.Graph
	}
	if len(df.Color) > 0 {
		on, err := strconv.ParseBool(df.Color)
		if err != nil {
			return cfg, fmt.Errorf("invalid value for --color: %w", err)
		}
		cfg.Color = on
	}
	return cfg, nil
}

type commands struct {
	out io.Writer
}

func (cf *CommonFlags) setup(ctx context.Context) (context.Context, Config, func(), error) {
	logger, err := cf.LoggingConfig().NewLogger()
	if err != nil {
		return ctx, Config{}, nil, err
	}
	logger.LogBuildInfo()
	ctx = ctxlog.Context(ctx, logger.Logger)
	cfg, err := loadConfig(ctx, cf.ConfigFile)
	if err != nil {
		logger.Close()
		return ctx, Config{}, nil, err
	}
	return ctx, cfg, func() { logger.Close() }, nil
}

func readInputs(ctx context.Context, args []string) (x, y []byte, err error) {
	var errs errors.M
	x, err = file.FSReadFile(ctx, args[0])
	errs.Append(err)
	y, err = file.FSReadFile(ctx, args[1])
	errs.Append(err)
	return x, y, errs.Err()
}

func (c *commands) diff(ctx context.Context, values interface{}, args []string) error {
	fv := values.(*diffFlags)
	ctx, cfg, done, err := fv.setup(ctx)
	if err != nil {
		return err
	}
	defer done()
	cfg, err = fv.merge(cfg)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if fv.Describe {
		return cfg.Describe(c.out)
	}
	x, y, err := readInputs(ctx, args)
	if err != nil {
		return err
	}
	s, err := computeScript(ctx, cfg, x, y)
	if err != nil {
		return err
	}
	result, err := s.Apply(x)
	if err != nil {
		return fmt.Errorf("failed to verify the edit script: %w", err)
	}
	if !bytes.Equal(result, y) {
		return fmt.Errorf("failed to verify the edit script: applying it to %v does not produce %v", args[0], args[1])
	}
	ctxlog.Logger(ctx).Info("diffed", "original", args[0], "target", args[1], "runs", len(s), "steps", s.Steps(), "distance", s.Distance())
	return render(c.out, cfg, x, s)
}

func computeScript(ctx context.Context, cfg Config, x, y []byte) (script.Script, error) {
	if cfg.ChunkSize > 0 {
		return chunked.Diff(ctx, x, y,
			chunked.WithChunkSize(cfg.ChunkSize),
			chunked.WithConcurrency(cfg.Concurrency),
			chunked.WithGraph(cfg.graphFactory()))
	}
	g := cfg.graphFactory()(cfg.MaxCells)
	defer g.Release()
	return script.Diff(g, x, y)
}

func render(out io.Writer, cfg Config, x []byte, s script.Script) error {
	switch cfg.Format {
	case "horizontal":
		return s.FormatHorizontal(out, x)
	case "vertical":
		return s.FormatVertical(out, x)
	}
	match := color.New(color.Reset)
	insert := color.New(color.FgGreen)
	del := color.New(color.FgRed)
	for _, c := range []*color.Color{match, insert, del} {
		if cfg.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	for _, r := range s {
		switch r.Op {
		case editgraph.Match:
			match.Fprintf(out, "= %d\n", r.Len)
		case editgraph.Insert:
			insert.Fprintf(out, "+ %d %q\n", r.Len, r.Data)
		case editgraph.Delete:
			del.Fprintf(out, "- %d %q\n", r.Len, r.Data)
		}
	}
	return nil
}

func (c *commands) graph(ctx context.Context, values interface{}, args []string) error {
	fv := values.(*graphFlags)
	ctx, cfg, done, err := fv.setup(ctx)
	if err != nil {
		return err
	}
	defer done()
	if fv.MaxCells != 0 {
		cfg.MaxCells = fv.MaxCells
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	x, y, err := readInputs(ctx, args)
	if err != nil {
		return err
	}
	g := editgraph.New(editgraph.WithMaxCells(cfg.MaxCells))
	defer g.Release()
	if err := g.Build(x, y); err != nil {
		return err
	}
	return g.Format(c.out)
}

func (c *commands) distance(ctx context.Context, values interface{}, args []string) error {
	fv := values.(*distanceFlags)
	ctx, cfg, done, err := fv.setup(ctx)
	if err != nil {
		return err
	}
	defer done()
	if fv.MaxCells != 0 {
		cfg.MaxCells = fv.MaxCells
	}
	if len(fv.Graph) > 0 {
		cfg.Graph = fv.Graph
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	x, y, err := readInputs(ctx, args)
	if err != nil {
		return err
	}
	g := cfg.graphFactory()(cfg.MaxCells)
	defer g.Release()
	s, err := script.Diff(g, x, y)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "steps: %v\ndistance: %v\n", s.Steps(), s.Distance())
	return nil
}
