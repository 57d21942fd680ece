// Copyright 2026 cloudeng llc. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"slices"

	"cloudeng.io/badiff/chunked"
	"cloudeng.io/cmdutil/cmdyaml"
	"cloudeng.io/errors"
	"gopkg.in/yaml.v3"
)

var (
	formats = []string{"runs", "horizontal", "vertical"}
	graphs  = map[string]chunked.GraphFactory{
		"edit":     chunked.EditGraph,
		"inertial": chunked.InertialGraph,
	}
)

// Config represents the YAML configuration file accepted via --config.
type Config struct {
	// ChunkSize, if non-zero, splits the inputs into windows of
	// this many bytes that are diffed independently.
	ChunkSize int `yaml:"chunk_size"`
	// Concurrency is the number of windows diffed in parallel.
	Concurrency int `yaml:"concurrency"`
	// MaxCells bounds the size of any single edit graph.
	MaxCells int    `yaml:"max_cells"`
	Format   string `yaml:"format"`
	// Graph is either edit, for the shortest script, or inertial, for
	// the script with the fewest runs.
	Graph string `yaml:"graph"`
	Color bool   `yaml:"color"`
}

func defaultConfig() Config {
	return Config{Format: "runs", Graph: "edit"}
}

func (c Config) graphFactory() chunked.GraphFactory {
	if fn, ok := graphs[c.Graph]; ok {
		return fn
	}
	return chunked.EditGraph
}

func loadConfig(ctx context.Context, filename string) (Config, error) {
	cfg := defaultConfig()
	if len(filename) == 0 {
		return cfg, nil
	}
	if err := cmdyaml.ParseConfigFileStrict(ctx, filename, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %q: %w", filename, err)
	}
	return cfg, nil
}

// Validate returns all of the problems found with the configuration.
func (c Config) Validate() error {
	var errs errors.M
	if c.ChunkSize < 0 {
		errs.Append(fmt.Errorf("chunk_size must not be negative: %v", c.ChunkSize))
	}
	if c.Concurrency < 0 {
		errs.Append(fmt.Errorf("concurrency must not be negative: %v", c.Concurrency))
	}
	if c.MaxCells < 0 {
		errs.Append(fmt.Errorf("max_cells must not be negative: %v", c.MaxCells))
	}
	if c.ChunkSize > 0 && c.MaxCells > 0 && (c.ChunkSize+1)*(c.ChunkSize+1) > c.MaxCells {
		errs.Append(fmt.Errorf("chunk_size %v requires more than max_cells (%v) cells", c.ChunkSize, c.MaxCells))
	}
	if !slices.Contains(formats, c.Format) {
		errs.Append(fmt.Errorf("format must be one of %v: %q", formats, c.Format))
	}
	if _, ok := graphs[c.Graph]; !ok {
		errs.Append(fmt.Errorf("graph must be one of edit or inertial: %q", c.Graph))
	}
	return errs.Err()
}

// Describe writes the configuration as YAML.
func (c Config) Describe(out io.Writer) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
