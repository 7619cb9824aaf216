// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads seriesplot run configurations from YAML.
//
// A configuration file names the algorithm directories to compare
// and how their result files are read and charted:
//
//	base: data
//	output: plots
//	algorithms:
//	  - {dir: ducb, label: D-UCB}
//	  - {dir: swucb, label: SW-UCB}
//	composite: true
//	data_index: 2
//	scale: log
//
// Keys that are absent keep the values of Default.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gmcbench/seriesplot/resultset"
	"github.com/gmcbench/seriesplot/series"
)

// A Config is a validated run configuration.
type Config struct {
	// Base is the directory the algorithm directories are relative to,
	// or a gs://bucket/prefix URL.
	Base string

	// Output is the directory charts are written to.
	Output string

	Format series.Format

	Sources   []resultset.Source
	Selection resultset.Selection

	Builder series.BuilderOptions
	Style   series.Style

	// Labels and Chart apply to single-algorithm runs: the legend
	// label of each selected file and the chart name.
	Labels []string
	Chart  string

	// Index writes an HTML gallery of the charts of a run.
	Index bool
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Base:      ".",
		Output:    "plots",
		Format:    series.PNG,
		Selection: resultset.Scan(),
		Builder:   *series.DefaultBuilderOptions(),
		Style:     defaultStyle(),
	}
}

func defaultStyle() series.Style {
	st := series.DefaultStyle()
	st.XMax = 10000
	st.YMax = 1
	return st
}

// An Error reports an invalid configuration file.
type Error struct {
	Path  string
	Field string // empty if the file could not be read or parsed
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Path, msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Path, e.Field, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func invalidField(path, field, msg string) *Error {
	return &Error{Path: path, Field: field, Msg: msg}
}

// Load reads the configuration file at path and applies it over
// Default.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	var dto yamlConfig
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	cfg := Default()
	if err := dto.apply(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseScale parses an axis scale name.
func ParseScale(s string) (logX bool, err error) {
	switch s {
	case "lin", "linear":
		return false, nil
	case "log", "logarithmic":
		return true, nil
	}
	return false, fmt.Errorf("unknown scale %q", s)
}
