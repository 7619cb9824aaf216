// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"strings"

	"github.com/gmcbench/seriesplot/resultset"
	"github.com/gmcbench/seriesplot/series"
)

// Optional scalars are pointers so that absent keys keep their
// defaults.
type yamlConfig struct {
	Base       string          `yaml:"base"`
	Output     string          `yaml:"output"`
	Format     string          `yaml:"format"`
	Algorithms []yamlAlgorithm `yaml:"algorithms"`
	Files      []string        `yaml:"files"`

	Composite *bool `yaml:"composite"`
	DataIndex *int  `yaml:"data_index"`
	Columns   *int  `yaml:"columns"`
	Variance  *bool `yaml:"variance"`

	Scale string   `yaml:"scale"`
	XMax  *float64 `yaml:"x_max"`
	YMax  *float64 `yaml:"y_max"`

	Labels []string `yaml:"labels"`
	Chart  string   `yaml:"chart"`
	Index  bool     `yaml:"index"`
}

type yamlAlgorithm struct {
	Dir   string `yaml:"dir"`
	Label string `yaml:"label"`
}

func (y *yamlConfig) apply(path string, cfg *Config) error {
	if y.Base != "" {
		cfg.Base = y.Base
	}
	if y.Output != "" {
		cfg.Output = y.Output
	}
	if y.Format != "" {
		f, err := series.ParseFormat(y.Format)
		if err != nil {
			return invalidField(path, "format", err.Error())
		}
		cfg.Format = f
	}

	for i, a := range y.Algorithms {
		field := fmt.Sprintf("algorithms[%d]", i)
		if strings.TrimSpace(a.Dir) == "" {
			return invalidField(path, field+".dir", "dir is required")
		}
		label := a.Label
		if label == "" {
			label = a.Dir
		}
		cfg.Sources = append(cfg.Sources, resultset.Source{Dir: a.Dir, Label: label})
	}
	if len(y.Files) > 0 {
		for i, f := range y.Files {
			if strings.TrimSpace(f) == "" {
				return invalidField(path, fmt.Sprintf("files[%d]", i), "file name is empty")
			}
		}
		cfg.Selection = resultset.Only(y.Files...)
	}

	fo := &cfg.Builder.Format
	if y.Composite != nil {
		fo.Composite = *y.Composite
		if !fo.Composite && y.DataIndex == nil {
			fo.DataIndex = 0
		}
	}
	if y.DataIndex != nil {
		fo.DataIndex = *y.DataIndex
	}
	if y.Columns != nil {
		fo.Columns = *y.Columns
	}
	if err := fo.Validate(); err != nil {
		field := "data_index"
		if fo.Columns < 0 {
			field = "columns"
		}
		return invalidField(path, field, err.Error())
	}
	if y.Variance != nil {
		cfg.Builder.IncludeVariance = *y.Variance
	}

	if y.Scale != "" {
		logX, err := ParseScale(y.Scale)
		if err != nil {
			return invalidField(path, "scale", err.Error())
		}
		cfg.Style.LogX = logX
	}
	if y.XMax != nil {
		if *y.XMax < 0 {
			return invalidField(path, "x_max", "must not be negative")
		}
		cfg.Style.XMax = *y.XMax
	}
	if y.YMax != nil {
		cfg.Style.YMax = *y.YMax
	}

	cfg.Labels = y.Labels
	cfg.Chart = y.Chart
	cfg.Index = y.Index
	return nil
}
