// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gmcbench/seriesplot/internal/config"
	"github.com/gmcbench/seriesplot/internal/gcsfs"
	"github.com/gmcbench/seriesplot/internal/logging"
	"github.com/gmcbench/seriesplot/resultset"
	"github.com/gmcbench/seriesplot/series"
)

// flags holds the command line. Fields only override the
// configuration if the corresponding flag was set.
type flags struct {
	config  string
	verbose bool

	base    string
	out     string
	format  string
	files   []string
	columns int

	composite bool
	dataIndex int
	variance  bool

	scale string
	xMax  float64
	yMax  float64

	summary bool
	index   bool

	labels []string
	chart  string
}

func newRootCmd() *cobra.Command {
	f := new(flags)
	root := &cobra.Command{
		Use:           "seriesplot",
		Short:         "Chart per-algorithm experiment result series",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.config, "config", "", "read settings from YAML `file`")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "log every resolved directory and extracted series")
	pf.StringVar(&f.base, "base", ".", "base `dir` or gs://bucket/prefix of the algorithm directories")
	pf.StringVarP(&f.out, "out", "o", "plots", "write charts to `dir`")
	pf.StringVar(&f.format, "format", "png", "chart `format`: png, svg, or pdf")
	pf.StringSliceVar(&f.files, "files", nil, "process only the named `files`, in order, instead of scanning")
	pf.IntVar(&f.columns, "columns", 10000, "read the first `n` columns of each file")
	pf.BoolVar(&f.composite, "composite", true, "columns are |-separated field tuples")
	pf.IntVar(&f.dataIndex, "data-index", 2, "plot field `i` of composite columns")
	pf.BoolVar(&f.variance, "variance", true, "shade the variance read from each _var.txt file")
	pf.StringVar(&f.scale, "scale", "lin", "x axis `scale`: lin or log")
	pf.Float64Var(&f.xMax, "x-max", 10000, "upper bound of the x axis; 0 fits the longest series")
	pf.Float64Var(&f.yMax, "y-max", 1, "upper bound of the y axis; 0 fits the data")

	root.AddCommand(
		newCompareCmd(f),
		newSingleCmd(f),
		newCheckCmd(f),
		newDumpCmd(f),
	)
	return root
}

// addOutputFlags registers the flags of commands that draw charts.
func addOutputFlags(cmd *cobra.Command, f *flags) {
	cmd.Flags().BoolVar(&f.summary, "summary", false, "print statistics of each charted series")
	cmd.Flags().BoolVar(&f.index, "index", false, "write an index.html gallery of the charts")
}

// loadConfig returns the configuration of cmd: the file named by
// --config, or the defaults, with every set flag applied on top.
func loadConfig(cmd *cobra.Command, f *flags) (*config.Config, error) {
	cfg := config.Default()
	if f.config != "" {
		var err error
		if cfg, err = config.Load(f.config); err != nil {
			return nil, err
		}
	}

	set := cmd.Flags().Changed
	if set("base") {
		cfg.Base = f.base
	}
	if set("out") {
		cfg.Output = f.out
	}
	if set("format") {
		format, err := series.ParseFormat(f.format)
		if err != nil {
			return nil, err
		}
		cfg.Format = format
	}
	if set("files") {
		cfg.Selection = resultset.Only(f.files...)
	}
	fo := &cfg.Builder.Format
	if set("columns") {
		fo.Columns = f.columns
	}
	if set("composite") {
		fo.Composite = f.composite
		if !fo.Composite && !set("data-index") {
			fo.DataIndex = 0
		}
	}
	if set("data-index") {
		fo.DataIndex = f.dataIndex
	}
	if set("variance") {
		cfg.Builder.IncludeVariance = f.variance
	}
	if set("scale") {
		logX, err := config.ParseScale(f.scale)
		if err != nil {
			return nil, err
		}
		cfg.Style.LogX = logX
	}
	if set("x-max") {
		if f.xMax < 0 {
			return nil, fmt.Errorf("negative --x-max %v", f.xMax)
		}
		cfg.Style.XMax = f.xMax
	}
	if set("y-max") {
		cfg.Style.YMax = f.yMax
	}
	if set("index") {
		cfg.Index = f.index
	}
	if set("labels") {
		cfg.Labels = f.labels
	}
	if set("chart") {
		cfg.Chart = f.chart
	}
	return cfg, nil
}

// A run is the state shared by the subcommands.
type run struct {
	cfg     *config.Config
	log     *zap.Logger
	builder *series.Builder
	close   func() error
}

func newRun(cmd *cobra.Command, f *flags) (*run, error) {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return nil, err
	}
	r := &run{
		cfg:   cfg,
		log:   logging.New(cmd.ErrOrStderr(), f.verbose),
		close: func() error { return nil },
	}
	var tree resultset.Tree
	if gcsfs.IsURL(cfg.Base) {
		fsys, err := gcsfs.Dial(cmd.Context(), cfg.Base)
		if err != nil {
			return nil, err
		}
		tree = resultset.Tree{FS: fsys, Root: cfg.Base}
		r.close = fsys.Close
	} else {
		tree = resultset.Tree{FS: os.DirFS(cfg.Base), Root: cfg.Base}
	}

	opts := cfg.Builder
	opts.Logger = r.log
	if r.builder, err = series.NewBuilder(tree, &opts); err != nil {
		r.close()
		return nil, err
	}
	return r, nil
}

// sources returns the sources named by args, or those of the
// configuration if there are none.
func (r *run) sources(args []string) []resultset.Source {
	if len(args) > 0 {
		return resultset.ParseSources(args)
	}
	return r.cfg.Sources
}

func (r *run) finish() error {
	err := r.close()
	_ = r.log.Sync()
	return err
}
