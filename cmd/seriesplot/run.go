// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gmcbench/seriesplot/internal/report"
	"github.com/gmcbench/seriesplot/resultset"
	"github.com/gmcbench/seriesplot/series"
)

func newCompareCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [label=]dir...",
		Short: "Chart each result file across algorithms",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRun(cmd, f)
			if err != nil {
				return err
			}
			defer r.finish()
			srcs := r.sources(args)
			batches, err := r.builder.CrossAlgorithm(srcs, r.cfg.Selection)
			if err != nil {
				return err
			}
			return r.render(cmd, f, strings.Join(resultset.Labels(srcs), " vs "), batches)
		},
	}
	addOutputFlags(cmd, f)
	return cmd
}

func newSingleCmd(f *flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "single [label=]dir",
		Short: "Chart the result files of one algorithm together",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRun(cmd, f)
			if err != nil {
				return err
			}
			defer r.finish()
			srcs := r.sources(args)
			if len(srcs) != 1 {
				return fmt.Errorf("single needs exactly one algorithm directory, have %d", len(srcs))
			}
			batch, err := r.builder.SingleAlgorithm(srcs[0], r.cfg.Selection, r.cfg.Labels, r.cfg.Chart)
			if err != nil {
				return err
			}
			return r.render(cmd, f, srcs[0].Label, []*series.Batch{batch})
		},
	}
	addOutputFlags(cmd, f)
	cmd.Flags().StringSliceVar(&f.labels, "labels", nil, "legend `labels` of the selected files, in order")
	cmd.Flags().StringVar(&f.chart, "chart", "", "chart `name`; defaults to the name of the last file")
	return cmd
}

func newCheckCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "check [label=]dir...",
		Short: "Validate that the algorithm directories hold the same files",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRun(cmd, f)
			if err != nil {
				return err
			}
			defer r.finish()
			files, err := r.builder.Check(r.sources(args), r.cfg.Selection)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, file := range files {
				fmt.Fprintln(w, file)
			}
			return nil
		},
	}
}

func newDumpCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "dump [label=]dir...",
		Short: "Print the series of each result file as columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRun(cmd, f)
			if err != nil {
				return err
			}
			defer r.finish()
			batches, err := r.builder.CrossAlgorithm(r.sources(args), r.cfg.Selection)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for i, b := range batches {
				if i > 0 {
					fmt.Fprintln(w)
				}
				if err := report.Dump(w, b, r.cfg.Builder.IncludeVariance); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// render charts batches, then writes the optional summary and the
// gallery titled title.
func (r *run) render(cmd *cobra.Command, f *flags, title string, batches []*series.Batch) error {
	if len(batches) == 0 {
		return errors.New("no result files to chart")
	}
	rd, err := series.NewChartRenderer(r.cfg.Output, r.cfg.Format, r.cfg.Style, r.log)
	if err != nil {
		return err
	}
	paths, err := series.RenderAll(rd, batches)
	if err != nil {
		return err
	}
	r.log.Info("rendered charts", zap.Int("charts", len(paths)), zap.String("dir", r.cfg.Output))

	if f.summary {
		if err := report.Summary(cmd.OutOrStdout(), batches); err != nil {
			return err
		}
	}
	if r.cfg.Index {
		path, err := report.WriteIndex(r.cfg.Output, title, report.Charts(batches, paths))
		if err != nil {
			return err
		}
		r.log.Info("wrote index", zap.String("path", path))
	}
	return nil
}
