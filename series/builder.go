// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package series extracts aligned series from algorithm result
// directories and charts them.
//
// A Builder runs in one of two modes. CrossAlgorithm produces one
// Batch per result file name, with one Record per algorithm.
// SingleAlgorithm produces a single Batch with one Record per file
// of a single algorithm, for example to compare size categories.
//
// Both modes build every Batch before returning, so that a failure
// anywhere in a run is reported before any chart is drawn.
package series

import (
	"errors"

	"go.uber.org/zap"

	"github.com/gmcbench/seriesplot/resultfmt"
	"github.com/gmcbench/seriesplot/resultset"
)

// ErrNoFiles is returned by SingleAlgorithm when the selection is
// empty.
var ErrNoFiles = errors.New("no result files selected")

// BuilderOptions configures a Builder.
type BuilderOptions struct {
	// Format describes the columns of every result file.
	Format resultfmt.Options

	// IncludeVariance loads the variance sidecar of every file.
	IncludeVariance bool

	// Logger receives progress at debug level. If nil, nothing is
	// logged.
	Logger *zap.Logger
}

// DefaultBuilderOptions returns the options matching the cruncher's
// default output: 10000 composite columns, convergence field.
func DefaultBuilderOptions() *BuilderOptions {
	return &BuilderOptions{
		Format: resultfmt.Options{
			Columns:   10000,
			Composite: true,
			DataIndex: 2,
		},
		IncludeVariance: true,
	}
}

// A Builder turns result files into batches.
type Builder struct {
	tree resultset.Tree
	ex   Extractor
	log  *zap.Logger
}

// NewBuilder returns a Builder reading from tree.
func NewBuilder(tree resultset.Tree, opts *BuilderOptions) (*Builder, error) {
	if err := opts.Format.Validate(); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{
		tree: tree,
		ex: Extractor{
			Tree:            tree,
			Format:          opts.Format,
			IncludeVariance: opts.IncludeVariance,
		},
		log: log,
	}, nil
}

// Check resolves sel for srcs and validates that every source
// contributes the same files.
func (b *Builder) Check(srcs []resultset.Source, sel resultset.Selection) (resultset.FileSet, error) {
	lists, err := b.tree.Resolve(srcs, sel)
	if err != nil {
		return nil, err
	}
	for i, l := range lists {
		b.log.Debug("resolved source", zap.String("dir", srcs[i].Dir), zap.Int("files", len(l)))
	}
	return resultset.Validate(srcs, lists)
}

// CrossAlgorithm returns one Batch per file of the validated file
// set of srcs. Each batch holds one record per source, labeled with
// the source's label, and is named after the file with
// resultfmt.ChartStem. Files whose names differ only before the first
// "_" yield batches of the same name; this is logged as a warning.
func (b *Builder) CrossAlgorithm(srcs []resultset.Source, sel resultset.Selection) ([]*Batch, error) {
	files, err := b.Check(srcs, sel)
	if err != nil {
		return nil, err
	}
	batches := make([]*Batch, 0, len(files))
	owner := make(map[string]string)
	for _, name := range files {
		batch := &Batch{Name: resultfmt.ChartStem(name), Files: []string{name}}
		if prev, ok := owner[batch.Name]; ok {
			b.log.Warn("duplicate chart name",
				zap.String("chart", batch.Name), zap.String("file", name), zap.String("previous", prev))
		}
		owner[batch.Name] = name
		for _, src := range srcs {
			rec, err := b.record(src.Dir, name, src.Label)
			if err != nil {
				return nil, err
			}
			batch.Records = append(batch.Records, rec)
		}
		batches = append(batches, batch)
	}
	return batches, nil
}

// SingleAlgorithm returns a Batch with one record per selected file
// of src.
//
// labels[i] labels the record of the i'th file; files without a
// label are labeled with their chart stem. The batch is named name,
// or after the last selected file if name is empty.
func (b *Builder) SingleAlgorithm(src resultset.Source, sel resultset.Selection, labels []string, name string) (*Batch, error) {
	lists, err := b.tree.Resolve([]resultset.Source{src}, sel)
	if err != nil {
		return nil, err
	}
	files := lists[0]
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	if len(labels) > len(files) {
		b.log.Warn("more labels than files", zap.Int("labels", len(labels)), zap.Int("files", len(files)))
	}
	if name == "" {
		name = resultfmt.ChartStem(files[len(files)-1])
	}
	batch := &Batch{Name: name, Files: files}
	for i, file := range files {
		label := resultfmt.ChartStem(file)
		if i < len(labels) {
			label = labels[i]
		}
		rec, err := b.record(src.Dir, file, label)
		if err != nil {
			return nil, err
		}
		batch.Records = append(batch.Records, rec)
	}
	return batch, nil
}

func (b *Builder) record(dir, file, label string) (*Record, error) {
	data, variance, err := b.ex.Extract(dir, file)
	if err != nil {
		return nil, err
	}
	rec, err := Aggregate(label, file, data, variance)
	if err != nil {
		return nil, err
	}
	b.log.Debug("extracted series",
		zap.String("path", b.tree.Path(resultset.Join(dir, file))),
		zap.String("label", label),
		zap.Int("samples", rec.Len()))
	return rec, nil
}
