// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package series

import (
	"errors"
	"io/fs"

	"github.com/gmcbench/seriesplot/resultfmt"
	"github.com/gmcbench/seriesplot/resultset"
)

// A Series is an ordered sequence of samples, one per x position.
type Series []float64

// Zeros returns a Series of n zeros.
func Zeros(n int) Series {
	return make(Series, n)
}

// A DataFileNotFoundError reports a missing result or variance file.
// Path is the full diagnostic path of the file.
type DataFileNotFoundError struct {
	Path string
	Err  error
}

func (e *DataFileNotFoundError) Error() string {
	return "data file " + e.Path + " not found"
}

func (e *DataFileNotFoundError) Unwrap() error {
	return e.Err
}

// An Extractor loads series from the result files of a Tree.
type Extractor struct {
	Tree resultset.Tree

	// Format describes the columns of each file.
	Format resultfmt.Options

	// IncludeVariance loads each file's variance sidecar. If it
	// is false, variance is all zeros.
	IncludeVariance bool

	reader resultfmt.Reader
}

// Extract loads the series in file name of directory dir and its
// variance. Both have exactly e.Format.Columns elements.
func (e *Extractor) Extract(dir, name string) (data, variance Series, err error) {
	data, err = e.load(resultset.Join(dir, name))
	if err != nil {
		return nil, nil, err
	}
	if !e.IncludeVariance {
		return data, Zeros(len(data)), nil
	}
	variance, err = e.load(resultset.Join(dir, resultfmt.SidecarName(name)))
	if err != nil {
		return nil, nil, err
	}
	return data, variance, nil
}

func (e *Extractor) load(name string) (Series, error) {
	display := e.Tree.Path(name)
	fi, err := fs.Stat(e.Tree.FS, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			return nil, &DataFileNotFoundError{Path: display, Err: err}
		}
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		return nil, &DataFileNotFoundError{Path: display, Err: fs.ErrNotExist}
	}
	if err := e.Format.Validate(); err != nil {
		return nil, err
	}

	f, err := e.Tree.FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	e.reader.Reset(f, display, e.Format)
	vals, err := e.reader.Read()
	if err != nil {
		return nil, err
	}
	return Series(vals), nil
}
