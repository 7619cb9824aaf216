// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resultfmt reads the result files written by the experiment
// cruncher.
//
// A result file holds a single logical row of comma-separated
// columns, one per sample, usually followed by a trailing comma:
//
//	0.5,0.52,0.61,0.58,
//
// In composite files each column is itself a "|"-delimited tuple of
// fields. The cruncher writes three fields: whether the algorithm
// picked the best move, whether it picked one of the minimax-optimal
// moves, and the convergence value:
//
//	0|1|0.85,1|1|0.91,
//
// Variance data for a file lives in a sidecar file whose name is
// derived with SidecarName.
package resultfmt

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Options describes how to turn the columns of a result file into a
// series.
type Options struct {
	// Columns is the number of leading columns to read. This is
	// the declared series length; any further columns are
	// ignored.
	Columns int

	// Composite indicates that each column is a "|"-delimited
	// tuple of fields.
	Composite bool

	// DataIndex selects the field of a composite column. It must
	// be 0 for plain files.
	DataIndex int
}

// Validate reports whether o can be used to read a file.
func (o Options) Validate() error {
	if o.Columns < 0 {
		return fmt.Errorf("negative column count %d", o.Columns)
	}
	if o.DataIndex < 0 || (!o.Composite && o.DataIndex != 0) {
		return &UnsupportedFieldIndexError{Index: o.DataIndex, Composite: o.Composite}
	}
	return nil
}

// An UnsupportedFieldIndexError reports a field index that cannot be
// applied to the file's columns.
type UnsupportedFieldIndexError struct {
	Index     int
	Composite bool
}

func (e *UnsupportedFieldIndexError) Error() string {
	if !e.Composite {
		return fmt.Sprintf("field index %d unsupported: plain result files carry a single field", e.Index)
	}
	return fmt.Sprintf("field index %d out of range", e.Index)
}

// A SyntaxError represents a malformed column of a result file.
type SyntaxError struct {
	FileName string
	Column   int // 1-based
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: column %d: %s", e.FileName, e.Column, e.Msg)
}

// ExtractField returns the value of a single column token.
//
// If composite is false, token must be a plain float and dataIndex
// must be 0. Otherwise token is split on "|" and the field at
// dataIndex is parsed. Surrounding white space is ignored.
func ExtractField(token string, dataIndex int, composite bool) (float64, error) {
	if !composite {
		if dataIndex != 0 {
			return 0, &UnsupportedFieldIndexError{Index: dataIndex}
		}
		return atof(token)
	}
	if dataIndex < 0 {
		return 0, &UnsupportedFieldIndexError{Index: dataIndex, Composite: true}
	}
	fields := strings.Split(token, "|")
	if dataIndex >= len(fields) {
		return 0, fmt.Errorf("no field %d in %q", dataIndex, token)
	}
	return atof(fields[dataIndex])
}

func atof(s string) (float64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) {
			return 0, fmt.Errorf("parsing value %q: %w", s, ne.Err)
		}
		return 0, err
	}
	return v, nil
}

// A Reader reads series from result files.
//
// A Reader may be reused for several files by calling Reset.
type Reader struct {
	s        *bufio.Scanner
	fileName string
	opts     Options

	// eol is set once the scanner has consumed the end of the
	// first non-blank line.
	eol bool
}

// NewReader returns a reader of r. fileName is used in error
// messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string, opts Options) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName, opts)
	return reader
}

// Reset resets the reader to begin reading from a new input.
func (r *Reader) Reset(ior io.Reader, fileName string, opts Options) {
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.s = bufio.NewScanner(ior)
	r.s.Split(r.splitColumn)
	r.fileName = fileName
	r.opts = opts
	r.eol = false
}

// splitColumn is a bufio.SplitFunc that yields one column at a time
// and records when a column was terminated by a newline.
func (r *Reader) splitColumn(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, ",\n"); i >= 0 {
		if data[i] == '\n' {
			r.eol = true
		}
		return i + 1, data[:i], nil
	}
	if atEOF {
		r.eol = true
		return len(data), data, nil
	}
	return 0, nil, nil
}

// Read parses the first Options.Columns columns of the input.
//
// Blank lines before the first column are skipped. Reading stops at
// the end of the first non-blank line, so a file with fewer columns
// than requested fails with a *SyntaxError even if later lines have
// more.
func (r *Reader) Read() ([]float64, error) {
	if err := r.opts.Validate(); err != nil {
		return nil, err
	}
	vals := make([]float64, 0, r.opts.Columns)
	for len(vals) < r.opts.Columns {
		if r.eol || !r.s.Scan() {
			if err := r.s.Err(); err != nil {
				return nil, fmt.Errorf("%s: %w", r.fileName, err)
			}
			return nil, r.short(len(vals))
		}
		tok := r.s.Bytes()
		if r.eol && len(bytes.TrimSpace(tok)) == 0 {
			if len(vals) == 0 {
				// Blank line ahead of the data.
				r.eol = false
				continue
			}
			// Trailing comma.
			return nil, r.short(len(vals))
		}
		v, err := ExtractField(string(tok), r.opts.DataIndex, r.opts.Composite)
		if err != nil {
			return nil, r.newSyntaxError(len(vals)+1, err.Error())
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func (r *Reader) short(have int) *SyntaxError {
	return r.newSyntaxError(have+1, fmt.Sprintf("have %d columns, want %d", have, r.opts.Columns))
}

func (r *Reader) newSyntaxError(col int, msg string) *SyntaxError {
	return &SyntaxError{r.fileName, col, msg}
}
