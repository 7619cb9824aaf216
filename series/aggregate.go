// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package series

import (
	"fmt"
	"math"
)

// A Record is one plotted line: a series, its variance, and the
// 1-based x position of every sample.
type Record struct {
	// Label is the legend name of the line.
	Label string

	// File is the result file the series was read from.
	File string

	Data     Series
	Variance Series

	// Index[i] is the x position of Data[i], starting at 1.
	Index []int
}

// Len returns the number of samples in r.
func (r *Record) Len() int {
	return len(r.Data)
}

// Bounds returns the smallest and largest of Data[i]-Variance[i] and
// Data[i]+Variance[i] over all samples where both are finite. It
// returns 0, 0 if there are none.
func (r *Record) Bounds() (lo, hi float64) {
	seen := false
	for i, v := range r.Data {
		l, h := v-r.Variance[i], v+r.Variance[i]
		if math.IsNaN(l) || math.IsInf(l, 0) || math.IsNaN(h) || math.IsInf(h, 0) {
			continue
		}
		if l > h {
			l, h = h, l
		}
		if !seen || l < lo {
			lo = l
		}
		if !seen || h > hi {
			hi = h
		}
		seen = true
	}
	return lo, hi
}

// A SeriesLengthMismatchError reports a series whose variance has a
// different length.
type SeriesLengthMismatchError struct {
	Label          string
	File           string
	Data, Variance int
}

func (e *SeriesLengthMismatchError) Error() string {
	return fmt.Sprintf("%s: %s has %d samples but %d variance samples", e.Label, e.File, e.Data, e.Variance)
}

// Aggregate returns a Record for data and its variance.
func Aggregate(label, file string, data, variance Series) (*Record, error) {
	if len(data) != len(variance) {
		return nil, &SeriesLengthMismatchError{Label: label, File: file, Data: len(data), Variance: len(variance)}
	}
	index := make([]int, len(data))
	for i := range index {
		index[i] = i + 1
	}
	return &Record{Label: label, File: file, Data: data, Variance: variance, Index: index}, nil
}

// A Batch is the set of records drawn in one chart.
type Batch struct {
	// Name is the chart's file name without extension.
	Name string

	// Files lists the result files that contributed records, in
	// record order.
	Files []string

	Records []*Record
}

// Labels returns the legend labels of b in record order.
func (b *Batch) Labels() []string {
	labels := make([]string, len(b.Records))
	for i, r := range b.Records {
		labels[i] = r.Label
	}
	return labels
}

// Len returns the length of the longest record in b.
func (b *Batch) Len() int {
	n := 0
	for _, r := range b.Records {
		if r.Len() > n {
			n = r.Len()
		}
	}
	return n
}
