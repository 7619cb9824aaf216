// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report formats batches for people: a summary table, an
// aligned dump of the raw columns, and an HTML gallery of charts.
package report

import (
	"fmt"
	"io"
	"math"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"

	"github.com/gmcbench/seriesplot/series"
)

// Summary writes one row per record of batches with the number of
// samples and the mean, minimum, maximum and final value of its
// data.
func Summary(w io.Writer, batches []*series.Batch) error {
	var (
		charts, labels    []string
		ns                []int
		means, mins, maxs []float64
		lasts             []float64
	)
	for _, b := range batches {
		for _, r := range b.Records {
			charts = append(charts, b.Name)
			labels = append(labels, r.Label)
			ns = append(ns, r.Len())
			if r.Len() == 0 {
				nan := math.NaN()
				means, mins, maxs, lasts = append(means, nan), append(mins, nan), append(maxs, nan), append(lasts, nan)
				continue
			}
			lo, hi := stats.Bounds(r.Data)
			means = append(means, stats.Mean(r.Data))
			mins = append(mins, lo)
			maxs = append(maxs, hi)
			lasts = append(lasts, r.Data[r.Len()-1])
		}
	}
	if len(charts) == 0 {
		return nil
	}
	t := new(table.Builder).
		Add("chart", charts).
		Add("label", labels).
		Add("n", ns).
		Add("mean", means).
		Add("min", mins).
		Add("max", maxs).
		Add("last", lasts).
		Done()
	return table.Fprint(w, t, "%s", "%s", "%d", "%.4g", "%.4g", "%.4g", "%.4g")
}

// Dump writes the columns of b side by side: the x position, then
// each record's data and, if variance is set, its variance.
//
// Duplicate labels are disambiguated by appending "#N", as
// benchmark file labels are.
func Dump(w io.Writer, b *series.Batch, variance bool) error {
	n := b.Len()
	xs := make([]int, n)
	for i := range xs {
		xs[i] = i + 1
	}
	tb := new(table.Builder).Add("x", xs)

	count := make(map[string]int)
	for _, r := range b.Records {
		count[r.Label]++
	}
	seen := make(map[string]int)
	for _, r := range b.Records {
		name := r.Label
		if count[name] > 1 {
			name = fmt.Sprintf("%s#%d", r.Label, seen[r.Label])
			seen[r.Label]++
		}
		tb.Add(name, pad(r.Data, n))
		if variance {
			tb.Add(name+" var", pad(r.Variance, n))
		}
	}
	if _, err := fmt.Fprintf(w, "# %s\n", b.Name); err != nil {
		return err
	}
	formats := []string{"%d"}
	for range b.Records {
		formats = append(formats, "%g")
		if variance {
			formats = append(formats, "%g")
		}
	}
	return table.Fprint(w, tb.Done(), formats...)
}

// pad extends s to n samples with NaN.
func pad(s series.Series, n int) []float64 {
	out := make([]float64, n)
	copy(out, s)
	for i := len(s); i < n; i++ {
		out[i] = math.NaN()
	}
	return out
}
