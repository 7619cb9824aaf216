// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package series

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/plot"

	"github.com/gmcbench/seriesplot/resultfmt"
	"github.com/gmcbench/seriesplot/resultset"
)

func testBatch(t *testing.T) *Batch {
	t.Helper()
	a, err := Aggregate("A", "a_conv.txt", Series{1, 2, 3}, Series{0.5, 0.5, 0.5})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Aggregate("B", "a_conv.txt", Series{1, 2, 3}, Zeros(3))
	if err != nil {
		t.Fatal(err)
	}
	return &Batch{Name: "conv", Files: []string{"a_conv.txt"}, Records: []*Record{a, b}}
}

func TestNewChartBounds(t *testing.T) {
	b := testBatch(t)

	pl, err := NewChart(b, Style{XMax: 10, YMax: 2})
	if err != nil {
		t.Fatal(err)
	}
	if pl.X.Min != 1 || pl.X.Max != 10 || pl.Y.Min != 0 || pl.Y.Max != 2 {
		t.Errorf("got x [%v, %v] y [%v, %v]", pl.X.Min, pl.X.Max, pl.Y.Min, pl.Y.Max)
	}

	// Fitted to the data, including variance.
	pl, err = NewChart(b, Style{})
	if err != nil {
		t.Fatal(err)
	}
	if pl.X.Max != 3 || pl.Y.Max != 3.5 {
		t.Errorf("fitted x max %v, y max %v; want 3, 3.5", pl.X.Max, pl.Y.Max)
	}

	pl, err = NewChart(b, Style{LogX: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := pl.X.Scale.(plot.LogScale); !ok {
		t.Errorf("x scale is %T, want plot.LogScale", pl.X.Scale)
	}
}

func TestBandXYs(t *testing.T) {
	rec, _ := Aggregate("r", "r.txt", Series{1, 2, 3, 4, 5}, Series{1, 1, 1, 1, 1})
	xys := bandXYs(rec, span{0, rec.Len()})
	if len(xys) != 2*rec.Len() {
		t.Fatalf("band has %d points, want %d", len(xys), 2*rec.Len())
	}
	for i := 0; i < rec.Len(); i++ {
		up, lo := xys[i], xys[len(xys)-1-i]
		if up.X != float64(i+1) || lo.X != up.X {
			t.Errorf("point %d: x %v and %v, want %d", i, up.X, lo.X, i+1)
		}
		if up.Y-lo.Y != 2 {
			t.Errorf("point %d: band width %v, want 2", i, up.Y-lo.Y)
		}
	}
}

func TestFiniteSpans(t *testing.T) {
	nan, inf := math.NaN(), math.Inf(1)
	rec, _ := Aggregate("r", "r.txt",
		Series{nan, 1, 2, inf, 3, 4, 5, -inf},
		Series{0, 0, 0, 0, nan, 0, 1e308, 0})
	rec.Data[6] = 1e308
	if diff := cmp.Diff([]span{{1, 3}, {4, 7}}, finiteSpans(rec, false), cmp.AllowUnexported(span{})); diff != "" {
		t.Errorf("line spans (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]span{{1, 3}, {5, 6}}, finiteSpans(rec, true), cmp.AllowUnexported(span{})); diff != "" {
		t.Errorf("band spans (-want +got):\n%s", diff)
	}
	if got := finiteSpans(&Record{}, false); len(got) != 0 {
		t.Errorf("empty record has spans %v", got)
	}
}

func TestRenderNonFinite(t *testing.T) {
	nan := math.NaN()
	one, _ := Aggregate("A", "a_one.txt", Series{1, 2, 3}, Zeros(3))
	two, _ := Aggregate("A", "a_two.txt", Series{1, nan, 3, math.Inf(-1)}, Series{0.5, 0.5, nan, 0.5})
	batches := []*Batch{
		{Name: "one", Files: []string{"a_one.txt"}, Records: []*Record{one}},
		{Name: "two", Files: []string{"a_two.txt"}, Records: []*Record{two}},
	}
	dir := t.TempDir()
	r, err := NewChartRenderer(dir, PNG, DefaultStyle(), nil)
	if err != nil {
		t.Fatal(err)
	}
	paths, err := RenderAll(r, batches)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 2 {
		t.Fatalf("wrote %v, want 2 charts", paths)
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Error(err)
		}
	}

	// Only finite samples count towards the fitted y axis.
	pl, err := NewChart(batches[1], Style{})
	if err != nil {
		t.Fatal(err)
	}
	if pl.Y.Max != 1.5 {
		t.Errorf("fitted y max %v, want 1.5", pl.Y.Max)
	}
}

func TestRenderFormats(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	b := testBatch(t)
	for _, test := range []struct {
		format Format
		magic  []byte
	}{
		{PNG, []byte("\x89PNG")},
		{SVG, []byte("<?xml")},
		{PDF, []byte("%PDF")},
	} {
		style := DefaultStyle()
		style.XMax = 3
		r, err := NewChartRenderer(dir, test.format, style, nil)
		if err != nil {
			t.Fatal(err)
		}
		path, err := r.Render(b)
		if err != nil {
			t.Fatalf("%s: %v", test.format, err)
		}
		if want := filepath.Join(dir, "conv."+string(test.format)); path != want {
			t.Errorf("%s: wrote %s, want %s", test.format, path, want)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(data, test.magic) {
			t.Errorf("%s: output starts with %q", test.format, data[:min(len(data), 8)])
		}
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": PNG, "png": PNG, "svg": SVG, "pdf": PDF} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseFormat("gif"); err == nil {
		t.Errorf("ParseFormat(gif): want error")
	}
}

// TestScenario runs the whole pipeline on a real directory: two
// algorithms with one matching file produce a single chart.
func TestScenario(t *testing.T) {
	base := t.TempDir()
	for _, alg := range []string{"ducb", "swucb"} {
		if err := os.MkdirAll(filepath.Join(base, alg), 0777); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(base, alg, "a_conv.txt"), []byte("1.0,2.0,3.0"), 0666); err != nil {
			t.Fatal(err)
		}
	}
	tr := resultset.Tree{FS: os.DirFS(base), Root: base}
	b, err := NewBuilder(tr, &BuilderOptions{Format: resultfmt.Options{Columns: 3}})
	if err != nil {
		t.Fatal(err)
	}
	batches, err := b.CrossAlgorithm(resultset.ParseSources([]string{"D-UCB=ducb", "SW-UCB=swucb"}), resultset.Scan())
	if err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(base, "plots")
	r, err := NewChartRenderer(out, PNG, DefaultStyle(), nil)
	if err != nil {
		t.Fatal(err)
	}
	paths, err := RenderAll(r, batches)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 1 || paths[0] != filepath.Join(out, "conv.png") {
		t.Fatalf("wrote %v, want [%s]", paths, filepath.Join(out, "conv.png"))
	}
	ents, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	if len(ents) != 1 {
		t.Errorf("output directory has %d entries, want 1", len(ents))
	}
}
