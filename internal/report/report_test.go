// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/gmcbench/seriesplot/series"
)

func batch(t *testing.T, name string, recs ...*series.Record) *series.Batch {
	t.Helper()
	return &series.Batch{Name: name, Records: recs}
}

func record(t *testing.T, label string, data, variance series.Series) *series.Record {
	t.Helper()
	r, err := series.Aggregate(label, label+".txt", data, variance)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestSummary(t *testing.T) {
	b := batch(t, "conv",
		record(t, "A", series.Series{1, 2, 3}, series.Zeros(3)),
		record(t, "B", series.Series{4, 0.5, 2}, series.Zeros(3)),
	)
	var buf bytes.Buffer
	if err := Summary(&buf, []*series.Batch{b}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	want := [][]string{
		{"chart", "label", "n", "mean", "min", "max", "last"},
		{"conv", "A", "3", "2", "1", "3", "3"},
		{"conv", "B", "3", "2.167", "0.5", "4", "2"},
	}
	for i, line := range lines {
		if got := strings.Fields(line); strings.Join(got, " ") != strings.Join(want[i], " ") {
			t.Errorf("line %d = %q, want fields %v", i, line, want[i])
		}
	}
}

func TestSummaryEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Summary(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("got output %q for no batches", buf.String())
	}
	b := batch(t, "empty", record(t, "A", nil, nil))
	if err := Summary(&buf, []*series.Batch{b}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "NaN") {
		t.Errorf("empty record summary %q lacks NaN", buf.String())
	}
}

func TestDump(t *testing.T) {
	b := batch(t, "conv",
		record(t, "A", series.Series{0.5, 0.75}, series.Series{0.1, 0.2}),
		record(t, "A", series.Series{1, 2}, series.Zeros(2)),
	)
	var buf bytes.Buffer
	if err := Dump(&buf, b, true); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != "# conv" {
		t.Errorf("header %q, want %q", lines[0], "# conv")
	}
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}
	for _, col := range []string{"A#0", "A#0 var", "A#1", "A#1 var"} {
		if !strings.Contains(lines[1], col) {
			t.Errorf("column header %q lacks %q", lines[1], col)
		}
	}
	if got := strings.Fields(lines[3]); strings.Join(got, " ") != "2 0.75 0.2 2 0" {
		t.Errorf("row 2 = %q", lines[3])
	}

	buf.Reset()
	if err := Dump(&buf, b, false); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "var") {
		t.Errorf("dump without variance has variance columns:\n%s", buf.String())
	}
}

func TestWriteIndex(t *testing.T) {
	dir := t.TempDir()
	b := batch(t, "conv", record(t, "D-UCB", series.Series{1}, series.Zeros(1)), record(t, "<b>", series.Series{1}, series.Zeros(1)))
	charts := Charts([]*series.Batch{b}, []string{dir + "/conv.png"})
	path, err := WriteIndex(dir, "GMC results", charts)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	page := string(data)
	for _, want := range []string{"<title>GMC results</title>", `src="conv.png"`, "D-UCB", "&lt;b&gt;"} {
		if !strings.Contains(page, want) {
			t.Errorf("index lacks %q:\n%s", want, page)
		}
	}
}
