// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultset

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func file(data string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(data)}
}

func TestParseSource(t *testing.T) {
	for _, test := range []struct {
		in   string
		want Source
	}{
		{"ducb", Source{Dir: "ducb", Label: "ducb"}},
		{"D-UCB=ducb", Source{Dir: "ducb", Label: "D-UCB"}},
		{"a=b=c", Source{Dir: "b=c", Label: "a"}},
		{"=dir", Source{Dir: "dir", Label: ""}},
	} {
		if got := ParseSource(test.in); got != test.want {
			t.Errorf("ParseSource(%q) = %+v, want %+v", test.in, got, test.want)
		}
	}
	srcs := ParseSources([]string{"A=a", "b"})
	if diff := cmp.Diff([]string{"A", "b"}, Labels(srcs)); diff != "" {
		t.Errorf("Labels mismatch (-want +got):\n%s", diff)
	}
}

func TestTreePath(t *testing.T) {
	for _, test := range []struct{ root, name, want string }{
		{"", "a/b.txt", "a/b.txt"},
		{"data", "a/b.txt", "data/a/b.txt"},
		{"data/", "a/b.txt", "data/a/b.txt"},
		{"gs://bucket/runs", "a/b.txt", "gs://bucket/runs/a/b.txt"},
	} {
		if got := (Tree{Root: test.root}).Path(test.name); got != test.want {
			t.Errorf("Tree{%q}.Path(%q) = %q, want %q", test.root, test.name, got, test.want)
		}
	}
}

func TestResolveScan(t *testing.T) {
	tree := Tree{FS: fstest.MapFS{
		"ducb/ducb_conv.txt":       file("1,"),
		"ducb/ducb_conv_var.txt":   file("0,"),
		"ducb/ducb_size_1.txt":     file("1,"),
		"ducb/ducb_size_1_var.txt": file("0,"),
		"swucb/ducb_conv.txt":      file("1,"),
		"swucb/ducb_size_1.txt":    file("1,"),
		"swucb/notes_var.txt":      file(""),
	}}
	srcs := []Source{{Dir: "ducb"}, {Dir: "./swucb/"}}
	got, err := tree.Resolve(srcs, Scan())
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{
		{"ducb_conv.txt", "ducb_size_1.txt"},
		{"ducb_conv.txt", "ducb_size_1.txt"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveExplicit(t *testing.T) {
	// An explicit selection never touches the file system.
	tree := Tree{}
	sel := Only("b.txt", "a.txt")
	got, err := tree.Resolve([]Source{{Dir: "x"}, {Dir: "y"}}, sel)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{{"b.txt", "a.txt"}, {"b.txt", "a.txt"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
	}
	got[0][0] = "changed"
	if sel.Files[0] != "b.txt" || got[1][0] != "b.txt" {
		t.Errorf("Resolve lists alias the selection")
	}
}

func TestResolveMissing(t *testing.T) {
	tree := Tree{FS: fstest.MapFS{"a/x.txt": file("1,")}, Root: "base"}
	_, err := tree.Resolve([]Source{{Dir: "a"}, {Dir: "b"}}, Scan())
	var nf *SourceNotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("got %v, want *SourceNotFoundError", err)
	}
	if nf.Path != "base/b" {
		t.Errorf("got path %q, want %q", nf.Path, "base/b")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error does not wrap fs.ErrNotExist")
	}

	if _, err := tree.Resolve(nil, Scan()); !errors.Is(err, ErrNoSources) {
		t.Errorf("no sources: got %v, want ErrNoSources", err)
	}
}

func TestValidate(t *testing.T) {
	srcs := []Source{{Dir: "a"}, {Dir: "b"}, {Dir: "c"}}
	lists := [][]string{
		{"x.txt", "y.txt"},
		{"x.txt", "y.txt"},
		{"x.txt", "y.txt"},
	}
	got, err := Validate(srcs, lists)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(FileSet{"x.txt", "y.txt"}, got); diff != "" {
		t.Errorf("Validate mismatch (-want +got):\n%s", diff)
	}

	// One source is trivially consistent.
	if _, err := Validate(srcs[:1], lists[:1]); err != nil {
		t.Errorf("single source: %v", err)
	}
	if _, err := Validate(nil, nil); !errors.Is(err, ErrNoSources) {
		t.Errorf("no sources: got %v, want ErrNoSources", err)
	}
}

func TestValidateNameMismatch(t *testing.T) {
	srcs := []Source{{Dir: "A"}, {Dir: "B"}}
	_, err := Validate(srcs, [][]string{{"x.txt", "y.txt"}, {"x.txt", "z.txt"}})
	var nm *FileNameMismatchError
	if !errors.As(err, &nm) {
		t.Fatalf("got %v, want *FileNameMismatchError", err)
	}
	want := FileNameMismatchError{Pos: 1, Source: srcs[1], Want: "y.txt", Got: "z.txt"}
	if *nm != want {
		t.Errorf("got %+v, want %+v", *nm, want)
	}
	if got, want := err.Error(), "source B: file 1 is z.txt, want y.txt"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestValidateOrderSensitive(t *testing.T) {
	// Every permutation of the reference list other than the
	// identity must be rejected even though the sets are equal.
	ref := []string{"a.txt", "b.txt", "c.txt"}
	perms := [][]string{
		{"a.txt", "b.txt", "c.txt"},
		{"a.txt", "c.txt", "b.txt"},
		{"b.txt", "a.txt", "c.txt"},
		{"b.txt", "c.txt", "a.txt"},
		{"c.txt", "a.txt", "b.txt"},
		{"c.txt", "b.txt", "a.txt"},
	}
	srcs := []Source{{Dir: "ref"}, {Dir: "perm"}}
	for i, p := range perms {
		_, err := Validate(srcs, [][]string{ref, p})
		if i == 0 {
			if err != nil {
				t.Errorf("identity: %v", err)
			}
			continue
		}
		var nm *FileNameMismatchError
		if !errors.As(err, &nm) {
			t.Errorf("permutation %v: got %v, want *FileNameMismatchError", p, err)
		}
	}
}

func TestValidateCountBeforeName(t *testing.T) {
	// A name mismatch in an early source must not mask a count
	// mismatch in a later one.
	srcs := []Source{{Dir: "a"}, {Dir: "b"}, {Dir: "c"}}
	_, err := Validate(srcs, [][]string{
		{"x.txt", "y.txt"},
		{"q.txt", "y.txt"},
		{"x.txt"},
	})
	var cm *FileCountMismatchError
	if !errors.As(err, &cm) {
		t.Fatalf("got %v, want *FileCountMismatchError", err)
	}
	if cm.Source.Dir != "c" || cm.Want != 2 || cm.Got != 1 {
		t.Errorf("got %+v", *cm)
	}
}
