// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resultset selects the result files that take part in a
// comparison and checks that every algorithm contributes the same
// ordered set of files.
//
// Result files are organized as one directory per algorithm below a
// common base:
//
//	base/
//		ducb/
//			ducb_conv.txt
//			ducb_conv_var.txt
//		swucb/
//			swucb_conv.txt
//			swucb_conv_var.txt
//
// A comparison only makes sense if the directories line up file by
// file, so Validate rejects any divergence before data is read.
package resultset

import (
	"errors"
	"io/fs"
	"path"
	"strings"
)

// A Source is one algorithm's result directory and the label that
// represents it in chart legends.
type Source struct {
	// Dir is a slash-separated path relative to the root of a
	// Tree.
	Dir string

	// Label is the legend name.
	Label string
}

// ParseSource parses a source of the form "label=dir" or "dir". In
// the latter form, the label is dir itself.
func ParseSource(s string) Source {
	if i := strings.Index(s, "="); i >= 0 {
		return Source{Dir: s[i+1:], Label: s[:i]}
	}
	return Source{Dir: s, Label: s}
}

// ParseSources parses each of args with ParseSource.
func ParseSources(args []string) []Source {
	srcs := make([]Source, 0, len(args))
	for _, arg := range args {
		srcs = append(srcs, ParseSource(arg))
	}
	return srcs
}

// Labels returns the legend labels of srcs in order.
func Labels(srcs []Source) []string {
	labels := make([]string, len(srcs))
	for i, s := range srcs {
		labels[i] = s.Label
	}
	return labels
}

// A Tree is a file system holding algorithm directories.
type Tree struct {
	FS fs.FS

	// Root names the tree in diagnostics, for example the base
	// directory or a "gs://bucket/prefix" URL. It is not used to
	// access files.
	Root string
}

// Path returns the diagnostic path of the slash-separated name in t.
func (t Tree) Path(name string) string {
	if t.Root == "" {
		return name
	}
	return strings.TrimSuffix(t.Root, "/") + "/" + name
}

// Join returns the fs.FS name of file within dir.
func Join(dir, file string) string {
	return path.Join(dir, file)
}

// ErrNoSources is returned when a comparison has no algorithms.
var ErrNoSources = errors.New("no algorithm sources")

// A SourceNotFoundError reports an algorithm directory that does not
// exist.
type SourceNotFoundError struct {
	Path string
	Err  error
}

func (e *SourceNotFoundError) Error() string {
	return "source directory " + e.Path + " not found"
}

func (e *SourceNotFoundError) Unwrap() error {
	return e.Err
}
