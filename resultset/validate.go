// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultset

import "fmt"

// A FileSet is an ordered list of file names shared by every source
// of a comparison.
type FileSet []string

// A FileCountMismatchError reports a source whose file list length
// differs from the first source's.
type FileCountMismatchError struct {
	Source    Source
	Want, Got int
}

func (e *FileCountMismatchError) Error() string {
	return fmt.Sprintf("source %s has %d files, want %d", e.Source.Dir, e.Got, e.Want)
}

// A FileNameMismatchError reports a source whose file at Pos differs
// from the first source's.
type FileNameMismatchError struct {
	Pos       int // 0-based
	Source    Source
	Want, Got string
}

func (e *FileNameMismatchError) Error() string {
	return fmt.Sprintf("source %s: file %d is %s, want %s", e.Source.Dir, e.Pos, e.Got, e.Want)
}

// Validate checks that lists, as returned by Tree.Resolve for srcs,
// agree on every file name at every position and returns the common
// file set.
//
// All lengths are checked before any names, so a count mismatch is
// always reported as a *FileCountMismatchError. Positional mismatches
// are reported as a *FileNameMismatchError for the lowest position,
// then the lowest source index.
func Validate(srcs []Source, lists [][]string) (FileSet, error) {
	if len(lists) == 0 {
		return nil, ErrNoSources
	}
	if len(srcs) != len(lists) {
		panic(fmt.Sprintf("Validate: %d sources, %d lists", len(srcs), len(lists)))
	}
	want := lists[0]
	for i, l := range lists[1:] {
		if len(l) != len(want) {
			return nil, &FileCountMismatchError{Source: srcs[i+1], Want: len(want), Got: len(l)}
		}
	}
	for pos, name := range want {
		for i, l := range lists[1:] {
			if l[pos] != name {
				return nil, &FileNameMismatchError{Pos: pos, Source: srcs[i+1], Want: name, Got: l[pos]}
			}
		}
	}
	return append(FileSet(nil), want...), nil
}
