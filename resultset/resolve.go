// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultset

import (
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/gmcbench/seriesplot/resultfmt"
)

// A Selection determines which files of each source are processed.
type Selection struct {
	// Explicit selects exactly Files, in order, for every source.
	// Otherwise each source's directory is scanned.
	Explicit bool
	Files    []string
}

// Scan returns a Selection of every non-variance file.
func Scan() Selection {
	return Selection{}
}

// Only returns a Selection of the named files.
func Only(files ...string) Selection {
	return Selection{Explicit: true, Files: files}
}

func (s Selection) String() string {
	if s.Explicit {
		return fmt.Sprintf("explicit %v", s.Files)
	}
	return "scan"
}

// Resolve returns one ordered list of file names per source.
//
// For an explicit selection, every source gets a copy of sel.Files
// and t is not accessed. For a scan, each source directory is read
// and every entry whose name has resultfmt.VarianceSuffix is
// dropped. Entries are listed in the order fs.ReadDir returns them,
// which is sorted by name. Entries are not filtered by type.
func (t Tree) Resolve(srcs []Source, sel Selection) ([][]string, error) {
	if len(srcs) == 0 {
		return nil, ErrNoSources
	}
	lists := make([][]string, len(srcs))
	for i, src := range srcs {
		if sel.Explicit {
			lists[i] = append([]string(nil), sel.Files...)
			continue
		}
		files, err := t.scan(src.Dir)
		if err != nil {
			return nil, err
		}
		lists[i] = files
	}
	return lists, nil
}

func (t Tree) scan(dir string) ([]string, error) {
	dir = path.Clean(dir)
	ents, err := fs.ReadDir(t.FS, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &SourceNotFoundError{Path: t.Path(dir), Err: err}
		}
		return nil, fmt.Errorf("reading source directory %s: %w", t.Path(dir), err)
	}
	files := make([]string, 0, len(ents))
	for _, ent := range ents {
		if resultfmt.IsVariance(ent.Name()) {
			continue
		}
		files = append(files, ent.Name())
	}
	return files, nil
}
