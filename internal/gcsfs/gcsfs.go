// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gcsfs exposes a Google Cloud Storage prefix as a read-only
// io/fs file system, so result directories uploaded to a bucket can
// be charted without copying them locally.
//
// Object names are mapped to paths by stripping the prefix; "/"
// separates directories, which exist whenever some object lies
// below them.
package gcsfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// IsURL reports whether s names a bucket, as in "gs://bucket/prefix".
func IsURL(s string) bool {
	return strings.HasPrefix(s, "gs://")
}

// ParseURL splits a "gs://bucket/prefix" URL.
func ParseURL(s string) (bucket, prefix string, err error) {
	if !IsURL(s) {
		return "", "", fmt.Errorf("%q is not a gs:// URL", s)
	}
	rest := strings.TrimPrefix(s, "gs://")
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("%q has no bucket", s)
	}
	return bucket, strings.Trim(prefix, "/"), nil
}

// Dial returns the file system for url using application default
// credentials restricted to read-only access.
func Dial(ctx context.Context, url string) (*FS, error) {
	bucket, prefix, err := ParseURL(url)
	if err != nil {
		return nil, err
	}
	ts, err := google.DefaultTokenSource(ctx, storage.ScopeReadOnly)
	if err != nil {
		return nil, err
	}
	client, err := storage.NewClient(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, err
	}
	f := New(ctx, client.Bucket(bucket), prefix)
	f.client = client
	return f, nil
}

// An FS is a read-only view of the objects below a prefix of a
// bucket. It implements fs.ReadDirFS and fs.StatFS.
//
// Requests use the context given to New.
type FS struct {
	ctx    context.Context
	client *storage.Client // nil unless created by Dial
	bucket *storage.BucketHandle
	prefix string
}

// New returns the file system of objects below prefix in bucket.
func New(ctx context.Context, bucket *storage.BucketHandle, prefix string) *FS {
	return &FS{ctx: ctx, bucket: bucket, prefix: strings.Trim(prefix, "/")}
}

// Close releases the client created by Dial.
func (f *FS) Close() error {
	if f.client == nil {
		return nil
	}
	return f.client.Close()
}

// object returns the object name of the fs path name.
func (f *FS) object(name string) string {
	if name == "." {
		return f.prefix
	}
	if f.prefix == "" {
		return name
	}
	return f.prefix + "/" + name
}

// dirPrefix returns the listing prefix of the directory name.
func (f *FS) dirPrefix(name string) string {
	p := f.object(name)
	if p == "" {
		return ""
	}
	return p + "/"
}

// Open implements fs.FS.
func (f *FS) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	if name != "." {
		obj := f.bucket.Object(f.object(name))
		attrs, err := obj.Attrs(f.ctx)
		if err == nil {
			r, err := obj.NewReader(f.ctx)
			if err != nil {
				return nil, &fs.PathError{Op: "open", Path: name, Err: err}
			}
			return &file{r: r, info: objectInfo(attrs)}, nil
		}
		if !errors.Is(err, storage.ErrObjectNotExist) {
			return nil, &fs.PathError{Op: "open", Path: name, Err: err}
		}
	}
	ents, err := f.list(name)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	if len(ents) == 0 && name != "." {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return &dir{info: dirInfo(path.Base(name)), ents: ents}, nil
}

// Stat implements fs.StatFS.
func (f *FS) Stat(name string) (fs.FileInfo, error) {
	file, err := f.Open(name)
	if err != nil {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: errors.Unwrap(err)}
	}
	defer file.Close()
	return file.Stat()
}

// ReadDir implements fs.ReadDirFS.
func (f *FS) ReadDir(name string) ([]fs.DirEntry, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}
	ents, err := f.list(name)
	if err != nil {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: err}
	}
	if len(ents) == 0 && name != "." {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}
	return ents, nil
}

// list returns the entries directly below the directory name, sorted
// by name.
func (f *FS) list(name string) ([]fs.DirEntry, error) {
	prefix := f.dirPrefix(name)
	it := f.bucket.Objects(f.ctx, &storage.Query{Prefix: prefix, Delimiter: "/"})
	var ents []fs.DirEntry
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var info fs.FileInfo
		if attrs.Prefix != "" {
			info = dirInfo(path.Base(strings.TrimSuffix(attrs.Prefix, "/")))
		} else {
			if attrs.Name == prefix {
				// Placeholder object for the directory itself.
				continue
			}
			info = objectInfo(attrs)
		}
		ents = append(ents, fs.FileInfoToDirEntry(info))
	}
	sort.Slice(ents, func(i, j int) bool { return ents[i].Name() < ents[j].Name() })
	return ents, nil
}

type fileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func objectInfo(attrs *storage.ObjectAttrs) *fileInfo {
	return &fileInfo{name: path.Base(attrs.Name), size: attrs.Size, mode: 0444, modTime: attrs.Updated}
}

func dirInfo(name string) *fileInfo {
	return &fileInfo{name: name, mode: fs.ModeDir | 0555}
}

func (fi *fileInfo) Name() string       { return fi.name }
func (fi *fileInfo) Size() int64        { return fi.size }
func (fi *fileInfo) Mode() fs.FileMode  { return fi.mode }
func (fi *fileInfo) ModTime() time.Time { return fi.modTime }
func (fi *fileInfo) IsDir() bool        { return fi.mode.IsDir() }
func (fi *fileInfo) Sys() any           { return nil }

type file struct {
	r    *storage.Reader
	info *fileInfo
}

func (f *file) Stat() (fs.FileInfo, error) { return f.info, nil }
func (f *file) Read(p []byte) (int, error) { return f.r.Read(p) }
func (f *file) Close() error               { return f.r.Close() }

type dir struct {
	info *fileInfo
	ents []fs.DirEntry
}

func (d *dir) Stat() (fs.FileInfo, error) { return d.info, nil }
func (d *dir) Close() error               { return nil }

func (d *dir) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: d.info.name, Err: errors.New("is a directory")}
}

func (d *dir) ReadDir(n int) ([]fs.DirEntry, error) {
	if n <= 0 {
		ents := d.ents
		d.ents = nil
		return ents, nil
	}
	if len(d.ents) == 0 {
		return nil, io.EOF
	}
	if n > len(d.ents) {
		n = len(d.ents)
	}
	ents := d.ents[:n]
	d.ents = d.ents[n:]
	return ents, nil
}
