// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"os"
	"path/filepath"

	"github.com/google/safehtml/template"

	"github.com/gmcbench/seriesplot/series"
)

const indexTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; }
figure { display: inline-block; margin: 1em; }
figcaption { text-align: center; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Charts -}}
<figure>
<a href="{{.File}}"><img src="{{.File}}" alt="{{.Name}}" width="480"></a>
<figcaption>{{.Name}}: {{range $i, $l := .Labels}}{{if $i}}, {{end}}{{$l}}{{end}}</figcaption>
</figure>
{{end -}}
</body>
</html>
`

var indexTmpl = template.Must(template.New("index").Parse(indexTemplate))

// A Chart is one entry of the gallery.
type Chart struct {
	Name   string
	File   string // relative to the gallery
	Labels []string
}

// Charts pairs batches with the paths they were rendered to.
func Charts(batches []*series.Batch, paths []string) []Chart {
	charts := make([]Chart, 0, len(paths))
	for i, p := range paths {
		charts = append(charts, Chart{
			Name:   batches[i].Name,
			File:   filepath.Base(p),
			Labels: batches[i].Labels(),
		})
	}
	return charts
}

// WriteIndex writes dir/index.html showing charts, which must live
// in dir, and returns its path.
func WriteIndex(dir, title string, charts []Chart) (string, error) {
	path := filepath.Join(dir, "index.html")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	err = indexTmpl.Execute(f, struct {
		Title  string
		Charts []Chart
	}{title, charts})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", err
	}
	return path, nil
}
