// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package series

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// A Renderer draws batches.
type Renderer interface {
	// Render draws b and returns the path of the written chart.
	Render(b *Batch) (string, error)
}

// RenderAll renders every batch with r and returns the written
// paths. It stops at the first error.
func RenderAll(r Renderer, batches []*Batch) ([]string, error) {
	paths := make([]string, 0, len(batches))
	for _, b := range batches {
		p, err := r.Render(b)
		if err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// A Format is a chart file format.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
	PDF Format = "pdf"
)

// ParseFormat returns the Format named s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case PNG, SVG, PDF:
		return f, nil
	case "":
		return PNG, nil
	}
	return "", fmt.Errorf("unknown chart format %q", s)
}

// Style controls the axes and size of a chart.
type Style struct {
	// LogX uses a logarithmic x axis.
	LogX bool

	// XMax is the upper bound of the x axis, which starts at 1.
	// If XMax is 0, the axis extends to the longest record.
	XMax float64

	// YMax is the upper bound of the y axis, which starts at 0.
	// If YMax <= 0, the axis extends to the highest point of any
	// variance band.
	YMax float64

	Width, Height vg.Length

	// DPI applies to PNG output only.
	DPI int
}

// DefaultStyle returns a linear 16x12cm style fitted to the data.
func DefaultStyle() Style {
	return Style{
		Width:  16 * vg.Centimeter,
		Height: 12 * vg.Centimeter,
		DPI:    150,
	}
}

// ChartRenderer draws each batch as a line chart with one line per
// record, shading each record's variance band.
type ChartRenderer struct {
	Dir    string
	Format Format
	Style  Style

	log *zap.Logger
}

// NewChartRenderer returns a renderer writing into dir, creating
// dir if necessary.
func NewChartRenderer(dir string, format Format, style Style, log *zap.Logger) (*ChartRenderer, error) {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	if format == "" {
		format = PNG
	}
	return &ChartRenderer{Dir: dir, Format: format, Style: style, log: log}, nil
}

// Path returns the file b is rendered to.
func (r *ChartRenderer) Path(b *Batch) string {
	return filepath.Join(r.Dir, b.Name+"."+string(r.Format))
}

// Render implements Renderer.
func (r *ChartRenderer) Render(b *Batch) (string, error) {
	pl, err := NewChart(b, r.Style)
	if err != nil {
		return "", fmt.Errorf("chart %s: %w", b.Name, err)
	}

	var can vg.CanvasWriterTo
	w, h := r.Style.Width, r.Style.Height
	switch r.Format {
	case PNG:
		can = vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(w, h),
			vgimg.UseDPI(r.Style.DPI), vgimg.UseBackgroundColor(color.White))}
	case SVG:
		can = vgsvg.New(w, h)
	case PDF:
		can = vgpdf.New(w, h)
	default:
		return "", fmt.Errorf("unknown chart format %q", r.Format)
	}
	pl.Draw(draw.New(can))

	file := r.Path(b)
	f, err := os.Create(file)
	if err != nil {
		return "", err
	}
	if _, err := can.WriteTo(f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	r.log.Info("wrote chart", zap.String("path", file), zap.Int("lines", len(b.Records)))
	return file, nil
}

// NewChart returns the plot of b. Samples outside the axis bounds
// are clipped by the plot, not altered.
func NewChart(b *Batch, st Style) (*plot.Plot, error) {
	pl := plot.New()
	pl.Add(plotter.NewGrid())

	for i, rec := range b.Records {
		clr := plotutil.Color(i)
		if hasVariance(rec) {
			for _, sp := range finiteSpans(rec, true) {
				band, err := plotter.NewPolygon(bandXYs(rec, sp))
				if err != nil {
					return nil, fmt.Errorf("%s: %w", rec.Label, err)
				}
				band.Color = fade(clr, 0x33)
				band.LineStyle.Width = 0
				pl.Add(band)
			}
		}
		style := plotter.DefaultLineStyle
		style.Color = clr
		style.Width = vg.Points(1)
		// Non-finite samples leave gaps.
		for _, sp := range finiteSpans(rec, false) {
			line, err := plotter.NewLine(lineXYs(rec, sp))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", rec.Label, err)
			}
			line.LineStyle = style
			pl.Add(line)
		}
		pl.Legend.Add(rec.Label, &plotter.Line{LineStyle: style})
	}

	xMax := st.XMax
	if xMax <= 0 {
		xMax = float64(b.Len())
	}
	if xMax <= 1 {
		// The axis must not collapse onto x=1.
		xMax = 2
	}
	yMax := st.YMax
	if yMax <= 0 {
		for _, rec := range b.Records {
			if _, hi := rec.Bounds(); hi > yMax {
				yMax = hi
			}
		}
		if yMax <= 0 {
			yMax = 1
		}
	}

	pl.X.Min, pl.X.Max = 1, xMax
	pl.Y.Min, pl.Y.Max = 0, yMax
	if st.LogX {
		pl.X.Scale = plot.LogScale{}
		pl.X.Tick.Marker = plot.LogTicks{}
	}
	return pl, nil
}

func hasVariance(rec *Record) bool {
	for _, v := range rec.Variance {
		if v != 0 {
			return true
		}
	}
	return false
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// A span is a half-open range [lo, hi) of sample positions.
type span struct{ lo, hi int }

// finiteSpans returns the maximal spans of rec whose data, and band
// edges if withVariance is set, are finite.
func finiteSpans(rec *Record, withVariance bool) []span {
	var spans []span
	start := -1
	for i, v := range rec.Data {
		ok := finite(v)
		if withVariance {
			d := rec.Variance[i]
			ok = ok && finite(d) && finite(v+d) && finite(v-d)
		}
		switch {
		case ok && start < 0:
			start = i
		case !ok && start >= 0:
			spans = append(spans, span{start, i})
			start = -1
		}
	}
	if start >= 0 {
		spans = append(spans, span{start, rec.Len()})
	}
	return spans
}

func lineXYs(rec *Record, r span) plotter.XYs {
	xys := make(plotter.XYs, 0, r.hi-r.lo)
	for i := r.lo; i < r.hi; i++ {
		xys = append(xys, plotter.XY{X: float64(rec.Index[i]), Y: rec.Data[i]})
	}
	return xys
}

// bandXYs returns the outline of rec's variance band over r: the
// upper edge left to right, then the lower edge right to left. Its
// length follows the record, not a fixed sample count.
func bandXYs(rec *Record, r span) plotter.XYs {
	n := r.hi - r.lo
	xys := make(plotter.XYs, 2*n)
	for i := 0; i < n; i++ {
		j := r.lo + i
		x := float64(rec.Index[j])
		v, d := rec.Data[j], rec.Variance[j]
		xys[i] = plotter.XY{X: x, Y: v + d}
		xys[2*n-1-i] = plotter.XY{X: x, Y: v - d}
	}
	return xys
}

func fade(c color.Color, alpha uint8) color.Color {
	r, g, b, _ := c.RGBA()
	return color.NRGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), alpha}
}
