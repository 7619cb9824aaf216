// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultfmt

import "strings"

// VarianceSuffix is the reserved suffix of variance sidecar files.
// Directory scans skip every name ending in it.
const VarianceSuffix = "var.txt"

// IsVariance reports whether name is reserved for variance data.
func IsVariance(name string) bool {
	return strings.HasSuffix(name, VarianceSuffix)
}

// SidecarName returns the name of the variance file for the result
// file name. The last four bytes of name (normally ".txt") are
// replaced by "_var.txt", exactly as the cruncher names them.
func SidecarName(name string) string {
	if len(name) < 4 {
		return "_var.txt"
	}
	return name[:len(name)-4] + "_var.txt"
}

// ChartStem returns the chart name for a result file: name without
// everything up to and including its first "_" and without its
// extension. For example, "alg_convergence.txt" gives "convergence".
func ChartStem(name string) string {
	start := strings.IndexByte(name, '_') + 1
	end := strings.LastIndexByte(name, '.')
	if end < start {
		end = len(name)
	}
	return name[start:end]
}

// ChartName returns the PNG file name for a result file.
func ChartName(name string) string {
	return ChartStem(name) + ".png"
}
