// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Seriesplot charts the per-position result series written by
// bandit algorithm experiments.
//
// Usage:
//
//	seriesplot compare [flags] [label=]dir...
//	seriesplot single [flags] [label=]dir
//	seriesplot check [flags] [label=]dir...
//	seriesplot dump [flags] [label=]dir...
//
// Each dir is an algorithm's result directory below the base
// directory given by --base, which may also be a gs://bucket/prefix
// URL. Every result file is a single row of comma-separated columns;
// unless --variance=false, each file "x.txt" is accompanied by a
// variance file "x_var.txt" of the same shape.
//
// Compare draws one chart per result file name, with one line per
// algorithm. It requires every algorithm directory to hold the same
// files in the same order, and reports the first divergence
// otherwise. For example:
//
//	seriesplot compare --base results --scale log D-UCB=ducb SW-UCB=swucb
//
// writes a chart into the plots directory for every file present in
// both results/ducb and results/swucb, such as plots/regret.png for
// run_regret.txt.
//
// Single draws one chart with one line per file of a single
// algorithm. The --labels flag gives the legend label of each file in
// order, and --chart names the chart.
//
// Check validates the directories without reading any series and
// prints the common file names. Dump prints the series that compare
// would chart as aligned columns.
//
// Settings may also be read from a YAML file given by --config; flags
// that are set explicitly take precedence over the file.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
)

var exit = os.Exit // replaced during testing

func main() {
	log.SetPrefix("seriesplot: ")
	log.SetFlags(0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Print(err)
		exit(1)
	}
}
