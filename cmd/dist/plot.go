// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/aclements/go-probdist/stats"
)

const (
	plotWidth  = 60
	plotHeight = 10
)

// fprintPDF prints an ASCII plot of d's density between its 0.1st and
// 99.9th percentiles, with x running down the page.
func fprintPDF(w io.Writer, d *stats.Continuous) {
	lo, hi := d.InvCDF(0.001), d.InvCDF(0.999)
	if !(hi > lo) {
		return
	}
	ys := make([]float64, plotHeight*2)
	xs := make([]float64, len(ys))
	ymax := 0.0
	for i := range ys {
		xs[i] = lo + (hi-lo)*float64(i)/float64(len(ys)-1)
		ys[i] = d.PDF(xs[i])
		ymax = max(ymax, ys[i])
	}
	if ymax == 0 {
		return
	}
	for i, y := range ys {
		n := int(y / ymax * plotWidth)
		fmt.Fprintf(w, "%12.6g |%s\n", xs[i], strings.Repeat("*", n))
	}
}
