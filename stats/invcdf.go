// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"

	"github.com/aclements/go-probdist/mathx"
)

// invCDFTolerance is the absolute tolerance of numerical quantiles.
const invCDFTolerance = 1e-12

// searchInvCDF finds x such that d.CDF(x) == p for 0 < p < 1 using a
// bracketing root finder.
func (d *Continuous) searchInvCDF(p float64) float64 {
	f := func(x float64) float64 { return d.CDF(x) - p }
	loX, hiX := bracket(f, d.model.Support())
	if f(loX) >= 0 {
		// An atom at the lower bound, as in a delta kernel.
		return loX
	}
	// Either failure means the model's CDF is not a valid
	// distribution function: it is not monotone, or the search could
	// not narrow in on p.
	x, err := mathx.FindRoot(f, loX, hiX, invCDFTolerance)
	if err != nil {
		panic(fmt.Errorf("stats: InvCDF(%v) of %v: %v: %w", p, d, err, ErrInternal))
	}
	return x
}

// bracket returns loX < hiX within s such that f(loX) <= 0 <= f(hiX),
// where f is non-decreasing, negative below s and positive above it.
//
// Infinite ends of s are replaced by stepping away from the finite end
// (or from 0 if both ends are infinite) with a doubling step until f
// changes sign.
func bracket(f func(float64) float64, s mathx.Range) (loX, hiX float64) {
	loInf, hiInf := math.IsInf(s.Min, -1), math.IsInf(s.Max, 1)
	switch {
	case !loInf && !hiInf:
		return s.Min, s.Max
	case !loInf:
		return expandUp(f, s.Min)
	case !hiInf:
		return expandDown(f, s.Max)
	}
	if f(0) < 0 {
		return expandUp(f, 0)
	}
	return expandDown(f, 0)
}

// expandUp finds [loX, hiX] with f(loX) <= 0 <= f(hiX), given
// f(x0) <= 0.
func expandUp(f func(float64) float64, x0 float64) (loX, hiX float64) {
	loX = x0
	for delta := 1.0; ; delta *= 2 {
		hiX = x0 + delta
		if f(hiX) >= 0 {
			return loX, hiX
		}
		loX = hiX
	}
}

// expandDown finds [loX, hiX] with f(loX) <= 0 <= f(hiX), given
// f(x0) >= 0.
func expandDown(f func(float64) float64, x0 float64) (loX, hiX float64) {
	hiX = x0
	for delta := 1.0; ; delta *= 2 {
		loX = x0 - delta
		if f(loX) <= 0 {
			return loX, hiX
		}
		hiX = loX
	}
}
