// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mathx

import (
	"fmt"
	"math"
)

// A Range is the closed interval [Min, Max] of the real line. Either
// bound may be infinite.
type Range struct {
	Min, Max float64
}

// Real is the whole real line.
var Real = Range{math.Inf(-1), math.Inf(1)}

// Contains reports whether Min <= x <= Max.
func (r Range) Contains(x float64) bool {
	return r.Min <= x && x <= r.Max
}

// Length returns Max - Min.
func (r Range) Length() float64 {
	return r.Max - r.Min
}

// IsFinite reports whether both bounds of r are finite.
func (r Range) IsFinite() bool {
	return !math.IsInf(r.Min, 0) && !math.IsInf(r.Max, 0)
}

// Hull returns the smallest Range containing both r and o.
func (r Range) Hull(o Range) Range {
	return Range{math.Min(r.Min, o.Min), math.Max(r.Max, o.Max)}
}

// Clamp returns x limited to r.
func (r Range) Clamp(x float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, x))
}

func (r Range) String() string {
	return fmt.Sprintf("[%g, %g]", r.Min, r.Max)
}

// An IntRange is the closed integer interval [Min, Max].
//
// math.MinInt and math.MaxInt stand for unbounded ends.
type IntRange struct {
	Min, Max int
}

// Integers is the set of all integers.
var Integers = IntRange{math.MinInt, math.MaxInt}

// Naturals is the set of non-negative integers.
var Naturals = IntRange{0, math.MaxInt}

// Contains reports whether Min <= k <= Max.
func (r IntRange) Contains(k int) bool {
	return r.Min <= k && k <= r.Max
}

// IsFinite reports whether neither end of r is unbounded.
func (r IntRange) IsFinite() bool {
	return r.Min != math.MinInt && r.Max != math.MaxInt
}

// Len returns the number of integers in r. It panics if r is
// unbounded.
func (r IntRange) Len() int {
	if !r.IsFinite() {
		panic("mathx: Len of unbounded IntRange")
	}
	if r.Max < r.Min {
		return 0
	}
	return r.Max - r.Min + 1
}

// Float returns r as a Range, mapping unbounded ends to ±inf.
func (r IntRange) Float() Range {
	lo, hi := float64(r.Min), float64(r.Max)
	if r.Min == math.MinInt {
		lo = math.Inf(-1)
	}
	if r.Max == math.MaxInt {
		hi = inf
	}
	return Range{lo, hi}
}

func (r IntRange) String() string {
	lo, hi := fmt.Sprint(r.Min), fmt.Sprint(r.Max)
	if r.Min == math.MinInt {
		lo = "-inf"
	}
	if r.Max == math.MaxInt {
		hi = "inf"
	}
	return "[" + lo + ", " + hi + "]"
}
