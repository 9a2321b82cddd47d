// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mathx

import "math"

// invPhi is 1/φ, the golden ratio conjugate.
const invPhi = 0.61803398874989484820458683436563811772030917980576

// Maximize returns the x in [low, high] that maximizes f, to within
// tolerance, using golden-section search. f must be unimodal on
// [low, high] for the result to be the global maximum; otherwise it
// is a local one. Both bounds must be finite.
func Maximize(f func(float64) float64, low, high, tolerance float64) float64 {
	if low > high {
		low, high = high, low
	}
	a, b := low, high
	c, d := b-invPhi*(b-a), a+invPhi*(b-a)
	fc, fd := f(c), f(d)
	for i := 0; i < 200 && b-a > tolerance; i++ {
		if fc > fd {
			b, d, fd = d, c, fc
			c = b - invPhi*(b-a)
			fc = f(c)
		} else {
			a, c, fc = c, d, fd
			d = a + invPhi*(b-a)
			fd = f(d)
		}
	}
	x := (a + b) / 2
	// The interior search never probes the end points.
	fx := f(x)
	if fl := f(low); fl > fx {
		x, fx = low, fl
	}
	if fh := f(high); fh > fx && !math.IsNaN(fh) {
		x = high
	}
	return x
}
