// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mathx

import (
	"fmt"
	"math"
)

// Bisect returns an x in [low, high] such that |f(x)| <= tolerance
// using the bisection method.
//
// f(low) and f(high) must have opposite signs.
//
// If f does not have a root in this interval (e.g., it is
// discontiguous), this returns the X of the apparent discontinuity
// and false.
func Bisect(f func(float64) float64, low, high, tolerance float64) (float64, bool) {
	flow, fhigh := f(low), f(high)
	if -tolerance <= flow && flow <= tolerance {
		return low, true
	}
	if -tolerance <= fhigh && fhigh <= tolerance {
		return high, true
	}
	if math.Signbit(flow) == math.Signbit(fhigh) {
		panic(fmt.Sprintf("root of f is not bracketed by [low, high]; f(%g)=%g f(%g)=%g", low, flow, high, fhigh))
	}
	for {
		mid := (high + low) / 2
		fmid := f(mid)
		if -tolerance <= fmid && fmid <= tolerance {
			return mid, true
		}
		if mid == high || mid == low {
			return mid, false
		}
		if math.Signbit(fmid) == math.Signbit(flow) {
			low, flow = mid, fmid
		} else {
			high = mid
		}
	}
}

// BisectBool implements the bisection method on a boolean function.
// It returns x1, x2 ∈ [low, high], x1 < x2 such that f(x1) != f(x2)
// and x2 - x1 <= xtol.
//
// If f(low) == f(high), it panics.
func BisectBool(f func(float64) bool, low, high, xtol float64) (x1, x2 float64) {
	flow, fhigh := f(low), f(high)
	if flow == fhigh {
		panic(fmt.Sprintf("root of f is not bracketed by [low, high]; f(%g)=%v f(%g)=%v", low, flow, high, fhigh))
	}
	for {
		if high-low <= xtol {
			return low, high
		}
		mid := (high + low) / 2
		if mid == high || mid == low {
			return low, high
		}
		if f(mid) == flow {
			low = mid
		} else {
			high = mid
		}
	}
}

const maxRootIterations = 200

// FindRoot returns a root of f in [low, high] using Brent's method,
// which combines inverse quadratic interpolation and secant steps with
// a bisection fallback. It converges at least as fast as bisection.
//
// f(low) and f(high) must have opposite signs, or FindRoot returns
// ErrNotBracketed. If f is discontinuous, FindRoot converges to the
// point of discontinuity.
//
// Brent, R. P. (1973) Algorithms for Minimization without Derivatives,
// chapter 4.
func FindRoot(f func(float64) float64, low, high, tolerance float64) (float64, error) {
	a, b := low, high
	fa, fb := f(a), f(b)
	if fa == 0 {
		return a, nil
	} else if fb == 0 {
		return b, nil
	}
	if math.IsNaN(fa) || math.IsNaN(fb) || (fa > 0) == (fb > 0) {
		return nan, fmt.Errorf("%w: f(%g)=%g f(%g)=%g", ErrNotBracketed, a, fa, b, fb)
	}

	// c is the previous iterate and the other end of the bracket
	// [b, c]. d is the current step and e the one before it.
	c, fc := b, fb
	var d, e float64
	for i := 0; i < maxRootIterations; i++ {
		if (fb > 0) == (fc > 0) {
			c, fc = a, fa
			d = b - a
			e = d
		}
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}
		tol := 2*epsilon*math.Abs(b) + tolerance/2
		xm := (c - b) / 2
		if math.Abs(xm) <= tol || fb == 0 {
			return b, nil
		}
		if math.Abs(e) >= tol && math.Abs(fa) > math.Abs(fb) {
			// Attempt interpolation.
			s := fb / fa
			var p, q float64
			if a == c {
				// Secant.
				p = 2 * xm * s
				q = 1 - s
			} else {
				// Inverse quadratic.
				q = fa / fc
				r := fb / fc
				p = s * (2*xm*q*(q-r) - (b-a)*(r-1))
				q = (q - 1) * (r - 1) * (s - 1)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			if 2*p < math.Min(3*xm*q-math.Abs(tol*q), math.Abs(e*q)) {
				e, d = d, p/q
			} else {
				d = xm
				e = d
			}
		} else {
			d = xm
			e = d
		}
		a, fa = b, fb
		if math.Abs(d) > tol {
			b += d
		} else if xm > 0 {
			b += tol
		} else {
			b -= tol
		}
		fb = f(b)
	}
	return b, fmt.Errorf("%w after %d iterations", ErrNoConvergence, maxRootIterations)
}

const epsilon = 0x1p-52
