// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"
)

// QuantileCIResult is the confidence interval for a quantile.
type QuantileCIResult struct {
	// Quantile is the quantile of this confidence interval, as
	// passed to QuantileCI.
	Quantile float64

	// N is the sample size.
	N int

	// Confidence is the actual confidence level of this interval.
	// This will be >= the requested confidence.
	Confidence float64

	// LoOrder and HiOrder are the 1-based order statistics that
	// bound the confidence interval: given sorted samples Xs, the
	// CI is Xs[LoOrder-1] to Xs[HiOrder-1].
	//
	// LoOrder may be 0 and HiOrder may be N+1, which means that
	// bound is -inf or +inf. This happens when the sample is too
	// small for the confidence level or the quantile is close to
	// 0 or 1.
	LoOrder, HiOrder int

	// Ambiguous indicates that the interval LoOrder+1 to
	// HiOrder+1 has equal confidence.
	Ambiguous bool
}

// FromSample returns the confidence interval of q in terms of values
// from s, which must be the unweighted sample of size q.N. A bound
// outside the sample is -inf or +inf.
func (q QuantileCIResult) FromSample(s Sample) (lo, hi float64) {
	if s.Weights != nil {
		panic(fmt.Errorf("stats: quantile CI of a weighted sample: %w", ErrArgument))
	}
	if len(s.Xs) != q.N {
		panic(fmt.Errorf("stats: quantile CI for %d samples applied to %d: %w", q.N, len(s.Xs), ErrArgument))
	}
	if !s.Sorted {
		s = *s.Copy().Sort()
	}

	lo, hi = math.Inf(-1), math.Inf(1)
	if q.LoOrder >= 1 {
		lo = s.Xs[q.LoOrder-1]
	}
	if q.HiOrder <= len(s.Xs) {
		hi = s.Xs[q.HiOrder-1]
	}
	return
}

// QuantileCI returns the confidence interval of the q'th quantile of
// s at the given confidence level. See the QuantileCI function.
func (s Sample) QuantileCI(q, confidence float64) (lo, hi float64) {
	return QuantileCI(len(s.Xs), q, confidence).FromSample(s)
}

// quantileCIApproxThreshold is the sample size above which QuantileCI
// uses a normal approximation. This is a variable for testing.
//
// The two methods cost about the same at n=5, but the approximation
// is poor for small n.
var quantileCIApproxThreshold = 30

// QuantileCI returns the bounds of the confidence interval of the
// q'th quantile in a sample of size n. It panics with ErrRange if q or
// confidence is outside [0, 1].
//
// The number of samples that fall below the population quantile is
// binomially distributed, so the interval is the narrowest band of
// that binomial distribution holding at least the requested
// confidence. When there is a choice, the band is biased left.
func QuantileCI(n int, q, confidence float64) QuantileCIResult {
	if n < 0 {
		panic(fmt.Errorf("stats: quantile CI of %d samples: %w", n, ErrArgument))
	}
	if !(0 <= q && q <= 1) {
		panic(rangeError("QuantileCI", q))
	}
	if !(0 <= confidence && confidence <= 1) {
		panic(rangeError("QuantileCI", confidence))
	}

	res := QuantileCIResult{Quantile: q, N: n}
	switch {
	case confidence == 1:
		res.Confidence, res.LoOrder, res.HiOrder = 1, 0, n+1
		return res
	case q == 0:
		res.Confidence, res.LoOrder, res.HiOrder = 1, 0, 1
		return res
	case q == 1:
		res.Confidence, res.LoOrder, res.HiOrder = 1, n, n+1
		return res
	}

	// k in this distribution indexes the gaps between sorted
	// samples, where gap 0 is (-inf, Xs[0]). PMF(k) is the
	// probability that the population quantile lies in gap k.
	samp := NewBinomial(n, q)

	// [l, r) is the band of gaps in the interval.
	var l, r int
	if n <= quantileCIApproxThreshold {
		// Grow outward from the mode, always taking the more
		// probable neighbor, since the PMF decreases
		// monotonically away from the mode. With two modes,
		// start from the lower one.
		x := int(math.Ceil(float64(n+1)*q) - 1)
		accum := samp.PMF(x)
		l, r = x, x+1
		lp, rp := samp.PMF(l-1), samp.PMF(r)
		res.Ambiguous = rp == accum

		// Stop when nothing is left to add, in case round-off
		// keeps accum below confidence.
		for accum < confidence && (lp > 0 || rp > 0) {
			res.Ambiguous = lp == rp
			if lp >= rp {
				accum += lp
				l--
				lp = samp.PMF(l - 1)
			} else {
				accum += rp
				r++
				rp = samp.PMF(r)
			}
		}
		res.Confidence = accum
	} else {
		norm := BinomialNormalApprox(n, q)
		alpha := (1 - confidence) / 2

		// The central confidence band of the normal
		// distribution, symmetric around its mean.
		l1 := norm.InvCDF(alpha)
		r1 := 2*norm.Mean() - l1

		// With the continuity correction, gap k covers
		// [k-0.5, k+0.5] of the normal distribution, so round
		// [l1, r1] out to half-integers and recover the gaps.
		l = floorInt(math.Floor(l1-0.5)+0.5) + 1
		r = floorInt(math.Ceil(r1-0.5)+0.5) + 1

		// Pr[l <= X < r] with the continuity correction.
		cdf := func(l, r int) float64 {
			return norm.CDF(float64(r)-0.5) - norm.CDF(float64(l)-0.5)
		}
		res.Confidence = cdf(l, r)
		// Try a narrower, left-biased band.
		if aBiased := cdf(l, r-1); aBiased >= confidence && aBiased < res.Confidence {
			res.Confidence, res.Ambiguous = aBiased, true
			r--
		}
		if l <= 0 && r >= n+1 {
			// The band covers every gap, but the normal
			// tails keep CDF from reaching exactly 1.
			res.Confidence, res.Ambiguous = 1, false
		}
	}

	res.LoOrder, res.HiOrder = max(l, 0), min(r, n+1)
	return res
}
