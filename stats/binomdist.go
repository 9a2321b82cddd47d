// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"

	"github.com/aclements/go-probdist/mathx"
	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/combin"
)

// binomialModel is a binomial distribution.
type binomialModel struct {
	// n is the number of independent Bernoulli trials. n >= 0.
	//
	// If n=1, this is equivalent to the Bernoulli distribution.
	n int

	// p is the probability of success in each trial. 0 <= p <= 1.
	p float64
}

// NewBinomial returns the distribution of the number of successes in
// n independent Bernoulli trials that each succeed with probability p.
func NewBinomial(n int, p float64) *Discrete {
	if n < 0 || !(0 <= p && p <= 1) {
		panic(fmt.Errorf("stats: binomial with n=%d p=%v: %w", n, p, ErrArgument))
	}
	return NewDiscrete(&binomialModel{n, p})
}

func (d *binomialModel) String() string {
	return fmt.Sprintf("Binomial(n=%d, p=%g)", d.n, d.p)
}

func (d *binomialModel) Support() mathx.IntRange {
	return mathx.IntRange{Min: 0, Max: d.n}
}

// maxExactBinomial is the largest n for which combin.Binomial(n, k)
// computes every coefficient without overflowing a 64-bit int.
const maxExactBinomial = 61

// InnerPMF is the probability of getting exactly k successes in d.n
// independent Bernoulli trials with probability d.p.
func (d *binomialModel) InnerPMF(k int) float64 {
	var choose float64
	if d.n <= maxExactBinomial {
		choose = float64(combin.Binomial(d.n, k))
	} else {
		choose = math.Exp(combin.LogGeneralizedBinomial(float64(d.n), float64(k)))
	}
	return choose * math.Pow(d.p, float64(k)) * math.Pow(1-d.p, float64(d.n-k))
}

// InnerCDF is the probability of getting k or fewer successes in d.n
// independent Bernoulli trials with probability d.p.
func (d *binomialModel) InnerCDF(k int) float64 {
	if k >= d.n {
		return 1
	}
	return mathext.RegIncBeta(float64(d.n-k), float64(k+1), 1-d.p)
}

func (d *binomialModel) Mean() float64 {
	return float64(d.n) * d.p
}

func (d *binomialModel) Variance() float64 {
	return float64(d.n) * d.p * (1 - d.p)
}

// Fit estimates p as the weighted mean success fraction, holding the
// number of trials fixed.
func (d *binomialModel) Fit(ks []int, weights []float64, opts *FitOptions) error {
	if d.n == 0 {
		return fmt.Errorf("stats: fitting binomial with no trials: %w", ErrArgument)
	}
	sum, weight := 0.0, 0.0
	for i, k := range ks {
		if k < 0 || k > d.n {
			return fmt.Errorf("stats: fitting %v to %d successes: %w", d, k, ErrDomain)
		}
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		sum += w * float64(k)
		weight += w
	}
	if weight == 0 {
		return fmt.Errorf("stats: fitting binomial with zero total weight: %w", ErrArgument)
	}
	d.p = sum / weight / float64(d.n)
	return nil
}

func (d *binomialModel) Clone() DiscreteModel {
	c := *d
	return &c
}

// BinomialNormalApprox returns a normal distribution approximation of
// the binomial distribution with parameters n and p.
//
// Because the binomial distribution is discrete and the normal
// distribution is continuous, the caller must apply a continuity
// correction when using this approximation. Specifically, if b is the
// binomial distribution and n is the normal approximation, operations
// map as follows:
//
//	b.PMF(k) => n.CDF(k+0.5) - n.CDF(k-0.5)
//	b.CDF(k) => n.CDF(k+0.5)
func BinomialNormalApprox(n int, p float64) *Continuous {
	b := binomialModel{n, p}
	return NewNormal(b.Mean(), math.Sqrt(b.Variance()))
}
