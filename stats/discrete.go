// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/aclements/go-probdist/internal/memo"
	"github.com/aclements/go-probdist/mathx"
)

// A DiscreteModel supplies the unchecked primitives of an
// integer-valued distribution. Discrete performs validation and
// boundary handling, so the Inner methods are only called with
// arguments inside Support.
type DiscreteModel interface {
	// Support returns the integers outside of which the mass is
	// zero. Unbounded ends are math.MinInt and math.MaxInt.
	Support() mathx.IntRange

	// InnerPMF returns Pr[X = k].
	InnerPMF(k int) float64

	// InnerCDF returns Pr[X <= k].
	InnerCDF(k int) float64
}

// Optional capabilities of a DiscreteModel. Discrete models may also
// implement MeanModel and VarianceModel.
type (
	DiscreteLogPMFModel interface {
		InnerLogPMF(k int) float64
	}

	// DiscreteComplementModel computes Pr[X > k] directly.
	DiscreteComplementModel interface {
		InnerComplement(k int) float64
	}

	// DiscreteInvCDFModel returns the smallest k such that
	// Pr[X <= k] >= p, for 0 < p < 1.
	DiscreteInvCDFModel interface {
		InnerInvCDF(p float64) int
	}

	DiscreteModeModel interface {
		Mode() int
	}

	DiscreteRandModel interface {
		Rand(r *rand.Rand) int
	}

	DiscreteFitModel interface {
		Fit(ks []int, weights []float64, opts *FitOptions) error
	}

	DiscreteCloneModel interface {
		Clone() DiscreteModel
	}
)

// Discrete is an integer-valued univariate distribution. It is the
// discrete counterpart of Continuous and follows the same validation
// and caching rules.
type Discrete struct {
	model DiscreteModel

	mean, variance, stdDev memo.Cell[float64]
	median, mode           memo.Cell[int]
	quartiles              memo.Cell[mathx.IntRange]
}

// NewDiscrete returns the distribution implemented by m.
func NewDiscrete(m DiscreteModel) *Discrete {
	return &Discrete{model: m}
}

func (d *Discrete) String() string {
	if s, ok := d.model.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("Discrete(%T)", d.model)
}

// Model returns the model underlying d.
func (d *Discrete) Model() DiscreteModel {
	return d.model
}

// Support returns the integers over which d's mass may be non-zero.
func (d *Discrete) Support() mathx.IntRange {
	return d.model.Support()
}

// PMF returns Pr[X = k]. It returns 0 outside d's support.
func (d *Discrete) PMF(k int) float64 {
	if !d.model.Support().Contains(k) {
		return 0
	}
	return checkProb("PMF", float64(k), d.model.InnerPMF(k))
}

// LogPMF returns log(Pr[X = k]). It returns -Inf outside d's support.
func (d *Discrete) LogPMF(k int) float64 {
	if !d.model.Support().Contains(k) {
		return math.Inf(-1)
	}
	var y float64
	if m, ok := d.model.(DiscreteLogPMFModel); ok {
		y = m.InnerLogPMF(k)
	} else {
		y = math.Log(d.model.InnerPMF(k))
	}
	if math.IsNaN(y) || y > probTolerance {
		panic(internalError("LogPMF", k, y))
	}
	return y
}

// CDF returns Pr[X <= k]. It returns 0 below d's support and 1 at or
// above the upper end of d's support.
func (d *Discrete) CDF(k int) float64 {
	s := d.model.Support()
	if k < s.Min {
		return 0
	} else if k >= s.Max {
		return 1
	}
	return checkProb("CDF", float64(k), d.model.InnerCDF(k))
}

// Complement returns Pr[X > k].
func (d *Discrete) Complement(k int) float64 {
	s := d.model.Support()
	if k < s.Min {
		return 1
	} else if k >= s.Max {
		return 0
	}
	if m, ok := d.model.(DiscreteComplementModel); ok {
		return checkProb("Complement", float64(k), m.InnerComplement(k))
	}
	return 1 - checkProb("CDF", float64(k), d.model.InnerCDF(k))
}

// PMFAt returns PMF(⌊x⌋). It panics with ErrDomain if x is NaN.
func (d *Discrete) PMFAt(x float64) float64 {
	if math.IsNaN(x) {
		panic(domainError("PMF", x))
	}
	return d.PMF(floorInt(x))
}

// CDFAt returns CDF(⌊x⌋). It panics with ErrDomain if x is NaN.
func (d *Discrete) CDFAt(x float64) float64 {
	if math.IsNaN(x) {
		panic(domainError("CDF", x))
	}
	return d.CDF(floorInt(x))
}

// floorInt rounds x down to an int, saturating at the limits of int.
//
// Note that int(x) truncates toward zero, which is wrong for negative
// x.
func floorInt(x float64) int {
	f := math.Floor(x)
	if f >= math.MaxInt {
		return math.MaxInt
	} else if f <= math.MinInt {
		return math.MinInt
	}
	return int(f)
}

// Hazard returns PMF(k) / Complement(k).
func (d *Discrete) Hazard(k int) float64 {
	return d.PMF(k) / d.Complement(k)
}

// CumulativeHazard returns -log(Complement(k)).
func (d *Discrete) CumulativeHazard(k int) float64 {
	return -math.Log(d.Complement(k))
}

// InvCDF returns the smallest k such that CDF(k) >= p. p must be in
// [0, 1] or InvCDF panics with ErrRange. InvCDF(0) and InvCDF(1) are
// the bounds of d's support.
func (d *Discrete) InvCDF(p float64) int {
	if math.IsNaN(p) || p < 0 || p > 1 {
		panic(rangeError("InvCDF", p))
	}
	s := d.model.Support()
	if p == 0 {
		return s.Min
	} else if p == 1 {
		return s.Max
	}
	if m, ok := d.model.(DiscreteInvCDFModel); ok {
		return m.InnerInvCDF(p)
	}

	// Find lo, hi such that CDF(lo) < p <= CDF(hi).
	below := func(k int) bool { return d.CDF(k) < p }
	var lo, hi int
	switch {
	case s.Min != math.MinInt:
		lo, hi = expandIntUp(below, s.Min-1)
	case s.Max != math.MaxInt:
		lo, hi = expandIntDown(below, s.Max)
	case below(0):
		lo, hi = expandIntUp(below, 0)
	default:
		lo, hi = expandIntDown(below, 0)
	}
	for uint(hi)-uint(lo) > 1 {
		mid := lo + int((uint(hi)-uint(lo))/2)
		if below(mid) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return hi
}

// expandIntUp returns lo < hi with below(lo) && !below(hi), given
// below(k0), by doubling the step away from k0.
func expandIntUp(below func(int) bool, k0 int) (lo, hi int) {
	lo = k0
	for delta := 1; ; delta *= 2 {
		if delta > math.MaxInt/2 || k0 >= math.MaxInt-delta {
			return lo, math.MaxInt
		}
		hi = k0 + delta
		if !below(hi) {
			return lo, hi
		}
		lo = hi
	}
}

// expandIntDown is the mirror image of expandIntUp, given !below(k0).
func expandIntDown(below func(int) bool, k0 int) (lo, hi int) {
	hi = k0
	for delta := 1; ; delta *= 2 {
		if delta > math.MaxInt/2 || k0 <= math.MinInt+delta {
			return math.MinInt, hi
		}
		lo = k0 - delta
		if below(lo) {
			return lo, hi
		}
		hi = lo
	}
}

// Mean returns the expected value of d.
func (d *Discrete) Mean() float64 {
	return d.mean.Get(func() float64 {
		if m, ok := d.model.(MeanModel); ok {
			return m.Mean()
		}
		return d.expect(func(k float64) float64 { return k })
	})
}

// Variance returns the variance of d.
func (d *Discrete) Variance() float64 {
	return d.variance.Get(func() float64 {
		if m, ok := d.model.(VarianceModel); ok {
			return m.Variance()
		}
		mu := d.Mean()
		return d.expect(func(k float64) float64 { return (k - mu) * (k - mu) })
	})
}

// StdDev returns the standard deviation of d.
func (d *Discrete) StdDev() float64 {
	return d.stdDev.Get(func() float64 {
		return math.Sqrt(d.Variance())
	})
}

// tailMass is the probability mass ignored in each tail when summing
// over an unbounded support.
const tailMass = 1e-12

// effectiveSupport returns the support of d, trimmed to the central
// 1-2*tailMass of the mass if it is unbounded.
func (d *Discrete) effectiveSupport() mathx.IntRange {
	s := d.model.Support()
	if s.Min == math.MinInt {
		s.Min = d.InvCDF(tailMass)
	}
	if s.Max == math.MaxInt {
		s.Max = d.InvCDF(1 - tailMass)
	}
	return s
}

// expect returns E[f(X)] by summing over d's effective support.
func (d *Discrete) expect(f func(float64) float64) float64 {
	s := d.effectiveSupport()
	sum := 0.0
	for k := s.Min; k <= s.Max; k++ {
		if p := d.PMF(k); p > 0 {
			sum += p * f(float64(k))
		}
		if k == math.MaxInt {
			break
		}
	}
	return sum
}

// Median returns InvCDF(0.5).
func (d *Discrete) Median() int {
	return d.median.Get(func() int {
		return d.InvCDF(0.5)
	})
}

// Quartiles returns the first and third quartiles.
func (d *Discrete) Quartiles() mathx.IntRange {
	return d.quartiles.Get(func() mathx.IntRange {
		return mathx.IntRange{Min: d.InvCDF(0.25), Max: d.InvCDF(0.75)}
	})
}

// Mode returns the most probable value. Without a closed form, this
// searches between the quartiles and returns the smallest maximum.
func (d *Discrete) Mode() int {
	return d.mode.Get(func() int {
		if m, ok := d.model.(DiscreteModeModel); ok {
			return m.Mode()
		}
		q := d.Quartiles()
		best, bestP := q.Min, d.PMF(q.Min)
		for k := q.Min + 1; k <= q.Max; k++ {
			if p := d.PMF(k); p > bestP {
				best, bestP = k, p
			}
		}
		return best
	})
}

// Fit re-estimates d's parameters from observations ks with optional
// weights. It fails with ErrUnsupported if d's model cannot be fit.
func (d *Discrete) Fit(ks []int, weights []float64, opts *FitOptions) error {
	m, ok := d.model.(DiscreteFitModel)
	if !ok {
		return fmt.Errorf("stats: fitting %v: %w", d, ErrUnsupported)
	}
	if err := CheckWeights(len(ks), weights); err != nil {
		return err
	}
	defer d.reset()
	return m.Fit(ks, weights, opts)
}

// FitObservations fits d to Ints, or to Scalars rounded down to
// integers. Other shapes fail with ErrArgument.
func (d *Discrete) FitObservations(obs Observations, weights []float64, opts *FitOptions) error {
	switch obs := obs.(type) {
	case Ints:
		return d.Fit(obs, weights, opts)
	case Scalars:
		for _, x := range obs {
			if math.IsNaN(x) {
				return domainError("Fit", x)
			}
		}
		return d.Fit(obs.Floor(), weights, opts)
	}
	return UnsupportedObservations(obs)
}

func (d *Discrete) reset() {
	d.mean.Reset()
	d.variance.Reset()
	d.stdDev.Reset()
	d.median.Reset()
	d.mode.Reset()
	d.quartiles.Reset()
}

// Rand returns a random sample drawn from d, by inverse transform
// sampling unless the model has a specialized sampler.
func (d *Discrete) Rand(r *rand.Rand) int {
	if m, ok := d.model.(DiscreteRandModel); ok {
		return m.Rand(r)
	}
	var y float64
	for y == 0 {
		if r == nil {
			y = rand.Float64()
		} else {
			y = r.Float64()
		}
	}
	return d.InvCDF(y)
}

// Generate returns n independent samples drawn from d.
func (d *Discrete) Generate(n int, r *rand.Rand) []int {
	ks := make([]int, n)
	for i := range ks {
		ks[i] = d.Rand(r)
	}
	return ks
}

// Clone returns a copy of d that can be fit independently of d.
func (d *Discrete) Clone() *Discrete {
	if m, ok := d.model.(DiscreteCloneModel); ok {
		return NewDiscrete(m.Clone())
	}
	return NewDiscrete(d.model)
}
