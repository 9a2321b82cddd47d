// Copyright 2015 The Go Authors. All rights reserved.
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

// A ContinuousModel supplies the unchecked primitives of a continuous
// univariate distribution. Continuous performs all input validation
// and boundary handling, so the Inner methods are only called with
// non-NaN arguments inside Support.
type ContinuousModel interface {
	// Support returns the interval outside of which the density is
	// zero.
	Support() mathx.Range

	// InnerPDF returns the probability density at x.
	InnerPDF(x float64) float64

	// InnerCDF returns Pr[X <= x].
	InnerCDF(x float64) float64
}

// The following interfaces are optional capabilities of a
// ContinuousModel. Continuous uses them when present and falls back to
// generic numerical methods otherwise.
type (
	// LogPDFModel computes the log density directly, typically
	// for numerical stability.
	LogPDFModel interface {
		InnerLogPDF(x float64) float64
	}

	// ComplementModel computes Pr[X > x] directly.
	ComplementModel interface {
		InnerComplement(x float64) float64
	}

	// InvCDFModel has a closed-form quantile function. It is
	// called with 0 < p < 1.
	InvCDFModel interface {
		InnerInvCDF(p float64) float64
	}

	// MeanModel has a closed-form mean.
	MeanModel interface {
		Mean() float64
	}

	// VarianceModel has a closed-form variance.
	VarianceModel interface {
		Variance() float64
	}

	// ModeModel has a closed-form mode.
	ModeModel interface {
		Mode() float64
	}

	// RandModel has a specialized sampler. r may be nil, in which
	// case it should use the global source.
	RandModel interface {
		Rand(r *rand.Rand) float64
	}

	// FitModel can re-estimate its parameters from weighted
	// observations. weights is nil or has the same length as xs.
	FitModel interface {
		Fit(xs, weights []float64, opts *FitOptions) error
	}

	// CloneModel returns an independent copy of a mutable model.
	CloneModel interface {
		Clone() ContinuousModel
	}
)

// probTolerance is how far outside [0, 1] a model may stray due to
// round-off before its result is considered invalid.
const probTolerance = 1e-12

// Continuous is a continuous univariate distribution. It implements
// the validated contract over a ContinuousModel and memoizes derived
// statistics until the distribution is refit.
//
// A Continuous is safe for concurrent reads only once its derived
// statistics have been computed; Fit must not run concurrently with
// any other method.
type Continuous struct {
	model ContinuousModel

	mean, variance, stdDev memo.Cell[float64]
	median, mode           memo.Cell[float64]
	quartiles              memo.Cell[mathx.Range]
}

// NewContinuous returns the distribution implemented by m.
func NewContinuous(m ContinuousModel) *Continuous {
	return &Continuous{model: m}
}

func (d *Continuous) String() string {
	if s, ok := d.model.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("Continuous(%T)", d.model)
}

// Model returns the model underlying d.
func (d *Continuous) Model() ContinuousModel {
	return d.model
}

// Support returns the range over which d's density may be non-zero.
func (d *Continuous) Support() mathx.Range {
	return d.model.Support()
}

// PDF returns the probability density of d at x. It returns 0 outside
// d's support and panics with ErrDomain if x is NaN.
func (d *Continuous) PDF(x float64) float64 {
	if math.IsNaN(x) {
		panic(domainError("PDF", x))
	}
	if !d.model.Support().Contains(x) {
		return 0
	}
	y := d.model.InnerPDF(x)
	if math.IsNaN(y) || y < 0 {
		panic(internalError("PDF", x, y))
	}
	return y
}

// LogPDF returns the natural logarithm of d's density at x. It returns
// -Inf outside d's support.
func (d *Continuous) LogPDF(x float64) float64 {
	if math.IsNaN(x) {
		panic(domainError("LogPDF", x))
	}
	if !d.model.Support().Contains(x) {
		return math.Inf(-1)
	}
	var y float64
	if m, ok := d.model.(LogPDFModel); ok {
		y = m.InnerLogPDF(x)
	} else {
		y = math.Log(d.model.InnerPDF(x))
	}
	if math.IsNaN(y) {
		panic(internalError("LogPDF", x, y))
	}
	return y
}

// CDF returns Pr[X <= x]. It returns 0 for x below d's support and 1
// for x at or above the upper end of d's support.
func (d *Continuous) CDF(x float64) float64 {
	if math.IsNaN(x) {
		panic(domainError("CDF", x))
	}
	s := d.model.Support()
	if x < s.Min {
		return 0
	} else if x >= s.Max {
		return 1
	}
	return checkProb("CDF", x, d.model.InnerCDF(x))
}

// Complement returns Pr[X > x], the complementary cumulative
// distribution (or survival) function.
func (d *Continuous) Complement(x float64) float64 {
	if math.IsNaN(x) {
		panic(domainError("Complement", x))
	}
	s := d.model.Support()
	if x < s.Min {
		return 1
	} else if x >= s.Max {
		return 0
	}
	if m, ok := d.model.(ComplementModel); ok {
		return checkProb("Complement", x, m.InnerComplement(x))
	}
	return 1 - checkProb("CDF", x, d.model.InnerCDF(x))
}

// checkProb validates a probability returned by a model, absorbing
// round-off just outside [0, 1].
func checkProb(op string, x, p float64) float64 {
	if math.IsNaN(p) || p < -probTolerance || p > 1+probTolerance {
		panic(internalError(op, x, p))
	}
	return math.Max(0, math.Min(1, p))
}

// Hazard returns the hazard function PDF(x) / Complement(x).
func (d *Continuous) Hazard(x float64) float64 {
	return d.PDF(x) / d.Complement(x)
}

// CumulativeHazard returns -log(Complement(x)).
func (d *Continuous) CumulativeHazard(x float64) float64 {
	return -math.Log(d.Complement(x))
}

// InvCDF returns the quantile function of d at p: the x at which
// CDF(x) == p. p must be in [0, 1] or InvCDF panics with ErrRange.
//
// InvCDF(0) and InvCDF(1) are the bounds of d's support. If the model
// has no closed-form quantile function, InvCDF brackets the quantile
// and refines it numerically.
func (d *Continuous) InvCDF(p float64) float64 {
	if math.IsNaN(p) || p < 0 || p > 1 {
		panic(rangeError("InvCDF", p))
	}
	s := d.model.Support()
	if p == 0 {
		return s.Min
	} else if p == 1 {
		return s.Max
	}
	if m, ok := d.model.(InvCDFModel); ok {
		x := m.InnerInvCDF(p)
		if math.IsNaN(x) {
			panic(internalError("InvCDF", p, x))
		}
		return x
	}
	return d.searchInvCDF(p)
}

// Mean returns the expected value of d.
func (d *Continuous) Mean() float64 {
	return d.mean.Get(func() float64 {
		if m, ok := d.model.(MeanModel); ok {
			return m.Mean()
		}
		return d.expect(func(x float64) float64 { return x })
	})
}

// Variance returns the variance of d.
func (d *Continuous) Variance() float64 {
	return d.variance.Get(func() float64 {
		if m, ok := d.model.(VarianceModel); ok {
			return m.Variance()
		}
		mu := d.Mean()
		return d.expect(func(x float64) float64 { return (x - mu) * (x - mu) })
	})
}

// StdDev returns the standard deviation of d.
func (d *Continuous) StdDev() float64 {
	return d.stdDev.Get(func() float64 {
		return math.Sqrt(d.Variance())
	})
}

// Median returns InvCDF(0.5).
func (d *Continuous) Median() float64 {
	return d.median.Get(func() float64 {
		return d.InvCDF(0.5)
	})
}

// Quartiles returns the range between the first and third quartiles.
func (d *Continuous) Quartiles() mathx.Range {
	return d.quartiles.Get(func() mathx.Range {
		return mathx.Range{Min: d.InvCDF(0.25), Max: d.InvCDF(0.75)}
	})
}

// Mode returns the point of maximum density. Without a closed form,
// this searches between the quartiles, so for multimodal
// distributions it may return a local maximum.
func (d *Continuous) Mode() float64 {
	return d.mode.Get(func() float64 {
		if m, ok := d.model.(ModeModel); ok {
			return m.Mode()
		}
		q := d.Quartiles()
		return mathx.Maximize(d.PDF, q.Min, q.Max, 1e-9*(1+q.Length()))
	})
}

// expectN is the number of quantile midpoints used to approximate
// expectations without a closed form.
const expectN = 1024

// expect approximates E[f(X)] as the average of f over evenly spaced
// quantiles, which is the midpoint rule applied to ∫₀¹ f(InvCDF(p)) dp.
func (d *Continuous) expect(f func(float64) float64) float64 {
	sum := 0.0
	for i := 0; i < expectN; i++ {
		sum += f(d.InvCDF((float64(i) + 0.5) / expectN))
	}
	return sum / expectN
}

// Fit re-estimates d's parameters from observations xs with optional
// weights. It fails with ErrUnsupported if d's model cannot be fit.
// Fit discards all memoized statistics.
func (d *Continuous) Fit(xs, weights []float64, opts *FitOptions) error {
	m, ok := d.model.(FitModel)
	if !ok {
		return fmt.Errorf("stats: fitting %v: %w", d, ErrUnsupported)
	}
	if err := CheckWeights(len(xs), weights); err != nil {
		return err
	}
	for _, x := range xs {
		if math.IsNaN(x) {
			return domainError("Fit", x)
		}
	}
	defer d.reset()
	return m.Fit(xs, weights, opts)
}

// FitObservations fits d to Scalars, or to Vectors that each have a
// single element. Other shapes fail with ErrArgument.
func (d *Continuous) FitObservations(obs Observations, weights []float64, opts *FitOptions) error {
	switch obs := obs.(type) {
	case Scalars:
		return d.Fit(obs, weights, opts)
	case Vectors:
		if xs, ok := obs.Column(); ok {
			return d.Fit(xs, weights, opts)
		}
	}
	return UnsupportedObservations(obs)
}

func (d *Continuous) reset() {
	d.mean.Reset()
	d.variance.Reset()
	d.stdDev.Reset()
	d.median.Reset()
	d.mode.Reset()
	d.quartiles.Reset()
}

// Rand returns a random sample drawn from d. If r is nil, it uses the
// global source.
//
// If the model has no specialized sampler, Rand uses inverse
// transform sampling.
func (d *Continuous) Rand(r *rand.Rand) float64 {
	if m, ok := d.model.(RandModel); ok {
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
func (d *Continuous) Generate(n int, r *rand.Rand) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = d.Rand(r)
	}
	return xs
}

// Clone returns a copy of d that can be fit independently of d.
func (d *Continuous) Clone() *Continuous {
	if m, ok := d.model.(CloneModel); ok {
		return NewContinuous(m.Clone())
	}
	return NewContinuous(d.model)
}
