// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mv

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/aclements/go-probdist/internal/memo"
	"github.com/aclements/go-probdist/mathx"
	"github.com/aclements/go-probdist/stats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// A ContinuousModel supplies the unchecked primitives of a continuous
// multivariate distribution. Its Inner methods are only called with
// vectors of length Dimension() that have no NaN components and lie
// inside Support.
type ContinuousModel interface {
	Dimension() int

	// Support returns the range of each component outside of
	// which the density is zero, or nil if the support is all of
	// R^n.
	Support() []mathx.Range

	InnerPDF(x []float64) float64
}

// Optional capabilities of a ContinuousModel.
type (
	LogPDFModel interface {
		InnerLogPDF(x []float64) float64
	}

	// CDFModel computes Pr[X_1 <= x_1, ..., X_n <= x_n].
	CDFModel interface {
		InnerCDF(x []float64) float64
	}

	MeanModel interface {
		Mean() []float64
	}

	CovarianceModel interface {
		Covariance() *mat.SymDense
	}

	RandModel interface {
		Rand(r *rand.Rand) []float64
	}

	FitModel interface {
		Fit(xs [][]float64, weights []float64, opts *stats.FitOptions) error
	}

	CloneModel interface {
		Clone() ContinuousModel
	}
)

// Continuous is a continuous multivariate distribution.
//
// Like stats.Continuous, Fit must not run concurrently with any other
// method.
type Continuous struct {
	model ContinuousModel

	mean       memo.Cell[[]float64]
	covariance memo.Cell[*mat.SymDense]
	variance   memo.Cell[[]float64]
	sampler    Sampler
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

// Dimension returns the length of d's vectors.
func (d *Continuous) Dimension() int {
	return d.model.Dimension()
}

// Support returns the range of each component, or nil if d's support
// is all of R^n.
func (d *Continuous) Support() []mathx.Range {
	return d.model.Support()
}

func (d *Continuous) inSupport(x []float64) bool {
	for i, r := range d.model.Support() {
		if !r.Contains(x[i]) {
			return false
		}
	}
	return true
}

// PDF returns the probability density of d at x. It panics with
// stats.ErrArgument if x has the wrong dimension and stats.ErrDomain
// if any component of x is NaN.
func (d *Continuous) PDF(x []float64) float64 {
	checkVector("PDF", x, d.model.Dimension())
	if !d.inSupport(x) {
		return 0
	}
	y := d.model.InnerPDF(x)
	if math.IsNaN(y) || y < 0 {
		panic(internalError("PDF", x, y))
	}
	return y
}

// LogPDF returns the log of the density of d at x, or -Inf outside
// d's support.
func (d *Continuous) LogPDF(x []float64) float64 {
	checkVector("LogPDF", x, d.model.Dimension())
	if !d.inSupport(x) {
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

// CDF returns Pr[X_i <= x_i for all i]. It panics with
// stats.ErrUnsupported if d's model has no CDF.
func (d *Continuous) CDF(x []float64) float64 {
	checkVector("CDF", x, d.model.Dimension())
	m, ok := d.model.(CDFModel)
	if !ok {
		panic(fmt.Errorf("mv: CDF of %v: %w", d, stats.ErrUnsupported))
	}
	s := d.model.Support()
	if s != nil {
		// Clamp to the support, which does not change the
		// result, so the model only sees points inside it.
		clamped := make([]float64, len(x))
		for i, r := range s {
			if x[i] < r.Min {
				return 0
			}
			clamped[i] = math.Min(x[i], r.Max)
		}
		x = clamped
	}
	y := m.InnerCDF(x)
	if math.IsNaN(y) || y < -1e-12 || y > 1+1e-12 {
		panic(internalError("CDF", x, y))
	}
	return math.Max(0, math.Min(1, y))
}

// monteCarloN is the number of samples used to estimate moments of
// models without closed forms.
const monteCarloN = 1 << 14

// estimate draws a sample from d for moment estimates.
func (d *Continuous) estimate() *mat.Dense {
	r := rand.New(rand.NewSource(1))
	n := d.model.Dimension()
	x := mat.NewDense(monteCarloN, n, nil)
	for i := 0; i < monteCarloN; i++ {
		x.SetRow(i, d.Rand(r))
	}
	return x
}

// Mean returns the mean vector of d. The result must not be modified.
func (d *Continuous) Mean() []float64 {
	return d.mean.Get(func() []float64 {
		if m, ok := d.model.(MeanModel); ok {
			return m.Mean()
		}
		return d.estimateMean()
	})
}

func (d *Continuous) estimateMean() []float64 {
	x := d.estimate()
	mean := make([]float64, d.model.Dimension())
	for j := range mean {
		mean[j] = stat.Mean(mat.Col(nil, j, x), nil)
	}
	return mean
}

// Covariance returns the covariance matrix of d. The result must not
// be modified.
func (d *Continuous) Covariance() *mat.SymDense {
	return d.covariance.Get(func() *mat.SymDense {
		if m, ok := d.model.(CovarianceModel); ok {
			return m.Covariance()
		}
		return d.estimateCovariance()
	})
}

func (d *Continuous) estimateCovariance() *mat.SymDense {
	cov := mat.NewSymDense(d.model.Dimension(), nil)
	stat.CovarianceMatrix(cov, d.estimate(), nil)
	return cov
}

// Variance returns the variance of each component of d, the diagonal
// of its covariance matrix.
func (d *Continuous) Variance() []float64 {
	return d.variance.Get(func() []float64 {
		return diag(d.Covariance())
	})
}

func diag(cov mat.Symmetric) []float64 {
	v := make([]float64, cov.SymmetricDim())
	for i := range v {
		v[i] = cov.At(i, i)
	}
	return v
}

// Fit re-estimates d's parameters from vector observations xs with
// optional weights, and discards memoized statistics and any cached
// sampler.
func (d *Continuous) Fit(xs [][]float64, weights []float64, opts *stats.FitOptions) error {
	m, ok := d.model.(FitModel)
	if !ok {
		return fmt.Errorf("mv: fitting %v: %w", d, stats.ErrUnsupported)
	}
	if err := checkObservations(xs, weights, d.model.Dimension()); err != nil {
		return err
	}
	defer d.reset()
	return m.Fit(xs, weights, opts)
}

// FitObservations fits d to Vectors, or to Matrices flattened in
// row-major order.
func (d *Continuous) FitObservations(obs stats.Observations, weights []float64, opts *stats.FitOptions) error {
	switch obs := obs.(type) {
	case stats.Vectors:
		return d.Fit(obs, weights, opts)
	case stats.Matrices:
		return d.Fit(obs.Flatten(), weights, opts)
	}
	return stats.UnsupportedObservations(obs)
}

func (d *Continuous) reset() {
	d.mean.Reset()
	d.covariance.Reset()
	d.variance.Reset()
	d.sampler = nil
}

// Rand returns a random vector drawn from d. If the model has no
// specialized sampler, Rand draws from a Sampler created by NewSampler
// on first use and kept until d is refit.
func (d *Continuous) Rand(r *rand.Rand) []float64 {
	if m, ok := d.model.(RandModel); ok {
		return m.Rand(r)
	}
	var guess []float64
	if m, ok := d.model.(MeanModel); ok && d.sampler == nil {
		guess = m.Mean()
	}
	return d.sample(r, guess)
}

// sample draws from d's cached Sampler, creating it on first use with
// a chain starting near guess, which may be nil.
func (d *Continuous) sample(r *rand.Rand, guess []float64) []float64 {
	if d.sampler == nil {
		n := d.model.Dimension()
		d.sampler = NewSampler(n, startingPoint(n, d.model.Support(), guess), d.LogPDF)
	}
	return d.sampler.Sample(r)
}

// Generate returns n random vectors drawn from d.
func (d *Continuous) Generate(n int, r *rand.Rand) [][]float64 {
	xs := make([][]float64, n)
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
