// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mv

import (
	"math"
	"math/rand"
	"testing"

	"github.com/aclements/go-probdist/mathx"
	"github.com/aclements/go-probdist/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// densityOnly is a bivariate standard normal that can only evaluate
// its density, so sampling falls back to NewSampler.
type densityOnly struct{}

func (densityOnly) Dimension() int         { return 2 }
func (densityOnly) Support() []mathx.Range { return nil }

func (densityOnly) InnerPDF(x []float64) float64 {
	return math.Exp(-(x[0]*x[0]+x[1]*x[1])/2) / (2 * math.Pi)
}

// boxModel is uniform on [0, 1]×[0, 2].
type boxModel struct{}

func (boxModel) Dimension() int               { return 2 }
func (boxModel) Support() []mathx.Range       { return []mathx.Range{{Min: 0, Max: 1}, {Min: 0, Max: 2}} }
func (boxModel) InnerPDF(x []float64) float64 { return 0.5 }
func (boxModel) InnerCDF(x []float64) float64 { return x[0] * x[1] / 2 }

func expectPanic(t *testing.T, want error, f func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Errorf("want panic wrapping %v, got %v", want, r)
			return
		}
		assert.ErrorIs(t, err, want)
	}()
	f()
}

func TestContinuousValidation(t *testing.T) {
	d := NewContinuous(boxModel{})
	expectPanic(t, stats.ErrArgument, func() { d.PDF([]float64{0.5}) })
	expectPanic(t, stats.ErrArgument, func() { d.LogPDF([]float64{0.5, 1, 1}) })
	expectPanic(t, stats.ErrDomain, func() { d.PDF([]float64{0.5, math.NaN()}) })
	expectPanic(t, stats.ErrDomain, func() { d.CDF([]float64{math.NaN(), 1}) })

	assert.Equal(t, 0.5, d.PDF([]float64{0.5, 1}))
	assert.Equal(t, 0.0, d.PDF([]float64{1.5, 1}))
	assert.True(t, math.IsInf(d.LogPDF([]float64{0.5, -1}), -1))

	assert.Equal(t, 0.0, d.CDF([]float64{-1, 1}))
	assert.Equal(t, 0.25, d.CDF([]float64{0.5, 1}))
	assert.Equal(t, 1.0, d.CDF([]float64{5, 5}))

	n := NewContinuous(densityOnly{})
	expectPanic(t, stats.ErrUnsupported, func() { n.CDF([]float64{0, 0}) })
	assert.ErrorIs(t, n.Fit([][]float64{{1, 2}}, nil, nil), stats.ErrUnsupported)
}

func TestSamplerFallback(t *testing.T) {
	old := NewSampler
	defer func() { NewSampler = old }()
	built := 0
	NewSampler = func(dim int, initial []float64, logPDF func([]float64) float64) Sampler {
		built++
		assert.Equal(t, 2, dim)
		assert.InDelta(t, 0, logPDF(initial)+math.Log(2*math.Pi), 1e-12)
		return old(dim, initial, logPDF)
	}

	d := NewContinuous(densityOnly{})
	xs := d.Generate(5000, nil)
	assert.Equal(t, 1, built)

	// Means computed from the chain.
	var m0, m1 float64
	for _, x := range xs {
		m0 += x[0] / float64(len(xs))
		m1 += x[1] / float64(len(xs))
	}
	assert.InDelta(t, 0, m0, 0.15)
	assert.InDelta(t, 0, m1, 0.15)

	// The sampler is reused until the distribution is refit.
	d.Rand(nil)
	assert.Equal(t, 1, built)
	d.reset()
	d.Rand(nil)
	assert.Equal(t, 2, built)
}

func TestSamplerStaysInSupport(t *testing.T) {
	d := NewContinuous(boxModel{})
	for _, x := range d.Generate(1000, nil) {
		require.True(t, x[0] >= 0 && x[0] <= 1 && x[1] >= 0 && x[1] <= 2, "sample %v outside support", x)
	}
	// Moments fall back to a fixed Monte Carlo sample.
	assert.InDelta(t, 0.5, d.Mean()[0], 0.05)
	assert.InDelta(t, 1, d.Mean()[1], 0.1)
	assert.InDelta(t, 1.0/3, d.Variance()[1], 0.05)
}

func TestIndependent(t *testing.T) {
	a, b := stats.NewNormal(1, 2), stats.NewExponential(3)
	d := NewIndependent(a, b)
	assert.Equal(t, 2, d.Dimension())
	x := []float64{0.5, 0.25}
	assert.InDelta(t, a.PDF(0.5)*b.PDF(0.25), d.PDF(x), 1e-15)
	assert.InDelta(t, a.CDF(0.5)*b.CDF(0.25), d.CDF(x), 1e-15)
	assert.Equal(t, 0.0, d.PDF([]float64{0, -1}))
	assert.Equal(t, []float64{1, 1.0 / 3}, d.Mean())
	assert.InDelta(t, 4, d.Covariance().At(0, 0), 1e-12)
	assert.Equal(t, 0.0, d.Covariance().At(0, 1))

	require.NoError(t, d.Fit([][]float64{{0, 1}, {2, 1}}, nil, nil))
	assert.InDelta(t, 1, d.Mean()[0], 1e-12)
	assert.InDelta(t, 1, d.Mean()[1], 1e-12)
	// Fitting the product does not modify the components.
	assert.Equal(t, 1.0/3, b.Mean())

	r := rand.New(rand.NewSource(1))
	for _, x := range d.Generate(100, r) {
		require.GreaterOrEqual(t, x[1], 0.0)
	}
}

func TestFitObservations(t *testing.T) {
	d := NewIndependent(stats.NewNormal(0, 1), stats.NewNormal(0, 1))
	m := mat.NewDense(1, 2, []float64{1, 3})
	m2 := mat.NewDense(1, 2, []float64{3, 5})
	require.NoError(t, d.FitObservations(stats.Matrices{m, m2}, nil, nil))
	assert.Equal(t, []float64{2, 4}, d.Mean())

	assert.ErrorIs(t, d.FitObservations(stats.Scalars{1}, nil, nil), stats.ErrArgument)
	assert.ErrorIs(t, d.Fit([][]float64{{1}}, nil, nil), stats.ErrArgument)
	assert.ErrorIs(t, d.Fit([][]float64{{1, math.NaN()}}, nil, nil), stats.ErrDomain)
	assert.ErrorIs(t, d.Fit([][]float64{{1, 2}}, []float64{1, 1}, nil), stats.ErrArgument)
}
