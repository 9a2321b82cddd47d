// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestNormalDist(t *testing.T) {
	d := NewNormal(1, 2)
	ref := distuv.Normal{Mu: 1, Sigma: 2}
	for _, x := range []float64{-5, -1, 0, 1, 2.5, 7} {
		assert.InDelta(t, ref.Prob(x), d.PDF(x), 1e-14, "PDF(%v)", x)
		assert.InDelta(t, ref.LogProb(x), d.LogPDF(x), 1e-12, "LogPDF(%v)", x)
		assert.InDelta(t, ref.CDF(x), d.CDF(x), 1e-14, "CDF(%v)", x)
		assert.InDelta(t, ref.Survival(x), d.Complement(x), 1e-14, "Complement(%v)", x)
	}
	for _, p := range []float64{1e-10, 0.01, 0.3, 0.5, 0.8, 0.99} {
		assert.InDelta(t, ref.Quantile(p), d.InvCDF(p), 1e-8, "InvCDF(%v)", p)
	}

	testFunc(t, "StdNormal.InvCDF", StdNormal().InvCDF, map[float64]float64{
		0.5:   0,
		0.975: 1.959963984540054,
		0.025: -1.959963984540054,
	})

	assert.Equal(t, 1.0, d.Mean())
	assert.Equal(t, 4.0, d.Variance())
	assert.Equal(t, 1.0, d.Mode())
	assert.InDelta(t, 1, d.Median(), 1e-12)
}

func TestNormalConstructor(t *testing.T) {
	expectPanic(t, ErrArgument, func() { NewNormal(0, 0) })
	expectPanic(t, ErrArgument, func() { NewNormal(0, -1) })
	expectPanic(t, ErrArgument, func() { NewNormal(math.NaN(), 1) })
	expectPanic(t, ErrArgument, func() { NewUniform(1, 1) })
	expectPanic(t, ErrArgument, func() { NewExponential(0) })
	expectPanic(t, ErrArgument, func() { NewBinomial(-1, 0.5) })
	expectPanic(t, ErrArgument, func() { NewPoisson(-2) })
}

func TestNormalFitWeighted(t *testing.T) {
	xs := []float64{1, 2, 3, 4}

	// Weights that sum to 1 give the same fit as equivalent
	// frequency weights.
	a, b := NewNormal(0, 1), NewNormal(0, 1)
	require.NoError(t, a.Fit(xs, []float64{0.1, 0.2, 0.3, 0.4}, nil))
	require.NoError(t, b.Fit([]float64{1, 2, 2, 3, 3, 3, 4, 4, 4, 4}, nil, nil))
	assert.InDelta(t, b.Mean(), a.Mean(), 1e-12)
	assert.InDelta(t, b.StdDev(), a.StdDev(), 1e-12)
	assert.InDelta(t, 3, a.Mean(), 1e-12)
	assert.InDelta(t, 1, a.Variance(), 1e-12)
}

func TestExponentialFit(t *testing.T) {
	d := NewExponential(1)
	require.NoError(t, d.Fit([]float64{1, 2, 3}, nil, nil))
	assert.InDelta(t, 0.5, 1/d.Mean(), 1e-12)
	assert.ErrorIs(t, d.Fit([]float64{-1, 2}, nil, nil), ErrDomain)
	assert.Equal(t, 0.0, d.PDF(-1))
	assert.Equal(t, 0.0, d.Mode())
}

func TestUniformFit(t *testing.T) {
	d := NewUniform(0, 1)
	require.NoError(t, d.Fit([]float64{-3, 2, 8}, []float64{1, 1, 0}, nil))
	assert.Equal(t, -3.0, d.Support().Min)
	assert.Equal(t, 2.0, d.Support().Max)
	assert.InDelta(t, 25.0/12, d.Variance(), 1e-12)
	assert.ErrorIs(t, d.Fit([]float64{1}, nil, nil), ErrArgument)
}
