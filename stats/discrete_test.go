// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"math/rand"
	"testing"

	"github.com/aclements/go-probdist/mathx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// geometricModel is the number of failures before the first success
// with success probability p. It supplies only the required
// primitives.
type geometricModel struct{ p float64 }

func (geometricModel) Support() mathx.IntRange { return mathx.Naturals }

func (m geometricModel) InnerPMF(k int) float64 {
	return math.Pow(1-m.p, float64(k)) * m.p
}

func (m geometricModel) InnerCDF(k int) float64 {
	return 1 - math.Pow(1-m.p, float64(k+1))
}

// twoSidedModel is a symmetric distribution on all integers with
// Pr[X = k] = 2^-|k| / 3.
type twoSidedModel struct{}

func (twoSidedModel) Support() mathx.IntRange { return mathx.Integers }

func (twoSidedModel) InnerPMF(k int) float64 {
	return math.Pow(2, -math.Abs(float64(k))) / 3
}

func (twoSidedModel) InnerCDF(k int) float64 {
	if k < 0 {
		return math.Pow(2, float64(k)) * 2 / 3
	}
	return 1 - math.Pow(2, -float64(k))/3
}

func TestDiscreteBoundaries(t *testing.T) {
	d := NewBinomial(3, 0.5)
	assert.Equal(t, 0.0, d.PMF(-1))
	assert.Equal(t, 0.0, d.PMF(4))
	assert.Equal(t, 0.0, d.CDF(-1))
	assert.Equal(t, 1.0, d.CDF(3))
	assert.Equal(t, 1.0, d.CDF(100))
	assert.Equal(t, 1.0, d.Complement(-1))
	assert.Equal(t, 0.0, d.Complement(3))
	assert.InDelta(t, 0.5, d.Complement(1), 1e-12)
	assert.True(t, math.IsInf(d.LogPMF(4), -1))

	assert.Equal(t, d.PMF(1), d.PMFAt(1.7))
	assert.Equal(t, d.CDF(-1), d.CDFAt(-0.5))
	expectPanic(t, ErrDomain, func() { d.PMFAt(math.NaN()) })
	expectPanic(t, ErrDomain, func() { d.CDFAt(math.NaN()) })
	assert.Equal(t, 1.0, d.CDFAt(math.Inf(1)))
	assert.Equal(t, 0.0, d.CDFAt(math.Inf(-1)))
}

func TestDiscreteInvCDF(t *testing.T) {
	for _, p := range []float64{-0.5, 1.5, math.NaN()} {
		expectPanic(t, ErrRange, func() { NewPoisson(2).InvCDF(p) })
	}

	b := NewBinomial(4, 0.5)
	assert.Equal(t, 0, b.InvCDF(0))
	assert.Equal(t, 4, b.InvCDF(1))

	for _, d := range []*Discrete{
		NewBinomial(10, 0.3),
		NewPoisson(3.5),
		NewDiscrete(geometricModel{0.2}),
		NewDiscrete(twoSidedModel{}),
	} {
		for _, p := range []float64{0.001, 0.1, 0.5, 0.75, 0.999} {
			k := d.InvCDF(p)
			if d.CDF(k) < p {
				t.Errorf("%v: CDF(InvCDF(%v)=%d) = %v < p", d, p, k, d.CDF(k))
			}
			if d.CDF(k-1) >= p {
				t.Errorf("%v: InvCDF(%v)=%d is not the smallest such k", d, p, k)
			}
		}
	}

	g := NewDiscrete(geometricModel{0.5})
	assert.Equal(t, 0, g.InvCDF(0.5))
	assert.Equal(t, 1, g.InvCDF(0.6))
	assert.Equal(t, 9, g.InvCDF(0.999))

	ts := NewDiscrete(twoSidedModel{})
	assert.Equal(t, 0, ts.Median())
	assert.Equal(t, -3, ts.InvCDF(0.05))
}

func TestDiscreteCDF(t *testing.T) {
	testDiscreteCDF(t, "Poisson(3).CDF", NewPoisson(3))
	testDiscreteCDF(t, "Geometric(0.3).CDF", NewDiscrete(geometricModel{0.3}))
	testDiscreteCDF(t, "TwoSided.CDF", NewDiscrete(twoSidedModel{}))
}

func TestDiscreteMoments(t *testing.T) {
	g := NewDiscrete(geometricModel{0.25})
	assert.InDelta(t, 3, g.Mean(), 1e-9)
	assert.InDelta(t, 12, g.Variance(), 1e-7)
	assert.Equal(t, 0, g.Mode())

	ts := NewDiscrete(twoSidedModel{})
	assert.InDelta(t, 0, ts.Mean(), 1e-9)
	assert.InDelta(t, 4, ts.Variance(), 1e-7)
	assert.Equal(t, mathx.IntRange{Min: -1, Max: 1}, ts.Quartiles())

	p := NewPoisson(4.5)
	assert.Equal(t, 4.5, p.Mean())
	assert.Equal(t, 4, p.Mode())
	assert.Equal(t, 4, p.Median())
}

func TestDiscreteHazard(t *testing.T) {
	g := NewDiscrete(geometricModel{0.25})
	for k := 0; k < 5; k++ {
		// The geometric distribution is memoryless.
		assert.InDelta(t, 0.25/0.75, g.Hazard(k), 1e-12)
	}
	assert.InDelta(t, -math.Log(0.75), g.CumulativeHazard(0), 1e-12)
}

func TestDiscreteFit(t *testing.T) {
	p := NewPoisson(1)
	assert.Equal(t, 1.0, p.Mean())
	require.NoError(t, p.Fit([]int{2, 4, 6}, nil, nil))
	assert.Equal(t, 4.0, p.Mean())

	require.NoError(t, p.FitObservations(Scalars{1.5, 2.9}, []float64{1, 3}, nil))
	assert.InDelta(t, 1.75, p.Mean(), 1e-12)

	assert.ErrorIs(t, p.FitObservations(Scalars{math.NaN()}, nil, nil), ErrDomain)
	assert.ErrorIs(t, p.FitObservations(Vectors{{1}}, nil, nil), ErrArgument)
	assert.ErrorIs(t, p.Fit([]int{1}, []float64{1, 2}, nil), ErrArgument)
	assert.ErrorIs(t, p.Fit([]int{-1}, nil, nil), ErrDomain)

	g := NewDiscrete(geometricModel{0.5})
	assert.ErrorIs(t, g.Fit([]int{1}, nil, nil), ErrUnsupported)
}

func TestDiscreteRand(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for _, d := range []*Discrete{
		NewPoisson(3),
		NewBinomial(20, 0.3),
		NewDiscrete(twoSidedModel{}),
	} {
		ks := d.Generate(20000, r)
		xs := make([]float64, len(ks))
		for i, k := range ks {
			xs[i] = float64(k)
			if !d.Support().Contains(k) {
				t.Fatalf("%v: sample %d outside support", d, k)
			}
		}
		assert.InDelta(t, d.Mean(), Mean(xs), 0.1, "%v", d)
		assert.InDelta(t, d.Variance(), Variance(xs), 0.3, "%v", d)
	}
}

func TestFloorInt(t *testing.T) {
	assert.Equal(t, -2, floorInt(-1.5))
	assert.Equal(t, 1, floorInt(1.9999))
	assert.Equal(t, math.MaxInt, floorInt(math.Inf(1)))
	assert.Equal(t, math.MinInt, floorInt(math.Inf(-1)))
	assert.Equal(t, math.MaxInt, floorInt(1e300))
}
