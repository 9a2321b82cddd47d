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

// logisticModel is the standard logistic distribution with only the
// required primitives, so every derived quantity takes the generic
// numerical path.
type logisticModel struct{}

func (logisticModel) Support() mathx.Range { return mathx.Real }

func (logisticModel) InnerPDF(x float64) float64 {
	e := math.Exp(-x)
	return e / ((1 + e) * (1 + e))
}

func (logisticModel) InnerCDF(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// halfExpModel is a rate 2 exponential without a quantile function, so
// InvCDF must expand a bracket up from the finite lower bound.
type halfExpModel struct{}

func (halfExpModel) Support() mathx.Range       { return mathx.Range{Min: 0, Max: inf} }
func (halfExpModel) InnerPDF(x float64) float64 { return 2 * math.Exp(-2*x) }
func (halfExpModel) InnerCDF(x float64) float64 { return -math.Expm1(-2 * x) }

// brokenModel violates its contract.
type brokenModel struct{ pdf, cdf float64 }

func (brokenModel) Support() mathx.Range         { return mathx.Range{Min: 0, Max: 1} }
func (m brokenModel) InnerPDF(x float64) float64 { return m.pdf }
func (m brokenModel) InnerCDF(x float64) float64 { return m.cdf }

// countingModel is a logistic distribution that counts calls to its
// primitives.
type countingModel struct {
	support, pdf, cdf int
}

func (m *countingModel) Support() mathx.Range {
	m.support++
	return mathx.Real
}

func (m *countingModel) InnerPDF(x float64) float64 {
	m.pdf++
	return logisticModel{}.InnerPDF(x)
}

func (m *countingModel) InnerCDF(x float64) float64 {
	m.cdf++
	return logisticModel{}.InnerCDF(x)
}

// stepModel has a CDF that jumps from 1/4 to 3/4 at 1/2 over an
// enormous support, so a root search cannot narrow in on the median
// in a bounded number of steps.
type stepModel struct{}

func (stepModel) Support() mathx.Range       { return mathx.Range{Min: -1e300, Max: 1e300} }
func (stepModel) InnerPDF(x float64) float64 { return 0 }
func (stepModel) InnerCDF(x float64) float64 {
	if x < 0.5 {
		return 0.25
	}
	return 0.75
}

func TestContinuousBoundaries(t *testing.T) {
	d := NewUniform(0, 2)
	testFunc(t, "PDF", d.PDF, map[float64]float64{
		-1: 0, 0: 0.5, 1: 0.5, 2: 0.5, 3: 0,
	})
	testFunc(t, "CDF", d.CDF, map[float64]float64{
		-1: 0, 0: 0, 1: 0.5, 2: 1, 3: 1,
	})
	testFunc(t, "Complement", d.Complement, map[float64]float64{
		-1: 1, 1: 0.5, 2: 0, 3: 0,
	})
	assert.True(t, math.IsInf(d.LogPDF(3), -1))
	assert.True(t, math.IsInf(d.LogPDF(-1), -1))
	assert.InDelta(t, math.Log(0.5), d.LogPDF(1), 1e-15)
}

func TestContinuousDomainErrors(t *testing.T) {
	d := NewNormal(0, 1)
	for name, f := range map[string]func(float64) float64{
		"PDF":              d.PDF,
		"LogPDF":           d.LogPDF,
		"CDF":              d.CDF,
		"Complement":       d.Complement,
		"Hazard":           d.Hazard,
		"CumulativeHazard": d.CumulativeHazard,
	} {
		t.Run(name, func(t *testing.T) {
			expectPanic(t, ErrDomain, func() { f(math.NaN()) })
		})
	}

	for _, p := range []float64{-0.1, 1.1, math.NaN(), math.Inf(1)} {
		expectPanic(t, ErrRange, func() { d.InvCDF(p) })
	}
}

func TestValidationPrecedesModel(t *testing.T) {
	m := &countingModel{}
	d := NewContinuous(m)
	for _, p := range []float64{-0.1, 1.1} {
		expectPanic(t, ErrRange, func() { d.InvCDF(p) })
	}
	for _, f := range []func(float64) float64{d.PDF, d.LogPDF, d.CDF, d.Complement} {
		expectPanic(t, ErrDomain, func() { f(math.NaN()) })
	}
	assert.Equal(t, countingModel{}, *m, "model consulted before validation")

	// A valid quantile does consult the model.
	d.InvCDF(0.5)
	assert.NotZero(t, m.support)
	assert.NotZero(t, m.cdf)
}

func TestContinuousInternalErrors(t *testing.T) {
	d := NewContinuous(brokenModel{pdf: math.NaN(), cdf: 0.5})
	expectPanic(t, ErrInternal, func() { d.PDF(0.5) })
	expectPanic(t, ErrInternal, func() { d.LogPDF(0.5) })

	d = NewContinuous(brokenModel{pdf: 1, cdf: 1.5})
	expectPanic(t, ErrInternal, func() { d.CDF(0.5) })
	// Outside the support the model is never consulted.
	assert.Equal(t, 1.0, d.CDF(2))
	assert.Equal(t, 0.0, d.CDF(-1))

	// The quantile search gives up rather than returning an
	// unconverged point.
	expectPanic(t, ErrInternal, func() { NewContinuous(stepModel{}).InvCDF(0.5) })
}

func TestInvCDFBounds(t *testing.T) {
	d := NewNormal(3, 2)
	assert.True(t, math.IsInf(d.InvCDF(0), -1))
	assert.True(t, math.IsInf(d.InvCDF(1), 1))

	u := NewUniform(-1, 4)
	assert.Equal(t, -1.0, u.InvCDF(0))
	assert.Equal(t, 4.0, u.InvCDF(1))
}

func TestInvCDFRoundTrip(t *testing.T) {
	for _, d := range []*Continuous{
		NewNormal(3, 2),
		NewExponential(0.5),
		NewUniform(-1, 4),
		NewContinuous(logisticModel{}),
		NewContinuous(halfExpModel{}),
	} {
		for _, p := range []float64{1e-9, 0.01, 0.25, 0.5, 0.9, 0.999} {
			x := d.InvCDF(p)
			if got := d.CDF(x); math.Abs(got-p) > 1e-9 {
				t.Errorf("%v: CDF(InvCDF(%v)) = %v", d, p, got)
			}
		}
	}
}

func TestInvCDFSearch(t *testing.T) {
	d := NewContinuous(logisticModel{})
	assert.InDelta(t, math.Log(9), d.InvCDF(0.9), 1e-9)
	assert.InDelta(t, -math.Log(9), d.InvCDF(0.1), 1e-9)

	// Far in the tails the bracket must expand many times.
	assert.InDelta(t, math.Log(1e12-1), d.InvCDF(1-1e-12), 1e-3)

	h := NewContinuous(halfExpModel{})
	assert.InDelta(t, math.Ln2/2, h.InvCDF(0.5), 1e-9)
}

func TestComplement(t *testing.T) {
	for _, d := range []*Continuous{
		NewNormal(0, 1),
		NewExponential(2),
		NewContinuous(logisticModel{}),
	} {
		for _, x := range []float64{-3, -0.5, 0, 0.5, 3} {
			if got := d.CDF(x) + d.Complement(x); math.Abs(got-1) > 1e-12 {
				t.Errorf("%v: CDF(%v) + Complement(%v) = %v", d, x, x, got)
			}
		}
	}
}

func TestNumericMoments(t *testing.T) {
	d := NewContinuous(logisticModel{})
	assert.InDelta(t, 0, d.Mean(), 1e-9)
	assert.InDelta(t, math.Pi*math.Pi/3, d.Variance(), 0.05)
	assert.InDelta(t, 0, d.Median(), 1e-9)
	assert.InDelta(t, 0, d.Mode(), 1e-6)
	q := d.Quartiles()
	assert.InDelta(t, -math.Log(3), q.Min, 1e-9)
	assert.InDelta(t, math.Log(3), q.Max, 1e-9)

	h := NewContinuous(halfExpModel{})
	assert.InDelta(t, 0.5, h.Mean(), 1e-3)
	assert.InDelta(t, 0.25, h.Variance(), 0.01)
}

func TestHazard(t *testing.T) {
	d := NewExponential(1.5)
	for _, x := range []float64{0, 1, 2.5} {
		assert.InDelta(t, 1.5, d.Hazard(x), 1e-9)
		assert.InDelta(t, 1.5*x, d.CumulativeHazard(x), 1e-9)
	}
}

func TestFitInvalidatesCache(t *testing.T) {
	d := NewNormal(0, 1)
	assert.Equal(t, 0.0, d.Mean())
	assert.Equal(t, 0.0, d.Median())

	require.NoError(t, d.Fit([]float64{4, 6}, nil, nil))
	assert.Equal(t, 5.0, d.Mean())
	assert.InDelta(t, 5, d.Median(), 1e-9)
	assert.InDelta(t, 1, d.StdDev(), 1e-12)

	require.NoError(t, d.Fit([]float64{1, 2, 3}, []float64{0, 0, 1}, &FitOptions{Model: NormalOptions{Regularization: 0.25}}))
	assert.Equal(t, 3.0, d.Mean())
	assert.InDelta(t, 0.5, d.StdDev(), 1e-12)
}

func TestFitErrors(t *testing.T) {
	d := NewNormal(0, 1)
	assert.ErrorIs(t, d.Fit([]float64{1, 2}, []float64{1}, nil), ErrArgument)
	assert.ErrorIs(t, d.Fit([]float64{1, 2}, []float64{1, -1}, nil), ErrArgument)
	assert.ErrorIs(t, d.Fit([]float64{1, math.NaN()}, nil, nil), ErrDomain)
	assert.ErrorIs(t, d.Fit([]float64{2, 2}, nil, nil), ErrArgument)

	l := NewContinuous(logisticModel{})
	assert.ErrorIs(t, l.Fit([]float64{1, 2}, nil, nil), ErrUnsupported)
}

func TestFitObservations(t *testing.T) {
	d := NewNormal(0, 1)
	require.NoError(t, d.FitObservations(Vectors{{1}, {3}}, nil, nil))
	assert.Equal(t, 2.0, d.Mean())

	require.NoError(t, d.FitObservations(Scalars{5, 7}, nil, nil))
	assert.Equal(t, 6.0, d.Mean())

	for _, obs := range []Observations{Vectors{{1, 2}}, Ints{1, 2}, Matrices{}, nil} {
		err := d.FitObservations(obs, nil, nil)
		assert.ErrorIs(t, err, ErrArgument, "%T", obs)
		if err != nil {
			assert.Contains(t, err.Error(), "unsupported parameter type")
		}
	}
}

func TestRand(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for _, d := range []*Continuous{
		NewNormal(3, 2),
		NewContinuous(logisticModel{}),
		NewUniform(-1, 4),
	} {
		xs := d.Generate(20000, r)
		s := Sample{Xs: xs}
		assert.InDelta(t, d.Mean(), s.Mean(), 0.1, "%v", d)
		assert.InDelta(t, d.StdDev(), s.StdDev(), 0.1, "%v", d)
		lo, hi := s.Bounds()
		assert.True(t, d.Support().Contains(lo) && d.Support().Contains(hi), "%v", d)
	}
}

func TestClone(t *testing.T) {
	d := NewNormal(0, 1)
	c := d.Clone()
	require.NoError(t, c.Fit([]float64{9, 11}, nil, nil))
	assert.Equal(t, 0.0, d.Mean())
	assert.Equal(t, 10.0, c.Mean())
}
