// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mixture

import (
	"math/rand"

	"github.com/aclements/go-probdist/mathx"
	"github.com/aclements/go-probdist/stats"
)

// Univariate is a mixture of univariate continuous distributions. It
// is a *stats.Continuous, so all queries are validated and derived
// statistics are memoized until the next Fit.
type Univariate struct {
	*stats.Continuous
	mix *Mixture[float64, *stats.Continuous]
}

// NewUnivariate returns the mixture of components with the given
// coefficients, as for New.
func NewUnivariate(components []*stats.Continuous, coefficients []float64) (*Univariate, error) {
	mix, err := New[float64](components, coefficients)
	if err != nil {
		return nil, err
	}
	return newUnivariate(mix), nil
}

func newUnivariate(mix *Mixture[float64, *stats.Continuous]) *Univariate {
	return &Univariate{stats.NewContinuous(&univariateModel{mix}), mix}
}

// Len returns the number of components.
func (u *Univariate) Len() int { return u.mix.Len() }

// Component returns the i'th component.
func (u *Univariate) Component(i int) ComponentView[*stats.Continuous] { return u.mix.Component(i) }

// Coefficients returns a copy of the mixture coefficients.
func (u *Univariate) Coefficients() []float64 { return u.mix.Coefficients() }

// LogLikelihood returns the log-likelihood of xs under u.
func (u *Univariate) LogLikelihood(xs, weights []float64) float64 {
	return u.mix.LogLikelihood(xs, weights)
}

// Clone returns a copy of u that can be fit independently of u.
func (u *Univariate) Clone() *Univariate {
	return newUnivariate(u.mix.Clone())
}

// univariateModel adapts a Mixture to stats.ContinuousModel.
type univariateModel struct {
	mix *Mixture[float64, *stats.Continuous]
}

func (m *univariateModel) String() string {
	return m.mix.String()
}

// Support returns the smallest range containing every component's
// support.
func (m *univariateModel) Support() mathx.Range {
	s := m.mix.components[0].Support()
	for _, c := range m.mix.components[1:] {
		s = s.Hull(c.Support())
	}
	return s
}

func (m *univariateModel) InnerPDF(x float64) float64    { return m.mix.PDF(x) }
func (m *univariateModel) InnerLogPDF(x float64) float64 { return m.mix.LogPDF(x) }

func (m *univariateModel) InnerCDF(x float64) float64 {
	sum := 0.0
	for i, c := range m.mix.components {
		sum += m.mix.coefficients[i] * c.CDF(x)
	}
	return sum
}

func (m *univariateModel) InnerComplement(x float64) float64 {
	sum := 0.0
	for i, c := range m.mix.components {
		sum += m.mix.coefficients[i] * c.Complement(x)
	}
	return sum
}

// Mean returns Σ c_i μ_i.
func (m *univariateModel) Mean() float64 {
	mu := 0.0
	for i, c := range m.mix.components {
		mu += m.mix.coefficients[i] * c.Mean()
	}
	return mu
}

// Variance returns the mean of the component variances plus the mean
// squared deviation of the component means from the mixture mean.
// Both terms average over components with equal weight, not by
// coefficient.
func (m *univariateModel) Variance() float64 {
	mu := m.Mean()
	v := 0.0
	for _, c := range m.mix.components {
		d := c.Mean() - mu
		v += c.Variance() + d*d
	}
	return v / float64(len(m.mix.components))
}

func (m *univariateModel) Rand(r *rand.Rand) float64 {
	return m.mix.Rand(r)
}

func (m *univariateModel) Fit(xs, weights []float64, opts *stats.FitOptions) error {
	return m.mix.Fit(xs, weights, opts)
}

func (m *univariateModel) Clone() stats.ContinuousModel {
	return &univariateModel{m.mix.Clone()}
}
