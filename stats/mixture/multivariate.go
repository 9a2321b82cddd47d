// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mixture

import (
	"fmt"
	"math/rand"

	"github.com/aclements/go-probdist/mathx"
	"github.com/aclements/go-probdist/stats"
	"github.com/aclements/go-probdist/stats/mv"
	"gonum.org/v1/gonum/mat"
)

// Multivariate is a mixture of multivariate continuous distributions
// of the same dimension.
type Multivariate struct {
	*mv.Continuous
	mix *Mixture[[]float64, *mv.Continuous]
}

// NewMultivariate returns the mixture of components with the given
// coefficients, as for New. It also fails with stats.ErrArgument if
// the components differ in dimension.
func NewMultivariate(components []*mv.Continuous, coefficients []float64) (*Multivariate, error) {
	mix, err := New[[]float64](components, coefficients)
	if err != nil {
		return nil, err
	}
	n := components[0].Dimension()
	for i, c := range components[1:] {
		if c.Dimension() != n {
			return nil, fmt.Errorf("mixture: component %d has dimension %d, want %d: %w", i+1, c.Dimension(), n, stats.ErrArgument)
		}
	}
	return newMultivariate(mix), nil
}

func newMultivariate(mix *Mixture[[]float64, *mv.Continuous]) *Multivariate {
	return &Multivariate{mv.NewContinuous(&multivariateModel{mix}), mix}
}

// Len returns the number of components.
func (m *Multivariate) Len() int { return m.mix.Len() }

// Component returns the i'th component.
func (m *Multivariate) Component(i int) ComponentView[*mv.Continuous] { return m.mix.Component(i) }

// Coefficients returns a copy of the mixture coefficients.
func (m *Multivariate) Coefficients() []float64 { return m.mix.Coefficients() }

// LogLikelihood returns the log-likelihood of xs under m.
func (m *Multivariate) LogLikelihood(xs [][]float64, weights []float64) float64 {
	return m.mix.LogLikelihood(xs, weights)
}

// Clone returns a copy of m that can be fit independently of m.
func (m *Multivariate) Clone() *Multivariate {
	return newMultivariate(m.mix.Clone())
}

type multivariateModel struct {
	mix *Mixture[[]float64, *mv.Continuous]
}

func (m *multivariateModel) String() string {
	return m.mix.String()
}

func (m *multivariateModel) Dimension() int {
	return m.mix.components[0].Dimension()
}

// Support returns the per-component hull of the supports, or nil if
// any mixture component is supported on all of R^n.
func (m *multivariateModel) Support() []mathx.Range {
	var s []mathx.Range
	for _, c := range m.mix.components {
		cs := c.Support()
		if cs == nil {
			return nil
		}
		if s == nil {
			s = append(s, cs...)
			continue
		}
		for j := range s {
			s[j] = s[j].Hull(cs[j])
		}
	}
	return s
}

func (m *multivariateModel) InnerPDF(x []float64) float64    { return m.mix.PDF(x) }
func (m *multivariateModel) InnerLogPDF(x []float64) float64 { return m.mix.LogPDF(x) }

func (m *multivariateModel) Mean() []float64 {
	mu := make([]float64, m.Dimension())
	for i, c := range m.mix.components {
		for j, cm := range c.Mean() {
			mu[j] += m.mix.coefficients[i] * cm
		}
	}
	return mu
}

// Covariance returns the mean of the component covariances plus the
// mean outer product of the component means' deviations from the
// mixture mean, each averaged over components with equal weight.
func (m *multivariateModel) Covariance() *mat.SymDense {
	n := m.Dimension()
	mu := m.Mean()
	cov := mat.NewSymDense(n, nil)
	d := make([]float64, n)
	for _, c := range m.mix.components {
		cov.AddSym(cov, c.Covariance())
		for j, cm := range c.Mean() {
			d[j] = cm - mu[j]
		}
		cov.SymRankOne(cov, 1, mat.NewVecDense(n, d))
	}
	cov.ScaleSym(1/float64(len(m.mix.components)), cov)
	return cov
}

func (m *multivariateModel) Rand(r *rand.Rand) []float64 {
	return m.mix.Rand(r)
}

func (m *multivariateModel) Fit(xs [][]float64, weights []float64, opts *stats.FitOptions) error {
	return m.mix.Fit(xs, weights, opts)
}

func (m *multivariateModel) Clone() mv.ContinuousModel {
	return &multivariateModel{m.mix.Clone()}
}
