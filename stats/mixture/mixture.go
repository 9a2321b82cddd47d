// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mixture

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/aclements/go-probdist/stats"
	"gonum.org/v1/gonum/floats"
)

// Component is the set of operations a mixture needs from its
// component distributions. X is the observation type and C is the
// component type itself, so that Clone returns a C.
//
// *stats.Continuous and *mv.Continuous implement Component.
type Component[X, C any] interface {
	PDF(x X) float64
	LogPDF(x X) float64
	Rand(r *rand.Rand) X
	Fit(xs []X, weights []float64, opts *stats.FitOptions) error
	Clone() C
}

// A Mixture is a finite mixture distribution: with probability
// Coefficients()[i], a value is drawn from Component(i).
type Mixture[X any, C Component[X, C]] struct {
	components   []C
	coefficients []float64
}

// New returns the mixture of components with the given coefficients.
// If coefficients is nil, every component gets the same coefficient.
// Otherwise it must have one non-negative entry per component; it is
// normalized to sum to 1.
//
// New fails with stats.ErrArgument if there are no components, the
// lengths differ, or the coefficients are negative or sum to 0.
func New[X any, C Component[X, C]](components []C, coefficients []float64) (*Mixture[X, C], error) {
	if len(components) == 0 {
		return nil, fmt.Errorf("mixture: no components: %w", stats.ErrArgument)
	}
	cs := make([]float64, len(components))
	if coefficients == nil {
		for i := range cs {
			cs[i] = 1 / float64(len(cs))
		}
	} else {
		if len(coefficients) != len(components) {
			return nil, fmt.Errorf("mixture: %d components but %d coefficients: %w", len(components), len(coefficients), stats.ErrArgument)
		}
		total := 0.0
		for i, c := range coefficients {
			if !(c >= 0) || math.IsInf(c, 1) {
				return nil, fmt.Errorf("mixture: coefficient %d is %v: %w", i, c, stats.ErrArgument)
			}
			total += c
		}
		if total == 0 {
			return nil, fmt.Errorf("mixture: coefficients sum to 0: %w", stats.ErrArgument)
		}
		for i, c := range coefficients {
			cs[i] = c / total
		}
	}
	return &Mixture[X, C]{append([]C(nil), components...), cs}, nil
}

// A ComponentView is a read-only view of one component of a mixture.
type ComponentView[C any] struct {
	Index        int
	Coefficient  float64
	Distribution C
}

// Len returns the number of components in m.
func (m *Mixture[X, C]) Len() int {
	return len(m.components)
}

// Component returns the i'th component of m.
func (m *Mixture[X, C]) Component(i int) ComponentView[C] {
	return ComponentView[C]{i, m.coefficients[i], m.components[i]}
}

// Coefficients returns a copy of m's mixture coefficients.
func (m *Mixture[X, C]) Coefficients() []float64 {
	return append([]float64(nil), m.coefficients...)
}

// PDF returns Σ c_i PDF_i(x).
func (m *Mixture[X, C]) PDF(x X) float64 {
	sum := 0.0
	for i, c := range m.components {
		if m.coefficients[i] != 0 {
			sum += m.coefficients[i] * c.PDF(x)
		}
	}
	return sum
}

// LogPDF returns log(PDF(x)), computed in the log domain so it does
// not underflow far from every component.
func (m *Mixture[X, C]) LogPDF(x X) float64 {
	return logPDF(m.components, m.coefficients, x, make([]float64, len(m.components)))
}

// logPDF computes the mixture log density of x using buf as scratch.
// On return, buf[i] holds log(c_i) + LogPDF_i(x).
func logPDF[X any, C Component[X, C]](components []C, coefficients []float64, x X, buf []float64) float64 {
	for i, c := range components {
		if coefficients[i] == 0 {
			buf[i] = math.Inf(-1)
			continue
		}
		buf[i] = math.Log(coefficients[i]) + c.LogPDF(x)
	}
	return floats.LogSumExp(buf)
}

// Rand draws a component by its coefficient and returns a sample from
// it. If r is nil, it uses the global source.
func (m *Mixture[X, C]) Rand(r *rand.Rand) X {
	var u float64
	if r == nil {
		u = rand.Float64()
	} else {
		u = r.Float64()
	}
	i := 0
	for ; i < len(m.coefficients)-1; i++ {
		if u -= m.coefficients[i]; u < 0 {
			break
		}
	}
	// Skip over empty components at the end.
	for m.coefficients[i] == 0 && i > 0 {
		i--
	}
	return m.components[i].Rand(r)
}

// LogLikelihood returns the log-likelihood of the observations xs
// under m, Σ w_i log PDF(x_i). If weights is nil, every weight is 1.
func (m *Mixture[X, C]) LogLikelihood(xs []X, weights []float64) float64 {
	if err := stats.CheckWeights(len(xs), weights); err != nil {
		panic(err)
	}
	ll := make([]float64, len(xs))
	buf := make([]float64, len(m.components))
	for i, x := range xs {
		ll[i] = logPDF(m.components, m.coefficients, x, buf)
	}
	return weightedSum(ll, weights)
}

// Fit re-estimates m's components and coefficients from xs by
// expectation-maximization, starting from m's current parameters. See
// EM for how opts is interpreted. On failure, m is unchanged.
func (m *Mixture[X, C]) Fit(xs []X, weights []float64, opts *stats.FitOptions) error {
	res, err := EM(m.components, m.coefficients, xs, weights, opts)
	if err != nil {
		return err
	}
	m.components, m.coefficients = res.Components, res.Coefficients
	return nil
}

// Clone returns a deep copy of m.
func (m *Mixture[X, C]) Clone() *Mixture[X, C] {
	cs := make([]C, len(m.components))
	for i, c := range m.components {
		cs[i] = c.Clone()
	}
	return &Mixture[X, C]{cs, append([]float64(nil), m.coefficients...)}
}

func (m *Mixture[X, C]) String() string {
	s := "Mixture("
	for i, c := range m.components {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%.4g×%v", m.coefficients[i], c)
	}
	return s + ")"
}
