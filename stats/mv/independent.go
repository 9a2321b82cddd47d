// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mv

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/aclements/go-probdist/mathx"
	"github.com/aclements/go-probdist/stats"
	"gonum.org/v1/gonum/mat"
)

// independentModel is the joint distribution of independent
// univariate components.
type independentModel struct {
	ds []*stats.Continuous
}

// NewIndependent returns the joint distribution of independent
// random variables with the given distributions.
func NewIndependent(ds ...*stats.Continuous) *Continuous {
	if len(ds) == 0 {
		panic(fmt.Errorf("mv: independent distribution of no components: %w", stats.ErrArgument))
	}
	return NewContinuous(&independentModel{append([]*stats.Continuous(nil), ds...)})
}

func (m *independentModel) String() string {
	parts := make([]string, len(m.ds))
	for i, d := range m.ds {
		parts[i] = d.String()
	}
	return "Independent(" + strings.Join(parts, ", ") + ")"
}

func (m *independentModel) Dimension() int { return len(m.ds) }

func (m *independentModel) Support() []mathx.Range {
	s := make([]mathx.Range, len(m.ds))
	for i, d := range m.ds {
		s[i] = d.Support()
	}
	return s
}

func (m *independentModel) InnerPDF(x []float64) float64 {
	return math.Exp(m.InnerLogPDF(x))
}

func (m *independentModel) InnerLogPDF(x []float64) float64 {
	l := 0.0
	for i, d := range m.ds {
		l += d.LogPDF(x[i])
	}
	return l
}

func (m *independentModel) InnerCDF(x []float64) float64 {
	p := 1.0
	for i, d := range m.ds {
		p *= d.CDF(x[i])
	}
	return p
}

func (m *independentModel) Mean() []float64 {
	mean := make([]float64, len(m.ds))
	for i, d := range m.ds {
		mean[i] = d.Mean()
	}
	return mean
}

func (m *independentModel) Covariance() *mat.SymDense {
	cov := mat.NewSymDense(len(m.ds), nil)
	for i, d := range m.ds {
		cov.SetSym(i, i, d.Variance())
	}
	return cov
}

func (m *independentModel) Rand(r *rand.Rand) []float64 {
	x := make([]float64, len(m.ds))
	for i, d := range m.ds {
		x[i] = d.Rand(r)
	}
	return x
}

// Fit fits each component to its column of xs.
func (m *independentModel) Fit(xs [][]float64, weights []float64, opts *stats.FitOptions) error {
	ds := make([]*stats.Continuous, len(m.ds))
	col := make([]float64, len(xs))
	for i, d := range m.ds {
		for j, x := range xs {
			col[j] = x[i]
		}
		ds[i] = d.Clone()
		if err := ds[i].Fit(col, weights, opts); err != nil {
			return fmt.Errorf("mv: fitting component %d: %w", i, err)
		}
	}
	m.ds = ds
	return nil
}

func (m *independentModel) Clone() ContinuousModel {
	ds := make([]*stats.Continuous, len(m.ds))
	for i, d := range m.ds {
		ds[i] = d.Clone()
	}
	return &independentModel{ds}
}

// independentDiscreteModel is the joint distribution of independent
// integer-valued components.
type independentDiscreteModel struct {
	ds []*stats.Discrete
}

// NewIndependentDiscrete returns the joint distribution of
// independent integer-valued random variables with the given
// distributions.
func NewIndependentDiscrete(ds ...*stats.Discrete) *Discrete {
	if len(ds) == 0 {
		panic(fmt.Errorf("mv: independent distribution of no components: %w", stats.ErrArgument))
	}
	return NewDiscrete(&independentDiscreteModel{append([]*stats.Discrete(nil), ds...)})
}

func (m *independentDiscreteModel) String() string {
	parts := make([]string, len(m.ds))
	for i, d := range m.ds {
		parts[i] = d.String()
	}
	return "Independent(" + strings.Join(parts, ", ") + ")"
}

func (m *independentDiscreteModel) Dimension() int { return len(m.ds) }

func (m *independentDiscreteModel) Support() []mathx.IntRange {
	s := make([]mathx.IntRange, len(m.ds))
	for i, d := range m.ds {
		s[i] = d.Support()
	}
	return s
}

func (m *independentDiscreteModel) InnerPMF(k []int) float64 {
	p := 1.0
	for i, d := range m.ds {
		p *= d.PMF(k[i])
	}
	return p
}

func (m *independentDiscreteModel) InnerLogPMF(k []int) float64 {
	l := 0.0
	for i, d := range m.ds {
		l += d.LogPMF(k[i])
	}
	return l
}

func (m *independentDiscreteModel) Mean() []float64 {
	mean := make([]float64, len(m.ds))
	for i, d := range m.ds {
		mean[i] = d.Mean()
	}
	return mean
}

func (m *independentDiscreteModel) Covariance() *mat.SymDense {
	cov := mat.NewSymDense(len(m.ds), nil)
	for i, d := range m.ds {
		cov.SetSym(i, i, d.Variance())
	}
	return cov
}

func (m *independentDiscreteModel) Rand(r *rand.Rand) []int {
	k := make([]int, len(m.ds))
	for i, d := range m.ds {
		k[i] = d.Rand(r)
	}
	return k
}

func (m *independentDiscreteModel) Fit(ks [][]int, weights []float64, opts *stats.FitOptions) error {
	ds := make([]*stats.Discrete, len(m.ds))
	col := make([]int, len(ks))
	for i, d := range m.ds {
		for j, k := range ks {
			col[j] = k[i]
		}
		ds[i] = d.Clone()
		if err := ds[i].Fit(col, weights, opts); err != nil {
			return fmt.Errorf("mv: fitting component %d: %w", i, err)
		}
	}
	m.ds = ds
	return nil
}

func (m *independentDiscreteModel) Clone() DiscreteModel {
	ds := make([]*stats.Discrete, len(m.ds))
	for i, d := range m.ds {
		ds[i] = d.Clone()
	}
	return &independentDiscreteModel{ds}
}
