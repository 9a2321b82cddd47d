// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"

	"github.com/aclements/go-probdist/mathx"
	"gonum.org/v1/gonum/stat/distuv"
)

// poissonModel is the Poisson distribution, backed by gonum's distuv.
type poissonModel struct {
	d distuv.Poisson
}

// NewPoisson returns the Poisson distribution with mean λ > 0.
func NewPoisson(lambda float64) *Discrete {
	if !(lambda > 0) || math.IsInf(lambda, 1) {
		panic(fmt.Errorf("stats: Poisson with λ=%v: %w", lambda, ErrArgument))
	}
	return NewDiscrete(&poissonModel{distuv.Poisson{Lambda: lambda}})
}

func (m *poissonModel) String() string {
	return fmt.Sprintf("Poisson(λ=%g)", m.d.Lambda)
}

func (m *poissonModel) Support() mathx.IntRange {
	return mathx.Naturals
}

func (m *poissonModel) InnerPMF(k int) float64    { return m.d.Prob(float64(k)) }
func (m *poissonModel) InnerLogPMF(k int) float64 { return m.d.LogProb(float64(k)) }
func (m *poissonModel) InnerCDF(k int) float64    { return m.d.CDF(float64(k)) }

func (m *poissonModel) Mean() float64     { return m.d.Mean() }
func (m *poissonModel) Variance() float64 { return m.d.Variance() }

func (m *poissonModel) Mode() int {
	return int(math.Floor(m.d.Lambda))
}

// Fit sets λ to the weighted mean of ks.
func (m *poissonModel) Fit(ks []int, weights []float64, opts *FitOptions) error {
	sum, weight := 0.0, 0.0
	for i, k := range ks {
		if k < 0 {
			return fmt.Errorf("stats: fitting Poisson to %d: %w", k, ErrDomain)
		}
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		sum += w * float64(k)
		weight += w
	}
	if !(sum > 0) {
		return fmt.Errorf("stats: fitting Poisson: mean %v: %w", sum/weight, ErrArgument)
	}
	m.d.Lambda = sum / weight
	return nil
}

func (m *poissonModel) Clone() DiscreteModel {
	c := *m
	return &c
}
