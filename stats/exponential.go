// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/aclements/go-probdist/mathx"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// exponentialModel is the exponential distribution with the given
// rate. The density math is provided by gonum's distuv.
type exponentialModel struct {
	d distuv.Exponential
}

// NewExponential returns the exponential distribution with rate
// λ > 0.
func NewExponential(rate float64) *Continuous {
	if !(rate > 0) || math.IsInf(rate, 1) {
		panic(fmt.Errorf("stats: exponential with rate %v: %w", rate, ErrArgument))
	}
	return NewContinuous(&exponentialModel{distuv.Exponential{Rate: rate}})
}

func (e *exponentialModel) String() string {
	return fmt.Sprintf("Exponential(λ=%g)", e.d.Rate)
}

func (e *exponentialModel) Support() mathx.Range {
	return mathx.Range{Min: 0, Max: inf}
}

func (e *exponentialModel) InnerPDF(x float64) float64        { return e.d.Prob(x) }
func (e *exponentialModel) InnerLogPDF(x float64) float64     { return e.d.LogProb(x) }
func (e *exponentialModel) InnerCDF(x float64) float64        { return e.d.CDF(x) }
func (e *exponentialModel) InnerComplement(x float64) float64 { return e.d.Survival(x) }
func (e *exponentialModel) InnerInvCDF(p float64) float64     { return e.d.Quantile(p) }

func (e *exponentialModel) Mean() float64     { return e.d.Mean() }
func (e *exponentialModel) Variance() float64 { return e.d.Variance() }
func (e *exponentialModel) Mode() float64     { return 0 }

func (e *exponentialModel) Rand(r *rand.Rand) float64 {
	if r == nil {
		return rand.ExpFloat64() / e.d.Rate
	}
	return r.ExpFloat64() / e.d.Rate
}

// Fit sets the rate to the reciprocal of the weighted mean.
func (e *exponentialModel) Fit(xs, weights []float64, opts *FitOptions) error {
	if len(xs) == 0 {
		return fmt.Errorf("stats: fitting exponential to no observations: %w", ErrArgument)
	}
	for _, x := range xs {
		if x < 0 {
			return fmt.Errorf("stats: fitting exponential to negative observation %v: %w", x, ErrDomain)
		}
	}
	mean := stat.Mean(xs, weights)
	if !(mean > 0) {
		return fmt.Errorf("stats: fitting exponential: mean %v: %w", mean, ErrArgument)
	}
	e.d.Rate = 1 / mean
	return nil
}

func (e *exponentialModel) Clone() ContinuousModel {
	c := *e
	return &c
}
