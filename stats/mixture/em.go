// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mixture

import (
	"fmt"
	"math"

	"github.com/aclements/go-probdist/stats"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// Result is the outcome of fitting a mixture by EM.
type Result[C any] struct {
	Components   []C
	Coefficients []float64

	// LogLikelihood is the (weighted) log-likelihood of the
	// observations under the fitted mixture.
	LogLikelihood float64

	// Iterations is the number of EM iterations performed.
	Iterations int
}

// EM fits a mixture to the observations xs by
// expectation-maximization, starting from the given components and
// coefficients. The inputs are not modified: EM fits clones of the
// components.
//
// Each iteration computes the responsibility of each component for
// each observation (the E-step) and then refits each component to all
// observations weighted by its responsibilities (the M-step). EM stops
// after opts.IterationLimit() iterations or once the relative change
// in log-likelihood between iterations is at most opts.Tolerance().
//
// If opts.Logarithm is set, responsibilities are computed in the log
// domain. This avoids underflow when observations are far from every
// component, but cannot be combined with weights: EM fails with
// stats.ErrArgument if both are requested. If opts.Parallelism > 1,
// the E-step is split across that many goroutines. Components are fit
// with opts.Inner. EM sets opts.Iterations.
//
// EM fails with stats.ErrDomain if some observation with non-zero
// weight has zero density under every component.
func EM[X any, C Component[X, C]](components []C, coefficients []float64, xs []X, weights []float64, opts *stats.FitOptions) (*Result[C], error) {
	if len(components) == 0 || len(components) != len(coefficients) {
		return nil, fmt.Errorf("mixture: EM with %d components and %d coefficients: %w", len(components), len(coefficients), stats.ErrArgument)
	}
	if len(xs) == 0 {
		return nil, fmt.Errorf("mixture: EM with no observations: %w", stats.ErrArgument)
	}
	if err := stats.CheckWeights(len(xs), weights); err != nil {
		return nil, err
	}
	logarithm := opts != nil && opts.Logarithm
	if logarithm && weights != nil {
		return nil, fmt.Errorf("mixture: log-domain EM does not support weighted observations: %w", stats.ErrArgument)
	}
	total := float64(len(xs))
	if weights != nil {
		total = floats.Sum(weights)
	}
	if !(total > 0) || math.IsInf(total, 0) {
		return nil, fmt.Errorf("mixture: total observation weight is %v: %w", total, stats.ErrArgument)
	}

	e := &estep[X, C]{
		components:   make([]C, len(components)),
		coefficients: append([]float64(nil), coefficients...),
		xs:           xs,
		weights:      weights,
		logarithm:    logarithm,
		parallelism:  1,
		gamma:        make([][]float64, len(components)),
		ll:           make([]float64, len(xs)),
	}
	for k, c := range components {
		e.components[k] = c.Clone()
		e.gamma[k] = make([]float64, len(xs))
	}
	if opts != nil && opts.Parallelism > 1 {
		e.parallelism = opts.Parallelism
	}

	log := opts.Log()
	limit, tol := opts.IterationLimit(), opts.Tolerance()
	cw := make([]float64, len(xs))
	prev := math.NaN()
	iter, converged := 0, false
	for !converged && iter < limit {
		iter++
		if err := e.run(); err != nil {
			return nil, err
		}
		cur := weightedSum(e.ll, weights)

		// M-step.
		for k, c := range e.components {
			for i, g := range e.gamma[k] {
				cw[i] = g
				if weights != nil {
					cw[i] *= weights[i]
				}
			}
			t := floats.Sum(cw)
			e.coefficients[k] = t / total
			if t == 0 {
				// Nothing is attributed to this component.
				continue
			}
			floats.Scale(1/t, cw)
			if err := c.Fit(xs, cw, opts.InnerOptions()); err != nil {
				return nil, fmt.Errorf("mixture: fitting component %d in EM iteration %d: %w", k, iter, err)
			}
		}

		delta := math.Abs(cur - prev)
		log.Debug("EM iteration", "iteration", iter, "logLikelihood", cur, "delta", delta)
		converged = delta <= tol*math.Abs(prev)
		prev = cur
	}

	if err := e.run(); err != nil {
		return nil, err
	}
	res := &Result[C]{e.components, e.coefficients, weightedSum(e.ll, weights), iter}
	log.Info("EM finished", "iterations", iter, "converged", converged, "logLikelihood", res.LogLikelihood)
	if opts != nil {
		opts.Iterations = iter
	}
	return res, nil
}

// estep holds the state of the E-step.
type estep[X any, C Component[X, C]] struct {
	components   []C
	coefficients []float64
	xs           []X
	weights      []float64
	logarithm    bool
	parallelism  int

	// gamma[k][i] is the responsibility of component k for
	// observation i.
	gamma [][]float64
	// ll[i] is the log density of observation i.
	ll []float64
}

// run computes gamma and ll from the current components and
// coefficients.
func (e *estep[X, C]) run() error {
	n := len(e.xs)
	if e.parallelism <= 1 || n < 2*e.parallelism {
		return e.chunk(0, n)
	}
	var g errgroup.Group
	size := (n + e.parallelism - 1) / e.parallelism
	for lo := 0; lo < n; lo += size {
		hi := min(lo+size, n)
		g.Go(func() error {
			return e.chunk(lo, hi)
		})
	}
	return g.Wait()
}

// chunk computes the E-step for observations [lo, hi).
func (e *estep[X, C]) chunk(lo, hi int) error {
	buf := make([]float64, len(e.components))
	for i := lo; i < hi; i++ {
		if e.weights != nil && e.weights[i] == 0 {
			for k := range e.gamma {
				e.gamma[k][i] = 0
			}
			e.ll[i] = 0
			continue
		}

		var ll float64
		if e.logarithm {
			ll = logPDF(e.components, e.coefficients, e.xs[i], buf)
			if !math.IsInf(ll, -1) {
				for k, l := range buf {
					buf[k] = math.Exp(l - ll)
				}
			}
		} else {
			sum := 0.0
			for k, c := range e.components {
				buf[k] = 0
				if e.coefficients[k] != 0 {
					buf[k] = e.coefficients[k] * c.PDF(e.xs[i])
				}
				sum += buf[k]
			}
			ll = math.Log(sum)
			if sum > 0 {
				floats.Scale(1/sum, buf)
			}
		}
		if math.IsInf(ll, -1) || math.IsNaN(ll) {
			return fmt.Errorf("mixture: observation %d (%v) has zero density under every component: %w", i, e.xs[i], stats.ErrDomain)
		}
		for k, g := range buf {
			e.gamma[k][i] = g
		}
		e.ll[i] = ll
	}
	return nil
}

// weightedSum returns Σ weights[i] * xs[i], skipping zero weights, or
// Σ xs[i] if weights is nil.
func weightedSum(xs, weights []float64) float64 {
	if weights == nil {
		return floats.Sum(xs)
	}
	sum := 0.0
	for i, x := range xs {
		if weights[i] != 0 {
			sum += weights[i] * x
		}
	}
	return sum
}
