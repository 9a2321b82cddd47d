// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import "log/slog"

// Defaults used for the zero values of FitOptions fields.
const (
	DefaultMaxIterations = 1000
	DefaultThreshold     = 1e-5
)

// FitOptions configures fitting a distribution to observations.
//
// The zero value (and a nil *FitOptions) is a reasonable default
// configuration. Fitting never modifies a FitOptions except to report
// the number of iterations performed in Iterations.
type FitOptions struct {
	// MaxIterations limits the number of iterations of iterative
	// estimators such as expectation-maximization. If zero,
	// DefaultMaxIterations is used.
	MaxIterations int

	// Threshold is the relative change in log-likelihood below
	// which an iterative estimator is considered converged. If
	// zero, DefaultThreshold is used.
	Threshold float64

	// Logarithm selects the log-domain variant of iterative
	// estimators. This is more stable numerically but does not
	// support weighted observations.
	Logarithm bool

	// Parallelism is the number of goroutines used to compute
	// independent per-observation terms. Values <= 1 compute them
	// serially.
	Parallelism int

	// Inner holds the options used to fit nested distributions,
	// such as the components of a mixture.
	Inner *FitOptions

	// Model holds options specific to a distribution model, such
	// as NormalOptions.
	Model any

	// Logger, if non-nil, receives progress records from
	// iterative estimators.
	Logger *slog.Logger

	// Iterations is set to the number of iterations performed by
	// an iterative estimator.
	Iterations int
}

// IterationLimit returns the effective MaxIterations.
func (o *FitOptions) IterationLimit() int {
	if o == nil || o.MaxIterations <= 0 {
		return DefaultMaxIterations
	}
	return o.MaxIterations
}

// Tolerance returns the effective Threshold.
func (o *FitOptions) Tolerance() float64 {
	if o == nil || o.Threshold <= 0 {
		return DefaultThreshold
	}
	return o.Threshold
}

// InnerOptions returns o.Inner, or nil if o is nil.
func (o *FitOptions) InnerOptions() *FitOptions {
	if o == nil {
		return nil
	}
	return o.Inner
}

// ModelOptions returns o.Model, or nil if o is nil.
func (o *FitOptions) ModelOptions() any {
	if o == nil {
		return nil
	}
	return o.Model
}

// Log returns o.Logger, or a logger that discards everything.
func (o *FitOptions) Log() *slog.Logger {
	if o == nil || o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}
