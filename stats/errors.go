// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"errors"
	"fmt"
)

var (
	// ErrDomain indicates an argument outside the domain of a
	// function, such as a NaN passed to PDF or CDF.
	ErrDomain = errors.New("argument outside function domain")

	// ErrRange indicates a probability outside [0, 1].
	ErrRange = errors.New("probability outside [0, 1]")

	// ErrArgument indicates malformed arguments, such as slices of
	// mismatched lengths, an unsupported observation shape, or an
	// incompatible combination of options.
	ErrArgument = errors.New("invalid argument")

	// ErrUnsupported indicates that a distribution does not
	// implement the requested operation.
	ErrUnsupported = errors.New("operation not supported")

	// ErrInternal indicates that a distribution model violated its
	// own contract, for example by returning NaN from a density or
	// a cumulative probability outside [0, 1]. This is a bug in the
	// model, not in the caller.
	ErrInternal = errors.New("distribution returned an invalid result")
)

func domainError(op string, x float64) error {
	return fmt.Errorf("stats: %s(%v): %w", op, x, ErrDomain)
}

func rangeError(op string, p float64) error {
	return fmt.Errorf("stats: %s(%v): %w", op, p, ErrRange)
}

func internalError(op string, x, y any) error {
	return fmt.Errorf("stats: %s(%v) = %v: %w", op, x, y, ErrInternal)
}

// CheckWeights returns an error wrapping ErrArgument if weights is
// non-nil and either does not have length n or contains a negative or
// NaN weight.
func CheckWeights(n int, weights []float64) error {
	if weights == nil {
		return nil
	}
	if len(weights) != n {
		return fmt.Errorf("stats: %d observations but %d weights: %w", n, len(weights), ErrArgument)
	}
	for i, w := range weights {
		if !(w >= 0) {
			return fmt.Errorf("stats: weight %d is %v: %w", i, w, ErrArgument)
		}
	}
	return nil
}
