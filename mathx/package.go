// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mathx provides numeric intervals and the bounded search
// routines (root finding, maximization, series summation) used by the
// distribution packages.
package mathx // import "github.com/aclements/go-probdist/mathx"

import (
	"errors"
	"math"
)

var inf = math.Inf(1)
var nan = math.NaN()

var (
	// ErrNotBracketed is returned by FindRoot if f has the same
	// sign at both ends of the search interval.
	ErrNotBracketed = errors.New("root is not bracketed")

	// ErrNoConvergence is returned by FindRoot if the search
	// did not reach the requested tolerance.
	ErrNoConvergence = errors.New("root search did not converge")
)
