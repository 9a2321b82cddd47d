// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mv implements multivariate and matrix-valued probability
// distributions.
//
// As in package stats, each distribution is a validating wrapper
// (Continuous, Discrete, Matrix) over an unchecked model. The wrapper
// checks the dimension of every argument and rejects NaN components
// before the model runs, and memoizes derived statistics until the
// distribution is refit. Errors are the stats sentinels: a wrong
// dimension is stats.ErrArgument and a NaN is stats.ErrDomain.
//
// Distributions whose model has no specialized sampler draw samples
// with a Metropolis-Hastings chain. See NewSampler.
package mv

import "math"

var inf = math.Inf(1)
