// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stats implements univariate probability distributions.
//
// A concrete distribution is a model that supplies unchecked density
// and cumulative functions over its support (see ContinuousModel and
// DiscreteModel). Continuous and Discrete wrap a model and provide the
// public, validated contract on top of it: input checking, boundary
// handling, numerical quantiles, memoized summary statistics,
// fitting, and sampling.
//
// Query methods such as PDF, CDF and InvCDF panic with an error
// wrapping one of ErrDomain, ErrRange or ErrInternal when their
// contract is violated. Fit and the constructors that can fail return
// errors instead.
package stats // import "github.com/aclements/go-probdist/stats"

import "math"

var inf = math.Inf(1)
var nan = math.NaN()
