// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mixture implements finite mixture distributions and fits
// them to observations by expectation-maximization.
//
// A Mixture is generic over the observation type and the component
// distribution type. Univariate and Multivariate wrap a Mixture of
// *stats.Continuous or *mv.Continuous components in the validated
// distribution types of those packages.
package mixture
