// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kernel estimates bandwidths for similarity kernels from
// data, for use by kernel machines such as support vector machines.
package kernel

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/aclements/go-probdist/mathx"
	"github.com/aclements/go-probdist/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Gaussian is the Gaussian (radial basis function) kernel
// exp(-‖x-y‖² / (2σ²)).
type Gaussian struct {
	Sigma float64
}

// Function returns the kernel similarity of x and y.
func (g Gaussian) Function(x, y []float64) float64 {
	d := floats.Distance(x, y, 2)
	return math.Exp(-d * d / (2 * g.Sigma * g.Sigma))
}

// Distance returns the distance between x and y in the feature space
// induced by g, which is 2 - 2 Function(x, y).
func (g Gaussian) Distance(x, y []float64) float64 {
	return 2 - 2*g.Function(x, y)
}

// EstimateGaussian estimates a Gaussian kernel bandwidth for inputs
// from the Euclidean distances between every pair of a random subset
// of samples inputs. Sigma is the median distance, and the returned
// range spans the 10th to 90th percentile distances, which bounds a
// reasonable search for the best sigma. If samples <= 0 or exceeds
// len(inputs), all inputs are used. If r is nil, it uses the global
// source.
//
// EstimateGaussian fails with stats.ErrArgument if there are fewer
// than two inputs or they differ in dimension.
func EstimateGaussian(inputs [][]float64, samples int, r *rand.Rand) (Gaussian, mathx.Range, error) {
	if samples <= 0 || samples > len(inputs) {
		samples = len(inputs)
	}
	if samples < 2 {
		return Gaussian{}, mathx.Range{}, fmt.Errorf("kernel: estimating bandwidth from %d inputs: %w", samples, stats.ErrArgument)
	}
	for i, x := range inputs {
		if len(x) != len(inputs[0]) {
			return Gaussian{}, mathx.Range{}, fmt.Errorf("kernel: input %d has dimension %d, want %d: %w", i, len(x), len(inputs[0]), stats.ErrArgument)
		}
	}

	var idx []int
	if r == nil {
		idx = rand.Perm(len(inputs))
	} else {
		idx = r.Perm(len(inputs))
	}
	idx = idx[:samples]

	ds := make([]float64, 0, samples*(samples-1)/2)
	for i, a := range idx {
		for _, b := range idx[:i] {
			ds = append(ds, floats.Distance(inputs[a], inputs[b], 2))
		}
	}
	s := stats.Sample{Xs: ds}
	s.Sort()
	g := Gaussian{Sigma: s.Quantile(0.5)}
	return g, mathx.Range{Min: s.Quantile(0.1), Max: s.Quantile(0.9)}, nil
}

// EstimateGaussianMatrix is EstimateGaussian for inputs given as the
// rows of a matrix.
func EstimateGaussianMatrix(inputs mat.Matrix, samples int, r *rand.Rand) (Gaussian, mathx.Range, error) {
	n, _ := inputs.Dims()
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = mat.Row(nil, i, inputs)
	}
	return EstimateGaussian(rows, samples, r)
}

// Bandwidth1D returns a kernel bandwidth for one-dimensional data xs
// by Scott's rule.
func Bandwidth1D(xs []float64) float64 {
	return stats.BandwidthScott(stats.Sample{Xs: xs})
}
