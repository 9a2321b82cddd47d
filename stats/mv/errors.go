// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mv

import (
	"fmt"
	"math"

	"github.com/aclements/go-probdist/stats"
)

// checkVector panics unless x has dimension n and no NaN components.
func checkVector(op string, x []float64, n int) {
	if len(x) != n {
		panic(fmt.Errorf("mv: %s of %d-vector in %d dimensions: %w", op, len(x), n, stats.ErrArgument))
	}
	for i, xi := range x {
		if math.IsNaN(xi) {
			panic(fmt.Errorf("mv: %s: component %d is NaN: %w", op, i, stats.ErrDomain))
		}
	}
}

func checkIntVector(op string, k []int, n int) {
	if len(k) != n {
		panic(fmt.Errorf("mv: %s of %d-vector in %d dimensions: %w", op, len(k), n, stats.ErrArgument))
	}
}

func internalError(op string, x any, y float64) error {
	return fmt.Errorf("mv: %s(%v) = %v: %w", op, x, y, stats.ErrInternal)
}

// checkObservations validates vector observations for fitting.
func checkObservations(xs [][]float64, weights []float64, n int) error {
	if err := stats.CheckWeights(len(xs), weights); err != nil {
		return err
	}
	for i, x := range xs {
		if len(x) != n {
			return fmt.Errorf("mv: observation %d has dimension %d, want %d: %w", i, len(x), n, stats.ErrArgument)
		}
		for _, xi := range x {
			if math.IsNaN(xi) {
				return fmt.Errorf("mv: observation %d has a NaN component: %w", i, stats.ErrDomain)
			}
		}
	}
	return nil
}
