// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Observations is a collection of observed values of any shape. It is
// implemented by Scalars, Ints, Vectors and Matrices.
//
// Distributions accept Observations in FitObservations and dispatch on
// the concrete shape, failing with ErrArgument for shapes they cannot
// fit.
type Observations interface {
	// Len returns the number of observations.
	Len() int

	isObservations()
}

// Scalars are real-valued observations.
type Scalars []float64

// Ints are integer-valued observations.
type Ints []int

// Vectors are vector-valued observations.
type Vectors [][]float64

// Matrices are matrix-valued observations.
type Matrices []mat.Matrix

func (o Scalars) Len() int  { return len(o) }
func (o Ints) Len() int     { return len(o) }
func (o Vectors) Len() int  { return len(o) }
func (o Matrices) Len() int { return len(o) }

func (Scalars) isObservations()  {}
func (Ints) isObservations()     {}
func (Vectors) isObservations()  {}
func (Matrices) isObservations() {}

// Column returns the observations as scalars if every vector has
// exactly one element.
func (o Vectors) Column() (Scalars, bool) {
	xs := make(Scalars, len(o))
	for i, v := range o {
		if len(v) != 1 {
			return nil, false
		}
		xs[i] = v[0]
	}
	return xs, true
}

// Floor returns the observations rounded down to integers.
func (o Scalars) Floor() Ints {
	ks := make(Ints, len(o))
	for i, x := range o {
		ks[i] = floorInt(x)
	}
	return ks
}

// Flatten returns each matrix flattened in row-major order.
func (o Matrices) Flatten() Vectors {
	vs := make(Vectors, len(o))
	for i, m := range o {
		r, c := m.Dims()
		v := make([]float64, 0, r*c)
		for j := 0; j < r; j++ {
			for k := 0; k < c; k++ {
				v = append(v, m.At(j, k))
			}
		}
		vs[i] = v
	}
	return vs
}

// UnsupportedObservations returns the error reported when a
// distribution cannot fit observations of o's shape.
func UnsupportedObservations(o Observations) error {
	return fmt.Errorf("stats: unsupported parameter type %T: %w", o, ErrArgument)
}
