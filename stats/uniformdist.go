// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/aclements/go-probdist/mathx"
)

// uniformModel is the continuous uniform distribution on [a, b].
type uniformModel struct {
	a, b float64
}

// NewUniform returns the uniform distribution on [a, b], a < b.
func NewUniform(a, b float64) *Continuous {
	if !(a < b) || math.IsInf(a, 0) || math.IsInf(b, 0) {
		panic(fmt.Errorf("stats: uniform on [%v, %v]: %w", a, b, ErrArgument))
	}
	return NewContinuous(&uniformModel{a, b})
}

func (u *uniformModel) String() string {
	return fmt.Sprintf("Uniform(%g, %g)", u.a, u.b)
}

func (u *uniformModel) Support() mathx.Range {
	return mathx.Range{Min: u.a, Max: u.b}
}

func (u *uniformModel) InnerPDF(x float64) float64 {
	return 1 / (u.b - u.a)
}

func (u *uniformModel) InnerCDF(x float64) float64 {
	return (x - u.a) / (u.b - u.a)
}

func (u *uniformModel) InnerInvCDF(p float64) float64 {
	return u.a + p*(u.b-u.a)
}

func (u *uniformModel) Mean() float64     { return (u.a + u.b) / 2 }
func (u *uniformModel) Mode() float64     { return (u.a + u.b) / 2 }
func (u *uniformModel) Variance() float64 { return (u.b - u.a) * (u.b - u.a) / 12 }

func (u *uniformModel) Rand(r *rand.Rand) float64 {
	var y float64
	if r == nil {
		y = rand.Float64()
	} else {
		y = r.Float64()
	}
	return u.a + y*(u.b-u.a)
}

// Fit sets [a, b] to the range of the observations with non-zero
// weight.
func (u *uniformModel) Fit(xs, weights []float64, opts *FitOptions) error {
	a, b := inf, -inf
	for i, x := range xs {
		if weights != nil && weights[i] == 0 {
			continue
		}
		a, b = math.Min(a, x), math.Max(b, x)
	}
	if !(a < b) {
		return fmt.Errorf("stats: fitting uniform: empty range [%v, %v]: %w", a, b, ErrArgument)
	}
	u.a, u.b = a, b
	return nil
}

func (u *uniformModel) Clone() ContinuousModel {
	c := *u
	return &c
}
