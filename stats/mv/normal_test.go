// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mv

import (
	"math"
	"math/rand"
	"testing"

	"github.com/aclements/go-probdist/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNormalDiagonal(t *testing.T) {
	d, err := NewNormal([]float64{1, -1}, mat.NewSymDense(2, []float64{4, 0, 0, 1}))
	require.NoError(t, err)
	ind := NewIndependent(stats.NewNormal(1, 2), stats.NewNormal(-1, 1))
	for _, x := range [][]float64{{0, 0}, {1, -1}, {3, 2}} {
		assert.InDelta(t, ind.PDF(x), d.PDF(x), 1e-14)
		assert.InDelta(t, ind.LogPDF(x), d.LogPDF(x), 1e-12)
	}
	assert.Equal(t, []float64{4, 1}, d.Variance())
}

func TestNormalErrors(t *testing.T) {
	_, err := NewNormal([]float64{0, 0}, mat.NewSymDense(2, []float64{1, 2, 2, 1}))
	assert.ErrorIs(t, err, stats.ErrArgument)
	_, err = NewNormal([]float64{0}, mat.NewSymDense(2, nil))
	assert.ErrorIs(t, err, stats.ErrArgument)
}

func TestNormalRand(t *testing.T) {
	sigma := mat.NewSymDense(2, []float64{2, 0.8, 0.8, 1})
	d, err := NewNormal([]float64{3, -2}, sigma)
	require.NoError(t, err)

	xs := d.Generate(20000, rand.New(rand.NewSource(1)))
	fit, err := NewNormal([]float64{0, 0}, mat.NewSymDense(2, []float64{1, 0, 0, 1}))
	require.NoError(t, err)
	require.NoError(t, fit.Fit(xs, nil, nil))
	assert.InDelta(t, 3, fit.Mean()[0], 0.05)
	assert.InDelta(t, -2, fit.Mean()[1], 0.05)
	cov := fit.Covariance()
	assert.InDelta(t, 2, cov.At(0, 0), 0.1)
	assert.InDelta(t, 0.8, cov.At(0, 1), 0.05)
	assert.InDelta(t, 1, cov.At(1, 1), 0.05)
}

func TestNormalFitWeighted(t *testing.T) {
	d, err := NewNormal([]float64{0, 0}, mat.NewSymDense(2, []float64{1, 0, 0, 1}))
	require.NoError(t, err)
	xs := [][]float64{{0, 0}, {2, 0}, {0, 2}, {2, 2}}

	// Weights that sum to 1 give the maximum likelihood estimate.
	require.NoError(t, d.Fit(xs, []float64{0.25, 0.25, 0.25, 0.25}, nil))
	assert.InDeltaSlice(t, []float64{1, 1}, d.Mean(), 1e-12)
	assert.InDelta(t, 1, d.Covariance().At(0, 0), 1e-12)
	assert.InDelta(t, 0, d.Covariance().At(0, 1), 1e-12)

	// Perfectly correlated data needs regularization.
	assert.ErrorIs(t, d.Fit(xs, []float64{1, 0, 0, 1}, nil), stats.ErrArgument)
	opts := &stats.FitOptions{Model: NormalOptions{Regularization: 1e-3}}
	require.NoError(t, d.Fit(xs, []float64{1, 0, 0, 1}, opts))
	assert.InDeltaSlice(t, []float64{1, 1}, d.Mean(), 1e-12)
	assert.InDelta(t, 1.001, d.Covariance().At(0, 0), 1e-12)
	assert.InDelta(t, 1, d.Covariance().At(0, 1), 1e-12)

	require.NoError(t, d.Fit([][]float64{{1, 1}, {1, 1}}, nil, opts))
	assert.InDelta(t, 1e-3, d.Variance()[0], 1e-15)
	assert.ErrorIs(t, d.Fit([][]float64{{1, 1}, {1, 1}}, nil, nil), stats.ErrArgument)
}

func TestMatrixNormal(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	u := mat.NewSymDense(2, []float64{2, 0.5, 0.5, 1})
	v := mat.NewSymDense(3, []float64{1, 0.2, 0, 0.2, 1, 0.1, 0, 0.1, 1})
	d, err := NewMatrixNormal(m, u, v)
	require.NoError(t, err)
	r, c := d.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.True(t, mat.Equal(m, d.Mean()))

	// The density is that of the flattened vector under U ⊗ V.
	var k mat.Dense
	k.Kronecker(u, v)
	sigma := mat.NewSymDense(6, nil)
	for i := 0; i < 6; i++ {
		for j := i; j < 6; j++ {
			sigma.SetSym(i, j, k.At(i, j))
		}
	}
	vec, err := NewNormal(Flatten(m), sigma)
	require.NoError(t, err)
	x := mat.NewDense(2, 3, []float64{0, 2, 3, 5, 5, 7})
	assert.InDelta(t, vec.LogPDF(Flatten(x)), d.LogPDF(x), 1e-12)
	assert.InDelta(t, vec.PDF(Flatten(x)), d.Vector().PDF(Flatten(x)), 1e-15)

	// The vector view uses the matrix model's closed forms.
	assert.Equal(t, Flatten(m), d.Vector().Mean())
	assert.True(t, mat.EqualApprox(sigma, d.Vector().Covariance(), 1e-15))
	assert.True(t, mat.EqualApprox(sigma, d.Covariance(), 1e-15))
	want := Flatten(d.Rand(rand.New(rand.NewSource(7))))
	assert.Equal(t, want, d.Vector().Rand(rand.New(rand.NewSource(7))))

	expectPanic(t, stats.ErrArgument, func() { d.PDF(mat.NewDense(3, 2, nil)) })
	assert.ErrorIs(t, d.Fit([]mat.Matrix{x}, nil, nil), stats.ErrUnsupported)

	for _, s := range d.Generate(10, rand.New(rand.NewSource(1))) {
		sr, sc := s.Dims()
		require.Equal(t, 2, sr)
		require.Equal(t, 3, sc)
	}

	_, err = NewMatrixNormal(m, v, u)
	assert.ErrorIs(t, err, stats.ErrArgument)
}

// densityOnlyMatrix is a 1×2 matrix of independent standard normals
// that only knows its density.
type densityOnlyMatrix struct{}

func (densityOnlyMatrix) Rows() int { return 1 }
func (densityOnlyMatrix) Cols() int { return 2 }
func (densityOnlyMatrix) InnerPDF(x mat.Matrix) float64 {
	a, b := x.At(0, 0), x.At(0, 1)
	return math.Exp(-(a*a+b*b)/2) / (2 * math.Pi)
}

func TestMatrixFallbacks(t *testing.T) {
	d := NewMatrix(densityOnlyMatrix{})
	mean := d.Mean()
	assert.InDelta(t, 0, mean.At(0, 0), 0.15)
	assert.InDelta(t, 0, mean.At(0, 1), 0.15)
	assert.Equal(t, Flatten(mean), d.Vector().Mean())
	cov := d.Covariance()
	assert.InDelta(t, 1, cov.At(0, 0), 0.2)
	assert.InDelta(t, 0, cov.At(0, 1), 0.15)
	x := d.Rand(rand.New(rand.NewSource(1)))
	rows, cols := x.Dims()
	assert.Equal(t, 1, rows)
	assert.Equal(t, 2, cols)
}

func TestReshape(t *testing.T) {
	m := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, Flatten(m))
	assert.True(t, mat.Equal(m, Reshape(Flatten(m), 3, 2)))
	assert.True(t, mat.Equal(m.T(), Reshape(Flatten(m.T()), 2, 3)))
	expectPanic(t, stats.ErrArgument, func() { Reshape([]float64{1, 2, 3}, 2, 2) })
}
