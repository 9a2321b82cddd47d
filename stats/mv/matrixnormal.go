// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mv

import (
	"fmt"
	"math/rand"

	"github.com/aclements/go-probdist/stats"
	"gonum.org/v1/gonum/mat"
)

// matrixNormalModel is the matrix normal distribution MN(M, U, V).
// Flattened in row-major order, a matrix normal matrix is a
// multivariate normal vector with mean Flatten(M) and covariance
// U ⊗ V.
type matrixNormalModel struct {
	mean *mat.Dense
	vec  *normalModel
}

// NewMatrixNormal returns the matrix normal distribution with r×c
// mean m, r×r among-row covariance u, and c×c among-column covariance
// v. It fails with stats.ErrArgument if the shapes disagree or either
// covariance is not positive definite.
func NewMatrixNormal(m mat.Matrix, u, v mat.Symmetric) (*Matrix, error) {
	r, c := m.Dims()
	if u.SymmetricDim() != r || v.SymmetricDim() != c {
		return nil, fmt.Errorf("mv: matrix normal with %d×%d mean, %d×%d row covariance and %d×%d column covariance: %w",
			r, c, u.SymmetricDim(), u.SymmetricDim(), v.SymmetricDim(), v.SymmetricDim(), stats.ErrArgument)
	}
	var k mat.Dense
	k.Kronecker(u, v)
	sigma := mat.NewSymDense(r*c, nil)
	for i := 0; i < r*c; i++ {
		for j := i; j < r*c; j++ {
			sigma.SetSym(i, j, k.At(i, j))
		}
	}
	vec := &normalModel{}
	if err := vec.set(Flatten(m), sigma); err != nil {
		return nil, err
	}
	return NewMatrix(&matrixNormalModel{mat.DenseCopyOf(m), vec}), nil
}

func (m *matrixNormalModel) String() string {
	r, c := m.mean.Dims()
	return fmt.Sprintf("MatrixNormal(%d×%d)", r, c)
}

func (m *matrixNormalModel) Rows() int {
	r, _ := m.mean.Dims()
	return r
}

func (m *matrixNormalModel) Cols() int {
	_, c := m.mean.Dims()
	return c
}

func (m *matrixNormalModel) InnerPDF(x mat.Matrix) float64 {
	return m.vec.InnerPDF(Flatten(x))
}

func (m *matrixNormalModel) InnerLogPDF(x mat.Matrix) float64 {
	return m.vec.InnerLogPDF(Flatten(x))
}

func (m *matrixNormalModel) Mean() *mat.Dense {
	return mat.DenseCopyOf(m.mean)
}

// Covariance returns U ⊗ V.
func (m *matrixNormalModel) Covariance() *mat.SymDense {
	return m.vec.Covariance()
}

func (m *matrixNormalModel) Rand(r *rand.Rand) *mat.Dense {
	return Reshape(m.vec.Rand(r), m.Rows(), m.Cols())
}
