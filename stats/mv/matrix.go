// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mv

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/aclements/go-probdist/internal/memo"
	"github.com/aclements/go-probdist/mathx"
	"github.com/aclements/go-probdist/stats"
	"gonum.org/v1/gonum/mat"
)

// A MatrixModel supplies the unchecked primitives of a continuous
// distribution over Rows()×Cols() matrices. InnerPDF is only called
// with matrices of the right shape that have no NaN elements.
type MatrixModel interface {
	Rows() int
	Cols() int
	InnerPDF(x mat.Matrix) float64
}

// Optional capabilities of a MatrixModel.
type (
	MatrixLogPDFModel interface {
		InnerLogPDF(x mat.Matrix) float64
	}

	MatrixMeanModel interface {
		Mean() *mat.Dense
	}

	// MatrixCovarianceModel has a closed-form covariance of the
	// matrix elements flattened in row-major order.
	MatrixCovarianceModel interface {
		Covariance() *mat.SymDense
	}

	MatrixRandModel interface {
		Rand(r *rand.Rand) *mat.Dense
	}

	MatrixFitModel interface {
		Fit(xs []mat.Matrix, weights []float64, opts *stats.FitOptions) error
	}
)

// Matrix is a continuous distribution over matrices.
//
// A Matrix is equivalent to a multivariate distribution over its
// elements flattened in row-major order, which Vector returns.
type Matrix struct {
	model  MatrixModel
	vector *Continuous

	mean       memo.Cell[*mat.Dense]
	covariance memo.Cell[*mat.SymDense]
}

// NewMatrix returns the distribution implemented by m.
func NewMatrix(m MatrixModel) *Matrix {
	d := &Matrix{model: m}
	d.vector = NewContinuous(matrixVectorModel{d})
	return d
}

func (d *Matrix) String() string {
	if s, ok := d.model.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("Matrix(%T)", d.model)
}

// Dims returns the shape of d's matrices.
func (d *Matrix) Dims() (r, c int) {
	return d.model.Rows(), d.model.Cols()
}

func (d *Matrix) check(op string, x mat.Matrix) {
	r, c := x.Dims()
	if r != d.model.Rows() || c != d.model.Cols() {
		panic(fmt.Errorf("mv: %s of %d×%d matrix in %d×%d distribution: %w", op, r, c, d.model.Rows(), d.model.Cols(), stats.ErrArgument))
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if math.IsNaN(x.At(i, j)) {
				panic(fmt.Errorf("mv: %s: element (%d, %d) is NaN: %w", op, i, j, stats.ErrDomain))
			}
		}
	}
}

// PDF returns the probability density of d at x. It panics with
// stats.ErrArgument if x has the wrong shape.
func (d *Matrix) PDF(x mat.Matrix) float64 {
	d.check("PDF", x)
	y := d.model.InnerPDF(x)
	if math.IsNaN(y) || y < 0 {
		panic(internalError("PDF", mat.Formatted(x, mat.Squeeze()), y))
	}
	return y
}

// LogPDF returns the log of the density of d at x.
func (d *Matrix) LogPDF(x mat.Matrix) float64 {
	d.check("LogPDF", x)
	var y float64
	if m, ok := d.model.(MatrixLogPDFModel); ok {
		y = m.InnerLogPDF(x)
	} else {
		y = math.Log(d.model.InnerPDF(x))
	}
	if math.IsNaN(y) {
		panic(internalError("LogPDF", mat.Formatted(x, mat.Squeeze()), y))
	}
	return y
}

// Mean returns the mean matrix of d. The result must not be modified.
func (d *Matrix) Mean() *mat.Dense {
	return d.mean.Get(func() *mat.Dense {
		if m, ok := d.model.(MatrixMeanModel); ok {
			return m.Mean()
		}
		return Reshape(d.vector.Mean(), d.model.Rows(), d.model.Cols())
	})
}

// Covariance returns the covariance matrix of d's elements flattened
// in row-major order. The result must not be modified.
func (d *Matrix) Covariance() *mat.SymDense {
	return d.covariance.Get(func() *mat.SymDense {
		return d.vector.Covariance()
	})
}

// Rand returns a random matrix drawn from d.
func (d *Matrix) Rand(r *rand.Rand) *mat.Dense {
	if m, ok := d.model.(MatrixRandModel); ok {
		return m.Rand(r)
	}
	return Reshape(d.vector.Rand(r), d.model.Rows(), d.model.Cols())
}

// Generate returns n random matrices drawn from d.
func (d *Matrix) Generate(n int, r *rand.Rand) []*mat.Dense {
	xs := make([]*mat.Dense, n)
	for i := range xs {
		xs[i] = d.Rand(r)
	}
	return xs
}

// Fit re-estimates d's parameters from matrix observations.
func (d *Matrix) Fit(xs []mat.Matrix, weights []float64, opts *stats.FitOptions) error {
	m, ok := d.model.(MatrixFitModel)
	if !ok {
		return fmt.Errorf("mv: fitting %v: %w", d, stats.ErrUnsupported)
	}
	if err := stats.CheckWeights(len(xs), weights); err != nil {
		return err
	}
	for i, x := range xs {
		if r, c := x.Dims(); r != d.model.Rows() || c != d.model.Cols() {
			return fmt.Errorf("mv: observation %d is %d×%d, want %d×%d: %w", i, r, c, d.model.Rows(), d.model.Cols(), stats.ErrArgument)
		}
	}
	defer d.reset()
	return m.Fit(xs, weights, opts)
}

// FitObservations fits d to Matrices.
func (d *Matrix) FitObservations(obs stats.Observations, weights []float64, opts *stats.FitOptions) error {
	xs, ok := obs.(stats.Matrices)
	if !ok {
		return stats.UnsupportedObservations(obs)
	}
	return d.Fit(xs, weights, opts)
}

func (d *Matrix) reset() {
	d.mean.Reset()
	d.covariance.Reset()
	d.vector.reset()
}

// Vector returns d as a multivariate distribution over row-major
// flattened matrices.
func (d *Matrix) Vector() *Continuous {
	return d.vector
}

// matrixVectorModel views a Matrix as a ContinuousModel.
type matrixVectorModel struct {
	d *Matrix
}

func (m matrixVectorModel) String() string {
	return fmt.Sprintf("Vector(%v)", m.d)
}

func (m matrixVectorModel) Dimension() int {
	return m.d.model.Rows() * m.d.model.Cols()
}

func (m matrixVectorModel) Support() []mathx.Range { return nil }

func (m matrixVectorModel) reshape(x []float64) *mat.Dense {
	return Reshape(x, m.d.model.Rows(), m.d.model.Cols())
}

func (m matrixVectorModel) InnerPDF(x []float64) float64 {
	return m.d.model.InnerPDF(m.reshape(x))
}

func (m matrixVectorModel) InnerLogPDF(x []float64) float64 {
	if lm, ok := m.d.model.(MatrixLogPDFModel); ok {
		return lm.InnerLogPDF(m.reshape(x))
	}
	return math.Log(m.InnerPDF(x))
}

// Mean, Covariance and Rand forward to the matrix model when it has
// closed forms, so the vector view agrees exactly with the matrix
// view. Otherwise they fall back to the vector distribution's
// estimates and sampler.

func (m matrixVectorModel) Mean() []float64 {
	if mm, ok := m.d.model.(MatrixMeanModel); ok {
		return Flatten(mm.Mean())
	}
	return m.d.vector.estimateMean()
}

func (m matrixVectorModel) Covariance() *mat.SymDense {
	if cm, ok := m.d.model.(MatrixCovarianceModel); ok {
		return cm.Covariance()
	}
	return m.d.vector.estimateCovariance()
}

func (m matrixVectorModel) Rand(r *rand.Rand) []float64 {
	if rm, ok := m.d.model.(MatrixRandModel); ok {
		return Flatten(rm.Rand(r))
	}
	var guess []float64
	if mm, ok := m.d.model.(MatrixMeanModel); ok {
		guess = Flatten(mm.Mean())
	}
	return m.d.vector.sample(r, guess)
}

// Flatten returns the elements of m in row-major order.
func Flatten(m mat.Matrix) []float64 {
	r, c := m.Dims()
	v := make([]float64, 0, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v = append(v, m.At(i, j))
		}
	}
	return v
}

// Reshape returns the r×c matrix whose elements in row-major order
// are v. It is the inverse of Flatten. It panics with
// stats.ErrArgument if len(v) != r*c.
func Reshape(v []float64, r, c int) *mat.Dense {
	if r <= 0 || c <= 0 || len(v) != r*c {
		panic(fmt.Errorf("mv: reshaping %d elements to %d×%d: %w", len(v), r, c, stats.ErrArgument))
	}
	return mat.NewDense(r, c, append([]float64(nil), v...))
}
