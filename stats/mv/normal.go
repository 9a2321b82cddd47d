// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mv

import (
	"fmt"
	"math/rand"

	"github.com/aclements/go-probdist/mathx"
	"github.com/aclements/go-probdist/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distmv"
)

// NormalOptions are model options for fitting a multivariate normal
// distribution, passed through stats.FitOptions.Model.
type NormalOptions struct {
	// Regularization is added to the diagonal of the fitted
	// covariance matrix.
	Regularization float64
}

// normalModel is a multivariate normal distribution. Density math is
// provided by gonum's distmv.
type normalModel struct {
	mu    []float64
	sigma *mat.SymDense
	d     *distmv.Normal
	chol  mat.Cholesky
}

// NewNormal returns the multivariate normal distribution with mean mu
// and covariance matrix sigma. It fails with stats.ErrArgument if the
// dimensions disagree or sigma is not positive definite.
func NewNormal(mu []float64, sigma mat.Symmetric) (*Continuous, error) {
	m := &normalModel{}
	if err := m.set(mu, sigma); err != nil {
		return nil, err
	}
	return NewContinuous(m), nil
}

func (m *normalModel) set(mu []float64, sigma mat.Symmetric) error {
	if len(mu) == 0 || sigma.SymmetricDim() != len(mu) {
		return fmt.Errorf("mv: normal with %d-vector mean and %d×%d covariance: %w", len(mu), sigma.SymmetricDim(), sigma.SymmetricDim(), stats.ErrArgument)
	}
	var chol mat.Cholesky
	if !chol.Factorize(sigma) {
		return fmt.Errorf("mv: normal covariance is not positive definite: %w", stats.ErrArgument)
	}
	d, ok := distmv.NewNormal(mu, sigma, nil)
	if !ok {
		return fmt.Errorf("mv: normal covariance is not positive definite: %w", stats.ErrArgument)
	}
	m.mu = append([]float64(nil), mu...)
	m.sigma = mat.NewSymDense(len(mu), nil)
	m.sigma.CopySym(sigma)
	m.d, m.chol = d, chol
	return nil
}

func (m *normalModel) String() string {
	return fmt.Sprintf("Normal(μ=%v, Σ=%v)", m.mu, mat.Formatted(m.sigma, mat.Squeeze()))
}

func (m *normalModel) Dimension() int                  { return len(m.mu) }
func (m *normalModel) Support() []mathx.Range          { return nil }
func (m *normalModel) InnerPDF(x []float64) float64    { return m.d.Prob(x) }
func (m *normalModel) InnerLogPDF(x []float64) float64 { return m.d.LogProb(x) }
func (m *normalModel) Mean() []float64                 { return append([]float64(nil), m.mu...) }

func (m *normalModel) Covariance() *mat.SymDense {
	c := mat.NewSymDense(len(m.mu), nil)
	c.CopySym(m.sigma)
	return c
}

// Rand returns mu + Uᵀz, where Σ = UᵀU and z is standard normal.
func (m *normalModel) Rand(r *rand.Rand) []float64 {
	n := len(m.mu)
	z := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		if r == nil {
			z.SetVec(i, rand.NormFloat64())
		} else {
			z.SetVec(i, r.NormFloat64())
		}
	}
	var x mat.VecDense
	x.MulVec(m.chol.RawU().T(), z)
	x.AddVec(&x, mat.NewVecDense(n, m.mu))
	return x.RawVector().Data
}

// Fit sets the mean and covariance to their weighted maximum
// likelihood estimates.
func (m *normalModel) Fit(xs [][]float64, weights []float64, opts *stats.FitOptions) error {
	n := len(m.mu)
	if len(xs) == 0 {
		return fmt.Errorf("mv: fitting normal to no observations: %w", stats.ErrArgument)
	}
	total := float64(len(xs))
	if weights != nil {
		total = floats.Sum(weights)
	}
	if total == 0 {
		return fmt.Errorf("mv: fitting normal with zero total weight: %w", stats.ErrArgument)
	}

	x := mat.NewDense(len(xs), n, nil)
	for i, xi := range xs {
		x.SetRow(i, xi)
	}
	mu := make([]float64, n)
	for j := range mu {
		mu[j] = stat.Mean(mat.Col(nil, j, x), weights)
	}

	// stat.CovarianceMatrix normalizes by the total weight minus
	// one. Rescaling the weights to total 2 makes that the sum of
	// weighted squares, and halving it gives the maximum
	// likelihood estimate.
	w := make([]float64, len(xs))
	for i := range w {
		if weights == nil {
			w[i] = 2 / total
		} else {
			w[i] = 2 * weights[i] / total
		}
	}
	cov := mat.NewSymDense(n, nil)
	stat.CovarianceMatrix(cov, x, w)
	cov.ScaleSym(0.5, cov)
	if o, ok := opts.ModelOptions().(NormalOptions); ok {
		for i := 0; i < n; i++ {
			cov.SetSym(i, i, cov.At(i, i)+o.Regularization)
		}
	}
	return m.set(mu, cov)
}

func (m *normalModel) Clone() ContinuousModel {
	c := *m
	return &c
}
