// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/aclements/go-probdist/mathx"
)

// KDE represents options for constructing a kernel density estimate.
//
// Kernel density estimation is a method for constructing an estimate
// ƒ̂(x) of a unknown distribution ƒ(x) given a sample from that
// distribution.  Unlike many techniques, kernel density estimation is
// non-parametric: in general, it doesn't assume any particular true
// distribution (note, however, that the resulting distribution
// depends deeply on the selected bandwidth, and many bandwidth
// estimation techniques assume normal reference rules).
//
// A kernel density estimate is similar to a histogram, except that it
// is a smooth probability estimate and does not require choosing a
// bin size and discretizing the data.
//
// To construct a kernel density estimate, create an instance of KDE
// and then use the From method to provide data.
//
// The default (zero) value of KDE is a reasonable default
// configuration.
type KDE struct {
	// Kernel is the kernel to use for the KDE.
	Kernel KDEKernel

	// Bandwidth is the bandwidth to use for the KDE.
	//
	// If this is zero, the bandwidth is computed from the
	// provided data using a default bandwidth estimator
	// (currently BandwidthScott).
	Bandwidth float64

	// BoundaryMethod is the boundary correction method to use for
	// the KDE. The default value is BoundaryReflect; however, the
	// default bounds are effectively +/-inf, which is equivalent
	// to performing no boundary correction.
	BoundaryMethod KDEBoundaryMethod

	// [BoundaryMin, BoundaryMax) specify a bounded support for
	// the KDE. If both are 0 (their default values), they are
	// treated as +/-inf.
	//
	// To specify a half-bounded support, set Min to math.Inf(-1)
	// or Max to math.Inf(1).
	BoundaryMin float64
	BoundaryMax float64
}

// BandwidthSilverman is a bandwidth estimator implementing
// Silverman's Rule of Thumb. It's fast, but not very robust to
// outliers as it assumes data is approximately normal.
//
// Silverman, B. W. (1986) Density Estimation.
func BandwidthSilverman(data interface {
	StdDev() float64
	Weight() float64
}) float64 {
	return 1.06 * data.StdDev() * math.Pow(data.Weight(), -1.0/5)
}

// BandwidthScott is a bandwidth estimator implementing Scott's Rule.
// This is generally robust to outliers: it chooses the minimum
// between the sample's standard deviation and an robust estimator of
// a Gaussian distribution's standard deviation.
//
// Scott, D. W. (1992) Multivariate Density Estimation: Theory,
// Practice, and Visualization.
func BandwidthScott(data interface {
	StdDev() float64
	Weight() float64
	Quantile(float64) float64
}) float64 {
	iqr := data.Quantile(0.75) - data.Quantile(0.25)
	hScale := 1.06 * math.Pow(data.Weight(), -1.0/5)
	stdDev := data.StdDev()
	if stdDev < iqr/1.349 || iqr == 0 {
		// Use Silverman's Rule of Thumb
		return hScale * stdDev
	}
	// Use IQR/1.349 as a robust estimator of the standard
	// deviation of a Gaussian distribution.
	return hScale * (iqr / 1.349)
}

// KDEKernel represents a kernel to use for a KDE.
type KDEKernel int

//go:generate stringer -type=KDEKernel

const (
	GaussianKernel KDEKernel = iota

	// An EpanechnikovKernel is a smooth kernel with bounded
	// support. As a result, the KDE will also have bounded
	// support. It minimizes the asymptotic mean integrated
	// squared error.
	EpanechnikovKernel

	// DeltaKernel is a Dirac delta function.  The PDF of such a
	// KDE is not well-defined, but the CDF will represent each
	// sample as an instantaneous increase.  This kernel ignores
	// bandwidth and never requires boundary correction.
	DeltaKernel
)

// KDEBoundaryMethod represents a boundary correction method for
// constructing a KDE with bounded support.
type KDEBoundaryMethod int

//go:generate stringer -type=KDEBoundaryMethod

const (
	// BoundaryReflect reflects the density estimate at the
	// boundaries.  For example, for a KDE with support [0, inf),
	// this is equivalent to ƒ̂ᵣ(x)=ƒ̂(x)+ƒ̂(-x) for x>=0.  This is a
	// simple and fast technique, but enforces that ƒ̂ᵣ'(0)=0, so
	// it may not be applicable to all distributions.
	BoundaryReflect KDEBoundaryMethod = iota

	// boundaryNone represents no boundary correction.
	//
	// This is used internally when the bounds are -/+inf.
	boundaryNone
)

// From returns the kernel density estimate for the sample s.
//
// The result can be refit to new observations, which re-estimates
// the bandwidth unless k.Bandwidth is set.
func (k KDE) From(s Sample) *Continuous {
	if err := CheckWeights(len(s.Xs), s.Weights); err != nil {
		panic(err)
	}
	m := &kdeModel{cfg: k}
	if err := m.setData(s.Xs, s.Weights); err != nil {
		panic(err)
	}
	return NewContinuous(m)
}

type kdeKernel interface {
	pdfEach(xs []float64) []float64
	cdfEach(xs []float64) []float64
	rand(r *rand.Rand) float64
}

// kdeModel is the ContinuousModel of a kernel density estimate.
type kdeModel struct {
	cfg KDE

	kernel      kdeKernel
	h           float64
	xs, weights []float64
	cum         []float64 // Cumulative weights, for sampling
	bm          KDEBoundaryMethod
	min, max    float64 // Support bounds
	lo, hi      float64 // Data bounds
}

func (kde *kdeModel) setData(xs, weights []float64) error {
	if len(xs) == 0 {
		return fmt.Errorf("stats: KDE of no data: %w", ErrArgument)
	}
	s := Sample{Xs: xs, Weights: weights}
	if s.Weight() == 0 {
		return fmt.Errorf("stats: KDE with zero total weight: %w", ErrArgument)
	}

	// Compute bandwidth
	h := kde.cfg.Bandwidth
	if h == 0 && kde.cfg.Kernel != DeltaKernel {
		h = BandwidthScott(s)
	}

	// Construct kernel
	var kernel kdeKernel
	switch kde.cfg.Kernel {
	default:
		return fmt.Errorf("stats: unknown KDE kernel %v: %w", kde.cfg.Kernel, ErrArgument)
	case GaussianKernel:
		kernel = &normalModel{0, h}
	case EpanechnikovKernel:
		kernel = epanechnikovKernel{h}
	case DeltaKernel:
		kernel = deltaKernel{}
	}
	if kde.cfg.Kernel != DeltaKernel && !(h > 0) {
		return fmt.Errorf("stats: KDE bandwidth %v: %w", h, ErrArgument)
	}

	// Normalize boundaries
	bm := kde.cfg.BoundaryMethod
	min, max := kde.cfg.BoundaryMin, kde.cfg.BoundaryMax
	if min == 0 && max == 0 {
		min, max = math.Inf(-1), math.Inf(1)
	}
	if math.IsInf(min, -1) && math.IsInf(max, 1) {
		bm = boundaryNone
	}
	if bm != boundaryNone && bm != BoundaryReflect {
		return fmt.Errorf("stats: unknown boundary correction method %v: %w", bm, ErrArgument)
	}

	cum := make([]float64, len(xs))
	total := 0.0
	for i := range xs {
		if weights == nil {
			total++
		} else {
			total += weights[i]
		}
		cum[i] = total
	}

	kde.kernel, kde.h = kernel, h
	kde.xs, kde.weights, kde.cum = xs, weights, cum
	kde.bm, kde.min, kde.max = bm, min, max
	kde.lo, kde.hi = s.Bounds()
	return nil
}

func (kde *kdeModel) String() string {
	return fmt.Sprintf("KDE(%v, h=%g, n=%d)", kde.cfg.Kernel, kde.h, len(kde.xs))
}

// Support returns the boundary range, narrowed to the data bounds for
// kernels with bounded support.
func (kde *kdeModel) Support() mathx.Range {
	s := mathx.Range{Min: kde.min, Max: kde.max}
	switch kde.cfg.Kernel {
	case EpanechnikovKernel:
		s.Min = math.Max(s.Min, kde.lo-kde.h)
		s.Max = math.Min(s.Max, kde.hi+kde.h)
	case DeltaKernel:
		s.Min = math.Max(s.Min, kde.lo)
		s.Max = math.Min(s.Max, kde.hi)
	}
	return s
}

// normalizedXs returns x - kde.xs.  Evaluating kernels shifted by
// kde.xs all at x is equivalent to evaluating one unshifted kernel at
// x - kde.xs.
func (kde *kdeModel) normalizedXs(x float64) []float64 {
	txs := make([]float64, len(kde.xs))
	for i, xi := range kde.xs {
		txs[i] = x - xi
	}
	return txs
}

func (kde *kdeModel) InnerPDF(x float64) float64 {
	y := func(x float64) float64 {
		// Shift kernel to each of kde.xs and evaluate at x
		ys := kde.kernel.pdfEach(kde.normalizedXs(x))

		// Kernel samples are weighted according to the weights of xs
		wys := Sample{Xs: ys, Weights: kde.weights}

		return wys.Sum() / wys.Weight()
	}
	if kde.bm == boundaryNone {
		return y(x)
	}
	if math.IsInf(kde.max, 1) {
		return y(x) + y(2*kde.min-x)
	} else if math.IsInf(kde.min, -1) {
		return y(x) + y(2*kde.max-x)
	}
	d := 2 * (kde.max - kde.min)
	w := 2 * (x - kde.min)
	return mathx.Series(func(n float64) float64 {
		// Points >= x
		return y(x+n*d) + y(x+n*d-w)
	}) + mathx.Series(func(n float64) float64 {
		// Points < x
		return y(x-(n+1)*d) + y(x-(n+1)*d-w)
	})
}

func (kde *kdeModel) InnerCDF(x float64) float64 {
	y := func(x float64) float64 {
		// Shift kernel integral to each of kde.xs and evaluate at x
		ys := kde.kernel.cdfEach(kde.normalizedXs(x))

		// Kernel samples are weighted according to the weights of xs
		wys := Sample{Xs: ys, Weights: kde.weights}

		return wys.Sum() / wys.Weight()
	}
	if kde.bm == boundaryNone {
		return y(x)
	}
	if math.IsInf(kde.max, 1) {
		return y(x) - y(2*kde.min-x)
	} else if math.IsInf(kde.min, -1) {
		return y(x) + (1 - y(2*kde.max-x))
	}
	d := 2 * (kde.max - kde.min)
	w := 2 * (x - kde.min)
	return mathx.Series(func(n float64) float64 {
		// Windows >= x-w
		return y(x+n*d) - y(x+n*d-w)
	}) + mathx.Series(func(n float64) float64 {
		// Windows < x-w
		return y(x-(n+1)*d) - y(x-(n+1)*d-w)
	})
}

// Rand picks a data point in proportion to its weight, offsets it by
// a draw from the kernel, and folds the result into the support,
// which is exactly the reflected density.
func (kde *kdeModel) Rand(r *rand.Rand) float64 {
	total := kde.cum[len(kde.cum)-1]
	var u float64
	if r == nil {
		u = rand.Float64() * total
	} else {
		u = r.Float64() * total
	}
	i := sort.SearchFloat64s(kde.cum, u)
	if i == len(kde.xs) {
		i--
	}
	x := kde.xs[i] + kde.kernel.rand(r)
	if kde.bm == boundaryNone {
		return x
	}
	switch {
	case math.IsInf(kde.max, 1):
		if x < kde.min {
			x = 2*kde.min - x
		}
	case math.IsInf(kde.min, -1):
		if x > kde.max {
			x = 2*kde.max - x
		}
	default:
		width := kde.max - kde.min
		y := math.Mod(x-kde.min, 2*width)
		if y < 0 {
			y += 2 * width
		}
		if y > width {
			y = 2*width - y
		}
		x = kde.min + y
	}
	return x
}

// Fit replaces the data underlying the estimate.
func (kde *kdeModel) Fit(xs, weights []float64, opts *FitOptions) error {
	return kde.setData(append([]float64(nil), xs...), append([]float64(nil), weights...))
}

func (kde *kdeModel) Clone() ContinuousModel {
	c := *kde
	return &c
}

func (n *normalModel) rand(r *rand.Rand) float64 {
	return n.Rand(r)
}

type epanechnikovKernel struct {
	h float64
}

func (d epanechnikovKernel) pdfEach(xs []float64) []float64 {
	ys := make([]float64, len(xs))
	a := 0.75 / d.h
	invhh := 1 / (d.h * d.h)
	for i, x := range xs {
		if -d.h < x && x < d.h {
			ys[i] = a * (1 - x*x*invhh)
		}
	}
	return ys
}

func (d epanechnikovKernel) cdfEach(xs []float64) []float64 {
	ys := make([]float64, len(xs))
	invh := 1 / d.h
	for i, x := range xs {
		if x > d.h {
			ys[i] = 1
		} else if x > -d.h {
			u := x * invh
			ys[i] = 0.25 * (2 + 3*u - u*u*u)
		}
	}
	return ys
}

// rand uses the Devroye method: of three uniform draws on [-1, 1],
// take the second if the third is the largest in magnitude and the
// third otherwise.
func (d epanechnikovKernel) rand(r *rand.Rand) float64 {
	u := func() float64 {
		if r == nil {
			return 2*rand.Float64() - 1
		}
		return 2*r.Float64() - 1
	}
	u1, u2, u3 := u(), u(), u()
	if math.Abs(u3) >= math.Abs(u2) && math.Abs(u3) >= math.Abs(u1) {
		return d.h * u2
	}
	return d.h * u3
}

// deltaKernel is the Dirac delta function centered at 0.
type deltaKernel struct{}

func (deltaKernel) pdfEach(xs []float64) []float64 {
	res := make([]float64, len(xs))
	for i, x := range xs {
		if x == 0 {
			res[i] = inf
		}
	}
	return res
}

func (deltaKernel) cdfEach(xs []float64) []float64 {
	res := make([]float64, len(xs))
	for i, x := range xs {
		if x >= 0 {
			res[i] = 1
		}
	}
	return res
}

func (deltaKernel) rand(*rand.Rand) float64 {
	return 0
}
