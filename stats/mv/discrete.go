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

// A DiscreteModel supplies the unchecked primitives of an
// integer-vector-valued distribution. InnerPMF is only called with
// vectors of length Dimension() inside Support.
type DiscreteModel interface {
	Dimension() int

	// Support returns the integer range of each component.
	// Unbounded ends are math.MinInt and math.MaxInt.
	Support() []mathx.IntRange

	InnerPMF(k []int) float64
}

// Optional capabilities of a DiscreteModel. Discrete models may also
// implement MeanModel and CovarianceModel.
type (
	DiscreteLogPMFModel interface {
		InnerLogPMF(k []int) float64
	}

	DiscreteRandModel interface {
		Rand(r *rand.Rand) []int
	}

	DiscreteFitModel interface {
		Fit(ks [][]int, weights []float64, opts *stats.FitOptions) error
	}

	DiscreteCloneModel interface {
		Clone() DiscreteModel
	}
)

// Discrete is a discrete multivariate distribution over integer
// vectors.
type Discrete struct {
	model DiscreteModel

	mean       memo.Cell[[]float64]
	covariance memo.Cell[*mat.SymDense]
	variance   memo.Cell[[]float64]
}

// NewDiscrete returns the distribution implemented by m.
func NewDiscrete(m DiscreteModel) *Discrete {
	return &Discrete{model: m}
}

func (d *Discrete) String() string {
	if s, ok := d.model.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("Discrete(%T)", d.model)
}

// Model returns the model underlying d.
func (d *Discrete) Model() DiscreteModel {
	return d.model
}

func (d *Discrete) Dimension() int {
	return d.model.Dimension()
}

func (d *Discrete) Support() []mathx.IntRange {
	return d.model.Support()
}

func (d *Discrete) inSupport(k []int) bool {
	for i, r := range d.model.Support() {
		if !r.Contains(k[i]) {
			return false
		}
	}
	return true
}

// PMF returns Pr[X = k]. It panics with stats.ErrArgument if k has
// the wrong dimension.
func (d *Discrete) PMF(k []int) float64 {
	checkIntVector("PMF", k, d.model.Dimension())
	if !d.inSupport(k) {
		return 0
	}
	p := d.model.InnerPMF(k)
	if math.IsNaN(p) || p < 0 || p > 1+1e-12 {
		panic(internalError("PMF", k, p))
	}
	return math.Min(1, p)
}

// LogPMF returns log(Pr[X = k]), or -Inf outside d's support.
func (d *Discrete) LogPMF(k []int) float64 {
	checkIntVector("LogPMF", k, d.model.Dimension())
	if !d.inSupport(k) {
		return math.Inf(-1)
	}
	var y float64
	if m, ok := d.model.(DiscreteLogPMFModel); ok {
		y = m.InnerLogPMF(k)
	} else {
		y = math.Log(d.model.InnerPMF(k))
	}
	if math.IsNaN(y) {
		panic(internalError("LogPMF", k, y))
	}
	return y
}

// PMFAt returns PMF of x with each component rounded down to an
// integer. It panics with stats.ErrDomain if any component is NaN.
func (d *Discrete) PMFAt(x []float64) float64 {
	checkVector("PMF", x, d.model.Dimension())
	return d.PMF(floorInts(x))
}

func floorInts(x []float64) []int {
	k := make([]int, len(x))
	for i, xi := range x {
		f := math.Floor(xi)
		switch {
		case f >= math.MaxInt:
			k[i] = math.MaxInt
		case f <= math.MinInt:
			k[i] = math.MinInt
		default:
			k[i] = int(f)
		}
	}
	return k
}

// boundedSupport returns d's support, or an error wrapping
// stats.ErrUnsupported if any component is unbounded.
func (d *Discrete) boundedSupport(op string) ([]mathx.IntRange, error) {
	s := d.model.Support()
	for i, r := range s {
		if !r.IsFinite() {
			return nil, fmt.Errorf("mv: %s of %v: component %d has unbounded support %v: %w", op, d, i, r, stats.ErrUnsupported)
		}
	}
	return s, nil
}

// enumerate calls f for each vector in the Cartesian product of
// support. The vector passed to f is reused between calls.
func enumerate(support []mathx.IntRange, f func(k []int)) {
	for _, r := range support {
		if r.Min > r.Max {
			return
		}
	}
	k := make([]int, len(support))
	for i, r := range support {
		k[i] = r.Min
	}
	for {
		f(k)
		// Advance like an odometer, last component fastest.
		i := len(k) - 1
		for ; i >= 0; i-- {
			if k[i] < support[i].Max {
				k[i]++
				break
			}
			k[i] = support[i].Min
		}
		if i < 0 {
			return
		}
	}
}

// Marginal returns the marginal distribution of component index:
// element j of the result is Pr[X_index = Support()[index].Min + j].
// It sums the joint PMF over every vector in the support, so it panics
// with stats.ErrUnsupported if any component is unbounded, and with
// stats.ErrArgument if index is out of range.
func (d *Discrete) Marginal(index int) []float64 {
	if index < 0 || index >= d.model.Dimension() {
		panic(fmt.Errorf("mv: marginal %d of %d-dimensional %v: %w", index, d.model.Dimension(), d, stats.ErrArgument))
	}
	s, err := d.boundedSupport("Marginal")
	if err != nil {
		panic(err)
	}
	m := make([]float64, s[index].Len())
	enumerate(s, func(k []int) {
		m[k[index]-s[index].Min] += d.PMF(k)
	})
	return m
}

// Mean returns the mean vector of d. Without a closed form, this
// enumerates d's support and panics with stats.ErrUnsupported if it is
// unbounded.
func (d *Discrete) Mean() []float64 {
	return d.mean.Get(func() []float64 {
		if m, ok := d.model.(MeanModel); ok {
			return m.Mean()
		}
		s, err := d.boundedSupport("Mean")
		if err != nil {
			panic(err)
		}
		mean := make([]float64, len(s))
		enumerate(s, func(k []int) {
			p := d.PMF(k)
			for i, ki := range k {
				mean[i] += p * float64(ki)
			}
		})
		return mean
	})
}

// Covariance returns the covariance matrix of d, by enumeration if
// the model has no closed form.
func (d *Discrete) Covariance() *mat.SymDense {
	return d.covariance.Get(func() *mat.SymDense {
		if m, ok := d.model.(CovarianceModel); ok {
			return m.Covariance()
		}
		s, err := d.boundedSupport("Covariance")
		if err != nil {
			panic(err)
		}
		mean := d.Mean()
		cov := mat.NewSymDense(len(s), nil)
		enumerate(s, func(k []int) {
			p := d.PMF(k)
			for i := range k {
				for j := i; j < len(k); j++ {
					cov.SetSym(i, j, cov.At(i, j)+p*(float64(k[i])-mean[i])*(float64(k[j])-mean[j]))
				}
			}
		})
		return cov
	})
}

// Variance returns the variance of each component of d.
func (d *Discrete) Variance() []float64 {
	return d.variance.Get(func() []float64 {
		return diag(d.Covariance())
	})
}

// Fit re-estimates d's parameters from integer vector observations ks
// with optional weights.
func (d *Discrete) Fit(ks [][]int, weights []float64, opts *stats.FitOptions) error {
	m, ok := d.model.(DiscreteFitModel)
	if !ok {
		return fmt.Errorf("mv: fitting %v: %w", d, stats.ErrUnsupported)
	}
	if err := stats.CheckWeights(len(ks), weights); err != nil {
		return err
	}
	n := d.model.Dimension()
	for i, k := range ks {
		if len(k) != n {
			return fmt.Errorf("mv: observation %d has dimension %d, want %d: %w", i, len(k), n, stats.ErrArgument)
		}
	}
	defer d.reset()
	return m.Fit(ks, weights, opts)
}

// FitObservations fits d to Vectors, rounding each component down to
// an integer.
func (d *Discrete) FitObservations(obs stats.Observations, weights []float64, opts *stats.FitOptions) error {
	vs, ok := obs.(stats.Vectors)
	if !ok {
		return stats.UnsupportedObservations(obs)
	}
	if err := checkObservations(vs, weights, d.model.Dimension()); err != nil {
		return err
	}
	ks := make([][]int, len(vs))
	for i, v := range vs {
		ks[i] = floorInts(v)
	}
	return d.Fit(ks, weights, opts)
}

func (d *Discrete) reset() {
	d.mean.Reset()
	d.covariance.Reset()
	d.variance.Reset()
}

// Rand returns a random vector drawn from d. Without a specialized
// sampler, this walks the support in enumeration order and panics
// with stats.ErrUnsupported if it is unbounded.
func (d *Discrete) Rand(r *rand.Rand) []int {
	if m, ok := d.model.(DiscreteRandModel); ok {
		return m.Rand(r)
	}
	s, err := d.boundedSupport("Rand")
	if err != nil {
		panic(err)
	}
	var u float64
	if r == nil {
		u = rand.Float64()
	} else {
		u = r.Float64()
	}
	var res, last []int
	enumerate(s, func(k []int) {
		if res != nil {
			return
		}
		p := d.PMF(k)
		if p > 0 {
			last = append(last[:0], k...)
		}
		if u -= p; u < 0 {
			res = append([]int(nil), k...)
		}
	})
	if res == nil {
		// Round-off left u just above the total mass.
		res = last
	}
	return res
}

// Generate returns n random vectors drawn from d.
func (d *Discrete) Generate(n int, r *rand.Rand) [][]int {
	ks := make([][]int, n)
	for i := range ks {
		ks[i] = d.Rand(r)
	}
	return ks
}

// Clone returns a copy of d that can be fit independently of d.
func (d *Discrete) Clone() *Discrete {
	if m, ok := d.model.(DiscreteCloneModel); ok {
		return NewDiscrete(m.Clone())
	}
	return NewDiscrete(d.model)
}
