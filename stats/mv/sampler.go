// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mv

import (
	"math"
	"math/rand"

	"github.com/aclements/go-probdist/mathx"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/samplemv"
)

// A Sampler draws successive random vectors from a fixed
// distribution. Successive samples need not be independent.
type Sampler interface {
	Sample(r *rand.Rand) []float64
}

// NewSampler returns the Sampler used by distributions whose models
// cannot sample themselves. logPDF is the target log density and
// initial is a starting point inside its support.
//
// The default is a Metropolis-Hastings chain with a standard normal
// random walk proposal. It draws from gonum's global source and
// ignores the r passed to Sample.
var NewSampler = func(dim int, initial []float64, logPDF func([]float64) float64) Sampler {
	return newMetropolisSampler(dim, initial, logPDF)
}

const (
	metropolisBurnIn = 1000
	metropolisRate   = 10
	metropolisBatch  = 256
)

type logProbFunc func([]float64) float64

func (f logProbFunc) LogProb(x []float64) float64 { return f(x) }

type metropolisSampler struct {
	mh    samplemv.MetropolisHastingser
	batch *mat.Dense
	next  int
}

func newMetropolisSampler(dim int, initial []float64, logPDF func([]float64) float64) *metropolisSampler {
	sigma := mat.NewSymDense(dim, nil)
	for i := 0; i < dim; i++ {
		sigma.SetSym(i, i, 1)
	}
	proposal, ok := samplemv.NewProposalNormal(sigma, nil)
	if !ok {
		panic("mv: identity proposal covariance is not positive definite")
	}
	return &metropolisSampler{
		mh: samplemv.MetropolisHastingser{
			Initial:  append([]float64(nil), initial...),
			Target:   logProbFunc(logPDF),
			Proposal: proposal,
			BurnIn:   metropolisBurnIn,
			Rate:     metropolisRate,
		},
		batch: mat.NewDense(metropolisBatch, dim, nil),
		next:  metropolisBatch,
	}
}

func (s *metropolisSampler) Sample(r *rand.Rand) []float64 {
	if s.next == metropolisBatch {
		s.mh.Sample(s.batch)
		// Continue the chain from the last sample without
		// burning in again.
		copy(s.mh.Initial, s.batch.RawRowView(metropolisBatch-1))
		s.mh.BurnIn = 0
		s.next = 0
	}
	x := append([]float64(nil), s.batch.RawRowView(s.next)...)
	s.next++
	return x
}

// startingPoint returns a point inside support near guess, which may
// be nil.
func startingPoint(dim int, support []mathx.Range, guess []float64) []float64 {
	x := make([]float64, dim)
	for i := range x {
		if guess != nil && !math.IsNaN(guess[i]) && !math.IsInf(guess[i], 0) {
			x[i] = guess[i]
		}
		if support == nil {
			continue
		}
		r := support[i]
		switch {
		case r.IsFinite():
			if guess == nil {
				x[i] = (r.Min + r.Max) / 2
			}
		case math.IsInf(r.Min, -1) && !math.IsInf(r.Max, 1):
			if guess == nil {
				x[i] = r.Max - 1
			}
		case !math.IsInf(r.Min, -1):
			if guess == nil {
				x[i] = r.Min + 1
			}
		}
		x[i] = r.Clamp(x[i])
	}
	return x
}
