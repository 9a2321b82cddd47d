// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mv

import (
	"math"
	"math/rand"
	"testing"

	"github.com/aclements/go-probdist/mathx"
	"github.com/aclements/go-probdist/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarginalOfIndependent(t *testing.T) {
	a, b := stats.NewBinomial(3, 0.4), stats.NewBinomial(2, 0.7)
	d := NewIndependentDiscrete(a, b)
	for i, c := range []*stats.Discrete{a, b} {
		m := d.Marginal(i)
		require.Len(t, m, c.Support().Max+1)
		for k, p := range m {
			assert.InDelta(t, c.PMF(k), p, 1e-12, "marginal %d at %d", i, k)
		}
	}
	assert.InDelta(t, a.PMF(1)*b.PMF(2), d.PMF([]int{1, 2}), 1e-15)
	assert.Equal(t, 0.0, d.PMF([]int{4, 0}))
	assert.Equal(t, d.PMF([]int{1, 0}), d.PMFAt([]float64{1.5, 0.2}))
	assert.InDeltaSlice(t, []float64{1.2, 1.4}, d.Mean(), 1e-12)

	expectPanic(t, stats.ErrArgument, func() { d.Marginal(2) })
	expectPanic(t, stats.ErrArgument, func() { d.Marginal(-1) })
	expectPanic(t, stats.ErrArgument, func() { d.PMF([]int{1}) })
	expectPanic(t, stats.ErrDomain, func() { d.PMFAt([]float64{math.NaN(), 1}) })

	u := NewIndependentDiscrete(stats.NewPoisson(2), stats.NewBinomial(1, 0.5))
	expectPanic(t, stats.ErrUnsupported, func() { u.Marginal(1) })
}

func TestJoint(t *testing.T) {
	support := []mathx.IntRange{{Min: 0, Max: 1}, {Min: -1, Max: 1}}
	// Rows are X_0 = 0, 1; columns X_1 = -1, 0, 1.
	d, err := NewJoint(support, []float64{
		1, 2, 1,
		0, 4, 0,
	})
	require.NoError(t, err)
	assert.Equal(t, 0.5, d.PMF([]int{1, 0}))
	assert.Equal(t, 0.25, d.PMF([]int{0, 0}))
	assert.Equal(t, 0.0, d.PMF([]int{2, 0}))
	assert.True(t, math.IsInf(d.LogPMF([]int{1, 1}), -1))

	assert.InDeltaSlice(t, []float64{0.5, 0.5}, d.Marginal(0), 1e-15)
	assert.InDeltaSlice(t, []float64{0.125, 0.75, 0.125}, d.Marginal(1), 1e-15)
	assert.InDeltaSlice(t, []float64{0.5, 0}, d.Mean(), 1e-15)
	assert.InDeltaSlice(t, []float64{0.25, 0.25}, d.Variance(), 1e-15)
	assert.InDelta(t, 0, d.Covariance().At(0, 1), 1e-15)

	require.NoError(t, d.Fit([][]int{{0, -1}, {0, -1}, {1, 1}}, []float64{1, 1, 2}, nil))
	assert.Equal(t, 0.5, d.PMF([]int{0, -1}))
	assert.Equal(t, 0.5, d.PMF([]int{1, 1}))
	assert.InDeltaSlice(t, []float64{0.5, 0}, d.Mean(), 1e-15)
	assert.InDelta(t, 0.5, d.Covariance().At(0, 1), 1e-15)

	assert.ErrorIs(t, d.Fit([][]int{{0, 2}}, nil, nil), stats.ErrDomain)
	assert.ErrorIs(t, d.Fit([][]int{{0}}, nil, nil), stats.ErrArgument)
	require.NoError(t, d.FitObservations(stats.Vectors{{0.5, 1.5}}, nil, nil))
	assert.Equal(t, 1.0, d.PMF([]int{0, 1}))
}

func TestJointErrors(t *testing.T) {
	_, err := NewJoint([]mathx.IntRange{{Min: 0, Max: 1}}, []float64{1})
	assert.ErrorIs(t, err, stats.ErrArgument)
	_, err = NewJoint([]mathx.IntRange{{Min: 0, Max: 1}}, []float64{1, -1})
	assert.ErrorIs(t, err, stats.ErrArgument)
	_, err = NewJoint([]mathx.IntRange{{Min: 0, Max: 1}}, []float64{0, 0})
	assert.ErrorIs(t, err, stats.ErrArgument)
	_, err = NewJoint([]mathx.IntRange{mathx.Naturals}, []float64{1})
	assert.ErrorIs(t, err, stats.ErrArgument)
}

func TestDiscreteRand(t *testing.T) {
	d, err := NewJoint([]mathx.IntRange{{Min: 0, Max: 1}, {Min: 0, Max: 1}}, []float64{0.1, 0.2, 0.3, 0.4})
	require.NoError(t, err)
	counts := map[[2]int]int{}
	const n = 20000
	for _, k := range d.Generate(n, rand.New(rand.NewSource(1))) {
		counts[[2]int{k[0], k[1]}]++
	}
	for k, want := range map[[2]int]float64{{0, 0}: 0.1, {0, 1}: 0.2, {1, 0}: 0.3, {1, 1}: 0.4} {
		assert.InDelta(t, want, float64(counts[k])/n, 0.015, "%v", k)
	}
}
