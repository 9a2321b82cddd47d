// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mv

import (
	"fmt"

	"github.com/aclements/go-probdist/mathx"
	"github.com/aclements/go-probdist/stats"
)

// jointModel is an arbitrary discrete distribution over a bounded box
// of integer vectors, given by a table of probabilities.
type jointModel struct {
	support []mathx.IntRange
	strides []int
	table   []float64
}

// NewJoint returns the discrete distribution over the box support
// whose probabilities are table, laid out in row-major order (the
// last component varies fastest). The table is normalized to sum to 1.
// It fails with stats.ErrArgument if any support is unbounded or
// empty, the table has the wrong size, or any entry is negative.
func NewJoint(support []mathx.IntRange, table []float64) (*Discrete, error) {
	if len(support) == 0 {
		return nil, fmt.Errorf("mv: joint distribution with no components: %w", stats.ErrArgument)
	}
	strides := make([]int, len(support))
	size := 1
	for i := len(support) - 1; i >= 0; i-- {
		r := support[i]
		if !r.IsFinite() || r.Min > r.Max {
			return nil, fmt.Errorf("mv: joint distribution component %d has support %v: %w", i, r, stats.ErrArgument)
		}
		strides[i] = size
		size *= r.Len()
	}
	if len(table) != size {
		return nil, fmt.Errorf("mv: joint distribution over %d points has %d probabilities: %w", size, len(table), stats.ErrArgument)
	}
	m := &jointModel{append([]mathx.IntRange(nil), support...), strides, make([]float64, size)}
	if err := m.setTable(table, nil); err != nil {
		return nil, err
	}
	return NewDiscrete(m), nil
}

// setTable sets m.table to table normalized, or if table is nil, to
// the normalized table filled in by counts.
func (m *jointModel) setTable(table []float64, counts func(t []float64) error) error {
	t := make([]float64, len(m.table))
	if table != nil {
		copy(t, table)
	} else if err := counts(t); err != nil {
		return err
	}
	total := 0.0
	for i, p := range t {
		if !(p >= 0) {
			return fmt.Errorf("mv: joint probability %d is %v: %w", i, p, stats.ErrArgument)
		}
		total += p
	}
	if total == 0 {
		return fmt.Errorf("mv: joint distribution has zero total mass: %w", stats.ErrArgument)
	}
	for i := range t {
		t[i] /= total
	}
	m.table = t
	return nil
}

func (m *jointModel) String() string {
	return fmt.Sprintf("Joint(%v)", m.support)
}

func (m *jointModel) Dimension() int            { return len(m.support) }
func (m *jointModel) Support() []mathx.IntRange { return m.support }

func (m *jointModel) index(k []int) int {
	idx := 0
	for i, ki := range k {
		idx += (ki - m.support[i].Min) * m.strides[i]
	}
	return idx
}

func (m *jointModel) InnerPMF(k []int) float64 {
	return m.table[m.index(k)]
}

// Fit sets the table to the weighted relative frequencies of ks.
func (m *jointModel) Fit(ks [][]int, weights []float64, opts *stats.FitOptions) error {
	return m.setTable(nil, func(t []float64) error {
		for i, k := range ks {
			for j, kj := range k {
				if !m.support[j].Contains(kj) {
					return fmt.Errorf("mv: observation %v outside joint support %v: %w", k, m.support, stats.ErrDomain)
				}
			}
			w := 1.0
			if weights != nil {
				w = weights[i]
			}
			t[m.index(k)] += w
		}
		return nil
	})
}

func (m *jointModel) Clone() DiscreteModel {
	c := *m
	return &c
}
