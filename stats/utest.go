// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"
	"slices"
)

var (
	// ErrSampleSize is returned by tests that need more samples.
	ErrSampleSize = fmt.Errorf("sample is too small: %w", ErrArgument)

	// ErrSamplesEqual is returned by tests that are meaningless
	// when every sample is the same.
	ErrSamplesEqual = fmt.Errorf("all samples are equal: %w", ErrArgument)
)

// A MannWhitneyUTestResult is the result of a Mann-Whitney U-test.
type MannWhitneyUTestResult struct {
	// N1 and N2 are the sizes of the input samples.
	N1, N2 int

	// U is the Mann-Whitney U statistic. Over all pairs of one
	// value from each sample, U1 counts the pairs in which the
	// first sample's value is larger plus half the equal pairs,
	// and U2 = N1*N2 - U1. U is the smaller of U1 and U2, a
	// multiple of 0.5 in [0, N1*N2/2].
	U float64

	// P is the two-tailed p-value of the test.
	P float64
}

// MannWhitneyExactLimit gives the largest sample size for which the
// exact U distribution will be used for the Mann-Whitney U-test.
//
// The exact distribution is needed for small samples because it is
// highly irregular, but it quickly approaches a normal distribution
// and is expensive to compute for large samples.
var MannWhitneyExactLimit = 50

// MannWhitneyTiesExactLimit gives the largest sample size for which
// the exact U distribution will be used for the Mann-Whitney U-test
// in the presence of ties. Computing this distribution is much more
// expensive than without ties.
var MannWhitneyTiesExactLimit = 9

// MannWhitneyUTest performs a Mann-Whitney U-test of the null
// hypothesis that two samples come from the same population against
// the alternative that one sample tends to have larger or smaller
// values than the other. Unlike the t-test, it does not assume a
// normal distribution.
//
// Above MannWhitneyExactLimit samples (MannWhitneyTiesExactLimit if
// there are ties), this uses a normal approximation with the tie and
// continuity corrections. Otherwise it uses NewMannWhitney.
//
// MannWhitneyUTest fails with ErrSampleSize if either sample is
// empty and ErrSamplesEqual if every value is equal. Both wrap
// ErrArgument.
func MannWhitneyUTest(x1, x2 []float64) (*MannWhitneyUTestResult, error) {
	n1, n2 := len(x1), len(x2)
	if n1 == 0 || n2 == 0 {
		return nil, ErrSampleSize
	}
	for _, x := range slices.Concat(x1, x2) {
		if math.IsNaN(x) {
			return nil, domainError("MannWhitneyUTest", x)
		}
	}

	// Rank the merged samples, giving tied values their average
	// rank, and record the tie counts.
	x1, x2 = slices.Clone(x1), slices.Clone(x2)
	slices.Sort(x1)
	slices.Sort(x2)
	merged, labels := labeledMerge(x1, x2)

	R1 := 0.0
	var ties []int
	hasTies := false
	for i := 0; i < len(merged); {
		start, nx1, v := i, 0, merged[i]
		for ; i < len(merged) && merged[i] == v; i++ {
			if labels[i] == 1 {
				nx1++
			}
		}
		// merged[0] has rank 1.
		R1 += float64(start+1+i) / 2 * float64(nx1)
		ties = append(ties, i-start)
		hasTies = hasTies || i-start > 1
	}
	if len(ties) == 1 {
		return nil, ErrSamplesEqual
	}
	U1 := R1 - float64(n1*(n1+1))/2
	U := math.Min(U1, float64(n1*n2)-U1)

	var p float64
	if !hasTies && n1 <= MannWhitneyExactLimit && n2 <= MannWhitneyExactLimit ||
		hasTies && n1 <= MannWhitneyTiesExactLimit && n2 <= MannWhitneyTiesExactLimit {
		// With ties, the distribution of U1 need not be
		// symmetric, so take the smaller tail of U1 itself.
		d := NewMannWhitney(n1, n2, ties)
		k := int(math.Round(2 * U1))
		p = 2 * math.Min(d.CDF(k), d.Complement(k-1))
	} else {
		d := NewMannWhitney(n1, n2, ties)
		sd := d.StdDev() / 2
		if sd == 0 {
			return nil, ErrSamplesEqual
		}
		numer := U - float64(n1*n2)/2
		// Continuity correction.
		if numer < 0 {
			numer += 0.5
		} else if numer > 0 {
			numer -= 0.5
		}
		z := numer / sd
		p = 2 * math.Min(StdNormal().CDF(z), StdNormal().Complement(z))
	}

	return &MannWhitneyUTestResult{N1: n1, N2: n2, U: U, P: math.Min(p, 1)}, nil
}

// labeledMerge merges sorted lists x1 and x2 into sorted list merged.
// labels[i] is 1 or 2 depending on whether merged[i] is a value from
// x1 or x2, respectively.
func labeledMerge(x1, x2 []float64) (merged []float64, labels []byte) {
	merged = make([]float64, 0, len(x1)+len(x2))
	labels = make([]byte, 0, len(x1)+len(x2))
	i, j := 0, 0
	for i < len(x1) || j < len(x2) {
		if j == len(x2) || i < len(x1) && x1[i] < x2[j] {
			merged, labels = append(merged, x1[i]), append(labels, 1)
			i++
		} else {
			merged, labels = append(merged, x2[j]), append(labels, 2)
			j++
		}
	}
	return
}
