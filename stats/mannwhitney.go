// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"

	"github.com/aclements/go-probdist/mathx"
	"gonum.org/v1/gonum/stat/combin"
)

// mannWhitneyModel is the null distribution of twice the Mann-Whitney
// U statistic for a pair of samples of sizes n1 and n2. U counts ties
// as 0.5, so 2U is always an integer in [0, 2*n1*n2].
//
// The details of computing this distribution with no ties can be
// found in Mann, Henry B.; Whitney, Donald R. (1947). "On a Test of
// Whether one of Two Random Variables is Stochastically Larger than
// the Other". Annals of Mathematical Statistics 18 (1): 50–60.
// Computing this distribution in the presence of ties is described in
// Klotz, J. H. (1966). "The Wilcoxon, Ties, and the Computer".
// Journal of the American Statistical Association 61 (315): 772-787
// and Cheung, Ying Kuen; Klotz, Jerome H. (1997). "The Mann Whitney
// Wilcoxon Distribution Using Linked Lists". Statistica Sinica 7:
// 805-813.
type mannWhitneyModel struct {
	n1, n2 int

	// ties is the number of tied samples at each rank of the
	// merged samples, or nil if there are no ties.
	ties []int
}

// NewMannWhitney returns the distribution of 2U, where U is the
// Mann-Whitney U statistic of a sample of size n1 against a sample of
// size n2 drawn from the same population.
//
// ties gives the number of tied values at each rank of the two
// samples merged. It may be nil if there are no ties; otherwise its
// elements must be positive and sum to n1+n2.
func NewMannWhitney(n1, n2 int, ties []int) *Discrete {
	if n1 < 0 || n2 < 0 {
		panic(fmt.Errorf("stats: Mann-Whitney with sample sizes %d and %d: %w", n1, n2, ErrArgument))
	}
	m := &mannWhitneyModel{n1: n1, n2: n2}
	if ties != nil {
		sum := 0
		for _, t := range ties {
			if t < 1 {
				panic(fmt.Errorf("stats: Mann-Whitney tie count %d: %w", t, ErrArgument))
			}
			sum += t
			if t > 1 && m.ties == nil {
				m.ties = append([]int(nil), ties...)
			}
		}
		if sum != n1+n2 {
			panic(fmt.Errorf("stats: Mann-Whitney tie counts sum to %d, want %d: %w", sum, n1+n2, ErrArgument))
		}
	}
	return NewDiscrete(m)
}

func (d *mannWhitneyModel) String() string {
	if d.ties != nil {
		return fmt.Sprintf("MannWhitney2U(n1=%d, n2=%d, ties=%v)", d.n1, d.n2, d.ties)
	}
	return fmt.Sprintf("MannWhitney2U(n1=%d, n2=%d)", d.n1, d.n2)
}

func (d *mannWhitneyModel) Support() mathx.IntRange {
	return mathx.IntRange{Min: 0, Max: 2 * d.n1 * d.n2}
}

func (d *mannWhitneyModel) Mean() float64 {
	return float64(d.n1 * d.n2)
}

// Variance is 4 Var[U], with the tie correction.
func (d *mannWhitneyModel) Variance() float64 {
	n := float64(d.n1 + d.n2)
	t := 0.0
	for _, ti := range d.ties {
		t += float64(ti*ti*ti - ti)
	}
	if n < 2 {
		return 0
	}
	return 4 * float64(d.n1*d.n2) * ((n + 1) - t/(n*(n-1))) / 12
}

// p returns the p_{n1,n2} function defined by Mann, Whitney 1947 for
// values of U from 0 up to and including the U argument.
//
// This runs in Θ(n1*n2*U) = O(n1²n2²) time and is quite fast for small
// n1 and n2. It does not handle ties.
func (d *mannWhitneyModel) p(U int) []float64 {
	// This is dynamic programming over the recurrence
	//
	//   p_{n,m}(U) = (n * p_{n-1,m}(U-m) + m * p_{n,m-1}(U)) / (n+m)
	//   p_{n,m}(U) = 0                           if U < 0
	//   p_{0,m}(U) = p{n,0}(U) = 1 / nCr(m+n, n) if U = 0
	//                          = 0               if U > 0
	//
	// (The original paper has a typo: the first recursive
	// application of p should be for U-m, not U-M.)
	//
	// p_{n,m} depends only on p_{n-1,m} and p_{n,m-1}, and
	// p_{n,m} = p_{m,n}, so we fill in the triangle n <= m one
	// row of m at a time:
	//
	//       n →   N
	//     m *
	//     ↓ * *
	//       * * *
	//       * * * *
	//     M * * * *
	//
	// where each * is a slice indexed by U. Each U slice depends
	// only on the same and smaller U, so it is overwritten in
	// place from the largest U down. The mirrored (m,n) entries
	// the recurrence needs above the diagonal are always in the
	// current row.
	N, M := d.n1, d.n2
	if N > M {
		N, M = M, N
	}

	memo := make([][]float64, N+1)
	for n := range memo {
		memo[n] = make([]float64, U+1)
	}

	for m := 0; m <= M; m++ {
		// p_{0,m} is zero except at U=0.
		memo[0][0] = 1

		for n := 1; n <= min(N, m); n++ {
			lp := memo[n-1] // p_{n-1,m}
			rp := memo[n]   // p_{n,m-1}
			if n > m-1 {
				rp = memo[m-1] // p_{m-1,n} with m == n
			}

			// For a given n,m, U is at most n*m.
			ulim := min(n*m, U)

			out := memo[n] // p_{n,m}
			nplusm := float64(n + m)
			for U1 := ulim; U1 >= 0; U1-- {
				l := 0.0
				if U1-m >= 0 {
					l = float64(n) * lp[U1-m]
				}
				out[U1] = (l + float64(m)*rp[U1]) / nplusm
			}
		}
	}
	return memo[N]
}

// permCount returns the number of arrangements of the samples under
// the tie vector d.ties whose 2U statistic is <, == or > twoU when cmp
// is -1, 0 or 1, respectively, or <= twoU when cmp is -2. This is the
// "graphical method" of Klotz (1966), which is exponential in the
// number of ranks.
func (d *mannWhitneyModel) permCount(twoU int, cmp int) (count float64) {
	// TODO: Klotz's direct enumeration, or the Cheung-Klotz
	// linked list method, would avoid constructing illegal u
	// vectors.

	// Enumerate all u vectors with 0 <= u_i <= ties_i, where u_i
	// is the number of the first sample's values at rank i.
	T := d.ties
	u := make([]int, len(T))
	u[len(u)-1] = -1
	for {
		u[len(u)-1]++
		for i := len(u) - 1; i >= 0 && u[i] > T[i]; i-- {
			if i == 0 {
				return
			}
			u[i-1]++
			u[i] = 0
		}

		sum := 0
		for _, ui := range u {
			sum += ui
		}
		if sum != d.n1 {
			continue
		}

		// 2U for this u vector, where U counts the pairs in
		// which the first sample's value is larger, plus half
		// the tied pairs.
		got, vsum := 0, 0
		for i, ui := range u {
			vi := T[i] - ui
			got += 2*vsum*ui + ui*vi
			vsum += vi
		}

		var ok bool
		switch cmp {
		case -2:
			ok = got <= twoU
		case -1:
			ok = got < twoU
		case 0:
			ok = got == twoU
		case 1:
			ok = got > twoU
		}
		if !ok {
			continue
		}

		// Π choose(t_i, u_i) arrangements share this u vector.
		prod := 1
		for i, ui := range u {
			prod *= combin.Binomial(T[i], ui)
		}
		count += float64(prod)
	}
}

// arrangements returns the number of ways to split the merged samples
// between the two samples.
func (d *mannWhitneyModel) arrangements() float64 {
	a := math.Exp(combin.LogGeneralizedBinomial(float64(d.n1+d.n2), float64(d.n1)))
	if a < 1<<53 {
		a = math.Round(a)
	}
	return a
}

func (d *mannWhitneyModel) InnerPMF(k int) float64 {
	if d.ties != nil {
		return d.permCount(k, 0) / d.arrangements()
	}
	if k%2 != 0 {
		return 0
	}
	U := k / 2
	return d.p(U)[U]
}

func (d *mannWhitneyModel) InnerCDF(k int) float64 {
	if d.ties != nil {
		return d.permCount(k, -2) / d.arrangements()
	}

	// Without ties, U is integral and symmetric around n1*n2/2.
	// Sum whichever tail is smaller.
	n := d.n1 * d.n2
	U := k / 2
	flip := U >= (n+1)/2
	if flip {
		U = n - U - 1
	}
	p := 0.0
	for _, pmf := range d.p(U)[:U+1] {
		p += pmf
	}
	if flip {
		p = 1 - p
	}
	return p
}

func (d *mannWhitneyModel) InnerComplement(k int) float64 {
	if d.ties != nil {
		return d.permCount(k, 1) / d.arrangements()
	}
	return 1 - d.InnerCDF(k)
}
