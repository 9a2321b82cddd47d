// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"testing"
)

func aeq(expect, got float64) bool {
	return math.Abs(expect-got) < 0.00001
}

func testFunc(t *testing.T, name string, f func(float64) float64, vals map[float64]float64) {
	t.Helper()
	xs := make([]float64, 0, len(vals))
	for x := range vals {
		xs = append(xs, x)
	}
	sort.Float64s(xs)

	for _, x := range xs {
		want, got := vals[x], f(x)
		if math.IsNaN(want) && math.IsNaN(got) || aeq(want, got) {
			continue
		}
		var label string
		if x == math.Floor(x) {
			label = fmt.Sprintf("%s(%d)", name, int64(x))
		} else {
			label = fmt.Sprintf("%s(%v)", name, x)
		}
		t.Errorf("want %s=%v, got %v", label, want, got)
	}
}

// testDiscreteCDF checks that the CDF of dist at every integer in its
// (effective) support equals the running sum of its PMF, and that it
// is constant between integers.
func testDiscreteCDF(t *testing.T, name string, dist *Discrete) {
	t.Helper()
	s := dist.effectiveSupport()
	sum := 0.0
	for k := s.Min; k <= s.Max; k++ {
		sum += dist.PMF(k)
		if got := dist.CDF(k); !aeq(sum, got) {
			t.Errorf("want %s(%d)=%v, got %v", name, k, sum, got)
		}
		for _, dx := range []float64{0.25, 0.5, 0.99} {
			x := float64(k) + dx
			if got, want := dist.CDFAt(x), dist.CDF(k); got != want {
				t.Errorf("want %s(%v)=%v, got %v", name, x, want, got)
			}
		}
	}
	if got := dist.CDF(s.Min - 1); s.Min > math.MinInt && got > tailMass {
		t.Errorf("want %s(%d)≈0, got %v", name, s.Min-1, got)
	}
}

// expectPanic calls f and checks that it panics with an error wrapping
// want.
func expectPanic(t *testing.T, want error, f func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Errorf("want panic wrapping %v, got none", want)
			return
		}
		err, ok := r.(error)
		if !ok {
			t.Errorf("want panic wrapping %v, got %v", want, r)
			return
		}
		if !errors.Is(err, want) {
			t.Errorf("want panic wrapping %v, got %v", want, err)
		}
	}()
	f()
}
