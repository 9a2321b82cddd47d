// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package memo provides lazily computed, resettable values.
package memo

// A Cell memoizes one derived statistic of a distribution. The zero
// value is empty. It is not safe for concurrent use.
type Cell[T any] struct {
	v  T
	ok bool
}

// Get returns the memoized value, computing it with f if the cell is
// empty.
func (c *Cell[T]) Get(f func() T) T {
	if !c.ok {
		c.v = f()
		c.ok = true
	}
	return c.v
}

// Reset empties the cell.
func (c *Cell[T]) Reset() {
	var zero T
	c.v, c.ok = zero, false
}
