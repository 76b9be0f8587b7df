// Copyright 2025 Hull Optimization Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package interval provides the public API for validated interval
// arithmetic in the hull toolkit.
//
// Example:
//
//	a := interval.New(-1, 2)
//	b := a.Mul(interval.Point(3)) // [-3, 6]
package interval

import "github.com/hull-opt/hull/internal/interval"

// Interval is a closed interval [Lo, Hi] of float64 endpoints.
type Interval = interval.Interval

// New creates the interval [lo, hi].
func New(lo, hi float64) Interval {
	return interval.New(lo, hi)
}

// Point creates the degenerate interval [v, v].
func Point(v float64) Interval {
	return interval.Point(v)
}

// Entire returns the unbounded interval (-inf, +inf).
func Entire() Interval {
	return interval.Entire()
}
