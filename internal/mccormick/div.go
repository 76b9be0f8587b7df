package mccormick

import (
	"math"

	"github.com/hull-opt/hull/internal/interval"
)

// RecipDomain returns the zero-free side of the argument enclosure with
// the larger overlap, used by the guard's clip policy. A denominator
// enclosure containing zero has no single valid sub-domain; clipping
// keeps the side where more of the enclosure lives.
func RecipDomain(arg interval.Interval) interval.Interval {
	if arg.Hi > -arg.Lo {
		return interval.Interval{Lo: math.SmallestNonzeroFloat64, Hi: math.Inf(1)}
	}
	return interval.Interval{Lo: math.Inf(-1), Hi: -math.SmallestNonzeroFloat64}
}

// Recip returns the relaxation of 1/x. A denominator enclosure containing
// zero is a domain violation: the quotient set is unbounded, and the
// engine surfaces an explicit infeasibility instead of infinite bounds.
func Recip(x MC) (MC, error) {
	iv, err := x.Intv.Recip()
	if err != nil {
		return MC{}, domainErr("recip", x.Intv, RecipDomain(x.Intv))
	}
	f := func(z float64) float64 { return 1 / z }
	df := func(z float64) float64 { return -1 / (z * z) }
	if x.Intv.Lo > 0 {
		// Convex decreasing on the positive side.
		return convexRelax(x, f, df, x.Intv.Hi, iv), nil
	}
	// Concave decreasing on the negative side.
	return concaveRelax(x, f, df, x.Intv.Lo, iv), nil
}

// Div returns the relaxation of x / y as x * (1/y).
func Div(x, y MC) (MC, error) {
	r, err := Recip(y)
	if err != nil {
		return MC{}, err
	}
	return Mul(x, r), nil
}
