package mccormick

import "math"

// TiePointUnset marks a memoized tie point that has not been computed for
// the current box. Positive infinity never solves a tie equation, so it
// cannot collide with a real memoized point.
var TiePointUnset = math.Inf(1)

const (
	tieTol     = 1.0e-12
	tieMaxIter = 60
)

// solveTie finds a root of g inside [lo, hi] by Newton iteration with a
// bisection safeguard, starting from seed when it lies in the bracket.
// g(lo) and g(hi) must have opposite signs; when they do not, there is no
// crossing and NaN is returned so the caller can fall back to a chord.
func solveTie(g, dg func(float64) float64, lo, hi, seed float64) float64 {
	glo, ghi := g(lo), g(hi)
	if glo == 0 {
		return lo
	}
	if ghi == 0 {
		return hi
	}
	if (glo > 0) == (ghi > 0) {
		return math.NaN()
	}

	p := seed
	if p == TiePointUnset || p < lo || p > hi {
		p = 0.5 * (lo + hi)
	}
	for i := 0; i < tieMaxIter; i++ {
		gp := g(p)
		if math.Abs(gp) <= tieTol*(1+math.Abs(p)) {
			return p
		}
		// Shrink the bracket around the sign change.
		if (gp > 0) == (glo > 0) {
			lo, glo = p, gp
		} else {
			hi = p
		}
		next := p
		if d := dg(p); d != 0 {
			next = p - gp/d
		}
		if next <= lo || next >= hi || math.IsNaN(next) {
			next = 0.5 * (lo + hi)
		}
		if math.Abs(next-p) <= tieTol*(1+math.Abs(p)) {
			return next
		}
		p = next
	}
	return p
}
