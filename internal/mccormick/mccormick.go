// Package mccormick implements McCormick relaxation arithmetic.
//
// An MC value carries a convex underestimate CV and a concave overestimate
// CC of a function at one evaluation point, an interval enclosure of the
// function's range over the current box, and one subgradient per decision
// variable for each of the two bounds. Operators combine MC values so that
// soundness is preserved: if the operands enclose their true functions,
// the result encloses the composed function.
//
// Invariant after Cut: Intv.Lo <= CV <= CC <= Intv.Hi.
package mccormick

import (
	"math"

	"github.com/hull-opt/hull/internal/interval"
)

// MC is a McCormick relaxation value.
type MC struct {
	CV     float64           // convex underestimate at the evaluation point
	CC     float64           // concave overestimate at the evaluation point
	Intv   interval.Interval // enclosure of the range over the box
	CVGrad []float64         // subgradient of CV, one entry per variable
	CCGrad []float64         // subgradient of CC
	Const  bool              // no variable dependence
}

// NVars returns the number of decision variables the value carries
// subgradients for.
func (v MC) NVars() int {
	return len(v.CVGrad)
}

// Variable creates the relaxation of decision variable i of n at point x
// over [lo, hi]. The identity function is its own convex and concave
// relaxation, with a unit subgradient.
func Variable(i, n int, x, lo, hi float64) MC {
	g := zeros(n)
	g[i] = 1
	g2 := zeros(n)
	g2[i] = 1
	return MC{
		CV:     x,
		CC:     x,
		Intv:   interval.New(lo, hi),
		CVGrad: g,
		CCGrad: g2,
	}
}

// Constant creates the exact relaxation of a constant c over n variables.
func Constant(c float64, n int) MC {
	return MC{
		CV:     c,
		CC:     c,
		Intv:   interval.Point(c),
		CVGrad: zeros(n),
		CCGrad: zeros(n),
		Const:  true,
	}
}

// One returns the exact constant-one relaxation.
func One(n int) MC {
	return Constant(1, n)
}

// Cut clips CV and CC into the interval bound. A clipped bound is a
// constant, so its subgradient becomes zero.
func (v MC) Cut() MC {
	if v.CV < v.Intv.Lo {
		v.CV = v.Intv.Lo
		v.CVGrad = zeros(len(v.CVGrad))
	}
	if v.CC > v.Intv.Hi {
		v.CC = v.Intv.Hi
		v.CCGrad = zeros(len(v.CCGrad))
	}
	return v
}

// Tighten intersects v with a previously stored enclosure of the same
// function over the same box at the same evaluation point, keeping the
// tighter of each bound. The cv/cc bounds are only comparable at one
// point; across different points use TightenRange.
func (v MC) Tighten(prev MC) (MC, error) {
	iv, err := v.Intv.Intersect(prev.Intv)
	if err != nil {
		return MC{}, err
	}
	v.Intv = iv
	if prev.CV > v.CV {
		v.CV = prev.CV
		v.CVGrad = cloneVec(prev.CVGrad)
	}
	if prev.CC < v.CC {
		v.CC = prev.CC
		v.CCGrad = cloneVec(prev.CCGrad)
	}
	return v.Cut(), nil
}

// TightenRange intersects only the interval enclosures of two passes over
// the same box. Intervals are valid box-wide, so they intersect soundly no
// matter where each pass evaluated; the pointwise cv/cc bounds of v are
// kept as is.
func (v MC) TightenRange(prev MC) (MC, error) {
	iv, err := v.Intv.Intersect(prev.Intv)
	if err != nil {
		return MC{}, err
	}
	v.Intv = iv
	return v.Cut(), nil
}

// clampTo restricts the value to a sub-interval of its current enclosure.
// Used by the guard's clip policy before re-evaluating a partial
// primitive on the valid sub-domain.
func (v MC) clampTo(iv interval.Interval) MC {
	v.Intv = iv
	return v.Cut()
}

func zeros(n int) []float64 {
	return make([]float64, n)
}

func cloneVec(g []float64) []float64 {
	out := make([]float64, len(g))
	copy(out, g)
	return out
}

func scaleVec(g []float64, s float64) []float64 {
	out := make([]float64, len(g))
	for i, v := range g {
		out[i] = s * v
	}
	return out
}

func addVec(a, b []float64) []float64 {
	out := make([]float64, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}

// mid3 selection outcomes.
const (
	selCV = iota
	selCC
	selBound
)

// mid3 returns the middle of cv <= cc and a third value x, and which of
// the three was selected. Used by the univariate composition rule.
func mid3(cv, cc, x float64) (float64, int) {
	if x < cv {
		return cv, selCV
	}
	if x > cc {
		return cc, selCC
	}
	return x, selBound
}

// chainGrad builds the subgradient of a univariate composition: slope
// times the subgradient of whichever relaxation mid3 selected. A bound
// selection has a zero subgradient.
func chainGrad(x MC, sel int, slope float64, n int) []float64 {
	switch sel {
	case selCV:
		return scaleVec(x.CVGrad, slope)
	case selCC:
		return scaleVec(x.CCGrad, slope)
	}
	return zeros(n)
}

// secant returns the chord evaluator of f between a and b. For a
// degenerate interval the chord is the constant f(a).
func secant(fa, fb, a, b float64) func(z float64) (float64, float64) {
	if a == b {
		return func(float64) (float64, float64) { return fa, 0 }
	}
	s := (fb - fa) / (b - a)
	return func(z float64) (float64, float64) { return fa + s*(z-a), s }
}

// isFinite reports whether both interval endpoints are finite.
func isFinite(iv interval.Interval) bool {
	return !math.IsInf(iv.Lo, 0) && !math.IsInf(iv.Hi, 0)
}
