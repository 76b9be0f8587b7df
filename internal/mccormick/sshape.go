package mccormick

import (
	"math"

	"github.com/hull-opt/hull/internal/interval"
)

// smoothFn bundles a univariate with its first two derivatives, enough to
// run the tangency Newton iteration.
type smoothFn struct {
	f   func(float64) float64
	df  func(float64) float64
	d2f func(float64) float64
}

// tieSeed reads a memoized tie point, or the unset sentinel when the
// cache slot is absent.
func tieSeed(tp []float64, i int) float64 {
	if tp == nil {
		return TiePointUnset
	}
	return tp[i]
}

func tieStore(tp []float64, i int, p float64) {
	if tp != nil {
		tp[i] = p
	}
}

// flatRelax is the fallback for unbounded argument enclosures: the
// interval bounds themselves as constant relaxations.
func flatRelax(x MC, iv interval.Interval) MC {
	n := len(x.CVGrad)
	return MC{
		CV:     iv.Lo,
		CC:     iv.Hi,
		Intv:   iv,
		CVGrad: zeros(n),
		CCGrad: zeros(n),
		Const:  x.Const,
	}
}

// tangentFromLeft solves for the point p in [plo, phi] where the line
// anchored at (x0, f(x0)) with x0 <= plo is tangent to f. Returns NaN
// when no tangency exists inside the bracket.
func tangentFromLeft(fn smoothFn, x0, plo, phi, seed float64) float64 {
	fx0 := fn.f(x0)
	g := func(p float64) float64 { return fn.df(p)*(p-x0) - (fn.f(p) - fx0) }
	dg := func(p float64) float64 { return fn.d2f(p) * (p - x0) }
	return solveTie(g, dg, plo, phi, seed)
}

// tangentFromRight mirrors tangentFromLeft with the anchor x0 >= phi.
func tangentFromRight(fn smoothFn, x0, plo, phi, seed float64) float64 {
	fx0 := fn.f(x0)
	g := func(p float64) float64 { return fn.df(p)*(x0-p) - (fx0 - fn.f(p)) }
	dg := func(p float64) float64 { return -fn.d2f(p) * (x0 - p) }
	return solveTie(g, dg, plo, phi, seed)
}

// concaveConvex relaxes an increasing univariate that is concave left of
// its inflection at zero and convex right of it (sinh, asin, tan, odd
// powers). tp, when non-nil, memoizes the convex-side tie point in tp[0]
// and the concave-side tie point in tp[1]; cached points seed the Newton
// iteration on repeated passes over the same box.
func concaveConvex(x MC, fn smoothFn, iv interval.Interval, tp []float64) MC {
	if !isFinite(x.Intv) {
		return flatRelax(x, iv)
	}
	a, b := x.Intv.Lo, x.Intv.Hi
	out := MC{Intv: iv, Const: x.Const}
	ffn := func(z float64) (float64, float64) { return fn.f(z), fn.df(z) }
	chord := secant(fn.f(a), fn.f(b), a, b)

	// Convex side: the function on a nonnegative enclosure, the chord on
	// a nonpositive one, otherwise a tangent from the left endpoint
	// touching the convex branch.
	switch {
	case a >= 0:
		out.CV, out.CVGrad = composeCV(x, ffn, a)
	case b <= 0:
		out.CV, out.CVGrad = composeCV(x, chord, a)
	default:
		p := tangentFromLeft(fn, a, 0, b, tieSeed(tp, 0))
		if math.IsNaN(p) {
			out.CV, out.CVGrad = composeCV(x, chord, a)
		} else {
			tieStore(tp, 0, p)
			slope := fn.df(p)
			fa := fn.f(a)
			env := func(z float64) (float64, float64) {
				if z <= p {
					return fa + slope*(z-a), slope
				}
				return fn.f(z), fn.df(z)
			}
			out.CV, out.CVGrad = composeCV(x, env, a)
		}
	}

	// Concave side mirrored: tangent from the right endpoint touching the
	// concave branch.
	switch {
	case b <= 0:
		out.CC, out.CCGrad = composeCC(x, ffn, b)
	case a >= 0:
		out.CC, out.CCGrad = composeCC(x, chord, b)
	default:
		q := tangentFromRight(fn, b, a, 0, tieSeed(tp, 1))
		if math.IsNaN(q) {
			out.CC, out.CCGrad = composeCC(x, chord, b)
		} else {
			tieStore(tp, 1, q)
			slope := fn.df(q)
			fb := fn.f(b)
			env := func(z float64) (float64, float64) {
				if z >= q {
					return fb + slope*(z-b), slope
				}
				return fn.f(z), fn.df(z)
			}
			out.CC, out.CCGrad = composeCC(x, env, b)
		}
	}
	return out.Cut()
}

// convexConcave relaxes an increasing univariate that is convex left of
// its inflection at zero and concave right of it (tanh, atan). Same
// tie-point discipline as concaveConvex.
func convexConcave(x MC, fn smoothFn, iv interval.Interval, tp []float64) MC {
	if !isFinite(x.Intv) {
		return flatRelax(x, iv)
	}
	a, b := x.Intv.Lo, x.Intv.Hi
	out := MC{Intv: iv, Const: x.Const}
	ffn := func(z float64) (float64, float64) { return fn.f(z), fn.df(z) }
	chord := secant(fn.f(a), fn.f(b), a, b)

	// Convex side: tangent anchored at the right endpoint touching the
	// convex branch left of the inflection.
	switch {
	case b <= 0:
		out.CV, out.CVGrad = composeCV(x, ffn, a)
	case a >= 0:
		out.CV, out.CVGrad = composeCV(x, chord, a)
	default:
		q := tangentFromRight(fn, b, a, 0, tieSeed(tp, 0))
		if math.IsNaN(q) {
			out.CV, out.CVGrad = composeCV(x, chord, a)
		} else {
			tieStore(tp, 0, q)
			slope := fn.df(q)
			fb := fn.f(b)
			env := func(z float64) (float64, float64) {
				if z >= q {
					return fb + slope*(z-b), slope
				}
				return fn.f(z), fn.df(z)
			}
			out.CV, out.CVGrad = composeCV(x, env, a)
		}
	}

	// Concave side: tangent anchored at the left endpoint touching the
	// concave branch.
	switch {
	case a >= 0:
		out.CC, out.CCGrad = composeCC(x, ffn, b)
	case b <= 0:
		out.CC, out.CCGrad = composeCC(x, chord, b)
	default:
		p := tangentFromLeft(fn, a, 0, b, tieSeed(tp, 1))
		if math.IsNaN(p) {
			out.CC, out.CCGrad = composeCC(x, chord, b)
		} else {
			tieStore(tp, 1, p)
			slope := fn.df(p)
			fa := fn.f(a)
			env := func(z float64) (float64, float64) {
				if z <= p {
					return fa + slope*(z-a), slope
				}
				return fn.f(z), fn.df(z)
			}
			out.CC, out.CCGrad = composeCC(x, env, b)
		}
	}
	return out.Cut()
}

var (
	tanhFn = smoothFn{
		f:  math.Tanh,
		df: func(z float64) float64 { c := math.Cosh(z); return 1 / (c * c) },
		d2f: func(z float64) float64 {
			c := math.Cosh(z)
			return -2 * math.Tanh(z) / (c * c)
		},
	}
	atanFn = smoothFn{
		f:   math.Atan,
		df:  func(z float64) float64 { return 1 / (1 + z*z) },
		d2f: func(z float64) float64 { d := 1 + z*z; return -2 * z / (d * d) },
	}
	sinhFn = smoothFn{
		f:   math.Sinh,
		df:  math.Cosh,
		d2f: math.Sinh,
	}
	asinFn = smoothFn{
		f:  math.Asin,
		df: func(z float64) float64 { return 1 / math.Sqrt(1-z*z) },
		d2f: func(z float64) float64 {
			d := 1 - z*z
			return z / (d * math.Sqrt(d))
		},
	}
	tanFn = smoothFn{
		f:  math.Tan,
		df: func(z float64) float64 { c := math.Cos(z); return 1 / (c * c) },
		d2f: func(z float64) float64 {
			c := math.Cos(z)
			return 2 * math.Tan(z) / (c * c)
		},
	}
)

// Tanh returns the relaxation of tanh(x). Single tie-point family.
func Tanh(x MC, tp []float64) MC {
	return convexConcave(x, tanhFn, x.Intv.Tanh(), tp)
}

// Atan returns the relaxation of atan(x). Single tie-point family.
func Atan(x MC, tp []float64) MC {
	return convexConcave(x, atanFn, x.Intv.Atan(), tp)
}

// Sinh returns the relaxation of sinh(x). Single tie-point family.
func Sinh(x MC, tp []float64) MC {
	return concaveConvex(x, sinhFn, x.Intv.Sinh(), tp)
}

var asinDomain = interval.Interval{Lo: -1, Hi: 1}

// AsinDomain is the valid domain of Asin and Acos.
func AsinDomain() interval.Interval { return asinDomain }

// Asin returns the relaxation of asin(x) on [-1, 1]. Single tie-point
// family.
func Asin(x MC, tp []float64) (MC, error) {
	iv, err := x.Intv.Asin()
	if err != nil {
		return MC{}, domainErr("asin", x.Intv, asinDomain)
	}
	return concaveConvex(x, asinFn, iv, tp), nil
}

// Acos returns the relaxation of acos(x) = pi/2 - asin(x), reusing the
// asin envelope and tie points.
func Acos(x MC, tp []float64) (MC, error) {
	s, err := Asin(x, tp)
	if err != nil {
		return MC{}, domainErr("acos", x.Intv, asinDomain)
	}
	return AddConst(Neg(s), math.Pi/2), nil
}

// TanDomain returns the branch of tan containing the argument enclosure's
// left endpoint, used by the guard's clip policy.
func TanDomain(arg interval.Interval) interval.Interval {
	k := math.Floor((arg.Lo + math.Pi/2) / math.Pi)
	const edge = 1.0e-8
	return interval.Interval{
		Lo: -math.Pi/2 + k*math.Pi + edge,
		Hi: math.Pi/2 + k*math.Pi - edge,
	}
}

// Tan returns the relaxation of tan(x). The enclosure must stay inside a
// single branch. Single tie-point family; the inflection sits at the
// branch center, so the argument is shifted there first.
func Tan(x MC, tp []float64) (MC, error) {
	iv, err := x.Intv.Tan()
	if err != nil {
		return MC{}, domainErr("tan", x.Intv, TanDomain(x.Intv))
	}
	// Center the branch at zero: tan(x) = tan(x - k*pi).
	k := math.Round(x.Intv.Mid() / math.Pi)
	shifted := AddConst(x, -k*math.Pi)
	out := concaveConvex(shifted, tanFn, iv, tp)
	out.Intv = iv
	return out.Cut(), nil
}
