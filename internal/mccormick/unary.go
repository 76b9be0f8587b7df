package mccormick

import (
	"math"

	"github.com/hull-opt/hull/internal/interval"
)

// composeCV evaluates the convex side of a univariate composition: the
// lower envelope at mid3(x.CV, x.CC, argmin) with the chained
// subgradient. env returns value and slope at a point.
func composeCV(x MC, env func(z float64) (float64, float64), argmin float64) (float64, []float64) {
	z, sel := mid3(x.CV, x.CC, argmin)
	val, slope := env(z)
	return val, chainGrad(x, sel, slope, len(x.CVGrad))
}

// composeCC mirrors composeCV for the concave side, with the envelope's
// argmax in place of the argmin.
func composeCC(x MC, env func(z float64) (float64, float64), argmax float64) (float64, []float64) {
	z, sel := mid3(x.CV, x.CC, argmax)
	val, slope := env(z)
	return val, chainGrad(x, sel, slope, len(x.CVGrad))
}

// convexRelax relaxes a convex univariate f over x. The function itself
// is the lower envelope (evaluated toward its argmin); the chord between
// the interval endpoints is the upper envelope.
func convexRelax(x MC, f, df func(float64) float64, argmin float64, iv interval.Interval) MC {
	n := len(x.CVGrad)
	out := MC{Intv: iv, Const: x.Const}

	fn := func(z float64) (float64, float64) { return f(z), df(z) }
	out.CV, out.CVGrad = composeCV(x, fn, argmin)

	a, b := x.Intv.Lo, x.Intv.Hi
	if !isFinite(x.Intv) {
		out.CC = iv.Hi
		out.CCGrad = zeros(n)
		return out.Cut()
	}
	chord := secant(f(a), f(b), a, b)
	argmax := a
	if _, s := chord(a); s > 0 {
		argmax = b
	}
	out.CC, out.CCGrad = composeCC(x, chord, argmax)
	return out.Cut()
}

// concaveRelax mirrors convexRelax for a concave univariate.
func concaveRelax(x MC, f, df func(float64) float64, argmax float64, iv interval.Interval) MC {
	n := len(x.CVGrad)
	out := MC{Intv: iv, Const: x.Const}

	fn := func(z float64) (float64, float64) { return f(z), df(z) }
	out.CC, out.CCGrad = composeCC(x, fn, argmax)

	a, b := x.Intv.Lo, x.Intv.Hi
	if !isFinite(x.Intv) {
		out.CV = iv.Lo
		out.CVGrad = zeros(n)
		return out.Cut()
	}
	chord := secant(f(a), f(b), a, b)
	argmin := b
	if _, s := chord(a); s > 0 {
		argmin = a
	}
	out.CV, out.CVGrad = composeCV(x, chord, argmin)
	return out.Cut()
}

// Exp returns the relaxation of exp(x). Convex increasing, so the argmin
// is the left edge of the argument enclosure.
func Exp(x MC) MC {
	return convexRelax(x, math.Exp, math.Exp, x.Intv.Lo, x.Intv.Exp())
}

var logDomain = interval.Interval{Lo: math.SmallestNonzeroFloat64, Hi: math.Inf(1)}

// LogDomain is the valid domain of Log, used by the guard's clip policy.
func LogDomain() interval.Interval { return logDomain }

// Log returns the relaxation of log(x). Concave increasing on (0, inf);
// an argument enclosure touching zero is a domain violation.
func Log(x MC) (MC, error) {
	iv, err := x.Intv.Log()
	if err != nil {
		return MC{}, domainErr("log", x.Intv, logDomain)
	}
	return concaveRelax(x, math.Log, func(z float64) float64 { return 1 / z }, x.Intv.Hi, iv), nil
}

var sqrtDomain = interval.Interval{Lo: 0, Hi: math.Inf(1)}

// SqrtDomain is the valid domain of Sqrt.
func SqrtDomain() interval.Interval { return sqrtDomain }

// Sqrt returns the relaxation of sqrt(x). Concave increasing on [0, inf).
func Sqrt(x MC) (MC, error) {
	iv, err := x.Intv.Sqrt()
	if err != nil {
		return MC{}, domainErr("sqrt", x.Intv, sqrtDomain)
	}
	df := func(z float64) float64 {
		if z <= 0 {
			// One-sided slope at the domain edge; any large finite value
			// is a valid supergradient choice after Cut.
			return math.MaxFloat64
		}
		return 0.5 / math.Sqrt(z)
	}
	return concaveRelax(x, math.Sqrt, df, x.Intv.Hi, iv), nil
}

// Abs returns the relaxation of |x|. Convex with argmin at the point of
// the enclosure closest to zero.
func Abs(x MC) MC {
	argmin := x.Intv.Clamp(0)
	df := func(z float64) float64 {
		if z < 0 {
			return -1
		}
		if z > 0 {
			return 1
		}
		return 0
	}
	return convexRelax(x, math.Abs, df, argmin, x.Intv.Abs())
}

// Cosh returns the relaxation of cosh(x). Convex with argmin at the point
// of the enclosure closest to zero.
func Cosh(x MC) MC {
	return convexRelax(x, math.Cosh, math.Sinh, x.Intv.Clamp(0), x.Intv.Cosh())
}
