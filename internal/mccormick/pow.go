package mccormick

import (
	"math"

	"github.com/hull-opt/hull/internal/interval"
)

// PowInt returns the relaxation of x^n for integer n.
//
// x^0 and x^1 are exact and involve no envelope construction. Even powers
// are convex; odd powers >= 3 are increasing with an inflection at zero
// and use the single tie-point machinery. Negative powers compose the
// positive power with Recip and inherit its zero-free requirement.
func PowInt(x MC, n int, tp []float64) (MC, error) {
	switch {
	case n == 0:
		return One(len(x.CVGrad)), nil
	case n == 1:
		x.CVGrad = cloneVec(x.CVGrad)
		x.CCGrad = cloneVec(x.CCGrad)
		return x, nil
	case n < 0:
		p, err := PowInt(x, -n, tp)
		if err != nil {
			return MC{}, err
		}
		return Recip(p)
	}

	iv, _ := x.Intv.PowInt(n)
	fn := powFn(n)
	if n%2 == 0 {
		return convexRelax(x, fn.f, fn.df, x.Intv.Clamp(0), iv), nil
	}
	return concaveConvex(x, fn, iv, tp), nil
}

func powFn(n int) smoothFn {
	e := float64(n)
	return smoothFn{
		f:   func(z float64) float64 { return math.Pow(z, e) },
		df:  func(z float64) float64 { return e * math.Pow(z, e-1) },
		d2f: func(z float64) float64 { return e * (e - 1) * math.Pow(z, e-2) },
	}
}

// PowDomain is the valid base domain of PowFloat.
func PowDomain() interval.Interval { return logDomain }

// PowFloat returns the relaxation of x^p for a real exponent. The base
// enclosure must be strictly positive (x^p = exp(p*log x)).
func PowFloat(x MC, p float64) (MC, error) {
	switch p {
	case 0:
		return One(len(x.CVGrad)), nil
	case 1:
		x.CVGrad = cloneVec(x.CVGrad)
		x.CCGrad = cloneVec(x.CCGrad)
		return x, nil
	}
	if p == math.Trunc(p) && math.Abs(p) < 1e9 {
		return PowInt(x, int(p), nil)
	}
	iv, err := x.Intv.PowFloat(p)
	if err != nil {
		return MC{}, domainErr("pow", x.Intv, PowDomain())
	}
	f := func(z float64) float64 { return math.Pow(z, p) }
	df := func(z float64) float64 { return p * math.Pow(z, p-1) }
	if p > 0 && p < 1 {
		// Concave increasing on the positive axis.
		return concaveRelax(x, f, df, x.Intv.Hi, iv), nil
	}
	// Convex: decreasing for p < 0, increasing for p > 1.
	argmin := x.Intv.Lo
	if p < 0 {
		argmin = x.Intv.Hi
	}
	return convexRelax(x, f, df, argmin, iv), nil
}
