package mccormick

import (
	"math"

	"github.com/hull-opt/hull/internal/interval"
)

var cosFn = smoothFn{
	f:   math.Cos,
	df:  func(z float64) float64 { return -math.Sin(z) },
	d2f: func(z float64) float64 { return -math.Cos(z) },
}

const (
	halfPi    = math.Pi / 2
	threePiO2 = 3 * math.Pi / 2
	twoPi     = 2 * math.Pi
)

func tieSub(tp []float64, i int) []float64 {
	if tp == nil {
		return nil
	}
	return tp[i : i+2]
}

// cosLower builds the convex envelope of cos over [a, b] and returns its
// evaluator together with the envelope's argmin. Depending on where the
// interval falls relative to the concave humps of cos, the envelope is
// the function itself, a chord, or one or two endpoint-anchored tangent
// lines; the tangency points are memoized in tp[0] (left) and tp[1]
// (right).
func cosLower(a, b float64, tp []float64) (func(z float64) (float64, float64), float64) {
	if b-a >= twoPi {
		return func(float64) (float64, float64) { return -1, 0 }, a
	}

	// Shift so the left endpoint falls in [-pi/2, 3*pi/2): cos is then
	// concave on [-pi/2, pi/2], convex on [pi/2, 3*pi/2], and concave
	// again on [3*pi/2, 5*pi/2].
	k := math.Floor((a + halfPi) / twoPi)
	shift := twoPi * k
	a -= shift
	b -= shift
	unshift := func(env func(float64) (float64, float64), argmin float64) (func(float64) (float64, float64), float64) {
		return func(z float64) (float64, float64) { return env(z - shift) }, argmin + shift
	}

	chord := secant(math.Cos(a), math.Cos(b), a, b)
	chordArgmin := func() float64 {
		if _, s := chord(a); s > 0 {
			return a
		}
		return b
	}
	cosEval := func(z float64) (float64, float64) { return math.Cos(z), -math.Sin(z) }

	switch {
	case b <= halfPi:
		// Entirely on a concave hump.
		return unshift(chord, chordArgmin())

	case a >= halfPi && b <= threePiO2:
		// Entirely on the convex valley.
		return unshift(cosEval, math.Min(math.Max(a, math.Pi), b))

	case a < halfPi && b <= threePiO2:
		// Concave hump into the valley: tangent from the left endpoint.
		p := tangentFromLeft(cosFn, a, halfPi, b, tieSeed(tp, 0))
		if math.IsNaN(p) {
			return unshift(chord, chordArgmin())
		}
		tieStore(tp, 0, p)
		slope := -math.Sin(p)
		fa := math.Cos(a)
		env := func(z float64) (float64, float64) {
			if z <= p {
				return fa + slope*(z-a), slope
			}
			return math.Cos(z), -math.Sin(z)
		}
		return unshift(env, math.Min(math.Pi, b))

	case a >= halfPi:
		// Valley into the next concave hump: tangent from the right
		// endpoint.
		q := tangentFromRight(cosFn, b, a, threePiO2, tieSeed(tp, 1))
		if math.IsNaN(q) {
			return unshift(chord, chordArgmin())
		}
		tieStore(tp, 1, q)
		slope := -math.Sin(q)
		fb := math.Cos(b)
		env := func(z float64) (float64, float64) {
			if z >= q {
				return fb + slope*(z-b), slope
			}
			return math.Cos(z), -math.Sin(z)
		}
		return unshift(env, math.Min(math.Max(a, math.Pi), q))
	}

	// Hump, valley, hump: tangents from both endpoints. Both tangencies
	// exist because cos reaches -1 between the two anchors.
	p := tangentFromLeft(cosFn, a, halfPi, math.Pi, tieSeed(tp, 0))
	q := tangentFromRight(cosFn, b, math.Pi, threePiO2, tieSeed(tp, 1))
	if math.IsNaN(p) || math.IsNaN(q) {
		return unshift(chord, chordArgmin())
	}
	tieStore(tp, 0, p)
	tieStore(tp, 1, q)
	slopeP := -math.Sin(p)
	slopeQ := -math.Sin(q)
	fa := math.Cos(a)
	fb := math.Cos(b)
	env := func(z float64) (float64, float64) {
		switch {
		case z <= p:
			return fa + slopeP*(z-a), slopeP
		case z >= q:
			return fb + slopeQ*(z-b), slopeQ
		}
		return math.Cos(z), -math.Sin(z)
	}
	return unshift(env, math.Pi)
}

// Cos returns the relaxation of cos(x). Double tie-point family: the
// convex side memoizes its tangency points in tp[0..1], the concave side
// (the convex envelope of -cos, shifted by pi and negated) in tp[2..3].
func Cos(x MC, tp []float64) MC {
	iv := x.Intv.Cos()
	if !isFinite(x.Intv) {
		return flatRelax(x, interval.New(-1, 1))
	}
	out := MC{Intv: iv, Const: x.Const}

	env, argmin := cosLower(x.Intv.Lo, x.Intv.Hi, tieSub(tp, 0))
	out.CV, out.CVGrad = composeCV(x, env, argmin)

	// cos(z) = -cos(z + pi): the concave envelope is the negated convex
	// envelope of the pi-shifted argument.
	envN, argminN := cosLower(x.Intv.Lo+math.Pi, x.Intv.Hi+math.Pi, tieSub(tp, 2))
	envCC := func(z float64) (float64, float64) {
		v, s := envN(z + math.Pi)
		return -v, -s
	}
	out.CC, out.CCGrad = composeCC(x, envCC, argminN-math.Pi)

	return out.Cut()
}

// Sin returns the relaxation of sin(x) = cos(x - pi/2), sharing the
// cosine envelope machinery and tie-point slots.
func Sin(x MC, tp []float64) MC {
	return Cos(AddConst(x, -halfPi), tp)
}
