// Package interval implements closed floating-point interval arithmetic.
//
// An Interval is a pair [Lo, Hi] of float64 endpoints enclosing a set of
// reals. Operations return the tightest representable enclosure of the
// exact result set; partial operations (division by an interval containing
// zero, intersection of disjoint intervals) return explicit errors instead
// of NaN endpoints.
package interval

import (
	"fmt"
	"math"
)

// Interval is a closed interval [Lo, Hi]. The zero value is the
// degenerate interval [0, 0].
type Interval struct {
	Lo float64
	Hi float64
}

// New creates the interval [lo, hi]. Panics if lo > hi or either endpoint
// is NaN; malformed endpoints are a programming error, not a runtime
// condition.
func New(lo, hi float64) Interval {
	if math.IsNaN(lo) || math.IsNaN(hi) || lo > hi {
		panic(fmt.Sprintf("interval: invalid endpoints [%g, %g]", lo, hi))
	}
	return Interval{Lo: lo, Hi: hi}
}

// Point creates the degenerate interval [v, v].
func Point(v float64) Interval {
	return New(v, v)
}

// Entire returns the unbounded interval (-inf, +inf).
func Entire() Interval {
	return Interval{Lo: math.Inf(-1), Hi: math.Inf(1)}
}

// Width returns Hi - Lo.
func (a Interval) Width() float64 {
	return a.Hi - a.Lo
}

// Mid returns the midpoint. For half-unbounded intervals it returns the
// finite endpoint; for the entire line it returns 0.
func (a Interval) Mid() float64 {
	loInf := math.IsInf(a.Lo, -1)
	hiInf := math.IsInf(a.Hi, 1)
	switch {
	case loInf && hiInf:
		return 0
	case loInf:
		return a.Hi
	case hiInf:
		return a.Lo
	}
	return 0.5 * (a.Lo + a.Hi)
}

// Contains reports whether v lies in [Lo, Hi].
func (a Interval) Contains(v float64) bool {
	return a.Lo <= v && v <= a.Hi
}

// ContainsZero reports whether 0 lies in [Lo, Hi].
func (a Interval) ContainsZero() bool {
	return a.Contains(0)
}

// In reports whether a is a subset of b.
func (a Interval) In(b Interval) bool {
	return b.Lo <= a.Lo && a.Hi <= b.Hi
}

// Degenerate reports whether Lo == Hi.
func (a Interval) Degenerate() bool {
	return a.Lo == a.Hi
}

// Clamp returns v restricted to [Lo, Hi].
func (a Interval) Clamp(v float64) float64 {
	if v < a.Lo {
		return a.Lo
	}
	if v > a.Hi {
		return a.Hi
	}
	return v
}

// String returns "[lo, hi]".
func (a Interval) String() string {
	return fmt.Sprintf("[%g, %g]", a.Lo, a.Hi)
}

// Add returns a + b.
func (a Interval) Add(b Interval) Interval {
	return Interval{Lo: a.Lo + b.Lo, Hi: a.Hi + b.Hi}
}

// AddConst returns a + c.
func (a Interval) AddConst(c float64) Interval {
	return Interval{Lo: a.Lo + c, Hi: a.Hi + c}
}

// Sub returns a - b.
func (a Interval) Sub(b Interval) Interval {
	return Interval{Lo: a.Lo - b.Hi, Hi: a.Hi - b.Lo}
}

// Neg returns -a.
func (a Interval) Neg() Interval {
	return Interval{Lo: -a.Hi, Hi: -a.Lo}
}

// Mul returns a * b.
func (a Interval) Mul(b Interval) Interval {
	p1 := mulEndpoint(a.Lo, b.Lo)
	p2 := mulEndpoint(a.Lo, b.Hi)
	p3 := mulEndpoint(a.Hi, b.Lo)
	p4 := mulEndpoint(a.Hi, b.Hi)
	return Interval{
		Lo: math.Min(math.Min(p1, p2), math.Min(p3, p4)),
		Hi: math.Max(math.Max(p1, p2), math.Max(p3, p4)),
	}
}

// mulEndpoint multiplies endpoints with the convention 0 * inf = 0, which
// is the correct enclosure endpoint for interval products.
func mulEndpoint(x, y float64) float64 {
	if x == 0 || y == 0 {
		return 0
	}
	return x * y
}

// MulConst returns a * c.
func (a Interval) MulConst(c float64) Interval {
	if c >= 0 {
		return Interval{Lo: mulEndpoint(a.Lo, c), Hi: mulEndpoint(a.Hi, c)}
	}
	return Interval{Lo: mulEndpoint(a.Hi, c), Hi: mulEndpoint(a.Lo, c)}
}

// Div returns a / b. An error is returned when b contains zero: the
// quotient set is then unbounded (or undefined) and the caller decides
// how to treat the box.
func (a Interval) Div(b Interval) (Interval, error) {
	r, err := b.Recip()
	if err != nil {
		return Interval{}, err
	}
	return a.Mul(r), nil
}

// Recip returns 1 / a for a zero-free interval, and an error otherwise.
func (a Interval) Recip() (Interval, error) {
	if a.ContainsZero() {
		return Interval{}, fmt.Errorf("interval: reciprocal of %v contains zero", a)
	}
	return Interval{Lo: 1 / a.Hi, Hi: 1 / a.Lo}, nil
}

// Intersect returns the intersection of a and b, or an error when the
// intervals are disjoint.
func (a Interval) Intersect(b Interval) (Interval, error) {
	lo := math.Max(a.Lo, b.Lo)
	hi := math.Min(a.Hi, b.Hi)
	if lo > hi {
		return Interval{}, fmt.Errorf("interval: empty intersection of %v and %v", a, b)
	}
	return Interval{Lo: lo, Hi: hi}, nil
}

// Hull returns the convex hull of a and b.
func (a Interval) Hull(b Interval) Interval {
	return Interval{Lo: math.Min(a.Lo, b.Lo), Hi: math.Max(a.Hi, b.Hi)}
}

// PowInt returns a^n for integer n. For negative n the interval must not
// contain zero.
func (a Interval) PowInt(n int) (Interval, error) {
	switch {
	case n == 0:
		return Point(1), nil
	case n == 1:
		return a, nil
	case n < 0:
		p, err := a.PowInt(-n)
		if err != nil {
			return Interval{}, err
		}
		return p.Recip()
	}
	if n%2 == 0 {
		lo, hi := math.Pow(a.Lo, float64(n)), math.Pow(a.Hi, float64(n))
		if a.ContainsZero() {
			return Interval{Lo: 0, Hi: math.Max(lo, hi)}, nil
		}
		return Interval{Lo: math.Min(lo, hi), Hi: math.Max(lo, hi)}, nil
	}
	return Interval{Lo: math.Pow(a.Lo, float64(n)), Hi: math.Pow(a.Hi, float64(n))}, nil
}

// monotone applies a nondecreasing function to both endpoints.
func (a Interval) monotone(f func(float64) float64) Interval {
	return Interval{Lo: f(a.Lo), Hi: f(a.Hi)}
}

// Exp returns exp(a).
func (a Interval) Exp() Interval {
	return a.monotone(math.Exp)
}

// Log returns log(a). The interval must satisfy Lo > 0.
func (a Interval) Log() (Interval, error) {
	if a.Lo <= 0 {
		return Interval{}, fmt.Errorf("interval: log of %v outside (0, inf)", a)
	}
	return a.monotone(math.Log), nil
}

// Sqrt returns sqrt(a). The interval must satisfy Lo >= 0.
func (a Interval) Sqrt() (Interval, error) {
	if a.Lo < 0 {
		return Interval{}, fmt.Errorf("interval: sqrt of %v outside [0, inf)", a)
	}
	return a.monotone(math.Sqrt), nil
}

// Abs returns |a|.
func (a Interval) Abs() Interval {
	lo, hi := math.Abs(a.Lo), math.Abs(a.Hi)
	if a.ContainsZero() {
		return Interval{Lo: 0, Hi: math.Max(lo, hi)}
	}
	return Interval{Lo: math.Min(lo, hi), Hi: math.Max(lo, hi)}
}

// Sinh returns sinh(a).
func (a Interval) Sinh() Interval {
	return a.monotone(math.Sinh)
}

// Cosh returns cosh(a).
func (a Interval) Cosh() Interval {
	lo, hi := math.Cosh(a.Lo), math.Cosh(a.Hi)
	if a.ContainsZero() {
		return Interval{Lo: 1, Hi: math.Max(lo, hi)}
	}
	return Interval{Lo: math.Min(lo, hi), Hi: math.Max(lo, hi)}
}

// Tanh returns tanh(a).
func (a Interval) Tanh() Interval {
	return a.monotone(math.Tanh)
}

// Atan returns atan(a).
func (a Interval) Atan() Interval {
	return a.monotone(math.Atan)
}

// Asin returns asin(a). The interval must lie in [-1, 1].
func (a Interval) Asin() (Interval, error) {
	if a.Lo < -1 || a.Hi > 1 {
		return Interval{}, fmt.Errorf("interval: asin of %v outside [-1, 1]", a)
	}
	return a.monotone(math.Asin), nil
}

// Acos returns acos(a). The interval must lie in [-1, 1].
func (a Interval) Acos() (Interval, error) {
	if a.Lo < -1 || a.Hi > 1 {
		return Interval{}, fmt.Errorf("interval: acos of %v outside [-1, 1]", a)
	}
	return Interval{Lo: math.Acos(a.Hi), Hi: math.Acos(a.Lo)}, nil
}

// Tan returns tan(a). The interval must lie strictly inside a single
// branch (-pi/2 + k*pi, pi/2 + k*pi).
func (a Interval) Tan() (Interval, error) {
	k := math.Floor((a.Lo + math.Pi/2) / math.Pi)
	branchHi := -math.Pi/2 + (k+1)*math.Pi
	if a.Hi >= branchHi {
		return Interval{}, fmt.Errorf("interval: tan of %v crosses a pole", a)
	}
	return a.monotone(math.Tan), nil
}

// Sin returns an enclosure of sin(a).
func (a Interval) Sin() Interval {
	return a.AddConst(-math.Pi / 2).Cos()
}

// Cos returns an enclosure of cos(a).
func (a Interval) Cos() Interval {
	if a.Width() >= 2*math.Pi {
		return Interval{Lo: -1, Hi: 1}
	}
	// Shift so the left endpoint falls in [0, 2*pi).
	k := math.Floor(a.Lo / (2 * math.Pi))
	lo := a.Lo - 2*math.Pi*k
	hi := a.Hi - 2*math.Pi*k
	cl, ch := math.Cos(lo), math.Cos(hi)
	out := Interval{Lo: math.Min(cl, ch), Hi: math.Max(cl, ch)}
	// cos attains -1 at pi (+2*pi) and +1 at 2*pi inside the shifted range.
	if lo <= math.Pi && math.Pi <= hi || lo <= 3*math.Pi && 3*math.Pi <= hi {
		out.Lo = -1
	}
	if lo <= 2*math.Pi && 2*math.Pi <= hi || lo == 0 {
		out.Hi = 1
	}
	return out
}

// PowFloat returns a^p for real exponent p. The base interval must
// satisfy Lo > 0 (a^p = exp(p*log a)).
func (a Interval) PowFloat(p float64) (Interval, error) {
	l, err := a.Log()
	if err != nil {
		return Interval{}, fmt.Errorf("interval: %v^%g needs a positive base: %w", a, p, err)
	}
	return l.MulConst(p).Exp(), nil
}
