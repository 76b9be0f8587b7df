package mccormick

import (
	"errors"
	"math"
	"testing"

	"github.com/hull-opt/hull/internal/interval"
)

// Test helpers

const soundTol = 1e-9

func assertClose(t *testing.T, expected, actual, tol float64, msg string) {
	t.Helper()
	if math.Abs(expected-actual) > tol {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

// assertSoundAt checks the pointwise bound invariant of a relaxation of f
// at the evaluation point x, plus the interval ordering after Cut.
func assertSoundAt(t *testing.T, v MC, fx float64, msg string) {
	t.Helper()
	if v.CV > fx+soundTol {
		t.Errorf("%s: convex bound %v exceeds f = %v", msg, v.CV, fx)
	}
	if v.CC < fx-soundTol {
		t.Errorf("%s: concave bound %v falls below f = %v", msg, v.CC, fx)
	}
	if v.Intv.Lo > v.CV+soundTol || v.CV > v.CC+soundTol || v.CC > v.Intv.Hi+soundTol {
		t.Errorf("%s: bound ordering violated: lo=%v cv=%v cc=%v hi=%v",
			msg, v.Intv.Lo, v.CV, v.CC, v.Intv.Hi)
	}
}

// checkUnivariate verifies a univariate relaxation over [a, b]: at a grid
// of evaluation points the relaxation must bracket f, the affine bounds
// built from the subgradients must under/overestimate f across the whole
// interval, and the interval part must enclose the sampled range.
func checkUnivariate(t *testing.T, name string, relax func(MC) (MC, error), f func(float64) float64, a, b float64) {
	t.Helper()
	const grid = 9
	for i := 0; i <= grid; i++ {
		x := a + (b-a)*float64(i)/grid
		v, err := relax(Variable(0, 1, x, a, b))
		if err != nil {
			t.Fatalf("%s at %v: %v", name, x, err)
		}
		assertSoundAt(t, v, f(x), name)

		for j := 0; j <= grid; j++ {
			z := a + (b-a)*float64(j)/grid
			fz := f(z)
			if under := v.CV + v.CVGrad[0]*(z-x); under > fz+soundTol {
				t.Fatalf("%s: affine underestimate at x=%v violates f(%v): %v > %v",
					name, x, z, under, fz)
			}
			if over := v.CC + v.CCGrad[0]*(z-x); over < fz-soundTol {
				t.Fatalf("%s: affine overestimate at x=%v violates f(%v): %v < %v",
					name, x, z, over, fz)
			}
			if fz < v.Intv.Lo-soundTol || fz > v.Intv.Hi+soundTol {
				t.Fatalf("%s: f(%v) = %v escapes enclosure %v", name, z, fz, v.Intv)
			}
		}
	}
}

func exact(f func(MC) MC) func(MC) (MC, error) {
	return func(x MC) (MC, error) { return f(x), nil }
}

func freshTies(n int) []float64 {
	tp := make([]float64, n)
	for i := range tp {
		tp[i] = TiePointUnset
	}
	return tp
}

func TestVariableAndConstant(t *testing.T) {
	v := Variable(1, 3, 0.5, -1, 2)
	assertClose(t, 0.5, v.CV, 0, "variable cv")
	assertClose(t, 0.5, v.CC, 0, "variable cc")
	assertClose(t, 1, v.CVGrad[1], 0, "variable unit subgradient")
	assertClose(t, 0, v.CVGrad[0], 0, "variable other subgradient")
	if v.Const {
		t.Error("variable must not be marked constant")
	}

	c := Constant(3.5, 2)
	if !c.Const || c.CV != 3.5 || c.CC != 3.5 || !c.Intv.Degenerate() {
		t.Errorf("constant relaxation malformed: %+v", c)
	}
}

func TestCutClipsAndZeroesGradient(t *testing.T) {
	v := MC{
		CV:     -2,
		CC:     5,
		Intv:   interval.New(0, 3),
		CVGrad: []float64{1},
		CCGrad: []float64{2},
	}.Cut()
	assertClose(t, 0, v.CV, 0, "clipped cv")
	assertClose(t, 3, v.CC, 0, "clipped cc")
	assertClose(t, 0, v.CVGrad[0], 0, "clipped cv subgradient")
	assertClose(t, 0, v.CCGrad[0], 0, "clipped cc subgradient")
}

func TestTighten(t *testing.T) {
	cur := MC{CV: 0, CC: 4, Intv: interval.New(-1, 5), CVGrad: []float64{1}, CCGrad: []float64{1}}
	prev := MC{CV: 1, CC: 3, Intv: interval.New(0, 4), CVGrad: []float64{2}, CCGrad: []float64{-1}}
	out, err := cur.Tighten(prev)
	if err != nil {
		t.Fatalf("tighten: %v", err)
	}
	assertClose(t, 1, out.CV, 0, "tightened cv comes from prev")
	assertClose(t, 3, out.CC, 0, "tightened cc comes from prev")
	assertClose(t, 2, out.CVGrad[0], 0, "cv subgradient follows the tighter bound")
	assertClose(t, 0, out.Intv.Lo, 0, "intersected lo")
	assertClose(t, 4, out.Intv.Hi, 0, "intersected hi")

	disjoint := MC{CV: 9, CC: 9, Intv: interval.New(8, 10), CVGrad: []float64{0}, CCGrad: []float64{0}}
	if _, err := cur.Tighten(disjoint); err == nil {
		t.Fatal("expected error for disjoint enclosures")
	}
}

func TestTightenRange(t *testing.T) {
	// Only the intervals intersect; the prior cv/cc belong to a
	// different evaluation point and must be ignored even when they look
	// tighter.
	cur := MC{CV: 0.5, CC: 1.5, Intv: interval.New(-2, 3), CVGrad: []float64{1}, CCGrad: []float64{1}}
	prev := MC{CV: 2.9, CC: 2.9, Intv: interval.New(0, 2), CVGrad: []float64{7}, CCGrad: []float64{7}}
	out, err := cur.TightenRange(prev)
	if err != nil {
		t.Fatalf("tighten range: %v", err)
	}
	assertClose(t, 0, out.Intv.Lo, 0, "intersected lo")
	assertClose(t, 2, out.Intv.Hi, 0, "intersected hi")
	assertClose(t, 0.5, out.CV, 0, "cv untouched")
	assertClose(t, 1.5, out.CC, 0, "cc untouched")
	assertClose(t, 1, out.CVGrad[0], 0, "cv subgradient untouched")

	disjoint := MC{CV: 9, CC: 9, Intv: interval.New(8, 10), CVGrad: []float64{0}, CCGrad: []float64{0}}
	if _, err := cur.TightenRange(disjoint); err == nil {
		t.Fatal("expected error for disjoint enclosures")
	}
}

func TestAddSubNeg(t *testing.T) {
	x := Variable(0, 2, 1, -1, 2)
	y := Variable(1, 2, 0.5, 0, 3)

	s := Add(x, y)
	assertClose(t, 1.5, s.CV, soundTol, "sum cv")
	assertClose(t, 1.5, s.CC, soundTol, "sum cc")
	assertClose(t, 1, s.CVGrad[0], soundTol, "sum subgradient x")
	assertClose(t, 1, s.CVGrad[1], soundTol, "sum subgradient y")

	d := Sub(x, y)
	assertClose(t, 0.5, d.CV, soundTol, "difference cv")
	assertClose(t, -1, d.CVGrad[1], soundTol, "difference subgradient y")

	n := Neg(x)
	assertClose(t, -1, n.CV, soundTol, "negation cv")
	assertClose(t, -1, n.CVGrad[0], soundTol, "negation subgradient")
	assertClose(t, -2, n.Intv.Lo, soundTol, "negation lo")
}

func TestMulBilinear(t *testing.T) {
	x := Variable(0, 2, 1, -2, 3)
	y := Variable(1, 2, 2, 1, 4)
	p := Mul(x, y)

	// max(yL*x + xL*y - xL*yL, yU*x + xU*y - xU*yU) at (1, 2).
	assertClose(t, -1, p.CV, soundTol, "product cv")
	assertClose(t, 4, p.CC, soundTol, "product cc")
	assertSoundAt(t, p, 2, "product at (1, 2)")

	// The bilinear bounds must hold across the whole box.
	for i := 0; i <= 8; i++ {
		for j := 0; j <= 8; j++ {
			zx := -2 + 5*float64(i)/8
			zy := 1 + 3*float64(j)/8
			f := zx * zy
			under := p.CV + p.CVGrad[0]*(zx-1) + p.CVGrad[1]*(zy-2)
			over := p.CC + p.CCGrad[0]*(zx-1) + p.CCGrad[1]*(zy-2)
			if under > f+soundTol {
				t.Fatalf("product underestimate violated at (%v, %v): %v > %v", zx, zy, under, f)
			}
			if over < f-soundTol {
				t.Fatalf("product overestimate violated at (%v, %v): %v < %v", zx, zy, over, f)
			}
		}
	}
}

func TestMulConstSwapsSides(t *testing.T) {
	x := Variable(0, 1, 1, 0, 2)
	m := MulConst(x, -3)
	assertClose(t, -3, m.CV, soundTol, "scaled cv")
	assertClose(t, -3, m.CVGrad[0], soundTol, "scaled subgradient")
	assertClose(t, -6, m.Intv.Lo, soundTol, "scaled lo")
}

func TestUnivariateSoundness(t *testing.T) {
	tests := []struct {
		name  string
		relax func(MC) (MC, error)
		f     func(float64) float64
		a, b  float64
	}{
		{"exp", exact(Exp), math.Exp, -1, 2},
		{"log", Log, math.Log, 0.5, 4},
		{"sqrt", Sqrt, math.Sqrt, 0.25, 9},
		{"abs", exact(Abs), math.Abs, -2, 3},
		{"cosh", exact(Cosh), math.Cosh, -1, 2},
		{"recip positive", Recip, func(z float64) float64 { return 1 / z }, 0.5, 3},
		{"recip negative", Recip, func(z float64) float64 { return 1 / z }, -3, -0.5},
		{"tanh", func(x MC) (MC, error) { return Tanh(x, freshTies(2)), nil }, math.Tanh, -2, 3},
		{"atan", func(x MC) (MC, error) { return Atan(x, freshTies(2)), nil }, math.Atan, -4, 2},
		{"sinh", func(x MC) (MC, error) { return Sinh(x, freshTies(2)), nil }, math.Sinh, -2, 2},
		{"asin", func(x MC) (MC, error) { return Asin(x, freshTies(2)) }, math.Asin, -0.9, 0.8},
		{"acos", func(x MC) (MC, error) { return Acos(x, freshTies(2)) }, math.Acos, -0.9, 0.8},
		{"tan", func(x MC) (MC, error) { return Tan(x, freshTies(2)) }, math.Tan, -0.5, 1.2},
		{"cube", func(x MC) (MC, error) { return PowInt(x, 3, freshTies(2)) },
			func(z float64) float64 { return z * z * z }, -2, 2},
		{"square", func(x MC) (MC, error) { return PowInt(x, 2, nil) },
			func(z float64) float64 { return z * z }, -2, 3},
		{"pow 1.5", func(x MC) (MC, error) { return PowFloat(x, 1.5) },
			func(z float64) float64 { return math.Pow(z, 1.5) }, 0.5, 4},
		{"pow 0.5", func(x MC) (MC, error) { return PowFloat(x, 0.5) },
			math.Sqrt, 0.5, 4},
		{"pow -2", func(x MC) (MC, error) { return PowFloat(x, -2) },
			func(z float64) float64 { return 1 / (z * z) }, 0.5, 3},
		{"sin", func(x MC) (MC, error) { return Sin(x, freshTies(4)), nil }, math.Sin, -1, 4},
		{"cos", func(x MC) (MC, error) { return Cos(x, freshTies(4)), nil }, math.Cos, -2, 3},
		{"cos valley", func(x MC) (MC, error) { return Cos(x, freshTies(4)), nil }, math.Cos, 2, 4},
		{"cos wide", func(x MC) (MC, error) { return Cos(x, freshTies(4)), nil }, math.Cos, -5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkUnivariate(t, tt.name, tt.relax, tt.f, tt.a, tt.b)
		})
	}
}

func TestDivSoundness(t *testing.T) {
	x := Variable(0, 2, 1, -1, 2)
	y := Variable(1, 2, 2, 1, 4)
	q, err := Div(x, y)
	if err != nil {
		t.Fatalf("div: %v", err)
	}
	assertSoundAt(t, q, 0.5, "quotient at (1, 2)")

	for i := 0; i <= 8; i++ {
		for j := 0; j <= 8; j++ {
			zx := -1 + 3*float64(i)/8
			zy := 1 + 3*float64(j)/8
			f := zx / zy
			if f < q.Intv.Lo-soundTol || f > q.Intv.Hi+soundTol {
				t.Fatalf("quotient %v/%v = %v escapes %v", zx, zy, f, q.Intv)
			}
		}
	}
}

func TestDivByZeroContainingInterval(t *testing.T) {
	x := Variable(0, 2, 1, 1, 2)
	y := Variable(1, 2, 0.5, -1, 1)
	_, err := Div(x, y)
	var de *DomainError
	if !errors.As(err, &de) {
		t.Fatalf("expected DomainError, got %v", err)
	}
	if de.Op != "recip" {
		t.Errorf("unexpected op in domain error: %q", de.Op)
	}
}

func TestPowIdentities(t *testing.T) {
	x := Variable(0, 1, 1.3, -1, 2)

	p1, err := PowInt(x, 1, nil)
	if err != nil {
		t.Fatalf("pow 1: %v", err)
	}
	assertClose(t, x.CV, p1.CV, 0, "first power cv")
	assertClose(t, x.CC, p1.CC, 0, "first power cc")
	assertClose(t, x.CVGrad[0], p1.CVGrad[0], 0, "first power subgradient")

	p0, err := PowInt(x, 0, nil)
	if err != nil {
		t.Fatalf("pow 0: %v", err)
	}
	if !p0.Const || p0.CV != 1 || p0.CC != 1 || !p0.Intv.Degenerate() {
		t.Errorf("zeroth power must be the exact constant one, got %+v", p0)
	}
}

func TestGuardInfeasible(t *testing.T) {
	g := Guard{Mode: GuardInfeasible}
	x := Variable(0, 1, 0.5, -1, 4)
	_, err := g.Apply(x, LogDomain(), Log)
	var de *DomainError
	if !errors.As(err, &de) {
		t.Fatalf("expected DomainError, got %v", err)
	}
	if de.Op != "log" {
		t.Errorf("unexpected op: %q", de.Op)
	}
}

func TestGuardClip(t *testing.T) {
	g := Guard{Mode: GuardClip}
	x := Variable(0, 1, 2, -1, 4)
	out, err := g.Apply(x, LogDomain(), Log)
	if err != nil {
		t.Fatalf("clip retry: %v", err)
	}
	// After clipping to the positive part the enclosure tops out at log 4.
	assertClose(t, math.Log(4), out.Intv.Hi, 1e-9, "clipped upper bound")
	assertSoundAt(t, out, math.Log(2), "log after clip")
}

func TestGuardClipWhollyOutside(t *testing.T) {
	g := Guard{Mode: GuardClip}
	x := Variable(0, 1, -2, -4, -1)
	_, err := g.Apply(x, SqrtDomain(), Sqrt)
	var de *DomainError
	if !errors.As(err, &de) {
		t.Fatalf("expected DomainError for argument wholly outside the domain, got %v", err)
	}
}

func TestTiePointMemoization(t *testing.T) {
	tp := freshTies(2)
	x := Variable(0, 1, 0.5, -1, 2)
	first := Tanh(x, tp)
	if tp[0] == TiePointUnset {
		t.Fatal("mixed-sign tanh enclosure must record a convex-side tie point")
	}
	seed := tp[0]

	// A second pass over the same box reuses the seed and lands on the
	// same envelope.
	second := Tanh(Variable(0, 1, 1.1, -1, 2), tp)
	assertClose(t, seed, tp[0], 1e-8, "tie point stable across passes")
	if second.CV > math.Tanh(1.1)+soundTol {
		t.Errorf("reseeded envelope unsound: cv=%v", second.CV)
	}
	_ = first
}

func TestSolveTie(t *testing.T) {
	// Root of cos on [1, 2] is pi/2.
	p := solveTie(math.Cos, func(z float64) float64 { return -math.Sin(z) }, 1, 2, TiePointUnset)
	assertClose(t, math.Pi/2, p, 1e-9, "newton root of cos")

	// No sign change means no crossing.
	if !math.IsNaN(solveTie(math.Exp, math.Exp, 0, 1, TiePointUnset)) {
		t.Error("expected NaN when the bracket has no sign change")
	}
}
