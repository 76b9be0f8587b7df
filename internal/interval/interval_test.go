package interval

import (
	"math"
	"testing"
)

// Test helpers

func assertClose(t *testing.T, expected, actual float64, msg string) {
	t.Helper()
	if math.Abs(expected-actual) > 1e-12 {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

func assertInterval(t *testing.T, iv Interval, lo, hi float64, msg string) {
	t.Helper()
	assertClose(t, lo, iv.Lo, msg+" (lo)")
	assertClose(t, hi, iv.Hi, msg+" (hi)")
}

// assertEncloses samples f over a and checks every image stays inside
// the computed enclosure, allowing for rounding slack.
func assertEncloses(t *testing.T, a, out Interval, f func(float64) float64, msg string) {
	t.Helper()
	const samples = 64
	for i := 0; i <= samples; i++ {
		z := a.Lo + a.Width()*float64(i)/samples
		v := f(z)
		if v < out.Lo-1e-9 || v > out.Hi+1e-9 {
			t.Fatalf("%s: f(%v) = %v escapes %v", msg, z, v, out)
		}
	}
}

func TestNewPanicsOnInvertedEndpoints(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for inverted endpoints")
		}
	}()
	New(2, 1)
}

func TestNewPanicsOnNaN(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for NaN endpoint")
		}
	}()
	New(math.NaN(), 1)
}

func TestBasicProperties(t *testing.T) {
	a := New(-1, 3)
	assertClose(t, 4, a.Width(), "width")
	assertClose(t, 1, a.Mid(), "mid")
	if !a.Contains(0) || !a.ContainsZero() {
		t.Error("expected [-1, 3] to contain zero")
	}
	if a.Contains(3.5) {
		t.Error("[-1, 3] should not contain 3.5")
	}
	if !a.In(New(-2, 4)) {
		t.Error("[-1, 3] should be a subset of [-2, 4]")
	}
	if a.In(New(0, 4)) {
		t.Error("[-1, 3] should not be a subset of [0, 4]")
	}
	assertClose(t, -1, a.Clamp(-5), "clamp below")
	assertClose(t, 3, a.Clamp(7), "clamp above")
	assertClose(t, 2, a.Clamp(2), "clamp inside")
	if !Point(2).Degenerate() {
		t.Error("point interval should be degenerate")
	}
}

func TestMidUnbounded(t *testing.T) {
	assertClose(t, 0, Entire().Mid(), "mid of entire line")
	assertClose(t, 5, Interval{Lo: math.Inf(-1), Hi: 5}.Mid(), "mid of (-inf, 5]")
	assertClose(t, -3, Interval{Lo: -3, Hi: math.Inf(1)}.Mid(), "mid of [-3, inf)")
}

func TestArithmetic(t *testing.T) {
	a := New(-1, 2)
	b := New(3, 5)
	assertInterval(t, a.Add(b), 2, 7, "add")
	assertInterval(t, a.Sub(b), -6, -1, "sub")
	assertInterval(t, a.Neg(), -2, 1, "neg")
	assertInterval(t, a.AddConst(10), 9, 12, "add const")
	assertInterval(t, a.MulConst(2), -2, 4, "mul const")
	assertInterval(t, a.MulConst(-2), -4, 2, "mul negative const")
}

func TestMul(t *testing.T) {
	tests := []struct {
		a, b   Interval
		lo, hi float64
	}{
		{New(1, 2), New(3, 4), 3, 8},
		{New(-2, 3), New(1, 4), -8, 12},
		{New(-2, -1), New(-4, -3), 3, 8},
		{New(-1, 1), New(-1, 1), -1, 1},
		{New(0, 0), Entire(), 0, 0}, // 0 * inf = 0 convention
	}
	for _, tt := range tests {
		assertInterval(t, tt.a.Mul(tt.b), tt.lo, tt.hi, "mul "+tt.a.String()+" * "+tt.b.String())
	}
}

func TestDiv(t *testing.T) {
	q, err := New(1, 2).Div(New(2, 4))
	if err != nil {
		t.Fatalf("div: %v", err)
	}
	assertInterval(t, q, 0.25, 1, "div positive")

	if _, err := New(1, 2).Div(New(-1, 1)); err == nil {
		t.Fatal("expected error dividing by an interval containing zero")
	}
	if _, err := New(1, 2).Recip(); err != nil {
		t.Fatalf("recip of zero-free interval: %v", err)
	}
}

func TestIntersectAndHull(t *testing.T) {
	iv, err := New(0, 3).Intersect(New(2, 5))
	if err != nil {
		t.Fatalf("intersect: %v", err)
	}
	assertInterval(t, iv, 2, 3, "intersection")

	if _, err := New(0, 1).Intersect(New(2, 3)); err == nil {
		t.Fatal("expected error for disjoint intersection")
	}
	assertInterval(t, New(0, 1).Hull(New(2, 3)), 0, 3, "hull")
}

func TestPowInt(t *testing.T) {
	sq, err := New(-2, 3).PowInt(2)
	if err != nil {
		t.Fatalf("pow 2: %v", err)
	}
	assertInterval(t, sq, 0, 9, "square straddling zero")

	cube, err := New(-2, 3).PowInt(3)
	if err != nil {
		t.Fatalf("pow 3: %v", err)
	}
	assertInterval(t, cube, -8, 27, "cube")

	inv, err := New(2, 4).PowInt(-1)
	if err != nil {
		t.Fatalf("pow -1: %v", err)
	}
	assertInterval(t, inv, 0.25, 0.5, "reciprocal via PowInt")

	if _, err := New(-1, 1).PowInt(-2); err == nil {
		t.Fatal("expected error for negative power of zero-containing interval")
	}

	one, err := New(-5, 5).PowInt(0)
	if err != nil {
		t.Fatalf("pow 0: %v", err)
	}
	assertInterval(t, one, 1, 1, "zeroth power")
}

func TestTranscendentalEnclosures(t *testing.T) {
	tests := []struct {
		name string
		arg  Interval
		f    func(float64) float64
		eval func(Interval) Interval
	}{
		{"exp", New(-1, 2), math.Exp, Interval.Exp},
		{"sinh", New(-2, 2), math.Sinh, Interval.Sinh},
		{"cosh", New(-1, 2), math.Cosh, Interval.Cosh},
		{"tanh", New(-3, 1), math.Tanh, Interval.Tanh},
		{"atan", New(-4, 4), math.Atan, Interval.Atan},
		{"abs", New(-2, 1), math.Abs, Interval.Abs},
	}
	for _, tt := range tests {
		assertEncloses(t, tt.arg, tt.eval(tt.arg), tt.f, tt.name)
	}
}

func TestPartialFunctions(t *testing.T) {
	lg, err := New(1, math.E).Log()
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	assertInterval(t, lg, 0, 1, "log [1, e]")
	if _, err := New(0, 1).Log(); err == nil {
		t.Fatal("expected error for log touching zero")
	}

	sq, err := New(0, 4).Sqrt()
	if err != nil {
		t.Fatalf("sqrt: %v", err)
	}
	assertInterval(t, sq, 0, 2, "sqrt [0, 4]")
	if _, err := New(-1, 4).Sqrt(); err == nil {
		t.Fatal("expected error for sqrt of negative interval")
	}

	as, err := New(-1, 1).Asin()
	if err != nil {
		t.Fatalf("asin: %v", err)
	}
	assertInterval(t, as, -math.Pi/2, math.Pi/2, "asin [-1, 1]")
	if _, err := New(-2, 0).Asin(); err == nil {
		t.Fatal("expected error for asin outside [-1, 1]")
	}

	ac, err := New(0, 1).Acos()
	if err != nil {
		t.Fatalf("acos: %v", err)
	}
	assertInterval(t, ac, 0, math.Pi/2, "acos [0, 1]")

	tn, err := New(-0.5, 1).Tan()
	if err != nil {
		t.Fatalf("tan: %v", err)
	}
	assertEncloses(t, New(-0.5, 1), tn, math.Tan, "tan in one branch")
	if _, err := New(0, 2).Tan(); err == nil {
		t.Fatal("expected error for tan crossing a pole")
	}
}

func TestSinCos(t *testing.T) {
	tests := []struct {
		name string
		arg  Interval
	}{
		{"cos inside hump", New(-0.5, 0.5)},
		{"cos over valley", New(2, 4)},
		{"cos across min", New(1, 7)},
		{"cos wide", New(-10, 10)},
		{"cos shifted", New(100, 101)},
		{"sin quarter", New(0, math.Pi / 2)},
		{"sin full", New(0, 2 * math.Pi)},
		{"sin negative", New(-4, -2)},
	}
	for _, tt := range tests {
		var out Interval
		var f func(float64) float64
		if tt.name[0] == 'c' {
			out, f = tt.arg.Cos(), math.Cos
		} else {
			out, f = tt.arg.Sin(), math.Sin
		}
		assertEncloses(t, tt.arg, out, f, tt.name)
		if out.Lo < -1-1e-12 || out.Hi > 1+1e-12 {
			t.Errorf("%s: enclosure %v leaves [-1, 1]", tt.name, out)
		}
	}

	// The exact extrema are hit when the argument covers them.
	full := New(0, 7).Cos()
	assertInterval(t, full, -1, 1, "cos over a full period")
}

func TestPowFloat(t *testing.T) {
	p, err := New(1, 4).PowFloat(0.5)
	if err != nil {
		t.Fatalf("pow 0.5: %v", err)
	}
	assertEncloses(t, New(1, 4), p, math.Sqrt, "x^0.5")

	if _, err := New(-1, 4).PowFloat(0.5); err == nil {
		t.Fatal("expected error for fractional power of non-positive base")
	}
}
