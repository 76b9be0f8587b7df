package engine

import (
	"fmt"
	"math"

	"github.com/hull-opt/hull/internal/dag"
	"github.com/hull-opt/hull/internal/interval"
	"github.com/hull-opt/hull/internal/mccormick"
)

// lift reads child slot c as a relaxation, promoting a plain scalar to an
// exact constant relaxation.
func (e *Evaluator) lift(c int) mccormick.MC {
	if e.tape.IsNumber(c) {
		return mccormick.Constant(e.tape.Number(c), e.graph.NumVars)
	}
	return e.tape.Relaxation(c)
}

// evalCall dispatches an n-ary node. The output is a plain number exactly
// when every child is.
func (e *Evaluator) evalCall(k int, node *dag.Node) error {
	switch node.Op {
	case dag.OpSum:
		return e.evalSum(k, node.Children)
	case dag.OpMul:
		return e.evalProd(k, node.Children)
	case dag.OpSub:
		return e.evalSub(k, node.Children)
	case dag.OpDiv:
		return e.evalDiv(k, node.Children)
	case dag.OpPow:
		return e.evalPow(k, node.Children)
	}
	if node.Op.IsUser() {
		return e.evalUserNary(k, node)
	}
	panic(fmt.Sprintf("engine: unknown operator %s on validated graph", node.Op))
}

// evalSum accumulates a running scalar and a running relaxation
// separately, combining them once at the end. This keeps constant
// sub-terms out of the relaxation arithmetic entirely.
func (e *Evaluator) evalSum(k int, children []int) error {
	s := 0.0
	var acc mccormick.MC
	hasRlx := false
	for _, c := range children {
		if e.tape.IsNumber(c) {
			s += e.tape.Number(c)
			continue
		}
		r := e.tape.Relaxation(c)
		if !hasRlx {
			acc, hasRlx = r, true
		} else {
			acc = mccormick.Add(acc, r)
		}
	}
	if !hasRlx {
		e.tape.setNumber(k, s)
		return nil
	}
	return e.store(k, mccormick.AddConst(acc, s))
}

// evalProd uses the same scalar/relaxation accumulation strategy as
// evalSum.
func (e *Evaluator) evalProd(k int, children []int) error {
	p := 1.0
	var acc mccormick.MC
	hasRlx := false
	for _, c := range children {
		if e.tape.IsNumber(c) {
			p *= e.tape.Number(c)
			continue
		}
		r := e.tape.Relaxation(c)
		if !hasRlx {
			acc, hasRlx = r, true
		} else {
			acc = mccormick.Mul(acc, r)
		}
	}
	if !hasRlx {
		e.tape.setNumber(k, p)
		return nil
	}
	return e.store(k, mccormick.MulConst(acc, p))
}

func (e *Evaluator) evalSub(k int, children []int) error {
	a, b := children[0], children[1]
	if e.tape.IsNumber(a) && e.tape.IsNumber(b) {
		e.tape.setNumber(k, e.tape.Number(a)-e.tape.Number(b))
		return nil
	}
	return e.store(k, mccormick.Sub(e.lift(a), e.lift(b)))
}

func (e *Evaluator) evalDiv(k int, children []int) error {
	a, b := children[0], children[1]
	if e.tape.IsNumber(a) && e.tape.IsNumber(b) {
		d := e.tape.Number(b)
		if d == 0 {
			return &mccormick.DomainError{
				Op:  "div",
				Arg: interval.Point(0),
				Dom: mccormick.RecipDomain(interval.Point(1)),
			}
		}
		e.tape.setNumber(k, e.tape.Number(a)/d)
		return nil
	}
	x, y := e.lift(a), e.lift(b)
	out, err := e.cfg.Guard.Apply(y, mccormick.RecipDomain(y.Intv), func(y2 mccormick.MC) (mccormick.MC, error) {
		return mccormick.Div(x, y2)
	})
	if err != nil {
		return err
	}
	return e.store(k, out)
}

// evalPow short-circuits x^0 and x^1 before any relaxation arithmetic;
// every other exponent routes through the guard when the base is a
// relaxation. A relaxation-valued exponent evaluates exp(y*log x).
func (e *Evaluator) evalPow(k int, children []int) error {
	base, exp := children[0], children[1]
	if !e.tape.IsNumber(exp) {
		b, p := e.lift(base), e.tape.Relaxation(exp)
		l, err := e.cfg.Guard.Apply(b, mccormick.LogDomain(), mccormick.Log)
		if err != nil {
			return err
		}
		return e.store(k, mccormick.Exp(mccormick.Mul(p, l)))
	}

	p := e.tape.Number(exp)
	if e.tape.IsNumber(base) {
		v := math.Pow(e.tape.Number(base), p)
		if math.IsNaN(v) {
			return &mccormick.DomainError{
				Op:  "pow",
				Arg: interval.Point(e.tape.Number(base)),
				Dom: mccormick.PowDomain(),
			}
		}
		e.tape.setNumber(k, v)
		return nil
	}

	x := e.tape.Relaxation(base)
	switch p {
	case 0:
		return e.store(k, mccormick.One(e.graph.NumVars))
	case 1:
		// Slots own their values, so the identity still copies.
		out, _ := mccormick.PowInt(x, 1, nil)
		return e.store(k, out)
	}
	var out mccormick.MC
	var err error
	if p == math.Trunc(p) {
		n := int(p)
		tp := e.ties.Slots(k)
		if n < 0 {
			out, err = e.cfg.Guard.Apply(x, mccormick.RecipDomain(x.Intv), func(x2 mccormick.MC) (mccormick.MC, error) {
				return mccormick.PowInt(x2, n, tp)
			})
		} else {
			out, err = mccormick.PowInt(x, n, tp)
		}
	} else {
		out, err = e.cfg.Guard.Apply(x, mccormick.PowDomain(), func(x2 mccormick.MC) (mccormick.MC, error) {
			return mccormick.PowFloat(x2, p)
		})
	}
	if err != nil {
		return err
	}
	return e.store(k, out)
}

// scalarUnary is the numeric fast path for built-in univariates.
var scalarUnary = map[dag.Op]func(float64) float64{
	dag.OpNeg:  func(v float64) float64 { return -v },
	dag.OpExp:  math.Exp,
	dag.OpLog:  math.Log,
	dag.OpSqrt: math.Sqrt,
	dag.OpAbs:  math.Abs,
	dag.OpCosh: math.Cosh,
	dag.OpTanh: math.Tanh,
	dag.OpAtan: math.Atan,
	dag.OpSinh: math.Sinh,
	dag.OpAsin: math.Asin,
	dag.OpAcos: math.Acos,
	dag.OpTan:  math.Tan,
	dag.OpSin:  math.Sin,
	dag.OpCos:  math.Cos,
}

func (e *Evaluator) evalUnary(k int, node *dag.Node) error {
	c := node.Children[0]

	if e.tape.IsNumber(c) {
		arg := e.tape.Number(c)
		var v float64
		if node.Op.IsUser() {
			f, ok := e.unary[node.Op]
			if !ok {
				return fmt.Errorf("user operator %s not registered", node.Op)
			}
			v = f.Eval(arg)
		} else {
			v = scalarUnary[node.Op](arg)
		}
		if math.IsNaN(v) {
			return &mccormick.DomainError{Op: node.Op.String(), Arg: interval.Point(arg), Dom: interval.Entire()}
		}
		e.tape.setNumber(k, v)
		return nil
	}

	x := e.tape.Relaxation(c)
	tp := e.ties.Slots(k)
	g := e.cfg.Guard

	var out mccormick.MC
	var err error
	switch node.Op {
	case dag.OpNeg:
		out = mccormick.Neg(x)
	case dag.OpExp:
		out = mccormick.Exp(x)
	case dag.OpAbs:
		out = mccormick.Abs(x)
	case dag.OpCosh:
		out = mccormick.Cosh(x)
	case dag.OpLog:
		out, err = g.Apply(x, mccormick.LogDomain(), mccormick.Log)
	case dag.OpSqrt:
		out, err = g.Apply(x, mccormick.SqrtDomain(), mccormick.Sqrt)
	case dag.OpTanh:
		out = mccormick.Tanh(x, tp)
	case dag.OpAtan:
		out = mccormick.Atan(x, tp)
	case dag.OpSinh:
		out = mccormick.Sinh(x, tp)
	case dag.OpAsin:
		out, err = g.Apply(x, mccormick.AsinDomain(), func(x2 mccormick.MC) (mccormick.MC, error) {
			return mccormick.Asin(x2, tp)
		})
	case dag.OpAcos:
		out, err = g.Apply(x, mccormick.AsinDomain(), func(x2 mccormick.MC) (mccormick.MC, error) {
			return mccormick.Acos(x2, tp)
		})
	case dag.OpTan:
		out, err = g.Apply(x, mccormick.TanDomain(x.Intv), func(x2 mccormick.MC) (mccormick.MC, error) {
			return mccormick.Tan(x2, tp)
		})
	case dag.OpSin:
		out = mccormick.Sin(x, tp)
	case dag.OpCos:
		out = mccormick.Cos(x, tp)
	default:
		f, ok := e.unary[node.Op]
		if !ok {
			if node.Op.IsUser() {
				return fmt.Errorf("user operator %s not registered", node.Op)
			}
			panic(fmt.Sprintf("engine: unknown unary operator %s on validated graph", node.Op))
		}
		out, err = g.Apply(x, f.Dom, f.Relax)
	}
	if err != nil {
		return err
	}
	return e.store(k, out)
}

// evalUserNary evaluates a user multivariate call. When every operand is
// a plain number the scalar function runs over a reused buffer and the
// relaxation machinery is bypassed entirely.
func (e *Evaluator) evalUserNary(k int, node *dag.Node) error {
	f, ok := e.nary[node.Op]
	if !ok {
		return fmt.Errorf("user operator %s not registered", node.Op)
	}

	allNum := true
	for _, c := range node.Children {
		if !e.tape.IsNumber(c) {
			allNum = false
			break
		}
	}
	if allNum {
		if cap(e.scratch) < len(node.Children) {
			e.scratch = make([]float64, len(node.Children))
		}
		buf := e.scratch[:len(node.Children)]
		for i, c := range node.Children {
			buf[i] = e.tape.Number(c)
		}
		e.tape.setNumber(k, f.Eval(buf))
		return nil
	}

	args := make([]mccormick.MC, len(node.Children))
	for i, c := range node.Children {
		args[i] = e.lift(c)
	}
	out, err := e.cfg.Guard.ApplyN(args, f.Dom, f.Relax)
	if err != nil {
		return err
	}
	return e.store(k, out)
}
