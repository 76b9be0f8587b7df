package engine

import (
	"fmt"

	"github.com/hull-opt/hull/internal/dag"
	"github.com/hull-opt/hull/internal/interval"
	"github.com/hull-opt/hull/internal/mccormick"
)

// UnaryFunc is a caller-supplied scalar function with a relaxation rule.
// Eval serves the numeric fast path; Relax serves relaxation arguments
// and is always invoked through the engine's guard with Dom as the valid
// domain.
type UnaryFunc struct {
	Eval  func(float64) float64
	Relax func(mccormick.MC) (mccormick.MC, error)
	Dom   interval.Interval
}

// NaryFunc is a caller-supplied multivariate function. The numeric fast
// path evaluates Eval over a reused operand buffer and bypasses the
// relaxation machinery entirely; Relax is guarded per argument with the
// corresponding entry of Dom (nil means unrestricted).
type NaryFunc struct {
	Eval  func([]float64) float64
	Relax func([]mccormick.MC) (mccormick.MC, error)
	Dom   []interval.Interval
}

// RegisterUnary binds a user scalar function to an operator id in the
// user range.
func (e *Evaluator) RegisterUnary(op dag.Op, f UnaryFunc) error {
	if !op.IsUser() {
		return fmt.Errorf("engine: operator %s is not in the user range", op)
	}
	if f.Eval == nil || f.Relax == nil {
		return fmt.Errorf("engine: user operator %s needs both Eval and Relax", op)
	}
	if f.Dom == (interval.Interval{}) {
		f.Dom = interval.Entire()
	}
	e.unary[op] = f
	return nil
}

// RegisterNary binds a user multivariate function to an operator id in
// the user range.
func (e *Evaluator) RegisterNary(op dag.Op, f NaryFunc) error {
	if !op.IsUser() {
		return fmt.Errorf("engine: operator %s is not in the user range", op)
	}
	if f.Eval == nil || f.Relax == nil {
		return fmt.Errorf("engine: user operator %s needs both Eval and Relax", op)
	}
	e.nary[op] = f
	return nil
}
