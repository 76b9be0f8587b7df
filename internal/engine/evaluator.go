package engine

import (
	"fmt"

	"github.com/hull-opt/hull/internal/dag"
	"github.com/hull-opt/hull/internal/mccormick"
)

// Phase distinguishes the first pass over a box from subsequent passes.
type Phase int

const (
	// Fresh is the first evaluation of a box: no prior tape values exist
	// to intersect against.
	Fresh Phase = iota
	// Refine is a repeated evaluation of the same box: prior tape values
	// may tighten the new results.
	Refine
)

// Box is a hyper-rectangular variable domain, one bound pair per decision
// variable.
type Box struct {
	Lower []float64
	Upper []float64
}

func (b Box) equal(o Box) bool {
	if len(b.Lower) != len(o.Lower) {
		return false
	}
	for i := range b.Lower {
		if b.Lower[i] != o.Lower[i] || b.Upper[i] != o.Upper[i] {
			return false
		}
	}
	return true
}

// subValue is an externally evaluated subexpression result bound into the
// pass.
type subValue struct {
	set   bool
	isNum bool
	num   float64
	rlx   mccormick.MC
}

// Evaluator runs forward relaxation passes for one expression graph. It
// exclusively owns its tape and tie-point cache; the graph and config are
// shared read-only. One Evaluator serves one box at a time.
type Evaluator struct {
	graph  *dag.Graph
	cfg    Config
	tape   *Tape
	ties   *TiePointCache
	unary  map[dag.Op]UnaryFunc
	nary   map[dag.Op]NaryFunc
	subs   []subValue
	params []float64

	box     Box       // evaluator-owned copy of the last box
	x       []float64 // evaluator-owned copy of the last point
	phase   Phase
	hasBox  bool
	samePt  bool      // current point equals the previous pass's point
	scratch []float64 // operand buffer for the user n-ary fast path
}

// New creates an evaluator for a validated graph.
func New(g *dag.Graph, cfg Config) (*Evaluator, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	params := make([]float64, len(g.Parameters))
	copy(params, g.Parameters)
	return &Evaluator{
		graph:  g,
		cfg:    cfg,
		tape:   NewTape(len(g.Nodes)),
		ties:   NewTiePointCache(g),
		unary:  make(map[dag.Op]UnaryFunc),
		nary:   make(map[dag.Op]NaryFunc),
		subs:   make([]subValue, g.NumSubs),
		params: params,
	}, nil
}

// Tape exposes the evaluator's storage for inspection.
func (e *Evaluator) Tape() *Tape { return e.tape }

// TiePoints exposes the tie-point cache for inspection.
func (e *Evaluator) TiePoints() *TiePointCache { return e.ties }

// SetParameter overrides parameter i for subsequent passes.
func (e *Evaluator) SetParameter(i int, v float64) {
	e.params[i] = v
}

// BindSubexpressionNumber supplies a scalar result for subexpression i.
func (e *Evaluator) BindSubexpressionNumber(i int, v float64) {
	e.subs[i] = subValue{set: true, isNum: true, num: v}
}

// BindSubexpressionRelaxation supplies a relaxation result for
// subexpression i.
func (e *Evaluator) BindSubexpressionRelaxation(i int, v mccormick.MC) {
	e.subs[i] = subValue{set: true, rlx: v}
}

// Eval runs one forward pass at point x over the box. The phase flag is
// the caller's: Fresh on the first visit to a box, Refine on repeated
// visits. A box different from the previous call forces Fresh and resets
// the tie-point cache regardless of the flag, since memoized crossing
// points are only valid for the box they were computed on. The box and
// point are copied into the evaluator, so mutating the argument slices in
// place between calls still registers as a change.
//
// The pass never loops or retries; repeated tightening is driven by the
// caller invoking Eval again in Refine.
func (e *Evaluator) Eval(box Box, x []float64, phase Phase) error {
	n := e.graph.NumVars
	if len(box.Lower) != n || len(box.Upper) != n || len(x) != n {
		return fmt.Errorf("engine: box/point dimension mismatch: want %d variables", n)
	}
	if !e.hasBox || !e.box.equal(box) {
		phase = Fresh
		e.ties.Reset()
	}
	e.samePt = e.hasBox && sameValues(e.x, x)
	e.box.Lower = append(e.box.Lower[:0], box.Lower...)
	e.box.Upper = append(e.box.Upper[:0], box.Upper...)
	e.x = append(e.x[:0], x...)
	e.phase = phase
	e.hasBox = true

	for k := range e.graph.Nodes {
		if err := e.evalNode(k); err != nil {
			// The tape is partially overwritten and must not seed a
			// later intersection.
			e.hasBox = false
			return fmt.Errorf("engine: node %d (%s): %w", k, e.graph.Nodes[k].Kind, err)
		}
	}
	return nil
}

func sameValues(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// evalNode dispatches one node by kind. Unknown kinds are impossible on a
// validated graph and therefore fatal.
func (e *Evaluator) evalNode(k int) error {
	node := &e.graph.Nodes[k]
	switch node.Kind {
	case dag.KindConstant:
		e.tape.setNumber(k, e.graph.Constants[node.Index])
	case dag.KindParameter:
		e.tape.setNumber(k, e.params[node.Index])
	case dag.KindVariable:
		i := node.Index
		v := mccormick.Variable(i, e.graph.NumVars, e.x[i], e.box.Lower[i], e.box.Upper[i])
		return e.store(k, v)
	case dag.KindSubexpr:
		s := e.subs[node.Index]
		if !s.set {
			return fmt.Errorf("subexpression %d not bound", node.Index)
		}
		if s.isNum {
			e.tape.setNumber(k, s.num)
		} else {
			return e.store(k, s.rlx)
		}
	case dag.KindCall:
		return e.evalCall(k, node)
	case dag.KindCallUnary:
		return e.evalUnary(k, node)
	default:
		panic(fmt.Sprintf("engine: unknown node kind %d on validated graph", int(node.Kind)))
	}
	return nil
}

// RootIsNumber reports whether the root reduced to a plain scalar, which
// happens exactly when no leaf under it is a variable.
func (e *Evaluator) RootIsNumber() bool {
	return e.tape.IsNumber(e.graph.Root())
}

// RootNumber returns the root's scalar value.
func (e *Evaluator) RootNumber() float64 {
	return e.tape.Number(e.graph.Root())
}

// RootRelaxation returns the root's relaxation value.
func (e *Evaluator) RootRelaxation() mccormick.MC {
	return e.tape.Relaxation(e.graph.Root())
}
