// Package engine drives the forward relaxation pass over an expression
// DAG.
//
// An Evaluator owns one Tape and one TiePointCache for one graph; both
// are mutated in place across a pass and reused across repeated passes on
// the same box. Concurrent box evaluations each use their own Evaluator,
// sharing only the immutable graph and config.
package engine

import "github.com/hull-opt/hull/internal/mccormick"

// Tape holds the per-node storage of a forward pass: parallel slices
// indexed in lock-step with the graph's node order. For every position
// exactly one of num and rlx is valid, selected by isNum; a relaxation
// slot additionally holds the previous pass's value until the current
// pass overwrites it, which is what the intersection policy reads.
type Tape struct {
	isNum []bool
	num   []float64
	rlx   []mccormick.MC
}

// NewTape allocates storage for n nodes.
func NewTape(n int) *Tape {
	return &Tape{
		isNum: make([]bool, n),
		num:   make([]float64, n),
		rlx:   make([]mccormick.MC, n),
	}
}

// Len returns the number of slots.
func (t *Tape) Len() int { return len(t.isNum) }

// IsNumber reports whether slot k currently holds a plain scalar.
func (t *Tape) IsNumber(k int) bool { return t.isNum[k] }

// Number returns the scalar at slot k. Valid only when IsNumber(k).
func (t *Tape) Number(k int) float64 { return t.num[k] }

// Relaxation returns the relaxation value at slot k. Valid only when
// !IsNumber(k).
func (t *Tape) Relaxation(k int) mccormick.MC { return t.rlx[k] }

func (t *Tape) setNumber(k int, v float64) {
	t.isNum[k] = true
	t.num[k] = v
}

func (t *Tape) setRelaxation(k int, v mccormick.MC) {
	t.isNum[k] = false
	t.rlx[k] = v
}

// hasPrev reports whether slot k carries a relaxation from an earlier
// pass that the intersection policy may tighten against.
func (t *Tape) hasPrev(k int) bool {
	return !t.isNum[k] && t.rlx[k].CVGrad != nil
}
