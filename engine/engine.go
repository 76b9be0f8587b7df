// Copyright 2025 Hull Optimization Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package engine provides the public API for the forward relaxation
// evaluator.
//
// An Evaluator owns an expression graph, an evaluation tape, and a
// tie-point cache. Repeated calls to Eval over the same box reuse the
// cache and, in the Refine phase, tighten the tape in place.
//
// Example:
//
//	ev, err := engine.New(g, engine.DefaultConfig())
//	err = ev.Eval(engine.Box{Lower: lo, Upper: hi}, x, engine.Fresh)
//	r := ev.RootRelaxation()
package engine

import (
	"github.com/hull-opt/hull/internal/dag"
	"github.com/hull-opt/hull/internal/engine"
)

// Evaluator performs forward relaxation passes over one graph.
type Evaluator = engine.Evaluator

// Config controls refinement behavior for an evaluator.
type Config = engine.Config

// Box is a variable domain: one closed interval per decision variable.
type Box = engine.Box

// Phase selects between a from-scratch pass and a tightening pass.
type Phase = engine.Phase

// Evaluation phases.
const (
	Fresh  Phase = engine.Fresh
	Refine Phase = engine.Refine
)

// Tape stores one evaluation result per graph node.
type Tape = engine.Tape

// TiePointCache memoizes envelope tangency points between passes.
type TiePointCache = engine.TiePointCache

// UnaryFunc describes a user-registered univariate function.
type UnaryFunc = engine.UnaryFunc

// NaryFunc describes a user-registered multivariate function.
type NaryFunc = engine.NaryFunc

// New creates an evaluator for the graph g.
func New(g *dag.Graph, cfg Config) (*Evaluator, error) {
	return engine.New(g, cfg)
}

// DefaultConfig enables intersection and the affine interval cut and
// treats domain violations as infeasible.
func DefaultConfig() Config {
	return engine.DefaultConfig()
}
