// Copyright 2025 Hull Optimization Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dag provides the public API for expression graphs evaluated
// by the hull engine.
//
// A Graph is a topologically ordered list of nodes whose last node is
// the root. Graphs are built programmatically with a Builder or loaded
// from a YAML description with FromYAML.
//
// Example:
//
//	b := dag.NewBuilder(2)
//	x, y := b.Var(0), b.Var(1)
//	g, err := b.Finish(b.Add(b.Mul(x, x), y)) // x*x + y
package dag

import "github.com/hull-opt/hull/internal/dag"

// Node is a single operation in an expression graph.
type Node = dag.Node

// Graph is a validated, topologically ordered expression graph.
type Graph = dag.Graph

// Kind classifies a node.
type Kind = dag.Kind

// Node kinds.
const (
	KindConstant  Kind = dag.KindConstant
	KindParameter Kind = dag.KindParameter
	KindVariable  Kind = dag.KindVariable
	KindSubexpr   Kind = dag.KindSubexpr
	KindCall      Kind = dag.KindCall
	KindCallUnary Kind = dag.KindCallUnary
)

// Op identifies the operation of a call node.
type Op = dag.Op

// Built-in operations.
const (
	OpSum  Op = dag.OpSum
	OpSub  Op = dag.OpSub
	OpMul  Op = dag.OpMul
	OpDiv  Op = dag.OpDiv
	OpPow  Op = dag.OpPow
	OpNeg  Op = dag.OpNeg
	OpExp  Op = dag.OpExp
	OpLog  Op = dag.OpLog
	OpSqrt Op = dag.OpSqrt
	OpAbs  Op = dag.OpAbs
	OpCosh Op = dag.OpCosh
	OpTanh Op = dag.OpTanh
	OpAtan Op = dag.OpAtan
	OpSinh Op = dag.OpSinh
	OpAsin Op = dag.OpAsin
	OpAcos Op = dag.OpAcos
	OpTan  Op = dag.OpTan
	OpSin  Op = dag.OpSin
	OpCos  Op = dag.OpCos
)

// UserOpBase is the first Op value available for user-registered
// functions.
const UserOpBase = dag.UserOpBase

// Ref identifies a node during graph construction.
type Ref = dag.Ref

// Builder constructs expression graphs in dependency order.
type Builder = dag.Builder

// NewBuilder creates a builder for a graph over nvars decision
// variables.
func NewBuilder(nvars int) *Builder {
	return dag.NewBuilder(nvars)
}

// FromYAML parses a YAML graph description.
func FromYAML(data []byte) (*Graph, error) {
	return dag.FromYAML(data)
}
