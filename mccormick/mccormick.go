// Copyright 2025 Hull Optimization Toolkit. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package mccormick provides the public API for McCormick convex and
// concave relaxations with subgradients.
//
// The package defines the relaxation value type and its arithmetic:
//   - MC: convex/concave bound pair with interval and subgradients
//   - Guard: domain-restriction policy for partial functions
//   - DomainError: reported when an argument leaves a function's domain
//
// Example:
//
//	x := mccormick.Variable(0, 2, 1.0, -1, 2)
//	y := mccormick.Variable(1, 2, 0.5, 0, 3)
//	p := mccormick.Mul(x, y)
//	fmt.Println(p.CV, p.CC) // bounds on x*y at (1.0, 0.5)
package mccormick

import "github.com/hull-opt/hull/internal/mccormick"

// MC holds a McCormick relaxation value: a convex underestimate CV, a
// concave overestimate CC, the enclosing interval Intv, and one
// subgradient per decision variable for each bound.
type MC = mccormick.MC

// Guard applies a domain restriction before invoking a partial
// function's relaxation kernel.
type Guard = mccormick.Guard

// GuardMode selects how a Guard responds to a domain violation.
type GuardMode = mccormick.GuardMode

// Guard modes.
const (
	GuardInfeasible GuardMode = mccormick.GuardInfeasible
	GuardClip       GuardMode = mccormick.GuardClip
)

// DomainError reports an argument that violates a function's domain.
type DomainError = mccormick.DomainError

// TiePointUnset marks an unsolved tie point slot.
var TiePointUnset = mccormick.TiePointUnset

// Variable creates the relaxation of decision variable i of n at point
// x over the interval [lo, hi].
func Variable(i, n int, x, lo, hi float64) MC {
	return mccormick.Variable(i, n, x, lo, hi)
}

// Constant creates the exact relaxation of the constant c with n
// decision variables.
func Constant(c float64, n int) MC {
	return mccormick.Constant(c, n)
}

// Arithmetic re-exports. Partial functions return an error when the
// argument interval leaves their domain.
var (
	Add      = mccormick.Add
	AddConst = mccormick.AddConst
	Sub      = mccormick.Sub
	Neg      = mccormick.Neg
	Mul      = mccormick.Mul
	MulConst = mccormick.MulConst
	Div      = mccormick.Div
	Exp      = mccormick.Exp
	Log      = mccormick.Log
	Sqrt     = mccormick.Sqrt
	Abs      = mccormick.Abs
	Cosh     = mccormick.Cosh
	Tanh     = mccormick.Tanh
	Atan     = mccormick.Atan
	Sinh     = mccormick.Sinh
	Asin     = mccormick.Asin
	Acos     = mccormick.Acos
	Tan      = mccormick.Tan
	Sin      = mccormick.Sin
	Cos      = mccormick.Cos
	PowInt   = mccormick.PowInt
	PowFloat = mccormick.PowFloat
)
