package mccormick

import (
	"errors"
	"fmt"

	"github.com/hull-opt/hull/internal/interval"
)

// DomainError reports a partial primitive evaluated on an argument
// enclosure that leaves the primitive's domain. It is the only error kind
// the relaxation operators produce.
type DomainError struct {
	Op  string            // primitive name, e.g. "log"
	Arg interval.Interval // argument enclosure
	Dom interval.Interval // valid domain
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("mccormick: %s argument %v outside domain %v", e.Op, e.Arg, e.Dom)
}

// domainErr builds a DomainError and wraps the underlying interval error
// for context.
func domainErr(op string, arg, dom interval.Interval) error {
	return &DomainError{Op: op, Arg: arg, Dom: dom}
}

// GuardMode selects what a domain violation turns into.
type GuardMode int

const (
	// GuardInfeasible propagates the DomainError; the caller treats the
	// box as infeasible.
	GuardInfeasible GuardMode = iota
	// GuardClip restricts the argument enclosure to the primitive's
	// domain and re-evaluates. A wholly-outside argument is still a
	// DomainError.
	GuardClip
)

// Guard applies one uniform policy to every partial primitive, built-in
// or user-registered. Kernels never call a partial primitive directly;
// they route through Apply so that a single policy governs all domain
// violations.
type Guard struct {
	Mode GuardMode
}

// Apply invokes f on x. When f reports a DomainError and the guard clips,
// the argument is restricted to dom and f is invoked once more on the
// valid sub-domain. Any non-domain error passes through untouched.
func (g Guard) Apply(x MC, dom interval.Interval, f func(MC) (MC, error)) (MC, error) {
	out, err := f(x)
	if err == nil {
		return out, nil
	}
	var de *DomainError
	if !errors.As(err, &de) || g.Mode != GuardClip {
		return MC{}, err
	}
	clipped, ierr := x.Intv.Intersect(dom)
	if ierr != nil {
		// Nothing of the argument is inside the domain.
		return MC{}, err
	}
	return f(x.clampTo(clipped))
}

// ApplyN guards an n-ary primitive. Each argument has its own valid
// domain in doms (a zero-length doms, or a zero-width entry, leaves that
// argument unrestricted). The clip policy restricts every argument to its
// domain and retries once.
func (g Guard) ApplyN(args []MC, doms []interval.Interval, f func([]MC) (MC, error)) (MC, error) {
	out, err := f(args)
	if err == nil {
		return out, nil
	}
	var de *DomainError
	if !errors.As(err, &de) || g.Mode != GuardClip {
		return MC{}, err
	}
	clipped := make([]MC, len(args))
	for i, a := range args {
		clipped[i] = a
		if i >= len(doms) || doms[i] == (interval.Interval{}) {
			continue
		}
		iv, ierr := a.Intv.Intersect(doms[i])
		if ierr != nil {
			return MC{}, err
		}
		clipped[i] = a.clampTo(iv)
	}
	return f(clipped)
}
