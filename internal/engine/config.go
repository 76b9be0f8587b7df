package engine

import "github.com/hull-opt/hull/internal/mccormick"

// Config is the engine's full option record, constructed once and passed
// down; nothing inside the pass reads ambient configuration.
type Config struct {
	// Intersect tightens each relaxation node against the value stored at
	// the same slot by the prior pass (refine phase only). Sound because
	// both enclose the same true range.
	Intersect bool

	// AffineCut tightens each node's interval bound with its subgradients
	// and the box edges after the kernel runs.
	AffineCut bool

	// Guard governs partial primitives evaluated outside their domain.
	Guard mccormick.Guard
}

// DefaultConfig enables both refinement policies and treats domain
// violations as infeasibility signals.
func DefaultConfig() Config {
	return Config{
		Intersect: true,
		AffineCut: true,
		Guard:     mccormick.Guard{Mode: mccormick.GuardInfeasible},
	}
}
