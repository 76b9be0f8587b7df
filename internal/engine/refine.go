package engine

import (
	"math"

	"github.com/hull-opt/hull/internal/mccormick"
)

// store applies the post-evaluation refinement policies to a raw kernel
// output and writes it into slot k: first intersection with the prior
// pass's value, then the affine interval cut. The cv/cc bounds of the
// prior pass are valid only at its evaluation point, so the full
// intersection runs only when the point is unchanged; a pass at a new
// point intersects the interval parts alone. An empty intersection means
// two sound enclosures of the same function over the same box disagree,
// which only happens when the box is infeasible for a guarded primitive
// upstream or the caller changed inputs without declaring a fresh pass;
// it surfaces as an error.
func (e *Evaluator) store(k int, v mccormick.MC) error {
	if e.phase == Refine && e.cfg.Intersect && e.tape.hasPrev(k) {
		prev := e.tape.Relaxation(k)
		var t mccormick.MC
		var err error
		if e.samePt {
			t, err = v.Tighten(prev)
		} else {
			t, err = v.TightenRange(prev)
		}
		if err != nil {
			return err
		}
		v = t
	}
	if e.cfg.AffineCut {
		v = affineCut(v, e.box, e.x)
	}
	e.tape.setRelaxation(k, v)
	return nil
}

// affineCut tightens the interval bound of v using its subgradients: each
// affine bounding function is minimized (resp. maximized) over the box by
// walking the sign of its slope per dimension. A dimension whose required
// box edge is infinite abandons that side permanently; once both sides
// are abandoned the scan stops early. A side that survives every
// dimension replaces the raw bound only when it is tighter.
func affineCut(v mccormick.MC, box Box, x []float64) mccormick.MC {
	lower, upper := v.CV, v.CC
	lowerActive, upperActive := true, true

	for i := range x {
		if !lowerActive && !upperActive {
			break
		}
		if lowerActive {
			switch g := v.CVGrad[i]; {
			case g == 0:
				// No contribution from this dimension.
			case g > 0:
				if math.IsInf(box.Lower[i], 0) {
					lowerActive = false
				} else {
					lower += g * (box.Lower[i] - x[i])
				}
			default:
				if math.IsInf(box.Upper[i], 0) {
					lowerActive = false
				} else {
					lower += g * (box.Upper[i] - x[i])
				}
			}
		}
		if upperActive {
			switch g := v.CCGrad[i]; {
			case g == 0:
				// No contribution from this dimension.
			case g > 0:
				if math.IsInf(box.Upper[i], 0) {
					upperActive = false
				} else {
					upper += g * (box.Upper[i] - x[i])
				}
			default:
				if math.IsInf(box.Lower[i], 0) {
					upperActive = false
				} else {
					upper += g * (box.Lower[i] - x[i])
				}
			}
		}
	}

	if lowerActive && lower > v.Intv.Lo {
		v.Intv.Lo = lower
	}
	if upperActive && upper < v.Intv.Hi {
		v.Intv.Hi = upper
	}
	return v.Cut()
}
