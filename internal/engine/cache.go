package engine

import (
	"github.com/hull-opt/hull/internal/dag"
	"github.com/hull-opt/hull/internal/mccormick"
)

// tie-point slot widths per univariate family.
const (
	tieSlotsSingle = 2 // one crossing point each for the convex and concave side
	tieSlotsDouble = 4 // two per side
)

// TiePointCache memoizes the crossing points of non-monotonic univariate
// relaxations per node. Slots live in one flat arena; each registered
// node owns a fixed window of 2 or 4 entries. The sentinel
// mccormick.TiePointUnset marks a point not yet computed for the current
// box; Reset restores it for every slot, which must happen on every box
// change.
type TiePointCache struct {
	slots   []float64
	windows map[int]tieWindow // node position -> arena window
}

type tieWindow struct {
	off   int
	width int
}

// tieSlots returns the cache width a node needs, or 0 for operators
// without memoized crossing points.
func tieSlots(n dag.Node) int {
	if n.Kind != dag.KindCallUnary && !(n.Kind == dag.KindCall && n.Op == dag.OpPow) {
		return 0
	}
	switch n.Op {
	case dag.OpTanh, dag.OpAtan, dag.OpSinh, dag.OpAsin, dag.OpAcos, dag.OpTan, dag.OpPow:
		return tieSlotsSingle
	case dag.OpSin, dag.OpCos:
		return tieSlotsDouble
	}
	return 0
}

// NewTiePointCache scans the graph and reserves slots for every node that
// memoizes crossing points. All slots start unset.
func NewTiePointCache(g *dag.Graph) *TiePointCache {
	c := &TiePointCache{windows: make(map[int]tieWindow)}
	for k, n := range g.Nodes {
		if w := tieSlots(n); w > 0 {
			c.windows[k] = tieWindow{off: len(c.slots), width: w}
			for i := 0; i < w; i++ {
				c.slots = append(c.slots, mccormick.TiePointUnset)
			}
		}
	}
	return c
}

// Slots returns node k's cache window, or nil when the node has none.
func (c *TiePointCache) Slots(k int) []float64 {
	w, ok := c.windows[k]
	if !ok {
		return nil
	}
	return c.slots[w.off : w.off+w.width]
}

// Reset marks every slot unset. Called on box transitions.
func (c *TiePointCache) Reset() {
	for i := range c.slots {
		c.slots[i] = mccormick.TiePointUnset
	}
}
