package mccormick

// Add returns x + y.
//
// Addition is exact for relaxations: the sum of a convex underestimate
// and a convex underestimate underestimates the sum, and likewise for the
// concave side, so no envelope construction is needed.
func Add(x, y MC) MC {
	return MC{
		CV:     x.CV + y.CV,
		CC:     x.CC + y.CC,
		Intv:   x.Intv.Add(y.Intv),
		CVGrad: addVec(x.CVGrad, y.CVGrad),
		CCGrad: addVec(x.CCGrad, y.CCGrad),
		Const:  x.Const && y.Const,
	}.Cut()
}

// AddConst returns x + c.
func AddConst(x MC, c float64) MC {
	x.CV += c
	x.CC += c
	x.Intv = x.Intv.AddConst(c)
	x.CVGrad = cloneVec(x.CVGrad)
	x.CCGrad = cloneVec(x.CCGrad)
	return x
}

// Neg returns -x. The convex and concave sides swap roles.
func Neg(x MC) MC {
	return MC{
		CV:     -x.CC,
		CC:     -x.CV,
		Intv:   x.Intv.Neg(),
		CVGrad: scaleVec(x.CCGrad, -1),
		CCGrad: scaleVec(x.CVGrad, -1),
		Const:  x.Const,
	}
}

// Sub returns x - y.
func Sub(x, y MC) MC {
	return Add(x, Neg(y))
}
