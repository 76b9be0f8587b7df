package mccormick

// MulConst returns c * x. A nonnegative multiplier preserves the roles of
// the two bounds; a negative one swaps them.
func MulConst(x MC, c float64) MC {
	if c >= 0 {
		return MC{
			CV:     c * x.CV,
			CC:     c * x.CC,
			Intv:   x.Intv.MulConst(c),
			CVGrad: scaleVec(x.CVGrad, c),
			CCGrad: scaleVec(x.CCGrad, c),
			Const:  x.Const,
		}
	}
	return MC{
		CV:     c * x.CC,
		CC:     c * x.CV,
		Intv:   x.Intv.MulConst(c),
		CVGrad: scaleVec(x.CCGrad, c),
		CCGrad: scaleVec(x.CVGrad, c),
		Const:  x.Const,
	}
}

// linUnder returns the convex underestimate of c*v and its subgradient.
func linUnder(c float64, v MC) (float64, []float64) {
	if c >= 0 {
		return c * v.CV, scaleVec(v.CVGrad, c)
	}
	return c * v.CC, scaleVec(v.CCGrad, c)
}

// linOver returns the concave overestimate of c*v and its subgradient.
func linOver(c float64, v MC) (float64, []float64) {
	if c >= 0 {
		return c * v.CC, scaleVec(v.CCGrad, c)
	}
	return c * v.CV, scaleVec(v.CVGrad, c)
}

// Mul returns the McCormick product x * y.
//
// The underestimate is the larger of the two bilinear underestimators
//
//	yL*x + xL*y - xL*yL   and   yU*x + xU*y - xU*yU
//
// with each linear term replaced by the appropriate relaxation of its
// operand, and symmetrically for the overestimate. Unbounded operand
// intervals fall back to the interval product with flat relaxations,
// which is still a sound enclosure.
func Mul(x, y MC) MC {
	iv := x.Intv.Mul(y.Intv)
	n := len(x.CVGrad)
	if !isFinite(x.Intv) || !isFinite(y.Intv) {
		return MC{
			CV:     iv.Lo,
			CC:     iv.Hi,
			Intv:   iv,
			CVGrad: zeros(n),
			CCGrad: zeros(n),
			Const:  x.Const && y.Const,
		}
	}

	xL, xU := x.Intv.Lo, x.Intv.Hi
	yL, yU := y.Intv.Lo, y.Intv.Hi

	cv1a, g1a := linUnder(yL, x)
	cv1b, g1b := linUnder(xL, y)
	cv1 := cv1a + cv1b - xL*yL
	cv2a, g2a := linUnder(yU, x)
	cv2b, g2b := linUnder(xU, y)
	cv2 := cv2a + cv2b - xU*yU

	cv, cvg := cv1, addVec(g1a, g1b)
	if cv2 > cv1 {
		cv, cvg = cv2, addVec(g2a, g2b)
	}

	cc1a, h1a := linOver(yU, x)
	cc1b, h1b := linOver(xL, y)
	cc1 := cc1a + cc1b - xL*yU
	cc2a, h2a := linOver(yL, x)
	cc2b, h2b := linOver(xU, y)
	cc2 := cc2a + cc2b - xU*yL

	cc, ccg := cc1, addVec(h1a, h1b)
	if cc2 < cc1 {
		cc, ccg = cc2, addVec(h2a, h2b)
	}

	return MC{
		CV:     cv,
		CC:     cc,
		Intv:   iv,
		CVGrad: cvg,
		CCGrad: ccg,
		Const:  x.Const && y.Const,
	}.Cut()
}
