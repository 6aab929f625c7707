package eos

import "math"

// solvePRCubic solves the dimensionless Peng-Robinson Z-cubic
//
//	Z^3 + c2*Z^2 + c1*Z + c0 = 0
//
// (always monic: the EOS already divides through by the leading
// coefficient before forming c2, c1, c0) and returns its real roots,
// unsorted, via Cardano's method on the depressed cubic y^3 + p*y + q = 0.
//
// Because the leading coefficient is fixed at 1, there is no a=0
// degenerate case to guard and no normalization division to perform, and
// because only real roots are ever used downstream (SolveZ discards
// complex conjugate pairs), the one-real-root branch below never needs
// complex arithmetic: it solves directly for the single real cube root
// instead of carrying two complex conjugates nobody reads. Near delta=0,
// both of Cardano's usual branches are individually ill-conditioned (one
// takes cbrt of a near-zero argument, the other takes acos of a ratio that
// drifts fractionally outside [-1,1] from rounding); a small band around
// delta=0 is folded into the three-real-root branch with its acos argument
// clamped, rather than switching abruptly on sign.
func solvePRCubic(c2, c1, c0 float64) []float64 {
	p := c1 - c2*c2/3
	q := 2*c2*c2*c2/27 - c2*c1/3 + c0
	delta := q*q/4 + p*p*p/27

	shift := c2 / 3
	const deltaEps = 1e-12

	if delta > deltaEps {
		sqrtDelta := math.Sqrt(delta)
		u := math.Cbrt(-q/2 + sqrtDelta)
		v := math.Cbrt(-q/2 - sqrtDelta)
		return []float64{u + v - shift}
	}

	// Triple-root boundary and the three-real-root regime share this
	// branch; clamp p to guard the sqrt/acos below against fp drift when
	// delta sits just inside the band but p is fractionally positive.
	pClamped := p
	if pClamped > 0 {
		pClamped = 0
	}
	r := math.Sqrt(-pClamped * pClamped * pClamped / 27)
	if r == 0 {
		return []float64{-shift, -shift, -shift}
	}

	arg := -q / (2 * r)
	if arg > 1 {
		arg = 1
	} else if arg < -1 {
		arg = -1
	}
	phi := math.Acos(arg)
	t := 2 * math.Cbrt(r)
	return []float64{
		t*math.Cos(phi/3) - shift,
		t*math.Cos((phi+2*math.Pi)/3) - shift,
		t*math.Cos((phi+4*math.Pi)/3) - shift,
	}
}
