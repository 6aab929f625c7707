// Package rachfordrice solves the Rachford-Rice equation for the vapor
// mole fraction beta given a feed composition z and K-values:
//
//	g(beta) = sum_i z_i*(K_i-1) / (1 + beta*(K_i-1)) = 0
//
// g is monotonically decreasing on its admissible bracket, so a bounded
// bisection phase establishes a safe interval before Newton's method takes
// over for fast local convergence — the same bisect-then-Newton shape the
// teacher uses for SaturationPressure.
package rachfordrice

import (
	"math"

	"github.com/RoSqianyue/ph-flash-thermodynamics/components"
	"github.com/RoSqianyue/ph-flash-thermodynamics/ferrors"
)

const (
	// DefaultMaxIter is used when Solve is called with maxIter <= 0.
	DefaultMaxIter = 30
	tol            = 1e-10
)

// g and its derivative with respect to beta.
func g(z, K [components.NC]float64, beta float64) float64 {
	var sum float64
	for i := 0; i < components.NC; i++ {
		sum += z[i] * (K[i] - 1) / (1 + beta*(K[i]-1))
	}
	return sum
}

func dg(z, K [components.NC]float64, beta float64) float64 {
	var sum float64
	for i := 0; i < components.NC; i++ {
		denom := 1 + beta*(K[i]-1)
		sum -= z[i] * (K[i] - 1) * (K[i] - 1) / (denom * denom)
	}
	return sum
}

// bracket returns the admissible beta interval (betaMin, betaMax) that
// keeps every 1 + beta*(K_i-1) term strictly positive, per the standard
// Rachford-Rice feasibility bounds.
func bracket(K [components.NC]float64) (betaMin, betaMax float64) {
	betaMin, betaMax = 0, 1
	for i := 0; i < components.NC; i++ {
		if K[i] > 1 {
			lim := 1 / (1 - K[i])
			if lim > betaMin {
				betaMin = lim
			}
		} else if K[i] < 1 {
			lim := 1 / (1 - K[i])
			if lim < betaMax {
				betaMax = lim
			}
		}
	}
	// Tighten slightly off the true asymptotes to keep g finite.
	const eps = 1e-9
	betaMin += eps
	betaMax -= eps
	return
}

// Solve returns the vapor mole fraction beta in [0, 1] satisfying the
// Rachford-Rice equation for feed z and K-values K, along with the number
// of iterations taken. Three degenerate cases are handled directly without
// iterating, checked in this order: when all K_i are equal (within
// tolerance) g has no isolated root (it is zero for every beta if K = 1,
// and for none otherwise), and beta = 0.5 is returned as the neutral
// choice; otherwise every K_i >= 1 gives beta = 1 (entirely vapor) and
// every K_i <= 1 gives beta = 0 (entirely liquid). maxIter caps the
// bisection-then-Newton refinement; a value <= 0 selects DefaultMaxIter.
func Solve(z, K [components.NC]float64, maxIter int) (beta float64, iterations int, err error) {
	if maxIter <= 0 {
		maxIter = DefaultMaxIter
	}
	allVapor, allLiquid := true, true
	kRef := K[0]
	allEqual := true
	for i := 0; i < components.NC; i++ {
		if K[i] < 1 {
			allVapor = false
		}
		if K[i] > 1 {
			allLiquid = false
		}
		if math.Abs(K[i]-kRef) > 1e-12 {
			allEqual = false
		}
	}
	if allEqual {
		return 0.5, 0, nil
	}
	if allVapor {
		return 1, 0, nil
	}
	if allLiquid {
		return 0, 0, nil
	}

	betaMin, betaMax := bracket(K)
	if betaMin >= betaMax {
		return 0, 0, ferrors.New(ferrors.KindAlgorithm, "rachfordrice.Solve", 0, 0,
			"infeasible Rachford-Rice bracket")
	}

	gLo, gHi := g(z, K, betaMin), g(z, K, betaMax)
	if gLo*gHi > 0 {
		return 0, 0, ferrors.New(ferrors.KindAlgorithm, "rachfordrice.Solve", 0, 0,
			"Rachford-Rice bracket does not contain a sign change")
	}

	lo, hi := betaMin, betaMax
	beta = 0.5 * (lo + hi)
	for iterations = 0; iterations < maxIter; iterations++ {
		gv := g(z, K, beta)
		if math.Abs(gv) < tol {
			return clamp01(beta), iterations, nil
		}
		if gv*gLo > 0 {
			lo = beta
			gLo = gv
		} else {
			hi = beta
		}

		dgv := dg(z, K, beta)
		var next float64
		if dgv != 0 {
			next = beta - gv/dgv
		}
		if dgv == 0 || next <= lo || next >= hi {
			next = 0.5 * (lo + hi) // Newton stepped outside the bracket; bisect instead.
		}
		beta = next
	}
	return 0, iterations, ferrors.New(ferrors.KindConvergence, "rachfordrice.Solve", iterations, math.Abs(g(z, K, beta)),
		"Rachford-Rice did not converge within the iteration budget")
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
