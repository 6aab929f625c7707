package vle

import (
	"math"
	"testing"

	"github.com/RoSqianyue/ph-flash-thermodynamics/components"
	"github.com/RoSqianyue/ph-flash-thermodynamics/eos"
)

func params(T float64) *eos.Params {
	crit := components.Critical
	kij := components.BIPMatrix(components.BIPRecommended, nil)
	return eos.NewParams(T, crit.Tc, crit.Pc, crit.W, crit.MW, kij, true)
}

func defaultTestOptions() Options {
	return Options{UseAnderson: true, UseLineSearch: true, Damping: DefaultDamping}
}

// TestSolveSinglePhaseShortCircuits checks that a feed far from any
// two-phase region (dilute condensables, high temperature) is reported
// stable with no meaningful phase split.
func TestSolveSinglePhaseShortCircuits(t *testing.T) {
	z := [components.NC]float64{0.1, 0.7, 0.1, 0.05, 0.05}
	res, err := Solve(z, 900, 5e5, params(900), defaultTestOptions())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !res.Stable {
		t.Fatalf("expected a stable single-phase result at high T / low P")
	}
	if res.X != z || res.Y != z {
		t.Fatalf("single-phase result should report X = Y = z")
	}
}

// TestSolveTwoPhaseBetaInRange checks that a two-phase split, when found,
// reports a vapor fraction within [0, 1] and liquid and vapor compositions
// that each sum to 1.
func TestSolveTwoPhaseBetaInRange(t *testing.T) {
	z := [components.NC]float64{0.02, 0.03, 0.02, 0.43, 0.50}
	res, err := Solve(z, 320, 1e6, params(320), defaultTestOptions())
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if res.Stable {
		t.Skip("feed reported stable at this condition; two-phase path not exercised")
	}
	if res.Beta < 0 || res.Beta > 1 {
		t.Fatalf("Beta = %g, want in [0, 1]", res.Beta)
	}
	var sumX, sumY float64
	for i := 0; i < components.NC; i++ {
		sumX += res.X[i]
		sumY += res.Y[i]
	}
	if math.Abs(sumX-1) > 1e-6 {
		t.Fatalf("sum(X) = %g, want 1", sumX)
	}
	if math.Abs(sumY-1) > 1e-6 {
		t.Fatalf("sum(Y) = %g, want 1", sumY)
	}
}

// TestSolveWithoutAndersonStillConverges checks that with Anderson
// acceleration disabled the loop runs on damped plain substitution, returns
// no error and, on the two-phase path, reports a vapor fraction in [0, 1].
func TestSolveWithoutAndersonStillConverges(t *testing.T) {
	z := [components.NC]float64{0.02, 0.03, 0.02, 0.43, 0.50}
	opts := Options{UseAnderson: false, UseLineSearch: false, Damping: DefaultDamping}
	res, err := Solve(z, 320, 1e6, params(320), opts)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if res.Stable {
		t.Skip("feed reported stable at this condition; two-phase path not exercised")
	}
	if res.Beta < 0 || res.Beta > 1 {
		t.Fatalf("Beta = %g, want in [0, 1]", res.Beta)
	}
}

// TestSplitPhasesConsistentWithK checks the algebraic identity y_i = K_i*x_i
// the Rachford-Rice split is built on.
func TestSplitPhasesConsistentWithK(t *testing.T) {
	z := [components.NC]float64{0.2, 0.2, 0.2, 0.2, 0.2}
	K := [components.NC]float64{2, 1.5, 1.0, 0.7, 0.3}
	x, y := splitPhases(z, K, 0.4)
	for i := 0; i < components.NC; i++ {
		if math.Abs(y[i]-K[i]*x[i]) > 1e-9 {
			t.Fatalf("component %d: y = %g, K*x = %g", i, y[i], K[i]*x[i])
		}
	}
}

// TestIsTrivialSplitDetectsIdenticalPhases checks the trivial-solution
// guard used to reject a VLE loop collapsing onto x == y.
func TestIsTrivialSplitDetectsIdenticalPhases(t *testing.T) {
	z := [components.NC]float64{0.2, 0.2, 0.2, 0.2, 0.2}
	if !isTrivialSplit(z, z) {
		t.Fatalf("expected identical phase compositions to be trivial")
	}
	other := [components.NC]float64{0.5, 0.3, 0.1, 0.05, 0.05}
	if isTrivialSplit(z, other) {
		t.Fatalf("expected dissimilar phase compositions to not be trivial")
	}
}
