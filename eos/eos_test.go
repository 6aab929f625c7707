package eos

import (
	"math"
	"testing"

	"github.com/RoSqianyue/ph-flash-thermodynamics/components"
)

func TestSolveZVaporLiquidOrdering(t *testing.T) {
	crit := components.Critical
	T := 300.0
	p := NewParams(T, crit.Tc, crit.Pc, crit.W, crit.MW, components.BIPMatrix(components.BIPRecommended, nil), true)

	comp := [components.NC]float64{0.05, 0.30, 0.10, 0.05, 0.50}
	aMix, bMix, _ := p.MixParams(comp)

	P := 5e6
	zVapor, _, B, err := SolveZ(aMix, bMix, P, T, Vapor)
	if err != nil {
		t.Fatalf("vapor SolveZ: %v", err)
	}
	zLiquid, _, _, err := SolveZ(aMix, bMix, P, T, Liquid)
	if err != nil {
		t.Fatalf("liquid SolveZ: %v", err)
	}

	if zVapor <= zLiquid {
		t.Errorf("expected vapor Z (%v) > liquid Z (%v)", zVapor, zLiquid)
	}
	if zVapor <= B || zLiquid <= B {
		t.Errorf("both roots must exceed B=%v: zVapor=%v zLiquid=%v", B, zVapor, zLiquid)
	}
}

func TestH2QuantumCorrectionShiftsTcUp(t *testing.T) {
	crit := components.Critical
	T := 40.0
	withQuantum := NewParams(T, crit.Tc, crit.Pc, crit.W, crit.MW, components.BIPMatrix(components.BIPRecommended, nil), true)
	withoutQuantum := NewParams(T, crit.Tc, crit.Pc, crit.W, crit.MW, components.BIPMatrix(components.BIPRecommended, nil), false)

	if withQuantum.TcUsed[components.IdxH2] <= withoutQuantum.TcUsed[components.IdxH2] {
		t.Errorf("quantum-corrected Tc (%v) should exceed classical Tc (%v) at low T",
			withQuantum.TcUsed[components.IdxH2], withoutQuantum.TcUsed[components.IdxH2])
	}
	// Non-hydrogen components are untouched by the correction.
	for _, i := range []int{components.IdxN2, components.IdxO2, components.IdxNH3, components.IdxH2O} {
		if withQuantum.TcUsed[i] != withoutQuantum.TcUsed[i] {
			t.Errorf("component %d Tc should be unaffected by the H2 quantum correction", i)
		}
	}
}

func TestLnPhiPureFluidMatchesSingleComponentFormula(t *testing.T) {
	crit := components.Critical
	T := 300.0
	p := NewParams(T, crit.Tc, crit.Pc, crit.W, crit.MW, components.BIPMatrix(components.BIPRecommended, nil), false)

	var comp [components.NC]float64
	comp[components.IdxN2] = 1
	aMix, bMix, _ := p.MixParams(comp)

	P := 1e6
	Z, A, B, err := SolveZ(aMix, bMix, P, T, Vapor)
	if err != nil {
		t.Fatalf("SolveZ: %v", err)
	}

	lnPhi := LnPhi(p, comp, aMix, bMix, Z, A, B)
	// For a pure fluid, abar_i == a_mix, so the mixture ln(phi) formula must
	// collapse to b_i/b_mix == 1 and 2*abar/a_mix - b_i/b_mix == 1.
	want := (Z - 1) - math.Log(Z-B) -
		A/(2*math.Sqrt2*B)*math.Log((Z+(1+math.Sqrt2)*B)/(Z+(1-math.Sqrt2)*B))
	if math.Abs(lnPhi[components.IdxN2]-want) > 1e-9 {
		t.Errorf("ln(phi) = %v, want %v", lnPhi[components.IdxN2], want)
	}
}
