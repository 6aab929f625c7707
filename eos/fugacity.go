package eos

import (
	"math"

	"github.com/RoSqianyue/ph-flash-thermodynamics/components"
)

// LnPhi computes ln(phi_i) for every component of a phase with composition
// comp, compressibility factor Z and dimensionless EOS parameters A, B.
// This generalizes the teacher's single-fluid LogFugacity (which used a
// constant ā term for a pure substance) to the mixture ā_i = sum_j x_j
// (1-kij) sqrt(a_i a_j) expression spec.md §4.1 requires:
//
//	ln(phi_i) = (b_i/b_mix)(Z-1) - ln(Z-B)
//	    - A/(2*sqrt2*B) * [2*abar_i/a_mix - b_i/b_mix] * ln[(Z+(1+sqrt2)B)/(Z+(1-sqrt2)B)]
func LnPhi(p *Params, comp [components.NC]float64, aMix, bMix, Z, A, B float64) [components.NC]float64 {
	var out [components.NC]float64
	sqrt2 := math.Sqrt2
	logTerm := math.Log((Z + (1+sqrt2)*B) / (Z + (1-sqrt2)*B))

	for i := 0; i < components.NC; i++ {
		abar := p.aBar(i, comp)
		term1 := (p.B[i] / bMix) * (Z - 1)
		term2 := math.Log(Z - B)
		term3 := A / (2 * sqrt2 * B) * (2*abar/aMix - p.B[i]/bMix) * logTerm
		out[i] = term1 - term2 - term3
	}
	return out
}

// EnthalpyDeparture returns H_dep = H_real - H_ideal at (T, Z, A, B) using
// the closed-form PR departure function:
//
//	H_dep = RT(Z-1) + (T*da_mix/dT - a_mix) / (2*sqrt2*b_mix) * ln[(Z+(1+sqrt2)B)/(Z+(1-sqrt2)B)]
func EnthalpyDeparture(T, aMix, bMix, dAdTMix, Z, B float64) float64 {
	sqrt2 := math.Sqrt2
	logTerm := math.Log((Z + (1+sqrt2)*B) / (Z + (1-sqrt2)*B))
	return components.R*T*(Z-1) + (T*dAdTMix-aMix)/(2*sqrt2*bMix)*logTerm
}
