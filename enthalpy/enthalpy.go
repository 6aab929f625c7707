// Package enthalpy evaluates ideal-gas component and mixture enthalpies
// from the piecewise Shomate/NASA-7 models in package components, and
// combines them with an EOS departure function to produce the real-phase
// total molar enthalpy the outer P-H loop targets.
//
// The table-lookup-plus-evaluator shape here follows the teacher's
// lee-kesler.Correlation: a small typed accessor over a per-component table,
// picked by an index rather than a property enum since there is only one
// property (enthalpy) to evaluate.
package enthalpy

import (
	"github.com/RoSqianyue/ph-flash-thermodynamics/components"
	"github.com/RoSqianyue/ph-flash-thermodynamics/eos"
	"github.com/RoSqianyue/ph-flash-thermodynamics/ferrors"
)

// IdealGas returns the ideal-gas molar enthalpy of pure component i at
// temperature T, relative to the package's internal reference (continuous
// across Crossover to within 1 J/mol; see components.EnthalpyModel).
func IdealGas(i int, T float64) float64 {
	m := components.EnthalpyModels[i]
	if T <= m.Crossover {
		return shomateH(m.Shomate, T)
	}
	return nasa7H(m.NASA7, T) + m.Offset
}

// IdealGasCp returns the ideal-gas molar heat capacity of pure component i
// at temperature T, used by the outer loop's analytic dH/dT fallback.
func IdealGasCp(i int, T float64) float64 {
	m := components.EnthalpyModels[i]
	if T <= m.Crossover {
		return shomateCp(m.Shomate, T)
	}
	return nasa7Cp(m.NASA7, T)
}

// IdealGasMixture returns the mole-fraction-weighted ideal-gas enthalpy of
// a phase with composition comp at temperature T.
func IdealGasMixture(comp [components.NC]float64, T float64) float64 {
	var h float64
	for i := 0; i < components.NC; i++ {
		h += comp[i] * IdealGas(i, T)
	}
	return h
}

// IdealGasMixtureCp returns the mole-fraction-weighted ideal-gas heat
// capacity of a phase with composition comp at temperature T.
func IdealGasMixtureCp(comp [components.NC]float64, T float64) float64 {
	var cp float64
	for i := 0; i < components.NC; i++ {
		cp += comp[i] * IdealGasCp(i, T)
	}
	return cp
}

// PhaseEnthalpy returns the real-phase molar enthalpy: the ideal-gas mixture
// enthalpy plus the EOS departure term evaluated at (T, Z, A, B).
func PhaseEnthalpy(comp [components.NC]float64, T, aMix, bMix, dAdTMix, Z, B float64) float64 {
	ig := IdealGasMixture(comp, T)
	dep := eos.EnthalpyDeparture(T, aMix, bMix, dAdTMix, Z, B)
	return ig + dep
}

// DHdT estimates d(H_total)/dT at the current flash state via a centered
// finite difference of total enthalpy with step h. The root package's outer
// loop does not call it: it takes its own forward difference and falls back
// to the ideal-gas Cp estimate (IdealGasMixtureCp) when that is unusable.
func DHdT(hPlus, hMinus, h float64) (float64, error) {
	if h == 0 {
		return 0, ferrors.New(ferrors.KindNumerical, "enthalpy.DHdT", -1, 0, "zero finite-difference step")
	}
	return (hPlus - hMinus) / (2 * h), nil
}

func shomateH(c components.ShomateCoeffs, T float64) float64 {
	t := T / 1000
	kJ := c.A*t + c.B*t*t/2 + c.C*t*t*t/3 + c.D*t*t*t*t/4 - c.E/t + c.F - c.H
	return kJ * 1000
}

// shomateCp returns Cp in J/(mol*K): Cp = A + B*t + C*t^2 + D*t^3 + E/t^2.
func shomateCp(c components.ShomateCoeffs, T float64) float64 {
	t := T / 1000
	return c.A + c.B*t + c.C*t*t + c.D*t*t*t + c.E/(t*t)
}

func nasa7H(c components.NASA7Coeffs, T float64) float64 {
	hOverRT := c.A1 + c.A2*T/2 + c.A3*T*T/3 + c.A4*T*T*T/4 + c.A5*T*T*T*T/5 + c.A6/T
	return hOverRT * components.R * T
}

// nasa7Cp returns Cp in J/(mol*K): Cp/R = a1 + a2*T + a3*T^2 + a4*T^3 + a5*T^4.
func nasa7Cp(c components.NASA7Coeffs, T float64) float64 {
	cpOverR := c.A1 + c.A2*T + c.A3*T*T + c.A4*T*T*T + c.A5*T*T*T*T
	return cpOverR * components.R
}
