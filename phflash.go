// Package phflash solves the pressure-enthalpy (P-H) flash problem for the
// fixed five-component mixture H2, N2, O2, NH3 and H2O modelled by the
// Peng-Robinson cubic equation of state, with an optional quantum correction
// for hydrogen. Given a feed composition, a pressure and a target molar
// enthalpy, Calculate finds the temperature, vapor fraction and phase
// compositions that simultaneously satisfy the mole balance, vapor-liquid
// equilibrium and energy balance.
package phflash

import "github.com/RoSqianyue/ph-flash-thermodynamics/components"

// R, NC and the component indices are defined in package components (a
// dependency-free leaf so sub-packages like eos can use them without
// importing this root package) and aliased here for a natural top-level API.
const (
	R  = components.R
	NC = components.NC
)

const (
	IdxH2  = components.IdxH2
	IdxN2  = components.IdxN2
	IdxO2  = components.IdxO2
	IdxNH3 = components.IdxNH3
	IdxH2O = components.IdxH2O
)

// PStandard and TStandard are standard-condition reference values and TRef
// is the 298.15 K thermochemical reference temperature. The
// operating-condition classification in options.go does not read them; it
// uses its own atm constant.
const (
	PStandard = 101325.0 // Pa
	TStandard = 273.15   // K
	TRef      = 298.15   // K
)
