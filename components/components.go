// Package components holds the static, substance-specific data the flash
// kernel is fixed to: critical properties, molar masses, binary interaction
// parameter (BIP) matrices and ideal-gas enthalpy models for the five
// components H2, N2, O2, NH3 and H2O.
//
// This is the "leaves first" layer of the system (spec.md §2): nothing here
// depends on any other package in this module, mirroring the teacher's
// substance package, which is like this the lowest layer the cubic/EOS code
// builds on.
package components

// NC is the number of components the flash is fixed to.
const NC = 5

// Component indices into every length-NC vector in this module.
const (
	IdxH2 = iota
	IdxN2
	IdxO2
	IdxNH3
	IdxH2O
)

// R is the universal gas constant in SI units, duplicated here (rather than
// imported) because this package must not depend on anything above it.
const R = 8.314462618 // J/(mol*K)

// Names are the component labels in index order.
var Names = [NC]string{"H2", "N2", "O2", "NH3", "H2O"}

// CriticalProps holds the per-component critical temperature, pressure,
// acentric factor and molar mass used by the Peng-Robinson kernel.
type CriticalProps struct {
	Tc [NC]float64 // critical temperature [K]
	Pc [NC]float64 // critical pressure [Pa]
	W  [NC]float64 // acentric factor [-]
	MW [NC]float64 // molar mass [g/mol]
}

// Critical is the fixed critical-property table for H2, N2, O2, NH3, H2O.
var Critical = CriticalProps{
	Tc: [NC]float64{33.19, 126.21, 154.58, 405.40, 647.10},
	Pc: [NC]float64{1.313e6, 3.39e6, 5.043e6, 11.28e6, 22.06e6},
	W:  [NC]float64{-0.216, 0.0372, 0.0222, 0.2526, 0.3443},
	MW: [NC]float64{2.016, 28.014, 31.999, 17.031, 18.015},
}

// BIPSource names which binary-interaction-parameter table to use.
type BIPSource int

const (
	// BIPRecommended is the engineering-recommended, DIPPR-style table.
	BIPRecommended BIPSource = iota
	// BIPUniSim mirrors a commercial simulator's default table.
	BIPUniSim
	// BIPCustom signals a caller-supplied matrix (see BIPMatrix).
	BIPCustom
)

// recommendedKij is the DIPPR-style recommended BIP matrix, symmetric with
// a zero diagonal, ordered H2, N2, O2, NH3, H2O.
var recommendedKij = [NC][NC]float64{
	{0.000, -0.036, -0.164, 0.090, -0.200},
	{-0.036, 0.000, -0.0119, 0.2193, 0.3200},
	{-0.164, -0.0119, 0.000, -0.0500, 0.0000},
	{0.090, 0.2193, -0.0500, 0.000, -0.2589},
	{-0.200, 0.3200, 0.0000, -0.2589, 0.000},
}

// uniSimKij is a second, slightly different recommended-by-a-simulator
// table, used when FlashOptions selects BIPUniSim.
var uniSimKij = [NC][NC]float64{
	{0.000, -0.020, -0.150, 0.100, -0.180},
	{-0.020, 0.000, -0.0100, 0.2000, 0.3000},
	{-0.150, -0.0100, 0.000, -0.0400, 0.0000},
	{0.100, 0.2000, -0.0400, 0.000, -0.2400},
	{-0.180, 0.3000, 0.0000, -0.2400, 0.000},
}

// BIPMatrix returns the kij matrix for the requested source. For
// BIPCustom, the caller-supplied matrix is returned unchanged; it is the
// caller's responsibility to have validated it (symmetric, zero diagonal,
// |kij| <= 0.5) via phflash.ValidateInputs before use.
func BIPMatrix(source BIPSource, custom *[NC][NC]float64) [NC][NC]float64 {
	switch source {
	case BIPUniSim:
		return uniSimKij
	case BIPCustom:
		if custom != nil {
			return *custom
		}
		return recommendedKij
	default:
		return recommendedKij
	}
}
