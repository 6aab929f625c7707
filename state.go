package phflash

import (
	"fmt"

	"github.com/RoSqianyue/ph-flash-thermodynamics/components"
)

// Status reports how a Calculate call concluded.
type Status int

const (
	// StatusConverged means the outer Newton loop hit its enthalpy
	// tolerance within the iteration budget.
	StatusConverged Status = iota
	// StatusSinglePhase means the feed was found to be a single stable
	// phase at the converged temperature; X and Y both equal the feed.
	StatusSinglePhase
	// StatusConvergenceTolerance is a warning-level outcome: the outer loop
	// exhausted MaxIterOuter, but the final residual was still within 5x
	// the operating point's classified tolerance, close enough that the
	// result is usable with a caveat rather than rejected outright.
	StatusConvergenceTolerance
	// StatusMaxIterations means the outer loop exhausted MaxIterOuter
	// without reaching tolerance, and the final residual exceeded even the
	// 5x cap; StateProperties still holds the best estimate found.
	StatusMaxIterations
)

func (s Status) String() string {
	switch s {
	case StatusConverged:
		return "converged"
	case StatusSinglePhase:
		return "single-phase"
	case StatusConvergenceTolerance:
		return "convergence-tolerance"
	case StatusMaxIterations:
		return "max-iterations"
	default:
		return "unknown"
	}
}

// StateProperties is the full result of a P-H flash calculation: the
// converged temperature, vapor fraction, phase compositions and
// compressibility factors, plus enough diagnostic detail (iteration counts,
// final residual) for a caller to judge how hard the point was to solve.
type StateProperties struct {
	Status Status

	T    float64 // converged temperature, K
	P    float64 // input pressure, Pa
	Beta float64 // vapor mole fraction

	X [components.NC]float64 // liquid mole fractions
	Y [components.NC]float64 // vapor mole fractions
	K [components.NC]float64 // K-values at convergence

	ZLiquid float64
	ZVapor  float64

	// PhiLiquid and PhiVapor are the ln-fugacity-coefficient vectors for
	// the liquid and vapor phases at convergence, exposed so a caller can
	// verify the equal-fugacity invariant |phi_L,i x_i - phi_V,i y_i| directly
	// instead of re-deriving them from Beta/X/Y/Status.
	PhiLiquid [components.NC]float64
	PhiVapor  [components.NC]float64

	H         float64 // total molar enthalpy at (T, P, Beta, X, Y), J/mol
	HTarget   float64 // the enthalpy Calculate was asked to match, J/mol
	HResidual float64 // H - HTarget at convergence, J/mol
	Condition ConditionType
	OuterIter int
	InnerIter int // VLE iterations at the converged temperature
}

// String implements fmt.Stringer for StateProperties.
func (s *StateProperties) String() string {
	return fmt.Sprintf("StateProperties{Status: %v, T: %.4f K, P: %.0f Pa, Beta: %.6f, HResidual: %.4g J/mol, OuterIter: %d}",
		s.Status, s.T, s.P, s.Beta, s.HResidual, s.OuterIter)
}

// IsSinglePhase reports whether the converged state is a single stable
// phase (Beta is then either 0 or 1 and X == Y == feed).
func (s *StateProperties) IsSinglePhase() bool {
	return s.Status == StatusSinglePhase
}
