package phflash

import (
	"github.com/rs/zerolog"

	"github.com/RoSqianyue/ph-flash-thermodynamics/components"
)

// ConditionType classifies how demanding an operating point is, which in
// turn selects the enthalpy-residual tolerance the outer Newton loop
// targets (spec.md §5's adaptive tolerance classification).
type ConditionType int

const (
	// ConditionStandard is the default tolerance band (TolEnthalpy).
	ConditionStandard ConditionType = iota
	// ConditionDifficult widens the band (TolEnthalpyDifficult), used for
	// any non-standard point at or below 100 atm and for any temperature
	// outside 250-400 K, whatever the pressure.
	ConditionDifficult
	// ConditionExtreme widens it further still (TolEnthalpyExtreme), used
	// only above 100 atm with the temperature inside 250-400 K.
	ConditionExtreme
)

// Enthalpy-residual tolerances (J/mol) and iteration budgets, carried over
// from the fixed numeric constants of the original calculator.
const (
	TolEnthalpy          = 5.0
	TolEnthalpyDifficult = 50.0
	TolEnthalpyExtreme   = 150.0
	MaxIterOuter         = 50
	MaxIterVLE           = 100
	MaxIterRachfordRice  = 30
	MaxIterTPD           = 20
	MaxTPDTrials         = 7
	MaxAndersonHistory   = 5

	// DefaultDamping is the initial successive-substitution damping
	// factor, grown geometrically toward 0.9 on monotone convergence and
	// halved on a residual increase or an Anderson rejection.
	DefaultDamping = 0.5
	// DefaultTolFactor leaves the classified tolerance band unscaled.
	DefaultTolFactor = 1.0
	// DefaultMaxReasonableDHDT bounds the outer loop's finite-difference
	// dH/dT estimate; a magnitude beyond this is treated as numerically
	// unreliable rather than physical.
	DefaultMaxReasonableDHDT = 1e5
)

// EOSType selects the equation of state. PR is the only implemented value;
// the others are reserved for a future PR-CPA association term and return
// ErrNotImplemented if requested.
type EOSType int

const (
	EOSPengRobinson EOSType = iota
	eosReservedCPA
)

// FlashOptions configures one Calculate invocation. The zero value is not
// directly usable; construct one with DefaultOptions and override fields
// as needed. Booleans are grouped by what they gate (numerical-method
// toggles, then tolerance policy, then safety nets) rather than declared
// in truth-table order.
type FlashOptions struct {
	EOS EOSType

	// QuantumCorrectionH2 enables the Prausnitz-Gunn Tc/Pc shift for
	// hydrogen. Disabling it is occasionally useful for comparing against
	// a classical-PR reference calculation.
	QuantumCorrectionH2 bool

	// BIPSource selects which binary-interaction-parameter table to use.
	BIPSource components.BIPSource
	// CustomBIP is used when BIPSource is components.BIPCustom.
	CustomBIP *[components.NC][components.NC]float64

	MaxIterOuter        int
	MaxIterVLE          int
	MaxIterRachfordRice int

	// --- Numerical-method toggles (isothermal VLE loop and outer T loop) ---

	// UseAnderson enables Anderson-mixing acceleration of the successive
	// substitution on ln K; when false the loop falls back to damped
	// plain substitution throughout.
	UseAnderson bool
	// UseLineSearch enables Armijo back-tracking within the VLE loop's
	// damped step, and the T+d/T+d/2/T+d/4 line search in the outer loop.
	UseLineSearch bool
	// Damping is the initial successive-substitution damping factor in
	// (0, 1]; <= 0 selects DefaultDamping.
	Damping float64

	// --- Tolerance policy (outer loop convergence target) ---

	// AdaptiveTolerance enables per-point classification (standard,
	// difficult, extreme) of the enthalpy-residual tolerance; when false
	// every point uses the standard-condition tolerance.
	AdaptiveTolerance bool
	// TolFactor multiplies the classified (or overridden) base tolerance.
	// <= 0 selects DefaultTolFactor (1.0, unscaled).
	TolFactor float64
	// ConditionOverride, if non-nil, skips classification and fixes the
	// operating-condition band (and its base tolerance) directly.
	ConditionOverride *ConditionType
	// CustomEnthalpyTol, if > 0, overrides the classified/scaled
	// tolerance entirely.
	CustomEnthalpyTol float64

	// --- Outer-loop derivative and safety-net toggles ---

	// AdaptiveDerivative enables widening or narrowing the finite-
	// difference step h so that |h * dH/dT| stays within a band around
	// the enthalpy tolerance, instead of using a fixed h.
	AdaptiveDerivative bool
	// DerivativePerturbation, if > 0, is used as the finite-difference
	// step h directly instead of the default max(0.01 K, 1e-4*T).
	DerivativePerturbation float64
	// UseAnalyticalBackup substitutes an ideal-gas Cp-based derivative
	// estimate when the finite-difference dH/dT is non-finite or exceeds
	// MaxReasonableDHDT; when false, the outer loop instead halves its
	// previous Newton step.
	UseAnalyticalBackup bool
	// MaxReasonableDHDT bounds the finite-difference dH/dT magnitude
	// considered physically plausible; <= 0 selects
	// DefaultMaxReasonableDHDT.
	MaxReasonableDHDT float64

	// Logger receives an info-level event when Calculate starts and a
	// debug-level event when the outer loop converges. No per-iteration or
	// warning events are emitted, and the inner VLE loop does not log. A
	// nil Logger disables logging entirely.
	Logger *zerolog.Logger
}

// DefaultOptions returns the recommended FlashOptions: PR with the
// hydrogen quantum correction enabled, the recommended BIP table, Anderson
// acceleration and line search both on, damping 0.5, adaptive tolerance
// on, and the source-derived iteration budgets.
func DefaultOptions() FlashOptions {
	return FlashOptions{
		EOS:                 EOSPengRobinson,
		QuantumCorrectionH2: true,
		BIPSource:           components.BIPRecommended,
		MaxIterOuter:        MaxIterOuter,
		MaxIterVLE:          MaxIterVLE,
		MaxIterRachfordRice: MaxIterRachfordRice,
		UseAnderson:         true,
		UseLineSearch:       true,
		Damping:             DefaultDamping,
		AdaptiveTolerance:   true,
		TolFactor:           DefaultTolFactor,
		UseAnalyticalBackup: true,
		MaxReasonableDHDT:   DefaultMaxReasonableDHDT,
	}
}

// atm is one standard atmosphere in Pa, the unit spec.md's classification
// bands are stated in.
const atm = 101325.0

// classify picks the tolerance regime for an operating point per spec.md
// §4.6.1: standard is 1-10 atm and 250-400 K; difficult is everything at
// or below 100 atm, or anything whose temperature falls outside the
// standard band (regardless of pressure); extreme is what's left over --
// pressure above 100 atm with temperature still inside the standard band,
// the genuinely hard combination of a near-singular EOS and a reasonable
// T guess to start Newton from.
func classify(T, P float64) (ConditionType, float64) {
	standardT := T >= 250 && T <= 400
	if P >= 1*atm && P <= 10*atm && standardT {
		return ConditionStandard, TolEnthalpy
	}
	if P <= 100*atm || !standardT {
		return ConditionDifficult, TolEnthalpyDifficult
	}
	return ConditionExtreme, TolEnthalpyExtreme
}

// baseTolFor returns the unscaled tolerance for a condition band, used both
// by classify and by an explicit ConditionOverride.
func baseTolFor(c ConditionType) float64 {
	switch c {
	case ConditionDifficult:
		return TolEnthalpyDifficult
	case ConditionExtreme:
		return TolEnthalpyExtreme
	default:
		return TolEnthalpy
	}
}

// effectiveTolerance layers options.tol_factor, options.condition_type and
// options.custom_enthalpy_tol (spec.md §3, §4.6.1) on top of classify's
// base band selection.
func effectiveTolerance(T, P float64, opts FlashOptions) (ConditionType, float64) {
	var condition ConditionType
	var tol float64
	switch {
	case opts.ConditionOverride != nil:
		condition = *opts.ConditionOverride
		tol = baseTolFor(condition)
	case !opts.AdaptiveTolerance:
		condition, tol = ConditionStandard, TolEnthalpy
	default:
		condition, tol = classify(T, P)
	}

	factor := opts.TolFactor
	if factor <= 0 {
		factor = DefaultTolFactor
	}
	tol *= factor

	if opts.CustomEnthalpyTol > 0 {
		tol = opts.CustomEnthalpyTol
	}
	return condition, tol
}
