// Package ferrors defines the error taxonomy shared by every layer of the
// flash kernel: eos, enthalpy, rachfordrice, stability, anderson, vle and
// the root package itself. It is a dependency-free leaf (like components)
// so that sub-packages can raise flash-specific errors without importing
// the root package and creating an import cycle.
package ferrors

import "fmt"

// Kind is a coarse error taxonomy. The thirty-odd numeric status codes of a
// typical flash calculator collapse to these six kinds; a free-form
// Diagnostic payload carries whatever extra context a caller needs instead
// of multiplying the enum.
type Kind int

const (
	// KindInput covers null, out-of-range or mutually inconsistent inputs.
	KindInput Kind = iota
	// KindNumerical covers overflow, divide-by-zero, singular matrices and
	// cubic equations with no admissible real root.
	KindNumerical
	// KindConvergence covers max-iteration, stagnation, oscillation and
	// tolerance-miss outcomes.
	KindConvergence
	// KindPhysical covers negative composition, trivial solutions,
	// impossible states, critical-region proximity and fugacity imbalance.
	KindPhysical
	// KindAlgorithm covers failures specific to one of the named
	// sub-algorithms (TPD, Rachford-Rice, Anderson, line search, Newton, EOS).
	KindAlgorithm
	// KindFatal covers internal invariant violations that should never
	// occur and are not meant to be recovered from.
	KindFatal
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindNumerical:
		return "numerical"
	case KindConvergence:
		return "convergence"
	case KindPhysical:
		return "physical"
	case KindAlgorithm:
		return "algorithm"
	case KindFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Diagnostic carries the context a caller needs to understand and react to
// a FlashError: which function raised it, at what iteration, and the
// magnitude of whatever residual triggered it.
type Diagnostic struct {
	Function  string  // name of the operation that raised the error
	Iteration int     // iteration count at the time of failure, -1 if not applicable
	Residual  float64 // residual magnitude at the time of failure, if applicable
}

// FlashError is the tagged variant returned by every fallible operation in
// this module: a coarse Kind plus a human-readable message and diagnostic
// payload.
type FlashError struct {
	Kind       Kind
	Msg        string
	Diagnostic Diagnostic
	Cause      error
}

func (e *FlashError) Error() string {
	if e.Diagnostic.Function != "" {
		return fmt.Sprintf("%s: %s (in %s, iter %d, residual %g)",
			e.Kind, e.Msg, e.Diagnostic.Function, e.Diagnostic.Iteration, e.Diagnostic.Residual)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *FlashError) Unwrap() error { return e.Cause }

// New builds a FlashError with the given kind, message and diagnostic
// context in one call, to keep call sites terse.
func New(kind Kind, function string, iteration int, residual float64, msg string) *FlashError {
	return &FlashError{
		Kind: kind,
		Msg:  msg,
		Diagnostic: Diagnostic{
			Function:  function,
			Iteration: iteration,
			Residual:  residual,
		},
	}
}

// Wrap annotates an existing error with flash-specific kind and diagnostic
// context, preserving it as Cause for errors.Unwrap / errors.Is chains.
func Wrap(kind Kind, function string, cause error) *FlashError {
	return &FlashError{
		Kind:       kind,
		Msg:        cause.Error(),
		Diagnostic: Diagnostic{Function: function, Iteration: -1},
		Cause:      cause,
	}
}

// Sentinel, parameter-free errors for the common validation failures, in the
// teacher's style of package-level error variables.
var (
	// ErrCompositionSum is returned when the feed composition does not sum to 1.
	ErrCompositionSum = &FlashError{Kind: KindInput, Msg: "feed composition must sum to 1 within 1e-6"}
	// ErrNegativeComposition is returned when a feed mole fraction is negative.
	ErrNegativeComposition = &FlashError{Kind: KindInput, Msg: "feed composition must be non-negative"}
	// ErrPressureRange is returned when pressure is outside (0, 5e8] Pa.
	ErrPressureRange = &FlashError{Kind: KindInput, Msg: "pressure must be in (0, 5e8] Pa"}
	// ErrEnthalpyNotFinite is returned when the target enthalpy is NaN or +/-Inf.
	ErrEnthalpyNotFinite = &FlashError{Kind: KindInput, Msg: "target enthalpy must be finite"}
	// ErrNotImplemented is returned for the reserved PR-CPA equation-of-state switch.
	ErrNotImplemented = &FlashError{Kind: KindFatal, Msg: "eos_type != PR is reserved and not implemented"}
	// ErrNoRealRoot is returned when the EOS cubic has no admissible root for the requested phase.
	ErrNoRealRoot = &FlashError{Kind: KindNumerical, Msg: "no real root greater than B found for requested phase"}
)
