package phflash

import "github.com/RoSqianyue/ph-flash-thermodynamics/ferrors"

// Kind, Diagnostic and FlashError live in package ferrors so that the
// sub-packages (eos, enthalpy, rachfordrice, stability, anderson, vle) can
// raise flash-specific errors without importing this root package and
// creating an import cycle. They are aliased here so callers of this
// package see them as phflash.Kind, phflash.FlashError, etc.
type (
	Kind       = ferrors.Kind
	Diagnostic = ferrors.Diagnostic
	FlashError = ferrors.FlashError
)

const (
	KindInput       = ferrors.KindInput
	KindNumerical   = ferrors.KindNumerical
	KindConvergence = ferrors.KindConvergence
	KindPhysical    = ferrors.KindPhysical
	KindAlgorithm   = ferrors.KindAlgorithm
	KindFatal       = ferrors.KindFatal
)

// NewError and Wrap forward to ferrors so call sites in this package read
// naturally as phflash.NewError(...) / phflash.Wrap(...).
var (
	NewError = ferrors.New
	Wrap     = ferrors.Wrap
)

// Sentinel errors, forwarded from ferrors.
var (
	ErrCompositionSum      = ferrors.ErrCompositionSum
	ErrNegativeComposition = ferrors.ErrNegativeComposition
	ErrPressureRange       = ferrors.ErrPressureRange
	ErrEnthalpyNotFinite   = ferrors.ErrEnthalpyNotFinite
	ErrNotImplemented      = ferrors.ErrNotImplemented
	ErrNoRealRoot          = ferrors.ErrNoRealRoot
)
