package phflash

import (
	"math"

	"github.com/RoSqianyue/ph-flash-thermodynamics/components"
)

// ValidateInputs checks a feed composition, pressure and target enthalpy
// against the preconditions Calculate requires, in the teacher's
// early-return validation style: the first violated precondition is
// returned immediately as a sentinel FlashError.
func ValidateInputs(z [components.NC]float64, P, hTarget float64, opts FlashOptions) error {
	if opts.EOS != EOSPengRobinson {
		return ErrNotImplemented
	}

	var sum float64
	for i := 0; i < components.NC; i++ {
		if z[i] < 0 {
			return ErrNegativeComposition
		}
		sum += z[i]
	}
	if math.Abs(sum-1) > 1e-6 {
		return ErrCompositionSum
	}

	if P <= 0 || P > 5e8 {
		return ErrPressureRange
	}

	if math.IsNaN(hTarget) || math.IsInf(hTarget, 0) {
		return ErrEnthalpyNotFinite
	}

	if opts.BIPSource == components.BIPCustom {
		if err := validateBIP(opts.CustomBIP); err != nil {
			return err
		}
	}

	return nil
}

// validateBIP checks that a caller-supplied BIP matrix is symmetric, has a
// zero diagonal and stays within the physically sane |kij| <= 0.5 band.
func validateBIP(kij *[components.NC][components.NC]float64) error {
	if kij == nil {
		return NewError(KindInput, "ValidateInputs", -1, 0, "BIPCustom selected but CustomBIP is nil")
	}
	for i := 0; i < components.NC; i++ {
		if kij[i][i] != 0 {
			return NewError(KindInput, "ValidateInputs", -1, kij[i][i], "custom BIP diagonal must be zero")
		}
		for j := i + 1; j < components.NC; j++ {
			if math.Abs(kij[i][j]-kij[j][i]) > 1e-12 {
				return NewError(KindInput, "ValidateInputs", -1, kij[i][j]-kij[j][i], "custom BIP matrix must be symmetric")
			}
			if math.Abs(kij[i][j]) > 0.5 {
				return NewError(KindInput, "ValidateInputs", -1, kij[i][j], "custom BIP magnitude exceeds 0.5")
			}
		}
	}
	return nil
}
