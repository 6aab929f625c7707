package phflash

import (
	"context"

	"github.com/RoSqianyue/ph-flash-thermodynamics/components"
)

// Calculate performs a pressure-enthalpy flash for the fixed five-component
// mixture H2, N2, O2, NH3, H2O: given a feed composition z (mole fractions,
// indexed by the Idx* constants), a pressure P (Pa) and a target molar
// enthalpy hTarget (J/mol), it finds the temperature, vapor fraction and
// phase compositions that simultaneously satisfy the mole balance,
// vapor-liquid equilibrium and energy balance.
//
// Calculate is safe for concurrent use by multiple goroutines as long as
// each call passes its own FlashOptions (in particular its own Logger);
// there is no package-level mutable state. ctx is checked at each outer and
// inner-loop entry and its cancellation is propagated as a FlashError of
// KindFatal wrapping ctx.Err().
func Calculate(ctx context.Context, z [components.NC]float64, P, hTarget float64, opts FlashOptions) (*StateProperties, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := ValidateInputs(z, P, hTarget, opts); err != nil {
		return nil, err
	}

	if opts.Logger != nil {
		opts.Logger.Info().
			Float64("P", P).
			Float64("hTarget", hTarget).
			Str("bip", bipSourceName(opts.BIPSource)).
			Bool("quantumH2", opts.QuantumCorrectionH2).
			Msg("starting P-H flash")
	}

	return solveOuter(ctx, z, P, hTarget, opts)
}

func bipSourceName(s components.BIPSource) string {
	switch s {
	case components.BIPUniSim:
		return "unisim"
	case components.BIPCustom:
		return "custom"
	default:
		return "recommended"
	}
}
