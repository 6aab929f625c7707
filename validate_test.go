package phflash

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RoSqianyue/ph-flash-thermodynamics/components"
)

func feed() [components.NC]float64 {
	return [components.NC]float64{0.05, 0.30, 0.10, 0.05, 0.50}
}

func TestValidateInputsAcceptsWellFormedFeed(t *testing.T) {
	err := ValidateInputs(feed(), 2e6, -1.5e4, DefaultOptions())
	require.NoError(t, err)
}

func TestValidateInputsRejectsCompositionSum(t *testing.T) {
	z := feed()
	z[0] += 0.1 // now sums to 1.1
	err := ValidateInputs(z, 2e6, -1.5e4, DefaultOptions())
	require.ErrorIs(t, err, ErrCompositionSum)
}

func TestValidateInputsRejectsNegativeComposition(t *testing.T) {
	z := feed()
	z[0] = -0.01
	z[4] += 0.01
	err := ValidateInputs(z, 2e6, -1.5e4, DefaultOptions())
	require.ErrorIs(t, err, ErrNegativeComposition)
}

func TestValidateInputsRejectsPressureOutOfRange(t *testing.T) {
	err := ValidateInputs(feed(), -1, -1.5e4, DefaultOptions())
	require.ErrorIs(t, err, ErrPressureRange)

	err = ValidateInputs(feed(), 6e8, -1.5e4, DefaultOptions())
	require.ErrorIs(t, err, ErrPressureRange)
}

func TestValidateInputsRejectsNonFiniteEnthalpy(t *testing.T) {
	err := ValidateInputs(feed(), 2e6, math.NaN(), DefaultOptions())
	require.ErrorIs(t, err, ErrEnthalpyNotFinite)

	err = ValidateInputs(feed(), 2e6, math.Inf(1), DefaultOptions())
	require.ErrorIs(t, err, ErrEnthalpyNotFinite)
}

func TestValidateInputsRejectsUnimplementedEOS(t *testing.T) {
	opts := DefaultOptions()
	opts.EOS = eosReservedCPA
	err := ValidateInputs(feed(), 2e6, -1.5e4, opts)
	require.ErrorIs(t, err, ErrNotImplemented)
}

func TestValidateInputsRejectsBadCustomBIP(t *testing.T) {
	opts := DefaultOptions()
	opts.BIPSource = components.BIPCustom
	err := ValidateInputs(feed(), 2e6, -1.5e4, opts)
	require.Error(t, err, "nil CustomBIP should be rejected")

	bad := components.BIPMatrix(components.BIPRecommended, nil)
	bad[0][1] = 0.99 // exceeds 0.5 magnitude
	opts.CustomBIP = &bad
	err = ValidateInputs(feed(), 2e6, -1.5e4, opts)
	require.Error(t, err)
}
