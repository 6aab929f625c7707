package phflash

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/RoSqianyue/ph-flash-thermodynamics/components"
	"github.com/RoSqianyue/ph-flash-thermodynamics/enthalpy"
)

// FuzzCalculate implements the scenario-6 fuzz sweep: across many random
// feeds, pressures and target enthalpies, Calculate must never return NaN in
// its state, must keep the reported vapor fraction within [0, 1] (or mark the
// state explicitly single-phase), and must never panic. It does not require
// every input to converge -- a hard numerical case returning a well-formed
// KindConvergence/KindPhysical/KindNumerical/KindAlgorithm FlashError is an
// acceptable outcome; a panic, an error that is not a *FlashError or is of
// any other kind, a NaN result, or an out-of-range beta on a state not
// marked single-phase fails the fuzz run.
func FuzzCalculate(f *testing.F) {
	f.Add(0.2, 0.6, 0.15, 0.05, 0.0, 1e5, 1.0e4)
	f.Add(0.0, 0.0, 0.0, 0.5, 0.5, 1e6, -4.0e4)
	f.Add(0.9, 0.0, 0.0, 0.05, 0.05, 2e7, 3.0e3)
	f.Add(0.0, 0.78, 0.21, 0.0, 0.01, 1.01325e5, 0.0)
	f.Add(0.1, 0.1, 0.1, 0.35, 0.35, 5e6, -3.5e4)

	f.Fuzz(func(t *testing.T, a, b, c, d, e, P, h float64) {
		raw := [components.NC]float64{
			math.Abs(a), math.Abs(b), math.Abs(c), math.Abs(d), math.Abs(e),
		}
		var sum float64
		for _, v := range raw {
			sum += v
		}
		if sum == 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
			t.Skip("degenerate all-zero or non-finite composition")
		}
		var z [components.NC]float64
		for i := range raw {
			z[i] = raw[i] / sum
		}

		P = math.Abs(P)
		if P < PStandard/100 {
			P = PStandard
		}
		if P > 1e8 {
			P = 1e8
		}
		if math.IsNaN(h) || math.IsInf(h, 0) {
			t.Skip("non-finite target enthalpy")
		}
		// Clamp the target enthalpy into the ideal-gas bracket spanned by
		// 200-800 K, per spec scenario 6, so the sweep exercises realistic
		// operating points rather than thermodynamically unreachable ones.
		hLow := enthalpy.IdealGasMixture(z, 200)
		hHigh := enthalpy.IdealGasMixture(z, 800)
		if hLow > hHigh {
			hLow, hHigh = hHigh, hLow
		}
		span := hHigh - hLow
		if span <= 0 {
			t.Skip("degenerate ideal-gas enthalpy bracket")
		}
		hTarget := hLow + math.Mod(math.Abs(h), span)

		state, err := Calculate(context.Background(), z, P, hTarget, DefaultOptions())

		if err != nil {
			var ferr *FlashError
			if !errors.As(err, &ferr) {
				t.Fatalf("non-FlashError returned: %T: %v", err, err)
			}
			switch ferr.Kind {
			case KindConvergence, KindPhysical, KindNumerical, KindAlgorithm:
				// Acceptable: a hard numerical case that did not resolve.
			default:
				t.Fatalf("unexpected error kind %v: %v", ferr.Kind, err)
			}
		}
		if state == nil {
			return
		}
		if math.IsNaN(state.T) || math.IsNaN(state.H) || math.IsNaN(state.Beta) {
			t.Fatalf("NaN in returned state: %+v", state)
		}
		if !state.IsSinglePhase() && (state.Beta < -1e-9 || state.Beta > 1+1e-9) {
			t.Fatalf("Beta out of [0,1] for a two-phase state: %g", state.Beta)
		}
	})
}
