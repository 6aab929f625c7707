package phflash

import (
	"context"
	"math"

	"github.com/RoSqianyue/ph-flash-thermodynamics/components"
	"github.com/RoSqianyue/ph-flash-thermodynamics/enthalpy"
	"github.com/RoSqianyue/ph-flash-thermodynamics/eos"
	"github.com/RoSqianyue/ph-flash-thermodynamics/vle"
)

// pointResult bundles the total enthalpy and VLE outcome for one
// temperature evaluation in the outer loop.
type pointResult struct {
	H       float64
	ZLiquid float64
	ZVapor  float64
	vle     vle.Result
	p       *eos.Params
}

// vleOptionsFrom translates the outer loop's FlashOptions into the inner
// loop's vle.Options.
func vleOptionsFrom(opts FlashOptions) vle.Options {
	return vle.Options{
		MaxIter:       opts.MaxIterVLE,
		MaxIterRR:     opts.MaxIterRachfordRice,
		UseAnderson:   opts.UseAnderson,
		UseLineSearch: opts.UseLineSearch,
		Damping:       opts.Damping,
	}
}

// evaluateAt builds the EOS parameters at T and solves the inner VLE
// problem, returning the resulting total molar enthalpy.
func evaluateAt(ctx context.Context, z [components.NC]float64, T, P float64, kij [components.NC][components.NC]float64, opts FlashOptions) (pointResult, error) {
	if err := ctx.Err(); err != nil {
		return pointResult{}, Wrap(KindFatal, "phflash.evaluateAt", err)
	}

	crit := components.Critical
	p := eos.NewParams(T, crit.Tc, crit.Pc, crit.W, crit.MW, kij, opts.QuantumCorrectionH2)

	res, err := vle.Solve(z, T, P, p, vleOptionsFrom(opts))
	if err != nil {
		return pointResult{}, err
	}

	var h, zLiquid, zVapor float64
	if res.Stable {
		comp := z
		aMix, bMix, dAdTMix := p.MixParams(comp)
		phase := eos.Liquid
		if res.Beta == 1 {
			phase = eos.Vapor
		}
		Z, _, B, zErr := eos.SolveZ(aMix, bMix, P, T, phase)
		if zErr != nil {
			return pointResult{}, zErr
		}
		h = enthalpy.PhaseEnthalpy(comp, T, aMix, bMix, dAdTMix, Z, B)
		if phase == eos.Vapor {
			zVapor = Z
		} else {
			zLiquid = Z
		}
	} else {
		aMixL, bMixL, dAdTMixL := p.MixParams(res.X)
		ZL, _, BL, errL := eos.SolveZ(aMixL, bMixL, P, T, eos.Liquid)
		if errL != nil {
			return pointResult{}, errL
		}
		hL := enthalpy.PhaseEnthalpy(res.X, T, aMixL, bMixL, dAdTMixL, ZL, BL)

		aMixV, bMixV, dAdTMixV := p.MixParams(res.Y)
		ZV, _, BV, errV := eos.SolveZ(aMixV, bMixV, P, T, eos.Vapor)
		if errV != nil {
			return pointResult{}, errV
		}
		hV := enthalpy.PhaseEnthalpy(res.Y, T, aMixV, bMixV, dAdTMixV, ZV, BV)

		h = res.Beta*hV + (1-res.Beta)*hL
		zLiquid, zVapor = ZL, ZV
	}

	return pointResult{H: h, ZLiquid: zLiquid, ZVapor: zVapor, vle: res, p: p}, nil
}

// bracketInitialT scans a wide temperature range in equal steps to find the
// first interval containing a root of H(T) - hTarget = 0, before handing
// off to Newton's method. This is the same role the Wilson-equation guess
// plays in the teacher's SaturationPressure, adapted since there is no
// single closed-form initial guess for an arbitrary mixture enthalpy.
func bracketInitialT(ctx context.Context, z [components.NC]float64, P, hTarget float64, kij [components.NC][components.NC]float64, opts FlashOptions) (float64, float64, error) {
	const (
		tLow  = 20.0
		tHigh = 2500.0
		steps = 24
	)

	prevT := tLow
	prevRes, err := evaluateAt(ctx, z, prevT, P, kij, opts)
	if err != nil {
		return 0, 0, err
	}
	prevResid := prevRes.H - hTarget

	step := (tHigh - tLow) / steps
	for i := 1; i <= steps; i++ {
		T := tLow + float64(i)*step
		res, err := evaluateAt(ctx, z, T, P, kij, opts)
		if err != nil {
			continue
		}
		resid := res.H - hTarget
		if resid == 0 {
			return T, T, nil
		}
		if (resid > 0) != (prevResid > 0) {
			return prevT, T, nil
		}
		prevT, prevResid = T, resid
	}
	return tLow, tHigh, NewError(KindConvergence, "phflash.bracketInitialT", steps, prevResid,
		"no temperature bracket found for target enthalpy in [20, 2500] K")
}

// cpBackup estimates dH/dT from the ideal-gas mixture heat capacity of
// whichever phase(s) the last evaluation found, used when the finite-
// difference derivative is unusable.
func cpBackup(res pointResult, z [components.NC]float64, T float64) float64 {
	if res.vle.Stable {
		return enthalpy.IdealGasMixtureCp(z, T)
	}
	return res.vle.Beta*enthalpy.IdealGasMixtureCp(res.vle.Y, T) +
		(1-res.vle.Beta)*enthalpy.IdealGasMixtureCp(res.vle.X, T)
}

// solveOuter runs the P-H outer Newton loop: adjust T until the total
// mixture enthalpy at (T, P, phase split) matches hTarget within the
// tolerance effectiveTolerance selects for this operating point. The
// derivative dH/dT is estimated by a forward finite difference of two full
// inner VLE solves, since no closed-form dH/dT is available once a phase
// split is present; the raw Newton step is then refined by an optional
// T+d/T+d/2/T+d/4 line search and clamped to +/-50 K per iteration,
// mirroring the ratio-clamped update in the teacher's SaturationPressure.
func solveOuter(ctx context.Context, z [components.NC]float64, P, hTarget float64, opts FlashOptions) (*StateProperties, error) {
	kij := components.BIPMatrix(opts.BIPSource, opts.CustomBIP)

	maxIter := opts.MaxIterOuter
	if maxIter <= 0 {
		maxIter = MaxIterOuter
	}
	maxDHDT := opts.MaxReasonableDHDT
	if maxDHDT <= 0 {
		maxDHDT = DefaultMaxReasonableDHDT
	}
	const maxStepClamp = 50.0 // K

	tLo, tHi, err := bracketInitialT(ctx, z, P, hTarget, kij, opts)
	if err != nil {
		return nil, err
	}
	T := 0.5 * (tLo + tHi)

	var last pointResult
	var iter int
	var lastStep float64
	for iter = 0; iter < maxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, Wrap(KindFatal, "phflash.solveOuter", err)
		}

		res, err := evaluateAt(ctx, z, T, P, kij, opts)
		if err != nil {
			return nil, err
		}
		last = res
		resid := res.H - hTarget

		condition, tol := effectiveTolerance(T, P, opts)
		if math.Abs(resid) < tol {
			if opts.Logger != nil {
				opts.Logger.Debug().Float64("T", T).Int("iter", iter).Float64("residual", resid).Msg("outer loop converged")
			}
			return buildState(StatusConverged, condition, T, P, hTarget, res, iter), nil
		}

		h := opts.DerivativePerturbation
		if h <= 0 {
			h = math.Max(0.01, 1e-4*T)
		}

		dHdT, badDeriv := 0.0, true
		if bump, bumpErr := evaluateAt(ctx, z, T+h, P, kij, opts); bumpErr == nil {
			dHdT = (bump.H - res.H) / h
			badDeriv = !(dHdT > 1e-3) || dHdT > maxDHDT
		}

		// AdaptiveDerivative widens h when the measured derivative gives a
		// step too small to register against the tolerance, and narrows it
		// when the step would grossly overshoot; the derivative is then
		// re-measured once at the adjusted h.
		if opts.AdaptiveDerivative && !badDeriv {
			mag := math.Abs(h * dHdT)
			switch {
			case mag < 0.1*tol:
				h *= 4
			case mag > 10*tol:
				h *= 0.25
			}
			if bump, bumpErr := evaluateAt(ctx, z, T+h, P, kij, opts); bumpErr == nil {
				adjusted := (bump.H - res.H) / h
				if adjusted > 1e-3 && adjusted <= maxDHDT {
					dHdT = adjusted
				}
			}
		}

		var step float64
		if badDeriv {
			if opts.UseAnalyticalBackup {
				dHdT = cpBackup(res, z, T)
				step = -resid / dHdT
			} else {
				step = lastStep / 2
			}
		} else {
			step = -resid / dHdT
		}

		if step > maxStepClamp {
			step = maxStepClamp
		} else if step < -maxStepClamp {
			step = -maxStepClamp
		}

		if opts.UseLineSearch {
			step = lineSearchT(ctx, z, T, P, hTarget, kij, opts, resid, step)
		}

		T += step
		if T < 1 {
			T = 1
		}
		lastStep = step
	}

	condition, tol := effectiveTolerance(T, P, opts)
	state := buildState(StatusMaxIterations, condition, T, P, hTarget, last, iter)
	if math.Abs(last.H-hTarget) < 5*tol {
		state.Status = StatusConvergenceTolerance
		return state, nil
	}
	state.Status = StatusMaxIterations
	return state, NewError(
		KindConvergence, "phflash.solveOuter", iter, last.H-hTarget,
		"outer P-H loop did not converge within the iteration budget")
}

// lineSearchT evaluates the enthalpy residual at T+d, T+d/2 and T+d/4 (in
// that order) and returns the first candidate step that reduces |residual|
// relative to the current one, or the smallest candidate (d/4) if none do.
func lineSearchT(ctx context.Context, z [components.NC]float64, T, P, hTarget float64, kij [components.NC][components.NC]float64, opts FlashOptions, resid, d float64) float64 {
	candidates := [3]float64{d, d / 2, d / 4}
	for i, c := range candidates {
		res, err := evaluateAt(ctx, z, T+c, P, kij, opts)
		if err != nil {
			continue
		}
		if newResid := res.H - hTarget; math.Abs(newResid) < math.Abs(resid) {
			return c
		}
		if i == len(candidates)-1 {
			return c
		}
	}
	return candidates[len(candidates)-1]
}

func buildState(status Status, condition ConditionType, T, P, hTarget float64, res pointResult, iter int) *StateProperties {
	if res.vle.Stable {
		status = StatusSinglePhase
	}

	s := &StateProperties{
		Status:    status,
		T:         T,
		P:         P,
		Beta:      res.vle.Beta,
		X:         res.vle.X,
		Y:         res.vle.Y,
		K:         res.vle.K,
		ZLiquid:   res.ZLiquid,
		ZVapor:    res.ZVapor,
		PhiLiquid: res.vle.PhiL,
		PhiVapor:  res.vle.PhiV,
		H:         res.H,
		HTarget:   hTarget,
		HResidual: res.H - hTarget,
		Condition: condition,
		OuterIter: iter,
		InnerIter: res.vle.Iterations,
	}
	return s
}
