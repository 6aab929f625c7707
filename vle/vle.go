// Package vle solves the isothermal vapor-liquid equilibrium sub-problem
// nested inside the pressure-enthalpy outer loop: given a feed composition
// at a fixed temperature and pressure, find the vapor fraction and phase
// compositions that satisfy equal fugacities, or determine that the feed
// is in fact a single stable phase.
//
// The loop shape — stability check, then damped successive substitution
// with an accelerator, bailing out to a plain step on a bad accelerated
// step — follows the teacher's SaturationPressure, generalized from a
// scalar pressure unknown to a per-component ln K vector.
package vle

import (
	"math"

	"github.com/RoSqianyue/ph-flash-thermodynamics/anderson"
	"github.com/RoSqianyue/ph-flash-thermodynamics/components"
	"github.com/RoSqianyue/ph-flash-thermodynamics/eos"
	"github.com/RoSqianyue/ph-flash-thermodynamics/ferrors"
	"github.com/RoSqianyue/ph-flash-thermodynamics/rachfordrice"
	"github.com/RoSqianyue/ph-flash-thermodynamics/stability"
)

const (
	// DefaultMaxIter is used when Options.MaxIter <= 0.
	DefaultMaxIter = 100
	// DefaultDamping is the initial successive-substitution damping factor
	// used when Options.Damping <= 0.
	DefaultDamping = 0.5
	// maxDamping is the ceiling the damping state machine grows toward on
	// monotone convergence.
	maxDamping = 0.9
	// maxReseeds bounds how many times the loop re-seeds K from the next-
	// best TPD trial after collapsing onto the trivial solution, before
	// giving up and declaring the feed single-phase.
	maxReseeds = 2

	tolK          = 1e-10
	maxLineSearch = 8
)

// Options configures one Solve call.
type Options struct {
	// MaxIter caps the successive-substitution loop; <= 0 selects
	// DefaultMaxIter.
	MaxIter int
	// MaxIterRR caps each inner Rachford-Rice solve; <= 0 selects that
	// package's own default.
	MaxIterRR int
	// UseAnderson enables Anderson-mixing acceleration of the successive
	// substitution; when false every step is damped plain substitution.
	UseAnderson bool
	// UseLineSearch enables the Armijo-style backtrack on the candidate
	// step (Anderson-mixed or damped) when it fails to improve on the
	// previous residual.
	UseLineSearch bool
	// Damping is the initial successive-substitution damping factor in
	// (0, 1]; <= 0 selects DefaultDamping. It grows geometrically toward
	// maxDamping on monotone convergence and is halved on a residual
	// increase or an Anderson rejection.
	Damping float64
}

// Result is the outcome of one isothermal VLE solve.
type Result struct {
	Stable     bool // true if the feed is a single stable phase (no X/Y split below is meaningful)
	Converged  bool
	Beta       float64
	X, Y       [components.NC]float64
	K          [components.NC]float64
	PhiL, PhiV [components.NC]float64 // ln-fugacity-coefficient vectors at convergence
	Iterations int
}

func wilsonK(i int, T, P float64, crit components.CriticalProps) float64 {
	Tc, Pc, w := crit.Tc[i], crit.Pc[i], crit.W[i]
	return (Pc / P) * math.Exp(5.373*(1+w)*(1-Tc/T))
}

func wilsonKAll(T, P float64) [components.NC]float64 {
	crit := components.Critical
	var K [components.NC]float64
	for i := 0; i < components.NC; i++ {
		K[i] = wilsonK(i, T, P, crit)
	}
	return K
}

// seedKFromTrial builds a K-value vector from a converged TPD trial
// composition, K_i = W_i / z_i, falling back to the Wilson estimate for any
// component the feed does not carry (z_i == 0, where the ratio is
// undefined).
func seedKFromTrial(trial stability.TrialOutcome, z [components.NC]float64, wilson [components.NC]float64) [components.NC]float64 {
	K := wilson
	for i := 0; i < components.NC; i++ {
		if z[i] > 0 {
			K[i] = trial.W[i] / z[i]
		}
	}
	return K
}

// Solve runs the isothermal VLE loop for feed z at (T, P) using the
// already-built EOS parameters p (shared with the stability test to avoid
// recomputing a_i(T), b_i).
func Solve(z [components.NC]float64, T, P float64, p *eos.Params, opts Options) (Result, error) {
	maxIter := opts.MaxIter
	if maxIter <= 0 {
		maxIter = DefaultMaxIter
	}
	damping := opts.Damping
	if damping <= 0 {
		damping = DefaultDamping
	}

	stab, err := stability.Analyze(z, T, P, p)
	if err != nil {
		return Result{}, ferrors.Wrap(ferrors.KindAlgorithm, "vle.Solve", err)
	}
	if stab.Stable {
		return singlePhaseResult(z, T, P, p), nil
	}

	wilson := wilsonKAll(T, P)
	K := wilson
	if best, _, ok := stability.BestTrials(stab, z); ok {
		// Spec step 2: a non-trivial TPD trial, when one exists, overrides
		// the Wilson initial guess with the direction the stability test
		// itself found to lower the Gibbs energy.
		K = seedKFromTrial(best, z, wilson)
	}

	mixer := anderson.New(components.NC)
	var lnK [components.NC]float64
	for i := range K {
		lnK[i] = math.Log(K[i])
	}

	var x, y [components.NC]float64
	var beta float64
	var phiL, phiV [components.NC]float64
	var iterations int
	var lastResidual float64 = math.Inf(1)
	var reseeds int

	for iterations = 0; iterations < maxIter; iterations++ {
		b, _, rrErr := rachfordrice.Solve(z, expLn(lnK), opts.MaxIterRR)
		if rrErr != nil {
			return Result{}, ferrors.Wrap(ferrors.KindAlgorithm, "vle.Solve", rrErr)
		}
		beta = b

		K = expLn(lnK)
		x, y = splitPhases(z, K, beta)

		aMixL, bMixL, _ := p.MixParams(x)
		ZL, AL, BL, errL := eos.SolveZ(aMixL, bMixL, P, T, eos.Liquid)
		if errL != nil {
			return Result{}, ferrors.Wrap(ferrors.KindAlgorithm, "vle.Solve", errL)
		}
		aMixV, bMixV, _ := p.MixParams(y)
		ZV, AV, BV, errV := eos.SolveZ(aMixV, bMixV, P, T, eos.Vapor)
		if errV != nil {
			return Result{}, ferrors.Wrap(ferrors.KindAlgorithm, "vle.Solve", errV)
		}

		phiL = eos.LnPhi(p, x, aMixL, bMixL, ZL, AL, BL)
		phiV = eos.LnPhi(p, y, aMixV, bMixV, ZV, AV, BV)

		var lnKNext [components.NC]float64
		var residual float64
		for i := 0; i < components.NC; i++ {
			lnKNext[i] = phiL[i] - phiV[i]
			d := lnKNext[i] - lnK[i]
			residual += d * d
		}
		residual = math.Sqrt(residual)

		if residual < tolK {
			iterations++
			break
		}

		if isTrivialSplit(x, y) {
			if reseeds >= maxReseeds {
				return singlePhaseResult(z, T, P, p), nil
			}
			reseeds++
			_, second, ok := stability.BestTrials(stab, z)
			if !ok {
				return singlePhaseResult(z, T, P, p), nil
			}
			K = seedKFromTrial(second, z, wilson)
			for i := range K {
				lnK[i] = math.Log(K[i])
			}
			mixer.Reset()
			damping = opts.Damping
			if damping <= 0 {
				damping = DefaultDamping
			}
			lastResidual = math.Inf(1)
			continue
		}

		var candidate [components.NC]float64
		rejected := false
		if opts.UseAnderson {
			f := make([]float64, components.NC)
			xk := make([]float64, components.NC)
			for i := 0; i < components.NC; i++ {
				f[i] = lnKNext[i] - lnK[i]
				xk[i] = lnK[i]
			}
			next, rej, accErr := mixer.Accelerate(xk, f)
			if accErr != nil {
				return Result{}, ferrors.Wrap(ferrors.KindAlgorithm, "vle.Solve", accErr)
			}
			candidate = toArray(next)
			rejected = rej
		} else {
			for i := 0; i < components.NC; i++ {
				candidate[i] = lnK[i] + damping*(lnKNext[i]-lnK[i])
			}
		}

		if opts.UseLineSearch {
			// Armijo-style backtrack: if the candidate step does not reduce
			// the residual relative to the previous step, halve the step
			// back toward the current lnK until it does, at most
			// maxLineSearch-1 times; the last halved candidate is kept if
			// none does.
			for ls := 0; ls < maxLineSearch; ls++ {
				r := residualOf(candidate, lnKNext)
				if r <= lastResidual || ls == maxLineSearch-1 {
					break
				}
				for i := range candidate {
					candidate[i] = 0.5 * (candidate[i] + lnK[i])
				}
			}
		}

		// Damping state machine: grow toward maxDamping while the residual
		// keeps shrinking, halve on a residual increase or an Anderson
		// rejection (spec's grow-to-0.9/halve-on-increase schedule).
		switch {
		case rejected || residual > lastResidual:
			damping *= 0.5
		default:
			damping = math.Min(maxDamping, damping*1.1)
		}

		lnK = candidate
		lastResidual = residual
	}

	converged := iterations < maxIter
	return Result{
		Stable:     false,
		Converged:  converged,
		Beta:       beta,
		X:          x,
		Y:          y,
		K:          K,
		PhiL:       phiL,
		PhiV:       phiV,
		Iterations: iterations,
	}, nil
}

// singlePhaseResult reports a single stable phase. beta is picked from a
// Wilson-K bubble/dew indicator rather than only probing for a vapor root:
// sum(K_i z_i) <= 1 means the feed sits below its bubble point (all
// liquid); sum(z_i / K_i) <= 1 means it sits above its dew point (all
// vapor); otherwise fall back to checking which EOS root actually exists.
func singlePhaseResult(z [components.NC]float64, T, P float64, p *eos.Params) Result {
	K := wilsonKAll(T, P)
	var sumKz, sumZoverK float64
	for i := 0; i < components.NC; i++ {
		sumKz += K[i] * z[i]
		if K[i] > 0 {
			sumZoverK += z[i] / K[i]
		}
	}

	var beta float64
	switch {
	case sumKz <= 1:
		beta = 0
	case sumZoverK <= 1:
		beta = 1
	default:
		aMix, bMix, _ := p.MixParams(z)
		_, _, _, errV := eos.SolveZ(aMix, bMix, P, T, eos.Vapor)
		if errV == nil {
			beta = 1
		} else {
			beta = 0
		}
	}
	return Result{Stable: true, Converged: true, Beta: beta, X: z, Y: z, Iterations: 0}
}

func splitPhases(z, K [components.NC]float64, beta float64) (x, y [components.NC]float64) {
	for i := 0; i < components.NC; i++ {
		x[i] = z[i] / (1 + beta*(K[i]-1))
		y[i] = K[i] * x[i]
	}
	return
}

func expLn(lnK [components.NC]float64) [components.NC]float64 {
	var K [components.NC]float64
	for i := range lnK {
		K[i] = math.Exp(lnK[i])
	}
	return K
}

func toArray(v []float64) [components.NC]float64 {
	var a [components.NC]float64
	copy(a[:], v)
	return a
}

func residualOf(a, b [components.NC]float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func isTrivialSplit(x, y [components.NC]float64) bool {
	for i := range x {
		if math.Abs(x[i]-y[i]) > 1e-4 {
			return false
		}
	}
	return true
}
