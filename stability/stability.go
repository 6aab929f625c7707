// Package stability implements Michelsen's tangent-plane-distance (TPD)
// phase-stability test: given a feed composition at fixed T and P, decide
// whether the single-phase feed is itself the global Gibbs-energy minimum,
// or whether a second phase would lower it (i.e. whether a flash should be
// attempted at all).
//
// The iterate-to-tolerance-with-a-hard-cap shape mirrors the teacher's
// SaturationPressure loop, generalized from one scalar unknown (pressure)
// to a per-trial composition vector.
package stability

import (
	"math"
	"sort"

	"github.com/RoSqianyue/ph-flash-thermodynamics/components"
	"github.com/RoSqianyue/ph-flash-thermodynamics/eos"
	"github.com/RoSqianyue/ph-flash-thermodynamics/ferrors"
)

const (
	maxIter    = 20
	maxTrials  = 7 // 2 Wilson-seeded + 5 pure-component-dominant, one per component
	tolLnW     = 1e-10
	trivialTol = 1e-4
)

// Result summarizes one TPD trial.
type Result struct {
	Stable      bool // true if the feed is a stationary, non-negative-TPD point for every trial
	MinTPD      float64
	Trials      int
	TrialDetail []TrialOutcome
}

// TrialOutcome records one trial's converged composition and TPD value.
type TrialOutcome struct {
	Seed string
	W    [components.NC]float64 // converged, mole-fraction-normalized trial composition
	TPD  float64
	Iter int
}

// wilsonK returns the Wilson-correlation K-value estimate for component i.
func wilsonK(i int, T, P float64, crit components.CriticalProps) float64 {
	Tc, Pc, w := crit.Tc[i], crit.Pc[i], crit.W[i]
	return (Pc / P) * math.Exp(5.373*(1+w)*(1-Tc/T))
}

// lnPhiAt solves the EOS at composition comp (mole fractions) for both
// candidate phase roots and returns the root with the lower contribution
// to the Gibbs energy (sum comp_i * ln phi_i), which is the physically
// stable root for a trial composition whose phase is not known a priori.
func lnPhiAt(p *eos.Params, comp [components.NC]float64, P, T float64) (lnPhi [components.NC]float64, ok bool) {
	aMix, bMix, _ := p.MixParams(comp)

	var best [components.NC]float64
	var bestG float64
	found := false

	for _, phase := range [2]eos.Phase{eos.Vapor, eos.Liquid} {
		Z, A, B, err := eos.SolveZ(aMix, bMix, P, T, phase)
		if err != nil {
			continue
		}
		lp := eos.LnPhi(p, comp, aMix, bMix, Z, A, B)
		var g float64
		for i := 0; i < components.NC; i++ {
			g += comp[i] * lp[i]
		}
		if !found || g < bestG {
			best, bestG, found = lp, g, true
		}
	}
	return best, found
}

// normalize returns w scaled to sum to 1, and the pre-normalization sum.
func normalize(w [components.NC]float64) (norm [components.NC]float64, sum float64) {
	for i := 0; i < components.NC; i++ {
		sum += w[i]
	}
	if sum == 0 {
		return w, 0
	}
	for i := 0; i < components.NC; i++ {
		norm[i] = w[i] / sum
	}
	return norm, sum
}

// runTrial iterates the Michelsen successive-substitution scheme
//
//	ln W_i^(k+1) = d_i - ln phi_i(W^(k)/sum W^(k))
//
// to convergence in ln W, where d_i = ln z_i + ln phi_i(z) is fixed for the
// whole analysis, then evaluates the modified TPD function at the
// converged trial composition.
func runTrial(seedName string, w0 [components.NC]float64, d [components.NC]float64, p *eos.Params, z [components.NC]float64, P, T float64) TrialOutcome {
	w := w0
	var iter int
	for iter = 0; iter < maxIter; iter++ {
		norm, sum := normalize(w)
		if sum <= 0 {
			break
		}
		lnPhiW, ok := lnPhiAt(p, norm, P, T)
		if !ok {
			break
		}

		var maxDelta float64
		var next [components.NC]float64
		for i := 0; i < components.NC; i++ {
			lnWNext := d[i] - lnPhiW[i]
			wNext := math.Exp(lnWNext)
			next[i] = wNext
			lnWCur := math.Log(w[i] + 1e-300)
			if delta := math.Abs(lnWNext - lnWCur); delta > maxDelta {
				maxDelta = delta
			}
		}
		w = next
		if maxDelta < tolLnW {
			iter++
			break
		}
	}

	norm, sum := normalize(w)
	lnPhiW, ok := lnPhiAt(p, norm, P, T)
	if !ok || sum <= 0 {
		return TrialOutcome{Seed: seedName, W: norm, TPD: math.Inf(1), Iter: iter}
	}

	var tpd float64 = 1
	for i := 0; i < components.NC; i++ {
		if w[i] <= 0 {
			continue
		}
		tpd += w[i] * (math.Log(w[i]) + lnPhiW[i] - d[i] - 1)
	}
	return TrialOutcome{Seed: seedName, W: norm, TPD: tpd, Iter: iter}
}

// Analyze runs the Michelsen TPD test for feed composition z at (T, P)
// using up to maxTrials seeded trial compositions (Wilson vapor-like,
// Wilson liquid-like, and one pure-component-dominant trial per component).
// The feed is reported stable only if every trial's converged TPD is
// non-negative (within trivialTol) or collapses back onto the feed itself
// (the trivial solution).
func Analyze(z [components.NC]float64, T, P float64, p *eos.Params) (Result, error) {
	aMix, bMix, _ := p.MixParams(z)
	Z, A, B, err := eos.SolveZ(aMix, bMix, P, T, eos.Vapor)
	if err != nil {
		Z, A, B, err = eos.SolveZ(aMix, bMix, P, T, eos.Liquid)
	}
	if err != nil {
		return Result{}, ferrors.Wrap(ferrors.KindAlgorithm, "stability.Analyze", err)
	}
	lnPhiZ := eos.LnPhi(p, z, aMix, bMix, Z, A, B)

	var d [components.NC]float64
	for i := 0; i < components.NC; i++ {
		d[i] = math.Log(z[i]+1e-300) + lnPhiZ[i]
	}

	type seed struct {
		name string
		w0   [components.NC]float64
	}
	seeds := make([]seed, 0, maxTrials)

	var vaporLike, liquidLike [components.NC]float64
	for i := 0; i < components.NC; i++ {
		K := 1.0
		if P > 0 {
			K = wilsonK(i, T, P, components.Critical)
		}
		vaporLike[i] = z[i] * K
		liquidLike[i] = z[i] / K
	}
	seeds = append(seeds, seed{"wilson-vapor-like", vaporLike})
	seeds = append(seeds, seed{"wilson-liquid-like", liquidLike})

	for i := 0; i < components.NC; i++ {
		var w0 [components.NC]float64
		for j := 0; j < components.NC; j++ {
			if j == i {
				w0[j] = 0.98
			} else {
				w0[j] = 0.02 / float64(components.NC-1)
			}
		}
		seeds = append(seeds, seed{"pure-dominant-" + components.Names[i], w0})
	}

	res := Result{Stable: true, MinTPD: math.Inf(1)}
	for _, s := range seeds {
		out := runTrial(s.name, s.w0, d, p, z, P, T)
		res.TrialDetail = append(res.TrialDetail, out)
		res.Trials++
		if out.TPD < res.MinTPD {
			res.MinTPD = out.TPD
		}
		if out.TPD < -trivialTol && !isTrivial(out.W, z) {
			res.Stable = false
		}
	}
	return res, nil
}

// isTrivial reports whether a converged trial composition collapsed back
// onto the feed composition, the well-known spurious stationary point every
// TPD search must reject.
func isTrivial(w, z [components.NC]float64) bool {
	for i := 0; i < components.NC; i++ {
		if math.Abs(w[i]-z[i]) > 1e-3 {
			return false
		}
	}
	return true
}

// BestTrials returns the two lowest-TPD non-trivial trials from an Analyze
// result, ascending by TPD, for the caller to seed or re-seed a VLE K-value
// guess from. ok is false if fewer than one non-trivial trial survived
// (the feed's own trial and any collapsed-back-to-feed trials are excluded).
func BestTrials(res Result, z [components.NC]float64) (best, second TrialOutcome, ok bool) {
	candidates := make([]TrialOutcome, 0, len(res.TrialDetail))
	for _, out := range res.TrialDetail {
		if !isTrivial(out.W, z) {
			candidates = append(candidates, out)
		}
	}
	if len(candidates) == 0 {
		return TrialOutcome{}, TrialOutcome{}, false
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].TPD < candidates[j].TPD })

	best = candidates[0]
	if len(candidates) > 1 {
		second = candidates[1]
	} else {
		second = best
	}
	return best, second, true
}
