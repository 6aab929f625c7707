// Package eos implements the Peng-Robinson cubic equation of state kernel:
// pure-component and mixing-rule parameters, the quantum correction for
// hydrogen, the analytic cubic root solver with phase-aware root selection,
// fugacity coefficients and the enthalpy departure function.
//
// The cubic-root solver borrows the teacher's Cardano/discriminant-sign
// shape but is specialized to the dimensionless Peng-Robinson Z-cubic
// Z^3 - (1-B)Z^2 + (A-3B^2-2B)Z - (AB-B^2-B^3) = 0: monic only, real roots
// only, and with the discriminant-near-zero band handled explicitly.
package eos

import (
	"math"

	"github.com/RoSqianyue/ph-flash-thermodynamics/components"
	"github.com/RoSqianyue/ph-flash-thermodynamics/ferrors"
)

// Phase selects which root of the cubic to return. There is deliberately no
// "unknown" value: every EOS invocation names the phase it wants, per the
// Open Question in spec.md §9.
type Phase int

const (
	Liquid Phase = iota
	Vapor
)

// Params holds the Peng-Robinson parameters for a mixture at a fixed
// temperature: pure-component a/b, the BIP matrix, and the mixture-level
// a_mix, b_mix and da_mix/dT.
type Params struct {
	A      [components.NC]float64                 // pure-component a_i(T)
	B      [components.NC]float64                 // pure-component b_i
	DAdT   [components.NC]float64                 // da_i/dT, needed for the mixture derivative
	Kij    [components.NC][components.NC]float64  // binary interaction parameters
	TcUsed [components.NC]float64                 // effective Tc (quantum-corrected for H2)
	PcUsed [components.NC]float64                 // effective Pc (quantum-corrected for H2)
}

// h2QuantumCorrection applies the Prausnitz-Gunn temperature shift used to
// correct the PR equation's classical treatment of hydrogen near its own
// critical point, per spec.md §4.1's "Hydrogen quantum correction". It must
// be evaluated once per outer-loop temperature and propagated into a_i, b_i.
func h2QuantumCorrection(T, tcH2, pcH2, mwH2 float64) (tcEff, pcEff float64) {
	shift := 1 + 21.8/(mwH2*T)
	return tcH2 * shift, pcH2 * shift
}

// mFactor returns the Peng-Robinson alpha-function slope m(omega).
func mFactor(omega float64) float64 {
	return 0.37464 + 1.54226*omega - 0.26992*omega*omega
}

// alpha evaluates the PR alpha(T) function for one component.
func alpha(T, Tc, m float64) float64 {
	s := 1 - math.Sqrt(T/Tc)
	v := 1 + m*s
	return v * v
}

// dAlphaDT returns d(alpha)/dT in closed form, used by the da_mix/dT kernel.
func dAlphaDT(T, Tc, m float64) float64 {
	sqrtTTc := math.Sqrt(T / Tc)
	s := 1 - sqrtTTc
	// d/dT [1 + m*s]^2 = 2*(1+m*s) * m * d(s)/dT, d(s)/dT = -1/(2*sqrt(T*Tc))
	dsdT := -1.0 / (2 * math.Sqrt(T*Tc))
	return 2 * (1 + m*s) * m * dsdT
}

// NewParams computes the pure-component PR parameters a_i(T), b_i and
// da_i/dT for all five components at temperature T, applying the hydrogen
// quantum correction when requested. tc, pc, omega and mw are indexed by
// the components.Idx* constants; kij is the symmetric, zero-diagonal BIP matrix.
func NewParams(T float64, tc, pc, omega, mw [components.NC]float64, kij [components.NC][components.NC]float64, quantumH2 bool) *Params {
	p := &Params{Kij: kij}
	p.TcUsed = tc
	p.PcUsed = pc

	if quantumH2 {
		tcEff, pcEff := h2QuantumCorrection(T, tc[components.IdxH2], pc[components.IdxH2], mw[components.IdxH2])
		p.TcUsed[components.IdxH2] = tcEff
		p.PcUsed[components.IdxH2] = pcEff
	}

	for i := 0; i < components.NC; i++ {
		Tc := p.TcUsed[i]
		Pc := p.PcUsed[i]
		m := mFactor(omega[i])
		al := alpha(T, Tc, m)
		p.A[i] = 0.45724 * components.R * components.R * Tc * Tc / Pc * al
		p.B[i] = 0.07780 * components.R * Tc / Pc
		dAl := dAlphaDT(T, Tc, m)
		p.DAdT[i] = 0.45724 * components.R * components.R * Tc * Tc / Pc * dAl
	}
	return p
}

// MixParams applies the classical van der Waals one-fluid mixing rules to
// produce a_mix, b_mix and da_mix/dT for a phase of the given composition.
func (p *Params) MixParams(comp [components.NC]float64) (aMix, bMix, dAdTMix float64) {
	for i := 0; i < components.NC; i++ {
		bMix += comp[i] * p.B[i]
		for j := 0; j < components.NC; j++ {
			sqrtAiAj := math.Sqrt(p.A[i] * p.A[j])
			aMix += comp[i] * comp[j] * (1 - p.Kij[i][j]) * sqrtAiAj
			if p.A[i] > 0 && p.A[j] > 0 {
				// d/dT[sqrt(ai*aj)] = (ai'*aj + ai*aj')/(2*sqrt(ai*aj))
				dNum := p.DAdT[i]*p.A[j] + p.A[i]*p.DAdT[j]
				dAdTMix += comp[i] * comp[j] * (1 - p.Kij[i][j]) * dNum / (2 * sqrtAiAj)
			}
		}
	}
	return
}

// aBar returns the mixing-weighted a-bar_i = sum_j x_j (1-kij) sqrt(a_i a_j),
// the term needed by the fugacity-coefficient expression.
func (p *Params) aBar(i int, comp [components.NC]float64) float64 {
	var sum float64
	for j := 0; j < components.NC; j++ {
		sum += comp[j] * (1 - p.Kij[i][j]) * math.Sqrt(p.A[i]*p.A[j])
	}
	return sum
}

// SolveZ forms the dimensionless A, B parameters and solves the PR Z-cubic
// Z^3 - (1-B)Z^2 + (A-3B^2-2B)Z - (AB-B^2-B^3) = 0, selecting the root for
// the requested phase: the largest real root >= B for the vapor phase, the
// smallest real root > B for the liquid phase. If only one real root
// remains it is used for either phase. Returns ErrNoRealRoot if no
// admissible root exists.
func SolveZ(aMix, bMix, P, T float64, phase Phase) (Z, A, B float64, err error) {
	A = aMix * P / (components.R * components.R * T * T)
	B = bMix * P / (components.R * T)

	c2 := -(1 - B)
	c1 := A - 3*B*B - 2*B
	c0 := -(A*B - B*B - B*B*B)

	reals := solvePRCubic(c2, c1, c0)
	if len(reals) == 0 {
		return 0, A, B, ferrors.ErrNoRealRoot
	}
	if len(reals) == 1 {
		return reals[0], A, B, nil
	}

	// Sort ascending (insertion sort; at most 3 elements).
	for i := 1; i < len(reals); i++ {
		for j := i; j > 0 && reals[j-1] > reals[j]; j-- {
			reals[j-1], reals[j] = reals[j], reals[j-1]
		}
	}

	switch phase {
	case Vapor:
		for i := len(reals) - 1; i >= 0; i-- {
			if reals[i] >= B {
				return reals[i], A, B, nil
			}
		}
	case Liquid:
		for i := 0; i < len(reals); i++ {
			if reals[i] > B {
				return reals[i], A, B, nil
			}
		}
	}
	return 0, A, B, ferrors.ErrNoRealRoot
}
