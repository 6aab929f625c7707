package stability

import (
	"testing"

	"github.com/RoSqianyue/ph-flash-thermodynamics/components"
	"github.com/RoSqianyue/ph-flash-thermodynamics/eos"
)

func params(T float64) *eos.Params {
	crit := components.Critical
	kij := components.BIPMatrix(components.BIPRecommended, nil)
	return eos.NewParams(T, crit.Tc, crit.Pc, crit.W, crit.MW, kij, true)
}

// TestAnalyzeSevenTrials checks the trial count matches 2 Wilson-seeded plus
// one pure-component-dominant trial per component.
func TestAnalyzeSevenTrials(t *testing.T) {
	z := [components.NC]float64{0.05, 0.75, 0.15, 0.02, 0.03}
	res, err := Analyze(z, 300, 2e6, params(300))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Trials != 7 {
		t.Fatalf("Trials = %d, want 7", res.Trials)
	}
	if len(res.TrialDetail) != 7 {
		t.Fatalf("len(TrialDetail) = %d, want 7", len(res.TrialDetail))
	}
}

// TestAnalyzeStableFarFromTwoPhase checks that a feed deep in the
// single-phase vapor region (low P, high T relative to every component's
// critical point) is reported stable.
func TestAnalyzeStableFarFromTwoPhase(t *testing.T) {
	z := [components.NC]float64{0.1, 0.7, 0.1, 0.05, 0.05}
	res, err := Analyze(z, 900, 5e5, params(900))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !res.Stable {
		t.Fatalf("expected stable at high T / low P, got unstable with MinTPD=%g", res.MinTPD)
	}
}

// TestAnalyzeDetectsInstabilityNearCondensation checks that a feed heavy in
// condensable H2O/NH3 at low temperature and high pressure -- conditions
// that favor a liquid split -- is reported unstable.
func TestAnalyzeDetectsInstabilityNearCondensation(t *testing.T) {
	z := [components.NC]float64{0.02, 0.03, 0.02, 0.43, 0.50}
	res, err := Analyze(z, 320, 1e6, params(320))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if res.Stable {
		t.Fatalf("expected instability for a condensable-heavy feed at 320 K, 1e6 Pa")
	}
}

// TestBestTrialsRanksByTPDExcludingTrivial checks that BestTrials returns the
// two lowest-TPD non-trivial trials for a feed known to be unstable.
func TestBestTrialsRanksByTPDExcludingTrivial(t *testing.T) {
	z := [components.NC]float64{0.02, 0.03, 0.02, 0.43, 0.50}
	res, err := Analyze(z, 320, 1e6, params(320))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	best, second, ok := BestTrials(res, z)
	if !ok {
		t.Fatalf("expected at least one non-trivial trial for an unstable feed")
	}
	if isTrivial(best.W, z) {
		t.Fatalf("best trial should not be trivial")
	}
	if best.TPD > second.TPD {
		t.Fatalf("best.TPD = %g should be <= second.TPD = %g", best.TPD, second.TPD)
	}
}

// TestIsTrivialDetectsFeedCollapse checks the trivial-solution guard used to
// reject the TPD search's well-known spurious stationary point.
func TestIsTrivialDetectsFeedCollapse(t *testing.T) {
	z := [components.NC]float64{0.2, 0.2, 0.2, 0.2, 0.2}
	if !isTrivial(z, z) {
		t.Fatalf("expected identical compositions to be trivial")
	}
	w := [components.NC]float64{0.9, 0.025, 0.025, 0.025, 0.025}
	if isTrivial(w, z) {
		t.Fatalf("expected dissimilar compositions to not be trivial")
	}
}
