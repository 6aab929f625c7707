package phflash

import (
	"testing"

	"github.com/RoSqianyue/ph-flash-thermodynamics/components"
)

func TestClassifyStandardConditions(t *testing.T) {
	// 300 K, 5 atm: inside both the standard pressure band (1-10 atm) and
	// the standard temperature band (250-400 K).
	condition, tol := classify(300, 5*atm)
	if condition != ConditionStandard || tol != TolEnthalpy {
		t.Errorf("classify(300, 5atm) = (%v, %v), want (Standard, %v)", condition, tol, TolEnthalpy)
	}
}

func TestClassifyLowTemperatureIsDifficult(t *testing.T) {
	// Outside the standard temperature band alone is enough to be
	// difficult, regardless of pressure.
	condition, tol := classify(50, 5*atm)
	if condition != ConditionDifficult || tol != TolEnthalpyDifficult {
		t.Errorf("classify(50, 5atm) = (%v, %v), want (Difficult, %v)", condition, tol, TolEnthalpyDifficult)
	}
}

func TestClassifyNearCriticalPointIsDifficult(t *testing.T) {
	// Near water's critical point (647.1 K, 22.06 MPa): far outside the
	// standard temperature band, so this is difficult (the temperature
	// clause alone forces it), not extreme.
	crit := components.Critical
	condition, tol := classify(crit.Tc[components.IdxH2O], crit.Pc[components.IdxH2O])
	if condition != ConditionDifficult || tol != TolEnthalpyDifficult {
		t.Errorf("classify near H2O Tc/Pc = (%v, %v), want (Difficult, %v)", condition, tol, TolEnthalpyDifficult)
	}
}

func TestClassifyHighPressureWithStandardTemperatureIsExtreme(t *testing.T) {
	// 300 K is inside the standard temperature band, but 200 atm is well
	// above the 100 atm difficult cutoff: the genuinely hard combination.
	condition, tol := classify(300, 200*atm)
	if condition != ConditionExtreme || tol != TolEnthalpyExtreme {
		t.Errorf("classify(300, 200atm) = (%v, %v), want (Extreme, %v)", condition, tol, TolEnthalpyExtreme)
	}
}

func TestEffectiveToleranceAppliesTolFactor(t *testing.T) {
	opts := DefaultOptions()
	opts.TolFactor = 2.0
	_, tol := effectiveTolerance(300, 5*atm, opts)
	if tol != 2*TolEnthalpy {
		t.Errorf("effectiveTolerance with TolFactor=2 = %v, want %v", tol, 2*TolEnthalpy)
	}
}

func TestEffectiveToleranceHonorsConditionOverride(t *testing.T) {
	opts := DefaultOptions()
	override := ConditionExtreme
	opts.ConditionOverride = &override
	condition, tol := effectiveTolerance(300, 5*atm, opts)
	if condition != ConditionExtreme || tol != TolEnthalpyExtreme {
		t.Errorf("effectiveTolerance with ConditionOverride=Extreme = (%v, %v), want (Extreme, %v)", condition, tol, TolEnthalpyExtreme)
	}
}

func TestEffectiveToleranceHonorsCustomEnthalpyTol(t *testing.T) {
	opts := DefaultOptions()
	opts.CustomEnthalpyTol = 12.5
	_, tol := effectiveTolerance(300, 5*atm, opts)
	if tol != 12.5 {
		t.Errorf("effectiveTolerance with CustomEnthalpyTol=12.5 = %v, want 12.5", tol)
	}
}

func TestEffectiveToleranceDisabledAdaptiveTolerance(t *testing.T) {
	opts := DefaultOptions()
	opts.AdaptiveTolerance = false
	condition, tol := effectiveTolerance(50, 200*atm, opts)
	if condition != ConditionStandard || tol != TolEnthalpy {
		t.Errorf("effectiveTolerance with AdaptiveTolerance=false = (%v, %v), want (Standard, %v)", condition, tol, TolEnthalpy)
	}
}

func TestDefaultOptionsUsesRecommendedBIPAndQuantumCorrection(t *testing.T) {
	opts := DefaultOptions()
	if opts.BIPSource != components.BIPRecommended {
		t.Errorf("DefaultOptions().BIPSource = %v, want BIPRecommended", opts.BIPSource)
	}
	if !opts.QuantumCorrectionH2 {
		t.Error("DefaultOptions().QuantumCorrectionH2 should be true")
	}
	if opts.EOS != EOSPengRobinson {
		t.Errorf("DefaultOptions().EOS = %v, want EOSPengRobinson", opts.EOS)
	}
}

func TestDefaultOptionsUsesDocumentedNumericDefaults(t *testing.T) {
	opts := DefaultOptions()
	if !opts.UseAnderson {
		t.Error("DefaultOptions().UseAnderson should be true")
	}
	if !opts.UseLineSearch {
		t.Error("DefaultOptions().UseLineSearch should be true")
	}
	if opts.Damping != DefaultDamping {
		t.Errorf("DefaultOptions().Damping = %v, want %v", opts.Damping, DefaultDamping)
	}
	if !opts.AdaptiveTolerance {
		t.Error("DefaultOptions().AdaptiveTolerance should be true")
	}
}
