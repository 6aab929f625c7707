package components

import (
	"math"
	"testing"
)

func TestEnthalpyModelsContinuousAtCrossover(t *testing.T) {
	for i, name := range Names {
		m := EnthalpyModels[i]
		low := shomateH(m.Shomate, m.Crossover)
		high := nasa7H(m.NASA7, m.Crossover) + m.Offset
		if diff := math.Abs(low - high); diff > 1.0 {
			t.Errorf("%s: Shomate/NASA-7 mismatch at crossover %v K: %v J/mol (want <= 1)", name, m.Crossover, diff)
		}
	}
}

func TestBIPMatrixSymmetricZeroDiagonal(t *testing.T) {
	for _, source := range []BIPSource{BIPRecommended, BIPUniSim} {
		m := BIPMatrix(source, nil)
		for i := 0; i < NC; i++ {
			if m[i][i] != 0 {
				t.Errorf("source %v: diagonal[%d] = %v, want 0", source, i, m[i][i])
			}
			for j := i + 1; j < NC; j++ {
				if m[i][j] != m[j][i] {
					t.Errorf("source %v: kij[%d][%d]=%v != kij[%d][%d]=%v", source, i, j, m[i][j], j, i, m[j][i])
				}
				if math.Abs(m[i][j]) > 0.5 {
					t.Errorf("source %v: |kij[%d][%d]| = %v exceeds 0.5", source, i, j, m[i][j])
				}
			}
		}
	}
}

func TestCriticalPropsPositive(t *testing.T) {
	for i, name := range Names {
		if Critical.Tc[i] <= 0 || Critical.Pc[i] <= 0 || Critical.MW[i] <= 0 {
			t.Errorf("%s: expected positive Tc, Pc, MW; got Tc=%v Pc=%v MW=%v",
				name, Critical.Tc[i], Critical.Pc[i], Critical.MW[i])
		}
	}
}
