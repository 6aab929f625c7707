package enthalpy

import (
	"math"
	"testing"

	"github.com/RoSqianyue/ph-flash-thermodynamics/components"
)

func TestIdealGasContinuousAcrossCrossover(t *testing.T) {
	for i := 0; i < components.NC; i++ {
		crossover := components.EnthalpyModels[i].Crossover
		below := IdealGas(i, crossover-0.01)
		above := IdealGas(i, crossover+0.01)
		if diff := math.Abs(below - above); diff > 2.0 {
			t.Errorf("component %d: enthalpy jump of %v J/mol across crossover, want <= ~2", i, diff)
		}
	}
}

func TestIdealGasIncreasesWithTemperature(t *testing.T) {
	for i := 0; i < components.NC; i++ {
		h1 := IdealGas(i, 300)
		h2 := IdealGas(i, 600)
		if h2 <= h1 {
			t.Errorf("component %d: enthalpy should increase with T, got H(300)=%v H(600)=%v", i, h1, h2)
		}
	}
}

func TestIdealGasMixtureIsWeightedSum(t *testing.T) {
	comp := [components.NC]float64{0.1, 0.2, 0.3, 0.1, 0.3}
	T := 400.0
	var want float64
	for i := 0; i < components.NC; i++ {
		want += comp[i] * IdealGas(i, T)
	}
	got := IdealGasMixture(comp, T)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("IdealGasMixture = %v, want %v", got, want)
	}
}
