package components

// ShomateCoeffs holds one NIST-style Shomate polynomial piece, valid over
// [TMin, TMax]. With t = T/1000 (T in kelvin):
//
//	H(T) - H(298.15) = A*t + B*t^2/2 + C*t^3/3 + D*t^4/4 - E/t + F - H   [kJ/mol]
type ShomateCoeffs struct {
	TMin, TMax             float64
	A, B, C, D, E, F, H    float64
}

// NASA7Coeffs holds one 7-coefficient NASA polynomial piece, valid over
// [TMin, TMax]. With T in kelvin:
//
//	H(T)/(R*T) = a1 + a2*T/2 + a3*T^2/3 + a4*T^3/4 + a5*T^4/5 + a6/T
type NASA7Coeffs struct {
	TMin, TMax     float64
	A1, A2, A3, A4, A5, A6, A7 float64
}

// EnthalpyModel is a component's piecewise ideal-gas enthalpy model: a
// Shomate polynomial below Crossover and a NASA-7 polynomial above it (the
// order is reversed for nothing in this table, but the type does not assume
// an order so a future component could declare it the other way).
//
// The two pieces are fit independently from published reference data and so
// do not in general agree exactly at Crossover; Offset is the constant
// (computed once, at package init, see enforceContinuity below) added to the
// NASA-7 branch so that the two pieces meet within 1 J/mol at Crossover.
type EnthalpyModel struct {
	Shomate   ShomateCoeffs
	NASA7     NASA7Coeffs
	Crossover float64 // K
	Offset    float64 // J/mol, added to the NASA-7 branch
}

// EnthalpyModels is the fixed per-component enthalpy model table, indexed
// like every other per-component table in this package.
var EnthalpyModels [NC]EnthalpyModel

func init() {
	EnthalpyModels[IdxH2] = EnthalpyModel{
		Shomate: ShomateCoeffs{TMin: 298, TMax: 1000,
			A: 33.066178, B: -11.363417, C: 11.432816, D: -2.772874, E: -0.158558, F: -9.980797, H: 0},
		NASA7: NASA7Coeffs{TMin: 1000, TMax: 6000,
			A1: 3.33727920, A2: -4.94024731e-5, A3: 4.99456778e-7, A4: -1.79566394e-10, A5: 2.00255376e-14,
			A6: -950.158922, A7: -3.20502331},
		Crossover: 1000,
	}
	EnthalpyModels[IdxN2] = EnthalpyModel{
		Shomate: ShomateCoeffs{TMin: 298, TMax: 1000,
			A: 19.50583, B: 19.88705, C: -8.598535, D: 1.369784, E: 0.527601, F: -4.935202, H: 0},
		NASA7: NASA7Coeffs{TMin: 1000, TMax: 6000,
			A1: 2.95257637, A2: 1.39690040e-3, A3: -4.92631603e-7, A4: 7.86010195e-11, A5: -4.60755204e-15,
			A6: -923.948688, A7: 5.87188762},
		Crossover: 1000,
	}
	EnthalpyModels[IdxO2] = EnthalpyModel{
		Shomate: ShomateCoeffs{TMin: 298, TMax: 1000,
			A: 31.32234, B: -20.23531, C: 57.86644, D: -36.50624, E: -0.007374, F: -8.903471, H: 0},
		NASA7: NASA7Coeffs{TMin: 1000, TMax: 6000,
			A1: 3.66096065, A2: 6.56365811e-4, A3: -1.41149627e-7, A4: 2.05797935e-11, A5: -1.29913436e-15,
			A6: -1215.97718, A7: 3.41536279},
		Crossover: 1000,
	}
	EnthalpyModels[IdxNH3] = EnthalpyModel{
		Shomate: ShomateCoeffs{TMin: 298, TMax: 1400,
			A: 19.99563, B: 49.77119, C: -15.37599, D: 1.921168, E: 0.189174, F: -53.30667, H: -45.89806},
		NASA7: NASA7Coeffs{TMin: 1000, TMax: 3000,
			A1: 2.63445210, A2: 5.66626140e-3, A3: -1.72703700e-6, A4: 2.38658500e-10, A5: -1.25705960e-14,
			A6: -6544.69530, A7: 6.56662270},
		Crossover: 1000,
	}
	EnthalpyModels[IdxH2O] = EnthalpyModel{
		Shomate: ShomateCoeffs{TMin: 298, TMax: 1700,
			A: 30.09200, B: 6.832514, C: 6.793435, D: -2.534480, E: 0.082139, F: -250.8810, H: -241.8264},
		NASA7: NASA7Coeffs{TMin: 1000, TMax: 6000,
			A1: 3.03399249, A2: 2.17691804e-3, A3: -1.64072518e-7, A4: -9.70419870e-11, A5: 1.68200992e-14,
			A6: -30004.2971, A7: 4.96677010},
		Crossover: 1000,
	}

	for i := range EnthalpyModels {
		enforceContinuity(&EnthalpyModels[i])
	}
}

// shomateH returns H(T) - H(298.15) in J/mol from a Shomate piece.
func shomateH(c ShomateCoeffs, T float64) float64 {
	t := T / 1000
	kJ := c.A*t + c.B*t*t/2 + c.C*t*t*t/3 + c.D*t*t*t*t/4 - c.E/t + c.F - c.H
	return kJ * 1000
}

// nasa7H returns H(T)/R in kelvin-weighted form, scaled to J/mol.
func nasa7H(c NASA7Coeffs, T float64) float64 {
	hOverRT := c.A1 + c.A2*T/2 + c.A3*T*T/3 + c.A4*T*T*T/4 + c.A5*T*T*T*T/5 + c.A6/T
	return hOverRT * R * T
}

// enforceContinuity bakes a constant offset into the NASA-7 branch so that
// the Shomate and NASA-7 pieces agree to within 1 J/mol at Crossover, per
// the piecewise-model continuity requirement: the two tables are fit
// independently from published reference data and are not guaranteed to
// already agree there.
func enforceContinuity(m *EnthalpyModel) {
	low := shomateH(m.Shomate, m.Crossover)
	high := nasa7H(m.NASA7, m.Crossover)
	m.Offset = low - high
}
