// Package diagram renders pressure-enthalpy diagrams for converged flash
// results: one isobar per distinct pressure present in the supplied states,
// swept over a temperature range bracketing the states at that pressure,
// plus a marker for each state itself.
//
// This is a direct generalization of the teacher's state.DrawPV: the same
// per-state isotherm-plus-marker structure, the same extension-validation
// helper (including the Levenshtein-distance "did you mean" suggestion),
// the same Color/Length aliasing of gonum/plot's types — swapped from a
// pure substance's molar-volume x-axis to a mixture's molar-enthalpy axis,
// and from one cubic EOS config to the full PR mixture kernel.
package diagram

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/RoSqianyue/ph-flash-thermodynamics/components"
	"github.com/RoSqianyue/ph-flash-thermodynamics/enthalpy"
	"github.com/RoSqianyue/ph-flash-thermodynamics/eos"
	phflash "github.com/RoSqianyue/ph-flash-thermodynamics"
	"github.com/RoSqianyue/ph-flash-thermodynamics/vle"
)

// Color is an alias for image/color.Color, kept for callers configuring a
// PHConfig without importing image/color directly.
type Color = color.Color

// Standard colors, as a convenience.
var (
	Red     Color = color.RGBA{R: 255, A: 255}
	Blue    Color = color.RGBA{B: 255, A: 255}
	Black   Color = color.RGBA{A: 255}
	Magenta Color = color.RGBA{R: 255, B: 255, A: 255}
)

// Length is an alias for vg.Length.
type Length = vg.Length

var validExts = map[string]bool{
	".eps": true, ".jpg": true, ".jpeg": true, ".pdf": true,
	".png": true, ".svg": true, ".tex": true, ".tif": true, ".tiff": true,
}

// PHConfig configures the appearance of a rendered P-H diagram.
type PHConfig struct {
	Title           string
	TitleColor      Color
	IsobarColor     Color
	StatePointColor Color
	NumberStates    bool
	Width, Height   Length
	// TemperatureSpanK is the +/- range around each state's converged
	// temperature swept to draw that state's isobar. Defaults to 80 K.
	TemperatureSpanK float64
	ShowOutputPath   bool
}

// DrawPH renders a P-H diagram for the supplied states (all sharing the
// same feed composition is assumed but not required) to output, whose
// extension selects the image format.
func DrawPH(cfg *PHConfig, z [components.NC]float64, kij [components.NC][components.NC]float64, quantumH2 bool, output string, states ...*phflash.StateProperties) error {
	if cfg == nil {
		return errors.New("configuration error: config cannot be nil")
	}
	if len(states) == 0 {
		return errors.New("configuration error: at least one state is required")
	}
	ext := filepath.Ext(output)
	if !validExts[ext] {
		closest, minDist := "", int(^uint(0)>>1)
		for valid := range validExts {
			if d := levenshtein(ext, valid); d < minDist {
				minDist, closest = d, valid
			}
		}
		suggestion := output[:len(output)-len(ext)] + closest
		return fmt.Errorf("invalid file extension: %s. Did you mean %q instead?", output, suggestion)
	}

	p := plot.New()
	if cfg.Title == "" {
		p.Title.Text = "Pressure-Enthalpy Diagram"
	} else {
		p.Title.Text = cfg.Title
	}
	if cfg.TitleColor != nil {
		p.Title.TextStyle.Color = cfg.TitleColor
	}
	p.X.Label.Text = "Molar Enthalpy (J/mol)"
	p.Y.Label.Text = "Pressure (Pa)"

	// Group states by (rounded) pressure so the same isobar is drawn once
	// per distinct pressure, not once per state.
	byPressure := map[float64][]*phflash.StateProperties{}
	var pressures []float64
	for _, s := range states {
		key := roundPressure(s.P)
		if _, seen := byPressure[key]; !seen {
			pressures = append(pressures, key)
		}
		byPressure[key] = append(byPressure[key], s)
	}
	sort.Float64s(pressures)

	span := cfg.TemperatureSpanK
	if span <= 0 {
		span = 80
	}

	for _, P := range pressures {
		group := byPressure[P]
		minT, maxT := group[0].T, group[0].T
		for _, s := range group {
			if s.T < minT {
				minT = s.T
			}
			if s.T > maxT {
				maxT = s.T
			}
		}
		lo, hi := minT-span, maxT+span
		if lo < 10 {
			lo = 10
		}

		pts := make(plotter.XYs, 0, 40)
		const steps = 40
		for i := 0; i <= steps; i++ {
			T := lo + (hi-lo)*float64(i)/steps
			h, err := totalEnthalpyAt(z, T, P, kij, quantumH2)
			if err != nil {
				continue
			}
			pts = append(pts, plotter.XY{X: h, Y: P})
		}
		if len(pts) > 1 {
			line, err := plotter.NewLine(pts)
			if err == nil {
				if cfg.IsobarColor == nil {
					line.Color = Blue
				} else {
					line.Color = cfg.IsobarColor
				}
				p.Add(line)
			}
		}
	}

	for i, s := range states {
		scatter, err := plotter.NewScatter(plotter.XYs{{X: s.H, Y: s.P}})
		if err != nil {
			continue
		}
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(4)
		if cfg.StatePointColor == nil {
			scatter.Color = Red
		} else {
			scatter.Color = cfg.StatePointColor
		}
		p.Add(scatter)

		if cfg.NumberStates {
			labels, err := plotter.NewLabels(plotter.XYLabels{
				XYs:    []plotter.XY{{X: s.H, Y: s.P}},
				Labels: []string{fmt.Sprintf("%d", i+1)},
			})
			if err == nil {
				labels.Offset.X = vg.Points(5)
				labels.Offset.Y = vg.Points(5)
				p.Add(labels)
			}
		}
	}

	width := cfg.Width
	if width == 0 {
		width = 6 * vg.Inch
	}
	height := cfg.Height
	if height == 0 {
		height = 4 * vg.Inch
	}
	if err := p.Save(width, height, output); err != nil {
		return err
	}

	if cfg.ShowOutputPath {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		fmt.Printf("image saved to %s\n", filepath.Join(wd, output))
	}
	return nil
}

// totalEnthalpyAt recomputes the mixture's total molar enthalpy at (T, P)
// for the purpose of sweeping an isobar; it is a scaled-down, diagram-only
// re-implementation of the root package's unexported evaluateAt, since
// importing the root package the other way (root importing diagram) would
// create a cycle and this package otherwise has no reason to depend on the
// outer Newton loop at all.
func totalEnthalpyAt(z [components.NC]float64, T, P float64, kij [components.NC][components.NC]float64, quantumH2 bool) (float64, error) {
	crit := components.Critical
	p := eos.NewParams(T, crit.Tc, crit.Pc, crit.W, crit.MW, kij, quantumH2)

	res, err := vle.Solve(z, T, P, p, vle.Options{UseAnderson: true, UseLineSearch: true, Damping: vle.DefaultDamping})
	if err != nil {
		return 0, err
	}
	if res.Stable {
		aMix, bMix, dAdTMix := p.MixParams(z)
		phase := eos.Liquid
		if res.Beta == 1 {
			phase = eos.Vapor
		}
		Z, _, B, err := eos.SolveZ(aMix, bMix, P, T, phase)
		if err != nil {
			return 0, err
		}
		return enthalpy.PhaseEnthalpy(z, T, aMix, bMix, dAdTMix, Z, B), nil
	}

	aMixL, bMixL, dAdTMixL := p.MixParams(res.X)
	ZL, _, BL, err := eos.SolveZ(aMixL, bMixL, P, T, eos.Liquid)
	if err != nil {
		return 0, err
	}
	hL := enthalpy.PhaseEnthalpy(res.X, T, aMixL, bMixL, dAdTMixL, ZL, BL)

	aMixV, bMixV, dAdTMixV := p.MixParams(res.Y)
	ZV, _, BV, err := eos.SolveZ(aMixV, bMixV, P, T, eos.Vapor)
	if err != nil {
		return 0, err
	}
	hV := enthalpy.PhaseEnthalpy(res.Y, T, aMixV, bMixV, dAdTMixV, ZV, BV)

	return res.Beta*hV + (1-res.Beta)*hL, nil
}

func roundPressure(P float64) float64 {
	return float64(int64(P/10)) * 10
}

// levenshtein is the teacher's own edit-distance helper, used identically
// here to suggest a close-by valid file extension.
func levenshtein(s1, s2 string) int {
	r1, r2 := []rune(s1), []rune(s2)
	n, m := len(r1), len(r2)
	if n == 0 {
		return m
	}
	if m == 0 {
		return n
	}
	row := make([]int, n+1)
	for i := 0; i <= n; i++ {
		row[i] = i
	}
	for j := 1; j <= m; j++ {
		prev := j
		for i := 1; i <= n; i++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			current := min(row[i]+1, prev+1, row[i-1]+cost)
			row[i-1] = prev
			prev = current
		}
		row[n] = prev
	}
	return row[n]
}
