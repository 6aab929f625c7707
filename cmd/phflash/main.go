// Command phflash exposes the P-H flash library as a CLI: a "solve"
// subcommand runs one flash and prints the converged state, and a "plot"
// subcommand renders a P-H diagram for a swept range of target enthalpies
// at one pressure.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	phflash "github.com/RoSqianyue/ph-flash-thermodynamics"
	"github.com/RoSqianyue/ph-flash-thermodynamics/components"
	"github.com/RoSqianyue/ph-flash-thermodynamics/diagram"
	"github.com/RoSqianyue/ph-flash-thermodynamics/errstats"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "phflash",
		Short: "Pressure-enthalpy flash for H2/N2/O2/NH3/H2O mixtures",
	}
	root.AddCommand(newSolveCmd(), newPlotCmd())
	return root
}

// feedFlags registers the five mole-fraction flags on cmd and returns a
// pointer the RunE closure below reads from after cobra has parsed flags.
func feedFlags(cmd *cobra.Command) *[components.NC]float64 {
	var z [components.NC]float64
	cmd.Flags().Float64Var(&z[components.IdxH2], "h2", 0, "H2 mole fraction")
	cmd.Flags().Float64Var(&z[components.IdxN2], "n2", 0, "N2 mole fraction")
	cmd.Flags().Float64Var(&z[components.IdxO2], "o2", 0, "O2 mole fraction")
	cmd.Flags().Float64Var(&z[components.IdxNH3], "nh3", 0, "NH3 mole fraction")
	cmd.Flags().Float64Var(&z[components.IdxH2O], "h2o", 0, "H2O mole fraction")
	return &z
}

func newSolveCmd() *cobra.Command {
	var pressure, enthalpyTarget float64
	var verbose bool

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Run a single P-H flash and print the converged state",
	}
	z := feedFlags(cmd)
	cmd.Flags().Float64Var(&pressure, "pressure", 101325, "pressure, Pa")
	cmd.Flags().Float64Var(&enthalpyTarget, "enthalpy", 0, "target molar enthalpy, J/mol")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log iteration progress to stderr")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		opts := phflash.DefaultOptions()
		if verbose {
			logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
			opts.Logger = &logger
		}

		state, err := phflash.Calculate(context.Background(), *z, pressure, enthalpyTarget, opts)
		if state != nil {
			fmt.Println(state)
		}
		return err
	}
	return cmd
}

func newPlotCmd() *cobra.Command {
	var pressure, hMin, hMax float64
	var steps int
	var output string

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Sweep target enthalpy at a fixed pressure and render a P-H diagram",
	}
	z := feedFlags(cmd)
	cmd.Flags().Float64Var(&pressure, "pressure", 101325, "pressure, Pa")
	cmd.Flags().Float64Var(&hMin, "h-min", -5e4, "minimum target enthalpy, J/mol")
	cmd.Flags().Float64Var(&hMax, "h-max", 5e3, "maximum target enthalpy, J/mol")
	cmd.Flags().IntVar(&steps, "steps", 20, "number of enthalpy samples")
	cmd.Flags().StringVar(&output, "output", "ph-diagram.png", "output image path")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		opts := phflash.DefaultOptions()

		if steps < 1 {
			steps = 1
		}
		var stats errstats.Collector
		states := make([]*phflash.StateProperties, 0, steps)
		for i := 0; i < steps; i++ {
			h := hMin
			if steps > 1 {
				h = hMin + (hMax-hMin)*float64(i)/float64(steps-1)
			}
			s, err := phflash.Calculate(context.Background(), *z, pressure, h, opts)
			stats.Record(err)
			if err != nil && s == nil {
				continue
			}
			states = append(states, s)
		}
		if n := stats.Total() - len(states); n > 0 {
			fmt.Fprintf(os.Stderr, "%d of %d samples in the sweep did not converge: %v\n", n, stats.Total(), stats.Snapshot())
		}
		if len(states) == 0 {
			return fmt.Errorf("no state in the swept range converged")
		}

		kij := components.BIPMatrix(opts.BIPSource, opts.CustomBIP)
		cfg := &diagram.PHConfig{NumberStates: true, ShowOutputPath: true}
		return diagram.DrawPH(cfg, *z, kij, opts.QuantumCorrectionH2, output, states...)
	}
	return cmd
}
