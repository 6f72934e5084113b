/*
Copyright © 2026 the KilnSim authors.
This file is part of KilnSim.

KilnSim is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

KilnSim is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with KilnSim.  If not, see <http://www.gnu.org/licenses/>.
*/

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/spatialmodel/kilnsim"
)

// Version is the version of this program; overridden at link time for
// releases.
var Version = "dev"

var (
	configFile string
	verbose    bool
)

func init() {
	RootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"path to a TOML configuration file; built-in defaults are used when empty")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
	RootCmd.AddCommand(runCmd, versionCmd)
}

// RootCmd is the main command.
var RootCmd = &cobra.Command{
	Use:   "kilnsim",
	Short: "KilnSim simulates steady-state cement clinker production.",
	Long: `KilnSim is a one-dimensional steady-state simulator of a countercurrent
cement process: a preheater riser, a calciner, and a rotary kiln. It solves
coupled species and energy conservation with clinkerization and combustion
kinetics and reports the converged temperature profile and clinker
composition.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logrus.SetOutput(os.Stderr)
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("kilnsim v%s\n", Version)
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation to steady state.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, cat, err := loadConfig(configFile)
		if err != nil {
			return err
		}

		log := logrus.StandardLogger()
		status := make(chan *kilnsim.SimulationStatus)
		go func() {
			for s := range status {
				log.Debug(s.String())
			}
		}()

		d := kilnsim.NewSimulation(cfg, cat, log, status)
		if err := d.Init(); err != nil {
			return err
		}
		fmt.Println(banner(cfg))
		if err := d.Run(); err != nil {
			return err
		}
		if err := d.Cleanup(); err != nil {
			return err
		}

		if d.Converged {
			log.WithField("iterations", d.Iteration).Info("converged")
		} else {
			log.WithField("iterations", d.Iteration).
				Warn("finished without convergence; results are approximate")
		}
		report(os.Stdout, d)
		return nil
	},
}

func banner(cfg *kilnsim.ProcessConfig) string {
	s := `
---------------------------------------------------
                    KilnSim v` + Version + `
 steady-state cement clinker process simulation
---------------------------------------------------
zones:`
	for _, z := range cfg.Zones {
		s += fmt.Sprintf("\n  %-10s %.2f m in %d segments, r = %.3f m",
			z.Kind, z.Length, z.Segments, z.Radius)
	}
	s += "\n---------------------------------------------------"
	return s
}

// report prints the converged axial profile and the clinker summary.
func report(w *os.File, d *kilnsim.KilnSim) {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "zone\tcell\tTg [K]\tTs [K]\tP [kPa]\tCaCO3 [mol/m³]")
	for _, r := range d.Results() {
		fmt.Fprintf(tw, "%s\t%d\t%.1f\t%.1f\t%.1f\t%.4g\n",
			r.Zone, r.Index, r.Tg, r.Ts, r.P/1000, r.C[kilnsim.CaCO3])
	}
	tw.Flush()

	rep := d.Clinker()
	fmt.Fprintf(w, "\noutlet solid temperature: %.1f K\n", rep.OutletSolidTemp)
	fmt.Fprintln(w, "clinker composition [mol % of solid]:")
	tw = tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	for _, i := range []int{kilnsim.CaO, kilnsim.C2S, kilnsim.C3S, kilnsim.C3A, kilnsim.C4AF} {
		fmt.Fprintf(tw, "  %s\t%.2f\n", kilnsim.SpeciesNames[i], rep.MolePercent[i])
	}
	tw.Flush()
}
