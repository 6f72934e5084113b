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

package kilnsim_test

import (
	"math"
	"testing"

	"github.com/spatialmodel/kilnsim"
	"github.com/spatialmodel/kilnsim/clinker"
)

func absDifferent(a, b, tolerance float64) bool {
	return math.Abs(a-b) > tolerance || math.IsNaN(a) || math.IsNaN(b)
}

// TestStaticDomainConverges runs a single constant-composition zone with no
// reactions or heat transfer. Uniformly seeded cells produce zero axial
// gradients, so the state is a fixed point and the run must converge as soon
// as the minimum iteration count allows.
func TestStaticDomainConverges(t *testing.T) {
	cfg := clinker.DefaultConfig()
	cfg.Zones = cfg.Zones[:1] // preheater only
	cat := clinker.DefaultCatalog()

	d := kilnsim.NewSimulation(cfg, cat, nil, nil)
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	seedTg := d.Cells[0].Tg
	seedC := d.Cells[0].C[kilnsim.CaCO3]
	if err := d.Run(); err != nil {
		t.Fatal(err)
	}

	if !d.Converged {
		t.Fatal("static domain did not converge")
	}
	if d.Iteration != cfg.Solver.MinIterations {
		t.Errorf("converged at iteration %d; want %d", d.Iteration, cfg.Solver.MinIterations)
	}
	for _, c := range d.Cells {
		if absDifferent(c.Tg, seedTg, 1e-9) {
			t.Errorf("cell %d: gas temperature drifted from %g to %g", c.Index, seedTg, c.Tg)
		}
		if absDifferent(c.C[kilnsim.CaCO3], seedC, 0) {
			t.Errorf("cell %d: constant composition violated", c.Index)
		}
	}
}

// TestPureAdvectionMatchesFeed frees the preheater's composition and runs it
// with no reactions and fixed velocities. The steady state of pure advection
// is a uniform profile carrying exactly the feed flux, so every cell's
// concentration must equal the feed rate over velocity times cross-section.
func TestPureAdvectionMatchesFeed(t *testing.T) {
	cfg := clinker.DefaultConfig()
	cfg.Zones = cfg.Zones[:1]
	cfg.Zones[0].Rules.ConstantComposition = false
	cat := clinker.DefaultCatalog()

	d := kilnsim.NewSimulation(cfg, cat, nil, nil)
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	if err := d.Run(); err != nil {
		t.Fatal(err)
	}
	if !d.Converged {
		t.Fatal("advection-only zone did not converge")
	}

	zone := cfg.Zones[0]
	at := math.Pi * zone.Radius * zone.Radius
	wantSolid := cfg.Solid.Rate * cfg.Solid.Composition[kilnsim.CaCO3] /
		cat.Species[kilnsim.CaCO3].MolarMass / (at * zone.Rules.FixedSolidVelocity)
	wantGas := cfg.Gas.MolarRate * cfg.Gas.Composition[kilnsim.N2] /
		(at * cfg.Gas.Velocity)
	for _, c := range d.Cells {
		if got := c.C[kilnsim.CaCO3]; absDifferent(got, wantSolid, wantSolid*1e-9) {
			t.Errorf("cell %d: carbonate %g, want feed-flux value %g", c.Index, got, wantSolid)
		}
		if got := c.C[kilnsim.N2]; absDifferent(got, wantGas, wantGas*1e-9) {
			t.Errorf("cell %d: nitrogen %g, want feed-flux value %g", c.Index, got, wantGas)
		}
	}
}

// TestDefaultPlantDecomposition runs the reference plant to convergence and
// checks the headline chemistry: carbonate leaving the kiln is depleted
// relative to the preheater inlet, and the liberated carbon dioxide shows up
// in the gas phase.
func TestDefaultPlantDecomposition(t *testing.T) {
	if testing.Short() {
		t.Skip("full plant run in short mode")
	}
	cfg := clinker.DefaultConfig()
	cat := clinker.DefaultCatalog()

	d := kilnsim.NewSimulation(cfg, cat, nil, nil)
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	inlet := d.Cells[0].C[kilnsim.CaCO3]
	if err := d.Run(); err != nil {
		t.Fatal(err)
	}
	if !d.Converged {
		t.Fatalf("reference plant did not converge within %d iterations",
			cfg.Solver.MaxIterations)
	}

	for _, c := range d.Cells {
		if math.IsNaN(c.Tg) || math.IsNaN(c.Ts) || math.IsNaN(c.P) {
			t.Fatalf("cell %d: non-finite state Tg=%g Ts=%g P=%g", c.Index, c.Tg, c.Ts, c.P)
		}
		for i, conc := range c.C {
			if math.IsNaN(conc) {
				t.Fatalf("cell %d: %s concentration is NaN", c.Index, kilnsim.SpeciesNames[i])
			}
		}
	}

	outlet := d.Cells[len(d.Cells)-1]
	if outlet.C[kilnsim.CaCO3] >= inlet {
		t.Errorf("no net calcination: outlet carbonate %g >= inlet %g",
			outlet.C[kilnsim.CaCO3], inlet)
	}
	if outlet.C[kilnsim.CO2] <= 0 {
		t.Errorf("no carbon dioxide at the outlet: %g", outlet.C[kilnsim.CO2])
	}
}

// TestExothermicZoneHeatsFlow burns carbon monoxide in a lumped zone with
// heat exchange disabled and nothing endothermic active, behind a static
// feed zone that anchors the inlet enthalpy flux. With heat only released
// along the path, the flow must leave at least as hot as it enters.
func TestExothermicZoneHeatsFlow(t *testing.T) {
	cfg := clinker.DefaultConfig()
	cfg.Zones = []kilnsim.ZoneSpec{
		{
			Kind:     kilnsim.Preheater,
			Length:   0.5,
			Segments: 1,
			Radius:   0.08,
			Rules: kilnsim.RuleSet{
				Energy:              kilnsim.EnergyNone,
				SolidVelocity:       kilnsim.SolidVelocityFixed,
				FixedSolidVelocity:  0.5,
				GasVelocity:         kilnsim.GasVelocityFixed,
				HeatTransfer:        kilnsim.HeatTransferNone,
				ConstantComposition: true,
				SeedGasTemp:         1100,
				SeedSolidTemp:       1100,
			},
		},
		{
			Kind:     kilnsim.Calciner,
			Length:   2,
			Segments: 4,
			Radius:   0.08,
			Rules: kilnsim.RuleSet{
				Energy:        kilnsim.EnergySingleLumped,
				SolidVelocity: kilnsim.SolidVelocityEqualToGas,
				GasVelocity:   kilnsim.GasVelocityFixed,
				HeatTransfer:  kilnsim.HeatTransferNone,
				Reactions:     []int{kilnsim.R6},
				SeedGasTemp:   1100,
				SeedSolidTemp: 1100,
			},
		},
	}
	cfg.Solid = kilnsim.SolidFeed{
		Temperature: 1100,
		Rate:        5,
		Composition: map[int]float64{kilnsim.SiO2: 1},
	}
	cfg.Gas = kilnsim.GasFeed{
		Temperature: 1100,
		MolarRate:   0.1,
		Velocity:    0.5,
		Composition: map[int]float64{
			kilnsim.CO: 0.15,
			kilnsim.O2: 0.2,
			kilnsim.N2: 0.65,
		},
	}
	cfg.Fuel = kilnsim.FuelFeed{}
	cat := clinker.DefaultCatalog()

	d := kilnsim.NewSimulation(cfg, cat, nil, nil)
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	if err := d.Run(); err != nil {
		t.Fatal(err)
	}
	if !d.Converged {
		t.Fatal("combustion zone did not converge")
	}

	first := d.Cells[1] // first reacting cell; cell 0 is the static feed zone
	last := d.Cells[len(d.Cells)-1]
	if last.Ts < first.Ts {
		t.Errorf("solid cooled along an exothermic path: %g K -> %g K", first.Ts, last.Ts)
	}
	if last.Tg < first.Tg {
		t.Errorf("gas cooled along an exothermic path: %g K -> %g K", first.Tg, last.Tg)
	}
	if last.Tg <= cfg.Zones[0].Rules.SeedGasTemp {
		t.Errorf("combustion released no heat: outlet gas at %g K", last.Tg)
	}
}

// TestSimulationScenario runs the full three-zone reference plant for a
// bounded number of iterations and checks the invariants the solver promises
// regardless of how far it got: bounded temperatures and pressures, floored
// concentrations, a complete cell sequence, and a physically sensible
// clinker report.
func TestSimulationScenario(t *testing.T) {
	if testing.Short() {
		t.Skip("full scenario in short mode")
	}
	cfg := clinker.DefaultConfig()
	cfg.Solver.MaxIterations = 50
	cat := clinker.DefaultCatalog()

	status := make(chan *kilnsim.SimulationStatus)
	collected := make(chan []*kilnsim.SimulationStatus)
	go func() {
		var ss []*kilnsim.SimulationStatus
		for s := range status {
			ss = append(ss, s)
		}
		collected <- ss
	}()

	d := kilnsim.NewSimulation(cfg, cat, nil, status)
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}

	wantCells := 0
	for _, z := range cfg.Zones {
		wantCells += z.Segments
	}
	if len(d.Cells) != wantCells {
		t.Fatalf("got %d cells, want %d", len(d.Cells), wantCells)
	}

	if err := d.Run(); err != nil {
		t.Fatal(err)
	}
	if err := d.Cleanup(); err != nil {
		t.Fatal(err)
	}
	if !d.Done {
		t.Fatal("run finished with Done unset")
	}

	st := cfg.Solver
	for _, c := range d.Cells {
		if c.Tg < st.TMin || c.Tg > st.TMax {
			t.Errorf("cell %d: Tg=%g outside [%g, %g]", c.Index, c.Tg, st.TMin, st.TMax)
		}
		if c.Ts < st.TMin || c.Ts > st.TMax {
			t.Errorf("cell %d: Ts=%g outside [%g, %g]", c.Index, c.Ts, st.TMin, st.TMax)
		}
		if c.P < st.PMin || c.P > st.PMax {
			t.Errorf("cell %d: P=%g outside [%g, %g]", c.Index, c.P, st.PMin, st.PMax)
		}
		for i, conc := range c.C {
			if conc < st.Floor {
				t.Errorf("cell %d: %s concentration %g below floor",
					c.Index, kilnsim.SpeciesNames[i], conc)
			}
			if math.IsNaN(conc) {
				t.Fatalf("cell %d: %s concentration is NaN", c.Index, kilnsim.SpeciesNames[i])
			}
		}
		if absDifferent(c.VFracG+c.VFracS, 1, 1e-8) {
			t.Errorf("cell %d: volume fractions sum to %g", c.Index, c.VFracG+c.VFracS)
		}
	}

	results := d.Results()
	if len(results) != wantCells {
		t.Fatalf("got %d results, want %d", len(results), wantCells)
	}
	if results[0].Zone != "preheater" || results[len(results)-1].Zone != "kiln" {
		t.Errorf("result zone order wrong: %s ... %s",
			results[0].Zone, results[len(results)-1].Zone)
	}

	rep := d.Clinker()
	if rep.OutletSolidTemp < st.TMin || rep.OutletSolidTemp > st.TMax {
		t.Errorf("outlet solid temperature %g outside bounds", rep.OutletSolidTemp)
	}
	var sum float64
	for sp, pct := range rep.MolePercent {
		if pct < 0 || pct > 100 {
			t.Errorf("%s mole percent %g outside [0, 100]", kilnsim.SpeciesNames[sp], pct)
		}
		sum += pct
	}
	if sum > 100+1e-6 {
		t.Errorf("clinker mole percentages sum to %g > 100", sum)
	}

	statuses := <-collected
	if len(statuses) != d.Iteration {
		t.Errorf("got %d status messages, want %d", len(statuses), d.Iteration)
	}
	last := statuses[len(statuses)-1]
	if !last.Converged && !last.Exhausted {
		t.Error("final status is neither converged nor exhausted")
	}
}
