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
	"testing"

	"github.com/spatialmodel/kilnsim"
	"github.com/spatialmodel/kilnsim/clinker"
)

func testConc() []float64 {
	conc := make([]float64, kilnsim.NumSpecies)
	for i := range conc {
		conc[i] = 1e-12
	}
	conc[kilnsim.CaCO3] = 100
	conc[kilnsim.CaO] = 5
	conc[kilnsim.O2] = 2
	conc[kilnsim.CO] = 0.5
	conc[kilnsim.N2] = 8
	conc[kilnsim.CO2] = 1
	conc[kilnsim.H2O] = 0.3
	return conc
}

func TestReactionRatesIsPure(t *testing.T) {
	cat := clinker.DefaultCatalog()
	conc := testConc()
	before := make([]float64, len(conc))
	copy(before, conc)

	rates := make([]float64, kilnsim.NumReactions)
	kilnsim.ReactionRates(cat, conc, 1200, 1400,
		[]int{kilnsim.R1, kilnsim.R6, kilnsim.R11}, rates)

	for i := range conc {
		if conc[i] != before[i] {
			t.Fatalf("rate evaluation mutated concentration of %s", kilnsim.SpeciesNames[i])
		}
	}
}

func TestReactionRatesActiveSubset(t *testing.T) {
	cat := clinker.DefaultCatalog()
	conc := testConc()
	rates := make([]float64, kilnsim.NumReactions)
	kilnsim.ReactionRates(cat, conc, 1200, 1400, []int{kilnsim.R1, kilnsim.R6}, rates)

	if rates[kilnsim.R1] <= 0 {
		t.Error("calcination rate not positive with carbonate present")
	}
	if rates[kilnsim.R6] <= 0 {
		t.Error("CO oxidation rate not positive with CO and O2 present")
	}
	for j, r := range rates {
		if j != kilnsim.R1 && j != kilnsim.R6 && r != 0 {
			t.Errorf("inactive reaction %d has rate %g", j, r)
		}
	}
}

func TestReactionRatesArrhenius(t *testing.T) {
	// Calcination rate must increase with solid temperature.
	cat := clinker.DefaultCatalog()
	conc := testConc()
	rates := make([]float64, kilnsim.NumReactions)
	active := []int{kilnsim.R1}

	kilnsim.ReactionRates(cat, conc, 1000, 1000, active, rates)
	cold := rates[kilnsim.R1]
	kilnsim.ReactionRates(cat, conc, 1300, 1000, active, rates)
	hot := rates[kilnsim.R1]
	if hot <= cold {
		t.Errorf("calcination rate did not increase with temperature: %g <= %g", hot, cold)
	}

	// R1 is a solid reaction; the gas temperature must not affect it.
	kilnsim.ReactionRates(cat, conc, 1000, 2000, active, rates)
	if absDifferent(rates[kilnsim.R1], cold, 0) {
		t.Error("solid reaction rate depends on gas temperature")
	}
}

func TestKineticsStoichiometry(t *testing.T) {
	// With calcination alone, carbonate is consumed and lime and carbon
	// dioxide are produced one-to-one, and the reaction-enthalpy source is
	// endothermic on the solid side only.
	cat := clinker.DefaultCatalog()
	zone := kilnsim.ZoneSpec{
		Kind: kilnsim.Calciner, Length: 1, Segments: 1, Radius: 0.08,
		Rules: kilnsim.RuleSet{Reactions: []int{kilnsim.R1}},
	}
	c := &kilnsim.Cell{
		Zone:   &zone,
		C:      testConc(),
		Ts:     1200,
		Tg:     1400,
		P:      kilnsim.P0,
		Source: make([]float64, kilnsim.NumSpecies),
	}
	kilnsim.Kinetics(cat)(c, 0.08)

	if c.Source[kilnsim.CaCO3] >= 0 {
		t.Error("carbonate not consumed")
	}
	if absDifferent(c.Source[kilnsim.CaO], -c.Source[kilnsim.CaCO3], 1e-12) {
		t.Error("lime production does not match carbonate consumption")
	}
	if absDifferent(c.Source[kilnsim.CO2], -c.Source[kilnsim.CaCO3], 1e-12) {
		t.Error("carbon dioxide production does not match carbonate consumption")
	}
	if c.JsgSolid <= 0 {
		t.Error("calcination enthalpy source not endothermic")
	}
	if c.JsgGas != 0 {
		t.Error("gas-reaction enthalpy source nonzero without gas reactions")
	}

	// Mass conservation across the projection.
	var mass float64
	for i, s := range c.Source {
		mass += s * cat.Species[i].MolarMass
	}
	if absDifferent(mass, 0, 1e-9) {
		t.Errorf("reaction sources create mass: %g g/(m³·s)", mass)
	}
}

func TestKineticsInventoryLimit(t *testing.T) {
	// Arrhenius rates can demand far more reactant than a cell holds; the
	// projected sources must never consume more than half of any species'
	// inventory in one step, and scaling must preserve the stoichiometric
	// ratio between the consumed species.
	cat := clinker.DefaultCatalog()
	zone := kilnsim.ZoneSpec{
		Kind: kilnsim.Calciner, Length: 1, Segments: 1, Radius: 0.08,
		Rules: kilnsim.RuleSet{Reactions: []int{kilnsim.R6}},
	}
	conc := testConc()
	conc[kilnsim.CO] = 50
	conc[kilnsim.O2] = 1e-3
	c := &kilnsim.Cell{
		Zone:   &zone,
		C:      conc,
		Ts:     1200,
		Tg:     1400,
		P:      kilnsim.P0,
		Source: make([]float64, kilnsim.NumSpecies),
	}
	const dt = 0.08
	kilnsim.Kinetics(cat)(c, dt)

	if c.Source[kilnsim.O2] >= 0 {
		t.Fatal("oxygen not consumed")
	}
	if eaten := -c.Source[kilnsim.O2] * dt; eaten > 0.5*conc[kilnsim.O2]*(1+1e-12) {
		t.Errorf("one step consumes %g of %g mol/m³ oxygen; limit is half",
			eaten, conc[kilnsim.O2])
	}
	if absDifferent(c.Source[kilnsim.CO], 2*c.Source[kilnsim.O2], 1e-12) {
		t.Errorf("limiting broke the CO:O2 ratio: %g vs %g",
			c.Source[kilnsim.CO], c.Source[kilnsim.O2])
	}
}

func TestGasEmissivity(t *testing.T) {
	cat := clinker.DefaultCatalog()
	const xH2O, xCO2 = 0.1, 0.2

	ε := kilnsim.GasEmissivity(cat, 1400, kilnsim.P0, xH2O, xCO2, 0.152)
	if ε <= 0 || ε >= 1 {
		t.Fatalf("emissivity %g outside (0, 1)", ε)
	}

	// A longer optical path absorbs more.
	εLong := kilnsim.GasEmissivity(cat, 1400, kilnsim.P0, xH2O, xCO2, 1.0)
	if εLong <= ε {
		t.Errorf("emissivity did not increase with path length: %g <= %g", εLong, ε)
	}

	// A transparent atmosphere does not radiate.
	ε0 := kilnsim.GasEmissivity(cat, 1400, kilnsim.P0, 0, 0, 0.152)
	if absDifferent(ε0, 0, 1e-12) {
		t.Errorf("emissivity %g for zero absorbing species", ε0)
	}
}
