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

package clinker

import (
	"math"
	"testing"

	"github.com/spatialmodel/kilnsim"
)

func TestCatalogCheck(t *testing.T) {
	if err := DefaultCatalog().Check(); err != nil {
		t.Fatal(err)
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestStoichiometryConservesMass(t *testing.T) {
	// Tabulated molar masses are rounded to two decimals, so each reaction
	// column balances to within a few hundredths of a gram per mole.
	cat := DefaultCatalog()
	for j := 0; j < kilnsim.NumReactions; j++ {
		if im := cat.ReactionMassImbalance(j); math.Abs(im) > 0.05 {
			t.Errorf("reaction %s: mass imbalance %g g/mol", cat.Reactions[j].ID, im)
		}
	}
}

func TestHeatCapacities(t *testing.T) {
	cat := DefaultCatalog()
	// Spot checks at 1000 K against the tabulated polynomials.
	tests := []struct {
		species int
		want    float64
	}{
		{kilnsim.CaCO3, 104.51 + 21.92e-3*1000 - 25.94e-6*1e6},
		{kilnsim.N2, 27.31 + 5.19e-3*1000 - 1.55e-9*1e6},
		{kilnsim.C2S, 199.6},
	}
	for _, test := range tests {
		got := cat.Cp(test.species, 1000)
		if math.Abs(got-test.want) > 1e-9 {
			t.Errorf("%s: cp(1000 K) = %g, want %g",
				kilnsim.SpeciesNames[test.species], got, test.want)
		}
	}
	// Every species must have a positive heat capacity across the working
	// temperature range.
	for i := 0; i < kilnsim.NumSpecies; i++ {
		for _, T := range []float64{400, 800, 1200, 1600} {
			if cp := cat.Cp(i, T); cp <= 0 {
				t.Errorf("%s: non-positive cp %g at %g K", kilnsim.SpeciesNames[i], cp, T)
			}
		}
	}
}

func TestMolarEnthalpyReference(t *testing.T) {
	// At the reference temperature the enthalpy integral vanishes and the
	// molar enthalpy reduces to the formation enthalpy.
	cat := DefaultCatalog()
	for i := 0; i < kilnsim.NumSpecies; i++ {
		got := cat.MolarEnthalpy(i, 298.15)
		want := cat.Species[i].FormationEnthalpy
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("%s: enthalpy at reference %g, want %g",
				kilnsim.SpeciesNames[i], got, want)
		}
	}
}

func TestReactionEnthalpySigns(t *testing.T) {
	cat := DefaultCatalog()
	endothermic := []int{kilnsim.R1, kilnsim.R10, kilnsim.R11}
	exothermic := []int{kilnsim.R6, kilnsim.R7, kilnsim.R8, kilnsim.R9}
	for _, j := range endothermic {
		if cat.Reactions[j].Enthalpy <= 0 {
			t.Errorf("reaction %s should be endothermic", cat.Reactions[j].ID)
		}
	}
	for _, j := range exothermic {
		if cat.Reactions[j].Enthalpy >= 0 {
			t.Errorf("reaction %s should be exothermic", cat.Reactions[j].ID)
		}
	}
}
