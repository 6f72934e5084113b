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

package kilnsim

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// ReactionRates evaluates the Arrhenius rate of every reaction listed in
// active and stores it at its reaction index in rates, leaving inactive
// entries zero. Solid-phase reactions are evaluated at the solid temperature
// Ts, gas-phase reactions at the gas temperature Tg. The function is pure:
// it reads only its arguments and writes only rates.
//
// rates must have length NumReactions; it is zeroed and returned.
func ReactionRates(cat *PropertyCatalog, conc []float64, Ts, Tg float64, active []int, rates []float64) []float64 {
	for j := range rates {
		rates[j] = 0
	}
	for _, j := range active {
		rxn := &cat.Reactions[j]
		T := Tg
		if j < NumSolidReactions {
			T = Ts
		}
		r := rxn.PreExponential *
			math.Pow(T, rxn.TempExponent) *
			math.Exp(-rxn.ActivationEnergy/(GasConstant*T))
		for k, sp := range rxn.Reactants {
			if sp < 0 {
				continue
			}
			if α := rxn.Alpha[k]; α != 0 {
				r *= math.Pow(conc[sp], α)
			}
		}
		if rxn.Beta2 != 0 && rxn.Reactants[1] >= 0 {
			// Partial pressure of the second reactant [Pa].
			p2 := conc[rxn.Reactants[1]] * GasConstant * T
			r *= math.Pow(p2, rxn.Beta2)
		}
		if math.IsNaN(r) || r < 0 {
			r = 0
		}
		rates[j] = r
	}
	return rates
}

// Kinetics returns a function that evaluates a cell's reaction-rate vector
// over its zone's active reaction subset, projects it through the
// stoichiometric matrix to per-species volumetric source terms, and
// accumulates the solid- and gas-reaction enthalpy sources.
func Kinetics(cat *PropertyCatalog) CellManipulator {
	rates := make([]float64, NumReactions)
	rvec := mat.NewVecDense(NumReactions, rates)
	return func(c *Cell, Δt float64) {
		for i := range c.Source {
			c.Source[i] = 0
		}
		c.JsgSolid, c.JsgGas = 0, 0

		active := c.Zone.Rules.Reactions
		if len(active) == 0 || c.Zone.Rules.ConstantComposition {
			return
		}

		ReactionRates(cat, c.C, c.Ts, c.Tg, active, rates)
		limitRates(cat, c.C, active, rates, Δt)

		svec := mat.NewVecDense(NumSpecies, c.Source)
		svec.MulVec(cat.Stoich, rvec)

		for j, r := range rates {
			if r == 0 {
				continue
			}
			if j < NumSolidReactions {
				c.JsgSolid += r * cat.Reactions[j].Enthalpy
			} else {
				c.JsgGas += r * cat.Reactions[j].Enthalpy
			}
		}
	}
}

// limitRates scales reaction rates so that no species loses more than half
// its inventory in one explicit step. Arrhenius rates can exceed what the
// cell holds by orders of magnitude when kinetics outrun transport; an
// unlimited step would then bounce the reactant off the concentration floor
// every sweep instead of settling. Scaling every reaction that consumes the
// limiting species preserves the stoichiometric ratios between them.
func limitRates(cat *PropertyCatalog, conc []float64, active []int, rates []float64, Δt float64) {
	if Δt <= 0 {
		return
	}
	for i := 0; i < NumSpecies; i++ {
		var consumed float64
		for _, j := range active {
			if ν := cat.Stoich.At(i, j); ν < 0 {
				consumed -= ν * rates[j]
			}
		}
		// Inverted comparison so a non-finite concentration skips limiting
		// instead of poisoning the rates.
		if !(consumed*Δt > 0.5*conc[i]) {
			continue
		}
		f := 0.5 * conc[i] / (consumed * Δt)
		for _, j := range active {
			if cat.Stoich.At(i, j) < 0 {
				rates[j] *= f
			}
		}
	}
}
