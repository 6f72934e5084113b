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

// volumeFractions splits the unit cell volume between the phases: the solid
// fraction follows from the solid species' concentrations and pure-component
// densities, and the gas takes the remainder. A solid fraction exceeding
// unity is clamped; the caller sees fractions that always sum to one.
func volumeFractions(cat *PropertyCatalog, conc []float64) (fg, fs float64) {
	for i := 0; i < NumSolids; i++ {
		fs += conc[i] * cat.Species[i].MolarMass / cat.Species[i].Density
	}
	if fs > 1 {
		fs = 1
	}
	return 1 - fs, fs
}

// EnergyState returns a function that evaluates the algebraic energy
// variables of a cell: phase enthalpy flux densities from the species
// fluxes, Fourier conduction fluxes from the axial temperature gradients,
// and the internal-energy closure value. The inlet cell sees zero upstream
// gradients.
func EnergyState(cat *PropertyCatalog) CellManipulator {
	return func(c *Cell, Δt float64) {
		var hs, hg float64
		for i := 0; i < NumSolids; i++ {
			hs += cat.MolarEnthalpy(i, c.Ts) * c.N[i]
		}
		for i := NumSolids; i < NumSpecies; i++ {
			hg += cat.MolarEnthalpy(i, c.Tg) * c.N[i]
		}
		c.HFluxS = hs
		c.HFluxG = hg

		c.CondFluxS, c.CondFluxG = 0, 0
		if up := c.upstream; up != nil {
			c.CondFluxS = -cat.SolidConductivity * (c.Ts - up.Ts) / c.Dz
			c.CondFluxG = -c.Kg * (c.Tg - up.Tg) / c.Dz
		}

		// Closure diagnostic: total enthalpy density less the flow work of
		// the gas phase.
		var u float64
		for i := 0; i < NumSolids; i++ {
			u += c.C[i] * cat.MolarEnthalpy(i, c.Ts)
		}
		for i := NumSolids; i < NumSpecies; i++ {
			u += c.C[i] * cat.MolarEnthalpy(i, c.Tg)
		}
		c.UHat = u - c.P*c.VFracG
	}
}
