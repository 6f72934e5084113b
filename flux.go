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

import "math"

// GasState returns a function that evaluates the algebraic gas-mixture
// state of a cell: total molar concentration, mass density, mole fractions,
// mixture specific heat, thermal conductivity, and Prandtl number.
func GasState(cat *PropertyCatalog) CellManipulator {
	return func(c *Cell, Δt float64) {
		c.Cg = TotalGasConcentration(c.C)
		c.RhoG = cat.GasDensity(c.C)

		var molarCp, mass float64
		for i := NumSolids; i < NumSpecies; i++ {
			x := 0.0
			if c.Cg > 0 {
				x = c.C[i] / c.Cg
			}
			c.X[i-NumSolids] = x
			molarCp += c.C[i] * cat.Cp(i, c.Tg)
			mass += c.C[i] * cat.Species[i].MolarMass
		}
		if mass > 0 {
			c.CpG = molarCp / mass // [J/(g·K)]
		} else {
			c.CpG = 0
		}

		c.Kg = 0.024 + 4.6e-5*c.Tg
		c.Pr = c.CpG * cat.GasViscosity / c.Kg
	}
}

// binaryDiffusivity is the Fuller correlation for the binary diffusion
// coefficient of gas species i in j at temperature T and pressure P [Pa].
func binaryDiffusivity(cat *PropertyCatalog, i, j int, T, P float64) float64 {
	mi, mj := cat.Species[i].MolarMass, cat.Species[j].MolarMass
	mij := 2 / (1/mi + 1/mj)
	vi := math.Cbrt(cat.Species[i].DiffusionVolume)
	vj := math.Cbrt(cat.Species[j].DiffusionVolume)
	return 0.00143 * math.Pow(T, 1.75) /
		(P * math.Sqrt(mij) * (vi + vj) * (vi + vj))
}

// effectiveDiffusivity is the mixture-averaged diffusivity of gas species i,
// the harmonic combination of its binary diffusivities weighted by the mole
// fractions of the other gas species.
func effectiveDiffusivity(cat *PropertyCatalog, c *Cell, i int) float64 {
	var sum float64
	for j := NumSolids; j < NumSpecies; j++ {
		if j == i {
			continue
		}
		x := c.X[j-NumSolids]
		if x <= 0 {
			continue
		}
		sum += x / binaryDiffusivity(cat, i, j, c.Tg, c.P)
	}
	if sum <= 0 {
		return 0
	}
	return 1 / sum
}

// SpeciesFluxes returns a function that evaluates per-species axial fluxes:
// pure convection for solid species, convection plus mixture-averaged
// diffusion for gas species. Suspended carbon advects with the gas but has
// no diffusion term. The inlet cell sees a zero upstream concentration
// gradient.
func SpeciesFluxes(cat *PropertyCatalog) CellManipulator {
	return func(c *Cell, Δt float64) {
		up := c.upstream
		for i := 0; i < NumSolids; i++ {
			c.N[i] = c.Vs * c.C[i]
		}
		for i := NumSolids; i < NumSpecies; i++ {
			c.N[i] = c.Vg * c.C[i]
			if i == CSus || up == nil {
				continue
			}
			dCdz := (c.C[i] - up.C[i]) / c.Dz
			c.N[i] -= effectiveDiffusivity(cat, c, i) * dCdz
		}
	}
}
