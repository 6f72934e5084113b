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

// Conservation returns a function that assembles a cell's time derivatives
// from the algebraic variables staged by the upstream science steps: species
// balances from flux divergence plus reaction sources, and the zone's energy
// balance variant. The inlet cell takes its upstream species fluxes from the
// externally supplied feed fluxes and sees zero upstream energy gradients.
func Conservation(cat *PropertyCatalog) CellManipulator {
	return func(c *Cell, Δt float64) {
		up := c.upstream

		// Species balances.
		if c.Zone.Rules.ConstantComposition {
			for i := range c.DCDt {
				c.DCDt[i] = 0
			}
		} else {
			for i := 0; i < NumSpecies; i++ {
				var nUp float64
				switch {
				case up != nil:
					nUp = up.N[i]
				case c.inletFlux != nil:
					nUp = c.inletFlux[i]
				}
				c.DCDt[i] = -(c.N[i]-nUp)/c.Dz + c.Source[i]
			}
		}

		// Energy balances. Axial divergence of an enthalpy or conduction
		// flux vanishes at the inlet cell.
		div := func(cur, upVal float64, haveUp bool) float64 {
			if !haveUp {
				return 0
			}
			return (cur - upVal) / c.Dz
		}
		haveUp := up != nil
		var upHg, upHs, upQg, upQs float64
		if haveUp {
			upHg, upHs = up.HFluxG, up.HFluxS
			upQg, upQs = up.CondFluxG, up.CondFluxS
		}

		switch c.Zone.Rules.Energy {
		case EnergyNone:
			c.DUgDt = -div(c.HFluxG, upHg, haveUp)
			c.DUsDt = -div(c.HFluxS, upHs, haveUp)

		case EnergySingleLumped:
			// One combined balance; the gas-solid exchange terms cancel
			// between the phase equations and are omitted.
			dU := -div(c.HFluxG+c.HFluxS+c.CondFluxG, upHg+upHs+upQg, haveUp) -
				c.JsgSolid - c.JsgGas
			fs := lumpedSolidFraction(cat, c)
			c.DUsDt = fs * dU
			c.DUgDt = (1 - fs) * dU

		case EnergyTwoPhaseSplit:
			exch := (c.Qrad + c.Qconv) / c.Volume
			c.DUsDt = -div(c.HFluxS+c.CondFluxS, upHs+upQs, haveUp) +
				exch - c.JsgSolid
			c.DUgDt = -div(c.HFluxG+c.CondFluxG, upHg+upQg, haveUp) -
				exch - c.JsgGas
		}
	}
}

// lumpedSolidFraction partitions a combined energy increment between the
// phases by their instantaneous volumetric heat capacities, falling back to
// a fixed solid share when either capacity is degenerate.
func lumpedSolidFraction(cat *PropertyCatalog, c *Cell) float64 {
	const fallback = 0.8

	cvGas := c.RhoG * c.CpG
	var cvSolid float64
	for i := 0; i < NumSolids; i++ {
		cvSolid += c.C[i] * cat.Cp(i, c.Ts)
	}
	if cvGas <= 0 || cvSolid <= 0 {
		return fallback
	}
	return cvSolid / (cvSolid + cvGas)
}
