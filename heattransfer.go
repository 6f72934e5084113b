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

// GasEmissivity evaluates the weighted-sum-of-gray-gases total emissivity of
// a gas at temperature T [K] and pressure P [Pa] with H₂O and CO₂ mole
// fractions xH2O and xCO2 over the mean beam length sm [m]. The clear-window
// weight a₀ contributes no absorption.
func GasEmissivity(cat *PropertyCatalog, T, P, xH2O, xCO2, sm float64) float64 {
	w := &cat.WSGG
	ratio := cat.H2OCO2Ratio
	tr := T / Tref
	pAtm := P / P0

	var ε float64
	for j := 0; j < 4; j++ {
		a := 0.0
		pow := 1.0
		for i := 0; i < 3; i++ {
			cji := w.C1[i][j] + w.C2[i][j]*ratio + w.C3[i][j]*ratio*ratio
			a += cji * pow
			pow *= tr
		}
		k := w.K1[j] + w.K2[j]*ratio
		ε += a * (1 - math.Exp(-k*sm*pAtm*(xH2O+xCO2)))
	}
	if ε < 0 {
		ε = 0
	}
	if ε > 1 {
		ε = 1
	}
	return ε
}

// HeatTransfer returns a function that evaluates the convective and
// radiative gas-solid heat exchange of a cell according to its zone's
// correlation: the packed-bed law on particle diameter for suspension flow,
// or the rotary-kiln Nusselt law on axial and rotational Reynolds numbers
// over the exposed bed surface.
func HeatTransfer(cat *PropertyCatalog, cfg *ProcessConfig) CellManipulator {
	return func(c *Cell, Δt float64) {
		if c.Zone.Rules.HeatTransfer == HeatTransferNone {
			c.EpsG, c.EpsGS = 0, 0
			c.Qconv, c.Qrad = 0, 0
			return
		}

		μ := cat.GasViscosity
		ags := c.Chord * c.Dz // exposed bed surface

		var β float64
		switch c.Zone.Rules.HeatTransfer {
		case HeatTransferPackedBed:
			reD := c.RhoG * c.Vg * c.De / μ
			β = cat.SolidConductivity / cat.ParticleDiameter *
				0.3 * math.Pow(reD, 0.6) * math.Pow(c.Pr, 0.33)
		case HeatTransferRotaryKiln:
			reD := c.RhoG * c.Vg * c.De / μ
			reω := c.RhoG * cfg.Omega * c.De * c.De / μ
			if reD > 0 && reω > 0 && c.Eta > 0 {
				nu := 0.46 * math.Pow(reD, 0.535) * math.Pow(reω, 0.104) *
					math.Pow(c.Eta, -0.341)
				β = c.Kg / c.De * nu
			}
		}
		c.Qconv = ags * β * (c.Tg - c.Ts)

		// Mean beam length for a cylinder of the zone's radius.
		sm := 0.95 * 2 * c.Zone.Radius
		xH2O := c.X[H2O-NumSolids]
		xCO2 := c.X[CO2-NumSolids]
		c.EpsG = GasEmissivity(cat, c.Tg, c.P, xH2O, xCO2, sm)
		εs := cat.SolidEmissivity
		c.EpsGS = c.EpsG + εs - c.EpsG*εs
		tg2, ts2 := c.Tg*c.Tg, c.Ts*c.Ts
		c.Qrad = StefanBoltzmann * ags * c.EpsGS * (tg2*tg2 - ts2*ts2)
	}
}
