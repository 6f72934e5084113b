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

	"github.com/sirupsen/logrus"
)

// Integrate returns a function that advances a cell's state variables by
// one explicit Euler step using the derivatives staged by Conservation, then
// recovers temperatures and pressure and enforces the physical bounds.
// Bound violations are recoverable: the value is clamped, the phase energy
// re-anchored to the clamped temperature, and the event logged. The catalog,
// tunables and logger are read from the model at call time, after Discretize
// has installed them.
func Integrate(d *KilnSim) CellManipulator {
	return func(c *Cell, Δt float64) {
		cat := d.Catalog
		st := d.Config.Solver

		if !c.Zone.Rules.ConstantComposition {
			for i := 0; i < NumSpecies; i++ {
				c.C[i] += c.DCDt[i] * Δt
				// Written so that NaN fails the comparison and lands on the
				// floor too.
				if !(c.C[i] >= st.Floor) {
					c.C[i] = st.Floor
				}
			}
		}

		c.Ug += c.DUgDt * Δt
		c.Us += c.DUsDt * Δt

		// Recover temperatures from the caloric closure U = Û(T, C): one
		// Newton step against the updated composition. Measuring the energy
		// change relative to the enthalpy of the new composition keeps the
		// formation enthalpy carried by accumulating or departing species
		// out of the temperature; a near-empty phase keeps its temperature.
		fg, _ := volumeFractions(cat, c.C)
		var hg, cvGas float64
		for i := NumSolids; i < NumSpecies; i++ {
			hg += c.C[i] * cat.MolarEnthalpy(i, c.Tg)
			cvGas += c.C[i] * cat.Cp(i, c.Tg)
		}
		if cvGas > 0 {
			c.Tg += (c.Ug - (hg - c.P*fg)) / cvGas
		}
		var hs, cvSolid float64
		for i := 0; i < NumSolids; i++ {
			hs += c.C[i] * cat.MolarEnthalpy(i, c.Ts)
			cvSolid += c.C[i] * cat.Cp(i, c.Ts)
		}
		if cvSolid > 0 {
			c.Ts += (c.Us - hs) / cvSolid
		}

		// A clamped temperature leaves the phase energy inconsistent with
		// the closure; re-anchor it so the state cannot drift while pinned
		// at a bound. NaN compares unequal to everything, so a poisoned
		// temperature is also caught and reset here.
		if tg := clamp(d, c, "Tg", c.Tg, st.TMin, st.TMax); tg != c.Tg {
			c.Tg = tg
			var h float64
			for i := NumSolids; i < NumSpecies; i++ {
				h += c.C[i] * cat.MolarEnthalpy(i, tg)
			}
			c.Ug = h - c.P*fg
		}
		if ts := clamp(d, c, "Ts", c.Ts, st.TMin, st.TMax); ts != c.Ts {
			c.Ts = ts
			var h float64
			for i := 0; i < NumSolids; i++ {
				h += c.C[i] * cat.MolarEnthalpy(i, ts)
			}
			c.Us = h
		}

		cg := TotalGasConcentration(c.C)
		if cg > 1e-10 {
			c.P = cg * GasConstant * c.Tg
		} else {
			c.P = P0
		}
		c.P = clamp(d, c, "P", c.P, st.PMin, st.PMax)
	}
}

func clamp(d *KilnSim, c *Cell, name string, v, lo, hi float64) float64 {
	clamped := v
	if math.IsNaN(v) {
		clamped = lo
	} else if v < lo {
		clamped = lo
	} else if v > hi {
		clamped = hi
	}
	if clamped != v {
		d.Log.WithFields(logrus.Fields{
			"cell":     c.Index,
			"zone":     c.Zone.Kind.String(),
			"variable": name,
			"value":    v,
			"limit":    clamped,
		}).Warn("physical bound violated; value clamped")
	}
	return clamped
}
