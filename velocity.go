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

// PhaseVelocities returns a function that evaluates the gas and solid axial
// velocities of a cell according to its zone's rule set. Gas velocity is
// either the configured reference velocity or the Blasius-type pressure
// gradient law on the hydraulic diameter; solid velocity is fixed, equal to
// the gas velocity, or the rotary transport law built from the rotation
// speed, the dynamic angle of repose, and the local bed slope.
func PhaseVelocities(cat *PropertyCatalog, cfg *ProcessConfig) CellManipulator {
	return func(c *Cell, Δt float64) {
		up := c.upstream

		switch c.Zone.Rules.GasVelocity {
		case GasVelocityFixed:
			c.Vg = cfg.Gas.Velocity
		case GasVelocityPressureGradient:
			var dPdz float64
			if up != nil {
				dPdz = (c.P - up.P) / c.Dz
			}
			if dPdz == 0 || c.RhoG <= 0 {
				c.Vg = cfg.Gas.Velocity
				break
			}
			μ := cat.GasViscosity
			ρ := c.RhoG
			c.Vg = math.Pow(
				(2/0.316)*math.Pow(math.Pow(c.Dh, 5)/(μ*ρ*ρ*ρ), 0.25)*math.Abs(dPdz),
				4.0/7.0)
			// The correlation is unbounded across the pressure steps at zone
			// boundaries; keep the velocity inside the physical range.
			if c.Vg > cfg.Solver.VgMax {
				c.Vg = cfg.Solver.VgMax
			}
		}

		switch c.Zone.Rules.SolidVelocity {
		case SolidVelocityFixed:
			c.Vs = c.Zone.Rules.FixedSolidVelocity
		case SolidVelocityEqualToGas:
			c.Vs = c.Vg
		case SolidVelocityRotaryTransport:
			// Dynamic angle of repose, linear in rotation speed.
			ξ := cat.ReposeSlope*cfg.Omega + cat.ReposeIntercept
			// Local bed-slope angle from the axial bed-height change.
			var φ float64
			if up != nil {
				φ = math.Atan((c.BedHeight - up.BedHeight) / c.Dz)
			}
			ψ := c.Zone.Incline
			rc := c.Zone.Radius
			arg := c.Chord / (2 * rc)
			if s := math.Sin(arg); s != 0 && math.Sin(ξ) != 0 {
				c.Vs = cfg.Omega * ((ψ + φ*math.Cos(ξ)) / math.Sin(ξ)) * (2 * rc / s)
			} else {
				c.Vs = 0
			}
			if c.Vs < 0 {
				c.Vs = 0
			}
		}
	}
}
