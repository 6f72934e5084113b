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

// SolveFillAngle solves the circular-segment relation
//
//	θ − sin(θ) = 2π·η
//
// for the fill angle θ of a bed occupying fraction η of the cross-section,
// by Newton iteration. The solver never fails: when the iteration cap is
// reached or the derivative underflows its floor, the best iterate seen so
// far is returned.
func SolveFillAngle(η float64, nt NewtonTunables) float64 {
	θ := nt.Guess
	best := θ
	bestResidual := math.Inf(1)
	for i := 0; i < nt.MaxIter; i++ {
		f := θ - math.Sin(θ) - 2*math.Pi*η
		if r := math.Abs(f); r < bestResidual {
			bestResidual = r
			best = θ
		}
		if math.Abs(f) < nt.Tolerance {
			return θ
		}
		df := 1 - math.Cos(θ)
		if math.Abs(df) < nt.DerivativeFloor {
			break
		}
		θ -= f / df
	}
	return best
}

// FillGeometry returns a function that computes the bed fill fraction from
// the solid volume occupancy, solves for the fill angle, and derives the
// cross-section partition: solid and gas areas, bed chord and height, and
// the effective and hydraulic diameters used by the transport correlations.
func FillGeometry(cat *PropertyCatalog, nt NewtonTunables) CellManipulator {
	return func(c *Cell, Δt float64) {
		fg, fs := volumeFractions(cat, c.C)
		c.VFracG, c.VFracS = fg, fs
		c.Eta = fs

		rc := c.Zone.Radius
		θ := SolveFillAngle(c.Eta, nt)
		c.Theta = θ
		c.As = rc * rc / 2 * (θ - math.Sin(θ))
		c.Ag = c.At - c.As
		c.Chord = 2 * rc * math.Sin(θ/2)
		c.BedHeight = rc * (1 - math.Cos(θ/2))
		c.De = 2 * rc * (math.Pi - θ/2 + math.Sin(θ)/2) /
			(math.Pi - θ/2 + math.Sin(θ/2))
		if c.Ag > 0 {
			c.Dh = 4 * c.Volume / c.Ag
		} else {
			c.Dh = 0
		}
	}
}
