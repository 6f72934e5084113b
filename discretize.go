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
	"fmt"
	"math"
)

// Discretize returns a function that validates the configuration, slices the
// zone sequence into finite-volume cells, links each cell to its upstream
// neighbor, seeds state from the feed streams, and installs the result in
// the model.
func Discretize(cfg *ProcessConfig, cat *PropertyCatalog) DomainManipulator {
	return func(d *KilnSim) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cat.Check(); err != nil {
			return fmt.Errorf("checking property catalog: %w", err)
		}
		d.Config = cfg
		d.Catalog = cat
		d.Dt = cfg.Solver.Dt

		var cells []*Cell
		var prev *Cell
		index := 0
		for zi := range cfg.Zones {
			zone := &cfg.Zones[zi]
			dz := zone.Length / float64(zone.Segments)
			at := math.Pi * zone.Radius * zone.Radius
			for s := 0; s < zone.Segments; s++ {
				c := newCell(index, zone, dz, at)
				c.upstream = prev
				seedCell(c, cfg, cat)
				cells = append(cells, c)
				prev = c
				index++
			}
		}
		cells[0].inletFlux = inletFluxes(cfg, cat, cells[0].At)
		d.Cells = cells

		d.Log.WithField("cells", len(cells)).Info("discretized flow path")
		return nil
	}
}

// feedMolarRates merges the three feed streams into per-species molar rates
// [mol/s]. Solid and fuel feeds are mass-based; the gas feed is molar.
func feedMolarRates(cfg *ProcessConfig, cat *PropertyCatalog) []float64 {
	rates := make([]float64, NumSpecies)
	for i, f := range cfg.Solid.Composition {
		rates[i] += cfg.Solid.Rate * f / cat.Species[i].MolarMass
	}
	for i, f := range cfg.Gas.Composition {
		rates[i] += cfg.Gas.MolarRate * f
	}
	for i, f := range cfg.Fuel.Composition {
		rates[i] += cfg.Fuel.Rate * f / cat.Species[i].MolarMass
	}
	return rates
}

// inletFluxes converts merged feed molar rates to inlet area fluxes
// [mol/(m²·s)] for the first cell's upstream boundary.
func inletFluxes(cfg *ProcessConfig, cat *PropertyCatalog, at float64) []float64 {
	rates := feedMolarRates(cfg, cat)
	flux := make([]float64, NumSpecies)
	for i, r := range rates {
		flux[i] = r / at
	}
	return flux
}

// seedCell fills a fresh cell with an initial guess: concentrations from the
// feed rates and a reference residence time, zone seed temperatures, the
// ideal-gas pressure at that seed state, and internal energies consistent
// with those seeds.
func seedCell(c *Cell, cfg *ProcessConfig, cat *PropertyCatalog) {
	rates := feedMolarRates(cfg, cat)
	floor := cfg.Solver.Floor

	// A species' seed concentration is its feed rate times the residence
	// time of its phase at the reference velocity, spread over the cell
	// volume.
	vSolid := c.Zone.Rules.FixedSolidVelocity
	if vSolid <= 0 {
		vSolid = 0.4
	}
	vGas := cfg.Gas.Velocity
	for i := 0; i < NumSpecies; i++ {
		vref := vGas
		if i < NumSolids {
			vref = vSolid
		}
		conc := rates[i] * (c.Dz / vref) / c.Volume
		if conc < floor {
			conc = floor
		}
		c.C[i] = conc
	}

	c.Tg = c.Zone.Rules.SeedGasTemp
	c.Ts = c.Zone.Rules.SeedSolidTemp
	// Pressure consistent with the seeded gas inventory, as the integrator
	// will recover it; standard pressure for a near-empty phase.
	if cg := TotalGasConcentration(c.C); cg > 1e-10 {
		c.P = cg * GasConstant * c.Tg
	} else {
		c.P = P0
	}

	fg, fs := volumeFractions(cat, c.C)
	c.VFracG, c.VFracS = fg, fs

	var hg, hs float64
	for i := 0; i < NumSolids; i++ {
		hs += c.C[i] * cat.MolarEnthalpy(i, c.Ts)
	}
	for i := NumSolids; i < NumSpecies; i++ {
		hg += c.C[i] * cat.MolarEnthalpy(i, c.Tg)
	}
	c.Us = hs
	c.Ug = hg - c.P*fg
}
