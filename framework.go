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

// Package kilnsim implements a steady-state simulator for a three-zone
// countercurrent cement process (preheater, calciner, rotary kiln). The flow
// path is discretized into one-dimensional finite-volume cells; coupled
// species-mass and energy conservation laws with Arrhenius reaction kinetics
// are advanced by explicit Euler steps until successive full sweeps agree
// within a fixed tolerance.
package kilnsim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// KilnSim is the model state and configuration.
type KilnSim struct {
	// InitFuncs are functions to be used to initialize the model.
	InitFuncs []DomainManipulator

	// RunFuncs are functions to be run in order during every iteration of
	// the simulation.
	RunFuncs []DomainManipulator

	// CleanupFuncs are functions to be run after the simulation is
	// completed.
	CleanupFuncs []DomainManipulator

	// Cells is the flow-ordered cell sequence. It is exclusively owned by
	// the model; science steps mutate cells in place during sweeps.
	Cells []*Cell

	// Config and Catalog are installed by the Discretize init function.
	Config  *ProcessConfig
	Catalog *PropertyCatalog

	// Dt is the explicit time step [s].
	Dt float64

	// Iteration counts completed outer sweeps.
	Iteration int

	// Done specifies whether the simulation is finished.
	Done bool

	// Converged reports whether termination was by convergence rather than
	// iteration-budget exhaustion.
	Converged bool

	// Log receives recoverable-event and lifecycle messages. If nil, the
	// logrus standard logger is used.
	Log logrus.FieldLogger
}

// DomainManipulator is a class of functions that operate on the entire
// model domain.
type DomainManipulator func(d *KilnSim) error

// CellManipulator is a class of functions that operate on a single cell
// within one time step Δt.
type CellManipulator func(c *Cell, Δt float64)

// Init initializes the model, running d.InitFuncs in order.
func (d *KilnSim) Init() error {
	if d.Log == nil {
		d.Log = logrus.StandardLogger()
	}
	for _, f := range d.InitFuncs {
		if err := f(d); err != nil {
			return fmt.Errorf("kilnsim: initializing model: %w", err)
		}
	}
	if len(d.Cells) == 0 {
		return fmt.Errorf("kilnsim: initialization produced no cells")
	}
	return nil
}

// Run repeatedly runs d.RunFuncs in order until d.Done is true.
func (d *KilnSim) Run() error {
	for !d.Done {
		d.Iteration++
		for _, f := range d.RunFuncs {
			if err := f(d); err != nil {
				return fmt.Errorf("kilnsim: iteration %d: %w", d.Iteration, err)
			}
		}
	}
	return nil
}

// Cleanup runs d.CleanupFuncs in order.
func (d *KilnSim) Cleanup() error {
	for _, f := range d.CleanupFuncs {
		if err := f(d); err != nil {
			return fmt.Errorf("kilnsim: cleaning up: %w", err)
		}
	}
	return nil
}

// Cell holds the state of one finite-volume axial segment. State variables
// (concentrations and internal-energy densities) are advanced by the
// integrator; algebraic variables are recomputed from current state every
// sweep and cached here so the next cell downstream can read them for its
// axial gradients.
type Cell struct {
	Index int `desc:"Flow-ordered cell index"`

	Zone *ZoneSpec

	Dz     float64 `desc:"Axial segment length" units:"m"`
	At     float64 `desc:"Total cross-sectional area" units:"m²"`
	Volume float64 `desc:"Segment volume" units:"m³"`

	// C holds species concentrations indexed by the species constants.
	C []float64 `desc:"Species concentrations" units:"mol m⁻³"`

	Ug float64 `desc:"Gas internal energy density" units:"J m⁻³"`
	Us float64 `desc:"Solid internal energy density" units:"J m⁻³"`

	Tg float64 `desc:"Gas temperature" units:"K"`
	Ts float64 `desc:"Solid temperature" units:"K"`
	P  float64 `desc:"Pressure" units:"Pa"`

	// Fill geometry.
	Theta     float64 `desc:"Fill angle" units:"rad"`
	Eta       float64 `desc:"Fill fraction" units:"-"`
	As        float64 `desc:"Solid cross-sectional area" units:"m²"`
	Ag        float64 `desc:"Gas cross-sectional area" units:"m²"`
	Chord     float64 `desc:"Bed chord length" units:"m"`
	BedHeight float64 `desc:"Bed height" units:"m"`
	De        float64 `desc:"Effective diameter" units:"m"`
	Dh        float64 `desc:"Hydraulic diameter" units:"m"`

	// Gas mixture state.
	RhoG float64   `desc:"Gas mass density" units:"g m⁻³"`
	Cg   float64   `desc:"Total gas molar concentration" units:"mol m⁻³"`
	X    []float64 `desc:"Gas mole fractions (gas species only)" units:"-"`
	CpG  float64   `desc:"Gas specific heat" units:"J g⁻¹ K⁻¹"`
	Kg   float64   `desc:"Gas thermal conductivity" units:"W m⁻¹ K⁻¹"`
	Pr   float64   `desc:"Prandtl number" units:"-"`

	// Phase velocities.
	Vg float64 `desc:"Gas axial velocity" units:"m s⁻¹"`
	Vs float64 `desc:"Solid axial velocity" units:"m s⁻¹"`

	// Species fluxes, indexed like C (solid entries below NumSolids).
	N []float64 `desc:"Species fluxes" units:"mol m⁻² s⁻¹"`

	// Enthalpy and conduction fluxes.
	HFluxS    float64 `desc:"Solid enthalpy flux density" units:"J m⁻² s⁻¹"`
	HFluxG    float64 `desc:"Gas enthalpy flux density" units:"J m⁻² s⁻¹"`
	CondFluxS float64 `desc:"Solid conduction flux" units:"W m⁻²"`
	CondFluxG float64 `desc:"Gas conduction flux" units:"W m⁻²"`

	// Volume fractions and internal-energy closure.
	VFracG float64 `desc:"Gas volume fraction" units:"-"`
	VFracS float64 `desc:"Solid volume fraction" units:"-"`
	UHat   float64 `desc:"Closure internal-energy density" units:"J m⁻³"`

	// Heat exchange.
	EpsG  float64 `desc:"Gas emissivity" units:"-"`
	EpsGS float64 `desc:"Combined gas-solid emissivity" units:"-"`
	Qconv float64 `desc:"Convective gas-solid heat exchange" units:"W"`
	Qrad  float64 `desc:"Radiative gas-solid heat exchange" units:"W"`

	// Reaction terms.
	Source   []float64 `desc:"Volumetric species source terms" units:"mol m⁻³ s⁻¹"`
	JsgSolid float64   `desc:"Solid-reaction enthalpy source" units:"J m⁻³ s⁻¹"`
	JsgGas   float64   `desc:"Gas-reaction enthalpy source" units:"J m⁻³ s⁻¹"`

	// Time derivatives staged by the conservation assembler.
	DCDt  []float64 `desc:"Concentration derivatives" units:"mol m⁻³ s⁻¹"`
	DUgDt float64   `desc:"Gas internal-energy derivative" units:"J m⁻³ s⁻¹"`
	DUsDt float64   `desc:"Solid internal-energy derivative" units:"J m⁻³ s⁻¹"`

	// upstream is the immediately preceding cell in flow order, or nil for
	// the first cell of the sequence. It is the only cross-cell reference
	// in the model.
	upstream *Cell

	// inletFlux holds the externally supplied inlet species fluxes
	// [mol/(m²·s)]; non-nil only for the first cell.
	inletFlux []float64
}

// Upstream returns the immediately preceding cell in flow order, or nil for
// the inlet cell.
func (c *Cell) Upstream() *Cell { return c.upstream }

func newCell(index int, zone *ZoneSpec, dz, at float64) *Cell {
	return &Cell{
		Index:  index,
		Zone:   zone,
		Dz:     dz,
		At:     at,
		Volume: at * dz,
		C:      make([]float64, NumSpecies),
		X:      make([]float64, NumSpecies-NumSolids),
		N:      make([]float64, NumSpecies),
		Source: make([]float64, NumSpecies),
		DCDt:   make([]float64, NumSpecies),
	}
}
