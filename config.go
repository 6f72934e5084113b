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

// ZoneKind identifies one of the three physical sections of the flow path.
type ZoneKind int

const (
	Preheater ZoneKind = iota
	Calciner
	Kiln
)

func (z ZoneKind) String() string {
	switch z {
	case Preheater:
		return "preheater"
	case Calciner:
		return "calciner"
	case Kiln:
		return "kiln"
	}
	return fmt.Sprintf("ZoneKind(%d)", int(z))
}

// EnergyEquationKind selects the energy-balance variant a zone integrates.
type EnergyEquationKind int

const (
	// EnergyNone integrates pure enthalpy-flux transport per phase, with no
	// reaction and no gas-solid heat exchange.
	EnergyNone EnergyEquationKind = iota
	// EnergySingleLumped integrates one combined gas+solid balance whose
	// result is partitioned between the phases by their instantaneous
	// volumetric heat capacities.
	EnergySingleLumped
	// EnergyTwoPhaseSplit integrates independent gas and solid balances
	// coupled through the convective and radiative exchange terms.
	EnergyTwoPhaseSplit
)

func (k EnergyEquationKind) String() string {
	switch k {
	case EnergyNone:
		return "none"
	case EnergySingleLumped:
		return "single-lumped"
	case EnergyTwoPhaseSplit:
		return "two-phase-split"
	}
	return fmt.Sprintf("EnergyEquationKind(%d)", int(k))
}

// SolidVelocityLaw selects how a zone computes its solid-phase axial
// velocity.
type SolidVelocityLaw int

const (
	// SolidVelocityFixed uses the zone's configured constant velocity.
	SolidVelocityFixed SolidVelocityLaw = iota
	// SolidVelocityEqualToGas sets the solid velocity equal to the gas
	// velocity (entrained flow).
	SolidVelocityEqualToGas
	// SolidVelocityRotaryTransport uses the rotary-kiln transport
	// correlation built from rotation speed, angle of repose, chord length,
	// and bed-slope angle.
	SolidVelocityRotaryTransport
)

func (l SolidVelocityLaw) String() string {
	switch l {
	case SolidVelocityFixed:
		return "fixed"
	case SolidVelocityEqualToGas:
		return "equal-to-gas"
	case SolidVelocityRotaryTransport:
		return "rotary-transport"
	}
	return fmt.Sprintf("SolidVelocityLaw(%d)", int(l))
}

// GasVelocityLaw selects how a zone computes its gas-phase axial velocity.
type GasVelocityLaw int

const (
	// GasVelocityFixed uses the gas feed's reference velocity.
	GasVelocityFixed GasVelocityLaw = iota
	// GasVelocityPressureGradient derives the velocity from the axial
	// pressure gradient and the hydraulic diameter.
	GasVelocityPressureGradient
)

func (l GasVelocityLaw) String() string {
	switch l {
	case GasVelocityFixed:
		return "fixed"
	case GasVelocityPressureGradient:
		return "pressure-gradient"
	}
	return fmt.Sprintf("GasVelocityLaw(%d)", int(l))
}

// HeatTransferLaw selects the gas-solid convective heat-exchange
// correlation.
type HeatTransferLaw int

const (
	// HeatTransferNone disables gas-solid heat exchange.
	HeatTransferNone HeatTransferLaw = iota
	// HeatTransferPackedBed uses the packed-bed correlation on particle
	// diameter, axial Reynolds number and Prandtl number.
	HeatTransferPackedBed
	// HeatTransferRotaryKiln uses the rotary-kiln Nusselt correlation
	// combining axial and rotational Reynolds numbers and the fill
	// fraction.
	HeatTransferRotaryKiln
)

func (l HeatTransferLaw) String() string {
	switch l {
	case HeatTransferNone:
		return "none"
	case HeatTransferPackedBed:
		return "packed-bed"
	case HeatTransferRotaryKiln:
		return "rotary-kiln"
	}
	return fmt.Sprintf("HeatTransferLaw(%d)", int(l))
}

// RuleSet is the static, zone-specific selection of closure-law variants.
// It is configuration, never computed.
type RuleSet struct {
	Energy        EnergyEquationKind
	SolidVelocity SolidVelocityLaw
	GasVelocity   GasVelocityLaw
	HeatTransfer  HeatTransferLaw

	// Reactions lists the reaction indices active in this zone; empty
	// means no reactions.
	Reactions []int

	// FixedSolidVelocity is the constant solid velocity used when
	// SolidVelocity is SolidVelocityFixed [m/s].
	FixedSolidVelocity float64

	// ConstantComposition holds both phases' concentrations fixed at their
	// seeded values; only energy transport is integrated.
	ConstantComposition bool

	// SeedGasTemp and SeedSolidTemp are the zone's initial temperatures [K].
	SeedGasTemp, SeedSolidTemp float64
}

// ZoneSpec is the geometry and rule set of one zone, in flow order.
type ZoneSpec struct {
	Kind     ZoneKind
	Length   float64 `desc:"Zone length" units:"m"`
	Segments int     `desc:"Number of finite-volume segments" units:"-"`
	Radius   float64 `desc:"Internal radius" units:"m"`
	Incline  float64 `desc:"Axial incline (kiln only)" units:"rad"`
	Rules    RuleSet
}

// SolidFeed is the raw-meal stream entering the preheater.
type SolidFeed struct {
	Temperature float64 `units:"K"`
	Rate        float64 `desc:"Total mass rate" units:"g s⁻¹"`
	// Composition maps species index to mass fraction.
	Composition map[int]float64
}

// GasFeed is the combustion-air stream.
type GasFeed struct {
	Temperature float64 `units:"K"`
	MolarRate   float64 `desc:"Total molar rate" units:"mol s⁻¹"`
	Velocity    float64 `desc:"Reference axial velocity" units:"m s⁻¹"`
	// Composition maps species index to mole fraction.
	Composition map[int]float64
}

// FuelFeed is the coal-dust stream; its components split across both phases
// by species.
type FuelFeed struct {
	Rate float64 `desc:"Total mass rate" units:"g s⁻¹"`
	// Composition maps species index to mass fraction.
	Composition map[int]float64
}

// NewtonTunables parameterize the fill-angle Newton solve. The solver
// returns its best iterate when MaxIter is exhausted or the derivative
// underflows DerivativeFloor; it never fails.
type NewtonTunables struct {
	Guess           float64
	Tolerance       float64
	MaxIter         int
	DerivativeFloor float64
}

// SolverTunables parameterize the outer iteration loop and the physical
// bounds enforced by the integrator.
type SolverTunables struct {
	Dt            float64 `desc:"Explicit time step" units:"s"`
	Tolerance     float64 `desc:"Absolute per-cell convergence tolerance"`
	MaxIterations int
	MinIterations int     `desc:"Iterations before convergence checks begin"`
	Floor         float64 `desc:"Concentration floor" units:"mol m⁻³"`
	TMin, TMax    float64 `desc:"Physical temperature band" units:"K"`
	PMin, PMax    float64 `desc:"Physical pressure band" units:"Pa"`
	VgMax         float64 `desc:"Upper bound on the pressure-gradient gas velocity" units:"m s⁻¹"`
}

// ProcessConfig is the complete run configuration: zone geometry and rules
// in flow order, feed streams, rotation speed, and solver tunables.
type ProcessConfig struct {
	Zones []ZoneSpec

	Solid SolidFeed
	Gas   GasFeed
	Fuel  FuelFeed

	Omega float64 `desc:"Kiln rotation speed" units:"rad s⁻¹"`

	Newton NewtonTunables
	Solver SolverTunables
}

// ConfigError describes a configuration rejected before the solve starts.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("kilnsim: invalid configuration: %s: %s", e.Field, e.Reason)
}

// Validate rejects invalid geometry, rule sets, feeds, and tunables.
// Everything here fails fast; nothing in the solve loop re-validates.
func (cfg *ProcessConfig) Validate() error {
	if len(cfg.Zones) == 0 {
		return &ConfigError{"Zones", "at least one zone is required"}
	}
	for zi, z := range cfg.Zones {
		name := fmt.Sprintf("Zones[%d] (%s)", zi, z.Kind)
		if z.Segments <= 0 {
			return &ConfigError{name + ".Segments", "must be positive"}
		}
		if z.Length <= 0 {
			return &ConfigError{name + ".Length", "must be positive"}
		}
		if z.Radius <= 0 {
			return &ConfigError{name + ".Radius", "must be positive"}
		}
		for _, r := range z.Rules.Reactions {
			if r < 0 || r >= NumReactions {
				return &ConfigError{name + ".Rules.Reactions",
					fmt.Sprintf("reaction index %d out of range [0, %d)", r, NumReactions)}
			}
		}
		if z.Rules.SolidVelocity == SolidVelocityFixed && z.Rules.FixedSolidVelocity < 0 {
			return &ConfigError{name + ".Rules.FixedSolidVelocity", "must be non-negative"}
		}
		if z.Rules.SeedGasTemp <= 0 || z.Rules.SeedSolidTemp <= 0 {
			return &ConfigError{name + ".Rules", "seed temperatures must be positive"}
		}
	}
	if err := validateComposition("Solid.Composition", cfg.Solid.Composition); err != nil {
		return err
	}
	if err := validateComposition("Gas.Composition", cfg.Gas.Composition); err != nil {
		return err
	}
	if err := validateComposition("Fuel.Composition", cfg.Fuel.Composition); err != nil {
		return err
	}
	if cfg.Gas.Velocity <= 0 {
		return &ConfigError{"Gas.Velocity", "must be positive"}
	}
	s := cfg.Solver
	if s.Dt <= 0 {
		return &ConfigError{"Solver.Dt", "must be positive"}
	}
	if s.Tolerance <= 0 {
		return &ConfigError{"Solver.Tolerance", "must be positive"}
	}
	if s.MaxIterations <= 0 {
		return &ConfigError{"Solver.MaxIterations", "must be positive"}
	}
	if s.Floor <= 0 {
		return &ConfigError{"Solver.Floor", "must be positive"}
	}
	if s.TMin <= 0 || s.TMax <= s.TMin {
		return &ConfigError{"Solver.TMin/TMax", "need 0 < TMin < TMax"}
	}
	if s.PMin <= 0 || s.PMax <= s.PMin {
		return &ConfigError{"Solver.PMin/PMax", "need 0 < PMin < PMax"}
	}
	if s.VgMax <= 0 {
		return &ConfigError{"Solver.VgMax", "must be positive"}
	}
	n := cfg.Newton
	if n.Tolerance <= 0 || n.MaxIter <= 0 || n.DerivativeFloor <= 0 {
		return &ConfigError{"Newton", "tolerance, max iterations and derivative floor must be positive"}
	}
	return nil
}

func validateComposition(field string, comp map[int]float64) error {
	var sum float64
	for i, f := range comp {
		if i < 0 || i >= NumSpecies {
			return &ConfigError{field, fmt.Sprintf("species index %d out of range", i)}
		}
		if f < 0 || f > 1 {
			return &ConfigError{field,
				fmt.Sprintf("%s fraction %g outside [0, 1]", SpeciesNames[i], f)}
		}
		sum += f
	}
	if len(comp) > 0 && sum > 1+1e-9 {
		return &ConfigError{field, fmt.Sprintf("fractions sum to %g > 1", sum)}
	}
	if math.IsNaN(sum) {
		return &ConfigError{field, "fractions contain NaN"}
	}
	return nil
}
