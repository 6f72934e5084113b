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

import "github.com/sirupsen/logrus"

// NewSimulation assembles a model with the standard science chain for the
// given configuration and property catalog. Per-sweep, each cell runs:
// fill geometry, gas-mixture state, phase velocities, species fluxes,
// energy state, gas-solid heat transfer, reaction kinetics, conservation
// assembly, and the explicit Euler step; the sweep is followed by the
// steady-state convergence check.
//
// status may be nil; if not, per-iteration progress is sent on it and the
// channel is closed when the run finishes. log may be nil.
func NewSimulation(cfg *ProcessConfig, cat *PropertyCatalog, log logrus.FieldLogger, status chan *SimulationStatus) *KilnSim {
	d := &KilnSim{Log: log}
	d.InitFuncs = []DomainManipulator{
		Discretize(cfg, cat),
	}
	d.RunFuncs = []DomainManipulator{
		Calculations(
			FillGeometry(cat, cfg.Newton),
			GasState(cat),
			PhaseVelocities(cat, cfg),
			SpeciesFluxes(cat),
			EnergyState(cat),
			HeatTransfer(cat, cfg),
			Kinetics(cat),
			Conservation(cat),
			Integrate(d),
		),
		SteadyStateConvergenceCheck(cfg.Solver, status),
	}
	return d
}
