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

	"gonum.org/v1/gonum/floats"
)

// SimulationStatus holds information about the progress of one outer
// iteration.
type SimulationStatus struct {
	Iteration int

	// MaxDelta is the largest absolute per-cell change of any monitored
	// variable since the previous iteration.
	MaxDelta float64

	// Converged reports whether MaxDelta fell below the solver tolerance.
	Converged bool

	// Exhausted reports whether the iteration budget ran out before
	// convergence.
	Exhausted bool
}

func (s *SimulationStatus) String() string {
	switch {
	case s.Converged:
		return fmt.Sprintf("iteration %d: converged (max Δ = %.3g)", s.Iteration, s.MaxDelta)
	case s.Exhausted:
		return fmt.Sprintf("iteration %d: iteration budget exhausted (max Δ = %.3g)", s.Iteration, s.MaxDelta)
	default:
		return fmt.Sprintf("iteration %d: max Δ = %.3g", s.Iteration, s.MaxDelta)
	}
}

// Calculations returns a function that runs a series of calculators on each
// cell of the domain, in flow order.
//
// The sweep is deliberately sequential and single-threaded: each cell reads
// its upstream neighbor's freshly updated values (Gauss-Seidel), so the
// result of a sweep depends on cell order. Do not parallelize.
func Calculations(calculators ...CellManipulator) DomainManipulator {
	return func(d *KilnSim) error {
		for _, c := range d.Cells {
			for _, f := range calculators {
				f(c, d.Dt)
			}
		}
		return nil
	}
}

// monitored extracts, for each cell, the variables watched by the convergence
// check: gas and solid temperatures, calcium-carbonate concentration, and
// both internal-energy densities.
func (d *KilnSim) monitored(dst []float64) []float64 {
	const nvar = 5
	if dst == nil {
		dst = make([]float64, nvar*len(d.Cells))
	}
	for i, c := range d.Cells {
		dst[nvar*i+0] = c.Tg
		dst[nvar*i+1] = c.Ts
		dst[nvar*i+2] = c.C[CaCO3]
		dst[nvar*i+3] = c.Ug
		dst[nvar*i+4] = c.Us
	}
	return dst
}

// SteadyStateConvergenceCheck returns a function that stops the simulation
// once every monitored per-cell variable changes by less than the solver
// tolerance between successive iterations, or once the iteration budget is
// exhausted. Budget exhaustion is not an error; it is reported through the
// model's Converged field and the status channel.
//
// If c is not nil, a status message is sent on it after each iteration, and
// it is closed when the simulation finishes.
func SteadyStateConvergenceCheck(tunables SolverTunables, c chan *SimulationStatus) DomainManipulator {
	var prev []float64
	return func(d *KilnSim) error {
		cur := d.monitored(nil)
		status := &SimulationStatus{Iteration: d.Iteration, MaxDelta: math.Inf(1)}
		if prev != nil {
			status.MaxDelta = floats.Distance(cur, prev, math.Inf(1))
		}
		prev = cur

		if d.Iteration >= tunables.MinIterations && status.MaxDelta <= tunables.Tolerance {
			status.Converged = true
			d.Converged = true
			d.Done = true
		} else if d.Iteration >= tunables.MaxIterations {
			status.Exhausted = true
			d.Done = true
			d.Log.WithField("iterations", d.Iteration).
				Warn("iteration budget exhausted before convergence")
		}
		if c != nil {
			c <- status
			if d.Done {
				close(c)
			}
		}
		return nil
	}
}

// CellResult is a per-cell snapshot of the converged state.
type CellResult struct {
	Zone      string
	Index     int
	Dz        float64
	Tg, Ts, P float64
	C         []float64
}

// ClinkerReport summarizes the solid stream leaving the last cell: its
// temperature and the clinker-phase mole percentages of total solid moles.
type ClinkerReport struct {
	OutletSolidTemp float64 `desc:"Solid temperature at the kiln outlet" units:"K"`

	// MolePercent maps clinker species index (CaO, C2S, C3S, C3A, C4AF) to
	// its share of total outlet solid moles [%].
	MolePercent map[int]float64
}

// Results returns per-cell snapshots of the current state in flow order.
func (d *KilnSim) Results() []CellResult {
	out := make([]CellResult, len(d.Cells))
	for i, c := range d.Cells {
		conc := make([]float64, len(c.C))
		copy(conc, c.C)
		out[i] = CellResult{
			Zone:  c.Zone.Kind.String(),
			Index: c.Index,
			Dz:    c.Dz,
			Tg:    c.Tg,
			Ts:    c.Ts,
			P:     c.P,
			C:     conc,
		}
	}
	return out
}

// Clinker reports the outlet solid temperature and clinker composition from
// the last cell of the domain.
func (d *KilnSim) Clinker() ClinkerReport {
	last := d.Cells[len(d.Cells)-1]
	var total float64
	for i := 0; i < NumSolids; i++ {
		total += last.C[i]
	}
	rep := ClinkerReport{
		OutletSolidTemp: last.Ts,
		MolePercent:     make(map[int]float64),
	}
	for _, i := range []int{CaO, C2S, C3S, C3A, C4AF} {
		if total > 0 {
			rep.MolePercent[i] = 100 * last.C[i] / total
		} else {
			rep.MolePercent[i] = 0
		}
	}
	return rep
}
