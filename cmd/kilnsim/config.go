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

package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/spatialmodel/kilnsim"
	"github.com/spatialmodel/kilnsim/clinker"
)

// ConfigData holds the user-adjustable simulation settings read from the
// TOML configuration file. Zero-valued fields keep their built-in defaults;
// the chemistry and zone rule sets are not user-configurable.
type ConfigData struct {
	// Omega is the kiln rotation speed [rad/s].
	Omega float64

	Solid struct {
		// Temperature is the raw-meal feed temperature [K].
		Temperature float64
		// Rate is the raw-meal mass feed rate [g/s].
		Rate float64
	}

	Gas struct {
		// Temperature is the combustion-air temperature [K].
		Temperature float64
		// MolarRate is the combustion-air molar feed rate [mol/s].
		MolarRate float64
		// Velocity is the reference axial gas velocity [m/s].
		Velocity float64
	}

	Fuel struct {
		// Rate is the coal-dust mass feed rate [g/s].
		Rate float64
	}

	Solver struct {
		// Dt is the explicit time step [s].
		Dt float64
		// Tolerance is the absolute per-cell convergence tolerance.
		Tolerance float64
		// MaxIterations bounds the outer iteration count.
		MaxIterations int
	}
}

// loadConfig builds the run configuration: the built-in reference plant,
// optionally overridden by a TOML file, validated before use.
func loadConfig(path string) (*kilnsim.ProcessConfig, *kilnsim.PropertyCatalog, error) {
	cfg := clinker.DefaultConfig()
	cat := clinker.DefaultCatalog()

	if path != "" {
		var data ConfigData
		if _, err := toml.DecodeFile(os.ExpandEnv(path), &data); err != nil {
			return nil, nil, fmt.Errorf("reading configuration file %s: %w", path, err)
		}
		applyOverrides(cfg, &data)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, cat, nil
}

func applyOverrides(cfg *kilnsim.ProcessConfig, data *ConfigData) {
	if data.Omega != 0 {
		cfg.Omega = data.Omega
	}
	if data.Solid.Temperature != 0 {
		cfg.Solid.Temperature = data.Solid.Temperature
	}
	if data.Solid.Rate != 0 {
		cfg.Solid.Rate = data.Solid.Rate
	}
	if data.Gas.Temperature != 0 {
		cfg.Gas.Temperature = data.Gas.Temperature
	}
	if data.Gas.MolarRate != 0 {
		cfg.Gas.MolarRate = data.Gas.MolarRate
	}
	if data.Gas.Velocity != 0 {
		cfg.Gas.Velocity = data.Gas.Velocity
	}
	if data.Fuel.Rate != 0 {
		cfg.Fuel.Rate = data.Fuel.Rate
	}
	if data.Solver.Dt != 0 {
		cfg.Solver.Dt = data.Solver.Dt
	}
	if data.Solver.Tolerance != 0 {
		cfg.Solver.Tolerance = data.Solver.Tolerance
	}
	if data.Solver.MaxIterations != 0 {
		cfg.Solver.MaxIterations = data.Solver.MaxIterations
	}
}
