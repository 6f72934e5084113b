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

// Package clinker holds the species, reaction and physical property data for
// ordinary Portland cement clinker production: raw-meal and clinker solids,
// combustion gases, suspended coal char, the calcination and clinkerization
// reactions, and the char combustion and gasification reactions.
package clinker

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/spatialmodel/kilnsim"
)

// stoich is the species × reaction stoichiometric matrix, rows in species
// index order, columns in reaction index order.
var stoich = []float64{
	// R1  R2  R3  R4  R5  R6  R7  R8  R9 R10 R11
	-1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // CaCO3
	1, -2, -1, -3, -4, 0, 0, 0, 0, 0, 0, // CaO
	0, -1, 0, 0, 0, 0, 0, 0, 0, 0, 0, // SiO2
	0, 0, 0, -1, -1, 0, 0, 0, 0, 0, 0, // Al2O3
	0, 0, 0, 0, -1, 0, 0, 0, 0, 0, 0, // Fe2O3
	0, 1, -1, 0, 0, 0, 0, 0, 0, 0, 0, // C2S
	0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, // C3S
	0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, // C3A
	0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, // C4AF
	0, 0, 0, 0, 0, 0, 0, 0, -2, -1, -1, // C_sus
	1, 0, 0, 0, 0, 2, 1, 0, 0, 0, -1, // CO2
	0, 0, 0, 0, 0, -2, -1, 0, 2, 1, 2, // CO
	0, 0, 0, 0, 0, -1, 0, -1, -1, 0, 0, // O2
	0, 0, 0, 0, 0, 0, -1, 2, 0, -1, 0, // H2O
	0, 0, 0, 0, 0, 0, 1, 0, 0, 1, 0, // H2
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, // N2
}

// DefaultCatalog returns the property catalog for clinker production.
// Units follow the concentration convention of the model: molar masses in
// g/mol, solid densities in g/m³, enthalpies in J/mol.
func DefaultCatalog() *kilnsim.PropertyCatalog {
	c := &kilnsim.PropertyCatalog{
		Stoich: mat.NewDense(kilnsim.NumSpecies, kilnsim.NumReactions, stoich),

		GasViscosity:      4.5e-2, // [g/(m·s)]
		SolidConductivity: 3.5,
		ParticleDiameter:  3e-5,
		SolidEmissivity:   0.9,
		H2OCO2Ratio:       0.5,
		ReposeSlope:       0.05,
		ReposeIntercept:   0.6,
	}

	type hc = kilnsim.HeatCapacity
	sp := func(i int, p kilnsim.SpeciesProps) {
		p.Name = kilnsim.SpeciesNames[i]
		c.Species[i] = p
	}

	// Solid phase.
	sp(kilnsim.CaCO3, kilnsim.SpeciesProps{
		MolarMass: 100.09, Density: 2.71e6, ThermalConductivity: 2.248,
		Cp:                hc{C0: 104.51, C1: 21.92e-3, C2: -25.94e-6, Tmin: 298, Tmax: 1800},
		FormationEnthalpy: -1207600,
	})
	sp(kilnsim.CaO, kilnsim.SpeciesProps{
		MolarMass: 56.08, Density: 3.34e6, ThermalConductivity: 30.1,
		Cp:                hc{C0: 71.69, C1: -3.08e-3, C2: 0.22e-5, Tmin: 200, Tmax: 1800},
		FormationEnthalpy: -634920,
	})
	sp(kilnsim.SiO2, kilnsim.SpeciesProps{
		MolarMass: 60.09, Density: 2.65e6, ThermalConductivity: 3.4,
		Cp:                hc{C0: 58.91, C1: 5.02e-3, Tmin: 844, Tmax: 1800},
		FormationEnthalpy: -910940,
	})
	sp(kilnsim.Al2O3, kilnsim.SpeciesProps{
		MolarMass: 101.96, Density: 3.99e6, ThermalConductivity: 13,
		Cp:                hc{C0: 233.004, C1: -19.59e-3, C2: 0.94e-5, Tmin: 200, Tmax: 1800},
		FormationEnthalpy: -1675700,
	})
	sp(kilnsim.Fe2O3, kilnsim.SpeciesProps{
		MolarMass: 159.69, Density: 5.25e6, ThermalConductivity: 0.33,
		Cp:                hc{C0: 103.9, Tmin: 1650, Tmax: 1800},
		FormationEnthalpy: -825500,
	})
	sp(kilnsim.C2S, kilnsim.SpeciesProps{
		MolarMass: 172.24, Density: 3.35e6, ThermalConductivity: 3.45,
		Cp:                hc{C0: 199.6, Tmin: 200, Tmax: 1800},
		FormationEnthalpy: -2256000,
	})
	sp(kilnsim.C3S, kilnsim.SpeciesProps{
		MolarMass: 228.32, Density: 3.13e6, ThermalConductivity: 3.35,
		Cp:                hc{C0: 333.92, C1: -2.33e-3, Tmin: 298, Tmax: 1800},
		FormationEnthalpy: -2881000,
	})
	sp(kilnsim.C3A, kilnsim.SpeciesProps{
		MolarMass: 270.19, Density: 3.04e6, ThermalConductivity: 3.74,
		Cp:                hc{C0: 260.58, C1: 4.79e-3, Tmin: 298, Tmax: 1800},
		FormationEnthalpy: -3582000,
	})
	sp(kilnsim.C4AF, kilnsim.SpeciesProps{
		MolarMass: 485.97, Density: 3.8e6, ThermalConductivity: 3.17,
		Cp:                hc{C0: 374.43, C1: 36.4e-3, Tmin: 298, Tmax: 1863},
		FormationEnthalpy: -4870000,
	})

	// Gas phase. Suspended char carries solid-like thermo but advects with
	// the gas.
	sp(kilnsim.CSus, kilnsim.SpeciesProps{
		MolarMass: 12.011, ThermalConductivity: 0.1,
		Viscosity: 10, DiffusionVolume: 15.9e-6,
		Cp:                hc{C0: -0.45, C1: 35.53e-3, C2: -1.31e-5, Tmin: 298, Tmax: 1500},
		FormationEnthalpy: 0,
	})
	sp(kilnsim.CO2, kilnsim.SpeciesProps{
		MolarMass: 44.01, ThermalConductivity: 70.78e-3,
		Viscosity: 41.18, DiffusionVolume: 16.3e-6,
		Cp:                hc{C0: 25.98, C1: 43.61e-3, C2: -1.49e-5, Tmin: 298, Tmax: 1500},
		FormationEnthalpy: -393510,
	})
	sp(kilnsim.CO, kilnsim.SpeciesProps{
		MolarMass: 28.010, ThermalConductivity: 43.2e-3,
		Viscosity: 29.1, DiffusionVolume: 18e-6,
		Cp:                hc{C0: 26.87, C1: 6.94e-3, C2: -0.08e-5, Tmin: 298, Tmax: 1500},
		FormationEnthalpy: -110522,
	})
	sp(kilnsim.O2, kilnsim.SpeciesProps{
		MolarMass: 31.998, ThermalConductivity: 71.55e-3,
		Viscosity: 49.12, DiffusionVolume: 16.3e-6,
		Cp:                hc{C0: 25.82, C1: 12.63e-3, C2: -0.36e-5, Tmin: 298, Tmax: 1100},
		FormationEnthalpy: 0,
	})
	sp(kilnsim.H2O, kilnsim.SpeciesProps{
		MolarMass: 18.015, ThermalConductivity: 95.877e-3,
		Viscosity: 37.615, DiffusionVolume: 13.1e-6,
		Cp:                hc{C0: 30.89, C1: 7.86e-3, C2: 0.25e-5, Tmin: 298, Tmax: 1500},
		FormationEnthalpy: -241820,
	})
	sp(kilnsim.H2, kilnsim.SpeciesProps{
		MolarMass: 2.016, ThermalConductivity: 459.7e-3,
		Viscosity: 20.73, DiffusionVolume: 6.12e-6,
		Cp:                hc{C0: 28.95, C1: -0.58e-3, C2: 0.19e-5, Tmin: 298, Tmax: 1500},
		FormationEnthalpy: 0,
	})
	sp(kilnsim.N2, kilnsim.SpeciesProps{
		MolarMass: 28.014, ThermalConductivity: 65.36e-3,
		Viscosity: 41.54, DiffusionVolume: 18.5e-6,
		Cp:                hc{C0: 27.31, C1: 5.19e-3, C2: -1.55e-9, Tmin: 298, Tmax: 1500},
		FormationEnthalpy: 0,
	})

	rx := func(j int, r kilnsim.Reaction) { c.Reactions[j] = r }
	rx(kilnsim.R1, kilnsim.Reaction{
		ID: "calcination", Enthalpy: 179170,
		PreExponential: 1e6, ActivationEnergy: 175700,
		Alpha:     [3]float64{1, 0, 0},
		Reactants: [3]int{kilnsim.CaCO3, -1, -1},
	})
	rx(kilnsim.R2, kilnsim.Reaction{
		ID: "belite formation", Enthalpy: -75220,
		PreExponential: 1e5, ActivationEnergy: 240000,
		Alpha:     [3]float64{2, 1, 0},
		Reactants: [3]int{kilnsim.CaO, kilnsim.SiO2, -1},
	})
	rx(kilnsim.R3, kilnsim.Reaction{
		ID: "alite formation", Enthalpy: 9920,
		PreExponential: 1e7, ActivationEnergy: 420000,
		Alpha:     [3]float64{1, 1, 0},
		Reactants: [3]int{kilnsim.CaO, kilnsim.C2S, -1},
	})
	rx(kilnsim.R4, kilnsim.Reaction{
		ID: "aluminate formation", Enthalpy: -1540,
		PreExponential: 1e6, ActivationEnergy: 310000,
		Alpha:     [3]float64{3, 1, 0},
		Reactants: [3]int{kilnsim.CaO, kilnsim.Al2O3, -1},
	})
	rx(kilnsim.R5, kilnsim.Reaction{
		ID: "ferrite formation", Enthalpy: 170880,
		PreExponential: 1e6, ActivationEnergy: 330000,
		Alpha:     [3]float64{4, 1, 1},
		Reactants: [3]int{kilnsim.CaO, kilnsim.Al2O3, kilnsim.Fe2O3},
	})
	rx(kilnsim.R6, kilnsim.Reaction{
		ID: "CO oxidation", Enthalpy: -565976,
		PreExponential: 7.0e4, ActivationEnergy: 66500,
		Alpha:     [3]float64{1, 1, 0},
		Reactants: [3]int{kilnsim.CO, kilnsim.O2, -1},
	})
	rx(kilnsim.R7, kilnsim.Reaction{
		ID: "water-gas shift", Enthalpy: -41168,
		PreExponential: 2.8e6, ActivationEnergy: 83700,
		Alpha:     [3]float64{1, 1, 0},
		Reactants: [3]int{kilnsim.CO, kilnsim.H2O, -1},
	})
	rx(kilnsim.R8, kilnsim.Reaction{
		ID: "hydrogen oxidation", Enthalpy: -483640,
		PreExponential: 1.4e6, TempExponent: 0.5, ActivationEnergy: 295500,
		Alpha:     [3]float64{1, 1, 0},
		Reactants: [3]int{kilnsim.H2, kilnsim.O2, -1},
	})
	rx(kilnsim.R9, kilnsim.Reaction{
		ID: "char partial oxidation", Enthalpy: -221044,
		PreExponential: 8.8e11, ActivationEnergy: 239000,
		Alpha:     [3]float64{0.5, 0.5, 0},
		Reactants: [3]int{kilnsim.CSus, kilnsim.O2, -1},
	})
	rx(kilnsim.R10, kilnsim.Reaction{
		ID: "steam gasification", Enthalpy: 131298,
		PreExponential: 2.6e8, ActivationEnergy: 237000,
		Beta2:     0.6,
		Reactants: [3]int{kilnsim.CSus, kilnsim.H2O, -1},
	})
	rx(kilnsim.R11, kilnsim.Reaction{
		ID: "Boudouard gasification", Enthalpy: 172466,
		PreExponential: 3.1e6, ActivationEnergy: 215000,
		Beta2:     0.4,
		Reactants: [3]int{kilnsim.CSus, kilnsim.CO2, -1},
	})

	c.WSGG = kilnsim.WSGGCoefficients{
		K1: [4]float64{0.055, 0.88, 10, 135},
		K2: [4]float64{0.012, -0.021, -1.6, -35},
		C1: [3][4]float64{
			{0.358, 0.392, 0.142, 0.0798},
			{0.0731, -0.212, -0.0831, -0.0370},
			{-0.0466, 0.0191, 0.0148, 0.0023},
		},
		C2: [3][4]float64{
			{0.165, 0.291, 0.348, 0.0866},
			{-0.0554, 0.644, -0.294, -0.106},
			{0.0930, -0.209, 0.0662, 0.0305},
		},
		C3: [3][4]float64{
			{0.0598, 0.0784, -0.122, -0.0127},
			{0.0028, -0.197, 0.118, 0.0169},
			{-0.0256, 0.0662, -0.0295, -0.0051},
		},
	}

	return c
}

// DefaultConfig returns the reference plant configuration: a three-segment
// preheater riser, a four-segment calciner, and a five-segment rotary kiln
// at one degree of incline, fed with limestone-dominated raw meal,
// combustion air, and coal dust.
func DefaultConfig() *kilnsim.ProcessConfig {
	return &kilnsim.ProcessConfig{
		Zones: []kilnsim.ZoneSpec{
			{
				Kind:     kilnsim.Preheater,
				Length:   1.5,
				Segments: 3,
				Radius:   0.08,
				Rules: kilnsim.RuleSet{
					Energy:              kilnsim.EnergyNone,
					SolidVelocity:       kilnsim.SolidVelocityFixed,
					FixedSolidVelocity:  0.4,
					GasVelocity:         kilnsim.GasVelocityFixed,
					HeatTransfer:        kilnsim.HeatTransferNone,
					ConstantComposition: true,
					SeedGasTemp:         1300,
					SeedSolidTemp:       600,
				},
			},
			{
				Kind:     kilnsim.Calciner,
				Length:   2.0,
				Segments: 4,
				Radius:   0.08,
				Rules: kilnsim.RuleSet{
					Energy:        kilnsim.EnergySingleLumped,
					SolidVelocity: kilnsim.SolidVelocityEqualToGas,
					GasVelocity:   kilnsim.GasVelocityPressureGradient,
					HeatTransfer:  kilnsim.HeatTransferPackedBed,
					Reactions: []int{
						kilnsim.R1, kilnsim.R6, kilnsim.R7, kilnsim.R8,
						kilnsim.R9, kilnsim.R10, kilnsim.R11,
					},
					SeedGasTemp:   1300,
					SeedSolidTemp: 900,
				},
			},
			{
				Kind:     kilnsim.Kiln,
				Length:   2.5,
				Segments: 5,
				Radius:   0.08,
				Incline:  1 * math.Pi / 180,
				Rules: kilnsim.RuleSet{
					Energy:        kilnsim.EnergyTwoPhaseSplit,
					SolidVelocity: kilnsim.SolidVelocityRotaryTransport,
					GasVelocity:   kilnsim.GasVelocityPressureGradient,
					HeatTransfer:  kilnsim.HeatTransferRotaryKiln,
					Reactions: []int{
						kilnsim.R1, kilnsim.R2, kilnsim.R3, kilnsim.R4,
						kilnsim.R5, kilnsim.R6, kilnsim.R7, kilnsim.R8,
						kilnsim.R9, kilnsim.R10, kilnsim.R11,
					},
					SeedGasTemp:   1400,
					SeedSolidTemp: 1200,
				},
			},
		},

		Solid: kilnsim.SolidFeed{
			Temperature: 600,
			// Sized against the fuel and air streams so the calcination duty
			// stays inside the heat the oxygen-limited char combustion can
			// release.
			Rate: 2,
			Composition: map[int]float64{
				kilnsim.CaCO3: 0.76,
				kilnsim.SiO2:  0.11,
				kilnsim.Al2O3: 0.04,
				kilnsim.Fe2O3: 0.02,
				kilnsim.C2S:   0.02,
			},
		},
		Gas: kilnsim.GasFeed{
			Temperature: 1300,
			MolarRate:   0.15,
			Velocity:    0.5,
			Composition: map[int]float64{
				kilnsim.O2:  0.18,
				kilnsim.N2:  0.65,
				kilnsim.CO2: 0.05,
				kilnsim.H2O: 0.02,
			},
		},
		Fuel: kilnsim.FuelFeed{
			// Char is matched to the oxygen the air stream brings, so the
			// heat release is combustion-limited rather than leaving unburnt
			// char to gasify endothermically in the kiln.
			Rate: 1.0,
			Composition: map[int]float64{
				kilnsim.CSus:  0.70,
				kilnsim.SiO2:  0.06,
				kilnsim.Al2O3: 0.05,
				kilnsim.Fe2O3: 0.04,
				kilnsim.CaO:   0.03,
				kilnsim.H2O:   0.06,
				kilnsim.CO:    0.02,
				kilnsim.H2:    0.02,
			},
		},

		Omega: 1.0,

		Newton: kilnsim.NewtonTunables{
			Guess:           math.Pi,
			Tolerance:       1e-6,
			MaxIter:         20,
			DerivativeFloor: 1e-9,
		},
		Solver: kilnsim.SolverTunables{
			Dt:        0.08,
			Tolerance: 1e-2,
			// The slowest relaxation mode is solid advection through the
			// kiln; the budget covers several of its residence times.
			MaxIterations: 50000,
			MinIterations: 10,
			Floor:         1e-12,
			TMin:          250,
			TMax:          2500,
			PMin:          1e4,
			PMax:          1e7,
			VgMax:         1.0,
		},
	}
}
