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

	"gonum.org/v1/gonum/mat"
)

// Physical constants.
const (
	GasConstant     = 8.314    // [J/(mol·K)]
	StefanBoltzmann = 5.67e-8  // [W/(m²·K⁴)]
	T0              = 298.15   // thermodynamic reference temperature [K]
	P0              = 101325.0 // standard pressure [Pa]
	Tref            = 1200.0   // WSGG reference temperature [K]
)

// Indices of individual species in concentration arrays. Solid phase first,
// then gas phase; NumSolids is the first gas index.
const (
	CaCO3 = iota
	CaO
	SiO2
	Al2O3
	Fe2O3
	C2S
	C3S
	C3A
	C4AF
	CSus
	CO2
	CO
	O2
	H2O
	H2
	N2

	NumSpecies
)

// NumSolids is the number of solid-phase species; species with index
// >= NumSolids are gas-phase.
const NumSolids = CSus

// SpeciesNames are the names of the species tracked by the model, in
// concentration-array order.
var SpeciesNames = []string{
	"CaCO3", "CaO", "SiO2", "Al2O3", "Fe2O3", "C2S", "C3S", "C3A", "C4AF",
	"C_sus", "CO2", "CO", "O2", "H2O", "H2", "N2",
}

// Indices of individual reactions in rate arrays and in the columns of the
// stoichiometric matrix.
const (
	R1 = iota // CaCO3 → CaO + CO2
	R2        // 2CaO + SiO2 → C2S
	R3        // CaO + C2S → C3S
	R4        // 3CaO + Al2O3 → C3A
	R5        // 4CaO + Al2O3 + Fe2O3 → C4AF
	R6        // 2CO + O2 → 2CO2
	R7        // CO + H2O → CO2 + H2
	R8        // 2H2 + O2 → 2H2O
	R9        // 2C + O2 → 2CO
	R10       // C + H2O → CO + H2
	R11       // C + CO2 → 2CO

	NumReactions
)

// NumSolidReactions is the number of leading reactions that act on the solid
// phase (clinker formation); the remainder are gas-phase combustion
// reactions.
const NumSolidReactions = R6

// HeatCapacity is a temperature polynomial for molar heat capacity,
// cp(T) = C0 + C1·T + C2·T² [J/(mol·K)], valid on [Tmin, Tmax].
type HeatCapacity struct {
	C0, C1, C2 float64
	Tmin, Tmax float64
}

// SpeciesProps holds the immutable physical and thermodynamic constants for
// one species. Solid species carry Density; gas species carry Viscosity and
// DiffusionVolume.
type SpeciesProps struct {
	Name                string
	MolarMass           float64 `desc:"Molar mass" units:"g mol⁻¹"`
	Density             float64 `desc:"Solid density" units:"g m⁻³"`
	ThermalConductivity float64 `desc:"Thermal conductivity" units:"W m⁻¹ K⁻¹"`
	Viscosity           float64 `desc:"Gas viscosity" units:"μPa s"`
	DiffusionVolume     float64 `desc:"Fuller diffusion volume" units:"cm³"`
	Cp                  HeatCapacity
	FormationEnthalpy   float64 `desc:"Standard formation enthalpy" units:"J mol⁻¹"`
}

// Reaction holds one Arrhenius rate law,
//
//	r = kr·Tⁿ·exp(−EA/(R·T))·P₂^β₂·∏ C_k^α_k,
//
// where the concentration exponents Alpha are matched positionally to the
// ordered Reactants and β₂ applies to the partial pressure of the second
// reactant. Reactant ordering is significant and fixed per reaction;
// unused reactant slots hold -1.
type Reaction struct {
	ID               string
	Enthalpy         float64 `desc:"Reaction enthalpy" units:"J mol⁻¹"`
	PreExponential   float64
	TempExponent     float64
	ActivationEnergy float64 `units:"J mol⁻¹"`
	Alpha            [3]float64
	Beta2            float64
	Reactants        [3]int
}

// WSGGCoefficients are the weighted-sum-of-gray-gases model coefficients:
// four gray gases with absorption coefficients k_j = K1_j + K2_j·(xH2O/xCO2)
// and temperature-polynomial weights built from the C1/C2/C3 tables.
type WSGGCoefficients struct {
	K1, K2     [4]float64
	C1, C2, C3 [3][4]float64
}

// PropertyCatalog is the immutable table of per-species constants, the
// stoichiometric matrix, the reaction-rate table, and the bulk transport
// parameters. It is consumed read-only by every science step.
type PropertyCatalog struct {
	Species [NumSpecies]SpeciesProps

	// Stoich is the NumSpecies × NumReactions stoichiometric matrix;
	// negative entries are consumed, positive produced.
	Stoich *mat.Dense

	Reactions [NumReactions]Reaction

	WSGG WSGGCoefficients

	GasViscosity      float64 `desc:"Mean gas viscosity" units:"g m⁻¹ s⁻¹"`
	SolidConductivity float64 `desc:"Bulk solid thermal conductivity" units:"W m⁻¹ K⁻¹"`
	ParticleDiameter  float64 `desc:"Mean particle diameter" units:"m"`
	SolidEmissivity   float64 `desc:"Solid surface emissivity" units:"-"`
	H2OCO2Ratio       float64 `desc:"xH2O/xCO2 ratio used by the WSGG fit" units:"-"`
	ReposeSlope       float64 `desc:"Angle-of-repose slope coefficient" units:"s rad⁻¹"`
	ReposeIntercept   float64 `desc:"Angle-of-repose intercept" units:"rad"`
}

// Cp returns the molar heat capacity of species i at temperature T
// [J/(mol·K)].
func (pc *PropertyCatalog) Cp(i int, T float64) float64 {
	h := pc.Species[i].Cp
	return h.C0 + h.C1*T + h.C2*T*T
}

// EnthalpyIntegral returns ∫_{T0}^{T} cp_i(τ)dτ [J/mol].
func (pc *PropertyCatalog) EnthalpyIntegral(i int, T float64) float64 {
	h := pc.Species[i].Cp
	return h.C0*(T-T0) + 0.5*h.C1*(T*T-T0*T0) + h.C2/3*(T*T*T-T0*T0*T0)
}

// MolarEnthalpy returns the molar enthalpy of species i at temperature T:
// standard formation enthalpy plus the temperature-integrated heat capacity
// [J/mol].
func (pc *PropertyCatalog) MolarEnthalpy(i int, T float64) float64 {
	return pc.Species[i].FormationEnthalpy + pc.EnthalpyIntegral(i, T)
}

// GasDensity returns the gas mass density Σ M_i·C_i over the gas-phase
// species of conc [g/m³].
func (pc *PropertyCatalog) GasDensity(conc []float64) float64 {
	var ρ float64
	for i := NumSolids; i < NumSpecies; i++ {
		ρ += pc.Species[i].MolarMass * conc[i]
	}
	return ρ
}

// SolidMassDensity returns the solid mass density Σ M_i·C_i over the
// solid-phase species of conc [g/m³].
func (pc *PropertyCatalog) SolidMassDensity(conc []float64) float64 {
	var ρ float64
	for i := 0; i < NumSolids; i++ {
		ρ += pc.Species[i].MolarMass * conc[i]
	}
	return ρ
}

// TotalGasConcentration returns Σ C_i over the gas-phase species [mol/m³].
func TotalGasConcentration(conc []float64) float64 {
	var cg float64
	for i := NumSolids; i < NumSpecies; i++ {
		cg += conc[i]
	}
	return cg
}

// ReactionMassImbalance returns Σ ν_ij·M_i for reaction column j [g/mol].
// A mass-balanced stoichiometric matrix yields ≈0 for every column.
func (pc *PropertyCatalog) ReactionMassImbalance(j int) float64 {
	var sum float64
	for i := 0; i < NumSpecies; i++ {
		sum += pc.Stoich.At(i, j) * pc.Species[i].MolarMass
	}
	return sum
}

// Check validates the catalog's internal consistency: dimensions of the
// stoichiometric matrix, positive molar masses, reactant indices in range.
func (pc *PropertyCatalog) Check() error {
	if pc.Stoich == nil {
		return fmt.Errorf("kilnsim: catalog is missing a stoichiometric matrix")
	}
	r, cols := pc.Stoich.Dims()
	if r != NumSpecies || cols != NumReactions {
		return fmt.Errorf("kilnsim: stoichiometric matrix is %d×%d; want %d×%d",
			r, cols, NumSpecies, NumReactions)
	}
	for i, sp := range pc.Species {
		if sp.MolarMass <= 0 {
			return fmt.Errorf("kilnsim: species %s has non-positive molar mass %g",
				SpeciesNames[i], sp.MolarMass)
		}
	}
	for _, rxn := range pc.Reactions {
		for _, k := range rxn.Reactants {
			if k >= NumSpecies {
				return fmt.Errorf("kilnsim: reaction %s reactant index %d out of range", rxn.ID, k)
			}
		}
	}
	return nil
}
