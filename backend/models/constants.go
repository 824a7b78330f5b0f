// ABOUTME: Formula constants for the sizing engine and their named revisions
// ABOUTME: Consolidates the baseline and recuperated estimates into one configuration struct

package models

import (
	"fmt"
	"sort"
)

// Physical constants of nitrogen and the process envelope
const (
	LiquidToGasExpansionRatio = 696.0  // L gas at STP per L LN2
	LN2DensityKgPerL          = 0.808  // kg/L
	LatentHeatKJPerKg         = 199.0  // kJ/kg at 77 K
	SpecificHeatKJPerKgK      = 1.04   // kJ/(kg·K), gaseous N2
	AmbientTempK              = 300.0  // K
	SaturationTempK           = 77.0   // K at 1 atm
	LPMPerCFM                 = 28.3   // L/min per ft³/min
	MinutesPerDay             = 1440.0 // min
	SecondsPerDay             = 86400.0
	HoursPerDay               = 24.0
)

// Revision names
const (
	RevisionBaseline    = "baseline"
	RevisionRecuperated = "recuperated"
)

// FormulaConstants parameterizes the closed-form estimate
type FormulaConstants struct {
	ExpansionRatio             float64 `json:"expansion_ratio"`
	LPMPerCFM                  float64 `json:"lpm_per_cfm"`
	CompressorKWPerCFM         float64 `json:"compressor_kw_per_cfm"`
	MotorLossFactor            float64 `json:"motor_loss_factor"`
	IdealSpecificEnergyKWhPerL float64 `json:"ideal_specific_energy_kwh_per_l"`
	CarnotEfficiencyPct        float64 `json:"carnot_efficiency_pct"`
	RecuperatorEnabled         bool    `json:"recuperator_enabled"`
	RecuperatorEffectiveness   float64 `json:"recuperator_effectiveness"`
	LiquidDensityKgPerL        float64 `json:"liquid_density_kg_per_l"`
	LatentHeatKJPerKg          float64 `json:"latent_heat_kj_per_kg"`
	SpecificHeatKJPerKgK       float64 `json:"specific_heat_kj_per_kg_k"`
	AmbientTempK               float64 `json:"ambient_temp_k"`
	SaturationTempK            float64 `json:"saturation_temp_k"`
}

// BaselineConstants matches the original calculator: 0.5 kWh/L ideal work, no motor
// losses, and no heat recuperation
func BaselineConstants() FormulaConstants {
	return FormulaConstants{
		ExpansionRatio:             LiquidToGasExpansionRatio,
		LPMPerCFM:                  LPMPerCFM,
		CompressorKWPerCFM:         0.35,
		MotorLossFactor:            1.0,
		IdealSpecificEnergyKWhPerL: 0.5,
		CarnotEfficiencyPct:        15,
		RecuperatorEnabled:         false,
		RecuperatorEffectiveness:   0,
		LiquidDensityKgPerL:        LN2DensityKgPerL,
		LatentHeatKJPerKg:          LatentHeatKJPerKg,
		SpecificHeatKJPerKgK:       SpecificHeatKJPerKgK,
		AmbientTempK:               AmbientTempK,
		SaturationTempK:            SaturationTempK,
	}
}

// RecuperatedConstants models the later design: tighter ideal work figure, 15% motor
// losses, and a counter-flow recuperator pre-cooling the feed with boil-off gas
func RecuperatedConstants() FormulaConstants {
	c := BaselineConstants()
	c.MotorLossFactor = 1.15
	c.IdealSpecificEnergyKWhPerL = 0.28
	c.RecuperatorEnabled = true
	c.RecuperatorEffectiveness = 0.35
	return c
}

// Revisions returns every named revision
func Revisions() map[string]FormulaConstants {
	return map[string]FormulaConstants{
		RevisionBaseline:    BaselineConstants(),
		RevisionRecuperated: RecuperatedConstants(),
	}
}

// RevisionNames lists revision names in stable order
func RevisionNames() []string {
	names := make([]string, 0, 2)
	for name := range Revisions() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupRevision resolves a revision name; empty selects the baseline
func LookupRevision(name string) (FormulaConstants, error) {
	if name == "" {
		return BaselineConstants(), nil
	}
	c, ok := Revisions()[name]
	if !ok {
		return FormulaConstants{}, fmt.Errorf("%w: %q", ErrUnknownRevision, name)
	}
	return c, nil
}

// RecuperatorFactor is the fraction of cryocooler power still required after recuperation
func (c FormulaConstants) RecuperatorFactor() float64 {
	if !c.RecuperatorEnabled {
		return 1
	}
	return 1 - c.RecuperatorEffectiveness
}

// InletTempK is the gas temperature entering the cryocooler
func (c FormulaConstants) InletTempK() float64 {
	if !c.RecuperatorEnabled {
		return c.AmbientTempK
	}
	return c.AmbientTempK - c.RecuperatorEffectiveness*(c.AmbientTempK-c.SaturationTempK)
}

// Validate rejects constants that would divide by zero or invert the thermal model
func (c FormulaConstants) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"expansion_ratio", c.ExpansionRatio},
		{"lpm_per_cfm", c.LPMPerCFM},
		{"compressor_kw_per_cfm", c.CompressorKWPerCFM},
		{"motor_loss_factor", c.MotorLossFactor},
		{"ideal_specific_energy_kwh_per_l", c.IdealSpecificEnergyKWhPerL},
		{"carnot_efficiency_pct", c.CarnotEfficiencyPct},
		{"liquid_density_kg_per_l", c.LiquidDensityKgPerL},
		{"latent_heat_kj_per_kg", c.LatentHeatKJPerKg},
		{"specific_heat_kj_per_kg_k", c.SpecificHeatKJPerKgK},
		{"saturation_temp_k", c.SaturationTempK},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidConstants, p.name, p.value)
		}
	}
	if c.CarnotEfficiencyPct > 100 {
		return fmt.Errorf("%w: carnot_efficiency_pct must not exceed 100, got %g", ErrInvalidConstants, c.CarnotEfficiencyPct)
	}
	if c.AmbientTempK <= c.SaturationTempK {
		return fmt.Errorf("%w: ambient_temp_k (%g) must exceed saturation_temp_k (%g)", ErrInvalidConstants, c.AmbientTempK, c.SaturationTempK)
	}
	if c.RecuperatorEnabled && (c.RecuperatorEffectiveness < 0 || c.RecuperatorEffectiveness >= 1) {
		return fmt.Errorf("%w: recuperator_effectiveness must be in [0, 1), got %g", ErrInvalidConstants, c.RecuperatorEffectiveness)
	}
	return nil
}
