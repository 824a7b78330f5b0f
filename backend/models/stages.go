// ABOUTME: Stage catalog for the liquefaction process presentation
// ABOUTME: Static spec tables per stage plus live metrics derived from a sizing result

package models

import "fmt"

// Placeholder is shown instead of a metric when no sizing result is available
const Placeholder = "—"

// SpecRow is one line of a stage's specification table
type SpecRow struct {
	Param string `json:"param"`
	Value string `json:"value"`
	Note  string `json:"note"`
}

// Metric is a live value shown on a stage card
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

// Stage is a card in the process flow
type Stage struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Subtitle    string    `json:"subtitle"`
	Color       string    `json:"color"` // blue, purple, orange, teal, cyan, slate
	Description string    `json:"description"`
	Controls    bool      `json:"controls"`
	Metrics     []Metric  `json:"metrics,omitempty"`
	Specs       []SpecRow `json:"specs,omitempty"`
}

// StageLink is a directed process stream between two stages
type StageLink struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
}

// StagesResponse is the API payload for the process flow
type StagesResponse struct {
	Inputs   SizingInputs `json:"inputs"`
	Revision string       `json:"revision"`
	Stages   []Stage      `json:"stages"`
	Links    []StageLink  `json:"links"`
	Error    string       `json:"error,omitempty"`
}

// StageLinks describes how gas moves between the stages
func StageLinks() []StageLink {
	return []StageLink{
		{From: "parameters", To: "air-handling", Label: "Air Feed"},
		{From: "parameters", To: "membrane", Label: "Control"},
		{From: "air-handling", To: "membrane", Label: "Compressed Air"},
		{From: "membrane", To: "recuperator", Label: "N₂ Rich Gas"},
		{From: "recuperator", To: "amr-stage-1", Label: "Pre-cooled N₂"},
		{From: "amr-stage-1", To: "amr-stage-2"},
		{From: "amr-stage-2", To: "amr-stage-3"},
		{From: "amr-stage-3", To: "liquefaction", Label: "Cold N₂"},
		{From: "liquefaction", To: "dewar", Label: "LN₂"},
		{From: "dewar", To: "recuperator", Label: "Boil-off"},
	}
}

// Stages builds the stage cards. out may be nil when the sizing failed; metric
// values then show the placeholder.
func Stages(in SizingInputs, out *SizingOutputs, c FormulaConstants) []Stage {
	metric := func(label string, value func(SizingOutputs) string, unit string) Metric {
		if out == nil {
			return Metric{Label: label, Value: Placeholder, Unit: unit}
		}
		return Metric{Label: label, Value: value(*out), Unit: unit}
	}
	fixed := func(decimals int, pick func(SizingOutputs) float64) func(SizingOutputs) string {
		return func(o SizingOutputs) string { return FormatFixed(pick(o), decimals) }
	}

	amrSpecs := func(material, curie string) []SpecRow {
		return []SpecRow{
			{Param: "Magnetic Field", Value: "1.5 - 2.0 Tesla", Note: "Halbach Array Permanent Magnets"},
			{Param: "Operating Frequency", Value: "1 - 4 Hz", Note: "Rotary or Reciprocating"},
			{Param: "MCM Material", Value: material, Note: curie},
			{Param: "Heat Transfer Fluid", Value: "Helium / Nitrogen", Note: "Pressurized 10-20 bar"},
		}
	}

	recuperatorState := "Bypassed"
	if c.RecuperatorEnabled {
		recuperatorState = fmt.Sprintf("%.0f%% effective", c.RecuperatorEffectiveness*100)
	}

	stage3Specs := append(amrSpecs("MnFeP-based", "Curie temperature ~120K"),
		SpecRow{Param: "Cold Tip Temp", Value: "77 K (-196°C)", Note: "Liquefaction point"})

	return []Stage{
		{
			ID:          "parameters",
			Title:       "Design Parameters",
			Subtitle:    "Sizing Inputs",
			Color:       "blue",
			Description: "Target production, nitrogen purity, and membrane feed pressure.",
			Controls:    true,
			Metrics: []Metric{
				{Label: "Production", Value: fmt.Sprintf("%g", in.TargetProductionLitersPerDay), Unit: "L/day"},
				{Label: "N₂ Purity", Value: fmt.Sprintf("%g", in.NitrogenPurity()), Unit: "%"},
				{Label: "Pressure", Value: fmt.Sprintf("%g", in.FeedPressureBar), Unit: "bar"},
			},
		},
		{
			ID:          "air-handling",
			Title:       "Front-End Air Handling",
			Subtitle:    "Process Air Preparation",
			Color:       "blue",
			Description: "Oil-free compression, drying, and filtration of ambient air ahead of the membrane.",
			Metrics: []Metric{
				metric("Feed Air Flow", fixed(AirFlowDecimals, func(o SizingOutputs) float64 { return o.FeedAirFlowLPM }), "LPM"),
				metric("Compressor Power", fixed(PowerDecimals, func(o SizingOutputs) float64 { return o.Breakdown.CompressorPowerKW }), "kW"),
				metric("Operating Pressure", func(o SizingOutputs) string { return fmt.Sprintf("%g", o.OperatingPoint.PressureBar) }, "bar"),
			},
			Specs: []SpecRow{
				{Param: "Compressor Type", Value: "Oil-Free Scroll / Screw", Note: "Class 0 Air Quality"},
				{Param: "Operating Pressure", Value: "8 - 10 bar(g)", Note: "Optimized for membrane efficiency"},
				{Param: "Dew Point Requirement", Value: "-40°C to -70°C", Note: "Prevents ice formation"},
				{Param: "Filtration", Value: "0.01 micron", Note: "Coalescing + Activated Carbon"},
				{Param: "CO₂ Removal", Value: "< 5 ppm", Note: "Via TSA or Molecular Sieve"},
			},
		},
		{
			ID:          "membrane",
			Title:       "Membrane Separation",
			Subtitle:    "Nitrogen Enrichment",
			Color:       "purple",
			Description: "Hollow-fiber modules in parallel strip oxygen from the compressed feed.",
			Metrics: []Metric{
				metric("Modules Required", func(o SizingOutputs) string { return fmt.Sprintf("%d", o.ModuleCount) }, "units"),
				{Label: "Model", Value: "MNH-1522A"},
				metric("Module Utilization", fixed(0, func(o SizingOutputs) float64 { return o.Breakdown.ModuleUtilizationPct }), "%"),
			},
			Specs: []SpecRow{
				{Param: "Membrane Model", Value: "MNH-1522A", Note: "Hollow Fiber Polyimide"},
				{Param: "Dimensions", Value: "Ø55mm x 588mm", Note: "Weight: 1.3 kg"},
				{Param: "Housing Material", Value: "AL-6063 Aluminum", Note: "Epoxy Potting"},
				{Param: "Connections", Value: "Rc1/2\" (In/Out)", Note: "Rc1/4\" Permeate"},
				{Param: "Feed Pressure", Value: "5 - 13 bar(g)", Note: "See Performance Table"},
				{Param: "Operating Temp", Value: "35°C Rated", Note: "Max 50°C"},
			},
		},
		{
			ID:          "recuperator",
			Title:       "Heat Recuperator",
			Subtitle:    "Counter-Flow Pre-Cooling",
			Color:       "teal",
			Description: "Cold boil-off from the Dewar pre-cools incoming nitrogen before the cryocooler.",
			Metrics: []Metric{
				{Label: "Status", Value: recuperatorState},
				metric("Cryocooler Inlet", fixed(0, func(o SizingOutputs) float64 { return o.Breakdown.InletTempK }), "K"),
			},
			Specs: []SpecRow{
				{Param: "Hot Stream", Value: "300K → ~180K", Note: "From membrane to cryocooler"},
				{Param: "Cold Stream", Value: "77K → ~250K", Note: "Dewar boil-off to vent"},
				{Param: "Effectiveness", Value: "80-85%", Note: "Counter-flow design target"},
			},
		},
		{
			ID:          "amr-stage-1",
			Title:       "Stage 1: 300K → 200K",
			Subtitle:    "Active Magnetic Regenerator",
			Color:       "orange",
			Description: "Gadolinium-alloy regenerator bed rejecting heat near ambient.",
			Specs:       amrSpecs("Gd-based Alloy", "Curie temperature ~290K"),
		},
		{
			ID:          "amr-stage-2",
			Title:       "Stage 2: 200K → 120K",
			Subtitle:    "Active Magnetic Regenerator",
			Color:       "orange",
			Description: "LaFeSi regenerator bed bridging the intermediate temperature span.",
			Specs:       amrSpecs("LaFeSi-based", "Curie temperature ~200K"),
		},
		{
			ID:          "amr-stage-3",
			Title:       "Stage 3: 120K → 80K",
			Subtitle:    "Active Magnetic Regenerator",
			Color:       "orange",
			Description: "MnFeP regenerator bed reaching the liquefaction temperature.",
			Metrics: []Metric{
				metric("Cooling Power", fixed(CoolingDecimals, func(o SizingOutputs) float64 { return o.CoolingLoadWatts }), "W"),
				metric("Cryo Power", fixed(PowerDecimals, func(o SizingOutputs) float64 { return o.Breakdown.CryoPowerKW }), "kW"),
				{Label: "Efficiency", Value: fmt.Sprintf("%g", c.CarnotEfficiencyPct), Unit: "% Carnot"},
			},
			Specs: stage3Specs,
		},
		{
			ID:          "liquefaction",
			Title:       "Liquefaction Output",
			Subtitle:    "Condenser at 77 K",
			Color:       "cyan",
			Description: "Nitrogen condenses on the cold tip and drains to storage.",
			Metrics: []Metric{
				{Label: "LN₂ Production", Value: fmt.Sprintf("%g", in.TargetProductionLitersPerDay), Unit: "L/day"},
				metric("Total Power", fixed(PowerDecimals, func(o SizingOutputs) float64 { return o.TotalPowerKW }), "kW"),
				{Label: "Operating Temp", Value: "77", Unit: "K"},
			},
			Specs: []SpecRow{
				{Param: "O₂ Monitoring", Value: "Required", Note: "Room oxygen depletion alarm"},
				{Param: "Relief Valves", Value: "Set @ 1.1x MAWP", Note: "Thermal expansion protection"},
				{Param: "Dewar Insulation", Value: "Vacuum Super-Insulation", Note: "Static evaporation < 1%/day"},
				{Param: "Ventilation", Value: "Forced Exhaust", Note: "For O₂-rich waste stream"},
			},
		},
		{
			ID:          "dewar",
			Title:       "Storage Dewar",
			Subtitle:    "Self-Pressurizing Vessel",
			Color:       "slate",
			Description: "Vacuum-jacketed storage fed continuously from the cold tip.",
			Specs: []SpecRow{
				{Param: "Capacity", Value: "50 Liters", Note: "LN₂ at 77K (-196°C)"},
				{Param: "Dimensions", Value: "Ø350mm x 650mm", Note: "30mm vacuum gap"},
				{Param: "Working Pressure", Value: "2 - 4 bar", Note: "Pressure build-up coil"},
				{Param: "Relief Valve", Value: "4.5 bar", Note: "Burst disc at 6 bar"},
				{Param: "Level Alarm", Value: "20% remaining", Note: "Low-level sensor"},
			},
		},
	}
}
