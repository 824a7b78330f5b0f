// ABOUTME: Data models for sizing inputs, outputs, and error conditions
// ABOUTME: JSON-serializable structures shared by the API, CLI, and TUI

package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when the production target is not a positive finite number
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidCalibrationData is returned when a performance point would cause a division fault
	ErrInvalidCalibrationData = errors.New("invalid calibration data")

	// ErrUnknownRevision is returned when a named formula revision does not exist
	ErrUnknownRevision = errors.New("unknown revision")

	// ErrInvalidConstants is returned when a formula revision would divide by zero
	// or invert the thermal model
	ErrInvalidConstants = errors.New("invalid formula constants")
)

// Range and option sets exposed by the calculator widgets
const (
	MinProduction     = 1.0  // L/day
	MaxProduction     = 50.0 // L/day
	DefaultProduction = 10.0 // L/day
	DefaultPurity     = 0.5  // % O2
	DefaultPressure   = 9.0  // bar(g)
)

// PurityOptions are the O2 purity tiers offered by the calculator
var PurityOptions = []float64{0.5, 1.0, 2.0, 3.0}

// PressureOptions are the feed pressure tiers offered by the calculator
var PressureOptions = []float64{5, 9, 11}

// SizingInputs represents the three user-controlled design parameters
type SizingInputs struct {
	TargetProductionLitersPerDay float64 `json:"target_production_l_per_day"`
	OxygenPurityPercent          float64 `json:"oxygen_purity_percent"`
	FeedPressureBar              float64 `json:"feed_pressure_bar"`
}

// DefaultSizingInputs returns the calculator's initial state
func DefaultSizingInputs() SizingInputs {
	return SizingInputs{
		TargetProductionLitersPerDay: DefaultProduction,
		OxygenPurityPercent:          DefaultPurity,
		FeedPressureBar:              DefaultPressure,
	}
}

// NitrogenPurity returns the nitrogen purity implied by the O2 setting
func (in SizingInputs) NitrogenPurity() float64 {
	return 100 - in.OxygenPurityPercent
}

// String returns a compact label like "10 L/day @ 99.5% N2, 9 bar"
func (in SizingInputs) String() string {
	return fmt.Sprintf("%g L/day @ %g%% N2, %g bar", in.TargetProductionLitersPerDay, in.NitrogenPurity(), in.FeedPressureBar)
}

// OperatingPoint records which calibration entry the engine resolved the inputs to
type OperatingPoint struct {
	RequestedPressureBar   float64 `json:"requested_pressure_bar"`
	PressureBar            float64 `json:"pressure_bar"`
	PressureFallback       bool    `json:"pressure_fallback"`
	RequestedPurityPercent float64 `json:"requested_purity_percent"`
	PurityPercent          float64 `json:"purity_percent"`
	NitrogenOutputLPM      float64 `json:"nitrogen_output_lpm"`
	AirConsumptionLPM      float64 `json:"air_consumption_lpm"`
}

// SizingBreakdown carries the intermediate quantities behind the headline numbers
type SizingBreakdown struct {
	RequiredN2FlowLPM    float64 `json:"required_n2_flow_lpm"`
	CompressorPowerKW    float64 `json:"compressor_power_kw"`
	CryoPowerKW          float64 `json:"cryo_power_kw"`
	CoolingLoadKW        float64 `json:"cooling_load_kw"`
	MassFlowKgPerSec     float64 `json:"mass_flow_kg_per_sec"`
	InletTempK           float64 `json:"inlet_temp_k"`
	ModuleUtilizationPct float64 `json:"module_utilization_pct"` // required flow / installed capacity
}

// SizingOutputs is the full engine result. Values keep full precision; use Display for rounding.
type SizingOutputs struct {
	TotalPowerKW     float64         `json:"total_power_kw"`
	FeedAirFlowLPM   float64         `json:"feed_air_flow_lpm"`
	ModuleCount      int             `json:"module_count"`
	CoolingLoadWatts float64         `json:"cooling_load_watts"`
	Breakdown        SizingBreakdown `json:"breakdown"`
	OperatingPoint   OperatingPoint  `json:"operating_point"`
}

// SizingRequest is the API payload: inputs plus an optional formula revision
type SizingRequest struct {
	SizingInputs
	Revision string `json:"revision,omitempty"`
}

// SizingResponse is the API payload returned for a single computation
type SizingResponse struct {
	Inputs   SizingInputs   `json:"inputs"`
	Revision string         `json:"revision"`
	Outputs  SizingOutputs  `json:"outputs"`
	Display  DisplayOutputs `json:"display"`
	Summary  string         `json:"summary"`
}

// BatchRequest holds independent sizing requests evaluated concurrently
type BatchRequest struct {
	Items []SizingRequest `json:"items"`
}

// BatchItemResult is one batch entry: either a response or an error message
type BatchItemResult struct {
	Index    int             `json:"index"`
	Response *SizingResponse `json:"response,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// BatchResponse preserves request order
type BatchResponse struct {
	Results   []BatchItemResult `json:"results"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
}

// Summary renders the configuration sentence shown under the result cards
func Summary(in SizingInputs, out SizingOutputs) string {
	d := Display(out)
	return fmt.Sprintf("To produce %g L/day of LN2 at %g%% purity, you need %d membrane module(s) operating at %g bar. "+
		"The estimated air consumption is %s LPM.",
		in.TargetProductionLitersPerDay, in.NitrogenPurity(), out.ModuleCount, out.OperatingPoint.PressureBar, d.FeedAirFlowLPM)
}
