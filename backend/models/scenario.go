// ABOUTME: Data models for what-if comparison between two sizing scenarios
// ABOUTME: Supports baseline vs proposed revision and input changes

package models

// ScenarioInput names the two sizing requests being compared
type ScenarioInput struct {
	Baseline SizingRequest `json:"baseline"`
	Proposed SizingRequest `json:"proposed"`
}

// ScenarioResult is one side of a comparison
type ScenarioResult struct {
	Inputs   SizingInputs   `json:"inputs"`
	Revision string         `json:"revision"`
	Outputs  SizingOutputs  `json:"outputs"`
	Display  DisplayOutputs `json:"display"`
}

// ScenarioWarning represents a tradeoff worth surfacing
type ScenarioWarning struct {
	Severity string `json:"severity"` // "info", "warning", "critical"
	Message  string `json:"message"`
}

// ScenarioDelta is proposed minus baseline
type ScenarioDelta struct {
	TotalPowerKW      float64 `json:"total_power_kw"`
	CompressorPowerKW float64 `json:"compressor_power_kw"`
	CryoPowerKW       float64 `json:"cryo_power_kw"`
	FeedAirFlowLPM    float64 `json:"feed_air_flow_lpm"`
	ModuleCount       int     `json:"module_count"`
	CoolingLoadWatts  float64 `json:"cooling_load_watts"`
	PowerSavingsPct   float64 `json:"power_savings_pct"` // positive when proposed uses less power
}

// ScenarioComparison represents full comparison response
type ScenarioComparison struct {
	Baseline ScenarioResult    `json:"baseline"`
	Proposed ScenarioResult    `json:"proposed"`
	Delta    ScenarioDelta     `json:"delta"`
	Warnings []ScenarioWarning `json:"warnings"`
}
