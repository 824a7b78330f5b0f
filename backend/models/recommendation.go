// ABOUTME: Operating point recommendations for a production target
// ABOUTME: Ranks calibrated pressure/purity combinations by total power

package models

import "sort"

// OperatingPointOption is one evaluated calibration entry
type OperatingPointOption struct {
	Rank             int     `json:"rank"`
	PressureBar      float64 `json:"pressure_bar"`
	PurityPercent    float64 `json:"purity_percent"`
	NitrogenPurity   float64 `json:"nitrogen_purity"`
	ModuleCount      int     `json:"module_count"`
	FeedAirFlowLPM   float64 `json:"feed_air_flow_lpm"`
	TotalPowerKW     float64 `json:"total_power_kw"`
	CoolingLoadWatts float64 `json:"cooling_load_watts"`
	Recovery         float64 `json:"recovery"` // N2 out / air in for one module
	Label            string  `json:"label"`    // e.g. "9 bar · 99.5% N2"
	Selected         bool    `json:"selected"` // matches the requested inputs
}

// RecommendationsResponse wraps the ranked options with context
type RecommendationsResponse struct {
	TargetProductionLitersPerDay float64                `json:"target_production_l_per_day"`
	MaxOxygenPurityPercent       float64                `json:"max_oxygen_purity_percent"`
	Revision                     string                 `json:"revision"`
	Options                      []OperatingPointOption `json:"options"`
	Cached                       bool                   `json:"cached"`
}

// RankOptions orders options by total power, then module count, then air flow,
// then pressure, and assigns 1-based ranks
func RankOptions(options []OperatingPointOption) {
	sort.SliceStable(options, func(i, j int) bool {
		a, b := options[i], options[j]
		if a.TotalPowerKW != b.TotalPowerKW {
			return a.TotalPowerKW < b.TotalPowerKW
		}
		if a.ModuleCount != b.ModuleCount {
			return a.ModuleCount < b.ModuleCount
		}
		if a.FeedAirFlowLPM != b.FeedAirFlowLPM {
			return a.FeedAirFlowLPM < b.FeedAirFlowLPM
		}
		return a.PressureBar < b.PressureBar
	})
	for i := range options {
		options[i].Rank = i + 1
	}
}
