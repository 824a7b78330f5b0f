// ABOUTME: Display formatting for sizing outputs at fixed decimal precision
// ABOUTME: Rounds once through strconv so parsing the strings back is drift-free

package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Display precision per metric
const (
	PowerDecimals   = 2
	AirFlowDecimals = 1
	CoolingDecimals = 1
)

// DisplayOutputs holds the four headline numbers as display strings (no units)
type DisplayOutputs struct {
	TotalPowerKW     string `json:"total_power_kw"`
	FeedAirFlowLPM   string `json:"feed_air_flow_lpm"`
	ModuleCount      string `json:"module_count"`
	CoolingLoadWatts string `json:"cooling_load_watts"`
}

// Display rounds the headline numbers for presentation
func Display(out SizingOutputs) DisplayOutputs {
	return DisplayOutputs{
		TotalPowerKW:     FormatFixed(out.TotalPowerKW, PowerDecimals),
		FeedAirFlowLPM:   FormatFixed(out.FeedAirFlowLPM, AirFlowDecimals),
		ModuleCount:      strconv.Itoa(out.ModuleCount),
		CoolingLoadWatts: FormatFixed(out.CoolingLoadWatts, CoolingDecimals),
	}
}

// FormatFixed formats v with exactly decimals digits after the point
func FormatFixed(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// Round rounds v to decimals digits using the same rule as FormatFixed
func Round(v float64, decimals int) float64 {
	r, err := strconv.ParseFloat(FormatFixed(v, decimals), 64)
	if err != nil {
		return v
	}
	return r
}

// RoundedOutputs is the numeric form of DisplayOutputs
type RoundedOutputs struct {
	TotalPowerKW     float64
	FeedAirFlowLPM   float64
	ModuleCount      int
	CoolingLoadWatts float64
}

// ParseDisplay recovers the numeric values from display strings. Unit suffixes
// such as " kW" are ignored.
func ParseDisplay(d DisplayOutputs) (RoundedOutputs, error) {
	var r RoundedOutputs
	var err error

	if r.TotalPowerKW, err = parseNumber(d.TotalPowerKW); err != nil {
		return RoundedOutputs{}, fmt.Errorf("total power: %w", err)
	}
	if r.FeedAirFlowLPM, err = parseNumber(d.FeedAirFlowLPM); err != nil {
		return RoundedOutputs{}, fmt.Errorf("feed air flow: %w", err)
	}
	modules, err := parseNumber(d.ModuleCount)
	if err != nil {
		return RoundedOutputs{}, fmt.Errorf("module count: %w", err)
	}
	r.ModuleCount = int(modules)
	if r.CoolingLoadWatts, err = parseNumber(d.CoolingLoadWatts); err != nil {
		return RoundedOutputs{}, fmt.Errorf("cooling load: %w", err)
	}
	return r, nil
}

func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		s = s[:i]
	}
	return strconv.ParseFloat(s, 64)
}
