// ABOUTME: Tests for operating point ranking
// ABOUTME: Validates power-first ordering and rank assignment

package models

import "testing"

func TestRankOptions(t *testing.T) {
	options := []OperatingPointOption{
		{PressureBar: 5, TotalPowerKW: 2.1, ModuleCount: 4},
		{PressureBar: 11, TotalPowerKW: 1.8, ModuleCount: 1, FeedAirFlowLPM: 22.9},
		{PressureBar: 9, TotalPowerKW: 1.8, ModuleCount: 1, FeedAirFlowLPM: 17.4},
		{PressureBar: 9, TotalPowerKW: 1.8, ModuleCount: 2},
	}

	RankOptions(options)

	wantPressures := []float64{9, 11, 9, 5}
	wantModules := []int{1, 1, 2, 4}
	for i, opt := range options {
		if opt.Rank != i+1 {
			t.Errorf("Expected rank %d, got %d", i+1, opt.Rank)
		}
		if opt.PressureBar != wantPressures[i] || opt.ModuleCount != wantModules[i] {
			t.Errorf("Position %d: expected %g bar / %d modules, got %g bar / %d modules",
				i, wantPressures[i], wantModules[i], opt.PressureBar, opt.ModuleCount)
		}
	}
}

func TestRankOptions_Empty(t *testing.T) {
	var options []OperatingPointOption
	RankOptions(options)
	if len(options) != 0 {
		t.Errorf("Expected no options, got %d", len(options))
	}
}
