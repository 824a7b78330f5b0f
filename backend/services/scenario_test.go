package services

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
)

func newTestService(t *testing.T) *SizingService {
	t.Helper()
	svc, err := NewSizingService(models.DefaultPerformanceTable(), models.RevisionBaseline)
	if err != nil {
		t.Fatalf("Failed to create sizing service: %v", err)
	}
	return svc
}

func TestCompare_RecuperatorScenario(t *testing.T) {
	calc := NewScenarioCalculator(newTestService(t))

	cmp, err := calc.Compare(RecuperatorScenario(models.DefaultSizingInputs()))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cmp.Baseline.Revision != models.RevisionBaseline {
		t.Errorf("Expected baseline revision, got %s", cmp.Baseline.Revision)
	}
	if cmp.Proposed.Revision != models.RevisionRecuperated {
		t.Errorf("Expected recuperated revision, got %s", cmp.Proposed.Revision)
	}
	if cmp.Delta.ModuleCount != 0 {
		t.Errorf("Expected same module count, got delta %d", cmp.Delta.ModuleCount)
	}
	if cmp.Delta.TotalPowerKW >= 0 {
		t.Errorf("Expected recuperated design to use less power, got delta %f", cmp.Delta.TotalPowerKW)
	}
	// (1.81854 - 0.99965) / 1.81854
	if math.Abs(cmp.Delta.PowerSavingsPct-45.03) > 0.01 {
		t.Errorf("Expected ~45.03%% savings, got %f", cmp.Delta.PowerSavingsPct)
	}
	if cmp.Delta.CoolingLoadWatts >= 0 {
		t.Errorf("Expected lower cooling load with recuperation, got delta %f", cmp.Delta.CoolingLoadWatts)
	}

	// Motor losses raise compressor power while recuperation cuts cryo power
	found := false
	for _, w := range cmp.Warnings {
		if strings.Contains(w.Message, "Compressor power rises") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected compressor/cryo tradeoff warning, got %+v", cmp.Warnings)
	}
}

func TestCompare_ProductionIncrease(t *testing.T) {
	calc := NewScenarioCalculator(newTestService(t))

	input := models.ScenarioInput{
		Baseline: models.SizingRequest{SizingInputs: models.DefaultSizingInputs()},
		Proposed: models.SizingRequest{SizingInputs: models.SizingInputs{
			TargetProductionLitersPerDay: 50,
			OxygenPurityPercent:          0.5,
			FeedPressureBar:              9,
		}},
	}

	cmp, err := calc.Compare(input)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cmp.Delta.ModuleCount != 5 {
		t.Errorf("Expected 5 additional modules, got %d", cmp.Delta.ModuleCount)
	}
	if cmp.Delta.PowerSavingsPct >= 0 {
		t.Errorf("Expected negative savings, got %f", cmp.Delta.PowerSavingsPct)
	}

	severities := map[string]bool{}
	for _, w := range cmp.Warnings {
		severities[w.Severity] = true
	}
	if !severities["critical"] {
		t.Errorf("Expected a critical power warning, got %+v", cmp.Warnings)
	}
}

func TestCompare_Errors(t *testing.T) {
	calc := NewScenarioCalculator(newTestService(t))

	_, err := calc.Compare(models.ScenarioInput{
		Baseline: models.SizingRequest{SizingInputs: models.DefaultSizingInputs()},
		Proposed: models.SizingRequest{SizingInputs: models.SizingInputs{TargetProductionLitersPerDay: -1}},
	})
	if !errors.Is(err, models.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
	if err != nil && !strings.HasPrefix(err.Error(), "proposed:") {
		t.Errorf("Expected error to name the proposed side, got %v", err)
	}

	_, err = calc.Compare(models.ScenarioInput{
		Baseline: models.SizingRequest{SizingInputs: models.DefaultSizingInputs(), Revision: "nope"},
		Proposed: models.SizingRequest{SizingInputs: models.DefaultSizingInputs()},
	})
	if !errors.Is(err, models.ErrUnknownRevision) {
		t.Errorf("Expected ErrUnknownRevision, got %v", err)
	}
}

func TestGenerateWarnings_PressureFallback(t *testing.T) {
	proposed := models.SizingOutputs{
		OperatingPoint: models.OperatingPoint{RequestedPressureBar: 7, PressureBar: 9, PressureFallback: true},
		Breakdown:      models.SizingBreakdown{ModuleUtilizationPct: 80},
	}

	warnings := GenerateWarnings(proposed, proposed)
	if len(warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %d: %+v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0].Message, "7 bar is not calibrated") {
		t.Errorf("Unexpected message: %s", warnings[0].Message)
	}
}
