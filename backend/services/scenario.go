// ABOUTME: Scenario comparison for what-if sizing analysis
// ABOUTME: Computes deltas and warnings between a baseline and a proposed configuration

package services

import (
	"fmt"

	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
)

// ScenarioCalculator compares two sizing requests
type ScenarioCalculator struct {
	service *SizingService
}

// NewScenarioCalculator creates a new calculator
func NewScenarioCalculator(service *SizingService) *ScenarioCalculator {
	return &ScenarioCalculator{service: service}
}

// RecuperatorScenario compares the baseline and recuperated revisions at the same inputs
func RecuperatorScenario(in models.SizingInputs) models.ScenarioInput {
	return models.ScenarioInput{
		Baseline: models.SizingRequest{SizingInputs: in, Revision: models.RevisionBaseline},
		Proposed: models.SizingRequest{SizingInputs: in, Revision: models.RevisionRecuperated},
	}
}

// Compare computes both sides and the proposed-minus-baseline delta
func (c *ScenarioCalculator) Compare(input models.ScenarioInput) (models.ScenarioComparison, error) {
	baseline, err := c.service.Size(input.Baseline)
	if err != nil {
		return models.ScenarioComparison{}, fmt.Errorf("baseline: %w", err)
	}
	proposed, err := c.service.Size(input.Proposed)
	if err != nil {
		return models.ScenarioComparison{}, fmt.Errorf("proposed: %w", err)
	}

	b, p := baseline.Outputs, proposed.Outputs
	delta := models.ScenarioDelta{
		TotalPowerKW:      p.TotalPowerKW - b.TotalPowerKW,
		CompressorPowerKW: p.Breakdown.CompressorPowerKW - b.Breakdown.CompressorPowerKW,
		CryoPowerKW:       p.Breakdown.CryoPowerKW - b.Breakdown.CryoPowerKW,
		FeedAirFlowLPM:    p.FeedAirFlowLPM - b.FeedAirFlowLPM,
		ModuleCount:       p.ModuleCount - b.ModuleCount,
		CoolingLoadWatts:  p.CoolingLoadWatts - b.CoolingLoadWatts,
	}
	if b.TotalPowerKW > 0 {
		delta.PowerSavingsPct = (b.TotalPowerKW - p.TotalPowerKW) / b.TotalPowerKW * 100
	}

	return models.ScenarioComparison{
		Baseline: toScenarioResult(baseline),
		Proposed: toScenarioResult(proposed),
		Delta:    delta,
		Warnings: GenerateWarnings(b, p),
	}, nil
}

func toScenarioResult(r models.SizingResponse) models.ScenarioResult {
	return models.ScenarioResult{
		Inputs:   r.Inputs,
		Revision: r.Revision,
		Outputs:  r.Outputs,
		Display:  r.Display,
	}
}

// GenerateWarnings flags tradeoffs in the proposed configuration
func GenerateWarnings(baseline, proposed models.SizingOutputs) []models.ScenarioWarning {
	var warnings []models.ScenarioWarning

	if proposed.OperatingPoint.PressureFallback {
		warnings = append(warnings, models.ScenarioWarning{
			Severity: "warning",
			Message: fmt.Sprintf("Feed pressure %g bar is not calibrated; sized at %g bar",
				proposed.OperatingPoint.RequestedPressureBar, proposed.OperatingPoint.PressureBar),
		})
	}

	// Module utilization warnings
	if proposed.Breakdown.ModuleUtilizationPct < 50 {
		warnings = append(warnings, models.ScenarioWarning{
			Severity: "info",
			Message:  "Membrane bank is less than half utilized",
		})
	}

	// Power warnings
	if proposed.TotalPowerKW > baseline.TotalPowerKW*1.25 {
		warnings = append(warnings, models.ScenarioWarning{
			Severity: "critical",
			Message:  "Proposed configuration draws over 25% more power",
		})
	} else if proposed.TotalPowerKW > baseline.TotalPowerKW {
		warnings = append(warnings, models.ScenarioWarning{
			Severity: "warning",
			Message:  "Proposed configuration draws more power",
		})
	}

	if proposed.ModuleCount > baseline.ModuleCount {
		warnings = append(warnings, models.ScenarioWarning{
			Severity: "warning",
			Message:  fmt.Sprintf("Requires %d additional membrane module(s)", proposed.ModuleCount-baseline.ModuleCount),
		})
	}

	if proposed.Breakdown.CompressorPowerKW > baseline.Breakdown.CompressorPowerKW &&
		proposed.Breakdown.CryoPowerKW < baseline.Breakdown.CryoPowerKW {
		warnings = append(warnings, models.ScenarioWarning{
			Severity: "info",
			Message:  "Compressor power rises while cryocooler power falls",
		})
	}

	return warnings
}
