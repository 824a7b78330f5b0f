// ABOUTME: Sizing engine that turns a production target into equipment estimates
// ABOUTME: Resolves a calibrated membrane operating point and applies the closed-form energy model

package services

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
)

// maxModuleCount bounds the module array so the count always fits an int
const maxModuleCount = math.MaxInt32

// SizingCalculator computes sizing outputs against one calibration table and one
// set of formula constants. It holds no mutable state and is safe for concurrent use.
type SizingCalculator struct {
	table     models.PerformanceTable
	constants models.FormulaConstants
}

// NewSizingCalculator creates a calculator. The table is copied so later changes by
// the caller are not observed.
func NewSizingCalculator(table models.PerformanceTable, constants models.FormulaConstants) *SizingCalculator {
	return &SizingCalculator{
		table:     table.Clone(),
		constants: constants,
	}
}

// WithConstants returns a calculator sharing the table but using different constants
func (c *SizingCalculator) WithConstants(constants models.FormulaConstants) *SizingCalculator {
	return &SizingCalculator{table: c.table, constants: constants}
}

// Table returns a copy of the calibration table
func (c *SizingCalculator) Table() models.PerformanceTable {
	return c.table.Clone()
}

// Constants returns the formula constants in use
func (c *SizingCalculator) Constants() models.FormulaConstants {
	return c.constants
}

// Compute sizes the system for the given inputs. Either a complete result or an
// error wrapping models.ErrInvalidInput / models.ErrInvalidCalibrationData is returned.
//
// Module throughput is assumed to scale linearly with count. No manifold loss
// factor is applied, so large arrays are an approximation.
func (c *SizingCalculator) Compute(in models.SizingInputs) (models.SizingOutputs, error) {
	production := in.TargetProductionLitersPerDay
	if production <= 0 || math.IsNaN(production) || math.IsInf(production, 0) {
		return models.SizingOutputs{}, fmt.Errorf("%w: target production must be a positive number of L/day, got %g",
			models.ErrInvalidInput, production)
	}

	k := c.constants

	// Step 1: gaseous nitrogen flow needed to make the target liquid volume
	requiredLPM := production * k.ExpansionRatio / models.MinutesPerDay

	// Step 2: calibrated operating point
	row, fallback, err := c.table.Resolve(in.FeedPressureBar)
	if err != nil {
		return models.SizingOutputs{}, err
	}
	if fallback {
		slog.Debug("Pressure tier not calibrated, using default tier",
			"requested_bar", in.FeedPressureBar,
			"default_bar", float64(c.table.DefaultPressure))
	}
	point, ok := row.Nearest(in.OxygenPurityPercent)
	if !ok {
		return models.SizingOutputs{}, fmt.Errorf("%w: pressure tier %g bar has no purity points",
			models.ErrInvalidCalibrationData, float64(row.PressureBar))
	}
	if !(point.NitrogenOutputLPM > 0) || !(point.AirConsumptionLPM > 0) {
		return models.SizingOutputs{}, fmt.Errorf("%w: point at %g bar / %g%% O2 has non-positive throughput (N2 %g, air %g LPM)",
			models.ErrInvalidCalibrationData, float64(row.PressureBar), float64(point.PurityPercent),
			point.NitrogenOutputLPM, point.AirConsumptionLPM)
	}

	// Step 3: modules in parallel, assuming throughput scales linearly with count
	moduleQuotient := math.Ceil(requiredLPM / point.NitrogenOutputLPM)
	if moduleQuotient > maxModuleCount {
		return models.SizingOutputs{}, fmt.Errorf("%w: target production %g L/day needs more than %d membrane modules",
			models.ErrInvalidInput, production, maxModuleCount)
	}
	modules := int(moduleQuotient)
	if modules < 1 {
		modules = 1
	}

	// Step 4: feed air
	airLPM := float64(modules) * point.AirConsumptionLPM

	// Step 5: compressor electrical power
	compressorKW := airLPM / k.LPMPerCFM * k.CompressorKWPerCFM * k.MotorLossFactor

	// Step 6: magnetocaloric cryocooler power
	cryoKW := k.IdealSpecificEnergyKWhPerL / (k.CarnotEfficiencyPct / 100) * production / models.HoursPerDay * k.RecuperatorFactor()

	// Step 7
	totalKW := compressorKW + cryoKW

	// Step 8: heat removed from the gas between cryocooler inlet and liquid
	massFlow := production * k.LiquidDensityKgPerL / models.SecondsPerDay
	inletT := k.InletTempK()
	coolingKW := massFlow * (k.LatentHeatKJPerKg + k.SpecificHeatKJPerKgK*(inletT-k.SaturationTempK))

	out := models.SizingOutputs{
		TotalPowerKW:     totalKW,
		FeedAirFlowLPM:   airLPM,
		ModuleCount:      modules,
		CoolingLoadWatts: coolingKW * 1000,
		Breakdown: models.SizingBreakdown{
			RequiredN2FlowLPM:    requiredLPM,
			CompressorPowerKW:    compressorKW,
			CryoPowerKW:          cryoKW,
			CoolingLoadKW:        coolingKW,
			MassFlowKgPerSec:     massFlow,
			InletTempK:           inletT,
			ModuleUtilizationPct: requiredLPM / (float64(modules) * point.NitrogenOutputLPM) * 100,
		},
		OperatingPoint: models.OperatingPoint{
			RequestedPressureBar:   in.FeedPressureBar,
			PressureBar:            float64(row.PressureBar),
			PressureFallback:       fallback,
			RequestedPurityPercent: in.OxygenPurityPercent,
			PurityPercent:          float64(point.PurityPercent),
			NitrogenOutputLPM:      point.NitrogenOutputLPM,
			AirConsumptionLPM:      point.AirConsumptionLPM,
		},
	}
	return out, nil
}

// SizingService resolves named revisions on top of a shared calibration table
type SizingService struct {
	calc            *SizingCalculator
	revisions       map[string]models.FormulaConstants
	defaultRevision string
}

// NewSizingService creates a service. An empty default revision selects the baseline.
func NewSizingService(table models.PerformanceTable, defaultRevision string) (*SizingService, error) {
	return newSizingService(table, defaultRevision, models.Revisions())
}

// newSizingService validates every revision up front so no calculator it hands out
// can divide by zero
func newSizingService(table models.PerformanceTable, defaultRevision string, revisions map[string]models.FormulaConstants) (*SizingService, error) {
	if defaultRevision == "" {
		defaultRevision = models.RevisionBaseline
	}
	for name, constants := range revisions {
		if err := constants.Validate(); err != nil {
			return nil, fmt.Errorf("revision %s: %w", name, err)
		}
	}
	constants, ok := revisions[defaultRevision]
	if !ok {
		return nil, fmt.Errorf("%w: %q", models.ErrUnknownRevision, defaultRevision)
	}
	return &SizingService{
		calc:            NewSizingCalculator(table, constants),
		revisions:       revisions,
		defaultRevision: defaultRevision,
	}, nil
}

// DefaultRevision returns the revision used when a request names none
func (s *SizingService) DefaultRevision() string {
	return s.defaultRevision
}

// Table returns a copy of the calibration table
func (s *SizingService) Table() models.PerformanceTable {
	return s.calc.Table()
}

// Calculator returns the calculator for a named revision
func (s *SizingService) Calculator(revision string) (*SizingCalculator, string, error) {
	if revision == "" {
		revision = s.defaultRevision
	}
	constants, ok := s.revisions[revision]
	if !ok {
		return nil, "", fmt.Errorf("%w: %q", models.ErrUnknownRevision, revision)
	}
	if err := constants.Validate(); err != nil {
		return nil, "", fmt.Errorf("revision %s: %w", revision, err)
	}
	return s.calc.WithConstants(constants), revision, nil
}

// Size computes one request and packages it for API callers
func (s *SizingService) Size(req models.SizingRequest) (models.SizingResponse, error) {
	calc, revision, err := s.Calculator(req.Revision)
	if err != nil {
		return models.SizingResponse{}, err
	}
	out, err := calc.Compute(req.SizingInputs)
	if err != nil {
		return models.SizingResponse{}, err
	}
	return models.SizingResponse{
		Inputs:   req.SizingInputs,
		Revision: revision,
		Outputs:  out,
		Display:  models.Display(out),
		Summary:  models.Summary(req.SizingInputs, out),
	}, nil
}

// Stages builds the stage catalog for a request. Sizing errors are reported in the
// response and the live metrics fall back to placeholders.
func (s *SizingService) Stages(req models.SizingRequest) (models.StagesResponse, error) {
	calc, revision, err := s.Calculator(req.Revision)
	if err != nil {
		return models.StagesResponse{}, err
	}

	resp := models.StagesResponse{
		Inputs:   req.SizingInputs,
		Revision: revision,
		Links:    models.StageLinks(),
	}
	out, err := calc.Compute(req.SizingInputs)
	if err != nil {
		resp.Error = err.Error()
		resp.Stages = models.Stages(req.SizingInputs, nil, calc.Constants())
		return resp, nil
	}
	resp.Stages = models.Stages(req.SizingInputs, &out, calc.Constants())
	return resp, nil
}
