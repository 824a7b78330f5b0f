// ABOUTME: Membrane calibration data: pressure tiers, purity tiers, and performance points
// ABOUTME: Provides the seed MNH-1522A table with fallback and nearest-purity lookup

package models

import (
	"fmt"
	"math"
	"sort"
)

// PressureTier is a calibrated feed pressure in bar(g)
type PressureTier float64

// PurityTier is a calibrated oxygen content in the product stream, in percent
type PurityTier float64

// NitrogenPurity returns the nitrogen purity implied by the oxygen tier (100 - O2 %)
func (p PurityTier) NitrogenPurity() float64 {
	return 100 - float64(p)
}

// PerformancePoint is a single-module measurement at one (pressure, purity) tier
type PerformancePoint struct {
	PurityPercent     PurityTier `json:"o2_purity_percent" yaml:"o2_purity_percent"`
	NitrogenOutputLPM float64    `json:"nitrogen_output_lpm" yaml:"nitrogen_output_lpm"`
	AirConsumptionLPM float64    `json:"air_consumption_lpm" yaml:"air_consumption_lpm"`
}

// Recovery returns the fraction of feed air delivered as product nitrogen
func (p PerformancePoint) Recovery() float64 {
	if p.AirConsumptionLPM <= 0 {
		return 0
	}
	return p.NitrogenOutputLPM / p.AirConsumptionLPM
}

// PressureRow holds every purity point measured at one feed pressure, sorted by purity
type PressureRow struct {
	PressureBar PressureTier       `json:"pressure_bar" yaml:"pressure_bar"`
	Points      []PerformancePoint `json:"points" yaml:"points"`
}

// Nearest returns the point whose purity key is closest to the requested purity.
// Equidistant keys resolve to the lower purity. Returns false for an empty row.
func (r PressureRow) Nearest(purity float64) (PerformancePoint, bool) {
	if len(r.Points) == 0 {
		return PerformancePoint{}, false
	}

	best := r.Points[0]
	bestDist := math.Abs(float64(best.PurityPercent) - purity)
	for _, p := range r.Points[1:] {
		dist := math.Abs(float64(p.PurityPercent) - purity)
		// Strict comparison over ascending keys keeps the lower key on ties
		if dist < bestDist {
			best = p
			bestDist = dist
		}
	}
	return best, true
}

// PerformanceTable maps pressure tier -> purity tier -> performance point.
// Rows are sorted by pressure and never mutated after construction.
type PerformanceTable struct {
	Model           string        `json:"model" yaml:"model"`
	Version         string        `json:"version" yaml:"version"`
	Conditions      string        `json:"conditions" yaml:"conditions"`
	DefaultPressure PressureTier  `json:"default_pressure_bar" yaml:"default_pressure_bar"`
	Rows            []PressureRow `json:"rows" yaml:"rows"`
}

// Row returns the row for an exact pressure tier
func (t PerformanceTable) Row(pressure float64) (PressureRow, bool) {
	for _, row := range t.Rows {
		if float64(row.PressureBar) == pressure {
			return row, true
		}
	}
	return PressureRow{}, false
}

// Resolve selects the row for the requested pressure, falling back to the default tier.
// The second return value reports whether the fallback was used.
func (t PerformanceTable) Resolve(pressure float64) (PressureRow, bool, error) {
	if row, ok := t.Row(pressure); ok {
		return row, false, nil
	}
	row, ok := t.Row(float64(t.DefaultPressure))
	if !ok {
		return PressureRow{}, true, fmt.Errorf("%w: default pressure tier %g bar is not calibrated",
			ErrInvalidCalibrationData, float64(t.DefaultPressure))
	}
	return row, true, nil
}

// Pressures lists the calibrated pressure tiers in ascending order
func (t PerformanceTable) Pressures() []PressureTier {
	tiers := make([]PressureTier, 0, len(t.Rows))
	for _, row := range t.Rows {
		tiers = append(tiers, row.PressureBar)
	}
	return tiers
}

// Clone returns a deep copy so callers cannot mutate the shared table
func (t PerformanceTable) Clone() PerformanceTable {
	out := t
	out.Rows = make([]PressureRow, len(t.Rows))
	for i, row := range t.Rows {
		points := make([]PerformancePoint, len(row.Points))
		copy(points, row.Points)
		out.Rows[i] = PressureRow{PressureBar: row.PressureBar, Points: points}
	}
	return out
}

// Normalize sorts rows by pressure and points by purity in place
func (t *PerformanceTable) Normalize() {
	sort.Slice(t.Rows, func(i, j int) bool {
		return t.Rows[i].PressureBar < t.Rows[j].PressureBar
	})
	for i := range t.Rows {
		points := t.Rows[i].Points
		sort.Slice(points, func(a, b int) bool {
			return points[a].PurityPercent < points[b].PurityPercent
		})
	}
}

// Validate checks that the table can be used for sizing: the default tier exists,
// every throughput is positive, tiers are unique, and throughput never decreases
// as the purity requirement loosens.
func (t PerformanceTable) Validate() error {
	if len(t.Rows) == 0 {
		return fmt.Errorf("%w: table has no pressure rows", ErrInvalidCalibrationData)
	}
	if _, ok := t.Row(float64(t.DefaultPressure)); !ok {
		return fmt.Errorf("%w: default pressure tier %g bar is not calibrated",
			ErrInvalidCalibrationData, float64(t.DefaultPressure))
	}

	seenPressure := make(map[PressureTier]bool)
	for _, row := range t.Rows {
		if row.PressureBar <= 0 {
			return fmt.Errorf("%w: pressure tier %g bar must be positive", ErrInvalidCalibrationData, float64(row.PressureBar))
		}
		if seenPressure[row.PressureBar] {
			return fmt.Errorf("%w: duplicate pressure tier %g bar", ErrInvalidCalibrationData, float64(row.PressureBar))
		}
		seenPressure[row.PressureBar] = true

		if len(row.Points) == 0 {
			return fmt.Errorf("%w: pressure tier %g bar has no purity points", ErrInvalidCalibrationData, float64(row.PressureBar))
		}

		for i, p := range row.Points {
			if err := p.validate(row.PressureBar); err != nil {
				return err
			}
			if i == 0 {
				continue
			}
			prev := row.Points[i-1]
			if p.PurityPercent <= prev.PurityPercent {
				return fmt.Errorf("%w: purity tiers at %g bar must be unique and ascending (%g after %g)",
					ErrInvalidCalibrationData, float64(row.PressureBar), float64(p.PurityPercent), float64(prev.PurityPercent))
			}
			if p.NitrogenOutputLPM < prev.NitrogenOutputLPM || p.AirConsumptionLPM < prev.AirConsumptionLPM {
				return fmt.Errorf("%w: throughput decreases between %g%% and %g%% O2 at %g bar",
					ErrInvalidCalibrationData, float64(prev.PurityPercent), float64(p.PurityPercent), float64(row.PressureBar))
			}
		}
	}
	return nil
}

func (p PerformancePoint) validate(pressure PressureTier) error {
	if p.NitrogenOutputLPM <= 0 || math.IsNaN(p.NitrogenOutputLPM) || math.IsInf(p.NitrogenOutputLPM, 0) {
		return fmt.Errorf("%w: nitrogen output at %g bar / %g%% O2 must be positive, got %g",
			ErrInvalidCalibrationData, float64(pressure), float64(p.PurityPercent), p.NitrogenOutputLPM)
	}
	if p.AirConsumptionLPM <= 0 || math.IsNaN(p.AirConsumptionLPM) || math.IsInf(p.AirConsumptionLPM, 0) {
		return fmt.Errorf("%w: air consumption at %g bar / %g%% O2 must be positive, got %g",
			ErrInvalidCalibrationData, float64(pressure), float64(p.PurityPercent), p.AirConsumptionLPM)
	}
	return nil
}

// DefaultPerformanceTable returns the MNH-1522A hollow-fiber membrane data at 35°C.
// The 7 bar(g) column of the datasheet is illegible and is not included, so
// requests at 7 bar resolve to the 9 bar default.
func DefaultPerformanceTable() PerformanceTable {
	return PerformanceTable{
		Model:           "MNH-1522A",
		Version:         "2024-35C",
		Conditions:      "Feed air at 35°C, single module",
		DefaultPressure: 9,
		Rows: []PressureRow{
			{
				PressureBar: 5,
				Points: []PerformancePoint{
					{PurityPercent: 0.5, NitrogenOutputLPM: 1.55, AirConsumptionLPM: 8.91},
					{PurityPercent: 1.0, NitrogenOutputLPM: 2.15, AirConsumptionLPM: 9.80},
					{PurityPercent: 2.0, NitrogenOutputLPM: 3.15, AirConsumptionLPM: 10.99},
					{PurityPercent: 3.0, NitrogenOutputLPM: 4.15, AirConsumptionLPM: 12.18},
					{PurityPercent: 4.0, NitrogenOutputLPM: 5.22, AirConsumptionLPM: 13.59},
					{PurityPercent: 5.0, NitrogenOutputLPM: 6.30, AirConsumptionLPM: 15.00},
				},
			},
			{
				PressureBar: 9,
				Points: []PerformancePoint{
					{PurityPercent: 0.5, NitrogenOutputLPM: 3.72, AirConsumptionLPM: 17.37},
					{PurityPercent: 1.0, NitrogenOutputLPM: 5.29, AirConsumptionLPM: 19.60},
					{PurityPercent: 2.0, NitrogenOutputLPM: 7.73, AirConsumptionLPM: 23.76},
					{PurityPercent: 3.0, NitrogenOutputLPM: 10.16, AirConsumptionLPM: 25.99},
					{PurityPercent: 4.0, NitrogenOutputLPM: 12.66, AirConsumptionLPM: 28.81},
					{PurityPercent: 5.0, NitrogenOutputLPM: 15.17, AirConsumptionLPM: 31.63},
				},
			},
			{
				PressureBar: 11,
				Points: []PerformancePoint{
					{PurityPercent: 0.5, NitrogenOutputLPM: 4.94, AirConsumptionLPM: 22.87},
					{PurityPercent: 1.0, NitrogenOutputLPM: 6.87, AirConsumptionLPM: 24.95},
					{PurityPercent: 2.0, NitrogenOutputLPM: 10.02, AirConsumptionLPM: 29.70},
					{PurityPercent: 3.0, NitrogenOutputLPM: 13.17, AirConsumptionLPM: 33.12},
					{PurityPercent: 4.0, NitrogenOutputLPM: 16.38, AirConsumptionLPM: 36.53},
					{PurityPercent: 5.0, NitrogenOutputLPM: 19.60, AirConsumptionLPM: 40.54},
				},
			},
		},
	}
}
