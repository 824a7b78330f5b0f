// ABOUTME: Loads membrane calibration tables from YAML files
// ABOUTME: Falls back to the built-in MNH-1522A table when no file is configured

package services

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
)

// BuiltinCalibrationSource labels the compiled-in table
const BuiltinCalibrationSource = "builtin"

// ParseCalibration decodes, normalizes, and validates a YAML calibration table.
// Unknown fields are rejected so typos do not silently drop data.
func ParseCalibration(data []byte) (models.PerformanceTable, error) {
	var table models.PerformanceTable

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&table); err != nil {
		return models.PerformanceTable{}, fmt.Errorf("%w: %v", models.ErrInvalidCalibrationData, err)
	}

	table.Normalize()
	if err := table.Validate(); err != nil {
		return models.PerformanceTable{}, err
	}
	return table, nil
}

// LoadCalibration reads the table at path. An empty path returns the built-in table.
// The second return value names where the table came from.
func LoadCalibration(path string) (models.PerformanceTable, string, error) {
	if path == "" {
		return models.DefaultPerformanceTable(), BuiltinCalibrationSource, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.PerformanceTable{}, "", fmt.Errorf("reading calibration file: %w", err)
	}

	table, err := ParseCalibration(data)
	if err != nil {
		return models.PerformanceTable{}, "", fmt.Errorf("calibration file %s: %w", path, err)
	}

	slog.Info("Loaded calibration table", "path", path, "model", table.Model, "version", table.Version, "pressure_tiers", len(table.Rows))
	return table, path, nil
}

// MarshalCalibration encodes a table in the file format accepted by ParseCalibration
func MarshalCalibration(table models.PerformanceTable) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(table); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DescribeCalibration summarizes a table for health and info endpoints
func DescribeCalibration(table models.PerformanceTable, source string) models.CalibrationInfo {
	tiers := make([]float64, 0, len(table.Rows))
	for _, p := range table.Pressures() {
		tiers = append(tiers, float64(p))
	}
	return models.CalibrationInfo{
		Model:           table.Model,
		Version:         table.Version,
		Source:          source,
		PressureTiers:   tiers,
		DefaultPressure: float64(table.DefaultPressure),
	}
}
