// ABOUTME: Shared API response envelopes for health and error reporting
// ABOUTME: JSON-serializable structures matching frontend expectations

package models

import "time"

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}

// CalibrationInfo summarizes the active performance table
type CalibrationInfo struct {
	Model           string    `json:"model"`
	Version         string    `json:"version"`
	Source          string    `json:"source"` // "builtin" or a file path
	PressureTiers   []float64 `json:"pressure_tiers"`
	DefaultPressure float64   `json:"default_pressure_bar"`
}

// CacheStats reports cache occupancy and effectiveness
type CacheStats struct {
	Entries int   `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status          string          `json:"status"`
	Calibration     CalibrationInfo `json:"calibration"`
	DefaultRevision string          `json:"default_revision"`
	Revisions       []string        `json:"revisions"`
	Cache           CacheStats      `json:"cache"`
	Timestamp       time.Time       `json:"timestamp"`
}

// RevisionsResponse lists named formula revisions
type RevisionsResponse struct {
	Default   string                      `json:"default"`
	Revisions map[string]FormulaConstants `json:"revisions"`
}
