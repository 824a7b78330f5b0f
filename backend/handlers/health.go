// ABOUTME: HTTP handlers for health, calibration, and revision endpoints
// ABOUTME: Reports service status and the reference data behind the sizing engine

package handlers

import (
	"net/http"
	"time"

	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
	"github.com/MaxParisotto/amr-ln2-generator/backend/services"
)

// Health returns service status including calibration and cache state.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		Status:          "ok",
		Calibration:     services.DescribeCalibration(h.sizing.Table(), h.calibrationSource()),
		DefaultRevision: h.sizing.DefaultRevision(),
		Revisions:       models.RevisionNames(),
		Timestamp:       time.Now().UTC(),
	}
	if h.recCache != nil {
		stats := h.recCache.Stats()
		resp.Cache = models.CacheStats{Entries: stats.Entries, Hits: stats.Hits, Misses: stats.Misses}
	}

	h.writeJSON(w, http.StatusOK, resp)
}

// Calibration returns the active performance table.
func (h *Handler) Calibration(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.sizing.Table())
}

// Revisions returns the named formula-constant sets.
func (h *Handler) Revisions(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, models.RevisionsResponse{
		Default:   h.sizing.DefaultRevision(),
		Revisions: models.Revisions(),
	})
}
