// ABOUTME: HTTP handlers for the LN2 generator sizing API
// ABOUTME: Shared handler state, JSON helpers, and error-to-status mapping

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/MaxParisotto/amr-ln2-generator/backend/cache"
	"github.com/MaxParisotto/amr-ln2-generator/backend/config"
	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
	"github.com/MaxParisotto/amr-ln2-generator/backend/services"
)

// maxRequestBodySize limits JSON request bodies to 1MB to prevent DOS attacks
const maxRequestBodySize = 1 << 20 // 1MB

type Handler struct {
	cfg          *config.Config
	sizing       *services.SizingService
	scenarioCalc *services.ScenarioCalculator
	recommender  *services.Recommender
	batch        *services.BatchSizer
	recCache     *cache.Cache[models.RecommendationsResponse]
}

// NewHandler wires the handlers. A nil cfg uses defaults, a nil sizing service uses
// the built-in calibration table with the baseline revision, and a nil cache
// disables recommendation caching.
func NewHandler(cfg *config.Config, sizing *services.SizingService, c *cache.Cache[models.RecommendationsResponse]) *Handler {
	if cfg == nil {
		cfg = &config.Config{
			SizingRevision:   models.RevisionBaseline,
			BatchMaxItems:    100,
			BatchConcurrency: 4,
		}
	}
	if sizing == nil {
		var err error
		if sizing, err = services.NewSizingService(models.DefaultPerformanceTable(), cfg.SizingRevision); err != nil {
			slog.Warn("Unknown default revision, using baseline", "revision", cfg.SizingRevision)
			sizing, _ = services.NewSizingService(models.DefaultPerformanceTable(), models.RevisionBaseline)
		}
	}

	return &Handler{
		cfg:          cfg,
		sizing:       sizing,
		scenarioCalc: services.NewScenarioCalculator(sizing),
		recommender:  services.NewRecommender(sizing),
		batch:        services.NewBatchSizer(sizing, cfg.BatchMaxItems, cfg.BatchConcurrency),
		recCache:     c,
	}
}

// calibrationSource names where the active table came from
func (h *Handler) calibrationSource() string {
	if h.cfg.CalibrationFile != "" {
		return h.cfg.CalibrationFile
	}
	return services.BuiltinCalibrationSource
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeErrorDetails(w, message, "", code)
}

func (h *Handler) writeErrorDetails(w http.ResponseWriter, message, details string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error:   message,
		Details: details,
		Code:    code,
	})
}

// writeServiceError maps sizing errors onto HTTP status codes
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrUnknownRevision):
		h.writeErrorDetails(w, "Unknown revision", err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrInvalidInput):
		h.writeErrorDetails(w, "Invalid input", err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrInvalidCalibrationData):
		slog.Error("Calibration data rejected during sizing", "error", err)
		h.writeErrorDetails(w, "Invalid calibration data", err.Error(), http.StatusInternalServerError)
	default:
		slog.Error("Sizing failed", "error", err)
		h.writeError(w, "Internal server error", http.StatusInternalServerError)
	}
}

// decodeJSON reads a size-limited JSON body into v. It writes the error response
// itself and returns false on failure.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	// Limit request body size to prevent DOS attacks
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.writeError(w, "Request body too large", http.StatusBadRequest)
			return false
		}
		h.writeErrorDetails(w, "Invalid JSON", err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// parseSizingQuery reads production, purity, pressure, and revision from the query
// string. Missing values take the calculator defaults.
func parseSizingQuery(q url.Values) (models.SizingRequest, error) {
	req := models.SizingRequest{SizingInputs: models.DefaultSizingInputs()}

	fields := []struct {
		name   string
		target *float64
	}{
		{"production", &req.TargetProductionLitersPerDay},
		{"purity", &req.OxygenPurityPercent},
		{"pressure", &req.FeedPressureBar},
	}
	for _, f := range fields {
		raw := q.Get(f.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.SizingRequest{}, fmt.Errorf("%w: %s must be a number", models.ErrInvalidInput, f.name)
		}
		*f.target = v
	}
	req.Revision = q.Get("revision")

	if err := services.ValidateSizingRequest(req); err != nil {
		return models.SizingRequest{}, err
	}
	return req, nil
}
