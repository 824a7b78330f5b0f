// ABOUTME: HTTP handlers for sizing computations
// ABOUTME: Single, batch, and stage-catalog endpoints backed by the sizing engine

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
	"github.com/MaxParisotto/amr-ln2-generator/backend/services"
)

// GetSizing computes a sizing from query parameters.
func (h *Handler) GetSizing(w http.ResponseWriter, r *http.Request) {
	req, err := parseSizingQuery(r.URL.Query())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.size(w, req)
}

// PostSizing computes a sizing from a JSON body. Omitted fields take the defaults.
func (h *Handler) PostSizing(w http.ResponseWriter, r *http.Request) {
	req := models.SizingRequest{SizingInputs: models.DefaultSizingInputs()}
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if err := services.ValidateSizingRequest(req); err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.size(w, req)
}

func (h *Handler) size(w http.ResponseWriter, req models.SizingRequest) {
	resp, err := h.sizing.Size(req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if resp.Outputs.OperatingPoint.PressureFallback {
		slog.Info("Sized at default pressure tier",
			"requested_bar", resp.Outputs.OperatingPoint.RequestedPressureBar,
			"used_bar", resp.Outputs.OperatingPoint.PressureBar)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// BatchSizing computes many independent requests concurrently.
func (h *Handler) BatchSizing(w http.ResponseWriter, r *http.Request) {
	var req models.BatchRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if len(req.Items) == 0 {
		h.writeError(w, "Batch must contain at least one item", http.StatusBadRequest)
		return
	}

	resp, err := h.batch.Size(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// Stages returns the process stage cards with live metrics. Sizing errors are
// reported inside the payload and the metrics show placeholders.
func (h *Handler) Stages(w http.ResponseWriter, r *http.Request) {
	req, err := parseSizingQuery(r.URL.Query())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	resp, err := h.sizing.Stages(req)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}
