// ABOUTME: HTTP handler for scenario comparison endpoint
// ABOUTME: Provides what-if analysis comparing a baseline and a proposed sizing

package handlers

import (
	"net/http"

	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
	"github.com/MaxParisotto/amr-ln2-generator/backend/services"
)

// CompareSizing compares a baseline request against a proposed one.
// HTTP method validation handled by Go 1.22+ router pattern matching.
func (h *Handler) CompareSizing(w http.ResponseWriter, r *http.Request) {
	var input models.ScenarioInput
	if !h.decodeJSON(w, r, &input) {
		return
	}

	for _, req := range []models.SizingRequest{input.Baseline, input.Proposed} {
		if err := services.ValidateSizingRequest(req); err != nil {
			h.writeServiceError(w, err)
			return
		}
	}

	comparison, err := h.scenarioCalc.Compare(input)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, comparison)
}
