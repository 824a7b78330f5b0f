// ABOUTME: HTTP handler for operating point recommendations
// ABOUTME: Ranks calibrated pressure/purity tiers by power, cached per request

package handlers

import (
	"fmt"
	"net/http"

	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
)

// Recommendations ranks the calibrated operating points for a production target.
// Results are cached; the revision is resolved first so the default and its
// explicit name share an entry.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	req, err := parseSizingQuery(r.URL.Query())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	if req.Revision == "" {
		req.Revision = h.sizing.DefaultRevision()
	}

	compute := func() (models.RecommendationsResponse, error) {
		return h.recommender.Recommend(req)
	}

	if h.recCache == nil {
		resp, err := compute()
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		h.writeJSON(w, http.StatusOK, resp)
		return
	}

	key := fmt.Sprintf("recommendations:%g:%g:%g:%s",
		req.TargetProductionLitersPerDay, req.OxygenPurityPercent, req.FeedPressureBar, req.Revision)
	resp, cached, err := h.recCache.GetOrCompute(key, compute)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	resp.Cached = cached
	h.writeJSON(w, http.StatusOK, resp)
}
