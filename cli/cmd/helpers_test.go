// ABOUTME: Shared fixtures for command tests
// ABOUTME: Serves real engine results from an httptest backend

package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
	"github.com/MaxParisotto/amr-ln2-generator/backend/services"
)

func testService(t *testing.T) *services.SizingService {
	t.Helper()
	svc, err := services.NewSizingService(models.DefaultPerformanceTable(), "")
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return svc
}

// sizingServer answers GET /api/v1/sizing with the in-process engine
func sizingServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := testService(t)
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/sizing" {
			http.NotFound(w, r)
			return
		}
		q := r.URL.Query()
		production, _ := strconv.ParseFloat(q.Get("production"), 64)
		purity, _ := strconv.ParseFloat(q.Get("purity"), 64)
		pressure, _ := strconv.ParseFloat(q.Get("pressure"), 64)
		resp, err := svc.Size(models.SizingRequest{
			SizingInputs: models.SizingInputs{
				TargetProductionLitersPerDay: production,
				OxygenPurityPercent:          purity,
				FeedPressureBar:              pressure,
			},
			Revision: q.Get("revision"),
		})
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.ErrorResponse{Error: err.Error()})
			return
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

// resetSizing restores flag state after a test mutates it
func resetSizing(f *sizingFlags) func() {
	def := models.DefaultSizingInputs()
	return func() {
		*f = sizingFlags{
			production: def.TargetProductionLitersPerDay,
			purity:     def.OxygenPurityPercent,
			pressure:   def.FeedPressureBar,
		}
		apiURL = ""
		jsonOutput = false
	}
}
