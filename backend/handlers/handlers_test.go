package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MaxParisotto/amr-ln2-generator/backend/cache"
	"github.com/MaxParisotto/amr-ln2-generator/backend/config"
	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
)

func newTestCache(t *testing.T) *cache.Cache[models.RecommendationsResponse] {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return cache.New[models.RecommendationsResponse](ctx, time.Minute, 0)
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return v
}

func TestHealthHandler(t *testing.T) {
	h := NewHandler(nil, nil, newTestCache(t))

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()

	h.Health(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	resp := decodeBody[models.HealthResponse](t, w)
	if resp.Status != "ok" {
		t.Errorf("Expected status ok, got %s", resp.Status)
	}
	if resp.DefaultRevision != models.RevisionBaseline {
		t.Errorf("Expected default revision baseline, got %s", resp.DefaultRevision)
	}
	if resp.Calibration.Source != "builtin" {
		t.Errorf("Expected builtin calibration, got %s", resp.Calibration.Source)
	}
	if len(resp.Calibration.PressureTiers) != 3 {
		t.Errorf("Expected 3 pressure tiers, got %v", resp.Calibration.PressureTiers)
	}
}

func TestHealthHandler_CalibrationFile(t *testing.T) {
	cfg := &config.Config{CalibrationFile: "/etc/ln2/mnh.yaml", SizingRevision: models.RevisionRecuperated}
	h := NewHandler(cfg, nil, nil)

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest("GET", "/api/v1/health", nil))

	resp := decodeBody[models.HealthResponse](t, w)
	if resp.Calibration.Source != "/etc/ln2/mnh.yaml" {
		t.Errorf("Expected calibration source from config, got %s", resp.Calibration.Source)
	}
	if resp.DefaultRevision != models.RevisionRecuperated {
		t.Errorf("Expected recuperated default, got %s", resp.DefaultRevision)
	}
}

func TestCalibrationHandler(t *testing.T) {
	h := NewHandler(nil, nil, nil)

	w := httptest.NewRecorder()
	h.Calibration(w, httptest.NewRequest("GET", "/api/v1/calibration", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	table := decodeBody[models.PerformanceTable](t, w)
	if len(table.Rows) != 3 {
		t.Errorf("Expected 3 rows, got %d", len(table.Rows))
	}
	if table.DefaultPressure != 9 {
		t.Errorf("Expected default pressure 9, got %v", table.DefaultPressure)
	}
}

func TestRevisionsHandler(t *testing.T) {
	h := NewHandler(nil, nil, nil)

	w := httptest.NewRecorder()
	h.Revisions(w, httptest.NewRequest("GET", "/api/v1/revisions", nil))

	resp := decodeBody[models.RevisionsResponse](t, w)
	if resp.Default != models.RevisionBaseline {
		t.Errorf("Expected default baseline, got %s", resp.Default)
	}
	rec, ok := resp.Revisions[models.RevisionRecuperated]
	if !ok {
		t.Fatal("Expected recuperated revision")
	}
	if !rec.RecuperatorEnabled {
		t.Error("Expected recuperated revision to enable the recuperator")
	}
}

func TestGetSizing_Defaults(t *testing.T) {
	h := NewHandler(nil, nil, nil)

	w := httptest.NewRecorder()
	h.GetSizing(w, httptest.NewRequest("GET", "/api/v1/sizing", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeBody[models.SizingResponse](t, w)

	if resp.Outputs.ModuleCount != 2 {
		t.Errorf("Expected 2 modules, got %d", resp.Outputs.ModuleCount)
	}
	if resp.Display.TotalPowerKW != "1.82" {
		t.Errorf("Expected total power 1.82, got %s", resp.Display.TotalPowerKW)
	}
	if resp.Display.FeedAirFlowLPM != "34.7" {
		t.Errorf("Expected air flow 34.7, got %s", resp.Display.FeedAirFlowLPM)
	}
	if resp.Display.CoolingLoadWatts != "40.3" {
		t.Errorf("Expected cooling load 40.3, got %s", resp.Display.CoolingLoadWatts)
	}
	if resp.Revision != models.RevisionBaseline {
		t.Errorf("Expected baseline revision, got %s", resp.Revision)
	}
}

func TestGetSizing_QueryParameters(t *testing.T) {
	h := NewHandler(nil, nil, nil)

	w := httptest.NewRecorder()
	h.GetSizing(w, httptest.NewRequest("GET", "/api/v1/sizing?production=10&purity=0.5&pressure=11", nil))

	resp := decodeBody[models.SizingResponse](t, w)
	if resp.Outputs.ModuleCount != 1 {
		t.Errorf("Expected 1 module at 11 bar, got %d", resp.Outputs.ModuleCount)
	}
	if resp.Display.FeedAirFlowLPM != "22.9" {
		t.Errorf("Expected air flow 22.9, got %s", resp.Display.FeedAirFlowLPM)
	}
}

func TestGetSizing_PressureFallback(t *testing.T) {
	h := NewHandler(nil, nil, nil)

	w := httptest.NewRecorder()
	h.GetSizing(w, httptest.NewRequest("GET", "/api/v1/sizing?pressure=7", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	resp := decodeBody[models.SizingResponse](t, w)
	op := resp.Outputs.OperatingPoint
	if !op.PressureFallback || op.PressureBar != 9 || op.RequestedPressureBar != 7 {
		t.Errorf("Expected fallback from 7 to 9 bar, got %+v", op)
	}
}

func TestGetSizing_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantError string
	}{
		{"zero production", "production=0", "Invalid input"},
		{"negative production", "production=-5", "Invalid input"},
		{"non-numeric production", "production=lots", "Invalid input"},
		{"production beyond module range", "production=1e20", "Invalid input"},
		{"purity not finite", "purity=Inf", "Invalid input"},
		{"pressure not finite", "pressure=NaN", "Invalid input"},
		{"unknown revision", "revision=legacy", "Unknown revision"},
		{"malformed revision", "revision=Bad%20Name", "Invalid input"},
	}

	h := NewHandler(nil, nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.GetSizing(w, httptest.NewRequest("GET", "/api/v1/sizing?"+tt.query, nil))

			if w.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d", w.Code)
			}
			resp := decodeBody[models.ErrorResponse](t, w)
			if resp.Error != tt.wantError {
				t.Errorf("Expected error %q, got %q", tt.wantError, resp.Error)
			}
			if resp.Code != http.StatusBadRequest {
				t.Errorf("Expected code 400 in body, got %d", resp.Code)
			}
		})
	}
}

func TestPostSizing(t *testing.T) {
	h := NewHandler(nil, nil, nil)

	body := `{"target_production_l_per_day": 10, "revision": "recuperated"}`
	w := httptest.NewRecorder()
	h.PostSizing(w, httptest.NewRequest("POST", "/api/v1/sizing", strings.NewReader(body)))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeBody[models.SizingResponse](t, w)

	if resp.Revision != models.RevisionRecuperated {
		t.Errorf("Expected recuperated revision, got %s", resp.Revision)
	}
	// Omitted fields take the defaults
	if resp.Inputs.OxygenPurityPercent != 0.5 || resp.Inputs.FeedPressureBar != 9 {
		t.Errorf("Expected default purity and pressure, got %+v", resp.Inputs)
	}
	if resp.Display.TotalPowerKW != "1.00" {
		t.Errorf("Expected total power 1.00, got %s", resp.Display.TotalPowerKW)
	}
	if resp.Display.CoolingLoadWatts != "32.7" {
		t.Errorf("Expected cooling load 32.7, got %s", resp.Display.CoolingLoadWatts)
	}
}

func TestPostSizing_BadRequests(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantError string
	}{
		{"invalid json", `{"target_production_l_per_day":`, "Invalid JSON"},
		{"unknown field", `{"production": 10}`, "Invalid JSON"},
		{"zero production", `{"target_production_l_per_day": 0}`, "Invalid input"},
		{"unknown revision", `{"revision": "legacy"}`, "Unknown revision"},
		{"oversized body", `{"revision":"` + strings.Repeat("a", maxRequestBodySize) + `"}`, "Request body too large"},
	}

	h := NewHandler(nil, nil, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.PostSizing(w, httptest.NewRequest("POST", "/api/v1/sizing", strings.NewReader(tt.body)))

			if w.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d", w.Code)
			}
			resp := decodeBody[models.ErrorResponse](t, w)
			if resp.Error != tt.wantError {
				t.Errorf("Expected error %q, got %q", tt.wantError, resp.Error)
			}
		})
	}
}

func TestBatchSizing(t *testing.T) {
	h := NewHandler(nil, nil, nil)

	body := `{"items": [
		{"target_production_l_per_day": 1, "oxygen_purity_percent": 0.5, "feed_pressure_bar": 9},
		{"target_production_l_per_day": 0, "oxygen_purity_percent": 0.5, "feed_pressure_bar": 9},
		{"target_production_l_per_day": 50, "oxygen_purity_percent": 0.5, "feed_pressure_bar": 9}
	]}`
	w := httptest.NewRecorder()
	h.BatchSizing(w, httptest.NewRequest("POST", "/api/v1/sizing/batch", strings.NewReader(body)))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeBody[models.BatchResponse](t, w)

	if resp.Succeeded != 2 || resp.Failed != 1 {
		t.Errorf("Expected 2 succeeded / 1 failed, got %d / %d", resp.Succeeded, resp.Failed)
	}
	if len(resp.Results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(resp.Results))
	}
	if resp.Results[0].Response == nil || resp.Results[0].Response.Outputs.ModuleCount != 1 {
		t.Errorf("Expected first item to need 1 module, got %+v", resp.Results[0])
	}
	if resp.Results[1].Error == "" {
		t.Error("Expected second item to report an error")
	}
	if resp.Results[2].Response == nil || resp.Results[2].Response.Outputs.ModuleCount != 7 {
		t.Errorf("Expected third item to need 7 modules, got %+v", resp.Results[2])
	}
}

func TestBatchSizing_Limits(t *testing.T) {
	cfg := &config.Config{SizingRevision: models.RevisionBaseline, BatchMaxItems: 2, BatchConcurrency: 1}
	h := NewHandler(cfg, nil, nil)

	tests := []struct {
		name string
		body string
	}{
		{"empty", `{"items": []}`},
		{"too many", `{"items": [{}, {}, {}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.BatchSizing(w, httptest.NewRequest("POST", "/api/v1/sizing/batch", strings.NewReader(tt.body)))

			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", w.Code)
			}
		})
	}
}

func TestCompareSizing(t *testing.T) {
	h := NewHandler(nil, nil, nil)

	body := `{
		"baseline": {"target_production_l_per_day": 10, "oxygen_purity_percent": 0.5, "feed_pressure_bar": 9, "revision": "baseline"},
		"proposed": {"target_production_l_per_day": 10, "oxygen_purity_percent": 0.5, "feed_pressure_bar": 9, "revision": "recuperated"}
	}`
	w := httptest.NewRecorder()
	h.CompareSizing(w, httptest.NewRequest("POST", "/api/v1/sizing/compare", strings.NewReader(body)))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeBody[models.ScenarioComparison](t, w)

	if resp.Baseline.Revision != models.RevisionBaseline || resp.Proposed.Revision != models.RevisionRecuperated {
		t.Errorf("Expected baseline vs recuperated, got %s vs %s", resp.Baseline.Revision, resp.Proposed.Revision)
	}
	if resp.Delta.TotalPowerKW >= 0 {
		t.Errorf("Expected recuperator to reduce power, delta %v", resp.Delta.TotalPowerKW)
	}
	if resp.Delta.ModuleCount != 0 {
		t.Errorf("Expected same module count, delta %d", resp.Delta.ModuleCount)
	}
}

func TestCompareSizing_InvalidSide(t *testing.T) {
	h := NewHandler(nil, nil, nil)

	body := `{
		"baseline": {"target_production_l_per_day": 10, "oxygen_purity_percent": 0.5, "feed_pressure_bar": 9},
		"proposed": {"target_production_l_per_day": 10, "oxygen_purity_percent": 120, "feed_pressure_bar": 9}
	}`
	w := httptest.NewRecorder()
	h.CompareSizing(w, httptest.NewRequest("POST", "/api/v1/sizing/compare", strings.NewReader(body)))

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestRecommendations_Cached(t *testing.T) {
	c := newTestCache(t)
	h := NewHandler(nil, nil, c)

	get := func() models.RecommendationsResponse {
		w := httptest.NewRecorder()
		h.Recommendations(w, httptest.NewRequest("GET", "/api/v1/sizing/recommendations?production=10&purity=0.5", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}
		return decodeBody[models.RecommendationsResponse](t, w)
	}

	first := get()
	if first.Cached {
		t.Error("Expected first response not to be cached")
	}
	if len(first.Options) == 0 {
		t.Fatal("Expected options")
	}
	if first.Options[0].PressureBar != 11 {
		t.Errorf("Expected 11 bar to rank first, got %v", first.Options[0].PressureBar)
	}
	if first.Options[0].Rank != 1 {
		t.Errorf("Expected rank 1, got %d", first.Options[0].Rank)
	}

	second := get()
	if !second.Cached {
		t.Error("Expected second response to be cached")
	}
	if len(second.Options) != len(first.Options) {
		t.Errorf("Expected identical options, got %d vs %d", len(second.Options), len(first.Options))
	}

	stats := c.Stats()
	if stats.Hits != 1 {
		t.Errorf("Expected 1 cache hit, got %d", stats.Hits)
	}
}

func TestRecommendations_NoCache(t *testing.T) {
	h := NewHandler(nil, nil, nil)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		h.Recommendations(w, httptest.NewRequest("GET", "/api/v1/sizing/recommendations", nil))
		resp := decodeBody[models.RecommendationsResponse](t, w)
		if resp.Cached {
			t.Errorf("Call %d: expected uncached response without a cache", i)
		}
	}
}

func TestRecommendations_Invalid(t *testing.T) {
	h := NewHandler(nil, nil, newTestCache(t))

	w := httptest.NewRecorder()
	h.Recommendations(w, httptest.NewRequest("GET", "/api/v1/sizing/recommendations?production=-1", nil))

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestStagesHandler(t *testing.T) {
	h := NewHandler(nil, nil, nil)

	w := httptest.NewRecorder()
	h.Stages(w, httptest.NewRequest("GET", "/api/v1/stages", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	resp := decodeBody[models.StagesResponse](t, w)

	if len(resp.Stages) != 9 {
		t.Fatalf("Expected 9 stages, got %d", len(resp.Stages))
	}
	membrane := resp.Stages[2]
	if membrane.ID != "membrane" {
		t.Fatalf("Expected membrane stage third, got %s", membrane.ID)
	}
	if membrane.Metrics[0].Value != "2" {
		t.Errorf("Expected 2 modules on membrane card, got %s", membrane.Metrics[0].Value)
	}
	if len(resp.Links) == 0 {
		t.Error("Expected stage links")
	}
}

func TestOpenAPISpec(t *testing.T) {
	h := NewHandler(nil, nil, nil)

	w := httptest.NewRecorder()
	h.OpenAPISpec(w, httptest.NewRequest("GET", "/api/v1/openapi.yaml", nil))

	if got := w.Header().Get("Content-Type"); got != "application/yaml" {
		t.Errorf("Expected application/yaml, got %s", got)
	}
	body := w.Body.String()
	for _, route := range h.Routes() {
		if !strings.Contains(body, route.Path+":") {
			t.Errorf("Expected OpenAPI document to describe %s", route.Path)
		}
	}
}

func TestPage(t *testing.T) {
	h := NewHandler(nil, nil, nil)

	w := httptest.NewRecorder()
	h.Page(w, httptest.NewRequest("GET", "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Expected HTML, got %s", ct)
	}
	body := w.Body.String()
	for _, want := range []string{"1.82", "34.7", "40.3", "Membrane", "builtin"} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected page to contain %q", want)
		}
	}
}

func TestPage_InvalidInput(t *testing.T) {
	h := NewHandler(nil, nil, nil)

	w := httptest.NewRecorder()
	h.Page(w, httptest.NewRequest("GET", "/?production=abc", nil))

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `role="alert"`) {
		t.Error("Expected an error banner")
	}
	// Defaults are still sized so the page stays usable
	if !strings.Contains(body, "1.82") {
		t.Error("Expected default sizing alongside the error")
	}
}

func TestPage_FallbackNotice(t *testing.T) {
	h := NewHandler(nil, nil, nil)

	w := httptest.NewRecorder()
	h.Page(w, httptest.NewRequest("GET", "/?pressure=13", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "not calibrated") {
		t.Error("Expected fallback notice for 13 bar")
	}
}
