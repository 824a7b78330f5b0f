// ABOUTME: Tests for the sizing API client
// ABOUTME: Uses httptest to mock backend responses

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
)

func TestHealth_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/health" {
			t.Errorf("expected path /api/v1/health, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.HealthResponse{
			Status:          "ok",
			DefaultRevision: "baseline",
		})
	}))
	defer server.Close()

	c := New(server.URL)
	resp, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("expected status ok, got %s", resp.Status)
	}
	if resp.DefaultRevision != "baseline" {
		t.Errorf("expected baseline, got %s", resp.DefaultRevision)
	}
}

func TestHealth_ConnectionError(t *testing.T) {
	c := New("http://localhost:99999")
	_, err := c.Health(context.Background())
	if err == nil {
		t.Error("expected connection error, got nil")
	}
}

func TestHealth_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		json.NewEncoder(w).Encode(models.HealthResponse{Status: "ok"})
	}))
	defer server.Close()

	c := New(server.URL)
	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	_, err := c.Health(ctx)
	if err == nil {
		t.Fatal("expected error for canceled context, got nil")
	}
	if err.Error() != "request canceled" {
		t.Errorf("expected request canceled, got %v", err)
	}
}

func TestSize_SendsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/sizing" {
			t.Errorf("expected path /api/v1/sizing, got %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("production") != "12.5" || q.Get("purity") != "1" || q.Get("pressure") != "11" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if q.Get("revision") != "recuperated" {
			t.Errorf("expected revision recuperated, got %s", q.Get("revision"))
		}
		json.NewEncoder(w).Encode(models.SizingResponse{
			Revision: "recuperated",
			Outputs:  models.SizingOutputs{ModuleCount: 2},
			Display:  models.DisplayOutputs{TotalPowerKW: "1.00"},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	req := models.SizingRequest{
		SizingInputs: models.SizingInputs{TargetProductionLitersPerDay: 12.5, OxygenPurityPercent: 1, FeedPressureBar: 11},
		Revision:     "recuperated",
	}
	resp, err := c.Size(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Outputs.ModuleCount != 2 {
		t.Errorf("expected 2 modules, got %d", resp.Outputs.ModuleCount)
	}
}

func TestSize_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Invalid input", Details: "production must be positive", Code: 400})
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Size(context.Background(), models.SizingRequest{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", apiErr.StatusCode)
	}
	if apiErr.Error() != "backend error: Invalid input (production must be positive)" {
		t.Errorf("unexpected message: %s", apiErr.Error())
	}
}

func TestSize_NonJSONError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	c := New(server.URL)
	_, err := c.Size(context.Background(), models.SizingRequest{})
	if err == nil || err.Error() != "backend error: status 502" {
		t.Errorf("expected status 502 error, got %v", err)
	}
}

func TestCompare_PostsBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("expected JSON content type, got %s", r.Header.Get("Content-Type"))
		}
		var input models.ScenarioInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if input.Proposed.Revision != "recuperated" {
			t.Errorf("expected proposed recuperated, got %s", input.Proposed.Revision)
		}
		json.NewEncoder(w).Encode(models.ScenarioComparison{
			Delta: models.ScenarioDelta{TotalPowerKW: -0.8},
		})
	}))
	defer server.Close()

	c := New(server.URL)
	input := models.ScenarioInput{
		Baseline: models.SizingRequest{SizingInputs: models.DefaultSizingInputs(), Revision: "baseline"},
		Proposed: models.SizingRequest{SizingInputs: models.DefaultSizingInputs(), Revision: "recuperated"},
	}
	resp, err := c.Compare(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Delta.TotalPowerKW != -0.8 {
		t.Errorf("expected delta -0.8, got %v", resp.Delta.TotalPowerKW)
	}
}

func TestSizeBatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.BatchRequest
		json.NewDecoder(r.Body).Decode(&req)
		if len(req.Items) != 2 {
			t.Errorf("expected 2 items, got %d", len(req.Items))
		}
		json.NewEncoder(w).Encode(models.BatchResponse{Succeeded: 2})
	}))
	defer server.Close()

	c := New(server.URL)
	items := []models.SizingRequest{
		{SizingInputs: models.DefaultSizingInputs()},
		{SizingInputs: models.DefaultSizingInputs()},
	}
	resp, err := c.SizeBatch(context.Background(), items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Succeeded != 2 {
		t.Errorf("expected 2 succeeded, got %d", resp.Succeeded)
	}
}

func TestRecommendationsAndStages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/sizing/recommendations":
			json.NewEncoder(w).Encode(models.RecommendationsResponse{
				Options: []models.OperatingPointOption{{Rank: 1, PressureBar: 11}},
			})
		case "/api/v1/stages":
			json.NewEncoder(w).Encode(models.StagesResponse{
				Stages: []models.Stage{{ID: "membrane"}},
			})
		case "/api/v1/revisions":
			json.NewEncoder(w).Encode(models.RevisionsResponse{Default: "baseline"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := New(server.URL)
	req := models.SizingRequest{SizingInputs: models.DefaultSizingInputs()}

	recs, err := c.Recommendations(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recs.Options) != 1 || recs.Options[0].PressureBar != 11 {
		t.Errorf("unexpected options %+v", recs.Options)
	}

	stages, err := c.Stages(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stages.Stages) != 1 || stages.Stages[0].ID != "membrane" {
		t.Errorf("unexpected stages %+v", stages.Stages)
	}

	revs, err := c.Revisions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if revs.Default != "baseline" {
		t.Errorf("expected baseline, got %s", revs.Default)
	}
}
