// ABOUTME: Tests for the health command
// ABOUTME: Verifies health check output formatting and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
)

func sampleHealth() models.HealthResponse {
	return models.HealthResponse{
		Status: "ok",
		Calibration: models.CalibrationInfo{
			Model:           "MNH-1522A",
			Version:         "2024-35C",
			Source:          "builtin",
			PressureTiers:   []float64{5, 9, 11},
			DefaultPressure: 9,
		},
		DefaultRevision: "baseline",
		Revisions:       []string{"baseline", "recuperated"},
		Cache:           models.CacheStats{Entries: 3, Hits: 10, Misses: 3},
	}
}

func TestFormatHealthHuman(t *testing.T) {
	resp := sampleHealth()

	output := formatHealthHuman("http://localhost:8080", &resp)

	for _, want := range []string{
		"http://localhost:8080",
		"Status:       ok",
		"MNH-1522A 2024-35C (builtin)",
		"5, 9, 11 (default 9)",
		"baseline, recuperated (default baseline)",
		"3 entries, 10 hits, 3 misses",
	} {
		if !bytes.Contains([]byte(output), []byte(want)) {
			t.Errorf("expected output to contain %q\nOutput:\n%s", want, output)
		}
	}
}

func TestFormatHealthJSON(t *testing.T) {
	resp := sampleHealth()

	output := formatHealthJSON("http://localhost:8080", &resp)

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(output), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed["backend"] != "http://localhost:8080" {
		t.Errorf("expected backend URL in JSON, got %v", parsed["backend"])
	}
	if parsed["default_revision"] != "baseline" {
		t.Errorf("expected default revision in JSON, got %v", parsed["default_revision"])
	}
}

func TestHealthCommand_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sampleHealth())
	}))
	defer server.Close()

	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runHealth(context.Background(), &buf)

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("ok")) {
		t.Error("expected ok in output")
	}
}

func TestHealthCommand_ConnectionError(t *testing.T) {
	apiURL = "http://localhost:99999"
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runHealth(context.Background(), &buf)

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Error:")) {
		t.Error("expected error message in output")
	}
}
