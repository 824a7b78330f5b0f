// ABOUTME: Server-rendered presentation page for the sizing calculator
// ABOUTME: Renders the input form, headline metrics, and process stage cards

package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/MaxParisotto/amr-ln2-generator/backend/models"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"nitrogen": func(o2 float64) float64 { return 100 - o2 },
}).ParseFS(templateFS, "templates/index.html"))

// pageData is the view model for templates/index.html
type pageData struct {
	Request        models.SizingRequest
	Revision       string
	Revisions      []string
	PurityOptions  []float64
	PressureOpts   []float64
	MinProduction  float64
	MaxProduction  float64
	Display        *models.DisplayOutputs
	Summary        string
	Fallback       *models.OperatingPoint
	Stages         []models.Stage
	Error          string
	CalibrationRef string
}

// Page renders the calculator. Invalid query values or sizing failures render the
// page with placeholders and an error banner instead of failing the request.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Request:        models.SizingRequest{SizingInputs: models.DefaultSizingInputs()},
		Revisions:      models.RevisionNames(),
		PurityOptions:  models.PurityOptions,
		PressureOpts:   models.PressureOptions,
		MinProduction:  models.MinProduction,
		MaxProduction:  models.MaxProduction,
		CalibrationRef: h.calibrationSource(),
	}

	req, err := parseSizingQuery(r.URL.Query())
	status := http.StatusOK
	if err != nil {
		data.Error = err.Error()
		status = http.StatusBadRequest
	} else {
		data.Request = req
	}

	stages, err := h.sizing.Stages(data.Request)
	if err != nil {
		data.Error = err.Error()
		status = http.StatusBadRequest
		data.Request.Revision = ""
		stages, _ = h.sizing.Stages(data.Request)
	}
	data.Revision = stages.Revision
	data.Stages = stages.Stages
	if stages.Error != "" && data.Error == "" {
		data.Error = stages.Error
	}

	if resp, err := h.sizing.Size(data.Request); err == nil {
		display := resp.Display
		data.Display = &display
		data.Summary = resp.Summary
		if resp.Outputs.OperatingPoint.PressureFallback {
			op := resp.Outputs.OperatingPoint
			data.Fallback = &op
		}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		slog.Error("Failed to render page", "error", err)
		h.writeError(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
