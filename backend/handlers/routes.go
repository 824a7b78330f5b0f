// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes with their HTTP methods and handlers

package handlers

import "net/http"

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.)
	Path    string           // URL path (e.g., "/api/v1/health")
	Handler http.HandlerFunc // Handler function
}

// Pattern returns the Go 1.22 ServeMux pattern for the route.
func (r Route) Pattern() string {
	return r.Method + " " + r.Path
}

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health & reference data
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},
		{Method: http.MethodGet, Path: "/api/v1/calibration", Handler: h.Calibration},
		{Method: http.MethodGet, Path: "/api/v1/revisions", Handler: h.Revisions},

		// Sizing
		{Method: http.MethodGet, Path: "/api/v1/sizing", Handler: h.GetSizing},
		{Method: http.MethodPost, Path: "/api/v1/sizing", Handler: h.PostSizing},
		{Method: http.MethodPost, Path: "/api/v1/sizing/batch", Handler: h.BatchSizing},
		{Method: http.MethodPost, Path: "/api/v1/sizing/compare", Handler: h.CompareSizing},
		{Method: http.MethodGet, Path: "/api/v1/sizing/recommendations", Handler: h.Recommendations},
		{Method: http.MethodGet, Path: "/api/v1/stages", Handler: h.Stages},

		// Documentation
		{Method: http.MethodGet, Path: "/api/v1/openapi.yaml", Handler: h.OpenAPISpec},
	}
}

// PageRoute serves the presentation page at the site root only.
func (h *Handler) PageRoute() Route {
	return Route{Method: http.MethodGet, Path: "/{$}", Handler: h.Page}
}
