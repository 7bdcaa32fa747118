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

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health & dataset
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},
		{Method: http.MethodGet, Path: "/api/v1/catalog", Handler: h.Catalog},

		// Cold-room sizing
		{Method: http.MethodPost, Path: "/api/v1/rooms/compute", Handler: h.ComputeRoom},
		{Method: http.MethodPost, Path: "/api/v1/rooms/batch", Handler: h.ComputeBatch},

		// Detailed thermal load
		{Method: http.MethodPost, Path: "/api/v1/thermal/project", Handler: h.ComputeThermalProject},
	}
}
