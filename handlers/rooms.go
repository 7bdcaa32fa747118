// ABOUTME: HTTP handlers for cold-room sizing requests
// ABOUTME: Single-room compute and concurrent batch compute endpoints

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/refritek/coldroom-analyzer/models"
)

// ComputeRoom sizes a single cold room. Degraded results (fallback
// tables, no valid unit count) still return 200 with diagnostics on the
// result message list; only malformed requests get a 4xx.
func (h *Handler) ComputeRoom(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var input models.ColdRoomInputs
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		if err.Error() == "http: request body too large" {
			h.writeError(w, "Request body too large", http.StatusBadRequest)
			return
		}
		h.writeError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	result := h.currentEngine().Compute(input)
	if !result.Valid {
		slog.Debug("Rejected sizing request", "messages", result.Messages)
	}
	h.writeJSON(w, http.StatusOK, result)
}

// BatchRequest is a list of rooms to size in one call.
type BatchRequest struct {
	Rooms []models.ColdRoomInputs `json:"rooms"`
}

// BatchResponse returns results in input order.
type BatchResponse struct {
	Results []models.ColdRoomResult `json:"results"`
}

// ComputeBatch sizes several rooms concurrently with bounded
// parallelism. The engine is immutable, so parallel Compute calls are
// safe without locking.
func (h *Handler) ComputeBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			h.writeError(w, "Request body too large", http.StatusBadRequest)
			return
		}
		h.writeError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if len(req.Rooms) == 0 {
		h.writeError(w, "rooms list is empty", http.StatusBadRequest)
		return
	}
	if len(req.Rooms) > h.cfg.BatchMaxRooms {
		h.writeError(w, "too many rooms in one batch", http.StatusBadRequest)
		return
	}

	engine := h.currentEngine()
	results := make([]models.ColdRoomResult, len(req.Rooms))

	g, _ := errgroup.WithContext(r.Context())
	g.SetLimit(h.cfg.BatchParallelism)
	for i, room := range req.Rooms {
		i, room := i, room
		g.Go(func() error {
			results[i] = engine.Compute(room)
			return nil
		})
	}
	// Compute never returns an error; Wait only joins the goroutines.
	g.Wait()

	h.writeJSON(w, http.StatusOK, BatchResponse{Results: results})
}

// ThermalProjectRequest carries rooms for the detailed load model.
type ThermalProjectRequest struct {
	Rooms        []models.ThermalRoomInputs `json:"rooms"`
	SafetyFactor float64                    `json:"safety_factor"`
}

// ComputeThermalProject runs the detailed thermal-load calculator over
// a project. Returns 503 when the dataset has no thermal section.
func (h *Handler) ComputeThermalProject(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	calc := h.currentThermal()
	if calc == nil {
		h.writeError(w, "Thermal data not loaded; detailed load model unavailable", http.StatusServiceUnavailable)
		return
	}

	var req ThermalProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			h.writeError(w, "Request body too large", http.StatusBadRequest)
			return
		}
		h.writeError(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if len(req.Rooms) == 0 {
		h.writeError(w, "rooms list is empty", http.StatusBadRequest)
		return
	}
	if req.SafetyFactor <= 0 {
		req.SafetyFactor = 1.1
	}

	h.writeJSON(w, http.StatusOK, calc.ComputeProject(req.Rooms, req.SafetyFactor))
}
