// ABOUTME: HTTP handlers for the cold-room analyzer API
// ABOUTME: Holds the engine, calculators and shared response helpers

package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/refritek/coldroom-analyzer/cache"
	"github.com/refritek/coldroom-analyzer/config"
	"github.com/refritek/coldroom-analyzer/models"
	"github.com/refritek/coldroom-analyzer/services"
)

// maxRequestBodySize bounds request bodies to prevent resource abuse.
const maxRequestBodySize = 1 << 20 // 1 MB

type Handler struct {
	cfg   *config.Config
	cache *cache.Cache

	mu       sync.RWMutex
	engine   *services.Engine
	thermal  *services.ThermalCalculator
	loadedAt time.Time
}

// NewHandler wires the handler around a loaded dataset.
func NewHandler(cfg *config.Config, c *cache.Cache, ds *models.Dataset) *Handler {
	h := &Handler{
		cfg:   cfg,
		cache: c,
	}
	h.SwapDataset(ds)
	return h
}

// SwapDataset atomically replaces the engine's dataset (hot reload) and
// drops derived cached responses.
func (h *Handler) SwapDataset(ds *models.Dataset) {
	h.mu.Lock()
	h.engine = services.NewEngine(ds)
	if ds.Thermal != nil {
		h.thermal = services.NewThermalCalculator(ds.Thermal)
	} else {
		h.thermal = nil
	}
	h.loadedAt = time.Now()
	h.mu.Unlock()

	if h.cache != nil {
		h.cache.Flush()
	}
}

// currentEngine returns the engine under the read lock. The engine
// itself is immutable, so callers may use it without holding the lock.
func (h *Handler) currentEngine() *services.Engine {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.engine
}

func (h *Handler) currentThermal() *services.ThermalCalculator {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.thermal
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
