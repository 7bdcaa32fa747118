// ABOUTME: Health and catalog-summary endpoints
// ABOUTME: Reports dataset status, loaded sheets and catalog sizes

package handlers

import (
	"net/http"
	"sort"
)

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	ds := h.engine.Dataset()
	loadedAt := h.loadedAt
	thermalLoaded := h.thermal != nil
	h.mu.RUnlock()

	resp := map[string]interface{}{
		"status":            "ok",
		"dataset_loaded_at": loadedAt,
		"capacity_sheets":   len(ds.CapacityTables),
		"catalogs":          len(ds.Catalogs),
		"thermal_loaded":    thermalLoaded,
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// CatalogSummary describes the loaded dataset for UI pickers.
type CatalogSummary struct {
	Sheets        []string       `json:"sheets"`
	Profiles      []string       `json:"profiles"`
	Catalogs      map[string]int `json:"catalogs"` // key -> model count
	MinFt         int            `json:"min_ft"`
	MaxFt         int            `json:"max_ft"`
	HasDimensions bool           `json:"has_dimensions"`
}

// Catalog returns a summary of the loaded dataset. The response is
// cached until the TTL expires or the dataset reloads.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	if cached, found := h.cache.Get("catalog:summary"); found {
		h.writeJSON(w, http.StatusOK, cached)
		return
	}

	ds := h.currentEngine().Dataset()
	summary := CatalogSummary{
		Catalogs:      make(map[string]int, len(ds.Catalogs)),
		MinFt:         ds.Config.DimensionLimits.MinFt,
		MaxFt:         ds.Config.DimensionLimits.MaxFt,
		HasDimensions: len(ds.Dimensions) > 0,
	}
	for sheet := range ds.CapacityTables {
		summary.Sheets = append(summary.Sheets, sheet)
	}
	sort.Strings(summary.Sheets)
	for key := range ds.UsageProfiles {
		summary.Profiles = append(summary.Profiles, key)
	}
	sort.Strings(summary.Profiles)
	for key, cat := range ds.Catalogs {
		summary.Catalogs[key] = len(cat.Rows)
	}

	h.cache.Set("catalog:summary", summary)
	h.writeJSON(w, http.StatusOK, summary)
}
