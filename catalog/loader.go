// ABOUTME: Dataset loader for the cold-room analyzer
// ABOUTME: Parses a JSON or YAML dataset file into the typed Dataset shape

package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/refritek/coldroom-analyzer/models"
)

// wire shapes for the dataset document. Capacity tables arrive as
// nested maps keyed by width then length (stringly keyed so both JSON
// and YAML documents decode the same way); catalogs arrive as ordered
// model lists.

type wireConfig struct {
	DimensionLimits     models.DimensionLimits        `json:"dimension_limits_ft" yaml:"dimension_limits_ft"`
	HeightBuckets       models.HeightBucketThresholds `json:"height_bucket_thresholds_ft" yaml:"height_bucket_thresholds_ft"`
	HeightFactors       map[string]float64            `json:"height_factors" yaml:"height_factors"`
	SafetyFactorDefault float64                       `json:"safety_factor_default" yaml:"safety_factor_default"`
	FamilyByUsage       map[string]models.Family      `json:"family_by_usage" yaml:"family_by_usage"`
	PlaceholderModels   map[string]string             `json:"placeholder_models" yaml:"placeholder_models"`
	SelectionRules      models.SelectionRules         `json:"selection_rules" yaml:"selection_rules"`
}

type wireCatalogRow struct {
	Model         string    `json:"model" yaml:"model"`
	CapacityBtuHr []float64 `json:"capacity_btu_hr" yaml:"capacity_btu_hr"`
}

type wireCatalog struct {
	Columns []int            `json:"columns_tevap_f" yaml:"columns_tevap_f"`
	Models  []wireCatalogRow `json:"models" yaml:"models"`
}

type wireDataset struct {
	Config         wireConfig                           `json:"config" yaml:"config"`
	UsageProfiles  map[string]models.UsageProfile       `json:"usage_profiles" yaml:"usage_profiles"`
	CapacityTables map[string]map[string]map[string]float64 `json:"capacity_tables" yaml:"capacity_tables"`
	Catalogs       map[string]wireCatalog               `json:"evaporator_catalogs" yaml:"evaporator_catalogs"`
	Dimensions     map[string]models.EvapDimensions     `json:"evaporator_dimensions_mm" yaml:"evaporator_dimensions_mm"`
	Meta           models.CatalogMeta                   `json:"meta" yaml:"meta"`
	Thermal        *models.ThermalData                  `json:"thermal,omitempty" yaml:"thermal,omitempty"`
}

// Load reads a dataset document from path. The extension picks the
// decoder: .json, or .yaml/.yml.
func Load(path string) (*models.Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var wire wireDataset
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(raw, &wire); err != nil {
			return nil, fmt.Errorf("parse dataset %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &wire); err != nil {
			return nil, fmt.Errorf("parse dataset %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported dataset format: %s", filepath.Ext(path))
	}

	return build(&wire)
}

// build converts wire shapes into the dense engine dataset and checks
// the minimal structural contract.
func build(wire *wireDataset) (*models.Dataset, error) {
	ds := &models.Dataset{
		UsageProfiles:  wire.UsageProfiles,
		CapacityTables: make(map[string]*models.CapacityTable, len(wire.CapacityTables)),
		Catalogs:       make(map[string]*models.EvapCatalog, len(wire.Catalogs)),
		Dimensions:     wire.Dimensions,
		Meta:           wire.Meta,
		Thermal:        wire.Thermal,
	}

	ds.Config = models.EngineConfig{
		DimensionLimits:     wire.Config.DimensionLimits,
		HeightBuckets:       wire.Config.HeightBuckets,
		HeightFactors:       make(map[int]float64, len(wire.Config.HeightFactors)),
		SafetyFactorDefault: wire.Config.SafetyFactorDefault,
		FamilyByUsage:       wire.Config.FamilyByUsage,
		PlaceholderModels:   make(map[models.Family]string, len(wire.Config.PlaceholderModels)),
		SelectionRules:      wire.Config.SelectionRules,
	}
	for bucket, factor := range wire.Config.HeightFactors {
		b, err := strconv.Atoi(bucket)
		if err != nil {
			return nil, fmt.Errorf("height factor bucket %q: %w", bucket, err)
		}
		ds.Config.HeightFactors[b] = factor
	}
	for fam, model := range wire.Config.PlaceholderModels {
		ds.Config.PlaceholderModels[models.Family(fam)] = model
	}

	lim := ds.Config.DimensionLimits
	if lim.MinFt <= 0 || lim.MaxFt <= lim.MinFt {
		return nil, fmt.Errorf("invalid dimension limits: %d..%d ft", lim.MinFt, lim.MaxFt)
	}

	for sheet, rows := range wire.CapacityTables {
		table, err := buildCapacityTable(rows, lim)
		if err != nil {
			return nil, fmt.Errorf("capacity table %s: %w", sheet, err)
		}
		ds.CapacityTables[sheet] = table
	}
	if _, ok := ds.CapacityTables["FRUTAS"]; !ok {
		return nil, fmt.Errorf("dataset is missing the FRUTAS capacity table")
	}

	for key, wc := range wire.Catalogs {
		cat, err := buildCatalog(key, wc)
		if err != nil {
			return nil, fmt.Errorf("catalog %s: %w", key, err)
		}
		ds.Catalogs[key] = cat
	}
	for _, required := range []string{models.CatalogDual, models.CatalogFrontal} {
		if _, ok := ds.Catalogs[required]; !ok {
			return nil, fmt.Errorf("dataset is missing the %s catalog", required)
		}
	}

	return ds, nil
}

// buildCapacityTable densifies a width->length->kBTU map over the
// configured ft range. Every cell in range must be present.
func buildCapacityTable(rows map[string]map[string]float64, lim models.DimensionLimits) (*models.CapacityTable, error) {
	span := lim.MaxFt - lim.MinFt + 1
	table := &models.CapacityTable{
		MinFt:  lim.MinFt,
		MaxFt:  lim.MaxFt,
		KBtuHr: make([][]float64, span),
	}
	for i := range table.KBtuHr {
		table.KBtuHr[i] = make([]float64, span)
	}

	for w := lim.MinFt; w <= lim.MaxFt; w++ {
		row, ok := rows[strconv.Itoa(w)]
		if !ok {
			return nil, fmt.Errorf("missing width row %d", w)
		}
		for l := lim.MinFt; l <= lim.MaxFt; l++ {
			val, ok := row[strconv.Itoa(l)]
			if !ok {
				return nil, fmt.Errorf("missing cell (%d,%d)", w, l)
			}
			table.KBtuHr[w-lim.MinFt][l-lim.MinFt] = val
		}
	}
	return table, nil
}

// buildCatalog validates row alignment and column ordering.
func buildCatalog(key string, wc wireCatalog) (*models.EvapCatalog, error) {
	if len(wc.Columns) == 0 {
		return nil, fmt.Errorf("no temperature columns")
	}
	if !sort.IntsAreSorted(wc.Columns) {
		return nil, fmt.Errorf("temperature columns are not sorted ascending")
	}
	if len(wc.Models) == 0 {
		return nil, fmt.Errorf("no models")
	}

	cat := &models.EvapCatalog{
		Key:     key,
		Columns: wc.Columns,
		Rows:    make([]models.CatalogRow, 0, len(wc.Models)),
	}
	for _, row := range wc.Models {
		if len(row.CapacityBtuHr) != len(wc.Columns) {
			return nil, fmt.Errorf("model %s: %d capacities for %d columns", row.Model, len(row.CapacityBtuHr), len(wc.Columns))
		}
		cat.Rows = append(cat.Rows, models.CatalogRow{
			Model:         row.Model,
			CapacityBtuHr: row.CapacityBtuHr,
		})
	}
	return cat, nil
}
