// ABOUTME: Parsed dataset shapes consumed by the sizing engine
// ABOUTME: Capacity tables, evaporator catalogs, dimensions and meta rules

package models

import "sort"

// Catalog keys within a Dataset. The taller-unit frontal catalog is
// optional; the other two are required.
const (
	CatalogDual        = "dual"
	CatalogFrontal     = "frontal"
	CatalogFrontalTall = "frontal_tall"
)

// DimensionLimits bounds the supported room footprint in rounded feet.
type DimensionLimits struct {
	MinFt int `json:"min_ft" yaml:"min_ft"`
	MaxFt int `json:"max_ft" yaml:"max_ft"`
}

// HeightBucketThresholds holds the rounded-ft upper bound of each
// height bucket.
type HeightBucketThresholds struct {
	Max8  int `json:"max_8" yaml:"max_8"`
	Max10 int `json:"max_10" yaml:"max_10"`
	Max12 int `json:"max_12" yaml:"max_12"`
}

// SelectionRules tunes the catalog selector.
type SelectionRules struct {
	// Loads at or below this fraction of the smallest model's capacity
	// resolve to the family placeholder model.
	MinLoadFractionForPlaceholder float64 `json:"min_load_fraction_for_placeholder" yaml:"min_load_fraction_for_placeholder"`
	// A model is accepted when capacity*multiplier covers the per-unit load.
	AllowOverloadMultiplier float64 `json:"allow_overload_multiplier" yaml:"allow_overload_multiplier"`
}

// EngineConfig is the static configuration block of a dataset.
type EngineConfig struct {
	DimensionLimits     DimensionLimits        `json:"dimension_limits_ft" yaml:"dimension_limits_ft"`
	HeightBuckets       HeightBucketThresholds `json:"height_bucket_thresholds_ft" yaml:"height_bucket_thresholds_ft"`
	HeightFactors       map[int]float64        `json:"height_factors" yaml:"height_factors"`
	SafetyFactorDefault float64                `json:"safety_factor_default" yaml:"safety_factor_default"`
	FamilyByUsage       map[string]Family      `json:"family_by_usage" yaml:"family_by_usage"`
	PlaceholderModels   map[Family]string      `json:"placeholder_models" yaml:"placeholder_models"`
	SelectionRules      SelectionRules         `json:"selection_rules" yaml:"selection_rules"`
}

// UsageProfile carries the operating temperatures of a usage category.
type UsageProfile struct {
	TevapF float64 `json:"tevap_f" yaml:"tevap_f"`
	TcamF  float64 `json:"tcam_f" yaml:"tcam_f"`
}

// CapacityTable is a dense 2-D base-load lookup in kBTU/h, keyed by
// (width_ft, length_ft) over [MinFt, MaxFt]. The key domain is a
// contract: every cell inside the range is populated.
type CapacityTable struct {
	MinFt int
	MaxFt int
	// KBtuHr[w-MinFt][l-MinFt] = base load for width w, length l.
	KBtuHr [][]float64
}

// At returns the base load for the given footprint, or false when the
// pair is outside the table range.
func (t *CapacityTable) At(widthFt, lengthFt int) (float64, bool) {
	if widthFt < t.MinFt || widthFt > t.MaxFt || lengthFt < t.MinFt || lengthFt > t.MaxFt {
		return 0, false
	}
	return t.KBtuHr[widthFt-t.MinFt][lengthFt-t.MinFt], true
}

// CatalogRow is one evaporator model with its rated capacity per
// temperature column, aligned with EvapCatalog.Columns.
type CatalogRow struct {
	Model         string
	CapacityBtuHr []float64
}

// EvapCatalog is a capacity-by-temperature table for one product line.
// Rows are ordered by ascending capacity; Columns are sorted ascending
// evaporation-temperature breakpoints in °F.
type EvapCatalog struct {
	Key     string
	Columns []int
	Rows    []CatalogRow
}

// FloorColumn returns the index of the largest column value <= tevapF,
// or 0 (the lowest column) when none qualifies. Never fails.
func (c *EvapCatalog) FloorColumn(tevapF float64) int {
	idx := sort.Search(len(c.Columns), func(i int) bool {
		return float64(c.Columns[i]) > tevapF
	})
	if idx == 0 {
		return 0
	}
	return idx - 1
}

// EvapDimensions is the physical envelope of a model in millimetres.
type EvapDimensions struct {
	DepthMM  float64 `json:"depth_mm" yaml:"depth_mm"`
	WidthMM  float64 `json:"width_mm" yaml:"width_mm"`
	HeightMM float64 `json:"height_mm" yaml:"height_mm"`
}

// FitCheckRules controls the geometric fit-check.
type FitCheckRules struct {
	AllowRotate    bool `json:"allow_rotate" yaml:"allow_rotate"`
	ValidateHeight bool `json:"validate_height" yaml:"validate_height"`
}

// CatalogMeta carries fit-check and throw-distance rules.
type CatalogMeta struct {
	FitCheck FitCheckRules `json:"fitcheck" yaml:"fitcheck"`
	// Rooms taller than this promote the frontal family to the
	// taller-unit catalog (auto mode only).
	FrontalHeightThresholdM float64 `json:"frontal_height_threshold_m" yaml:"frontal_height_threshold_m"`
	// Maximum air throw in metres per catalog key.
	ThrowLimitsM map[string]float64 `json:"throw_limits_m" yaml:"throw_limits_m"`
	// Fallback when a catalog key has no explicit limit.
	DefaultThrowLimitM float64 `json:"default_throw_limit_m" yaml:"default_throw_limit_m"`
}

// ThrowLimit returns the throw-distance limit for a catalog key.
func (m *CatalogMeta) ThrowLimit(catalogKey string) float64 {
	if lim, ok := m.ThrowLimitsM[catalogKey]; ok {
		return lim
	}
	return m.DefaultThrowLimitM
}

// Dataset is the full, immutable data source the engine operates on.
// It is read-only after load and safe for concurrent use.
type Dataset struct {
	Config         EngineConfig
	UsageProfiles  map[string]UsageProfile
	CapacityTables map[string]*CapacityTable
	Catalogs       map[string]*EvapCatalog
	Dimensions     map[string]EvapDimensions
	Meta           CatalogMeta
	Thermal        *ThermalData
}
