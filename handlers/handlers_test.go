// ABOUTME: Shared test fixtures for the handler tests
// ABOUTME: Builds a handler around a small in-memory dataset

package handlers

import (
	"time"

	"github.com/refritek/coldroom-analyzer/cache"
	"github.com/refritek/coldroom-analyzer/config"
	"github.com/refritek/coldroom-analyzer/models"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:             "8080",
		CacheTTL:         300,
		BatchMaxRooms:    5,
		BatchParallelism: 2,
	}
}

func testDataset(withThermal bool) *models.Dataset {
	table := &models.CapacityTable{MinFt: 4, MaxFt: 42}
	for w := 4; w <= 42; w++ {
		row := make([]float64, 0, 42-4+1)
		for l := 4; l <= 42; l++ {
			row = append(row, 0.1*float64(w)*float64(l))
		}
		table.KBtuHr = append(table.KBtuHr, row)
	}

	cols := []int{-20, 0, 25}
	ds := &models.Dataset{
		Config: models.EngineConfig{
			DimensionLimits:     models.DimensionLimits{MinFt: 4, MaxFt: 42},
			HeightBuckets:       models.HeightBucketThresholds{Max8: 9, Max10: 11, Max12: 13},
			HeightFactors:       map[int]float64{8: 1.0, 10: 1.15, 12: 1.3},
			SafetyFactorDefault: 1.0,
			FamilyByUsage: map[string]models.Family{
				"CARNES":  models.FamilyFrontal,
				"HELADOS": models.FamilyDual,
			},
			PlaceholderModels: map[models.Family]string{
				models.FamilyFrontal: "WEF-S",
				models.FamilyDual:    "WED-S",
			},
			SelectionRules: models.SelectionRules{
				MinLoadFractionForPlaceholder: 0.35,
				AllowOverloadMultiplier:       1.05,
			},
		},
		UsageProfiles: map[string]models.UsageProfile{
			"CARNES":  {TevapF: 23, TcamF: 33},
			"FRUVER":  {TevapF: 25, TcamF: 38},
			"HELADOS": {TevapF: -20, TcamF: -10},
		},
		CapacityTables: map[string]*models.CapacityTable{
			"FRUTAS": table,
			"CARNES": table,
		},
		Catalogs: map[string]*models.EvapCatalog{
			models.CatalogFrontal: {
				Key:     models.CatalogFrontal,
				Columns: cols,
				Rows: []models.CatalogRow{
					{Model: "WEF-060", CapacityBtuHr: []float64{6000, 6000, 6000}},
					{Model: "WEF-120", CapacityBtuHr: []float64{12000, 12000, 12000}},
					{Model: "WEF-250", CapacityBtuHr: []float64{25000, 25000, 25000}},
				},
			},
			models.CatalogDual: {
				Key:     models.CatalogDual,
				Columns: cols,
				Rows: []models.CatalogRow{
					{Model: "WED-090", CapacityBtuHr: []float64{9000, 9000, 9000}},
				},
			},
		},
		Meta: models.CatalogMeta{
			FitCheck:                models.FitCheckRules{AllowRotate: true, ValidateHeight: true},
			FrontalHeightThresholdM: 3.0,
			ThrowLimitsM: map[string]float64{
				models.CatalogDual:    8.0,
				models.CatalogFrontal: 8.0,
			},
			DefaultThrowLimitM: 8.0,
		},
	}

	if withThermal {
		ds.Thermal = &models.ThermalData{
			InsulationKFactors: map[string]float64{"PUR": 0.16},
			AirChanges: []models.AirChangeRow{
				{MaxVolumeFt3: 50000, AirChanges24hRefrigeration: 5.0, AirChanges24hFreezing: 4.0},
			},
			Foods: map[string]models.FoodProperties{},
			Profiles: map[string]models.ThermalProfile{
				"conservacion": {ID: "conservacion", Defaults: map[string]float64{"run_hours": 20, "t_internal_c": 2}},
			},
		}
	}
	return ds
}

func newTestHandler(withThermal bool) *Handler {
	return NewHandler(testConfig(), cache.New(5*time.Minute), testDataset(withThermal))
}
