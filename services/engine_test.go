// ABOUTME: Tests for the cold-room sizing engine orchestrator
// ABOUTME: Covers validation, fallbacks, overrides and end-to-end scenarios

package services

import (
	"strings"
	"testing"

	"github.com/refritek/coldroom-analyzer/models"
)

// testDataset builds a small but complete dataset. Capacity tables use
// kBTU = 0.1 * width_ft * length_ft so expected loads are easy to
// compute by hand.
func testDataset() *models.Dataset {
	cfg := models.EngineConfig{
		DimensionLimits:     models.DimensionLimits{MinFt: 4, MaxFt: 42},
		HeightBuckets:       models.HeightBucketThresholds{Max8: 9, Max10: 11, Max12: 13},
		HeightFactors:       map[int]float64{8: 1.0, 10: 1.15, 12: 1.3},
		SafetyFactorDefault: 1.0,
		FamilyByUsage: map[string]models.Family{
			"CARNES":           models.FamilyFrontal,
			"LACTEOS":          models.FamilyFrontal,
			"FRUVER":           models.FamilyFrontal,
			"PROCESO":          models.FamilyFrontal,
			"HELADOS":          models.FamilyDual,
			"COMIDA CONGELADA": models.FamilyDual,
		},
		PlaceholderModels: map[models.Family]string{
			models.FamilyFrontal: "WEF-S",
			models.FamilyDual:    "WED-S",
		},
		SelectionRules: models.SelectionRules{
			MinLoadFractionForPlaceholder: 0.35,
			AllowOverloadMultiplier:       1.05,
		},
	}

	table := func() *models.CapacityTable {
		t := &models.CapacityTable{MinFt: 4, MaxFt: 42}
		for w := 4; w <= 42; w++ {
			row := make([]float64, 0, 42-4+1)
			for l := 4; l <= 42; l++ {
				row = append(row, 0.1*float64(w)*float64(l))
			}
			t.KBtuHr = append(t.KBtuHr, row)
		}
		return t
	}

	cols := []int{-20, -10, 0, 10, 20, 25}
	flat := func(c float64) []float64 {
		caps := make([]float64, len(cols))
		for i := range caps {
			caps[i] = c
		}
		return caps
	}

	frontal := &models.EvapCatalog{
		Key:     models.CatalogFrontal,
		Columns: cols,
		Rows: []models.CatalogRow{
			{Model: "WEF-060", CapacityBtuHr: flat(6000)},
			{Model: "WEF-120", CapacityBtuHr: flat(12000)},
			{Model: "WEF-250", CapacityBtuHr: flat(25000)},
			{Model: "WEF-400", CapacityBtuHr: flat(40000)},
		},
	}
	tall := &models.EvapCatalog{
		Key:     models.CatalogFrontalTall,
		Columns: cols,
		Rows: []models.CatalogRow{
			{Model: "WEFM-300", CapacityBtuHr: flat(30000)},
			{Model: "WEFM-500", CapacityBtuHr: flat(50000)},
		},
	}
	dual := &models.EvapCatalog{
		Key:     models.CatalogDual,
		Columns: cols,
		Rows: []models.CatalogRow{
			{Model: "WED-090", CapacityBtuHr: flat(9000)},
			{Model: "WED-180", CapacityBtuHr: flat(18000)},
			{Model: "WED-350", CapacityBtuHr: flat(35000)},
		},
	}

	return &models.Dataset{
		Config: cfg,
		UsageProfiles: map[string]models.UsageProfile{
			"CARNES":           {TevapF: 23, TcamF: 33},
			"LACTEOS":          {TevapF: 25, TcamF: 36},
			"FRUVER":           {TevapF: 25, TcamF: 38},
			"PROCESO":          {TevapF: 35, TcamF: 45},
			"COMIDA CONGELADA": {TevapF: -10, TcamF: 0},
			"HELADOS":          {TevapF: -20, TcamF: -10},
		},
		CapacityTables: map[string]*models.CapacityTable{
			"CARNES":  table(),
			"LACTEOS": table(),
			"FRUTAS":  table(),
			"CC":      table(),
			"HELADO":  table(),
		},
		Catalogs: map[string]*models.EvapCatalog{
			models.CatalogFrontal:     frontal,
			models.CatalogFrontalTall: tall,
			models.CatalogDual:        dual,
		},
		Dimensions: map[string]models.EvapDimensions{
			"WEF-060":  {DepthMM: 600, WidthMM: 1200, HeightMM: 500},
			"WEF-120":  {DepthMM: 700, WidthMM: 1600, HeightMM: 600},
			"WEF-250":  {DepthMM: 800, WidthMM: 2200, HeightMM: 700},
			"WEF-400":  {DepthMM: 900, WidthMM: 3000, HeightMM: 800},
			"WEFM-300": {DepthMM: 1200, WidthMM: 2500, HeightMM: 900},
			"WEFM-500": {DepthMM: 1300, WidthMM: 3200, HeightMM: 1000},
			"WED-090":  {DepthMM: 700, WidthMM: 1400, HeightMM: 600},
			"WED-180":  {DepthMM: 800, WidthMM: 2000, HeightMM: 700},
			"WED-350":  {DepthMM: 900, WidthMM: 2800, HeightMM: 800},
		},
		Meta: models.CatalogMeta{
			FitCheck:                models.FitCheckRules{AllowRotate: true, ValidateHeight: true},
			FrontalHeightThresholdM: 3.0,
			ThrowLimitsM: map[string]float64{
				models.CatalogDual:        8.0,
				models.CatalogFrontal:     8.0,
				models.CatalogFrontalTall: 14.0,
			},
			DefaultThrowLimitM: 8.0,
		},
	}
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func TestCompute_RejectsNonPositiveCount(t *testing.T) {
	e := NewEngine(testDataset())

	res := e.Compute(models.ColdRoomInputs{
		LengthM: 3, WidthM: 3, HeightM: 2.5,
		Usage:        "CARNES",
		NEvaporators: intPtr(0),
	})

	if res.Valid {
		t.Error("Expected invalid result for n_evaporators=0")
	}
	if len(res.Messages) == 0 {
		t.Error("Expected an explanatory message")
	}
}

func TestCompute_ScenarioCarnesAuto(t *testing.T) {
	// Room 3x3x2.5 m, usage CARNES, auto mode, default safety factor.
	// 3 m -> 10 ft; 2.5 m -> 8 ft -> bucket 8 (factor 1.0).
	// Base load: 0.1*10*10 = 10 kBTU -> 10000 BTU/h.
	// N=1 lands on WEF-120 at 83.3% utilization, inside the 70-90% band,
	// and collects the small-room bonus.
	e := NewEngine(testDataset())

	res := e.Compute(models.ColdRoomInputs{
		LengthM: 3, WidthM: 3, HeightM: 2.5,
		Usage: "CARNES",
	})

	if !res.Valid {
		t.Fatalf("Expected valid result, messages: %v", res.Messages)
	}
	if res.HeightBucketFt != 8 {
		t.Errorf("Expected height bucket 8, got %d", res.HeightBucketFt)
	}
	if res.LoadBtuHr != 10000 {
		t.Errorf("Expected load 10000 BTU/h, got %.1f", res.LoadBtuHr)
	}
	if res.EvapFamily != models.FamilyFrontal {
		t.Errorf("Expected frontal family, got %s", res.EvapFamily)
	}
	if res.NUsed != 1 {
		t.Errorf("Expected auto to choose N=1, got %d", res.NUsed)
	}
	if !strings.Contains(res.AutoNote, "N=1") || !strings.Contains(res.AutoNote, "utilization") {
		t.Errorf("Expected auto note with count and utilization, got %q", res.AutoNote)
	}
	if res.EvapModel != "WEF-120 - FRONTAL" {
		t.Errorf("Expected WEF-120 - FRONTAL, got %q", res.EvapModel)
	}
}

func TestCompute_OversizedRoomUsesEquivalentSide(t *testing.T) {
	// 50 m -> 164 ft, far beyond the 42 ft table bound. The resolver
	// substitutes a clamped equivalent square side and reports it.
	e := NewEngine(testDataset())

	res := e.Compute(models.ColdRoomInputs{
		LengthM: 50, WidthM: 3, HeightM: 3,
		Usage: "CARNES",
	})

	if !res.Valid {
		t.Fatalf("Expected valid result, messages: %v", res.Messages)
	}
	if res.LoadBtuHr <= 0 {
		t.Errorf("Expected non-null load, got %.1f", res.LoadBtuHr)
	}
	found := false
	for _, m := range res.Messages {
		if strings.Contains(m, "equivalent square side") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected equivalent-side diagnostic, got %v", res.Messages)
	}
}

func TestCompute_PlaceholderOnTinyLoad(t *testing.T) {
	// 2 m cube -> 7 ft sides -> 4.9 kBTU total. Split over 4 units the
	// per-unit load is 1225 BTU/h, below 35% of the smallest frontal
	// model (2100), so each unit resolves to the placeholder.
	e := NewEngine(testDataset())

	res := e.Compute(models.ColdRoomInputs{
		LengthM: 2, WidthM: 2, HeightM: 2,
		Usage:        "FRUTAS",
		NEvaporators: intPtr(4),
	})

	if !res.Valid {
		t.Fatalf("Expected valid result, messages: %v", res.Messages)
	}
	if res.EvapModel != "WEF-S" {
		t.Errorf("Expected placeholder WEF-S, got %q", res.EvapModel)
	}
	if !res.FitOK {
		t.Error("Placeholder rule reports fit_ok=true")
	}
	if res.NUsed != 4 {
		t.Errorf("Expected N=4 preserved, got %d", res.NUsed)
	}
}

func TestCompute_DualOverrideWinsOverUsageMapping(t *testing.T) {
	// CARNES maps to frontal, but an explicit dual override must win.
	e := NewEngine(testDataset())

	res := e.Compute(models.ColdRoomInputs{
		LengthM: 3, WidthM: 3, HeightM: 2.5,
		Usage:          "CARNES",
		FamilyOverride: strPtr(models.OverrideDual),
	})

	if res.EvapFamily != models.FamilyDual {
		t.Errorf("Expected dual family, got %s", res.EvapFamily)
	}
	if !strings.Contains(res.EvapModel, "DUAL") {
		t.Errorf("Expected a dual catalog model, got %q", res.EvapModel)
	}
}

func TestCompute_ExplicitCountNeverChanged(t *testing.T) {
	e := NewEngine(testDataset())

	for n := 1; n <= 4; n++ {
		res := e.Compute(models.ColdRoomInputs{
			LengthM: 3, WidthM: 3, HeightM: 2.5,
			Usage:        "CARNES",
			NEvaporators: intPtr(n),
		})
		if res.NRequested == nil || *res.NRequested != n {
			t.Errorf("n=%d: expected n_requested preserved", n)
		}
		if res.NUsed != n {
			t.Errorf("n=%d: engine changed count to %d", n, res.NUsed)
		}
	}
}

func TestCompute_HeightAboveBucketsFallsBackTo12(t *testing.T) {
	// 5 m -> 16 ft, beyond the 12-ft bucket threshold. The engine must
	// substitute the 12-ft bucket and say so, never silently truncate.
	e := NewEngine(testDataset())

	res := e.Compute(models.ColdRoomInputs{
		LengthM: 3, WidthM: 3, HeightM: 5,
		Usage: "CARNES",
	})

	if res.HeightBucketFt != 12 {
		t.Errorf("Expected 12-ft bucket substitution, got %d", res.HeightBucketFt)
	}
	if res.HeightFactor != 1.3 {
		t.Errorf("Expected 12-ft factor 1.3, got %.2f", res.HeightFactor)
	}
	found := false
	for _, m := range res.Messages {
		if strings.Contains(m, "12 ft") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected height diagnostic, got %v", res.Messages)
	}
}

func TestCompute_TallRoomPromotesToTallCatalog(t *testing.T) {
	// Rooms above the 3.0 m threshold use the taller-unit frontal
	// catalog in auto mode.
	e := NewEngine(testDataset())

	res := e.Compute(models.ColdRoomInputs{
		LengthM: 3, WidthM: 3, HeightM: 3.5,
		Usage: "CARNES",
	})

	if !strings.Contains(res.EvapModel, "WEFM") && res.EvapModel != "WEF-S" {
		t.Errorf("Expected a taller-unit model, got %q", res.EvapModel)
	}
}

func TestCompute_UnknownUsageFallsBackWithMessage(t *testing.T) {
	e := NewEngine(testDataset())

	res := e.Compute(models.ColdRoomInputs{
		LengthM: 3, WidthM: 3, HeightM: 2.5,
		Usage: "FLORES",
	})

	if !res.Valid {
		t.Fatalf("Expected valid result, messages: %v", res.Messages)
	}
	found := false
	for _, m := range res.Messages {
		if strings.Contains(m, "No usage profile") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected profile fallback diagnostic, got %v", res.Messages)
	}
	// Default profile is FRUVER.
	if res.TevapF != 25 {
		t.Errorf("Expected default profile tevap 25, got %.1f", res.TevapF)
	}
}

func TestCompute_BaseLoadMonotonicInLength(t *testing.T) {
	// Within table bounds, growing the room never shrinks the load.
	e := NewEngine(testDataset())

	prev := -1.0
	for lengthM := 2.0; lengthM <= 12.0; lengthM += 0.5 {
		res := e.Compute(models.ColdRoomInputs{
			LengthM: lengthM, WidthM: 3, HeightM: 2.5,
			Usage: "CARNES",
		})
		if res.LoadBtuHr < prev {
			t.Fatalf("Load decreased at length %.1f m: %.1f < %.1f", lengthM, res.LoadBtuHr, prev)
		}
		prev = res.LoadBtuHr
	}
}

func TestCompute_SafetyFactorScalesLoad(t *testing.T) {
	e := NewEngine(testDataset())

	base := e.Compute(models.ColdRoomInputs{
		LengthM: 3, WidthM: 3, HeightM: 2.5, Usage: "CARNES",
	})
	boosted := e.Compute(models.ColdRoomInputs{
		LengthM: 3, WidthM: 3, HeightM: 2.5, Usage: "CARNES",
		SafetyFactor: floatPtr(1.2),
	})

	want := base.LoadBtuHr * 1.2
	if diff := boosted.LoadBtuHr - want; diff > 0.001 || diff < -0.001 {
		t.Errorf("Expected load %.1f with safety 1.2, got %.1f", want, boosted.LoadBtuHr)
	}
}

func TestCompute_AutoModeIsDeterministic(t *testing.T) {
	e := NewEngine(testDataset())
	in := models.ColdRoomInputs{
		LengthM: 4.5, WidthM: 3.2, HeightM: 2.8,
		Usage: "LACTEOS",
	}

	first := e.Compute(in)
	for i := 0; i < 10; i++ {
		again := e.Compute(in)
		if again.NUsed != first.NUsed || again.EvapModel != first.EvapModel {
			t.Fatalf("Auto mode diverged: run %d chose N=%d %q vs N=%d %q",
				i, again.NUsed, again.EvapModel, first.NUsed, first.EvapModel)
		}
	}
}
