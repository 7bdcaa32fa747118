// ABOUTME: Detailed thermal-load calculator for refrigerated rooms
// ABOUTME: Transmission, infiltration, internal and product loads per room

package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/refritek/coldroom-analyzer/models"
)

// Unit conversion constants used across the load components.
const (
	feetPerMeterExact = 3.28084
	btuHrPerWatt      = 3.412
	btuHrPerHP        = 2544.43
	lbPerKg           = 2.2046226218
	btuLbPerKJKg      = 0.429922614
	kjKgKPerBtuLbF    = 1.0 / 0.2388458966
	btuHrPerKW        = 3412.142
	btuHrPerTR        = 12000.0
)

// ThermalCalculator computes detailed room loads from the optional
// thermal dataset section. Read-only after construction.
type ThermalCalculator struct {
	data *models.ThermalData
}

// NewThermalCalculator creates a calculator; data must be non-nil.
func NewThermalCalculator(data *models.ThermalData) *ThermalCalculator {
	return &ThermalCalculator{data: data}
}

// profileDefaults returns the defaults map of the requested operating
// profile, falling back to any profile when the id is unknown.
func (c *ThermalCalculator) profileDefaults(profileID string) map[string]float64 {
	if p, ok := c.data.Profiles[profileID]; ok {
		return p.Defaults
	}
	for _, p := range c.data.Profiles {
		return p.Defaults
	}
	return nil
}

// airChanges looks up air changes per 24 h by room volume. Rows are
// ordered by ascending volume ceiling; the last row covers the rest.
func (c *ThermalCalculator) airChanges(volumeFt3 float64, freezing bool) float64 {
	pick := func(row models.AirChangeRow) float64 {
		if freezing {
			return row.AirChanges24hFreezing
		}
		return row.AirChanges24hRefrigeration
	}
	for _, row := range c.data.AirChanges {
		if volumeFt3 <= row.MaxVolumeFt3 {
			return pick(row)
		}
	}
	if n := len(c.data.AirChanges); n > 0 {
		return pick(c.data.AirChanges[n-1])
	}
	return 0
}

// uFactor computes the transmission U value from insulation type and
// thickness, in the table's legacy Btu/(h·ft²·°F·in) units.
func (c *ThermalCalculator) uFactor(insulationType string, thicknessIn float64) float64 {
	k, ok := c.data.InsulationKFactors[insulationType]
	if !ok {
		k = 0.16
	}
	if thicknessIn <= 0 {
		thicknessIn = 1.0
	}
	return k / thicknessIn
}

// saturationPressurePa approximates water vapor saturation pressure
// (Tetens).
func saturationPressurePa(tC float64) float64 {
	return 610.94 * math.Exp((17.625*tC)/(tC+243.04))
}

// humidityRatio returns kg water per kg dry air at the given RH.
func humidityRatio(tC, rh float64) float64 {
	const pressurePa = 101325.0
	if rh < 0 {
		rh = 0
	}
	if rh > 1 {
		rh = 1
	}
	pv := rh * saturationPressurePa(tC)
	denom := pressurePa - pv
	if denom < 1.0 {
		denom = 1.0
	}
	return 0.621945 * pv / denom
}

// airEnthalpyBtuLb returns moist-air enthalpy in Btu per lb dry air.
func airEnthalpyBtuLb(tC, w float64) float64 {
	hKJKg := 1.006*tC + w*(2501.0+1.86*tC)
	return hKJKg * btuLbPerKJKg
}

// infiltrationResult carries the infiltration component with its
// psychrometric split and bookkeeping.
type infiltrationResult struct {
	totalBtuHr    float64
	sensibleBtuHr float64
	latentBtuHr   float64
	ach           float64
	cfm           float64
	sensibleOnly  bool
	notes         string
}

// infiltration computes air-change load. Latent load needs outside RH;
// without it the sensible 1.08·CFM·ΔT estimate stands alone.
func (c *ThermalCalculator) infiltration(room models.ThermalRoomInputs, volumeFt3, tIntC, runHours float64) infiltrationResult {
	var res infiltrationResult

	tIntF := tIntC*9/5 + 32
	tExtC := room.OutsideAirTempC
	tExtF := tExtC*9/5 + 32

	freezing := tIntC < -5
	ach := 0.0
	if room.AirChanges24hOverride != nil && *room.AirChanges24hOverride > 0 {
		ach = *room.AirChanges24hOverride
	} else {
		ach = c.airChanges(volumeFt3, freezing)
		ach *= 1.0 + float64(room.Doors)*0.15
	}
	cfm := (ach / 24.0) * (volumeFt3 / 60.0)
	res.ach = ach
	res.cfm = cfm

	res.sensibleBtuHr = 1.08 * cfm * (tExtF - tIntF)
	res.totalBtuHr = res.sensibleBtuHr

	insideRH := 0.85
	if freezing {
		insideRH = 0.9
	}
	if room.InsideRH != nil {
		insideRH = *room.InsideRH
	} else {
		res.notes = fmt.Sprintf("default_inside_RH=%.2f", insideRH)
	}

	if room.OutsideRH <= 0 {
		res.sensibleOnly = true
	} else {
		wOut := humidityRatio(tExtC, room.OutsideRH)
		wIn := humidityRatio(tIntC, insideRH)
		hOut := airEnthalpyBtuLb(tExtC, wOut)
		hIn := airEnthalpyBtuLb(tIntC, wIn)
		massFlowLbPerHr := cfm * 60.0 * 0.075
		res.totalBtuHr = massFlowLbPerHr * (hOut - hIn)
		res.latentBtuHr = res.totalBtuHr - res.sensibleBtuHr
		if res.latentBtuHr < 0 {
			res.latentBtuHr = 0
		}
	}

	if res.totalBtuHr < 0 {
		res.totalBtuHr = 0
		if res.sensibleBtuHr < 0 {
			res.sensibleBtuHr = 0
		}
		res.latentBtuHr = 0
	}

	useFactor := room.UseFactor
	if useFactor == 0 {
		useFactor = 1.0
	}
	scale := useFactor * runHours / 24.0
	res.totalBtuHr *= scale
	res.sensibleBtuHr *= scale
	res.latentBtuHr *= scale
	return res
}

// foodProperties resolves a product record by name, case-insensitively.
func (c *ThermalCalculator) foodProperties(name string) *models.FoodProperties {
	if name == "" {
		return nil
	}
	if p, ok := c.data.Foods[name]; ok {
		return &p
	}
	target := strings.ToLower(name)
	for key, p := range c.data.Foods {
		if strings.ToLower(key) == target {
			prop := p
			return &prop
		}
	}
	return nil
}

// productBreakdown computes the per-cycle product load split into
// pre-freezing sensible, latent freezing and post-freezing sensible
// stages. Cp values derive from composition (Choi-Okos style
// coefficients) unless the food record carries explicit values.
func productBreakdown(food *models.FoodProperties, tInC, tOutC, massKg, packagingMult float64) models.ProductBreakdown {
	var b models.ProductBreakdown
	if massKg <= 0 {
		return b
	}
	if packagingMult <= 0 {
		packagingMult = 1.0
	}
	massLb := massKg * packagingMult * lbPerKg

	if food != nil && food.FreezingPointC != nil {
		b.FreezingPointC = *food.FreezingPointC
	}

	composition := map[string]float64{}
	if food != nil && food.CompositionPct != nil {
		composition = food.CompositionPct
	}
	pct := func(key string, def float64) float64 {
		val, ok := composition[key]
		if !ok {
			val = def
		}
		if val < 0 {
			val = 0
		}
		return val
	}

	water := math.Min(pct("moisture", 70.0)/100.0, 1.0)
	protein := pct("protein", 0) / 100.0
	fat := pct("fat", 0) / 100.0
	carbs := (pct("carbohydrate", 0) + pct("fiber", 0)) / 100.0
	ash := pct("ash", 0) / 100.0
	b.WaterFraction = water

	cpAboveKJ := 4.186*water + 1.7*protein + 1.9*fat + 1.55*carbs + 1.42*ash
	cpBelowKJ := 2.05*water + 1.7*protein + 1.9*fat + 1.55*carbs + 1.42*ash

	cpAboveBtu := cpAboveKJ / kjKgKPerBtuLbF
	if food != nil && food.CpAboveBtuLbF != nil {
		cpAboveBtu = *food.CpAboveBtuLbF
		cpAboveKJ = cpAboveBtu * kjKgKPerBtuLbF
	}
	cpBelowBtu := cpBelowKJ / kjKgKPerBtuLbF
	if food != nil && food.CpBelowBtuLbF != nil {
		cpBelowBtu = *food.CpBelowBtuLbF
		cpBelowKJ = cpBelowBtu * kjKgKPerBtuLbF
	}
	b.CpAboveKJKgK = cpAboveKJ
	b.CpBelowKJKgK = cpBelowKJ

	latentBtuLb := 333.55 * btuLbPerKJKg
	if food != nil && food.LatentHeatBtuLb != nil {
		latentBtuLb = *food.LatentHeatBtuLb
	}

	tf := b.FreezingPointC
	if tOutC >= tf {
		// Sensible cooling only, no freezing crossing.
		if dt := tInC - tOutC; dt > 0 {
			b.RefBtuCycle = massLb * cpAboveBtu * (dt * 1.8)
		}
	} else {
		startPost := tInC
		if tInC > tf {
			b.RefBtuCycle = massLb * cpAboveBtu * ((tInC - tf) * 1.8)
			b.FreezeBtuCycle = massLb * latentBtuLb * water
			startPost = tf
		}
		if dt := startPost - tOutC; dt > 0 {
			b.PostBtuCycle = massLb * cpBelowBtu * (dt * 1.8)
		}
	}
	b.TotalBtuCycle = b.RefBtuCycle + b.FreezeBtuCycle + b.PostBtuCycle
	return b
}

// ComputeRoom evaluates one room. The safety factor multiplies the
// component total.
func (c *ThermalCalculator) ComputeRoom(room models.ThermalRoomInputs, safetyFactor float64) models.ThermalRoomResult {
	defaults := c.profileDefaults(room.ProfileID)

	runHours := room.RunHours
	if runHours == 0 {
		runHours = defaults["run_hours"]
		if runHours == 0 {
			runHours = 20
		}
	}
	tIntC := room.TInternalC
	if tIntC == 0 {
		tIntC = defaults["t_internal_c"]
	}

	lFt := room.LengthM * feetPerMeterExact
	wFt := room.WidthM * feetPerMeterExact
	hFt := room.HeightM * feetPerMeterExact
	volumeFt3 := lFt * wFt * hFt

	aSide := lFt * hFt
	aEnd := wFt * hFt
	aPlan := lFt * wFt

	u := c.uFactor(room.InsulationType, room.InsulationThicknessIn)
	face := func(areaFt2, tExtC float64) float64 {
		dtF := (tExtC - tIntC) * 9 / 5
		if dtF < 0 {
			dtF = 0
		}
		return u * areaFt2 * dtF
	}
	transBtuHr := face(aEnd, room.TExtFrontC) +
		face(aEnd, room.TExtBackC) +
		face(aSide, room.TExtLeftC) +
		face(aSide, room.TExtRightC) +
		face(aPlan, room.TExtRoofC) +
		face(aPlan, room.GroundTempC)
	wallFactor := room.WallTransferFactor
	if wallFactor == 0 {
		wallFactor = 1.0
	}
	transBtuHr = transBtuHr * wallFactor * runHours / 24.0

	var infil infiltrationResult
	if room.InfiltrationEnabled {
		infil = c.infiltration(room, volumeFt3, tIntC, runHours)
	} else {
		infil.notes = "Disabled by request"
	}

	useFactor := room.UseFactor
	if useFactor == 0 {
		useFactor = 1.0
	}
	lightingBtuHr := room.LightingW * btuHrPerWatt * (room.LightingHours / 24.0) * useFactor
	motorsBtuHr := room.MotorsW * btuHrPerWatt * (room.MotorsHours / 24.0) * useFactor
	forkliftBtuHr := room.ForkliftHP * btuHrPerHP * (room.ForkliftHours / 24.0) * useFactor
	peopleBtuHr := room.PeopleCount * room.PeopleBtuHr * (room.PeopleHours / 24.0) * useFactor
	defrostBtuHr := room.DefrostW * (room.DefrostDurationMin / 60.0) * room.DefrostCount * room.DefrostFractionToRoom / 24.0 * useFactor

	var product *models.ProductBreakdown
	productBtuHr := 0.0
	if room.ProductMassKg > 0 && room.ProductCycleH > 0 {
		tIn := tIntC
		if room.ProductTinC != nil {
			tIn = *room.ProductTinC
		}
		food := c.foodProperties(room.ProductName)
		b := productBreakdown(food, tIn, room.ProductToutC, room.ProductMassKg, room.ProductPackagingMultiplier)
		productBtuHr = b.TotalBtuCycle / room.ProductCycleH
		product = &b
	}

	comp := models.ComponentBreakdown{
		TransmissionBtuHr:         transBtuHr,
		InfiltrationBtuHr:         infil.totalBtuHr,
		InfiltrationSensibleBtuHr: infil.sensibleBtuHr,
		InfiltrationLatentBtuHr:   infil.latentBtuHr,
		LightingBtuHr:             lightingBtuHr,
		MotorsBtuHr:               motorsBtuHr,
		ForkliftBtuHr:             forkliftBtuHr,
		PeopleBtuHr:               peopleBtuHr,
		DefrostBtuHr:              defrostBtuHr,
		ProductBtuHr:              productBtuHr,
	}
	totalBtuHr := comp.TotalBtuHr() * safetyFactor

	return models.ThermalRoomResult{
		Name:                     room.Name,
		Components:               comp,
		TotalBtuHr:               totalBtuHr,
		TotalKW:                  totalBtuHr / btuHrPerKW,
		TotalTR:                  totalBtuHr / btuHrPerTR,
		Percentages:              comp.Percentages(),
		Product:                  product,
		InfiltrationACH24h:       infil.ach,
		InfiltrationCFM:          infil.cfm,
		InfiltrationSensibleOnly: infil.sensibleOnly,
		InfiltrationNotes:        infil.notes,
	}
}

// ComputeProject evaluates a list of rooms and aggregates totals.
func (c *ThermalCalculator) ComputeProject(rooms []models.ThermalRoomInputs, safetyFactor float64) models.ThermalProjectResult {
	results := make([]models.ThermalRoomResult, 0, len(rooms))
	total := 0.0
	for _, room := range rooms {
		res := c.ComputeRoom(room, safetyFactor)
		results = append(results, res)
		total += res.TotalBtuHr
	}
	return models.ThermalProjectResult{
		Rooms:      results,
		TotalBtuHr: total,
		TotalKW:    total / btuHrPerKW,
		TotalTR:    total / btuHrPerTR,
	}
}
