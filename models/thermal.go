// ABOUTME: Models for the detailed thermal-load calculator
// ABOUTME: Room inputs, component breakdowns and project aggregation

package models

// ThermalRoomInputs describes one room for the detailed load model.
// Zero values fall back to the selected operating profile's defaults.
type ThermalRoomInputs struct {
	Name      string  `json:"name"`
	LengthM   float64 `json:"length_m"`
	WidthM    float64 `json:"width_m"`
	HeightM   float64 `json:"height_m"`
	ProfileID string  `json:"profile_id"`
	Doors     int     `json:"doors"`

	// Envelope temperatures (°C)
	TInternalC         float64 `json:"t_internal_c"`
	TExtFrontC         float64 `json:"t_ext_front_c"`
	TExtBackC          float64 `json:"t_ext_back_c"`
	TExtRightC         float64 `json:"t_ext_right_c"`
	TExtLeftC          float64 `json:"t_ext_left_c"`
	TExtRoofC          float64 `json:"t_ext_roof_c"`
	GroundTempC        float64 `json:"ground_temp_c"`
	WallTransferFactor float64 `json:"wall_transfer_factor"`

	// Insulation
	InsulationType        string  `json:"insulation_type"`
	InsulationThicknessIn float64 `json:"insulation_thickness_in"`

	// Infiltration
	OutsideAirTempC       float64  `json:"outside_air_temp_c"`
	OutsideRH             float64  `json:"outside_rh"`
	InsideRH              *float64 `json:"inside_rh,omitempty"`
	AirChanges24hOverride *float64 `json:"air_changes_24h_override,omitempty"`
	UseFactor             float64  `json:"use_factor"`
	InfiltrationEnabled   bool     `json:"infiltration_enabled"`

	// Product
	ProductName                string   `json:"product_name,omitempty"`
	ProductMassKg              float64  `json:"product_mass_kg"`
	ProductTinC                *float64 `json:"product_tin_c,omitempty"`
	ProductToutC               float64  `json:"product_tout_c"`
	ProductCycleH              float64  `json:"product_cycle_h"`
	ProductPackagingMultiplier float64  `json:"product_packaging_multiplier"`

	// Internal loads
	LightingW             float64 `json:"lighting_w"`
	LightingHours         float64 `json:"lighting_hours"`
	MotorsW               float64 `json:"motors_w"`
	MotorsHours           float64 `json:"motors_hours"`
	ForkliftHP            float64 `json:"forklift_hp"`
	ForkliftHours         float64 `json:"forklift_hours"`
	PeopleCount           float64 `json:"people_count"`
	PeopleHours           float64 `json:"people_hours"`
	PeopleBtuHr           float64 `json:"people_btu_hr"`
	DefrostW              float64 `json:"defrost_w"`
	DefrostCount          float64 `json:"defrost_count"`
	DefrostDurationMin    float64 `json:"defrost_duration_min"`
	DefrostFractionToRoom float64 `json:"defrost_fraction_to_room"`

	RunHours float64 `json:"run_hours"`
}

// ComponentBreakdown splits a room load by mechanism, all in BTU/h.
type ComponentBreakdown struct {
	TransmissionBtuHr         float64 `json:"transmission_btu_hr"`
	InfiltrationBtuHr         float64 `json:"infiltration_btu_hr"`
	InfiltrationSensibleBtuHr float64 `json:"infiltration_sensible_btu_hr"`
	InfiltrationLatentBtuHr   float64 `json:"infiltration_latent_btu_hr"`
	LightingBtuHr             float64 `json:"lighting_btu_hr"`
	MotorsBtuHr               float64 `json:"motors_btu_hr"`
	ForkliftBtuHr             float64 `json:"forklift_btu_hr"`
	PeopleBtuHr               float64 `json:"people_btu_hr"`
	DefrostBtuHr              float64 `json:"defrost_btu_hr"`
	ProductBtuHr              float64 `json:"product_btu_hr"`
}

// InternalBtuHr sums the internal-source loads.
func (c ComponentBreakdown) InternalBtuHr() float64 {
	return c.LightingBtuHr + c.MotorsBtuHr + c.ForkliftBtuHr + c.PeopleBtuHr + c.DefrostBtuHr
}

// TotalBtuHr sums every component.
func (c ComponentBreakdown) TotalBtuHr() float64 {
	return c.TransmissionBtuHr + c.InfiltrationBtuHr + c.InternalBtuHr() + c.ProductBtuHr
}

// Percentages reports each component group as a fraction of the total.
func (c ComponentBreakdown) Percentages() map[string]float64 {
	tot := c.TotalBtuHr()
	if tot == 0 {
		tot = 1.0
	}
	return map[string]float64{
		"transmission_pct": c.TransmissionBtuHr / tot,
		"infiltration_pct": c.InfiltrationBtuHr / tot,
		"internal_pct":     c.InternalBtuHr() / tot,
		"product_pct":      c.ProductBtuHr / tot,
	}
}

// ProductBreakdown details the product load per cycle.
type ProductBreakdown struct {
	RefBtuCycle    float64 `json:"ref_btu_cycle"`
	FreezeBtuCycle float64 `json:"freeze_btu_cycle"`
	PostBtuCycle   float64 `json:"post_btu_cycle"`
	TotalBtuCycle  float64 `json:"total_btu_cycle"`
	FreezingPointC float64 `json:"freezing_point_c"`
	WaterFraction  float64 `json:"water_fraction"`
	CpAboveKJKgK   float64 `json:"cp_above_kj_kg_k"`
	CpBelowKJKgK   float64 `json:"cp_below_kj_kg_k"`
}

// ThermalRoomResult is the detailed load result for one room.
type ThermalRoomResult struct {
	Name        string             `json:"name"`
	Components  ComponentBreakdown `json:"components"`
	TotalBtuHr  float64            `json:"total_btu_hr"`
	TotalKW     float64            `json:"total_kw"`
	TotalTR     float64            `json:"total_tr"`
	Percentages map[string]float64 `json:"percentages"`
	Product     *ProductBreakdown  `json:"product,omitempty"`

	InfiltrationACH24h       float64 `json:"infiltration_ach_24h"`
	InfiltrationCFM          float64 `json:"infiltration_cfm"`
	InfiltrationSensibleOnly bool    `json:"infiltration_sensible_only"`
	InfiltrationNotes        string  `json:"infiltration_notes,omitempty"`
}

// ThermalProjectResult aggregates room results.
type ThermalProjectResult struct {
	Rooms      []ThermalRoomResult `json:"rooms"`
	TotalBtuHr float64             `json:"total_btu_hr"`
	TotalKW    float64             `json:"total_kw"`
	TotalTR    float64             `json:"total_tr"`
}

// AirChangeRow maps a room volume ceiling to air changes per 24 h.
type AirChangeRow struct {
	MaxVolumeFt3               float64 `json:"max_volume_ft3" yaml:"max_volume_ft3"`
	AirChanges24hRefrigeration float64 `json:"air_changes_24h_refrigeration" yaml:"air_changes_24h_refrigeration"`
	AirChanges24hFreezing      float64 `json:"air_changes_24h_freezing" yaml:"air_changes_24h_freezing"`
}

// FoodProperties carries thermal properties of a stored product.
// Explicit cp/latent values win over composition-derived ones.
type FoodProperties struct {
	FreezingPointC  *float64           `json:"freezing_point_c,omitempty" yaml:"freezing_point_c,omitempty"`
	CompositionPct  map[string]float64 `json:"composition_pct,omitempty" yaml:"composition_pct,omitempty"`
	CpAboveBtuLbF   *float64           `json:"cp_above_btu_lb_f,omitempty" yaml:"cp_above_btu_lb_f,omitempty"`
	CpBelowBtuLbF   *float64           `json:"cp_below_btu_lb_f,omitempty" yaml:"cp_below_btu_lb_f,omitempty"`
	LatentHeatBtuLb *float64           `json:"latent_heat_btu_lb,omitempty" yaml:"latent_heat_btu_lb,omitempty"`
}

// ThermalProfile supplies defaults for a room operating profile.
type ThermalProfile struct {
	ID       string             `json:"id" yaml:"id"`
	Defaults map[string]float64 `json:"defaults" yaml:"defaults"`
}

// ThermalData is the optional dataset section backing the detailed
// thermal-load calculator.
type ThermalData struct {
	InsulationKFactors map[string]float64        `json:"insulation_k_factors" yaml:"insulation_k_factors"`
	AirChanges         []AirChangeRow            `json:"air_changes_24h" yaml:"air_changes_24h"`
	Foods              map[string]FoodProperties `json:"foods" yaml:"foods"`
	Profiles           map[string]ThermalProfile `json:"profiles" yaml:"profiles"`
}
