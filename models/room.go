// ABOUTME: Request/response models for the cold-room sizing engine
// ABOUTME: JSON-serializable structures consumed and produced by compute

package models

// Family identifies an evaporator product line.
type Family string

const (
	FamilyFrontal Family = "frontal"
	FamilyDual    Family = "dual"
)

// Family override values accepted on a request. "frontal" forces the
// standard frontal catalog, "frontal_tall" the taller-unit catalog.
const (
	OverrideAuto        = "auto"
	OverrideDual        = "dual"
	OverrideFrontal     = "frontal"
	OverrideFrontalTall = "frontal_tall"
)

// ColdRoomInputs is an immutable sizing request. Optional fields are
// pointers so that "absent" is distinguishable from a legitimate zero.
type ColdRoomInputs struct {
	LengthM        float64  `json:"length_m"`
	WidthM         float64  `json:"width_m"`
	HeightM        float64  `json:"height_m"`
	Usage          string   `json:"usage"`
	NEvaporators   *int     `json:"n_evaporators,omitempty"`   // nil => auto (1..4)
	SafetyFactor   *float64 `json:"safety_factor,omitempty"`   // nil => configured default
	FamilyOverride *string  `json:"family_override,omitempty"` // nil or "auto" => by usage
}

// ColdRoomResult is the engine output. Valid is false only when the
// request itself is rejected; degraded conditions stay valid and are
// reported through Messages.
type ColdRoomResult struct {
	Valid    bool     `json:"valid"`
	Messages []string `json:"messages"`

	LengthFt       int     `json:"length_ft,omitempty"`
	WidthFt        int     `json:"width_ft,omitempty"`
	HeightFt       int     `json:"height_ft,omitempty"`
	HeightBucketFt int     `json:"height_bucket_ft,omitempty"`
	HeightFactor   float64 `json:"height_factor,omitempty"`

	LoadBtuHr float64 `json:"load_btu_hr,omitempty"`
	TevapF    float64 `json:"tevap_f,omitempty"`
	TcamF     float64 `json:"tcam_f,omitempty"`

	EvapFamily        Family  `json:"evap_family,omitempty"`
	EvapModel         string  `json:"evap_model,omitempty"`
	EvapCapacityBtuHr float64 `json:"evap_capacity_btu_hr,omitempty"`
	LoadPerEvapBtuHr  float64 `json:"load_per_evap_btu_hr,omitempty"`

	FitOK    bool   `json:"fit_ok"`
	FitMsg   string `json:"fit_msg,omitempty"`
	ThrowOK  bool   `json:"throw_ok"`
	ThrowMsg string `json:"throw_msg,omitempty"`

	NRequested *int   `json:"n_requested,omitempty"`
	NUsed      int    `json:"n_used,omitempty"`
	AutoNote   string `json:"auto_note,omitempty"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}
