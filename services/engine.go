// ABOUTME: Cold-room sizing engine orchestrator
// ABOUTME: Computes thermal load and selects an evaporator configuration

package services

import (
	"fmt"
	"math"

	"github.com/refritek/coldroom-analyzer/models"
)

// Engine computes cold-room loads and evaporator selections against an
// immutable dataset. A single Engine is safe for concurrent callers;
// Compute performs no I/O and mutates nothing.
type Engine struct {
	ds *models.Dataset
}

// NewEngine creates an engine over a loaded dataset.
func NewEngine(ds *models.Dataset) *Engine {
	return &Engine{ds: ds}
}

// Dataset exposes the engine's data source (read-only).
func (e *Engine) Dataset() *models.Dataset {
	return e.ds
}

// baseLoad reads the capacity table for the clamped footprint. When
// either dimension falls outside the table range it substitutes an
// equivalent square side (rounded sqrt of the area, clamped into range)
// and reports the approximation.
func (e *Engine) baseLoad(table *models.CapacityTable, lengthFt, widthFt int, heightFactor, safety float64) (float64, string) {
	lim := e.ds.Config.DimensionLimits
	if e.validateDimensionFt(lengthFt) && e.validateDimensionFt(widthFt) {
		kbtu, _ := table.At(widthFt, lengthFt)
		return kbtu * 1000.0 * heightFactor * safety, ""
	}

	side := int(math.Round(math.Sqrt(float64(lengthFt) * float64(widthFt))))
	if side < lim.MinFt {
		side = lim.MinFt
	}
	if side > lim.MaxFt {
		side = lim.MaxFt
	}
	kbtu, _ := table.At(side, side)
	msg := fmt.Sprintf("Dimensions outside %d..%d ft; used equivalent square side.", lim.MinFt, lim.MaxFt)
	return kbtu * 1000.0 * heightFactor * safety, msg
}

// resolveFamily applies override precedence and the height-threshold
// promotion rule, returning the family and the catalog to select from.
func (e *Engine) resolveFamily(in models.ColdRoomInputs, sheet string) (models.Family, *models.EvapCatalog) {
	frontal := e.ds.Catalogs[models.CatalogFrontal]
	tall := e.ds.Catalogs[models.CatalogFrontalTall]

	var family models.Family
	var forced *models.EvapCatalog

	if in.FamilyOverride != nil && *in.FamilyOverride != models.OverrideAuto {
		switch *in.FamilyOverride {
		case models.OverrideDual:
			family = models.FamilyDual
		case models.OverrideFrontalTall:
			family = models.FamilyFrontal
			forced = tall
			if forced == nil {
				forced = frontal
			}
		default:
			family = models.FamilyFrontal
			forced = frontal
		}
	} else {
		family = e.familyForSheet(sheet)
	}

	if family == models.FamilyDual {
		return family, e.ds.Catalogs[models.CatalogDual]
	}

	// Tall rooms promote to the taller-unit catalog in auto mode.
	cat := frontal
	if tall != nil && in.HeightM > e.ds.Meta.FrontalHeightThresholdM {
		cat = tall
	}
	if forced != nil {
		cat = forced
	}
	return family, cat
}

// Compute runs the full sizing sequence for one room. Degraded
// conditions never fail the call; they surface on Result.Messages.
func (e *Engine) Compute(in models.ColdRoomInputs) models.ColdRoomResult {
	var msgs []string

	if in.NEvaporators != nil && *in.NEvaporators <= 0 {
		return models.ColdRoomResult{
			Valid:    false,
			Messages: []string{"n_evaporators must be >= 1"},
		}
	}

	lengthFt := e.clampFt(MetersToFeetRounded(in.LengthM))
	widthFt := e.clampFt(MetersToFeetRounded(in.WidthM))
	heightFt, bucket, bucketOK := e.heightBucket(in.HeightM)

	heightMsg := ""
	if !bucketOK {
		// Substitute the tallest bucket rather than truncating the load.
		heightMsg = "Height outside 8/10/12 ft buckets; using 12 ft bucket."
		bucket = 12
	}
	heightFactor := e.heightFactor(bucket)

	safety := e.ds.Config.SafetyFactorDefault
	if in.SafetyFactor != nil {
		safety = *in.SafetyFactor
	}

	sheet := PickUsageSheet(in.Usage)
	table, ok := e.ds.CapacityTables[sheet]
	if !ok {
		msgs = append(msgs, fmt.Sprintf("No capacity table for %q; using %s.", sheet, defaultSheet))
		table = e.ds.CapacityTables[defaultSheet]
	}

	loadBtu, loadMsg := e.baseLoad(table, lengthFt, widthFt, heightFactor, safety)
	if loadMsg != "" {
		msgs = append(msgs, loadMsg)
	}

	prof, profMsg := e.resolveProfile(in.Usage)
	if profMsg != "" {
		msgs = append(msgs, profMsg)
	}

	family, cat := e.resolveFamily(in, sheet)

	var chosen candidate
	autoNote := ""
	if in.NEvaporators == nil {
		var optMsg string
		chosen, autoNote, optMsg = e.autoSelect(family, cat, in, loadBtu, prof.TevapF)
		if optMsg != "" {
			msgs = append(msgs, optMsg)
		}
	} else {
		chosen = e.evalCount(*in.NEvaporators, family, cat, in, loadBtu, prof.TevapF)
		if !chosen.valid {
			msgs = append(msgs, "Requested unit count fails capacity/throw/fit checks. Try auto mode.")
		}
	}

	if heightMsg != "" {
		msgs = append(msgs, heightMsg)
	}

	return models.ColdRoomResult{
		Valid:             true,
		Messages:          msgs,
		LengthFt:          lengthFt,
		WidthFt:           widthFt,
		HeightFt:          heightFt,
		HeightBucketFt:    bucket,
		HeightFactor:      heightFactor,
		LoadBtuHr:         loadBtu,
		TevapF:            prof.TevapF,
		TcamF:             prof.TcamF,
		EvapFamily:        family,
		EvapModel:         chosen.model,
		EvapCapacityBtuHr: chosen.capacity,
		LoadPerEvapBtuHr:  chosen.perEvap,
		FitOK:             chosen.fitOK,
		FitMsg:            chosen.fitMsg,
		ThrowOK:           chosen.throwOK,
		ThrowMsg:          chosen.throwMsg,
		NRequested:        in.NEvaporators,
		NUsed:             chosen.n,
		AutoNote:          autoNote,
	}
}
