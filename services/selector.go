// ABOUTME: Evaporator catalog selector with low-load and fit-check rules
// ABOUTME: Walks a capacity-by-temperature table in ascending capacity order

package services

import (
	"fmt"
	"strings"

	"github.com/refritek/coldroom-analyzer/models"
)

// ModelNeedsReview is the sentinel label returned when no catalog model
// fits the room. Candidate validity is tested against it by equality.
const ModelNeedsReview = "REVIEW EVAPORATOR COUNT"

// fitsRoom checks a model's physical envelope against the room interior.
// Models absent from the dimensions table pass vacuously; the dimension
// dataset is optional.
func (e *Engine) fitsRoom(model string, roomLmm, roomWmm, roomHmm float64) bool {
	if len(e.ds.Dimensions) == 0 {
		return true
	}
	dims, ok := e.ds.Dimensions[model]
	if !ok {
		return true
	}
	rules := e.ds.Meta.FitCheck
	fitsBase := dims.DepthMM <= roomLmm && dims.WidthMM <= roomWmm
	if !fitsBase && rules.AllowRotate {
		fitsBase = dims.DepthMM <= roomWmm && dims.WidthMM <= roomLmm
	}
	fitsHeight := !rules.ValidateHeight || dims.HeightMM <= roomHmm
	return fitsBase && fitsHeight
}

// selectEvaporator picks the smallest fitting model whose rated capacity
// (with the configured overload allowance) covers the per-unit load.
// Returns (model label, capacity, fit ok, fit message). Loads small
// enough to trip the placeholder rule short-circuit to the family's
// placeholder model.
func (e *Engine) selectEvaporator(family models.Family, cat *models.EvapCatalog, tevapF, loadPerEvap, roomLmm, roomWmm, roomHmm float64) (string, float64, bool, string) {
	rules := e.ds.Config.SelectionRules
	col := cat.FloorColumn(tevapF)

	smallestCap := cat.Rows[0].CapacityBtuHr[col]
	if loadPerEvap <= rules.MinLoadFractionForPlaceholder*smallestCap {
		placeholder := e.ds.Config.PlaceholderModels[family]
		return placeholder, smallestCap, true, "Load too low; placeholder model"
	}

	for _, row := range cat.Rows {
		if !e.fitsRoom(row.Model, roomLmm, roomWmm, roomHmm) {
			continue
		}
		capacity := row.CapacityBtuHr[col]
		if loadPerEvap/rules.AllowOverloadMultiplier <= capacity {
			label := fmt.Sprintf("%s - %s", row.Model, strings.ToUpper(string(family)))
			return label, capacity, true, ""
		}
	}

	largestCap := cat.Rows[len(cat.Rows)-1].CapacityBtuHr[col]
	return ModelNeedsReview, largestCap, false, "No catalog model fits the room"
}
