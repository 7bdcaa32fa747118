// ABOUTME: Unit-count optimizer for evaporator selection
// ABOUTME: Evaluates 1..4 units, scores valid candidates, picks the best

package services

import (
	"fmt"
	"sort"

	"github.com/refritek/coldroom-analyzer/models"
)

// Installation clearance added to room length/width (mm per side)
// before the fit-check.
const installClearanceMM = 400.0

// maxAutoUnits bounds the auto-mode search.
const maxAutoUnits = 4

// candidate is one evaluated unit count.
type candidate struct {
	n          int
	model      string
	capacity   float64
	fitOK      bool
	fitMsg     string
	throwOK    bool
	throwMsg   string
	util       float64
	perEvap    float64
	catalogKey string
	valid      bool
}

// evalCount selects an evaporator for a fixed unit count and runs the
// throw-distance check. When the frontal family fails to fit and a
// taller-unit catalog exists, it retries once against that catalog
// before giving up on this count.
func (e *Engine) evalCount(n int, family models.Family, cat *models.EvapCatalog, in models.ColdRoomInputs, totalLoadBtu, tevapF float64) candidate {
	roomLmm := in.LengthM*1000.0 + installClearanceMM
	roomWmm := in.WidthM*1000.0 + installClearanceMM
	roomHmm := in.HeightM * 1000.0

	perEvap := totalLoadBtu / float64(n)
	model, capacity, fitOK, fitMsg := e.selectEvaporator(family, cat, tevapF, perEvap, roomLmm, roomWmm, roomHmm)

	tall := e.ds.Catalogs[models.CatalogFrontalTall]
	if family == models.FamilyFrontal && (!fitOK || model == ModelNeedsReview) && tall != nil && cat != tall {
		cat = tall
		model, capacity, fitOK, fitMsg = e.selectEvaporator(family, cat, tevapF, perEvap, roomLmm, roomWmm, roomHmm)
	}

	requiredThrow := in.LengthM
	if in.WidthM > requiredThrow {
		requiredThrow = in.WidthM
	}
	limit := e.ds.Meta.ThrowLimit(cat.Key)
	throwOK := requiredThrow <= limit
	throwMsg := ""
	if !throwOK {
		throwMsg = fmt.Sprintf("Required throw %.1f m exceeds limit %.1f m", requiredThrow, limit)
	}

	util := 0.0
	if capacity > 0 {
		util = perEvap / capacity
	}

	return candidate{
		n:          n,
		model:      model,
		capacity:   capacity,
		fitOK:      fitOK,
		fitMsg:     fitMsg,
		throwOK:    throwOK,
		throwMsg:   throwMsg,
		util:       util,
		perEvap:    perEvap,
		catalogKey: cat.Key,
		valid:      fitOK && throwOK && capacity > 0 && model != "" && model != ModelNeedsReview,
	}
}

// scoreCandidate ranks a valid candidate. Utilization inside 70-90%
// earns a flat bonus, otherwise the score drops with distance from 80%.
// Count biases: n=1 in small rooms and n=2 are preferred, n=4 is
// penalized. These constants are part of the observable contract.
func scoreCandidate(c candidate, smallRoom bool) float64 {
	s := 0.0
	if c.util >= 0.70 && c.util <= 0.90 {
		s += 1.0
	} else {
		diff := c.util - 0.80
		if diff < 0 {
			diff = -diff
		}
		s -= diff
	}
	if smallRoom && c.n == 1 {
		s += 0.20
	}
	switch c.n {
	case 2:
		s += 0.15
	case 3:
		s += 0.05
	case 4:
		s -= 0.30
	}
	return s
}

// autoSelect evaluates counts 1..4 and picks the highest-scoring valid
// candidate, preferring n<=3 when any qualifies. Ties fall to the lower
// count via stable sort over the evaluation order. When nothing is
// valid it returns the first candidate with a diagnostic message.
func (e *Engine) autoSelect(family models.Family, cat *models.EvapCatalog, in models.ColdRoomInputs, totalLoadBtu, tevapF float64) (candidate, string, string) {
	candidates := make([]candidate, 0, maxAutoUnits)
	for n := 1; n <= maxAutoUnits; n++ {
		candidates = append(candidates, e.evalCount(n, family, cat, in, totalLoadBtu, tevapF))
	}

	valids := make([]candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.valid {
			valids = append(valids, c)
		}
	}
	if len(valids) == 0 {
		return candidates[0], "", "No valid combination (capacity/throw/fit); review unit count or dimensions."
	}

	smallRoom := in.LengthM <= 3.0 && in.WidthM <= 3.0 && in.HeightM <= 3.0

	// Avoid n=4 unless nothing else qualifies.
	preferred := make([]candidate, 0, len(valids))
	for _, c := range valids {
		if c.n <= 3 {
			preferred = append(preferred, c)
		}
	}
	if len(preferred) == 0 {
		preferred = valids
	}

	sort.SliceStable(preferred, func(i, j int) bool {
		return scoreCandidate(preferred[i], smallRoom) > scoreCandidate(preferred[j], smallRoom)
	})

	chosen := preferred[0]
	note := fmt.Sprintf("auto selected N=%d (utilization %.1f%%)", chosen.n, chosen.util*100)
	return chosen, note, ""
}
