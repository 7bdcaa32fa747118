// ABOUTME: Dimension and height mapping rules for the sizing engine
// ABOUTME: Meters-to-feet rounding, clamping and height-bucket lookup

package services

import "math"

// feetPerMeter is the legacy conversion constant used by the capacity
// tables; the tables were built against 3.28, not 3.28084.
const feetPerMeter = 3.28

// MetersToFeetRounded converts meters to the nearest integer foot.
// Round-half-up, matching the table key domain.
func MetersToFeetRounded(m float64) int {
	return int(math.Round(m * feetPerMeter))
}

// clampFt forces the lower dimension bound. The upper bound is handled
// by the equivalent-side fallback in baseLoad, not clamped here.
func (e *Engine) clampFt(ft int) int {
	if min := e.ds.Config.DimensionLimits.MinFt; ft < min {
		return min
	}
	return ft
}

// validateDimensionFt reports whether a rounded dimension is inside the
// capacity-table range.
func (e *Engine) validateDimensionFt(ft int) bool {
	lim := e.ds.Config.DimensionLimits
	return ft >= lim.MinFt && ft <= lim.MaxFt
}

// heightBucket classifies a room height into the 8/10/12 ft buckets.
// ok is false when the rounded height exceeds the 12 ft threshold; the
// caller substitutes the 12 ft bucket and reports it, never silently.
func (e *Engine) heightBucket(heightM float64) (heightFt int, bucket int, ok bool) {
	heightFt = MetersToFeetRounded(heightM)
	th := e.ds.Config.HeightBuckets
	switch {
	case heightFt <= th.Max8:
		return heightFt, 8, true
	case heightFt <= th.Max10:
		return heightFt, 10, true
	case heightFt <= th.Max12:
		return heightFt, 12, true
	}
	return heightFt, 0, false
}

// heightFactor returns the load multiplier for a height bucket.
func (e *Engine) heightFactor(bucket int) float64 {
	return e.ds.Config.HeightFactors[bucket]
}
