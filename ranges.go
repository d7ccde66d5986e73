package main

import (
	"math"
	"slices"
)

const (
	// precisionDigits is the single rounding policy for generated values and comparisons.
	precisionDigits = 6
	// rangeEps absorbs round-off at a range's upper boundary.
	rangeEps = 1e-9
	// zeroEps decides disabled quadrants and the centroid guard.
	zeroEps = 1e-12
	// maxRangeValues bounds a single Range; longer sequences yield nothing.
	maxRangeValues = 1 << 20
)

var precisionScale = math.Pow10(precisionDigits)

// roundValue rounds v to precisionDigits decimals.
func roundValue(v float64) float64 {
	return math.Round(v*precisionScale) / precisionScale
}

// roundTo rounds v to the given number of decimals.
func roundTo(v float64, digits int) float64 {
	s := math.Pow10(digits)
	return math.Round(v*s) / s
}

// sameValue compares two dimensions under the rounding policy.
func sameValue(a, b float64) bool {
	return math.Abs(roundValue(a)-roundValue(b)) <= rangeEps
}

func nearZero(v float64) bool { return math.Abs(v) <= zeroEps }

// Range returns lo, lo+step, ... up to hi (+rangeEps), each rounded.
// A non-positive step yields the single value lo; a step so small that the
// sequence would exceed maxRangeValues yields nil.
func Range(lo, hi, step float64) []float64 {
	d := hi - lo
	if math.IsNaN(d) || math.IsInf(d, 0) || d < -rangeEps {
		return nil
	}
	if !(step > 0) {
		return []float64{roundValue(lo)}
	}
	q := math.Floor(d/step + rangeEps)
	if math.IsNaN(q) || q >= maxRangeValues {
		return nil
	}
	n := int(max(q, 0)) + 1
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		v := roundValue(lo + float64(i)*step)
		if v > hi+rangeEps {
			break
		}
		out = append(out, v)
	}
	return out
}

// Limits bounds one dimension: a floor, an optional ceiling and the
// deviation window around the baseline.
type Limits struct {
	Floor          float64 `mapstructure:"floor" json:"floor"`
	FloorExclusive bool    `mapstructure:"floor_exclusive" json:"floorExclusive"`
	Ceil           float64 `mapstructure:"ceil" json:"ceil"` // 0 = unbounded
	Window         float64 `mapstructure:"window" json:"window"`
}

func (l Limits) admits(v float64) bool {
	if l.FloorExclusive {
		if v <= l.Floor+rangeEps {
			return false
		}
	} else if v < l.Floor-rangeEps {
		return false
	}
	return l.Ceil <= 0 || v <= l.Ceil+rangeEps
}

// window is a closed interval a dimension may be swept over.
type window struct{ lo, hi float64 }

// globalWindow is baseline ± Window. A non-positive Window leaves only the floor/ceiling.
func (l Limits) globalWindow(baseline float64) window {
	if l.Window <= 0 {
		return window{lo: math.Inf(-1), hi: math.Inf(1)}
	}
	return window{lo: baseline - l.Window, hi: baseline + l.Window}
}

// values sweeps center ± halfSpan at step on a grid anchored at center,
// keeping only values inside w and admitted by the limits.
func (l Limits) values(center, halfSpan, step float64, w window) []float64 {
	k := 0.0
	if step > 0 {
		k = math.Floor(halfSpan/step + rangeEps)
	}
	raw := Range(center-k*step, center+k*step, step)
	out := raw[:0]
	for _, v := range raw {
		if v < w.lo-rangeEps || v > w.hi+rangeEps || !l.admits(v) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// gridValues lists every value of the fixed grid floor + i·step inside [lo, hi].
// Thickness uses it: its values are tooling choices, not a continuum.
func (l Limits) gridValues(lo, hi, step float64) []float64 {
	top := hi
	if l.Ceil > 0 {
		top = min(top, l.Ceil)
	}
	if math.IsInf(top, 1) {
		top = l.Floor
	}
	all := Range(l.Floor, top, step)
	out := make([]float64, 0, len(all))
	for _, v := range all {
		if v >= lo-rangeEps && v <= hi+rangeEps && l.admits(v) {
			out = append(out, v)
		}
	}
	return out
}

// centerOut reorders sorted values so the one nearest center comes first,
// then alternating outward. Ties go to the smaller value.
func centerOut(vals []float64, center float64) []float64 {
	out := slices.Clone(vals)
	slices.SortStableFunc(out, func(a, b float64) int {
		da, db := math.Abs(a-center), math.Abs(b-center)
		if sameValue(da, db) {
			switch {
			case a < b:
				return -1
			case a > b:
				return 1
			}
			return 0
		}
		if da < db {
			return -1
		}
		return 1
	})
	return out
}
