package main

// Shared holds the dimensions applied identically to every enabled quadrant.
type Shared struct {
	ST float64 `json:"st"`
	SW float64 `json:"sw"`
	SS float64 `json:"ss"`
}

// slExtremes returns the force interval of one quadrant with coefficient c
// over sls. F = c/SL³ decreases with SL, so the largest SL gives the minimum.
// sls need not be sorted; a non-positive SL is degenerate and contributes 0.
func slExtremes(c float64, sls []float64) (fmin, fmax float64) {
	if len(sls) == 0 || c == 0 {
		return 0, 0
	}
	var lo, hi float64
	degenerate := false
	for _, v := range sls {
		if v <= 0 {
			degenerate = true
			continue
		}
		if lo == 0 || v < lo {
			lo = v
		}
		hi = max(hi, v)
	}
	if lo == 0 {
		return 0, 0
	}
	fmin, fmax = c/(hi*hi*hi), c/(lo*lo*lo)
	if degenerate {
		fmin = 0
	}
	return fmin, fmax
}

// BoundForce bounds the aggregate force of a over every point of the Cartesian
// product of the per-quadrant SL sequences, with s fixed. Disabled quadrants
// and empty sequences contribute zero. The bound extremizes each quadrant
// independently, so it is sound but not tight.
func (a *Assembly) BoundForce(s Shared, sl [QuadrantCount][]float64) (fmin, fmax float64) {
	for i := range a {
		if a[i].Disabled() {
			continue
		}
		lo, hi := slExtremes(forceCoefficient(a[i].G, s.SW, s.ST, s.SS), sl[i])
		fmin += lo
		fmax += hi
	}
	return fmin, fmax
}

// branch caches per-quadrant coefficients and suffix extremes along the
// enabled-quadrant order so partial SL assignments can be bounded in O(1).
type branch struct {
	coef             [QuadrantCount]float64
	restMin, restMax [QuadrantCount + 1]float64 // indexed by depth into enabled
}

func newBranch(a *Assembly, enabled []int, s Shared, sl *[QuadrantCount][]float64) branch {
	var b branch
	for _, qi := range enabled {
		b.coef[qi] = forceCoefficient(a[qi].G, s.SW, s.ST, s.SS)
	}
	for d := len(enabled) - 1; d >= 0; d-- {
		qi := enabled[d]
		lo, hi := slExtremes(b.coef[qi], sl[qi])
		b.restMin[d] = b.restMin[d+1] + lo
		b.restMax[d] = b.restMax[d+1] + hi
	}
	return b
}

// bandMiss reports whether [fmin, fmax] cannot reach [lo, hi]. A relative slack
// of 1e-9 keeps round-off between the two force formulas from pruning an edge point.
func bandMiss(fmin, fmax, lo, hi float64) bool {
	const slack = 1e-9
	return fmax < lo*(1-slack) || fmin > hi*(1+slack)
}
