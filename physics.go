package main

// Inertia is the cross-section's second moment, SW·ST³/12 (mm⁴).
func (q Quadrant) Inertia() float64 {
	return q.SW * q.ST * q.ST * q.ST / 12
}

// Force is the reaction under stroke, 3·G·I·SS/SL³ (kgf).
// Any zero dimension or modulus yields exactly 0.
func (q Quadrant) Force() float64 {
	if q.SL == 0 || q.SW == 0 || q.ST == 0 || q.SS == 0 || q.G == 0 {
		return 0
	}
	return 3 * q.G * q.Inertia() * q.SS / (q.SL * q.SL * q.SL)
}

// MomentX is F·X (kgf·mm).
func (q Quadrant) MomentX(f float64) float64 { return f * q.X }

// MomentY is F·Y (kgf·mm).
func (q Quadrant) MomentY(f float64) float64 { return f * q.Y }

// forceCoefficient is C in F = C/SL³ for fixed G, SW, ST, SS.
func forceCoefficient(g, sw, st, ss float64) float64 {
	return g * ss * sw * st * st * st / 4
}

// Totals is the elementwise sum of the quadrants' force and moments.
type Totals struct {
	Force   float64 `json:"force"`
	MomentX float64 `json:"momentX"`
	MomentY float64 `json:"momentY"`
}

func (t *Totals) add(q *Quadrant) {
	f := q.Force()
	t.Force += f
	t.MomentX += q.MomentX(f)
	t.MomentY += q.MomentY(f)
}

// Centroid is the force-weighted reaction position. A total force within
// 1e-12 of zero puts the centroid at the origin.
func (t Totals) Centroid() (x, y float64) {
	if nearZero(t.Force) {
		return 0, 0
	}
	return t.MomentX / t.Force, t.MomentY / t.Force
}

// Totals sums all four quadrants; disabled ones contribute zero.
func (a *Assembly) Totals() Totals {
	var t Totals
	for i := range a {
		t.add(&a[i])
	}
	return t
}
