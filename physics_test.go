package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuadrantForce_MatchesFormula(t *testing.T) {
	cases := []Quadrant{
		{SL: 20, SW: 5, ST: 0.3, SS: 0.5, G: 18763},
		{SL: 8, SW: 4, ST: 0.4, SS: 1, G: 18763},
		{SL: 1, SW: 1, ST: 1, SS: 1, G: 1},
		{SL: 5.5, SW: 3.2, ST: 0.5, SS: 0.35, G: 20000},
	}
	for _, q := range cases {
		want := 3 * q.G * (q.SW * math.Pow(q.ST, 3) / 12) * q.SS / math.Pow(q.SL, 3)
		got := q.Force()
		assert.Greater(t, got, 0.0)
		assert.InDelta(t, want, got, 1e-12*want)
		// C/SL³ is the same force.
		c := forceCoefficient(q.G, q.SW, q.ST, q.SS)
		assert.InDelta(t, got, c/math.Pow(q.SL, 3), 1e-12*want)
	}
}

func TestQuadrantForce_ZeroDimensionIsZero(t *testing.T) {
	base := Quadrant{SL: 20, SW: 5, ST: 0.3, SS: 0.5, G: 18763}
	zeroed := map[string]func(q *Quadrant){
		"SL": func(q *Quadrant) { q.SL = 0 },
		"SW": func(q *Quadrant) { q.SW = 0 },
		"ST": func(q *Quadrant) { q.ST = 0 },
		"SS": func(q *Quadrant) { q.SS = 0 },
		"G":  func(q *Quadrant) { q.G = 0 },
	}
	for name, zero := range zeroed {
		t.Run(name, func(t *testing.T) {
			q := base
			zero(&q)
			f := q.Force()
			assert.Equal(t, 0.0, f)
			assert.False(t, math.IsNaN(f) || math.IsInf(f, 0))
		})
	}
}

func TestQuadrantMoments(t *testing.T) {
	q := Quadrant{X: -3, Y: 7}
	assert.Equal(t, -6.0, q.MomentX(2))
	assert.Equal(t, 14.0, q.MomentY(2))
}

func TestQuadrantDisabled(t *testing.T) {
	assert.True(t, Quadrant{X: 5, Y: 5, G: 18763}.Disabled())
	assert.True(t, Quadrant{SL: 1e-13, SW: -1e-13}.Disabled())
	assert.False(t, Quadrant{SL: 20}.Disabled())
	assert.False(t, Quadrant{SS: 0.5}.Disabled())
}

func TestAssemblyTotals_SumsQuadrants(t *testing.T) {
	asm := symmetricAssembly()
	asm[0].SL = 19.5
	tot := asm.Totals()

	var f, mx, my float64
	for _, q := range asm {
		qf := q.Force()
		f += qf
		mx += qf * q.X
		my += qf * q.Y
	}
	assert.InDelta(t, f, tot.Force, 1e-12)
	assert.InDelta(t, mx, tot.MomentX, 1e-12)
	assert.InDelta(t, my, tot.MomentY, 1e-12)

	x, y := tot.Centroid()
	assert.InDelta(t, mx/f, x, 1e-12)
	assert.InDelta(t, my/f, y, 1e-12)
	assert.Greater(t, x, 0.0, "the shorter quadrant 1 pulls the centroid toward +X")
}

func TestCentroid_ZeroForceIsOrigin(t *testing.T) {
	var asm Assembly
	for i := range asm {
		asm[i] = Quadrant{X: float64(i + 1), Y: -float64(i + 1), G: 18763}
	}
	x, y := asm.Totals().Centroid()
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
}
