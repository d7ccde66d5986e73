package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultSpringInput() SpringInput {
	return SpringInput{L: 25, W: 25, G: 8000, SS: 0.3, SRU: 2.5, SSD: 1.2, SHD: 2.4, CPSI: 40, SNN: 4, N: 5}
}

func TestEvalSpring(t *testing.T) {
	in := defaultSpringInput()
	d, ok := evalSpring(&in, 0.2, 1.21, 3, 2.9)
	require.True(t, ok)
	assert.InDelta(t, 1.61, d.OD, 1e-9)
	assert.InDelta(t, 1.41, d.MD, 1e-9)
	assert.InDelta(t, 0.57, d.SK, 1e-9)
	assert.InDelta(t, 0.8, d.SL, 1e-9)
	assert.InDelta(t, 0.4, d.SP, 1e-9)
	assert.InDelta(t, 0.97, d.SPP, 1e-9)
	assert.InDelta(t, 0.7, d.ST, 1e-9)
	assert.InDelta(t, 1.5, d.SCC, 1e-9)
	assert.InDelta(t, 2.2, d.SRL, 1e-9)
	assert.InDelta(t, 0.4, d.DF, 1e-9)
	assert.InDelta(t, 1.6, d.TFK, 1e-9)
	assert.InDelta(t, 3.53, d.TFL, 1e-9)
	assert.InDelta(t, 3.64, d.PSI, 1e-9)
	assert.Equal(t, 2, d.Score)
	assert.Len(t, d.Failed, 2)
}

func TestEvalSpring_Skips(t *testing.T) {
	in := defaultSpringInput()
	_, ok := evalSpring(&in, 0.2, 1.21, 2, 2.9)
	assert.False(t, ok, "no active coils")
	_, ok = evalSpring(&in, 0.2, 1.21, 3, 2.5)
	assert.False(t, ok, "no preload")
	_, ok = evalSpring(&in, 1.0, 1.21, 20, 22)
	assert.False(t, ok, "compression check exceeds free length")
}

func TestSpringSearch(t *testing.T) {
	in := defaultSpringInput()
	ds, err := SpringSearch(in)
	require.NoError(t, err)
	require.NotEmpty(t, ds)
	assert.LessOrEqual(t, len(ds), in.N)
	for i, d := range ds {
		assert.GreaterOrEqual(t, d.Score, 2)
		assert.Positive(t, d.SP)
		assert.LessOrEqual(t, d.SCC, d.FL)
		assert.Len(t, d.Failed, 4-d.Score)
		if i > 0 {
			prev := ds[i-1]
			if prev.Score == d.Score {
				assert.LessOrEqual(t, prev.deviation, d.deviation)
			} else {
				assert.Greater(t, prev.Score, d.Score)
			}
		}
	}
}

func TestSpringInput_Validate(t *testing.T) {
	in := defaultSpringInput()
	in.SSD = 3
	assert.ErrorIs(t, in.Validate(), ErrScrewDiameter)

	in = defaultSpringInput()
	in.SNN = 0
	assert.ErrorIs(t, in.Validate(), ErrInvalidSpringInput)

	in = defaultSpringInput()
	in.N = 0
	_, err := SpringSearch(in)
	assert.ErrorIs(t, err, ErrInvalidCount)
}
