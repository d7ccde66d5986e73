package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStars_Table(t *testing.T) {
	cases := []struct {
		set  ParamSet
		want int
	}{
		{NewParamSet(), 1},
		{NewParamSet(ParamST), 4},
		{NewParamSet(ParamST, ParamSW), 3},
		{NewParamSet(ParamST, ParamSL), 3},
		{NewParamSet(ParamST, ParamSW, ParamSS), 2},
		{NewParamSet(ParamST, ParamSW, ParamSS, ParamSL), 1},
		{NewParamSet(ParamSW), 3},
		{NewParamSet(ParamSL), 3},
		{NewParamSet(ParamSS), 3},
		{NewParamSet(ParamSW, ParamSL), 2},
		{NewParamSet(ParamSW, ParamSL, ParamSS), 1},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Stars(c.set), "set %s", c.set)
	}
}

func TestStarString(t *testing.T) {
	assert.Equal(t, "★★★★", starString(4))
	assert.Equal(t, "★☆☆☆", starString(1))
	assert.Equal(t, "☆☆☆☆", starString(-2))
}

func TestRank_StarsBeforeForceError(t *testing.T) {
	const target = 1.0
	cands := []Candidate{
		{Force: 1.0, Modified: NewParamSet()},                   // 1 star, exact
		{Force: 1.04, Modified: NewParamSet(ParamST)},           // 4 stars, far
		{Force: 0.99, Modified: NewParamSet(ParamSW)},           // 3 stars
		{Force: 1.02, Modified: NewParamSet(ParamSL)},           // 3 stars, farther
		{Force: 1.001, Modified: NewParamSet(ParamSW, ParamSS)}, // 2 stars
	}
	ranked := Rank(cands, target)
	require.Len(t, ranked, len(cands))

	assert.Equal(t, 4, ranked[0].Stars)
	assert.Equal(t, 3, ranked[1].Stars)
	assert.InDelta(t, 0.01, ranked[1].Error, 1e-12)
	assert.Equal(t, 3, ranked[2].Stars)
	assert.InDelta(t, 0.02, ranked[2].Error, 1e-12)
	assert.Equal(t, 2, ranked[3].Stars)
	assert.Equal(t, 1, ranked[4].Stars)
	for i := 1; i < len(ranked); i++ {
		assert.LessOrEqual(t, compareResults(&ranked[i-1], &ranked[i]), 0)
	}
}

func TestRank_SubMicroErrorsStillOrdered(t *testing.T) {
	const target = 1.0
	near := Candidate{Force: target + 1e-7, X: 0.3, SW: 4.9}
	far := Candidate{Force: target + 4e-7, SW: 5.1}
	ranked := Rank([]Candidate{far, near}, target)
	require.Len(t, ranked, 2)
	assert.Equal(t, 1, ranked[0].Stars)
	assert.Less(t, ranked[0].Error, ranked[1].Error)
	assert.InDelta(t, 0.3, ranked[0].X, 0)
}

func TestRank_TiesAreDeterministic(t *testing.T) {
	a := Candidate{Force: 1, SW: 4.9, Modified: NewParamSet(ParamSW)}
	b := Candidate{Force: 1, SW: 5.1, Modified: NewParamSet(ParamSW)}
	assert.Equal(t, Rank([]Candidate{a, b}, 1), Rank([]Candidate{b, a}, 1))
}

func TestTopN(t *testing.T) {
	ranked := make([]Result, 3)
	assert.Len(t, topN(ranked, 5), 3, "never pads")
	assert.Len(t, topN(ranked, 2), 2)
}

func TestParamSet_Text(t *testing.T) {
	s := NewParamSet(ParamSS, ParamSL)
	assert.Equal(t, "SL,SS", s.String())
	assert.Equal(t, "-", NewParamSet().String())
	assert.Equal(t, 2, s.Len())

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `["SL","SS"]`, string(b))

	var back ParamSet
	require.NoError(t, json.Unmarshal([]byte(`["st","SW"]`), &back))
	assert.Equal(t, NewParamSet(ParamST, ParamSW), back)
	assert.Error(t, json.Unmarshal([]byte(`["XX"]`), &back))
}
