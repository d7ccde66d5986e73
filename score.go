package main

import (
	"cmp"
	"math"
	"slices"
	"strings"
)

// Stars rates design economy from the deviated dimensions. Thickness is a
// discrete tooling choice, so a thickness-only change rates highest; each
// further deviated dimension drops one tier down to the 1-star floor.
// No deviation at all rates 1 star.
func Stars(m ParamSet) int {
	n := m.Len()
	switch {
	case n == 0:
		return 1
	case m == NewParamSet(ParamST):
		return 4
	case m.Has(ParamST):
		return max(1, 4-(n-1))
	default:
		return max(1, 4-n)
	}
}

// starString renders a rating as filled/empty stars.
func starString(stars int) string {
	stars = min(max(stars, 0), 4)
	return strings.Repeat("★", stars) + strings.Repeat("☆", 4-stars)
}

func newResult(c Candidate, target float64) Result {
	return Result{Candidate: c, Stars: Stars(c.Modified), Error: c.ForceError(target)}
}

// compareResults orders by descending stars, then ascending force error.
// Centroid offset and the parameter tuple break remaining ties so output
// does not depend on worker scheduling.
func compareResults(a, b *Result) int {
	if c := cmp.Compare(b.Stars, a.Stars); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Error, b.Error); c != 0 {
		return c
	}
	if c := cmp.Compare(math.Hypot(a.X, a.Y), math.Hypot(b.X, b.Y)); c != 0 {
		return c
	}
	return compareFingerprints(fingerprintOf(&a.Candidate), fingerprintOf(&b.Candidate))
}

// Rank scores candidates against the target force and orders them for presentation.
func Rank(cands []Candidate, target float64) []Result {
	out := make([]Result, len(cands))
	for i := range cands {
		out[i] = newResult(cands[i], target)
	}
	slices.SortFunc(out, func(a, b Result) int { return compareResults(&a, &b) })
	return out
}

// topN truncates ranked results to n; fewer results are returned as is.
func topN(ranked []Result, n int) []Result {
	if len(ranked) <= n {
		return ranked
	}
	return ranked[:n]
}
