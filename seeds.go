package main

import (
	"cmp"
	"math"
	"slices"
)

// fingerprint identifies a candidate by its rounded parameter tuple.
type fingerprint [3 + QuadrantCount]int64

func fingerprintOf(c *Candidate) fingerprint {
	fp := fingerprint{quantize(c.ST), quantize(c.SW), quantize(c.SS)}
	for i, v := range c.SL {
		fp[3+i] = quantize(v)
	}
	return fp
}

func quantize(v float64) int64 { return int64(math.Round(v * precisionScale)) }

func compareFingerprints(a, b fingerprint) int {
	for i := range a {
		if c := cmp.Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}

// seed is an evaluated candidate carried into the next stage.
type seed struct {
	Candidate
	err float64
	fp  fingerprint
}

func compareSeeds(a, b *seed) int {
	if c := cmp.Compare(a.err, b.err); c != 0 {
		return c
	}
	return compareFingerprints(a.fp, b.fp)
}

// seedBeam keeps the k distinct seeds closest to the target force. Each
// worker owns one; they are merged with selectBeam after the stage.
type seedBeam struct {
	k     int
	items []seed // ascending by compareSeeds
}

func newSeedBeam(k int) *seedBeam {
	return &seedBeam{k: k, items: make([]seed, 0, k+1)}
}

// offer considers c with force error err. The fingerprint is only built once
// c beats the current worst seed.
func (b *seedBeam) offer(c *Candidate, err float64) {
	if len(b.items) == b.k && err >= b.items[len(b.items)-1].err {
		return
	}
	s := seed{Candidate: *c, err: err, fp: fingerprintOf(c)}
	for i := range b.items {
		if b.items[i].fp == s.fp {
			return
		}
	}
	i, _ := slices.BinarySearchFunc(b.items, s, func(x, t seed) int { return compareSeeds(&x, &t) })
	b.items = slices.Insert(b.items, i, s)
	if len(b.items) > b.k {
		b.items = b.items[:b.k]
	}
}

// selectBeam sorts seeds by ascending force error and keeps the first k distinct ones.
func selectBeam(seeds []seed, k int) []seed {
	sorted := slices.Clone(seeds)
	slices.SortFunc(sorted, func(a, b seed) int { return compareSeeds(&a, &b) })
	out := make([]seed, 0, min(k, len(sorted)))
	seen := make(map[fingerprint]bool, k)
	for _, s := range sorted {
		if len(out) == k {
			break
		}
		if seen[s.fp] {
			continue
		}
		seen[s.fp] = true
		out = append(out, s)
	}
	return out
}

// resultPool accumulates feasible candidates across stages without duplicates.
type resultPool struct {
	seen  map[fingerprint]bool
	items []Candidate
}

func newResultPool() *resultPool {
	return &resultPool{seen: make(map[fingerprint]bool)}
}

// add appends the candidates not seen before and returns how many were new.
func (p *resultPool) add(cands []Candidate) int {
	n := 0
	for i := range cands {
		fp := fingerprintOf(&cands[i])
		if p.seen[fp] {
			continue
		}
		p.seen[fp] = true
		p.items = append(p.items, cands[i])
		n++
	}
	return n
}
