package main

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// QuadrantCount is the number of spring units in an assembly.
const QuadrantCount = 4

// Param identifies one tunable dimension.
type Param uint8

const (
	ParamSL Param = 1 << iota // length, independent per quadrant
	ParamSW                   // width, shared
	ParamST                   // thickness, shared
	ParamSS                   // stroke, shared
)

// allParams is the canonical display order.
var allParams = [...]Param{ParamSL, ParamSW, ParamST, ParamSS}

func (p Param) String() string {
	switch p {
	case ParamSL:
		return "SL"
	case ParamSW:
		return "SW"
	case ParamST:
		return "ST"
	case ParamSS:
		return "SS"
	}
	return fmt.Sprintf("Param(%d)", uint8(p))
}

func parseParam(s string) (Param, bool) {
	for _, p := range allParams {
		if strings.EqualFold(s, p.String()) {
			return p, true
		}
	}
	return 0, false
}

// ParamSet is the set of dimensions a candidate deviates on from the baseline.
type ParamSet uint8

// NewParamSet builds a set from the given params.
func NewParamSet(ps ...Param) ParamSet {
	var s ParamSet
	for _, p := range ps {
		s = s.With(p)
	}
	return s
}

func (s ParamSet) With(p Param) ParamSet { return s | ParamSet(p) }
func (s ParamSet) Has(p Param) bool      { return s&ParamSet(p) != 0 }
func (s ParamSet) Empty() bool           { return s == 0 }

// Len returns the number of params in the set.
func (s ParamSet) Len() int {
	n := 0
	for _, p := range allParams {
		if s.Has(p) {
			n++
		}
	}
	return n
}

// Params lists the set members in display order.
func (s ParamSet) Params() []Param {
	out := make([]Param, 0, len(allParams))
	for _, p := range allParams {
		if s.Has(p) {
			out = append(out, p)
		}
	}
	return out
}

func (s ParamSet) String() string {
	if s.Empty() {
		return "-"
	}
	names := make([]string, 0, len(allParams))
	for _, p := range s.Params() {
		names = append(names, p.String())
	}
	return strings.Join(names, ",")
}

func (s ParamSet) MarshalJSON() ([]byte, error) {
	names := make([]string, 0, len(allParams))
	for _, p := range s.Params() {
		names = append(names, p.String())
	}
	return json.Marshal(names)
}

func (s *ParamSet) UnmarshalJSON(b []byte) error {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return err
	}
	var out ParamSet
	for _, n := range names {
		p, ok := parseParam(n)
		if !ok {
			return fmt.Errorf("unknown param %q", n)
		}
		out = out.With(p)
	}
	*s = out
	return nil
}

// Quadrant is one spring unit: anchor position in mm, geometry in mm and modulus G in kgf/mm².
type Quadrant struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	SL float64 `json:"sl"`
	SW float64 `json:"sw"`
	ST float64 `json:"st"`
	SS float64 `json:"ss"`
	G  float64 `json:"g"`
}

// Disabled reports whether all four geometry fields are zero.
func (q Quadrant) Disabled() bool {
	return nearZero(q.SL) && nearZero(q.SW) && nearZero(q.ST) && nearZero(q.SS)
}

func (q Quadrant) validate() error {
	for _, v := range [...]float64{q.SL, q.SW, q.ST, q.SS, q.G} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrNegativeDimension
		}
	}
	return nil
}

// Assembly is four quadrants in fixed positions 1..4.
type Assembly [QuadrantCount]Quadrant

// Validate rejects negative or non-finite geometry.
func (a *Assembly) Validate() error {
	for i := range a {
		if err := a[i].validate(); err != nil {
			return fmt.Errorf("quadrant %d: %w", i+1, err)
		}
	}
	return nil
}

// Enabled returns the indices of quadrants taking part in the search.
func (a *Assembly) Enabled() []int {
	idx := make([]int, 0, QuadrantCount)
	for i := range a {
		if !a[i].Disabled() {
			idx = append(idx, i)
		}
	}
	return idx
}

// Target is the force/centroid goal and the number of results to show.
type Target struct {
	Force float64 `json:"force"`
	Count int     `json:"count"`
}

// Validate checks the search preconditions.
func (t Target) Validate() error {
	if !(t.Force > 0) || math.IsInf(t.Force, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidTarget, t.Force)
	}
	if t.Count < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidCount, t.Count)
	}
	return nil
}

// Band returns the inclusive force window [F·(1-tol), F·(1+tol)].
func (t Target) Band(tol float64) (lo, hi float64) {
	return t.Force * (1 - tol), t.Force * (1 + tol)
}

// Candidate is one assignment of the shared dimensions and per-quadrant lengths.
type Candidate struct {
	ST       float64                `json:"st"`
	SW       float64                `json:"sw"`
	SS       float64                `json:"ss"`
	SL       [QuadrantCount]float64 `json:"sl"`
	Force    float64                `json:"force"`
	X        float64                `json:"x"`
	Y        float64                `json:"y"`
	Modified ParamSet               `json:"modified"`
}

// ForceError is |F - target|.
func (c *Candidate) ForceError(target float64) float64 {
	return math.Abs(c.Force - target)
}

// Result is a feasible candidate with its star rating.
type Result struct {
	Candidate
	Stars int     `json:"stars"`
	Error float64 `json:"forceError"`
}
