package main

import (
	"fmt"
	"math"

	"github.com/tidwall/gjson"
)

// ParseRequest reads a shrapnel request:
//
//	{"target": 4.5, "count": 5, "defaultG": 18763,
//	 "quadrants": [{"x": 10, "y": 10, "sl": 20, "sw": 5, "st": 0.3, "ss": 0.5, "g": 18763}, ...]}
//
// A quadrant without "g" takes defaultG. The target and count are validated here.
func ParseRequest(raw string) (Request, error) {
	if !gjson.Valid(raw) {
		return Request{}, fmt.Errorf("%w: malformed JSON", ErrInvalidRequest)
	}
	root := gjson.Parse(raw)
	var req Request
	var err error

	defG := defaultModulus
	if v := root.Get("defaultG"); v.Exists() {
		if defG, err = readNumber(root, "defaultG", 0); err != nil {
			return Request{}, err
		}
	}

	qs := root.Get("quadrants")
	if !qs.IsArray() {
		return Request{}, fmt.Errorf("%w: quadrants must be an array", ErrInvalidRequest)
	}
	arr := qs.Array()
	if len(arr) != QuadrantCount {
		return Request{}, fmt.Errorf("%w: got %d", ErrQuadrantCount, len(arr))
	}
	for i, q := range arr {
		if req.Assembly[i], err = readQuadrant(q, defG); err != nil {
			return Request{}, fmt.Errorf("quadrant %d: %w", i+1, err)
		}
	}
	if err := req.Assembly.Validate(); err != nil {
		return Request{}, err
	}

	if req.Target.Force, err = readNumber(root, "target", 0); err != nil {
		return Request{}, err
	}
	count, err := readNumber(root, "count", defaultCount)
	if err != nil {
		return Request{}, err
	}
	if count != float64(int(count)) {
		return Request{}, fmt.Errorf("%w: count must be an integer, got %v", ErrInvalidRequest, count)
	}
	req.Target.Count = int(count)
	if err := req.Target.Validate(); err != nil {
		return Request{}, err
	}
	return req, nil
}

func readQuadrant(v gjson.Result, defG float64) (Quadrant, error) {
	if !v.IsObject() {
		return Quadrant{}, fmt.Errorf("%w: quadrant must be an object", ErrInvalidRequest)
	}
	var q Quadrant
	fields := []struct {
		key string
		dst *float64
		def float64
	}{
		{"x", &q.X, 0}, {"y", &q.Y, 0},
		{"sl", &q.SL, 0}, {"sw", &q.SW, 0}, {"st", &q.ST, 0}, {"ss", &q.SS, 0},
		{"g", &q.G, defG},
	}
	for _, f := range fields {
		n, err := readNumber(v, f.key, f.def)
		if err != nil {
			return Quadrant{}, err
		}
		*f.dst = n
	}
	return q, nil
}

// readNumber returns the numeric field key of v, or def when it is absent or null.
func readNumber(v gjson.Result, key string, def float64) (float64, error) {
	r := v.Get(key)
	switch r.Type {
	case gjson.Null:
		return def, nil
	case gjson.Number:
		return r.Float(), nil
	}
	return 0, fmt.Errorf("%w: field %q is not a number", ErrInvalidRequest, key)
}

// ParseSpringRequest reads a spring request; absent fields take the form defaults.
func ParseSpringRequest(raw string) (SpringInput, error) {
	if !gjson.Valid(raw) {
		return SpringInput{}, fmt.Errorf("%w: malformed JSON", ErrInvalidRequest)
	}
	root := gjson.Parse(raw)
	var in SpringInput
	var snn, n float64
	fields := []struct {
		key string
		dst *float64
		def float64
	}{
		{"l", &in.L, 25}, {"w", &in.W, 25}, {"g", &in.G, defaultSpringG},
		{"ss", &in.SS, 0.3}, {"sru", &in.SRU, 2.5},
		{"ssd", &in.SSD, 1.2}, {"shd", &in.SHD, 2.4},
		{"cpsi", &in.CPSI, 40}, {"snn", &snn, 4}, {"n", &n, defaultCount},
	}
	for _, f := range fields {
		v, err := readNumber(root, f.key, f.def)
		if err != nil {
			return SpringInput{}, err
		}
		*f.dst = v
	}
	for key, v := range map[string]float64{"snn": snn, "n": n} {
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return SpringInput{}, fmt.Errorf("%w: %s must be an integer, got %v", ErrInvalidRequest, key, v)
		}
	}
	in.SNN, in.N = int(snn), int(n)
	if err := in.Validate(); err != nil {
		return SpringInput{}, err
	}
	return in, nil
}
