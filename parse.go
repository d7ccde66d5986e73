package main

import (
	"fmt"
	"os"
)

// Defaults applied to fields a request leaves out.
const (
	defaultModulus = 18763.0
	defaultCount   = 5
)

// Request is one shrapnel search or evaluation input.
type Request struct {
	Assembly Assembly `json:"quadrants"`
	Target   Target   `json:"target"`
}

// LoadRequest reads and parses a shrapnel request file.
func LoadRequest(path string) (Request, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Request{}, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseRequest(string(raw))
}

// LoadSpringRequest reads and parses a spring request file.
func LoadSpringRequest(path string) (SpringInput, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return SpringInput{}, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseSpringRequest(string(raw))
}
