package main

import "errors"

// Every message is prefixed with "shrapnel: " so it greps cleanly in logs.
// Wrap with fmt.Errorf("ctx: %w", ErrX) when context matters; match with errors.Is.
var (
	// ErrInvalidTarget is returned when the target force is not a finite positive number.
	ErrInvalidTarget = errors.New("shrapnel: target force must be > 0")

	// ErrInvalidCount is returned when the display count is below 1.
	ErrInvalidCount = errors.New("shrapnel: display count must be >= 1")

	// ErrInvalidConfig is returned by Config.Validate.
	ErrInvalidConfig = errors.New("shrapnel: invalid search config")

	// ErrQuadrantCount is returned when a request does not carry exactly four quadrants.
	ErrQuadrantCount = errors.New("shrapnel: exactly four quadrants required")

	// ErrNegativeDimension is returned when a geometry field or modulus is negative.
	ErrNegativeDimension = errors.New("shrapnel: dimensions must be non-negative")

	// ErrInvalidRequest is returned for malformed request documents.
	ErrInvalidRequest = errors.New("shrapnel: invalid request")

	// ErrScrewDiameter is returned when the screw shank is not thinner than the screw head.
	ErrScrewDiameter = errors.New("shrapnel: screw shank diameter must be smaller than head diameter")

	// ErrInvalidSpringInput is returned for non-positive spring search inputs.
	ErrInvalidSpringInput = errors.New("shrapnel: invalid spring input")
)
