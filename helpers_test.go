package main

import (
	"io"

	"github.com/sirupsen/logrus"
)

// symmetricAssembly is four identical quadrants at (±10, ±10).
func symmetricAssembly() Assembly {
	q := Quadrant{SL: 20, SW: 5, ST: 0.3, SS: 0.5, G: 18763}
	var asm Assembly
	for i, pos := range [QuadrantCount][2]float64{{10, 10}, {-10, 10}, {-10, -10}, {10, -10}} {
		asm[i] = q
		asm[i].X, asm[i].Y = pos[0], pos[1]
	}
	return asm
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// serialConfig is the default tuning on one worker, so runs are deterministic.
func serialConfig() Config {
	cfg := DefaultConfig()
	cfg.Workers = 1
	return cfg
}
