package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// minStep is the finest sweep increment Validate accepts.
const minStep = 1e-4

// Stage is one resolution level of the coarse-to-fine search.
type Stage struct {
	Name string `mapstructure:"name" json:"name"`
	// Step is the sweep increment for SW, SL and SS.
	Step float64 `mapstructure:"step" json:"step"`
	// HalfSpan is the window half-width around each seed in local passes.
	HalfSpan float64 `mapstructure:"half_span" json:"halfSpan"`
}

// Config holds search tuning. Adjust these to trade speed for solution quality.
type Config struct {
	// Stages run in order; each must be strictly finer and narrower than the last.
	Stages []Stage `mapstructure:"stages" json:"stages"`
	// BeamWidth is how many distinct seeds found the next stage's local windows.
	BeamWidth int `mapstructure:"beam_width" json:"beamWidth"`
	// ResultCap stops a stage once it has collected this many feasible results.
	// 0 means max(10, 3·N).
	ResultCap int `mapstructure:"result_cap" json:"resultCap"`
	// ForceTolerance is the relative half-width of the force band.
	ForceTolerance float64 `mapstructure:"force_tolerance" json:"forceTolerance"`
	// CentroidTolerance bounds |X| and |Y| of the force centroid in mm.
	CentroidTolerance float64 `mapstructure:"centroid_tolerance" json:"centroidTolerance"`
	// ThicknessStep is the tooling grid for ST; it does not refine with stages.
	ThicknessStep float64 `mapstructure:"thickness_step" json:"thicknessStep"`
	// Workers bounds the goroutines per stage. 0 means GOMAXPROCS.
	Workers int `mapstructure:"workers" json:"workers"`

	Width     Limits `mapstructure:"width" json:"width"`
	Length    Limits `mapstructure:"length" json:"length"`
	Stroke    Limits `mapstructure:"stroke" json:"stroke"`
	Thickness Limits `mapstructure:"thickness" json:"thickness"`
}

// DefaultConfig returns the production tuning.
func DefaultConfig() Config {
	return Config{
		Stages: []Stage{
			{Name: "coarse", Step: 0.1, HalfSpan: 0.5},
			{Name: "mid", Step: 0.05, HalfSpan: 0.25},
			{Name: "fine", Step: 0.02, HalfSpan: 0.15},
		},
		BeamWidth:         12,
		ForceTolerance:    0.05,
		CentroidTolerance: 0.5,
		ThicknessStep:     0.1,
		Width:             Limits{Floor: 3, FloorExclusive: true, Window: 0.5},
		Length:            Limits{Floor: 5, FloorExclusive: true, Window: 0.5},
		Stroke:            Limits{Floor: 0.3, FloorExclusive: true, Window: 0.2},
		Thickness:         Limits{Floor: 0.3, Ceil: 0.5},
	}
}

// Validate checks that the stages refine monotonically and every knob is in range.
func (c Config) Validate() error {
	if len(c.Stages) == 0 {
		return fmt.Errorf("%w: no stages", ErrInvalidConfig)
	}
	for i, s := range c.Stages {
		if !(s.Step >= minStep) || s.HalfSpan < 0 {
			return fmt.Errorf("%w: stage %d (%s): step %v half-span %v", ErrInvalidConfig, i, s.Name, s.Step, s.HalfSpan)
		}
		if i == 0 {
			continue
		}
		prev := c.Stages[i-1]
		if s.Step >= prev.Step || s.HalfSpan >= prev.HalfSpan {
			return fmt.Errorf("%w: stage %d (%s) does not refine %s", ErrInvalidConfig, i, s.Name, prev.Name)
		}
	}
	switch {
	case c.BeamWidth < 1:
		return fmt.Errorf("%w: beam width %d", ErrInvalidConfig, c.BeamWidth)
	case c.ResultCap < 0:
		return fmt.Errorf("%w: result cap %d", ErrInvalidConfig, c.ResultCap)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	case !(c.ForceTolerance > 0) || !(c.CentroidTolerance > 0):
		return fmt.Errorf("%w: tolerances must be > 0", ErrInvalidConfig)
	case !(c.ThicknessStep >= minStep):
		return fmt.Errorf("%w: thickness step %v", ErrInvalidConfig, c.ThicknessStep)
	}
	return nil
}

func (c Config) resultCap(n int) int {
	if c.ResultCap > 0 {
		return c.ResultCap
	}
	return max(10, 3*n)
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// LoadConfig overlays a config file (YAML, JSON or TOML) and SHRAPNEL_* environment
// variables onto DefaultConfig. An empty path reads the environment only.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetEnvPrefix("shrapnel")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("beam_width", cfg.BeamWidth)
	v.SetDefault("result_cap", cfg.ResultCap)
	v.SetDefault("force_tolerance", cfg.ForceTolerance)
	v.SetDefault("centroid_tolerance", cfg.CentroidTolerance)
	v.SetDefault("thickness_step", cfg.ThicknessStep)
	v.SetDefault("workers", cfg.Workers)
	for key, l := range map[string]Limits{
		"width": cfg.Width, "length": cfg.Length, "stroke": cfg.Stroke, "thickness": cfg.Thickness,
	} {
		v.SetDefault(key+".floor", l.Floor)
		v.SetDefault(key+".floor_exclusive", l.FloorExclusive)
		v.SetDefault(key+".ceil", l.Ceil)
		v.SetDefault(key+".window", l.Window)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if v.IsSet("stages") {
		cfg.Stages = nil // replace the default stages instead of merging by index
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
