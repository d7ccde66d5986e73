package main

// QuadrantEval is the cost model output for one quadrant.
type QuadrantEval struct {
	Quadrant
	Inertia  float64 `json:"inertia"`
	Force    float64 `json:"force"`
	MomentX  float64 `json:"momentX"`
	MomentY  float64 `json:"momentY"`
	Disabled bool    `json:"disabled"`
}

// Evaluation judges an assembly as given against the target bands.
type Evaluation struct {
	Quadrants  [QuadrantCount]QuadrantEval `json:"quadrants"`
	Totals     Totals                      `json:"totals"`
	X          float64                     `json:"x"`
	Y          float64                     `json:"y"`
	BandLo     float64                     `json:"bandLo"`
	BandHi     float64                     `json:"bandHi"`
	ForceOK    bool                        `json:"forceOk"`
	CentroidOK bool                        `json:"centroidOk"`
}

// OK reports whether both bands are met.
func (e *Evaluation) OK() bool { return e.ForceOK && e.CentroidOK }

// Evaluate runs the cost model on asm without searching.
func Evaluate(asm Assembly, target Target, cfg Config) (Evaluation, error) {
	if err := target.Validate(); err != nil {
		return Evaluation{}, err
	}
	if err := asm.Validate(); err != nil {
		return Evaluation{}, err
	}
	var e Evaluation
	for i := range asm {
		q := &asm[i]
		f := q.Force()
		e.Quadrants[i] = QuadrantEval{
			Quadrant: *q,
			Inertia:  q.Inertia(),
			Force:    f,
			MomentX:  q.MomentX(f),
			MomentY:  q.MomentY(f),
			Disabled: q.Disabled(),
		}
	}
	e.Totals = asm.Totals()
	e.X, e.Y = e.Totals.Centroid()
	e.BandLo, e.BandHi = target.Band(cfg.ForceTolerance)
	e.ForceOK = !nearZero(e.Totals.Force) && e.Totals.Force >= e.BandLo && e.Totals.Force <= e.BandHi
	tol := cfg.CentroidTolerance
	e.CentroidOK = e.X >= -tol && e.X <= tol && e.Y >= -tol && e.Y <= tol
	return e, nil
}
