package main

import (
	"fmt"
	"strings"
)

// FormatReport renders ranked results as a table, or a no-solution note
// quoting the bands of cfg.
func FormatReport(r Report, target Target, cfg Config) string {
	var b strings.Builder
	if len(r.Results) == 0 {
		fmt.Fprintf(&b, "no combination meets F=%.2f kgf ±%.4g%% with centroid inside ±%.4g mm\n",
			target.Force, cfg.ForceTolerance*100, cfg.CentroidTolerance)
		return b.String()
	}
	fmt.Fprintf(&b, "found %d feasible combinations, showing %d\n", r.Feasible, len(r.Results))
	fmt.Fprintf(&b, "%-3s %-6s %7s %7s %7s %7s %7s %7s %7s %9s %8s %8s %s\n",
		"#", "rating", "ST", "SW", "SS", "SL1", "SL2", "SL3", "SL4", "F(kgf)", "X(mm)", "Y(mm)", "modified")
	for i := range r.Results {
		res := &r.Results[i]
		fmt.Fprintf(&b, "%-3d %-6s %7.2f %7.2f %7.2f %7.2f %7.2f %7.2f %7.2f %9.4f %8.4f %8.4f %s\n",
			i+1, starString(res.Stars), res.ST, res.SW, res.SS,
			res.SL[0], res.SL[1], res.SL[2], res.SL[3],
			res.Force, res.X, res.Y, res.Modified)
	}
	return b.String()
}

// FormatStages renders per-stage statistics.
func FormatStages(r Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-8s %-6s %6s %7s %12s %9s %10s %8s %6s %10s\n",
		"stage", "mode", "seeds", "jobs", "evaluated", "pruned", "branches", "feasible", "capped", "time")
	for _, s := range r.Stages {
		fmt.Fprintf(&b, "%-8s %-6s %6d %7d %12d %9d %10d %8d %6v %9.2fs\n",
			s.Name, s.Mode, s.Seeds, s.Jobs, s.Evaluated, s.Pruned, s.Branches, s.Feasible, s.Capped, s.Elapsed.Seconds())
	}
	return b.String()
}

func okNG(ok bool) string {
	if ok {
		return "OK"
	}
	return "NG"
}

// FormatEvaluation renders the per-quadrant cost model and the band judgement.
func FormatEvaluation(e Evaluation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-2s %10s %10s %7s %7s %7s %7s %8s %12s %10s %12s %12s\n",
		"Q", "X(mm)", "Y(mm)", "SL", "SW", "ST", "SS", "G", "I(mm⁴)", "F(kgf)", "MX(kgf·mm)", "MY(kgf·mm)")
	for i, q := range e.Quadrants {
		if q.Disabled {
			fmt.Fprintf(&b, "%-2d %10.4f %10.4f %s\n", i+1, q.X, q.Y, "disabled")
			continue
		}
		fmt.Fprintf(&b, "%-2d %10.4f %10.4f %7.2f %7.2f %7.2f %7.2f %8.0f %12.6f %10.4f %12.4f %12.4f\n",
			i+1, q.X, q.Y, q.SL, q.SW, q.ST, q.SS, q.G, q.Inertia, q.Force, q.MomentX, q.MomentY)
	}
	fmt.Fprintf(&b, "total F = %.4f kgf (band %.4f..%.4f) %s\n", e.Totals.Force, e.BandLo, e.BandHi, okNG(e.ForceOK))
	fmt.Fprintf(&b, "total MX = %.4f kgf·mm, MY = %.4f kgf·mm\n", e.Totals.MomentX, e.Totals.MomentY)
	fmt.Fprintf(&b, "centroid X = %.4f mm, Y = %.4f mm %s\n", e.X, e.Y, okNG(e.CentroidOK))
	return b.String()
}

// FormatSprings renders spring designs, best first.
func FormatSprings(ds []SpringDesign) string {
	var b strings.Builder
	if len(ds) == 0 {
		b.WriteString("no spring combination meets the conditions, try adjusting the inputs\n")
		return b.String()
	}
	for i := range ds {
		d := &ds[i]
		fmt.Fprintf(&b, "#%d %s\n", i+1, starString(d.Score))
		fmt.Fprintf(&b, "  wire %.2f mm, inner %.2f mm, outer %.2f mm, mean %.2f mm\n", d.WD, d.ID, d.OD, d.MD)
		fmt.Fprintf(&b, "  coils %.0f (active %.0f), free length %.2f mm, solid height %.2f mm\n", d.SN, d.NC, d.FL, d.SL)
		fmt.Fprintf(&b, "  preload %.2f mm, pitch %.2f mm, room locked %.2f mm, stroke %.2f mm, check %.2f mm\n",
			d.SP, d.SPP, d.SRL, d.ST, d.SCC)
		fmt.Fprintf(&b, "  rate %.2f kgf/mm, stroke force %.2f kg, total %.2f kgf / %.2f lbf, load %.2f lbf/in²\n",
			d.SK, d.DF, d.TFK, d.TFL, d.PSI)
		if len(d.Failed) == 0 {
			b.WriteString("  unmet: none\n")
			continue
		}
		for _, f := range d.Failed {
			fmt.Fprintf(&b, "  unmet: %s\n", f)
		}
	}
	return b.String()
}
