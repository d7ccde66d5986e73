package main

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// Unit conversions used by the spring load check.
const (
	kgfToLbf        = 2.2046
	kgfPerMM2ToPSI  = 1421.0573
	defaultSpringG  = 8000.0
	springLoadTol   = 0.10
	springMaxPitch  = 2.5
	springSolidFrac = 0.75
)

// SpringInput is the compression-spring module under a CPU.
type SpringInput struct {
	L    float64 `json:"l"`    // CPU length, mm
	W    float64 `json:"w"`    // CPU width, mm
	G    float64 `json:"g"`    // modulus, kgf/mm²
	SS   float64 `json:"ss"`   // screw stroke, mm
	SRU  float64 `json:"sru"`  // spring room unlocked, mm
	SSD  float64 `json:"ssd"`  // screw shank diameter, mm
	SHD  float64 `json:"shd"`  // screw head diameter, mm
	CPSI float64 `json:"cpsi"` // chip max load, lbf/in²
	SNN  int     `json:"snn"`  // screw count
	N    int     `json:"n"`    // display count
}

// Validate checks positivity and the screw geometry.
func (in SpringInput) Validate() error {
	for name, v := range map[string]float64{
		"l": in.L, "w": in.W, "g": in.G, "ss": in.SS, "sru": in.SRU, "ssd": in.SSD, "shd": in.SHD, "cpsi": in.CPSI,
	} {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s = %v", ErrInvalidSpringInput, name, v)
		}
	}
	if in.SNN < 1 {
		return fmt.Errorf("%w: snn = %d", ErrInvalidSpringInput, in.SNN)
	}
	if in.N < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidCount, in.N)
	}
	if in.SSD >= in.SHD {
		return fmt.Errorf("%w: ssd %v >= shd %v", ErrScrewDiameter, in.SSD, in.SHD)
	}
	return nil
}

// SpringDesign is one evaluated spring with its satisfied-condition score.
type SpringDesign struct {
	WD        float64  `json:"wireDiameter"`
	ID        float64  `json:"innerDiameter"`
	OD        float64  `json:"outerDiameter"`
	MD        float64  `json:"meanDiameter"`
	SN        float64  `json:"totalCoils"`
	NC        float64  `json:"activeCoils"`
	FL        float64  `json:"freeLength"`
	SL        float64  `json:"solidHeight"`
	SP        float64  `json:"preload"`
	SPP       float64  `json:"pitch"`
	SRL       float64  `json:"roomLocked"`
	ST        float64  `json:"stroke"`
	SCC       float64  `json:"compressionCheck"`
	SK        float64  `json:"rate"`
	DF        float64  `json:"strokeForce"`
	TFK       float64  `json:"totalKgf"`
	TFL       float64  `json:"totalLbf"`
	PSI       float64  `json:"psi"`
	Score     int      `json:"score"`
	Failed    []string `json:"failed,omitempty"`
	deviation float64
}

func r2(v float64) float64 { return roundTo(v, 2) }

// evalSpring derives one design. ok is false for geometry the sweep must skip.
func evalSpring(in *SpringInput, wd, id, sn, fl float64) (d SpringDesign, ok bool) {
	nc := sn - 2
	if nc <= 0 {
		return d, false
	}
	d = SpringDesign{WD: wd, ID: id, SN: sn, NC: nc, FL: fl}
	d.OD = r2(id + 2*wd)
	d.MD = r2(id + wd)
	d.SK = r2(in.G * math.Pow(wd, 4) / (8 * math.Pow(d.MD, 3) * nc))
	d.SL = r2((sn + 1) * wd)
	d.SP = r2(fl - in.SRU)
	if d.SP <= 0 {
		return d, false
	}
	d.SPP = r2(fl / sn)
	d.ST = r2(d.SP + in.SS)
	d.SCC = r2(d.ST + d.SL)
	if d.SCC > fl {
		return d, false
	}
	d.SRL = r2(in.SRU - in.SS)
	d.DF = r2(d.ST * d.SK)
	d.TFK = r2(d.DF * float64(in.SNN))
	d.TFL = r2(d.TFK * kgfToLbf)
	d.PSI = r2(d.TFK / (in.L * in.W) * kgfPerMM2ToPSI)
	d.deviation = math.Abs(d.PSI - in.CPSI)

	lo, hi := in.CPSI*(1-springLoadTol), in.CPSI*(1+springLoadTol)
	if d.PSI >= lo && d.PSI <= hi {
		d.Score++
	} else {
		d.Failed = append(d.Failed, fmt.Sprintf("chip load out of range: %.2f lbf/in²", d.PSI))
	}
	d.Score++ // preload is positive past the skip above
	if d.SPP < springMaxPitch {
		d.Score++
	} else {
		d.Failed = append(d.Failed, fmt.Sprintf("pitch too large: %.2f mm", d.SPP))
	}
	if d.SL >= fl*springSolidFrac {
		d.Score++
	} else {
		d.Failed = append(d.Failed, fmt.Sprintf("insufficient compression: free length %.2f mm, solid height %.2f mm", fl, d.SL))
	}
	return d, true
}

// SpringSearch sweeps wire diameter, inner diameter, coil count and free length,
// keeps designs meeting at least two conditions and returns the best N.
// Ordering is descending score, then ascending chip-load deviation.
func SpringSearch(in SpringInput) ([]SpringDesign, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var valid []SpringDesign
	for _, wd := range Range(0.2, 1.0, 0.1) {
		for _, id := range Range(in.SSD+0.01, in.SHD-0.01, 0.1) {
			id = r2(id)
			for _, sn := range Range(3, 20, 1) {
				sl := r2((sn + 1) * wd)
				for _, fl := range Range(sl+0.1, in.SRU+sl, 0.5) {
					d, ok := evalSpring(&in, wd, id, sn, r2(fl))
					if ok && d.Score >= 2 {
						valid = append(valid, d)
					}
				}
			}
		}
	}
	slices.SortStableFunc(valid, func(a, b SpringDesign) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.deviation, b.deviation)
	})
	if len(valid) > in.N {
		valid = valid[:in.N]
	}
	return valid, nil
}
