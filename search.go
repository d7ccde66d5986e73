package main

import (
	"io"
	"iter"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// ── Optimizer ───────────────────────────────────────────────────────

// Optimizer runs the coarse-to-fine staged search for one assembly and target.
// It holds no state beyond one invocation; Optimize may be called repeatedly.
type Optimizer struct {
	asm    Assembly
	target Target
	cfg    Config
	log    *logrus.Logger

	enabled  []int     // quadrant indices swept, in position order
	baseline Candidate // shared dims from the first enabled quadrant, per-quadrant SL
	bandLo   float64
	bandHi   float64
	limit    int // feasible results per stage
}

// Mode tells whether a stage swept the full windows or seed neighborhoods.
type Mode string

const (
	ModeGlobal Mode = "global"
	ModeLocal  Mode = "local"
)

// StageStats summarizes one stage run.
type StageStats struct {
	Name      string        `json:"name"`
	Mode      Mode          `json:"mode"`
	Seeds     int           `json:"seeds"`
	Jobs      int           `json:"jobs"`
	Evaluated int64         `json:"evaluated"`
	Pruned    int64         `json:"pruned"`
	Branches  int64         `json:"prunedBranches"`
	Feasible  int           `json:"feasible"`
	Capped    bool          `json:"capped"`
	Elapsed   time.Duration `json:"elapsedNs"`
}

// Report is the outcome of a search. Results is empty when no candidate met
// the bands; that is a normal outcome, not an error.
type Report struct {
	Results  []Result      `json:"results"`
	Feasible int           `json:"feasible"`
	Stages   []StageStats  `json:"stages"`
	Elapsed  time.Duration `json:"elapsedNs"`
}

// NewOptimizer validates the inputs and prepares the baseline. A nil logger discards output.
func NewOptimizer(asm Assembly, target Target, cfg Config, log *logrus.Logger) (*Optimizer, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if err := asm.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	o := &Optimizer{
		asm:     asm,
		target:  target,
		cfg:     cfg,
		log:     log,
		enabled: asm.Enabled(),
		limit:   cfg.resultCap(target.Count),
	}
	o.bandLo, o.bandHi = target.Band(cfg.ForceTolerance)
	if len(o.enabled) > 0 {
		q := asm[o.enabled[0]]
		o.baseline.ST, o.baseline.SW, o.baseline.SS = q.ST, q.SW, q.SS
	}
	for _, qi := range o.enabled {
		o.baseline.SL[qi] = asm[qi].SL
	}
	return o, nil
}

// Search runs the staged optimizer and returns at most target.Count ranked results.
func Search(asm Assembly, target Target, cfg Config, log *logrus.Logger) (Report, error) {
	o, err := NewOptimizer(asm, target, cfg, log)
	if err != nil {
		return Report{}, err
	}
	r := o.Optimize()
	r.Results = topN(r.Results, target.Count)
	return r, nil
}

// ── Evaluation ──────────────────────────────────────────────────────

// evaluate computes the exact totals for one assignment. Disabled quadrants stay zero.
func (o *Optimizer) evaluate(s Shared, sl *[QuadrantCount]float64) Candidate {
	c := Candidate{ST: s.ST, SW: s.SW, SS: s.SS}
	var t Totals
	for _, qi := range o.enabled {
		q := o.asm[qi]
		q.SL, q.SW, q.ST, q.SS = sl[qi], s.SW, s.ST, s.SS
		c.SL[qi] = sl[qi]
		t.add(&q)
	}
	c.Force = t.Force
	c.X, c.Y = t.Centroid()
	c.Modified = o.modified(&c)
	return c
}

func (o *Optimizer) modified(c *Candidate) ParamSet {
	var m ParamSet
	if !sameValue(c.ST, o.baseline.ST) {
		m = m.With(ParamST)
	}
	if !sameValue(c.SW, o.baseline.SW) {
		m = m.With(ParamSW)
	}
	if !sameValue(c.SS, o.baseline.SS) {
		m = m.With(ParamSS)
	}
	for _, qi := range o.enabled {
		if !sameValue(c.SL[qi], o.baseline.SL[qi]) {
			m = m.With(ParamSL)
			break
		}
	}
	return m
}

// feasible checks the force band and the centroid box.
func (o *Optimizer) feasible(c *Candidate) bool {
	if nearZero(c.Force) || c.Force < o.bandLo || c.Force > o.bandHi {
		return false
	}
	tol := o.cfg.CentroidTolerance
	return math.Abs(c.X) <= tol && math.Abs(c.Y) <= tol
}

// centroidReachable reports whether the centroid box can contain any convex
// combination of the anchors of force-carrying quadrants. Every swept quadrant
// carries positive force when its modulus is positive.
func (o *Optimizer) centroidReachable() bool {
	tol := o.cfg.CentroidTolerance
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, qi := range o.enabled {
		q := &o.asm[qi]
		if q.G == 0 {
			continue
		}
		minX, maxX = min(minX, q.X), max(maxX, q.X)
		minY, maxY = min(minY, q.Y), max(maxY, q.Y)
	}
	return minX <= tol && maxX >= -tol && minY <= tol && maxY >= -tol
}

// ── Jobs ────────────────────────────────────────────────────────────

// job is one shared-dimension triple with the SL sequences to sweep under it.
// Sequences are in center-out order; disabled quadrants have none.
type job struct {
	shared Shared
	sl     [QuadrantCount][]float64
}

// globalJobs sweeps the full deviation windows around the baseline at step.
func (o *Optimizer) globalJobs(step float64) []job {
	b := &o.baseline
	c := &o.cfg
	tw := c.Thickness.globalWindow(b.ST)
	sts := centerOut(c.Thickness.gridValues(tw.lo, tw.hi, c.ThicknessStep), b.ST)
	sws := o.sweep(c.Width, b.SW, b.SW, c.Width.Window, step)
	sss := o.sweep(c.Stroke, b.SS, b.SS, c.Stroke.Window, step)
	var sl [QuadrantCount][]float64
	for _, qi := range o.enabled {
		sl[qi] = o.sweep(c.Length, b.SL[qi], b.SL[qi], c.Length.Window, step)
	}
	return o.crossJobs(sts, sws, sss, &sl, nil)
}

// localJobs sweeps center ± halfSpan around each seed, clipped to the global windows.
func (o *Optimizer) localJobs(seeds []seed, step, halfSpan float64) []job {
	b := &o.baseline
	c := &o.cfg
	tw := c.Thickness.globalWindow(b.ST)
	var jobs []job
	for i := range seeds {
		s := &seeds[i]
		lo, hi := max(tw.lo, s.ST-halfSpan), min(tw.hi, s.ST+halfSpan)
		sts := centerOut(c.Thickness.gridValues(lo, hi, c.ThicknessStep), s.ST)
		sws := o.sweep(c.Width, b.SW, s.SW, halfSpan, step)
		sss := o.sweep(c.Stroke, b.SS, s.SS, halfSpan, step)
		var sl [QuadrantCount][]float64
		for _, qi := range o.enabled {
			sl[qi] = o.sweep(c.Length, b.SL[qi], s.SL[qi], halfSpan, step)
		}
		jobs = o.crossJobs(sts, sws, sss, &sl, jobs)
	}
	return jobs
}

func (o *Optimizer) sweep(l Limits, baseline, center, halfSpan, step float64) []float64 {
	return centerOut(l.values(center, halfSpan, step, l.globalWindow(baseline)), center)
}

// crossJobs appends one job per (ST, SW, SS) triple. An enabled quadrant with
// an empty SL sequence leaves nothing to enumerate, so no jobs are produced.
func (o *Optimizer) crossJobs(sts, sws, sss []float64, sl *[QuadrantCount][]float64, jobs []job) []job {
	if len(o.enabled) == 0 {
		return jobs
	}
	for _, qi := range o.enabled {
		if len(sl[qi]) == 0 {
			return jobs
		}
	}
	for _, st := range sts {
		for _, sw := range sws {
			for _, ss := range sss {
				jobs = append(jobs, job{shared: Shared{ST: st, SW: sw, SS: ss}, sl: *sl})
			}
		}
	}
	return jobs
}

// ── Enumeration ─────────────────────────────────────────────────────

// jobCounters are per-worker tallies, folded into StageStats after the stage.
type jobCounters struct {
	evaluated int64
	pruned    int64
	branches  int64
}

// candidates lazily yields every SL tuple of j that survives the bound
// estimator. The whole job is skipped when its aggregate interval misses the
// band; partial tuples are bounded the same way at each depth.
func (o *Optimizer) candidates(j *job, n *jobCounters) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		b := newBranch(&o.asm, o.enabled, j.shared, &j.sl)
		if bandMiss(b.restMin[0], b.restMax[0], o.bandLo, o.bandHi) {
			n.pruned++
			return
		}
		var sl [QuadrantCount]float64
		last := len(o.enabled) - 1
		var walk func(depth int, partial float64) bool
		walk = func(depth int, partial float64) bool {
			qi := o.enabled[depth]
			for _, v := range j.sl[qi] {
				sl[qi] = v
				if depth == last {
					n.evaluated++
					if !yield(o.evaluate(j.shared, &sl)) {
						return false
					}
					continue
				}
				f := partial + b.coef[qi]/(v*v*v)
				if bandMiss(f+b.restMin[depth+1], f+b.restMax[depth+1], o.bandLo, o.bandHi) {
					n.branches++
					continue
				}
				if !walk(depth+1, f) {
					return false
				}
			}
			return true
		}
		walk(0, 0)
	}
}

// ── Collection ──────────────────────────────────────────────────────

// collector gathers distinct feasible candidates for one stage up to limit.
// Workers poll full between tuples, so a tuple in flight always completes.
type collector struct {
	mu    sync.Mutex
	limit int
	seen  map[fingerprint]bool
	items []Candidate
	full  atomic.Bool
}

func newCollector(limit int) *collector {
	return &collector{limit: limit, seen: make(map[fingerprint]bool)}
}

// offer records c and reports whether the stage may continue.
func (c *collector) offer(cand *Candidate) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.items) >= c.limit {
		c.full.Store(true)
		return false
	}
	fp := fingerprintOf(cand)
	if !c.seen[fp] {
		c.seen[fp] = true
		c.items = append(c.items, *cand)
	}
	if len(c.items) >= c.limit {
		c.full.Store(true)
		return false
	}
	return true
}

// ── Stage ───────────────────────────────────────────────────────────

type stageOutput struct {
	feasible []Candidate
	seeds    []seed
	stats    StageStats
}

// runStage sweeps one resolution level. Without seeds it runs a global pass,
// otherwise one local pass per seed. It stops as soon as the per-stage limit
// of feasible candidates is collected.
func (o *Optimizer) runStage(st Stage, seeds []seed) stageOutput {
	start := time.Now()
	stats := StageStats{Name: st.Name, Mode: ModeGlobal, Seeds: len(seeds)}
	var jobs []job
	if len(seeds) == 0 {
		jobs = o.globalJobs(st.Step)
	} else {
		stats.Mode = ModeLocal
		jobs = o.localJobs(seeds, st.Step, st.HalfSpan)
	}
	stats.Jobs = len(jobs)

	col := newCollector(o.limit)
	numWorkers := min(o.cfg.workers(), len(jobs))
	beams := make([]*seedBeam, numWorkers)
	counters := make([]jobCounters, numWorkers)

	jobCh := make(chan int, len(jobs))
	for i := range jobs {
		jobCh <- i
	}
	close(jobCh)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		beams[w] = newSeedBeam(o.cfg.BeamWidth)
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			o.work(jobs, jobCh, col, beams[w], &counters[w])
		}(w)
	}
	wg.Wait()

	var all []seed
	for w := range beams {
		all = append(all, beams[w].items...)
		stats.Evaluated += counters[w].evaluated
		stats.Pruned += counters[w].pruned
		stats.Branches += counters[w].branches
	}
	stats.Feasible = len(col.items)
	stats.Capped = col.full.Load()
	stats.Elapsed = time.Since(start)

	return stageOutput{
		feasible: col.items,
		seeds:    selectBeam(all, o.cfg.BeamWidth),
		stats:    stats,
	}
}

// work drains job indices until the channel closes or the collector fills.
func (o *Optimizer) work(jobs []job, jobCh <-chan int, col *collector, beam *seedBeam, n *jobCounters) {
	for idx := range jobCh {
		if col.full.Load() {
			return
		}
		for c := range o.candidates(&jobs[idx], n) {
			beam.offer(&c, c.ForceError(o.target.Force))
			if o.feasible(&c) && !col.offer(&c) {
				return
			}
			if col.full.Load() {
				return
			}
		}
		o.log.Debugf("[job] %d st=%.2f sw=%.2f ss=%.2f evaluated=%d", idx, jobs[idx].shared.ST, jobs[idx].shared.SW, jobs[idx].shared.SS, n.evaluated)
	}
}

// ── Main entry point ────────────────────────────────────────────────

// Optimize runs every stage, pooling feasible results, and returns all of
// them ranked. The search is best-effort: later stages only look around the
// beam seeds, so a feasible region outside every seed neighborhood can be missed.
func (o *Optimizer) Optimize() Report {
	start := time.Now()
	o.log.Infof("[init] enabled=%d target=%.4f band=[%.4f, %.4f] cap=%d stages=%d",
		len(o.enabled), o.target.Force, o.bandLo, o.bandHi, o.limit, len(o.cfg.Stages))

	pool := newResultPool()
	var report Report
	if !o.centroidReachable() {
		o.log.Infof("[init] centroid box unreachable from anchor positions, skipping stages")
		report.Elapsed = time.Since(start)
		return report
	}
	var seeds []seed
	for _, st := range o.cfg.Stages {
		out := o.runStage(st, seeds)
		added := pool.add(out.feasible)
		report.Stages = append(report.Stages, out.stats)
		s := out.stats
		o.log.Infof("[stage] %s mode=%s seeds=%d jobs=%d evaluated=%d pruned=%d branches=%d feasible=%d new=%d capped=%v elapsed=%v",
			s.Name, s.Mode, s.Seeds, s.Jobs, s.Evaluated, s.Pruned, s.Branches, s.Feasible, added, s.Capped, s.Elapsed)
		if o.log.IsLevelEnabled(logrus.DebugLevel) {
			for i := range out.seeds {
				sd := &out.seeds[i]
				o.log.Debugf("[beam] #%d err=%.5f st=%.2f sw=%.2f ss=%.2f sl=%v", i, sd.err, sd.ST, sd.SW, sd.SS, sd.SL)
			}
		}
		seeds = out.seeds
	}

	report.Results = Rank(pool.items, o.target.Force)
	report.Feasible = len(report.Results)
	report.Elapsed = time.Since(start)
	o.log.Infof("[done] feasible=%d elapsed=%v", report.Feasible, report.Elapsed)
	return report
}
