// sim/simulator.go
package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/proxel-sim/sim/trace"
)

// initialPoolCapacity is the number of nodes reserved before the arena first grows.
const initialPoolCapacity = 1024

// Option configures optional collaborators of a Simulator.
type Option func(*Simulator)

// WithTrace records one trace.StepRecord per sweep when the trace is enabled.
func WithTrace(st *trace.SweepTrace) Option {
	return func(s *Simulator) { s.trace = st }
}

// WithMetrics publishes resource counters to m after every sweep.
func WithMetrics(m *RunMetrics) Option {
	return func(s *Simulator) { s.metrics = m }
}

// Simulator is the two-generation proxel sweep. Each Step drains the current
// generation, records its occupancy, and expands every proxel into the next one.
//
// Thread-safety: NOT thread-safe. Must be driven from a single goroutine.
type Simulator struct {
	model   *Model
	cfg     RunConfig
	horizon int
	kmax    int

	pool          *NodePool
	current, next *Store

	solution *Solution
	step     int // last completed step; 0 before the first sweep

	trace   *trace.SweepTrace
	metrics *RunMetrics

	zbuf []float64
}

// NewSimulator validates cfg against m and seeds the first generation with a
// single proxel of mass 1 in the model's initial state.
func NewSimulator(m *Model, cfg RunConfig, opts ...Option) (*Simulator, error) {
	if m == nil || m.NumStates() == 0 {
		return nil, ErrEmptyModel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	horizon := cfg.EffectiveHorizon()
	h := int64(horizon)
	if h > math.MaxInt64/h/int64(m.NumStates()) {
		return nil, fmt.Errorf("%w: horizon %d with %d states overflows the proxel id space",
			ErrInvalidRunConfig, horizon, m.NumStates())
	}

	kmax := cfg.Steps()
	pool := NewNodePool(initialPoolCapacity)
	// Both generations share one stream so a run is reproducible from cfg.Seed.
	extraction := rand.New(rand.NewSource(cfg.Seed))

	s := &Simulator{
		model:    m,
		cfg:      cfg,
		horizon:  horizon,
		kmax:     kmax,
		pool:     pool,
		current:  NewStore(pool, horizon, extraction),
		next:     NewStore(pool, horizon, extraction),
		solution: newSolution(m, cfg.StepSize, kmax),
		zbuf:     make([]float64, 0, 4),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.next.Insert(m.InitialState(), 0, 0, 1.0)
	return s, nil
}

// Run performs every remaining sweep and returns the solution.
func (s *Simulator) Run() *Solution {
	logrus.Infof("Starting proxel sweep of model %q: %d steps of %g, horizon=%d, min-prob=%g",
		s.model.Name, s.kmax+1, s.cfg.StepSize, s.horizon, s.cfg.MinProb)
	for s.Step() {
	}
	logrus.Infof("[step %05d] Sweep ended: error=%.5e processed=%d peak=%d",
		s.step, s.solution.Error, s.solution.Processed, s.solution.PeakProxels)
	return s.solution
}

// Done reports whether all k_max+1 sweeps have been performed.
func (s *Simulator) Done() bool {
	return s.step > s.kmax
}

// Step performs one sweep. It returns false, doing nothing, once the run is complete.
func (s *Simulator) Step() bool {
	if s.Done() {
		return false
	}
	k := s.step + 1
	if s.cfg.ProgressEvery > 0 && k%s.cfg.ProgressEvery == 0 {
		logrus.Infof("[step %05d] generation size %d", k, s.next.Len())
	}

	s.current, s.next = s.next, s.current
	s.metrics.observeGeneration(s.current.Len())

	rec := trace.StepRecord{Step: k, Time: float64(k-1) * s.cfg.StepSize}
	for !s.current.IsEmpty() {
		px, _ := s.current.ExtractAny()
		rec.MassIn += px.Mass
		if px.Mass < s.cfg.MinProb {
			if !s.current.IsEmpty() {
				s.solution.Error += px.Mass
				rec.DiscardedMass += px.Mass
				rec.Discarded++
				continue
			}
			// The last proxel of a generation is expanded even below the threshold
			// so the sweep never stalls on trace mass.
			logrus.Debugf("[step %05d] expanding final below-threshold proxel %v", k, px)
		}
		rec.Expanded++
		s.solution.Occupancy[px.State][k-1] += px.Mass
		s.expand(px, &rec)
	}

	s.step = k
	s.solution.CumulativeError[k-1] = s.solution.Error
	s.solution.Processed += rec.Expanded + rec.Discarded
	s.solution.DiscardedCount += rec.Discarded
	s.solution.PeakProxels = s.pool.Peak()
	s.solution.Allocated = s.pool.Allocated()

	rec.NextSize = s.next.Len()
	rec.LiveProxels = s.pool.Live()
	if s.trace.Enabled() {
		s.trace.RecordStep(rec)
	}
	s.metrics.observeStep(rec.Expanded+rec.Discarded, rec.Discarded, rec.Merged, s.solution.Error, s.pool)
	logrus.Debugf("[step %05d] in=%.6e out=%.6e discarded=%d next=%d", k, rec.MassIn, rec.MassOut, rec.Discarded, rec.NextSize)
	return true
}

// expand distributes px.Mass over the transitions leaving px.State. With per-step
// probabilities z_i = dt*h_i(x), each target receives mass*z_i and the proxel stays
// with mass*(1-sum z_i). When sum z_i >= 1 the stay branch vanishes and the mass is
// split across targets in proportion to z_i.
func (s *Simulator) expand(px Proxel, rec *trace.StepRecord) {
	dt := s.cfg.StepSize
	trs := s.model.Transitions(px.State)

	z := s.zbuf[:0]
	total := 0.0
	infinite := 0
	for _, tr := range trs {
		x := float64(px.Age) * dt
		if tr.Clock == ClockMemory {
			x = float64(px.Memory) * dt
		}
		zi := dt * tr.Hazard.Rate(x)
		if math.IsNaN(zi) || zi < 0 {
			zi = 0
		}
		if math.IsInf(zi, 1) {
			infinite++
		}
		z = append(z, zi)
		total += zi
	}
	s.zbuf = z

	mass := px.Mass
	switch {
	case infinite > 0:
		share := mass / float64(infinite)
		for i, tr := range trs {
			if math.IsInf(z[i], 1) {
				s.emitTransition(px, tr, share, rec)
			}
		}
	case total >= 1:
		if i := soleFiring(z); i >= 0 {
			s.emitTransition(px, trs[i], mass, rec)
			break
		}
		for i, tr := range trs {
			s.emitTransition(px, tr, mass*z[i]/total, rec)
		}
	default:
		for i, tr := range trs {
			s.emitTransition(px, tr, mass*z[i], rec)
		}
		s.emit(px.State, px.Age+1, s.nextMemory(px, false), mass*(1-total), rec)
	}
}

// soleFiring returns the index of the only positive entry of z, or -1 when
// zero or several entries are positive.
func soleFiring(z []float64) int {
	idx := -1
	for i, zi := range z {
		if zi > 0 {
			if idx >= 0 {
				return -1
			}
			idx = i
		}
	}
	return idx
}

func (s *Simulator) emitTransition(px Proxel, tr Transition, mass float64, rec *trace.StepRecord) {
	s.emit(tr.To, 0, s.nextMemory(px, tr.ResetMemory), mass, rec)
}

// nextMemory advances the memory counter by one step, or zeroes it on reset.
// Models that never read it keep it at zero.
func (s *Simulator) nextMemory(px Proxel, reset bool) int {
	if !s.model.UsesMemory() || reset {
		return 0
	}
	return px.Memory + 1
}

func (s *Simulator) emit(state, age, memory int, mass float64, rec *trace.StepRecord) {
	if !(mass > 0) {
		return
	}
	if s.next.Insert(state, age, memory, mass) {
		rec.Merged++
	}
	rec.MassOut += mass
}

// Solution returns the solution accumulated so far.
func (s *Simulator) Solution() *Solution { return s.solution }

// CurrentStep returns the number of completed sweeps.
func (s *Simulator) CurrentStep() int { return s.step }

// Horizon returns the age bound in use.
func (s *Simulator) Horizon() int { return s.horizon }

// FinalGeneration returns the generation produced by the most recent sweep, the
// one the next Step would drain. Callers must not modify it.
func (s *Simulator) FinalGeneration() *Store { return s.next }

// Pool returns the node pool shared by both generations.
func (s *Simulator) Pool() *NodePool { return s.pool }

// Model returns the model being solved.
func (s *Simulator) Model() *Model { return s.model }
