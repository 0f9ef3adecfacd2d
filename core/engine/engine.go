// Package engine drives one registrar simulation: generate the scenario
// workload, score and order it, allocate requests sequentially against the
// shared roster, and reduce the outcome into a metrics report.
package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/registrarlab/regsim/core/allocator"
	"github.com/registrarlab/regsim/core/logger"
	"github.com/registrarlab/regsim/core/metrics"
	"github.com/registrarlab/regsim/core/model"
	"github.com/registrarlab/regsim/core/priority"
	"github.com/registrarlab/regsim/core/scheduler"
	"github.com/registrarlab/regsim/core/workload"
)

// DefaultDurationMinutes applies when a caller passes a non-positive
// duration.
const DefaultDurationMinutes = 60

// baseProcessingMinutes is the nominal per-unit-complexity handling time;
// actual durations jitter uniformly within ±20% of base×complexity.
const baseProcessingMinutes = 3.0

// Engine owns one roster and executes simulation runs against it. It is not
// safe for concurrent use; callers serving parallel requests must construct
// one engine per run.
type Engine struct {
	schedulerKind scheduler.Kind
	alloc         allocator.Strategy
	roster        []*model.StaffMember
	rng           *rand.Rand
	weights       priority.Weights
	profiles      map[workload.Scenario]workload.Profile
	now           func() time.Time
	log           logger.Logger

	completed []*model.DocumentRequest
	generated int
	scenario  string
}

// Option tweaks engine construction.
type Option func(*Engine)

// WithRand supplies a seeded random source for reproducible runs.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithClock overrides the wall clock used as the simulation origin.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger attaches a logger; the default discards everything.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithProfiles replaces the scenario catalog (built-ins plus any custom
// profiles loaded from configuration).
func WithProfiles(catalog map[workload.Scenario]workload.Profile) Option {
	return func(e *Engine) { e.profiles = catalog }
}

// WithWeights overrides the priority weighting.
func WithWeights(w priority.Weights) Option {
	return func(e *Engine) { e.weights = w }
}

// New constructs an engine with a fresh fixed staff roster. The scheduler
// kind is validated lazily at Run time and fails strictly; an unknown
// allocator kind silently falls back to college-based allocation.
func New(schedKind scheduler.Kind, allocKind allocator.Kind, opts ...Option) *Engine {
	e := &Engine{
		schedulerKind: schedKind,
		roster:        model.DefaultRoster(),
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
		weights:       priority.DefaultWeights(),
		now:           time.Now,
		log:           nopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.alloc = allocator.New(allocKind, e.rng)
	return e
}

// Run executes one simulation for the scenario over the given horizon and
// returns the metrics report. Unknown scenario names run the baseline
// profile under the requested label; a non-positive duration means the
// default 60 minutes.
func (e *Engine) Run(scenario workload.Scenario, durationMin int) (metrics.Report, error) {
	strat, err := scheduler.New(e.schedulerKind)
	if err != nil {
		return metrics.Report{}, fmt.Errorf("resolve scheduler: %w", err)
	}
	if durationMin <= 0 {
		durationMin = DefaultDurationMinutes
	}

	origin := e.now()
	end := origin.Add(time.Duration(durationMin) * time.Minute)
	e.scenario = string(scenario)

	profile := workload.ProfileFor(scenario, e.profiles)
	e.applyAbsences(profile.AbsentStaff)
	requests := workload.Generate(profile, origin, durationMin, e.rng)
	e.generated += len(requests)
	e.log.Debugw("workload generated", map[string]any{
		"scenario": scenario, "requests": len(requests), "duration_min": durationMin,
	})

	// Weighted runs score the whole batch as of the origin: the plan is
	// fixed up front, not re-scored as the clock advances.
	if e.schedulerKind == scheduler.KindWeighted {
		for _, r := range requests {
			priority.Score(r, origin, e.weights)
		}
	}

	e.process(strat.Order(requests), end)

	rep := metrics.Aggregate(e.completed, e.roster, durationMin, e.scenario)
	rep.RunID = uuid.NewString()
	e.log.Infof("run %s finished: scenario=%s processed=%d/%d", rep.RunID, e.scenario, rep.TotalProcessed, len(requests))
	return rep, nil
}

// process walks the ordered batch sequentially. Requests submitted after the
// horizon are discarded; requests with no candidate agent are dropped without
// retry. Every assignment immediately updates roster state, so the next
// allocation sees it.
func (e *Engine) process(ordered []*model.DocumentRequest, end time.Time) {
	for _, req := range ordered {
		if req.SubmittedAt.After(end) {
			continue
		}
		staff := e.alloc.Assign(req, req.SubmittedAt, e.roster)
		if staff == nil {
			continue
		}
		start := req.SubmittedAt
		if staff.NextAvailable.After(start) {
			start = staff.NextAvailable
		}
		processing := e.processingTime(req.DocumentType)
		req.Assign(staff.ID, start, processing)
		staff.Take(start, processing)
		e.completed = append(e.completed, req)
	}
}

// Roster exposes the engine's staff pool, mainly for inspection in tests and
// status endpoints.
func (e *Engine) Roster() []*model.StaffMember {
	return e.roster
}

// Generated returns how many requests this engine has generated so far,
// including those later dropped.
func (e *Engine) Generated() int {
	return e.generated
}

func (e *Engine) applyAbsences(ids []string) {
	for _, id := range ids {
		for _, s := range e.roster {
			if s.ID == id {
				s.Available = false
			}
		}
	}
}

// processingTime draws a duration uniformly from ±20% around
// base×complexity minutes.
func (e *Engine) processingTime(dt model.DocumentType) time.Duration {
	base := baseProcessingMinutes * dt.Complexity()
	minutes := base*0.8 + e.rng.Float64()*base*0.4
	return time.Duration(minutes * float64(time.Minute))
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
