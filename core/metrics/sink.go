package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/registrarlab/regsim/core/factory"
)

// RunResult is the observability record emitted for one completed run.
type RunResult struct {
	Report    Report
	Scheduler string
	Allocator string
	Generated int
	Elapsed   time.Duration
	Time      time.Time
}

// Dropped returns how many generated requests never reached completion.
func (r RunResult) Dropped() int {
	return r.Generated - r.Report.TotalProcessed
}

// Sink records run results for observability backends.
type Sink interface {
	RecordRun(res RunResult) error
}

// NopSink discards all records.
type NopSink struct{}

// RecordRun implements Sink.
func (NopSink) RecordRun(RunResult) error { return nil }

// Config defines the metrics sink configuration.
type Config struct {
	Sinks          []factory.ModuleConfig `json:"sinks"`
	PrometheusAddr string                 `json:"prometheus_addr"`
}

// SinkBuilder constructs a sink from the raw settings of its config module.
type SinkBuilder func(conf map[string]any) (Sink, error)

var (
	buildersMu sync.RWMutex
	builders   = map[string]SinkBuilder{}
)

// RegisterSink adds a sink builder under the given type name. Registering
// the same name twice or a nil builder is an error.
func RegisterSink(name string, b SinkBuilder) error {
	if b == nil {
		return fmt.Errorf("nil sink builder for %s", name)
	}
	buildersMu.Lock()
	defer buildersMu.Unlock()
	if _, ok := builders[name]; ok {
		return fmt.Errorf("sink %s already registered", name)
	}
	builders[name] = b
	return nil
}

func buildSink(cfg factory.ModuleConfig) (Sink, error) {
	buildersMu.RLock()
	b, ok := builders[cfg.Type]
	buildersMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown sink type %s", cfg.Type)
	}
	return b(cfg.Conf)
}

// NewSink builds a Sink from the configured module list: none means NopSink,
// several are fanned out through a MultiSink.
func NewSink(cfgs []factory.ModuleConfig) (Sink, error) {
	switch len(cfgs) {
	case 0:
		return NopSink{}, nil
	case 1:
		return buildSink(cfgs[0])
	}
	sinks := make([]Sink, len(cfgs))
	for i, c := range cfgs {
		s, err := buildSink(c)
		if err != nil {
			return nil, err
		}
		sinks[i] = s
	}
	return NewMultiSink(sinks...), nil
}

// MultiSink fans a record out to several sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink over the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordRun forwards the record to every sink, returning the first error.
func (m *MultiSink) RecordRun(res RunResult) error {
	for _, s := range m.Sinks {
		if err := s.RecordRun(res); err != nil {
			return err
		}
	}
	return nil
}
