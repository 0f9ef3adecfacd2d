package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/registrarlab/regsim/core/metrics"
)

// PromSink records simulation run results as Prometheus metrics.
type PromSink struct {
	runs       *prometheus.CounterVec
	processed  *prometheus.CounterVec
	dropped    *prometheus.CounterVec
	waiting    *prometheus.GaugeVec
	turnaround *prometheus.GaugeVec
	duration   prometheus.Histogram
}

// NewPromSink registers run metrics on the default Prometheus registerer.
func NewPromSink() (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "regsim",
		Name:      "simulation_runs_total",
		Help:      "Total number of simulation runs executed",
	}, []string{"scenario", "scheduler", "allocator"})
	processed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "regsim",
		Name:      "requests_processed_total",
		Help:      "Total number of document requests completed across runs",
	}, []string{"scenario"})
	dropped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "regsim",
		Name:      "requests_dropped_total",
		Help:      "Total number of document requests left unassigned",
	}, []string{"scenario"})
	waiting := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "regsim",
		Name:      "avg_waiting_minutes",
		Help:      "Average waiting time of the most recent run",
	}, []string{"scenario"})
	turnaround := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "regsim",
		Name:      "avg_turnaround_minutes",
		Help:      "Average turnaround time of the most recent run",
	}, []string{"scenario"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "regsim",
		Name:      "run_duration_seconds",
		Help:      "Wall-clock time spent computing a run",
		Buckets:   prometheus.DefBuckets,
	})

	// On AlreadyRegistered the registry's collector wins, so every sink on
	// the same registry records through the same series.
	if err := reg.Register(runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runs = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(processed); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			processed = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(dropped); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			dropped = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(waiting); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			waiting = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(turnaround); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			turnaround = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}

	return &PromSink{runs: runs, processed: processed, dropped: dropped,
		waiting: waiting, turnaround: turnaround, duration: duration}, nil
}

// RecordRun implements coremetrics.Sink.
func (s *PromSink) RecordRun(res coremetrics.RunResult) error {
	scenario := res.Report.Scenario
	s.runs.WithLabelValues(scenario, res.Scheduler, res.Allocator).Inc()
	s.processed.WithLabelValues(scenario).Add(float64(res.Report.TotalProcessed))
	s.dropped.WithLabelValues(scenario).Add(float64(res.Dropped()))
	s.waiting.WithLabelValues(scenario).Set(res.Report.AvgWaitingTime)
	s.turnaround.WithLabelValues(scenario).Set(res.Report.AvgTurnaround)
	s.duration.Observe(res.Elapsed.Seconds())
	return nil
}
