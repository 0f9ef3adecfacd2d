package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/registrarlab/regsim/core/metrics"
)

func sampleResult() coremetrics.RunResult {
	return coremetrics.RunResult{
		Report: coremetrics.Report{
			RunID:          "run-1",
			AvgWaitingTime: 4.5,
			AvgTurnaround:  8.25,
			Throughput:     74,
			TotalProcessed: 74,
			StaffLoad:      map[string]int{"STAFF001": 40, "STAFF002": 34},
			Scenario:       "baseline",
		},
		Scheduler: "fcfs",
		Allocator: "college_based",
		Generated: 80,
		Elapsed:   12 * time.Millisecond,
		Time:      time.Now(),
	}
}

func TestPromSinkRecordRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)

	require.NoError(t, sink.RecordRun(sampleResult()))
	require.NoError(t, sink.RecordRun(sampleResult()))

	ps := sink.(*PromSink)
	assert.Equal(t, 2.0, testutil.ToFloat64(ps.runs.WithLabelValues("baseline", "fcfs", "college_based")))
	assert.Equal(t, 148.0, testutil.ToFloat64(ps.processed.WithLabelValues("baseline")))
	assert.Equal(t, 12.0, testutil.ToFloat64(ps.dropped.WithLabelValues("baseline")))
	assert.Equal(t, 4.5, testutil.ToFloat64(ps.waiting.WithLabelValues("baseline")))
	assert.Equal(t, 8.25, testutil.ToFloat64(ps.turnaround.WithLabelValues("baseline")))
}

func TestPromSinkDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	second, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err, "AlreadyRegistered must be tolerated")

	require.NoError(t, second.RecordRun(sampleResult()))

	// the second sink must have adopted the registry's collectors, so its
	// records show up when the registry is gathered
	families, err := reg.Gather()
	require.NoError(t, err)
	total := -1.0
	for _, mf := range families {
		if mf.GetName() == "regsim_simulation_runs_total" {
			for _, m := range mf.GetMetric() {
				total = m.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, 1.0, total, "run recorded through the second sink is exported")

	// both sinks share one counter series
	require.NoError(t, first.RecordRun(sampleResult()))
	ps := second.(*PromSink)
	assert.Equal(t, 2.0, testutil.ToFloat64(ps.runs.WithLabelValues("baseline", "fcfs", "college_based")))
}

func TestRegisterBuiltinsIdempotent(t *testing.T) {
	RegisterBuiltins()
	RegisterBuiltins()
}
