// Package metrics reduces completed requests and the final roster state into
// the per-run report, and defines the sink interfaces observability backends
// implement.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/registrarlab/regsim/core/model"
)

// Report is the summary returned by one simulation run. All float fields are
// rounded to two decimal places.
type Report struct {
	RunID          string         `json:"run_id"`
	AvgWaitingTime float64        `json:"avg_waiting_time"`
	AvgTurnaround  float64        `json:"avg_turnaround"`
	Throughput     float64        `json:"throughput"`
	TotalProcessed int            `json:"total_processed"`
	StaffLoad      map[string]int `json:"staff_load"`
	Scenario       string         `json:"scenario"`
}

// Aggregate reduces the completed set and roster into a Report. Zero
// completions yield all-zero statistics but still report the full per-agent
// load map.
func Aggregate(completed []*model.DocumentRequest, roster []*model.StaffMember, durationMin int, scenario string) Report {
	load := make(map[string]int, len(roster))
	for _, s := range roster {
		load[s.ID] = s.TotalAssigned
	}
	rep := Report{
		TotalProcessed: len(completed),
		StaffLoad:      load,
		Scenario:       scenario,
	}
	if len(completed) == 0 {
		return rep
	}

	waits := make([]float64, len(completed))
	turnarounds := make([]float64, len(completed))
	for i, r := range completed {
		waits[i] = r.WaitingMinutes()
		turnarounds[i] = r.TurnaroundMinutes()
	}
	rep.AvgWaitingTime = round2(stat.Mean(waits, nil))
	rep.AvgTurnaround = round2(stat.Mean(turnarounds, nil))
	rep.Throughput = round2(float64(len(completed)) / (float64(durationMin) / 60.0))
	return rep
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
