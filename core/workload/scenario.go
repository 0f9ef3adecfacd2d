// Package workload generates the synthetic request batches driving a
// simulation run. Each named scenario maps to a Profile; generation is a
// pure function of (profile, origin, duration, random source).
package workload

import "github.com/registrarlab/regsim/core/model"

// Scenario names a workload-generation profile.
type Scenario string

const (
	ScenarioBaseline          Scenario = "baseline"
	ScenarioStaffAbsence      Scenario = "staff_absence"
	ScenarioPeakUrgency       Scenario = "peak_urgency"
	ScenarioWorkloadImbalance Scenario = "workload_imbalance"
)

// Profile parameterizes generation for one scenario: batch size, the urgency
// candidate pool, the college sampling pool (duplicated entries skew the
// uniform draw) and staff marked absent before the run starts.
type Profile struct {
	Requests    int
	UrgencyPool []int
	CollegePool []model.College
	AbsentStaff []string
}

// defaultUrgencyPool is the everyday urgency spread.
var defaultUrgencyPool = []int{3, 4, 5, 6, 7}

// peakUrgencyPool restricts peak-urgency scenarios to high urgencies only.
var peakUrgencyPool = []int{7, 8, 9, 10}

// BuiltinProfiles returns the four built-in scenario profiles.
func BuiltinProfiles() map[Scenario]Profile {
	return map[Scenario]Profile{
		ScenarioBaseline: {
			Requests:    80,
			UrgencyPool: defaultUrgencyPool,
			CollegePool: model.Colleges(),
		},
		ScenarioStaffAbsence: {
			Requests:    70,
			UrgencyPool: defaultUrgencyPool,
			CollegePool: model.Colleges(),
			AbsentStaff: []string{"STAFF003"},
		},
		ScenarioPeakUrgency: {
			Requests:    100,
			UrgencyPool: peakUrgencyPool,
			CollegePool: model.Colleges(),
		},
		ScenarioWorkloadImbalance: {
			Requests:    90,
			UrgencyPool: defaultUrgencyPool,
			CollegePool: imbalancedColleges(),
		},
	}
}

// imbalancedColleges over-represents COE sevenfold in the sampling pool.
func imbalancedColleges() []model.College {
	pool := make([]model.College, 0, 7+len(model.Colleges()))
	for i := 0; i < 7; i++ {
		pool = append(pool, model.CollegeCOE)
	}
	return append(pool, model.Colleges()...)
}

// ProfileFor looks up a scenario in the given catalog, falling back to the
// baseline profile for unknown names. A nil catalog means the built-ins.
func ProfileFor(s Scenario, catalog map[Scenario]Profile) Profile {
	if catalog == nil {
		catalog = BuiltinProfiles()
	}
	if p, ok := catalog[s]; ok {
		return p
	}
	return BuiltinProfiles()[ScenarioBaseline]
}
