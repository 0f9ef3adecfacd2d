package model

import "time"

// StaffMember is a registrar service agent. NextAvailable only moves forward
// through Take; TotalAssigned is monotonically non-decreasing within a run.
type StaffMember struct {
	ID            string
	Name          string
	College       College
	NextAvailable time.Time
	TotalAssigned int
	Available     bool
}

// CanAccept reports whether the agent is present and free at the given time.
func (s *StaffMember) CanAccept(now time.Time) bool {
	return s.Available && !now.Before(s.NextAvailable)
}

// Take books the agent for one request starting at the effective start time.
func (s *StaffMember) Take(start time.Time, processing time.Duration) {
	s.TotalAssigned++
	s.NextAvailable = start.Add(processing)
}

// DefaultRoster builds the fixed registrar staff pool, one agent per college.
// Agents start idle: a zero NextAvailable never defers an effective start.
func DefaultRoster() []*StaffMember {
	return []*StaffMember{
		{ID: "STAFF001", Name: "Maria Santos", College: CollegeCOE, Available: true},
		{ID: "STAFF002", Name: "Juan Dela Cruz", College: CollegeCAS, Available: true},
		{ID: "STAFF003", Name: "Ana Reyes", College: CollegeCBA, Available: true},
		{ID: "STAFF004", Name: "Carlos Lim", College: CollegeCEGE, Available: true},
		{ID: "STAFF005", Name: "Luisa Gomez", College: CollegeCS, Available: true},
		{ID: "STAFF006", Name: "Ramon Aquino", College: CollegeIE, Available: true},
	}
}
