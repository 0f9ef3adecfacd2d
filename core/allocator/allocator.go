// Package allocator provides the matching strategies that pick a staff
// member for a request from the shared roster. Strategies only read and
// compare roster state; availability updates remain the driver's job, so a
// later allocation always sees the roster as left by the previous one.
package allocator

import (
	"math/rand"
	"time"

	"github.com/registrarlab/regsim/core/model"
)

// Kind names an allocation strategy.
type Kind string

const (
	KindCollegeBased  Kind = "college_based"
	KindWorkloadBased Kind = "workload_based"
	KindPooled        Kind = "pooled"
	KindQuotaFree     Kind = "quota_free"
)

// Strategy selects one staff member for a request at the candidate time, or
// nil when no candidate exists. Candidates are never rejected for merely
// being busy; the driver defers the effective start instead.
type Strategy interface {
	Assign(req *model.DocumentRequest, at time.Time, roster []*model.StaffMember) *model.StaffMember
}

// New resolves a strategy by kind. Unknown kinds fall back to the
// college-based allocator rather than failing, intentionally asymmetric with
// the scheduler's strict resolution.
func New(kind Kind, rng *rand.Rand) Strategy {
	switch kind {
	case KindWorkloadBased:
		return WorkloadBased{}
	case KindPooled:
		return Pooled{}
	case KindQuotaFree:
		return QuotaFree{}
	case KindCollegeBased:
		return CollegeBased{Rand: rng}
	default:
		return CollegeBased{Rand: rng}
	}
}

// CollegeBased assigns within the request's own college only, picking
// uniformly at random among available same-college agents. Workload and
// busy-until times are ignored.
type CollegeBased struct {
	Rand *rand.Rand
}

// Assign implements Strategy.
func (c CollegeBased) Assign(req *model.DocumentRequest, _ time.Time, roster []*model.StaffMember) *model.StaffMember {
	candidates := sameCollege(available(roster), req.College)
	if len(candidates) == 0 {
		return nil
	}
	if c.Rand == nil {
		return candidates[0]
	}
	return candidates[c.Rand.Intn(len(candidates))]
}

// WorkloadBased prefers available same-college agents with the fewest
// cumulative assignments, falling back to the least-loaded agent of the full
// available pool when the request's college has nobody present.
type WorkloadBased struct{}

// Assign implements Strategy.
func (WorkloadBased) Assign(req *model.DocumentRequest, _ time.Time, roster []*model.StaffMember) *model.StaffMember {
	pool := available(roster)
	if college := sameCollege(pool, req.College); len(college) > 0 {
		return leastLoaded(college)
	}
	return leastLoaded(pool)
}

// Pooled ignores college affiliation and picks the available agent who could
// start the request soonest.
type Pooled struct{}

// Assign implements Strategy.
func (Pooled) Assign(_ *model.DocumentRequest, at time.Time, roster []*model.StaffMember) *model.StaffMember {
	return soonestToStart(available(roster), at)
}

// QuotaFree uses the same soonest-to-start, college-blind rule as Pooled.
// It is kept as a distinct named policy: it models the removal of per-college
// quotas, even though the present selection mechanics coincide with Pooled.
type QuotaFree struct{}

// Assign implements Strategy.
func (QuotaFree) Assign(_ *model.DocumentRequest, at time.Time, roster []*model.StaffMember) *model.StaffMember {
	return soonestToStart(available(roster), at)
}

func available(roster []*model.StaffMember) []*model.StaffMember {
	out := make([]*model.StaffMember, 0, len(roster))
	for _, s := range roster {
		if s.Available {
			out = append(out, s)
		}
	}
	return out
}

func sameCollege(pool []*model.StaffMember, college model.College) []*model.StaffMember {
	out := make([]*model.StaffMember, 0, len(pool))
	for _, s := range pool {
		if s.College == college {
			out = append(out, s)
		}
	}
	return out
}

func leastLoaded(pool []*model.StaffMember) *model.StaffMember {
	var best *model.StaffMember
	for _, s := range pool {
		if best == nil || s.TotalAssigned < best.TotalAssigned {
			best = s
		}
	}
	return best
}

// soonestToStart picks the agent minimizing max(NextAvailable, at), i.e. the
// one whose effective start would be earliest.
func soonestToStart(pool []*model.StaffMember, at time.Time) *model.StaffMember {
	var best *model.StaffMember
	var bestStart time.Time
	for _, s := range pool {
		start := at
		if s.NextAvailable.After(start) {
			start = s.NextAvailable
		}
		if best == nil || start.Before(bestStart) {
			best = s
			bestStart = start
		}
	}
	return best
}
