// Package priority computes the normalized weighted score used to order
// document requests under priority-based scheduling.
package priority

import (
	"fmt"
	"math"
	"time"

	"github.com/registrarlab/regsim/core/model"
)

// waitCapMinutes saturates the elapsed-wait factor: beyond two hours all
// requests look equally stale.
const waitCapMinutes = 120.0

// Weights combines the four scoring factors and must sum to 1. Note the
// document factor is 1/complexity and can exceed 1 for documents simpler
// than the Enrollment baseline, so scores can slightly exceed 1.
type Weights struct {
	Urgency   float64 `json:"urgency"`
	Requester float64 `json:"requester"`
	Waiting   float64 `json:"waiting"`
	Document  float64 `json:"document"`
}

// DefaultWeights returns the production weighting.
func DefaultWeights() Weights {
	return Weights{Urgency: 0.40, Requester: 0.25, Waiting: 0.20, Document: 0.15}
}

// Validate checks that the weights form a convex combination.
func (w Weights) Validate() error {
	sum := w.Urgency + w.Requester + w.Waiting + w.Document
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("priority weights must sum to 1, got %v", sum)
	}
	if w.Urgency < 0 || w.Requester < 0 || w.Waiting < 0 || w.Document < 0 {
		return fmt.Errorf("priority weights must be non-negative")
	}
	return nil
}

// Score computes the request's priority as of now and writes it back onto
// the request. Scoring is idempotent for a fixed now; a later now only
// increases the waiting term until the two-hour cap saturates it.
func Score(r *model.DocumentRequest, now time.Time, w Weights) float64 {
	urgencyNorm := float64(r.Urgency) / 10.0
	requesterNorm := float64(r.RequesterType.BasePriority()) / 10.0
	waitingNorm := math.Min(now.Sub(r.SubmittedAt).Minutes()/waitCapMinutes, 1.0)
	docNorm := 1.0 / r.DocumentType.Complexity()

	r.PriorityScore = w.Urgency*urgencyNorm +
		w.Requester*requesterNorm +
		w.Waiting*waitingNorm +
		w.Document*docNorm
	return r.PriorityScore
}
