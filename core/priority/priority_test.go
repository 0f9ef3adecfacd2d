package priority

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registrarlab/regsim/core/model"
)

func TestDefaultWeightsValid(t *testing.T) {
	require.NoError(t, DefaultWeights().Validate())
}

func TestWeightsValidate(t *testing.T) {
	bad := Weights{Urgency: 0.5, Requester: 0.5, Waiting: 0.5, Document: 0.5}
	assert.Error(t, bad.Validate())
	neg := Weights{Urgency: 1.2, Requester: -0.2, Waiting: 0, Document: 0}
	assert.Error(t, neg.Validate())
}

func TestScoreComposition(t *testing.T) {
	now := time.Now()
	r := &model.DocumentRequest{
		ID:            "REQ0000",
		Urgency:       8,
		RequesterType: model.RequesterGraduating,
		DocumentType:  model.DocEnrollment,
		SubmittedAt:   now.Add(-60 * time.Minute),
	}
	got := Score(r, now, DefaultWeights())
	// 0.40*0.8 + 0.25*1.0 + 0.20*0.5 + 0.15*1.0
	assert.InDelta(t, 0.82, got, 1e-9)
	assert.Equal(t, got, r.PriorityScore, "score written back onto the request")
}

func TestScoreIdempotentForFixedNow(t *testing.T) {
	now := time.Now()
	r := &model.DocumentRequest{Urgency: 5, RequesterType: model.RequesterAlumni,
		DocumentType: model.DocTranscript, SubmittedAt: now.Add(-30 * time.Minute)}
	first := Score(r, now, DefaultWeights())
	second := Score(r, now, DefaultWeights())
	assert.Equal(t, first, second)
}

func TestScoreGrowsWithWaitUntilCap(t *testing.T) {
	base := time.Now()
	r := &model.DocumentRequest{Urgency: 5, RequesterType: model.RequesterRegular,
		DocumentType: model.DocCertification, SubmittedAt: base}

	early := Score(r, base.Add(30*time.Minute), DefaultWeights())
	later := Score(r, base.Add(90*time.Minute), DefaultWeights())
	assert.Greater(t, later, early, "longer wait must raise the score")

	capped := Score(r, base.Add(120*time.Minute), DefaultWeights())
	beyond := Score(r, base.Add(300*time.Minute), DefaultWeights())
	assert.Equal(t, capped, beyond, "wait factor saturates at two hours")
}

func TestScoreBounds(t *testing.T) {
	// Certification's 0.8 complexity lifts the document factor to 1.25, so
	// the maximum reachable score is 1.0375 rather than exactly 1.
	now := time.Now()
	for _, dt := range model.DocumentTypes() {
		for _, rt := range model.RequesterTypes() {
			for _, urgency := range []int{1, 5, 10} {
				r := &model.DocumentRequest{Urgency: urgency, RequesterType: rt,
					DocumentType: dt, SubmittedAt: now.Add(-4 * time.Hour)}
				s := Score(r, now, DefaultWeights())
				if s <= 0 || s > 1.0375+1e-9 {
					t.Fatalf("score %v out of bounds for %s/%s/%d", s, dt, rt, urgency)
				}
			}
		}
	}
}
