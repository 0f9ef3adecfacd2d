package workload

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/registrarlab/regsim/core/model"
)

// Generate produces the request batch for a profile. Submission times are
// spaced deterministically across the duration (request i arrives at
// origin + i*duration/count); only the categorical fields are sampled from
// the profile's candidate pools.
func Generate(p Profile, origin time.Time, durationMin int, rng *rand.Rand) []*model.DocumentRequest {
	if p.Requests <= 0 {
		return nil
	}
	docTypes := model.DocumentTypes()
	requesters := model.RequesterTypes()
	spacing := float64(durationMin) / float64(p.Requests)

	out := make([]*model.DocumentRequest, 0, p.Requests)
	for i := 0; i < p.Requests; i++ {
		offset := time.Duration(float64(i) * spacing * float64(time.Minute))
		out = append(out, &model.DocumentRequest{
			ID:            fmt.Sprintf("REQ%04d", i),
			College:       p.CollegePool[rng.Intn(len(p.CollegePool))],
			DocumentType:  docTypes[rng.Intn(len(docTypes))],
			Urgency:       p.UrgencyPool[rng.Intn(len(p.UrgencyPool))],
			RequesterType: requesters[rng.Intn(len(requesters))],
			SubmittedAt:   origin.Add(offset),
		})
	}
	return out
}
