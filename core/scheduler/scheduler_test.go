package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/registrarlab/regsim/core/model"
)

func batchAt(origin time.Time, offsets ...time.Duration) []*model.DocumentRequest {
	out := make([]*model.DocumentRequest, len(offsets))
	for i, off := range offsets {
		out[i] = &model.DocumentRequest{
			ID:          string(rune('a' + i)),
			SubmittedAt: origin.Add(off),
		}
	}
	return out
}

func TestNewResolvesKnownKinds(t *testing.T) {
	s, err := New(KindFCFS)
	require.NoError(t, err)
	assert.IsType(t, FCFS{}, s)

	s, err = New(KindWeighted)
	require.NoError(t, err)
	assert.IsType(t, WeightedPriority{}, s)
}

func TestNewRejectsUnknownKind(t *testing.T) {
	_, err := New(Kind("round_robin"))
	require.Error(t, err)
	var cfgErr *InvalidConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, cfgErr.Error(), "round_robin")
}

func TestFCFSSortsBySubmission(t *testing.T) {
	origin := time.Now()
	batch := batchAt(origin, 30*time.Minute, 0, 10*time.Minute)
	got := FCFS{}.Order(batch)
	assert.Equal(t, []string{"b", "c", "a"}, ids(got))
	// input untouched
	assert.Equal(t, []string{"a", "b", "c"}, ids(batch))
}

func TestFCFSIdempotentOnSortedBatch(t *testing.T) {
	origin := time.Now()
	batch := batchAt(origin, 0, 5*time.Minute, 10*time.Minute)
	got := FCFS{}.Order(batch)
	assert.Equal(t, ids(batch), ids(got), "ordering an already sorted batch is a no-op")
}

func TestFCFSStableOnTies(t *testing.T) {
	origin := time.Now()
	batch := batchAt(origin, time.Minute, time.Minute, time.Minute)
	got := FCFS{}.Order(batch)
	assert.Equal(t, []string{"a", "b", "c"}, ids(got), "ties keep insertion order")
}

func TestWeightedSortsDescending(t *testing.T) {
	batch := batchAt(time.Now(), 0, 0, 0)
	batch[0].PriorityScore = 0.2
	batch[1].PriorityScore = 0.9
	batch[2].PriorityScore = 0.5
	got := WeightedPriority{}.Order(batch)
	assert.Equal(t, []string{"b", "c", "a"}, ids(got))
}

func TestWeightedDeterministicAcrossCalls(t *testing.T) {
	batch := batchAt(time.Now(), 0, 0, 0, 0)
	batch[0].PriorityScore = 0.5
	batch[1].PriorityScore = 0.5
	batch[2].PriorityScore = 0.7
	batch[3].PriorityScore = 0.5
	first := ids(WeightedPriority{}.Order(batch))
	second := ids(WeightedPriority{}.Order(batch))
	assert.Equal(t, first, second, "same scores must yield the same order")
	assert.Equal(t, []string{"c", "a", "b", "d"}, first, "equal scores keep insertion order")
}

func ids(batch []*model.DocumentRequest) []string {
	out := make([]string, len(batch))
	for i, r := range batch {
		out[i] = r.ID
	}
	return out
}
