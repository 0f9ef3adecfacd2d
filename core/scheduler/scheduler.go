// Package scheduler provides the ordering strategies applied to a request
// batch before allocation. Strategies are stateless: each call orders exactly
// the batch it is given and never mutates the requests.
package scheduler

import (
	"fmt"
	"sort"

	"github.com/registrarlab/regsim/core/model"
)

// Kind names an ordering strategy.
type Kind string

const (
	// KindFCFS processes requests in submission order.
	KindFCFS Kind = "fcfs"
	// KindWeighted processes requests by descending priority score.
	KindWeighted Kind = "weighted"
)

// InvalidConfigurationError reports an unrecognized scheduler kind. Unlike
// the allocator's permissive fallback, scheduler resolution is strict and a
// run fails before any work is done.
type InvalidConfigurationError struct {
	Value string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: unknown scheduler kind %q", e.Value)
}

// Strategy orders a batch of requests for processing.
type Strategy interface {
	Order(batch []*model.DocumentRequest) []*model.DocumentRequest
}

// New resolves a strategy by kind, failing on unknown values.
func New(kind Kind) (Strategy, error) {
	switch kind {
	case KindFCFS:
		return FCFS{}, nil
	case KindWeighted:
		return WeightedPriority{}, nil
	default:
		return nil, &InvalidConfigurationError{Value: string(kind)}
	}
}

// FCFS orders requests by ascending submission time. The sort is stable, so
// ties keep their original insertion order.
type FCFS struct{}

// Order implements Strategy.
func (FCFS) Order(batch []*model.DocumentRequest) []*model.DocumentRequest {
	out := make([]*model.DocumentRequest, len(batch))
	copy(out, batch)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SubmittedAt.Before(out[j].SubmittedAt)
	})
	return out
}

// WeightedPriority orders requests by descending priority score and expects
// scores to have been computed beforehand. The sort is stable, so equal
// scores keep their original insertion order.
type WeightedPriority struct{}

// Order implements Strategy.
func (WeightedPriority) Order(batch []*model.DocumentRequest) []*model.DocumentRequest {
	out := make([]*model.DocumentRequest, len(batch))
	copy(out, batch)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PriorityScore > out[j].PriorityScore
	})
	return out
}
