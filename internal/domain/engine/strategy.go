package engine

import (
	"github.com/poolside/lineup/internal/domain/catalog"
	"github.com/poolside/lineup/internal/domain/times"
	"github.com/poolside/lineup/internal/domain/usage"
)

// orderFunc reorders time-sorted candidates according to a strategy. The
// input slice is already ascending by time with first-seen tie order; an
// orderFunc must preserve that order among candidates it considers equal.
type orderFunc func(candidates []times.Candidate, tracker *usage.Tracker) []times.Candidate

// orderForStrategy maps a strategy to its candidate ordering.
//
// Balanced and Speed keep pure time order; they differ only in intent
// (Speed explicitly opts out of any future depth tie-break, Balanced is the
// default policy the dual-meet mode and relays also use). Depth prefers
// less-used athletes first, falling back to time order within equal usage.
func orderForStrategy(s catalog.Strategy) orderFunc {
	switch s {
	case catalog.StrategyDepth:
		return depthOrder
	case catalog.StrategyBalanced, catalog.StrategySpeed:
		return timeOrder
	default:
		return timeOrder
	}
}

func timeOrder(candidates []times.Candidate, _ *usage.Tracker) []times.Candidate {
	return candidates
}

// depthOrder stable-sorts by current usage ascending, keeping time order
// within each usage level.
func depthOrder(candidates []times.Candidate, tracker *usage.Tracker) []times.Candidate {
	out := make([]times.Candidate, len(candidates))
	copy(out, candidates)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && tracker.Count(out[j].Athlete) < tracker.Count(out[j-1].Athlete); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
