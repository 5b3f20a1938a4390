// Package engine fills individual events with the fastest eligible athletes.
//
// The algorithm is greedy and never backtracks: events are processed in
// catalog order, and an athlete charged to an early event may be ineligible
// for a later one even if the later event needed them more. Each event is
// optimized locally; the ordering dependency (same event order, same result)
// is part of the contract.
package engine

import (
	"context"
	"fmt"

	"github.com/poolside/lineup/internal/domain/catalog"
	"github.com/poolside/lineup/internal/domain/model"
	"github.com/poolside/lineup/internal/domain/times"
	"github.com/poolside/lineup/internal/domain/usage"
	"github.com/poolside/lineup/pkg/logger"
)

// Assigner fills individual events from a time table.
type Assigner struct {
	table     *times.Table
	tracker   *usage.Tracker
	opponent  *times.Table // non-nil in dual mode: annotates expected places
	strategy  catalog.Strategy
	maxEvents int
	log       logger.Logger
}

// Option applies a configuration option to the Assigner.
type Option func(*Assigner)

// WithStrategy sets the candidate ordering policy.
func WithStrategy(s catalog.Strategy) Option {
	return func(a *Assigner) {
		if s != "" {
			a.strategy = s
		}
	}
}

// WithMaxEvents sets the per-athlete slot cap.
func WithMaxEvents(n int) Option {
	return func(a *Assigner) {
		if n > 0 {
			a.maxEvents = n
		}
	}
}

// WithOpponent provides the opposing team's table so assignments carry a
// projected finishing place.
func WithOpponent(t *times.Table) Option {
	return func(a *Assigner) { a.opponent = t }
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(a *Assigner) {
		if l != nil {
			a.log = l
		}
	}
}

// New creates an Assigner over the given table and tracker. The tracker is
// owned by the caller and mutated by Assign; relays built afterwards see the
// charges left here.
func New(table *times.Table, tracker *usage.Tracker, opts ...Option) *Assigner {
	a := &Assigner{
		table:     table,
		tracker:   tracker,
		strategy:  catalog.StrategyBalanced,
		maxEvents: 4,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assign fills every individual event in defs, in order. Relay definitions
// are skipped. Partial fills and empty events are reported as warnings, not
// errors; the only error condition is a capacity invariant violation.
func (a *Assigner) Assign(ctx context.Context, defs []catalog.EventDefinition) ([]model.Assignment, []model.Warning, error) {
	var assignments []model.Assignment
	var warnings []model.Warning

	for _, def := range defs {
		if def.Kind != catalog.KindIndividual {
			continue
		}

		candidates := a.table.Candidates(def.Name)
		eligible := candidates[:0:0]
		for _, c := range candidates {
			if !a.tracker.AtLimit(c.Athlete, a.maxEvents) {
				eligible = append(eligible, c)
			}
		}

		if len(eligible) == 0 {
			warnings = append(warnings, model.Warning{
				Code:    model.WarnDataGap,
				Subject: def.Name,
				Message: fmt.Sprintf("no eligible athletes for %s", def.Name),
			})
			continue
		}

		ordered := orderForStrategy(a.strategy)(eligible, a.tracker)

		take := def.SlotCount
		if take > len(ordered) {
			take = len(ordered)
		}
		for rank := 1; rank <= take; rank++ {
			c := ordered[rank-1]
			if err := a.tracker.Charge(c.Athlete, a.maxEvents); err != nil {
				return nil, nil, fmt.Errorf("assigning %s: %w", def.Name, err)
			}
			assignments = append(assignments, model.Assignment{
				Event:         def.Name,
				Athlete:       c.Athlete,
				Seconds:       c.Seconds,
				Rank:          rank,
				ExpectedPlace: a.expectedPlace(def.Name, c.Seconds),
			})
		}

		if take < def.SlotCount {
			warnings = append(warnings, model.Warning{
				Code:    model.WarnPartialFill,
				Subject: def.Name,
				Message: fmt.Sprintf("%s filled %d of %d slots", def.Name, take, def.SlotCount),
			})
		}

		if a.log != nil {
			a.log.Debug(ctx, "event filled",
				logger.String("event", def.Name),
				logger.Int("assigned", take),
				logger.Int("slots", def.SlotCount),
			)
		}
	}

	return assignments, warnings, nil
}

// expectedPlace projects a finishing place against the opponent: one plus
// the number of strictly faster opponent times.
func (a *Assigner) expectedPlace(event string, seconds float64) int {
	if a.opponent == nil {
		return 0
	}
	place := 1
	for _, c := range a.opponent.Candidates(event) {
		if c.Seconds < seconds {
			place++
		}
	}
	return place
}
