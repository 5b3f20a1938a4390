// Package relay composes four-leg relay squads from a time table.
//
// Relays require exactly four legs: a squad that cannot field four distinct
// eligible athletes is omitted entirely, never emitted partially filled.
// Squad A is always attempted first; squad B draws from the athletes squad A
// left behind.
package relay

import (
	"context"
	"fmt"

	"github.com/poolside/lineup/internal/domain/catalog"
	"github.com/poolside/lineup/internal/domain/model"
	"github.com/poolside/lineup/internal/domain/times"
	"github.com/poolside/lineup/internal/domain/usage"
	"github.com/poolside/lineup/pkg/logger"
)

const legsPerSquad = 4

var squadLabels = []string{"A", "B"}

// Builder fills relay events.
type Builder struct {
	table     *times.Table
	tracker   *usage.Tracker
	maxEvents int
	log       logger.Logger
}

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithMaxEvents sets the per-athlete slot cap.
func WithMaxEvents(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.maxEvents = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.log = l
		}
	}
}

// NewBuilder creates a Builder over the given table and tracker. The tracker
// is shared with the individual-event engine so relay legs count against the
// same cap.
func NewBuilder(table *times.Table, tracker *usage.Tracker, opts ...Option) *Builder {
	b := &Builder{
		table:     table,
		tracker:   tracker,
		maxEvents: 4,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build fills every relay in defs, in order. Individual definitions are
// skipped. Omitted squads are reported as warnings.
func (b *Builder) Build(ctx context.Context, defs []catalog.EventDefinition) ([]model.RelaySquad, []model.Warning, error) {
	var squads []model.RelaySquad
	var warnings []model.Warning

	for _, def := range defs {
		if def.Kind != catalog.KindRelay {
			continue
		}

		// Athletes already placed in an earlier squad of this relay are out
		// of candidacy: A and B swim the same race.
		taken := make(map[string]struct{})

		for squadNum := 0; squadNum < def.Squads; squadNum++ {
			label := squadLabels[squadNum]
			squad, ok := b.fillSquad(def, label, taken)
			if !ok {
				warnings = append(warnings, model.Warning{
					Code:    model.WarnDataGap,
					Subject: def.Name,
					Message: fmt.Sprintf("%s %s omitted: fewer than four eligible athletes", def.Name, label),
				})
				break // if A cannot be formed, B cannot either
			}

			// Charge only once the squad is complete, so an omitted squad
			// leaves no trace in the tracker.
			for _, leg := range squad.Legs {
				if err := b.tracker.Charge(leg.Athlete, b.maxEvents); err != nil {
					return nil, nil, fmt.Errorf("building %s %s: %w", def.Name, label, err)
				}
				taken[leg.Athlete] = struct{}{}
			}
			squads = append(squads, squad)

			if b.log != nil {
				b.log.Debug(ctx, "relay squad formed",
					logger.String("relay", def.Name),
					logger.String("squad", label),
					logger.Float64("total_seconds", squad.TotalSeconds()),
				)
			}
		}
	}

	return squads, warnings, nil
}

// fillSquad selects four distinct athletes for one squad without charging
// the tracker. Returns false if four cannot be found.
func (b *Builder) fillSquad(def catalog.EventDefinition, label string, taken map[string]struct{}) (model.RelaySquad, bool) {
	if isMedley(def) {
		return b.fillMedley(def, label, taken)
	}
	return b.fillFreestyle(def, label, taken)
}

func isMedley(def catalog.EventDefinition) bool {
	return def.Name == catalog.Medley200 || def.Name == catalog.Medley400
}

// fillFreestyle takes the four fastest eligible athletes over the relay's
// reference event, fastest leading off.
func (b *Builder) fillFreestyle(def catalog.EventDefinition, label string, taken map[string]struct{}) (model.RelaySquad, bool) {
	reference := def.Legs[0].Reference
	squad := model.RelaySquad{Relay: def.Name, Squad: label}

	for _, c := range b.table.Candidates(reference) {
		if len(squad.Legs) == legsPerSquad {
			break
		}
		if _, used := taken[c.Athlete]; used {
			continue
		}
		if b.tracker.AtLimit(c.Athlete, b.maxEvents) {
			continue
		}
		squad.Legs = append(squad.Legs, model.RelayLeg{
			Index:   len(squad.Legs) + 1,
			Label:   def.Legs[len(squad.Legs)].Label,
			Athlete: c.Athlete,
			Seconds: c.Seconds,
		})
	}

	return squad, len(squad.Legs) == legsPerSquad
}

// fillMedley fills legs in fixed stroke order, committing the fastest
// eligible athlete per stroke. An athlete committed to a leg leaves
// candidacy for the squad's remaining legs.
func (b *Builder) fillMedley(def catalog.EventDefinition, label string, taken map[string]struct{}) (model.RelaySquad, bool) {
	squad := model.RelaySquad{Relay: def.Name, Squad: label}
	inSquad := make(map[string]struct{})

	for i, leg := range def.Legs {
		var found bool
		for _, c := range b.table.Candidates(leg.Reference) {
			if _, used := taken[c.Athlete]; used {
				continue
			}
			if _, used := inSquad[c.Athlete]; used {
				continue
			}
			if b.tracker.AtLimit(c.Athlete, b.maxEvents) {
				continue
			}
			squad.Legs = append(squad.Legs, model.RelayLeg{
				Index:   i + 1,
				Label:   leg.Label,
				Athlete: c.Athlete,
				Seconds: c.Seconds,
			})
			inSquad[c.Athlete] = struct{}{}
			found = true
			break
		}
		if !found {
			return squad, false
		}
	}

	return squad, true
}
