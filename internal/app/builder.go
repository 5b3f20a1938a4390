package app

import (
	"context"
	"fmt"
	"time"

	"github.com/poolside/lineup/internal/domain/catalog"
	"github.com/poolside/lineup/internal/domain/engine"
	"github.com/poolside/lineup/internal/domain/model"
	"github.com/poolside/lineup/internal/domain/relay"
	"github.com/poolside/lineup/internal/domain/score"
	"github.com/poolside/lineup/internal/domain/times"
	"github.com/poolside/lineup/internal/domain/usage"
	"github.com/poolside/lineup/pkg/logger"
)

// lineupBuilder runs one complete lineup build: resolve the event program,
// fill individual events, fill relays, and in dual mode build the opponent's
// reference lineup and project the score. Every run constructs its own
// tables and trackers; nothing is shared across builds.
type lineupBuilder struct {
	points score.PointTable
	log    logger.Logger
}

// Build implements worker.Builder.
func (b *lineupBuilder) Build(ctx context.Context, req model.BuildRequest) (model.LineupResult, error) {
	cfg := req.Config

	// Configuration is validated at submission; a failure here is a defect.
	defs, err := catalog.Resolve(cfg)
	if err != nil {
		return model.LineupResult{}, fmt.Errorf("resolving event program: %w", err)
	}

	var warnings []model.Warning

	records, parseWarnings := times.ParseRows(req.Roster)
	warnings = append(warnings, parseWarnings...)
	table := times.NewTable(records)

	dual := cfg.Mode == catalog.ModeDual
	var oppTable *times.Table
	if dual {
		oppRecords, oppWarnings := times.ParseRows(req.OpponentRoster)
		warnings = append(warnings, prefixWarnings(oppWarnings)...)
		if len(oppRecords) == 0 {
			warnings = append(warnings, model.Warning{
				Code:    model.WarnDataGap,
				Subject: cfg.OpponentName,
				Message: "no opponent data; dual-meet projection skipped",
			})
			dual = false
		} else {
			oppTable = times.NewTable(oppRecords)
		}
	}

	// Dual-meet mode always assigns with the balanced policy; the strategy
	// knob applies to single-team optimization only.
	strategy := cfg.Strategy
	if dual {
		strategy = catalog.StrategyBalanced
	}

	home, homeWarnings, err := b.buildTeam(ctx, teamInput{
		name:     cfg.TeamName,
		table:    table,
		opponent: oppTable,
		strategy: strategy,
		cfg:      cfg,
		defs:     defs,
	})
	if err != nil {
		return model.LineupResult{}, err
	}
	warnings = append(warnings, homeWarnings...)

	result := model.LineupResult{
		RunID:       req.RunID,
		Mode:        string(cfg.Mode),
		Home:        home,
		Warnings:    warnings,
		GeneratedAt: time.Now().UTC(),
	}

	if dual {
		opp, oppWarnings, err := b.buildTeam(ctx, teamInput{
			name:     cfg.OpponentName,
			table:    oppTable,
			strategy: catalog.StrategyBalanced,
			cfg:      cfg,
			defs:     defs,
		})
		if err != nil {
			return model.LineupResult{}, err
		}
		result.Warnings = append(result.Warnings, prefixWarnings(oppWarnings)...)
		result.Opponent = &opp

		projector := score.NewProjector(score.WithPointTable(b.points))
		board := projector.Project(ctx, home, opp)
		result.Score = &board
	}

	return result, nil
}

// teamInput bundles the per-team build parameters.
type teamInput struct {
	name     string
	table    *times.Table
	opponent *times.Table
	strategy catalog.Strategy
	cfg      catalog.MeetConfig
	defs     []catalog.EventDefinition
}

// buildTeam fills one team's individual events and relays against a fresh
// tracker.
func (b *lineupBuilder) buildTeam(ctx context.Context, in teamInput) (model.TeamLineup, []model.Warning, error) {
	tracker := usage.NewTracker()

	assignerOpts := []engine.Option{
		engine.WithStrategy(in.strategy),
		engine.WithMaxEvents(in.cfg.MaxEvents),
		engine.WithLogger(b.log),
	}
	if in.opponent != nil {
		assignerOpts = append(assignerOpts, engine.WithOpponent(in.opponent))
	}

	assignments, assignWarnings, err := engine.New(in.table, tracker, assignerOpts...).Assign(ctx, in.defs)
	if err != nil {
		return model.TeamLineup{}, nil, fmt.Errorf("assigning events for %s: %w", in.name, err)
	}

	squads, relayWarnings, err := relay.NewBuilder(in.table, tracker,
		relay.WithMaxEvents(in.cfg.MaxEvents),
		relay.WithLogger(b.log),
	).Build(ctx, in.defs)
	if err != nil {
		return model.TeamLineup{}, nil, fmt.Errorf("building relays for %s: %w", in.name, err)
	}

	lineup := model.TeamLineup{
		Team:        in.name,
		Assignments: assignments,
		Relays:      squads,
		Usage:       tracker.Snapshot(),
	}
	return lineup, append(assignWarnings, relayWarnings...), nil
}

// prefixWarnings marks warnings as belonging to the opponent's side.
func prefixWarnings(warnings []model.Warning) []model.Warning {
	out := make([]model.Warning, len(warnings))
	for i, w := range warnings {
		w.Subject = "opponent: " + w.Subject
		out[i] = w
	}
	return out
}
