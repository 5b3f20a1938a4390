// Package score projects a dual-meet scoreline from two completed lineups.
//
// The point tables are policy, not algorithm: they arrive from configuration
// and default to the common dual-meet values. Projection is read-only; it
// never alters either lineup.
package score

import (
	"context"
	"sort"

	"github.com/poolside/lineup/internal/domain/model"
)

// Winner labels used on scoreboards.
const (
	WinnerHome     = "home"
	WinnerOpponent = "opponent"
	WinnerTie      = "tie"
)

// PointTable maps finishing places to points. Index 0 is first place;
// places beyond the table score zero.
type PointTable struct {
	Individual []int `json:"individual" koanf:"individual"`
	Relay      []int `json:"relay" koanf:"relay"`
}

// DefaultPointTable returns the standard dual-meet tables: 9-4-3-2-1 for
// individual events, 11-4-2 for relays.
func DefaultPointTable() PointTable {
	return PointTable{
		Individual: []int{9, 4, 3, 2, 1},
		Relay:      []int{11, 4, 2},
	}
}

func pointsForPlace(table []int, place int) int {
	if place < 1 || place > len(table) {
		return 0
	}
	return table[place-1]
}

// Projector computes projected dual-meet scores.
type Projector struct {
	table PointTable
}

// Option applies a configuration option to the Projector.
type Option func(*Projector)

// WithPointTable overrides the default point tables. Empty slices keep the
// defaults.
func WithPointTable(t PointTable) Option {
	return func(p *Projector) {
		if len(t.Individual) > 0 {
			p.table.Individual = t.Individual
		}
		if len(t.Relay) > 0 {
			p.table.Relay = t.Relay
		}
	}
}

// NewProjector creates a Projector with the default point tables.
func NewProjector(opts ...Option) *Projector {
	p := &Projector{table: DefaultPointTable()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Project scores home against opponent event by event and aggregates the
// totals.
func (p *Projector) Project(_ context.Context, home, opponent model.TeamLineup) model.Scoreboard {
	board := model.Scoreboard{}

	homeByEvent := groupAssignments(home.Assignments)
	oppByEvent := groupAssignments(opponent.Assignments)
	for _, event := range eventUnion(homeByEvent, oppByEvent) {
		es := p.scoreIndividual(event, homeByEvent[event], oppByEvent[event])
		board.Events = append(board.Events, es)
		board.HomePoints += es.HomePoints
		board.OpponentPoints += es.OpponentPoints
	}

	homeRelays := groupRelays(home.Relays)
	oppRelays := groupRelays(opponent.Relays)
	for _, relay := range relayUnion(homeRelays, oppRelays) {
		es := p.scoreRelay(relay, homeRelays[relay], oppRelays[relay])
		board.Events = append(board.Events, es)
		board.HomePoints += es.HomePoints
		board.OpponentPoints += es.OpponentPoints
	}

	switch {
	case board.HomePoints > board.OpponentPoints:
		board.Winner = WinnerHome
	case board.OpponentPoints > board.HomePoints:
		board.Winner = WinnerOpponent
	default:
		board.Winner = WinnerTie
	}
	return board
}

// scoreIndividual awards each entered athlete the points of their projected
// place against the other team's entrants, then compares top finishers for
// the event winner.
func (p *Projector) scoreIndividual(event string, home, opp []model.Assignment) model.EventScore {
	es := model.EventScore{Event: event}

	for _, a := range home {
		es.HomePoints += pointsForPlace(p.table.Individual, placeAgainst(a.Seconds, opp))
	}
	for _, a := range opp {
		es.OpponentPoints += pointsForPlace(p.table.Individual, placeAgainst(a.Seconds, home))
	}

	homeBest, homeOK := bestAssignment(home)
	oppBest, oppOK := bestAssignment(opp)
	es.Winner = winnerOf(homeBest, homeOK, oppBest, oppOK)
	return es
}

// scoreRelay compares each team's best squad time against the other team's
// squad times.
func (p *Projector) scoreRelay(relay string, home, opp []model.RelaySquad) model.EventScore {
	es := model.EventScore{Event: relay}

	homeTimes := squadTimes(home)
	oppTimes := squadTimes(opp)

	if len(homeTimes) > 0 {
		es.HomePoints = pointsForPlace(p.table.Relay, relayPlace(homeTimes[0], oppTimes))
	}
	if len(oppTimes) > 0 {
		es.OpponentPoints = pointsForPlace(p.table.Relay, relayPlace(oppTimes[0], homeTimes))
	}

	var homeBest, oppBest float64
	if len(homeTimes) > 0 {
		homeBest = homeTimes[0]
	}
	if len(oppTimes) > 0 {
		oppBest = oppTimes[0]
	}
	es.Winner = winnerOf(homeBest, len(homeTimes) > 0, oppBest, len(oppTimes) > 0)
	return es
}

// winnerOf compares the two teams' best times; a missing entry loses to a
// present one.
func winnerOf(home float64, homeOK bool, opp float64, oppOK bool) string {
	switch {
	case homeOK && !oppOK:
		return WinnerHome
	case oppOK && !homeOK:
		return WinnerOpponent
	case !homeOK && !oppOK:
		return WinnerTie
	case home < opp:
		return WinnerHome
	case opp < home:
		return WinnerOpponent
	default:
		return WinnerTie
	}
}

// placeAgainst is one plus the number of opposing times not strictly
// beaten. An equal opposing time counts against the entrant, so a 1-v-1
// tie scores both sides as second place.
func placeAgainst(seconds float64, opponents []model.Assignment) int {
	place := 1
	for _, o := range opponents {
		if o.Seconds <= seconds {
			place++
		}
	}
	return place
}

// relayPlace ranks a squad time against the opposing squads' times, with
// the same tie rule as placeAgainst.
func relayPlace(seconds float64, opponents []float64) int {
	place := 1
	for _, o := range opponents {
		if o <= seconds {
			place++
		}
	}
	return place
}

func groupAssignments(assignments []model.Assignment) map[string][]model.Assignment {
	out := make(map[string][]model.Assignment)
	for _, a := range assignments {
		out[a.Event] = append(out[a.Event], a)
	}
	return out
}

func groupRelays(squads []model.RelaySquad) map[string][]model.RelaySquad {
	out := make(map[string][]model.RelaySquad)
	for _, s := range squads {
		out[s.Relay] = append(out[s.Relay], s)
	}
	return out
}

func eventUnion(a, b map[string][]model.Assignment) []string {
	seen := make(map[string]struct{})
	var names []string
	for name := range a {
		seen[name] = struct{}{}
		names = append(names, name)
	}
	for name := range b {
		if _, ok := seen[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func relayUnion(a, b map[string][]model.RelaySquad) []string {
	seen := make(map[string]struct{})
	var names []string
	for name := range a {
		seen[name] = struct{}{}
		names = append(names, name)
	}
	for name := range b {
		if _, ok := seen[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// squadTimes returns total squad times sorted ascending.
func squadTimes(squads []model.RelaySquad) []float64 {
	out := make([]float64, 0, len(squads))
	for _, s := range squads {
		out = append(out, s.TotalSeconds())
	}
	sort.Float64s(out)
	return out
}

func bestAssignment(assignments []model.Assignment) (float64, bool) {
	if len(assignments) == 0 {
		return 0, false
	}
	best := assignments[0].Seconds
	for _, a := range assignments[1:] {
		if a.Seconds < best {
			best = a.Seconds
		}
	}
	return best, true
}
