// Package model contains the domain types passed between layers.
package model

import "time"

// TimeRecord is one validated best-time observation for an athlete in an
// event. Records are immutable once ingested; only the minimum seconds per
// (athlete, event) matters for selection.
type TimeRecord struct {
	Athlete  string    `json:"athlete"`
	Event    string    `json:"event"`
	Seconds  float64   `json:"seconds"`
	Recorded time.Time `json:"recorded"`
}

// Assignment is one filled slot in an individual event.
type Assignment struct {
	Event   string  `json:"event"`
	Athlete string  `json:"athlete"`
	Seconds float64 `json:"seconds"`
	Rank    int     `json:"rank"` // 1-based within the event

	// ExpectedPlace is the projected finishing place against the opponent's
	// entered times. Zero outside dual mode.
	ExpectedPlace int `json:"expected_place,omitempty"`
}

// RelayLeg is one leg of a relay squad.
type RelayLeg struct {
	Index   int     `json:"index"` // 1-based leg order
	Label   string  `json:"label"` // stroke name, or "Leg n" for free relays
	Athlete string  `json:"athlete"`
	Seconds float64 `json:"seconds"`
}

// RelaySquad is a complete four-leg relay entry. Partial squads are never
// emitted.
type RelaySquad struct {
	Relay string     `json:"relay"`
	Squad string     `json:"squad"` // "A" or "B"
	Legs  []RelayLeg `json:"legs"`
}

// TotalSeconds sums the leg times.
func (s RelaySquad) TotalSeconds() float64 {
	var total float64
	for _, leg := range s.Legs {
		total += leg.Seconds
	}
	return total
}

// Warning codes.
const (
	WarnBadRecord   = "bad_record"
	WarnDataGap     = "data_gap"
	WarnPartialFill = "partial_fill"
)

// Warning reports a non-fatal condition encountered during a run.
type Warning struct {
	Code    string `json:"code"`
	Subject string `json:"subject"` // event, relay, or record the warning is about
	Message string `json:"message"`
}

// TeamLineup is one team's completed lineup.
type TeamLineup struct {
	Team        string         `json:"team"`
	Assignments []Assignment   `json:"assignments"`
	Relays      []RelaySquad   `json:"relays"`
	Usage       map[string]int `json:"usage"` // athlete -> total slots occupied
}

// EventScore is the projected outcome of one event in a dual meet.
type EventScore struct {
	Event          string `json:"event"`
	HomePoints     int    `json:"home_points"`
	OpponentPoints int    `json:"opponent_points"`
	Winner         string `json:"winner"` // "home", "opponent", or "tie"
}

// Scoreboard is the projected dual-meet result.
type Scoreboard struct {
	HomePoints     int          `json:"home_points"`
	OpponentPoints int          `json:"opponent_points"`
	Winner         string       `json:"winner"`
	Events         []EventScore `json:"events"`
}

// LineupResult is the terminal output of one run. Identical inputs produce
// identical lineups, warnings, and scores; RunID and GeneratedAt are run
// metadata outside that repeatability contract.
type LineupResult struct {
	RunID       string      `json:"run_id"`
	Mode        string      `json:"mode"`
	Home        TeamLineup  `json:"home"`
	Opponent    *TeamLineup `json:"opponent,omitempty"` // dual mode reference lineup
	Score       *Scoreboard `json:"score,omitempty"`    // dual mode projection
	Warnings    []Warning   `json:"warnings,omitempty"`
	GeneratedAt time.Time   `json:"generated_at"` // wall-clock completion time
}
