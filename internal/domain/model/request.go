package model

import "github.com/poolside/lineup/internal/domain/catalog"

// RawRow is one unvalidated roster row as delivered by the results scraper:
// athlete display name, event name, a clock string, and an ISO date. Rows
// that fail to parse are dropped with a warning at the TimeTable boundary.
type RawRow struct {
	Athlete string `json:"athlete"`
	Event   string `json:"event"`
	Time    string `json:"time"`
	Date    string `json:"date,omitempty"`
}

// BuildRequest is one queued lineup run.
type BuildRequest struct {
	RunID          string             `json:"run_id"`
	Config         catalog.MeetConfig `json:"config"`
	Roster         []RawRow           `json:"roster"`
	OpponentRoster []RawRow           `json:"opponent_roster,omitempty"`
}
