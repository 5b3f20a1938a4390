// Package times provides the normalized, queryable view over raw
// per-athlete per-event time records.
//
// Raw roster rows are validated here, at the boundary: a row that fails to
// parse is dropped with a warning and never reaches the engine. Within an
// event, candidates keep their first-seen input order, which is what breaks
// ties between equal times.
package times

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/poolside/lineup/internal/domain/model"
)

// Athlete display names shorter than this are scraper noise.
const minNameLen = 3

var (
	parenthetical = regexp.MustCompile(`\(.*?\)`)
	multiSpace    = regexp.MustCompile(`\s+`)
)

// CleanName strips parenthesized suffixes (team abbreviations) and collapses
// whitespace in an athlete display name.
func CleanName(name string) string {
	name = parenthetical.ReplaceAllString(name, "")
	name = multiSpace.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// ParseRows validates raw roster rows into TimeRecords. Invalid rows are
// dropped and reported as warnings; no-time markers are dropped silently.
func ParseRows(rows []model.RawRow) ([]model.TimeRecord, []model.Warning) {
	records := make([]model.TimeRecord, 0, len(rows))
	var warnings []model.Warning

	for _, row := range rows {
		name := CleanName(row.Athlete)
		if len([]rune(name)) < minNameLen {
			warnings = append(warnings, model.Warning{
				Code:    model.WarnBadRecord,
				Subject: row.Athlete,
				Message: fmt.Sprintf("dropped row: athlete name %q too short", row.Athlete),
			})
			continue
		}

		event := multiSpace.ReplaceAllString(strings.TrimSpace(row.Event), " ")
		if event == "" {
			warnings = append(warnings, model.Warning{
				Code:    model.WarnBadRecord,
				Subject: name,
				Message: "dropped row: empty event name",
			})
			continue
		}

		seconds, err := ParseClock(row.Time)
		if err != nil {
			if err != ErrNoTime {
				warnings = append(warnings, model.Warning{
					Code:    model.WarnBadRecord,
					Subject: name,
					Message: fmt.Sprintf("dropped row for %s: %v", event, err),
				})
			}
			continue
		}

		var recorded time.Time
		if row.Date != "" {
			if d, err := time.Parse("2006-01-02", row.Date); err == nil {
				recorded = d
			}
		}

		records = append(records, model.TimeRecord{
			Athlete:  name,
			Event:    event,
			Seconds:  seconds,
			Recorded: recorded,
		})
	}

	return records, warnings
}

// Candidate is one athlete's best time in an event.
type Candidate struct {
	Athlete  string
	Seconds  float64
	Recorded time.Time
}

// Table is the immutable best-time view for one team.
type Table struct {
	byEvent map[string][]Candidate // first-seen athlete order per event
	index   map[string]map[string]int
}

// NewTable builds a Table from validated records, keeping only the minimum
// seconds per (athlete, event).
func NewTable(records []model.TimeRecord) *Table {
	t := &Table{
		byEvent: make(map[string][]Candidate),
		index:   make(map[string]map[string]int),
	}
	for _, r := range records {
		idx, ok := t.index[r.Event]
		if !ok {
			idx = make(map[string]int)
			t.index[r.Event] = idx
		}
		if i, seen := idx[r.Athlete]; seen {
			if r.Seconds < t.byEvent[r.Event][i].Seconds {
				t.byEvent[r.Event][i].Seconds = r.Seconds
				t.byEvent[r.Event][i].Recorded = r.Recorded
			}
			continue
		}
		idx[r.Athlete] = len(t.byEvent[r.Event])
		t.byEvent[r.Event] = append(t.byEvent[r.Event], Candidate{
			Athlete:  r.Athlete,
			Seconds:  r.Seconds,
			Recorded: r.Recorded,
		})
	}
	return t
}

// Candidates returns the event's athletes sorted ascending by best time.
// The sort is stable: equal times keep first-seen input order. The returned
// slice is a copy.
func (t *Table) Candidates(event string) []Candidate {
	src := t.byEvent[event]
	if len(src) == 0 {
		return nil
	}
	out := make([]Candidate, len(src))
	copy(out, src)
	// Insertion sort keeps the first-seen order of equal times and the
	// candidate lists are small.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Seconds < out[j-1].Seconds; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Best returns the athlete's best time for the event.
func (t *Table) Best(athlete, event string) (float64, bool) {
	idx, ok := t.index[event]
	if !ok {
		return 0, false
	}
	i, ok := idx[athlete]
	if !ok {
		return 0, false
	}
	return t.byEvent[event][i].Seconds, true
}

// HasEvent reports whether any athlete holds a time for the event.
func (t *Table) HasEvent(event string) bool {
	return len(t.byEvent[event]) > 0
}

// AthleteCount returns the number of distinct athletes in the table.
func (t *Table) AthleteCount() int {
	seen := make(map[string]struct{})
	for _, idx := range t.index {
		for athlete := range idx {
			seen[athlete] = struct{}{}
		}
	}
	return len(seen)
}
