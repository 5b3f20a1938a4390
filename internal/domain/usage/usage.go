// Package usage tracks how many slots each athlete occupies in one run.
//
// A Tracker is created fresh per run and owned by the caller; it is never
// shared across concurrent runs. Individual slots and relay legs charge the
// same counter.
package usage

import "fmt"

// Tracker counts occupied slots per athlete.
type Tracker struct {
	counts map[string]int
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{counts: make(map[string]int)}
}

// Count returns the athlete's current slot count.
func (t *Tracker) Count(athlete string) int {
	return t.counts[athlete]
}

// AtLimit reports whether the athlete has no remaining capacity.
func (t *Tracker) AtLimit(athlete string, limit int) bool {
	return t.counts[athlete] >= limit
}

// Charge records one more slot for the athlete. Exceeding limit is an
// engine defect, not a user condition: eligibility must be checked before
// selection, so a failure here aborts the run.
func (t *Tracker) Charge(athlete string, limit int) error {
	if t.counts[athlete] >= limit {
		return fmt.Errorf("%w: %s already holds %d of %d slots",
			ErrCapacityExceeded, athlete, t.counts[athlete], limit)
	}
	t.counts[athlete]++
	return nil
}

// Snapshot returns a copy of the per-athlete counts.
func (t *Tracker) Snapshot() map[string]int {
	out := make(map[string]int, len(t.counts))
	for athlete, n := range t.counts {
		out[athlete] = n
	}
	return out
}
