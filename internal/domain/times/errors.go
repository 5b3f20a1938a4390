package times

import "errors"

// Sentinel kinds for time parsing and lookup.
var (
	ErrNoTime   = errors.New("no recorded time")
	ErrBadClock = errors.New("unparseable clock value")
)
