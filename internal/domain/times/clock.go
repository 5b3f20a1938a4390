package times

import (
	"fmt"
	"strconv"
	"strings"
)

// noTimeMarkers are the values the results site uses for a missing or
// disqualified swim.
var noTimeMarkers = map[string]struct{}{
	"": {}, "nt": {}, "ns": {}, "dq": {}, "nan": {},
}

// ParseClock converts a clock string to seconds. Accepted forms are
// "M:SS.hh" and plain seconds ("23.45"). No-time markers (empty, NT, NS,
// DQ) return ErrNoTime.
func ParseClock(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if _, ok := noTimeMarkers[strings.ToLower(s)]; ok {
		return 0, ErrNoTime
	}

	if minutes, rest, found := strings.Cut(s, ":"); found {
		m, err := strconv.Atoi(minutes)
		if err != nil || m < 0 {
			return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
		}
		sec, err := strconv.ParseFloat(rest, 64)
		if err != nil || sec < 0 || sec >= 60 {
			return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
		}
		return float64(m)*60 + sec, nil
	}

	sec, err := strconv.ParseFloat(s, 64)
	if err != nil || sec <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	return sec, nil
}

// FormatClock renders seconds as "M:SS.hh", or "SS.hh" under a minute.
// Non-positive values render as "NT".
func FormatClock(seconds float64) string {
	if seconds <= 0 {
		return "NT"
	}
	minutes := int(seconds) / 60
	rest := seconds - float64(minutes*60)
	if minutes > 0 {
		return fmt.Sprintf("%d:%05.2f", minutes, rest)
	}
	return fmt.Sprintf("%.2f", rest)
}
