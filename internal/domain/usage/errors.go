package usage

import "errors"

// Sentinel kinds for usage tracking.
var (
	ErrCapacityExceeded = errors.New("athlete capacity exceeded")
)
