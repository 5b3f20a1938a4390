package repository

import "errors"

// Sentinel kinds for result store errors.
var (
	ErrNotFound = errors.New("run not found")
	ErrClosed   = errors.New("store closed")
)
