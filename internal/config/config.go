// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() defaults and Load(ctx) for layered loading.
// - External errors are wrapped via this package's sentinel kinds.
package config

import (
	"runtime"

	"github.com/poolside/lineup/internal/domain/score"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8090".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory build-request queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of build workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize bounds the run-ID idempotency window.
	DedupeSize int `koanf:"dedupe_size"`

	// ResultStoreSize bounds retained lineup results.
	ResultStoreSize int `koanf:"result_store_size"`

	// MaxRosterRows caps the roster size accepted per request.
	MaxRosterRows int `koanf:"max_roster_rows"`

	// Points holds the dual-meet placement point tables.
	Points score.PointTable `koanf:"points"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":8090",
		QueueSize:       1024,
		WorkerCount:     runtime.NumCPU(),
		DedupeSize:      50_000,
		ResultStoreSize: 10_000,
		MaxRosterRows:   20_000,
		Points:          score.DefaultPointTable(),
	}
}
