package mockmeet

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/poolside/lineup/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "mock_meet_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the mock meet tool.
func ShowHelp() {
	os.Stdout.WriteString(`Lineup Mock Meet Tool
=====================

Generates synthetic rosters, submits lineup runs against a running service,
polls for the results, and verifies the lineup invariants end to end.

Usage:
  go run cmd/mockmeet/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8090")
  -runs int
        Number of lineup runs to submit (default 5)
  -athletes int
        Roster size per team (default 30)
  -mode string
        Meet mode: single or dual (default "dual")
  -lanes int
        Pool lanes: 8 or 10 (default 8)
  -max-events int
        Per-athlete event cap: 3, 4, or 5 (default 4)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Output file for submitted runs (default: mock_meet_runs_TIMESTAMP.json)
  -log string
        Log file for test output (default: mock_meet_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Run against a local service with defaults
  go run cmd/mockmeet/main.go

  # Ten single-team runs with big rosters
  go run cmd/mockmeet/main.go -runs 10 -mode single -athletes 80

  # Ten-lane dual meet
  go run cmd/mockmeet/main.go -lanes 10 -mode dual
`)
}
