package mockmeet

import (
	"time"

	"github.com/poolside/lineup/internal/domain/model"
)

// Config holds configuration for the mock meet run.
type Config struct {
	BaseURL      string        // Base URL of the service
	NumAthletes  int           // Roster size per team
	Runs         int           // Number of runs to submit
	Mode         string        // "single" or "dual"
	PoolLanes    int           // 8 or 10
	MaxEvents    int           // Per-athlete event cap
	Timeout      time.Duration // HTTP request timeout
	PollInterval time.Duration // Result polling interval
	PollTimeout  time.Duration // Per-run polling deadline
	OutputFile   string        // Output file for generated rosters
	LogFile      string        // Log file for test output
	Verbose      bool          // Enable verbose logging
}

// ackResponse mirrors the POST /runs response.
type ackResponse struct {
	RunID     string `json:"run_id"`
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// Stats holds test statistics.
type Stats struct {
	RunsSubmitted  int
	RunsCompleted  int
	RunsDuplicate  int
	RunsFailed     int
	Assignments    int
	RelaySquads    int
	Warnings       int
	ChecksFailed   int
	RostersWritten int
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
}

// generatedRun pairs a submitted request with its eventual result.
type generatedRun struct {
	Request model.BuildRequest `json:"request"`
	Result  model.LineupResult `json:"result"`
}
