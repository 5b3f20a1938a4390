package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/poolside/lineup/internal/mockmeet"
)

// Default configuration constants.
const (
	defaultRuns        = 5
	defaultAthletes    = 30
	defaultMaxEvents   = 4
	defaultPoolLanes   = 8
	defaultTimeout     = 30 * time.Second
	defaultPollDelay   = 250 * time.Millisecond
	defaultPollWindow  = 60 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:8090", "Base URL of the service")
		runs       = flag.Int("runs", defaultRuns, "Number of lineup runs to submit")
		athletes   = flag.Int("athletes", defaultAthletes, "Roster size per team")
		mode       = flag.String("mode", "dual", "Meet mode: single or dual")
		lanes      = flag.Int("lanes", defaultPoolLanes, "Pool lanes: 8 or 10")
		maxEvents  = flag.Int("max-events", defaultMaxEvents, "Per-athlete event cap")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Output file for submitted runs")
		logFile    = flag.String("log", "", "Log file for test output")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		mockmeet.ShowHelp()
		return
	}

	if err := mockmeet.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	config := &mockmeet.Config{
		BaseURL:      *baseURL,
		NumAthletes:  *athletes,
		Runs:         *runs,
		Mode:         *mode,
		PoolLanes:    *lanes,
		MaxEvents:    *maxEvents,
		Timeout:      *timeout,
		PollInterval: defaultPollDelay,
		PollTimeout:  defaultPollWindow,
		OutputFile:   *outputFile,
		LogFile:      *logFile,
		Verbose:      *verbose,
	}

	if err := mockmeet.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Test failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
