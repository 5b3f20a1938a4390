package mockmeet

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/poolside/lineup/internal/domain/model"
	"github.com/poolside/lineup/pkg/logger"
)

// File permission constants.
const (
	outputFilePermission = 0600
)

// Run executes the complete mock meet test: generate rosters, submit runs,
// poll for results, verify lineup invariants, and replay one submission to
// confirm idempotency.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting mock meet test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("runs", config.Runs),
		logger.Int("athletes", config.NumAthletes),
		logger.String("mode", config.Mode),
		logger.Int("poolLanes", config.PoolLanes),
	)

	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	client := newHTTPClient(config.Timeout)
	var completed []generatedRun

	for i := 0; i < config.Runs; i++ {
		req := generateRequest(config)

		if err := submitRun(ctx, client, config, req, stats); err != nil {
			log.Printf("run %d submission failed: %v", i+1, err)
			stats.RunsFailed++
			continue
		}

		result, err := pollResult(ctx, client, config, req.RunID)
		if err != nil {
			log.Printf("run %d polling failed: %v", i+1, err)
			stats.RunsFailed++
			continue
		}

		stats.RunsCompleted++
		stats.Assignments += len(result.Home.Assignments)
		stats.RelaySquads += len(result.Home.Relays)
		stats.Warnings += len(result.Warnings)

		if err := verifyResult(config, result); err != nil {
			log.Printf("run %d verification failed: %v", i+1, err)
			stats.ChecksFailed++
		}

		// Resubmitting the same run id must come back as a duplicate.
		if err := verifyDuplicateAck(ctx, client, config, req); err != nil {
			log.Printf("run %d duplicate check failed: %v", i+1, err)
			stats.ChecksFailed++
		} else {
			stats.RunsDuplicate++
		}

		completed = append(completed, generatedRun{Request: req, Result: result})
	}

	if err := saveRunsToFile(ctx, config, completed, stats); err != nil {
		logger.Get().Warn(ctx, "failed to save runs to file", logger.Error(err))
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	if stats.ChecksFailed > 0 || stats.RunsFailed > 0 {
		return fmt.Errorf("%d runs failed, %d checks failed", stats.RunsFailed, stats.ChecksFailed)
	}
	logger.Get().Info(ctx, "test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer resp.Body.Close()

	// Any 200 counts as healthy; the endpoint serves Prometheus metrics.
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// submitRun posts one run and expects a fresh acceptance.
func submitRun(ctx context.Context, client *HTTPClient, config *Config, req model.BuildRequest, stats *Stats) error {
	resp, err := client.Post(ctx, config.BaseURL+"/runs", req)
	if err != nil {
		return err
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var ack ackResponse
	if err := json.Unmarshal(body, &ack); err != nil {
		return fmt.Errorf("failed to parse ack: %w", err)
	}
	if ack.Duplicate {
		return fmt.Errorf("fresh run id %s reported as duplicate", req.RunID)
	}

	stats.RunsSubmitted++
	if config.Verbose {
		log.Printf("submitted run %s (%d roster rows)", ack.RunID, len(req.Roster))
	}
	return nil
}

// pollResult polls GET /runs/{id} until the lineup is ready.
func pollResult(ctx context.Context, client *HTTPClient, config *Config, runID string) (model.LineupResult, error) {
	deadline := time.Now().Add(config.PollTimeout)
	url := config.BaseURL + "/runs/" + runID

	for {
		if time.Now().After(deadline) {
			return model.LineupResult{}, fmt.Errorf("run %s not ready after %s", runID, config.PollTimeout)
		}

		resp, err := client.Get(ctx, url)
		if err != nil {
			return model.LineupResult{}, err
		}
		body, err := readResponseBody(resp)
		if err != nil {
			return model.LineupResult{}, err
		}

		switch resp.StatusCode {
		case http.StatusOK:
			var result model.LineupResult
			if err := json.Unmarshal(body, &result); err != nil {
				return model.LineupResult{}, fmt.Errorf("failed to parse result: %w", err)
			}
			return result, nil
		case http.StatusAccepted:
			// Still building.
		default:
			return model.LineupResult{}, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
		}

		select {
		case <-ctx.Done():
			return model.LineupResult{}, fmt.Errorf("polling cancelled: %w", ctx.Err())
		case <-time.After(config.PollInterval):
		}
	}
}

// verifyDuplicateAck resubmits a completed run and expects a duplicate ack.
func verifyDuplicateAck(ctx context.Context, client *HTTPClient, config *Config, req model.BuildRequest) error {
	resp, err := client.Post(ctx, config.BaseURL+"/runs", req)
	if err != nil {
		return err
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("expected duplicate status 200, got %d", resp.StatusCode)
	}
	var ack ackResponse
	if err := json.Unmarshal(body, &ack); err != nil {
		return fmt.Errorf("failed to parse ack: %w", err)
	}
	if !ack.Duplicate {
		return fmt.Errorf("resubmission of %s not flagged as duplicate", req.RunID)
	}
	return nil
}

// saveRunsToFile writes the submitted requests and their results as JSON.
func saveRunsToFile(ctx context.Context, config *Config, runs []generatedRun, stats *Stats) error {
	if len(runs) == 0 {
		return fmt.Errorf("no runs to save")
	}

	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "mock_meet_runs_" + timestamp + ".json"
	}

	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal runs: %w", err)
	}
	if err := os.WriteFile(filename, data, outputFilePermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	stats.RostersWritten = len(runs)
	logger.Get().Info(ctx, "runs saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("runsSubmitted", stats.RunsSubmitted),
		logger.Int("runsCompleted", stats.RunsCompleted),
		logger.Int("runsDuplicate", stats.RunsDuplicate),
		logger.Int("runsFailed", stats.RunsFailed),
		logger.Int("assignments", stats.Assignments),
		logger.Int("relaySquads", stats.RelaySquads),
		logger.Int("warnings", stats.Warnings),
		logger.Int("checksFailed", stats.ChecksFailed),
		logger.String("duration", stats.Duration.String()),
	)
}
