// Package app provides the core business service behind the HTTP API:
// it accepts lineup build requests, deduplicates them, hands them to the
// worker pool, and serves finished results.
package app

import (
	"context"
	"runtime"
	"sync"

	"github.com/google/uuid"

	jobqueue "github.com/poolside/lineup/internal/adapters/mq/queue"
	workerpool "github.com/poolside/lineup/internal/adapters/mq/worker"
	"github.com/poolside/lineup/internal/adapters/repository"
	"github.com/poolside/lineup/internal/domain/dedupe"
	"github.com/poolside/lineup/internal/domain/model"
	"github.com/poolside/lineup/internal/domain/score"
	"github.com/poolside/lineup/pkg/logger"
	"github.com/poolside/lineup/pkg/metrics"
)

// Service implements the API dependencies for the lineup system.
type Service struct {
	mu sync.RWMutex

	// Core components
	results  repository.Store
	deduper  dedupe.Deduper
	jobQueue jobqueue.Queue
	pool     *workerpool.Pool

	// Configuration
	workerCount int
	queueSize   int
	dedupeSize  int
	storeSize   int
	points      score.PointTable

	// State
	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the build queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithStoreSize sets the capacity of the result store.
func WithStoreSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.storeSize = size
		}
	}
}

// WithPointTable sets the scoring table used for dual-meet projections.
func WithPointTable(t score.PointTable) Option {
	return func(s *Service) {
		if len(t.Individual) > 0 && len(t.Relay) > 0 {
			s.points = t
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU(),
		queueSize:   1024,
		dedupeSize:  50_000,
		storeSize:   10_000,
		points:      score.DefaultPointTable(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting lineup service...")

	s.results = repository.NewMemoryStore(ctx,
		repository.WithMaxResults(s.storeSize),
	)
	s.deduper = dedupe.NewMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.jobQueue = jobqueue.NewMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
	)

	builder := &lineupBuilder{points: s.points, log: s.logger}
	s.pool = workerpool.NewPool(s.workerCount, s.jobQueue, builder, s.results)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "lineup service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping lineup service...")

	if s.pool != nil {
		s.pool.Stop()
	}
	if q, ok := s.jobQueue.(*jobqueue.MemoryQueue); ok {
		_ = q.Close()
	}
	if s.results != nil {
		if closer, ok := s.results.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
	}

	s.started = false
	s.logger.Info(context.Background(), "lineup service stopped")
}

// Submit validates nothing itself; callers validate the config first. It
// assigns a run id when the request carries none, deduplicates on the run
// id, and enqueues the build. The returned duplicate flag reports whether
// this run id was already submitted; ok reports whether the request is
// queued (false means the queue rejected it and the caller should retry).
func (s *Service) Submit(ctx context.Context, req model.BuildRequest) (runID string, duplicate, ok bool) {
	if req.RunID == "" {
		req.RunID = uuid.NewString()
	}

	if s.deduper.SeenAndRecord(ctx, req.RunID) {
		metrics.RecordRunDuplicate()
		s.logger.Debug(ctx, "duplicate run submission",
			logger.String("runID", req.RunID),
		)
		return req.RunID, true, true
	}

	if !s.jobQueue.Enqueue(ctx, req) {
		// Roll back the dedupe record so the caller can resubmit.
		s.deduper.Unrecord(ctx, req.RunID)
		return req.RunID, false, false
	}

	metrics.RecordRunSubmitted()
	s.logger.Debug(ctx, "run enqueued",
		logger.String("runID", req.RunID),
		logger.Int("rosterRows", len(req.Roster)),
	)
	return req.RunID, false, true
}

// Result returns the finished lineup for a run id. The pending flag is set
// when the run was accepted but has not completed yet; the error is
// repository.ErrNotFound for run ids that were never submitted.
func (s *Service) Result(ctx context.Context, runID string) (model.LineupResult, bool, error) {
	result, err := s.results.Get(ctx, runID)
	if err == nil {
		return result, false, nil
	}
	if s.deduper.Seen(ctx, runID) {
		// Submitted but not stored yet: still in the queue or building.
		return model.LineupResult{}, true, nil
	}
	return model.LineupResult{}, false, err
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		queueLen := s.jobQueue.Len(ctx)
		storedRuns := s.results.Count(ctx)

		stats["queueLength"] = queueLen
		stats["storedRuns"] = storedRuns
		stats["seenRuns"] = s.deduper.Size()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateStoredResults(storedRuns)
	}

	return stats
}
