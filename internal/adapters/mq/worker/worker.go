// Package worker runs lineup builds pulled off the build-request queue.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/poolside/lineup/internal/domain/model"
	"github.com/poolside/lineup/pkg/logger"
	"github.com/poolside/lineup/pkg/metrics"
)

// Shutdown bounds.
const (
	workerShutdownTimeout = 5 * time.Second
)

// Builder runs one lineup build. Each call owns all mutable state for the
// run; builds never share trackers or tables.
type Builder interface {
	Build(ctx context.Context, req model.BuildRequest) (model.LineupResult, error)
}

// Sink receives completed results.
type Sink interface {
	Put(ctx context.Context, runID string, result model.LineupResult) error
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan model.BuildRequest
}

// Worker processes build requests until stopped.
type Worker struct {
	queue   Queue
	builder Builder
	sink    Sink
	name    string

	shutdown chan struct{}
	done     chan struct{}

	log logger.Logger
}

// NewWorker creates a worker with configuration options.
func NewWorker(queue Queue, builder Builder, sink Sink, opts ...Option) *Worker {
	w := &Worker{
		queue:    queue,
		builder:  builder,
		sink:     sink,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		log:      logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run starts the worker loop.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			if err := w.process(ctx, job); err != nil {
				w.log.Error(ctx, "build failed",
					logger.String("run_id", job.RunID),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown stops the worker, waiting for the in-flight build.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("worker shutdown timed out: %w", ctx.Err())
	}
}

// process runs one build and stores its result.
func (w *Worker) process(ctx context.Context, job model.BuildRequest) error {
	start := time.Now()

	result, err := w.builder.Build(ctx, job)
	metrics.RecordBuildDuration(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordRunFailed()
		metrics.RecordWorkerError()
		return fmt.Errorf("building run %s: %w", job.RunID, err)
	}

	if err := w.sink.Put(ctx, job.RunID, result); err != nil {
		metrics.RecordRunFailed()
		metrics.RecordWorkerError()
		return fmt.Errorf("storing run %s: %w", job.RunID, err)
	}

	metrics.RecordRunCompleted()
	metrics.RecordAssignments(len(result.Home.Assignments))
	metrics.RecordRelaySquads(len(result.Home.Relays))
	metrics.RecordDataGaps(len(result.Warnings))

	w.log.Info(ctx, "run completed",
		logger.String("run_id", job.RunID),
		logger.Int("assignments", len(result.Home.Assignments)),
		logger.Int("relay_squads", len(result.Home.Relays)),
		logger.Int("warnings", len(result.Warnings)),
		logger.Duration("took", time.Since(start)),
	)
	return nil
}

// Pool manages a fixed set of workers.
type Pool struct {
	workers []*Worker
	log     logger.Logger
}

// NewPool creates workerCount workers over the same queue, builder, and sink.
func NewPool(workerCount int, queue Queue, builder Builder, sink Sink) *Pool {
	if workerCount < 1 {
		workerCount = 1
	}
	p := &Pool{
		workers: make([]*Worker, workerCount),
		log:     logger.Get().Named("worker-pool"),
	}
	for i := range p.workers {
		p.workers[i] = NewWorker(queue, builder, sink, WithName("worker-"+strconv.Itoa(i)))
	}
	metrics.UpdateWorkerActive(workerCount)
	return p
}

// Start launches all workers.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop signals all workers and waits briefly for each.
func (p *Pool) Stop() {
	for _, w := range p.workers {
		close(w.shutdown)
	}
	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
	metrics.UpdateWorkerActive(0)
}
