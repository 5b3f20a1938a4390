package repository

import (
	"context"
	"sync"

	"github.com/poolside/lineup/internal/domain/model"
	"github.com/poolside/lineup/pkg/metrics"
)

// MemoryStore is a bounded in-memory Store. When full, the oldest result is
// evicted to admit the next; results are small and clients fetch them soon
// after completion.
type MemoryStore struct {
	mu         sync.RWMutex
	results    map[string]model.LineupResult
	order      []string // insertion order, oldest first
	maxResults int
	closed     bool
}

// NewMemoryStore creates a MemoryStore with configuration options.
func NewMemoryStore(_ context.Context, opts ...StoreOption) *MemoryStore {
	s := &MemoryStore{maxResults: defaultMaxResults}
	for _, opt := range opts {
		opt(s)
	}
	s.results = make(map[string]model.LineupResult)
	return s
}

// Put stores the result for a run.
func (s *MemoryStore) Put(_ context.Context, runID string, result model.LineupResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	if _, exists := s.results[runID]; !exists {
		if s.maxResults > 0 && len(s.results) >= s.maxResults {
			oldest := s.order[0]
			s.order = s.order[1:]
			delete(s.results, oldest)
		}
		s.order = append(s.order, runID)
	}
	s.results[runID] = result
	metrics.UpdateStoredResults(len(s.results))
	return nil
}

// Get returns the stored result for a run.
func (s *MemoryStore) Get(_ context.Context, runID string) (model.LineupResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.results[runID]
	if !ok {
		return model.LineupResult{}, ErrNotFound
	}
	return result, nil
}

// Count returns the number of retained results.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}

// Close marks the store closed; subsequent Puts fail.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
