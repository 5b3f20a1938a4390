package repository

// Default bound on retained results.
const defaultMaxResults = 10_000

// StoreOption applies a configuration option to the MemoryStore.
type StoreOption func(*MemoryStore)

// WithMaxResults bounds the number of retained results. Zero or negative
// disables eviction.
func WithMaxResults(n int) StoreOption {
	return func(s *MemoryStore) {
		s.maxResults = n
	}
}
