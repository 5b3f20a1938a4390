package dedupe

// Default bound on tracked run IDs.
const defaultMaxSize = 50_000

// Option applies a configuration option to the deduper.
type Option func(*memoryDeduper)

// WithMaxSize bounds the number of tracked IDs. Zero or negative disables
// eviction.
func WithMaxSize(size int) Option {
	return func(d *memoryDeduper) {
		d.maxSize = size
	}
}
