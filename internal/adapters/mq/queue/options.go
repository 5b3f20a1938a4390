package queue

// Default queue capacity.
const defaultCapacity = 1024

// Option applies a configuration option to the queue.
type Option func(*MemoryQueue)

// WithCapacity bounds the number of queued jobs.
func WithCapacity(n int) Option {
	return func(q *MemoryQueue) {
		if n > 0 {
			q.capacity = n
		}
	}
}
