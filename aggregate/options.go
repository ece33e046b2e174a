package aggregate

import "log/slog"

type Option func(*Coordinator) *Coordinator

// WithWorkers caps the number of concurrent chunk tasks.
func WithWorkers(n int) Option {
	return func(c *Coordinator) *Coordinator {
		c.workers = n
		return c
	}
}

// WithShards sets how many stripes the global result map uses.
func WithShards(n int) Option {
	return func(c *Coordinator) *Coordinator {
		c.shards = n
		return c
	}
}

// WithLogger routes per-chunk debug logging somewhere other than the
// default logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) *Coordinator {
		c.log = l
		return c
	}
}
