package scan

import (
	"log/slog"
	"time"
)

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the structured logger used to report per-volume scan
// outcomes. The default logger discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithVolumeTimeout bounds each volume's scan with its own deadline. On
// expiry the volume counts as failed under the all-or-nothing policy,
// so one hung backend cannot stall the aggregate forever. Zero (the
// default) applies no bound.
func WithVolumeTimeout(d time.Duration) Option {
	return func(c *Coordinator) {
		c.timeout = d
	}
}
