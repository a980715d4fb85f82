// Package scan fans an archive discovery request out across every
// configured volume and fans the results back in.
//
// The aggregate operation is all-or-nothing: it succeeds only if every
// volume's scan succeeds, and the first failure wins. A single
// unreadable volume should not silently produce an incomplete archive
// list; callers are expected to report the failure to the user and
// proceed with zero discovered archives.
package scan

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/offlinereader/zimscan/volume"
)

// Coordinator runs multi-volume scans.
//
// Thread Safety: a Coordinator is immutable after construction and safe
// for concurrent use; each Scan call owns its own accumulator.
type Coordinator struct {
	logger  *slog.Logger
	timeout time.Duration
}

// New creates a Coordinator with the provided options.
func New(opts ...Option) *Coordinator {
	c := &Coordinator{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Scan invokes every volume's scan concurrently and merges the results
// preserving volume-list order, then per-volume traversal order.
//
// If any single volume's scan fails, Scan returns that error (first
// failure wins) and the other volumes' contributions are discarded.
// Volumes share no state, so the scans proceed fully independently.
func (c *Coordinator) Scan(ctx context.Context, volumes []volume.Volume) ([]string, error) {
	results := make([][]string, len(volumes))

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i, v := range volumes {
		wg.Add(1)
		go func(i int, v volume.Volume) {
			defer wg.Done()

			vctx := ctx
			if c.timeout > 0 {
				var cancel context.CancelFunc
				vctx, cancel = context.WithTimeout(ctx, c.timeout)
				defer cancel()
			}

			paths, err := v.Scan(vctx)
			if err != nil {
				c.logger.Error("volume scan failed",
					"volume", v.Name(),
					"error", err,
				)
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}

			c.logger.Debug("volume scan complete",
				"volume", v.Name(),
				"found", len(paths),
			)
			mu.Lock()
			results[i] = paths
			mu.Unlock()
		}(i, v)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return lo.Flatten(results), nil
}
