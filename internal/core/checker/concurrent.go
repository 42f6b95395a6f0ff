package checker

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/namelens/mcname/internal/core"
)

// StrategyConcurrent names the one-request-per-name strategy.
const StrategyConcurrent = "concurrent"

// ConcurrentChecker runs one SingleChecker lookup per name on a bounded pool.
// It has no coordinated backoff, so throttled names come back unknown.
type ConcurrentChecker struct {
	Single   *SingleChecker
	Workers  int
	Progress Progress
}

// Name implements Strategy.
func (c *ConcurrentChecker) Name() string {
	return StrategyConcurrent
}

// CheckAll implements Strategy. Every task writes only its own slot, so the
// output keeps input order whatever order the lookups complete in.
func (c *ConcurrentChecker) CheckAll(ctx context.Context, names []string) []core.Availability {
	if ctx == nil {
		ctx = context.Background()
	}

	results := make([]core.Availability, len(names))
	if len(names) == 0 {
		return results
	}

	var g errgroup.Group
	g.SetLimit(c.workers())
	for index, name := range names {
		g.Go(func() error {
			results[index] = c.Single.Check(ctx, name)
			advance(c.Progress, 1)
			return nil
		})
	}
	_ = g.Wait()

	c.Single.Metrics.ObserveResults(results...)
	return results
}

func (c *ConcurrentChecker) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
