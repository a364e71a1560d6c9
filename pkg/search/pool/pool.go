// Package pool provides a small errgroup-backed worker pool for fanning a
// search out across goroutines and joining on their results, the shape
// pkg/search's root-splitting driver needs: for each of N items, run a
// closure in parallel, join all.
package pool

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Run executes one closure per worker in [0, workers) concurrently and
// blocks until they all return, then reports the first error. The context
// passed to fn is derived from ctx and is cancelled as soon as any worker
// returns an error, so the remaining workers can stop early.
func Run(ctx context.Context, workers int, fn func(ctx context.Context, worker int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			return fn(gctx, w)
		})
	}
	return g.Wait()
}
