package engine

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lblanes25/tabvalid/internal/config"
	"github.com/lblanes25/tabvalid/internal/dataset"
)

// Job binds one configuration to its dataset for a RunMany batch.
type Job struct {
	Config  *config.Configuration
	Dataset *dataset.Dataset
}

// RunMany runs every job in parallel and returns one Result per job in
// the same order as jobs. Each run gets its own rule cache and owns its
// own dataset reference; no mutable state is shared between runs. If any
// run returns an error, RunMany returns the first one after all runs
// have finished, per errgroup's usual semantics.
func (e *Engine) RunMany(ctx context.Context, jobs []Job, now time.Time) ([]*Result, error) {
	results := make([]*Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			result, err := e.Run(gctx, job.Config, job.Dataset, now)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
