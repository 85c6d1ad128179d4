package consolidate

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"content-migrator/internal/model"
)

// DefaultBatchWorkers is the worker count used when RunBatch gets workers <= 0.
const DefaultBatchWorkers = 4

// RunBatch consolidates independent inputs concurrently. Each input is its
// own run with its own tracker, so the discovered type order of one input
// never leaks into another. Results keep input order. Cancelling ctx stops
// scheduling further inputs and returns the context error.
func (e *Engine) RunBatch(ctx context.Context, inputs [][]model.ContentModel, workers int) ([]*Result, error) {
	if workers <= 0 {
		workers = DefaultBatchWorkers
	}

	results := make([]*Result, len(inputs))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i, models := range inputs {
		if err := egCtx.Err(); err != nil {
			break
		}

		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return fmt.Errorf("input %d not consolidated: %w", i, err)
			}

			results[i] = e.Consolidate(models)

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
