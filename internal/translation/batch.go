package translation

import (
	"context"
	"sync"

	"topology-builder/internal/ctxlog"
	"topology-builder/internal/model"
)

// BatchResult is the outcome of one topology of a batch.
type BatchResult struct {
	Index   int
	Outcome *Outcome
	Err     error
}

// TranslateAll translates topos with up to workerCount concurrent workers.
// Results are returned in input order. A failed topology does not stop the
// others.
func (r *Runner) TranslateAll(ctx context.Context, topos []*model.Topology, workerCount int) []BatchResult {
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > len(topos) {
		workerCount = len(topos)
	}
	logger := ctxlog.FromContext(ctx)

	jobs := make(chan int)
	results := make([]BatchResult, len(topos))

	var wg sync.WaitGroup
	wg.Add(workerCount)
	for w := 0; w < workerCount; w++ {
		go func(workerID int) {
			defer wg.Done()
			for i := range jobs {
				res := BatchResult{Index: i}
				if err := ctx.Err(); err != nil {
					res.Err = err
				} else {
					res.Outcome, res.Err = r.Translate(ctx, topos[i])
				}
				results[i] = res
				logger.Debug("Batch item done.", "worker", workerID, "index", i, "ok", res.Err == nil)
			}
		}(w)
	}

	for i := range topos {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}
