package docprep

import (
	"context"
	"runtime"
	"sync"
	"time"
)

// Worker sizing constants.
const (
	// MinWorkers ensures at least one worker runs.
	MinWorkers = 1

	// MaxWorkers caps concurrent office backend processes.
	MaxWorkers = 8

	// cpuDivisor leaves headroom for the backend child processes.
	cpuDivisor = 2
)

// BatchResult holds the outcome of one pipeline run within a batch.
type BatchResult struct {
	InputPath string
	Result    *Result
	Err       error
	Duration  time.Duration
}

// ResolveWorkerCount determines the worker count for a batch. An explicit
// value wins; otherwise it derives from GOMAXPROCS (container-aware when
// automaxprocs has run) with headroom for the backend processes.
func ResolveWorkerCount(workers int) int {
	if workers > 0 {
		return workers
	}

	n := runtime.GOMAXPROCS(0) / cpuDivisor
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}

// ProcessAll runs the pipeline over every input concurrently and returns one
// result per input, in input order. A failed input never stops the others;
// cancelling the context stops unstarted inputs.
func (s *Service) ProcessAll(ctx context.Context, docPaths []string, workers int) []BatchResult {
	if len(docPaths) == 0 {
		return nil
	}

	concurrency := ResolveWorkerCount(workers)
	if concurrency > len(docPaths) {
		concurrency = len(docPaths)
	}

	results := make([]BatchResult, len(docPaths))
	jobs := make(chan int, len(docPaths))
	for i := range docPaths {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				start := time.Now()
				if err := ctx.Err(); err != nil {
					results[idx] = BatchResult{InputPath: docPaths[idx], Err: err}
					continue
				}
				result, err := s.Process(ctx, docPaths[idx])
				results[idx] = BatchResult{
					InputPath: docPaths[idx],
					Result:    result,
					Err:       err,
					Duration:  time.Since(start),
				}
			}
		}()
	}
	wg.Wait()

	return results
}
