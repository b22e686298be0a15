// Package concurrency provides a small generic worker pool used to fan
// out independent per-item work (tree walks, status checks, deep
// modification scans) with bounded parallelism and early exit on the
// first error, the same shape the classifier's deep-modification walk
// and the bump tracker's stale-child sweep need. In this repository the
// classifier's DeepModificationWalk is its only caller.
package concurrency

import (
	"context"
	"runtime"
	"sync"
)

// Option configures a WorkerPool.
type Option func(*config)

type config struct {
	workerCount int
}

// WithWorkerCount overrides the default worker count (GOMAXPROCS).
func WithWorkerCount(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workerCount = n
		}
	}
}

// WorkerPool processes a slice of T items concurrently, producing one R
// result per item, preserving input order in the output slice.
type WorkerPool[T any, R any] struct {
	workerCount int
}

// NewWorkerPool creates a pool. With no options, worker count defaults
// to runtime.GOMAXPROCS(0).
func NewWorkerPool[T any, R any](opts ...Option) *WorkerPool[T, R] {
	cfg := config{workerCount: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.workerCount < 1 {
		cfg.workerCount = 1
	}
	return &WorkerPool[T, R]{workerCount: cfg.workerCount}
}

// ProcessFunc is the per-item work function. It receives a context that
// is cancelled as soon as any other item's ProcessFunc returns an error.
type ProcessFunc[T any, R any] func(ctx context.Context, item T) (R, error)

// Process runs fn over items with at most p.workerCount concurrent
// invocations. It returns the results in the same order as items. On
// the first error, Process cancels the shared context, lets in-flight
// workers finish or fail, and returns that first error; results for
// items the pool never started remain at R's zero value.
func (p *WorkerPool[T, R]) Process(ctx context.Context, items []T, fn ProcessFunc[T, R]) ([]R, error) {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results, nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, p.workerCount)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for i, item := range items {
		select {
		case <-runCtx.Done():
		default:
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, it T) {
			defer wg.Done()
			defer func() { <-sem }()

			select {
			case <-runCtx.Done():
				return
			default:
			}

			r, err := fn(runCtx, it)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
					cancel()
				}
				mu.Unlock()
				return
			}
			results[idx] = r
		}(i, item)
	}

	wg.Wait()
	return results, firstErr
}
