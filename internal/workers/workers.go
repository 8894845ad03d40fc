// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
)

// Workers runs a fixed set of workers concurrently.
type Workers struct {
	workers []Worker
}

// NewWorkers aggregates ws. Nil entries are skipped.
func NewWorkers(ws ...Worker) *Workers {
	agg := &Workers{workers: make([]Worker, 0, len(ws))}
	for _, w := range ws {
		if w != nil {
			agg.workers = append(agg.workers, w)
		}
	}
	return agg
}

// Run starts every worker in its own goroutine and returns once all of them
// have returned.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Add(1)
		go func(worker Worker) {
			defer wg.Done()
			worker.Run(ctx)
		}(worker)
	}
	wg.Wait()
}
