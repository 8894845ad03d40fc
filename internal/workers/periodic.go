// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-draft-sync/internal/logger"
)

// PeriodicWorker calls fn every interval until ctx is cancelled. Errors are
// logged and do not stop the loop.
type PeriodicWorker struct {
	name     string
	interval time.Duration
	fn       func(ctx context.Context) error
	logger   *logger.Logger
}

// NewPeriodicWorker builds a PeriodicWorker. A non-positive interval makes
// Run return immediately.
func NewPeriodicWorker(name string, interval time.Duration, fn func(ctx context.Context) error, log *logger.Logger) *PeriodicWorker {
	return &PeriodicWorker{
		name:     name,
		interval: interval,
		fn:       fn,
		logger:   log,
	}
}

func (p *PeriodicWorker) Run(ctx context.Context) {
	if p.interval <= 0 {
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.fn(ctx); err != nil {
				p.logger.Err(err).Str("worker", p.name).Msg("periodic run failed")
			}
		}
	}
}
