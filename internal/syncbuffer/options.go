// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncbuffer

import (
	"time"
)

const (
	DefaultDebounce        = 3 * time.Second
	DefaultCheckInterval   = 10 * time.Second
	DefaultRequestTimeout  = 5 * time.Second
	DefaultShutdownTimeout = 2 * time.Second
	DefaultAttempts        = 2
)

// Options configures a [SyncBuffer]. Zero durations take the defaults above.
type Options struct {
	// Path is the remote document path (folder plus fixed file name).
	Path string
	// Origin is copied into every persisted draft.
	Origin string

	Debounce        time.Duration
	CheckInterval   time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	// Attempts is the total number of read-write cycles per persist.
	Attempts int

	// Fallback receives drafts that could not be written. Optional.
	Fallback Fallback
	// Reporter receives outcome events. Optional.
	Reporter Reporter
	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
}

func (o Options) withDefaults() Options {
	if o.Debounce <= 0 {
		o.Debounce = DefaultDebounce
	}
	if o.CheckInterval <= 0 {
		o.CheckInterval = DefaultCheckInterval
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = DefaultRequestTimeout
	}
	if o.ShutdownTimeout <= 0 {
		o.ShutdownTimeout = DefaultShutdownTimeout
	}
	if o.Attempts <= 0 {
		o.Attempts = DefaultAttempts
	}
	if o.Reporter == nil {
		o.Reporter = nopReporter{}
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	return o
}
