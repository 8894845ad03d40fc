// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncbuffer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-draft-sync/internal/adapter"
	"github.com/MKhiriev/go-draft-sync/internal/logger"
	"github.com/MKhiriev/go-draft-sync/internal/utils"
	"github.com/MKhiriev/go-draft-sync/models"
)

// State is the scheduling state of a buffer.
type State int

const (
	StateIdle State = iota
	StateScheduled
	StateInFlight
)

func (s State) String() string {
	switch s {
	case StateScheduled:
		return "scheduled"
	case StateInFlight:
		return "in_flight"
	default:
		return "idle"
	}
}

// SyncBuffer holds the working snapshot and the last snapshot known to be
// stored remotely. It is safe for concurrent use.
type SyncBuffer struct {
	opts   Options
	logger *logger.Logger
	ids    *utils.UUIDGenerator

	// sem admits one persist at a time; flushes queue on it.
	sem chan struct{}

	mu             sync.Mutex
	store          RemoteStore
	disabled       bool
	configReported bool
	snapshot       Snapshot
	lastPersisted  Snapshot
	held           Snapshot
	heldPartial    bool
	timer          *time.Timer
	timerGen       uint64
	epoch          uint64
	inFlight       bool
	closed         bool

	bgCtx    context.Context
	bgCancel context.CancelFunc
}

// New builds a buffer for opts.Path. A nil store means the remote is not
// configured yet: writes fail with [ErrConfigMissing] until [SyncBuffer.SetStore].
func New(store RemoteStore, opts Options, log *logger.Logger) (*SyncBuffer, error) {
	opts.Path = strings.TrimSpace(opts.Path)
	if opts.Path == "" {
		return nil, &Error{Kind: KindValidation, Op: "new", Err: errors.New("empty document path")}
	}
	if log == nil {
		log = logger.Nop()
	}

	bgCtx, bgCancel := context.WithCancel(context.Background())

	return &SyncBuffer{
		opts:          opts.withDefaults(),
		logger:        log,
		ids:           utils.NewUUIDGenerator(),
		sem:           make(chan struct{}, 1),
		store:         store,
		snapshot:      Snapshot{},
		lastPersisted: Snapshot{},
		bgCtx:         bgCtx,
		bgCancel:      bgCancel,
	}, nil
}

// Update records a field edit and restarts the debounce window. Empty keys and
// values that are empty after trimming are ignored.
func (b *SyncBuffer) Update(key, value string) {
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" || value == "" {
		b.logger.Debug().Str("key", key).Msg("empty field ignored")
		return
	}

	b.mu.Lock()
	b.snapshot[key] = value
	b.mu.Unlock()

	b.ScheduleFlush()
}

// ScheduleFlush replaces any pending timer with one that runs
// [SyncBuffer.FlushIfChanged] after the debounce period.
func (b *SyncBuffer) ScheduleFlush() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.stopTimerLocked()
	gen := b.timerGen
	b.timer = time.AfterFunc(b.opts.Debounce, func() { b.fire(gen) })
}

func (b *SyncBuffer) stopTimerLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.timerGen++
}

func (b *SyncBuffer) fire(gen uint64) {
	b.mu.Lock()
	if gen != b.timerGen {
		b.mu.Unlock()
		return
	}
	b.timer = nil
	b.mu.Unlock()

	if err := b.FlushIfChanged(b.bgCtx); err != nil {
		b.logger.Debug().Err(err).Str("path", b.opts.Path).Msg("debounced flush failed")
	}
}

// FlushIfChanged writes a partial draft when the snapshot is non-empty and
// differs from the last persisted one. It waits for an in-flight persist.
func (b *SyncBuffer) FlushIfChanged(ctx context.Context) error {
	if err := b.acquire(ctx); err != nil {
		return err
	}
	defer b.release()

	b.mu.Lock()
	if !b.changedLocked() {
		b.mu.Unlock()
		return nil
	}
	data, epoch := b.snapshot.Clone(), b.epoch
	b.mu.Unlock()

	return b.persist(ctx, data, epoch, true)
}

// ForceSave writes a complete draft whenever the snapshot is non-empty.
func (b *SyncBuffer) ForceSave(ctx context.Context) error {
	if err := b.acquire(ctx); err != nil {
		return err
	}
	defer b.release()

	b.mu.Lock()
	if len(b.snapshot) == 0 {
		b.mu.Unlock()
		return nil
	}
	data, epoch := b.snapshot.Clone(), b.epoch
	b.mu.Unlock()

	return b.persist(ctx, data, epoch, false)
}

func (b *SyncBuffer) acquire(ctx context.Context) error {
	select {
	case b.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return &Error{Kind: KindRemoteUnavailable, Op: "wait", Err: ctx.Err()}
	}
}

func (b *SyncBuffer) release() {
	<-b.sem
}

// persist must run while holding sem.
func (b *SyncBuffer) persist(ctx context.Context, data Snapshot, epoch uint64, partial bool) error {
	b.setInFlight(true)
	defer b.setInFlight(false)

	content, err := json.Marshal(models.Draft{
		Fields:     data,
		Complete:   !partial,
		CapturedAt: b.opts.Clock().UTC(),
		Origin:     b.opts.Origin,
	})
	if err != nil {
		return &Error{Kind: KindValidation, Op: "encode", Err: err}
	}

	var base, version string
	if store := b.activeStore(); store == nil {
		err = &Error{Kind: KindConfigMissing, Op: "persist", Err: ErrConfigMissing}
	} else {
		base, version, err = b.upsert(ctx, store, content)
	}
	if err != nil {
		b.fail(ctx, err, data, epoch, models.HeldDraft{
			ID:          b.ids.Generate(),
			Path:        b.opts.Path,
			BaseVersion: base,
			Content:     content,
			Partial:     partial,
			Reason:      err.Error(),
			HeldAt:      b.opts.Clock().UTC(),
		})
		return err
	}

	b.mu.Lock()
	if b.epoch == epoch {
		b.lastPersisted = data
		b.held = nil
	}
	b.mu.Unlock()

	b.logger.Info().
		Str("path", b.opts.Path).
		Str("version", version).
		Bool("partial", partial).
		Int("fields", len(data)).
		Msg("draft saved")
	b.report(Event{Kind: EventSaved, Partial: partial, Version: version, Fields: len(data)})

	return nil
}

// upsert runs up to Attempts read-write cycles. Only conflicts and
// unavailability are retried.
func (b *SyncBuffer) upsert(ctx context.Context, store RemoteStore, content []byte) (base, version string, err error) {
	for attempt := 1; attempt <= b.opts.Attempts; attempt++ {
		base, version, err = b.writeOnce(ctx, store, content)
		if err == nil || !retryable(err) || ctx.Err() != nil {
			return base, version, err
		}
		if attempt < b.opts.Attempts {
			b.logger.Warn().Err(err).Int("attempt", attempt).Str("path", b.opts.Path).Msg("persist failed, retrying")
		}
	}
	return base, version, err
}

func (b *SyncBuffer) writeOnce(ctx context.Context, store RemoteStore, content []byte) (string, string, error) {
	getCtx, cancel := context.WithTimeout(ctx, b.opts.RequestTimeout)
	doc, err := store.Get(getCtx, b.opts.Path)
	cancel()

	var base string
	switch {
	case err == nil:
		base = doc.Version
	case errors.Is(err, adapter.ErrNotFound):
	default:
		return "", "", classify("get", err)
	}

	putCtx, cancel := context.WithTimeout(ctx, b.opts.RequestTimeout)
	defer cancel()

	version, err := store.Put(putCtx, b.opts.Path, content, base)
	if err != nil {
		return base, "", classify("put", err)
	}

	return base, version, nil
}

func (b *SyncBuffer) fail(ctx context.Context, err error, data Snapshot, epoch uint64, held models.HeldDraft) {
	fields := len(data)
	if KindOf(err) == KindConfigMissing {
		b.mu.Lock()
		b.disabled = true
		first := !b.configReported
		b.configReported = true
		b.mu.Unlock()

		if first {
			b.logger.Error().Err(err).Str("path", b.opts.Path).Msg("remote store is not configured, writes paused")
			b.report(Event{Kind: EventConfigMissing, Partial: held.Partial, Fields: fields, Err: err})
		}
	} else {
		b.logger.Error().Err(err).Str("path", b.opts.Path).Bool("partial", held.Partial).Msg("persist failed")
		b.report(Event{Kind: EventFailed, Partial: held.Partial, Fields: fields, Err: err})
	}

	b.hold(ctx, data, epoch, held)
}

// hold runs even when ctx is already cancelled; the local write is bounded by
// RequestTimeout instead. A snapshot already held is not held again unless it
// upgrades a partial draft to a complete one.
func (b *SyncBuffer) hold(ctx context.Context, data Snapshot, epoch uint64, held models.HeldDraft) {
	if b.opts.Fallback == nil {
		return
	}
	fields := len(data)

	b.mu.Lock()
	dup := b.held != nil && data.Equal(b.held) && (held.Partial || !b.heldPartial)
	b.mu.Unlock()
	if dup {
		b.logger.Debug().Str("path", held.Path).Msg("draft already held")
		return
	}

	hctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.opts.RequestTimeout)
	defer cancel()

	if err := b.opts.Fallback.Hold(hctx, held); err != nil {
		err = fmt.Errorf("hold draft: %w", err)
		b.logger.Error().Err(err).Str("path", held.Path).Msg("fallback failed")
		b.report(Event{Kind: EventFailed, Partial: held.Partial, Fields: fields, Err: err})
		return
	}

	b.mu.Lock()
	if b.epoch == epoch {
		b.held = data
		b.heldPartial = held.Partial
	}
	b.mu.Unlock()

	b.logger.Warn().Str("path", held.Path).Str("id", held.ID).Msg("draft held locally")
	b.report(Event{Kind: EventHeld, Partial: held.Partial, Fields: fields, Err: errors.New(held.Reason)})
}

func (b *SyncBuffer) report(e Event) {
	e.At = b.opts.Clock()
	b.opts.Reporter.Report(e)
}

func (b *SyncBuffer) activeStore() RemoteStore {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.disabled {
		return nil
	}
	return b.store
}

func (b *SyncBuffer) setInFlight(v bool) {
	b.mu.Lock()
	b.inFlight = v
	b.mu.Unlock()
}

// Clear drops both snapshots and the pending timer. The remote document is
// left untouched. A persist already running will not mark its data as
// persisted.
func (b *SyncBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopTimerLocked()
	b.snapshot = Snapshot{}
	b.lastPersisted = Snapshot{}
	b.held = nil
	b.epoch++
}

// Changed reports whether the snapshot is non-empty and differs from the last
// persisted one.
func (b *SyncBuffer) Changed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.changedLocked()
}

func (b *SyncBuffer) changedLocked() bool {
	return len(b.snapshot) > 0 && !b.snapshot.Equal(b.lastPersisted)
}

// State returns StateInFlight while a persist runs, StateScheduled while a
// debounce timer is pending, and StateIdle otherwise.
func (b *SyncBuffer) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case b.inFlight:
		return StateInFlight
	case b.timer != nil:
		return StateScheduled
	default:
		return StateIdle
	}
}

// Snapshot returns a copy of the working snapshot.
func (b *SyncBuffer) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.snapshot.Clone()
}

// Path returns the remote document path.
func (b *SyncBuffer) Path() string {
	return b.opts.Path
}

// Paused reports whether writes are paused by a configuration failure.
func (b *SyncBuffer) Paused() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.disabled
}

// SetStore installs or replaces the remote store and re-enables writes paused
// by a configuration failure. Pending changes are scheduled for a flush.
func (b *SyncBuffer) SetStore(store RemoteStore) {
	b.mu.Lock()
	b.store = store
	b.disabled = false
	b.configReported = false
	pending := store != nil && b.changedLocked()
	b.mu.Unlock()

	if pending {
		b.ScheduleFlush()
	}
}

// Run is the periodic safety net: every CheckInterval it flushes pending
// changes. It returns when ctx is cancelled.
func (b *SyncBuffer) Run(ctx context.Context) {
	ticker := time.NewTicker(b.opts.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := b.FlushIfChanged(ctx); err != nil {
				b.logger.Debug().Err(err).Str("path", b.opts.Path).Msg("periodic flush failed")
			}
		}
	}
}

// OnShutdown cancels the pending timer and makes one flush bounded by
// ShutdownTimeout. Later edits are no longer scheduled.
func (b *SyncBuffer) OnShutdown(ctx context.Context) error {
	b.mu.Lock()
	b.stopTimerLocked()
	b.closed = true
	b.mu.Unlock()

	sctx, cancel := context.WithTimeout(ctx, b.opts.ShutdownTimeout)
	defer cancel()

	err := b.FlushIfChanged(sctx)
	b.bgCancel()

	return err
}
