// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncbuffer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-draft-sync/internal/adapter"
	"github.com/MKhiriev/go-draft-sync/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── construction and input ───────────────────────────────────────────────────

func TestNew_EmptyPath(t *testing.T) {
	_, err := New(&memStore{}, Options{Path: "  "}, logger.Nop())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNew_Defaults(t *testing.T) {
	buf, err := New(nil, Options{Path: "a.json"}, nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultDebounce, buf.opts.Debounce)
	assert.Equal(t, DefaultCheckInterval, buf.opts.CheckInterval)
	assert.Equal(t, DefaultRequestTimeout, buf.opts.RequestTimeout)
	assert.Equal(t, DefaultShutdownTimeout, buf.opts.ShutdownTimeout)
	assert.Equal(t, DefaultAttempts, buf.opts.Attempts)
	assert.Equal(t, "a.json", buf.Path())
}

func TestUpdate_IgnoresEmptyKeyOrValue(t *testing.T) {
	f := newFixture(t, nil)

	f.buf.Update("", "value")
	f.buf.Update("email", "   ")
	f.buf.Update("  ", "")

	assert.Zero(t, f.buf.Snapshot().Len())
	assert.Equal(t, StateIdle, f.buf.State())
	assert.False(t, f.buf.Changed())
	assert.Empty(t, f.events.events)
}

func TestUpdate_TrimsAndSchedules(t *testing.T) {
	f := newFixture(t, nil)

	f.buf.Update("email", "  a@b.com \n")

	assert.Equal(t, Snapshot{"email": "a@b.com"}, f.buf.Snapshot())
	assert.Equal(t, StateScheduled, f.buf.State())
	assert.True(t, f.buf.Changed())
}

// ── change detection ─────────────────────────────────────────────────────────

func TestFlushIfChanged_Idempotent(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.buf.Update("email", "a@b.com")
	require.NoError(t, f.buf.FlushIfChanged(ctx))
	require.NoError(t, f.buf.FlushIfChanged(ctx))

	assert.Equal(t, 1, f.store.putCount())
	assert.Equal(t, 1, f.events.count(EventSaved))
}

func TestFlushIfChanged_EmptySnapshot(t *testing.T) {
	f := newFixture(t, nil)

	require.NoError(t, f.buf.FlushIfChanged(context.Background()))

	assert.Zero(t, f.store.putCount())
}

func TestChangeDetection_SameValueAfterPersist(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.buf.Update("amount", "10")
	require.NoError(t, f.buf.FlushIfChanged(ctx))

	f.buf.Update("amount", "10")
	f.buf.Update("amount", " 10 ")

	assert.False(t, f.buf.Changed())
	require.NoError(t, f.buf.FlushIfChanged(ctx))
	assert.Equal(t, 1, f.store.putCount())

	f.buf.Update("amount", "11")
	assert.True(t, f.buf.Changed())
}

// ── debounce ─────────────────────────────────────────────────────────────────

func TestDebounce_CoalescesBurst(t *testing.T) {
	const debounce = 60 * time.Millisecond
	f := newFixture(t, func(o *Options) { o.Debounce = debounce })

	var last time.Time
	for i := range 5 {
		f.buf.Update("note", fmt.Sprintf("draft %d", i))
		last = time.Now()
		time.Sleep(10 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return f.store.putCount() == 1 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(3 * debounce)
	assert.Equal(t, 1, f.store.putCount())

	f.store.mu.Lock()
	firedAfter := f.store.putTimes[0].Sub(last)
	f.store.mu.Unlock()
	assert.GreaterOrEqual(t, firedAfter, debounce-5*time.Millisecond)

	assert.Equal(t, map[string]string{"note": "draft 4"}, f.store.lastDraft(t).Fields)
}

func TestDebounce_PartialPersistWithBothFields(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.Debounce = 30 * time.Millisecond })

	f.buf.Update("email", "a@b.com")
	f.buf.Update("amount", "10")

	require.Eventually(t, func() bool { return f.store.putCount() == 1 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, f.store.putCount())

	d := f.store.lastDraft(t)
	assert.Equal(t, map[string]string{"email": "a@b.com", "amount": "10"}, d.Fields)
	assert.False(t, d.Complete)
	assert.Equal(t, "test-editor", d.Origin)
	assert.Eventually(t, func() bool { return f.buf.State() == StateIdle }, time.Second, 5*time.Millisecond)
}

func TestScheduleFlush_ReplacesPendingTimer(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.Debounce = 40 * time.Millisecond })

	f.buf.Update("a", "1")
	f.buf.ScheduleFlush()
	f.buf.ScheduleFlush()

	require.Eventually(t, func() bool { return f.store.putCount() == 1 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, f.store.putCount())
}

// ── force save ───────────────────────────────────────────────────────────────

func TestForceSave_EmptySnapshotNoRemoteCall(t *testing.T) {
	f := newFixture(t, nil)

	require.NoError(t, f.buf.ForceSave(context.Background()))

	assert.Zero(t, f.store.gets)
	assert.Zero(t, f.store.putCount())
}

func TestForceSave_WritesCompleteDraftEvenWhenUnchanged(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f := newFixture(t, func(o *Options) { o.Clock = func() time.Time { return now } })
	ctx := context.Background()

	f.buf.Update("email", "a@b.com")
	require.NoError(t, f.buf.FlushIfChanged(ctx))
	require.NoError(t, f.buf.ForceSave(ctx))

	assert.Equal(t, 2, f.store.putCount())
	d := f.store.lastDraft(t)
	assert.True(t, d.Complete)
	assert.Equal(t, now, d.CapturedAt)
}

// ── conflicts and failures ───────────────────────────────────────────────────

func TestPersist_ConflictRetriedOnceWithFreshRead(t *testing.T) {
	f := newFixture(t, nil)
	f.store.putErrs = []error{adapter.ErrConflict}

	f.buf.Update("email", "a@b.com")
	require.NoError(t, f.buf.FlushIfChanged(context.Background()))

	assert.Equal(t, 2, f.store.gets)
	assert.Equal(t, 2, f.store.putCount())
	assert.False(t, f.buf.Changed())
	assert.Equal(t, 1, f.events.count(EventSaved))
	assert.Zero(t, f.fallback.count())
}

func TestPersist_ConflictTwiceIsHeld(t *testing.T) {
	f := newFixture(t, nil)
	f.store.putErrs = []error{adapter.ErrConflict, adapter.ErrConflict}

	f.buf.Update("email", "a@b.com")
	err := f.buf.FlushIfChanged(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, 2, f.store.putCount())

	assert.True(t, f.buf.Changed(), "snapshot must stay dirty after a failure")
	assert.Equal(t, Snapshot{"email": "a@b.com"}, f.buf.Snapshot())
	assert.Equal(t, 1, f.events.count(EventFailed))
	assert.Equal(t, 1, f.events.count(EventHeld))

	require.Equal(t, 1, f.fallback.count())
	held := f.fallback.held[0]
	assert.Equal(t, "forms/contact/draft.json", held.Path)
	assert.True(t, held.Partial)
	assert.NotEmpty(t, held.ID)
	assert.Contains(t, held.Reason, "conflict")
}

func TestPersist_UnavailableRetriedThenHeld(t *testing.T) {
	f := newFixture(t, nil)
	f.store.getErrs = []error{
		fmt.Errorf("%w: http 503", adapter.ErrRemoteUnavailable),
		fmt.Errorf("%w: http 503", adapter.ErrRemoteUnavailable),
	}

	f.buf.Update("email", "a@b.com")
	err := f.buf.ForceSave(context.Background())

	assert.ErrorIs(t, err, ErrRemoteUnavailable)
	assert.Equal(t, 2, f.store.gets)
	assert.Zero(t, f.store.putCount())
	require.Equal(t, 1, f.fallback.count())
	assert.False(t, f.fallback.held[0].Partial)
}

func TestPersist_BadRequestNotRetried(t *testing.T) {
	f := newFixture(t, nil)
	f.store.putErrs = []error{fmt.Errorf("%w: too large", adapter.ErrBadRequest)}

	f.buf.Update("email", "a@b.com")
	err := f.buf.FlushIfChanged(context.Background())

	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, 1, f.store.putCount())
	assert.Equal(t, 1, f.fallback.count())
}

func TestPersist_RequestTimeoutIsUnavailable(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.RequestTimeout = 30 * time.Millisecond })
	f.store.block = make(chan struct{})
	defer close(f.store.block)

	f.buf.Update("email", "a@b.com")
	start := time.Now()
	err := f.buf.FlushIfChanged(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemoteUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 2, f.store.putCount())
	assert.Less(t, time.Since(start), time.Second)
}

func TestPersist_FallbackFailureReported(t *testing.T) {
	f := newFixture(t, nil)
	f.store.putErrs = []error{adapter.ErrConflict, adapter.ErrConflict}
	f.fallback.err = errors.New("disk full")

	f.buf.Update("email", "a@b.com")
	require.Error(t, f.buf.FlushIfChanged(context.Background()))

	assert.Equal(t, 2, f.events.count(EventFailed))
	assert.Zero(t, f.events.count(EventHeld))
}

// ── configuration ────────────────────────────────────────────────────────────

func TestConfigMissing_ReportedOnceUntilSetStore(t *testing.T) {
	events := &eventRecorder{}
	fallback := &heldRecorder{}
	buf, err := New(nil, Options{Path: "a.json", Debounce: time.Hour, Reporter: events, Fallback: fallback}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(buf.Clear)
	ctx := context.Background()

	buf.Update("email", "a@b.com")
	err = buf.FlushIfChanged(ctx)
	assert.ErrorIs(t, err, ErrConfigMissing)
	err = buf.ForceSave(ctx)
	assert.ErrorIs(t, err, ErrConfigMissing)

	assert.Equal(t, 1, events.count(EventConfigMissing))
	assert.Zero(t, events.count(EventFailed))
	assert.Equal(t, 2, fallback.count())

	store := &memStore{}
	buf.SetStore(store)
	assert.Equal(t, StateScheduled, buf.State())
	require.NoError(t, buf.FlushIfChanged(ctx))
	assert.Equal(t, 1, store.putCount())
	assert.Equal(t, 1, events.count(EventSaved))
}

func TestConfigMissing_SameSnapshotHeldOnceAcrossTicks(t *testing.T) {
	events := &eventRecorder{}
	fallback := &heldRecorder{}
	buf, err := New(nil, Options{
		Path:          "a.json",
		Debounce:      time.Hour,
		CheckInterval: 20 * time.Millisecond,
		Reporter:      events,
		Fallback:      fallback,
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(buf.Clear)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		buf.Run(ctx)
		close(done)
	}()

	buf.Update("email", "a@b.com")
	require.Eventually(t, func() bool { return fallback.count() == 1 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(150 * time.Millisecond)

	assert.Equal(t, 1, fallback.count(), "unchanged snapshot must not be held again")
	assert.Equal(t, 1, events.count(EventHeld))
	assert.Equal(t, 1, events.count(EventConfigMissing))

	buf.Update("email", "c@d.com")
	require.Eventually(t, func() bool { return fallback.count() == 2 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestHold_RepeatedFailureHoldsOnce(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.store.putErrs = []error{
		adapter.ErrRemoteUnavailable, adapter.ErrRemoteUnavailable,
		adapter.ErrRemoteUnavailable, adapter.ErrRemoteUnavailable,
	}

	f.buf.Update("email", "a@b.com")
	require.Error(t, f.buf.FlushIfChanged(ctx))
	require.Error(t, f.buf.FlushIfChanged(ctx))

	assert.Equal(t, 1, f.fallback.count())
	assert.Equal(t, 2, f.events.count(EventFailed), "every failed attempt is still reported")

	f.buf.Clear()
	f.store.putErrs = []error{adapter.ErrRemoteUnavailable, adapter.ErrRemoteUnavailable}
	f.buf.Update("email", "a@b.com")
	require.Error(t, f.buf.FlushIfChanged(ctx))
	assert.Equal(t, 2, f.fallback.count(), "clear forgets the held snapshot")
}

func TestHold_ForgottenAfterSuccessfulPersist(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	unavailable := []error{adapter.ErrRemoteUnavailable, adapter.ErrRemoteUnavailable}

	f.store.putErrs = unavailable
	f.buf.Update("email", "a@b.com")
	require.Error(t, f.buf.FlushIfChanged(ctx))
	require.Equal(t, 1, f.fallback.count())

	f.buf.Update("email", "c@d.com")
	require.NoError(t, f.buf.FlushIfChanged(ctx))

	f.store.putErrs = unavailable
	f.buf.Update("email", "a@b.com")
	require.Error(t, f.buf.FlushIfChanged(ctx))
	assert.Equal(t, 2, f.fallback.count(), "a save in between makes the old snapshot new again")
}

func TestConfigMissing_UnauthorizedPausesWrites(t *testing.T) {
	f := newFixture(t, nil)
	f.store.putErrs = []error{fmt.Errorf("%w: bad token", adapter.ErrUnauthorized)}
	ctx := context.Background()

	f.buf.Update("email", "a@b.com")
	err := f.buf.FlushIfChanged(ctx)
	assert.ErrorIs(t, err, ErrConfigMissing)
	assert.ErrorIs(t, err, adapter.ErrUnauthorized)
	assert.Equal(t, 1, f.store.putCount())

	f.buf.Update("email", "c@d.com")
	assert.ErrorIs(t, f.buf.FlushIfChanged(ctx), ErrConfigMissing)
	assert.Equal(t, 1, f.store.putCount(), "writes stay paused")
	assert.Equal(t, 1, f.events.count(EventConfigMissing))
	assert.True(t, f.buf.Paused())

	f.buf.SetStore(f.store)
	assert.False(t, f.buf.Paused())
	require.NoError(t, f.buf.FlushIfChanged(ctx))
	assert.Equal(t, 2, f.store.putCount())
}

// ── clear ────────────────────────────────────────────────────────────────────

func TestClear_AfterPersistResetsBoth(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.buf.Update("email", "a@b.com")
	require.NoError(t, f.buf.FlushIfChanged(ctx))

	f.buf.Clear()
	assert.Zero(t, f.buf.Snapshot().Len())
	assert.Zero(t, f.buf.lastPersisted.Len())
	assert.Equal(t, StateIdle, f.buf.State())

	f.buf.Update("email", "a@b.com")
	assert.True(t, f.buf.Changed())
	require.NoError(t, f.buf.FlushIfChanged(ctx))
	assert.Equal(t, 2, f.store.putCount())
}

func TestClear_DuringPersistDoesNotMarkPersisted(t *testing.T) {
	f := newFixture(t, nil)
	f.store.block = make(chan struct{})

	f.buf.Update("email", "a@b.com")
	done := make(chan error, 1)
	go func() { done <- f.buf.ForceSave(context.Background()) }()

	require.Eventually(t, func() bool { return f.buf.State() == StateInFlight }, time.Second, time.Millisecond)
	f.buf.Clear()
	close(f.store.block)
	require.NoError(t, <-done)

	f.buf.mu.Lock()
	defer f.buf.mu.Unlock()
	assert.Zero(t, f.buf.lastPersisted.Len())
	assert.Zero(t, f.buf.snapshot.Len())
}

// ── concurrency ──────────────────────────────────────────────────────────────

func TestPersist_SerializedAcrossCallers(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.buf.Update(fmt.Sprintf("field%d", i), "v")
			_ = f.buf.FlushIfChanged(ctx)
		}()
	}
	wg.Wait()

	f.store.mu.Lock()
	defer f.store.mu.Unlock()
	assert.Equal(t, 1, f.store.maxActive)
	assert.LessOrEqual(t, f.store.puts, 10)
	assert.Equal(t, f.store.puts, len(f.store.written), "every write must see the latest version")
}

func TestFlushIfChanged_WaitHonorsContext(t *testing.T) {
	f := newFixture(t, nil)
	f.store.block = make(chan struct{})
	defer close(f.store.block)

	f.buf.Update("email", "a@b.com")
	go func() { _ = f.buf.ForceSave(context.Background()) }()
	require.Eventually(t, func() bool { return f.buf.State() == StateInFlight }, time.Second, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := f.buf.FlushIfChanged(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// ── lifecycle ────────────────────────────────────────────────────────────────

func TestRun_PeriodicSafetyNet(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.CheckInterval = 20 * time.Millisecond })
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		f.buf.Run(ctx)
		close(done)
	}()

	f.buf.Update("email", "a@b.com")
	require.Eventually(t, func() bool { return f.store.putCount() == 1 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, 1, f.store.putCount(), "unchanged snapshot must not be rewritten")

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestOnShutdown_FlushesPendingChanges(t *testing.T) {
	f := newFixture(t, nil)

	f.buf.Update("email", "a@b.com")
	require.NoError(t, f.buf.OnShutdown(context.Background()))

	assert.Equal(t, 1, f.store.putCount())
	assert.Equal(t, StateIdle, f.buf.State())

	f.buf.Update("email", "later@b.com")
	assert.Equal(t, StateIdle, f.buf.State(), "no timer after shutdown")
}

func TestOnShutdown_Bounded(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.ShutdownTimeout = 40 * time.Millisecond })
	f.store.block = make(chan struct{})
	defer close(f.store.block)

	f.buf.Update("email", "a@b.com")
	start := time.Now()
	err := f.buf.OnShutdown(context.Background())

	require.Error(t, err)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.Equal(t, 1, f.fallback.count(), "draft is held when the final flush fails")
}
