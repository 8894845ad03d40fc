// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncbuffer

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-draft-sync/internal/adapter"
	"github.com/MKhiriev/go-draft-sync/internal/logger"
	"github.com/MKhiriev/go-draft-sync/internal/utils"
	"github.com/MKhiriev/go-draft-sync/models"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory versioned store with failure injection.
type memStore struct {
	mu       sync.Mutex
	doc      *models.Document
	rev      int64
	gets     int
	puts     int
	putErrs  []error
	getErrs  []error
	putTimes []time.Time
	written  [][]byte

	// block makes Put wait until it is closed or ctx is done.
	block chan struct{}

	active    int
	maxActive int
}

func (s *memStore) Get(ctx context.Context, path string) (models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gets++
	if len(s.getErrs) > 0 {
		err := s.getErrs[0]
		s.getErrs = s.getErrs[1:]
		return models.Document{}, err
	}
	if s.doc == nil {
		return models.Document{}, adapter.ErrNotFound
	}
	return *s.doc, nil
}

func (s *memStore) Put(ctx context.Context, path string, content []byte, expected string) (string, error) {
	s.mu.Lock()
	s.puts++
	s.active++
	if s.active > s.maxActive {
		s.maxActive = s.active
	}
	block := s.block
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.active--
		s.mu.Unlock()
	}()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.putTimes = append(s.putTimes, time.Now())
	if len(s.putErrs) > 0 {
		err := s.putErrs[0]
		s.putErrs = s.putErrs[1:]
		return "", err
	}
	if expected == "" && s.doc != nil {
		return "", adapter.ErrConflict
	}
	if expected != "" && (s.doc == nil || s.doc.Version != expected) {
		return "", adapter.ErrConflict
	}

	s.rev++
	version := utils.VersionTag(s.rev, content)
	s.doc = &models.Document{Path: path, Content: content, Version: version, Revision: s.rev}
	s.written = append(s.written, content)
	return version, nil
}

func (s *memStore) putCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.puts
}

func (s *memStore) lastDraft(t *testing.T) models.Draft {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()

	require.NotEmpty(t, s.written)
	var d models.Draft
	require.NoError(t, json.Unmarshal(s.written[len(s.written)-1], &d))
	return d
}

type eventRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *eventRecorder) Report(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) count(kind EventKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

type heldRecorder struct {
	mu   sync.Mutex
	held []models.HeldDraft
	err  error
}

func (h *heldRecorder) Hold(ctx context.Context, d models.HeldDraft) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.err != nil {
		return h.err
	}
	h.held = append(h.held, d)
	return nil
}

func (h *heldRecorder) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.held)
}

type fixture struct {
	buf      *SyncBuffer
	store    *memStore
	events   *eventRecorder
	fallback *heldRecorder
}

// newFixture builds a buffer whose debounce never fires unless overridden.
func newFixture(t *testing.T, mutate func(o *Options)) *fixture {
	t.Helper()

	f := &fixture{store: &memStore{}, events: &eventRecorder{}, fallback: &heldRecorder{}}
	opts := Options{
		Path:           "forms/contact/draft.json",
		Origin:         "test-editor",
		Debounce:       time.Hour,
		CheckInterval:  time.Hour,
		RequestTimeout: time.Second,
		Fallback:       f.fallback,
		Reporter:       f.events,
	}
	if mutate != nil {
		mutate(&opts)
	}

	buf, err := New(f.store, opts, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(buf.Clear)

	f.buf = buf
	return f
}
