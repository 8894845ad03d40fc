// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncbuffer

import (
	"context"

	"github.com/MKhiriev/go-draft-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/syncbuffer_mock.go -package=mock

// RemoteStore is the versioned document store the buffer writes to.
// [adapter.HTTPDocumentStore] satisfies it.
type RemoteStore interface {
	// Get returns the current document. adapter.ErrNotFound when absent.
	Get(ctx context.Context, path string) (models.Document, error)

	// Put writes content if expectedVersion still matches ("" means create)
	// and returns the new version tag.
	Put(ctx context.Context, path string, content []byte, expectedVersion string) (string, error)
}

// Fallback keeps a draft that could not be written remotely.
type Fallback interface {
	Hold(ctx context.Context, draft models.HeldDraft) error
}

// Reporter receives every save, failure and fallback outcome. Report may be
// called from timer and worker goroutines.
type Reporter interface {
	Report(event Event)
}

// ReporterFunc adapts a function to [Reporter].
type ReporterFunc func(event Event)

func (f ReporterFunc) Report(event Event) {
	f(event)
}

type nopReporter struct{}

func (nopReporter) Report(Event) {}
