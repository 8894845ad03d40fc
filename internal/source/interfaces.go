// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package source

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/source_mock.go -package=mock

// Sink receives field edits. *syncbuffer.SyncBuffer implements it.
type Sink interface {
	// Update records one field value; it is debounced by the sink.
	Update(key, value string)

	// FlushIfChanged is called when the user leaves a field or a batch of
	// edits has been applied.
	FlushIfChanged(ctx context.Context) error

	// ForceSave is called on an explicit submit.
	ForceSave(ctx context.Context) error
}
