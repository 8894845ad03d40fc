// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Draft is the serialized form of a buffered snapshot as written to the
// document store.
type Draft struct {
	// Fields maps field keys to their trimmed values.
	Fields map[string]string `json:"fields"`

	// Complete is true for explicit save points (submit, exit) and false for
	// debounced partial saves.
	Complete bool `json:"complete"`

	// CapturedAt is the time the snapshot was serialized (UTC).
	CapturedAt time.Time `json:"captured_at"`

	// Origin identifies the configured draft source (for example an editor
	// instance name). It is supplied by configuration, never detected.
	Origin string `json:"origin,omitempty"`
}

// HeldDraft is a serialized draft that could not be delivered to the
// document store and was retained locally for retry or manual recovery.
type HeldDraft struct {
	// ID is the spool entry identifier.
	ID string `json:"id"`

	// Path is the remote document path the draft was meant for.
	Path string `json:"path"`

	// BaseVersion is the version tag observed before the failed write.
	// Empty when the remote document did not exist yet.
	BaseVersion string `json:"base_version,omitempty"`

	// Content is the serialized [Draft].
	Content []byte `json:"content"`

	// Partial mirrors !Draft.Complete.
	Partial bool `json:"partial"`

	// Reason is the text of the error that caused the draft to be held.
	Reason string `json:"reason"`

	// HeldAt is the time the entry was created; entries are keyed by it.
	HeldAt time.Time `json:"held_at"`

	// Stale marks entries superseded remotely; they are kept for export only.
	Stale bool `json:"stale"`

	// Location is where a file fallback wrote the draft, if any.
	Location string `json:"location,omitempty"`
}

// ReplayResult counts what one spool replay pass did.
type ReplayResult struct {
	// Replayed entries were written remotely and removed from the spool.
	Replayed int `json:"replayed"`
	// Stale entries were superseded and kept for export only.
	Stale int `json:"stale"`
	// Pending entries failed and stay queued for the next pass.
	Pending int `json:"pending"`
}
