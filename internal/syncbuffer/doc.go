// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package syncbuffer keeps a local key/value draft and synchronizes it to a
// remote versioned document store.
//
// Edits are coalesced by a debounce timer, unchanged snapshots are never
// written twice, and every write is an optimistic read-modify-write guarded by
// the document version tag. A conflicting or unreachable write is retried once
// with a fresh read. Failures reach the [Reporter] and the draft is handed to a
// [Fallback] so nothing is lost silently.
package syncbuffer
