// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/MKhiriev/go-draft-sync/internal/syncbuffer"

// eventMsg carries one buffer outcome to the status line.
type eventMsg struct {
	event syncbuffer.Event
}

// flushDoneMsg reports the result of a blur, paste or submit flush.
type flushDoneMsg struct {
	op  string
	err error
}

// pasteSettledMsg fires once a paste has had time to settle. Only the newest
// paste (matching seq) triggers a flush.
type pasteSettledMsg struct {
	seq int
}
