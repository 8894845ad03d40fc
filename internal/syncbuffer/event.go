// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncbuffer

import "time"

// EventKind tells what happened to a persist.
type EventKind int

const (
	// EventSaved follows a successful remote write.
	EventSaved EventKind = iota + 1
	// EventFailed follows a failed remote write or a failed fallback.
	EventFailed
	// EventHeld follows a successful fallback hold.
	EventHeld
	// EventConfigMissing is sent once when the store is missing or rejects
	// the credentials.
	EventConfigMissing
)

func (k EventKind) String() string {
	switch k {
	case EventSaved:
		return "saved"
	case EventFailed:
		return "failed"
	case EventHeld:
		return "held"
	case EventConfigMissing:
		return "config_missing"
	default:
		return "unknown"
	}
}

// Event is delivered to the [Reporter].
type Event struct {
	Kind    EventKind
	Partial bool
	Version string
	Fields  int
	Err     error
	At      time.Time
}
