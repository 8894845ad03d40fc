// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncbuffer

import "maps"

// Snapshot maps field keys to trimmed values.
type Snapshot map[string]string

// Clone returns an independent copy. Cloning nil yields an empty snapshot.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	maps.Copy(out, s)
	return out
}

// Equal reports whether both snapshots hold the same keys and values,
// regardless of insertion order. nil and empty are equal.
func (s Snapshot) Equal(other Snapshot) bool {
	return maps.Equal(s, other)
}

// Len returns the number of fields.
func (s Snapshot) Len() int {
	return len(s)
}
