// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import "github.com/google/uuid"

// UUIDGenerator produces time-ordered identifiers for trace ids and spool
// entries. Spool entries sort by id the same way they sort by hold time.
type UUIDGenerator struct {
	newV7 func() (uuid.UUID, error)
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{newV7: uuid.NewV7}
}

// Generate returns a UUIDv7. If the v7 source fails it returns a random v4 so
// that callers never get an empty id.
func (g *UUIDGenerator) Generate() string {
	if id, err := g.newV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
