// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-draft-sync/internal/logger"
	"github.com/MKhiriev/go-draft-sync/models"
)

// Holder is the draft fallback contract shared by the spool and the file
// backup.
type Holder interface {
	Hold(ctx context.Context, draft models.HeldDraft) error
}

// locatingHolder is a Holder that can tell where it put the draft.
type locatingHolder interface {
	HoldAt(ctx context.Context, draft models.HeldDraft) (string, error)
}

// MultiFallback hands a draft to every holder in order. A location returned by
// an earlier holder is recorded on the draft passed to later ones.
type MultiFallback struct {
	holders []Holder
	logger  *logger.Logger
}

func NewMultiFallback(logger *logger.Logger, holders ...Holder) *MultiFallback {
	hs := make([]Holder, 0, len(holders))
	for _, h := range holders {
		if h != nil {
			hs = append(hs, h)
		}
	}
	return &MultiFallback{holders: hs, logger: logger}
}

// Hold succeeds when at least one holder kept the draft. Individual failures
// are logged; if all fail their errors are joined.
func (m *MultiFallback) Hold(ctx context.Context, d models.HeldDraft) error {
	if len(m.holders) == 0 {
		return errors.New("no fallback configured")
	}

	var errs []error
	for _, h := range m.holders {
		var err error
		if lh, ok := h.(locatingHolder); ok {
			var location string
			if location, err = lh.HoldAt(ctx, d); err == nil && d.Location == "" {
				d.Location = location
			}
		} else {
			err = h.Hold(ctx, d)
		}

		if err != nil {
			m.logger.Err(err).Str("func", "MultiFallback.Hold").Str("path", d.Path).Msg("fallback holder failed")
			errs = append(errs, err)
		}
	}

	if len(errs) == len(m.holders) {
		return errors.Join(errs...)
	}
	return nil
}
