// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-draft-sync/internal/adapter"
	"github.com/MKhiriev/go-draft-sync/internal/logger"
	"github.com/MKhiriev/go-draft-sync/internal/store"
	"github.com/MKhiriev/go-draft-sync/models"
)

type recoveryService struct {
	spool  store.SpoolRepository
	remote adapter.DocumentStore

	logger *logger.Logger
}

// NewRecoveryService builds the service. remote may be nil when the adapter is
// not configured; Replay then fails and the spool is left untouched.
func NewRecoveryService(spool store.SpoolRepository, remote adapter.DocumentStore, logger *logger.Logger) RecoveryService {
	return &recoveryService{
		spool:  spool,
		remote: remote,
		logger: logger,
	}
}

// Replay handles entries oldest first. Only the newest non-stale entry of each
// path is written, with its stored base version; older ones are marked stale.
// A success deletes the entry, a conflict marks it stale, any other failure
// leaves it pending and is returned joined with the others.
func (s *recoveryService) Replay(ctx context.Context) (models.ReplayResult, error) {
	var result models.ReplayResult

	if s.remote == nil {
		return result, adapter.ErrNotConfigured
	}

	entries, err := s.spool.List(ctx)
	if err != nil {
		return result, fmt.Errorf("list spool: %w", err)
	}

	newest := make(map[string]models.HeldDraft)
	order := make([]string, 0, len(entries))
	var superseded []string

	for _, e := range entries {
		if e.Stale {
			continue
		}
		if prev, ok := newest[e.Path]; ok {
			superseded = append(superseded, prev.ID)
		} else {
			order = append(order, e.Path)
		}
		newest[e.Path] = e
	}

	if err = s.spool.MarkStale(ctx, superseded); err != nil {
		return result, fmt.Errorf("mark superseded drafts: %w", err)
	}
	result.Stale += len(superseded)

	var errs []error
	for _, path := range order {
		e := newest[path]

		version, err := s.remote.Put(ctx, e.Path, e.Content, e.BaseVersion)
		switch {
		case err == nil:
			if err = s.spool.Delete(ctx, e.ID); err != nil && !errors.Is(err, store.ErrSpoolEntryNotFound) {
				errs = append(errs, fmt.Errorf("delete replayed draft %s: %w", e.ID, err))
			}
			result.Replayed++
			s.logger.Info().Str("id", e.ID).Str("path", e.Path).Str("version", version).Msg("held draft replayed")

		case errors.Is(err, adapter.ErrConflict):
			if err = s.spool.MarkStale(ctx, []string{e.ID}); err != nil {
				errs = append(errs, fmt.Errorf("mark conflicting draft %s: %w", e.ID, err))
			}
			result.Stale++
			s.logger.Warn().Str("id", e.ID).Str("path", e.Path).Msg("held draft superseded remotely, kept for export")

		default:
			result.Pending++
			errs = append(errs, fmt.Errorf("replay %s: %w", e.Path, err))
			if ctx.Err() != nil {
				return result, errors.Join(errs...)
			}
		}
	}

	return result, errors.Join(errs...)
}

func (s *recoveryService) List(ctx context.Context) ([]models.HeldDraft, error) {
	entries, err := s.spool.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list spool: %w", err)
	}
	return entries, nil
}

// Export indents JSON content; anything else is written verbatim.
func (s *recoveryService) Export(ctx context.Context, id string, w io.Writer) error {
	entry, err := s.spool.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get held draft: %w", err)
	}

	body := entry.Content
	var buf bytes.Buffer
	if json.Indent(&buf, entry.Content, "", "  ") == nil {
		buf.WriteByte('\n')
		body = buf.Bytes()
	}

	if _, err = w.Write(body); err != nil {
		return fmt.Errorf("write held draft: %w", err)
	}

	return nil
}

func (s *recoveryService) Drop(ctx context.Context, id string) error {
	if err := s.spool.Delete(ctx, id); err != nil {
		return fmt.Errorf("drop held draft: %w", err)
	}
	s.logger.Info().Str("id", id).Msg("held draft dropped")
	return nil
}
