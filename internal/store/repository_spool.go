// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-draft-sync/internal/logger"
	"github.com/MKhiriev/go-draft-sync/models"
)

// spoolRepository is the SQLite-backed [SpoolRepository]. It also satisfies
// the draft buffer's fallback contract through Hold.
type spoolRepository struct {
	*DB
	logger *logger.Logger
}

func NewSpoolRepository(db *DB, logger *logger.Logger) SpoolRepository {
	return &spoolRepository{
		DB:     db,
		logger: logger,
	}
}

// Hold stores d keyed by its capture time.
func (r *spoolRepository) Hold(ctx context.Context, d models.HeldDraft) error {
	if d.HeldAt.IsZero() {
		d.HeldAt = time.Now()
	}

	query, args, err := buildHoldQuery(r.builder, d.ID, d.Path, d.BaseVersion, d.Content, d.Partial, d.Reason, d.HeldAt.UnixNano(), d.Location)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		r.logger.Err(err).
			Str("func", "spoolRepository.Hold").
			Str("path", d.Path).
			Msg("failed to hold draft")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	r.logger.Info().
		Str("func", "spoolRepository.Hold").
		Str("id", d.ID).
		Str("path", d.Path).
		Msg("draft spooled")

	return nil
}

func (r *spoolRepository) List(ctx context.Context) ([]models.HeldDraft, error) {
	query, args, err := buildListHeldQuery(r.builder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var drafts []models.HeldDraft
	for rows.Next() {
		d, err := scanHeldDraft(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		drafts = append(drafts, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return drafts, nil
}

func (r *spoolRepository) Get(ctx context.Context, id string) (models.HeldDraft, error) {
	query, args, err := buildGetHeldQuery(r.builder, id)
	if err != nil {
		return models.HeldDraft{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	d, err := scanHeldDraft(r.QueryRowContext(ctx, query, args...))
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.HeldDraft{}, ErrSpoolEntryNotFound
	case err != nil:
		return models.HeldDraft{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return d, nil
}

func (r *spoolRepository) Delete(ctx context.Context, id string) error {
	query, args, err := buildDeleteHeldQuery(r.builder, id)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrSpoolEntryNotFound
	}

	return nil
}

func (r *spoolRepository) MarkStale(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := buildMarkStaleQuery(r.builder, ids)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	r.logger.Debug().
		Str("func", "spoolRepository.MarkStale").
		Int("count", len(ids)).
		Msg("held drafts marked stale")

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHeldDraft(row rowScanner) (models.HeldDraft, error) {
	var (
		d      models.HeldDraft
		heldAt int64
	)

	err := row.Scan(&d.ID, &d.Path, &d.BaseVersion, &d.Content, &d.Partial, &d.Reason, &heldAt, &d.Stale, &d.Location)
	if err != nil {
		return models.HeldDraft{}, err
	}
	d.HeldAt = time.Unix(0, heldAt).UTC()

	return d, nil
}
