// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MKhiriev/go-draft-sync/internal/logger"
	"github.com/MKhiriev/go-draft-sync/models"
)

// FileFallback writes each held draft to its own backup file so the user can
// pick it up by hand.
type FileFallback struct {
	dir    string
	logger *logger.Logger
}

func NewFileFallback(dir string, logger *logger.Logger) *FileFallback {
	return &FileFallback{dir: dir, logger: logger}
}

// backupFile is the on-disk layout: the draft itself plus where it was meant
// to go.
type backupFile struct {
	Path        string          `json:"path"`
	BaseVersion string          `json:"base_version,omitempty"`
	Reason      string          `json:"reason"`
	HeldAt      time.Time       `json:"held_at"`
	Draft       json.RawMessage `json:"draft"`
}

// Hold implements the buffer fallback contract.
func (f *FileFallback) Hold(ctx context.Context, d models.HeldDraft) error {
	_, err := f.HoldAt(ctx, d)
	return err
}

// HoldAt writes d to <dir>/draft_backup_<unixnano>.json and returns the file
// location.
func (f *FileFallback) HoldAt(ctx context.Context, d models.HeldDraft) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if d.HeldAt.IsZero() {
		d.HeldAt = time.Now()
	}

	body := backupFile{
		Path:        d.Path,
		BaseVersion: d.BaseVersion,
		Reason:      d.Reason,
		HeldAt:      d.HeldAt.UTC(),
		Draft:       json.RawMessage(d.Content),
	}
	if !json.Valid(d.Content) {
		raw, _ := json.Marshal(string(d.Content))
		body.Draft = raw
	}

	payload, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrWritingFile, err)
	}

	if err = os.MkdirAll(f.dir, 0o700); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWritingFile, err)
	}

	location := filepath.Join(f.dir, fmt.Sprintf("draft_backup_%d.json", d.HeldAt.UnixNano()))
	file, err := os.OpenFile(location, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrWritingFile, err)
	}

	if _, err = file.Write(payload); err != nil {
		file.Close()
		return "", fmt.Errorf("%w: %w", ErrWritingFile, err)
	}
	if err = file.Close(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrWritingFile, err)
	}

	f.logger.Warn().
		Str("func", "FileFallback.HoldAt").
		Str("path", d.Path).
		Str("file", location).
		Msg("draft written to backup file")

	return location, nil
}
