// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-draft-sync/internal/config"
	"github.com/MKhiriev/go-draft-sync/internal/logger"
)

// ClientStorages groups the client-side local durability stores.
type ClientStorages struct {
	// SpoolRepository is the SQLite spool of drafts awaiting replay.
	SpoolRepository SpoolRepository
	// Files writes backup files the user can open directly.
	Files *FileFallback
	// Fallback chains Files then SpoolRepository.
	Fallback *MultiFallback

	db *DB
}

// NewClientStorages opens the SQLite spool named by cfg.SpoolDSN, applies
// migrations and wires the fallback chain.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new client storages...")

	db, err := NewConnectSQLite(ctx, cfg.SpoolDSN, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	spool := NewSpoolRepository(db, logger)
	files := NewFileFallback(cfg.FallbackDir, logger)

	return &ClientStorages{
		SpoolRepository: spool,
		Files:           files,
		Fallback:        NewMultiFallback(logger, files, spool),
		db:              db,
	}, nil
}

func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
