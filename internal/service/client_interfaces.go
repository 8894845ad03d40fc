// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"io"

	"github.com/MKhiriev/go-draft-sync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// RecoveryService replays and exports drafts that were held locally after a
// failed remote write.
type RecoveryService interface {
	// Replay pushes the newest pending draft of every path to the remote store.
	Replay(ctx context.Context) (models.ReplayResult, error)
	// List returns every held draft, oldest first.
	List(ctx context.Context) ([]models.HeldDraft, error)
	// Export writes the draft content of entry id to w.
	Export(ctx context.Context, id string, w io.Writer) error
	// Drop removes entry id from the spool.
	Drop(ctx context.Context, id string) error
}
