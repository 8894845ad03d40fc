// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-draft-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// DocumentRepository persists versioned documents per owner.
type DocumentRepository interface {
	// GetDocument returns ErrDocumentNotFound when owner has no document at path.
	GetDocument(ctx context.Context, owner, path string) (models.Document, error)

	// CreateDocument inserts a new document. ErrVersionConflict if one exists.
	CreateDocument(ctx context.Context, owner string, doc models.Document) (models.Document, error)

	// UpdateDocument replaces the document only while its stored version equals
	// expectedVersion. ErrVersionConflict otherwise.
	UpdateDocument(ctx context.Context, owner string, doc models.Document, expectedVersion string) (models.Document, error)

	// ListDocuments returns the owner's documents whose path starts with prefix.
	ListDocuments(ctx context.Context, owner, prefix string) ([]models.DocumentInfo, error)
}

// SpoolRepository keeps drafts that could not be written remotely.
type SpoolRepository interface {
	Hold(ctx context.Context, draft models.HeldDraft) error
	// List returns all entries ordered by capture time, oldest first.
	List(ctx context.Context) ([]models.HeldDraft, error)
	Get(ctx context.Context, id string) (models.HeldDraft, error)
	Delete(ctx context.Context, id string) error
	MarkStale(ctx context.Context, ids []string) error
}
