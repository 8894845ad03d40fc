// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the versioned document store.
//
// [HTTPDocumentStore] speaks the server's REST API over resty. Error values
// defined in errors.go are mapped from HTTP status codes by mapHTTPError so
// that callers can use [errors.Is] for transport-agnostic error handling
// (e.g. [ErrConflict] for 409/412, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-draft-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/document_store_mock.go -package=mock

// DocumentStore is a versioned document store addressed by path.
type DocumentStore interface {
	// Get returns the document at path. Returns [ErrNotFound] when absent.
	Get(ctx context.Context, path string) (models.Document, error)

	// Put writes content at path and returns the new version tag.
	// expectedVersion "" means "create"; it fails with [ErrConflict] if the
	// document exists. A non-empty expectedVersion fails with [ErrConflict]
	// when it no longer matches.
	Put(ctx context.Context, path string, content []byte, expectedVersion string) (string, error)

	// List returns metadata for documents whose path starts with prefix.
	List(ctx context.Context, prefix string) ([]models.DocumentInfo, error)
}
