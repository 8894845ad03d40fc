// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrDocumentNotFound is returned when the owner has no document at the
	// requested path.
	ErrDocumentNotFound = errors.New("document was not found")

	// ErrVersionConflict is returned when an optimistic-locking check fails:
	// the document already exists on create, or its stored version differs
	// from the expected one on update.
	ErrVersionConflict = errors.New("document version conflict occurred")

	// ErrSpoolEntryNotFound is returned when no held draft has the given id.
	ErrSpoolEntryNotFound = errors.New("held draft was not found")

	// ErrStorageUnavailable wraps driver errors classified as retryable
	// (connection loss, serialization failure, deadlock).
	ErrStorageUnavailable = errors.New("storage temporarily unavailable")
)

// Low-level database operation errors.
var (
	ErrBuildingSQLQuery   = errors.New("error building sql query")
	ErrExecutingQuery     = errors.New("error executing sql query")
	ErrExecutingStatement = errors.New("failed to executing statement")
	ErrScanningRow        = errors.New("failed to scan row")
	ErrScanningRows       = errors.New("failed to scan rows")
	ErrWritingFile        = errors.New("failed to write draft file")
)
