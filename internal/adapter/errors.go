// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

// Sentinel errors returned (wrapped) by [HTTPDocumentStore]. Callers match
// them with errors.Is.
var (
	ErrBadRequest        = errors.New("bad request")
	ErrUnauthorized      = errors.New("client unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("document not found")
	ErrConflict          = errors.New("version conflict")
	ErrRemoteUnavailable = errors.New("remote store unavailable")
	ErrNotConfigured     = errors.New("remote store address is not configured")
)
