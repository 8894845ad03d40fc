// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors produced by the transport itself. Callers can match against
// them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// request carries no "Authorization" header.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the header is not of the
	// form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the bearer scheme is present but the token
	// is empty.
	ErrEmptyToken = errors.New("empty token in `Authorization` header")

	ErrMissingOwner         = errors.New("request is not scoped to an owner")
	ErrInvalidJSON          = errors.New("invalid JSON was passed")
	ErrBodyTooLarge         = errors.New("request body is too large")
	ErrIntegrityCheck       = errors.New("integrity check failed")
	ErrInvalidDocumentPath  = errors.New("invalid document path")
	ErrAmbiguousCondition   = errors.New("If-Match and If-None-Match are mutually exclusive")
	ErrUnsupportedCondition = errors.New("only `If-None-Match: *` is supported")
)
