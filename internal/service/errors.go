// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrVersionIsNotSpecified   = errors.New("app version is not specified")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrDocumentNotFound   = errors.New("document not found")
	ErrVersionConflict    = errors.New("document version conflict")
	ErrPreconditionNeeded = errors.New("If-Match or If-None-Match is required")
	ErrStorageUnavailable = errors.New("storage unavailable")
)
