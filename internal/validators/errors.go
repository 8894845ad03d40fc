// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyPath        = errors.New("document path is required")
	ErrAbsolutePath     = errors.New("document path must be relative")
	ErrPathTraversal    = errors.New("document path must not contain '..'")
	ErrUncleanPath      = errors.New("document path must be clean")
	ErrPathTooDeep      = errors.New("document path is too deep")
	ErrPathTooLong      = errors.New("document path is too long")
	ErrInvalidPathChars = errors.New("document path contains invalid characters")
	ErrEmptyContent     = errors.New("document content is required")
	ErrContentTooLarge  = errors.New("document content is too large")
	ErrInvalidVersion   = errors.New("invalid document version")
)
