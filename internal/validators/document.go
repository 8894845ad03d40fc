// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"path"
	"strings"
	"unicode"

	"github.com/MKhiriev/go-draft-sync/internal/utils"
	"github.com/MKhiriev/go-draft-sync/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldPath targets the logical document path (folder plus file name).
	FieldPath = "path"

	// FieldContent targets the document body and its size limit.
	FieldContent = "content"

	// FieldVersion targets the version tag the client expects to replace.
	FieldVersion = "version"
)

const (
	MaxPathDepth  = 16
	MaxPathLength = 1024
)

// DocumentValidator checks documents before they reach the repository.
type DocumentValidator struct {
	maxSize int64
}

// NewDocumentValidator returns a validator limiting content to maxSize bytes.
// maxSize <= 0 disables the size check.
func NewDocumentValidator(maxSize int64) Validator {
	return &DocumentValidator{maxSize: maxSize}
}

// Validate checks a models.Document. With no fields every rule applies except
// FieldVersion, which is only checked on request.
func (v *DocumentValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Document:
		return v.validateDocument(ctx, value, fields...)
	case *models.Document:
		return v.validateDocument(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *DocumentValidator) validateDocument(_ context.Context, doc models.Document, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldPath, FieldContent}
	}

	for _, field := range fields {
		switch field {
		case FieldPath:
			if err := ValidatePath(doc.Path); err != nil {
				return err
			}
		case FieldContent:
			if len(doc.Content) == 0 {
				return ErrEmptyContent
			}
			if v.maxSize > 0 && int64(len(doc.Content)) > v.maxSize {
				return fmt.Errorf("%w: %d > %d bytes", ErrContentTooLarge, len(doc.Content), v.maxSize)
			}
		case FieldVersion:
			if _, err := utils.ParseVersionTag(doc.Version); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidVersion, err)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}

// ValidatePath accepts clean relative slash-separated paths such as
// "forms/contact/draft.json".
func ValidatePath(p string) error {
	switch {
	case strings.TrimSpace(p) == "":
		return ErrEmptyPath
	case len(p) > MaxPathLength:
		return ErrPathTooLong
	case strings.HasPrefix(p, "/"):
		return ErrAbsolutePath
	case strings.IndexFunc(p, invalidPathRune) >= 0:
		return ErrInvalidPathChars
	}

	segments := strings.Split(p, "/")
	for _, s := range segments {
		if s == ".." {
			return ErrPathTraversal
		}
	}
	if path.Clean(p) != p || p == "." {
		return ErrUncleanPath
	}
	if len(segments) > MaxPathDepth {
		return ErrPathTooDeep
	}

	return nil
}

// NormalizePrefix validates a listing prefix. An empty prefix lists
// everything; a trailing slash is kept.
func NormalizePrefix(prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", nil
	}

	if err := ValidatePath(strings.TrimSuffix(prefix, "/")); err != nil {
		return "", err
	}

	return prefix, nil
}

func invalidPathRune(r rune) bool {
	return r == '\\' || unicode.IsControl(r)
}
