// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/go-draft-sync/internal/utils"
	"github.com/MKhiriev/go-draft-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want error
	}{
		{"simple", "draft.json", nil},
		{"nested", "forms/contact/draft.json", nil},
		{"dots in name", "a/v1.2/draft..json", nil},
		{"empty", "", ErrEmptyPath},
		{"blank", "   ", ErrEmptyPath},
		{"absolute", "/etc/passwd", ErrAbsolutePath},
		{"traversal", "forms/../secret.json", ErrPathTraversal},
		{"leading traversal", "../x", ErrPathTraversal},
		{"double slash", "forms//a.json", ErrUncleanPath},
		{"dot segment", "./a.json", ErrUncleanPath},
		{"trailing slash", "forms/", ErrUncleanPath},
		{"dot", ".", ErrUncleanPath},
		{"backslash", `forms\a.json`, ErrInvalidPathChars},
		{"control", "forms/a\x00.json", ErrInvalidPathChars},
		{"too deep", strings.Repeat("a/", MaxPathDepth) + "x.json", ErrPathTooDeep},
		{"too long", strings.Repeat("a", MaxPathLength+1), ErrPathTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNormalizePrefix(t *testing.T) {
	p, err := NormalizePrefix("  ")
	require.NoError(t, err)
	assert.Empty(t, p)

	p, err = NormalizePrefix("forms/")
	require.NoError(t, err)
	assert.Equal(t, "forms/", p)

	_, err = NormalizePrefix("../")
	assert.ErrorIs(t, err, ErrPathTraversal)
}

func TestDocumentValidator_Validate(t *testing.T) {
	v := NewDocumentValidator(8)
	ctx := context.Background()

	valid := models.Document{Path: "a.json", Content: []byte("{}"), Version: utils.VersionTag(1, []byte("{}"))}

	assert.NoError(t, v.Validate(ctx, valid))
	assert.NoError(t, v.Validate(ctx, &valid, FieldPath, FieldVersion))

	tooBig := valid
	tooBig.Content = []byte("123456789")
	assert.ErrorIs(t, v.Validate(ctx, tooBig), ErrContentTooLarge)

	empty := valid
	empty.Content = nil
	assert.ErrorIs(t, v.Validate(ctx, empty, FieldContent), ErrEmptyContent)
	assert.NoError(t, v.Validate(ctx, empty, FieldPath))

	badVersion := valid
	badVersion.Version = "abc"
	assert.NoError(t, v.Validate(ctx, badVersion))
	assert.ErrorIs(t, v.Validate(ctx, badVersion, FieldVersion), ErrInvalidVersion)

	assert.ErrorIs(t, v.Validate(ctx, valid, "owner"), ErrUnknownField)
	assert.ErrorIs(t, v.Validate(ctx, "a.json"), ErrUnsupportedType)
}

func TestDocumentValidator_NoSizeLimit(t *testing.T) {
	v := NewDocumentValidator(0)

	err := v.Validate(context.Background(), models.Document{Path: "a.json", Content: make([]byte, 1<<16)})

	assert.NoError(t, err)
}
