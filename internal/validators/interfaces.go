// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks documents on the server before they are stored:
// path shape, content size and the presence of a version tag.
package validators

import "context"

// Validator checks obj. fields limits the check to the named rules; with none
// the validator applies its default set.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
