// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package source

import "errors"

var (
	ErrNilSink          = errors.New("draft sink is nil")
	ErrEmptyDraftPath   = errors.New("draft file path is empty")
	ErrInvalidDraftFile = errors.New("draft file is not a YAML mapping")
)
