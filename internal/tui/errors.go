// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	"github.com/MKhiriev/go-draft-sync/internal/syncbuffer"
)

var (
	ErrNilBuffer = errors.New("draft buffer is nil")
	ErrNoFields  = errors.New("no editor fields configured")
)

// humanizeError turns a buffer error into a status line message.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch syncbuffer.KindOf(err) {
	case syncbuffer.KindConfigMissing:
		return "remote store not configured or credentials rejected: " + err.Error()
	case syncbuffer.KindConflict:
		return "draft changed elsewhere: " + err.Error()
	case syncbuffer.KindRemoteUnavailable:
		return "remote store unavailable: " + err.Error()
	case syncbuffer.KindValidation:
		return "draft rejected: " + err.Error()
	default:
		return err.Error()
	}
}
