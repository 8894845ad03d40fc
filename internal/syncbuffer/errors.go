// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package syncbuffer

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-draft-sync/internal/adapter"
)

// ErrorKind classifies persist failures.
type ErrorKind int

const (
	// KindValidation marks input rejected locally or by the store.
	KindValidation ErrorKind = iota + 1
	// KindRemoteUnavailable covers network failures, timeouts and 5xx answers.
	KindRemoteUnavailable
	// KindConflict is a version tag mismatch on write.
	KindConflict
	// KindConfigMissing means the store is not configured or rejected the
	// credentials.
	KindConfigMissing
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindRemoteUnavailable:
		return "remote_unavailable"
	case KindConflict:
		return "conflict"
	case KindConfigMissing:
		return "config_missing"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

var (
	ErrValidation        = errors.New("invalid field")
	ErrRemoteUnavailable = errors.New("remote store unavailable")
	ErrConflict          = errors.New("remote version conflict")
	ErrConfigMissing     = errors.New("remote store not configured")
)

// Error is the typed failure returned by persist operations.
type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the package sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrRemoteUnavailable:
		return e.Kind == KindRemoteUnavailable
	case ErrConflict:
		return e.Kind == KindConflict
	case ErrConfigMissing:
		return e.Kind == KindConfigMissing
	}
	return false
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// classify turns a store error into an *Error.
func classify(op string, err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	kind := KindRemoteUnavailable
	switch {
	case errors.Is(err, adapter.ErrConflict):
		kind = KindConflict
	case errors.Is(err, adapter.ErrBadRequest):
		kind = KindValidation
	case errors.Is(err, adapter.ErrUnauthorized),
		errors.Is(err, adapter.ErrForbidden),
		errors.Is(err, adapter.ErrNotConfigured):
		kind = KindConfigMissing
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		kind = KindRemoteUnavailable
	}

	return &Error{Kind: kind, Op: op, Err: err}
}

// retryable reports whether a fresh read-write cycle may succeed.
func retryable(err error) bool {
	switch KindOf(err) {
	case KindConflict, KindRemoteUnavailable:
		return true
	}
	return false
}
