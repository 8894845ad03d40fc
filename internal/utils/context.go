// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helpers shared by the client and the
// server: typed context keys, HMAC hashing, document version tags, JSON
// response writing, the resty HTTP client, JWT helpers and id generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// OwnerCtxKey stores the authenticated document owner (the token subject).
var OwnerCtxKey = contextKey("owner")

// TraceIDCtxKey stores the request trace id.
var TraceIDCtxKey = contextKey("traceID")

// WithOwner returns a copy of ctx carrying owner.
func WithOwner(ctx context.Context, owner string) context.Context {
	return context.WithValue(ctx, OwnerCtxKey, owner)
}

// GetOwnerFromContext retrieves the document owner from the context.
// ok is false when the value is missing, empty or of an unexpected type.
func GetOwnerFromContext(ctx context.Context) (string, bool) {
	owner, ok := ctx.Value(OwnerCtxKey).(string)
	return owner, ok && owner != ""
}

// WithTraceID returns a copy of ctx carrying traceID.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDCtxKey, traceID)
}

// GetTraceIDFromContext returns the trace id stored in ctx, or "".
func GetTraceIDFromContext(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDCtxKey).(string)
	return traceID
}
