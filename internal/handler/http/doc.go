// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST transport of the document server.
//
// Routes live under /api/documents/ and are scoped to the owner carried by the
// bearer token. Request tracing, access logging, gzip and the HashSHA256 body
// check are applied as middleware before a request reaches the service layer.
package http
