// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the lifecycle of the document server.
type Server interface {
	// RunServer serves until ctx is done or a transport fails, then shuts
	// every transport down. A clean stop returns nil.
	RunServer(ctx context.Context) error
}

// transport is one listening server managed by [Server].
type transport interface {
	Name() string

	// Serve blocks until the transport is shut down. Shutdown is not an error.
	Serve() error

	Shutdown(ctx context.Context) error
}
