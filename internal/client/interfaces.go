// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Frontend is the foreground input of a client session. Run blocks until the
// user is done or ctx is cancelled.
type Frontend interface {
	Run(ctx context.Context) error
}

// FrontendFunc adapts a function to [Frontend].
type FrontendFunc func(ctx context.Context) error

func (f FrontendFunc) Run(ctx context.Context) error {
	return f(ctx)
}
