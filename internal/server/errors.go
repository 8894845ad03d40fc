// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	errNoTransports = errors.New("no http or grpc handler to serve")
	errNilHandlers  = errors.New("handlers are nil")
)
