// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the enabled transports of the document server and shuts
// them down together when the run context ends or one of them fails.
package server
