// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the draft client runtime.
//
// It wires the draft buffer to one input (the terminal editor or a watched
// YAML file), runs the periodic flush and spool replay workers, and makes the
// final bounded flush on exit. It also exposes the spool recovery commands.
package client
