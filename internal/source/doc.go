// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package source turns user edits into calls on a draft [Sink]. Besides the
// terminal editor, a YAML draft file watched with fsnotify is such a source.
package source
