// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the terminal draft editor. Every edit is forwarded to a
// draft buffer; the status line shows each outcome the buffer reports.
package tui

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-draft-sync/internal/logger"
	"github.com/MKhiriev/go-draft-sync/internal/source"
	"github.com/MKhiriev/go-draft-sync/internal/syncbuffer"
	"github.com/MKhiriev/go-draft-sync/models"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// Buffer is the draft buffer the editor drives.
type Buffer interface {
	source.Sink
	Clear()
}

// Options configures the editor.
type Options struct {
	// Fields are the editor field keys, in display order.
	Fields []string
	// Path is the remote draft path, shown in the header.
	Path string
	// Events delivers buffer outcomes to the status line. Optional.
	Events <-chan syncbuffer.Event
	// Replays tells the status line that held drafts are replayed
	// automatically.
	Replays bool
	// BuildInfo is shown by the about overlay.
	BuildInfo models.AppBuildInfo
}

type TUI struct {
	buffer Buffer
	opts   Options

	// readClipboard is clipboard.ReadAll outside tests.
	readClipboard func() (string, error)

	logger *logger.Logger
}

func New(buffer Buffer, opts Options, log *logger.Logger) (*TUI, error) {
	if buffer == nil {
		return nil, ErrNilBuffer
	}
	if len(opts.Fields) == 0 {
		return nil, ErrNoFields
	}

	return &TUI{
		buffer:        buffer,
		opts:          opts,
		readClipboard: clipboard.ReadAll,
		logger:        log,
	}, nil
}

// Run shows the editor until the user quits or ctx is cancelled. Flushing on
// exit is left to the caller.
func (t *TUI) Run(ctx context.Context) error {
	model := newEditorModel(ctx, t.buffer, t.opts, t.readClipboard)

	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("editor: %w", err)
	}

	t.logger.Debug().Str("path", t.opts.Path).Msg("editor closed")
	return nil
}
