// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// maxReasonWidth truncates long failure texts in the spool listing.
const maxReasonWidth = 48

// SpoolList prints every held draft, oldest first. Draft content is never
// printed; use [App.SpoolExport] for that.
func (a *App) SpoolList(ctx context.Context, w io.Writer) error {
	entries, err := a.services.RecoveryService.List(ctx)
	if err != nil {
		return fmt.Errorf("list spool: %w", err)
	}

	if len(entries) == 0 {
		_, err = fmt.Fprintln(w, "spool is empty")
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "PATH", "HELD AT", "PARTIAL", "STALE", "REASON")
	for _, e := range entries {
		t.Row(
			e.ID,
			e.Path,
			e.HeldAt.Local().Format(time.DateTime),
			strconv.FormatBool(e.Partial),
			strconv.FormatBool(e.Stale),
			truncate(e.Reason, maxReasonWidth),
		)
	}

	_, err = fmt.Fprintln(w, t.Render())
	return err
}

// SpoolExport writes the draft content of entry id to w.
func (a *App) SpoolExport(ctx context.Context, id string, w io.Writer) error {
	if err := a.services.RecoveryService.Export(ctx, id, w); err != nil {
		return fmt.Errorf("export spool entry %s: %w", id, err)
	}
	return nil
}

// SpoolReplay runs one replay pass and prints its counts. Failed entries stay
// queued and the error is returned.
func (a *App) SpoolReplay(ctx context.Context, w io.Writer) error {
	result, err := a.services.RecoveryService.Replay(ctx)

	if _, printErr := fmt.Fprintf(w, "replayed: %d, stale: %d, pending: %d\n",
		result.Replayed, result.Stale, result.Pending); printErr != nil && err == nil {
		err = printErr
	}
	if err != nil {
		return fmt.Errorf("replay spool: %w", err)
	}
	return nil
}

// SpoolDrop removes entry id.
func (a *App) SpoolDrop(ctx context.Context, id string, w io.Writer) error {
	if err := a.services.RecoveryService.Drop(ctx, id); err != nil {
		return fmt.Errorf("drop spool entry %s: %w", id, err)
	}

	_, err := fmt.Fprintf(w, "dropped %s\n", id)
	return err
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
