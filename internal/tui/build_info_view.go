// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-draft-sync/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo, path string) string {
	var b strings.Builder

	b.WriteString("Application: go-draft-sync\n")
	b.WriteString("Version: " + valueOrNA(info.BuildVersion()) + "\n")
	b.WriteString("Date: " + valueOrNA(info.BuildDate()) + "\n")
	b.WriteString("Commit: " + valueOrNA(info.BuildCommit()) + "\n")
	b.WriteString("Draft: " + valueOrNA(path))

	return renderPage("ABOUT", overlayBoxStyle.Render(b.String()), helpStyle.Render("esc: back"))
}

func valueOrNA(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "N/A"
	}
	return v
}
