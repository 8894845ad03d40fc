// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// notAvailable replaces build fields the linker did not set.
const notAvailable = "N/A"

// AppBuildInfo is the version, date and commit injected with -ldflags. The
// server reports the version on /api/version/; the client shows all three.
type AppBuildInfo struct {
	version string
	date    string
	commit  string
}

// NewAppBuildInfo stores the build fields, replacing empty ones with "N/A".
func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{
		version: orNotAvailable(version),
		date:    orNotAvailable(date),
		commit:  orNotAvailable(commit),
	}
}

func (a AppBuildInfo) BuildVersion() string {
	return a.version
}

func (a AppBuildInfo) BuildDate() string {
	return a.date
}

func (a AppBuildInfo) BuildCommit() string {
	return a.commit
}

// Known reports whether the linker set a version.
func (a AppBuildInfo) Known() bool {
	return a.version != "" && a.version != notAvailable
}

// String renders "version (commit, date)".
func (a AppBuildInfo) String() string {
	return fmt.Sprintf("%s (%s, %s)", a.version, a.commit, a.date)
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
