// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"path"
	"strings"
)

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.SpoolDSN == "" || strings.Contains(cfg.Storage.SpoolDSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Draft.Path != "" {
		if err := cfg.ValidateDraft(); err != nil {
			return err
		}
	}

	if cfg.Draft.Debounce < 0 || cfg.Draft.CheckInterval < 0 || cfg.Draft.ShutdownTimeout < 0 {
		return ErrInvalidDraftConfigs
	}

	if cfg.Adapter.RequestTimeout < 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.ReplayInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

// ValidateDraft checks the draft path. The spool commands run without one;
// edit and watch call this before building a buffer.
func (cfg *ClientConfig) ValidateDraft() error {
	p := strings.TrimSpace(cfg.Draft.Path)
	if p == "" || strings.HasPrefix(p, "/") || path.Clean(p) != p || strings.HasPrefix(p, "..") {
		return ErrInvalidDraftConfigs
	}
	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.DB.DSN == "" && cfg.IssueTokenFor == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.App.TokenDuration < 0 || cfg.App.MaxDocumentSize < 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Server.RequestTimeout < 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}
