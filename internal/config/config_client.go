// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// Client defaults applied when no source sets a value.
const (
	DefaultDebounce        = 3 * time.Second
	DefaultCheckInterval   = 10 * time.Second
	DefaultRequestTimeout  = 5 * time.Second
	DefaultShutdownTimeout = 2 * time.Second
	DefaultReplayInterval  = 30 * time.Second
	DefaultSpoolDSN        = "draft-spool.db"
	DefaultFallbackDir     = "drafts"
)

// DefaultFields are the editor fields used when DRAFT_FIELDS is empty.
var DefaultFields = []string{"title", "body"}

// ClientApp holds client-side application settings.
type ClientApp struct {
	// HashKey signs outbound bodies when non-empty.
	HashKey string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the document server base URL.
	HTTPAddress string
	// RequestTimeout bounds every outbound request.
	RequestTimeout time.Duration
	// Token is the bearer credential.
	Token string
	// HashKey signs request bodies when non-empty.
	HashKey string
}

// Configured reports whether both the endpoint and credential are present.
func (a ClientAdapter) Configured() bool {
	return a.HTTPAddress != "" && a.Token != ""
}

// ClientDraft holds the sync buffer settings.
type ClientDraft struct {
	Path            string
	Origin          string
	Fields          []string
	Debounce        time.Duration
	CheckInterval   time.Duration
	ShutdownTimeout time.Duration
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// SpoolDSN is the SQLite file holding failed drafts.
	SpoolDSN string
	// FallbackDir receives draft backup files.
	FallbackDir string
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// ReplayInterval defines how often the spool is replayed.
	ReplayInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Draft   ClientDraft
	Storage ClientStorage
	Workers ClientWorkers
	LogFile string
}

// GetClientConfig builds and validates the client view. flags holds the values
// bound by [BindClientFlags] and may be nil.
//
// A missing adapter address or token is not an error: the sync buffer reports
// it as a configuration problem at the first write.
func GetClientConfig(flags *StructuredConfig) (*ClientConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withConfig(flags).
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		App: ClientApp{HashKey: cfg.App.HashKey},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			Token:          cfg.Adapter.Token,
			HashKey:        cfg.App.HashKey,
		},
		Draft: ClientDraft{
			Path:            cfg.Draft.Path,
			Origin:          cfg.Draft.Origin,
			Fields:          cfg.Draft.Fields,
			Debounce:        cfg.Draft.Debounce,
			CheckInterval:   cfg.Draft.CheckInterval,
			ShutdownTimeout: cfg.Draft.ShutdownTimeout,
		},
		Storage: ClientStorage{
			SpoolDSN:    cfg.Storage.DB.DSN,
			FallbackDir: cfg.Storage.Files.FallbackDir,
		},
		Workers: ClientWorkers{ReplayInterval: cfg.Workers.ReplayInterval},
		LogFile: cfg.Log.File,
	}

	if clientCfg.Adapter.RequestTimeout == 0 {
		clientCfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if len(clientCfg.Draft.Fields) == 0 {
		clientCfg.Draft.Fields = DefaultFields
	}
	if clientCfg.Draft.Debounce == 0 {
		clientCfg.Draft.Debounce = DefaultDebounce
	}
	if clientCfg.Draft.CheckInterval == 0 {
		clientCfg.Draft.CheckInterval = DefaultCheckInterval
	}
	if clientCfg.Draft.ShutdownTimeout == 0 {
		clientCfg.Draft.ShutdownTimeout = DefaultShutdownTimeout
	}
	if clientCfg.Storage.SpoolDSN == "" {
		clientCfg.Storage.SpoolDSN = DefaultSpoolDSN
	}
	if clientCfg.Storage.FallbackDir == "" {
		clientCfg.Storage.FallbackDir = DefaultFallbackDir
	}
	if clientCfg.Workers.ReplayInterval == 0 {
		clientCfg.Workers.ReplayInterval = DefaultReplayInterval
	}

	return clientCfg
}
