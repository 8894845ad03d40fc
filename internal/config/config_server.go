// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"fmt"
	"os"
	"time"
)

// Server defaults applied when no source sets a value.
const (
	DefaultTokenIssuer       = "go-draft-sync"
	DefaultTokenDuration     = 24 * time.Hour
	DefaultServerTimeout     = 30 * time.Second
	DefaultMaxDocumentSize   = 1 << 20
	DefaultServerHTTPAddress = "localhost:8080"
)

// ServerConfig is the server view of [StructuredConfig].
type ServerConfig struct {
	App    App
	Server Server
	DB     DB

	// IssueTokenFor is non-empty when the process only prints a token.
	IssueTokenFor string
}

// GetServerConfig loads, merges, and validates the server configuration from
// all available sources in the following priority order (last source wins for
// non-zero fields):
//  1. Environment variables
//  2. Command-line flags (os.Args)
//  3. JSON file (path resolved from sources 1 and 2)
func GetServerConfig() (*ServerConfig, error) {
	flags, err := ParseServerFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg, err := newConfigBuilder().
		withEnv().
		withConfig(flags).
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := newServerConfig(cfg)
	return serverCfg, serverCfg.validate()
}

func newServerConfig(cfg *StructuredConfig) *ServerConfig {
	serverCfg := &ServerConfig{
		App:           cfg.App,
		Server:        cfg.Server,
		DB:            cfg.Storage.DB,
		IssueTokenFor: cfg.IssueTokenFor,
	}

	if serverCfg.App.TokenIssuer == "" {
		serverCfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if serverCfg.App.TokenDuration == 0 {
		serverCfg.App.TokenDuration = DefaultTokenDuration
	}
	if serverCfg.App.MaxDocumentSize == 0 {
		serverCfg.App.MaxDocumentSize = DefaultMaxDocumentSize
	}
	if serverCfg.Server.RequestTimeout == 0 {
		serverCfg.Server.RequestTimeout = DefaultServerTimeout
	}
	if serverCfg.Server.HTTPAddress == "" && serverCfg.Server.GRPCAddress == "" {
		serverCfg.Server.HTTPAddress = DefaultServerHTTPAddress
	}

	return serverCfg
}
