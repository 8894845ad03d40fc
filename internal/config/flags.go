// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// NetAddress holds structured network address data for host and port.
// It implements flag.Value and pflag.Value.
type NetAddress struct {
	Host string
	Port int
}

// ParseServerFlags parses the server command line.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-hash-key body integrity hash key
//	-max-document-size maximum accepted document size in bytes
//	-issue-token print a bearer token for the given owner and exit
func ParseServerFlags(fs *flag.FlagSet, args []string) (*StructuredConfig, error) {
	var serverAddress, grpcServerAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var requestTimeout time.Duration
	var hashKey string
	var maxDocumentSize int64
	var issueTokenFor string

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&hashKey, "hash-key", "", "Body integrity hash key")
	fs.Int64Var(&maxDocumentSize, "max-document-size", 0, "Maximum document size in bytes")
	fs.StringVar(&issueTokenFor, "issue-token", "", "Print a bearer token for the owner and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:    tokenSignKey,
			TokenIssuer:     tokenIssuer,
			TokenDuration:   tokenDuration,
			HashKey:         hashKey,
			MaxDocumentSize: maxDocumentSize,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath:  jsonConfigPath,
		IssueTokenFor: issueTokenFor,
	}, nil
}

// BindClientFlags registers the client flags on fs (usually the persistent
// flag set of the root cobra command). The returned config is filled once fs
// has been parsed.
func BindClientFlags(fs *pflag.FlagSet) *StructuredConfig {
	cfg := &StructuredConfig{}

	fs.StringVarP(&cfg.Adapter.HTTPAddress, "address", "a", "", "Document server base URL or host:port")
	fs.DurationVar(&cfg.Adapter.RequestTimeout, "request-timeout", 0, "Remote request timeout (e.g., 5s)")
	fs.StringVar(&cfg.Adapter.Token, "token", "", "Bearer token for the document server")
	fs.StringVar(&cfg.App.HashKey, "hash-key", "", "Body integrity hash key")
	fs.StringVarP(&cfg.Draft.Path, "path", "p", "", "Remote draft document path")
	fs.StringVar(&cfg.Draft.Origin, "origin", "", "Origin recorded in every draft")
	fs.StringSliceVar(&cfg.Draft.Fields, "fields", nil, "Editor fields (comma separated)")
	fs.DurationVar(&cfg.Draft.Debounce, "debounce", 0, "Quiet period before a flush (e.g., 3s)")
	fs.DurationVar(&cfg.Draft.CheckInterval, "check-interval", 0, "Safety-net flush period (e.g., 10s)")
	fs.DurationVar(&cfg.Draft.ShutdownTimeout, "shutdown-timeout", 0, "Final flush bound on exit (e.g., 2s)")
	fs.StringVarP(&cfg.Storage.DB.DSN, "spool", "d", "", "SQLite spool database file")
	fs.StringVar(&cfg.Storage.Files.FallbackDir, "fallback-dir", "", "Directory for draft backup files")
	fs.DurationVar(&cfg.Workers.ReplayInterval, "replay-interval", 0, "Spool replay period (e.g., 30s)")
	fs.StringVar(&cfg.Log.File, "log-file", "", "Client log file")
	fs.StringVarP(&cfg.JSONFilePath, "config", "c", "", "JSON config file path")

	return cfg
}

// String returns a canonical host:port string for a NetAddress.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Type names the value kind for pflag help output.
func (a *NetAddress) Type() string {
	return "host:port"
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost"
// or empty, and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
