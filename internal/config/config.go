// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container shared by the
// draft client and the document server. It is populated by merging values
// from environment variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token, integrity and versioning settings.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the relational database (PostgreSQL on
	// the server, the SQLite spool on the client) and the fallback directory.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen addresses and timeouts for the HTTP and gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the remote document store endpoint used by the client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Draft holds the sync buffer settings of the client.
	Draft Draft `envPrefix:"DRAFT_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds the client log file settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`

	// IssueTokenFor is set only from the server command line. When non-empty
	// the server prints a bearer token for that owner and exits.
	IssueTokenFor string
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the database connection settings.
	DB DB `envPrefix:"DB_"`

	// Files holds file-system storage settings.
	Files Files `envPrefix:"FILES_"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey is the HS256 secret used to sign and verify bearer tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in and required from every token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long an issued token remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// HashKey is the HMAC key used for the HashSHA256 body integrity header.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// Version is exposed via the /api/version/ endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// MaxDocumentSize caps the accepted document body in bytes.
	// Env: APP_MAX_DOCUMENT_SIZE
	MaxDocumentSize int64 `env:"MAX_DOCUMENT_SIZE"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the "host:port" the HTTP server listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the "host:port" the gRPC health server listens on.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is a PostgreSQL connection string on the server and a SQLite file
	// path on the client.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds file-system settings.
type Files struct {
	// FallbackDir is where the client writes draft backup files when the
	// remote store cannot be reached.
	// Env: STORAGE_FILES_FALLBACK_DIR
	FallbackDir string `env:"FALLBACK_DIR"`
}

// Adapter holds the remote document store endpoint used by the client.
type Adapter struct {
	// HTTPAddress is the base URL or "host:port" of the document server.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Token is the bearer credential sent with every request.
	// Env: ADAPTER_TOKEN
	Token string `env:"TOKEN"`
}

// Draft holds the sync buffer settings.
type Draft struct {
	// Path is the remote document path (folder plus fixed file name).
	// Env: DRAFT_PATH
	Path string `env:"PATH"`

	// Origin is recorded in every persisted draft.
	// Env: DRAFT_ORIGIN
	Origin string `env:"ORIGIN"`

	// Fields lists the form fields offered by the terminal editor.
	// Env: DRAFT_FIELDS (comma separated)
	Fields []string `env:"FIELDS" envSeparator:","`

	// Debounce is the quiet period after the last edit before a flush.
	// Env: DRAFT_DEBOUNCE
	Debounce time.Duration `env:"DEBOUNCE"`

	// CheckInterval is the period of the safety-net flush.
	// Env: DRAFT_CHECK_INTERVAL
	CheckInterval time.Duration `env:"CHECK_INTERVAL"`

	// ShutdownTimeout bounds the final flush on exit.
	// Env: DRAFT_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// ReplayInterval is how often spooled drafts are replayed.
	// Env: WORKERS_REPLAY_INTERVAL
	ReplayInterval time.Duration `env:"REPLAY_INTERVAL"`
}

// Log holds the client log file settings.
type Log struct {
	// File is the rotating log file path.
	// Env: LOG_FILE
	File string `env:"FILE"`
}
