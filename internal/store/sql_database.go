// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-draft-sync/internal/logger"
	"github.com/MKhiriev/go-draft-sync/migrations"
	sq "github.com/Masterminds/squirrel"
)

type dialect int

const (
	dialectPostgres dialect = iota
	dialectSQLite
)

// DB wraps a *sql.DB with the dialect-specific query builder, migrations and
// error classification.
type DB struct {
	*sql.DB
	dialect            dialect
	builder            sq.StatementBuilderType
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// ErrorClassificator decides whether a failed database operation may succeed
// if attempted again.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

func newDB(conn *sql.DB, d dialect, log *logger.Logger) *DB {
	db := &DB{DB: conn, dialect: d, logger: log}

	switch d {
	case dialectPostgres:
		db.builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
		db.errorClassificator = NewPostgresErrorClassifier()
	default:
		db.builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)
	}

	return db
}

// Migrate applies the embedded schema for the connection's dialect.
func (db *DB) Migrate() error {
	if db.dialect == dialectPostgres {
		return migrations.MigratePostgres(db.DB)
	}
	return migrations.MigrateSQLite(db.DB)
}

// queryError wraps a driver error with base, adding ErrStorageUnavailable
// when the classifier marks it retryable.
func (db *DB) queryError(base, err error) error {
	if db.errorClassificator != nil && db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w: %w", ErrStorageUnavailable, base, err)
	}
	return fmt.Errorf("%w: %w", base, err)
}
