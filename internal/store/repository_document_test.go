// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-draft-sync/internal/logger"
	"github.com/MKhiriev/go-draft-sync/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T, d dialect) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return newDB(conn, d, logger.Nop()), mock
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

// ── GetDocument ──────────────────────────────────────────────────────────────

func TestGetDocument_Success(t *testing.T) {
	db, mock := newTestDB(t, dialectPostgres)
	repo := NewDocumentRepository(db, logger.Nop())
	now := time.Now().Truncate(time.Millisecond)

	mock.ExpectQuery(`SELECT path, content, version, revision, created_at, updated_at FROM documents WHERE`).
		WithArgs("alice", "forms/a.json").
		WillReturnRows(sqlmock.NewRows(documentColumns).
			AddRow("forms/a.json", []byte(`{"fields":{}}`), "3-abc", int64(3), now, now))

	doc, err := repo.GetDocument(testContext(), "alice", "forms/a.json")

	require.NoError(t, err)
	assert.Equal(t, "alice", doc.Owner)
	assert.Equal(t, "forms/a.json", doc.Path)
	assert.Equal(t, "3-abc", doc.Version)
	assert.Equal(t, int64(3), doc.Revision)
	require.NotNil(t, doc.UpdatedAt)
	assert.True(t, now.Equal(*doc.UpdatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetDocument_NotFound(t *testing.T) {
	db, mock := newTestDB(t, dialectPostgres)
	repo := NewDocumentRepository(db, logger.Nop())

	mock.ExpectQuery(`SELECT .* FROM documents`).
		WithArgs("alice", "missing.json").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetDocument(testContext(), "alice", "missing.json")

	assert.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestGetDocument_RetryableError(t *testing.T) {
	db, mock := newTestDB(t, dialectPostgres)
	repo := NewDocumentRepository(db, logger.Nop())

	mock.ExpectQuery(`SELECT .* FROM documents`).
		WillReturnError(pgError(pgerrcode.SerializationFailure))

	_, err := repo.GetDocument(testContext(), "alice", "a.json")

	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestGetDocument_NonRetryableError(t *testing.T) {
	db, mock := newTestDB(t, dialectPostgres)
	repo := NewDocumentRepository(db, logger.Nop())

	mock.ExpectQuery(`SELECT .* FROM documents`).
		WillReturnError(pgError(pgerrcode.UndefinedTable))

	_, err := repo.GetDocument(testContext(), "alice", "a.json")

	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NotErrorIs(t, err, ErrStorageUnavailable)
}

// ── CreateDocument ───────────────────────────────────────────────────────────

func TestCreateDocument_Success(t *testing.T) {
	db, mock := newTestDB(t, dialectPostgres)
	repo := NewDocumentRepository(db, logger.Nop())
	now := time.Now().Truncate(time.Millisecond)
	content := []byte(`{"fields":{"email":"a@b.com"}}`)

	mock.ExpectQuery(`INSERT INTO documents`).
		WithArgs("alice", "forms/a.json", content, "1-aa", int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	doc, err := repo.CreateDocument(testContext(), "alice", models.Document{
		Path: "forms/a.json", Content: content, Version: "1-aa", Revision: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", doc.Owner)
	assert.Equal(t, "1-aa", doc.Version)
	require.NotNil(t, doc.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDocument_UniqueViolationIsConflict(t *testing.T) {
	db, mock := newTestDB(t, dialectPostgres)
	repo := NewDocumentRepository(db, logger.Nop())

	mock.ExpectQuery(`INSERT INTO documents`).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateDocument(testContext(), "alice", models.Document{Path: "a.json", Version: "1-aa", Revision: 1})

	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestCreateDocument_UnexpectedError(t *testing.T) {
	db, mock := newTestDB(t, dialectPostgres)
	repo := NewDocumentRepository(db, logger.Nop())

	mock.ExpectQuery(`INSERT INTO documents`).
		WillReturnError(errors.New("boom"))

	_, err := repo.CreateDocument(testContext(), "alice", models.Document{Path: "a.json"})

	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NotErrorIs(t, err, ErrVersionConflict)
}

// ── UpdateDocument ───────────────────────────────────────────────────────────

func TestUpdateDocument_Success(t *testing.T) {
	db, mock := newTestDB(t, dialectPostgres)
	repo := NewDocumentRepository(db, logger.Nop())
	now := time.Now().Truncate(time.Millisecond)
	content := []byte(`{}`)

	mock.ExpectQuery(`UPDATE documents SET content = \$1, version = \$2, revision = \$3, updated_at = NOW\(\) WHERE`).
		WithArgs(content, "2-bb", int64(2), "alice", "a.json", "1-aa").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	doc, err := repo.UpdateDocument(testContext(), "alice", models.Document{
		Path: "a.json", Content: content, Version: "2-bb", Revision: 2,
	}, "1-aa")

	require.NoError(t, err)
	assert.Equal(t, "2-bb", doc.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateDocument_StaleVersionIsConflict(t *testing.T) {
	db, mock := newTestDB(t, dialectPostgres)
	repo := NewDocumentRepository(db, logger.Nop())

	mock.ExpectQuery(`UPDATE documents`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}))

	_, err := repo.UpdateDocument(testContext(), "alice", models.Document{Path: "a.json", Version: "2-bb", Revision: 2}, "1-old")

	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestUpdateDocument_ConnectionLost(t *testing.T) {
	db, mock := newTestDB(t, dialectPostgres)
	repo := NewDocumentRepository(db, logger.Nop())

	mock.ExpectQuery(`UPDATE documents`).
		WillReturnError(pgError(pgerrcode.ConnectionFailure))

	_, err := repo.UpdateDocument(testContext(), "alice", models.Document{Path: "a.json"}, "1-aa")

	assert.ErrorIs(t, err, ErrStorageUnavailable)
}

// ── ListDocuments ────────────────────────────────────────────────────────────

func TestListDocuments(t *testing.T) {
	now := time.Now().Truncate(time.Millisecond)

	tests := []struct {
		name    string
		prefix  string
		args    []driver.Value
		rows    *sqlmock.Rows
		qErr    error
		wantLen int
		wantErr error
	}{
		{
			name: "all",
			args: []driver.Value{"alice"},
			rows: sqlmock.NewRows([]string{"path", "version", "size", "updated_at"}).
				AddRow("a.json", "1-aa", int64(10), now).
				AddRow("b/c.json", "4-dd", int64(20), now),
			wantLen: 2,
		},
		{
			name:    "prefix escapes wildcards",
			prefix:  "forms_%",
			args:    []driver.Value{"alice", `forms\_\%%`},
			rows:    sqlmock.NewRows([]string{"path", "version", "size", "updated_at"}),
			wantLen: 0,
		},
		{
			name:    "query error",
			args:    []driver.Value{"alice"},
			qErr:    errors.New("boom"),
			wantErr: ErrExecutingQuery,
		},
		{
			name: "scan error",
			args: []driver.Value{"alice"},
			rows: sqlmock.NewRows([]string{"path", "version", "size", "updated_at"}).
				AddRow("a.json", "1-aa", "not-a-number", now),
			wantErr: ErrScanningRow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newTestDB(t, dialectPostgres)
			repo := NewDocumentRepository(db, logger.Nop())

			exp := mock.ExpectQuery(`SELECT path, version, octet_length\(content\), updated_at FROM documents`).WithArgs(tt.args...)
			if tt.qErr != nil {
				exp.WillReturnError(tt.qErr)
			} else {
				exp.WillReturnRows(tt.rows)
			}

			infos, err := repo.ListDocuments(testContext(), "alice", tt.prefix)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, infos, tt.wantLen)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// ── classifier ───────────────────────────────────────────────────────────────

func TestPostgresErrorClassifier(t *testing.T) {
	c := NewPostgresErrorClassifier()

	assert.Equal(t, NonRetryable, c.Classify(nil))
	assert.Equal(t, NonRetryable, c.Classify(errors.New("plain")))
	assert.Equal(t, Retryable, c.Classify(pgError(pgerrcode.DeadlockDetected)))
	assert.Equal(t, Retryable, c.Classify(pgError(pgerrcode.CannotConnectNow)))
	assert.Equal(t, Retryable, c.Classify(pgError(pgerrcode.TooManyConnections)))
	assert.Equal(t, NonRetryable, c.Classify(pgError(pgerrcode.UniqueViolation)))
	assert.Equal(t, NonRetryable, c.Classify(pgError(pgerrcode.SyntaxError)))
}
