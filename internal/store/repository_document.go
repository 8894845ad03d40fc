// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-draft-sync/internal/logger"
	"github.com/MKhiriev/go-draft-sync/models"
	"github.com/jackc/pgerrcode"
)

// documentRepository is the PostgreSQL-backed [DocumentRepository]. Rows are
// keyed by (owner, path); the version column carries the optimistic lock.
type documentRepository struct {
	*DB
	logger *logger.Logger
}

func NewDocumentRepository(db *DB, logger *logger.Logger) DocumentRepository {
	logger.Debug().Msg("creating document repository")
	return &documentRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *documentRepository) GetDocument(ctx context.Context, owner, path string) (models.Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetDocumentQuery(r.builder, owner, path)
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	doc := models.Document{Owner: owner}
	err = r.QueryRowContext(ctx, query, args...).Scan(
		&doc.Path,
		&doc.Content,
		&doc.Version,
		&doc.Revision,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return models.Document{}, ErrDocumentNotFound
	case err != nil:
		log.Err(err).
			Str("func", "documentRepository.GetDocument").
			Str("path", path).
			Msg("failed to get document")
		return models.Document{}, r.queryError(ErrExecutingQuery, err)
	}

	return doc, nil
}

// CreateDocument maps a unique violation on (owner, path) to
// [ErrVersionConflict].
func (r *documentRepository) CreateDocument(ctx context.Context, owner string, doc models.Document) (models.Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateDocumentQuery(r.builder, owner, doc.Path, doc.Content, doc.Version, doc.Revision)
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	doc.Owner = owner
	err = r.QueryRowContext(ctx, query, args...).Scan(&doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			log.Debug().
				Str("func", "documentRepository.CreateDocument").
				Str("path", doc.Path).
				Msg("document already exists")
			return models.Document{}, ErrVersionConflict
		}

		log.Err(err).
			Str("func", "documentRepository.CreateDocument").
			Str("path", doc.Path).
			Msg("failed to create document")
		return models.Document{}, r.queryError(ErrExecutingStatement, err)
	}

	return doc, nil
}

// UpdateDocument reports [ErrVersionConflict] when no row matched, which
// covers both a stale expected version and a document deleted meanwhile.
func (r *documentRepository) UpdateDocument(ctx context.Context, owner string, doc models.Document, expectedVersion string) (models.Document, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateDocumentQuery(r.builder, owner, doc.Path, doc.Content, doc.Version, doc.Revision, expectedVersion)
	if err != nil {
		return models.Document{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	doc.Owner = owner
	err = r.QueryRowContext(ctx, query, args...).Scan(&doc.CreatedAt, &doc.UpdatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		log.Debug().
			Str("func", "documentRepository.UpdateDocument").
			Str("path", doc.Path).
			Str("expected_version", expectedVersion).
			Msg("version mismatch")
		return models.Document{}, ErrVersionConflict
	case err != nil:
		log.Err(err).
			Str("func", "documentRepository.UpdateDocument").
			Str("path", doc.Path).
			Msg("failed to update document")
		return models.Document{}, r.queryError(ErrExecutingStatement, err)
	}

	return doc, nil
}

func (r *documentRepository) ListDocuments(ctx context.Context, owner, prefix string) ([]models.DocumentInfo, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListDocumentsQuery(r.builder, owner, prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "documentRepository.ListDocuments").
			Str("prefix", prefix).
			Msg("failed to list documents")
		return nil, r.queryError(ErrExecutingQuery, err)
	}
	defer rows.Close()

	infos := make([]models.DocumentInfo, 0, 16)
	for rows.Next() {
		var info models.DocumentInfo
		if err = rows.Scan(&info.Path, &info.Version, &info.Size, &info.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		infos = append(infos, info)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return infos, nil
}
