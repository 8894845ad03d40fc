// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

const (
	documentsTable  = "documents"
	heldDraftsTable = "held_drafts"
)

var documentColumns = []string{"path", "content", "version", "revision", "created_at", "updated_at"}

var heldDraftColumns = []string{"id", "path", "base_version", "content", "partial", "reason", "held_at", "stale", "location"}

func ownerPath(owner, path string) sq.And {
	return sq.And{sq.Eq{"owner": owner}, sq.Eq{"path": path}}
}

func buildGetDocumentQuery(b sq.StatementBuilderType, owner, path string) (string, []any, error) {
	return b.Select(documentColumns...).
		From(documentsTable).
		Where(ownerPath(owner, path)).
		ToSql()
}

func buildCreateDocumentQuery(b sq.StatementBuilderType, owner, path string, content []byte, version string, revision int64) (string, []any, error) {
	return b.Insert(documentsTable).
		Columns("owner", "path", "content", "version", "revision").
		Values(owner, path, content, version, revision).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
}

func buildUpdateDocumentQuery(b sq.StatementBuilderType, owner, path string, content []byte, version string, revision int64, expected string) (string, []any, error) {
	return b.Update(documentsTable).
		Set("content", content).
		Set("version", version).
		Set("revision", revision).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.And{ownerPath(owner, path), sq.Eq{"version": expected}}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
}

func buildListDocumentsQuery(b sq.StatementBuilderType, owner, prefix string) (string, []any, error) {
	q := b.Select("path", "version", "octet_length(content)", "updated_at").
		From(documentsTable).
		Where(sq.Eq{"owner": owner})

	if prefix != "" {
		q = q.Where(sq.Like{"path": escapeLike(prefix) + "%"})
	}

	return q.OrderBy("path").ToSql()
}

// escapeLike escapes LIKE wildcards; backslash is the default escape in
// PostgreSQL.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func buildHoldQuery(b sq.StatementBuilderType, id, path, base string, content []byte, partial bool, reason string, heldAt int64, location string) (string, []any, error) {
	return b.Insert(heldDraftsTable).
		Columns("id", "path", "base_version", "content", "partial", "reason", "held_at", "location").
		Values(id, path, base, content, partial, reason, heldAt, location).
		ToSql()
}

func buildListHeldQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(heldDraftColumns...).
		From(heldDraftsTable).
		OrderBy("held_at", "id").
		ToSql()
}

func buildGetHeldQuery(b sq.StatementBuilderType, id string) (string, []any, error) {
	return b.Select(heldDraftColumns...).
		From(heldDraftsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func buildDeleteHeldQuery(b sq.StatementBuilderType, id string) (string, []any, error) {
	return b.Delete(heldDraftsTable).Where(sq.Eq{"id": id}).ToSql()
}

func buildMarkStaleQuery(b sq.StatementBuilderType, ids []string) (string, []any, error) {
	return b.Update(heldDraftsTable).
		Set("stale", true).
		Where(sq.Eq{"id": ids}).
		ToSql()
}
