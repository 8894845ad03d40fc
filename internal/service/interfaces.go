// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-draft-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// DocumentService implements the versioned document store semantics on top of
// the repository.
type DocumentService interface {
	Get(ctx context.Context, owner, path string) (models.Document, error)

	// Put writes content. create requests create-if-absent; otherwise ifMatch
	// must carry the version tag being replaced. The returned document holds
	// the new version.
	Put(ctx context.Context, owner, path string, content []byte, ifMatch string, create bool) (models.Document, error)

	List(ctx context.Context, owner, prefix string) ([]models.DocumentInfo, error)
}

// AuthService issues and checks the bearer tokens that scope documents to an
// owner.
type AuthService interface {
	IssueToken(ctx context.Context, owner string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
