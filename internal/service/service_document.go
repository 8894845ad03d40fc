// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-draft-sync/internal/logger"
	"github.com/MKhiriev/go-draft-sync/internal/store"
	"github.com/MKhiriev/go-draft-sync/internal/utils"
	"github.com/MKhiriev/go-draft-sync/internal/validators"
	"github.com/MKhiriev/go-draft-sync/models"
)

type documentService struct {
	repository store.DocumentRepository
	validator  validators.Validator

	logger *logger.Logger
}

func NewDocumentService(repository store.DocumentRepository, validator validators.Validator, logger *logger.Logger) DocumentService {
	return &documentService{
		repository: repository,
		validator:  validator,
		logger:     logger,
	}
}

func (s *documentService) Get(ctx context.Context, owner, path string) (models.Document, error) {
	if err := s.check(ctx, owner, models.Document{Path: path}, validators.FieldPath); err != nil {
		return models.Document{}, err
	}

	doc, err := s.repository.GetDocument(ctx, owner, path)
	if err != nil {
		return models.Document{}, mapStoreError(err)
	}

	return doc, nil
}

// Put assigns revision 1 on create and expected revision + 1 on update; the
// version tag is derived from the revision and the content digest.
func (s *documentService) Put(ctx context.Context, owner, path string, content []byte, ifMatch string, create bool) (models.Document, error) {
	log := logger.FromContext(ctx)

	doc := models.Document{Path: path, Content: content}
	if err := s.check(ctx, owner, doc); err != nil {
		return models.Document{}, err
	}

	if create {
		doc.Revision = 1
		doc.Version = utils.VersionTag(doc.Revision, content)

		created, err := s.repository.CreateDocument(ctx, owner, doc)
		if err != nil {
			log.Debug().Err(err).Str("path", path).Msg("create document failed")
			return models.Document{}, mapStoreError(err)
		}
		return created, nil
	}

	if ifMatch == "" {
		return models.Document{}, ErrPreconditionNeeded
	}

	revision, err := utils.ParseVersionTag(ifMatch)
	if err != nil {
		// no stored document can carry a malformed tag
		return models.Document{}, fmt.Errorf("%w: %w", ErrVersionConflict, err)
	}

	doc.Revision = revision + 1
	doc.Version = utils.VersionTag(doc.Revision, content)

	updated, err := s.repository.UpdateDocument(ctx, owner, doc, ifMatch)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Str("if_match", ifMatch).Msg("update document failed")
		return models.Document{}, mapStoreError(err)
	}

	return updated, nil
}

func (s *documentService) List(ctx context.Context, owner, prefix string) ([]models.DocumentInfo, error) {
	if owner == "" {
		return nil, ErrInvalidDataProvided
	}

	prefix, err := validators.NormalizePrefix(prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	infos, err := s.repository.ListDocuments(ctx, owner, prefix)
	if err != nil {
		return nil, mapStoreError(err)
	}

	return infos, nil
}

func (s *documentService) check(ctx context.Context, owner string, doc models.Document, fields ...string) error {
	if owner == "" {
		return ErrInvalidDataProvided
	}
	if err := s.validator.Validate(ctx, doc, fields...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	return nil
}

func mapStoreError(err error) error {
	switch {
	case errors.Is(err, store.ErrDocumentNotFound):
		return ErrDocumentNotFound
	case errors.Is(err, store.ErrVersionConflict):
		return ErrVersionConflict
	case errors.Is(err, store.ErrStorageUnavailable):
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	default:
		return err
	}
}
