// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-draft-sync/internal/config"
	"github.com/MKhiriev/go-draft-sync/internal/logger"
	"github.com/MKhiriev/go-draft-sync/internal/store"
	"github.com/MKhiriev/go-draft-sync/internal/validators"
)

// Services groups the server-side services handed to the HTTP handler.
type Services struct {
	AuthService     AuthService
	DocumentService DocumentService
	AppInfoService  AppInfoService
}

func NewServices(storages *store.Storages, cfg config.App, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("app info service: %w", err)
	}

	return &Services{
		AuthService:     NewAuthService(cfg, logger),
		DocumentService: NewDocumentService(storages.DocumentRepository, validators.NewDocumentValidator(cfg.MaxDocumentSize), logger),
		AppInfoService:  appInfo,
	}, nil
}
