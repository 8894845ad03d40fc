// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-draft-sync/internal/config"
	"github.com/MKhiriev/go-draft-sync/internal/logger"
	"github.com/MKhiriev/go-draft-sync/internal/service"
	"github.com/MKhiriev/go-draft-sync/internal/utils"
)

// bodyOverhead covers the JSON envelope around the base64 document content.
const bodyOverhead = 4 << 10

type Handler struct {
	services *service.Services

	// hasher is nil when no hash key is configured; the body check is skipped.
	hasher *utils.Hasher

	maxBodySize int64

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")

	h := &Handler{
		services:    services,
		maxBodySize: maxBodySize(cfg.MaxDocumentSize),
		logger:      logger,
	}
	if cfg.HashKey != "" {
		h.hasher = utils.NewHasher(cfg.HashKey)
	}

	return h
}

// maxBodySize converts a content limit into a request body limit: content is
// base64 inside JSON, so it grows by a third.
func maxBodySize(maxDocumentSize int64) int64 {
	if maxDocumentSize <= 0 {
		maxDocumentSize = config.DefaultMaxDocumentSize
	}
	return maxDocumentSize/3*4 + 4 + bodyOverhead
}
