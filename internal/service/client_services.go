// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-draft-sync/internal/adapter"
	"github.com/MKhiriev/go-draft-sync/internal/logger"
	"github.com/MKhiriev/go-draft-sync/internal/store"
)

// ClientServices groups the client-side services.
type ClientServices struct {
	RecoveryService RecoveryService
}

// NewClientServices wires the client services. remote may be nil.
func NewClientServices(storages *store.ClientStorages, remote adapter.DocumentStore, logger *logger.Logger) *ClientServices {
	return &ClientServices{
		RecoveryService: NewRecoveryService(storages.SpoolRepository, remote, logger),
	}
}
