// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"testing"

	"github.com/MKhiriev/go-draft-sync/internal/config"
	"github.com/MKhiriev/go-draft-sync/internal/logger"
	"github.com/MKhiriev/go-draft-sync/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandlers(t *testing.T) {
	tests := []struct {
		name     string
		server   config.Server
		wantHTTP bool
		wantGRPC bool
		wantErr  error
	}{
		{name: "both", server: config.Server{HTTPAddress: ":8080", GRPCAddress: ":9090"}, wantHTTP: true, wantGRPC: true},
		{name: "http only", server: config.Server{HTTPAddress: ":8080"}, wantHTTP: true},
		{name: "grpc only", server: config.Server{GRPCAddress: ":9090"}, wantGRPC: true},
		{name: "none", wantErr: errNoListenAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.ServerConfig{Server: tt.server, App: config.App{HashKey: "k"}}

			h, err := NewHandlers(&service.Services{}, cfg, logger.Nop())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, h)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHTTP, h.HTTP != nil)
			assert.Equal(t, tt.wantGRPC, h.GRPC != nil)
		})
	}
}

func TestNewHandlers_NilServices(t *testing.T) {
	cfg := &config.ServerConfig{Server: config.Server{HTTPAddress: ":8080"}}

	_, err := NewHandlers(nil, cfg, logger.Nop())

	assert.ErrorIs(t, err, errNilServices)
}
