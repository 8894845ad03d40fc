// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"testing"

	"github.com/MKhiriev/go-draft-sync/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGetServerVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{"release", "1.2.3"},
		{"pre-release with build", "v2.0.0-beta+build.42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, mocks := newTestHandler(t, config.App{})
			mocks.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return(tt.version)

			rec := serve(t, h, http.MethodGet, "/api/version/", nil, nil)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.version, rec.Body.String())
			assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
		})
	}
}
