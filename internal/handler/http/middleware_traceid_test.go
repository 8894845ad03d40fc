// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-draft-sync/internal/logger"
	"github.com/MKhiriev/go-draft-sync/internal/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name          string
		header        string
		wantSame      bool
		wantGenerated bool
	}{
		{name: "reuses request header", header: "my-custom-trace-id", wantSame: true},
		{name: "generates uuid", header: "", wantGenerated: true},
		{name: "oversized header replaced", header: strings.Repeat("a", maxTraceIDLength+1), wantGenerated: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

			var ctxTraceID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxTraceID = utils.GetTraceIDFromContext(r.Context())
				logger.FromRequest(r).Info().Msg("inside")
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(traceIDHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			h.withTraceID(next).ServeHTTP(rec, req)

			got := rec.Header().Get(traceIDHeader)
			require.NotEmpty(t, got)
			assert.Equal(t, got, ctxTraceID)
			assert.Contains(t, buf.String(), `"trace_id":"`+got+`"`)

			if tt.wantSame {
				assert.Equal(t, tt.header, got)
			}
			if tt.wantGenerated {
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			}
		})
	}
}

func TestWithTraceID_DoesNotLeakIntoParentLogger(t *testing.T) {
	var buf bytes.Buffer
	base := &logger.Logger{Logger: zerolog.New(&buf)}
	h := &Handler{logger: base}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(traceIDHeader, "req-1")
	h.withTraceID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).
		ServeHTTP(httptest.NewRecorder(), req)

	base.Info().Msg("after")
	assert.NotContains(t, buf.String(), "req-1")
}
