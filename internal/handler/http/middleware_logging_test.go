// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-draft-sync/internal/logger"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestWithLogging(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantContains []string
	}{
		{
			name:   "explicit status",
			status: http.StatusCreated,
			body:   "created",
			wantContains: []string{
				`"level":"info"`,
				`"method":"PUT"`,
				`"path":"/api/documents/a.json"`,
				`"status":201`,
				`"size":7`,
				`"duration":`,
			},
		},
		{
			name:         "implicit 200",
			body:         "ok",
			wantContains: []string{`"status":200`, `"size":2`},
		},
		{
			name:         "server error logged as warning",
			status:       http.StatusServiceUnavailable,
			wantContains: []string{`"level":"warn"`, `"status":503`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &Handler{logger: logger.Nop()}

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				if tt.body != "" {
					_, _ = w.Write([]byte(tt.body))
				}
			})

			req := httptest.NewRequest(http.MethodPut, "/api/documents/a.json", bytes.NewBufferString("secret"))
			req = req.WithContext(zerolog.New(&buf).WithContext(req.Context()))

			h.withLogging(next).ServeHTTP(httptest.NewRecorder(), req)

			for _, want := range tt.wantContains {
				assert.Contains(t, buf.String(), want)
			}
			assert.NotContains(t, buf.String(), "secret")
		})
	}
}

func TestResponseWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec}

	rw.WriteHeader(http.StatusAccepted)
	rw.WriteHeader(http.StatusTeapot)
	n1, _ := rw.Write([]byte("abc"))
	n2, _ := rw.Write([]byte("de"))

	assert.Equal(t, http.StatusAccepted, rw.status)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 5, n1+n2)
	assert.Equal(t, 5, rw.size)
	assert.Equal(t, "abcde", rec.Body.String())
	assert.Same(t, rec, rw.Unwrap())
}
