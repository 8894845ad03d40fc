// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-draft-sync/internal/config"
	"github.com/MKhiriev/go-draft-sync/internal/logger"
	"github.com/MKhiriev/go-draft-sync/internal/utils"
	"github.com/MKhiriev/go-draft-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHashKey = "testhashkey"

func newTestStore(t *testing.T, serverURL string) *HTTPDocumentStore {
	t.Helper()
	s, err := NewHTTPDocumentStore(config.ClientAdapter{
		HTTPAddress:    serverURL,
		RequestTimeout: 2 * time.Second,
		Token:          "test-token",
		HashKey:        testHashKey,
	}, logger.Nop())
	require.NoError(t, err)
	return s
}

// ── Get ─────────────────────────────────────────────────────────────────────

func TestGet_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/documents/forms/contact/draft.json", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Trace-ID"))

		_, _ = utils.WriteJSON(w, models.Document{
			Path:    "forms/contact/draft.json",
			Content: []byte(`{"fields":{}}`),
			Version: "2-abc",
		}, http.StatusOK)
	}))
	defer srv.Close()

	doc, err := newTestStore(t, srv.URL).Get(context.Background(), "forms/contact/draft.json")

	require.NoError(t, err)
	assert.Equal(t, "2-abc", doc.Version)
	assert.Equal(t, []byte(`{"fields":{}}`), doc.Content)
}

func TestGet_PropagatesTraceID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "trace-42", r.Header.Get("X-Trace-ID"))
		_, _ = utils.WriteJSON(w, models.Document{Version: "1-a"}, http.StatusOK)
	}))
	defer srv.Close()

	ctx := utils.WithTraceID(context.Background(), "trace-42")
	_, err := newTestStore(t, srv.URL).Get(ctx, "a.json")
	require.NoError(t, err)
}

func TestGet_EscapesSegments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/documents/my%20forms/draft.json", r.URL.EscapedPath())
		_, _ = utils.WriteJSON(w, models.Document{Version: "1-a"}, http.StatusOK)
	}))
	defer srv.Close()

	_, err := newTestStore(t, srv.URL).Get(context.Background(), "my forms/draft.json")
	require.NoError(t, err)
}

func TestGet_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteError(w, "document not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestStore(t, srv.URL).Get(context.Background(), "missing.json")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGet_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := newTestStore(t, srv.URL).Get(ctx, "slow.json")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemoteUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGet_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestStore(t, url).Get(context.Background(), "a.json")

	assert.ErrorIs(t, err, ErrRemoteUnavailable)
}

// ── Put ─────────────────────────────────────────────────────────────────────

func TestPut_CreateSendsIfNoneMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "*", r.Header.Get("If-None-Match"))
		assert.Empty(t, r.Header.Get("If-Match"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, utils.HashString(string(body), testHashKey), r.Header.Get("HashSHA256"))

		var req models.PutDocumentRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, []byte("hello"), req.Content)

		_, _ = utils.WriteJSON(w, models.PutDocumentResponse{Path: "a.json", Version: "1-x", Created: true}, http.StatusCreated)
	}))
	defer srv.Close()

	version, err := newTestStore(t, srv.URL).Put(context.Background(), "a.json", []byte("hello"), "")

	require.NoError(t, err)
	assert.Equal(t, "1-x", version)
}

func TestPut_UpdateSendsIfMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1-x", r.Header.Get("If-Match"))
		assert.Empty(t, r.Header.Get("If-None-Match"))
		_, _ = utils.WriteJSON(w, models.PutDocumentResponse{Path: "a.json", Version: "2-y"}, http.StatusOK)
	}))
	defer srv.Close()

	version, err := newTestStore(t, srv.URL).Put(context.Background(), "a.json", []byte("v2"), "1-x")

	require.NoError(t, err)
	assert.Equal(t, "2-y", version)
}

func TestPut_NoHashHeaderWithoutKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("HashSHA256"))
		_, _ = utils.WriteJSON(w, models.PutDocumentResponse{Version: "1-x"}, http.StatusCreated)
	}))
	defer srv.Close()

	s, err := NewHTTPDocumentStore(config.ClientAdapter{HTTPAddress: srv.URL, Token: "t"}, logger.Nop())
	require.NoError(t, err)

	_, err = s.Put(context.Background(), "a.json", []byte("x"), "")
	require.NoError(t, err)
}

func TestPut_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"conflict", http.StatusConflict, ErrConflict},
		{"precondition failed", http.StatusPreconditionFailed, ErrConflict},
		{"bad request", http.StatusBadRequest, ErrBadRequest},
		{"too large", http.StatusRequestEntityTooLarge, ErrBadRequest},
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized},
		{"forbidden", http.StatusForbidden, ErrForbidden},
		{"not found", http.StatusNotFound, ErrNotFound},
		{"internal", http.StatusInternalServerError, ErrRemoteUnavailable},
		{"bad gateway", http.StatusBadGateway, ErrRemoteUnavailable},
		{"unavailable", http.StatusServiceUnavailable, ErrRemoteUnavailable},
		{"too many requests", http.StatusTooManyRequests, ErrRemoteUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := newTestStore(t, srv.URL).Put(context.Background(), "a.json", []byte("x"), "1-x")

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPut_UnknownStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	_, err := newTestStore(t, srv.URL).Put(context.Background(), "a.json", []byte("x"), "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 418")
	assert.NotErrorIs(t, err, ErrRemoteUnavailable)
}

// ── List ────────────────────────────────────────────────────────────────────

func TestList_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/documents/", r.URL.Path)
		assert.Equal(t, "forms/", r.URL.Query().Get("prefix"))
		_, _ = utils.WriteJSON(w, models.DocumentListResponse{
			Documents: []models.DocumentInfo{{Path: "forms/a.json", Version: "1-a", Size: 3}},
			Length:    1,
		}, http.StatusOK)
	}))
	defer srv.Close()

	docs, err := newTestStore(t, srv.URL).List(context.Background(), "forms/")

	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "forms/a.json", docs[0].Path)
}

func TestList_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestStore(t, srv.URL).List(context.Background(), "")

	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ── construction ─────────────────────────────────────────────────────────────

func TestNewHTTPDocumentStore_EmptyAddress(t *testing.T) {
	_, err := NewHTTPDocumentStore(config.ClientAdapter{}, logger.Nop())
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid http", "http://localhost:8080", "http://localhost:8080", false},
		{"no scheme", "localhost:8080", "http://localhost:8080", false},
		{"trailing slash", "https://drafts.example/", "https://drafts.example", false},
		{"empty", "", "", true},
		{"no host", "http://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDocumentURL(t *testing.T) {
	assert.Equal(t, "/api/documents/a/b.json", documentURL("/a/b.json"))
	assert.Equal(t, "/api/documents/a%3Fb/c.json", documentURL("a?b/c.json"))
}
