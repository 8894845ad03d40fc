// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-draft-sync/internal/config"
	"github.com/MKhiriev/go-draft-sync/internal/logger"
	"github.com/MKhiriev/go-draft-sync/internal/utils"
	"github.com/MKhiriev/go-draft-sync/models"
	"github.com/go-resty/resty/v2"
)

const (
	documentsPath = "/api/documents/"

	headerTraceID     = "X-Trace-ID"
	headerHash        = "HashSHA256"
	headerIfMatch     = "If-Match"
	headerIfNoneMatch = "If-None-Match"
)

// HTTPDocumentStore is the REST implementation of [DocumentStore].
type HTTPDocumentStore struct {
	client *utils.HTTPClient
	hasher *utils.Hasher
	token  string
	ids    *utils.UUIDGenerator

	logger *logger.Logger
}

// NewHTTPDocumentStore normalises adapterCfg.HTTPAddress and configures the
// underlying resty client with the request timeout and bearer token. A hash
// key enables the HashSHA256 body header.
//
// Returns [ErrNotConfigured] if the address is empty, or an error if it cannot
// be parsed as a URL.
func NewHTTPDocumentStore(adapterCfg config.ClientAdapter, log *logger.Logger) (*HTTPDocumentStore, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, err
	}

	store := &HTTPDocumentStore{
		client: utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		token:  strings.TrimSpace(adapterCfg.Token),
		ids:    utils.NewUUIDGenerator(),
		logger: log,
	}
	if adapterCfg.HashKey != "" {
		store.hasher = utils.NewHasher(adapterCfg.HashKey)
	}

	return store, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrNotConfigured
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid adapter http address: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid adapter http address: address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Get implements [DocumentStore] via GET /api/documents/{path}.
func (h *HTTPDocumentStore) Get(ctx context.Context, path string) (models.Document, error) {
	resp, err := h.request(ctx).Get(documentURL(path))
	if err != nil {
		return models.Document{}, mapTransportError("get document", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Document{}, err
	}

	var doc models.Document
	if err = json.Unmarshal(resp.Body(), &doc); err != nil {
		return models.Document{}, fmt.Errorf("decode document: %w", err)
	}

	return doc, nil
}

// Put implements [DocumentStore] via PUT /api/documents/{path}. The expected
// version travels in If-Match, or If-None-Match: * for a create.
func (h *HTTPDocumentStore) Put(ctx context.Context, path string, content []byte, expectedVersion string) (string, error) {
	body, err := json.Marshal(models.PutDocumentRequest{Content: content})
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	req := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body)
	if expectedVersion == "" {
		req.SetHeader(headerIfNoneMatch, "*")
	} else {
		req.SetHeader(headerIfMatch, expectedVersion)
	}
	if h.hasher != nil {
		req.SetHeader(headerHash, h.hasher.Hex(body))
	}

	resp, err := req.Put(documentURL(path))
	if err != nil {
		return "", mapTransportError("put document", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	var out models.PutDocumentResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return "", fmt.Errorf("decode put response: %w", err)
	}

	h.logger.Debug().
		Str("path", path).
		Str("version", out.Version).
		Bool("created", out.Created).
		Msg("document written")

	return out.Version, nil
}

// List implements [DocumentStore] via GET /api/documents/?prefix=.
func (h *HTTPDocumentStore) List(ctx context.Context, prefix string) ([]models.DocumentInfo, error) {
	req := h.request(ctx)
	if prefix != "" {
		req.SetQueryParam("prefix", prefix)
	}

	resp, err := req.Get(documentsPath)
	if err != nil {
		return nil, mapTransportError("list documents", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var out models.DocumentListResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode document list: %w", err)
	}

	return out.Documents, nil
}

func (h *HTTPDocumentStore) request(ctx context.Context) *resty.Request {
	traceID := utils.GetTraceIDFromContext(ctx)
	if traceID == "" {
		traceID = h.ids.Generate()
	}

	req := h.client.R().
		SetContext(ctx).
		SetHeader(headerTraceID, traceID)
	if h.token != "" {
		req.SetAuthToken(h.token)
	}
	return req
}

// documentURL escapes each path segment and keeps the separators.
func documentURL(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return documentsPath + strings.Join(segments, "/")
}
